package manifest

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestManifest_StripScripts(t *testing.T) {
	m := loadManifest(t, rootFixture)

	removed := m.StripScripts(`Installer\`)

	wantRemoved := []string{"pre-update-cmd", "post-install-cmd"}
	if diff := cmp.Diff(wantRemoved, removed); diff != "" {
		t.Errorf("removed hooks mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"post-create-project-cmd", "check"}, m.Doc.Keys("scripts")); diff != "" {
		t.Errorf("remaining hooks mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"check"}, m.Doc.Keys("scripts-descriptions")); diff != "" {
		t.Errorf("remaining descriptions mismatch (-want +got):\n%s", diff)
	}

	got, err := m.Doc.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	want := `"post-create-project-cmd": [
            "@php -r \"copy('.env.dist', '.env');\""
        ],`
	if !strings.Contains(string(got), want) {
		t.Errorf("filtered list hook not rendered as expected, got:\n%s", got)
	}
}

func TestManifest_StripScriptsWithoutScripts(t *testing.T) {
	m := loadManifest(t, backendFixture)
	if removed := m.StripScripts(`Installer\`); removed != nil {
		t.Errorf("StripScripts() = %v, want nil", removed)
	}
}

func TestManifest_AutoloadPSR4(t *testing.T) {
	m := loadManifest(t, rootFixture)

	if !m.RemoveAutoloadPSR4(`App\`) {
		t.Error(`RemoveAutoloadPSR4(App\) = false, want true`)
	}
	if m.RemoveAutoloadPSR4(`Missing\`) {
		t.Error(`RemoveAutoloadPSR4(Missing\) = true, want false`)
	}
	for _, mod := range []string{"Core", "Article"} {
		if err := m.SetAutoloadPSR4(mod+`\`, "backend/src/"+mod+"/"); err != nil {
			t.Fatalf("SetAutoloadPSR4() error: %v", err)
		}
	}

	want := []Entry{
		{`Installer\`, "installer/src/"},
		{`Core\`, "backend/src/Core/"},
		{`Article\`, "backend/src/Article/"},
	}
	if diff := cmp.Diff(want, m.AutoloadPSR4()); diff != "" {
		t.Errorf("psr-4 mismatch (-want +got):\n%s", diff)
	}
	if m.Name() != "methorz/mezzio-hexagonal-skeleton" {
		t.Errorf("Name() = %q", m.Name())
	}
}
