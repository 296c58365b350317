package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MethorZ/mezzio-hexagonal-skeleton/pkg/version"
)

func TestCatalogCommand(t *testing.T) {
	t.Run("override_file", func(t *testing.T) {
		root := setupSkeleton(t)
		out, err := runCLI(t, context.Background(), nil, "catalog", root)
		if err != nil {
			t.Fatalf("catalog error: %v", err)
		}
		for _, want := range []string{
			filepath.Join(root, "installer", "catalog.yaml"),
			"Observability",
			"request-id",
			"methorz/http-request-id ^1.0",
			"Mezzio\\Cors\\Middleware\\CorsMiddleware @ after-routing",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("catalog output missing %q:\n%s", want, out)
			}
		}
		if strings.Index(out, "Observability") > strings.Index(out, "Security") {
			t.Error("groups not listed in catalog order")
		}
	})

	t.Run("built_in", func(t *testing.T) {
		out, err := runCLI(t, context.Background(), nil, "catalog", t.TempDir())
		if err != nil {
			t.Fatalf("catalog error: %v", err)
		}
		if !strings.Contains(out, "built-in") || !strings.Contains(out, "problem-details") {
			t.Errorf("built-in catalog not listed:\n%s", out)
		}
	})
}

func TestCheckCommand(t *testing.T) {
	t.Run("clean", func(t *testing.T) {
		root := setupSkeleton(t)
		out, err := runCLI(t, context.Background(), nil, "check", root)
		if err != nil {
			t.Fatalf("check error: %v\n%s", err, out)
		}
		if !strings.Contains(out, "all markers present") {
			t.Errorf("check output = %s", out)
		}
	})

	t.Run("drift", func(t *testing.T) {
		root := setupSkeleton(t)
		path := filepath.Join(root, "installer", "templates", "flat", "base", "config", "pipeline.php")
		drifted := strings.Replace(testPipelinePHP, "    // Register the dispatch middleware in the middleware pipeline\n", "", 1)
		if err := os.WriteFile(path, []byte(drifted), 0o644); err != nil {
			t.Fatal(err)
		}

		out, err := runCLI(t, context.Background(), nil, "check", root)
		if !errors.Is(err, errMarkerDrift) {
			t.Fatalf("check error = %v, want errMarkerDrift", err)
		}
		if !strings.Contains(out, "middleware (after-routing) not registered") {
			t.Errorf("check output missing drift line:\n%s", out)
		}
	})
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, context.Background(), nil, "version")
	if err != nil {
		t.Fatalf("version error: %v", err)
	}
	if !strings.Contains(out, version.GetVersion()) {
		t.Errorf("version output = %q, want %q", out, version.GetVersion())
	}
}
