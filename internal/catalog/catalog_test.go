package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/config"
)

func testGroups() []FeatureGroup {
	return []FeatureGroup{
		{
			Key:        "problem-details",
			Group:      "error-handling",
			Prompt:     "Problem details?",
			Packages:   []Package{{Name: "mezzio/mezzio-problem-details", Version: "^1.15"}},
			Provider:   `Mezzio\ProblemDetails\ConfigProvider`,
			Middleware: `Mezzio\ProblemDetails\ProblemDetailsMiddleware`,
			Position:   PositionFirst,
		},
		{
			Key:      "logging",
			Group:    "observability",
			Prompt:   "Logging?",
			Packages: []Package{{Name: "monolog/monolog", Version: "^3.8"}},
		},
		{
			Key:      "testing",
			Group:    "development",
			Prompt:   "PHPUnit?",
			Dev:      true,
			Packages: []Package{{Name: "phpunit/phpunit", Version: "^11.5"}},
		},
		{
			Key:      "request-id",
			Group:    "observability",
			Prompt:   "Request ID?",
			Packages: []Package{{Name: "php", Version: "^8.3"}},
		},
	}
}

func TestCatalog_SelectFollowsCatalogOrder(t *testing.T) {
	c, err := New(testGroups())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, err := c.Select([]string{"request-id", "problem-details", "request-id", " "})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	var keys []string
	for _, g := range got {
		keys = append(keys, g.Key)
	}
	if diff := cmp.Diff([]string{"problem-details", "request-id"}, keys); diff != "" {
		t.Errorf("Select() keys mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog_SelectUnknownKey(t *testing.T) {
	c, err := New(testGroups())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_, err = c.Select([]string{"graphql"})
	if !errors.Is(err, ErrUnknownFeature) {
		t.Fatalf("Select() error = %v, want ErrUnknownFeature", err)
	}
	if !strings.Contains(err.Error(), "problem-details") {
		t.Errorf("error should list known keys: %v", err)
	}
}

func TestCatalog_Immutable(t *testing.T) {
	groups := testGroups()
	c, err := New(groups)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	groups[0].Packages[0].Version = "^0.1"
	out := c.Groups()
	out[0].Packages[0].Version = "^0.2"

	g, ok := c.Lookup("problem-details")
	if !ok {
		t.Fatal("Lookup() missed problem-details")
	}
	if g.Packages[0].Version != "^1.15" {
		t.Errorf("catalog was mutated through a caller slice: %q", g.Packages[0].Version)
	}
}

func TestCatalog_GroupLabels(t *testing.T) {
	c, err := New(testGroups())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	want := []string{"error-handling", "observability", "development"}
	if diff := cmp.Diff(want, c.GroupLabels()); diff != "" {
		t.Errorf("GroupLabels() mismatch (-want +got):\n%s", diff)
	}
	if n := len(c.InGroup("observability")); n != 2 {
		t.Errorf("InGroup(observability) = %d groups, want 2", n)
	}
}

func TestCatalog_NormalizesLeadingBackslash(t *testing.T) {
	groups := testGroups()
	groups[0].Provider = `\Mezzio\ProblemDetails\ConfigProvider`
	c, err := New(groups)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	g, _ := c.Lookup("problem-details")
	if got := g.Provider.ClassConstant(); got != `\Mezzio\ProblemDetails\ConfigProvider::class` {
		t.Errorf("ClassConstant() = %q", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]FeatureGroup) []FeatureGroup
		field  string
	}{
		{"empty_key", func(g []FeatureGroup) []FeatureGroup { g[1].Key = ""; return g }, "features[1].key"},
		{"uppercase_key", func(g []FeatureGroup) []FeatureGroup { g[1].Key = "Logging"; return g }, "features.Logging.key"},
		{"duplicate_key", func(g []FeatureGroup) []FeatureGroup { g[2].Key = "logging"; return g }, "features.logging.key"},
		{"empty_prompt", func(g []FeatureGroup) []FeatureGroup { g[1].Prompt = " "; return g }, "features.logging.prompt"},
		{"bad_package", func(g []FeatureGroup) []FeatureGroup {
			g[1].Packages = []Package{{Name: "Monolog", Version: "^3"}}
			return g
		}, "features.logging.packages"},
		{"empty_version", func(g []FeatureGroup) []FeatureGroup {
			g[1].Packages = []Package{{Name: "monolog/monolog"}}
			return g
		}, "features.logging.packages.monolog/monolog"},
		{"config_path", func(g []FeatureGroup) []FeatureGroup { g[1].ConfigTemplate = "../x.php"; return g }, "features.logging.config"},
		{"bad_provider", func(g []FeatureGroup) []FeatureGroup { g[1].Provider = `Monolog\\Bad`; return g }, "features.logging.provider"},
		{"middleware_without_position", func(g []FeatureGroup) []FeatureGroup {
			g[1].Middleware = `Monolog\Middleware`
			return g
		}, "features.logging.position"},
		{"unknown_position", func(g []FeatureGroup) []FeatureGroup { g[0].Position = "last"; return g }, "features.problem-details.position"},
		{"position_without_middleware", func(g []FeatureGroup) []FeatureGroup { g[1].Position = PositionEarly; return g }, "features.logging.position"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.mutate(testGroups()))
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Fatalf("Validate() error = %v, want ErrInvalidCatalog", err)
			}
			var ve *config.ValidationErrors
			if !errors.As(err, &ve) {
				t.Fatalf("expected *config.ValidationErrors, got %T", err)
			}
			found := false
			for _, e := range ve.Errors {
				if e.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("no error for field %q in %v", tt.field, err)
			}
		})
	}
}

func TestFeatureGroup_Helpers(t *testing.T) {
	g := testGroups()[0]
	if !g.HasProvider() || !g.HasMiddleware() {
		t.Error("problem-details should declare provider and middleware")
	}
	if g.Comment() != "problem-details" {
		t.Errorf("Comment() without description = %q", g.Comment())
	}
	g.Description = "Convert errors"
	if g.Comment() != "Convert errors" {
		t.Errorf("Comment() = %q", g.Comment())
	}
	if g.RequireSection() != "require" {
		t.Errorf("RequireSection() = %q", g.RequireSection())
	}
	if testGroups()[2].RequireSection() != "require-dev" {
		t.Error("dev group should target require-dev")
	}
}

func TestGroupTitle(t *testing.T) {
	tests := map[string]string{
		"error-handling": "Error Handling",
		"observability":  "Observability",
		"dev_tools":      "Dev Tools",
		"":               "General",
	}
	for in, want := range tests {
		if got := GroupTitle(in); got != want {
			t.Errorf("GroupTitle(%q) = %q, want %q", in, got, want)
		}
	}
}
