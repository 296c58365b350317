package wizard

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/catalog"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/pkg/models"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.FeatureGroup{
		{Key: "problem-details", Group: "error-handling", Prompt: "Problem details?", Default: true},
		{Key: "logging", Group: "observability", Prompt: "Logging?", Default: true},
		{Key: "cors", Group: "http", Prompt: "CORS?"},
		{Key: "request-id", Group: "observability", Prompt: "Request IDs?"},
	})
	if err != nil {
		t.Fatalf("catalog.New() error: %v", err)
	}
	return cat
}

func TestQuestions(t *testing.T) {
	qs := Questions(testCatalog(t))

	var ids, groups []string
	for _, q := range qs {
		ids = append(ids, q.ID)
		groups = append(groups, q.Group)
	}
	wantIDs := []string{ArchitectureID, "problem-details", "logging", "request-id", "cors"}
	if diff := cmp.Diff(wantIDs, ids); diff != "" {
		t.Errorf("question order mismatch (-want +got):\n%s", diff)
	}
	wantGroups := []string{"Architecture", "Error Handling", "Observability", "Observability", "Http"}
	if diff := cmp.Diff(wantGroups, groups); diff != "" {
		t.Errorf("group titles mismatch (-want +got):\n%s", diff)
	}
	if !qs[1].DefaultYes() || qs[4].DefaultYes() {
		t.Error("confirm defaults not carried from the catalog")
	}
}

func TestRun_LinePrompter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  models.Selection
	}{
		{
			name:  "all_defaults",
			input: "\n\n\n\n\n",
			want:  models.Selection{Architecture: models.ArchFlat, Features: []string{"problem-details", "logging"}},
		},
		{
			name:  "end_of_input_uses_defaults",
			input: "",
			want:  models.Selection{Architecture: models.ArchFlat, Features: []string{"problem-details", "logging"}},
		},
		{
			name:  "layered_short_answer",
			input: "l\nn\nn\ny\nyes\n",
			want:  models.Selection{Architecture: models.ArchLayered, Features: []string{"cors", "request-id"}},
		},
		{
			name:  "layered_word_case_insensitive",
			input: "  LaYeReD \nno\nNo\nnah\n\n",
			want:  models.Selection{Architecture: models.ArchLayered},
		},
		{
			name:  "unknown_answers_fall_back",
			input: "hexagonal\nmaybe\n?\nmaybe\nok\n",
			want:  models.Selection{Architecture: models.ArchFlat, Features: []string{"problem-details", "logging"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			p := NewLinePrompter(strings.NewReader(tt.input), &out)

			got, err := Run(testCatalog(t), p, &out)
			if err != nil {
				t.Fatalf("Run() error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("selection mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLinePrompter_Output(t *testing.T) {
	var out strings.Builder
	p := NewLinePrompter(strings.NewReader("l\n\n\n\n\n"), &out)

	if _, err := Run(testCatalog(t), p, &out); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"(f) Flat [default] / (l) Layered (hexagonal)",
		"Selected: Layered (hexagonal) architecture",
		"\nObservability\n",
		"Problem details? [Y/n]: ",
		"CORS? [y/N]: ",
		"Selected: logging",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Count(got, "\nObservability\n") != 1 {
		t.Errorf("group header repeated:\n%s", got)
	}
}

func TestRun_PresetPrompter(t *testing.T) {
	t.Run("explicit_features", func(t *testing.T) {
		got, err := Run(testCatalog(t), NewPresetPrompter("layered", []string{"cors"}), nil)
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		want := models.Selection{Architecture: models.ArchLayered, Features: []string{"cors"}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("selection mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty_feature_list_selects_none", func(t *testing.T) {
		got, err := Run(testCatalog(t), NewPresetPrompter("", []string{}), nil)
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		if got.Architecture != models.ArchFlat || len(got.Features) != 0 {
			t.Errorf("selection = %+v, want flat with no features", got)
		}
	})

	t.Run("nil_feature_list_uses_defaults", func(t *testing.T) {
		got, err := Run(testCatalog(t), NewPresetPrompter("flat", nil), nil)
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		if diff := cmp.Diff([]string{"problem-details", "logging"}, got.Features); diff != "" {
			t.Errorf("features mismatch (-want +got):\n%s", diff)
		}
	})
}

type cancellingPrompter struct{ asked int }

func (p *cancellingPrompter) Ask(*Question) (string, error) {
	p.asked++
	if p.asked == 2 {
		return "", ErrCancelled
	}
	return "", nil
}

func TestRun_Cancelled(t *testing.T) {
	p := &cancellingPrompter{}
	_, err := Run(testCatalog(t), p, nil)
	if !errors.Is(err, ErrCancelled) {
		t.Errorf("Run() error = %v, want ErrCancelled", err)
	}
	if p.asked != 2 {
		t.Errorf("asked = %d, want questions to stop after cancel", p.asked)
	}
}

func TestRunQuestions_Empty(t *testing.T) {
	if _, err := RunQuestions(nil, NewPresetPrompter("", nil), nil); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("RunQuestions() error = %v, want ErrNoQuestions", err)
	}
}

func TestNewFormPrompter(t *testing.T) {
	if p := NewFormPrompter(); p.theme == nil {
		t.Error("NewFormPrompter() has no theme")
	}
}
