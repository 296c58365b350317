package wizard

import (
	"fmt"
	"io"
	"strings"

	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/catalog"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/pkg/models"
)

// Prompter obtains the raw answer to one question. An empty answer
// selects the question's default.
type Prompter interface {
	Ask(q *Question) (string, error)
}

// Run asks every question of cat through p and returns the selection.
// Feature keys are returned in catalog order. A line per answer is
// written to out when it is not nil.
func Run(cat *catalog.Catalog, p Prompter, out io.Writer) (models.Selection, error) {
	sel, err := RunQuestions(Questions(cat), p, out)
	if err != nil || len(sel.Features) == 0 {
		return sel, err
	}

	// Questions are grouped; the selection follows the catalog.
	groups, err := cat.Select(sel.Features)
	if err != nil {
		return sel, err
	}
	sel.Features = sel.Features[:0]
	for _, g := range groups {
		sel.Features = append(sel.Features, g.Key)
	}
	return sel, nil
}

// RunQuestions asks the given questions through p. The architecture
// question is answered with ParseArchitecture, every other question with
// ParseYesNo against its default.
func RunQuestions(questions []Question, p Prompter, out io.Writer) (models.Selection, error) {
	sel := models.Selection{Architecture: models.DefaultArchitecture}
	if len(questions) == 0 {
		return sel, ErrNoQuestions
	}
	if out == nil {
		out = io.Discard
	}

	for i := range questions {
		q := &questions[i]
		answer, err := p.Ask(q)
		if err != nil {
			return sel, err
		}

		if q.ID == ArchitectureID {
			sel.Architecture = models.ParseArchitecture(answer)
			_, _ = fmt.Fprintf(out, "Selected: %s architecture\n", sel.Architecture.Label())
			continue
		}
		if models.ParseYesNo(answer, q.DefaultYes()) {
			sel.Features = append(sel.Features, q.ID)
			_, _ = fmt.Fprintf(out, "Selected: %s\n", q.ID)
		}
	}

	if len(sel.Features) == 0 {
		_, _ = fmt.Fprintln(out, "Selected: no optional features")
	}
	return sel, nil
}

// formatDefault renders the default hint shown after a question.
func formatDefault(q *Question) string {
	if q.Type == QuestionTypeConfirm {
		if q.DefaultYes() {
			return "[Y/n]"
		}
		return "[y/N]"
	}
	parts := make([]string, 0, len(q.Options))
	for _, o := range q.Options {
		label := o.Label
		if o.Key != "" {
			label = "(" + o.Key + ") " + label
		}
		if o.Value == q.Default {
			label += " [default]"
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " / ")
}
