package wizard

import (
	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/catalog"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/pkg/models"
)

// ArchitectureQuestion returns the architecture choice question.
func ArchitectureQuestion() Question {
	return Question{
		ID:          ArchitectureID,
		Type:        QuestionTypeSelect,
		Group:       "Architecture",
		Title:       "Which architecture do you want to use?",
		Description: "Flat keeps one App module; layered splits code into a shared kernel and bounded-context modules.",
		Options: []Option{
			{
				Label: models.ArchFlat.Label(),
				Value: string(models.ArchFlat),
				Key:   "f",
				Desc:  "single App module",
			},
			{
				Label: models.ArchLayered.Label(),
				Value: string(models.ArchLayered),
				Key:   "l",
				Desc:  "Core, Article and HealthCheck modules",
			},
		},
		Default: string(models.DefaultArchitecture),
	}
}

// Questions builds the full question list for cat: the architecture
// question, then one confirm question per feature group, grouped by
// group label in the order the labels first appear in the catalog.
func Questions(cat *catalog.Catalog) []Question {
	questions := []Question{ArchitectureQuestion()}
	for _, label := range cat.GroupLabels() {
		for _, g := range cat.InGroup(label) {
			def := answerNo
			if g.Default {
				def = answerYes
			}
			questions = append(questions, Question{
				ID:          g.Key,
				Type:        QuestionTypeConfirm,
				Group:       catalog.GroupTitle(label),
				Title:       g.Prompt,
				Description: g.Description,
				Default:     def,
			})
		}
	}
	return questions
}
