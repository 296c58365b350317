// Package wizard asks the installer's questions: the architecture first,
// then one yes/no question per feature group, grouped by the group label
// in catalog order. Answers come from a Prompter: a line-based console
// prompter, a huh form prompter for terminals, or a preset prompter for
// non-interactive runs.
package wizard

import "errors"

// QuestionType represents the type of wizard question.
type QuestionType int

const (
	// QuestionTypeSelect is a single-choice selection question.
	QuestionTypeSelect QuestionType = iota
	// QuestionTypeConfirm is a yes/no question.
	QuestionTypeConfirm
)

// ArchitectureID is the ID of the architecture question.
const ArchitectureID = "architecture"

// Question defines a single wizard question.
type Question struct {
	ID          string       // Feature key, or ArchitectureID
	Type        QuestionType // Select or Confirm
	Group       string       // Display title of the question group
	Title       string       // Question text
	Description string       // Additional description
	Options     []Option     // Options for select questions
	Default     string       // Option value, or "yes"/"no" for confirm questions
}

// DefaultYes reports whether a confirm question defaults to yes.
func (q *Question) DefaultYes() bool {
	return q.Default == answerYes
}

// Option represents a selectable option.
type Option struct {
	Label string // Display label
	Value string // Actual value stored
	Key   string // Shortcut accepted by the line prompter
	Desc  string // Optional description
}

const (
	answerYes = "yes"
	answerNo  = "no"
)

// Error definitions for the wizard package.
var (
	// ErrCancelled is returned when the user cancels the wizard.
	ErrCancelled = errors.New("wizard cancelled by user")
	// ErrNoQuestions is returned when no questions are provided.
	ErrNoQuestions = errors.New("no questions provided")
)
