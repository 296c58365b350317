package wizard

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Brand colors shared by the form theme.
const (
	ColorPrimary   = "#F26B3A"
	ColorSecondary = "#7B61FF"
	ColorSuccess   = "#3FB950"
	ColorError     = "#F85149"
	ColorText      = "#E6EDF3"
	ColorMuted     = "#8B949E"
	ColorBorder    = "#30363D"
)

// FormPrompter asks each question as its own huh form. It needs a terminal.
// Each question runs as an independent form to avoid the huh v0.8.x
// YOffset scroll bug that occurs when groups share one viewport.
type FormPrompter struct {
	theme *huh.Theme
}

// NewFormPrompter creates a FormPrompter with the installer theme.
func NewFormPrompter() *FormPrompter {
	return &FormPrompter{theme: newInstallerTheme()}
}

// Ask runs a form for q. Ctrl-C returns ErrCancelled.
func (p *FormPrompter) Ask(q *Question) (string, error) {
	var field huh.Field
	var answer func() string

	switch q.Type {
	case QuestionTypeSelect:
		selected := q.Default
		opts := make([]huh.Option[string], len(q.Options))
		for i, o := range q.Options {
			key := o.Label
			if o.Desc != "" {
				key = o.Label + " - " + o.Desc
			}
			opts[i] = huh.NewOption(key, o.Value)
		}
		field = huh.NewSelect[string]().
			Title(q.Title).
			Description(q.Description).
			Options(opts...).
			Value(&selected)
		answer = func() string { return selected }
	default:
		confirmed := q.DefaultYes()
		field = huh.NewConfirm().
			Title(q.Title).
			Description(q.Description).
			Affirmative("Yes").
			Negative("No").
			Value(&confirmed)
		answer = func() string {
			if confirmed {
				return answerYes
			}
			return answerNo
		}
	}

	g := huh.NewGroup(field)
	if q.Group != "" {
		g = g.Title(q.Group)
	}
	form := huh.NewForm(g).
		WithTheme(p.theme).
		WithAccessible(false)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("wizard error: %w", err)
	}
	return answer(), nil
}

// newInstallerTheme creates a huh.Theme with the installer's colors.
func newInstallerTheme() *huh.Theme {
	t := huh.ThemeBase()

	primary := lipgloss.AdaptiveColor{Light: "#C2410C", Dark: ColorPrimary}
	secondary := lipgloss.AdaptiveColor{Light: "#5B3FD9", Dark: ColorSecondary}
	green := lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: ColorSuccess}
	red := lipgloss.AdaptiveColor{Light: "#CF222E", Dark: ColorError}
	text := lipgloss.AdaptiveColor{Light: "#1F2328", Dark: ColorText}
	muted := lipgloss.AdaptiveColor{Light: "#57606A", Dark: ColorMuted}
	border := lipgloss.AdaptiveColor{Light: "#D0D7DE", Dark: ColorBorder}

	t.Focused.Base = t.Focused.Base.BorderForeground(border)
	t.Focused.Card = t.Focused.Base
	t.Focused.Title = t.Focused.Title.Foreground(primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(red)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(red)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(primary).SetString("▸ ")
	t.Focused.Option = t.Focused.Option.Foreground(text)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(green)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(secondary)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}).
		Background(primary)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(text).
		Background(lipgloss.AdaptiveColor{Light: "#EAEEF2", Dark: "#30363D"})
	t.Focused.Next = t.Focused.FocusedButton

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Card = t.Blurred.Base

	t.Group.Title = t.Focused.Title
	t.Group.Description = t.Focused.Description

	return t
}
