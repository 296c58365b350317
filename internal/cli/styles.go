package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CLI styles shared by all commands.
var (
	cliSuccess = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"})
	cliWarn    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"})
	cliError   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"})
	cliMuted   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"})
	cliPrimary = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: "#DA7756"})
	cliBorder  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"})
)

func symSuccess() string { return cliSuccess.Render("✓") }
func symError() string   { return cliError.Render("✗") }
func symWarning() string { return cliWarn.Render("!") }

// kvPair is one label/value row of a card.
type kvPair struct {
	key   string
	value string
}

// renderKeyValueLines aligns pairs on the widest key.
func renderKeyValueLines(pairs []kvPair) string {
	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p.key))
	}

	lines := make([]string, 0, len(pairs))
	for _, p := range pairs {
		key := cliMuted.Render(fmt.Sprintf("%-*s", width, p.key))
		lines = append(lines, key+"  "+p.value)
	}
	return strings.Join(lines, "\n")
}

// renderSuccessCard draws a rounded box headed by a check mark and title.
func renderSuccessCard(title string, details ...string) string {
	return renderCard(symSuccess()+" "+cliSuccess.Bold(true).Render(title), details...)
}

// renderWarningCard draws a rounded box headed by a warning sign.
func renderWarningCard(title string, details ...string) string {
	return renderCard(symWarning()+" "+cliWarn.Bold(true).Render(title), details...)
}

func renderCard(header string, details ...string) string {
	body := header
	if len(details) > 0 {
		body += "\n\n" + strings.Join(details, "\n")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cliBorder.GetForeground()).
		Padding(0, 2).
		Render(body)
}
