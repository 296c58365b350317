package ui

import "os"

// ThemeConfig selects the palette.
type ThemeConfig struct {
	NoColor bool
	Mode    string // "dark" or "light"
}

// Colors holds the hex colors of a palette.
type Colors struct {
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Muted     string
}

// Theme is the resolved palette shared by CLI output and progress displays.
type Theme struct {
	NoColor bool
	Colors  Colors
}

var (
	darkColors = Colors{
		Primary:   "#F26B3A",
		Secondary: "#7B61FF",
		Success:   "#3FB950",
		Warning:   "#D29922",
		Error:     "#F85149",
		Muted:     "#8B949E",
	}
	lightColors = Colors{
		Primary:   "#C2410C",
		Secondary: "#5B3FD9",
		Success:   "#1A7F37",
		Warning:   "#9A6700",
		Error:     "#CF222E",
		Muted:     "#57606A",
	}
)

// NewTheme resolves cfg into a Theme. The NO_COLOR environment variable
// disables color regardless of cfg.
func NewTheme(cfg ThemeConfig) *Theme {
	colors := darkColors
	if cfg.Mode == "light" {
		colors = lightColors
	}
	return &Theme{
		NoColor: cfg.NoColor || os.Getenv("NO_COLOR") != "",
		Colors:  colors,
	}
}
