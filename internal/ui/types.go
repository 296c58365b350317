// Package ui provides the terminal progress display used while the
// installer runs, with a plain-text fallback when no terminal is attached.
package ui

// Progress creates progress displays.
type Progress interface {
	// Start creates a determinate progress bar with total steps.
	Start(title string, total int) ProgressBar
}

// ProgressBar tracks completion of a fixed number of steps.
type ProgressBar interface {
	// Increment advances the bar by n steps.
	Increment(n int)
	// SetTitle changes the line shown next to the bar.
	SetTitle(title string)
	// Done completes the bar and releases the terminal. Safe to call twice.
	Done()
}
