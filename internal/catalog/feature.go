package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Position is the pipeline slot a feature's middleware is piped into.
type Position string

const (
	// PositionFirst places middleware right behind the outermost error handler.
	PositionFirst Position = "first"
	// PositionEarly places middleware before routing.
	PositionEarly Position = "early"
	// PositionAfterRouting places middleware between routing and dispatch.
	PositionAfterRouting Position = "after-routing"
)

// Positions returns all positions in pipeline (top-to-bottom) order.
func Positions() []Position {
	return []Position{PositionFirst, PositionEarly, PositionAfterRouting}
}

// IsValid reports whether p is a known position.
func (p Position) IsValid() bool {
	switch p {
	case PositionFirst, PositionEarly, PositionAfterRouting:
		return true
	}
	return false
}

// Package is one composer requirement contributed by a feature group.
type Package struct {
	Name    string
	Version string
}

// FeatureGroup is one optional installable capability: composer packages,
// an optional config file, and optional provider and middleware wiring.
type FeatureGroup struct {
	Key            string
	Group          string
	Prompt         string
	Description    string
	Default        bool
	Packages       []Package
	ConfigTemplate string
	Provider       Symbol
	Middleware     Symbol
	Position       Position
	Dev            bool
}

// HasProvider reports whether the group registers a config provider.
func (g FeatureGroup) HasProvider() bool {
	return !g.Provider.IsZero()
}

// HasMiddleware reports whether the group pipes a middleware.
func (g FeatureGroup) HasMiddleware() bool {
	return !g.Middleware.IsZero()
}

// Comment returns the one-line description written above the group's
// middleware in the pipeline file.
func (g FeatureGroup) Comment() string {
	if g.Description != "" {
		return g.Description
	}
	return g.Key
}

// RequireSection returns the manifest section the group's packages go to.
func (g FeatureGroup) RequireSection() string {
	if g.Dev {
		return "require-dev"
	}
	return "require"
}

// GroupTitle turns a group label such as "error-handling" into
// "Error Handling" for prompts and listings.
func GroupTitle(group string) string {
	if group == "" {
		return "General"
	}
	return cases.Title(language.English).String(strings.NewReplacer("-", " ", "_", " ").Replace(group))
}
