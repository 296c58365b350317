package models

import (
	"slices"
	"strings"
)

// Selection is the outcome of the prompt stage: the architecture and the
// keys of the accepted feature groups in catalog order.
type Selection struct {
	Architecture Architecture
	Features     []string
}

// Has reports whether the feature key was selected.
func (s Selection) Has(key string) bool {
	return slices.Contains(s.Features, key)
}

// ParseYesNo maps a raw console answer to a boolean. An empty answer
// yields def; an answer starting with y or n (case-insensitive) yields
// true or false; anything else yields def.
func ParseYesNo(answer string, def bool) bool {
	a := strings.ToLower(strings.TrimSpace(answer))
	switch {
	case a == "":
		return def
	case strings.HasPrefix(a, "y"):
		return true
	case strings.HasPrefix(a, "n"):
		return false
	}
	return def
}
