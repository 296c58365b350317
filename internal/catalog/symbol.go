package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

// symbolPattern matches a PHP fully-qualified class name without the
// leading namespace separator.
var symbolPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\\[A-Za-z_][A-Za-z0-9_]*)*$`)

// Symbol is a validated fully-qualified PHP class name, stored without a
// leading backslash.
type Symbol string

// ParseSymbol validates s and returns it as a Symbol. An empty string
// yields the zero Symbol and no error.
func ParseSymbol(s string) (Symbol, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	trimmed := strings.TrimPrefix(s, `\`)
	if !symbolPattern.MatchString(trimmed) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSymbol, s)
	}
	return Symbol(trimmed), nil
}

// IsZero reports whether no symbol is set.
func (s Symbol) IsZero() bool {
	return s == ""
}

// String returns the class name without a leading backslash.
func (s Symbol) String() string {
	return string(s)
}

// ClassConstant renders the symbol as a PHP class-name constant
// expression, e.g. `\Mezzio\Cors\ConfigProvider::class`.
func (s Symbol) ClassConstant() string {
	return `\` + string(s) + "::class"
}
