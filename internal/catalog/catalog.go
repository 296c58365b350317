package catalog

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/config"
)

var (
	keyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

	// packagePattern follows composer's package name rules.
	packagePattern = regexp.MustCompile(`^[a-z0-9]([_.-]?[a-z0-9]+)*/[a-z0-9](([_.]|-{1,2})?[a-z0-9]+)*$`)

	// platformPattern matches platform requirements such as php or ext-intl.
	platformPattern = regexp.MustCompile(`^(php(-64bit)?|composer(-plugin)?-api|(ext|lib)-[A-Za-z0-9_.-]+)$`)
)

// Catalog is an ordered, validated and immutable set of feature groups.
// The order defines question order and the precedence of duplicate
// package keys (later groups win).
type Catalog struct {
	groups []FeatureGroup
	index  map[string]int
}

// New validates groups and builds a Catalog from a private copy of them.
func New(groups []FeatureGroup) (*Catalog, error) {
	if err := Validate(groups); err != nil {
		return nil, err
	}

	c := &Catalog{
		groups: make([]FeatureGroup, len(groups)),
		index:  make(map[string]int, len(groups)),
	}
	for i, g := range groups {
		g.Packages = slices.Clone(g.Packages)
		g.Provider = Symbol(strings.TrimPrefix(string(g.Provider), `\`))
		g.Middleware = Symbol(strings.TrimPrefix(string(g.Middleware), `\`))
		c.groups[i] = g
		c.index[g.Key] = i
	}
	return c, nil
}

// Len returns the number of feature groups.
func (c *Catalog) Len() int {
	return len(c.groups)
}

// Groups returns a copy of all feature groups in catalog order.
func (c *Catalog) Groups() []FeatureGroup {
	out := make([]FeatureGroup, len(c.groups))
	for i, g := range c.groups {
		g.Packages = slices.Clone(g.Packages)
		out[i] = g
	}
	return out
}

// Keys returns the feature keys in catalog order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.groups))
	for i, g := range c.groups {
		keys[i] = g.Key
	}
	return keys
}

// Lookup returns the feature group with the given key.
func (c *Catalog) Lookup(key string) (FeatureGroup, bool) {
	i, ok := c.index[key]
	if !ok {
		return FeatureGroup{}, false
	}
	g := c.groups[i]
	g.Packages = slices.Clone(g.Packages)
	return g, true
}

// Select resolves keys to feature groups. The result follows catalog
// order regardless of the order of keys; duplicates collapse.
func (c *Catalog) Select(keys []string) ([]FeatureGroup, error) {
	wanted := make(map[string]bool, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, ok := c.index[k]; !ok {
			return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownFeature, k, strings.Join(c.Keys(), ", "))
		}
		wanted[k] = true
	}

	var selected []FeatureGroup
	for _, g := range c.Groups() {
		if wanted[g.Key] {
			selected = append(selected, g)
		}
	}
	return selected, nil
}

// GroupLabels returns the distinct group labels in order of first appearance.
func (c *Catalog) GroupLabels() []string {
	var labels []string
	for _, g := range c.groups {
		if !slices.Contains(labels, g.Group) {
			labels = append(labels, g.Group)
		}
	}
	return labels
}

// InGroup returns the feature groups carrying the given label, in catalog order.
func (c *Catalog) InGroup(label string) []FeatureGroup {
	var out []FeatureGroup
	for _, g := range c.Groups() {
		if g.Group == label {
			out = append(out, g)
		}
	}
	return out
}

// Validate checks a list of feature groups for well-formedness.
func Validate(groups []FeatureGroup) error {
	var errs []config.ValidationError

	add := func(field, msg string, value any) {
		errs = append(errs, config.ValidationError{
			Field:   field,
			Message: msg,
			Value:   value,
			Wrapped: ErrInvalidCatalog,
		})
	}

	seen := make(map[string]bool, len(groups))
	for i, g := range groups {
		field := fmt.Sprintf("features[%d]", i)
		if g.Key != "" {
			field = "features." + g.Key
		}

		switch {
		case g.Key == "":
			add(field+".key", "required field is empty", nil)
		case !keyPattern.MatchString(g.Key):
			add(field+".key", "keys must be lowercase letters, digits and dashes", g.Key)
		case seen[g.Key]:
			add(field+".key", "duplicate key", g.Key)
		}
		seen[g.Key] = true

		if strings.TrimSpace(g.Prompt) == "" {
			add(field+".prompt", "required field is empty", nil)
		}

		for _, p := range g.Packages {
			if !packagePattern.MatchString(p.Name) && !platformPattern.MatchString(p.Name) {
				add(field+".packages", "invalid package name", p.Name)
			}
			if strings.TrimSpace(p.Version) == "" {
				add(field+".packages."+p.Name, "version constraint is empty", nil)
			}
		}

		if g.ConfigTemplate != "" && (strings.ContainsAny(g.ConfigTemplate, `/\`) || g.ConfigTemplate == "." || g.ConfigTemplate == "..") {
			add(field+".config", "config template must be a plain file name", g.ConfigTemplate)
		}

		for _, sym := range []struct {
			name  string
			value Symbol
		}{{"provider", g.Provider}, {"middleware", g.Middleware}} {
			if _, err := ParseSymbol(string(sym.value)); err != nil {
				add(field+"."+sym.name, "malformed fully-qualified class name", string(sym.value))
			}
		}

		switch {
		case g.HasMiddleware() && !g.Position.IsValid():
			add(field+".position", "middleware requires one of: first, early, after-routing", string(g.Position))
		case !g.HasMiddleware() && g.Position != "":
			add(field+".position", "position is set but no middleware is declared", string(g.Position))
		}
	}

	if len(errs) > 0 {
		return &config.ValidationErrors{Errors: errs}
	}
	return nil
}
