package model

import (
	"sort"
	"strings"
)

// PatternCatalog holds an ordered collection of patterns.
type PatternCatalog struct {
	Patterns []Pattern `json:"patterns" yaml:"patterns"`
}

// NewPatternCatalog creates a catalog from the given patterns, keeping
// their order.
func NewPatternCatalog(patterns ...Pattern) PatternCatalog {
	c := PatternCatalog{Patterns: make([]Pattern, 0, len(patterns))}
	c.Patterns = append(c.Patterns, patterns...)
	return c
}

// Add appends a pattern to the catalog.
func (c *PatternCatalog) Add(p Pattern) {
	c.Patterns = append(c.Patterns, p)
}

// Len returns the number of patterns.
func (c PatternCatalog) Len() int {
	return len(c.Patterns)
}

// FindBySKU returns a pointer to the pattern with the given SKU, or nil.
// SKU matching is case-insensitive.
func (c *PatternCatalog) FindBySKU(sku string) *Pattern {
	sku = strings.TrimSpace(sku)
	for i := range c.Patterns {
		if strings.EqualFold(c.Patterns[i].SKU, sku) {
			return &c.Patterns[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first pattern with the given name, or nil.
func (c *PatternCatalog) FindByName(name string) *Pattern {
	for i := range c.Patterns {
		if c.Patterns[i].Name == name {
			return &c.Patterns[i]
		}
	}
	return nil
}

// Lookup finds a pattern by SKU first, then by exact name.
func (c *PatternCatalog) Lookup(key string) *Pattern {
	if p := c.FindBySKU(key); p != nil {
		return p
	}
	return c.FindByName(key)
}

// Sorted returns a copy of the patterns ordered alphabetically by name.
func (c PatternCatalog) Sorted() []Pattern {
	out := make([]Pattern, len(c.Patterns))
	copy(out, c.Patterns)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// DisplayNames returns "name / sku" entries in alphabetical order for pickers.
func (c PatternCatalog) DisplayNames() []string {
	sorted := c.Sorted()
	names := make([]string, len(sorted))
	for i, p := range sorted {
		names[i] = p.DisplayName()
	}
	return names
}
