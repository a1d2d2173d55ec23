package model

import (
	"fmt"
	"strings"
)

// SaleType determines which calculation path applies to a pattern.
type SaleType string

const (
	SaleTypeYard  SaleType = "yard"  // Sold by the linear yard off a fixed-width roll
	SaleTypePanel SaleType = "panel" // Sold as pre-cut panels in standard lengths
)

func (s SaleType) String() string {
	if s == "" {
		return "unknown"
	}
	return string(s)
}

// PatternMatch governs the vertical alignment between adjacent strips.
type PatternMatch string

const (
	MatchStraight PatternMatch = "straight"  // Strips hang level with each other
	MatchHalfDrop PatternMatch = "half drop" // Every other strip drops half a repeat
)

// ParsePatternMatch converts a catalog value to a PatternMatch.
// Unrecognized and empty values fall back to straight; ok reports whether
// the input was recognized.
func ParsePatternMatch(s string) (PatternMatch, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "half drop", "half-drop", "halfdrop", "half_drop", "drop":
		return MatchHalfDrop, true
	case "straight", "straight match", "straight-match", "straight_match":
		return MatchStraight, true
	case "":
		return MatchStraight, true
	default:
		return MatchStraight, false
	}
}

// ParseSaleType converts a catalog value to a SaleType.
// Unknown values are returned verbatim (lowercased) so the router can send
// them down the panel path.
func ParseSaleType(s string) SaleType {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "yard", "yards", "yd":
		return SaleTypeYard
	case "panel", "panels":
		return SaleTypePanel
	default:
		return SaleType(v)
	}
}

// Pattern-level defaults applied when a catalog record omits a field.
const (
	DefaultMinYardOrder     = 5.0
	DefaultPanelWidthInches = 54.0
)

// DefaultAvailableLengths are the standard panel lengths in feet.
var DefaultAvailableLengths = []float64{9, 12, 15}

// Pattern describes a wallpaper design and its physical repeat.
// Treat a loaded Pattern as immutable.
type Pattern struct {
	Name                string       `json:"pattern_name" yaml:"pattern_name"`
	SKU                 string       `json:"sku" yaml:"sku"`
	SaleType            SaleType     `json:"sale_type" yaml:"sale_type"`
	RepeatWidthInches   float64      `json:"repeat_width_inches" yaml:"repeat_width_inches"`
	RepeatHeightInches  float64      `json:"repeat_height_inches" yaml:"repeat_height_inches"`
	MaterialWidthInches float64      `json:"material_width_inches,omitempty" yaml:"material_width_inches,omitempty"`
	PanelWidthInches    float64      `json:"panel_width_inches,omitempty" yaml:"panel_width_inches,omitempty"`
	AvailableLengths    []float64    `json:"available_lengths,omitempty" yaml:"available_lengths,omitempty"` // feet, ascending
	PatternMatch        PatternMatch `json:"pattern_match" yaml:"pattern_match"`
	MinYardOrder        float64      `json:"min_yard_order,omitempty" yaml:"min_yard_order,omitempty"`
	ImageURL            string       `json:"repeat_url,omitempty" yaml:"repeat_url,omitempty"` // not used by the calculator
}

// NormalizePattern returns a copy of p with every recognized default applied
// and the sale type and pattern match canonicalized. Loaders call this once;
// the calculator does not depend on it having been called.
func NormalizePattern(p Pattern) Pattern {
	out := p
	out.Name = strings.TrimSpace(p.Name)
	out.SKU = strings.TrimSpace(p.SKU)
	out.SaleType = ParseSaleType(string(p.SaleType))
	out.PatternMatch, _ = ParsePatternMatch(string(p.PatternMatch))
	if !IsUsableLength(out.MinYardOrder) {
		out.MinYardOrder = DefaultMinYardOrder
	}
	if out.SaleType == SaleTypePanel {
		if out.PanelWidthInches <= 0 {
			out.PanelWidthInches = DefaultPanelWidthInches
		}
		if len(out.AvailableLengths) == 0 {
			out.AvailableLengths = append([]float64(nil), DefaultAvailableLengths...)
		}
	}
	if len(p.AvailableLengths) > 0 {
		out.AvailableLengths = append([]float64(nil), p.AvailableLengths...)
	}
	return out
}

// EffectiveMinYardOrder returns the billable minimum, defaulting to 5 yards.
func (p Pattern) EffectiveMinYardOrder() float64 {
	if IsUsableLength(p.MinYardOrder) {
		return p.MinYardOrder
	}
	return DefaultMinYardOrder
}

// EffectivePatternMatch returns the canonical pattern match for p.
func (p Pattern) EffectivePatternMatch() PatternMatch {
	m, _ := ParsePatternMatch(string(p.PatternMatch))
	return m
}

// IsHalfDrop reports whether adjacent strips are offset by half a repeat.
func (p Pattern) IsHalfDrop() bool {
	return p.EffectivePatternMatch() == MatchHalfDrop
}

// ElementWidth returns the width of one strip or panel in inches, or 0 when
// the relevant geometry is missing.
func (p Pattern) ElementWidth() float64 {
	if p.SaleType == SaleTypeYard {
		return p.MaterialWidthInches
	}
	return p.PanelWidthInches
}

// DisplayName returns "name / sku" when a SKU is present, else just the name.
func (p Pattern) DisplayName() string {
	if p.SKU == "" {
		return p.Name
	}
	return fmt.Sprintf("%s / %s", p.Name, p.SKU)
}

// Validate returns human-readable problems with the pattern's geometry.
// A pattern with problems can still be calculated; the calculator will
// substitute its documented fallback result.
func (p Pattern) Validate() []string {
	var problems []string
	if p.Name == "" && p.SKU == "" {
		problems = append(problems, "pattern has neither a name nor a SKU")
	}
	switch p.SaleType {
	case SaleTypeYard:
		if !IsUsableLength(p.RepeatHeightInches) {
			problems = append(problems, "repeat height must be a positive, finite number for yard patterns")
		}
		if !IsUsableLength(p.MaterialWidthInches) {
			problems = append(problems, "material width must be a positive, finite number for yard patterns")
		}
		if p.MinYardOrder != 0 && !IsUsableLength(p.MinYardOrder) {
			problems = append(problems, "minimum order must be a positive, finite number")
		}
	case SaleTypePanel:
		if !IsUsableLength(p.PanelWidthInches) {
			problems = append(problems, "panel width must be a positive, finite number for panel patterns")
		}
		for i, l := range p.AvailableLengths {
			if !IsUsableLength(l) {
				problems = append(problems, fmt.Sprintf("available length #%d must be a positive, finite number", i+1))
			}
			if i > 0 && l < p.AvailableLengths[i-1] {
				problems = append(problems, "available lengths must be in ascending order")
				break
			}
		}
	case "":
		problems = append(problems, "sale type is missing")
	default:
		problems = append(problems, fmt.Sprintf("unknown sale type %q, treated as panel", string(p.SaleType)))
	}
	if _, ok := ParsePatternMatch(string(p.PatternMatch)); !ok {
		problems = append(problems, fmt.Sprintf("unknown pattern match %q, treated as straight", string(p.PatternMatch)))
	}
	return problems
}
