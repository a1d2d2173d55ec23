package model

import "math"

// DefaultDisplayOveragePercent is the extra margin shown next to the
// billable yardage as a "with overage" recommendation.
const DefaultDisplayOveragePercent = 20.0

// YardLayout holds the strip plan for a yard-sold pattern.
type YardLayout struct {
	StripsNeeded      int          `json:"stripsNeeded"`
	StripLengthInches float64      `json:"stripLengthInches"` // Cut length per strip
	StripLengthYards  int          `json:"stripLengthYards"`  // Cut length per strip, whole yards rounded up
	RepeatsNeeded     int          `json:"repeatsNeeded"`     // Vertical repeats per strip, half-drop margin included
	TotalYardageRaw   float64      `json:"totalYardageRaw"`   // Unrounded linear yards
	TotalYardage      int          `json:"totalYardage"`      // Billable yards, rounded up and floored at the minimum order
	PatternMatch      PatternMatch `json:"patternMatch"`
}

// YardageWithOverage returns the billable yardage inflated by percent and
// rounded up to a whole yard.
func (y YardLayout) YardageWithOverage(percent float64) int {
	if percent <= 0 {
		return y.TotalYardage
	}
	return int(math.Ceil(float64(y.TotalYardage) * (1 + percent/100.0)))
}

// PanelLayout holds the panel plan for a panel-sold pattern.
type PanelLayout struct {
	PanelsNeeded      int     `json:"panelsNeeded"`
	PanelLength       float64 `json:"panelLength"` // feet, equal to ActualPanelLength
	ExceedsLimit      bool    `json:"exceedsLimit"`
	IdealPanelLength  float64 `json:"idealPanelLength"`  // feet, before the manufacturing cap
	ActualPanelLength float64 `json:"actualPanelLength"` // feet, after the manufacturing cap
	UncoveredHeight   float64 `json:"uncoveredHeight"`   // inches lost to the cap
	CustomLength      bool    `json:"customLength"`      // no standard length was long enough
}

// CalculationResult is the output of one requirement calculation. Exactly
// one of YardLayout or PanelLayout is set; their fields are flattened into
// the top-level JSON object.
type CalculationResult struct {
	SaleType    SaleType `json:"saleType"`
	WallWidth   float64  `json:"wallWidth"`   // Original wall width, inches
	WallHeight  float64  `json:"wallHeight"`  // Original wall height, inches
	TotalWidth  float64  `json:"totalWidth"`  // Covered width, inches
	TotalHeight float64  `json:"totalHeight"` // Covered height, inches
	Fallback    bool     `json:"fallback,omitempty"`

	*YardLayout
	*PanelLayout
}

// IsYard reports whether the result carries a strip plan.
func (r CalculationResult) IsYard() bool {
	return r.YardLayout != nil
}

// IsPanel reports whether the result carries a panel plan.
func (r CalculationResult) IsPanel() bool {
	return r.PanelLayout != nil
}

// ElementCount returns the number of strips or panels.
func (r CalculationResult) ElementCount() int {
	switch {
	case r.YardLayout != nil:
		return r.YardLayout.StripsNeeded
	case r.PanelLayout != nil:
		return r.PanelLayout.PanelsNeeded
	default:
		return 0
	}
}

// ElementLabel returns "Strip" for yard layouts and "Panel" otherwise.
func (r CalculationResult) ElementLabel() string {
	if r.YardLayout != nil {
		return "Strip"
	}
	return "Panel"
}

// OrderQuantity returns the billable quantity and its unit: yards for yard
// layouts, panels for panel layouts.
func (r CalculationResult) OrderQuantity() (float64, string) {
	switch {
	case r.YardLayout != nil:
		return float64(r.YardLayout.TotalYardage), "yd"
	case r.PanelLayout != nil:
		return float64(r.PanelLayout.PanelsNeeded), "panels"
	default:
		return 0, ""
	}
}

// CutLengthInches returns the length of each strip or panel in inches.
func (r CalculationResult) CutLengthInches() float64 {
	switch {
	case r.YardLayout != nil:
		return r.YardLayout.StripLengthInches
	case r.PanelLayout != nil:
		return r.PanelLayout.ActualPanelLength * InchesPerFoot
	default:
		return 0
	}
}
