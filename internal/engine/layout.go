package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/wallcalc/internal/model"
)

// maxTilesPerElement bounds procedural tiling for degenerate repeat sizes.
const maxTilesPerElement = 5000

// Rect is an axis-aligned rectangle in inches. Y grows downward from the
// top edge of the covered area.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	x := math.Min(r.X, o.X)
	y := math.Min(r.Y, o.Y)
	return Rect{
		X:      x,
		Y:      y,
		Width:  math.Max(r.Right(), o.Right()) - x,
		Height: math.Max(r.Bottom(), o.Bottom()) - y,
	}
}

// Element is one strip or panel in the layout.
type Element struct {
	Index      int     `json:"index"`
	Label      string  `json:"label"` // "Strip 1", "Panel 2", ...
	Rect       Rect    `json:"rect"`
	DropOffset float64 `json:"drop_offset"` // Vertical tile shift; -repeat/2 on odd half-drop strips
}

// LayoutPlan is the geometry a renderer needs to draw the preview, derived
// only from the pattern and the calculation result.
type LayoutPlan struct {
	SaleType     model.SaleType `json:"sale_type"`
	Cover        Rect           `json:"cover"` // Covered area, origin at 0,0
	Wall         Rect           `json:"wall"`  // Wall outline centered in the covered area
	Shortfall    *Rect          `json:"shortfall,omitempty"`
	RepeatWidth  float64        `json:"repeat_width"`
	RepeatHeight float64        `json:"repeat_height"`
	HalfDrop     bool           `json:"half_drop"`
	Elements     []Element      `json:"elements"`
}

// PlanLayout lays out strips or panels edge to edge across the covered area.
func PlanLayout(pattern model.Pattern, result model.CalculationResult) LayoutPlan {
	plan := LayoutPlan{
		SaleType:     result.SaleType,
		Cover:        Rect{Width: result.TotalWidth, Height: result.TotalHeight},
		HalfDrop:     pattern.IsHalfDrop(),
	}
	if model.IsUsableLength(pattern.RepeatWidthInches) {
		plan.RepeatWidth = pattern.RepeatWidthInches
	}
	if model.IsUsableLength(pattern.RepeatHeightInches) {
		plan.RepeatHeight = pattern.RepeatHeightInches
	}
	plan.Wall = Rect{
		X:      (result.TotalWidth - result.WallWidth) / 2,
		Y:      (result.TotalHeight - result.WallHeight) / 2,
		Width:  result.WallWidth,
		Height: result.WallHeight,
	}

	count := result.ElementCount()
	if count == 0 {
		return plan
	}
	elementWidth := result.TotalWidth / float64(count)
	label := result.ElementLabel()

	plan.Elements = make([]Element, count)
	for i := 0; i < count; i++ {
		e := Element{
			Index: i,
			Label: fmt.Sprintf("%s %d", label, i+1),
			Rect: Rect{
				X:      float64(i) * elementWidth,
				Width:  elementWidth,
				Height: result.TotalHeight,
			},
		}
		if plan.HalfDrop && i%2 == 1 && plan.RepeatHeight > 0 {
			e.DropOffset = -plan.RepeatHeight / 2
		}
		plan.Elements[i] = e
	}

	if result.PanelLayout != nil && result.PanelLayout.ExceedsLimit && result.PanelLayout.UncoveredHeight > 0 {
		// Drawn directly above the capped panels.
		plan.Shortfall = &Rect{
			X:      0,
			Y:      -result.PanelLayout.UncoveredHeight,
			Width:  result.TotalWidth,
			Height: result.PanelLayout.UncoveredHeight,
		}
	}
	return plan
}

// Bounds returns the rectangle enclosing the covered area, the wall and any
// shortfall region.
func (p LayoutPlan) Bounds() Rect {
	b := p.Cover.Union(p.Wall)
	if p.Shortfall != nil {
		b = b.Union(*p.Shortfall)
	}
	return b
}

// Tiles returns the repeat tiles that intersect element e, unclipped.
// Each strip restarts the pattern at its own left edge; half-drop strips
// start half a repeat higher.
func (p LayoutPlan) Tiles(e Element) []Rect {
	tw, th := p.RepeatWidth, p.RepeatHeight
	if tw <= 0 {
		tw = e.Rect.Width
	}
	if th <= 0 {
		th = e.Rect.Height
	}
	if tw <= 0 || th <= 0 {
		return nil
	}
	cols := int(math.Ceil(e.Rect.Width / tw))
	rows := int(math.Ceil((e.Rect.Height - e.DropOffset) / th))
	if cols*rows > maxTilesPerElement {
		return []Rect{e.Rect}
	}

	tiles := make([]Rect, 0, cols*rows)
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			tiles = append(tiles, Rect{
				X:      e.Rect.X + float64(c)*tw,
				Y:      e.Rect.Y + e.DropOffset + float64(r)*th,
				Width:  tw,
				Height: th,
			})
		}
	}
	return tiles
}

// PreviewContext bundles everything a renderer consumes for one preview.
// It is built once per calculation and never mutated.
type PreviewContext struct {
	ID             string                  `json:"id"`
	Pattern        model.Pattern           `json:"pattern"`
	Wall           model.WallSpec          `json:"wall"`
	Result         model.CalculationResult `json:"result"`
	Plan           LayoutPlan              `json:"plan"`
	OveragePercent float64                 `json:"overage_percent"`
}

// NewPreviewContext plans the layout for result and bundles it with its inputs.
func NewPreviewContext(id string, pattern model.Pattern, wall model.WallSpec, result model.CalculationResult, overagePercent float64) PreviewContext {
	return PreviewContext{
		ID:             id,
		Pattern:        pattern,
		Wall:           wall,
		Result:         result,
		Plan:           PlanLayout(pattern, result),
		OveragePercent: overagePercent,
	}
}

// Title returns the preview heading.
func (pc PreviewContext) Title() string {
	return pc.Wall.Title(pc.Pattern)
}

// OrderSummary returns the billable line shown under the preview, e.g.
// "Total yardage: 19 yds" or "6 panels at 12'".
func (pc PreviewContext) OrderSummary() string {
	r := pc.Result
	switch {
	case r.YardLayout != nil:
		return fmt.Sprintf("Total yardage: %d yds", r.YardLayout.TotalYardage)
	case r.PanelLayout != nil:
		return fmt.Sprintf("%d panels at %s", r.PanelLayout.PanelsNeeded, model.FormatInches(r.PanelLayout.ActualPanelLength*model.InchesPerFoot))
	default:
		return ""
	}
}

// OverageSummary returns the "with overage" yardage line for yard layouts,
// or an empty string.
func (pc PreviewContext) OverageSummary() string {
	if pc.Result.YardLayout == nil {
		return ""
	}
	return fmt.Sprintf("Total yardage with %.0f%% overage: %d yds",
		pc.OveragePercent, pc.Result.YardLayout.YardageWithOverage(pc.OveragePercent))
}
