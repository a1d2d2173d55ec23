// Package export renders wallpaper previews and cut lists to PDF, DXF and
// XLSX files.
package export

import (
	"errors"

	"github.com/piwi3910/wallcalc/internal/engine"
)

// ErrEmptyPlan is returned when a preview has no strips or panels to draw.
var ErrEmptyPlan = errors.New("no strips or panels to export")

func checkPlan(ctx engine.PreviewContext) error {
	if len(ctx.Plan.Elements) == 0 {
		return ErrEmptyPlan
	}
	return nil
}

// CutRow describes one strip or panel to cut.
type CutRow struct {
	Index      int     `json:"-"`
	Label      string  `json:"label"`
	SKU        string  `json:"sku,omitempty"`
	CutLength  float64 `json:"cut_in"`
	Width      float64 `json:"width_in"`
	DropOffset float64 `json:"drop_in,omitempty"` // Negative when the pattern starts higher on this strip
}

// CutList returns one row per strip or panel in hanging order.
func CutList(ctx engine.PreviewContext) []CutRow {
	cut := ctx.Result.CutLengthInches()
	rows := make([]CutRow, len(ctx.Plan.Elements))
	for i, e := range ctx.Plan.Elements {
		rows[i] = CutRow{
			Index:      e.Index,
			Label:      e.Label,
			SKU:        ctx.Pattern.SKU,
			CutLength:  cut,
			Width:      e.Rect.Width,
			DropOffset: e.DropOffset,
		}
	}
	return rows
}
