package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/wallcalc/internal/engine"
	"github.com/piwi3910/wallcalc/internal/model"
)

// tileColor represents an RGB color for a procedural repeat tile.
type tileColor struct {
	R, G, B int
}

// tileShades alternate between neighbouring repeat tiles so the repeat
// boundaries stay visible without the pattern artwork.
var tileShades = []tileColor{
	{R: 232, G: 222, B: 204},
	{R: 214, G: 200, B: 176},
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 10.0
)

// ExportPreviewPDF generates a PDF with a scaled drawing of the strips or
// panels over the wall, followed by an order summary page.
func ExportPreviewPDF(path string, ctx engine.PreviewContext) error {
	if err := checkPlan(ctx); err != nil {
		return err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	// Layout drawing
	pdf.AddPage()
	renderPreviewPage(pdf, ctx)

	// Summary page
	pdf.AddPage()
	renderSummaryPage(pdf, ctx)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write preview pdf: %w", err)
	}
	return nil
}

// renderPreviewPage draws the layout on the current PDF page.
func renderPreviewPage(pdf *fpdf.Fpdf, ctx engine.PreviewContext) {
	plan := ctx.Plan

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, ctx.Title(), "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := ctx.OrderSummary()
	if s := ctx.OverageSummary(); s != "" {
		stats += " | " + s
	}
	stats += fmt.Sprintf(" | Cut length: %s", model.FormatInches(ctx.Result.CutLengthInches()))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Calculate drawing area
	bounds := plan.Bounds()
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight
	// Calculate scale to fit the covered area, wall and shortfall
	scale := math.Min(drawWidth/bounds.Width, drawHeight/bounds.Height)

	// Center the drawing horizontally
	canvasW := bounds.Width * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// toPage maps a plan rectangle in inches onto the page in mm.
	toPage := func(r engine.Rect) (x, y, w, h float64) {
		return offsetX + (r.X-bounds.X)*scale, offsetY + (r.Y-bounds.Y)*scale, r.Width * scale, r.Height * scale
	}

	// Draw strips or panels
	for _, e := range plan.Elements {
		ex, ey, ew, eh := toPage(e.Rect)

		// Repeat tiles, clipped to the strip
		pdf.ClipRect(ex, ey, ew, eh, false)
		for i, tile := range plan.Tiles(e) {
			tx, ty, tw, th := toPage(tile)
			shade := tileShades[(i+e.Index)%len(tileShades)]
			pdf.SetFillColor(shade.R, shade.G, shade.B)
			pdf.Rect(tx, ty, tw, th, "F")
			drawTileMotif(pdf, tx, ty, tw, th)
		}
		pdf.ClipEnd()

		// Strip border
		pdf.SetDrawColor(60, 60, 60)
		pdf.SetLineWidth(0.3)
		pdf.Rect(ex, ey, ew, eh, "D")

		// Strip label (only if rectangle is large enough)
		if ew > 10 {
			pdf.SetFont("Helvetica", "B", labelFontSize(ew, eh))
			pdf.SetTextColor(40, 40, 40)
			labelW := pdf.GetStringWidth(e.Label)
			if labelW < ew-1 {
				pdf.SetXY(ex+(ew-labelW)/2, ey+1)
				pdf.CellFormat(labelW, 4, e.Label, "", 0, "C", false, 0, "")
			}
		}
	}

	// Height the capped panels cannot reach
	if plan.Shortfall != nil {
		sx, sy, sw, sh := toPage(*plan.Shortfall)
		pdf.SetFillColor(255, 200, 200)
		pdf.SetDrawColor(200, 0, 0)
		pdf.SetLineWidth(0.3)
		pdf.Rect(sx, sy, sw, sh, "FD")
		// Draw diagonal hatch lines for visual distinction
		drawHatchPattern(pdf, sx, sy, sw, sh)

		// Label for larger zones
		text := "UNCOVERED " + model.FormatInches(plan.Shortfall.Height)
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetTextColor(180, 0, 0)
		textW := pdf.GetStringWidth(text)
		if sw > textW+2 && sh > 5 {
			pdf.SetXY(sx+(sw-textW)/2, sy+sh/2-2)
			pdf.CellFormat(textW, 4, text, "", 0, "C", false, 0, "")
		}
	}

	// Wall outline, dashed
	wx, wy, ww, wh := toPage(plan.Wall)
	pdf.SetDrawColor(200, 30, 30)
	pdf.SetLineWidth(0.6)
	pdf.SetDashPattern([]float64{2, 1.5}, 0)
	pdf.Rect(wx, wy, ww, wh, "D")
	pdf.SetDashPattern([]float64{}, 0)

	// Dimension annotations along the edges
	cx, cy, cw, ch := toPage(plan.Cover)
	drawDimensionAnnotations(pdf, ctx.Result, cx, cy, cw, ch)

	// Reset text color
	pdf.SetTextColor(0, 0, 0)
}

// drawTileMotif marks the centre of a repeat tile so half-drop offsets read
// clearly in the procedural preview.
func drawTileMotif(pdf *fpdf.Fpdf, x, y, w, h float64) {
	r := math.Min(w, h) / 6
	if r < 0.4 {
		return
	}
	pdf.SetDrawColor(170, 150, 120)
	pdf.SetLineWidth(0.15)
	pdf.Circle(x+w/2, y+h/2, r, "D")
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark an
// uncovered region.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		// Line from bottom-left to top-right diagonal
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)

		pdf.Line(x1, y1, x2, y2)
	}
}

// drawDimensionAnnotations labels the covered width below and the covered
// height to the left of the drawing.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, result model.CalculationResult, x, y, w, h float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	// Width annotation (below the drawing)
	widthLabel := fmt.Sprintf("%s covered (wall %s)", model.FormatInches(result.TotalWidth), model.FormatInches(result.WallWidth))
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(x+(w-wLabelW)/2, y+h+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	// Height annotation (to the left of the drawing, rotated)
	heightLabel := fmt.Sprintf("%s covered (wall %s)", model.FormatInches(result.TotalHeight), model.FormatInches(result.WallHeight))
	pdf.TransformBegin()
	pdf.TransformRotate(90, x-3, y+h/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(x-3-hLabelW/2, y+h/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	// Reset text color
	pdf.SetTextColor(0, 0, 0)
}

// Summary returns the label/value rows of the order summary shared by the
// PDF, the workbook and the command line.
func Summary(ctx engine.PreviewContext) [][2]string {
	r := ctx.Result
	p := ctx.Pattern
	items := [][2]string{
		{"Pattern", p.Name},
		{"SKU", orNA(p.SKU)},
		{"Sold by", r.SaleType.String()},
		{"Wall", fmt.Sprintf("%s w x %s h", ctx.Wall.FormattedWidth(), ctx.Wall.FormattedHeight())},
		{"Covered area", fmt.Sprintf("%s w x %s h", model.FormatInches(r.TotalWidth), model.FormatInches(r.TotalHeight))},
	}
	switch {
	case r.YardLayout != nil:
		y := r.YardLayout
		items = append(items,
			[2]string{"Pattern match", string(y.PatternMatch)},
			[2]string{"Strips needed", fmt.Sprintf("%d", y.StripsNeeded)},
			[2]string{"Strip length", fmt.Sprintf("%s (%d yd)", model.FormatInches(y.StripLengthInches), y.StripLengthYards)},
			[2]string{"Total yardage", fmt.Sprintf("%d yds", y.TotalYardage)},
			[2]string{fmt.Sprintf("With %.0f%% overage", ctx.OveragePercent), fmt.Sprintf("%d yds", y.YardageWithOverage(ctx.OveragePercent))},
		)
	case r.PanelLayout != nil:
		pl := r.PanelLayout
		items = append(items,
			[2]string{"Panels needed", fmt.Sprintf("%d", pl.PanelsNeeded)},
			[2]string{"Panel length", model.FormatInches(pl.ActualPanelLength * model.InchesPerFoot)},
		)
		if pl.CustomLength {
			items = append(items, [2]string{"Length", "custom (no standard length fits)"})
		}
		if pl.ExceedsLimit {
			items = append(items, [2]string{"Uncovered height", model.FormatInches(pl.UncoveredHeight)})
		}
	}
	return items
}

// renderSummaryPage draws the order summary and the cut list.
func renderSummaryPage(pdf *fpdf.Fpdf, ctx engine.PreviewContext) {
	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Wallpaper Order Summary", "", 0, "L", false, 0, "")

	// Separator line
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "", 10)
	// Order statistics
	for _, item := range Summary(ctx) {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item[0]+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(120, 6, item[1], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	// Panel length limit warning
	if pl := ctx.Result.PanelLayout; pl != nil && pl.ExceedsLimit {
		y += 4
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		warning := fmt.Sprintf("WARNING: wall needs %s panels, the maximum is %s. %s of height is not covered.",
			model.FormatInches(pl.IdealPanelLength*model.InchesPerFoot),
			model.FormatInches(engine.MaxPanelLengthFeet*model.InchesPerFoot),
			model.FormatInches(pl.UncoveredHeight))
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 7, warning, "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		y += 8
	}
	// Fallback estimate note
	if ctx.Result.Fallback {
		y += 4
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(150, 100, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 6, "Pattern data is incomplete; quantities are a placeholder estimate.", "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Cut List", "", 0, "L", false, 0, "")
	y += 9

	// Per-strip cut table
	colWidths := []float64{40, 50, 50, 50}
	headers := []string{"#", "Cut Length", "Width", "Pattern Offset"}

	// Table header
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	// Table rows
	pdf.SetFont("Helvetica", "", 9)
	for _, row := range CutList(ctx) {
		// Continue on a new page when full
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}
		// Alternate row background
		if row.Index%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		cells := []string{row.Label, model.FormatInches(row.CutLength), model.FormatInches(row.Width), formatOffset(row.DropOffset)}
		xPos = marginLeft
		for j, cell := range cells {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	footer := "Generated by WallCalc - Wallpaper Requirement Calculator"
	if ctx.ID != "" {
		footer += " | Preview " + ctx.ID
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, footer, "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

func formatOffset(offset float64) string {
	if offset == 0 {
		return "-"
	}
	return "drop " + model.FormatInches(-offset)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
