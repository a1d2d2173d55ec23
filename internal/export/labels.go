package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/wallcalc/internal/engine"
	"github.com/piwi3910/wallcalc/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each strip label's QR code.
type LabelInfo struct {
	Preview    string  `json:"preview,omitempty"`
	SKU        string  `json:"sku"`
	Label      string  `json:"label"`
	Number     int     `json:"n"`
	Of         int     `json:"of"`
	CutLength  float64 `json:"cut_in"`
	Width      float64 `json:"width_in"`
	DropOffset float64 `json:"drop_in,omitempty"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportStripLabels generates a PDF of QR-coded labels, one per strip or
// panel, on an Avery 5160 sheet (3 columns x 10 rows on US Letter). Each
// label carries the pattern, the strip number and its cut length; the QR code
// encodes the same data as JSON.
func ExportStripLabels(path string, ctx engine.PreviewContext) error {
	if err := checkPlan(ctx); err != nil {
		return err
	}
	// One label per strip or panel, in hanging order
	labels := CollectLabelInfos(ctx)

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		// Add new page when needed
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		// Grid position on the current sheet
		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label, ctx.Pattern.Name); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Label, err)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write label pdf: %w", err)
	}
	return nil
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo, patternName string) error {
	// Draw light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	// QR payload is the label info as JSON
	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	// Generate QR code PNG bytes
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	// Register QR image with a unique name
	imgName := fmt.Sprintf("qr_%s_%d", info.SKU, info.Number)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	// Place QR code on the right side of the label
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	// Text area (left side of label)
	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Strip number (bold, larger)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, fmt.Sprintf("%s of %d", info.Label, info.Of), "", 1, "L", false, 0, "")

	// Pattern name, truncated if too long
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, truncate(pdf, patternName, textW), "", 1, "L", false, 0, "")

	// Cut length
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3.5, "Cut "+model.FormatInches(info.CutLength), "", 1, "L", false, 0, "")

	// SKU
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+13)
	pdf.CellFormat(textW, 3, orNA(info.SKU), "", 1, "L", false, 0, "")

	// Half-drop indicator
	if info.DropOffset != 0 {
		pdf.SetXY(textX, y+labelPadding+16.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, formatOffset(info.DropOffset), "", 0, "L", false, 0, "")
	}

	// Reset text color
	pdf.SetTextColor(0, 0, 0)

	return nil
}

// truncate shortens s with an ellipsis until it fits in width.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// CollectLabelInfos extracts one label per strip or panel from a preview.
func CollectLabelInfos(ctx engine.PreviewContext) []LabelInfo {
	rows := CutList(ctx)
	labels := make([]LabelInfo, len(rows))
	for i, row := range rows {
		labels[i] = LabelInfo{
			Preview:    ctx.ID,
			SKU:        row.SKU,
			Label:      row.Label,
			Number:     i + 1,
			Of:         len(rows),
			CutLength:  row.CutLength,
			Width:      row.Width,
			DropOffset: row.DropOffset,
		}
	}
	return labels
}
