package export

import (
	"fmt"

	"github.com/piwi3910/wallcalc/internal/engine"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// DXF layer names used by ExportLayoutDXF.
const (
	LayerStrips    = "STRIPS"
	LayerWall      = "WALL"
	LayerShortfall = "SHORTFALL"
	LayerLabels    = "LABELS"
)

// dxfTextHeight is the label height in drawing units (inches).
const dxfTextHeight = 2.0

// ExportLayoutDXF writes the strip layout as a DXF drawing in inches for
// plotters and cutters. Strips, the wall outline and any uncovered region
// are drawn as closed line rectangles on separate layers. The drawing's Y
// axis points up with the origin at the bottom-left of the covered area.
func ExportLayoutDXF(path string, plan engine.LayoutPlan) error {
	if len(plan.Elements) == 0 {
		return ErrEmptyPlan
	}

	d := dxf.NewDrawing()
	layers := []struct {
		name  string
		color color.ColorNumber
	}{
		{LayerStrips, color.Cyan},
		{LayerWall, color.Red},
		{LayerShortfall, color.Magenta},
		{LayerLabels, dxf.DefaultColor},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.color, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("add layer %s: %w", l.name, err)
		}
	}

	// flip converts a plan y coordinate (down from the top) to drawing y.
	top := plan.Cover.Height
	flip := func(r engine.Rect) engine.Rect {
		return engine.Rect{X: r.X, Y: top - r.Bottom(), Width: r.Width, Height: r.Height}
	}

	for _, e := range plan.Elements {
		if err := drawRect(d, LayerStrips, flip(e.Rect)); err != nil {
			return err
		}
		if err := d.ChangeLayer(LayerLabels); err != nil {
			return err
		}
		r := flip(e.Rect)
		if _, err := d.Text(e.Label, r.X+1, r.Bottom()-dxfTextHeight-1, 0, dxfTextHeight); err != nil {
			return fmt.Errorf("label %s: %w", e.Label, err)
		}
	}

	if err := drawRect(d, LayerWall, flip(plan.Wall)); err != nil {
		return err
	}
	if plan.Shortfall != nil {
		if err := drawRect(d, LayerShortfall, flip(*plan.Shortfall)); err != nil {
			return err
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("write dxf: %w", err)
	}
	return nil
}

// drawRect draws r as four LINE entities on layer.
func drawRect(d *drawing.Drawing, layer string, r engine.Rect) error {
	if err := d.ChangeLayer(layer); err != nil {
		return fmt.Errorf("select layer %s: %w", layer, err)
	}
	corners := [][2]float64{
		{r.X, r.Y},
		{r.Right(), r.Y},
		{r.Right(), r.Bottom()},
		{r.X, r.Bottom()},
	}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return fmt.Errorf("draw line on %s: %w", layer, err)
		}
	}
	return nil
}
