package export

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/wallcalc/internal/engine"
)

// readDXF returns the LINE and TEXT entities of a drawing.
func readDXF(t *testing.T, path string) ([]*entity.Line, []*entity.Text) {
	t.Helper()
	d, err := dxf.Open(path)
	require.NoError(t, err)

	var lines []*entity.Line
	var texts []*entity.Text
	for _, e := range d.Entities() {
		switch v := e.(type) {
		case *entity.Line:
			lines = append(lines, v)
		case *entity.Text:
			texts = append(texts, v)
		}
	}
	return lines, texts
}

func TestExportLayoutDXF_Strips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.dxf")
	ctx := halfDropPreview(t)

	require.NoError(t, ExportLayoutDXF(path, ctx.Plan))

	lines, texts := readDXF(t, path)
	// Four strips plus the wall outline, four lines each
	assert.Len(t, lines, 4*5)
	assert.Len(t, texts, 4)

	// Drawing spans the covered area, Y up from the bottom edge
	var maxX, maxY float64
	for _, l := range lines {
		maxX = max(maxX, l.Start[0], l.End[0])
		maxY = max(maxY, l.Start[1], l.End[1])
	}
	assert.InDelta(t, 108, maxX, 1e-6)
	assert.InDelta(t, 167.5, maxY, 1e-6)
}

func TestExportLayoutDXF_Shortfall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panels.dxf")
	ctx := cappedPanelPreview(t)

	require.NoError(t, ExportLayoutDXF(path, ctx.Plan))

	lines, _ := readDXF(t, path)
	// Two panels, the wall and the uncovered region
	assert.Len(t, lines, 4*4)

	var maxY float64
	for _, l := range lines {
		maxY = max(maxY, l.Start[1], l.End[1])
	}
	assert.InDelta(t, ctx.Result.TotalHeight+108, maxY, 1e-6, "shortfall sits above the panels")
}

func TestExportLayoutDXF_EmptyPlan(t *testing.T) {
	err := ExportLayoutDXF(filepath.Join(t.TempDir(), "empty.dxf"), engine.LayoutPlan{})
	assert.True(t, errors.Is(err, ErrEmptyPlan))
}
