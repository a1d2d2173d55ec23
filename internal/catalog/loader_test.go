package catalog

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/wallcalc/internal/model"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	assert.Equal(t, 8, c.Len())

	meg := c.FindBySKU("W-MEG-RUS")
	require.NotNil(t, meg)
	assert.Equal(t, "Megaflora: Rust", meg.Name)
	assert.Equal(t, model.SaleTypeYard, meg.SaleType)
	assert.Equal(t, model.MatchHalfDrop, meg.PatternMatch)
	assert.Equal(t, 33.5, meg.RepeatHeightInches)
	assert.Equal(t, 27.0, meg.MaterialWidthInches)
	assert.Equal(t, 5.0, meg.MinYardOrder)

	gold := c.FindBySKU("W-WON-GOL")
	require.NotNil(t, gold)
	assert.Equal(t, model.MatchStraight, gold.PatternMatch, "straight match is canonicalized")

	mural := c.FindBySKU("M-GRO-SAG")
	require.NotNil(t, mural)
	assert.Equal(t, model.SaleTypePanel, mural.SaleType)
	assert.Equal(t, []float64{9, 12, 15}, mural.AvailableLengths)

	assert.Empty(t, defaultCatalog.Warnings(), "the built-in catalog should be clean")
}

func TestDefaultReturnsCopies(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	a.Patterns[0].Name = "mutated"

	b, err := Default()
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", b.Patterns[0].Name)
}

func TestCatalogConcurrentAccess(t *testing.T) {
	c := NewCatalog()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := c.Patterns()
			assert.NoError(t, err)
			assert.Equal(t, 8, got.Len())
		}()
	}
	wg.Wait()
}

func TestDecodeJSONArray(t *testing.T) {
	data := []byte(`[
		{"pattern_name": "Test Pattern", "sku": "W-BER-BLA-1-1", "sale_type": "yard",
		 "repeat_width_inches": 27, "repeat_height_inches": 33.5, "material_width_inches": 27,
		 "pattern_match": "half drop", "min_yard_order": 5}
	]`)
	c, warnings, err := DecodeJSON(data)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Equal(t, 1, c.Len())
	assert.True(t, c.Patterns[0].IsHalfDrop())
}

func TestDecodeJSONObjectAppliesDefaults(t *testing.T) {
	data := []byte(`{"patterns": [{"pattern_name": "Mural", "sale_type": "Panel"}]}`)
	c, warnings, err := DecodeJSON(data)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Equal(t, 1, c.Len())
	p := c.Patterns[0]
	assert.Equal(t, model.SaleTypePanel, p.SaleType)
	assert.Equal(t, 54.0, p.PanelWidthInches)
	assert.Equal(t, []float64{9, 12, 15}, p.AvailableLengths)
	assert.Equal(t, 5.0, p.MinYardOrder)
}

func TestDecodeJSONInvalid(t *testing.T) {
	_, _, err := DecodeJSON([]byte(`{"patterns": [`))
	assert.Error(t, err)
}

func TestDecodeYAMLWarnings(t *testing.T) {
	data := []byte(`
- pattern_name: Broken
  sku: B-1
  sale_type: yard
  repeat_height_inches: 0
  material_width_inches: 27
- pattern_name: Odd
  sku: O-1
  sale_type: yard
  repeat_height_inches: 20
  material_width_inches: 20
  pattern_match: diagonal
`)
	c, warnings, err := DecodeYAML(data)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len(), "records with problems are kept")
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "record 1 (B-1)")
	assert.Contains(t, warnings[1], `unknown pattern match "diagonal"`)
	assert.Equal(t, model.MatchStraight, c.Patterns[1].PatternMatch)
}

func TestDecodeYAMLInfiniteValues(t *testing.T) {
	data := []byte(`
- pattern_name: Endless
  sku: E-1
  sale_type: yard
  repeat_height_inches: .inf
  material_width_inches: 27
  min_yard_order: .inf
- pattern_name: Wide
  sku: E-2
  sale_type: panel
  panel_width_inches: .inf
`)
	c, warnings, err := DecodeYAML(data)
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	require.Len(t, warnings, 3)
	assert.Contains(t, warnings[0], "repeat height")
	assert.Contains(t, warnings[1], "minimum order")
	assert.Contains(t, warnings[2], "record 2 (E-2)")
	assert.Equal(t, model.DefaultMinYardOrder, c.Patterns[0].MinYardOrder)
}

func TestDecodeYAMLEmptyAndScalar(t *testing.T) {
	c, warnings, err := DecodeYAML([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 0, c.Len())

	_, _, err = DecodeYAML([]byte("just a string"))
	assert.Error(t, err)
}

func TestWriteAndLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")

	src := model.NewPatternCatalog(model.Pattern{
		Name: "Wonderland: Blue", SKU: "W-WON-BLU", SaleType: model.SaleTypeYard,
		RepeatWidthInches: 27, RepeatHeightInches: 27, MaterialWidthInches: 27,
		PatternMatch: model.MatchStraight, MinYardOrder: 5,
	})
	require.NoError(t, WriteYAML(path, src))

	got, warnings, err := LoadFile(path)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, src.Patterns, got.Patterns)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	txt := filepath.Join(dir, "catalog.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0644))
	_, _, err = LoadFile(txt)
	assert.Error(t, err)
}
