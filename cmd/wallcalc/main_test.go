package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/wallcalc/internal/catalog"
)

// isolate keeps tests away from any wallcalc.yaml on the host.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	return dir
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	return runCLIWithInput(t, "", args...)
}

func runCLIWithInput(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"-log-level", "error"}, args...), strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// ─── Usage ─────────────────────────────────────────────────

func TestRunNoCommand(t *testing.T) {
	isolate(t)
	code, _, stderr := runCLI(t)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "Commands:")
	assert.Contains(t, stderr, "calc")
}

func TestRunUnknownCommand(t *testing.T) {
	isolate(t)
	code, _, stderr := runCLI(t, "frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, `unknown command "frobnicate"`)
}

func TestRunMissingWall(t *testing.T) {
	isolate(t)
	code, _, stderr := runCLI(t, "calc", "-sku", "W-MEG-RUS")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "-width (or -width-ft/-width-in, or -wall-dxf) is required")
}

func TestRunBadDimension(t *testing.T) {
	isolate(t)
	code, _, stderr := runCLI(t, "calc", "-sku", "W-MEG-RUS", "-width", "eight", "-height", "9'")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "-width")
}

func TestRunUnknownPattern(t *testing.T) {
	isolate(t)
	code, _, stderr := runCLI(t, "calc", "-sku", "NOPE", "-width", "96", "-height", "108")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `"NOPE" not found`)
}

func TestRunCommandHelp(t *testing.T) {
	isolate(t)
	code, _, stderr := runCLI(t, "calc", "-h")
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "-sku")
}

func TestRunBadConfig(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: chatty\n"), 0644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", path, "patterns"}, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "log_level")
}

// ─── calc ──────────────────────────────────────────────────

func TestCalcText(t *testing.T) {
	isolate(t)
	code, stdout, stderr := runCLI(t, "calc", "-sku", "W-MEG-RUS", "-width", "8'", "-height", "9'")
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, stdout, "W-MEG-RUS")
	assert.Contains(t, stdout, "Strips needed:")
	assert.Contains(t, stdout, "19 yds")
	assert.Contains(t, stdout, "23 yds", "20% overage from the default config")
}

func TestCalcJSON(t *testing.T) {
	isolate(t)
	code, stdout, stderr := runCLI(t, "calc", "-sku", "w-meg-rus", "-width", "96", "-height", "108", "-json")
	require.Equal(t, 0, code, stderr)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "yard", got["saleType"])
	assert.Equal(t, 4.0, got["stripsNeeded"])
	assert.Equal(t, 167.5, got["stripLengthInches"])
	assert.Equal(t, 19.0, got["totalYardage"])
	assert.Equal(t, 108.0, got["totalWidth"])
	assert.NotContains(t, got, "panelsNeeded")
}

func TestCalcFeetAndInchesFlags(t *testing.T) {
	isolate(t)
	code, want, stderr := runCLI(t, "calc", "-sku", "W-MEG-RUS", "-width", "96", "-height", "102.5", "-json")
	require.Equal(t, 0, code, stderr)

	code, got, stderr := runCLI(t, "calc", "-sku", "W-MEG-RUS",
		"-width-ft", "8", "-height-ft", "8", "-height-in", "6.5", "-json")
	require.Equal(t, 0, code, stderr)
	assert.JSONEq(t, want, got)

	// A dimension string wins over the feet and inches parts of the same side.
	code, got, stderr = runCLI(t, "calc", "-sku", "W-MEG-RUS",
		"-width", "8'", "-width-ft", "20", "-height-ft", "8", "-height-in", "6.5", "-json")
	require.Equal(t, 0, code, stderr)
	assert.JSONEq(t, want, got)
}

func TestCalcNegativeFeetAndInches(t *testing.T) {
	isolate(t)
	code, _, stderr := runCLI(t, "calc", "-sku", "W-MEG-RUS", "-width-ft", "-8", "-height", "9'")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "must not be negative")
}

func TestCalcPanelOverLimit(t *testing.T) {
	isolate(t)
	code, stdout, stderr := runCLI(t, "calc", "-sku", "M-GRO-SAG", "-width", "100", "-height", "404")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Panels needed:")
	assert.Contains(t, stdout, "Warning:")
	assert.Contains(t, stdout, "27'")
}

func TestCalcFromWallDXF(t *testing.T) {
	isolate(t)
	code, _, stderr := runCLI(t, "calc", "-sku", "W-MEG-RUS", "-wall-dxf", "missing.dxf")
	assert.Equal(t, 1, code)
	assert.NotEmpty(t, stderr)
}

// ─── patterns / compare ────────────────────────────────────

func TestPatternsText(t *testing.T) {
	isolate(t)
	code, stdout, stderr := runCLI(t, "patterns")
	require.Equal(t, 0, code, stderr)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Len(t, lines, 9, "header plus the built-in catalog")
	assert.Contains(t, lines[0], "PATTERN / SKU")
	assert.Contains(t, stdout, "Megaflora: Rust / W-MEG-RUS")
	assert.Contains(t, stdout, "M-GRO-SAG")
	assert.Contains(t, stdout, "half drop")
}

func TestPatternsJSONFromCatalogFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "mine.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"pattern_name": "Stripe", "sku": "S-1", "sale_type": "yard",
		 "repeat_width_inches": 27, "repeat_height_inches": 18, "material_width_inches": 27}
	]`), 0644))

	code, stdout, stderr := runCLI(t, "patterns", "-catalog", path, "-json")
	require.Equal(t, 0, code, stderr)

	var got struct {
		Patterns []struct {
			SKU string `json:"sku"`
		} `json:"patterns"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got.Patterns, 1)
	assert.Equal(t, "S-1", got.Patterns[0].SKU)
}

func TestCompare(t *testing.T) {
	isolate(t)
	code, stdout, stderr := runCLI(t, "compare", "-skus", "W-MEG-RUS, M-GRO-SAG", "-width", "96", "-height", "108")
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, stdout, "Wall: 8' w x 9' h")
	assert.Contains(t, stdout, "19 yd")
	assert.Contains(t, stdout, "panels")
}

func TestCompareJSON(t *testing.T) {
	isolate(t)
	code, stdout, stderr := runCLI(t, "compare", "-width", "96", "-height", "108", "-json")
	require.Equal(t, 0, code, stderr)

	var rows []comparisonJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &rows))
	assert.Len(t, rows, 8)
	for _, r := range rows {
		assert.Empty(t, r.Error, r.SKU)
		assert.Positive(t, r.OrderQuantity, r.SKU)
	}
}

func TestCompareUnknownSKU(t *testing.T) {
	isolate(t)
	code, _, _ := runCLI(t, "compare", "-skus", "W-MEG-RUS,NOPE", "-width", "96", "-height", "108")
	assert.Equal(t, 1, code)
}

// ─── exports ───────────────────────────────────────────────

func TestExportCommands(t *testing.T) {
	tests := []struct {
		cmd    string
		file   string
		prefix string
	}{
		{"preview", "p.pdf", "%PDF-"},
		{"labels", "l.pdf", "%PDF-"},
		{"dxf", "w.dxf", "0"},
		{"cutlist", "c.xlsx", "PK"},
	}
	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			dir := isolate(t)
			out := filepath.Join(dir, tt.file)
			code, stdout, stderr := runCLI(t, tt.cmd, "-sku", "W-MEG-RUS", "-width", "96", "-height", "108", "-out", out)
			require.Equal(t, 0, code, stderr)
			assert.Contains(t, stdout, "Wrote "+out)

			data, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(strings.TrimSpace(string(data)), tt.prefix))
		})
	}
}

func TestExportDefaultOutputPath(t *testing.T) {
	dir := isolate(t)
	code, _, stderr := runCLI(t, "cutlist", "-sku", "W-MEG-RUS", "-width", "96", "-height", "108")
	require.Equal(t, 0, code, stderr)
	assert.FileExists(t, filepath.Join(dir, "w-meg-rus-cutlist.xlsx"))
}

// ─── import ────────────────────────────────────────────────

func TestImport(t *testing.T) {
	dir := isolate(t)
	in := filepath.Join(dir, "patterns.csv")
	require.NoError(t, os.WriteFile(in, []byte(
		"Name,SKU,Sale Type,Repeat Width,Repeat Height,Material Width,Match\n"+
			"Trellis,T-1,yard,27,24,27,half drop\n"+
			"Broken,,,,,,\n"), 0644))
	out := filepath.Join(dir, "catalog.yaml")

	code, stdout, stderr := runCLI(t, "import", "-in", in, "-out", out)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Imported 1 patterns (1 rows rejected)")
	assert.Contains(t, stderr, "error:")

	c, warnings, err := catalog.LoadFile(out)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "T-1", c.Patterns[0].SKU)

	code, stdout, stderr = runCLI(t, "calc", "-catalog", out, "-sku", "T-1", "-width", "54", "-height", "96")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Trellis")
}

func TestImportFromStdin(t *testing.T) {
	dir := isolate(t)
	out := filepath.Join(dir, "piped.yaml")
	csv := "Name;SKU;Sale Type;Panel Width;Available Lengths\n" +
		"Grove Mural: Sage;M-GRO-SAG;panel;54;9/12/15\n"

	code, stdout, stderr := runCLIWithInput(t, csv, "import", "-in", "-", "-out", out)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Imported 1 patterns (0 rows rejected)")
	assert.Contains(t, stderr, "Detected semicolon delimiter")

	c, _, err := catalog.LoadFile(out)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, []float64{9, 12, 15}, c.Patterns[0].AvailableLengths)
}

func TestImportFromEmptyStdin(t *testing.T) {
	isolate(t)
	code, _, stderr := runCLIWithInput(t, "", "import", "-in", "-")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "File is empty")
}

func TestImportRequiresInput(t *testing.T) {
	isolate(t)
	code, _, _ := runCLI(t, "import")
	assert.Equal(t, 2, code)
}
