// Package importer provides CSV and Excel import functionality for pattern
// catalogs. It supports automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/wallcalc/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Patterns []model.Pattern
	Errors   []string
	Warnings []string
}

// Catalog returns the imported patterns as a catalog.
func (r ImportResult) Catalog() model.PatternCatalog {
	return model.NewPatternCatalog(r.Patterns...)
}

// ColumnMapping maps pattern fields to their indices in the data.
type ColumnMapping struct {
	Name             int
	SKU              int
	SaleType         int
	RepeatWidth      int
	RepeatHeight     int
	MaterialWidth    int
	PanelWidth       int
	AvailableLengths int
	Match            int
	MinOrder         int
	Image            int
}

// positionalMapping follows the column order of the catalog export.
var positionalMapping = ColumnMapping{
	Name: 0, SKU: 1, SaleType: 2, RepeatWidth: 3, RepeatHeight: 4,
	MaterialWidth: 5, PanelWidth: 6, AvailableLengths: 7, Match: 8,
	MinOrder: 9, Image: 10,
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name":              {"name", "pattern", "pattern name", "pattern_name", "title"},
	"sku":               {"sku", "item", "item number", "code", "product code"},
	"sale_type":         {"sale type", "sale_type", "sold by", "type", "unit"},
	"repeat_width":      {"repeat width", "repeat_width", "repeat_width_inches", "repeat w"},
	"repeat_height":     {"repeat height", "repeat_height", "repeat_height_inches", "repeat h", "repeat", "vertical repeat"},
	"material_width":    {"material width", "material_width", "material_width_inches", "roll width", "width"},
	"panel_width":       {"panel width", "panel_width", "panel_width_inches"},
	"available_lengths": {"available lengths", "available_lengths", "lengths", "panel lengths"},
	"match":             {"match", "pattern match", "pattern_match", "match type"},
	"min_order":         {"min order", "min_order", "min_yard_order", "minimum order", "minimum"},
	"image":             {"image", "image url", "repeat url", "repeat_url", "url"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Score: count how many rows have the same column count as the first row
		// Only consider delimiters that produce more than 1 column
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// catalog mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Name: -1, SKU: -1, SaleType: -1, RepeatWidth: -1, RepeatHeight: -1,
		MaterialWidth: -1, PanelWidth: -1, AvailableLengths: -1, Match: -1,
		MinOrder: -1, Image: -1,
	}
	fields := map[string]*int{
		"name":              &mapping.Name,
		"sku":               &mapping.SKU,
		"sale_type":         &mapping.SaleType,
		"repeat_width":      &mapping.RepeatWidth,
		"repeat_height":     &mapping.RepeatHeight,
		"material_width":    &mapping.MaterialWidth,
		"panel_width":       &mapping.PanelWidth,
		"available_lengths": &mapping.AvailableLengths,
		"match":             &mapping.Match,
		"min_order":         &mapping.MinOrder,
		"image":             &mapping.Image,
	}

	// Any cell matching a known alias marks the row as a header; the first match per role wins
	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if idx := fields[role]; *idx == -1 {
					*idx = i
				}
			}
		}
	}

	// Fall back to positional mapping in catalog column order
	if !isHeader {
		return positionalMapping, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseInches reads an optional dimension cell. Plain numbers are inches;
// feet-and-inches notation is also accepted.
func parseInches(row []string, idx int, field, rowLabel string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, ""
	}
	v, err := model.ParseDimension(s)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, field, s)
	}
	return v, ""
}

// ParseLengths parses a list of panel lengths in feet separated by
// semicolons, slashes, or spaces, e.g. "9;12;15" or "9/12/15".
func ParseLengths(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == '/' || r == ' ' || r == ','
	})
	lengths := make([]float64, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSuffix(strings.TrimSuffix(strings.TrimSpace(f), "'"), "ft")
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || !model.IsUsableLength(v) {
			return nil, fmt.Errorf("invalid length %q", f)
		}
		lengths = append(lengths, v)
	}
	return lengths, nil
}

// parseRow extracts a Pattern from a row using the given column mapping.
// Returns the pattern, any error message, and any warning messages.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.Pattern, string, []string) {
	p := model.Pattern{
		Name:     getCell(row, mapping.Name),
		SKU:      getCell(row, mapping.SKU),
		ImageURL: getCell(row, mapping.Image),
	}
	if p.Name == "" && p.SKU == "" {
		return model.Pattern{}, fmt.Sprintf("%s: Missing pattern name and SKU", rowLabel), nil
	}
	// A SKU alone is enough; it doubles as the display name
	if p.Name == "" {
		p.Name = p.SKU
	}

	saleStr := getCell(row, mapping.SaleType)
	if saleStr == "" {
		return model.Pattern{}, fmt.Sprintf("%s: Missing sale type", rowLabel), nil
	}
	p.SaleType = model.ParseSaleType(saleStr)

	// Optional geometry, in inches or feet-and-inches
	var errMsg string
	if p.RepeatWidthInches, errMsg = parseInches(row, mapping.RepeatWidth, "repeat width", rowLabel); errMsg != "" {
		return model.Pattern{}, errMsg, nil
	}
	if p.RepeatHeightInches, errMsg = parseInches(row, mapping.RepeatHeight, "repeat height", rowLabel); errMsg != "" {
		return model.Pattern{}, errMsg, nil
	}
	if p.MaterialWidthInches, errMsg = parseInches(row, mapping.MaterialWidth, "material width", rowLabel); errMsg != "" {
		return model.Pattern{}, errMsg, nil
	}
	if p.PanelWidthInches, errMsg = parseInches(row, mapping.PanelWidth, "panel width", rowLabel); errMsg != "" {
		return model.Pattern{}, errMsg, nil
	}

	if s := getCell(row, mapping.AvailableLengths); s != "" {
		lengths, err := ParseLengths(s)
		if err != nil {
			return model.Pattern{}, fmt.Sprintf("%s: Invalid available lengths '%s'", rowLabel, s), nil
		}
		p.AvailableLengths = lengths
	}

	if s := getCell(row, mapping.MinOrder); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		// Zero leaves the default minimum in place.
		if err != nil || (v != 0 && !model.IsUsableLength(v)) {
			return model.Pattern{}, fmt.Sprintf("%s: Invalid minimum order '%s'", rowLabel, s), nil
		}
		p.MinYardOrder = v
	}

	// Optional pattern match
	var warnings []string
	if s := getCell(row, mapping.Match); s != "" {
		if _, ok := model.ParsePatternMatch(s); !ok {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown pattern match '%s', defaulting to straight", rowLabel, s))
		}
		p.PatternMatch = model.PatternMatch(s)
	}

	// Geometry problems are warnings; the calculator falls back on them
	for _, problem := range p.Validate() {
		if strings.HasPrefix(problem, "unknown pattern match") {
			continue
		}
		warnings = append(warnings, fmt.Sprintf("%s: %s", rowLabel, problem))
	}

	return model.NormalizePattern(p), "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports patterns from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	defer f.Close()
	return ImportCSVFromReader(f)
}

// ImportCSVFromReader imports patterns from CSV read from r, such as stdin.
// The whole input is buffered so the delimiter can be detected first.
func ImportCSVFromReader(r io.Reader) ImportResult {
	result := ImportResult{}

	data, err := io.ReadAll(r)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read input: %v", err))
		return result
	}

	// Whitespace-only input has no rows to map
	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	// Only mention the delimiter when it is not the default comma
	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportExcel imports patterns from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	// Only the first sheet is read
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// ImportFile dispatches on the file extension.
func ImportFile(path string) ImportResult {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".xlsx"), strings.HasSuffix(lower, ".xlsm"):
		return ImportExcel(path)
	case strings.HasSuffix(lower, ".csv"), strings.HasSuffix(lower, ".tsv"), strings.HasSuffix(lower, ".txt"):
		return ImportCSV(path)
	default:
		return ImportResult{Errors: []string{fmt.Sprintf("Unsupported file type: %s", path)}}
	}
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	// Detect columns from first row
	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		// Validate that required columns were found
		if mapping.Name == -1 && mapping.SKU == -1 {
			result.Errors = append(result.Errors, "Required columns not found in header: Name or SKU")
			return result
		}
		if mapping.SaleType == -1 {
			result.Errors = append(result.Errors, "Required columns not found in header: Sale Type")
			return result
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		pattern, errMsg, warnings := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Patterns = append(result.Patterns, pattern)
	}

	return result
}
