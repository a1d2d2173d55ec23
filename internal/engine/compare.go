package engine

import (
	"github.com/piwi3910/wallcalc/internal/model"
)

// ComparisonResult holds the calculation for one pattern on a shared wall.
type ComparisonResult struct {
	Pattern       model.Pattern
	Result        model.CalculationResult
	OrderQuantity float64
	OrderUnit     string
	CutLength     float64 // inches per strip or panel
	WastePercent  float64 // covered area not on the wall
	Err           error
}

// ComparePatterns runs the calculator for each pattern against the same wall
// and returns the rows in input order. A failing pattern records its error
// instead of aborting the comparison.
func (c *Calculator) ComparePatterns(patterns []model.Pattern, wall model.WallSpec) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(patterns))

	for i := range patterns {
		p := patterns[i]
		res, err := c.CalculateWall(&p, wall)
		row := ComparisonResult{Pattern: p, Result: res, Err: err}
		if err == nil {
			row.OrderQuantity, row.OrderUnit = res.OrderQuantity()
			row.CutLength = res.CutLengthInches()
			row.WastePercent = coverageWaste(res)
		}
		results = append(results, row)
	}

	return results
}

// coverageWaste returns the share of the covered area that falls outside
// the wall, as a percentage.
func coverageWaste(r model.CalculationResult) float64 {
	covered := r.TotalWidth * r.TotalHeight
	if covered <= 0 {
		return 0
	}
	wall := r.WallWidth * r.WallHeight
	if wall >= covered {
		return 0
	}
	return (1 - wall/covered) * 100.0
}
