package engine

import (
	"math"

	"go.uber.org/zap"

	"github.com/piwi3910/wallcalc/internal/model"
)

// Calculation constants shared by every pattern.
const (
	OverageInches        = 4.0  // Trim margin added to each wall dimension
	MaxPanelLengthFeet   = 27.0 // Longest panel that can be manufactured and shipped
	maxPanelLengthInches = MaxPanelLengthFeet * model.InchesPerFoot
	panelLengthStepFeet  = 3.0 // Custom panel lengths are rounded up to this step
)

// Fallback geometry substituted when pattern data is unusable.
const (
	fallbackStripLengthInches = 120.0
	fallbackCoverWidthInches  = 54.0
	fallbackCoverHeightInches = 120.0
	fallbackPanelLengthFeet   = 10.0
)

// Calculator computes material requirements for one wall.
// The logger only receives diagnostics; it never affects results.
type Calculator struct {
	logger *zap.Logger
}

// New creates a Calculator. A nil logger disables diagnostics.
func New(logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger}
}

var defaultCalculator = New(nil)

// Calculate computes requirements without diagnostics.
func Calculate(pattern *model.Pattern, wallWidth, wallHeight float64) (model.CalculationResult, error) {
	return defaultCalculator.Calculate(pattern, wallWidth, wallHeight)
}

// Calculate routes to the yard or panel algorithm based on the pattern's
// sale type. Only a missing pattern or non-positive wall dimensions produce
// an error; unusable pattern geometry yields a documented fallback result.
func (c *Calculator) Calculate(pattern *model.Pattern, wallWidth, wallHeight float64) (model.CalculationResult, error) {
	if pattern == nil {
		return model.CalculationResult{}, &CalculationError{WallWidth: wallWidth, WallHeight: wallHeight, Wrapped: ErrPatternRequired}
	}
	if !model.IsUsableLength(wallWidth) || !model.IsUsableLength(wallHeight) {
		return model.CalculationResult{}, &CalculationError{WallWidth: wallWidth, WallHeight: wallHeight, Wrapped: ErrInvalidWallDimensions}
	}

	if pattern.SaleType == model.SaleTypeYard {
		return c.CalculateYard(*pattern, wallWidth, wallHeight), nil
	}
	return c.CalculatePanel(*pattern, wallWidth, wallHeight), nil
}

// CalculateWall is Calculate for a WallSpec.
func (c *Calculator) CalculateWall(pattern *model.Pattern, wall model.WallSpec) (model.CalculationResult, error) {
	return c.Calculate(pattern, wall.WidthInches, wall.HeightInches)
}

// CalculateYard computes the strip plan for a yard-sold pattern.
func (c *Calculator) CalculateYard(pattern model.Pattern, wallWidth, wallHeight float64) model.CalculationResult {
	totalWidth := wallWidth + OverageInches
	totalHeight := wallHeight + OverageInches
	match := pattern.EffectivePatternMatch()
	minOrder := pattern.EffectiveMinYardOrder()

	c.logger.Debug("yard calculation",
		zap.String("sku", pattern.SKU),
		zap.Float64("wall_width", wallWidth),
		zap.Float64("wall_height", wallHeight),
		zap.Float64("total_width", totalWidth),
		zap.Float64("total_height", totalHeight),
		zap.Float64("repeat_height", pattern.RepeatHeightInches),
		zap.Float64("material_width", pattern.MaterialWidthInches),
		zap.String("pattern_match", string(match)),
	)

	if !model.IsUsableLength(pattern.RepeatHeightInches) || !model.IsUsableLength(pattern.MaterialWidthInches) {
		c.logger.Warn("invalid yard geometry, using fallback result",
			zap.String("sku", pattern.SKU),
			zap.Float64("repeat_height", pattern.RepeatHeightInches),
			zap.Float64("material_width", pattern.MaterialWidthInches),
		)
		return yardFallback(pattern, wallWidth, wallHeight, match, minOrder)
	}

	repeatsNeeded := int(math.Ceil(totalHeight / pattern.RepeatHeightInches))
	if match == model.MatchHalfDrop {
		// One full repeat of margin covers the half-repeat offset between strips.
		repeatsNeeded++
	}
	stripLength := float64(repeatsNeeded) * pattern.RepeatHeightInches
	stripsNeeded := int(math.Ceil(totalWidth / pattern.MaterialWidthInches))

	yardageRaw := stripLength * float64(stripsNeeded) / model.InchesPerYard
	yardage := int(math.Max(math.Ceil(yardageRaw), math.Ceil(minOrder)))

	result := model.CalculationResult{
		SaleType:    model.SaleTypeYard,
		WallWidth:   wallWidth,
		WallHeight:  wallHeight,
		TotalWidth:  float64(stripsNeeded) * pattern.MaterialWidthInches,
		TotalHeight: stripLength,
		YardLayout: &model.YardLayout{
			StripsNeeded:      stripsNeeded,
			StripLengthInches: stripLength,
			StripLengthYards:  int(math.Ceil(stripLength / model.InchesPerYard)),
			RepeatsNeeded:     repeatsNeeded,
			TotalYardageRaw:   yardageRaw,
			TotalYardage:      yardage,
			PatternMatch:      match,
		},
	}

	c.logger.Debug("yard calculation result",
		zap.Int("repeats_needed", repeatsNeeded),
		zap.Float64("strip_length", stripLength),
		zap.Int("strips_needed", stripsNeeded),
		zap.Float64("yardage_raw", yardageRaw),
		zap.Int("yardage", yardage),
	)
	return result
}

func yardFallback(pattern model.Pattern, wallWidth, wallHeight float64, match model.PatternMatch, minOrder float64) model.CalculationResult {
	width := fallbackCoverWidthInches
	if model.IsUsableLength(pattern.MaterialWidthInches) {
		width = pattern.MaterialWidthInches
	}
	return model.CalculationResult{
		SaleType:    model.SaleTypeYard,
		WallWidth:   wallWidth,
		WallHeight:  wallHeight,
		TotalWidth:  width,
		TotalHeight: fallbackCoverHeightInches,
		Fallback:    true,
		YardLayout: &model.YardLayout{
			StripsNeeded:      1,
			StripLengthInches: fallbackStripLengthInches,
			StripLengthYards:  int(math.Ceil(fallbackStripLengthInches / model.InchesPerYard)),
			RepeatsNeeded:     1,
			TotalYardageRaw:   fallbackStripLengthInches / model.InchesPerYard,
			TotalYardage:      int(math.Ceil(minOrder)),
			PatternMatch:      match,
		},
	}
}

// CalculatePanel computes the panel plan for a panel-sold pattern. A pattern
// that turns out to be yard-sold is handed to CalculateYard.
func (c *Calculator) CalculatePanel(pattern model.Pattern, wallWidth, wallHeight float64) model.CalculationResult {
	if pattern.SaleType == model.SaleTypeYard {
		return c.CalculateYard(pattern, wallWidth, wallHeight)
	}
	if pattern.SaleType == "" || !model.IsUsableLength(pattern.PanelWidthInches) {
		c.logger.Warn("invalid panel pattern data, using fallback result",
			zap.String("sku", pattern.SKU),
			zap.String("sale_type", pattern.SaleType.String()),
			zap.Float64("panel_width", pattern.PanelWidthInches),
		)
		return panelFallback(wallWidth, wallHeight)
	}

	totalWidth := wallWidth + OverageInches
	totalHeight := wallHeight + OverageInches
	panelsNeeded := int(math.Ceil(totalWidth / pattern.PanelWidthInches))

	c.logger.Debug("panel calculation",
		zap.String("sku", pattern.SKU),
		zap.Float64("total_width", totalWidth),
		zap.Float64("total_height", totalHeight),
		zap.Float64s("available_lengths", pattern.AvailableLengths),
	)

	idealLength, custom := selectPanelLength(pattern.AvailableLengths, totalHeight)
	actualLength := math.Min(idealLength, MaxPanelLengthFeet)
	exceeds := idealLength > MaxPanelLengthFeet
	// Uncovered height is measured against the ideal length, not the wall.
	// A standard length above the cap therefore reports a shortfall even
	// when 27' would still reach the top of the wall.
	var uncovered float64
	if exceeds {
		uncovered = (idealLength - MaxPanelLengthFeet) * model.InchesPerFoot
	}

	c.logger.Debug("panel calculation result",
		zap.Int("panels_needed", panelsNeeded),
		zap.Float64("ideal_length", idealLength),
		zap.Float64("actual_length", actualLength),
		zap.Bool("custom_length", custom),
		zap.Bool("exceeds_limit", exceeds),
		zap.Float64("uncovered_height", uncovered),
	)

	return model.CalculationResult{
		SaleType:    model.SaleTypePanel,
		WallWidth:   wallWidth,
		WallHeight:  wallHeight,
		TotalWidth:  float64(panelsNeeded) * pattern.PanelWidthInches,
		TotalHeight: actualLength * model.InchesPerFoot,
		PanelLayout: &model.PanelLayout{
			PanelsNeeded:      panelsNeeded,
			PanelLength:       actualLength,
			ExceedsLimit:      exceeds,
			IdealPanelLength:  idealLength,
			ActualPanelLength: actualLength,
			UncoveredHeight:   uncovered,
			CustomLength:      custom,
		},
	}
}

// selectPanelLength returns the first standard length (feet) that covers
// totalHeight inches. When none does, it returns the covering height rounded
// up to whole feet and then to the next multiple of three feet.
func selectPanelLength(available []float64, totalHeight float64) (feet float64, custom bool) {
	if len(available) == 0 {
		available = model.DefaultAvailableLengths
	}
	for _, length := range available {
		if !model.IsUsableLength(length) {
			continue
		}
		if length*model.InchesPerFoot >= totalHeight {
			return length, false
		}
	}
	minFeet := math.Ceil(totalHeight / model.InchesPerFoot)
	return math.Ceil(minFeet/panelLengthStepFeet) * panelLengthStepFeet, true
}

func panelFallback(wallWidth, wallHeight float64) model.CalculationResult {
	return model.CalculationResult{
		SaleType:    model.SaleTypePanel,
		WallWidth:   wallWidth,
		WallHeight:  wallHeight,
		TotalWidth:  fallbackCoverWidthInches,
		TotalHeight: fallbackCoverHeightInches,
		Fallback:    true,
		PanelLayout: &model.PanelLayout{
			PanelsNeeded:      1,
			PanelLength:       fallbackPanelLengthFeet,
			IdealPanelLength:  fallbackPanelLengthFeet,
			ActualPanelLength: fallbackPanelLengthFeet,
		},
	}
}
