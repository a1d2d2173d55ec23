package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two conditions that abort a calculation.
var (
	ErrPatternRequired       = errors.New("pattern data is required")
	ErrInvalidWallDimensions = errors.New("valid wall dimensions are required")
)

// CalculationError wraps a sentinel with the inputs that caused it.
type CalculationError struct {
	WallWidth  float64
	WallHeight float64
	Wrapped    error
}

func (e *CalculationError) Error() string {
	if errors.Is(e.Wrapped, ErrInvalidWallDimensions) {
		return fmt.Sprintf("calculate: %s (width=%g, height=%g)", e.Wrapped, e.WallWidth, e.WallHeight)
	}
	return fmt.Sprintf("calculate: %s", e.Wrapped)
}

func (e *CalculationError) Unwrap() error { return e.Wrapped }
