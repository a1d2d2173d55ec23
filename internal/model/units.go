package model

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Unit conversion factors.
const (
	InchesPerFoot = 12.0
	InchesPerYard = 36.0
)

// IsUsableLength reports whether x is a positive, finite length. NaN and
// infinities are rejected.
func IsUsableLength(x float64) bool {
	return x > 0 && !math.IsInf(x, 0)
}

// InchesToFeetAndInches splits a length into whole feet and the remaining
// inches. Feet are truncated, not rounded.
func InchesToFeetAndInches(totalInches float64) (feet int, inches float64) {
	feet = int(math.Floor(totalInches / InchesPerFoot))
	inches = math.Mod(totalInches, InchesPerFoot)
	return feet, inches
}

// FormatDimension renders feet and inches as F'I" or, when there is no inch
// remainder, F'. Display code depends on this exact format.
func FormatDimension(feet int, inches float64) string {
	if inches > 0 {
		return fmt.Sprintf("%d'%s\"", feet, strconv.FormatFloat(inches, 'f', -1, 64))
	}
	return fmt.Sprintf("%d'", feet)
}

// FormatInches formats a length given in inches as feet and inches.
func FormatInches(totalInches float64) string {
	return FormatDimension(InchesToFeetAndInches(totalInches))
}

// dimensionPattern matches forms like 8'6", 8' 6", 8ft 6in, 8 ft, 6in.
var dimensionPattern = regexp.MustCompile(`^\s*(?:(\d+(?:\.\d+)?)\s*(?:'|ft|feet|foot))?\s*(?:(\d+(?:\.\d+)?)\s*(?:"|in|inch|inches)?)?\s*$`)

// ParseDimension parses a wall measurement into inches. A bare number is
// taken as inches; feet must carry a ' or ft suffix.
func ParseDimension(s string) (float64, error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" {
		return 0, fmt.Errorf("empty dimension")
	}
	m := dimensionPattern.FindStringSubmatch(trimmed)
	if m == nil || (m[1] == "" && m[2] == "") {
		return 0, fmt.Errorf("invalid dimension %q", s)
	}
	var total float64
	if m[1] != "" {
		feet, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid feet in %q: %w", s, err)
		}
		total += feet * InchesPerFoot
	}
	if m[2] != "" {
		inches, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid inches in %q: %w", s, err)
		}
		total += inches
	}
	return total, nil
}
