package model

// WallSpec is the wall to be covered, in inches.
type WallSpec struct {
	WidthInches  float64 `json:"width_inches"`
	HeightInches float64 `json:"height_inches"`
}

// NewWallSpec builds a WallSpec from form-style feet and inches fields.
func NewWallSpec(widthFeet int, widthInches float64, heightFeet int, heightInches float64) WallSpec {
	return WallSpec{
		WidthInches:  float64(widthFeet)*InchesPerFoot + widthInches,
		HeightInches: float64(heightFeet)*InchesPerFoot + heightInches,
	}
}

// Valid reports whether both dimensions are positive.
func (w WallSpec) Valid() bool {
	return w.WidthInches > 0 && w.HeightInches > 0
}

// FormattedWidth returns the width as F'I".
func (w WallSpec) FormattedWidth() string {
	return FormatInches(w.WidthInches)
}

// FormattedHeight returns the height as F'I".
func (w WallSpec) FormattedHeight() string {
	return FormatInches(w.HeightInches)
}

// Title returns the preview heading, e.g. `Megaflora: Rust: 8'w x 9'h Wall`.
func (w WallSpec) Title(p Pattern) string {
	sku := p.SKU
	if sku == "" {
		sku = "N/A"
	}
	return p.Name + ": " + sku + ": " + w.FormattedWidth() + "w x " + w.FormattedHeight() + "h Wall"
}
