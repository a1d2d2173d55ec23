package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInchesToFeetAndInches(t *testing.T) {
	cases := []struct {
		in         float64
		wantFeet   int
		wantInches float64
	}{
		{0, 0, 0},
		{11, 0, 11},
		{12, 1, 0},
		{102, 8, 6},
		{167.5, 13, 11.5},
		{324, 27, 0},
	}
	for _, tc := range cases {
		feet, inches := InchesToFeetAndInches(tc.in)
		if feet != tc.wantFeet || inches != tc.wantInches {
			t.Errorf("InchesToFeetAndInches(%v) = %d, %v; want %d, %v", tc.in, feet, inches, tc.wantFeet, tc.wantInches)
		}
	}
}

func TestFormatDimension(t *testing.T) {
	assert.Equal(t, `8'6"`, FormatDimension(8, 6))
	assert.Equal(t, `8'`, FormatDimension(8, 0))
	assert.Equal(t, `13'11.5"`, FormatDimension(13, 11.5))
	assert.Equal(t, `0'3"`, FormatDimension(0, 3))
}

func TestFormatInches(t *testing.T) {
	assert.Equal(t, `9'`, FormatInches(108))
	assert.Equal(t, `13'11.5"`, FormatInches(167.5))
	assert.Equal(t, `6'9"`, FormatInches(81))
}

func TestParseDimension(t *testing.T) {
	cases := map[string]float64{
		"96":       96,
		"96.5":     96.5,
		`8'`:       96,
		`8'6"`:     102,
		`8' 6"`:    102,
		`8'6`:      102,
		"8ft 6in":  102,
		"8 feet":   96,
		"6in":      6,
		" 10ft ":   120,
		"9ft 0in":  108,
		"2.5'":     30,
		`12' 3.5"`: 147.5,
	}
	for in, want := range cases {
		got, err := ParseDimension(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestParseDimensionInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "8m", `'6"`, "8'6'"} {
		_, err := ParseDimension(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestNewWallSpec(t *testing.T) {
	w := NewWallSpec(8, 0, 9, 6)
	assert.Equal(t, 96.0, w.WidthInches)
	assert.Equal(t, 114.0, w.HeightInches)
	assert.True(t, w.Valid())
	assert.Equal(t, `8'`, w.FormattedWidth())
	assert.Equal(t, `9'6"`, w.FormattedHeight())

	assert.False(t, NewWallSpec(0, 0, 9, 0).Valid())
}

func TestWallSpecTitle(t *testing.T) {
	w := NewWallSpec(8, 6, 9, 0)
	p := Pattern{Name: "Wonderland: Gold", SKU: "W-WON-GOL"}
	assert.Equal(t, `Wonderland: Gold: W-WON-GOL: 8'6"w x 9'h Wall`, w.Title(p))

	p.SKU = ""
	assert.Equal(t, `Wonderland: Gold: N/A: 8'6"w x 9'h Wall`, w.Title(p))
}
