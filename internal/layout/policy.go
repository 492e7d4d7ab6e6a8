// Package layout matches content slides against the placeholders a template
// actually provides, and plans how the text fits.
package layout

import (
	"os"
	"strconv"
)

// Policy holds the text fitting parameters used when planning a slide.
type Policy struct {
	BaseFontPt float64 // body text size before any shrinking
	MinFontPt  float64 // floor for shrink-to-fit
	FontStepPt float64 // shrink increment
	LineChars  int     // characters per wrapped line at BaseFontPt
	MaxLines   int     // lines a body placeholder holds at BaseFontPt
	MaxShapes  int     // most step shapes drawn before falling back to a list
}

// DefaultPolicy returns the fitting parameters tuned for the 16:9 starter
// template.
func DefaultPolicy() Policy {
	return Policy{
		BaseFontPt: 22,
		MinFontPt:  14,
		FontStepPt: 2,
		LineChars:  68,
		MaxLines:   13,
		MaxShapes:  6,
	}
}

// LoadPolicy reads fitting parameters from environment variables, falling
// back to defaults for any unset values.
func LoadPolicy() Policy {
	pol := DefaultPolicy()

	if v := os.Getenv("DECKBUILD_BASE_FONT_PT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			pol.BaseFontPt = f
		}
	}
	if v := os.Getenv("DECKBUILD_MIN_FONT_PT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			pol.MinFontPt = f
		}
	}
	if v := os.Getenv("DECKBUILD_FONT_STEP_PT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			pol.FontStepPt = f
		}
	}
	if v := os.Getenv("DECKBUILD_LINE_CHARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			pol.LineChars = n
		}
	}
	if v := os.Getenv("DECKBUILD_MAX_LINES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			pol.MaxLines = n
		}
	}
	if v := os.Getenv("DECKBUILD_MAX_SHAPES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			pol.MaxShapes = n
		}
	}
	return pol
}
