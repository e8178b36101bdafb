package boxmodel

import (
	"strconv"
	"strings"
)

// BaseFontSize is the default root font size in CSS pixels.
const BaseFontSize = 16.0

// Ref supplies the reference dimensions relative units resolve against.
type Ref struct {
	FontSize       float64 // em
	RootFontSize   float64 // rem
	Reference      float64 // %
	ViewportWidth  float64 // vw, vmax/vmin
	ViewportHeight float64 // vh, vmax/vmin
}

// ParseLength resolves a CSS length to pixels. Unparsable values and the
// keywords auto/normal/none resolve to zero; spacing math treats them as
// absent rather than failing the node.
func ParseLength(value string, ref Ref) float64 {
	value = strings.TrimSpace(value)
	if value == "" || value == "auto" || value == "normal" || value == "none" {
		return 0
	}

	numeric := func(suffix string) (float64, bool) {
		v, err := strconv.ParseFloat(strings.TrimSuffix(value, suffix), 64)
		return v, err == nil
	}

	fontSize := ref.FontSize
	if fontSize == 0 {
		fontSize = BaseFontSize
	}
	rootFontSize := ref.RootFontSize
	if rootFontSize == 0 {
		rootFontSize = BaseFontSize
	}

	switch {
	case strings.HasSuffix(value, "%"):
		if v, ok := numeric("%"); ok {
			return ref.Reference * v / 100
		}
	case strings.HasSuffix(value, "px"):
		if v, ok := numeric("px"); ok {
			return v
		}
	case strings.HasSuffix(value, "rem"):
		if v, ok := numeric("rem"); ok {
			return v * rootFontSize
		}
	case strings.HasSuffix(value, "em"):
		if v, ok := numeric("em"); ok {
			return v * fontSize
		}
	case strings.HasSuffix(value, "vw"):
		if v, ok := numeric("vw"); ok {
			return ref.ViewportWidth * v / 100
		}
	case strings.HasSuffix(value, "vh"):
		if v, ok := numeric("vh"); ok {
			return ref.ViewportHeight * v / 100
		}
	case strings.HasSuffix(value, "vmin"):
		if v, ok := numeric("vmin"); ok {
			return minf(ref.ViewportWidth, ref.ViewportHeight) * v / 100
		}
	case strings.HasSuffix(value, "vmax"):
		if v, ok := numeric("vmax"); ok {
			return maxf(ref.ViewportWidth, ref.ViewportHeight) * v / 100
		}
	}

	// Unitless values are treated as pixels.
	if v, err := strconv.ParseFloat(value, 64); err == nil {
		return v
	}
	return 0
}

// borderWidthKeywords are the CSS named border widths.
var borderWidthKeywords = map[string]float64{"thin": 1, "medium": 3, "thick": 5}

// ParseBorderWidth resolves a border width, honoring the named widths.
func ParseBorderWidth(value string, ref Ref) float64 {
	value = strings.TrimSpace(value)
	if w, ok := borderWidthKeywords[value]; ok {
		return w
	}
	return ParseLength(value, ref)
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
