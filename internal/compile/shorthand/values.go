package shorthand

import (
	"strconv"
	"strings"
)

// tokenize splits a CSS value on whitespace while keeping parenthesized
// function notation (url(...), rgb(...), repeat(...)) as single tokens.
func tokenize(value string) []string {
	var tokens []string
	i := 0
	for i < len(value) {
		if value[i] == ' ' || value[i] == '\t' || value[i] == '\n' {
			i++
			continue
		}
		start := i
		depth := 0
		for ; i < len(value); i++ {
			switch value[i] {
			case '(':
				depth++
			case ')':
				if depth > 0 {
					depth--
				}
			case ' ', '\t', '\n':
				if depth == 0 {
					goto emit
				}
			}
		}
	emit:
		tokens = append(tokens, value[start:i])
	}
	return tokens
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

var lengthUnits = []string{"px", "em", "rem", "%", "vw", "vh", "vmin", "vmax", "ch", "ex", "pt", "pc", "cm", "mm", "in", "fr"}

// isLength reports whether the token is a CSS length/percentage, including
// the bare zero that CSS permits without a unit.
func isLength(s string) bool {
	if s == "0" || s == "auto" {
		return s == "0"
	}
	for _, unit := range lengthUnits {
		if strings.HasSuffix(s, unit) && isNumeric(strings.TrimSuffix(s, unit)) {
			return true
		}
	}
	if strings.HasPrefix(s, "calc(") {
		return true
	}
	return false
}

func isBorderWidth(s string) bool {
	return s == "thin" || s == "medium" || s == "thick" || isLength(s)
}

var borderStyles = map[string]bool{
	"none": true, "hidden": true, "dotted": true, "dashed": true, "solid": true,
	"double": true, "groove": true, "ridge": true, "inset": true, "outset": true,
}

func isBorderStyle(s string) bool { return borderStyles[s] }

// namedColors is the keyword set the capture layer is known to emit; anything
// else arrives as hex or functional notation.
var namedColors = map[string]bool{
	"black": true, "silver": true, "gray": true, "grey": true, "white": true,
	"maroon": true, "red": true, "purple": true, "fuchsia": true, "green": true,
	"lime": true, "olive": true, "yellow": true, "navy": true, "blue": true,
	"teal": true, "aqua": true, "orange": true, "pink": true, "brown": true,
	"transparent": true, "currentcolor": true,
}

func isColor(s string) bool {
	s = strings.ToLower(s)
	if namedColors[s] {
		return true
	}
	if strings.HasPrefix(s, "#") {
		return true
	}
	for _, fn := range []string{"rgb(", "rgba(", "hsl(", "hsla(", "hwb(", "lab(", "lch(", "oklab(", "oklch(", "color("} {
		if strings.HasPrefix(s, fn) {
			return true
		}
	}
	return false
}

func isImageToken(s string) bool {
	if strings.HasPrefix(s, "url(") {
		return true
	}
	idx := strings.Index(s, "(")
	return idx > 0 && strings.HasSuffix(s[:idx], "-gradient")
}

func isTime(s string) bool {
	trimmed := strings.TrimSuffix(strings.TrimSuffix(s, "ms"), "s")
	return trimmed != s && isNumeric(trimmed)
}

var timingKeywords = map[string]bool{
	"ease": true, "ease-in": true, "ease-out": true, "ease-in-out": true,
	"linear": true, "step-start": true, "step-end": true,
}

func isTimingFunction(s string) bool {
	return timingKeywords[s] || strings.HasPrefix(s, "cubic-bezier(") || strings.HasPrefix(s, "steps(")
}

func isDecorationLine(s string) bool {
	switch s {
	case "underline", "overline", "line-through", "blink", "none":
		return true
	}
	return false
}

func isDecorationStyle(s string) bool {
	switch s {
	case "solid", "double", "dotted", "dashed", "wavy":
		return true
	}
	return false
}

func isListPosition(s string) bool { return s == "inside" || s == "outside" }

func anyToken(string) bool { return true }
