package shorthand

import (
	"fmt"
	"strings"
)

// boxExpander builds the expander for four-sided properties using the CSS
// positional rule: 1 value fills all sides, 2 splits top/bottom from
// left/right, 3 is top, left/right, bottom, 4 is top, right, bottom, left.
func boxExpander(top, right, bottom, left string) expandFunc {
	return func(value string) (map[string]string, error) {
		parts := tokenize(value)
		switch len(parts) {
		case 1:
			return map[string]string{top: parts[0], right: parts[0], bottom: parts[0], left: parts[0]}, nil
		case 2:
			return map[string]string{top: parts[0], right: parts[1], bottom: parts[0], left: parts[1]}, nil
		case 3:
			return map[string]string{top: parts[0], right: parts[1], bottom: parts[2], left: parts[1]}, nil
		case 4:
			return map[string]string{top: parts[0], right: parts[1], bottom: parts[2], left: parts[3]}, nil
		default:
			return nil, fmt.Errorf("expected 1-4 values, got %d", len(parts))
		}
	}
}

// classifyBorderTokens splits a border-like value into width, style and color.
func classifyBorderTokens(value string) (width, style, color string, err error) {
	for _, tok := range tokenize(value) {
		switch {
		case width == "" && isBorderWidth(tok):
			width = tok
		case style == "" && isBorderStyle(tok):
			style = tok
		case color == "" && (isColor(tok) || tok == "invert"):
			color = tok
		default:
			return "", "", "", fmt.Errorf("unrecognized border token %q", tok)
		}
	}
	if width == "" {
		width = "medium"
	}
	if style == "" {
		style = "none"
	}
	if color == "" {
		color = "currentcolor"
	}
	return width, style, color, nil
}

// borderSideExpander handles border-top/right/bottom/left and outline, which
// all take an optional width, style and color in any order.
func borderSideExpander(prefix string) expandFunc {
	return func(value string) (map[string]string, error) {
		width, style, color, err := classifyBorderTokens(value)
		if err != nil {
			return nil, err
		}
		return map[string]string{
			prefix + "-width": width,
			prefix + "-style": style,
			prefix + "-color": color,
		}, nil
	}
}

// expandBorder fans a border shorthand out to all twelve per-side longhands.
func expandBorder(value string) (map[string]string, error) {
	width, style, color, err := classifyBorderTokens(value)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, 12)
	for _, side := range []string{"top", "right", "bottom", "left"} {
		out["border-"+side+"-width"] = width
		out["border-"+side+"-style"] = style
		out["border-"+side+"-color"] = color
	}
	return out, nil
}

// cornerValues applies the radius positional rule to one axis list:
// 1 value fills all corners, 2 is TL/BR and TR/BL, 3 is TL, TR/BL, BR,
// 4 is TL, TR, BR, BL.
func cornerValues(parts []string) ([4]string, error) {
	var c [4]string
	switch len(parts) {
	case 1:
		c = [4]string{parts[0], parts[0], parts[0], parts[0]}
	case 2:
		c = [4]string{parts[0], parts[1], parts[0], parts[1]}
	case 3:
		c = [4]string{parts[0], parts[1], parts[2], parts[1]}
	case 4:
		c = [4]string{parts[0], parts[1], parts[2], parts[3]}
	default:
		return c, fmt.Errorf("expected 1-4 radii, got %d", len(parts))
	}
	return c, nil
}

var radiusCorners = [4]string{
	"border-top-left-radius",
	"border-top-right-radius",
	"border-bottom-right-radius",
	"border-bottom-left-radius",
}

// expandBorderRadius splits the value on "/" into horizontal and vertical
// axis lists; each axis follows the corner rule independently.
func expandBorderRadius(value string) (map[string]string, error) {
	axes := strings.SplitN(value, "/", 2)
	horizontal, err := cornerValues(tokenize(axes[0]))
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, 4)
	if len(axes) == 1 {
		for i, corner := range radiusCorners {
			out[corner] = horizontal[i]
		}
		return out, nil
	}
	vertical, err := cornerValues(tokenize(axes[1]))
	if err != nil {
		return nil, err
	}
	for i, corner := range radiusCorners {
		out[corner] = horizontal[i] + " " + vertical[i]
	}
	return out, nil
}

var fontStyles = map[string]bool{"italic": true, "oblique": true}
var fontVariants = map[string]bool{"small-caps": true}
var fontWeights = map[string]bool{"bold": true, "bolder": true, "lighter": true}

// expandFont parses the ordered font grammar: optional style, optional
// variant, optional weight, mandatory size (optionally "/line-height"),
// mandatory family tail. Anything the grammar cannot place falls back to
// treating the entire value as the font family.
func expandFont(value string) (map[string]string, error) {
	tokens := tokenize(value)
	out := map[string]string{}
	i := 0
	for ; i < len(tokens); i++ {
		tok := strings.ToLower(tokens[i])
		switch {
		case fontStyles[tok]:
			out["font-style"] = tokens[i]
		case fontVariants[tok]:
			out["font-variant"] = tokens[i]
		case fontWeights[tok] || isNumeric(tok):
			out["font-weight"] = tokens[i]
		case tok == "normal":
			// Ambiguous reset keyword; the open slots keep their defaults.
		default:
			goto tail
		}
	}
tail:
	if i >= len(tokens) {
		return map[string]string{"font-family": value}, nil
	}
	size := tokens[i]
	if slash := strings.Index(size, "/"); slash >= 0 {
		out["line-height"] = size[slash+1:]
		size = size[:slash]
	}
	if !isLength(size) && !isFontSizeKeyword(size) {
		return map[string]string{"font-family": value}, nil
	}
	out["font-size"] = size
	family := strings.Join(tokens[i+1:], " ")
	if family == "" {
		return map[string]string{"font-family": value}, nil
	}
	out["font-family"] = family
	return out, nil
}

func isFontSizeKeyword(s string) bool {
	switch s {
	case "xx-small", "x-small", "small", "medium", "large", "x-large", "xx-large", "smaller", "larger":
		return true
	}
	return false
}

// expandBackground is a best-effort split: url()/*-gradient() tokens become
// the image, a remaining lone color token becomes the color, and anything
// ambiguous is preserved verbatim under background-color so no styling data
// is ever dropped.
func expandBackground(value string) (map[string]string, error) {
	tokens := tokenize(value)
	out := map[string]string{}
	var rest []string
	for _, tok := range tokens {
		if isImageToken(tok) && out["background-image"] == "" {
			out["background-image"] = tok
			continue
		}
		rest = append(rest, tok)
	}
	switch {
	case len(rest) == 0:
	case len(rest) == 1 && isColor(rest[0]):
		out["background-color"] = rest[0]
	default:
		out["background-color"] = strings.Join(rest, " ")
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty background value")
	}
	return out, nil
}

// expandFlex maps the flex shorthand onto grow/shrink/basis. Keywords carry
// their fixed CSS triples; a bare number is a grow factor; multi-token values
// are assigned positionally by numeric-vs-length classification.
func expandFlex(value string) (map[string]string, error) {
	triple := func(grow, shrink, basis string) map[string]string {
		return map[string]string{"flex-grow": grow, "flex-shrink": shrink, "flex-basis": basis}
	}
	tokens := tokenize(value)
	if len(tokens) == 1 {
		switch tokens[0] {
		case "initial":
			return triple("0", "1", "auto"), nil
		case "auto":
			return triple("1", "1", "auto"), nil
		case "none":
			return triple("0", "0", "auto"), nil
		}
		// A bare number is a grow factor; anything with a unit is a basis.
		if isNumeric(tokens[0]) {
			return triple(tokens[0], "1", "0%"), nil
		}
		return triple("1", "1", tokens[0]), nil
	}

	grow, shrink, basis := "0", "1", "auto"
	numbersSeen := 0
	for _, tok := range tokens {
		if isNumeric(tok) {
			switch numbersSeen {
			case 0:
				grow = tok
			case 1:
				shrink = tok
			default:
				return nil, fmt.Errorf("too many flex factors in %q", value)
			}
			numbersSeen++
			continue
		}
		basis = tok
	}
	return triple(grow, shrink, basis), nil
}

// expandFlexFlow splits flex-flow into flex-direction and flex-wrap.
func expandFlexFlow(value string) (map[string]string, error) {
	out := map[string]string{"flex-direction": "row", "flex-wrap": "nowrap"}
	for _, tok := range tokenize(value) {
		switch tok {
		case "row", "row-reverse", "column", "column-reverse":
			out["flex-direction"] = tok
		case "nowrap", "wrap", "wrap-reverse":
			out["flex-wrap"] = tok
		default:
			return nil, fmt.Errorf("unrecognized flex-flow token %q", tok)
		}
	}
	return out, nil
}

func expandGap(value string) (map[string]string, error) {
	parts := tokenize(value)
	switch len(parts) {
	case 1:
		return map[string]string{"row-gap": parts[0], "column-gap": parts[0]}, nil
	case 2:
		return map[string]string{"row-gap": parts[0], "column-gap": parts[1]}, nil
	default:
		return nil, fmt.Errorf("expected 1-2 gap values, got %d", len(parts))
	}
}

// expandGridTemplate handles the row/column split of grid and grid-template.
// Track-list syntax passes through untouched; only the "/" split is applied.
func expandGridTemplate(rowsProp, colsProp string) expandFunc {
	return func(value string) (map[string]string, error) {
		if value == "none" {
			return map[string]string{rowsProp: "none", colsProp: "none"}, nil
		}
		parts := strings.SplitN(value, "/", 2)
		out := map[string]string{rowsProp: strings.TrimSpace(parts[0])}
		if len(parts) == 2 {
			out[colsProp] = strings.TrimSpace(parts[1])
		}
		return out, nil
	}
}

func expandGridLine(startProp, endProp string) expandFunc {
	return func(value string) (map[string]string, error) {
		parts := strings.SplitN(value, "/", 2)
		out := map[string]string{startProp: strings.TrimSpace(parts[0]), endProp: "auto"}
		if len(parts) == 2 {
			out[endProp] = strings.TrimSpace(parts[1])
		}
		return out, nil
	}
}

func expandGridArea(value string) (map[string]string, error) {
	targets := []string{"grid-row-start", "grid-column-start", "grid-row-end", "grid-column-end"}
	parts := strings.Split(value, "/")
	if len(parts) > 4 {
		return nil, fmt.Errorf("expected at most 4 grid-area parts, got %d", len(parts))
	}
	out := make(map[string]string, 4)
	for i, target := range targets {
		if i < len(parts) {
			out[target] = strings.TrimSpace(parts[i])
		} else {
			out[target] = "auto"
		}
	}
	return out, nil
}

func expandOverflow(value string) (map[string]string, error) {
	parts := tokenize(value)
	switch len(parts) {
	case 1:
		return map[string]string{"overflow-x": parts[0], "overflow-y": parts[0]}, nil
	case 2:
		return map[string]string{"overflow-x": parts[0], "overflow-y": parts[1]}, nil
	default:
		return nil, fmt.Errorf("expected 1-2 overflow values, got %d", len(parts))
	}
}

// expandAnimation assigns tokens positionally: the first time value is the
// duration, the second the delay; timing functions, iteration counts,
// directions and fill modes go to their slots; the remainder is the name.
func expandAnimation(value string) (map[string]string, error) {
	out := map[string]string{}
	timesSeen := 0
	var nameParts []string
	for _, tok := range tokenize(value) {
		switch {
		case isTime(tok):
			if timesSeen == 0 {
				out["animation-duration"] = tok
			} else {
				out["animation-delay"] = tok
			}
			timesSeen++
		case isTimingFunction(tok):
			out["animation-timing-function"] = tok
		case tok == "infinite" || isNumeric(tok):
			out["animation-iteration-count"] = tok
		case tok == "normal" || tok == "reverse" || tok == "alternate" || tok == "alternate-reverse":
			out["animation-direction"] = tok
		case tok == "forwards" || tok == "backwards" || tok == "both":
			out["animation-fill-mode"] = tok
		case tok == "running" || tok == "paused":
			out["animation-play-state"] = tok
		default:
			nameParts = append(nameParts, tok)
		}
	}
	if len(nameParts) > 0 {
		out["animation-name"] = strings.Join(nameParts, " ")
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty animation value")
	}
	return out, nil
}

// expandTransition: first time is the duration, second the delay, timing
// functions go to their slot, everything else names the transitioned property.
func expandTransition(value string) (map[string]string, error) {
	out := map[string]string{}
	timesSeen := 0
	var props []string
	for _, tok := range tokenize(value) {
		switch {
		case isTime(tok):
			if timesSeen == 0 {
				out["transition-duration"] = tok
			} else {
				out["transition-delay"] = tok
			}
			timesSeen++
		case isTimingFunction(tok):
			out["transition-timing-function"] = tok
		default:
			props = append(props, tok)
		}
	}
	if len(props) > 0 {
		out["transition-property"] = strings.Join(props, " ")
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty transition value")
	}
	return out, nil
}

// bucket routes matching tokens to one longhand; Multi buckets accept more
// than one token and join them with spaces.
type bucket struct {
	Target string
	Match  func(string) bool
	Multi  bool
}

type bucketSpec []bucket

// tokenBucketExpander builds an expander that walks tokens in order and
// drops each into the first open bucket that matches it; tokens no bucket
// takes end up in the fallback longhand.
func tokenBucketExpander(name string, buckets bucketSpec, fallback string) expandFunc {
	return func(value string) (map[string]string, error) {
		out := map[string]string{}
		for _, tok := range tokenize(value) {
			placed := false
			for _, b := range buckets {
				if _, filled := out[b.Target]; filled && !b.Multi {
					continue
				}
				if !b.Match(tok) {
					continue
				}
				if existing, ok := out[b.Target]; ok {
					out[b.Target] = existing + " " + tok
				} else {
					out[b.Target] = tok
				}
				placed = true
				break
			}
			if !placed {
				if existing, ok := out[fallback]; ok {
					out[fallback] = existing + " " + tok
				} else {
					out[fallback] = tok
				}
			}
		}
		if len(out) == 0 {
			return nil, fmt.Errorf("empty %s value", name)
		}
		return out, nil
	}
}
