// Package shorthand expands CSS shorthand declarations into their explicit
// longhand equivalents. Expansion is table-driven: every recognized shorthand
// name maps to its own expander, so each property family is testable in
// isolation and a malformed value only ever degrades that one declaration.
package shorthand

import (
	"fmt"
	"sort"
)

// Stats summarizes one normalization call. Reproducible for a given input.
type Stats struct {
	OriginalProperties   int
	NormalizedProperties int
	ShorthandsExpanded   int
}

// expandFunc turns one shorthand value into its longhand set.
type expandFunc func(value string) (map[string]string, error)

// expanders maps every recognized shorthand to its expansion function.
var expanders = map[string]expandFunc{
	"margin":        boxExpander("margin-top", "margin-right", "margin-bottom", "margin-left"),
	"padding":       boxExpander("padding-top", "padding-right", "padding-bottom", "padding-left"),
	"inset":         boxExpander("top", "right", "bottom", "left"),
	"border-width":  boxExpander("border-top-width", "border-right-width", "border-bottom-width", "border-left-width"),
	"border-style":  boxExpander("border-top-style", "border-right-style", "border-bottom-style", "border-left-style"),
	"border-color":  boxExpander("border-top-color", "border-right-color", "border-bottom-color", "border-left-color"),
	"border":        expandBorder,
	"border-top":    borderSideExpander("border-top"),
	"border-right":  borderSideExpander("border-right"),
	"border-bottom": borderSideExpander("border-bottom"),
	"border-left":   borderSideExpander("border-left"),
	"border-radius": expandBorderRadius,
	"font":          expandFont,
	"text-decoration": tokenBucketExpander("text-decoration", bucketSpec{
		{"text-decoration-style", isDecorationStyle, false},
		{"text-decoration-line", isDecorationLine, true},
		{"text-decoration-color", isColor, false},
	}, "text-decoration-color"),
	"background":  expandBackground,
	"flex":        expandFlex,
	"flex-flow":   expandFlexFlow,
	"gap":         expandGap,
	"grid":        expandGridTemplate("grid-template-rows", "grid-template-columns"),
	"grid-template": expandGridTemplate("grid-template-rows", "grid-template-columns"),
	"grid-column": expandGridLine("grid-column-start", "grid-column-end"),
	"grid-row":    expandGridLine("grid-row-start", "grid-row-end"),
	"grid-area":   expandGridArea,
	"overflow":    expandOverflow,
	"list-style": tokenBucketExpander("list-style", bucketSpec{
		{"list-style-position", isListPosition, false},
		{"list-style-image", isImageToken, false},
		{"list-style-type", anyToken, false},
	}, "list-style-type"),
	"animation":  expandAnimation,
	"transition": expandTransition,
	"outline":    borderSideExpander("outline"),
}

// IsShorthand reports whether name is a recognized shorthand property.
func IsShorthand(name string) bool {
	_, ok := expanders[name]
	return ok
}

// dropKeywords are cascade reset keywords with no longhand meaning here.
var dropKeywords = map[string]bool{
	"":        true,
	"initial": true,
	"unset":   true,
	"revert":  true,
}

// ownKeywords lists reset-family keywords that a shorthand's grammar maps to
// a concrete longhand set. These expand instead of being dropped: flex calls
// out "initial" as the fixed triple grow=0, shrink=1, basis=auto.
var ownKeywords = map[string]map[string]bool{
	"flex": {"initial": true},
}

// Normalize expands every recognized shorthand in decls and passes all other
// declarations through unchanged. It never fails: a value that defeats its
// expansion grammar is re-emitted under the original shorthand name and noted
// in the returned warnings. Warnings are ordered by property name so repeated
// runs produce identical output.
func Normalize(decls map[string]string) (map[string]string, Stats, []string) {
	out := make(map[string]string, len(decls))
	stats := Stats{OriginalProperties: len(decls)}
	var warnings []string

	names := make([]string, 0, len(decls))
	for name := range decls {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := decls[name]
		expand, ok := expanders[name]
		if !ok {
			out[name] = value
			continue
		}
		if dropKeywords[value] && !ownKeywords[name][value] {
			continue
		}
		longhands, err := safeExpand(expand, value)
		if err != nil {
			out[name] = value
			warnings = append(warnings, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		stats.ShorthandsExpanded++
		for prop, v := range longhands {
			out[prop] = v
		}
	}

	stats.NormalizedProperties = len(out)
	return out, stats, warnings
}

// safeExpand shields the pipeline from a panicking expander. One bad
// declaration must never abort normalization of the rest of the map.
func safeExpand(expand expandFunc, value string) (longhands map[string]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			longhands = nil
			err = fmt.Errorf("expansion panic: %v", r)
		}
	}()
	return expand(value)
}
