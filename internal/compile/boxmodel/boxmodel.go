// Package boxmodel derives the four nested box-model rectangles for every
// node and applies the approximate flex/grid child placement. The flex pass
// is sequential main-axis placement only; wrapping and grow/shrink
// distribution are deliberately out of scope. Grid places children into a
// uniform cell grid where every track counts as one unit.
package boxmodel

import (
	"strconv"
	"strings"

	"github.com/xkilldash9x/framecast/api/schemas"
)

// Options controls layout resolution.
type Options struct {
	ViewportWidth  float64
	ViewportHeight float64
}

// Resolve computes box-model rectangles for every node, then repositions
// flex and grid children. Nodes are expected to carry world rectangles from
// coordinate normalization; nodes without one fall back to the captured rect.
func Resolve(doc *schemas.Document, opts Options) {
	index := doc.Index()
	rootFont := rootFontSize(doc)

	for _, n := range doc.Nodes {
		if display(n) == "flex" {
			placeFlexChildren(n, index, opts, rootFont)
		}
		if display(n) == "grid" {
			placeGridChildren(n, index, opts)
		}
	}

	// Box rectangles come last so they reflect the flex/grid repositioning.
	for _, n := range doc.Nodes {
		n.BoxModel = computeBoxModel(n, opts, rootFont)
	}
}

// rootFontSize reads the first document root's font size; rem units resolve
// against it. Falls back to the 16px base.
func rootFontSize(doc *schemas.Document) float64 {
	for _, n := range doc.Nodes {
		if n.Parent != "" {
			continue
		}
		if v := styleOf(n, "font-size"); v != "" {
			if size := ParseLength(v, Ref{Reference: BaseFontSize}); size > 0 {
				return size
			}
		}
		break
	}
	return BaseFontSize
}

// nodeFontSize resolves the node's own font size for em units. Relative
// values resolve against the root font size; absent or unparsable values
// inherit it.
func nodeFontSize(n *schemas.Node, rootFont float64) float64 {
	v := styleOf(n, "font-size")
	if v == "" {
		return rootFont
	}
	size := ParseLength(v, Ref{FontSize: rootFont, RootFontSize: rootFont, Reference: rootFont})
	if size <= 0 {
		return rootFont
	}
	return size
}

// styleOf reads a property from the node's computed map, falling back to the
// normalized declarations for nodes resolved without an inheritance pass.
func styleOf(n *schemas.Node, prop string) string {
	if v, ok := n.Computed[prop]; ok {
		return v
	}
	return n.Declarations[prop]
}

func display(n *schemas.Node) string {
	d := styleOf(n, "display")
	switch {
	case strings.Contains(d, "flex"):
		return "flex"
	case strings.Contains(d, "grid"):
		return "grid"
	default:
		return d
	}
}

func baseRect(n *schemas.Node) schemas.Rect {
	if n.WorldRect != nil {
		return *n.WorldRect
	}
	return n.Rect
}

func refFor(n *schemas.Node, opts Options, rootFont float64) Ref {
	return Ref{
		FontSize:       nodeFontSize(n, rootFont),
		RootFontSize:   rootFont,
		Reference:      baseRect(n).Width,
		ViewportWidth:  opts.ViewportWidth,
		ViewportHeight: opts.ViewportHeight,
	}
}

// edges collects the four per-side values of a property family in pixels.
func edges(n *schemas.Node, prefix, suffix string, parse func(string, Ref) float64, opts Options, rootFont float64) Edges {
	ref := refFor(n, opts, rootFont)
	side := func(name string) float64 {
		prop := prefix + name
		if suffix != "" {
			prop += "-" + suffix
		}
		return parse(styleOf(n, prop), ref)
	}
	return Edges{
		Top:    side("top"),
		Right:  side("right"),
		Bottom: side("bottom"),
		Left:   side("left"),
	}
}

// Edges holds per-side spacing in pixels.
type Edges struct {
	Top, Right, Bottom, Left float64
}

// expand grows r outward by e; shrink is the inverse.
func expand(r schemas.Rect, e Edges) schemas.Rect {
	return schemas.Rect{
		X:      r.X - e.Left,
		Y:      r.Y - e.Top,
		Width:  r.Width + e.Left + e.Right,
		Height: r.Height + e.Top + e.Bottom,
	}
}

func shrink(r schemas.Rect, e Edges) schemas.Rect {
	return expand(r, Edges{Top: -e.Top, Right: -e.Right, Bottom: -e.Bottom, Left: -e.Left})
}

// computeBoxModel derives content/padding/border/margin rectangles from the
// node's resolved rect. Under border-box sizing the captured rect is the
// border box and the inner boxes shrink inward; under the content-box default
// the captured rect is the content box and the outer boxes grow outward. The
// margin box always expands the border box.
func computeBoxModel(n *schemas.Node, opts Options, rootFont float64) *schemas.BoxModel {
	rect := baseRect(n)
	padding := edges(n, "padding-", "", ParseLength, opts, rootFont)
	border := edges(n, "border-", "width", ParseBorderWidth, opts, rootFont)
	margin := edges(n, "margin-", "", ParseLength, opts, rootFont)

	var box schemas.BoxModel
	if styleOf(n, "box-sizing") == "border-box" {
		box.Border = rect
		box.Padding = shrink(rect, border)
		box.Content = shrink(box.Padding, padding)
	} else {
		box.Content = rect
		box.Padding = expand(rect, padding)
		box.Border = expand(box.Padding, border)
	}
	box.Margin = expand(box.Border, margin)
	return &box
}

// placeFlexChildren lays the children of a flex container out sequentially
// along the main axis, separated by the container's gap.
func placeFlexChildren(parent *schemas.Node, index map[string]*schemas.Node, opts Options, rootFont float64) {
	origin := baseRect(parent)
	direction := styleOf(parent, "flex-direction")
	if direction == "" {
		direction = "row"
	}
	horizontal := direction == "row" || direction == "row-reverse"

	gapProp := "column-gap"
	if !horizontal {
		gapProp = "row-gap"
	}
	gap := ParseLength(styleOf(parent, gapProp), refFor(parent, opts, rootFont))

	children := childNodes(parent, index)
	if strings.HasSuffix(direction, "-reverse") {
		for i, j := 0, len(children)-1; i < j; i, j = i+1, j-1 {
			children[i], children[j] = children[j], children[i]
		}
	}

	cursor := 0.0
	for _, child := range children {
		rect := baseRect(child)
		if horizontal {
			rect.X = origin.X + cursor
			rect.Y = origin.Y
			cursor += rect.Width + gap
		} else {
			rect.X = origin.X
			rect.Y = origin.Y + cursor
			cursor += rect.Height + gap
		}
		child.WorldRect = &rect
	}
}

// placeGridChildren drops children into a uniform cell grid: the parent's
// content box divided by the parsed track counts, every track one unit.
func placeGridChildren(parent *schemas.Node, index map[string]*schemas.Node, opts Options) {
	origin := baseRect(parent)
	cols := countTracks(styleOf(parent, "grid-template-columns"))
	if cols < 1 {
		cols = 1
	}
	children := childNodes(parent, index)
	rows := countTracks(styleOf(parent, "grid-template-rows"))
	if rows < 1 {
		rows = (len(children) + cols - 1) / cols
		if rows < 1 {
			rows = 1
		}
	}

	cellW := origin.Width / float64(cols)
	cellH := origin.Height / float64(rows)
	for i, child := range children {
		col := i % cols
		row := i / cols
		child.WorldRect = &schemas.Rect{
			X:      origin.X + float64(col)*cellW,
			Y:      origin.Y + float64(row)*cellH,
			Width:  cellW,
			Height: cellH,
		}
	}
}

func childNodes(parent *schemas.Node, index map[string]*schemas.Node) []*schemas.Node {
	children := make([]*schemas.Node, 0, len(parent.Children))
	for _, id := range parent.Children {
		if child, ok := index[id]; ok && child.Pseudo == schemas.PseudoNone {
			children = append(children, child)
		}
	}
	return children
}

// countTracks counts track definitions in a grid-template value, expanding
// repeat(n, ...) recursively and skipping [line-name] groups. The track split
// is paren-depth aware so functional tracks like minmax(0, 1fr) count as one
// unit. Fractional-unit tracks are not weighted; every track counts as one.
func countTracks(value string) int {
	value = strings.TrimSpace(value)
	if value == "" || value == "none" {
		return 0
	}
	count := 0
	for _, tok := range splitTracks(value) {
		if strings.HasPrefix(tok, "[") {
			continue
		}
		if times, body, ok := parseRepeat(tok); ok {
			count += times * countTracks(body)
			continue
		}
		count++
	}
	return count
}

// splitTracks splits on whitespace outside parentheses.
func splitTracks(value string) []string {
	var toks []string
	depth, start := 0, -1
	for i, r := range value {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 && (r == ' ' || r == '\t') {
			if start >= 0 {
				toks = append(toks, value[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		toks = append(toks, value[start:])
	}
	return toks
}

// parseRepeat recognizes repeat(<count>, <tracks>) with an integer count.
// auto-fill/auto-fit counts are not integers and fall through, counting the
// whole token as one track.
func parseRepeat(tok string) (int, string, bool) {
	if !strings.HasPrefix(tok, "repeat(") || !strings.HasSuffix(tok, ")") {
		return 0, "", false
	}
	inner := tok[len("repeat(") : len(tok)-1]
	depth := 0
	for i, r := range inner {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth > 0 {
				continue
			}
			count, err := strconv.Atoi(strings.TrimSpace(inner[:i]))
			if err != nil || count < 1 {
				return 0, "", false
			}
			return count, strings.TrimSpace(inner[i+1:]), true
		}
	}
	return 0, "", false
}
