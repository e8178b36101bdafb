// Package stacking classifies stacking-context-creating nodes and derives
// the global back-to-front paint order for a captured document.
package stacking

import (
	"sort"
	"strconv"
	"strings"

	"github.com/xkilldash9x/framecast/api/schemas"
)

// Context is one stacking context: the node that establishes it, the member
// nodes that do not themselves establish a child context, and its position in
// the context hierarchy.
type Context struct {
	ID              string     `json:"id"`
	NodeIDs         []string   `json:"nodeIds"`
	ZIndex          float64    `json:"zIndex"`
	ParentContextID string     `json:"parentContextId,omitempty"`
	Children        []*Context `json:"children,omitempty"`
}

// Tree is the full context hierarchy of one document.
type Tree struct {
	Root     *Context
	Contexts map[string]*Context
}

// Build classifies every node, assembles the context hierarchy and returns it
// together with the flat paint order. Contexts are sorted by their own
// z-index in a single flattening pass; ties keep original document order.
// Child contexts are not recursively interleaved by ancestor depth;
// downstream consumers rely on the flat ordering.
func Build(doc *schemas.Document) (*Tree, []string) {
	index := doc.Index()

	tree := &Tree{Contexts: map[string]*Context{}}
	var order []*Context

	// Pass 1: every context-creating node gets a context. The document roots
	// fold into one synthetic root context so exactly one context has no
	// parent even when capture produced multiple roots.
	tree.Root = &Context{ID: "root"}
	tree.Contexts["root"] = tree.Root
	order = append(order, tree.Root)

	for _, n := range doc.Nodes {
		if n.ID == tree.Root.ID {
			// A node that shares the synthetic root's id folds into it rather
			// than clobbering the map entry.
			continue
		}
		if isDocumentRoot(n, index) || CreatesContext(n) {
			ctx := &Context{ID: n.ID, ZIndex: numericZIndex(n)}
			tree.Contexts[n.ID] = ctx
			order = append(order, ctx)
		}
	}

	// Pass 2: attach members and wire the hierarchy.
	for _, n := range doc.Nodes {
		if ctx, creates := tree.Contexts[n.ID]; creates && n.ID != "root" {
			parent := nearestContext(n, index, tree)
			ctx.ParentContextID = parent.ID
			parent.Children = append(parent.Children, ctx)
			n.ContextID = parent.ID
			continue
		}
		owner := nearestContext(n, index, tree)
		owner.NodeIDs = append(owner.NodeIDs, n.ID)
		n.ContextID = owner.ID
	}

	// Flatten: stable sort by each context's own z-index, then append each
	// context's creator followed by its members in document order.
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].ZIndex < order[j].ZIndex
	})

	paint := make([]string, 0, len(doc.Nodes))
	for _, ctx := range order {
		if ctx.ID != "root" {
			paint = append(paint, ctx.ID)
		}
		paint = append(paint, ctx.NodeIDs...)
	}
	return tree, paint
}

// CreatesContext applies the fixed trigger set. The bare numeric z-index rule
// is a deliberate over-approximation of the flex/grid-parent condition in the
// real cascade: painting too many nodes as contexts is safe, missing one is
// not.
func CreatesContext(n *schemas.Node) bool {
	get := func(prop string) string {
		return strings.TrimSpace(n.Declarations[prop])
	}

	position := get("position")
	_, zNumeric := parseNumber(zIndexOf(n))

	switch {
	case position == "fixed" || position == "sticky":
		return true
	case (position == "absolute" || position == "relative") && zNumeric:
		return true
	case zNumeric:
		return true
	}

	if opacity, ok := parseNumber(get("opacity")); ok && opacity < 1 {
		return true
	}
	if v := get("transform"); v != "" && v != "none" {
		return true
	}
	if v := get("filter"); v != "" && v != "none" {
		return true
	}
	if get("isolation") == "isolate" {
		return true
	}
	if v := get("mix-blend-mode"); v != "" && v != "normal" {
		return true
	}
	if v := get("clip-path"); v != "" && v != "none" {
		return true
	}
	if v := get("mask"); v != "" && v != "none" {
		return true
	}
	if v := get("will-change"); v != "" && v != "auto" {
		return true
	}
	return false
}

// nearestContext walks the parent chain to the closest context-creating
// ancestor, defaulting to the synthetic root. The visited set tolerates
// cyclic parent links in bad capture data.
func nearestContext(n *schemas.Node, index map[string]*schemas.Node, tree *Tree) *Context {
	visited := map[string]bool{n.ID: true}
	current := n.Parent
	for current != "" && !visited[current] {
		visited[current] = true
		if ctx, ok := tree.Contexts[current]; ok {
			return ctx
		}
		parent, ok := index[current]
		if !ok {
			break
		}
		current = parent.Parent
	}
	return tree.Root
}

func isDocumentRoot(n *schemas.Node, index map[string]*schemas.Node) bool {
	if n.Parent == "" {
		return true
	}
	_, ok := index[n.Parent]
	return !ok
}

func zIndexOf(n *schemas.Node) string {
	if n.ZIndexRaw != "" {
		return n.ZIndexRaw
	}
	return n.Declarations["z-index"]
}

func numericZIndex(n *schemas.Node) float64 {
	z, _ := parseNumber(zIndexOf(n))
	return z
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "auto" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
