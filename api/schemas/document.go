package schemas

// -- Captured Document Schemas --

// NodeType identifies the visual primitive a captured node maps to.
type NodeType string

const (
	NodeText   NodeType = "TEXT"
	NodeImage  NodeType = "IMAGE"
	NodeFrame  NodeType = "FRAME"
	NodeSVG    NodeType = "SVG"
	NodeCanvas NodeType = "CANVAS"
	NodeVideo  NodeType = "VIDEO"
)

// Rect is an axis-aligned rectangle in CSS pixels.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Transform is a row-major 2x3 affine matrix [a, b, c, d, e, f]:
//
//	[ a c e ]
//	[ b d f ]
type Transform [6]float64

// Identity returns the no-op transform.
func Identity() Transform {
	return Transform{1, 0, 0, 1, 0, 0}
}

// BoxModel holds the four nested box-model rectangles for a node.
// Invariant: margin encloses border encloses padding encloses content
// whenever all spacing values are non-negative.
type BoxModel struct {
	Content Rect `json:"content"`
	Padding Rect `json:"padding"`
	Border  Rect `json:"border"`
	Margin  Rect `json:"margin"`
}

// PseudoKind marks synthetic decoration nodes generated from ::before/::after.
type PseudoKind string

const (
	PseudoNone   PseudoKind = ""
	PseudoBefore PseudoKind = "before"
	PseudoAfter  PseudoKind = "after"
)

// Node is one captured element of a rendered page. Identity is the stable
// string ID assigned at capture time; nodes reference each other only by ID.
type Node struct {
	ID           string            `json:"id"`
	Tag          string            `json:"tag,omitempty"`
	Type         NodeType          `json:"type"`
	Rect         Rect              `json:"rect"`
	Declarations map[string]string `json:"declarations,omitempty"`
	Children     []string          `json:"children,omitempty"`
	Parent       string            `json:"parent,omitempty"`
	// LocalTransform is nil when the element carries no transform (identity).
	LocalTransform *Transform `json:"localTransform,omitempty"`
	ZIndexRaw      string     `json:"zIndexRaw,omitempty"`

	// Pseudo and Host are set on synthetic ::before/::after nodes; Host names
	// the regular node the decoration belongs to.
	Pseudo PseudoKind `json:"pseudo,omitempty"`
	Host   string     `json:"host,omitempty"`

	// SelectorHint optionally carries the selector that matched this node at
	// capture time. Used only for the cascade diagnostic summary.
	SelectorHint string `json:"selectorHint,omitempty"`

	// -- Resolved outputs (populated by the compiler) --

	WorldRect *Rect             `json:"worldRect,omitempty"`
	Computed  map[string]string `json:"computed,omitempty"`
	BoxModel  *BoxModel         `json:"boxModel,omitempty"`

	// -- Bookkeeping (never serialized; cleared by the output sanitizer) --

	WorldTransform *Transform        `json:"-"`
	ContextID      string            `json:"-"`
	RawSnapshot    map[string]string `json:"-"`
}

// Clone returns a deep copy of the node. Pipeline stages operate on clones so
// the captured input is never mutated in place.
func (n *Node) Clone() *Node {
	c := *n
	c.Declarations = cloneStringMap(n.Declarations)
	c.Computed = cloneStringMap(n.Computed)
	c.RawSnapshot = cloneStringMap(n.RawSnapshot)
	if n.Children != nil {
		c.Children = append([]string(nil), n.Children...)
	}
	if n.LocalTransform != nil {
		t := *n.LocalTransform
		c.LocalTransform = &t
	}
	if n.WorldTransform != nil {
		t := *n.WorldTransform
		c.WorldTransform = &t
	}
	if n.WorldRect != nil {
		r := *n.WorldRect
		c.WorldRect = &r
	}
	if n.BoxModel != nil {
		b := *n.BoxModel
		c.BoxModel = &b
	}
	return &c
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Document is a captured page snapshot. Nodes keep the original DOM order.
type Document struct {
	Nodes   []*Node  `json:"nodes"`
	RootIDs []string `json:"rootIds,omitempty"`
}

// Index builds an ID lookup over the document's nodes.
func (d *Document) Index() map[string]*Node {
	idx := make(map[string]*Node, len(d.Nodes))
	for _, n := range d.Nodes {
		idx[n.ID] = n
	}
	return idx
}

// Clone deep-copies the document.
func (d *Document) Clone() *Document {
	out := &Document{Nodes: make([]*Node, len(d.Nodes))}
	for i, n := range d.Nodes {
		out.Nodes[i] = n.Clone()
	}
	if d.RootIDs != nil {
		out.RootIDs = append([]string(nil), d.RootIDs...)
	}
	return out
}

// CompiledDocument is the compiler's output: normalized nodes in paint order
// plus the global paint-order sequence and the anomalies seen during the run.
type CompiledDocument struct {
	Nodes      []*Node   `json:"nodes"`
	RootIDs    []string  `json:"rootIds,omitempty"`
	PaintOrder []string  `json:"paintOrder"`
	Anomalies  []Anomaly `json:"anomalies,omitempty"`
}
