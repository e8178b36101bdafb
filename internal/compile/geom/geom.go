// Package geom composes per-node affine transforms across the ancestor chain
// and resolves every node's rectangle into world space.
package geom

import (
	"math"

	"github.com/xkilldash9x/framecast/api/schemas"
)

// Matrix is a 2D affine transformation:
//
//	[ A C E ]
//	[ B D F ]
//	[ 0 0 1 ]
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity returns the no-op matrix.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// FromTransform converts the wire-format row-major [a,b,c,d,e,f] transform.
func FromTransform(t *schemas.Transform) Matrix {
	if t == nil {
		return Identity()
	}
	return Matrix{A: t[0], B: t[1], C: t[2], D: t[3], E: t[4], F: t[5]}
}

// Transform converts the matrix back to the wire format.
func (m Matrix) Transform() *schemas.Transform {
	t := schemas.Transform{m.A, m.B, m.C, m.D, m.E, m.F}
	return &t
}

// Multiply combines two matrices (m1 * m2). Order matters.
func (m1 Matrix) Multiply(m2 Matrix) Matrix {
	return Matrix{
		A: m1.A*m2.A + m1.C*m2.B,
		B: m1.B*m2.A + m1.D*m2.B,
		C: m1.A*m2.C + m1.C*m2.D,
		D: m1.B*m2.C + m1.D*m2.D,
		E: m1.A*m2.E + m1.C*m2.F + m1.E,
		F: m1.B*m2.E + m1.D*m2.F + m1.F,
	}
}

// Apply transforms a point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// Options controls coordinate normalization.
type Options struct {
	// Round snaps resulting world coordinates to the nearest integer pixel.
	Round bool
}

// NormalizeCoordinates resolves every node's world transform and world
// rectangle by composing its local transform with all ancestor transforms,
// nearest ancestor first. The input node order is left untouched so paint
// ordering derived earlier stays stable. The per-run memo plus visited-set
// keeps the ancestor walk finite on cyclic parent links.
func NormalizeCoordinates(doc *schemas.Document, opts Options) {
	index := doc.Index()
	memo := make(map[string]Matrix, len(doc.Nodes))

	for _, n := range doc.Nodes {
		world := worldTransform(n, index, memo, map[string]bool{})
		n.WorldTransform = world.Transform()

		x, y := world.Apply(n.Rect.X, n.Rect.Y)
		if opts.Round {
			x = math.Round(x)
			y = math.Round(y)
		}
		n.WorldRect = &schemas.Rect{X: x, Y: y, Width: n.Rect.Width, Height: n.Rect.Height}
	}
}

// worldTransform composes child-local transform A with the accumulated
// parent transform B as compose(A, B) = B * A, so A applies first.
func worldTransform(n *schemas.Node, index map[string]*schemas.Node, memo map[string]Matrix, visited map[string]bool) Matrix {
	if m, ok := memo[n.ID]; ok {
		return m
	}
	if visited[n.ID] {
		return FromTransform(n.LocalTransform)
	}
	visited[n.ID] = true

	local := FromTransform(n.LocalTransform)
	parent, ok := index[n.Parent]
	if n.Parent == "" || !ok {
		memo[n.ID] = local
		return local
	}
	world := worldTransform(parent, index, memo, visited).Multiply(local)
	memo[n.ID] = world
	return world
}
