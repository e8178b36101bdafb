package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/framecast/api/schemas"
)

func TestIdentityRoundTrip(t *testing.T) {
	id := Identity()
	assert.Equal(t, Matrix{A: 1, D: 1}, id)
	assert.Equal(t, &schemas.Transform{1, 0, 0, 1, 0, 0}, id.Transform())
	assert.Equal(t, id, FromTransform(nil))
}

func TestMultiplyTranslations(t *testing.T) {
	a := Matrix{A: 1, D: 1, E: 10, F: 20}
	b := Matrix{A: 1, D: 1, E: 3, F: 4}
	got := a.Multiply(b)
	assert.Equal(t, Matrix{A: 1, D: 1, E: 13, F: 24}, got)
}

func TestMultiplyScaleThenTranslate(t *testing.T) {
	scale := Matrix{A: 2, D: 2}
	translate := Matrix{A: 1, D: 1, E: 5, F: 7}
	// scale * translate applies the translation first, then scales it.
	got := scale.Multiply(translate)
	x, y := got.Apply(1, 1)
	assert.Equal(t, 12.0, x)
	assert.Equal(t, 16.0, y)
}

func TestApply(t *testing.T) {
	m := Matrix{A: 0, B: 1, C: -1, D: 0, E: 100, F: 0} // 90 degree rotation, then shift
	x, y := m.Apply(10, 0)
	assert.Equal(t, 100.0, x)
	assert.Equal(t, 10.0, y)
}

func tr(a, b, c, d, e, f float64) *schemas.Transform {
	t := schemas.Transform{a, b, c, d, e, f}
	return &t
}

func TestNormalizeCoordinatesComposesAncestors(t *testing.T) {
	doc := &schemas.Document{Nodes: []*schemas.Node{
		{ID: "root", Rect: schemas.Rect{Width: 800, Height: 600}, LocalTransform: tr(1, 0, 0, 1, 100, 50)},
		{ID: "child", Parent: "root", Rect: schemas.Rect{X: 10, Y: 10, Width: 50, Height: 50}, LocalTransform: tr(1, 0, 0, 1, 5, 5)},
	}}
	NormalizeCoordinates(doc, Options{})

	child := doc.Nodes[1]
	require.NotNil(t, child.WorldTransform)
	assert.Equal(t, tr(1, 0, 0, 1, 105, 55), child.WorldTransform)
	assert.Equal(t, &schemas.Rect{X: 115, Y: 65, Width: 50, Height: 50}, child.WorldRect)
}

func TestNormalizeCoordinatesNoTransformsIsIdentity(t *testing.T) {
	doc := &schemas.Document{Nodes: []*schemas.Node{
		{ID: "a", Rect: schemas.Rect{X: 3, Y: 4, Width: 10, Height: 10}},
	}}
	NormalizeCoordinates(doc, Options{})

	a := doc.Nodes[0]
	assert.Equal(t, tr(1, 0, 0, 1, 0, 0), a.WorldTransform)
	assert.Equal(t, &schemas.Rect{X: 3, Y: 4, Width: 10, Height: 10}, a.WorldRect)
}

func TestNormalizeCoordinatesRounds(t *testing.T) {
	doc := &schemas.Document{Nodes: []*schemas.Node{
		{ID: "a", Rect: schemas.Rect{X: 1.4, Y: 2.6, Width: 9.5, Height: 9.5}},
	}}
	NormalizeCoordinates(doc, Options{Round: true})

	a := doc.Nodes[0]
	assert.Equal(t, 1.0, a.WorldRect.X)
	assert.Equal(t, 3.0, a.WorldRect.Y)
	// Dimensions carry through unrounded; only the origin snaps.
	assert.Equal(t, 9.5, a.WorldRect.Width)
}

func TestNormalizeCoordinatesScaledParent(t *testing.T) {
	doc := &schemas.Document{Nodes: []*schemas.Node{
		{ID: "p", Rect: schemas.Rect{Width: 100, Height: 100}, LocalTransform: tr(2, 0, 0, 2, 0, 0)},
		{ID: "c", Parent: "p", Rect: schemas.Rect{X: 10, Y: 10, Width: 20, Height: 20}},
	}}
	NormalizeCoordinates(doc, Options{})

	c := doc.Nodes[1]
	assert.Equal(t, tr(2, 0, 0, 2, 0, 0), c.WorldTransform)
	assert.Equal(t, 20.0, c.WorldRect.X)
	assert.Equal(t, 20.0, c.WorldRect.Y)
}

func TestNormalizeCoordinatesTolerantOfCycles(t *testing.T) {
	doc := &schemas.Document{Nodes: []*schemas.Node{
		{ID: "a", Parent: "b", Rect: schemas.Rect{X: 1, Y: 1}, LocalTransform: tr(1, 0, 0, 1, 2, 2)},
		{ID: "b", Parent: "a", Rect: schemas.Rect{X: 1, Y: 1}},
	}}
	NormalizeCoordinates(doc, Options{})

	for _, n := range doc.Nodes {
		require.NotNil(t, n.WorldRect, "node %s", n.ID)
		require.NotNil(t, n.WorldTransform, "node %s", n.ID)
	}
}

func TestNormalizeCoordinatesDanglingParent(t *testing.T) {
	doc := &schemas.Document{Nodes: []*schemas.Node{
		{ID: "stray", Parent: "gone", Rect: schemas.Rect{X: 7, Y: 8, Width: 1, Height: 1}, LocalTransform: tr(1, 0, 0, 1, 10, 10)},
	}}
	NormalizeCoordinates(doc, Options{})

	stray := doc.Nodes[0]
	assert.Equal(t, 17.0, stray.WorldRect.X)
	assert.Equal(t, 18.0, stray.WorldRect.Y)
}
