package schemas

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDocument(t *testing.T) {
	input := `{
		"nodes": [
			{"id": "root", "type": "FRAME", "rect": {"x": 0, "y": 0, "width": 800, "height": 600}},
			{"id": "child", "type": "TEXT", "parent": "root", "declarations": {"color": "red"}}
		],
		"rootIds": ["root"]
	}`
	doc, err := DecodeDocument(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, NodeFrame, doc.Nodes[0].Type)
	assert.Equal(t, 800.0, doc.Nodes[0].Rect.Width)
	assert.Equal(t, "red", doc.Nodes[1].Declarations["color"])
	assert.Equal(t, []string{"root"}, doc.RootIDs)
}

func TestDecodeDocumentRejectsDuplicateIDs(t *testing.T) {
	input := `{"nodes": [{"id": "a"}, {"id": "a"}]}`
	_, err := DecodeDocument(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate node id")
}

func TestDecodeDocumentRejectsMissingID(t *testing.T) {
	input := `{"nodes": [{"type": "TEXT"}]}`
	_, err := DecodeDocument(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no id")
}

func TestDecodeDocumentRejectsNullNode(t *testing.T) {
	input := `{"nodes": [null]}`
	_, err := DecodeDocument(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "null")
}

func TestDecodeDocumentRejectsMalformedJSON(t *testing.T) {
	_, err := DecodeDocument(strings.NewReader(`{"nodes": [`))
	assert.Error(t, err)
}

func TestEncodeCompiledRoundTrip(t *testing.T) {
	compiled := &CompiledDocument{
		Nodes: []*Node{
			{ID: "a", Type: NodeFrame, WorldRect: &Rect{X: 1, Y: 2, Width: 3, Height: 4}},
		},
		PaintOrder: []string{"a"},
	}
	var buf bytes.Buffer
	require.NoError(t, EncodeCompiled(&buf, compiled))

	out := buf.String()
	assert.Contains(t, out, `"paintOrder"`)
	assert.Contains(t, out, `"worldRect"`)
	// Bookkeeping fields never serialize.
	assert.NotContains(t, out, "contextId")
	assert.NotContains(t, out, "rawSnapshot")
}

func TestNodeCloneIsIndependent(t *testing.T) {
	orig := &Node{
		ID:             "n",
		Declarations:   map[string]string{"color": "red"},
		Children:       []string{"a"},
		LocalTransform: &Transform{1, 0, 0, 1, 5, 5},
		WorldRect:      &Rect{X: 1},
	}
	clone := orig.Clone()
	clone.Declarations["color"] = "blue"
	clone.Children[0] = "b"
	clone.LocalTransform[4] = 99
	clone.WorldRect.X = 42

	assert.Equal(t, "red", orig.Declarations["color"])
	assert.Equal(t, "a", orig.Children[0])
	assert.Equal(t, 5.0, orig.LocalTransform[4])
	assert.Equal(t, 1.0, orig.WorldRect.X)
}

func TestDocumentCloneIsDeep(t *testing.T) {
	doc := &Document{
		Nodes:   []*Node{{ID: "a", Declarations: map[string]string{"color": "red"}}},
		RootIDs: []string{"a"},
	}
	clone := doc.Clone()
	clone.Nodes[0].Declarations["color"] = "blue"
	clone.RootIDs[0] = "z"

	assert.Equal(t, "red", doc.Nodes[0].Declarations["color"])
	assert.Equal(t, "a", doc.RootIDs[0])
}

func TestIdentityTransform(t *testing.T) {
	assert.Equal(t, Transform{1, 0, 0, 1, 0, 0}, Identity())
}

func TestIndex(t *testing.T) {
	doc := &Document{Nodes: []*Node{{ID: "a"}, {ID: "b"}}}
	idx := doc.Index()
	require.Len(t, idx, 2)
	assert.Same(t, doc.Nodes[1], idx["b"])
}
