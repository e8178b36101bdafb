package schemas

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DecodeDocument reads a captured snapshot from r and validates the minimum
// structural invariants: every node has an ID and IDs are unique. Missing
// optional fields are tolerated; unknown style properties pass through.
func DecodeDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	seen := make(map[string]struct{}, len(doc.Nodes))
	for i, n := range doc.Nodes {
		if n == nil {
			return nil, fmt.Errorf("snapshot node %d is null", i)
		}
		if n.ID == "" {
			return nil, fmt.Errorf("snapshot node %d has no id", i)
		}
		if _, dup := seen[n.ID]; dup {
			return nil, fmt.Errorf("duplicate node id %q", n.ID)
		}
		seen[n.ID] = struct{}{}
	}
	return &doc, nil
}

// EncodeCompiled writes the compiled document to w as indented JSON.
func EncodeCompiled(w io.Writer, doc *CompiledDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding compiled document: %w", err)
	}
	return nil
}

// EncodeReport writes the diagnostic report to w as indented JSON.
func EncodeReport(w io.Writer, rep *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}
