// Package pseudo splices synthetic ::before/::after nodes into the flattened,
// paint-ordered node sequence immediately around their host node.
package pseudo

import (
	"github.com/google/uuid"

	"github.com/xkilldash9x/framecast/api/schemas"
)

// Result reports how the attachment pass went.
type Result struct {
	Attached   int
	Unattached []string // ids of pseudo nodes whose host was not found
}

// Attach partitions nodes into pseudo and regular, then re-emits the regular
// sequence with each host's "before" decorations immediately preceding it and
// its "after" decorations immediately following. Pseudo nodes whose host is
// missing are appended at the end, unattached, so no visual content is ever
// dropped. Pseudo nodes that arrive without a capture-assigned id get a fresh
// UUID so downstream consumers can still address them.
func Attach(nodes []*schemas.Node) ([]*schemas.Node, Result) {
	before := map[string][]*schemas.Node{}
	after := map[string][]*schemas.Node{}
	var pseudos []*schemas.Node
	regular := make([]*schemas.Node, 0, len(nodes))

	for _, n := range nodes {
		if n.Pseudo == schemas.PseudoNone {
			regular = append(regular, n)
			continue
		}
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		host := n.Host
		if host == "" {
			host = n.Parent
		}
		switch n.Pseudo {
		case schemas.PseudoBefore:
			before[host] = append(before[host], n)
		default:
			after[host] = append(after[host], n)
		}
		pseudos = append(pseudos, n)
	}

	hosts := make(map[string]bool, len(regular))
	for _, n := range regular {
		hosts[n.ID] = true
	}

	var res Result
	out := make([]*schemas.Node, 0, len(nodes))
	for _, n := range regular {
		for _, p := range before[n.ID] {
			out = append(out, p)
			res.Attached++
		}
		out = append(out, n)
		for _, p := range after[n.ID] {
			out = append(out, p)
			res.Attached++
		}
	}
	for _, p := range pseudos {
		host := p.Host
		if host == "" {
			host = p.Parent
		}
		if !hosts[host] {
			out = append(out, p)
			res.Unattached = append(res.Unattached, p.ID)
		}
	}
	return out, res
}
