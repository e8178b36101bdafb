// Package cascade computes per-node inheritance chains over a captured
// document whose declarations have already been normalized to longhands.
// Resolution is parent-before-child with per-run memoization; a visited-set
// guards against garbled parent links so bad capture data can never loop the
// resolver forever.
package cascade

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/framecast/api/schemas"
)

// inheritableProperties is the standard naturally-inheriting CSS set:
// typography, direction and writing mode, list styling, table aids, cursor,
// visibility and the white-space/word-break family.
var inheritableProperties = map[string]bool{
	"color": true, "font-family": true, "font-size": true, "font-style": true,
	"font-variant": true, "font-weight": true, "font-stretch": true,
	"line-height": true, "letter-spacing": true, "word-spacing": true,
	"text-align": true, "text-indent": true, "text-transform": true,
	"text-shadow": true,

	"direction": true, "writing-mode": true,

	"list-style-type": true, "list-style-position": true, "list-style-image": true,

	"border-collapse": true, "border-spacing": true, "caption-side": true,
	"empty-cells": true, "table-layout": true,

	"cursor": true, "visibility": true, "quotes": true, "orphans": true,
	"widows": true, "pointer-events": true,

	"white-space": true, "word-break": true, "word-wrap": true,
	"overflow-wrap": true, "hyphens": true, "tab-size": true,
}

// InheritedValue records where an inherited property value came from.
type InheritedValue struct {
	Value             string `json:"value"`
	SourceID          string `json:"sourceId"`
	Distance          int    `json:"distance"`
	NaturallyInherits bool   `json:"naturallyInherits"`
}

// ExplicitValue records a declaration on the node itself.
type ExplicitValue struct {
	Value                string `json:"value"`
	OverridesInheritance bool   `json:"overridesInheritance"`
}

// Chain is the full inheritance record of one node. Computed is always the
// union of Inherited and Explicit with Explicit winning; a property present
// in Explicit never appears in Inherited.
type Chain struct {
	Inherited map[string]InheritedValue `json:"inherited"`
	Explicit  map[string]ExplicitValue  `json:"explicit"`
	Computed  map[string]string         `json:"computed"`
	Summary   schemas.CascadeSummary    `json:"summary"`
}

// Resolver computes inheritance chains for one document. State is per-run;
// a Resolver is not reused across documents.
type Resolver struct {
	index  map[string]*schemas.Node
	mu     sync.RWMutex
	chains map[string]*Chain
}

// NewResolver builds a resolver over the document's node set.
func NewResolver(doc *schemas.Document) *Resolver {
	return &Resolver{
		index:  doc.Index(),
		chains: make(map[string]*Chain, len(doc.Nodes)),
	}
}

// ResolveAll computes the chain for every node in the document.
func (r *Resolver) ResolveAll(doc *schemas.Document) map[string]*Chain {
	for _, n := range doc.Nodes {
		r.Resolve(n.ID)
	}
	return r.chains
}

// ResolveAllParallel resolves every node using up to limit goroutines.
// Workers only take the resolver lock for memo reads and writes, so
// resolution itself runs concurrently; two workers racing on a shared
// ancestor may both build its chain, and the first write becomes canonical.
// Chain construction is a pure function of the node and its parent chain,
// so the race never changes the result.
func (r *Resolver) ResolveAllParallel(doc *schemas.Document, limit int) map[string]*Chain {
	if limit <= 1 {
		return r.ResolveAll(doc)
	}
	var g errgroup.Group
	g.SetLimit(limit)
	for _, n := range doc.Nodes {
		id := n.ID
		g.Go(func() error {
			r.Resolve(id)
			return nil
		})
	}
	// Workers never return errors; Wait only synchronizes completion.
	_ = g.Wait()
	return r.chains
}

// Resolve returns the chain for id, computing ancestors first. Unknown ids
// yield nil.
func (r *Resolver) Resolve(id string) *Chain {
	return r.resolve(id, map[string]bool{})
}

func (r *Resolver) lookup(id string) (*Chain, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	chain, ok := r.chains[id]
	return chain, ok
}

// store memoizes chain for id unless another goroutine got there first, in
// which case the existing chain stays canonical.
func (r *Resolver) store(id string, chain *Chain) *Chain {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.chains[id]; ok {
		return existing
	}
	r.chains[id] = chain
	return chain
}

// resolve walks the parent chain recursively. The visited set breaks cycles:
// revisiting an id means the branch has no further usable ancestry.
func (r *Resolver) resolve(id string, visited map[string]bool) *Chain {
	if chain, done := r.lookup(id); done {
		return chain
	}
	node, ok := r.index[id]
	if !ok {
		return nil
	}
	if visited[id] {
		return nil
	}
	visited[id] = true

	var parent *Chain
	var parentID string
	if node.Parent != "" && node.Parent != id {
		if _, exists := r.index[node.Parent]; exists {
			parent = r.resolve(node.Parent, visited)
			parentID = node.Parent
		}
	}

	return r.store(id, r.buildChain(node, parent, parentID))
}

func (r *Resolver) buildChain(node *schemas.Node, parent *Chain, parentID string) *Chain {
	chain := &Chain{
		Inherited: map[string]InheritedValue{},
		Explicit:  map[string]ExplicitValue{},
		Computed:  map[string]string{},
		Summary:   summarize(node),
	}

	if parent != nil {
		for prop, parentValue := range parent.Computed {
			if !inheritableProperties[prop] {
				continue
			}
			if _, declared := node.Declarations[prop]; declared {
				continue
			}
			chain.Inherited[prop] = inheritedFrom(parent, parentID, prop, parentValue, true)
		}
	}

	for prop, value := range node.Declarations {
		if value == "inherit" {
			// The literal keyword forces inheritance even for properties that
			// do not naturally inherit.
			if parent != nil {
				if parentValue, has := parent.Computed[prop]; has {
					chain.Inherited[prop] = inheritedFrom(parent, parentID, prop, parentValue, inheritableProperties[prop])
				}
			}
			continue
		}
		_, wasInherited := chain.Inherited[prop]
		if wasInherited {
			delete(chain.Inherited, prop)
		}
		chain.Explicit[prop] = ExplicitValue{Value: value, OverridesInheritance: wasInherited || (parent != nil && parentHasInheritable(parent, prop))}
	}

	for prop, iv := range chain.Inherited {
		chain.Computed[prop] = iv.Value
	}
	for prop, ev := range chain.Explicit {
		chain.Computed[prop] = ev.Value
	}
	return chain
}

// inheritedFrom tracks the nearest explicit ancestor transitively: if the
// parent held the property explicitly the hop count restarts at one,
// otherwise the parent's own inherited record is extended by one hop.
func inheritedFrom(parent *Chain, parentID, prop, value string, natural bool) InheritedValue {
	if _, explicit := parent.Explicit[prop]; explicit {
		return InheritedValue{Value: value, SourceID: parentID, Distance: 1, NaturallyInherits: natural}
	}
	if prev, ok := parent.Inherited[prop]; ok {
		return InheritedValue{Value: value, SourceID: prev.SourceID, Distance: prev.Distance + 1, NaturallyInherits: natural}
	}
	return InheritedValue{Value: value, SourceID: parentID, Distance: 1, NaturallyInherits: natural}
}

func parentHasInheritable(parent *Chain, prop string) bool {
	if !inheritableProperties[prop] {
		return false
	}
	_, has := parent.Computed[prop]
	return has
}

// summarize derives the diagnostic cascade digest: !important property names
// plus a basic id/class/element specificity score from the capture-time
// selector hint. It never feeds back into Computed.
func summarize(node *schemas.Node) schemas.CascadeSummary {
	var summary schemas.CascadeSummary
	for prop, value := range node.Declarations {
		if strings.Contains(value, "!important") {
			summary.Important = append(summary.Important, prop)
		}
	}
	sort.Strings(summary.Important)
	summary.Specificity = specificity(node.SelectorHint)
	return summary
}

// specificity scores a selector hint as 100 per id, 10 per class or
// attribute, 1 per element name.
func specificity(selector string) int {
	if selector == "" {
		return 0
	}
	score := 0
	for _, part := range strings.FieldsFunc(selector, func(r rune) bool {
		return r == ' ' || r == '>' || r == '+' || r == '~'
	}) {
		rest := part
		for rest != "" {
			next := strings.IndexAny(rest[1:], ".#[")
			var simple string
			if next == -1 {
				simple, rest = rest, ""
			} else {
				simple, rest = rest[:next+1], rest[next+1:]
			}
			switch simple[0] {
			case '#':
				score += 100
			case '.', '[':
				score += 10
			default:
				score++
			}
		}
	}
	return score
}
