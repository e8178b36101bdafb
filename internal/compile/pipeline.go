// Package compile orchestrates the rendering-tree pipeline: shorthand
// normalization, inheritance resolution, stacking-context discovery,
// coordinate composition, layout resolution, pseudo-element attachment and
// output sanitization. Every stage consumes the full node list produced by
// the one before it and returns fresh state; the captured input is never
// mutated.
package compile

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xkilldash9x/framecast/api/schemas"
	"github.com/xkilldash9x/framecast/internal/compile/boxmodel"
	"github.com/xkilldash9x/framecast/internal/compile/cascade"
	"github.com/xkilldash9x/framecast/internal/compile/geom"
	"github.com/xkilldash9x/framecast/internal/compile/pseudo"
	"github.com/xkilldash9x/framecast/internal/compile/shorthand"
	"github.com/xkilldash9x/framecast/internal/compile/stacking"
	"github.com/xkilldash9x/framecast/internal/config"
)

// Compiler compiles captured documents. All state is per-run; a Compiler is
// safe for concurrent use across documents.
type Compiler struct {
	cfg    config.CompilerConfig
	logger *zap.Logger
}

// New builds a compiler with the given options.
func New(cfg config.CompilerConfig, logger *zap.Logger) *Compiler {
	return &Compiler{cfg: cfg, logger: logger.With(zap.String("component", "compiler"))}
}

// run carries the mutable per-run state through the stages, keeping the
// compiler re-entrant across concurrent documents.
type run struct {
	doc       *schemas.Document
	report    *schemas.Report
	anomalies []schemas.Anomaly
}

func (r *run) anomaly(kind schemas.AnomalyKind, nodeID, detail string) {
	r.anomalies = append(r.anomalies, schemas.Anomaly{
		ID:     uuid.NewString(),
		Kind:   kind,
		NodeID: nodeID,
		Detail: detail,
	})
}

// Compile runs the full pipeline over a captured document. Everything inside
// the compiler is recoverable: malformed values, orphaned nodes, cyclic
// parent chains and unattachable pseudo elements all degrade locally and are
// reported as anomalies on the output document.
func (c *Compiler) Compile(ctx context.Context, input *schemas.Document) (*schemas.CompiledDocument, *schemas.Report, error) {
	if input == nil {
		return nil, nil, fmt.Errorf("nil document")
	}
	r := &run{doc: input.Clone(), report: &schemas.Report{}}

	stages := []struct {
		name string
		fn   func(*run)
	}{
		{"roots", c.resolveRoots},
		{"normalize", c.normalizeDeclarations},
		{"inherit", c.resolveInheritance},
		{"stacking", c.buildStackingOrder},
		{"coordinates", c.normalizeCoordinates},
		{"layout", c.resolveLayout},
		{"pseudo", c.attachPseudoNodes},
		{"sanitize", c.sanitize},
	}
	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return nil, nil, fmt.Errorf("compilation canceled before %s: %w", stage.name, err)
		}
		stage.fn(r)
	}

	out := &schemas.CompiledDocument{
		Nodes:      r.doc.Nodes,
		RootIDs:    r.doc.RootIDs,
		PaintOrder: r.paintOrderIDs(),
		Anomalies:  r.anomalies,
	}
	r.report.Anomalies = r.anomalies
	if !c.cfg.EmitReport {
		return out, nil, nil
	}
	return out, r.report, nil
}

func (r *run) paintOrderIDs() []string {
	ids := make([]string, len(r.doc.Nodes))
	for i, n := range r.doc.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// resolveRoots recomputes the root set, promoting nodes with dangling parent
// references and breaking cyclic parent chains. A node is never dropped for
// bad ancestry.
func (c *Compiler) resolveRoots(r *run) {
	index := r.doc.Index()
	r.doc.RootIDs = r.doc.RootIDs[:0]
	inCycle := map[string]bool{}

	for _, n := range r.doc.Nodes {
		if n.Parent != "" {
			if _, ok := index[n.Parent]; !ok {
				c.logger.Warn("Dangling parent reference; promoting node to root",
					zap.String("node", n.ID), zap.String("parent", n.Parent))
				r.anomaly(schemas.AnomalyOrphanedNode, n.ID, fmt.Sprintf("parent %q not in document", n.Parent))
				n.Parent = ""
			}
		}
		if n.Parent == "" && n.Pseudo == schemas.PseudoNone {
			r.doc.RootIDs = append(r.doc.RootIDs, n.ID)
		}
	}

	// Cycle detection walks each node's ancestry once; every node on a
	// detected cycle is reported a single time.
	for _, n := range r.doc.Nodes {
		if inCycle[n.ID] {
			continue
		}
		visited := map[string]bool{}
		current := n
		for current != nil && current.Parent != "" {
			if visited[current.ID] {
				if !inCycle[current.ID] {
					for id := range visited {
						inCycle[id] = true
					}
					r.anomaly(schemas.AnomalyParentCycle, current.ID, "parent chain revisits node")
					c.logger.Warn("Cyclic parent chain detected", zap.String("node", current.ID))
				}
				break
			}
			visited[current.ID] = true
			current = index[current.Parent]
		}
	}
}

// normalizeDeclarations expands every node's shorthands, preserving the raw
// snapshot for diagnostics until the sanitize stage strips it.
func (c *Compiler) normalizeDeclarations(r *run) {
	found, expanded := 0, 0
	for _, n := range r.doc.Nodes {
		if n.Declarations == nil {
			continue
		}
		for name := range n.Declarations {
			if shorthand.IsShorthand(name) {
				found++
			}
		}
		n.RawSnapshot = n.Declarations
		normalized, stats, warnings := shorthand.Normalize(n.Declarations)
		n.Declarations = normalized
		expanded += stats.ShorthandsExpanded
		for _, w := range warnings {
			r.anomaly(schemas.AnomalyMalformedValue, n.ID, w)
			r.report.Normalization.PotentialIssues = append(r.report.Normalization.PotentialIssues,
				fmt.Sprintf("node %s: %s", n.ID, w))
			c.logger.Warn("Shorthand expansion failed; passing value through",
				zap.String("node", n.ID), zap.String("detail", w))
		}
	}
	r.report.Normalization.ShorthandsFound = found
	r.report.Normalization.Expansions = expanded
	if found > 0 {
		r.report.Normalization.ConversionRate = float64(expanded) / float64(found)
	} else {
		r.report.Normalization.ConversionRate = 1
	}
}

// resolveInheritance computes every node's chain and installs the computed
// style map on the node.
func (c *Compiler) resolveInheritance(r *run) {
	resolver := cascade.NewResolver(r.doc)
	chains := resolver.ResolveAllParallel(r.doc, c.cfg.Parallelism)
	summaries := make(map[string]schemas.CascadeSummary, len(chains))
	for _, n := range r.doc.Nodes {
		chain := chains[n.ID]
		if chain == nil {
			continue
		}
		n.Computed = chain.Computed
		summaries[n.ID] = chain.Summary
	}
	if c.cfg.EmitReport {
		r.report.Cascade = summaries
	}
}

// buildStackingOrder derives the paint order and reorders the node list to
// match it, so every later stage and the output stay paint-ordered.
func (c *Compiler) buildStackingOrder(r *run) {
	_, paint := stacking.Build(r.doc)
	index := r.doc.Index()
	ordered := make([]*schemas.Node, 0, len(r.doc.Nodes))
	seen := make(map[string]bool, len(paint))
	for _, id := range paint {
		if n, ok := index[id]; ok && !seen[id] {
			ordered = append(ordered, n)
			seen[id] = true
		}
	}
	for _, n := range r.doc.Nodes {
		if !seen[n.ID] {
			ordered = append(ordered, n)
		}
	}
	r.doc.Nodes = ordered
}

func (c *Compiler) normalizeCoordinates(r *run) {
	geom.NormalizeCoordinates(r.doc, geom.Options{Round: c.cfg.RoundCoordinates})
}

func (c *Compiler) resolveLayout(r *run) {
	boxmodel.Resolve(r.doc, boxmodel.Options{
		ViewportWidth:  c.cfg.ViewportWidth,
		ViewportHeight: c.cfg.ViewportHeight,
	})
}

func (c *Compiler) attachPseudoNodes(r *run) {
	nodes, res := pseudo.Attach(r.doc.Nodes)
	r.doc.Nodes = nodes
	for _, id := range res.Unattached {
		r.anomaly(schemas.AnomalyUnattachedPseudo, id, "host node not found; appended unattached")
		c.logger.Warn("Pseudo element host not found", zap.String("node", id))
	}
}

// sanitize strips bookkeeping-only state so external consumers see a clean
// document.
func (c *Compiler) sanitize(r *run) {
	for _, n := range r.doc.Nodes {
		n.WorldTransform = nil
		n.ContextID = ""
		n.RawSnapshot = nil
	}
}
