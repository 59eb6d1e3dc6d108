package grammar

import (
	"fmt"
	"sort"
)

// Frozen is the immutable, compiled form of a rule graph. Nothing in it is
// mutated after Compile returns, so one Frozen value can back arbitrarily
// many concurrent walks; each walk only needs its own random source.
type Frozen struct {
	nodes   map[uint32]*frozenNode
	names   map[string]uint32
	content map[uint32]string
	classes *ClassSampler
}

type frozenNode struct {
	id      uint32
	kind    NodeKind
	pointer uint32
	cumFreq []float64
	edges   []frozenEdge
}

type frozenEdge struct {
	probability float64
	target      *frozenNode
}

// Compile normalizes the graph and freezes it into its immutable form. The
// graph is consumed: it must not be used, and in particular not compiled
// again, after this call. Freezing runs two passes so that forward
// references resolve by construction: first every node is allocated without
// edges, then each node's edges are wired to the already-allocated targets.
func (g *Graph) Compile() *Frozen {
	g.Normalize()

	f := &Frozen{
		nodes:   make(map[uint32]*frozenNode, len(g.nodes)),
		names:   g.names,
		content: g.content,
		classes: g.classes,
	}

	for id, n := range g.nodes {
		f.nodes[id] = &frozenNode{
			id:      n.ID,
			kind:    n.Kind,
			pointer: n.Pointer,
			cumFreq: n.CumFreq,
		}
	}

	for id, n := range g.nodes {
		fn := f.nodes[id]
		fn.edges = make([]frozenEdge, len(n.Edges))
		for i, e := range n.Edges {
			target, ok := f.nodes[e.Target]
			if !ok {
				// Cannot happen for parser-built graphs; an edge
				// always points at an allocated node.
				panic(fmt.Sprintf("grammar: dangling edge %d -> %d at freeze", id, e.Target))
			}
			fn.edges[i] = frozenEdge{probability: e.Probability, target: target}
		}
	}

	return f
}

// RuleID resolves a rule name to its Header node id.
func (f *Frozen) RuleID(name string) (uint32, bool) {
	id, ok := f.names[name]
	return id, ok
}

// Rules returns the declared rule names in sorted order.
func (f *Frozen) Rules() []string {
	names := make([]string, 0, len(f.names))
	for name := range f.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Classes exposes the sampler holding the grammar's compiled character
// classes. Mutating its length bounds is only safe before walks start.
func (f *Frozen) Classes() *ClassSampler {
	return f.classes
}

// Parse scans and parses grammar text into its mutable graph form without
// compiling it, which is what the dot inspector works from. Most callers
// want Compile instead.
func Parse(text string) (*Graph, error) {
	tokens, scanErrs := NewLexer([]byte(text)).Scan()
	if len(scanErrs) > 0 {
		return nil, scanErrs
	}

	p := newParser(tokens)
	p.parseProgram()
	if err := p.errors.Err(); err != nil {
		return nil, err
	}
	return p.graph, nil
}

// Compile runs the full pipeline: scan, parse, normalize, freeze. On failure
// the returned error is an ErrorList of ScanError and ParseError values and
// no automaton is produced.
func Compile(text string) (*Frozen, error) {
	g, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return g.Compile(), nil
}
