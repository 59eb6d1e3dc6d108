package grammar

type NodeKind uint8

const (
	KindStart NodeKind = iota
	KindHeader
	KindJump
	KindEnd
	KindChar
	KindClass
	KindPointer
	KindGeneric
)

var nodeKindNames = [...]string{
	KindStart:   "Start",
	KindHeader:  "Header",
	KindJump:    "Jump",
	KindEnd:     "End",
	KindChar:    "Char",
	KindClass:   "Class",
	KindPointer: "Pointer",
	KindGeneric: "Generic",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// Node ids are split into two disjoint spaces: rule and control nodes take
// ascending ids starting at controlIDBase, while literal and class content
// nodes take descending ids starting at the top of the uint32 range. The two
// counters can never collide regardless of grammar size. Ids below
// controlIDBase are reserved; only the shared Start and End nodes use them.
const (
	startNodeID   uint32 = 0
	endNodeID     uint32 = 1
	controlIDBase uint32 = 1000
	contentIDBase uint32 = ^uint32(0)
)

// Edge is a weighted reference to another node by id. Probabilities are raw
// weights until Normalize converts them into cumulative frequencies.
type Edge struct {
	Probability float64
	Target      uint32
}

// Node is one vertex of the weighted rule graph. Pointer is only meaningful
// for KindPointer nodes, where it names the Header node of the invoked rule.
type Node struct {
	ID      uint32
	Kind    NodeKind
	Pointer uint32
	Edges   []Edge
	CumFreq []float64
}

func (n *Node) addEdge(target uint32, probability float64) {
	n.Edges = append(n.Edges, Edge{Probability: probability, Target: target})
}

// Graph is the mutable, construction-time form of a compiled grammar: an
// id-keyed arena of nodes plus the bookkeeping the walker needs later (rule
// name table, literal content table, compiled character classes). It is built
// single-threaded by the parser and consumed by Compile.
type Graph struct {
	nodes   map[uint32]*Node
	names   map[string]uint32
	content map[uint32]string
	classes *ClassSampler
}

func newGraph() *Graph {
	return &Graph{
		nodes:   make(map[uint32]*Node),
		names:   make(map[string]uint32),
		content: make(map[uint32]string),
		classes: NewClassSampler(),
	}
}

// node finds or creates the node with the given id. An existing node keeps
// the kind it was created with; forward references therefore reserve an id
// without fixing a kind until the defining occurrence is parsed.
func (g *Graph) node(id uint32, kind NodeKind) *Node {
	if n, ok := g.nodes[id]; ok {
		return n
	}
	n := &Node{ID: id, Kind: kind}
	g.nodes[id] = n
	return n
}

// RuleID resolves a rule name to its Header node id.
func (g *Graph) RuleID(name string) (uint32, bool) {
	id, ok := g.names[name]
	return id, ok
}

// Normalize converts every node's raw edge weights into a cumulative
// frequency vector: each weight is divided by the node's total and prefix
// summed, so the last entry is 1.0 up to rounding. A node whose weights sum
// to zero is normalized as if all weights were equal; that case is reachable
// from grammars that annotate every edge with <0>. Idempotent only while the
// edge weights are unchanged, so Compile runs it exactly once.
func (g *Graph) Normalize() {
	for _, n := range g.nodes {
		if len(n.Edges) == 0 {
			n.CumFreq = nil
			continue
		}

		sum := 0.0
		for _, e := range n.Edges {
			sum += e.Probability
		}

		cf := make([]float64, len(n.Edges))
		acc := 0.0
		for i, e := range n.Edges {
			if sum == 0 {
				acc += 1.0 / float64(len(n.Edges))
			} else {
				acc += e.Probability / sum
			}
			cf[i] = acc
		}
		n.CumFreq = cf
	}
}
