package grammar

import (
	"fmt"
	"sort"
	"strings"
)

// Graphviz export of both graph forms. Debugging aid only; generation never
// depends on it.

func dotNodeStyle(kind NodeKind) (shape, color string) {
	switch kind {
	case KindStart:
		return "diamond", "green"
	case KindEnd:
		return "diamond", "red"
	case KindHeader:
		return "box", "lightblue"
	case KindPointer:
		return "ellipse", "yellow"
	case KindChar:
		return "box", "lightgreen"
	case KindClass:
		return "box", "orange"
	case KindJump:
		return "circle", "gray"
	}
	return "box", "white"
}

func dotEscape(s string) string {
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\\n`)
	s = strings.ReplaceAll(s, "\t", `\\t`)
	return s
}

func sortedIDs[T any](nodes map[uint32]T) []uint32 {
	ids := make([]uint32, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Dot renders the construction-time graph, with raw edge weights, in
// Graphviz dot format.
func (g *Graph) Dot() string {
	var b strings.Builder
	b.WriteString("digraph Graph {\n")
	b.WriteString("    rankdir=LR;\n")
	b.WriteString("    node [shape=box];\n\n")

	for _, id := range sortedIDs(g.nodes) {
		n := g.nodes[id]
		shape, color := dotNodeStyle(n.Kind)

		label := n.Kind.String()
		if n.Kind == KindChar || n.Kind == KindClass {
			if content, ok := g.content[id]; ok {
				label = dotEscape(content)
			}
		}

		fmt.Fprintf(&b, "    n%d [label=\"%s\\nid:%d\", shape=%s, fillcolor=%s, style=filled];\n",
			id, label, id, shape, color)

		for _, e := range n.Edges {
			if e.Probability == 1.0 {
				fmt.Fprintf(&b, "    n%d -> n%d;\n", id, e.Target)
			} else {
				fmt.Fprintf(&b, "    n%d -> n%d [label=\"%.2f\"];\n", id, e.Target, e.Probability)
			}
		}
	}

	b.WriteString("}\n")
	return b.String()
}

// Dot renders the frozen automaton, with probabilities and cumulative
// frequencies on the edges and rule names on Pointer nodes, in Graphviz dot
// format.
func (f *Frozen) Dot() string {
	ruleName := make(map[uint32]string, len(f.names))
	for name, id := range f.names {
		ruleName[id] = name
	}

	var b strings.Builder
	b.WriteString("digraph FrozenGraph {\n")
	b.WriteString("    rankdir=LR;\n")
	b.WriteString("    node [shape=box];\n\n")

	for _, id := range sortedIDs(f.nodes) {
		n := f.nodes[id]
		shape, color := dotNodeStyle(n.kind)

		label := n.kind.String()
		switch n.kind {
		case KindPointer:
			if name, ok := ruleName[n.pointer]; ok {
				label = "→" + name
			} else {
				label = fmt.Sprintf("→%d", n.pointer)
			}
		case KindChar, KindClass:
			if content, ok := f.content[id]; ok {
				label = dotEscape(content)
			}
		case KindHeader:
			if name, ok := ruleName[id]; ok {
				label = "Header " + name
			}
		}

		fmt.Fprintf(&b, "    n%d [label=\"%s\\nid:%d\", shape=%s, fillcolor=%s, style=filled];\n",
			id, label, id, shape, color)

		for i, e := range n.edges {
			if e.probability == 1.0 && len(n.edges) == 1 {
				fmt.Fprintf(&b, "    n%d -> n%d;\n", id, e.target.id)
			} else {
				fmt.Fprintf(&b, "    n%d -> n%d [label=\"p=%.2f cf=%.2f\"];\n",
					id, e.target.id, e.probability, n.cumFreq[i])
			}
		}
	}

	b.WriteString("}\n")
	return b.String()
}
