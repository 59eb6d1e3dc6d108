package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dhamidi/resrap/prng"
)

// Walk executes the automaton from the named rule until the token budget is
// exhausted, a dead end is reached, or an End node is reached with an empty
// call stack. Every emitted literal or class sample counts as one token
// against the budget.
//
// Walks are independent: the automaton is only read, and all mutable state
// (call stack, output, the random source) is local to the call.
func (f *Frozen) Walk(start string, budget int, rng *prng.Source) (string, error) {
	startID, ok := f.names[start]
	if !ok {
		return "", fmt.Errorf("grammar: unknown start rule %q", start)
	}

	var out strings.Builder
	var stack []uint32
	emitted := 0
	current := f.mustNode(startID)

	for {
		if emitted >= budget {
			return out.String(), nil
		}

		switch current.kind {
		case KindChar:
			out.WriteString(Unescape(f.content[current.id]))
			emitted++

		case KindClass:
			out.WriteString(f.classes.Sample(f.content[current.id], rng))
			emitted++

		case KindPointer:
			// Call: remember the continuation, transfer to the
			// referenced rule's Header.
			if len(current.edges) == 0 {
				panic(fmt.Sprintf("grammar: pointer node %d has no continuation", current.id))
			}
			stack = append(stack, current.edges[0].target.id)
			current = f.mustNode(current.pointer)
			continue

		case KindEnd:
			// Return: resume at the saved continuation, or finish
			// the walk when there is nothing to return to.
			if len(stack) == 0 {
				return out.String(), nil
			}
			current = f.mustNode(stack[len(stack)-1])
			stack = stack[:len(stack)-1]
			continue
		}

		if len(current.edges) == 0 {
			// Dead end.
			return out.String(), nil
		}

		x := rng.Float64()
		idx := sort.SearchFloat64s(current.cumFreq, x)
		if idx >= len(current.edges) {
			idx = len(current.edges) - 1
		}
		current = current.edges[idx].target
	}
}

// mustNode resolves a node id that the automaton's own structure guarantees
// to exist. A miss means the freeze step produced a broken automaton.
func (f *Frozen) mustNode(id uint32) *frozenNode {
	n, ok := f.nodes[id]
	if !ok {
		panic(fmt.Sprintf("grammar: node %d missing from frozen automaton", id))
	}
	return n
}

// Unescape resolves the escape sequences of a character literal at emission
// time: \n, \t, \r, \\, \' and \" map to their control characters, any other
// backslash-prefixed character is kept verbatim including the backslash, and
// a trailing backslash is kept as-is.
func Unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var out strings.Builder
	out.Grow(len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '\\' {
			out.WriteRune(runes[i])
			continue
		}
		if i+1 >= len(runes) {
			out.WriteRune('\\')
			break
		}
		i++
		switch runes[i] {
		case 'n':
			out.WriteRune('\n')
		case 't':
			out.WriteRune('\t')
		case 'r':
			out.WriteRune('\r')
		case '\\':
			out.WriteRune('\\')
		case '\'':
			out.WriteRune('\'')
		case '"':
			out.WriteRune('"')
		default:
			out.WriteRune('\\')
			out.WriteRune(runes[i])
		}
	}
	return out.String()
}
