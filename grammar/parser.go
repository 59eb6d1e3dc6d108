package grammar

import (
	"fmt"
	"sort"
	"strconv"
)

// Parser is a recursive-descent consumer of the token stream. It does not
// build a syntax tree; each statement is translated directly into nodes and
// weighted edges of the Graph. Parsing halts at the end of the statement in
// which the first unrecoverable defect appears.
type Parser struct {
	graph  *Graph
	tokens []Token
	index  int
	errors ErrorList

	declared  map[uint32]bool
	ruleNames map[uint32]string
	firstRef  map[uint32]Position

	nextControl uint32
	nextContent uint32
}

func newParser(tokens []Token) *Parser {
	return &Parser{
		graph:       newGraph(),
		tokens:      tokens,
		declared:    make(map[uint32]bool),
		ruleNames:   make(map[uint32]string),
		firstRef:    make(map[uint32]Position),
		nextControl: controlIDBase,
		nextContent: contentIDBase,
	}
}

func (p *Parser) controlID() uint32 {
	p.nextControl++
	return p.nextControl
}

func (p *Parser) contentID() uint32 {
	p.nextContent--
	return p.nextContent
}

func (p *Parser) errorf(pos Position, format string, args ...any) {
	p.errors = append(p.errors, &ParseError{Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

// ruleID resolves a rule name to its Header id, reserving a fresh control id
// on first reference. Definition and forward use share the same id.
func (p *Parser) ruleID(name string, pos Position) uint32 {
	if id, ok := p.graph.names[name]; ok {
		return id
	}
	id := p.controlID()
	p.graph.names[name] = id
	p.ruleNames[id] = name
	p.declared[id] = false
	p.firstRef[id] = pos
	return id
}

func (p *Parser) parseProgram() {
	for p.index < len(p.tokens) {
		p.parseStatement()
		if len(p.errors) > 0 {
			return
		}
	}
	p.checkReferences()
}

func (p *Parser) parseStatement() {
	subject := p.tokens[p.index]
	if subject.Kind != TokenIdent {
		p.errorf(subject.Pos, "expected rule name at start of statement, found %s", subject.Kind)
		p.index++
		return
	}
	p.index++

	if p.index >= len(p.tokens) || p.tokens[p.index].Kind != TokenColon {
		p.errorf(subject.Pos, "expected ':' after rule name %q", subject.Text)
		p.index++
		return
	}
	p.index++

	id := p.ruleID(subject.Text, subject.Pos)
	if p.declared[id] {
		p.errorf(subject.Pos, "multiple definitions for %q", subject.Text)
	}
	p.declared[id] = true

	// The implicit global Start node reaches every declared rule.
	start := p.graph.node(startNodeID, KindStart)
	header := p.graph.node(id, KindHeader)
	start.addEdge(header.ID, 1.0)

	p.parseBody(id, false)
}

// parseBody consumes one rule body (or one parenthesized group when nested)
// and wires it into the graph. Sequencing works through two cursors: buffer
// is the node the next term attaches to, and seqStart is the node the
// current term's edge left from, which the quantifier operators use to add
// skip and loop edges around the term.
//
// For a nested group the scope gets its own pseudo-End node; the method then
// returns the group's (entry, exit) pair so the caller can splice the group
// into its sequence and apply quantifiers to it as a whole. For a top-level
// body both results are nil.
func (p *Parser) parseBody(rootID uint32, nested bool) (*Node, *Node) {
	root := p.graph.node(rootID, KindGeneric)
	buffer := root
	var seqStart *Node

	end := p.graph.node(endNodeID, KindEnd)
	if nested {
		end = p.graph.node(p.controlID(), KindEnd)
	}

	for p.index < len(p.tokens) {
		tok := p.tokens[p.index]

		switch tok.Kind {
		case TokenIdent:
			// Reference to another rule: a Pointer node plus its
			// continuation Jump. The walker pushes the Jump id and
			// transfers to the referenced Header.
			target := p.ruleID(tok.Text, tok.Pos)
			ptr := p.graph.node(p.controlID(), KindPointer)
			ptr.Pointer = target
			buffer.addEdge(ptr.ID, p.probability())
			jump := p.graph.node(p.controlID(), KindJump)
			ptr.addEdge(jump.ID, 1.0)
			seqStart = buffer
			buffer = jump

		case TokenChar, TokenClass:
			id := p.contentID()
			p.graph.content[id] = tok.Text
			kind := KindChar
			if tok.Kind == TokenClass {
				kind = KindClass
				p.graph.classes.Compile(tok.Text)
			}
			leaf := p.graph.node(id, kind)
			buffer.addEdge(leaf.ID, p.probability())
			jump := p.graph.node(p.controlID(), KindJump)
			leaf.addEdge(jump.ID, 1.0)
			seqStart = buffer
			buffer = jump

		case TokenColon:
			// A second ':' before the statement terminator.
			p.errorf(tok.Pos, "missing semicolon")
			return nil, nil

		case TokenMaybe:
			if seqStart != nil {
				seqStart.addEdge(buffer.ID, 1.0-p.probability())
			}

		case TokenOneOrMore:
			if seqStart != nil {
				buffer.addEdge(seqStart.ID, p.probability())
			}

		case TokenAnyNumber:
			if seqStart != nil {
				prob := p.probability()
				seqStart.addEdge(buffer.ID, 1.0-prob)
				buffer.addEdge(seqStart.ID, prob)
			}

		case TokenInfinite:
			if seqStart != nil {
				end.addEdge(seqStart.ID, 1.0)
			}

		case TokenAlternative:
			buffer.addEdge(end.ID, p.probability())
			buffer = root
			seqStart = nil

		case TokenEnd:
			buffer.addEdge(end.ID, 1.0)
			if nested {
				p.errorf(tok.Pos, "stray '('")
			}
			p.index++
			return nil, nil

		case TokenGroupOpen:
			p.index++
			entry, exit := p.parseBody(buffer.ID, true)
			seqStart = entry
			if exit != nil {
				buffer = exit
			}
			// The recursive call left the index on the closing ')';
			// the shared advance below steps past it.

		case TokenGroupClose:
			if nested {
				buffer.addEdge(end.ID, 1.0)
				return root, end
			}
			p.errorf(tok.Pos, "stray ')'")
		}

		p.index++
	}

	// Ran out of tokens before the statement terminator.
	last := p.tokens[len(p.tokens)-1]
	if nested {
		p.errorf(last.Pos, "unclosed '('")
	} else {
		p.errorf(last.Pos, "missing semicolon")
	}
	return nil, nil
}

// probability resolves the weight of the construct at the current token. A
// <float> annotation immediately following it overrides the 0.5 default; the
// annotation token is consumed along with the construct. A negative value is
// an error. A malformed numeral is an error too, and the annotation token is
// left unconsumed with the occurrence falling back to the default.
func (p *Parser) probability() float64 {
	p.index++
	if p.index >= len(p.tokens) || p.tokens[p.index].Kind != TokenProbability {
		p.index--
		return 0.5
	}

	tok := p.tokens[p.index]
	value, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil {
		p.index--
		p.errorf(tok.Pos, "malformed probability %q", tok.Text)
		return 0.5
	}
	if value < 0 {
		p.errorf(tok.Pos, "negative probability %q", tok.Text)
		return 0
	}
	return value
}

// checkReferences reports every rule name that was referenced but never
// declared. It runs once, after the whole program parsed cleanly.
func (p *Parser) checkReferences() {
	var undefined []uint32
	for id, ok := range p.declared {
		if !ok {
			undefined = append(undefined, id)
		}
	}
	sort.Slice(undefined, func(i, j int) bool { return undefined[i] < undefined[j] })
	for _, id := range undefined {
		p.errorf(p.firstRef[id], "definition of %q not found", p.ruleNames[id])
	}
}
