// Package grammar compiles a probabilistic grammar notation into a weighted
// automaton and generates text by walking it.
//
// # Notation
//
// A grammar is a sequence of statements of the form
//
//	Name: Body;
//
// where a body is a sequence of terms, optionally split into alternatives
// with '|'. A term is a character literal ('...'), a character class
// ([a-z0-9_]), a reference to another rule by name, or a parenthesized group.
// Terms and the quantifier operators may be followed by a probability
// annotation <p> overriding the 0.5 default:
//
//	Ident:  [a-z_] [a-z0-9_] * <0.8>;
//	Stmt:   Ident '=' Expr ';' | 'return ' <0.2> Expr;
//
// Quantifiers modify the edges around the preceding term: '?' allows it to
// be skipped (weight 1-p), '+' allows it to repeat (weight p), '*' combines
// both, and '^' wires the scope's End node back to the term for restarts.
//
// # Pipeline
//
// Compile scans the text (Lexer), builds a mutable id-keyed weighted graph
// (Parser), converts raw edge weights into cumulative frequencies
// (Normalize), and freezes the result into an immutable automaton (Frozen).
// Frozen.Walk then performs a weighted random traversal, emitting literal
// text from Char nodes and biased random strings from Class nodes, and
// emulating rule invocation with an explicit call stack so that recursive
// grammars are bounded by the token budget rather than by call depth.
//
// A Frozen value is immutable and safe to share across concurrent walks;
// each walk supplies its own prng.Source.
package grammar
