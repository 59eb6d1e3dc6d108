package grammar

import "fmt"

// Position is a location in grammar source text.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type TokenKind int

const (
	TokenOneOrMore   TokenKind = iota // +
	TokenAnyNumber                    // *
	TokenInfinite                     // ^
	TokenMaybe                        // ?
	TokenAlternative                  // |
	TokenEnd                          // ;
	TokenGroupOpen                    // (
	TokenGroupClose                   // )
	TokenColon                        // :
	TokenChar                         // '...'
	TokenProbability                  // <...>
	TokenClass                        // [...]
	TokenIdent                        // rule names
)

var tokenKindNames = map[TokenKind]string{
	TokenOneOrMore:   "'+'",
	TokenAnyNumber:   "'*'",
	TokenInfinite:    "'^'",
	TokenMaybe:       "'?'",
	TokenAlternative: "'|'",
	TokenEnd:         "';'",
	TokenGroupOpen:   "'('",
	TokenGroupClose:  "')'",
	TokenColon:       "':'",
	TokenChar:        "character literal",
	TokenProbability: "probability",
	TokenClass:       "character class",
	TokenIdent:       "identifier",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is a single lexical token. Text is empty for operator tokens and
// holds the raw delimited content for literals, classes and probabilities.
type Token struct {
	Kind TokenKind
	Text string
	Pos  Position
}

func (t Token) String() string {
	if t.Text == "" {
		return fmt.Sprintf("%s %s", t.Pos, t.Kind)
	}
	return fmt.Sprintf("%s %s %q", t.Pos, t.Kind, t.Text)
}
