package grammar

// Lexer converts grammar text into a token stream. It recognizes the
// single-character operators, three delimited forms ('...', <...>, [...])
// whose raw content is preserved verbatim, and identifiers. Everything else,
// whitespace included, is skipped silently.
type Lexer struct {
	input  []byte
	pos    int
	line   int
	column int
}

func NewLexer(input []byte) *Lexer {
	return &Lexer{
		input:  input,
		pos:    0,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

var operators = map[byte]TokenKind{
	'+': TokenOneOrMore,
	'*': TokenAnyNumber,
	'^': TokenInfinite,
	'?': TokenMaybe,
	'|': TokenAlternative,
	';': TokenEnd,
	'(': TokenGroupOpen,
	')': TokenGroupClose,
	':': TokenColon,
}

// Scan consumes the whole input and returns the token stream together with
// any scan errors. Errors accumulate; an unterminated delimited form consumes
// the rest of the input, so scanning always ends at end of input.
func (l *Lexer) Scan() ([]Token, ErrorList) {
	var tokens []Token
	var errs ErrorList

	for l.pos < len(l.input) {
		startPos := l.Position()
		ch := l.advance()

		if kind, ok := operators[ch]; ok {
			tokens = append(tokens, Token{Kind: kind, Pos: startPos})
			continue
		}

		switch ch {
		case '\'':
			text, err := l.scanDelimited(startPos, '\'', '\'')
			if err != nil {
				errs = append(errs, err)
				continue
			}
			tokens = append(tokens, Token{Kind: TokenChar, Text: text, Pos: startPos})
		case '<':
			text, err := l.scanDelimited(startPos, '<', '>')
			if err != nil {
				errs = append(errs, err)
				continue
			}
			tokens = append(tokens, Token{Kind: TokenProbability, Text: text, Pos: startPos})
		case '[':
			text, err := l.scanDelimited(startPos, '[', ']')
			if err != nil {
				errs = append(errs, err)
				continue
			}
			tokens = append(tokens, Token{Kind: TokenClass, Text: text, Pos: startPos})
		default:
			if isIdentStart(ch) {
				tokens = append(tokens, Token{Kind: TokenIdent, Text: l.scanIdentifier(ch), Pos: startPos})
			}
			// Whitespace and anything else is not an error.
		}
	}

	return tokens, errs
}

// scanDelimited reads up to the closing delimiter and returns the raw content
// between the delimiters. Escape sequences are not interpreted here; they are
// resolved at emission time.
func (l *Lexer) scanDelimited(start Position, open, close byte) (string, error) {
	contentStart := l.pos
	for l.pos < len(l.input) {
		if l.advance() == close {
			return string(l.input[contentStart : l.pos-1]), nil
		}
	}
	return "", &ScanError{Pos: start, Delim: open}
}

func (l *Lexer) scanIdentifier(first byte) string {
	buf := []byte{first}
	for isIdentPart(l.peek()) {
		buf = append(buf, l.advance())
	}
	return string(buf)
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || ('0' <= ch && ch <= '9')
}
