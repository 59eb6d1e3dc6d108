package grammar

import (
	"errors"
	"testing"
)

func TestLexerKinds(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"", nil},
		{"+ * ^ ?", []TokenKind{TokenOneOrMore, TokenAnyNumber, TokenInfinite, TokenMaybe}},
		{"| ; ( ) :", []TokenKind{TokenAlternative, TokenEnd, TokenGroupOpen, TokenGroupClose, TokenColon}},
		{"'x'", []TokenKind{TokenChar}},
		{"<0.5>", []TokenKind{TokenProbability}},
		{"[a-z]", []TokenKind{TokenClass}},
		{"Rule", []TokenKind{TokenIdent}},
		{"_under_score9", []TokenKind{TokenIdent}},
		{"A: 'x';", []TokenKind{TokenIdent, TokenColon, TokenChar, TokenEnd}},
		{"A: 'a' + <0.9> | [0-9] * ;", []TokenKind{
			TokenIdent, TokenColon, TokenChar, TokenOneOrMore, TokenProbability,
			TokenAlternative, TokenClass, TokenAnyNumber, TokenEnd,
		}},
		// Whitespace and unknown characters are skipped, not errors.
		{"  \t\n , # ~ ", nil},
		{"a , b", []TokenKind{TokenIdent, TokenIdent}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, errs := NewLexer([]byte(tt.input)).Scan()
			if len(errs) > 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if len(tokens) != len(tt.expected) {
				t.Fatalf("got %d tokens, want %d", len(tokens), len(tt.expected))
			}
			for i := range tokens {
				if tokens[i].Kind != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, tokens[i].Kind, tt.expected[i])
				}
			}
		})
	}
}

func TestLexerDelimitedContent(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
		text  string
	}{
		{"'hello world'", TokenChar, "hello world"},
		{`'line1\nline2'`, TokenChar, `line1\nline2`}, // escapes stay raw at scan time
		{"''", TokenChar, ""},
		{"<0.25>", TokenProbability, "0.25"},
		{"<not a number>", TokenProbability, "not a number"},
		{"[a-zA-Z0-9_]", TokenClass, "a-zA-Z0-9_"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, errs := NewLexer([]byte(tt.input)).Scan()
			if len(errs) > 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if len(tokens) != 1 {
				t.Fatalf("got %d tokens, want 1", len(tokens))
			}
			if tokens[0].Kind != tt.kind {
				t.Errorf("kind: got %v, want %v", tokens[0].Kind, tt.kind)
			}
			if tokens[0].Text != tt.text {
				t.Errorf("text: got %q, want %q", tokens[0].Text, tt.text)
			}
		})
	}
}

func TestLexerUnterminated(t *testing.T) {
	tests := []struct {
		input string
		delim byte
	}{
		{"'abc", '\''},
		{"<0.5", '<'},
		{"[a-z", '['},
		{"A: 'x", '\''},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, errs := NewLexer([]byte(tt.input)).Scan()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1", len(errs))
			}
			var scanErr *ScanError
			if !errors.As(errs[0], &scanErr) {
				t.Fatalf("got %T, want *ScanError", errs[0])
			}
			if scanErr.Delim != tt.delim {
				t.Errorf("delim: got %q, want %q", scanErr.Delim, tt.delim)
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	tokens, errs := NewLexer([]byte("A: 'x';\nB: A;")).Scan()
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	expected := []Position{
		{Offset: 0, Line: 1, Column: 1},  // A
		{Offset: 1, Line: 1, Column: 2},  // :
		{Offset: 3, Line: 1, Column: 4},  // 'x'
		{Offset: 6, Line: 1, Column: 7},  // ;
		{Offset: 8, Line: 2, Column: 1},  // B
		{Offset: 9, Line: 2, Column: 2},  // :
		{Offset: 11, Line: 2, Column: 4}, // A
		{Offset: 12, Line: 2, Column: 5}, // ;
	}
	if len(tokens) != len(expected) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(expected))
	}
	for i, want := range expected {
		if tokens[i].Pos != want {
			t.Errorf("token %d: got %+v, want %+v", i, tokens[i].Pos, want)
		}
	}
}
