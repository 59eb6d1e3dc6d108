package lsp

import (
	"testing"

	"github.com/dhamidi/resrap/grammar"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestDiagnosticsForCompileErrors(t *testing.T) {
	_, err := grammar.Compile("A: 'x'\nB: C;")
	if err == nil {
		t.Fatal("expected compile errors")
	}

	diagnostics := diagnosticsFor(err)
	if len(diagnostics) == 0 {
		t.Fatal("expected at least one diagnostic")
	}

	for _, d := range diagnostics {
		if d.Severity == nil || *d.Severity != protocol.DiagnosticSeverityError {
			t.Errorf("diagnostic %q: severity not error", d.Message)
		}
		if d.Source == nil || *d.Source != "resrap" {
			t.Errorf("diagnostic %q: source not resrap", d.Message)
		}
		if d.Message == "" {
			t.Error("diagnostic with empty message")
		}
	}
}

func TestDiagnosticsForPlainError(t *testing.T) {
	diagnostics := diagnosticsFor(errForTest("boom"))
	if len(diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diagnostics))
	}
	if diagnostics[0].Message != "boom" {
		t.Errorf("got message %q", diagnostics[0].Message)
	}
	if diagnostics[0].Range.Start.Line != 0 || diagnostics[0].Range.Start.Character != 0 {
		t.Errorf("plain error must map to the document start, got %+v", diagnostics[0].Range)
	}
}

type errForTest string

func (e errForTest) Error() string { return string(e) }

func TestRangeAt(t *testing.T) {
	tests := []struct {
		pos       grammar.Position
		line      uint32
		character uint32
	}{
		{grammar.Position{Line: 1, Column: 1}, 0, 0},
		{grammar.Position{Line: 2, Column: 5}, 1, 4},
		{grammar.Position{}, 0, 0},
	}
	for _, tt := range tests {
		r := rangeAt(tt.pos)
		if r.Start.Line != tt.line || r.Start.Character != tt.character {
			t.Errorf("rangeAt(%v): got start %+v, want %d:%d", tt.pos, r.Start, tt.line, tt.character)
		}
		if r.End.Character != r.Start.Character+1 {
			t.Errorf("rangeAt(%v): end must cover one character, got %+v", tt.pos, r.End)
		}
	}
}

func TestURIToPath(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"file:///tmp/demo.resrap", "/tmp/demo.resrap"},
		{"/already/a/path", "/already/a/path"},
	}
	for _, tt := range tests {
		got, err := uriToPath(protocol.DocumentUri(tt.uri))
		if err != nil {
			t.Errorf("uriToPath(%q): %v", tt.uri, err)
			continue
		}
		if got != tt.want {
			t.Errorf("uriToPath(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}
