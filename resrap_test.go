package resrap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRegistryAddAndGenerate(t *testing.T) {
	r := New()
	if err := r.Add("demo", "Greeting: 'hello' | 'hi';"); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, err := r.GenerateSeeded("demo", "Greeting", 42, 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out != "hello" && out != "hi" {
		t.Errorf("got %q, want \"hello\" or \"hi\"", out)
	}

	again, err := r.GenerateSeeded("demo", "Greeting", 42, 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out != again {
		t.Errorf("same seed diverged: %q vs %q", out, again)
	}
}

func TestRegistryCompileFailure(t *testing.T) {
	r := New()
	err := r.Add("bad", "A: 'x'")
	if err == nil {
		t.Fatal("expected compile error")
	}
	if !strings.Contains(err.Error(), "missing semicolon") {
		t.Errorf("unexpected error: %v", err)
	}
	if _, ok := r.Get("bad"); ok {
		t.Error("failed grammar must not be stored")
	}
}

func TestRegistryUnknownNames(t *testing.T) {
	r := New()
	if err := r.Add("demo", "A: 'x';"); err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := r.Generate("nope", "A", 1); err == nil {
		t.Error("expected error for unknown grammar name")
	}
	if _, err := r.Generate("demo", "Nope", 1); err == nil {
		t.Error("expected error for unknown start rule")
	}
}

func TestRegistryReplace(t *testing.T) {
	r := New()
	if err := r.Add("demo", "A: 'old';"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := r.Add("demo", "A: 'new';"); err != nil {
		t.Fatalf("replace: %v", err)
	}

	out, err := r.GenerateSeeded("demo", "A", 1, 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out != "new" {
		t.Errorf("got %q, want %q", out, "new")
	}
}

func TestReadStatements(t *testing.T) {
	content := `// A toy grammar.

A: 'x'
   B ?;

// Comment between statements.
B: 'y';
`
	path := filepath.Join(t.TempDir(), "toy.resrap")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	text, err := ReadStatements(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	want := "A: 'x' B ?;\nB: 'y';"
	if text != want {
		t.Errorf("got %q, want %q", text, want)
	}
}

func TestReadStatementsKeepsUnterminatedTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.resrap")
	if err := os.WriteFile(path, []byte("A: 'x'\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	text, err := ReadStatements(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if text != "A: 'x'" {
		t.Errorf("got %q, want the fragment preserved for the compiler", text)
	}
}

func TestAddFile(t *testing.T) {
	content := `// Sentences.
Sentence: Word (' ' Word) *;
Word: [a-z];
`
	path := filepath.Join(t.TempDir(), "sentences.resrap")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	r := New()
	if err := r.AddFile("sentences", path); err != nil {
		t.Fatalf("add file: %v", err)
	}
	out, err := r.GenerateSeeded("sentences", "Word", 7, 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out == "" {
		t.Error("expected a non-empty sample")
	}
}
