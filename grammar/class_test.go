package grammar

import (
	"testing"

	"github.com/dhamidi/resrap/prng"
)

func TestExpandClass(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"abc", "abc"},
		{"a-e", "abcde"},
		{"a-c0-2", "abc012"},
		{"a-c_", "abc_"},
		{"x", "x"},
		{"", ""},
		{"-a", "-a"},   // leading '-' is literal
		{"ab-", "ab-"}, // trailing '-' is literal
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			if got := string(expandClass(tt.pattern)); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLetterBias(t *testing.T) {
	tests := []struct {
		r    rune
		want int
	}{
		{'e', 12},
		{'a', 9},
		{'n', 6},
		{'c', 4},
		{'f', 3},
		{'q', 1},
		{'E', 6}, // uppercase is half the lowercase weight
		{'A', 4},
		{'7', 3},
		{'_', 5},
		{'#', 1},
	}

	for _, tt := range tests {
		if got := letterBias(tt.r); got != tt.want {
			t.Errorf("letterBias(%q): got %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestClassSamplerSample(t *testing.T) {
	s := NewClassSampler()
	s.Compile("a-c")

	rng := prng.New(7)
	for i := 0; i < 200; i++ {
		out := s.Sample("a-c", rng)
		if len(out) < s.MinLen || len(out) > s.MaxLen {
			t.Fatalf("sample %q has length %d, want %d..%d", out, len(out), s.MinLen, s.MaxLen)
		}
		for _, r := range out {
			if r < 'a' || r > 'c' {
				t.Fatalf("sample %q contains %q, outside the class", out, r)
			}
		}
	}
}

func TestClassSamplerLengthBounds(t *testing.T) {
	s := NewClassSampler()
	s.MinLen = 5
	s.MaxLen = 8
	s.Compile("xy")

	rng := prng.New(3)
	seen := make(map[int]bool)
	for i := 0; i < 500; i++ {
		n := len(s.Sample("xy", rng))
		if n < 5 || n > 8 {
			t.Fatalf("length %d outside 5..8", n)
		}
		seen[n] = true
	}
	for n := 5; n <= 8; n++ {
		if !seen[n] {
			t.Errorf("length %d never produced", n)
		}
	}
}

func TestClassSamplerUnknownPattern(t *testing.T) {
	s := NewClassSampler()
	if out := s.Sample("a-z", prng.New(1)); out != "" {
		t.Errorf("uncompiled pattern produced %q, want empty string", out)
	}
}

func TestClassSamplerBiasDistribution(t *testing.T) {
	// 'e' weighs 12, 'q' weighs 1: over many draws 'e' must dominate.
	s := NewClassSampler()
	s.Compile("eq")

	rng := prng.New(11)
	counts := make(map[rune]int)
	for i := 0; i < 2000; i++ {
		for _, r := range s.Sample("eq", rng) {
			counts[r]++
		}
	}
	if counts['e'] <= counts['q']*5 {
		t.Errorf("bias not applied: e=%d q=%d", counts['e'], counts['q'])
	}
}

func TestClassSamplerCompileIdempotent(t *testing.T) {
	s := NewClassSampler()
	s.Compile("a-z")
	first := s.cache["a-z"]
	s.Compile("a-z")
	second := s.cache["a-z"]
	if &first.symbols[0] != &second.symbols[0] {
		t.Error("recompiling a cached pattern rebuilt the distribution")
	}
}
