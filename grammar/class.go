package grammar

import (
	"sort"

	"github.com/dhamidi/resrap/prng"
)

// ClassSampler expands character-class patterns like "a-z0-9_" into weighted
// alphabets and draws short biased-random strings from them. Compiling a
// class is done once per distinct pattern text, at parse time; sampling at
// generation time only reads the cache, so a frozen automaton can share one
// sampler across concurrent walks.
type ClassSampler struct {
	// MinLen and MaxLen bound the length of a sampled string, inclusive.
	MinLen int
	MaxLen int

	cache map[string]classDist
}

type classDist struct {
	cumFreq []float64
	symbols []rune
}

const (
	defaultClassMinLen = 3
	defaultClassMaxLen = 4
)

func NewClassSampler() *ClassSampler {
	return &ClassSampler{
		MinLen: defaultClassMinLen,
		MaxLen: defaultClassMaxLen,
		cache:  make(map[string]classDist),
	}
}

// Compile expands the pattern into its alphabet, weights each symbol with a
// rough natural-language letter frequency, and caches the cumulative
// distribution keyed by the raw pattern text.
func (s *ClassSampler) Compile(pattern string) {
	if _, ok := s.cache[pattern]; ok {
		return
	}

	symbols := expandClass(pattern)
	weights := make([]float64, len(symbols))
	sum := 0.0
	for i, r := range symbols {
		weights[i] = float64(letterBias(r))
		sum += weights[i]
	}

	// Uppercase halving can zero out every weight; fall back to uniform.
	cf := make([]float64, len(symbols))
	acc := 0.0
	for i, w := range weights {
		if sum == 0 {
			acc += 1.0 / float64(len(symbols))
		} else {
			acc += w / sum
		}
		cf[i] = acc
	}

	s.cache[pattern] = classDist{cumFreq: cf, symbols: symbols}
}

// Sample draws a random-length string from the cached distribution for the
// pattern. An uncompiled pattern yields an empty string; parse-time
// registration prevents that in normal use.
func (s *ClassSampler) Sample(pattern string, rng *prng.Source) string {
	dist, ok := s.cache[pattern]
	if !ok || len(dist.symbols) == 0 {
		return ""
	}

	n := rng.IntN(s.MinLen, s.MaxLen)
	out := make([]rune, 0, n)
	for i := 0; i < n; i++ {
		x := rng.Float64()
		idx := sort.SearchFloat64s(dist.cumFreq, x)
		if idx >= len(dist.symbols) {
			idx = len(dist.symbols) - 1
		}
		out = append(out, dist.symbols[idx])
	}
	return string(out)
}

// expandClass turns range notation into an explicit alphabet: "a-c_" becomes
// ['a' 'b' 'c' '_']. A '-' without a character on both sides is literal.
func expandClass(pattern string) []rune {
	runes := []rune(pattern)
	var symbols []rune
	for i := 0; i < len(runes); {
		if i+2 < len(runes) && runes[i+1] == '-' && runes[i] <= runes[i+2] {
			for r := runes[i]; r <= runes[i+2]; r++ {
				symbols = append(symbols, r)
			}
			i += 3
			continue
		}
		symbols = append(symbols, runes[i])
		i++
	}
	return symbols
}

// letterBias approximates English letter frequency. Uppercase letters weigh
// half their lowercase counterpart, digits and underscore get fixed moderate
// weights, and anything unrecognized weighs 1.
func letterBias(r rune) int {
	if 'A' <= r && r <= 'Z' {
		return letterBias(r + ('a' - 'A')) / 2
	}

	switch r {
	case 'e':
		return 12
	case 'a', 'i', 'o':
		return 9
	case 'n', 'r', 't', 's', 'l':
		return 6
	case 'c', 'd', 'm', 'u', 'p', 'b', 'g':
		return 4
	case 'f', 'h', 'v', 'k', 'w', 'y':
		return 3
	case 'j', 'x', 'q', 'z':
		return 1
	case '_':
		return 5
	}

	if '0' <= r && r <= '9' {
		return 3
	}
	return 1
}
