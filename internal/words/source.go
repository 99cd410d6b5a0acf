package words

import (
	"strings"

	"lukechampine.com/frand"
)

// Set is an in-memory dictionary backed by a lookup map.
type Set map[string]struct{}

// NewSet builds a Set from a list of lowercase words.
func NewSet(list []string) Set {
	m := make(Set, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// IsValidWord reports whether w is in the set.
func (s Set) IsValidWord(w string) bool {
	_, ok := s[strings.ToLower(w)]
	return ok
}

// RandomSource picks root words uniformly at random from a fixed list.
type RandomSource struct {
	words []string
}

// NewRandomSource returns a source over list. The slice is not copied.
func NewRandomSource(list []string) *RandomSource {
	return &RandomSource{words: list}
}

// PickRootWord returns a random word, or ErrEmptyList if there are none.
func (s *RandomSource) PickRootWord() (string, error) {
	if len(s.words) == 0 {
		return "", ErrEmptyList
	}
	return s.words[frand.Intn(len(s.words))], nil
}
