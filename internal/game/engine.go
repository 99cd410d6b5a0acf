// internal/game/engine.go
//
// Validation and scoring engine for a single Word Scramble round.
// Responsibilities:
//   - Start rounds with a root word drawn from the injected WordSource.
//   - Validate candidates in a fixed order: duplicate → impossible → unknown → too short.
//   - Score accepted words as length + number of previously accepted words.
//
// Notes:
//   - The engine holds no locks. Callers serialize access (see internal/store).
//   - A rejected or ignored submission never changes state.
package game

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// minWordLen is the shortest accepted word length; shorter words are TooShort.
const minWordLen = 4

// Engine owns the state of one round.
type Engine struct {
	source WordSource
	dict   Dictionary

	state State
	root  string
	used  []string // most recent first
	score int
}

// NewEngine returns an idle engine. Call Reset before Submit.
func NewEngine(source WordSource, dict Dictionary) *Engine {
	return &Engine{source: source, dict: dict, state: StateIdle}
}

// Reset starts a new round and returns its root word.
// If the WordSource fails or returns an empty word, Reset returns an error wrapping
// ErrNoRootWord and the current state is left as it was.
func (e *Engine) Reset() (string, error) {
	w, err := e.source.PickRootWord()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoRootWord, err)
	}
	w = strings.ToLower(strings.TrimSpace(w))
	if w == "" {
		return "", ErrNoRootWord
	}

	e.root = w
	e.used = nil
	e.score = 0
	e.state = StateInRound
	return e.root, nil
}

// Submit validates a raw candidate and applies it if it passes every check.
func (e *Engine) Submit(raw string) Outcome {
	word := strings.ToLower(strings.TrimSpace(raw))
	if word == "" {
		return Outcome{Kind: KindIgnored}
	}

	if reason := e.check(word); reason != ReasonNone {
		return Outcome{Kind: KindRejected, Reason: reason}
	}

	delta := utf8.RuneCountInString(word) + len(e.used)
	e.used = slices.Insert(e.used, 0, word)
	e.score += delta
	return Outcome{Kind: KindAccepted, Word: word, ScoreDelta: delta, NewScore: e.score}
}

// check returns the first failing rule for a normalized word.
func (e *Engine) check(word string) Reason {
	switch {
	case slices.Contains(e.used, word):
		return DuplicateWord
	case !Derivable(word, e.root):
		return ImpossibleWord
	case !e.dict.IsValidWord(word):
		return UnknownWord
	case utf8.RuneCountInString(word) < minWordLen:
		return TooShort
	}
	return ReasonNone
}

// Derivable reports whether word can be spelled from the letters of root,
// using each letter of root at most once.
func Derivable(word, root string) bool {
	pool := []rune(root)
	for _, r := range word {
		i := slices.Index(pool, r)
		if i < 0 {
			return false
		}
		pool = slices.Delete(pool, i, i+1)
	}
	return true
}

// State reports whether a round has been started.
func (e *Engine) State() State { return e.state }

// RootWord returns the current root word ("" before the first Reset).
func (e *Engine) RootWord() string { return e.root }

// UsedWords returns a copy of the accepted words, most recent first.
func (e *Engine) UsedWords() []string { return slices.Clone(e.used) }

// Score returns the running score of the round.
func (e *Engine) Score() int { return e.score }

// Snapshot returns a copy of the full round state.
func (e *Engine) Snapshot() Snapshot {
	used := slices.Clone(e.used)
	if used == nil {
		used = []string{}
	}
	return Snapshot{State: e.state, RootWord: e.root, UsedWords: used, Score: e.score}
}
