// internal/game/types.go
//
// Core type definitions for the Word Scramble engine.
// Defines:
//   - WordSource / Dictionary: capabilities injected by the host.
//   - Kind / Reason: the closed outcome taxonomy of a submission.
//   - Outcome: result of a single Submit call.
//   - Snapshot: immutable copy of a round's state for observers.

package game

import "errors"

// ErrNoRootWord is returned by Reset when the WordSource cannot supply a word.
// The round cannot start; hosts treat this as a startup failure.
var ErrNoRootWord = errors.New("game: no root word available")

// WordSource supplies the root word for a new round.
type WordSource interface {
	PickRootWord() (string, error)
}

// Dictionary reports whether a lowercase word is a real word.
type Dictionary interface {
	IsValidWord(word string) bool
}

// DictionaryFunc adapts a plain function to the Dictionary interface.
type DictionaryFunc func(word string) bool

func (f DictionaryFunc) IsValidWord(word string) bool { return f(word) }

// State is the coarse lifecycle of an engine.
type State string

const (
	StateIdle    State = "idle"     // before the first Reset
	StateInRound State = "in_round" // root word fixed
)

// Kind tags an Outcome.
type Kind string

const (
	KindIgnored  Kind = "ignored"
	KindAccepted Kind = "accepted"
	KindRejected Kind = "rejected"
)

// Reason explains why a candidate was rejected.
type Reason string

const (
	ReasonNone     Reason = ""
	DuplicateWord  Reason = "duplicate_word"
	ImpossibleWord Reason = "impossible_word"
	UnknownWord    Reason = "unknown_word"
	TooShort       Reason = "too_short"
)

// Outcome is the result of Submit.
// Word, ScoreDelta and NewScore are set only for KindAccepted; Reason only for KindRejected.
type Outcome struct {
	Kind       Kind
	Word       string
	ScoreDelta int
	NewScore   int
	Reason     Reason
}

// Accepted reports whether the candidate was added to the round.
func (o Outcome) Accepted() bool { return o.Kind == KindAccepted }

// Snapshot is a copy of the round state. Mutating it does not affect the engine.
type Snapshot struct {
	State     State    `json:"state"`
	RootWord  string   `json:"rootWord"`
	UsedWords []string `json:"usedWords"` // most recent first
	Score     int      `json:"score"`
}
