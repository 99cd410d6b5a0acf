// Package daily picks one root word per UTC day, the same for every player.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/wordscramble/internal/words"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Source is a game.WordSource that returns the word of the day.
type Source struct {
	words []string
	salt  string
	now   func() time.Time
}

// NewSource returns a daily source over list keyed by salt.
func NewSource(list []string, salt string) *Source {
	return &Source{words: list, salt: salt, now: time.Now}
}

// PickRootWord returns today's word.
func (s *Source) PickRootWord() (string, error) {
	if len(s.words) == 0 {
		return "", words.ErrEmptyList
	}
	return s.words[WordIndex(s.now(), s.salt, len(s.words))], nil
}
