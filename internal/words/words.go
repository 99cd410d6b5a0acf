// internal/words/words.go
//
// Word list management for the Word Scramble engine.
//
// Responsibilities:
//   - Load the start list (root word candidates) and the dictionary list from
//     configured files, or fall back to the embedded defaults in package assets.
//   - Provide the in-memory Dictionary (set lookup) and the random WordSource.
//
// Word Lists:
//   - "start": words a round may begin with.
//   - "dictionary": words accepted as real (always includes the start words).
//
// Load behavior:
//   1. StartFile set → read start words from it, else embedded start.txt.
//   2. DictionaryFile set → read dictionary words from it, else embedded dictionary.txt.
//   3. An empty start list is an error (ErrEmptyList); the game cannot begin.
//
// Constraints:
//   • Lines are trimmed and lowercased; blank lines and '#' comments are skipped.
//   • Only purely alphabetic words are kept.
//   • Duplicates are dropped, first occurrence wins.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/robalobadob/wordscramble/assets"
)

// ErrEmptyList is returned when a list needed to run a round has no words.
var ErrEmptyList = errors.New("words: list is empty")

// Options selects where lists are read from. Empty paths use embedded defaults.
type Options struct {
	StartFile      string
	DictionaryFile string
}

// Lists holds the loaded, normalized word lists.
type Lists struct {
	Start      []string
	Dictionary []string // start ∪ dictionary file
}

// Load reads both lists according to opts.
func Load(opts Options) (*Lists, error) {
	start, err := readSource(opts.StartFile, assets.StartWords)
	if err != nil {
		return nil, fmt.Errorf("start words: %w", err)
	}
	if len(start) == 0 {
		return nil, fmt.Errorf("start words: %w", ErrEmptyList)
	}
	dict, err := readSource(opts.DictionaryFile, assets.DictionaryWords)
	if err != nil {
		return nil, fmt.Errorf("dictionary words: %w", err)
	}

	l := &Lists{
		Start:      start,
		Dictionary: lo.Uniq(append(append([]string{}, start...), dict...)),
	}
	log.Debug().
		Int("start", len(l.Start)).
		Int("dictionary", len(l.Dictionary)).
		Msg("word lists loaded")
	return l, nil
}

// Stats returns the number of loaded words: (start, dictionary).
func (l *Lists) Stats() (startCount int, dictionaryCount int) {
	return len(l.Start), len(l.Dictionary)
}

// readSource reads path if set, otherwise the embedded fallback.
func readSource(path string, fallback func() (io.ReadCloser, error)) ([]string, error) {
	var (
		rc  io.ReadCloser
		err error
	)
	if path != "" {
		rc, err = os.Open(path)
	} else {
		rc, err = fallback()
	}
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ReadList(rc)
}

// ReadList reads one word per line and returns the normalized, de-duplicated words.
func ReadList(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.ToLower(strings.TrimSpace(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		out = append(out, w)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lo.Uniq(lo.Filter(out, func(w string, _ int) bool { return isAlpha(w) })), nil
}

// isAlpha reports whether s is made only of letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
