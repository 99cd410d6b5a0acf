package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSource struct {
	words []string
	next  int
	err   error
}

func (s *fixedSource) PickRootWord() (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if len(s.words) == 0 {
		return "", nil
	}
	w := s.words[s.next%len(s.words)]
	s.next++
	return w, nil
}

func setDict(words ...string) Dictionary {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return DictionaryFunc(func(w string) bool {
		_, ok := set[w]
		return ok
	})
}

func acceptAll() Dictionary { return DictionaryFunc(func(string) bool { return true }) }

func newRound(t *testing.T, root string, dict Dictionary) *Engine {
	t.Helper()
	e := NewEngine(&fixedSource{words: []string{root}}, dict)
	got, err := e.Reset()
	require.NoError(t, err)
	require.Equal(t, root, got)
	return e
}

func TestSilkwormScenario(t *testing.T) {
	e := newRound(t, "silkworm", setDict("silk", "worm", "milk", "silkworms"))

	out := e.Submit("silk")
	assert.Equal(t, Outcome{Kind: KindAccepted, Word: "silk", ScoreDelta: 4, NewScore: 4}, out)

	out = e.Submit("silk")
	assert.Equal(t, KindRejected, out.Kind)
	assert.Equal(t, DuplicateWord, out.Reason)
	assert.Equal(t, 4, e.Score())

	out = e.Submit("silkworms")
	assert.Equal(t, ImpossibleWord, out.Reason)

	// "zzz" cannot be spelled from silkworm, so it is impossible first.
	assert.Equal(t, ImpossibleWord, e.Submit("zzz").Reason)

	// "rim" is derivable, unknown and short: dictionary check wins.
	assert.Equal(t, UnknownWord, e.Submit("rim").Reason)

	assert.Equal(t, []string{"silk"}, e.UsedWords())
	assert.Equal(t, 4, e.Score())
}

func TestScoreDeltaIncludesBonus(t *testing.T) {
	e := newRound(t, "abcdefghij", acceptAll())

	words := []string{"abcd", "bcdef", "cdefgh", "defg"}
	score := 0
	for k, w := range words {
		out := e.Submit(w)
		require.True(t, out.Accepted(), w)
		assert.Equal(t, len(w)+k, out.ScoreDelta, w)
		score += len(w) + k
		assert.Equal(t, score, out.NewScore)
		assert.Equal(t, score, e.Score())
	}
	assert.Equal(t, []string{"defg", "cdefgh", "bcdef", "abcd"}, e.UsedWords())
}

func TestDuplicateIsCaseAndSpaceInsensitive(t *testing.T) {
	e := newRound(t, "catalogue", acceptAll())

	require.True(t, e.Submit("Coat").Accepted())
	assert.Equal(t, DuplicateWord, e.Submit("  COAT\n").Reason)
	assert.Equal(t, DuplicateWord, e.Submit("\tcoat ").Reason)
	assert.Equal(t, []string{"coat"}, e.UsedWords())
}

func TestDerivableRespectsMultiplicity(t *testing.T) {
	cases := []struct {
		word string
		want bool
	}{
		{"abc", true},
		{"abbc", true},
		{"cba", true},
		{"abbbc", false},
		{"aabbc", true},
		{"aaa", false},
		{"d", false},
		{"", true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Derivable(tc.word, "aabbc"), tc.word)
	}
}

func TestLengthBoundary(t *testing.T) {
	e := newRound(t, "teachers", acceptAll())

	out := e.Submit("tea")
	assert.Equal(t, TooShort, out.Reason)

	out = e.Submit("teach")
	assert.True(t, out.Accepted())

	out = e.Submit("each")
	assert.True(t, out.Accepted())
	assert.Equal(t, 4+1, out.ScoreDelta)
}

func TestCheckOrder(t *testing.T) {
	e := newRound(t, "silkworm", setDict("silk"))
	require.True(t, e.Submit("silk").Accepted())

	cases := []struct {
		name  string
		input string
		want  Reason
	}{
		{"duplicate beats everything", "SILK", DuplicateWord},
		{"impossible before unknown", "xylophone", ImpossibleWord},
		{"impossible before too short", "zz", ImpossibleWord},
		{"unknown before too short", "owl", UnknownWord},
		{"unknown long word", "mirks", UnknownWord},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, e.Submit(tc.input).Reason)
		})
	}
}

func TestTooShortNeedsRealWord(t *testing.T) {
	e := newRound(t, "silkworm", setDict("ski", "skim"))
	assert.Equal(t, TooShort, e.Submit("ski").Reason)
	assert.True(t, e.Submit("skim").Accepted())
}

func TestRejectionIsIdempotent(t *testing.T) {
	e := newRound(t, "silkworm", setDict("silk"))
	require.True(t, e.Submit("silk").Accepted())
	before := e.Snapshot()

	for _, w := range []string{"silkworms", "worm", "owl", "silk"} {
		first := e.Submit(w)
		second := e.Submit(w)
		assert.Equal(t, KindRejected, first.Kind, w)
		assert.Equal(t, first, second, w)
		assert.Equal(t, before, e.Snapshot(), w)
	}
}

func TestEmptyInputIsIgnored(t *testing.T) {
	e := newRound(t, "silkworm", acceptAll())
	before := e.Snapshot()

	for _, raw := range []string{"", "   ", "\n", "\t \r\n"} {
		out := e.Submit(raw)
		assert.Equal(t, Outcome{Kind: KindIgnored}, out)
		assert.Equal(t, ReasonNone, out.Reason)
	}
	assert.Equal(t, before, e.Snapshot())
}

func TestResetClearsRound(t *testing.T) {
	src := &fixedSource{words: []string{"silkworm", "teachers"}}
	e := NewEngine(src, acceptAll())
	assert.Equal(t, StateIdle, e.State())

	root, err := e.Reset()
	require.NoError(t, err)
	assert.Equal(t, "silkworm", root)
	assert.Equal(t, StateInRound, e.State())
	require.True(t, e.Submit("silk").Accepted())
	require.True(t, e.Submit("worm").Accepted())

	root, err = e.Reset()
	require.NoError(t, err)
	assert.Equal(t, "teachers", root)
	assert.Equal(t, "teachers", e.RootWord())
	assert.Empty(t, e.UsedWords())
	assert.Zero(t, e.Score())

	out := e.Submit("teach")
	assert.Equal(t, 5, out.ScoreDelta)
}

func TestResetNormalizesRootWord(t *testing.T) {
	e := NewEngine(&fixedSource{words: []string{"  SilkWorm\n"}}, acceptAll())
	root, err := e.Reset()
	require.NoError(t, err)
	assert.Equal(t, "silkworm", root)
}

func TestResetFailure(t *testing.T) {
	boom := errors.New("start list missing")

	t.Run("source error", func(t *testing.T) {
		e := NewEngine(&fixedSource{err: boom}, acceptAll())
		_, err := e.Reset()
		assert.ErrorIs(t, err, ErrNoRootWord)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, StateIdle, e.State())
	})

	t.Run("empty word", func(t *testing.T) {
		e := NewEngine(&fixedSource{words: []string{"  "}}, acceptAll())
		_, err := e.Reset()
		assert.ErrorIs(t, err, ErrNoRootWord)
	})

	t.Run("keeps previous round", func(t *testing.T) {
		src := &fixedSource{words: []string{"silkworm"}}
		e := NewEngine(src, acceptAll())
		_, err := e.Reset()
		require.NoError(t, err)
		require.True(t, e.Submit("silk").Accepted())

		src.err = boom
		_, err = e.Reset()
		require.Error(t, err)
		assert.Equal(t, "silkworm", e.RootWord())
		assert.Equal(t, 4, e.Score())
	})
}

func TestSnapshotIsACopy(t *testing.T) {
	e := newRound(t, "silkworm", acceptAll())
	require.True(t, e.Submit("silk").Accepted())

	snap := e.Snapshot()
	snap.UsedWords[0] = "mutated"
	used := e.UsedWords()
	used[0] = "mutated"

	assert.Equal(t, []string{"silk"}, e.UsedWords())
}

func TestDescribe(t *testing.T) {
	title, msg := Describe(ImpossibleWord, "silkworm")
	assert.Equal(t, "Word not possible", title)
	assert.Equal(t, "You can't spell that word from 'silkworm'!", msg)

	for _, r := range []Reason{DuplicateWord, UnknownWord, TooShort} {
		title, msg := Describe(r, "silkworm")
		assert.NotEmpty(t, title, r)
		assert.NotEmpty(t, msg, r)
	}

	title, msg = Describe(ReasonNone, "silkworm")
	assert.Empty(t, title)
	assert.Empty(t, msg)
}
