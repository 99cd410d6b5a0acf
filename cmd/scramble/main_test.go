package main

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordscramble/internal/app"
	"github.com/robalobadob/wordscramble/internal/config"
	"github.com/robalobadob/wordscramble/internal/daily"
	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/words"
)

func newPlayer(t *testing.T) (*player, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	p := &player{
		engine: game.NewEngine(words.NewRandomSource([]string{"silkworm"}), words.NewSet([]string{"silk", "worm"})),
		out:    &buf,
	}
	require.NoError(t, p.newRound())
	return p, &buf
}

func TestPlayerSession(t *testing.T) {
	p, buf := newPlayer(t)
	assert.Contains(t, buf.String(), "Root word: SILKWORM")

	quit, err := p.handle("silk")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Contains(t, buf.String(), "+4  silk  (score 4)")

	buf.Reset()
	_, _ = p.handle("silk")
	assert.Equal(t, "Word used already: Be more original\n", buf.String())

	buf.Reset()
	_, _ = p.handle("   ")
	assert.Empty(t, buf.String())

	buf.Reset()
	_, _ = p.handle(":words")
	assert.Equal(t, "  4  silk\n", buf.String())

	buf.Reset()
	quit, err = p.handle(":quit")
	require.NoError(t, err)
	assert.True(t, quit)
	assert.Equal(t, "Final score: 4\n", buf.String())
}

func TestPlayerNewRound(t *testing.T) {
	p, buf := newPlayer(t)
	_, _ = p.handle("worm")
	buf.Reset()

	quit, err := p.handle(":new")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Contains(t, buf.String(), "New round")
	assert.Zero(t, p.engine.Score())
}

// unsetEnv removes keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func dailyWord(t *testing.T, cfg *config.Config) string {
	t.Helper()
	rt, err := app.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })
	w, err := rt.Source.PickRootWord()
	require.NoError(t, err)
	return w
}

func TestDailyWordMatchesServer(t *testing.T) {
	unsetEnv(t, "ROOT_MODE", "DAILY_SALT", "WORDS_START_FILE", "WORDS_DICTIONARY_FILE", "DICTIONARY_BACKEND")

	cli, err := loadConfig([]string{"-daily"})
	require.NoError(t, err)
	assert.Equal(t, config.RootDaily, cli.RootMode)
	assert.Equal(t, "local_dev_salt", cli.DailySalt)

	t.Setenv("ROOT_MODE", "daily")
	srv, err := config.Load()
	require.NoError(t, err)

	got := dailyWord(t, cli)
	assert.Equal(t, dailyWord(t, srv), got)

	rt, err := app.Open(context.Background(), srv)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })
	start := rt.Lists.Start
	assert.Equal(t, start[daily.WordIndex(time.Now(), "local_dev_salt", len(start))], got)
}

func TestLoadConfigFollowsEnvironment(t *testing.T) {
	unsetEnv(t, "WORDS_DICTIONARY_FILE", "DICTIONARY_BACKEND")
	t.Setenv("ROOT_MODE", "daily")
	t.Setenv("DAILY_SALT", "pepper")
	t.Setenv("WORDS_START_FILE", "/srv/start.txt")

	cfg, err := loadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, config.RootDaily, cfg.RootMode)
	assert.Equal(t, "pepper", cfg.DailySalt)
	assert.Equal(t, "/srv/start.txt", cfg.StartFile)
	assert.Equal(t, config.BackendMemory, cfg.DictionaryBackend)
}

func TestLoadConfigFlagsOverride(t *testing.T) {
	t.Setenv("ROOT_MODE", "daily")
	t.Setenv("DAILY_SALT", "pepper")
	t.Setenv("WORDS_START_FILE", "/srv/start.txt")

	cfg, err := loadConfig([]string{
		"-daily=false",
		"-salt", "thyme",
		"-start-file", "mine.txt",
		"-dictionary-file", "dict.txt",
		"-backend", "sqlite",
		"-db", "words.db",
	})
	require.NoError(t, err)
	assert.Equal(t, config.RootRandom, cfg.RootMode)
	assert.Equal(t, "thyme", cfg.DailySalt)
	assert.Equal(t, "mine.txt", cfg.StartFile)
	assert.Equal(t, "dict.txt", cfg.DictionaryFile)
	assert.Equal(t, config.BackendSQLite, cfg.DictionaryBackend)
	assert.Equal(t, "words.db", cfg.DBPath)

	_, err = loadConfig([]string{"-backend", "postgres"})
	assert.ErrorContains(t, err, "postgres")
}
