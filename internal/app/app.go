// Package app turns a Config into the word lists, dictionary and root word
// source a game needs. The server and the terminal client both build their
// engines through it, so the same settings always produce the same game.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/config"
	"github.com/robalobadob/wordscramble/internal/daily"
	"github.com/robalobadob/wordscramble/internal/dictdb"
	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/words"
)

// Runtime holds the collaborators shared by every engine of a process.
type Runtime struct {
	Lists      *words.Lists
	Dictionary game.Dictionary
	Source     game.WordSource

	closers []func() error
}

// Open loads the word lists and selects the dictionary backend and root word
// mode named by cfg. Close releases the SQLite handles, if any.
func Open(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	lists, err := words.Load(words.Options{StartFile: cfg.StartFile, DictionaryFile: cfg.DictionaryFile})
	if err != nil {
		return nil, fmt.Errorf("load word lists: %w", err)
	}
	rt := &Runtime{Lists: lists, Dictionary: words.NewSet(lists.Dictionary)}

	if cfg.DictionaryBackend == config.BackendSQLite {
		db, err := dictdb.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open dictionary db %s: %w", cfg.DBPath, err)
		}
		rt.closers = append(rt.closers, db.Close)
		d, err := dictdb.New(ctx, db, lists.Dictionary)
		if err != nil {
			_ = rt.Close()
			return nil, fmt.Errorf("prepare dictionary db: %w", err)
		}
		rt.closers = append(rt.closers, d.Close)
		rt.Dictionary = d
	}

	switch cfg.RootMode {
	case config.RootDaily:
		rt.Source = daily.NewSource(lists.Start, cfg.DailySalt)
	default:
		rt.Source = words.NewRandomSource(lists.Start)
	}

	start, dict := lists.Stats()
	log.Debug().
		Str("dictionary", cfg.DictionaryBackend).
		Str("rootMode", cfg.RootMode).
		Int("startWords", start).
		Int("dictionaryWords", dict).
		Msg("word lists ready")
	return rt, nil
}

// NewEngine returns an idle engine bound to the runtime's source and dictionary.
func (rt *Runtime) NewEngine() *game.Engine {
	return game.NewEngine(rt.Source, rt.Dictionary)
}

// Close releases resources in reverse order of acquisition.
func (rt *Runtime) Close() error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		errs = append(errs, rt.closers[i]())
	}
	rt.closers = nil
	return errors.Join(errs...)
}
