// Command scramble plays Word Scramble in the terminal.
//
// Each line is submitted as a word. ":new" starts a new round, ":quit" exits.
// Settings come from .env and the environment like the server's; flags override them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/app"
	"github.com/robalobadob/wordscramble/internal/config"
	"github.com/robalobadob/wordscramble/internal/game"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	rt, err := app.Open(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("prepare game")
	}
	defer rt.Close()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mscramble>\033[0m ",
		EOFPrompt:       ":quit",
		InterruptPrompt: "^C",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("init readline")
	}
	defer rl.Close()

	p := &player{engine: rt.NewEngine(), out: rl.Stdout()}
	if err := p.newRound(); err != nil {
		log.Fatal().Err(err).Msg("cannot start a round")
	}

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return
		}
		quit, err := p.handle(line)
		if err != nil {
			log.Error().Err(err).Msg("")
		}
		if quit {
			return
		}
	}
}

// loadConfig reads the same .env and environment as the server, then applies
// command line overrides.
func loadConfig(args []string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet("scramble", flag.ContinueOnError)
	fs.StringVar(&cfg.StartFile, "start-file", cfg.StartFile, "file with root words, one per line")
	fs.StringVar(&cfg.DictionaryFile, "dictionary-file", cfg.DictionaryFile, "file with dictionary words, one per line")
	fs.StringVar(&cfg.DictionaryBackend, "backend", cfg.DictionaryBackend, "dictionary backend: memory or sqlite")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite dictionary path for -backend=sqlite")
	fs.StringVar(&cfg.DailySalt, "salt", cfg.DailySalt, "salt for the word of the day")
	dailyMode := fs.Bool("daily", cfg.RootMode == config.RootDaily, "play the word of the day")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *dailyMode {
		cfg.RootMode = config.RootDaily
	} else {
		cfg.RootMode = config.RootRandom
	}
	switch cfg.DictionaryBackend {
	case config.BackendMemory, config.BackendSQLite:
	default:
		return nil, fmt.Errorf("unknown dictionary backend %q", cfg.DictionaryBackend)
	}
	return cfg, nil
}

// player renders engine results as text.
type player struct {
	engine *game.Engine
	out    io.Writer
}

func (p *player) newRound() error {
	root, err := p.engine.Reset()
	if err != nil {
		return err
	}
	fmt.Fprintf(p.out, "New round. Root word: %s\n", strings.ToUpper(root))
	return nil
}

// handle processes one input line and reports whether the user asked to quit.
func (p *player) handle(line string) (bool, error) {
	switch strings.TrimSpace(line) {
	case ":quit", ":q":
		fmt.Fprintf(p.out, "Final score: %d\n", p.engine.Score())
		return true, nil
	case ":new":
		return false, p.newRound()
	case ":words":
		for _, w := range p.engine.UsedWords() {
			fmt.Fprintf(p.out, "  %d  %s\n", len([]rune(w)), w)
		}
		return false, nil
	}

	out := p.engine.Submit(line)
	switch out.Kind {
	case game.KindAccepted:
		fmt.Fprintf(p.out, "+%d  %s  (score %d)\n", out.ScoreDelta, out.Word, out.NewScore)
	case game.KindRejected:
		title, msg := game.Describe(out.Reason, p.engine.RootWord())
		fmt.Fprintf(p.out, "%s: %s\n", title, msg)
	}
	return false, nil
}
