// internal/dictdb/dictdb.go
//
// SQLite-backed dictionary for the Word Scramble engine.
// Responsibilities:
//   - Opening the SQLite database with safe defaults (WAL, busy timeout).
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Importing a word list into the words table on first run.
//   - Answering game.Dictionary lookups with a prepared statement.

package dictdb

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Open opens (and creates if missing) a SQLite database file.
// The parent directory is created for relative paths such as ./data/words.db.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", path, err)
	}
	return db, nil
}

// Migrate applies embedded migrations in lexical order, skipping ones already recorded.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Import inserts words that are not present yet and returns how many were added.
func Import(ctx context.Context, db *sql.DB, list []string) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO words(word) VALUES (?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, w := range list {
		res, err := stmt.ExecContext(ctx, w)
		if err != nil {
			return 0, fmt.Errorf("insert %q: %w", w, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return added, nil
}

// Dictionary implements game.Dictionary over the words table.
type Dictionary struct {
	db     *sql.DB
	lookup *sql.Stmt
}

// New migrates db, merges seed into the words table (existing words are kept),
// and returns a Dictionary ready for lookups.
func New(ctx context.Context, db *sql.DB, seed []string) (*Dictionary, error) {
	if err := Migrate(ctx, db); err != nil {
		return nil, err
	}

	d := &Dictionary{db: db}
	if len(seed) > 0 {
		added, err := Import(ctx, db, seed)
		if err != nil {
			return nil, err
		}
		n, err := d.Count(ctx)
		if err != nil {
			return nil, err
		}
		log.Info().Int("added", added).Int("words", n).Msg("dictionary imported")
	}

	var err error
	d.lookup, err = db.PrepareContext(ctx, `SELECT 1 FROM words WHERE word=?`)
	if err != nil {
		return nil, fmt.Errorf("prepare lookup: %w", err)
	}
	return d, nil
}

// IsValidWord reports whether w is in the words table.
// Query failures are logged and treated as "not a word".
func (d *Dictionary) IsValidWord(w string) bool {
	var one int
	err := d.lookup.QueryRow(w).Scan(&one)
	switch {
	case err == nil:
		return true
	case errors.Is(err, sql.ErrNoRows):
		return false
	default:
		log.Error().Err(err).Str("word", w).Msg("dictionary lookup")
		return false
	}
}

// Count returns the number of stored words.
func (d *Dictionary) Count(ctx context.Context) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM words`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count words: %w", err)
	}
	return n, nil
}

// Close releases the prepared statement. The *sql.DB stays open.
func (d *Dictionary) Close() error {
	if d.lookup == nil {
		return nil
	}
	return d.lookup.Close()
}
