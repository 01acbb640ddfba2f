package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"deskfolio/internal/theme"
)

const prefTheme = "theme"

// Prefs is a small key/value table in <dir>/prefs.sqlite.
type Prefs struct {
	Dir string
}

// DefaultPrefs returns prefs rooted at ConfigDir.
func DefaultPrefs() (Prefs, error) {
	dir, err := ConfigDir()
	if err != nil {
		return Prefs{}, err
	}
	return Prefs{Dir: dir}, nil
}

func (p Prefs) path() string {
	return filepath.Join(p.Dir, "prefs.sqlite")
}

func (p Prefs) open(ctx context.Context) (*sql.DB, error) {
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", p.path())
	if err != nil {
		return nil, err
	}
	// The TUI and the CLI may both touch prefs; WAL + busy_timeout avoid "database is locked".
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, s := range pragmas {
		if _, err := db.ExecContext(ctx, s); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS prefs (
		k TEXT PRIMARY KEY,
		v TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Get returns the value for key and whether it was set.
func (p Prefs) Get(ctx context.Context, key string) (string, bool, error) {
	db, err := p.open(ctx)
	if err != nil {
		return "", false, err
	}
	defer db.Close()

	var v string
	err = db.QueryRowContext(ctx, `SELECT v FROM prefs WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (p Prefs) Set(ctx context.Context, key, value string) error {
	db, err := p.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx,
		`INSERT INTO prefs (k, v, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(k) DO UPDATE SET v = excluded.v, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (p Prefs) Delete(ctx context.Context, key string) error {
	db, err := p.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.ExecContext(ctx, `DELETE FROM prefs WHERE k = ?`, key)
	return err
}

// Theme returns the persisted theme mode, or auto when none was saved.
func (p Prefs) Theme(ctx context.Context) (theme.Mode, error) {
	v, ok, err := p.Get(ctx, prefTheme)
	if err != nil || !ok {
		return theme.ModeAuto, err
	}
	m, _ := theme.ParseMode(v)
	return m, nil
}

// SaveTheme implements theme.Persister.
func (p Prefs) SaveTheme(mode theme.Mode) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if mode == theme.ModeAuto {
		return p.Delete(ctx, prefTheme)
	}
	return p.Set(ctx, prefTheme, string(mode))
}
