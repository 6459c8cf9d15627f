package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"siralim-planner/internal/model"
)

const (
	dbFileName    = "planner.sqlite"
	schemaVersion = 1

	// MonsterMissing is the integrity error placed on a slot whose saved monster is no longer in the catalog.
	MonsterMissing = "monster no longer exists"
)

// Store keeps named parties in a SQLite database under Dir.
type Store struct {
	Dir string
}

// NotFoundError reports a missing party.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string { return fmt.Sprintf("%s not found: %s", e.Kind, e.ID) }

// Resolver looks catalog records up by uid. *catalog.Catalog implements it.
type Resolver interface {
	Monster(uid string) (*model.Monster, error)
	Spell(uid string) (*model.Spell, error)
	Relic(uid string) (*model.Relic, error)
}

// Summary describes a saved party without resolving it.
type Summary struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Members   int       `json:"members" yaml:"members"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Loaded is a resolved party. Warnings list saved spells and relics that were dropped.
type Loaded struct {
	Summary
	Party    model.Party
	Warnings []string
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, dbFileName)
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite registers as "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS parties (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			json TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	_, err := db.ExecContext(ctx, `INSERT OR IGNORE INTO meta(k, v) VALUES('schema_version', ?)`, fmt.Sprintf("%d", schemaVersion))
	return err
}

// NormalizeName trims a party name and rejects empty ones.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("party name is required")
	}
	return name, nil
}

// Save writes p under name, creating the party on first save.
func (s Store) Save(ctx context.Context, name string, p model.Party) error {
	name, err := NormalizeName(name)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(toWire(p))
	if err != nil {
		return err
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	nowMs := time.Now().UTC().UnixMilli()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO parties(id, name, json, created_at_unixms, updated_at_unixms) VALUES(?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET json = excluded.json, updated_at_unixms = excluded.updated_at_unixms`,
		uuid.NewString(), name, string(raw), nowMs, nowMs); err != nil {
		return err
	}
	return tx.Commit()
}

// Load reads the named party and resolves it against the catalog.
// Monsters missing from the catalog leave an empty slot carrying MonsterMissing.
func (s Store) Load(ctx context.Context, name string, res Resolver) (*Loaded, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var (
		out       Loaded
		raw       string
		createdMs int64
		updatedMs int64
	)
	err = db.QueryRowContext(ctx, `SELECT id, name, json, created_at_unixms, updated_at_unixms FROM parties WHERE name = ?`, name).
		Scan(&out.ID, &out.Name, &raw, &createdMs, &updatedMs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFoundError{Kind: "party", ID: name}
	}
	if err != nil {
		return nil, err
	}
	var w wireParty
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return nil, fmt.Errorf("party %q: %w", name, err)
	}
	out.Party, out.Warnings = fromWire(w, res)
	out.Members = w.memberCount()
	out.CreatedAt = time.UnixMilli(createdMs).UTC()
	out.UpdatedAt = time.UnixMilli(updatedMs).UTC()
	return &out, nil
}

// List returns every saved party ordered by name.
func (s Store) List(ctx context.Context) ([]Summary, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT id, name, json, created_at_unixms, updated_at_unixms FROM parties ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var (
			sum       Summary
			raw       string
			createdMs int64
			updatedMs int64
		)
		if err := rows.Scan(&sum.ID, &sum.Name, &raw, &createdMs, &updatedMs); err != nil {
			return nil, err
		}
		var w wireParty
		if err := json.Unmarshal([]byte(raw), &w); err == nil {
			sum.Members = w.memberCount()
		}
		sum.CreatedAt = time.UnixMilli(createdMs).UTC()
		sum.UpdatedAt = time.UnixMilli(updatedMs).UTC()
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Delete removes the named party.
func (s Store) Delete(ctx context.Context, name string) error {
	name, err := NormalizeName(name)
	if err != nil {
		return err
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `DELETE FROM parties WHERE name = ?`, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return NotFoundError{Kind: "party", ID: name}
	}
	return nil
}
