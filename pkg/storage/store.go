// Package storage keeps named trees in a SQLite database as flat node
// records.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/eqtree/pkg/tree"
)

// ErrTreeNotFound is returned when no tree is stored under a name.
var ErrTreeNotFound = errors.New("tree not found")

// TreeInfo summarises a stored tree.
type TreeInfo struct {
	Name      string
	Nodes     int
	UpdatedAt time.Time
}

// Store is a SQLite-backed tree store. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS trees (
	name       TEXT PRIMARY KEY,
	updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS nodes (
	tree      TEXT NOT NULL REFERENCES trees(name) ON DELETE CASCADE,
	id        TEXT NOT NULL,
	label     TEXT NOT NULL,
	parent_id TEXT,
	position  INTEGER NOT NULL,
	PRIMARY KEY (tree, id)
);

CREATE INDEX IF NOT EXISTS nodes_tree_position ON nodes(tree, position);
`

// Open opens (or creates) the database at path. ":memory:" is accepted.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps :memory: databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the tree stored under name with roots in one transaction.
func (s *Store) Save(ctx context.Context, name string, roots []*tree.Node) error {
	if name == "" {
		return errors.New("tree name is empty")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM nodes WHERE tree = ?", name); err != nil {
		return fmt.Errorf("clear nodes: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO trees (name, updated_at) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET updated_at = excluded.updated_at`,
		name, time.Now().UnixMilli()); err != nil {
		return fmt.Errorf("upsert tree: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO nodes (tree, id, label, parent_id, position) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range tree.ToRecords(roots) {
		var parent sql.NullString
		if rec.ParentID != "" {
			parent = sql.NullString{String: rec.ParentID, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, name, rec.ID, rec.Label, parent, rec.Position); err != nil {
			return fmt.Errorf("insert node %q: %w", rec.ID, err)
		}
	}

	return tx.Commit()
}

// Load rebuilds the tree stored under name.
func (s *Store) Load(ctx context.Context, name string) ([]*tree.Node, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM trees WHERE name = ?", name).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrTreeNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("look up tree: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, label, COALESCE(parent_id, ''), position FROM nodes WHERE tree = ? ORDER BY rowid",
		name)
	if err != nil {
		return nil, fmt.Errorf("query nodes: %w", err)
	}
	defer rows.Close()

	var records []tree.Record
	for rows.Next() {
		var rec tree.Record
		if err := rows.Scan(&rec.ID, &rec.Label, &rec.ParentID, &rec.Position); err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nodes: %w", err)
	}

	roots, err := tree.FromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("rebuild %q: %w", name, err)
	}
	return roots, nil
}

// List returns every stored tree ordered by name.
func (s *Store) List(ctx context.Context) ([]TreeInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.name, t.updated_at, COUNT(n.id)
		FROM trees t LEFT JOIN nodes n ON n.tree = t.name
		GROUP BY t.name, t.updated_at
		ORDER BY t.name`)
	if err != nil {
		return nil, fmt.Errorf("list trees: %w", err)
	}
	defer rows.Close()

	var out []TreeInfo
	for rows.Next() {
		var (
			info    TreeInfo
			updated int64
		)
		if err := rows.Scan(&info.Name, &updated, &info.Nodes); err != nil {
			return nil, fmt.Errorf("scan tree: %w", err)
		}
		info.UpdatedAt = time.UnixMilli(updated)
		out = append(out, info)
	}
	return out, rows.Err()
}

// Delete removes the tree stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trees WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("delete tree: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete tree: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrTreeNotFound, name)
	}
	return nil
}
