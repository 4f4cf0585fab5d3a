// Package store caches detected outlines in SQLite, keyed by the content
// hash of the PDF and the fingerprint of the detector configuration that
// produced them.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ivlev/pdfoutline/internal/outline"
)

var (
	// ErrNotFound is returned when no outline is cached for a hash and fingerprint
	ErrNotFound = errors.New("store: outline not cached")
	// ErrCorrupt is returned when a cached row cannot be decoded
	ErrCorrupt = errors.New("store: cached outline is corrupt")
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS outlines (
    content_hash TEXT NOT NULL,
    fingerprint TEXT NOT NULL,
    path TEXT NOT NULL,
    pages INTEGER NOT NULL DEFAULT 0,
    title TEXT,
    meta_title TEXT,
    result JSON NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (content_hash, fingerprint)
);

CREATE INDEX IF NOT EXISTS idx_outlines_path ON outlines(path);
`

// Entry is one cached outline
type Entry struct {
	ContentHash string
	Fingerprint string
	Path        string
	MetaTitle   string
	Pages       int
	Result      outline.Result
	CreatedAt   time.Time
}

// Store is a SQLite-backed outline cache. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cache database at dbPath
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the cached outline for a document hash and detector fingerprint.
func (s *Store) Get(ctx context.Context, contentHash, fingerprint string) (Entry, error) {
	var (
		e         Entry
		raw       string
		metaTitle sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT content_hash, fingerprint, path, meta_title, pages, result, created_at
		FROM outlines WHERE content_hash = ? AND fingerprint = ?
	`, contentHash, fingerprint).Scan(&e.ContentHash, &e.Fingerprint, &e.Path, &metaTitle, &e.Pages, &raw, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, err
	}

	e.MetaTitle = metaTitle.String

	if err := json.Unmarshal([]byte(raw), &e.Result); err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if e.Result.Outline == nil {
		e.Result.Outline = []outline.Heading{}
	}
	return e, nil
}

// Put stores or replaces the outline of a document.
func (s *Store) Put(ctx context.Context, e Entry) error {
	raw, err := json.Marshal(e.Result)
	if err != nil {
		return fmt.Errorf("encoding outline: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO outlines (content_hash, fingerprint, path, meta_title, pages, title, result)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(content_hash, fingerprint) DO UPDATE SET
			path = excluded.path,
			meta_title = excluded.meta_title,
			pages = excluded.pages,
			title = excluded.title,
			result = excluded.result,
			created_at = CURRENT_TIMESTAMP
	`, e.ContentHash, e.Fingerprint, e.Path, e.MetaTitle, e.Pages, e.Result.Title, string(raw))
	return err
}

// Count returns the number of cached outlines.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM outlines").Scan(&n)
	return n, err
}

// Prune deletes every outline that was produced under a fingerprint other
// than keep and returns how many rows were removed.
func (s *Store) Prune(ctx context.Context, keep string) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM outlines WHERE fingerprint <> ?", keep)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// HashFile returns the hex sha256 of the file contents.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
