// Package sqlite provides the SQLite-backed workspace store. Autosave
// buffers survive process restarts, so an interrupted editing session
// can be recovered.
package sqlite

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
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/article-avenue/avenue-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/article-avenue/avenue-cli/internal/core/domain"
	"github.com/article-avenue/avenue-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.WorkspaceStore = (*Store)(nil)

// Store is a SQLite-backed workspace store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.avenue/data/workspace.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".avenue", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "workspace.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate applies pending .up.sql migrations in version order.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Save stores or updates a buffer.
func (s *Store) Save(ctx context.Context, buf domain.DraftBuffer) error {
	if buf.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO draft_buffers (id, article_id, kind, title, category, body, description, filename, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			article_id = excluded.article_id,
			kind = excluded.kind,
			title = excluded.title,
			category = excluded.category,
			body = excluded.body,
			description = excluded.description,
			filename = excluded.filename,
			updated_at = excluded.updated_at
	`, buf.ID, buf.ArticleID, string(buf.Kind), buf.Title, string(buf.Category),
		buf.Body, buf.Description, buf.Filename, buf.UpdatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("saving buffer %s: %w", buf.ID, err)
	}
	return nil
}

// Get retrieves a buffer by ID.
func (s *Store) Get(ctx context.Context, id string) (*domain.DraftBuffer, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, article_id, kind, title, category, body, description, filename, updated_at
		FROM draft_buffers WHERE id = ?
	`, id)
	return scanBuffer(row)
}

// Latest returns the most recently updated buffer.
func (s *Store) Latest(ctx context.Context) (*domain.DraftBuffer, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, article_id, kind, title, category, body, description, filename, updated_at
		FROM draft_buffers ORDER BY updated_at DESC LIMIT 1
	`)
	return scanBuffer(row)
}

// List returns all buffers, most recent first.
func (s *Store) List(ctx context.Context) ([]domain.DraftBuffer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, article_id, kind, title, category, body, description, filename, updated_at
		FROM draft_buffers ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing buffers: %w", err)
	}
	defer rows.Close()

	var buffers []domain.DraftBuffer
	for rows.Next() {
		buf, err := scanBuffer(rows)
		if err != nil {
			return nil, err
		}
		buffers = append(buffers, *buf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing buffers: %w", err)
	}
	return buffers, nil
}

// Delete removes a buffer. Deleting a missing buffer is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM draft_buffers WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting buffer %s: %w", id, err)
	}
	return nil
}

// SavePending stores an interrupted publish under its resume token.
func (s *Store) SavePending(ctx context.Context, p domain.PendingPublish) error {
	if p.Token == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pending_publishes (token, username, title, category, body, description, thumbnail, filename, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(token) DO UPDATE SET
			username = excluded.username,
			title = excluded.title,
			category = excluded.category,
			body = excluded.body,
			description = excluded.description,
			thumbnail = excluded.thumbnail,
			filename = excluded.filename,
			created_at = excluded.created_at
	`, p.Token, p.Username, p.Title, string(p.Category),
		p.Body, p.Description, p.Thumbnail, p.Filename, p.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("saving pending publish %s: %w", p.Token, err)
	}
	return nil
}

// GetPending retrieves an interrupted publish by resume token.
func (s *Store) GetPending(ctx context.Context, token string) (*domain.PendingPublish, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT token, username, title, category, body, description, thumbnail, filename, created_at
		FROM pending_publishes WHERE token = ?
	`, token)

	var (
		p         domain.PendingPublish
		category  string
		createdAt string
	)
	err := row.Scan(&p.Token, &p.Username, &p.Title, &category,
		&p.Body, &p.Description, &p.Thumbnail, &p.Filename, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning pending publish: %w", err)
	}

	p.Category = domain.Category(category)
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		p.CreatedAt = t
	}
	return &p, nil
}

// DeletePending removes an interrupted publish. Missing tokens are a
// no-op.
func (s *Store) DeletePending(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM pending_publishes WHERE token = ?", token); err != nil {
		return fmt.Errorf("deleting pending publish %s: %w", token, err)
	}
	return nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanBuffer(row scanner) (*domain.DraftBuffer, error) {
	var (
		buf       domain.DraftBuffer
		kind      string
		category  string
		updatedAt string
	)
	err := row.Scan(&buf.ID, &buf.ArticleID, &kind, &buf.Title, &category,
		&buf.Body, &buf.Description, &buf.Filename, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning buffer: %w", err)
	}

	buf.Kind = domain.ArticleKind(kind)
	buf.Category = domain.Category(category)
	if t, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		buf.UpdatedAt = t
	}
	return &buf, nil
}
