package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/placepick/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/placepick/internal/core/domain"
	"github.com/custodia-labs/placepick/internal/core/ports/driven"
)

const dbFileName = "selections.db"

// Store is a SQLite-backed store. Port implementations are exposed
// through wrapper types sharing one connection.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.placepick/data/selections.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".placepick", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)

	// WAL lets the CLI read while a TUI session writes.
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

// SelectionStore returns a SelectionStore interface backed by this store.
func (s *Store) SelectionStore() driven.SelectionStore {
	return &selectionStore{store: s}
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("getting schema version: %w", err)
	}
	return version, nil
}

// migrate runs all pending up migrations, each in its own transaction.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	currentVersion, err := s.SchemaVersion(context.Background())
	if err != nil {
		return err
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_selections.up.sql" -> 1
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

		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// ==================== Selection Store ====================

// selectionStore implements driven.SelectionStore.
type selectionStore struct {
	store *Store
}

var _ driven.SelectionStore = (*selectionStore)(nil)

// Save inserts or replaces a record.
func (s *selectionStore) Save(ctx context.Context, record domain.SelectionRecord) error {
	if record.ID == "" {
		return fmt.Errorf("%w: selection id is empty", domain.ErrInvalidInput)
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO selections (id, value, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			value = excluded.value,
			created_at = excluded.created_at
	`, record.ID, record.Value, record.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("saving selection: %w", err)
	}
	return nil
}

// Get retrieves a record by ID.
func (s *selectionStore) Get(ctx context.Context, id string) (*domain.SelectionRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, value, created_at FROM selections WHERE id = ?
	`, id)

	record, err := scanSelection(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning selection: %w", err)
	}
	return record, nil
}

// List returns all records, newest first.
func (s *selectionStore) List(ctx context.Context) ([]domain.SelectionRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, value, created_at FROM selections
		ORDER BY created_at DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying selections: %w", err)
	}
	defer rows.Close()

	records := []domain.SelectionRecord{}
	for rows.Next() {
		record, err := scanSelection(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning selection: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating selections: %w", err)
	}

	return records, nil
}

// Delete removes a record by ID.
func (s *selectionStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM selections WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting selection: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting selection: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSelection(row scanner) (*domain.SelectionRecord, error) {
	var record domain.SelectionRecord
	var createdAt int64
	if err := row.Scan(&record.ID, &record.Value, &createdAt); err != nil {
		return nil, err
	}
	record.CreatedAt = time.Unix(0, createdAt).UTC()
	return &record, nil
}
