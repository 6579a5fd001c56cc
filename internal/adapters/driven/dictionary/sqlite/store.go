// Package sqlite persists the indicator dictionary in a local SQLite
// database, so `dict import` can cache the published CSV and later runs
// rebuild the catalog without re-reading it.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/edstats-labs/uisdata-cli/internal/adapters/driven/dictionary/sqlite/migrations"
	"github.com/edstats-labs/uisdata-cli/internal/core/domain"
	"github.com/edstats-labs/uisdata-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.DictionaryStore = (*Store)(nil)

// freeDimensionSeparator joins free dimension names into one column.
const freeDimensionSeparator = "|"

// Store is a SQLite-backed dictionary store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a dictionary store at the specified data directory.
// If dataDir is empty, defaults to ~/.uisdata/data/dictionary.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".uisdata", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "dictionary.db")

	// WAL mode keeps concurrent readers cheap
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
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

// Load reads all dictionary records in their original source order.
func (s *Store) Load(ctx context.Context) ([]domain.IndicatorRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, full_key, short_key, label, family_id, free_dimensions
		FROM indicators ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying indicators: %w", err)
	}
	defer rows.Close()

	var records []domain.IndicatorRecord
	for rows.Next() {
		var rec domain.IndicatorRecord
		var freeDims string
		if err := rows.Scan(&rec.ID, &rec.FullKey, &rec.ShortKey, &rec.Label, &rec.FamilyID, &freeDims); err != nil {
			return nil, fmt.Errorf("scanning indicator: %w", err)
		}
		if freeDims != "" {
			rec.FreeDimensions = strings.Split(freeDims, freeDimensionSeparator)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading indicators: %w", err)
	}
	return records, nil
}

// Save replaces the stored dictionary with the given records, atomically.
func (s *Store) Save(ctx context.Context, records []domain.IndicatorRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM indicators"); err != nil {
		return fmt.Errorf("clearing indicators: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO indicators (position, id, full_key, short_key, label, family_id, free_dimensions)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		freeDims := strings.Join(rec.FreeDimensions, freeDimensionSeparator)
		if _, err := stmt.ExecContext(ctx, i, rec.ID, rec.FullKey, rec.ShortKey, rec.Label, rec.FamilyID, freeDims); err != nil {
			return fmt.Errorf("inserting indicator %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing dictionary: %w", err)
	}
	return nil
}

// migrate applies any unapplied .up.sql migrations in version order.
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
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
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
