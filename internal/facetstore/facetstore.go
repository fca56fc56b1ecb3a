// Package facetstore persists facet selections across sessions using a
// pluggable SQL backend. Only the facet sets pass through this package; the
// free-text search query is session-only by design and has no storage path.
package facetstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ceaplens/ceaplens/internal/contract"
	"github.com/ceaplens/ceaplens/schema"
	_ "github.com/go-sql-driver/mysql"    // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib"    // PostgreSQL driver
	_ "modernc.org/sqlite"                // SQLite driver
)

// Namespace is the fixed key the facet selections are stored under.
const Namespace = "ceaplens.filters.v1"

// currentStateVersion identifies the serialized selection shape.
const currentStateVersion = 1

// Store handles durable facet-state storage using various database backends.
type Store struct {
	db      *sql.DB
	backend schema.StoreBackend
}

var _ contract.FacetStore = (*Store)(nil) // Compile-time check

// NewStore initializes a facet store for the given backend. The none backend
// returns a store whose operations are no-ops, so callers never need a nil
// check. The table schema is managed through embedded migrations.
func NewStore(backend schema.StoreBackend, connStr string) (*Store, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetFacetDBFilePath()
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite facet store at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// A single open connection avoids "database is locked" errors.
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr format: user:password@tcp(host:port)/dbname
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL facet store: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr format: host=localhost port=5432 user=postgres dbname=mydb
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL facet store: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		return &Store{db: nil, backend: backend}, nil

	default:
		return nil, fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	if err := runMigrations(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run facet store migrations: %w", err)
	}

	return &Store{db: db, backend: backend}, nil
}

// Save replaces the persisted facet selections.
func (s *Store) Save(sel schema.FacetSelections) error {
	if s.db == nil {
		return nil
	}
	payload, err := json.Marshal(sel)
	if err != nil {
		return fmt.Errorf("failed to serialize facet selections: %w", err)
	}
	query := upsertQuery(s.backend)
	if _, err := s.db.Exec(query, Namespace, string(payload), currentStateVersion, time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to save facet selections: %w", err)
	}
	return nil
}

// Load returns the persisted facet selections. An absent row or a version
// mismatch yields an empty selection, never an error: stale state must not
// block a session.
func (s *Store) Load() (schema.FacetSelections, error) {
	var empty schema.FacetSelections
	if s.db == nil {
		return empty, nil
	}

	query := selectQuery(s.backend)
	var payload string
	var version int
	err := s.db.QueryRow(query, Namespace).Scan(&payload, &version)
	if err == sql.ErrNoRows {
		return empty, nil
	}
	if err != nil {
		return empty, fmt.Errorf("failed to load facet selections: %w", err)
	}
	if version != currentStateVersion {
		return empty, nil
	}

	var sel schema.FacetSelections
	if err := json.Unmarshal([]byte(payload), &sel); err != nil {
		// A corrupt payload degrades to an empty selection.
		return empty, nil
	}
	return sel, nil
}

// Clear removes the persisted facet selections.
func (s *Store) Clear() error {
	if s.db == nil {
		return nil
	}
	query := deleteQuery(s.backend)
	if _, err := s.db.Exec(query, Namespace); err != nil {
		return fmt.Errorf("failed to clear facet selections: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// upsertQuery returns the backend-specific insert-or-replace statement.
func upsertQuery(backend schema.StoreBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return `INSERT INTO facet_state (namespace, selections, schema_version, updated_at)
			VALUES (?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE selections = VALUES(selections),
				schema_version = VALUES(schema_version), updated_at = VALUES(updated_at)`
	case schema.PostgreSQLBackend:
		return `INSERT INTO facet_state (namespace, selections, schema_version, updated_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (namespace) DO UPDATE SET selections = EXCLUDED.selections,
				schema_version = EXCLUDED.schema_version, updated_at = EXCLUDED.updated_at`
	default: // SQLite
		return `INSERT INTO facet_state (namespace, selections, schema_version, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (namespace) DO UPDATE SET selections = excluded.selections,
				schema_version = excluded.schema_version, updated_at = excluded.updated_at`
	}
}

// selectQuery returns the backend-specific row lookup.
func selectQuery(backend schema.StoreBackend) string {
	if backend == schema.PostgreSQLBackend {
		return `SELECT selections, schema_version FROM facet_state WHERE namespace = $1`
	}
	return `SELECT selections, schema_version FROM facet_state WHERE namespace = ?`
}

// deleteQuery returns the backend-specific row delete.
func deleteQuery(backend schema.StoreBackend) string {
	if backend == schema.PostgreSQLBackend {
		return `DELETE FROM facet_state WHERE namespace = $1`
	}
	return `DELETE FROM facet_state WHERE namespace = ?`
}
