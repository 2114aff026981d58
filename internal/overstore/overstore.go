// Package overstore persists user-entered local overrides in a
// key-value table backed by SQLite, MySQL or PostgreSQL.
package overstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/assiskamu/formula-menang/internal/contract"
	"github.com/assiskamu/formula-menang/schema"
	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// StorageKey is the single key the overrides blob lives under.
const StorageKey = "formula-menang-local-overrides-v1"

const overridesTable = "formula_local_overrides"

// StoreImpl handles durable override storage using various database
// backends.
type StoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.OverridesStore = &StoreImpl{} // Compile-time check

// NewStore initializes and returns a new override store based on the
// backend type. The none backend yields a no-op store whose Load
// always returns the sanitized default.
func NewStore(backend schema.DatabaseBackend, connStr string) (contract.OverridesStore, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetStoreDBFilePath()
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL store: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL store: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		return &StoreImpl{db: nil, backend: backend}, nil

	default:
		return nil, fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	if _, err := db.Exec(getCreateTableQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", overridesTable, err)
	}

	return &StoreImpl{db: db, backend: backend}, nil
}

// getCreateTableQuery returns the CREATE TABLE query for the given backend.
func getCreateTableQuery(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				override_key VARCHAR(255) PRIMARY KEY,
				override_value BLOB NOT NULL,
				override_version INT NOT NULL,
				override_timestamp BIGINT NOT NULL
			);
		`, overridesTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				override_key TEXT PRIMARY KEY,
				override_value BYTEA NOT NULL,
				override_version INTEGER NOT NULL,
				override_timestamp BIGINT NOT NULL
			);
		`, overridesTable)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				override_key TEXT PRIMARY KEY,
				override_value BLOB NOT NULL,
				override_version INTEGER NOT NULL,
				override_timestamp INTEGER NOT NULL
			);
		`, overridesTable)
	}
}

// Load retrieves the overrides blob. Empty, absent or corrupt storage
// recovers to a clean sanitized default; Load never fails upward.
func (s *StoreImpl) Load() (*schema.LocalOverrides, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return DefaultOverrides(), nil
	}

	placeholder := s.getPlaceholder()
	query := fmt.Sprintf(`SELECT override_value FROM %s WHERE override_key = %s`, overridesTable, placeholder)

	var value []byte
	if err := s.db.QueryRow(query, StorageKey).Scan(&value); err != nil {
		return DefaultOverrides(), nil
	}

	var overrides schema.LocalOverrides
	if err := json.Unmarshal(value, &overrides); err != nil {
		return DefaultOverrides(), nil
	}
	return Sanitize(&overrides), nil
}

// Save stamps the current time, sanitizes, persists and returns the
// persisted value.
func (s *StoreImpl) Save(overrides *schema.LocalOverrides) (*schema.LocalOverrides, error) {
	payload := Sanitize(overrides)
	payload.UpdatedAtISO = time.Now().UTC().Format(time.RFC3339)

	if s.backend == schema.NoneBackend || s.db == nil {
		return payload, nil
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode overrides: %w", err)
	}

	query := s.getUpsertQuery()
	if _, err := s.db.Exec(query, StorageKey, value, schema.OverridesVersion, time.Now().Unix()); err != nil {
		return nil, fmt.Errorf("failed to persist overrides: %w", err)
	}
	return payload, nil
}

// Clear removes the persisted blob.
func (s *StoreImpl) Clear() error {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}
	placeholder := s.getPlaceholder()
	query := fmt.Sprintf(`DELETE FROM %s WHERE override_key = %s`, overridesTable, placeholder)
	_, err := s.db.Exec(query, StorageKey)
	return err
}

// Close closes the underlying DB connection.
func (s *StoreImpl) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// getPlaceholder returns the parameter placeholder for the backend.
func (s *StoreImpl) getPlaceholder() string {
	switch s.backend {
	case schema.PostgreSQLBackend:
		return "$1"
	default: // SQLite and MySQL
		return "?"
	}
}

// getUpsertQuery returns the UPSERT query for the backend.
func (s *StoreImpl) getUpsertQuery() string {
	switch s.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (override_key, override_value, override_version, override_timestamp) VALUES (?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE override_value = new.override_value, override_version = new.override_version, override_timestamp = new.override_timestamp`, overridesTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (override_key, override_value, override_version, override_timestamp) VALUES ($1, $2, $3, $4)
			ON CONFLICT (override_key) DO UPDATE SET override_value = EXCLUDED.override_value, override_version = EXCLUDED.override_version, override_timestamp = EXCLUDED.override_timestamp`, overridesTable)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (override_key, override_value, override_version, override_timestamp) VALUES (?, ?, ?, ?)`, overridesTable)
	}
}

// Merge combines incoming overrides with the stored current set and
// persists the result. Replace mode discards current entirely; merge
// mode does a shallow per-key union where incoming entries win.
func Merge(store contract.OverridesStore, current, incoming *schema.LocalOverrides, mode schema.MergeMode) (*schema.LocalOverrides, error) {
	sanitized := Sanitize(incoming)
	if mode == schema.ReplaceOverrides {
		return store.Save(sanitized)
	}

	merged := &schema.LocalOverrides{
		Version:     schema.OverridesVersion,
		SeatDetails: make(map[string]schema.SeatOverride),
		Candidates:  make(map[string][]schema.CandidateOverride),
	}
	if current != nil {
		for code, detail := range current.SeatDetails {
			merged.SeatDetails[code] = detail
		}
		for code, rows := range current.Candidates {
			merged.Candidates[code] = rows
		}
	}
	for code, detail := range sanitized.SeatDetails {
		merged.SeatDetails[code] = detail
	}
	for code, rows := range sanitized.Candidates {
		merged.Candidates[code] = rows
	}
	return store.Save(merged)
}
