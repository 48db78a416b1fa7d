package dataset

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Store persists labeled feature records in SQLite so datasets can grow
// across runs. One database file holds everything; feature vectors are
// stored as JSON in schema order.
type Store struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// StoreOptions configures Store behavior.
type StoreOptions struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance.
	EnableWAL bool
}

// DefaultStoreOptions returns the default store options.
func DefaultStoreOptions() StoreOptions {
	return StoreOptions{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// OpenStore opens or creates the dataset store under dbDir.
func OpenStore(dbDir string, opts StoreOptions) (*Store, error) {
	dbPath := filepath.Join(dbDir, "phishscan.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("dataset store not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("check dataset store path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("create dataset store directory: %w", err)
		}
	}

	// mode=rw prevents creating a new file when the caller expects an
	// existing store.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open dataset store: %w", err)
	}

	// SQLite supports one writer; keep the pool at a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}
	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create dataset tables: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return ErrStoreClosed
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// createTables creates the schema if it doesn't exist.
func (s *Store) createTables() error {
	schema := `
	-- One row per extracted page, keyed by URL: re-extracting a URL
	-- replaces its previous features.
	CREATE TABLE IF NOT EXISTS feature_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL UNIQUE,
		domain TEXT NOT NULL,
		label INTEGER NOT NULL,
		registrar TEXT,
		degraded INTEGER NOT NULL DEFAULT 0,
		extracted_at DATETIME NOT NULL,
		features TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_records_domain ON feature_records(domain);
	CREATE INDEX IF NOT EXISTS idx_records_label ON feature_records(label);
	`
	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// StoredRecord is one persisted dataset row.
type StoredRecord struct {
	ID          int64
	URL         string
	Domain      string
	Label       int
	Registrar   string
	Degraded    bool
	ExtractedAt time.Time
	// Features holds the feature values keyed by schema field name.
	Features map[string]float64
}

// Save inserts or replaces the record for the report's URL.
func (s *Store) Save(ctx context.Context, lr *LabeledReport) (int64, error) {
	if s.db == nil {
		return 0, ErrStoreClosed
	}

	features, err := json.Marshal(lr.Report.Record)
	if err != nil {
		return 0, fmt.Errorf("serialize features: %w", err)
	}

	query := `
	INSERT INTO feature_records (url, domain, label, registrar, degraded, extracted_at, features)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(url) DO UPDATE SET
		domain = excluded.domain,
		label = excluded.label,
		registrar = excluded.registrar,
		degraded = excluded.degraded,
		extracted_at = excluded.extracted_at,
		features = excluded.features
	`
	degraded := 0
	if lr.Report.DegradedFetch {
		degraded = 1
	}
	res, err := s.db.ExecContext(ctx, query,
		lr.Report.URL,
		lr.Report.Domain.Domain,
		lr.Label,
		lr.Report.Registrar,
		degraded,
		lr.Report.ExtractedAt.UTC(),
		string(features),
	)
	if err != nil {
		return 0, fmt.Errorf("save feature record: %w", err)
	}
	return res.LastInsertId()
}

// SaveAll persists every report, returning the number saved.
func (s *Store) SaveAll(ctx context.Context, reports []*LabeledReport) (int, error) {
	for i, lr := range reports {
		if _, err := s.Save(ctx, lr); err != nil {
			return i, err
		}
	}
	return len(reports), nil
}

// Records returns all stored rows ordered by insertion.
func (s *Store) Records(ctx context.Context) ([]*StoredRecord, error) {
	if s.db == nil {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.QueryContext(ctx, `
	SELECT id, url, domain, label, registrar, degraded, extracted_at, features
	FROM feature_records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query feature records: %w", err)
	}
	defer rows.Close()

	var records []*StoredRecord
	for rows.Next() {
		var (
			rec       StoredRecord
			registrar sql.NullString
			degraded  int
			features  string
		)
		if err := rows.Scan(&rec.ID, &rec.URL, &rec.Domain, &rec.Label,
			&registrar, &degraded, &rec.ExtractedAt, &features); err != nil {
			return nil, fmt.Errorf("scan feature record: %w", err)
		}
		rec.Registrar = registrar.String
		rec.Degraded = degraded != 0
		if err := json.Unmarshal([]byte(features), &rec.Features); err != nil {
			return nil, fmt.Errorf("decode features for %s: %w", rec.URL, err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feature records: %w", err)
	}
	return records, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, ErrStoreClosed
	}
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM feature_records").Scan(&n); err != nil {
		return 0, fmt.Errorf("count feature records: %w", err)
	}
	return n, nil
}
