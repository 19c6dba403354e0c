package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nkapoor/complaintdesk/internal/domain"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS complaints (
		complaint_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		phone_number TEXT NOT NULL,
		email TEXT NOT NULL,
		complaint_details TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_complaints_created ON complaints(created_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateComplaint stores a new complaint.
func (s *SQLiteStore) CreateComplaint(ctx context.Context, c *domain.Complaint) error {
	query := `
	INSERT INTO complaints (complaint_id, name, phone_number, email, complaint_details, created_at)
	VALUES (?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		c.ID, c.Name, c.PhoneNumber, c.Email, c.Details, c.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert complaint: %w", err)
	}
	return nil
}

// GetComplaint retrieves a complaint by ID.
func (s *SQLiteStore) GetComplaint(ctx context.Context, id string) (*domain.Complaint, error) {
	query := `
		SELECT complaint_id, name, phone_number, email, complaint_details, created_at
		FROM complaints WHERE complaint_id = ?`

	row := s.db.QueryRowContext(ctx, query, id)

	var complaint domain.Complaint
	var createdAt int64

	err := row.Scan(
		&complaint.ID, &complaint.Name, &complaint.PhoneNumber,
		&complaint.Email, &complaint.Details, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan complaint row: %w", err)
	}

	complaint.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &complaint, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
