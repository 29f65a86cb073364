// Package postgres stores submission outcomes in PostgreSQL through the pgx
// database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	webstorage "github.com/louisbranch/injuryrisk/internal/services/web/storage"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

//go:embed schema.sql
var schema string

// Store provides PostgreSQL-backed persistence for submission outcomes.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open connects to dsn and ensures the submissions schema exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, errors.New("database url is required")
	}

	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres db: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres db: %w", err)
	}
	if _, err := sqlDB.ExecContext(ctx, schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutSubmission inserts one outcome. Missing ids and timestamps are filled in.
func (s *Store) PutSubmission(ctx context.Context, record webstorage.SubmissionRecord) error {
	if s == nil || s.sqlDB == nil {
		return errors.New("storage is not configured")
	}
	if !record.Outcome.Valid() {
		return fmt.Errorf("unknown submission outcome %q", record.Outcome)
	}
	record.ID = strings.TrimSpace(record.ID)
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = s.now()
	}
	if record.Latency < 0 {
		record.Latency = 0
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO submissions (id, outcome, status_code, latency_ms, created_at) VALUES ($1, $2, $3, $4, $5)`,
		record.ID,
		string(record.Outcome),
		record.StatusCode,
		record.Latency.Milliseconds(),
		record.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("put submission: %w", err)
	}
	return nil
}

// ListSubmissions returns the newest outcomes first.
func (s *Store) ListSubmissions(ctx context.Context, limit int) ([]webstorage.SubmissionRecord, error) {
	if s == nil || s.sqlDB == nil {
		return nil, errors.New("storage is not configured")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, outcome, status_code, latency_ms, created_at
		 FROM submissions
		 ORDER BY created_at DESC, seq DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	records := make([]webstorage.SubmissionRecord, 0, limit)
	for rows.Next() {
		var (
			record    webstorage.SubmissionRecord
			outcome   string
			latencyMS int64
		)
		if err := rows.Scan(&record.ID, &outcome, &record.StatusCode, &latencyMS, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		record.Outcome = webstorage.Outcome(outcome)
		record.Latency = time.Duration(latencyMS) * time.Millisecond
		record.CreatedAt = record.CreatedAt.UTC()
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return records, nil
}

var _ webstorage.SubmissionStore = (*Store)(nil)
