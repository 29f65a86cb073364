package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	sqlitemigrate "github.com/louisbranch/injuryrisk/internal/platform/storage/sqlitemigrate"
	webstorage "github.com/louisbranch/injuryrisk/internal/services/web/storage"
	"github.com/louisbranch/injuryrisk/internal/services/web/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// Store provides SQLite-backed persistence for submission outcomes.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens and migrates a submission log store at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close releases the underlying SQLite connection.
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
		`INSERT INTO submissions (id, outcome, status_code, latency_ms, created_at) VALUES (?, ?, ?, ?, ?)`,
		record.ID,
		string(record.Outcome),
		record.StatusCode,
		record.Latency.Milliseconds(),
		record.CreatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put submission: %w", err)
	}
	return nil
}

// ListSubmissions returns the newest outcomes first. A non-positive limit uses
// the default page size.
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
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
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
			createdAt int64
		)
		if err := rows.Scan(&record.ID, &outcome, &record.StatusCode, &latencyMS, &createdAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		record.Outcome = webstorage.Outcome(outcome)
		record.Latency = time.Duration(latencyMS) * time.Millisecond
		record.CreatedAt = time.UnixMilli(createdAt).UTC()
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return records, nil
}

var _ webstorage.SubmissionStore = (*Store)(nil)
