// Package store persists privacy-conscious visitor analytics in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Zachkp/portfolio/internal/store/migrations"
)

// Visit is one tracked page view. The client IP is never stored raw.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// FilterChange records a gallery filter selection by one session.
type FilterChange struct {
	HashedSession string
	Filter        string
	Timestamp     time.Time
}

// FilterCount is how often a filter tag was selected.
type FilterCount struct {
	Filter string `json:"filter"`
	Count  int64  `json:"count"`
}

// Stats summarizes the analytics tables for the admin dashboard.
type Stats struct {
	TotalVisitors    int64         `json:"total_visitors"`
	UniqueVisitors   int64         `json:"unique_visitors"`
	VisitorsToday    int64         `json:"visitors_today"`
	VisitorsThisWeek int64         `json:"visitors_this_week"`
	FilterCounts     []FilterCount `json:"filter_counts"`
	RecentVisitors   []Visit       `json:"recent_visitors"`
}

// Store is a SQLite analytics store.
type Store struct {
	db *sql.DB
}

// Open opens the database at path and applies pending migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("database path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// RecordVisit inserts one page view.
func (s *Store) RecordVisit(ctx context.Context, v Visit) error {
	if v.HashedIP == "" {
		return fmt.Errorf("hashed ip is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, visited_at)
		VALUES (?, ?, ?, ?)`,
		v.HashedIP, v.UserAgent, v.Path, toMillis(v.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// RecordFilterChange inserts one filter selection.
func (s *Store) RecordFilterChange(ctx context.Context, fc FilterChange) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO filter_events (hashed_session, filter, selected_at)
		VALUES (?, ?, ?)`,
		fc.HashedSession, fc.Filter, toMillis(fc.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("record filter change: %w", err)
	}
	return nil
}

// Stats computes dashboard statistics relative to now.
func (s *Store) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	stats := &Stats{}
	now = now.UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, "SELECT COUNT(*) FROM visitors", nil},
		{&stats.UniqueVisitors, "SELECT COUNT(DISTINCT hashed_ip) FROM visitors", nil},
		{&stats.VisitorsToday, "SELECT COUNT(*) FROM visitors WHERE visited_at >= ?", []any{toMillis(startOfDay)}},
		{&stats.VisitorsThisWeek, "SELECT COUNT(*) FROM visitors WHERE visited_at >= ?", []any{toMillis(now.AddDate(0, 0, -7))}},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("count visitors: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT filter, COUNT(*) AS selections
		FROM filter_events
		GROUP BY filter
		ORDER BY selections DESC, filter ASC`)
	if err != nil {
		return nil, fmt.Errorf("count filters: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var fc FilterCount
		if err := rows.Scan(&fc.Filter, &fc.Count); err != nil {
			return nil, fmt.Errorf("scan filter count: %w", err)
		}
		stats.FilterCounts = append(stats.FilterCounts, fc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count filters: %w", err)
	}

	stats.RecentVisitors, err = s.RecentVisits(ctx, 50)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// RecentVisits returns up to limit visits, newest first.
func (s *Store) RecentVisits(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, user_agent, path, visited_at
		FROM visitors
		ORDER BY visited_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var (
			v  Visit
			at int64
		)
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &at); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		v.Timestamp = fromMillis(at)
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	return visits, nil
}

// PurgeVisitsBefore deletes visits and filter events older than cutoff.
func (s *Store) PurgeVisitsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM visitors WHERE visited_at < ?", toMillis(cutoff))
	if err != nil {
		return 0, fmt.Errorf("purge visits: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM filter_events WHERE selected_at < ?", toMillis(cutoff)); err != nil {
		return 0, fmt.Errorf("purge filter events: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
