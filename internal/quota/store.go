package quota

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Store is the SQL-backed quota service. It runs against PostgreSQL (pgx
// stdlib driver) in production and the embedded sqlite driver in tests; the
// statements below are written for PostgreSQL placeholders and rebound for
// sqlite.
type Store struct {
	db     *sql.DB
	limit  int
	driver string
	logger *slog.Logger
	now    func() time.Time
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS usage_quota (
	user_id       TEXT    NOT NULL,
	period        TEXT    NOT NULL,
	used          INTEGER NOT NULL DEFAULT 0,
	monthly_limit INTEGER NOT NULL,
	PRIMARY KEY (user_id, period)
)`

// NewStore wires a quota store over an opened database handle and ensures
// the schema exists. driver is "pgx" or "sqlite".
func NewStore(ctx context.Context, db *sql.DB, driver string, monthlyLimit int, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		return nil, fmt.Errorf("ensure quota schema: %w", err)
	}
	return &Store{
		db:     db,
		limit:  monthlyLimit,
		driver: driver,
		logger: logger,
		now:    time.Now,
	}, nil
}

// CheckAndIncrement consumes one slot inside a single transaction. The
// guarded UPDATE is the atomic compare-and-increment: it only fires while
// used < monthly_limit, so concurrent callers cannot both take the last
// slot.
func (s *Store) CheckAndIncrement(ctx context.Context, userID string) (Decision, error) {
	period := s.period()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Decision{}, fmt.Errorf("begin quota tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, s.rebind(
		`INSERT INTO usage_quota (user_id, period, used, monthly_limit)
		 VALUES ($1, $2, 0, $3)
		 ON CONFLICT (user_id, period) DO NOTHING`),
		userID, period, s.limit)
	if err != nil {
		return Decision{}, fmt.Errorf("seed quota row: %w", err)
	}

	res, err := tx.ExecContext(ctx, s.rebind(
		`UPDATE usage_quota SET used = used + 1
		 WHERE user_id = $1 AND period = $2 AND used < monthly_limit`),
		userID, period)
	if err != nil {
		return Decision{}, fmt.Errorf("increment quota: %w", err)
	}
	granted, err := res.RowsAffected()
	if err != nil {
		return Decision{}, fmt.Errorf("increment quota: %w", err)
	}

	var used, limit int
	err = tx.QueryRowContext(ctx, s.rebind(
		`SELECT used, monthly_limit FROM usage_quota WHERE user_id = $1 AND period = $2`),
		userID, period).Scan(&used, &limit)
	if err != nil {
		return Decision{}, fmt.Errorf("read quota row: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Decision{}, fmt.Errorf("commit quota tx: %w", err)
	}

	d := Decision{
		Allowed:   granted == 1,
		Used:      used,
		Limit:     limit,
		ResetDate: s.resetDate(),
	}
	s.logger.Info("quota.check_and_increment",
		"user_id", userID, "period", period,
		"allowed", d.Allowed, "used", d.Used, "limit", d.Limit,
	)
	return d, nil
}

// Refund returns one slot; refunding below zero is ignored.
func (s *Store) Refund(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, s.rebind(
		`UPDATE usage_quota SET used = used - 1
		 WHERE user_id = $1 AND period = $2 AND used > 0`),
		userID, s.period())
	if err != nil {
		return fmt.Errorf("refund quota: %w", err)
	}
	s.logger.Info("quota.refund", "user_id", userID)
	return nil
}

func (s *Store) period() string {
	return s.now().UTC().Format("2006-01")
}

func (s *Store) resetDate() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
}

// rebind rewrites $N placeholders to ? for the sqlite driver.
func (s *Store) rebind(query string) string {
	if s.driver != "sqlite" {
		return query
	}
	var b strings.Builder
	b.Grow(len(query))
	for i := 0; i < len(query); i++ {
		if query[i] == '$' {
			for i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
				i++
			}
			b.WriteByte('?')
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
