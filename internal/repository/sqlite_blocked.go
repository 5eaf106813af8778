package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tably/internal/db"
	"github.com/alexanderramin/tably/internal/domain"
)

type SQLiteBlockedIntervalRepo struct {
	db db.DBTX
}

func NewSQLiteBlockedIntervalRepo(conn db.DBTX) *SQLiteBlockedIntervalRepo {
	return &SQLiteBlockedIntervalRepo{db: conn}
}

func (r *SQLiteBlockedIntervalRepo) Create(ctx context.Context, b *domain.BlockedInterval) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = nowUTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO blocked_intervals (id, label, day, start_min, end_min, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.Label, int(b.Slot.Day), b.Slot.Start, b.Slot.End, b.CreatedAt.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("inserting blocked interval: %w", err)
	}
	return nil
}

// List returns every blocked interval in weekly order.
func (r *SQLiteBlockedIntervalRepo) List(ctx context.Context) ([]domain.BlockedInterval, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, label, day, start_min, end_min, created_at FROM blocked_intervals ORDER BY day, start_min, id`)
	if err != nil {
		return nil, fmt.Errorf("listing blocked intervals: %w", err)
	}
	defer rows.Close()

	var out []domain.BlockedInterval
	for rows.Next() {
		var (
			b         domain.BlockedInterval
			day       int
			createdAt string
		)
		if err := rows.Scan(&b.ID, &b.Label, &day, &b.Slot.Start, &b.Slot.End, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning blocked interval: %w", err)
		}
		b.Slot.Day = domain.Weekday(day)
		b.CreatedAt = parseTime(createdAt)
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *SQLiteBlockedIntervalRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blocked_intervals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting blocked interval %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("blocked interval %s: %w", id, ErrNotFound)
	}
	return nil
}
