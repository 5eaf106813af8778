package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/tably/internal/db"
	"github.com/alexanderramin/tably/internal/domain"
)

type SQLiteCommitmentRepo struct {
	db db.DBTX
}

func NewSQLiteCommitmentRepo(conn db.DBTX) *SQLiteCommitmentRepo {
	return &SQLiteCommitmentRepo{db: conn}
}

func (r *SQLiteCommitmentRepo) Create(ctx context.Context, c *domain.FixedCommitment) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = nowUTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO commitments (id, term, course_id, title, credits, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Term, c.CourseID, c.Title, c.Credits, c.CreatedAt.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("inserting commitment: %w", err)
	}
	for _, s := range c.MeetingTimes {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO commitment_meetings (commitment_id, day, start_min, end_min) VALUES (?, ?, ?, ?)`,
			c.ID, int(s.Day), s.Start, s.End); err != nil {
			return fmt.Errorf("inserting commitment meeting %s: %w", s, err)
		}
	}
	return nil
}

func (r *SQLiteCommitmentRepo) GetByID(ctx context.Context, id string) (*domain.FixedCommitment, error) {
	var (
		c         domain.FixedCommitment
		createdAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, term, course_id, title, credits, created_at FROM commitments WHERE id = ?`, id).
		Scan(&c.ID, &c.Term, &c.CourseID, &c.Title, &c.Credits, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("commitment %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning commitment: %w", err)
	}
	c.CreatedAt = parseTime(createdAt)

	byID := map[string]*domain.FixedCommitment{c.ID: &c}
	if err := r.loadMeetings(ctx, byID, `WHERE commitment_id = ?`, id); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns the commitments of term in creation order.
func (r *SQLiteCommitmentRepo) List(ctx context.Context, term string) ([]domain.FixedCommitment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, term, course_id, title, credits, created_at FROM commitments
		WHERE term = ? ORDER BY created_at, id`, term)
	if err != nil {
		return nil, fmt.Errorf("listing commitments: %w", err)
	}
	var list []*domain.FixedCommitment
	byID := make(map[string]*domain.FixedCommitment)
	for rows.Next() {
		var (
			c         domain.FixedCommitment
			createdAt string
		)
		if err := rows.Scan(&c.ID, &c.Term, &c.CourseID, &c.Title, &c.Credits, &createdAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning commitment: %w", err)
		}
		c.CreatedAt = parseTime(createdAt)
		list = append(list, &c)
		byID[c.ID] = &c
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating commitments: %w", err)
	}
	rows.Close()

	if err := r.loadMeetings(ctx, byID,
		`WHERE commitment_id IN (SELECT id FROM commitments WHERE term = ?)`, term); err != nil {
		return nil, err
	}
	out := make([]domain.FixedCommitment, len(list))
	for i, c := range list {
		out[i] = *c
	}
	return out, nil
}

func (r *SQLiteCommitmentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM commitments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting commitment %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("commitment %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteCommitmentRepo) loadMeetings(ctx context.Context, byID map[string]*domain.FixedCommitment, where string, args ...any) error {
	if len(byID) == 0 {
		return nil
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT commitment_id, day, start_min, end_min FROM commitment_meetings `+where+
			` ORDER BY day, start_min`, args...)
	if err != nil {
		return fmt.Errorf("loading commitment meetings: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var day, start, end int
		if err := rows.Scan(&id, &day, &start, &end); err != nil {
			return fmt.Errorf("scanning commitment meeting: %w", err)
		}
		if c := byID[id]; c != nil {
			c.MeetingTimes = append(c.MeetingTimes, domain.TimeSlot{Day: domain.Weekday(day), Start: start, End: end})
		}
	}
	return rows.Err()
}
