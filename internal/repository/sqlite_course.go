package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/alexanderramin/tably/internal/db"
	"github.com/alexanderramin/tably/internal/domain"
)

// SQLiteCourseRepo implements CourseRepo. Upsert issues several statements;
// run it through a UnitOfWork when partial writes matter.
type SQLiteCourseRepo struct {
	db db.DBTX
}

func NewSQLiteCourseRepo(conn db.DBTX) *SQLiteCourseRepo {
	return &SQLiteCourseRepo{db: conn}
}

func (r *SQLiteCourseRepo) Upsert(ctx context.Context, c *domain.Course) (bool, error) {
	var exists int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM courses WHERE term = ? AND id = ?`, c.Term, c.ID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking course %s: %w", c.ID, err)
	}

	now := nowUTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	if c.Delivery == "" {
		c.Delivery = domain.DeliveryOffline
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO courses (term, id, name, credits, delivery, team_project, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(term, id) DO UPDATE SET
			name = excluded.name,
			credits = excluded.credits,
			delivery = excluded.delivery,
			team_project = excluded.team_project,
			updated_at = excluded.updated_at`,
		c.Term, c.ID, c.Name, c.Credits, string(c.Delivery), boolToInt(c.TeamProject),
		c.CreatedAt.Format(timeLayout), c.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return false, fmt.Errorf("upserting course %s: %w", c.ID, err)
	}

	for _, table := range []string{"course_meetings", "course_tags", "course_tracks"} {
		if _, err := r.db.ExecContext(ctx,
			`DELETE FROM `+table+` WHERE term = ? AND course_id = ?`, c.Term, c.ID); err != nil {
			return false, fmt.Errorf("clearing %s for %s: %w", table, c.ID, err)
		}
	}
	for _, s := range c.MeetingTimes {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO course_meetings (term, course_id, day, start_min, end_min) VALUES (?, ?, ?, ?, ?)`,
			c.Term, c.ID, int(s.Day), s.Start, s.End); err != nil {
			return false, fmt.Errorf("inserting meeting %s for %s: %w", s, c.ID, err)
		}
	}
	for _, tag := range c.Tags {
		if _, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO course_tags (term, course_id, tag) VALUES (?, ?, ?)`,
			c.Term, c.ID, tag); err != nil {
			return false, fmt.Errorf("inserting tag for %s: %w", c.ID, err)
		}
	}
	for _, track := range c.Tracks {
		if _, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO course_tracks (term, course_id, track) VALUES (?, ?, ?)`,
			c.Term, c.ID, track); err != nil {
			return false, fmt.Errorf("inserting track for %s: %w", c.ID, err)
		}
	}
	return exists == 0, nil
}

func (r *SQLiteCourseRepo) GetByID(ctx context.Context, term, id string) (*domain.Course, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT term, id, name, credits, delivery, team_project, created_at, updated_at
		FROM courses WHERE term = ? AND id = ?`, term, id)
	c, err := scanCourse(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("course %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	byID := map[string]*domain.Course{c.ID: c}
	if err := r.loadChildren(ctx, term, byID, `AND course_id = ?`, id); err != nil {
		return nil, err
	}
	return c, nil
}

// ListByTerm returns the term's catalog ordered by course id.
func (r *SQLiteCourseRepo) ListByTerm(ctx context.Context, term string) ([]domain.Course, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT term, id, name, credits, delivery, team_project, created_at, updated_at
		FROM courses WHERE term = ? ORDER BY id`, term)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	var list []*domain.Course
	byID := make(map[string]*domain.Course)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		list = append(list, c)
		byID[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating courses: %w", err)
	}
	rows.Close()

	if err := r.loadChildren(ctx, term, byID, ""); err != nil {
		return nil, err
	}
	out := make([]domain.Course, len(list))
	for i, c := range list {
		out[i] = *c
	}
	return out, nil
}

func (r *SQLiteCourseRepo) ListTerms(ctx context.Context) ([]TermSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT term, COUNT(*) FROM courses GROUP BY term ORDER BY term`)
	if err != nil {
		return nil, fmt.Errorf("listing terms: %w", err)
	}
	defer rows.Close()

	var terms []TermSummary
	for rows.Next() {
		var t TermSummary
		if err := rows.Scan(&t.Term, &t.Courses); err != nil {
			return nil, fmt.Errorf("scanning term: %w", err)
		}
		terms = append(terms, t)
	}
	return terms, rows.Err()
}

func (r *SQLiteCourseRepo) Delete(ctx context.Context, term, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE term = ? AND id = ?`, term, id)
	if err != nil {
		return fmt.Errorf("deleting course %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("course %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteCourseRepo) DeleteTerm(ctx context.Context, term string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE term = ?`, term)
	if err != nil {
		return 0, fmt.Errorf("deleting term %q: %w", term, err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(s rowScanner) (*domain.Course, error) {
	var (
		c                    domain.Course
		delivery             string
		team                 int
		createdAt, updatedAt string
	)
	if err := s.Scan(&c.Term, &c.ID, &c.Name, &c.Credits, &delivery, &team, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning course: %w", err)
	}
	c.Delivery = domain.Delivery(delivery)
	c.TeamProject = intToBool(team)
	c.CreatedAt = parseTime(createdAt)
	c.UpdatedAt = parseTime(updatedAt)
	return &c, nil
}

// loadChildren fills meetings, tags and tracks for the courses in byID.
// filter is appended to each child query's WHERE clause.
func (r *SQLiteCourseRepo) loadChildren(ctx context.Context, term string, byID map[string]*domain.Course, filter string, args ...any) error {
	if len(byID) == 0 {
		return nil
	}
	qargs := append([]any{term}, args...)

	rows, err := r.db.QueryContext(ctx,
		`SELECT course_id, day, start_min, end_min FROM course_meetings WHERE term = ? `+filter, qargs...)
	if err != nil {
		return fmt.Errorf("loading meetings: %w", err)
	}
	for rows.Next() {
		var id string
		var day, start, end int
		if err := rows.Scan(&id, &day, &start, &end); err != nil {
			rows.Close()
			return fmt.Errorf("scanning meeting: %w", err)
		}
		if c := byID[id]; c != nil {
			c.MeetingTimes = append(c.MeetingTimes, domain.TimeSlot{Day: domain.Weekday(day), Start: start, End: end})
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterating meetings: %w", err)
	}
	rows.Close()
	for _, c := range byID {
		sort.Slice(c.MeetingTimes, func(i, j int) bool {
			a, b := c.MeetingTimes[i], c.MeetingTimes[j]
			if a.Day != b.Day {
				return a.Day < b.Day
			}
			return a.Start < b.Start
		})
	}

	load := func(table, col string, assign func(c *domain.Course, v string)) error {
		rows, err := r.db.QueryContext(ctx,
			`SELECT course_id, `+col+` FROM `+table+` WHERE term = ? `+filter+` ORDER BY `+col, qargs...)
		if err != nil {
			return fmt.Errorf("loading %s: %w", table, err)
		}
		defer rows.Close()
		for rows.Next() {
			var id, v string
			if err := rows.Scan(&id, &v); err != nil {
				return fmt.Errorf("scanning %s: %w", table, err)
			}
			if c := byID[id]; c != nil {
				assign(c, v)
			}
		}
		return rows.Err()
	}
	if err := load("course_tags", "tag", func(c *domain.Course, v string) { c.Tags = append(c.Tags, v) }); err != nil {
		return err
	}
	return load("course_tracks", "track", func(c *domain.Course, v string) { c.Tracks = append(c.Tracks, v) })
}
