package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/tably/internal/db"
	"github.com/alexanderramin/tably/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB opens a file-backed database; unlike :memory: it shares
// state across every connection in the pool.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "concurrent_test.db"))
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

func upsertInTx(ctx context.Context, uow db.UnitOfWork, id, term string) error {
	return uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		_, err := NewSQLiteCourseRepo(tx).Upsert(ctx, testutil.NewTestCourse(id,
			testutil.WithTerm(term),
			testutil.WithMeetings("MON 09:00-10:15", "WED 09:00-10:15"),
		))
		return err
	})
}

// Readers listing a term while courses are imported must never see a course
// without its meetings.
func TestConcurrentAccess_ListDuringImport(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()
	uow := db.NewSQLiteUnitOfWork(database)
	repo := NewSQLiteCourseRepo(database)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			if err := upsertInTx(ctx, uow, fmt.Sprintf("C%02d", i), "2026-fall"); err != nil {
				t.Errorf("writer: course %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				courses, err := repo.ListByTerm(ctx, "2026-fall")
				if err != nil {
					t.Errorf("reader %d: %v", reader, err)
					return
				}
				for _, c := range courses {
					if len(c.MeetingTimes) != 2 {
						t.Errorf("reader %d: course %s has %d meetings", reader, c.ID, len(c.MeetingTimes))
					}
				}
			}
		}(r)
	}
	wg.Wait()

	courses, err := repo.ListByTerm(ctx, "2026-fall")
	require.NoError(t, err)
	assert.Len(t, courses, 20)
}

func TestConcurrentAccess_ParallelImportsIntoDifferentTerms(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()
	uow := db.NewSQLiteUnitOfWork(database)

	terms := []string{"2026-fall", "2027-spring", "2027-summer", "2027-fall"}
	var wg sync.WaitGroup
	for _, term := range terms {
		wg.Add(1)
		go func(term string) {
			defer wg.Done()
			for i := 0; i < 5; i++ {
				if err := upsertInTx(ctx, uow, fmt.Sprintf("C%d", i), term); err != nil {
					t.Errorf("%s: course %d: %v", term, i, err)
					return
				}
			}
		}(term)
	}
	wg.Wait()

	summaries, err := NewSQLiteCourseRepo(database).ListTerms(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, len(terms))
	for _, s := range summaries {
		assert.Equal(t, 5, s.Courses, s.Term)
	}
}
