package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/tably/internal/app"
	"github.com/alexanderramin/tably/internal/db"
	"github.com/alexanderramin/tably/internal/domain"
	"github.com/alexanderramin/tably/internal/importer"
	"github.com/alexanderramin/tably/internal/repository"
	"github.com/alexanderramin/tably/internal/testutil"
	"github.com/stretchr/testify/require"
)

const testTerm = "2026-fall"

type testEnv struct {
	db          *sql.DB
	uow         db.UnitOfWork
	courses     *repository.SQLiteCourseRepo
	commitments *repository.SQLiteCommitmentRepo
	blocks      *repository.SQLiteBlockedIntervalRepo
	profiles    *repository.SQLiteUserProfileRepo
	catalog     *CatalogProvider
	observer    *recordingObserver
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	env := &testEnv{
		db:          database,
		uow:         testutil.NewTestUoW(database),
		courses:     repository.NewSQLiteCourseRepo(database),
		commitments: repository.NewSQLiteCommitmentRepo(database),
		blocks:      repository.NewSQLiteBlockedIntervalRepo(database),
		profiles:    repository.NewSQLiteUserProfileRepo(database),
		observer:    &recordingObserver{},
	}
	env.catalog = NewCatalogProvider(env.courses, time.Minute, env.observer)
	return env
}

func (e *testEnv) recommendService(t *testing.T) RecommendService {
	t.Helper()
	return NewRecommendService(RecommendDeps{
		Profiles:    e.profiles,
		Commitments: e.commitments,
		Blocks:      e.blocks,
		Courses:     e.courses,
		Catalog:     e.catalog,
	}, e.observer)
}

func (e *testEnv) seedCourses(t *testing.T, courses ...*domain.Course) {
	t.Helper()
	for _, c := range courses {
		if c.Term == "" {
			c.Term = testTerm
		}
		_, err := e.courses.Upsert(context.Background(), c)
		require.NoError(t, err)
	}
	e.catalog.Invalidate("")
}

func (e *testEnv) seedCommitment(t *testing.T, c *domain.FixedCommitment) {
	t.Helper()
	if c.Term == "" {
		c.Term = testTerm
	}
	require.NoError(t, e.uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteCommitmentRepo(tx).Create(ctx, c)
	}))
}

func intPtr(n int) *int       { return &n }
func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

// recordingObserver keeps every event for assertions.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) last(name string) (UseCaseEvent, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := len(o.events) - 1; i >= 0; i-- {
		if o.events[i].Name == name {
			return o.events[i], true
		}
	}
	return UseCaseEvent{}, false
}

func (o *recordingObserver) count(name string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	n := 0
	for _, e := range o.events {
		if e.Name == name {
			n++
		}
	}
	return n
}

func validCatalogSchema() *importer.CatalogSchema {
	return &importer.CatalogSchema{
		Term: testTerm,
		Courses: []importer.CourseImport{
			{ID: "CS101", Name: "Intro to Programming", Credits: 3, Meetings: []string{"MON 09:00-10:15"}, Tracks: []string{"cs"}},
			{ID: "CS201", Name: "Data Structures", Credits: 3, Meetings: []string{"TUE 13:00-14:15"}, Tracks: []string{"cs"}},
			{ID: "ART110", Name: "Drawing", Credits: 2, Meetings: []string{"WED 15:00-16:40"}, Tags: []string{"studio"}},
		},
	}
}

var _ app.CourseCatalogProvider = (*CatalogProvider)(nil)
var _ app.ConstraintInterpreter = StructuredConstraintInterpreter{}
