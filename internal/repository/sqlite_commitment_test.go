package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/alexanderramin/tably/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitmentRepo_CreateListDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCommitmentRepo(db)
	ctx := context.Background()

	lab := testutil.NewTestCommitment("Research lab", []string{"TUE 09:00-12:00", "MON 09:00-12:00"},
		testutil.WithCommitmentTerm("F25"), testutil.WithCommitmentCredits(3))
	enrolled := testutil.NewTestCommitment("CS101", []string{"WED 13:00-14:15"},
		testutil.WithCommitmentTerm("F25"), testutil.WithCommitmentCourse("CS101"))
	other := testutil.NewTestCommitment("Other term", []string{"FRI 09:00-10:00"},
		testutil.WithCommitmentTerm("S26"))
	require.NoError(t, repo.Create(ctx, lab))
	require.NoError(t, repo.Create(ctx, enrolled))
	require.NoError(t, repo.Create(ctx, other))

	list, err := repo.List(ctx, "F25")
	require.NoError(t, err)
	require.Len(t, list, 2)

	got, err := repo.GetByID(ctx, lab.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Credits)
	require.Len(t, got.MeetingTimes, 2)
	assert.Equal(t, testutil.MustSlot("MON 09:00-12:00"), got.MeetingTimes[0])

	got, err = repo.GetByID(ctx, enrolled.ID)
	require.NoError(t, err)
	assert.Equal(t, "CS101", got.CourseID)

	require.NoError(t, repo.Delete(ctx, lab.ID))
	_, err = repo.GetByID(ctx, lab.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, lab.ID), ErrNotFound)

	var meetings int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM commitment_meetings WHERE commitment_id = ?`, lab.ID).Scan(&meetings))
	assert.Zero(t, meetings, "meetings cascade with the commitment")
}

func TestCommitmentRepo_ListFailsWhenIterationBreaks(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	require.NoError(t, NewSQLiteCommitmentRepo(database).Create(ctx,
		testutil.NewTestCommitment("Lab", []string{"TUE 09:00-10:00"}, testutil.WithCommitmentTerm("2026-fall"))))

	errBroken := errors.New("disk I/O error")
	repo := NewSQLiteCommitmentRepo(&testutil.FailRowsDBTX{
		DBTX:    database,
		Match:   "FROM commitments",
		Columns: []string{"id", "term", "course_id", "title", "credits", "created_at"},
		Rows: [][]driver.Value{
			{"c-1", "2026-fall", "", "Lab", int64(1), "2026-08-01T00:00:00Z"},
		},
		Err: errBroken,
	})

	list, err := repo.List(ctx, "2026-fall")
	require.Error(t, err)
	assert.ErrorIs(t, err, errBroken)
	assert.Contains(t, err.Error(), "iterating commitments")
	assert.Nil(t, list, "a partial commitment list must not be returned")
}
