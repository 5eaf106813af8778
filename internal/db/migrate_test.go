package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"courses", "course_meetings", "course_tags", "course_tracks",
		"commitments", "commitment_meetings", "blocked_intervals", "user_profile",
	}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestMigrate_SeedsDefaultUserProfile(t *testing.T) {
	db := openTestDB(t)

	var credits int
	var strategy, term string
	err := db.QueryRow(`SELECT default_target_credits, default_strategy, default_term FROM user_profile WHERE id = 'default'`).
		Scan(&credits, &strategy, &term)
	require.NoError(t, err)
	assert.Equal(t, 15, credits)
	assert.Equal(t, "MIX", strategy)
	assert.Empty(t, term)
}

func TestMigrate_MeetingChecks(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO courses (term, id, name, credits, created_at, updated_at) VALUES ('', 'C1', 'n', 3, 'x', 'x')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO course_meetings (term, course_id, day, start_min, end_min) VALUES ('', 'C1', 0, 600, 540)`)
	assert.Error(t, err, "start must precede end")

	_, err = db.Exec(`INSERT INTO course_meetings (term, course_id, day, start_min, end_min) VALUES ('', 'C1', 7, 540, 600)`)
	assert.Error(t, err, "day must be 0-6")

	_, err = db.Exec(`INSERT INTO course_meetings (term, course_id, day, start_min, end_min) VALUES ('', 'NOPE', 0, 540, 600)`)
	assert.Error(t, err, "meeting must reference an existing course")
}

func TestMigrate_CourseDeleteCascades(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO courses (term, id, name, credits, created_at, updated_at) VALUES ('F25', 'C1', 'n', 3, 'x', 'x')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO course_meetings (term, course_id, day, start_min, end_min) VALUES ('F25', 'C1', 0, 540, 600)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO course_tags (term, course_id, tag) VALUES ('F25', 'C1', 'ai')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM courses WHERE term = 'F25' AND id = 'C1'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM course_meetings`).Scan(&n))
	assert.Zero(t, n)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM course_tags`).Scan(&n))
	assert.Zero(t, n)
}

func TestMigrate_CreditsMustBePositive(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec(`INSERT INTO courses (term, id, name, credits, created_at, updated_at) VALUES ('', 'C0', 'n', 0, 'x', 'x')`)
	assert.Error(t, err)
}
