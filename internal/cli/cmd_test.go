package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/tably/internal/repository"
	"github.com/alexanderramin/tably/internal/service"
	"github.com/alexanderramin/tably/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTerm = "2026-fall"

const testCatalogJSON = `{
  "term": "2026-fall",
  "courses": [
    {"id": "CS101", "name": "Intro to Programming", "credits": 3, "meetings": ["MON 09:00-10:15", "WED 09:00-10:15"], "tracks": ["systems"]},
    {"id": "CS201", "name": "Data Structures", "credits": 3, "meetings": ["TUE 13:00-14:15", "THU 13:00-14:15"], "tracks": ["systems"]},
    {"id": "MUS120", "name": "Music Appreciation", "credits": 3, "meetings": ["FRI 11:00-12:15"], "delivery": "online", "tags": ["music"]},
    {"id": "HIS150", "name": "World History", "credits": 3, "meetings": ["MON 09:30-10:45"]}
  ]
}`

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	db := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(db)

	courses := repository.NewSQLiteCourseRepo(db)
	commitments := repository.NewSQLiteCommitmentRepo(db)
	blocks := repository.NewSQLiteBlockedIntervalRepo(db)
	profiles := repository.NewSQLiteUserProfileRepo(db)
	catalog := service.NewCatalogProvider(courses, time.Minute)

	return &App{
		Courses:     service.NewCourseService(courses, uow, catalog),
		Commitments: service.NewCommitmentService(commitments, courses, uow),
		Blocks:      service.NewBlockService(blocks),
		Profile:     service.NewProfileService(profiles),
		Recommend: service.NewRecommendService(service.RecommendDeps{
			Profiles:    profiles,
			Commitments: commitments,
			Blocks:      blocks,
			Courses:     courses,
			Catalog:     catalog,
		}),
	}
}

// writeFile writes content into the test's temp dir and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func seedCatalog(t *testing.T, app *App) {
	t.Helper()
	_, err := executeCmd(t, app, "course", "import", writeFile(t, "catalog.json", testCatalogJSON))
	require.NoError(t, err)
}

// executeCmd runs a cobra command and captures stdout/stderr with styling removed.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return ansiPattern.ReplaceAllString(buf.String(), ""), err
}

func executeCmdWithInput(t *testing.T, app *App, input string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(input))
	root.SetArgs(args)
	err := root.Execute()
	return ansiPattern.ReplaceAllString(buf.String(), ""), err
}

// --- course ---

func TestCourseImportAndList(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "course", "import", writeFile(t, "catalog.json", testCatalogJSON))
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 4 course(s) into 2026-fall (4 new, 0 updated)")

	out, err = executeCmd(t, app, "course", "list", "--term", testTerm)
	require.NoError(t, err)
	assert.Contains(t, out, "CS101")
	assert.Contains(t, out, "Music Appreciation")
	assert.Contains(t, out, "online")
}

func TestCourseImport_CSVNeedsTerm(t *testing.T) {
	app := testApp(t)
	csv := writeFile(t, "catalog.csv", "id,name,credits,meetings\nCS101,Intro,3,MON 09:00-10:15;WED 09:00-10:15\n")

	_, err := executeCmd(t, app, "course", "import", csv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "term is required")

	out, err := executeCmd(t, app, "course", "import", csv, "--term", "2027-spring")
	require.NoError(t, err)
	assert.Contains(t, out, "into 2027-spring")
}

func TestCourseList_WithoutTermShowsTerms(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "course", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No catalog imported yet")

	seedCatalog(t, app)
	out, err = executeCmd(t, app, "course", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "TERMS")
	assert.Contains(t, out, testTerm)
}

func TestCourseList_UsesConfiguredTerm(t *testing.T) {
	app := testApp(t)
	seedCatalog(t, app)
	app.DefaultTerm = testTerm

	out, err := executeCmd(t, app, "course", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "CATALOG 2026-FALL (4)")
}

func TestCourseShowAndRemove(t *testing.T) {
	app := testApp(t)
	seedCatalog(t, app)

	out, err := executeCmd(t, app, "course", "show", "CS201", "--term", testTerm)
	require.NoError(t, err)
	assert.Contains(t, out, "CS201 Data Structures")
	assert.Contains(t, out, "TUE 13:00-14:15")

	out, err = executeCmd(t, app, "course", "remove", "CS201", "--term", testTerm)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed course CS201")

	_, err = executeCmd(t, app, "course", "show", "CS201", "--term", testTerm)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCourseClear(t *testing.T) {
	app := testApp(t)
	seedCatalog(t, app)

	_, err := executeCmd(t, app, "course", "clear")
	require.Error(t, err)

	out, err := executeCmdWithInput(t, app, "n\n", "course", "clear", "--term", testTerm)
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")

	out, err = executeCmdWithInput(t, app, "y\n", "course", "clear", "--term", testTerm)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 4 course(s)")

	out, err = executeCmd(t, app, "course", "terms")
	require.NoError(t, err)
	assert.Contains(t, out, "No catalog imported yet")
}

// --- commit ---

func TestCommitAddFromCourseAndList(t *testing.T) {
	app := testApp(t)
	seedCatalog(t, app)

	out, err := executeCmd(t, app, "commit", "add", "--course", "CS101", "--term", testTerm)
	require.NoError(t, err)
	assert.Contains(t, out, "Added commitment Intro to Programming (3 credits)")

	out, err = executeCmd(t, app, "commit", "list", "--term", testTerm)
	require.NoError(t, err)
	assert.Contains(t, out, "Intro to Programming")
	assert.Contains(t, out, "CS101")
	assert.Contains(t, out, "Total: 3 credits")
}

func TestCommitAdd_RequiresCourseOrTitle(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "commit", "add", "--term", testTerm)
	require.Error(t, err)

	_, err = executeCmd(t, app, "commit", "add", "--term", testTerm, "--course", "CS101", "--title", "x")
	require.Error(t, err)
}

func TestCommitAdd_RejectsOverlap(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "commit", "add", "--term", testTerm, "--title", "Lab job", "--meet", "MON 09:00-10:00")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "commit", "add", "--term", testTerm, "--title", "Choir", "--meet", "MON 09:30-10:30")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overlaps")
}

func TestCommitRemove_ByPrefix(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "commit", "add", "--term", testTerm, "--title", "Lab job", "--meet", "MON 09:00-10:00")
	require.NoError(t, err)

	items, err := app.Commitments.List(context.Background(), testTerm)
	require.NoError(t, err)
	require.Len(t, items, 1)

	out, err := executeCmd(t, app, "commit", "remove", items[0].ID[:8], "--term", testTerm)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed commitment")

	items, err = app.Commitments.List(context.Background(), testTerm)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = executeCmd(t, app, "commit", "remove", "nope", "--term", testTerm)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

// --- block ---

func TestBlockLifecycle(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "block", "add", "TUE 17:00-21:00", "--label", "shift")
	require.NoError(t, err)
	assert.Contains(t, out, "Blocked TUE 17:00-21:00 (shift)")

	out, err = executeCmd(t, app, "block", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "shift")

	items, err := app.Blocks.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)

	_, err = executeCmd(t, app, "block", "remove", items[0].ID)
	require.NoError(t, err)

	out, err = executeCmd(t, app, "block", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No blocked times")
}

func TestBlockAdd_InvalidSlot(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "block", "add", "someday")
	require.Error(t, err)
}

// --- profile ---

func TestProfileSetAndShow(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "profile", "set", "--credits", "15", "--strategy", "mix", "--avoid-day", "fri", "--track", "systems,theory")
	require.NoError(t, err)
	assert.Contains(t, out, "15 credits")

	out, err = executeCmd(t, app, "profile", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "MIX")
	assert.Contains(t, out, "FRI")
	assert.Contains(t, out, "systems, theory")
}

func TestProfileSet_PartialUpdateKeepsOtherFields(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "profile", "set", "--credits", "12")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "profile", "set", "--avoid-morning")
	require.NoError(t, err)

	p, err := app.Profile.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, p.DefaultTargetCredits)
	assert.True(t, p.AvoidMorning)
}

func TestProfileSet_Errors(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "profile", "set")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")

	_, err = executeCmd(t, app, "profile", "set", "--avoid-day", "someday")
	require.Error(t, err)

	_, err = executeCmd(t, app, "profile", "set", "--credits", "99")
	require.Error(t, err)
}
