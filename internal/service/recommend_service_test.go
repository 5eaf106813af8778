package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/tably/internal/app"
	"github.com/alexanderramin/tably/internal/domain"
	"github.com/alexanderramin/tably/internal/scheduler"
	"github.com/alexanderramin/tably/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func factorCodes(r *app.InfeasibilityReport) []string {
	codes := make([]string, len(r.Factors))
	for i, f := range r.Factors {
		codes[i] = f.Code
	}
	return codes
}

func candidateCourseIDs(c app.TimetableCandidate) []string {
	ids := make([]string, len(c.Courses))
	for i, course := range c.Courses {
		ids[i] = course.ID
	}
	return ids
}

func TestRecommend_TwoCompatibleCoursesMakeOneTimetable(t *testing.T) {
	env := newTestEnv(t)
	env.seedCourses(t,
		testutil.NewTestCourse("A", testutil.WithMeetings("MON 09:00-10:15")),
		testutil.NewTestCourse("B", testutil.WithMeetings("TUE 09:00-10:15")),
	)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	req := app.NewRecommendRequest()
	req.TargetCredits = intPtr(6)
	req.Now = &now

	resp, err := env.recommendService(t).Recommend(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, testTerm, resp.Term, "single stored term is picked up")
	assert.Equal(t, now, resp.GeneratedAt)
	assert.Equal(t, domain.StrategyMix, resp.Strategy)
	require.Len(t, resp.Candidates, 1)
	c := resp.Candidates[0]
	assert.Equal(t, 1, c.Rank)
	assert.ElementsMatch(t, []string{"A", "B"}, candidateCourseIDs(c))
	assert.Equal(t, 6, c.TotalCredits)
	assert.Nil(t, resp.Infeasibility)
	assert.Equal(t, 2, resp.Diagnostics.CatalogSize)

	event, ok := env.observer.last("recommend")
	require.True(t, ok)
	assert.True(t, event.Success)
	assert.Equal(t, 1, event.Fields["candidates"])
	assert.Equal(t, testTerm, event.Fields["term"])
	assert.Equal(t, false, event.Fields["hard_rules"])
}

func TestRecommend_InvalidTargetCredits(t *testing.T) {
	env := newTestEnv(t)
	svc := env.recommendService(t)

	for _, target := range []int{0, -3, 61} {
		req := app.NewRecommendRequest()
		req.TargetCredits = intPtr(target)
		_, err := svc.Recommend(context.Background(), req)
		requireRecommendError(t, err, app.ErrInvalidTargetCredits)
	}

	event, ok := env.observer.last("recommend")
	require.True(t, ok)
	assert.False(t, event.Success)
}

func TestRecommend_InvalidStrategy(t *testing.T) {
	env := newTestEnv(t)
	req := app.NewRecommendRequest()
	req.Strategy = "whatever"

	_, err := env.recommendService(t).Recommend(context.Background(), req)
	requireRecommendError(t, err, app.ErrInvalidStrategy)
}

func TestRecommend_InvalidConstraintsKeepCode(t *testing.T) {
	env := newTestEnv(t)
	req := app.NewRecommendRequest()
	req.Constraints.Hard = []string{app.HardKeyAvoidDays}

	_, err := env.recommendService(t).Recommend(context.Background(), req)
	requireRecommendError(t, err, app.ErrInvalidConstraints)
}

func TestRecommend_ProfileSuppliesDefaults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedCourses(t,
		testutil.NewTestCourse("CS1", testutil.WithMeetings("MON 13:00-14:15"), testutil.WithTracks("cs")),
		testutil.NewTestCourse("ART1", testutil.WithMeetings("TUE 13:00-14:15")),
	)
	profile, err := env.profiles.Get(ctx)
	require.NoError(t, err)
	profile.DefaultTerm = testTerm
	profile.DefaultTargetCredits = 3
	profile.DefaultStrategy = domain.StrategyMajorFocus
	profile.Tracks = []string{"cs"}
	require.NoError(t, env.profiles.Upsert(ctx, profile))

	resp, err := env.recommendService(t).Recommend(ctx, app.NewRecommendRequest())
	require.NoError(t, err)

	assert.Equal(t, 3, resp.TargetCredits)
	assert.Equal(t, domain.StrategyMajorFocus, resp.Strategy)
	assert.Equal(t, []string{"cs"}, resp.Tracks)
	require.NotEmpty(t, resp.Candidates)
	assert.Equal(t, []string{"CS1"}, candidateCourseIDs(resp.Candidates[0]), "track-aligned course ranks first")
}

func TestRecommend_RequestOverridesProfile(t *testing.T) {
	env := newTestEnv(t)
	env.seedCourses(t, testutil.NewTestCourse("A", testutil.WithCredits(4)))
	req := app.NewRecommendRequest()
	req.TargetCredits = intPtr(4)
	req.Strategy = "interest"
	req.Interests = []string{"history"}

	resp, err := env.recommendService(t).Recommend(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 4, resp.TargetCredits)
	assert.Equal(t, domain.StrategyInterestFocus, resp.Strategy)
	assert.Equal(t, []string{"history"}, resp.Interests)
}

func TestRecommend_FixedCommitmentsAndBlocksShapeResult(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedCourses(t,
		testutil.NewTestCourse("A", testutil.WithMeetings("MON 09:00-10:15")),
		testutil.NewTestCourse("B", testutil.WithMeetings("TUE 09:00-10:15")),
		testutil.NewTestCourse("C", testutil.WithMeetings("WED 18:00-19:15")),
	)
	env.seedCommitment(t, testutil.NewTestCommitment("Lab", []string{"TUE 09:30-11:00"}, testutil.WithCommitmentCredits(3)))
	require.NoError(t, env.blocks.Create(ctx, testutil.NewTestBlock("work", "WED 17:00-20:00")))

	req := app.NewRecommendRequest()
	req.TargetCredits = intPtr(6)
	resp, err := env.recommendService(t).Recommend(ctx, req)
	require.NoError(t, err)

	require.Len(t, resp.Fixed, 1)
	require.Len(t, resp.Blocked, 1)
	require.Len(t, resp.Candidates, 1)
	c := resp.Candidates[0]
	assert.Equal(t, []string{"A"}, candidateCourseIDs(c))
	assert.Equal(t, 3, c.FixedCredits)
	assert.Equal(t, 6, c.TotalCredits)
	assert.Equal(t, 1, resp.Diagnostics.RemovedByReason["FIXED_COMMITMENT_OVERLAP"])
	assert.Equal(t, 1, resp.Diagnostics.RemovedByReason["BLOCKED_INTERVAL_OVERLAP"])
	assert.Len(t, resp.Diagnostics.Exclusions, 2)
}

func TestRecommend_InfeasibleTargetIsReportedNotFailed(t *testing.T) {
	env := newTestEnv(t)
	env.seedCourses(t,
		testutil.NewTestCourse("A", testutil.WithMeetings("MON 09:00-10:15")),
		testutil.NewTestCourse("B", testutil.WithMeetings("TUE 09:00-10:15")),
	)
	req := app.NewRecommendRequest()
	req.TargetCredits = intPtr(12)

	resp, err := env.recommendService(t).Recommend(context.Background(), req)
	require.NoError(t, err)

	assert.Empty(t, resp.Candidates)
	require.NotNil(t, resp.Infeasibility)
	assert.Contains(t, factorCodes(resp.Infeasibility), "TARGET_EXCEEDS_SUPPLY")
	assert.Equal(t, 6, resp.Infeasibility.EligibleCredits)
	assert.Equal(t, 15, resp.Infeasibility.MaxWindowCredits)
}

func TestRecommend_UnknownTermReportsEmptyCatalog(t *testing.T) {
	env := newTestEnv(t)
	env.seedCourses(t, testutil.NewTestCourse("A"))
	req := app.NewRecommendRequest()
	req.Term = "1999-spring"
	req.TargetCredits = intPtr(3)

	resp, err := env.recommendService(t).Recommend(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, resp.Infeasibility)
	assert.Contains(t, factorCodes(resp.Infeasibility), "EMPTY_CATALOG")
}

func TestRecommend_TopNOverride(t *testing.T) {
	env := newTestEnv(t)
	env.seedCourses(t,
		testutil.NewTestCourse("A", testutil.WithMeetings("MON 13:00-14:15")),
		testutil.NewTestCourse("B", testutil.WithMeetings("TUE 13:00-14:15")),
		testutil.NewTestCourse("C", testutil.WithMeetings("WED 13:00-14:15")),
		testutil.NewTestCourse("D", testutil.WithMeetings("THU 13:00-14:15")),
	)
	svc := env.recommendService(t)

	req := app.NewRecommendRequest()
	req.TargetCredits = intPtr(6)
	resp, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, resp.Candidates, 3, "engine default")
	assert.Equal(t, 6, resp.Diagnostics.Generated)

	req.TopN = 5
	resp, err = svc.Recommend(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Candidates, 5)
	for i, c := range resp.Candidates {
		assert.Equal(t, i+1, c.Rank)
		if i > 0 {
			assert.LessOrEqual(t, c.Score, resp.Candidates[i-1].Score)
		}
	}
}

func TestRecommend_HardConstraintFromRequest(t *testing.T) {
	env := newTestEnv(t)
	env.seedCourses(t,
		testutil.NewTestCourse("EARLY", testutil.WithMeetings("MON 08:00-09:15")),
		testutil.NewTestCourse("LATE", testutil.WithMeetings("MON 15:00-16:15")),
	)
	req := app.NewRecommendRequest()
	req.TargetCredits = intPtr(3)
	req.Constraints.AvoidMorning = boolPtr(true)
	req.Constraints.Hard = []string{app.HardKeyAvoidMorning}

	resp, err := env.recommendService(t).Recommend(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, []string{"LATE"}, candidateCourseIDs(resp.Candidates[0]))
	assert.True(t, resp.Constraints.HardNoMornings())

	event, ok := env.observer.last("recommend")
	require.True(t, ok)
	assert.Equal(t, true, event.Fields["hard_rules"])
}

// failingProfileRepo simulates a broken store.
type failingProfileRepo struct{}

func (failingProfileRepo) Get(context.Context) (*domain.UserProfile, error) {
	return nil, errors.New("database is locked")
}

func (failingProfileRepo) Upsert(context.Context, *domain.UserProfile) error {
	return errors.New("database is locked")
}

func TestRecommend_StoreFailureIsInternalError(t *testing.T) {
	env := newTestEnv(t)
	svc := NewRecommendService(RecommendDeps{
		Profiles:    failingProfileRepo{},
		Commitments: env.commitments,
		Blocks:      env.blocks,
		Courses:     env.courses,
		Catalog:     env.catalog,
	})

	_, err := svc.Recommend(context.Background(), app.NewRecommendRequest())
	recErr := requireRecommendError(t, err, app.ErrInternalError)
	assert.Contains(t, recErr.Message, "database is locked")
}

func TestEngineOptions_ProfileWeightsOverlay(t *testing.T) {
	profile := &domain.UserProfile{WeightFreeDay: 12, WeightCreditDeviation: 0}

	opts := engineOptions(scheduler.DefaultOptions(), profile, 7)

	assert.Equal(t, 12.0, opts.Weights.FreeDay)
	assert.Equal(t, scheduler.DefaultWeights().CreditDeviation, opts.Weights.CreditDeviation)
	assert.Equal(t, 7, opts.TopN)
}
