package scheduler

import (
	"context"
	"sync"
	"testing"

	"github.com/alexanderramin/tably/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_TwoCompatibleCourses(t *testing.T) {
	eng := NewEngine(DefaultOptions())
	res := eng.GenerateCandidates(context.Background(), Request{
		Courses: []domain.Course{
			newCourse("CS101", 3, "MON 13:00-14:15", "WED 13:00-14:15"),
			newCourse("MATH201", 3, "TUE 13:00-14:15", "THU 13:00-14:15"),
		},
		TargetCredits: 6,
	})

	require.Len(t, res.Candidates, 1)
	assert.ElementsMatch(t, []string{"CS101", "MATH201"}, res.Candidates[0].CourseIDs())
	assert.Equal(t, 6, res.Candidates[0].TotalCredits)
	assert.Nil(t, res.Infeasibility)
	assert.Equal(t, 2, res.Diagnostics.EligibleCourses)
	assert.Equal(t, 1, res.Diagnostics.Generated)
}

func TestEngine_AllCoursesBlocked(t *testing.T) {
	eng := NewEngine(DefaultOptions())
	res := eng.GenerateCandidates(context.Background(), Request{
		Courses: []domain.Course{
			newCourse("A", 3, "MON 09:00-10:00"),
			newCourse("B", 3, "MON 10:30-11:30"),
		},
		BlockedIntervals: []domain.BlockedInterval{{ID: "b", Label: "work", Slot: mustSlot("MON 08:00-12:00")}},
		TargetCredits:    6,
	})

	assert.Empty(t, res.Candidates)
	require.NotNil(t, res.Infeasibility)
	assert.True(t, res.Infeasibility.HasFactor(FactorBlockedTimes))
	assert.True(t, res.Infeasibility.HasFactor(FactorTargetExceedsSupply))
	assert.Equal(t, 0, res.Diagnostics.EligibleCourses)
	assert.Equal(t, 2, res.Diagnostics.RemovedByReason[ExcludedBlockedOverlap])
}

func TestEngine_InfeasibilityFactors(t *testing.T) {
	eng := NewEngine(DefaultOptions())

	t.Run("empty catalog", func(t *testing.T) {
		res := eng.GenerateCandidates(context.Background(), Request{TargetCredits: 3})
		require.NotNil(t, res.Infeasibility)
		assert.True(t, res.Infeasibility.HasFactor(FactorEmptyCatalog))
	})

	t.Run("fixed commitments cover target", func(t *testing.T) {
		res := eng.GenerateCandidates(context.Background(), Request{
			Courses: []domain.Course{newCourse("A", 3, "MON 09:00-10:00")},
			FixedCommitments: []domain.FixedCommitment{{
				ID: "f", Credits: 6, MeetingTimes: []domain.TimeSlot{mustSlot("TUE 09:00-10:00")},
			}},
			TargetCredits: 6,
		})
		require.NotNil(t, res.Infeasibility)
		assert.True(t, res.Infeasibility.HasFactor(FactorFixedCommitments))
		assert.Equal(t, 6, res.Infeasibility.FixedCredits)
	})

	t.Run("conflicts leave no combination", func(t *testing.T) {
		res := eng.GenerateCandidates(context.Background(), Request{
			Courses: []domain.Course{
				newCourse("A", 3, "MON 09:00-10:00"),
				newCourse("B", 3, "MON 09:30-10:30"),
			},
			TargetCredits: 6,
		})
		require.NotNil(t, res.Infeasibility)
		assert.True(t, res.Infeasibility.HasFactor(FactorNoCombinationInRange))
		assert.False(t, res.Infeasibility.HasFactor(FactorTargetExceedsSupply))
	})

	t.Run("hard rule removes courses", func(t *testing.T) {
		res := eng.GenerateCandidates(context.Background(), Request{
			Courses:       []domain.Course{newCourse("A", 3, "MON 08:00-09:00")},
			TargetCredits: 3,
			Constraints:   domain.ConstraintSet{AvoidMorning: domain.Hard(true)},
		})
		require.NotNil(t, res.Infeasibility)
		assert.True(t, res.Infeasibility.HasFactor(FactorHardAvoidMorning))
		assert.False(t, res.Infeasibility.HasFactor(FactorBlockedTimes), "no blocked intervals were given")
	})
}

func TestEngine_DeterministicAndConcurrentSafe(t *testing.T) {
	courses := gridCourses(12)
	for i := range courses {
		courses[i].Credits = 1 + i%4
	}
	req := Request{
		Courses:       courses,
		TargetCredits: 9,
		Strategy:      domain.StrategyMix,
		Constraints: domain.ConstraintSet{
			AvoidMorning:     domain.Soft(true),
			MaxClassesPerDay: domain.Soft(2),
		},
	}
	eng := NewEngine(DefaultOptions())
	want := eng.GenerateCandidates(context.Background(), req)
	require.NotEmpty(t, want.Candidates)

	var wg sync.WaitGroup
	results := make([]Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = eng.GenerateCandidates(context.Background(), req)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, candidateIDs(want.Candidates), candidateIDs(got.Candidates))
		for i := range got.Candidates {
			assert.Equal(t, want.Candidates[i].Score, got.Candidates[i].Score)
		}
	}
}
