package cli

import (
	"testing"

	"github.com/alexanderramin/tably/internal/app"
	"github.com/alexanderramin/tably/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendWizardValues_SeededFromProfile(t *testing.T) {
	profile := &domain.UserProfile{
		DefaultTerm:          "2026-fall",
		DefaultTargetCredits: 15,
		DefaultStrategy:      domain.StrategyMajorFocus,
		Tracks:               []string{"systems", "theory"},
		AvoidMorning:         true,
		AvoidDays:            []domain.Weekday{domain.Friday},
	}

	w := newRecommendWizardValues(app.NewRecommendRequest(), profile)

	assert.Equal(t, "2026-fall", w.Term)
	assert.Equal(t, "15", w.Credits)
	assert.Equal(t, "MAJOR_FOCUS", w.Strategy)
	assert.Equal(t, "systems, theory", w.Tracks)
	assert.Equal(t, []string{"FRI"}, w.AvoidDays)
	assert.True(t, w.AvoidMorning)
	assert.False(t, w.KeepLunch)
}

func TestRecommendWizardValues_RequestWins(t *testing.T) {
	credits := 9
	lunch := true
	req := app.NewRecommendRequest()
	req.TargetCredits = &credits
	req.Strategy = "INTEREST_FOCUS"
	req.Constraints.KeepLunchTime = &lunch
	req.Constraints.AvoidDays = []string{"MON"}

	w := newRecommendWizardValues(req, &domain.UserProfile{DefaultTargetCredits: 15, AvoidDays: []domain.Weekday{domain.Friday}})

	assert.Equal(t, "9", w.Credits)
	assert.Equal(t, "INTEREST_FOCUS", w.Strategy)
	assert.True(t, w.KeepLunch)
	assert.Equal(t, []string{"MON"}, w.AvoidDays)
}

func TestRecommendWizardValues_NilProfileDefaultsToMix(t *testing.T) {
	w := newRecommendWizardValues(app.NewRecommendRequest(), nil)
	assert.Equal(t, "MIX", w.Strategy)
	assert.Empty(t, w.Credits)
}

func TestRecommendWizardValues_Apply(t *testing.T) {
	w := &recommendWizardValues{
		Term:      " 2026-fall ",
		Credits:   "12",
		Strategy:  "MIX",
		Tracks:    "systems, , theory",
		AvoidDays: []string{"FRI"},
		KeepLunch: true,
		MaxPerDay: "2",
		Hard:      []string{app.HardKeyMaxPerDay},
	}
	var req app.RecommendRequest
	w.apply(&req)

	assert.Equal(t, "2026-fall", req.Term)
	require.NotNil(t, req.TargetCredits)
	assert.Equal(t, 12, *req.TargetCredits)
	assert.Equal(t, []string{"systems", "theory"}, req.Tracks)
	assert.Nil(t, req.Interests)
	assert.Equal(t, []string{"FRI"}, req.Constraints.AvoidDays)
	require.NotNil(t, req.Constraints.AvoidMorning)
	assert.False(t, *req.Constraints.AvoidMorning)
	assert.True(t, *req.Constraints.KeepLunchTime)
	require.NotNil(t, req.Constraints.MaxClassesPerDay)
	assert.Equal(t, 2, *req.Constraints.MaxClassesPerDay)
	assert.Nil(t, req.Constraints.MaxConsecutiveClasses)
	assert.True(t, req.Constraints.IsHard(app.HardKeyMaxPerDay))
}

func TestRecommendWizardForm_Builds(t *testing.T) {
	assert.NotNil(t, recommendWizardForm(newRecommendWizardValues(app.NewRecommendRequest(), nil)))
}

func TestValidators(t *testing.T) {
	assert.NoError(t, validateCredits("15"))
	assert.Error(t, validateCredits(""))
	assert.Error(t, validateCredits("0"))
	assert.Error(t, validateCredits("61"))

	assert.NoError(t, validateOptionalLimit(""))
	assert.NoError(t, validateOptionalLimit("3"))
	assert.Error(t, validateOptionalLimit("-1"))
	assert.Error(t, validateOptionalLimit("x"))
}
