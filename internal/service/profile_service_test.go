package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/tably/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_DefaultsSeeded(t *testing.T) {
	env := newTestEnv(t)
	p, err := NewProfileService(env.profiles).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 15, p.DefaultTargetCredits)
	assert.Equal(t, domain.StrategyMix, p.DefaultStrategy)
}

func TestProfileService_PartialUpdate(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProfileService(env.profiles)
	ctx := context.Background()

	tracks := []string{" cs ", "", "math"}
	days := []string{"fri", "monday"}
	_, err := svc.Update(ctx, ProfileUpdate{
		DefaultTerm:          strPtr("2026-fall"),
		DefaultTargetCredits: intPtr(12),
		DefaultStrategy:      strPtr("major-focus"),
		Tracks:               &tracks,
		AvoidDays:            &days,
		KeepLunchTime:        boolPtr(true),
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, ProfileUpdate{AvoidMorning: boolPtr(true)})
	require.NoError(t, err)

	p, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-fall", p.DefaultTerm)
	assert.Equal(t, 12, p.DefaultTargetCredits)
	assert.Equal(t, domain.StrategyMajorFocus, p.DefaultStrategy)
	assert.Equal(t, []string{"cs", "math"}, p.Tracks)
	assert.Equal(t, []domain.Weekday{domain.Monday, domain.Friday}, p.AvoidDays)
	assert.True(t, p.KeepLunchTime)
	assert.True(t, p.AvoidMorning)
}

func TestProfileService_InvalidUpdateWritesNothing(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProfileService(env.profiles)
	ctx := context.Background()

	_, err := svc.Update(ctx, ProfileUpdate{DefaultTerm: strPtr("x"), DefaultTargetCredits: intPtr(0)})
	assert.Error(t, err)
	_, err = svc.Update(ctx, ProfileUpdate{DefaultTerm: strPtr("x"), DefaultStrategy: strPtr("random")})
	assert.Error(t, err)
	days := []string{"blursday"}
	_, err = svc.Update(ctx, ProfileUpdate{DefaultTerm: strPtr("x"), AvoidDays: &days})
	assert.Error(t, err)

	p, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, p.DefaultTerm)
	assert.Equal(t, 15, p.DefaultTargetCredits)
}
