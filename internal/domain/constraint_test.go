package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstraintSet_AbsentRulesAreOff(t *testing.T) {
	var cs ConstraintSet
	assert.False(t, cs.WantsNoMornings())
	assert.False(t, cs.HasAvoidDays())
	assert.False(t, cs.HasMaxClassesPerDay())
	assert.False(t, cs.AvoidsDay(Monday))
	assert.False(t, cs.HasHard())
}

func TestConstraintSet_HardFlags(t *testing.T) {
	cs := ConstraintSet{
		AvoidMorning:     Soft(true),
		KeepLunchTime:    Hard(true),
		AvoidDays:        Hard([]Weekday{Friday}),
		MaxClassesPerDay: Hard(0),
	}
	assert.True(t, cs.WantsNoMornings())
	assert.False(t, cs.HardNoMornings())
	assert.True(t, cs.HardLunchBreak())
	assert.True(t, cs.HardAvoidDays())
	assert.True(t, cs.AvoidsDay(Friday))
	assert.False(t, cs.AvoidsDay(Monday))
	assert.False(t, cs.HardMaxClassesPerDay(), "a zero limit is treated as absent")
	assert.True(t, cs.HasHard())
}

func TestConstraintSet_DisabledBoolRule(t *testing.T) {
	cs := ConstraintSet{AvoidTeamProjects: Hard(false)}
	assert.False(t, cs.WantsNoTeamProjects())
	assert.False(t, cs.HardNoTeamProjects())
}

func TestCoalesceHelpers(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce[int]())
	assert.Equal(t, StrategyMix, Coalesce(Strategy(""), StrategyMix))

	req := Hard(2)
	assert.Same(t, req, FirstRule(nil, req, Soft(3)))
	assert.Nil(t, FirstRule[bool](nil, nil))

	assert.Equal(t, []string{"x"}, NonEmpty(nil, []string{}, []string{"x"}))
}
