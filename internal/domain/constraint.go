package domain

// Rule is one preference member. A nil *Rule means the preference is absent.
// Hard rules filter the course pool; soft rules only affect scoring.
type Rule[T any] struct {
	Value T
	Hard  bool
}

func Soft[T any](v T) *Rule[T] { return &Rule[T]{Value: v} }

func Hard[T any](v T) *Rule[T] { return &Rule[T]{Value: v, Hard: true} }

// ConstraintSet is the structured preference bundle for one request. It is
// built once by the constraint interpreter and never re-parsed downstream.
type ConstraintSet struct {
	AvoidDays             *Rule[[]Weekday]
	AvoidMorning          *Rule[bool]
	KeepLunchTime         *Rule[bool]
	MaxClassesPerDay      *Rule[int]
	MaxConsecutiveClasses *Rule[int]
	AvoidTeamProjects     *Rule[bool]
	PreferOnlineClasses   *Rule[bool]
	PreferOnlineOnlyDays  *Rule[bool]
}

// enabled reports whether a boolean rule is present and switched on.
func enabled(r *Rule[bool]) bool {
	return r != nil && r.Value
}

func hardEnabled(r *Rule[bool]) bool {
	return enabled(r) && r.Hard
}

func (cs ConstraintSet) WantsNoMornings() bool { return enabled(cs.AvoidMorning) }
func (cs ConstraintSet) WantsLunchBreak() bool { return enabled(cs.KeepLunchTime) }
func (cs ConstraintSet) WantsNoTeamProjects() bool { return enabled(cs.AvoidTeamProjects) }
func (cs ConstraintSet) WantsOnline() bool { return enabled(cs.PreferOnlineClasses) }
func (cs ConstraintSet) WantsOnlineOnlyDays() bool { return enabled(cs.PreferOnlineOnlyDays) }
func (cs ConstraintSet) HardNoMornings() bool { return hardEnabled(cs.AvoidMorning) }
func (cs ConstraintSet) HardLunchBreak() bool { return hardEnabled(cs.KeepLunchTime) }
func (cs ConstraintSet) HardNoTeamProjects() bool { return hardEnabled(cs.AvoidTeamProjects) }
func (cs ConstraintSet) HardOnlineOnly() bool { return hardEnabled(cs.PreferOnlineClasses) }
func (cs ConstraintSet) HasAvoidDays() bool { return cs.AvoidDays != nil && len(cs.AvoidDays.Value) > 0 }
func (cs ConstraintSet) HardAvoidDays() bool { return cs.HasAvoidDays() && cs.AvoidDays.Hard }
func (cs ConstraintSet) HasMaxClassesPerDay() bool { return cs.MaxClassesPerDay != nil && cs.MaxClassesPerDay.Value > 0 }
func (cs ConstraintSet) HasMaxConsecutive() bool { return cs.MaxConsecutiveClasses != nil && cs.MaxConsecutiveClasses.Value > 0 }
func (cs ConstraintSet) HardMaxClassesPerDay() bool { return cs.HasMaxClassesPerDay() && cs.MaxClassesPerDay.Hard }
func (cs ConstraintSet) HardMaxConsecutive() bool { return cs.HasMaxConsecutive() && cs.MaxConsecutiveClasses.Hard }

// AvoidsDay reports whether day is in the avoid-days list.
func (cs ConstraintSet) AvoidsDay(day Weekday) bool {
	if !cs.HasAvoidDays() {
		return false
	}
	for _, d := range cs.AvoidDays.Value {
		if d == day {
			return true
		}
	}
	return false
}

// HasHard reports whether any member is marked hard.
func (cs ConstraintSet) HasHard() bool {
	return cs.HardAvoidDays() || cs.HardNoMornings() || cs.HardLunchBreak() ||
		cs.HardNoTeamProjects() || cs.HardOnlineOnly() ||
		cs.HardMaxClassesPerDay() || cs.HardMaxConsecutive()
}
