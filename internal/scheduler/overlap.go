package scheduler

import "github.com/alexanderramin/tably/internal/domain"

// Overlaps reports whether two weekly slots intersect. Intervals are half-open,
// so a class ending at 10:00 does not overlap one starting at 10:00.
func Overlaps(a, b domain.TimeSlot) bool {
	if a.Day != b.Day {
		return false
	}
	return a.Start < b.End && b.Start < a.End
}

// CoursesConflict reports whether any meeting of c1 overlaps any meeting of c2.
func CoursesConflict(c1, c2 *domain.Course) bool {
	return SlotsConflict(c1.MeetingTimes, c2.MeetingTimes)
}

func SlotsConflict(a, b []domain.TimeSlot) bool {
	for _, sa := range a {
		for _, sb := range b {
			if Overlaps(sa, sb) {
				return true
			}
		}
	}
	return false
}

// conflictsWithAny reports whether c conflicts with any course in selected.
func conflictsWithAny(c *domain.Course, selected []*domain.Course) bool {
	for _, s := range selected {
		if CoursesConflict(c, s) {
			return true
		}
	}
	return false
}
