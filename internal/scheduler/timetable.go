package scheduler

import (
	"sort"

	"github.com/alexanderramin/tably/internal/domain"
)

// weekGrid holds every meeting of a timetable bucketed by day.
type weekGrid [7][]domain.TimeSlot

func buildWeekGrid(fixed []domain.FixedCommitment, courses []*domain.Course) weekGrid {
	var g weekGrid
	for _, f := range fixed {
		for _, s := range f.MeetingTimes {
			if s.Day.Valid() {
				g[s.Day] = append(g[s.Day], s)
			}
		}
	}
	for _, c := range courses {
		for _, s := range c.MeetingTimes {
			g[s.Day] = append(g[s.Day], s)
		}
	}
	for d := range g {
		sortSlots(g[d])
	}
	return g
}

// with returns a copy of g that also holds c's meetings.
func (g weekGrid) with(c *domain.Course) weekGrid {
	out := g
	for _, s := range c.MeetingTimes {
		day := make([]domain.TimeSlot, len(out[s.Day]), len(out[s.Day])+1)
		copy(day, out[s.Day])
		out[s.Day] = append(day, s)
		sortSlots(out[s.Day])
	}
	return out
}

func sortSlots(slots []domain.TimeSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Start != slots[j].Start {
			return slots[i].Start < slots[j].Start
		}
		return slots[i].End < slots[j].End
	})
}

// overloadCount sums, over all days, the classes beyond limit.
func (g weekGrid) overloadCount(limit int) int {
	total := 0
	for _, day := range g {
		if len(day) > limit {
			total += len(day) - limit
		}
	}
	return total
}

// consecutiveViolations walks each day's slots in start order. A gap of at
// most gap minutes keeps a run going; a closed run of length L > limit adds
// L-limit violations.
func (g weekGrid) consecutiveViolations(limit, gap int) int {
	violations := 0
	for _, day := range g {
		if len(day) == 0 {
			continue
		}
		run := 1
		for i := 1; i < len(day); i++ {
			if day[i].Start-day[i-1].End <= gap {
				run++
				continue
			}
			if run > limit {
				violations += run - limit
			}
			run = 1
		}
		if run > limit {
			violations += run - limit
		}
	}
	return violations
}

func (g weekGrid) freeDays(days []domain.Weekday) int {
	n := 0
	for _, d := range days {
		if len(g[d]) == 0 {
			n++
		}
	}
	return n
}

func isMorning(s domain.TimeSlot, opts Options) bool {
	return s.Start < opts.MorningEnd
}

func coversLunch(s domain.TimeSlot, opts Options) bool {
	return Overlaps(s, domain.TimeSlot{Day: s.Day, Start: opts.LunchStart, End: opts.LunchEnd})
}

func hasMorningSlot(c *domain.Course, opts Options) bool {
	for _, s := range c.MeetingTimes {
		if isMorning(s, opts) {
			return true
		}
	}
	return false
}

func hasLunchSlot(c *domain.Course, opts Options) bool {
	for _, s := range c.MeetingTimes {
		if coversLunch(s, opts) {
			return true
		}
	}
	return false
}

func meetsOnAvoidedDay(c *domain.Course, cs domain.ConstraintSet) bool {
	for _, s := range c.MeetingTimes {
		if cs.AvoidsDay(s.Day) {
			return true
		}
	}
	return false
}
