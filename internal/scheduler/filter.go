package scheduler

import (
	"fmt"

	"github.com/alexanderramin/tably/internal/domain"
)

// FilterResult is the outcome of HardFilter. Valid preserves catalog order.
type FilterResult struct {
	Valid    []*domain.Course
	Excluded []Exclusion
	ByReason map[ExclusionReason]int
}

// HardFilter drops every course that can never appear in a candidate: malformed
// or slotless courses, duplicates, courses clashing with fixed commitments or
// blocked intervals, and courses violating a per-course rule marked hard.
// Soft rules are ignored here. It never fails; an empty Valid is a legal result.
func HardFilter(
	courses []domain.Course,
	fixed []domain.FixedCommitment,
	blocked []domain.BlockedInterval,
	cs domain.ConstraintSet,
	opts Options,
) FilterResult {
	opts = opts.withDefaults()
	result := FilterResult{
		Valid:    make([]*domain.Course, 0, len(courses)),
		ByReason: make(map[ExclusionReason]int),
	}

	fixedSlots := make([]domain.TimeSlot, 0, len(fixed)*2)
	lockedIDs := make(map[string]bool, len(fixed))
	for _, f := range fixed {
		fixedSlots = append(fixedSlots, f.MeetingTimes...)
		if f.CourseID != "" {
			lockedIDs[f.CourseID] = true
		}
	}
	blockedSlots := make([]domain.TimeSlot, 0, len(blocked))
	for _, b := range blocked {
		blockedSlots = append(blockedSlots, b.Slot)
	}

	seen := make(map[string]bool, len(courses))
	for i := range courses {
		c := &courses[i]
		reason, msg := exclusionFor(c, seen, lockedIDs, fixedSlots, blockedSlots, cs, opts)
		if reason != "" {
			result.Excluded = append(result.Excluded, Exclusion{CourseID: c.ID, Reason: reason, Message: msg})
			result.ByReason[reason]++
			continue
		}
		seen[c.ID] = true
		result.Valid = append(result.Valid, c)
	}
	return result
}

func exclusionFor(
	c *domain.Course,
	seen, lockedIDs map[string]bool,
	fixedSlots, blockedSlots []domain.TimeSlot,
	cs domain.ConstraintSet,
	opts Options,
) (ExclusionReason, string) {
	if c.Credits <= 0 {
		return ExcludedInvalidCourse, fmt.Sprintf("Course %s has non-positive credits (%d)", c.ID, c.Credits)
	}
	for _, s := range c.MeetingTimes {
		if !s.Valid() {
			return ExcludedInvalidCourse, fmt.Sprintf("Course %s has a malformed meeting time", c.ID)
		}
	}
	if len(c.MeetingTimes) == 0 {
		return ExcludedNoMeetingTimes, fmt.Sprintf("Course %s has no scheduled meeting times", c.ID)
	}
	if seen[c.ID] {
		return ExcludedDuplicateID, fmt.Sprintf("Course %s appears more than once in the catalog", c.ID)
	}
	if lockedIDs[c.ID] {
		return ExcludedFixedOverlap, fmt.Sprintf("Course %s is already a fixed commitment", c.ID)
	}
	if SlotsConflict(c.MeetingTimes, fixedSlots) {
		return ExcludedFixedOverlap, fmt.Sprintf("Course %s overlaps a fixed commitment", c.ID)
	}
	if SlotsConflict(c.MeetingTimes, blockedSlots) {
		return ExcludedBlockedOverlap, fmt.Sprintf("Course %s overlaps a blocked time", c.ID)
	}
	if cs.HardAvoidDays() && meetsOnAvoidedDay(c, cs) {
		return ExcludedHardAvoidDay, fmt.Sprintf("Course %s meets on an excluded day", c.ID)
	}
	if cs.HardNoMornings() && hasMorningSlot(c, opts) {
		return ExcludedHardAvoidMorning, fmt.Sprintf("Course %s starts before %s", c.ID, domain.FormatClock(opts.MorningEnd))
	}
	if cs.HardLunchBreak() && hasLunchSlot(c, opts) {
		return ExcludedHardKeepLunch, fmt.Sprintf("Course %s overlaps the %s-%s lunch window",
			c.ID, domain.FormatClock(opts.LunchStart), domain.FormatClock(opts.LunchEnd))
	}
	if cs.HardNoTeamProjects() && c.TeamProject {
		return ExcludedHardAvoidTeam, fmt.Sprintf("Course %s includes a team project", c.ID)
	}
	if cs.HardOnlineOnly() && c.Delivery != domain.DeliveryOnline {
		return ExcludedHardOnlineOnly, fmt.Sprintf("Course %s is not delivered online", c.ID)
	}
	return "", ""
}
