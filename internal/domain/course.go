package domain

import "time"

// Course is one catalog offering. Courses are owned by the catalog and are
// treated as read-only by the recommendation engine.
type Course struct {
	ID           string
	Term         string
	Name         string
	Credits      int
	MeetingTimes []TimeSlot
	Delivery     Delivery
	Tags         []string
	Tracks       []string
	TeamProject  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MeetsOn reports whether any meeting falls on day.
func (c *Course) MeetsOn(day Weekday) bool {
	for _, s := range c.MeetingTimes {
		if s.Day == day {
			return true
		}
	}
	return false
}

// FixedCommitment is a block the student has already locked in, usually an
// enrolled course. Its meetings may never be covered by recommended courses.
type FixedCommitment struct {
	ID           string
	Term         string
	CourseID     string // empty for ad-hoc commitments
	Title        string
	Credits      int
	MeetingTimes []TimeSlot
	CreatedAt    time.Time
}

// BlockedInterval is a hard-unavailable weekly window (work shift, commute).
type BlockedInterval struct {
	ID        string
	Label     string
	Slot      TimeSlot
	CreatedAt time.Time
}
