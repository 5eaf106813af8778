package testutil

import (
	"fmt"
	"time"

	"github.com/alexanderramin/tably/internal/domain"
	"github.com/google/uuid"
)

// MustSlot parses "MON 09:00-10:15" and panics on malformed input.
func MustSlot(s string) domain.TimeSlot {
	slot, err := domain.ParseTimeSlot(s)
	if err != nil {
		panic(fmt.Sprintf("testutil: %v", err))
	}
	return slot
}

func mustSlots(slots []string) []domain.TimeSlot {
	out := make([]domain.TimeSlot, len(slots))
	for i, s := range slots {
		out[i] = MustSlot(s)
	}
	return out
}

// Course options
type CourseOption func(*domain.Course)

func WithCredits(n int) CourseOption {
	return func(c *domain.Course) { c.Credits = n }
}

func WithMeetings(slots ...string) CourseOption {
	return func(c *domain.Course) { c.MeetingTimes = mustSlots(slots) }
}

func WithDelivery(d domain.Delivery) CourseOption {
	return func(c *domain.Course) { c.Delivery = d }
}

func WithTags(tags ...string) CourseOption {
	return func(c *domain.Course) { c.Tags = tags }
}

func WithTracks(tracks ...string) CourseOption {
	return func(c *domain.Course) { c.Tracks = tracks }
}

func WithTeamProject() CourseOption {
	return func(c *domain.Course) { c.TeamProject = true }
}

func WithTerm(term string) CourseOption {
	return func(c *domain.Course) { c.Term = term }
}

// NewTestCourse returns a 3-credit offline course meeting Monday afternoon
// unless options say otherwise.
func NewTestCourse(id string, opts ...CourseOption) *domain.Course {
	now := time.Now().UTC().Truncate(time.Second)
	c := &domain.Course{
		ID:           id,
		Name:         "Course " + id,
		Credits:      3,
		MeetingTimes: []domain.TimeSlot{MustSlot("MON 14:00-15:15")},
		Delivery:     domain.DeliveryOffline,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Commitment options
type CommitmentOption func(*domain.FixedCommitment)

func WithCommitmentCredits(n int) CommitmentOption {
	return func(c *domain.FixedCommitment) { c.Credits = n }
}

func WithCommitmentTerm(term string) CommitmentOption {
	return func(c *domain.FixedCommitment) { c.Term = term }
}

func WithCommitmentCourse(courseID string) CommitmentOption {
	return func(c *domain.FixedCommitment) { c.CourseID = courseID }
}

func NewTestCommitment(title string, slots []string, opts ...CommitmentOption) *domain.FixedCommitment {
	c := &domain.FixedCommitment{
		ID:           uuid.New().String(),
		Title:        title,
		MeetingTimes: mustSlots(slots),
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func NewTestBlock(label, slot string) *domain.BlockedInterval {
	return &domain.BlockedInterval{
		ID:        uuid.New().String(),
		Label:     label,
		Slot:      MustSlot(slot),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}
