package scheduler

import "github.com/alexanderramin/tably/internal/domain"

func mustSlot(s string) domain.TimeSlot {
	ts, err := domain.ParseTimeSlot(s)
	if err != nil {
		panic(err)
	}
	return ts
}

func newCourse(id string, credits int, slots ...string) domain.Course {
	c := domain.Course{
		ID:       id,
		Name:     id,
		Credits:  credits,
		Delivery: domain.DeliveryOffline,
	}
	for _, s := range slots {
		c.MeetingTimes = append(c.MeetingTimes, mustSlot(s))
	}
	return c
}

func coursePtrs(courses ...domain.Course) []*domain.Course {
	out := make([]*domain.Course, len(courses))
	for i := range courses {
		out[i] = &courses[i]
	}
	return out
}

func ids(courses []*domain.Course) []string {
	out := make([]string, len(courses))
	for i, c := range courses {
		out[i] = c.ID
	}
	return out
}
