package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tably/internal/domain"
)

// Convert turns a validated schema into catalog courses for term. Call
// ValidateCatalogSchema first; Convert still fails on any unparsable field.
func Convert(schema *CatalogSchema, term string) ([]domain.Course, error) {
	courses := make([]domain.Course, 0, len(schema.Courses))
	for i, ci := range schema.Courses {
		delivery, err := domain.ParseDelivery(ci.Delivery)
		if err != nil {
			return nil, fmt.Errorf("courses[%d]: %w", i, err)
		}
		c := domain.Course{
			ID:          strings.TrimSpace(ci.ID),
			Term:        term,
			Name:        strings.TrimSpace(ci.Name),
			Credits:     ci.Credits,
			Delivery:    delivery,
			Tags:        normalizeLabels(ci.Tags),
			Tracks:      normalizeLabels(ci.Tracks),
			TeamProject: ci.TeamProject,
		}
		for j, m := range ci.Meetings {
			slot, err := domain.ParseTimeSlot(m)
			if err != nil {
				return nil, fmt.Errorf("courses[%d].meetings[%d]: %w", i, j, err)
			}
			c.MeetingTimes = append(c.MeetingTimes, slot)
		}
		courses = append(courses, c)
	}
	return courses, nil
}

// normalizeLabels trims labels and drops empty and repeated ones, keeping
// first-seen order. Case is preserved; matching is case-insensitive later.
func normalizeLabels(labels []string) []string {
	var out []string
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		key := strings.ToLower(l)
		if l == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, l)
	}
	return out
}
