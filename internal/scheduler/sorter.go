package scheduler

import (
	"sort"
	"strings"

	"github.com/alexanderramin/tably/internal/domain"
)

// Preferences carries the strategy inputs shared by the sorter and scorer.
type Preferences struct {
	Strategy    domain.Strategy
	Tracks      []string
	Interests   []string
	Constraints domain.ConstraintSet
}

type priorityKey struct {
	strategy float64
	soft     float64
	credits  int
	id       string
}

// PrioritySort orders courses so the search meets the most promising
// combinations before the candidate cap is reached. Rules, highest first:
// 1. Strategy alignment (tracks, interests, or raw credits for MIX)
// 2. Soft-constraint alignment
// 3. Credits (reach the target in fewer picks)
// 4. Course ID, lexical ascending
//
// It returns a new slice and never drops a course.
func PrioritySort(courses []*domain.Course, prefs Preferences, opts Options) []*domain.Course {
	opts = opts.withDefaults()
	tracks := normalizeTerms(prefs.Tracks)
	interests := normalizeTerms(prefs.Interests)

	keys := make(map[*domain.Course]priorityKey, len(courses))
	for _, c := range courses {
		keys[c] = priorityKey{
			strategy: strategyAlignment(c, prefs.Strategy, tracks, interests),
			soft:     softAlignment(c, prefs.Constraints, opts),
			credits:  c.Credits,
			id:       c.ID,
		}
	}

	sorted := make([]*domain.Course, len(courses))
	copy(sorted, courses)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := keys[sorted[i]], keys[sorted[j]]
		if a.strategy != b.strategy {
			return a.strategy > b.strategy
		}
		if a.soft != b.soft {
			return a.soft > b.soft
		}
		if a.credits != b.credits {
			return a.credits > b.credits
		}
		return a.id < b.id
	})
	return sorted
}

func strategyAlignment(c *domain.Course, strategy domain.Strategy, tracks, interests []string) float64 {
	switch strategy {
	case domain.StrategyMajorFocus:
		return float64(trackMatches(c, tracks))
	case domain.StrategyInterestFocus:
		return float64(interestMatches(c, interests))
	default:
		return float64(c.Credits)
	}
}

func softAlignment(c *domain.Course, cs domain.ConstraintSet, opts Options) float64 {
	var bonus float64
	if cs.WantsNoTeamProjects() && !c.TeamProject {
		bonus++
	}
	if cs.WantsNoMornings() && !hasMorningSlot(c, opts) {
		bonus++
	}
	if cs.WantsLunchBreak() && !hasLunchSlot(c, opts) {
		bonus++
	}
	if cs.HasAvoidDays() && !meetsOnAvoidedDay(c, cs) {
		bonus++
	}
	if cs.WantsOnline() {
		switch c.Delivery {
		case domain.DeliveryOnline:
			bonus++
		case domain.DeliveryHybrid:
			bonus += 0.5
		}
	}
	return bonus
}

// trackMatches counts course tracks that appear in the requested tracks.
func trackMatches(c *domain.Course, tracks []string) int {
	if len(tracks) == 0 {
		return 0
	}
	n := 0
	for _, t := range c.Tracks {
		needle := strings.ToLower(strings.TrimSpace(t))
		for _, want := range tracks {
			if needle == want {
				n++
				break
			}
		}
	}
	return n
}

// interestMatches counts interest keywords found in the course id, name or tags.
func interestMatches(c *domain.Course, interests []string) int {
	if len(interests) == 0 {
		return 0
	}
	haystack := strings.ToLower(c.ID + " " + c.Name + " " + strings.Join(c.Tags, " "))
	n := 0
	for _, kw := range interests {
		if strings.Contains(haystack, kw) {
			n++
		}
	}
	return n
}

func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if v := strings.ToLower(strings.TrimSpace(t)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
