package scheduler

import (
	"context"

	"github.com/alexanderramin/tably/internal/domain"
)

// cancelCheckInterval is how many visited nodes pass between ctx checks.
const cancelCheckInterval = 1024

// GenerateInput is the search space for GenerateCombinations. Courses must
// already be hard-filtered and priority-sorted.
type GenerateInput struct {
	Courses       []*domain.Course
	Fixed         []domain.FixedCommitment
	TargetCredits int
	Constraints   domain.ConstraintSet
}

// GenerationResult holds unscored candidates in discovery order.
type GenerationResult struct {
	Candidates      []Candidate
	CapHit          bool
	NodesVisited    int
	BudgetExhausted bool
	Cancelled       bool
	// HardLimitPrunes counts extensions rejected by hard per-day rules.
	HardLimitPrunes int
}

// GenerateCombinations enumerates non-overlapping course sets whose total
// credits (fixed commitments included) land in [target, target+CreditSlack].
//
// The search only ever recurses over the remaining suffix, so each set is
// produced at most once and never as a permutation of another. A branch stops
// extending as soon as it reaches the target. The whole search stops when
// MaxCandidates sets have been emitted, MaxSearchNodes nodes have been
// visited, or ctx is cancelled; whatever was found so far is returned.
func GenerateCombinations(ctx context.Context, in GenerateInput, opts Options) GenerationResult {
	opts = opts.withDefaults()
	fixedCredits := 0
	var fixedSlots []domain.TimeSlot
	for _, f := range in.Fixed {
		fixedCredits += f.Credits
		fixedSlots = append(fixedSlots, f.MeetingTimes...)
	}

	s := &search{
		ctx:          ctx,
		courses:      in.Courses,
		fixedSlots:   fixedSlots,
		fixedCredits: fixedCredits,
		target:       in.TargetCredits,
		ceiling:      in.TargetCredits + opts.CreditSlack,
		opts:         opts,
	}
	if in.Constraints.HardMaxClassesPerDay() {
		s.maxPerDay = in.Constraints.MaxClassesPerDay.Value
	}
	if in.Constraints.HardMaxConsecutive() {
		s.maxConsecutive = in.Constraints.MaxConsecutiveClasses.Value
	}

	s.walk(0, nil, 0, buildWeekGrid(in.Fixed, nil))
	return s.result
}

type search struct {
	ctx          context.Context
	courses      []*domain.Course
	fixedSlots   []domain.TimeSlot
	fixedCredits int
	target       int
	ceiling      int
	opts         Options

	// Hard per-day limits; zero disables the check.
	maxPerDay      int
	maxConsecutive int

	result  GenerationResult
	stopped bool
}

func (s *search) walk(start int, selected []*domain.Course, credits int, grid weekGrid) {
	if s.shouldStop() {
		return
	}
	s.result.NodesVisited++

	total := s.fixedCredits + credits
	if total >= s.target {
		if len(selected) > 0 && s.consistent(selected) {
			s.result.Candidates = append(s.result.Candidates, Candidate{
				Courses:       selected,
				CourseCredits: credits,
				FixedCredits:  s.fixedCredits,
				TotalCredits:  total,
			})
		}
		return
	}

	for j := start; j < len(s.courses); j++ {
		if s.stopped {
			return
		}
		c := s.courses[j]
		if total+c.Credits > s.ceiling {
			continue
		}
		if conflictsWithAny(c, selected) {
			continue
		}
		next := grid
		if s.tracksGrid() {
			next = grid.with(c)
			if s.worsensHardLimits(grid, next) {
				s.result.HardLimitPrunes++
				continue
			}
		}
		// Three-index slice forces a copy so sibling branches never share state.
		s.walk(j+1, append(selected[:len(selected):len(selected)], c), credits+c.Credits, next)
	}
}

func (s *search) shouldStop() bool {
	if s.stopped {
		return true
	}
	switch {
	case len(s.result.Candidates) >= s.opts.MaxCandidates:
		s.result.CapHit = true
		s.stopped = true
	case s.result.NodesVisited >= s.opts.MaxSearchNodes:
		s.result.BudgetExhausted = true
		s.stopped = true
	case s.ctx != nil && s.result.NodesVisited%cancelCheckInterval == 0 && s.ctx.Err() != nil:
		s.result.Cancelled = true
		s.stopped = true
	}
	return s.stopped
}

func (s *search) tracksGrid() bool {
	return s.maxPerDay > 0 || s.maxConsecutive > 0
}

// worsensHardLimits compares before and after so violations already present
// in the fixed commitments do not block every extension.
func (s *search) worsensHardLimits(before, after weekGrid) bool {
	if s.maxPerDay > 0 && after.overloadCount(s.maxPerDay) > before.overloadCount(s.maxPerDay) {
		return true
	}
	if s.maxConsecutive > 0 &&
		after.consecutiveViolations(s.maxConsecutive, s.opts.ConsecutiveGap) >
			before.consecutiveViolations(s.maxConsecutive, s.opts.ConsecutiveGap) {
		return true
	}
	return false
}

// consistent re-validates a full selection before it is emitted.
func (s *search) consistent(selected []*domain.Course) bool {
	seen := make(map[string]bool, len(selected))
	for i, c := range selected {
		if seen[c.ID] || SlotsConflict(c.MeetingTimes, s.fixedSlots) {
			return false
		}
		seen[c.ID] = true
		for _, other := range selected[i+1:] {
			if CoursesConflict(c, other) {
				return false
			}
		}
	}
	return true
}
