package scheduler

import "sort"

// RankCandidates sorts by score descending, keeping generation order on ties,
// drops any candidate whose course set repeats an earlier one, and returns at
// most topN. The input slice is not modified.
func RankCandidates(candidates []Candidate, topN int) []Candidate {
	if topN <= 0 {
		return nil
	}
	ranked := make([]Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	seen := make(map[string]bool, len(ranked))
	out := make([]Candidate, 0, min(topN, len(ranked)))
	for _, c := range ranked {
		if len(out) >= topN {
			break
		}
		key := c.setKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}
