package match

import "sort"

// Confidence thresholds for suggestions.
const (
	// DefaultMinScore is the minimum similarity for a suggestion.
	DefaultMinScore = 0.6
	// DefaultMinGap is the minimum score gap between the top two candidates.
	DefaultMinGap = 0.05
)

// Candidate is a name scored against a target.
type Candidate struct {
	Name string
	// Score is the normalized similarity (0-1).
	Score float64
	// Distance is the raw edit distance between the normalized forms.
	Distance int
}

// CandidateList is a list of candidates, best first once ranked.
type CandidateList []Candidate

// Rank scores every name against target and sorts best first. Ties are
// broken alphabetically so the order is deterministic.
func Rank(target string, names []string) CandidateList {
	targetNorm := NormalizeIdent(target)

	candidates := make(CandidateList, 0, len(names))

	for _, name := range names {
		norm := NormalizeIdent(name)

		candidates = append(candidates, Candidate{
			Name:     name,
			Score:    Similarity(norm, targetNorm),
			Distance: Levenshtein(norm, targetNorm),
		})
	}

	sort.Sort(candidates)

	return candidates
}

// Suggest returns the closest name to target when it is a confident match
// under the default thresholds.
func Suggest(target string, names []string) (string, bool) {
	best := Rank(target, names).HighConfidence(DefaultMinScore, DefaultMinGap)
	if best == nil {
		return "", false
	}

	return best.Name, true
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface: score descending, then name.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Best returns the best candidate, or nil if there are none.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// HighConfidence returns the best candidate if it scores at least minScore
// and leads the runner-up by at least minGap. Returns nil otherwise.
func (c CandidateList) HighConfidence(minScore, minGap float64) *Candidate {
	best := c.Best()
	if best == nil || best.Score < minScore {
		return nil
	}

	if len(c) > 1 && c[0].Score-c[1].Score < minGap {
		return nil
	}

	return best
}
