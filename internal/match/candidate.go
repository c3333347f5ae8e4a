package match

import (
	"sort"
)

// Suggestion thresholds.
const (
	// DefaultMinScore is the minimum similarity of a suggested name.
	DefaultMinScore = 0.6
	// DefaultMinGap is the minimum lead of the best candidate over the
	// runner-up.
	DefaultMinGap = 0.1
)

// Candidate is a known name scored against a looked-up one.
type Candidate struct {
	Name  string
	Score float64
}

// CandidateList is sorted by descending score, then by name.
type CandidateList []Candidate

// Rank scores every known name against target.
func Rank(target string, names []string) CandidateList {
	candidates := make(CandidateList, 0, len(names))
	for _, name := range names {
		candidates = append(candidates, Candidate{Name: name, Score: NameSimilarity(target, name)})
	}

	sort.Sort(candidates)

	return candidates
}

func (c CandidateList) Len() int { return len(c) }

func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Top returns the best n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil for an empty list.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// HighConfidence returns the best candidate when it scores at least
// minScore and leads the runner-up by at least minGap.
func (c CandidateList) HighConfidence(minScore, minGap float64) *Candidate {
	best := c.Best()
	if best == nil || best.Score < minScore {
		return nil
	}

	if len(c) > 1 && best.Score-c[1].Score < minGap {
		return nil
	}

	return best
}

// Suggest returns the known name target was most likely meant to be.
func Suggest(target string, names []string) (string, bool) {
	best := Rank(target, names).HighConfidence(DefaultMinScore, DefaultMinGap)
	if best == nil {
		return "", false
	}

	return best.Name, true
}
