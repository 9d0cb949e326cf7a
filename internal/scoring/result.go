// Package scoring ranks candidates against a firm's hiring profile or a job description.
package scoring

import (
	"sort"
	"strings"

	"github.com/spigell/hiring-dna/internal/population"
)

type Tier string

const (
	TierStrong   Tier = "1"
	TierGood     Tier = "2"
	TierPossible Tier = "3"
)

// Label returns the human-readable tier name.
func (t Tier) Label() string {
	switch t {
	case TierStrong:
		return "Tier 1 - Strong Fit"
	case TierGood:
		return "Tier 2 - Good Fit"
	case TierPossible:
		return "Tier 3 - Possible Fit"
	default:
		return ""
	}
}

// SubScore is one independently capped component of a total.
type SubScore struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
	Max    int    `json:"max"`
}

// Result is the score of one candidate against one target. Total is always the
// sum of SubScores.
type Result struct {
	Candidate *population.Candidate `json:"candidate"`
	Total     int                   `json:"score"`
	SubScores []SubScore            `json:"sub_scores"`
	Tier      Tier                  `json:"tier,omitempty"`
	Reasons   []string              `json:"match_reasons,omitempty"`

	KeywordCount   int      `json:"keyword_count,omitempty"`
	KeywordMatches []string `json:"keyword_matches,omitempty"`
	PatternMatches []string `json:"pattern_matches,omitempty"`
	Rationale      string   `json:"rationale,omitempty"`
	Boomerang      bool     `json:"is_boomerang,omitempty"`
}

func newResult(c *population.Candidate, subs ...SubScore) Result {
	r := Result{Candidate: c, SubScores: subs}
	for _, s := range subs {
		r.Total += s.Points
	}
	return r
}

// Points returns the points of the named sub-score.
func (r *Result) Points(name string) int {
	for _, s := range r.SubScores {
		if s.Name == name {
			return s.Points
		}
	}
	return 0
}

// zero clears every sub-score, keeping the total consistent.
func (r *Result) zero() {
	for i := range r.SubScores {
		r.SubScores[i].Points = 0
	}
	r.Total = 0
}

// sortByTotal orders results by descending total, keeping input order on ties.
func sortByTotal(results []Result) {
	sort.SliceStable(results, func(i, j int) bool { return results[i].Total > results[j].Total })
}

// EmployedAt reports whether currentFirm is the firm, matching by containment
// in either direction and ignoring case.
func EmployedAt(currentFirm, firm string) bool {
	current := strings.ToLower(strings.TrimSpace(currentFirm))
	target := strings.ToLower(strings.TrimSpace(firm))
	if current == "" || target == "" {
		return false
	}
	return strings.Contains(current, target) || strings.Contains(target, current)
}

func capAt(points, limit int) int {
	return min(points, limit)
}

type rankTier struct {
	maxRank int
	points  int
}

// rankPoints returns the points of the first tier whose maxRank covers rank.
func rankPoints(rank int, tiers []rankTier) int {
	for _, t := range tiers {
		if rank <= t.maxRank {
			return t.points
		}
	}
	return 0
}
