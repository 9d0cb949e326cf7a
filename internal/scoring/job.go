package scoring

import (
	"math"
	"regexp"
	"strings"

	"github.com/spigell/hiring-dna/internal/population"
	"github.com/spigell/hiring-dna/internal/profile"
)

const (
	SubScoreContextual = "contextual"
	SubScorePractice   = "practice"
	SubScorePattern    = "pattern"
	SubScoreCredential = "credential"

	feederFirmPoints   = 14
	feederSchoolPoints = 10
	topSpecialtyPoints = 4

	top200Points          = 3
	vault50Points         = 2
	clerkshipPoints       = 2
	acknowledgementPoints = 1
)

// Weights are the sub-score caps and tier thresholds of a job search.
type Weights struct {
	Contextual int `json:"contextual"`
	Practice   int `json:"practice"`
	Credential int `json:"credential"`
	Pattern    int `json:"pattern"`
	GoodTier   int `json:"good_tier"`
	StrongTier int `json:"strong_tier"`
}

var (
	// FirmWeights apply when the hiring firm was identified.
	FirmWeights = Weights{Contextual: 50, Practice: 14, Credential: 8, Pattern: 28, GoodTier: 40, StrongTier: 65}
	// OpenWeights redistribute the pattern points when no hiring firm is known.
	OpenWeights = Weights{Contextual: 64, Practice: 22, Credential: 14, Pattern: 0, GoodTier: 35, StrongTier: 55}
)

// MinimumScore is the retention threshold for a search with keywordCount keywords.
func MinimumScore(keywordCount int) int {
	switch {
	case keywordCount >= 3:
		return 20
	case keywordCount >= 1:
		return 10
	default:
		return 2
	}
}

// JobScorer scores candidates against the requirements of one job description.
type JobScorer struct {
	keywords []string
	terms    []*regexp.Regexp
	patterns *profile.Patterns
	weights  Weights
	minScore int

	feederFirms    []string
	feederSchools  map[string]struct{}
	topSpecialties []string
}

// NewJobScorer builds a scorer from extracted keywords and practice areas.
// Patterns may be nil or unmatched, in which case OpenWeights apply.
func NewJobScorer(keywords, practiceAreas []string, patterns *profile.Patterns) *JobScorer {
	s := &JobScorer{
		keywords:      make([]string, 0, len(keywords)),
		patterns:      patterns,
		weights:       OpenWeights,
		minScore:      MinimumScore(len(keywords)),
		feederSchools: make(map[string]struct{}),
	}
	for _, kw := range keywords {
		s.keywords = append(s.keywords, strings.ToLower(kw))
	}
	for _, term := range PracticeTerms(keywords, practiceAreas) {
		s.terms = append(s.terms, regexp.MustCompile(`(?:^|[\s,;/])`+regexp.QuoteMeta(term)+`(?:$|[\s,;/])`))
	}

	if patterns.Matched() {
		s.weights = FirmWeights
		for _, f := range patterns.FeederFirms {
			s.feederFirms = append(s.feederFirms, strings.ToLower(f))
		}
		for _, school := range patterns.FeederSchools {
			s.feederSchools[school] = struct{}{}
		}
		for _, spec := range patterns.TopSpecialties {
			s.topSpecialties = append(s.topSpecialties, strings.ToLower(spec))
		}
	}
	return s
}

// PracticeTerms returns the distinct lowercase words of keywords and practice areas.
func PracticeTerms(keywords, practiceAreas []string) []string {
	seen := make(map[string]struct{})
	terms := make([]string, 0)
	for _, phrase := range append(append([]string(nil), keywords...), practiceAreas...) {
		for _, word := range strings.Fields(strings.ToLower(phrase)) {
			if _, ok := seen[word]; ok {
				continue
			}
			seen[word] = struct{}{}
			terms = append(terms, word)
		}
	}
	return terms
}

func (s *JobScorer) Weights() Weights { return s.weights }

func (s *JobScorer) MinScore() int { return s.minScore }

// Score computes the fit of one candidate. The second value reports whether the
// total reaches the retention threshold. Current employees of the matched hiring
// firm score zero and are never retained.
func (s *JobScorer) Score(c *population.Candidate) (Result, bool) {
	text := newCandidateText(c)

	matched := 0
	for _, kw := range s.keywords {
		if strings.Contains(text.combined, kw) {
			matched++
		}
	}
	contextual := scaled(matched, len(s.keywords), s.weights.Contextual)

	termHits := 0
	for _, re := range s.terms {
		if re.MatchString(text.specialty) {
			termHits++
		}
	}
	practice := scaled(termHits, len(s.terms), s.weights.Practice)

	pattern := 0
	if s.weights.Pattern > 0 {
		pattern = capAt(s.patternPoints(c, text), s.weights.Pattern)
	}

	credential := 0
	if c.IsTop200() {
		credential += top200Points
	}
	if c.IsVault50() {
		credential += vault50Points
	}
	if c.HasClerkship() {
		credential += clerkshipPoints
	}
	if c.HasAcknowledgements() {
		credential += acknowledgementPoints
	}
	credential = capAt(credential, s.weights.Credential)

	r := newResult(c,
		SubScore{Name: SubScoreContextual, Points: contextual, Max: s.weights.Contextual},
		SubScore{Name: SubScorePractice, Points: practice, Max: s.weights.Practice},
		SubScore{Name: SubScorePattern, Points: pattern, Max: s.weights.Pattern},
		SubScore{Name: SubScoreCredential, Points: credential, Max: s.weights.Credential},
	)
	r.KeywordCount = matched
	if s.patterns.Matched() && EmployedAt(c.Firm, s.patterns.MatchedFirm) {
		r.zero()
		r.Tier = s.tier(0)
		return r, false
	}
	r.Tier = s.tier(r.Total)
	return r, r.Total >= s.minScore
}

func (s *JobScorer) patternPoints(c *population.Candidate, text candidateText) int {
	points := 0
	for _, feeder := range s.feederFirms {
		if strings.Contains(text.prior, feeder) || strings.Contains(text.firm, feeder) {
			points += feederFirmPoints
			break
		}
	}
	if _, ok := s.feederSchools[c.School()]; ok {
		points += feederSchoolPoints
	}
	for _, spec := range s.topSpecialties {
		if strings.Contains(text.specialty, spec) {
			points += topSpecialtyPoints
			break
		}
	}
	return points
}

func (s *JobScorer) tier(total int) Tier {
	switch {
	case total >= s.weights.StrongTier:
		return TierStrong
	case total >= s.weights.GoodTier:
		return TierGood
	default:
		return TierPossible
	}
}

// Rank scores every candidate and returns the retained ones, best first.
func (s *JobScorer) Rank(candidates *population.Candidates) []Result {
	results := make([]Result, 0)
	if candidates == nil {
		return results
	}
	for _, c := range candidates.Items {
		if r, ok := s.Score(c); ok {
			results = append(results, r)
		}
	}
	sortByTotal(results)
	return results
}

// scaled is min(1, hits/total) of weight, rounded half to even.
func scaled(hits, total, weight int) int {
	ratio := float64(hits) / float64(max(total, 1))
	return int(math.RoundToEven(math.Min(ratio, 1) * float64(weight)))
}

// candidateText holds the lowercase text fields read by several rules.
type candidateText struct {
	specialty string
	combined  string
	prior     string
	firm      string
}

func newCandidateText(c *population.Candidate) candidateText {
	specialty := c.SpecialtyText()
	return candidateText{
		specialty: specialty,
		combined:  c.ProfileText() + " " + specialty,
		prior:     strings.ToLower(c.PriorExperience),
		firm:      strings.ToLower(strings.TrimSpace(c.Firm)),
	}
}
