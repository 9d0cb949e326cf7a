package scoring

import (
	"fmt"
	"strings"

	"github.com/spigell/hiring-dna/internal/population"
	"github.com/spigell/hiring-dna/internal/profile"
)

const (
	DefaultTopCandidates = 50

	SubScoreSchool       = "school"
	SubScoreFirm         = "firm"
	SubScorePracticeArea = "practice_area"
	SubScoreSpecialty    = "specialty"
	SubScoreClassYear    = "class_year"
	SubScoreLocation     = "location"
	SubScoreBoomerang    = "boomerang"

	maxSchoolPoints    = 30
	maxFirmPoints      = 25
	maxPracticePoints  = 20
	maxSpecialtyPoints = 15
	classYearInRange   = 5
	classYearNearby    = 3
	classYearSlack     = 2
	locationPoints     = 5
	boomerangPoints    = 10
	maxReasons         = 4
	numberedReasons    = 3
)

var (
	schoolTiers       = []rankTier{{0, 30}, {2, 22}, {4, 15}, {9, 10}, {14, 5}}
	currentFirmTiers  = []rankTier{{0, 25}, {2, 18}, {4, 12}, {9, 8}, {14, 4}}
	priorFirmTiers    = []rankTier{{0, 12}, {2, 9}, {4, 6}, {9, 4}, {14, 2}}
	practiceAreaTiers = []rankTier{{0, 20}, {2, 15}, {4, 10}}
)

const otherPracticeAreaPoints = 5

// DNAScorer scores candidates against one firm's hiring profile.
type DNAScorer struct {
	profile *profile.Profile
	limit   int

	firm         string
	schoolRank   map[string]int
	feederRank   map[string]int
	feeders      []string
	areas        []string
	specialties  []string
	hiringCities []string
}

type DNAOption func(*DNAScorer)

// WithLimit caps the number of ranked results.
func WithLimit(limit int) DNAOption {
	return func(s *DNAScorer) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

func NewDNAScorer(p *profile.Profile, opts ...DNAOption) *DNAScorer {
	s := &DNAScorer{
		profile:    p,
		limit:      DefaultTopCandidates,
		firm:       strings.ToLower(p.Firm),
		schoolRank: make(map[string]int, len(p.FeederSchools)),
		feederRank: make(map[string]int, len(p.FeederFirms)),
	}
	for _, opt := range opts {
		opt(s)
	}

	for i, school := range p.FeederSchools {
		if _, ok := s.schoolRank[school.Name]; !ok {
			s.schoolRank[school.Name] = i
		}
	}
	for i, feeder := range p.FeederFirms {
		key := strings.ToLower(feeder.Name)
		if _, ok := s.feederRank[key]; !ok {
			s.feederRank[key] = i
			s.feeders = append(s.feeders, key)
		}
	}
	for _, area := range p.PracticeAreas {
		s.areas = append(s.areas, strings.ToLower(area.Name))
	}
	s.specialties = distinctLower(p.Specialties)
	for _, loc := range p.Locations {
		s.hiringCities = append(s.hiringCities, strings.ToLower(loc.City))
	}
	return s
}

// Firm returns the scored firm.
func (s *DNAScorer) Firm() string {
	return s.profile.Firm
}

// Score computes the hiring-DNA fit of one candidate together with its reasons.
// Current employees of the firm always score zero.
func (s *DNAScorer) Score(c *population.Candidate) Result {
	r, ok := s.score(c)
	if ok {
		s.explain(&r)
	}
	return r
}

// score computes the sub-scores only. The second value is false for current
// employees of the firm.
func (s *DNAScorer) score(c *population.Candidate) (Result, bool) {
	school := c.School()
	current := strings.ToLower(strings.TrimSpace(c.Firm))
	prior := strings.ToLower(c.PriorExperience)

	schoolPoints := 0
	schoolRank, feederSchool := s.schoolRank[school]
	if feederSchool && school != "" {
		schoolPoints = rankPoints(schoolRank, schoolTiers)
	}

	currentPoints := 0
	currentRank, feederCurrent := s.feederRank[current]
	if feederCurrent && current != "" {
		currentPoints = rankPoints(currentRank, currentFirmTiers)
	}
	priorPoints := 0
	for _, feeder := range s.feeders {
		if strings.Contains(prior, feeder) {
			priorPoints = max(priorPoints, rankPoints(s.feederRank[feeder], priorFirmTiers))
		}
	}
	firmPoints := capAt(currentPoints+priorPoints, maxFirmPoints)

	practiceText := strings.ToLower(c.PracticeAreas)
	practicePoints := 0
	for rank, area := range s.areas {
		if strings.Contains(practiceText, area) {
			points := rankPoints(rank, practiceAreaTiers)
			if points == 0 {
				points = otherPracticeAreaPoints
			}
			practicePoints += points
		}
	}
	practicePoints = capAt(practicePoints, maxPracticePoints)

	specialtyText := strings.ToLower(c.Specialty)
	hits := 0
	for _, specialty := range s.specialties {
		if strings.Contains(specialtyText, specialty) {
			hits++
		}
	}
	specialtyPoints := 0
	switch {
	case hits >= 3:
		specialtyPoints = maxSpecialtyPoints
	case hits == 2:
		specialtyPoints = 10
	case hits == 1:
		specialtyPoints = 5
	}

	yearPoints := 0
	if year, ok := c.Year(); ok {
		switch {
		case s.profile.ClassYears.Contains(year):
			yearPoints = classYearInRange
		case abs(year-s.profile.ClassYears.Median) <= classYearSlack:
			yearPoints = classYearNearby
		}
	}

	locationText := strings.ToLower(c.Location)
	locPoints := 0
	for _, city := range s.hiringCities {
		if city != "" && strings.Contains(locationText, city) {
			locPoints = locationPoints
			break
		}
	}

	boomerang := 0
	if s.firm != "" && strings.Contains(prior, s.firm) {
		boomerang = boomerangPoints
	}

	r := newResult(c,
		SubScore{Name: SubScoreSchool, Points: schoolPoints, Max: maxSchoolPoints},
		SubScore{Name: SubScoreFirm, Points: firmPoints, Max: maxFirmPoints},
		SubScore{Name: SubScorePracticeArea, Points: practicePoints, Max: maxPracticePoints},
		SubScore{Name: SubScoreSpecialty, Points: specialtyPoints, Max: maxSpecialtyPoints},
		SubScore{Name: SubScoreClassYear, Points: yearPoints, Max: classYearInRange},
		SubScore{Name: SubScoreLocation, Points: locPoints, Max: locationPoints},
		SubScore{Name: SubScoreBoomerang, Points: boomerang, Max: boomerangPoints},
	)
	if EmployedAt(c.Firm, s.profile.Firm) {
		r.zero()
		return r, false
	}

	r.Boomerang = boomerang > 0
	return r, true
}

// explain fills the short reason labels of a scored result.
func (s *DNAScorer) explain(r *Result) {
	schoolRank, feederSchool := s.schoolRank[r.Candidate.School()]
	current := strings.ToLower(strings.TrimSpace(r.Candidate.Firm))
	currentRank, feederCurrent := s.feederRank[current]
	currentPoints := 0
	if feederCurrent && current != "" {
		currentPoints = rankPoints(currentRank, currentFirmTiers)
	}

	reasons := make([]string, 0, maxReasons)
	if feederSchool && r.Points(SubScoreSchool) > 0 {
		reasons = append(reasons, rankedReason(schoolRank, "Feeder School"))
	}

	switch {
	case feederCurrent && currentPoints > 0:
		reasons = append(reasons, rankedReason(currentRank, "Feeder Firm"))
	case r.Points(SubScoreBoomerang) > 0:
		reasons = append(reasons, "Boomerang")
	case r.Points(SubScoreFirm) > 0 && r.Points(SubScoreFirm) != currentPoints:
		reasons = append(reasons, "Ex-Feeder Firm")
	}

	if r.Points(SubScorePracticeArea) > 0 {
		reasons = append(reasons, "Practice Area Match")
	}
	if r.Points(SubScoreSpecialty) > 0 {
		reasons = append(reasons, "Specialty Match")
	}
	if r.Points(SubScoreLocation) > 0 {
		reasons = append(reasons, "Location Match")
	}
	if r.Points(SubScoreClassYear) > 0 {
		reasons = append(reasons, "Class Year Fit")
	}

	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	r.Reasons = reasons
}

func rankedReason(rank int, label string) string {
	if rank < numberedReasons {
		return fmt.Sprintf("#%d %s", rank+1, label)
	}
	return label
}

// Rank scores every candidate and returns those with a positive score, best
// first, truncated to the scorer's limit. Only the returned results are explained.
func (s *DNAScorer) Rank(candidates *population.Candidates) []Result {
	results := make([]Result, 0)
	if candidates == nil {
		return results
	}
	for _, c := range candidates.Items {
		if r, ok := s.score(c); ok && r.Total > 0 {
			results = append(results, r)
		}
	}
	sortByTotal(results)
	if len(results) > s.limit {
		results = results[:s.limit]
	}
	for i := range results {
		s.explain(&results[i])
	}
	return results
}

func distinctLower(counts []profile.Count) []string {
	seen := make(map[string]struct{}, len(counts))
	out := make([]string, 0, len(counts))
	for _, c := range counts {
		key := strings.ToLower(c.Name)
		if _, ok := seen[key]; ok || key == "" {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
