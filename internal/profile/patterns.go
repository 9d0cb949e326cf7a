package profile

import (
	"fmt"
	"math"
	"strings"

	"github.com/spigell/hiring-dna/internal/population"
)

const (
	patternListSize    = 5
	schoolCards        = 3
	firmCards          = 3
	specialtyCards     = 2
	cardLabelSchool    = "FEEDER SCHOOL"
	cardLabelFirm      = "FEEDER FIRM"
	cardLabelSpecialty = "TOP PRIOR SPECIALTY"
)

// Card is one human-readable hiring pattern.
type Card struct {
	Label       string `json:"label"`
	Detail      string `json:"detail"`
	Description string `json:"description"`
}

// Patterns summarises how a firm hires, optionally restricted to some cities.
type Patterns struct {
	Query          string   `json:"firm_name"`
	MatchedFirm    string   `json:"matched_firm,omitempty"`
	MatchScore     float64  `json:"match_score,omitempty"`
	TotalHires     int      `json:"total_hires"`
	CityHires      int      `json:"city_hires"`
	City           string   `json:"city,omitempty"`
	Cards          []Card   `json:"cards"`
	FeederSchools  []string `json:"feeder_schools"`
	FeederFirms    []string `json:"feeder_firms"`
	TopSpecialties []string `json:"top_specialties"`
	SchoolsChart   []Count  `json:"feeder_schools_chart,omitempty"`
	FirmsChart     []Count  `json:"feeder_firms_chart,omitempty"`
}

// Matched reports whether a hiring firm was identified.
func (p *Patterns) Matched() bool {
	return p != nil && p.MatchedFirm != ""
}

// Patterns matches name to a hiring-history firm and analyses its hires in the
// given cities. Without a match the result carries only the query.
func (s *Service) Patterns(name string, cities []string, exact bool) *Patterns {
	result := &Patterns{
		Query:          name,
		Cards:          []Card{},
		FeederSchools:  []string{},
		FeederFirms:    []string{},
		TopSpecialties: []string{},
	}

	match, ok := s.Match(name, exact)
	if !ok {
		return result
	}
	result.MatchedFirm = match.Firm
	result.MatchScore = match.Score

	events := s.groups[match.Firm]
	if len(events) == 0 {
		return result
	}
	result.TotalHires = len(events)

	cityHires := events
	locationLabel := ""
	if len(cities) > 0 {
		cityHires = inCities(events, cities)
		upper := make([]string, 0, len(cities))
		for _, c := range cities {
			upper = append(upper, strings.ToUpper(c))
		}
		locationLabel = " - " + strings.Join(upper, " / ")
		result.City = strings.Join(cities, " / ")
	}
	result.CityHires = len(cityHires)

	schools := newTally()
	feeders := newTally()
	specialties := newTally()
	lawFirmHires := 0
	for _, e := range cityHires {
		schools.add(e.LawSchool)
		if e.FromLawFirm() {
			lawFirmHires++
			feeders.add(e.MovedFrom)
		}
		for _, tag := range population.SplitTags(e.SpecialtiesOld) {
			specialties.add(tag)
		}
	}

	result.SchoolsChart = schools.top(patternListSize)
	result.FirmsChart = feeders.top(patternListSize)
	result.FeederSchools = names(result.SchoolsChart)
	result.FeederFirms = names(result.FirmsChart)
	result.TopSpecialties = names(specialties.top(patternListSize))

	for i, c := range schools.top(schoolCards) {
		result.Cards = append(result.Cards, Card{
			Label:       fmt.Sprintf("#%d %s%s", i+1, cardLabelSchool, locationLabel),
			Detail:      fmt.Sprintf("%s - %d of %d hires (%d%%)", c.Name, c.Hires, result.CityHires, percent(c.Hires, result.CityHires)),
			Description: fmt.Sprintf("Candidates from %s have a strong track record of being hired into this office.", c.Name),
		})
	}
	for i, c := range feeders.top(firmCards) {
		result.Cards = append(result.Cards, Card{
			Label:       fmt.Sprintf("#%d %s", i+1, cardLabelFirm),
			Detail:      fmt.Sprintf("%s - %d lateral hires (%d%%)", c.Name, c.Hires, percent(c.Hires, lawFirmHires)),
			Description: fmt.Sprintf("Attorneys moving from %s have been a consistent pipeline.", c.Name),
		})
	}
	for _, c := range specialties.top(specialtyCards) {
		result.Cards = append(result.Cards, Card{
			Label:       cardLabelSpecialty,
			Detail:      fmt.Sprintf("%s - %d hires had this specialty", c.Name, c.Hires),
			Description: fmt.Sprintf("Attorneys with %s experience are frequently hired.", c.Name),
		})
	}

	return result
}

func inCities(events []*population.HiringEvent, cities []string) []*population.HiringEvent {
	out := make([]*population.HiringEvent, 0, len(events))
	for _, e := range events {
		for _, c := range cities {
			if strings.EqualFold(strings.TrimSpace(e.City), c) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

func names(counts []Count) []string {
	out := make([]string, 0, len(counts))
	for _, c := range counts {
		out = append(out, c.Name)
	}
	return out
}

// percent is hires/total as a whole percentage, rounding half to even.
func percent(hires, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.RoundToEven(float64(hires) / float64(total) * 100))
}
