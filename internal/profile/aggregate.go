package profile

import (
	"math"
	"sort"
	"strings"

	"github.com/spigell/hiring-dna/internal/population"
)

const (
	DefaultMinHires = 5

	topSchools     = 15
	topFirms       = 15
	topLocations   = 15
	topSpecialties = 20

	lowPercentile  = 0.1
	highPercentile = 0.9

	// minPercentileSamples is the sample count below which min/max replace percentiles.
	minPercentileSamples = 3
)

// DefaultClassYears is used when a firm has no parseable class years.
var DefaultClassYears = ClassYearRange{Min: 2010, Max: 2024, Median: 2018}

// Aggregator builds profiles for firms with at least MinHires events.
type Aggregator struct {
	MinHires int
}

func NewAggregator(minHires int) *Aggregator {
	if minHires <= 0 {
		minHires = DefaultMinHires
	}
	return &Aggregator{MinHires: minHires}
}

// Eligible reports whether a firm with hires events gets a profile.
func (a *Aggregator) Eligible(hires int) bool {
	return hires > 0 && hires >= a.MinHires
}

// AggregateAll returns a profile for every eligible firm, most hires first.
// Firms with equal hire counts keep first-seen order.
func (a *Aggregator) AggregateAll(events *population.HiringEvents) []*Profile {
	groups := events.ByFirm()
	profiles := make([]*Profile, 0)
	for _, firm := range events.Firms() {
		if p, ok := a.Aggregate(firm, groups[firm]); ok {
			profiles = append(profiles, p)
		}
	}
	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].TotalHires > profiles[j].TotalHires
	})
	return profiles
}

// Aggregate builds the profile of firm from its events. The second value is false
// when the firm is not eligible.
func (a *Aggregator) Aggregate(firm string, events []*population.HiringEvent) (*Profile, bool) {
	total := len(events)
	if !a.Eligible(total) {
		return nil, false
	}

	schools := newTally()
	feeders := newTally()
	areas := newTally()
	specialties := newTally()
	titles := newTally()
	locations := newTally()
	locationKeys := make(map[string]LocationCount)
	years := make([]int, 0, total)
	lawFirmHires := 0

	for _, e := range events {
		schools.add(e.LawSchool)
		titles.add(e.Title)

		if e.FromLawFirm() {
			lawFirmHires++
			feeders.add(e.MovedFrom)
		}
		for _, tag := range population.SplitTags(e.PracticeAreasNew) {
			areas.add(tag)
		}
		for _, tag := range population.SplitTags(e.SpecialtiesNew) {
			specialties.add(tag)
		}
		if year, ok := population.ParseYear(e.ClassYear); ok {
			years = append(years, year)
		}

		city, state := strings.TrimSpace(e.City), strings.TrimSpace(e.State)
		if city != "" {
			key := city + "\x00" + state
			locations.add(key)
			locationKeys[key] = LocationCount{City: city, State: state}
		}
	}

	p := &Profile{
		Firm:          firm,
		TotalHires:    total,
		FeederSchools: shares(schools.top(topSchools), total),
		FeederFirms:   shares(feeders.top(topFirms), lawFirmHires),
		PracticeAreas: shares(areas.top(0), total),
		Specialties:   specialties.top(topSpecialties),
		ClassYears:    classYearRange(years),
		Titles:        titles.top(0),
	}
	for _, c := range locations.top(topLocations) {
		loc := locationKeys[c.Name]
		loc.Hires = c.Hires
		p.Locations = append(p.Locations, loc)
	}
	return p, true
}

func shares(counts []Count, denominator int) []Share {
	out := make([]Share, 0, len(counts))
	for _, c := range counts {
		out = append(out, Share{Name: c.Name, Hires: c.Hires, Pct: fraction(c.Hires, denominator)})
	}
	return out
}

// fraction is hires/denominator rounded to 3 decimals, 0 for an empty denominator.
func fraction(hires, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return math.Round(float64(hires)/float64(denominator)*1000) / 1000
}

func classYearRange(years []int) ClassYearRange {
	if len(years) == 0 {
		return DefaultClassYears
	}
	sorted := append([]int(nil), years...)
	sort.Ints(sorted)

	r := ClassYearRange{
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Median: int(quantile(sorted, 0.5)),
	}
	if len(sorted) >= minPercentileSamples {
		r.Min = int(quantile(sorted, lowPercentile))
		r.Max = int(quantile(sorted, highPercentile))
	}
	return r
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []int, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return float64(sorted[lo])
	}
	frac := pos - float64(lo)
	return float64(sorted[lo]) + (float64(sorted[hi])-float64(sorted[lo]))*frac
}

// tally counts values in first-seen order. Blank values are ignored.
type tally struct {
	order  []string
	counts map[string]int
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	if _, ok := t.counts[value]; !ok {
		t.order = append(t.order, value)
	}
	t.counts[value]++
}

// top returns up to n entries by descending count; n <= 0 returns all.
func (t *tally) top(n int) []Count {
	out := make([]Count, 0, len(t.order))
	for _, value := range t.order {
		out = append(out, Count{Name: value, Hires: t.counts[value]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Hires > out[j].Hires })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
