// Package profile aggregates historical hiring events into per-firm hiring profiles.
package profile

import "strings"

// Share is a ranked item with its fraction of the profile's denominator.
type Share struct {
	Name  string  `json:"name"`
	Hires int     `json:"hires"`
	Pct   float64 `json:"pct"`
}

// Count is a ranked item without a fraction.
type Count struct {
	Name  string `json:"name"`
	Hires int    `json:"hires"`
}

type ClassYearRange struct {
	Min    int `json:"min"`
	Max    int `json:"max"`
	Median int `json:"median"`
}

// Contains reports whether year is inside [Min, Max].
func (r ClassYearRange) Contains(year int) bool {
	return year >= r.Min && year <= r.Max
}

type LocationCount struct {
	City  string `json:"city"`
	State string `json:"state,omitempty"`
	Hires int    `json:"hires"`
}

// Profile is the hiring DNA of one firm.
type Profile struct {
	Firm          string          `json:"firm_name"`
	TotalHires    int             `json:"total_hires"`
	FeederSchools []Share         `json:"feeder_schools"`
	FeederFirms   []Share         `json:"feeder_firms"`
	PracticeAreas []Share         `json:"practice_areas"`
	Specialties   []Count         `json:"specialties"`
	ClassYears    ClassYearRange  `json:"class_year_range"`
	Locations     []LocationCount `json:"hiring_locations"`
	Titles        []Count         `json:"title_distribution"`
}

// SchoolRank returns the zero-based rank of school among feeder schools.
func (p *Profile) SchoolRank(school string) (int, bool) {
	return rankOf(p.FeederSchools, school, false)
}

// FeederFirmRank returns the zero-based rank of firm among feeder firms, ignoring case.
func (p *Profile) FeederFirmRank(firm string) (int, bool) {
	return rankOf(p.FeederFirms, firm, true)
}

func rankOf(items []Share, name string, fold bool) (int, bool) {
	for i, item := range items {
		if item.Name == name || (fold && strings.EqualFold(item.Name, name)) {
			return i, true
		}
	}
	return 0, false
}
