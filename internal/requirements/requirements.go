// Package requirements turns free-form job-description text into a structured
// requirement set. Every extractor degrades to an empty value on unrecognised input.
package requirements

import (
	"time"

	"github.com/spigell/hiring-dna/internal/firms"
	"github.com/spigell/hiring-dna/internal/schools"
)

// Requirements is the structured form of one job description.
type Requirements struct {
	Firm          *FirmMention `json:"firm,omitempty"`
	Locations     []Location   `json:"locations,omitempty"`
	Years         *YearWindow  `json:"years,omitempty"`
	Seniority     Seniority    `json:"seniority"`
	PracticeAreas []string     `json:"practice_areas,omitempty"`
	Bars          []string     `json:"bars,omitempty"`
	Keywords      []string     `json:"keywords,omitempty"`
	School        string       `json:"school,omitempty"`
}

// Cities returns the location cities in extraction order.
func (r *Requirements) Cities() []string {
	cities := make([]string, 0, len(r.Locations))
	for _, loc := range r.Locations {
		cities = append(cities, loc.City)
	}
	return cities
}

// State returns the state of the first location, if any.
func (r *Requirements) State() string {
	if len(r.Locations) == 0 {
		return ""
	}
	return r.Locations[0].State
}

// FirmText returns the raw firm mention or an empty string.
func (r *Requirements) FirmText() string {
	if r.Firm == nil {
		return ""
	}
	return r.Firm.Text
}

type Option func(*Extractor)

// WithCurrentYear pins the reference year used for experience windows.
func WithCurrentYear(year int) Option {
	return func(e *Extractor) {
		if year > 0 {
			e.currentYear = year
		}
	}
}

// WithFirmStrategies replaces the firm-name strategy chain.
func WithFirmStrategies(strategies ...FirmStrategy) Option {
	return func(e *Extractor) {
		e.firmStrategies = strategies
	}
}

// WithYearRules replaces the class-year rule chain.
func WithYearRules(rules ...YearRule) Option {
	return func(e *Extractor) {
		e.yearRules = rules
	}
}

// Extractor holds the resolvers the text extractors delegate to.
type Extractor struct {
	firms          *firms.Index
	schools        *schools.Resolver
	currentYear    int
	firmStrategies []FirmStrategy
	yearRules      []YearRule
}

// New returns an Extractor. Either resolver may be nil; the dependent fields stay empty.
func New(firmIndex *firms.Index, schoolResolver *schools.Resolver, opts ...Option) *Extractor {
	e := &Extractor{
		firms:          firmIndex,
		schools:        schoolResolver,
		currentYear:    time.Now().Year(),
		firmStrategies: DefaultFirmStrategies(),
		yearRules:      DefaultYearRules(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CurrentYear returns the reference year.
func (e *Extractor) CurrentYear() int {
	return e.currentYear
}

// Extract parses text into Requirements.
func (e *Extractor) Extract(text string) Requirements {
	return Requirements{
		Firm:          e.Firm(text),
		Locations:     Locations(text),
		Years:         e.Years(text),
		Seniority:     DetectSeniority(text),
		PracticeAreas: PracticeAreas(text),
		Bars:          Bars(text),
		Keywords:      Keywords(text),
		School:        e.schools.Resolve(text),
	}
}
