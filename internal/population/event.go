package population

import "strings"

// LawFirmEntity is the prior-entity type of a law-firm-to-law-firm move.
const LawFirmEntity = "Law Firm"

type HiringEvents struct {
	Items []*HiringEvent
}

// HiringEvent is one historical lateral move into Firm.
type HiringEvent struct {
	Firm               string `mapstructure:"Firm" json:"firm"`
	MovedFrom          string `mapstructure:"Moved From" json:"moved_from,omitempty"`
	PreviousEntityType string `mapstructure:"Previous Entity Type" json:"previous_entity_type,omitempty"`
	PracticeAreasOld   string `mapstructure:"Practice Areas Old" json:"practice_areas_old,omitempty"`
	PracticeAreasNew   string `mapstructure:"Practice Areas New" json:"practice_areas_new,omitempty"`
	SpecialtiesOld     string `mapstructure:"Specialties Old" json:"specialties_old,omitempty"`
	SpecialtiesNew     string `mapstructure:"Specialties New" json:"specialties_new,omitempty"`
	LawSchool          string `mapstructure:"Law School" json:"law_school,omitempty"`
	ClassYear          string `mapstructure:"Class Year" json:"class_year,omitempty"`
	DateHired          string `mapstructure:"Date Hired" json:"date_hired,omitempty"`
	Title              string `mapstructure:"Title" json:"title,omitempty"`
	City               string `mapstructure:"City" json:"city,omitempty"`
	State              string `mapstructure:"State" json:"state,omitempty"`
}

// FromLawFirm reports whether the hire moved from another law firm.
func (e *HiringEvent) FromLawFirm() bool {
	return strings.EqualFold(strings.TrimSpace(e.PreviousEntityType), LawFirmEntity)
}

func (e *HiringEvents) Len() int {
	if e == nil {
		return 0
	}
	return len(e.Items)
}

// Firms returns distinct hiring firm names in order of first appearance.
func (e *HiringEvents) Firms() []string {
	seen := make(map[string]struct{})
	firms := make([]string, 0)
	if e == nil {
		return firms
	}
	for _, event := range e.Items {
		if event.Firm == "" {
			continue
		}
		if _, ok := seen[event.Firm]; ok {
			continue
		}
		seen[event.Firm] = struct{}{}
		firms = append(firms, event.Firm)
	}
	return firms
}

// ByFirm groups events by hiring firm, preserving event order within each group.
func (e *HiringEvents) ByFirm() map[string][]*HiringEvent {
	groups := make(map[string][]*HiringEvent)
	if e == nil {
		return groups
	}
	for _, event := range e.Items {
		if event.Firm == "" {
			continue
		}
		groups[event.Firm] = append(groups[event.Firm], event)
	}
	return groups
}
