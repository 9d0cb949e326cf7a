package population

import (
	"strings"
)

const (
	CandidateIDField     = "ID"
	CandidateFirmField   = "Firm"
	CandidateSchoolField = "School"
)

type Candidates struct {
	Items []*Candidate
}

// Candidate is one attorney record. The scoring code only reads it.
type Candidate struct {
	ID                string `mapstructure:"id" json:"id,omitempty"`
	FirstName         string `mapstructure:"first_name" json:"first_name,omitempty"`
	LastName          string `mapstructure:"last_name" json:"last_name,omitempty"`
	Firm              string `mapstructure:"firm_name" json:"firm_name,omitempty"`
	FirmType          string `mapstructure:"firm_type" json:"firm_type,omitempty"`
	Title             string `mapstructure:"title" json:"title,omitempty"`
	Location          string `mapstructure:"location" json:"location,omitempty"`
	LocationSecondary string `mapstructure:"location_secondary" json:"location_secondary,omitempty"`
	Summary           string `mapstructure:"summary" json:"summary,omitempty"`
	Bio               string `mapstructure:"attorneyBio" json:"attorney_bio,omitempty"`
	Matters           string `mapstructure:"matters" json:"matters,omitempty"`
	PracticeAreas     string `mapstructure:"practice_areas" json:"practice_areas,omitempty"`
	Specialty         string `mapstructure:"specialty" json:"specialty,omitempty"`
	AddedKeywords     string `mapstructure:"added_keywords" json:"added_keywords,omitempty"`
	NLPSpecialties    string `mapstructure:"nlp_specialties" json:"nlp_specialties,omitempty"`
	BarAdmissions     string `mapstructure:"barAdmissions" json:"bar_admissions,omitempty"`
	LawSchool         string `mapstructure:"lawSchool" json:"law_school,omitempty"`
	GraduationYear    string `mapstructure:"graduationYear" json:"graduation_year,omitempty"`
	Clerkships        string `mapstructure:"clerkships" json:"clerkships,omitempty"`
	PriorExperience   string `mapstructure:"prior_experience" json:"prior_experience,omitempty"`
	Acknowledgements  string `mapstructure:"raw_acknowledgements" json:"acknowledgements,omitempty"`
	Top200            string `mapstructure:"top_200" json:"top_200,omitempty"`
	Vault50           string `mapstructure:"vault_50" json:"vault_50,omitempty"`
}

// Name returns "first last" with surrounding blanks removed.
func (c *Candidate) Name() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Year returns the graduation year when it parses.
func (c *Candidate) Year() (int, bool) {
	return ParseYear(c.GraduationYear)
}

// School returns the trimmed law school.
func (c *Candidate) School() string {
	return strings.TrimSpace(c.LawSchool)
}

func (c *Candidate) IsTop200() bool { return strings.EqualFold(strings.TrimSpace(c.Top200), "true") }

func (c *Candidate) IsVault50() bool { return strings.EqualFold(strings.TrimSpace(c.Vault50), "true") }

func (c *Candidate) HasClerkship() bool { return strings.TrimSpace(c.Clerkships) != "" }

func (c *Candidate) HasAcknowledgements() bool { return strings.TrimSpace(c.Acknowledgements) != "" }

// ProfileText is the lowercased bio-like text: bio, summary, matters and keyword fields.
func (c *Candidate) ProfileText() string {
	return strings.ToLower(strings.Join([]string{
		c.Bio, c.Summary, c.Matters, c.AddedKeywords, c.NLPSpecialties,
	}, " "))
}

// SpecialtyText is the lowercased practice-area and specialty text.
func (c *Candidate) SpecialtyText() string {
	return strings.ToLower(c.PracticeAreas + " " + c.Specialty)
}

// KeywordText is the lowercased added keywords and NLP specialties.
func (c *Candidate) KeywordText() string {
	return strings.ToLower(c.AddedKeywords + " " + c.NLPSpecialties)
}

func (c *Candidate) GetStringField(name string) string {
	switch name {
	case CandidateIDField:
		return c.ID
	case CandidateFirmField:
		return c.Firm
	case CandidateSchoolField:
		return c.School()
	default:
		return ""
	}
}

func (c *Candidates) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

func (c *Candidates) FindByID(id string) *Candidate {
	for _, candidate := range c.Items {
		if candidate.ID == id {
			return candidate
		}
	}
	return nil
}

// Filter returns a new collection with the candidates accepted by keep, in order.
// The receiver is never modified.
func (c *Candidates) Filter(keep func(*Candidate) bool) *Candidates {
	out := &Candidates{Items: make([]*Candidate, 0, c.Len())}
	if c == nil {
		return out
	}
	for _, candidate := range c.Items {
		if keep(candidate) {
			out.Items = append(out.Items, candidate)
		}
	}
	return out
}

// Exclude returns a new collection without candidates whose field matches any target.
// The second value lists the IDs that were dropped.
func (c *Candidates) Exclude(name string, targets []string) (*Candidates, []string) {
	set := make(map[string]struct{}, len(targets))
	for _, target := range targets {
		set[target] = struct{}{}
	}

	var excluded []string
	kept := c.Filter(func(candidate *Candidate) bool {
		if _, ok := set[candidate.GetStringField(name)]; ok {
			excluded = append(excluded, candidate.ID)
			return false
		}
		return true
	})
	return kept, excluded
}

// Head returns at most n leading candidates.
func (c *Candidates) Head(n int) *Candidates {
	if c.Len() <= n {
		return c
	}
	return &Candidates{Items: c.Items[:n]}
}

func (c *Candidates) IDs() []string {
	ids := make([]string, 0, c.Len())
	for _, candidate := range c.Items {
		ids = append(ids, candidate.ID)
	}
	return ids
}
