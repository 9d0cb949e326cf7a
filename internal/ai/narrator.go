// Package ai holds the contract for generated shortlist narratives.
package ai

import (
	"context"

	"github.com/spigell/hiring-dna/internal/filtering"
	"github.com/spigell/hiring-dna/internal/profile"
	"github.com/spigell/hiring-dna/internal/requirements"
	"github.com/spigell/hiring-dna/internal/scoring"
)

// Brief is everything a narrator may read about one search.
type Brief struct {
	JobDescription string
	Requirements   requirements.Requirements
	Patterns       *profile.Patterns
	Funnel         filtering.Funnel
	Shortlist      []scoring.Result
}

// Assessment is the narrator's view of one shortlisted candidate.
type Assessment struct {
	Rank           int    `json:"rank"`
	Tier           string `json:"tier"`
	Name           string `json:"name"`
	CurrentFirm    string `json:"current_firm,omitempty"`
	PatternMatches string `json:"pattern_matches,omitempty"`
	Summary        string `json:"qualifications_summary"`
}

// Narrative is a recruiter briefing plus per-candidate assessments.
type Narrative struct {
	Summary    string       `json:"chat_summary"`
	Candidates []Assessment `json:"candidates"`
	Raw        string       `json:"-"`
}

type Narrator interface {
	Narrate(ctx context.Context, brief *Brief) (*Narrative, error)
}
