package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/zap"

	"github.com/spigell/hiring-dna/internal/ai"
	"github.com/spigell/hiring-dna/internal/filtering"
	"github.com/spigell/hiring-dna/internal/population"
	"github.com/spigell/hiring-dna/internal/profile"
	"github.com/spigell/hiring-dna/internal/requirements"
	"github.com/spigell/hiring-dna/internal/scoring"
)

type stubGenerator struct {
	response   string
	err        error
	lastSystem string
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, system, prompt string) (string, error) {
	s.lastSystem = system
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func sampleBrief() *ai.Brief {
	return &ai.Brief{
		JobDescription: "Goodwin Procter seeks a corporate associate in Boston.",
		Requirements: requirements.Requirements{
			Locations:     []requirements.Location{{City: "Boston", State: "MA"}},
			Years:         &requirements.YearWindow{From: 2019, To: 2021},
			PracticeAreas: []string{"Corporate"},
		},
		Patterns: &profile.Patterns{
			MatchedFirm:   "Goodwin Procter LLP",
			TotalHires:    42,
			City:          "Boston",
			CityHires:     17,
			FeederSchools: []string{"Harvard University"},
			Cards:         []profile.Card{{Label: "#1 FEEDER SCHOOL", Detail: "Harvard University", Description: "5 of 17 hires (29%)"}},
		},
		Funnel: filtering.Funnel{Total: 1000, Filtered: 40, Matched: 12},
		Shortlist: []scoring.Result{{
			Candidate: &population.Candidate{
				FirstName: "Ada", LastName: "Lovelace", Firm: "Ropes & Gray LLP",
				LawSchool: "Harvard University", GraduationYear: "2020", Top200: "TRUE",
				Bio: strings.Repeat("b", bioMaxRunes+10),
			},
			Total:     71,
			Rationale: "Strong contextual match with JD.",
		}},
	}
}

func TestNarratorNarrate(t *testing.T) {
	stub := &stubGenerator{response: "```json\n" + `{
  "chat_summary": "Ada stands out.",
  "candidates": [
    {"rank": 1, "tier": "Tier 1+", "name": "Ada Lovelace", "current_firm": "Ropes & Gray LLP", "qualifications_summary": "Harvard feeder with corporate depth."},
    {"tier": "Tier 2", "name": "Alan Turing", "pattern_matches": ["school"]}
  ]
}` + "\n```"}

	narrative, err := NewNarrator(stub, zap.NewNop(), 0).Narrate(context.Background(), sampleBrief())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &ai.Narrative{
		Summary: "Ada stands out.",
		Candidates: []ai.Assessment{
			{Rank: 1, Tier: "Tier 1+", Name: "Ada Lovelace", CurrentFirm: "Ropes & Gray LLP", Summary: "Harvard feeder with corporate depth."},
			{Rank: 2, Tier: "Tier 2", Name: "Alan Turing", PatternMatches: `["school"]`},
		},
	}
	if diff := cmp.Diff(want, narrative, cmpopts.IgnoreFields(ai.Narrative{}, "Raw")); diff != "" {
		t.Fatalf("unexpected narrative (-want +got):\n%s", diff)
	}
	if narrative.Raw != stub.response {
		t.Fatalf("expected raw response to be kept")
	}

	if stub.lastSystem != systemPrompt {
		t.Fatalf("expected system prompt to be sent")
	}
	for _, fragment := range []string{
		"Goodwin Procter seeks a corporate associate in Boston.",
		"Attorneys: 1000, passed filters: 40, scored above threshold: 12",
		"Graduation years: 2019-2021",
		"Firm: Goodwin Procter LLP",
		"Hires in Boston: 17",
		"[#1 FEEDER SCHOOL] Harvard University - 5 of 17 hires (29%)",
		"Candidate Shortlist (1 candidates)",
		"--- Candidate 1 ---\n  Name: Ada Lovelace",
		"  Top200/V50: Top200",
		"  Bio: " + strings.Repeat("b", bioMaxRunes) + "...",
	} {
		if !strings.Contains(stub.lastPrompt, fragment) {
			t.Fatalf("prompt is missing %q:\n%s", fragment, stub.lastPrompt)
		}
	}
}

func TestNarratorWithoutPatterns(t *testing.T) {
	brief := sampleBrief()
	brief.Patterns = nil
	stub := &stubGenerator{response: `{"chat_summary": "ok", "candidates": []}`}

	if _, err := NewNarrator(stub, nil, 0).Narrate(context.Background(), brief); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stub.lastPrompt, "No firm-specific hiring history available.") {
		t.Fatalf("expected neutral patterns section")
	}
}

func TestNarratorErrors(t *testing.T) {
	generatorErr := errors.New("unavailable")

	tests := []struct {
		name  string
		stub  *stubGenerator
		brief *ai.Brief
	}{
		{name: "nil brief", stub: &stubGenerator{}, brief: nil},
		{name: "empty shortlist", stub: &stubGenerator{}, brief: &ai.Brief{}},
		{name: "generator failure", stub: &stubGenerator{err: generatorErr}, brief: sampleBrief()},
		{name: "invalid json", stub: &stubGenerator{response: "not json"}, brief: sampleBrief()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewNarrator(tt.stub, nil, 0).Narrate(context.Background(), tt.brief); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}```":       `{"a":1}`,
		"  {\"a\":1}  ":           `{"a":1}`,
	}
	for input, want := range cases {
		if got := extractJSON(input); got != want {
			t.Fatalf("extractJSON(%q) = %q, want %q", input, got, want)
		}
	}
}
