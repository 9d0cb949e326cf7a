package matching

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/spigell/hiring-dna/internal/filtering"
	"github.com/spigell/hiring-dna/internal/population"
	"github.com/spigell/hiring-dna/internal/profile"
	"github.com/spigell/hiring-dna/internal/scoring"
)

func resultsWithTiers(tiers ...scoring.Tier) []scoring.Result {
	results := make([]scoring.Result, 0, len(tiers))
	for i, tier := range tiers {
		results = append(results, scoring.Result{
			Candidate: &population.Candidate{FirstName: "Candidate", LastName: fmt.Sprint(i + 1)},
			Tier:      tier,
		})
	}
	return results
}

func TestTierSummaries(t *testing.T) {
	got := TierSummaries(resultsWithTiers(scoring.TierGood, scoring.TierStrong, scoring.TierGood))
	want := []TierSummary{
		{Tier: scoring.TierStrong, Label: "Tier 1 - Strong Fit", Count: 1, Names: []string{"Candidate 2"}},
		{Tier: scoring.TierGood, Label: "Tier 2 - Good Fit", Count: 2, Names: []string{"Candidate 1", "Candidate 3"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected summaries (-want +got):\n%s", diff)
	}
}

func TestQuickSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    SummaryInput
		contains []string
		excludes []string
	}{
		{
			name: "matched from a different name",
			input: SummaryInput{
				FirmQuery:  "goodwin",
				City:       "Boston / New York",
				Patterns:   &profile.Patterns{MatchedFirm: "Goodwin Procter LLP"},
				HiringFirm: "Goodwin Procter LLP",
				Funnel:     filtering.Funnel{Total: 53210, Filtered: 812, Matched: 40, ExcludedSameFirm: 7},
				Results:    resultsWithTiers(scoring.TierStrong, scoring.TierStrong, scoring.TierStrong, scoring.TierStrong, scoring.TierStrong, scoring.TierStrong),
			},
			contains: []string{
				`I analyzed your job description for Goodwin Procter LLP (matched from "goodwin") in Boston / New York.`,
				"From 53,210 attorneys, 812 passed initial filters and 40 scored above the match threshold. (7 current Goodwin Procter LLP attorneys excluded.)",
				"Showing the top 6 candidates (of 40 matches).",
				"Tier 1 - Strong Fit (6): Candidate 1, Candidate 2, Candidate 3, Candidate 4 + 2 more",
			},
			excludes: []string{"Note:", "no firm-specific"},
		},
		{
			name: "no firm and no results",
			input: SummaryInput{
				Funnel: filtering.Funnel{Total: 10, Filtered: 0},
			},
			contains: []string{
				"I analyzed your job description.",
				"No candidates matched with sufficient relevance.",
			},
			excludes: []string{"Tier"},
		},
		{
			name: "narrative failure without patterns",
			input: SummaryInput{
				FirmQuery:       "Unknown LLP",
				Funnel:          filtering.Funnel{Total: 3, Filtered: 2, Matched: 1},
				Results:         resultsWithTiers(scoring.TierPossible),
				NarrativeFailed: true,
			},
			contains: []string{
				"Note: AI analysis unavailable, showing keyword-based ranking.",
				"I analyzed your job description for Unknown LLP.",
				"Tier 3 - Possible Fit (1): Candidate 1",
				"no firm-specific hiring patterns applied",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := QuickSummary(tt.input)
			for _, fragment := range tt.contains {
				if !strings.Contains(got, fragment) {
					t.Fatalf("summary is missing %q:\n%s", fragment, got)
				}
			}
			for _, fragment := range tt.excludes {
				if strings.Contains(got, fragment) {
					t.Fatalf("summary must not contain %q:\n%s", fragment, got)
				}
			}
		})
	}
}
