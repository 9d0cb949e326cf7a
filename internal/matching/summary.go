package matching

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/spigell/hiring-dna/internal/filtering"
	"github.com/spigell/hiring-dna/internal/profile"
	"github.com/spigell/hiring-dna/internal/scoring"
)

const previewNames = 4

var tierOrder = []scoring.Tier{scoring.TierStrong, scoring.TierGood, scoring.TierPossible}

// TierSummary groups shown results of one tier.
type TierSummary struct {
	Tier  scoring.Tier `json:"tier"`
	Label string       `json:"title"`
	Count int          `json:"count"`
	Names []string     `json:"names"`
}

// TierSummaries groups results by tier, strongest first. Empty tiers are omitted.
func TierSummaries(results []scoring.Result) []TierSummary {
	byTier := make(map[scoring.Tier]*TierSummary, len(tierOrder))
	for _, r := range results {
		s, ok := byTier[r.Tier]
		if !ok {
			s = &TierSummary{Tier: r.Tier, Label: r.Tier.Label()}
			byTier[r.Tier] = s
		}
		s.Count++
		s.Names = append(s.Names, r.Candidate.Name())
	}

	summaries := make([]TierSummary, 0, len(byTier))
	for _, tier := range tierOrder {
		if s, ok := byTier[tier]; ok {
			summaries = append(summaries, *s)
		}
	}
	return summaries
}

// SummaryInput is what the quick summary describes.
type SummaryInput struct {
	FirmQuery       string
	City            string
	Patterns        *profile.Patterns
	HiringFirm      string
	Funnel          filtering.Funnel
	Results         []scoring.Result
	NarrativeFailed bool
}

// QuickSummary is the deterministic briefing used without a generated narrative.
func QuickSummary(in SummaryInput) string {
	printer := message.NewPrinter(language.English)
	parts := make([]string, 0, 8)

	if in.NarrativeFailed {
		parts = append(parts, "Note: AI analysis unavailable, showing keyword-based ranking.")
	}

	matched := ""
	if in.Patterns != nil {
		matched = in.Patterns.MatchedFirm
	}

	if in.FirmQuery != "" {
		display := in.FirmQuery
		if matched != "" {
			display = matched
		}
		intro := fmt.Sprintf("I analyzed your job description for %s", display)
		if matched != "" && !strings.EqualFold(matched, in.FirmQuery) {
			intro += fmt.Sprintf(" (matched from %q)", in.FirmQuery)
		}
		if in.City != "" {
			intro += " in " + in.City
		}
		parts = append(parts, intro+".")
	} else {
		parts = append(parts, "I analyzed your job description.")
	}

	note := printer.Sprintf("From %d attorneys, %d passed initial filters and %d scored above the match threshold.",
		in.Funnel.Total, in.Funnel.Filtered, in.Funnel.Matched)
	if n := in.Funnel.ExcludedSameFirm; n > 0 {
		noun := "attorneys"
		if n == 1 {
			noun = "attorney"
		}
		note += fmt.Sprintf(" (%d current %s %s excluded.)", n, in.HiringFirm, noun)
	}
	parts = append(parts, note)

	if len(in.Results) == 0 {
		parts = append(parts, "No candidates matched with sufficient relevance. "+
			"Try broadening the graduation year range or practice area.")
		return strings.Join(parts, "\n\n")
	}

	if shown := len(in.Results); in.Funnel.Matched > shown {
		parts = append(parts, fmt.Sprintf("Showing the top %d candidates (of %d matches).", shown, in.Funnel.Matched))
	}

	for _, s := range TierSummaries(in.Results) {
		preview := strings.Join(s.Names[:min(len(s.Names), previewNames)], ", ")
		if s.Count > previewNames {
			preview += fmt.Sprintf(" + %d more", s.Count-previewNames)
		}
		parts = append(parts, fmt.Sprintf("\n%s (%d): %s", s.Label, s.Count, preview))
	}

	switch {
	case in.Patterns != nil && len(in.Patterns.Cards) > 0:
		parts = append(parts, fmt.Sprintf("\nI also identified %d hiring patterns from the firm's lateral history.", len(in.Patterns.Cards)))
	case matched == "" && in.Funnel.ExcludedSameFirm == 0:
		parts = append(parts, "\nScoring is based on practice area relevance and credentials "+
			"(no firm-specific hiring patterns applied).")
	}

	return strings.Join(parts, "\n\n")
}
