package matching

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hiring-dna/internal/ai"
	"github.com/spigell/hiring-dna/internal/filtering"
	"github.com/spigell/hiring-dna/internal/logger"
	"github.com/spigell/hiring-dna/internal/profile"
	"github.com/spigell/hiring-dna/internal/requirements"
	"github.com/spigell/hiring-dna/internal/scoring"
)

// SearchRequest is one job-description search.
type SearchRequest struct {
	JobDescription string
	// Firm skips firm extraction and resolves the hiring firm literally first.
	Firm         string
	SkipPatterns bool
	UseNarrator  bool
}

// SearchResult carries everything a caller needs to present a search.
type SearchResult struct {
	Requirements requirements.Requirements `json:"requirements"`
	FirmQuery    string                    `json:"firm_query,omitempty"`
	HiringFirm   string                    `json:"hiring_firm,omitempty"`
	Patterns     *profile.Patterns         `json:"hiring_patterns"`
	Steps        []filtering.StepReport    `json:"steps"`
	Funnel       filtering.Funnel          `json:"funnel"`
	Results      []scoring.Result          `json:"results"`
	Narrative    *ai.Narrative             `json:"narrative,omitempty"`
	Summary      string                    `json:"summary,omitempty"`
}

// Search extracts requirements from the job description, filters and scores the
// population and explains the shortlist. A narrative is generated when asked for
// and a narrator is configured; otherwise, or when it fails, a quick summary is built.
func (e *Engine) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	if strings.TrimSpace(req.JobDescription) == "" {
		return nil, ErrEmptyJobDescription
	}

	extracted := e.extractor.Extract(req.JobDescription)
	firmQuery := strings.TrimSpace(req.Firm)
	exact := firmQuery != ""
	if !exact && extracted.Firm != nil {
		// The profile service resolves the wording itself so the summary can
		// show what the description actually said.
		firmQuery = extracted.Firm.Text
	}

	patterns := &profile.Patterns{Cards: []profile.Card{}, FeederSchools: []string{}, FeederFirms: []string{}, TopSpecialties: []string{}}
	if req.SkipPatterns {
		firmQuery = ""
	} else {
		patterns = e.profiles.Patterns(firmQuery, extracted.Cities(), exact)
	}

	hiringFirm := patterns.MatchedFirm
	if hiringFirm == "" {
		hiringFirm = firmQuery
	}
	e.logger.Info("hiring firm", logger.MatchFields(firmQuery, patterns.MatchedFirm, patterns.MatchScore)...)

	steps := filtering.SearchSteps(extracted, hiringFirm, e.excludeFile)
	filtered, reports, err := filtering.Run(ctx, filtering.Deps{Logger: e.logger}, steps, e.candidates)
	if err != nil {
		return nil, err
	}

	scorer := scoring.NewJobScorer(extracted.Keywords, extracted.PracticeAreas, patterns)
	ranked := scorer.Rank(filtered)
	funnel := filtering.NewFunnel(e.candidates.Len(), reports, len(ranked))

	explained := ranked[:min(len(ranked), max(e.shortlist, e.maxResults))]
	for i := range explained {
		scoring.Explain(&explained[i], extracted.Keywords, patterns, hiringFirm)
	}

	e.logger.Info("search scored",
		zap.Int("total", funnel.Total),
		zap.Int("filtered", funnel.Filtered),
		zap.Int("matched", funnel.Matched),
		zap.Int("min_score", scorer.MinScore()),
	)

	result := &SearchResult{
		Requirements: extracted,
		FirmQuery:    firmQuery,
		HiringFirm:   hiringFirm,
		Patterns:     patterns,
		Steps:        reports,
		Funnel:       funnel,
	}

	narrativeFailed := false
	if req.UseNarrator && e.narrator != nil && len(explained) > 0 {
		shortlist := explained[:min(len(explained), e.shortlist)]
		narrative, err := e.narrator.Narrate(ctx, &ai.Brief{
			JobDescription: req.JobDescription,
			Requirements:   extracted,
			Patterns:       patterns,
			Funnel:         funnel,
			Shortlist:      shortlist,
		})
		if err == nil {
			result.Narrative = narrative
			result.Results = shortlist
			return result, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		e.logger.Warn("narrative generation failed, falling back to quick summary", zap.Error(err))
		narrativeFailed = true
	}

	result.Results = explained[:min(len(explained), e.maxResults)]
	result.Summary = QuickSummary(SummaryInput{
		FirmQuery:       firmQuery,
		City:            strings.Join(extracted.Cities(), " / "),
		Patterns:        patterns,
		HiringFirm:      hiringFirm,
		Funnel:          funnel,
		Results:         result.Results,
		NarrativeFailed: narrativeFailed,
	})
	return result, nil
}
