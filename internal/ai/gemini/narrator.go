package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/hiring-dna/internal/ai"
	"github.com/spigell/hiring-dna/internal/profile"
	"github.com/spigell/hiring-dna/internal/scoring"
	"github.com/spigell/hiring-dna/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

//go:embed system.md
var systemPrompt string

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	bioMaxRunes         = 400
)

// Narrator asks Gemini to tier a shortlist and write a recruiter briefing.
type Narrator struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewNarrator(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Narrator {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Narrator{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (n *Narrator) Narrate(ctx context.Context, brief *ai.Brief) (*ai.Narrative, error) {
	if brief == nil {
		return nil, errors.New("brief is required")
	}
	if len(brief.Shortlist) == 0 {
		return nil, errors.New("shortlist is empty")
	}

	prompt := buildPrompt(brief)

	n.logger.Debug("gemini narrative request",
		zap.Int("candidates", len(brief.Shortlist)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, n.maxLogLen)),
	)

	raw, err := n.generator.GenerateContent(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	n.logger.Debug("gemini narrative response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, n.maxLogLen)),
	)

	narrative, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}
	narrative.Raw = raw
	return narrative, nil
}

func buildPrompt(brief *ai.Brief) string {
	blocks := make([]string, 0, len(brief.Shortlist))
	for i := range brief.Shortlist {
		blocks = append(blocks, fmt.Sprintf("--- Candidate %d ---\n%s", i+1, candidateBlock(&brief.Shortlist[i])))
	}

	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "{{JOB_DESCRIPTION}}\n\n{{SEARCH}}\n\n{{PATTERNS}}\n\n{{CANDIDATE_COUNT}}\n\n{{CANDIDATES}}"
	}
	return strings.NewReplacer(
		"{{JOB_DESCRIPTION}}", strings.TrimSpace(brief.JobDescription),
		"{{SEARCH}}", searchSummary(brief),
		"{{PATTERNS}}", patternsSummary(brief.Patterns),
		"{{CANDIDATE_COUNT}}", strconv.Itoa(len(brief.Shortlist)),
		"{{CANDIDATES}}", strings.Join(blocks, "\n\n"),
	).Replace(template)
}

func searchSummary(brief *ai.Brief) string {
	req := brief.Requirements
	lines := []string{
		fmt.Sprintf("Attorneys: %d, passed filters: %d, scored above threshold: %d",
			brief.Funnel.Total, brief.Funnel.Filtered, brief.Funnel.Matched),
	}
	if cities := req.Cities(); len(cities) > 0 {
		lines = append(lines, "Cities: "+strings.Join(cities, " / "))
	}
	if req.Years != nil {
		lines = append(lines, fmt.Sprintf("Graduation years: %d-%d", req.Years.From, req.Years.To))
	}
	if len(req.PracticeAreas) > 0 {
		lines = append(lines, "Practice areas: "+strings.Join(req.PracticeAreas, ", "))
	}
	if len(req.Bars) > 0 {
		lines = append(lines, "Required bars: "+strings.Join(req.Bars, ", "))
	}
	if len(req.Keywords) > 0 {
		lines = append(lines, "Keywords: "+strings.Join(req.Keywords, ", "))
	}
	return strings.Join(lines, "\n")
}

func patternsSummary(p *profile.Patterns) string {
	if !p.Matched() {
		return "No firm-specific hiring history available."
	}

	parts := []string{
		"Firm: " + p.MatchedFirm,
		fmt.Sprintf("Total hires in dataset: %d", p.TotalHires),
	}
	if p.City != "" {
		parts = append(parts, fmt.Sprintf("Hires in %s: %d", p.City, p.CityHires))
	}
	if len(p.FeederSchools) > 0 {
		parts = append(parts, "Top feeder schools: "+strings.Join(p.FeederSchools, ", "))
	}
	if len(p.FeederFirms) > 0 {
		parts = append(parts, "Top feeder firms: "+strings.Join(p.FeederFirms, ", "))
	}
	if len(p.TopSpecialties) > 0 {
		parts = append(parts, "Top prior specialties of hires: "+strings.Join(p.TopSpecialties, ", "))
	}
	if len(p.Cards) > 0 {
		parts = append(parts, "\nDetailed pattern cards:")
		for _, card := range p.Cards {
			parts = append(parts, fmt.Sprintf("  [%s] %s - %s", card.Label, card.Detail, card.Description))
		}
	}
	return strings.Join(parts, "\n")
}

func candidateBlock(r *scoring.Result) string {
	c := r.Candidate
	credentials := make([]string, 0, 2)
	if c.IsTop200() {
		credentials = append(credentials, "Top200")
	}
	if c.IsVault50() {
		credentials = append(credentials, "V50")
	}

	fields := []struct{ key, value string }{
		{"Name", c.Name()},
		{"Firm", c.Firm},
		{"Title", c.Title},
		{"Year", c.GraduationYear},
		{"School", c.School()},
		{"Bar", c.BarAdmissions},
		{"Practice", c.PracticeAreas},
		{"Specialties", c.Specialty},
		{"Location", c.Location},
		{"Prior", c.PriorExperience},
		{"Clerkships", c.Clerkships},
		{"Accolades", c.Acknowledgements},
		{"Top200/V50", strings.Join(credentials, "/")},
		{"Score", strconv.Itoa(r.Total)},
		{"Rationale", r.Rationale},
	}

	lines := make([]string, 0, len(fields)+1)
	for _, f := range fields {
		if v := strings.TrimSpace(f.value); v != "" {
			lines = append(lines, fmt.Sprintf("  %s: %s", f.key, v))
		}
	}
	if bio := strings.TrimSpace(c.Bio); bio != "" {
		lines = append(lines, "  Bio: "+utils.TruncateForLog(bio, bioMaxRunes))
	}
	return strings.Join(lines, "\n")
}

func parseResponse(raw string) (*ai.Narrative, error) {
	var data struct {
		Summary    any              `json:"chat_summary"`
		Candidates []map[string]any `json:"candidates"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	narrative := &ai.Narrative{
		Summary:    coerceString(data.Summary),
		Candidates: make([]ai.Assessment, 0, len(data.Candidates)),
	}
	for i, entry := range data.Candidates {
		rank := coerceFloat(entry["rank"])
		if math.IsNaN(rank) {
			rank = float64(i + 1)
		}
		narrative.Candidates = append(narrative.Candidates, ai.Assessment{
			Rank:           int(rank),
			Tier:           coerceString(entry["tier"]),
			Name:           coerceString(entry["name"]),
			CurrentFirm:    coerceString(entry["current_firm"]),
			PatternMatches: coerceString(entry["pattern_matches"]),
			Summary:        coerceString(entry["qualifications_summary"]),
		})
	}
	return narrative, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
