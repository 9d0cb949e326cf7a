package filtering

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/hiring-dna/internal/logger"
	"github.com/spigell/hiring-dna/internal/population"
	"github.com/spigell/hiring-dna/internal/requirements"
)

const (
	BucketPartner   = "partner"
	BucketCounsel   = "counsel"
	BucketAssociate = "associate"

	DefaultMinCriteria = 1
	DefaultMaxPool     = 300
	DefaultMinPool     = 20

	// tightCriteria is the soft-criteria count required when the pool is too large.
	tightCriteria = 2
	relaxedSpread = 2
	maxKeywords   = 10
	minWordLength = 3
)

var (
	titleBuckets = []struct {
		name   string
		titles map[string]struct{}
	}{
		{BucketPartner, set("partner", "managing partner", "office managing partner",
			"shareholder", "member", "principal", "director",
			"chair", "co-chair", "vice chair", "head", "co-head",
			"practice leader", "co-leader")},
		{BucketCounsel, set("counsel", "senior counsel", "special counsel", "of counsel")},
		{BucketAssociate, set("associate", "senior associate", "managing associate",
			"senior managing associate", "staff attorney", "attorney",
			"senior attorney", "project attorney", "discovery attorney",
			"foreign associate", "international associate",
			"career associate", "practice group associate")},
	}

	bucketSpread = map[string]int{
		BucketAssociate: 1,
		BucketCounsel:   3,
		BucketPartner:   3,
		"":              2,
	}

	listSeparators = regexp.MustCompile(`[,;/]+`)
)

// TitleBucket maps a title to partner, counsel or associate by exact membership.
// Unknown titles map to "".
func TitleBucket(title string) string {
	t := strings.ToLower(strings.TrimSpace(title))
	if t == "" {
		return ""
	}
	for _, bucket := range titleBuckets {
		if _, ok := bucket.titles[t]; ok {
			return bucket.name
		}
	}
	return ""
}

// SimilarOptions bound the similar-profile pool.
type SimilarOptions struct {
	MinCriteria int `mapstructure:"min-criteria"`
	MaxPool     int `mapstructure:"max-pool"`
	MinPool     int `mapstructure:"min-pool"`
}

func DefaultSimilarOptions() SimilarOptions {
	return SimilarOptions{MinCriteria: DefaultMinCriteria, MaxPool: DefaultMaxPool, MinPool: DefaultMinPool}
}

func (o SimilarOptions) withDefaults() SimilarOptions {
	d := DefaultSimilarOptions()
	if o.MinCriteria <= 0 {
		o.MinCriteria = d.MinCriteria
	}
	if o.MaxPool <= 0 {
		o.MaxPool = d.MaxPool
	}
	if o.MinPool < 0 {
		o.MinPool = d.MinPool
	}
	return o
}

// Prefilter narrows the population to candidates resembling a reference candidate.
type Prefilter struct {
	logger  *zap.Logger
	options SimilarOptions
}

func NewPrefilter(logger *zap.Logger, options SimilarOptions) *Prefilter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prefilter{logger: logger, options: options.withDefaults()}
}

// Similar returns at most MaxPool candidates that pass the hard filters around
// source and match at least MinCriteria soft criteria. A pool smaller than
// MinPool is retried once with a wider year window and without the city filter.
func (p *Prefilter) Similar(ctx context.Context, source *population.Candidate, pool *population.Candidates) (*population.Candidates, error) {
	return p.similar(ctx, source, pool, p.options.MinCriteria, false)
}

// HardSteps returns the must-match steps around source.
func HardSteps(source *population.Candidate, relaxed bool) []Filter {
	bucket := TitleBucket(source.Title)

	steps := []Filter{NewHasSummary(), NewNotSelf(source.ID)}
	if bucket != "" {
		steps = append(steps, newTitleBucket(bucket))
	}
	if year, ok := source.Year(); ok {
		spread := bucketSpread[bucket]
		if relaxed {
			spread += relaxedSpread
		}
		steps = append(steps, NewClassYear(&requirements.YearWindow{From: year - spread, To: year + spread}))
	}
	if !relaxed {
		steps = append(steps, NewCity(primaryCity(source.Location)))
	}
	return steps
}

func (p *Prefilter) similar(ctx context.Context, source *population.Candidate, pool *population.Candidates, minCriteria int, relaxed bool) (*population.Candidates, error) {
	hard, _, err := Run(ctx, Deps{Logger: p.logger}, HardSteps(source, relaxed), pool)
	if err != nil {
		return nil, err
	}

	criteria := softCriteria(source)
	if len(criteria) == 0 {
		return hard.Head(p.options.MaxPool), nil
	}

	counts := make(map[*population.Candidate]int, hard.Len())
	for _, c := range hard.Items {
		for _, matches := range criteria {
			if matches(c) {
				counts[c]++
			}
		}
	}
	atLeast := func(n int) *population.Candidates {
		return hard.Filter(func(c *population.Candidate) bool { return counts[c] >= n })
	}

	result := atLeast(minCriteria)
	p.logger.Info("soft criteria applied",
		zap.Int("criteria", len(criteria)),
		zap.Int("min_criteria", minCriteria),
		zap.Int("hard_pool", hard.Len()),
		zap.Int("left", result.Len()),
		zap.Bool("relaxed", relaxed),
	)

	switch {
	case result.Len() > p.options.MaxPool:
		if tighter := atLeast(tightCriteria); tighter.Len() > 0 {
			return tighter.Head(p.options.MaxPool), nil
		}
		return result.Head(p.options.MaxPool), nil
	case result.Len() < p.options.MinPool && !relaxed:
		p.logger.Info("relaxing similar-profile filters",
			append(logger.CandidateFields(source.ID, source.Name()),
				zap.Int("pool", result.Len()),
				zap.Int("min_pool", p.options.MinPool),
			)...,
		)
		return p.similar(ctx, source, pool, DefaultMinCriteria, true)
	default:
		return result, nil
	}
}

type criterion func(*population.Candidate) bool

// softCriteria builds one criterion per populated source field.
func softCriteria(source *population.Candidate) []criterion {
	criteria := make([]criterion, 0, 4)

	if practice := strings.ToLower(strings.TrimSpace(source.PracticeAreas)); practice != "" {
		criteria = append(criteria, func(c *population.Candidate) bool {
			return strings.ToLower(strings.TrimSpace(c.PracticeAreas)) == practice
		})
	}

	if words := listWords(source.Specialty, 0); len(words) > 0 {
		criteria = append(criteria, func(c *population.Candidate) bool {
			return containsAny(strings.ToLower(c.Specialty), words)
		})
	}

	if school := strings.ToLower(source.School()); school != "" {
		criteria = append(criteria, func(c *population.Candidate) bool {
			return strings.ToLower(c.School()) == school
		})
	}

	if words := listWords(source.AddedKeywords+" "+source.NLPSpecialties, maxKeywords); len(words) > 0 {
		criteria = append(criteria, func(c *population.Candidate) bool {
			return containsAny(c.KeywordText(), words)
		})
	}

	return criteria
}

// listWords splits a delimited list into distinct lowercase entries longer than
// two characters, in order of appearance. limit <= 0 keeps all.
func listWords(s string, limit int) []string {
	seen := make(map[string]struct{})
	words := make([]string, 0)
	for _, part := range listSeparators.Split(strings.ToLower(s), -1) {
		word := strings.TrimSpace(part)
		if utf8.RuneCountInString(word) < minWordLength {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		words = append(words, word)
		if limit > 0 && len(words) == limit {
			break
		}
	}
	return words
}

func containsAny(text string, words []string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

func primaryCity(location string) string {
	city, _, _ := strings.Cut(location, ",")
	return strings.TrimSpace(city)
}

func newTitleBucket(bucket string) Filter {
	return &predicateFilter{
		name:    TitleBucketStep,
		details: map[string]string{"bucket": bucket},
		keep: func(c *population.Candidate) bool {
			return TitleBucket(c.Title) == bucket
		},
	}
}

func set(values ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}
