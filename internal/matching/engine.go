// Package matching wires extraction, hiring profiles, filtering and scoring
// into the three searches the CLI exposes.
package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hiring-dna/internal/ai"
	"github.com/spigell/hiring-dna/internal/filtering"
	"github.com/spigell/hiring-dna/internal/logger"
	"github.com/spigell/hiring-dna/internal/population"
	"github.com/spigell/hiring-dna/internal/profile"
	"github.com/spigell/hiring-dna/internal/requirements"
	"github.com/spigell/hiring-dna/internal/schools"
	"github.com/spigell/hiring-dna/internal/scoring"
)

const (
	DefaultShortlist  = 15
	DefaultMaxResults = 25
)

var (
	ErrEmptyJobDescription = errors.New("job description is empty")
	ErrUnknownCandidate    = errors.New("unknown candidate")
)

// Engine answers searches over one loaded population.
type Engine struct {
	candidates *population.Candidates
	schools    *schools.Resolver
	profiles   *profile.Service
	extractor  *requirements.Extractor
	prefilter  *filtering.Prefilter
	narrator   ai.Narrator
	logger     *zap.Logger

	shortlist     int
	maxResults    int
	topCandidates int
	excludeFile   string
}

type config struct {
	logger         *zap.Logger
	narrator       ai.Narrator
	shortlist      int
	maxResults     int
	topCandidates  int
	excludeFile    string
	currentYear    int
	similar        filtering.SimilarOptions
	profileOptions []profile.Option
	schoolOptions  []schools.Option
}

type Option func(*config)

func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithNarrator enables generated narratives for searches that ask for them.
func WithNarrator(narrator ai.Narrator) Option {
	return func(c *config) {
		c.narrator = narrator
	}
}

// WithShortlist sets how many top results are handed to the narrator.
func WithShortlist(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.shortlist = n
		}
	}
}

func WithMaxResults(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxResults = n
		}
	}
}

func WithTopCandidates(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.topCandidates = n
		}
	}
}

// WithExcludeFile drops candidates listed in the file from every search.
func WithExcludeFile(path string) Option {
	return func(c *config) {
		c.excludeFile = strings.TrimSpace(path)
	}
}

func WithCurrentYear(year int) Option {
	return func(c *config) {
		c.currentYear = year
	}
}

func WithSimilarOptions(options filtering.SimilarOptions) Option {
	return func(c *config) {
		c.similar = options
	}
}

func WithProfileOptions(opts ...profile.Option) Option {
	return func(c *config) {
		c.profileOptions = append(c.profileOptions, opts...)
	}
}

func WithSchoolOptions(opts ...schools.Option) Option {
	return func(c *config) {
		c.schoolOptions = append(c.schoolOptions, opts...)
	}
}

// New builds the resolvers and the profile service for pop.
func New(pop *population.Population, opts ...Option) *Engine {
	cfg := &config{
		logger:        zap.NewNop(),
		shortlist:     DefaultShortlist,
		maxResults:    DefaultMaxResults,
		topCandidates: scoring.DefaultTopCandidates,
		similar:       filtering.DefaultSimilarOptions(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	candidates, events := &population.Candidates{}, &population.HiringEvents{}
	if pop != nil {
		if pop.Candidates != nil {
			candidates = pop.Candidates
		}
		if pop.Events != nil {
			events = pop.Events
		}
	}

	profileOptions := append([]profile.Option{profile.WithLogger(cfg.logger)}, cfg.profileOptions...)
	profiles := profile.NewService(events, profileOptions...)
	schoolResolver := schools.Build(candidates, cfg.schoolOptions...)

	var extractorOptions []requirements.Option
	if cfg.currentYear > 0 {
		extractorOptions = append(extractorOptions, requirements.WithCurrentYear(cfg.currentYear))
	}

	return &Engine{
		candidates:    candidates,
		schools:       schoolResolver,
		profiles:      profiles,
		extractor:     requirements.New(profiles.Index(), schoolResolver, extractorOptions...),
		prefilter:     filtering.NewPrefilter(cfg.logger, cfg.similar),
		narrator:      cfg.narrator,
		logger:        cfg.logger,
		shortlist:     cfg.shortlist,
		maxResults:    cfg.maxResults,
		topCandidates: cfg.topCandidates,
		excludeFile:   cfg.excludeFile,
	}
}

func (e *Engine) Candidates() *population.Candidates { return e.candidates }

func (e *Engine) Schools() *schools.Resolver { return e.schools }

func (e *Engine) Profiles() *profile.Service { return e.profiles }

func (e *Engine) Extractor() *requirements.Extractor { return e.extractor }

// FirmShortlist is the firm-DNA ranking for one profiled firm.
type FirmShortlist struct {
	Query   string           `json:"query"`
	Firm    string           `json:"firm"`
	Profile *profile.Profile `json:"profile"`
	Results []scoring.Result `json:"results"`
}

// TopCandidates ranks the whole population against the hiring profile of the
// firm name resolves to. The second value is false when no profiled firm matches.
func (e *Engine) TopCandidates(name string) (*FirmShortlist, bool) {
	firm, ok := e.profiles.Resolve(name)
	if !ok {
		e.logger.Info("no hiring profile for firm", logger.FirmFields(name, "")...)
		return nil, false
	}

	p, ok := e.profiles.Get(firm)
	if !ok {
		return nil, false
	}

	results := scoring.NewDNAScorer(p, scoring.WithLimit(e.topCandidates)).Rank(e.candidates)
	e.logger.Info("firm dna ranking",
		append(logger.FirmFields(name, firm),
			zap.Int("hires", p.TotalHires),
			zap.Int("results", len(results)),
		)...,
	)

	return &FirmShortlist{Query: name, Firm: firm, Profile: p, Results: results}, true
}

// SimilarResult is the pool of candidates resembling one reference candidate.
type SimilarResult struct {
	Source *population.Candidate  `json:"source"`
	Pool   *population.Candidates `json:"pool"`
}

// Similar prefilters the population around the candidate with the given id.
func (e *Engine) Similar(ctx context.Context, id string) (*SimilarResult, error) {
	source := e.candidates.FindByID(strings.TrimSpace(id))
	if source == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCandidate, id)
	}

	pool, err := e.prefilter.Similar(ctx, source, e.candidates)
	if err != nil {
		return nil, fmt.Errorf("similar profiles for %s: %w", id, err)
	}

	e.logger.Info("similar profiles",
		append(logger.CandidateFields(source.ID, source.Name()), zap.Int("pool", pool.Len()))...,
	)
	return &SimilarResult{Source: source, Pool: pool}, nil
}
