package profile

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hiring-dna/internal/firms"
	"github.com/spigell/hiring-dna/internal/population"
)

// Service owns the hiring history, the firm index and the profile cache.
type Service struct {
	groups     map[string][]*population.HiringEvent
	firms      []string
	eligible   []string
	index      *firms.Index
	aggregator *Aggregator
	cache      Cache
	logger     *zap.Logger
}

type Option func(*Service)

// WithCache replaces the default in-memory cache.
func WithCache(cache Cache) Option {
	return func(s *Service) {
		if cache != nil {
			s.cache = cache
		}
	}
}

func WithMinHires(minHires int) Option {
	return func(s *Service) {
		s.aggregator = NewAggregator(minHires)
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFirmOptions configures the firm index built from the hiring history.
func WithFirmOptions(opts ...firms.Option) Option {
	return func(s *Service) {
		s.index = firms.NewIndex(s.firms, opts...)
	}
}

func NewService(events *population.HiringEvents, opts ...Option) *Service {
	s := &Service{
		groups:     events.ByFirm(),
		firms:      events.Firms(),
		aggregator: NewAggregator(DefaultMinHires),
		cache:      NewMemoryCache(),
		logger:     zap.NewNop(),
	}
	s.index = firms.NewIndex(s.firms)

	for _, opt := range opts {
		opt(s)
	}

	for _, firm := range s.firms {
		if s.aggregator.Eligible(len(s.groups[firm])) {
			s.eligible = append(s.eligible, firm)
		}
	}
	sort.SliceStable(s.eligible, func(i, j int) bool {
		return len(s.groups[s.eligible[i]]) > len(s.groups[s.eligible[j]])
	})

	return s
}

// Index returns the firm identity index over every firm in the hiring history.
func (s *Service) Index() *firms.Index {
	return s.index
}

// Firms returns the firms that have a profile, most hires first.
func (s *Service) Firms() []string {
	return append([]string(nil), s.eligible...)
}

// Hires returns the number of historical hires of firm.
func (s *Service) Hires(firm string) int {
	return len(s.groups[firm])
}

// Get returns the profile of firm, computing and caching it on first use.
// The second value is false when the firm has too few hires.
func (s *Service) Get(firm string) (*Profile, bool) {
	if p, ok := s.cache.Get(firm); ok {
		return p, true
	}

	p, ok := s.aggregator.Aggregate(firm, s.groups[firm])
	if !ok {
		s.logger.Debug("no hiring profile", zap.String("firm", firm), zap.Int("hires", len(s.groups[firm])))
		return nil, false
	}

	s.cache.Put(firm, p)
	s.logger.Debug("hiring profile computed",
		zap.String("firm", firm),
		zap.Int("hires", p.TotalHires),
		zap.Int("feeder_schools", len(p.FeederSchools)),
		zap.Int("feeder_firms", len(p.FeederFirms)),
	)
	return p, true
}

// All returns every profile, most hires first.
func (s *Service) All() []*Profile {
	profiles := make([]*Profile, 0, len(s.eligible))
	for _, firm := range s.eligible {
		if p, ok := s.Get(firm); ok {
			profiles = append(profiles, p)
		}
	}
	return profiles
}

// Invalidate drops the cached profile of firm.
func (s *Service) Invalidate(firm string) {
	s.cache.Invalidate(firm)
}

// Resolve maps a firm name to a profiled firm: exact, then case-insensitive,
// then containment in either direction.
func (s *Service) Resolve(name string) (string, bool) {
	return resolveName(s.eligible, name)
}

// Match maps a firm name to any firm in the hiring history. With exact set the
// name is resolved literally first and fuzzy matching is the last resort.
func (s *Service) Match(name string, exact bool) (firms.Match, bool) {
	if strings.TrimSpace(name) == "" {
		return firms.Match{}, false
	}
	if exact {
		if firm, ok := resolveName(s.firms, name); ok {
			return firms.Match{Firm: firm, Score: 1}, true
		}
	}
	return s.index.Match(name)
}

func resolveName(candidates []string, name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	for _, firm := range candidates {
		if firm == name {
			return firm, true
		}
	}

	lower := strings.ToLower(name)
	for _, firm := range candidates {
		if strings.ToLower(firm) == lower {
			return firm, true
		}
	}
	for _, firm := range candidates {
		key := strings.ToLower(firm)
		if strings.Contains(key, lower) || strings.Contains(lower, key) {
			return firm, true
		}
	}
	return "", false
}
