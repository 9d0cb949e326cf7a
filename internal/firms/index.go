// Package firms resolves free-text firm names against the firms seen in hiring history.
package firms

import (
	"regexp"
	"strings"
)

const (
	// MatchThreshold is the minimum combined score for a match.
	MatchThreshold = 0.5

	forwardWeight  = 0.6
	backwardWeight = 0.4
)

var (
	separators = regexp.MustCompile(`[\s,&.]+`)

	noiseWords = map[string]struct{}{
		"llp": {}, "lp": {}, "llc": {}, "pc": {}, "plc": {}, "pllc": {}, "l.l.p.": {}, "p.c.": {},
		"and": {}, "&": {}, "the": {}, ",": {}, ".": {}, "of": {},
	}
)

// Words returns the significant lowercase words of a firm name.
func Words(name string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, token := range separators.Split(strings.ToLower(name), -1) {
		if token == "" {
			continue
		}
		if _, noise := noiseWords[token]; noise {
			continue
		}
		words[token] = struct{}{}
	}
	return words
}

// Match is the outcome of resolving a query.
type Match struct {
	Firm  string  `json:"firm"`
	Score float64 `json:"score"`
}

// TieBreaker decides whether challenger replaces incumbent when both score equally.
type TieBreaker func(incumbent, challenger string) bool

// FirstSeen keeps the earliest indexed firm on ties.
func FirstSeen(string, string) bool { return false }

type Option func(*Index)

// WithTieBreaker replaces the first-seen tie-break policy.
func WithTieBreaker(tb TieBreaker) Option {
	return func(i *Index) {
		if tb != nil {
			i.tieBreak = tb
		}
	}
}

// WithThreshold overrides the acceptance threshold.
func WithThreshold(threshold float64) Option {
	return func(i *Index) {
		if threshold > 0 {
			i.threshold = threshold
		}
	}
}

type entry struct {
	name  string
	words map[string]struct{}
}

// Index holds a word set per known firm in insertion order.
type Index struct {
	entries   []entry
	known     map[string]struct{}
	tieBreak  TieBreaker
	threshold float64
}

// NewIndex indexes firm names in the given order. Duplicates and blanks are skipped.
func NewIndex(names []string, opts ...Option) *Index {
	idx := &Index{
		known:     make(map[string]struct{}, len(names)),
		tieBreak:  FirstSeen,
		threshold: MatchThreshold,
	}
	for _, opt := range opts {
		opt(idx)
	}

	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if _, ok := idx.known[name]; ok {
			continue
		}
		idx.known[name] = struct{}{}
		idx.entries = append(idx.entries, entry{name: name, words: Words(name)})
	}
	return idx
}

// Len returns the number of indexed firms.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.entries)
}

// Names returns indexed firm names in index order.
func (i *Index) Names() []string {
	names := make([]string, 0, i.Len())
	if i == nil {
		return names
	}
	for _, e := range i.entries {
		names = append(names, e.name)
	}
	return names
}

// Score computes the bidirectional overlap score between query and firm word sets.
func Score(query, firm map[string]struct{}) float64 {
	if len(query) == 0 || len(firm) == 0 {
		return 0
	}
	common := 0
	for word := range query {
		if _, ok := firm[word]; ok {
			common++
		}
	}
	forward := float64(common) / float64(len(query))
	backward := float64(common) / float64(len(firm))
	return forwardWeight*forward + backwardWeight*backward
}

// Match resolves query to the best indexed firm. The second value is false when no
// firm reaches the threshold.
func (i *Index) Match(query string) (Match, bool) {
	if i == nil || len(i.entries) == 0 || strings.TrimSpace(query) == "" {
		return Match{}, false
	}

	words := Words(query)
	if len(words) == 0 {
		return Match{}, false
	}

	var best Match
	for _, e := range i.entries {
		if len(e.words) == 0 {
			continue
		}
		score := Score(words, e.words)
		switch {
		case score > best.Score:
			best = Match{Firm: e.name, Score: score}
		case score == best.Score && score > 0 && i.tieBreak(best.Firm, e.name):
			best = Match{Firm: e.name, Score: score}
		}
	}

	if best.Firm == "" || best.Score < i.threshold {
		return Match{}, false
	}
	return best, true
}
