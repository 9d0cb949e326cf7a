package requirements

import (
	"regexp"
	"strings"

	"github.com/spigell/hiring-dna/internal/firms"
)

const (
	// ContextualVerifyScore is the resolver score a contextual cue must reach.
	ContextualVerifyScore = 0.6
	maxWindowWords        = 4
)

// FirmMention is the firm name found in a job description.
type FirmMention struct {
	// Text is the fragment as written in the job description.
	Text string `json:"text"`
	// Canonical is the resolved hiring-history firm, empty when unresolved.
	Canonical string  `json:"canonical,omitempty"`
	Score     float64 `json:"score,omitempty"`
	Strategy  string  `json:"strategy"`
}

// FirmStrategy looks for a firm name in text. It reports false when it has nothing.
type FirmStrategy struct {
	Name  string
	Apply func(text string, index *firms.Index) (string, bool)
}

var (
	hiringCues = []*regexp.Regexp{
		regexp.MustCompile(`(?m)(?:hiring\s+for|position\s+at|role\s+at|opportunity\s+at|join|seeking\s+(?:a|an)\s+\w+\s+(?:for|at))\s+([A-Z][A-Za-z &,.']+?)(?:\.|,|\s+is\b|\s+in\b|\s+for\b|\s+has\b)`),
		regexp.MustCompile(`(?m)^([A-Z][A-Za-z &,.']+?)(?:\s+is\s+(?:hiring|seeking|looking|recruiting))`),
		regexp.MustCompile(`(?m)(?:about\s+(?:the\s+)?(?:firm|company|employer)[:\s]+)([A-Z][A-Za-z &,.']+)`),
	}

	suffixPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:hiring\s+for|position\s+at|role\s+at|opportunity\s+at|join)\s+([A-Z][A-Za-z &,.']+(?:LLP|LLC|PC|L\.L\.P\.|P\.C\.))`),
		regexp.MustCompile(`([\w &,.']+(?:LLP|LLC|PC|L\.L\.P\.|P\.C\.))`),
	}
)

// DefaultFirmStrategies is contextual cues, then corporate suffixes, then a sliding window.
func DefaultFirmStrategies() []FirmStrategy {
	return []FirmStrategy{
		{Name: "contextual", Apply: ContextualFirm},
		{Name: "suffix", Apply: SuffixFirm},
		{Name: "window", Apply: WindowFirm},
	}
}

// ContextualFirm matches hiring phrases such as "position at X" and keeps the
// fragment only when the resolver recognises it.
func ContextualFirm(text string, index *firms.Index) (string, bool) {
	for _, re := range hiringCues {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		fragment := strings.TrimRight(strings.TrimSpace(m[1]), ",.")
		if match, ok := index.Match(fragment); ok && match.Score >= ContextualVerifyScore {
			return fragment, true
		}
	}
	return "", false
}

// SuffixFirm returns the first fragment ending in a corporate suffix such as LLP.
func SuffixFirm(text string, _ *firms.Index) (string, bool) {
	for _, re := range suffixPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}
	return "", false
}

// WindowFirm slides 1 to 4 word windows over text and keeps the best resolver
// match. Earlier windows win ties.
func WindowFirm(text string, index *firms.Index) (string, bool) {
	if index.Len() == 0 {
		return "", false
	}

	words := strings.Fields(text)
	var (
		best      string
		bestScore float64
		bestPos   = len(words)
	)
	for size := 1; size <= maxWindowWords; size++ {
		for i := 0; i+size <= len(words); i++ {
			window := strings.Join(words[i:i+size], " ")
			match, ok := index.Match(window)
			if !ok {
				continue
			}
			if match.Score > bestScore || (match.Score == bestScore && i < bestPos) {
				best, bestScore, bestPos = window, match.Score, i
			}
		}
	}
	if best == "" || bestScore < firms.MatchThreshold {
		return "", false
	}
	return best, true
}

// Firm runs the firm strategy chain; the first strategy with a result wins.
func (e *Extractor) Firm(text string) *FirmMention {
	for _, strategy := range e.firmStrategies {
		fragment, ok := strategy.Apply(text, e.firms)
		if !ok || fragment == "" {
			continue
		}
		mention := &FirmMention{Text: fragment, Strategy: strategy.Name}
		if match, ok := e.firms.Match(fragment); ok {
			mention.Canonical = match.Firm
			mention.Score = match.Score
		}
		return mention
	}
	return nil
}
