package scoring

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spigell/hiring-dna/internal/profile"
)

// Explain fills keyword matches, pattern matches, the rationale sentence and the
// boomerang flag. It is meant for the shortlist only.
func Explain(r *Result, keywords []string, patterns *profile.Patterns, hiringFirm string) {
	c := r.Candidate
	text := newCandidateText(c)

	r.KeywordMatches = make([]string, 0)
	for _, kw := range keywords {
		if strings.Contains(text.combined, strings.ToLower(kw)) {
			r.KeywordMatches = append(r.KeywordMatches, kw)
		}
	}

	r.PatternMatches = make([]string, 0)
	if patterns != nil {
		school := c.School()
		for _, feeder := range patterns.FeederSchools {
			if school != "" && school == feeder {
				r.PatternMatches = append(r.PatternMatches, fmt.Sprintf("Feeder school (%s)", school))
				break
			}
		}
		for _, feeder := range patterns.FeederFirms {
			lower := strings.ToLower(feeder)
			if strings.Contains(text.prior, lower) || strings.Contains(text.firm, lower) {
				r.PatternMatches = append(r.PatternMatches, fmt.Sprintf("Feeder firm (%s)", feeder))
				break
			}
		}
		for _, spec := range patterns.TopSpecialties {
			if strings.Contains(text.specialty, strings.ToLower(spec)) {
				r.PatternMatches = append(r.PatternMatches, fmt.Sprintf("In-demand specialty (%s)", spec))
				break
			}
		}
	}

	if firm := strings.ToLower(strings.TrimSpace(hiringFirm)); firm != "" && strings.Contains(text.prior, firm) {
		r.Boomerang = true
	}

	r.Rationale = rationale(r)
}

func rationale(r *Result) string {
	contextual := r.Points(SubScoreContextual)
	practice := r.Points(SubScorePractice)
	credential := r.Points(SubScoreCredential)

	reasons := make([]string, 0, 4)
	switch {
	case contextual >= 35:
		reasons = append(reasons, "strong contextual match with JD")
	case contextual >= 20:
		reasons = append(reasons, "good contextual overlap with JD")
	default:
		reasons = append(reasons, "partial contextual match")
	}
	if len(r.PatternMatches) > 0 {
		reasons = append(reasons, strings.ToLower(strings.Join(r.PatternMatches, "; ")))
	}
	switch {
	case practice >= 8:
		reasons = append(reasons, "practice area closely matches")
	case practice >= 4:
		reasons = append(reasons, "related practice area")
	}
	if credential >= 5 {
		reasons = append(reasons, "strong credentials")
	}

	for i, reason := range reasons {
		reasons[i] = capitalize(reason)
	}
	return strings.Join(reasons, ". ") + "."
}

func capitalize(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(first)) + s[size:]
}
