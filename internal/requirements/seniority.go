package requirements

import (
	"regexp"
	"strings"
)

// Level is the seniority a job description asks for.
type Level string

const (
	LevelAny       Level = ""
	LevelAssociate Level = "associate"
	LevelPartner   Level = "partner"
)

// Seniority is the detected level and the candidate titles it accepts.
// An empty Titles list means no title filtering.
type Seniority struct {
	Level  Level    `json:"level,omitempty"`
	Titles []string `json:"titles,omitempty"`
}

var (
	// AssociateTitles are accepted titles for associate-level searches.
	AssociateTitles = []string{
		"associate", "senior associate", "managing associate",
		"senior managing associate", "staff attorney", "attorney",
		"senior attorney", "project attorney", "discovery attorney",
		"senior staff attorney", "senior discovery attorney",
		"foreign associate", "international associate",
		"career associate", "senior career associate",
		"practice group associate", "practice area associate",
		"foreign associate attorney",
	}

	// PartnerCounselTitles are accepted titles for partner and counsel searches.
	PartnerCounselTitles = []string{
		"partner", "managing partner", "office managing partner",
		"of counsel", "counsel", "senior counsel",
		"special counsel", "member", "shareholder", "principal",
		"co-chair", "chair", "vice chair", "director",
		"co-head", "head", "practice leader", "co-leader",
	}

	partnerSignals   = signalPatterns("income partner", "non-equity partner", "equity partner", "of counsel", "counsel-level", "partner")
	associateSignals = signalPatterns("senior associate", "junior associate", "mid-level associate", "midlevel associate", "senior-level associate", "associate")

	// References to people already at the firm, e.g. "work with our partners".
	partnerReference   = regexp.MustCompile(`\b(?:our|the|with|alongside|by)\s+(?:\w+\s+){0,2}partners?\b`)
	associateReference = regexp.MustCompile(`\b(?:our|the|with|alongside|by)\s+(?:\w+\s+){0,2}associates?\b`)
)

func signalPatterns(signals ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(signals))
	for _, s := range signals {
		patterns = append(patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(s)+`s?\b`))
	}
	return patterns
}

// DetectSeniority decides between associate and partner/counsel vocabulary.
// When both appear, referential mentions are discounted and a level must
// appear at least twice as often as the other to win; otherwise no filter applies.
func DetectSeniority(text string) Seniority {
	lower := strings.ToLower(text)

	partner := anyMatch(partnerSignals, lower)
	associate := anyMatch(associateSignals, lower)

	if partner && associate {
		partnerTitles := max(0, countMatches(partnerSignals, lower)-len(partnerReference.FindAllStringIndex(lower, -1)))
		associateTitles := max(0, countMatches(associateSignals, lower)-len(associateReference.FindAllStringIndex(lower, -1)))

		switch {
		case associateTitles > 0 && partnerTitles == 0:
			partner = false
		case partnerTitles > 0 && associateTitles == 0:
			associate = false
		case associateTitles >= partnerTitles*2:
			partner = false
		case partnerTitles >= associateTitles*2:
			associate = false
		default:
			return Seniority{}
		}
	}

	switch {
	case associate:
		return Seniority{Level: LevelAssociate, Titles: append([]string(nil), AssociateTitles...)}
	case partner:
		return Seniority{Level: LevelPartner, Titles: append([]string(nil), PartnerCounselTitles...)}
	default:
		return Seniority{}
	}
}

func anyMatch(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func countMatches(patterns []*regexp.Regexp, text string) int {
	total := 0
	for _, re := range patterns {
		total += len(re.FindAllStringIndex(text, -1))
	}
	return total
}
