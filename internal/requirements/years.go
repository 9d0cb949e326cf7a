package requirements

import (
	"regexp"
	"sort"
	"strconv"
)

const (
	minExperienceYears = 1
	maxExperienceYears = 30
	// singleExperienceBand widens "N+ years" into a window of graduation years.
	singleExperienceBand = 3
	singleYearSpread     = 2
)

// YearWindow is an inclusive graduation-year range.
type YearWindow struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Contains reports whether year falls inside the window.
func (w *YearWindow) Contains(year int) bool {
	return w != nil && year >= w.From && year <= w.To
}

// YearRule derives a window from text relative to currentYear.
type YearRule struct {
	Name  string
	Apply func(text string, currentYear int) (YearWindow, bool)
}

var (
	classRange       = regexp.MustCompile(`(?i)class\s+(?:of\s+)?(?:years?\s+)?(\d{4})\s*[-–to]+\s*(\d{4})`)
	gradRange        = regexp.MustCompile(`(?i)(\d{4})\s*[-–to]+\s*(\d{4})\s*(?:class|grad)`)
	experienceRange  = regexp.MustCompile(`(?i)(\d{1,2})\s*[-–to]+\s*(\d{1,2})\s*(?:\+\s*)?years?\b`)
	experienceSingle = regexp.MustCompile(`(?i)(?:at\s+least|minimum|min\.?|over)?\s*(\d{1,2})\+?\s*years?\s+(?:of\s+)?(?:experience|practice)`)
	explicitYear     = regexp.MustCompile(`(?i)(?:class\s+(?:of\s+)?|graduat\w+\s+(?:in\s+)?)(\d{4})`)
)

// DefaultYearRules are tried in order; the first rule that fires wins.
func DefaultYearRules() []YearRule {
	return []YearRule{
		{Name: "class-range", Apply: ClassRange},
		{Name: "experience-range", Apply: ExperienceRange},
		{Name: "experience-single", Apply: ExperienceSingle},
		{Name: "explicit-years", Apply: ExplicitYears},
	}
}

// ClassRange handles "class of 2019-2022" and "2019 to 2022 grads".
func ClassRange(text string, _ int) (YearWindow, bool) {
	for _, re := range []*regexp.Regexp{classRange, gradRange} {
		if m := re.FindStringSubmatch(text); m != nil {
			return window(atoi(m[1]), atoi(m[2])), true
		}
	}
	return YearWindow{}, false
}

// ExperienceRange maps "N-M years" to graduation years currentYear-M..currentYear-N.
func ExperienceRange(text string, currentYear int) (YearWindow, bool) {
	m := experienceRange.FindStringSubmatch(text)
	if m == nil {
		return YearWindow{}, false
	}
	lo, hi := atoi(m[1]), atoi(m[2])
	if !plausibleExperience(lo) || !plausibleExperience(hi) {
		return YearWindow{}, false
	}
	return window(currentYear-hi, currentYear-lo), true
}

// ExperienceSingle maps "N+ years of experience" to a band ending at currentYear-N.
func ExperienceSingle(text string, currentYear int) (YearWindow, bool) {
	m := experienceSingle.FindStringSubmatch(text)
	if m == nil {
		return YearWindow{}, false
	}
	years := atoi(m[1])
	if !plausibleExperience(years) {
		return YearWindow{}, false
	}
	return YearWindow{From: currentYear - years - singleExperienceBand, To: currentYear - years}, true
}

// ExplicitYears uses "class of YYYY" or "graduated in YYYY" mentions: min..max
// for several, ±2 around a single one.
func ExplicitYears(text string, _ int) (YearWindow, bool) {
	matches := explicitYear.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return YearWindow{}, false
	}
	years := make([]int, 0, len(matches))
	for _, m := range matches {
		years = append(years, atoi(m[1]))
	}
	if len(years) == 1 {
		return YearWindow{From: years[0] - singleYearSpread, To: years[0] + singleYearSpread}, true
	}
	sort.Ints(years)
	return YearWindow{From: years[0], To: years[len(years)-1]}, true
}

// Years runs the year rule chain and returns nil when no rule fires.
func (e *Extractor) Years(text string) *YearWindow {
	for _, rule := range e.yearRules {
		if w, ok := rule.Apply(text, e.currentYear); ok {
			return &w
		}
	}
	return nil
}

func plausibleExperience(years int) bool {
	return years >= minExperienceYears && years <= maxExperienceYears
}

func window(a, b int) YearWindow {
	if a > b {
		a, b = b, a
	}
	return YearWindow{From: a, To: b}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
