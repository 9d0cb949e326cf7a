package filtering

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spigell/hiring-dna/internal/population"
	"github.com/spigell/hiring-dna/internal/requirements"
	"github.com/spigell/hiring-dna/internal/scoring"
)

const (
	ClassYearStep    = "class_year"
	LocationStep     = "location"
	PracticeAreaStep = "practice_area"
	SchoolStep       = "school"
	SeniorityStep    = "seniority"
	SameFirmStep     = "same_firm"
	ExcludeFileStep  = "exclude_file"
	HasSummaryStep   = "has_summary"
	NotSelfStep      = "not_self"
	TitleBucketStep  = "title_bucket"
	CityStep         = "city"
)

// counselPartnerBlocklist removes senior titles from associate searches even when
// the exact title list would accept them.
var counselPartnerBlocklist = []string{
	"counsel", "partner", "of counsel", "senior counsel",
	"special counsel", "shareholder", "member", "principal", "director",
	"chair", "co-chair", "vice chair", "head", "co-head",
}

// SearchSteps returns the pre-scoring chain for a job search. Steps without a
// requirement to enforce pass everything through.
func SearchSteps(req requirements.Requirements, hiringFirm, excludeFile string) []Filter {
	return []Filter{
		NewClassYear(req.Years),
		NewLocation(req.Cities()),
		NewPracticeArea(req.PracticeAreas),
		NewSchool(req.School),
		NewSeniority(req.Seniority),
		NewSameFirm(hiringFirm),
		NewExcludeFile(excludeFile),
	}
}

// toggle is embedded by filters to support Disable.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

// predicateFilter keeps candidates accepted by keep. A nil keep passes everything.
type predicateFilter struct {
	toggle
	name    string
	keep    func(*population.Candidate) bool
	details map[string]string
}

func (f *predicateFilter) Name() string { return f.name }

func (f *predicateFilter) Validate() error { return nil }

func (f *predicateFilter) Apply(_ context.Context, _ Deps, c *population.Candidates) (*population.Candidates, Step, error) {
	initial := c.Len()
	if f.keep == nil {
		return c, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	kept := c.Filter(f.keep)
	return kept, Step{Initial: initial, Dropped: initial - kept.Len(), Left: kept.Len()}, nil
}

func (f *predicateFilter) Status() Status {
	return Status{Name: f.name, Enabled: f.IsEnabled(), Reason: f.reason, Details: f.details}
}

type classYearFilter struct {
	predicateFilter
	window *requirements.YearWindow
}

// NewClassYear keeps candidates whose graduation year is inside window. Candidates
// without a parseable year are dropped.
func NewClassYear(window *requirements.YearWindow) Filter {
	f := &classYearFilter{predicateFilter: predicateFilter{name: ClassYearStep}, window: window}
	if window != nil {
		f.details = map[string]string{"from": strconv.Itoa(window.From), "to": strconv.Itoa(window.To)}
		f.keep = func(c *population.Candidate) bool {
			year, ok := c.Year()
			return ok && window.Contains(year)
		}
	}
	return f
}

func (f *classYearFilter) Validate() error {
	if f.window != nil && f.window.From > f.window.To {
		return fmt.Errorf("invalid class year window %d-%d", f.window.From, f.window.To)
	}
	return nil
}

// NewLocation keeps candidates whose primary or secondary location mentions any city.
func NewLocation(cities []string) Filter {
	f := &predicateFilter{name: LocationStep}
	lowered := lowerAll(cities)
	if len(lowered) == 0 {
		return f
	}
	f.details = map[string]string{"cities": strings.Join(cities, ",")}
	f.keep = func(c *population.Candidate) bool {
		primary := strings.ToLower(c.Location)
		secondary := strings.ToLower(c.LocationSecondary)
		for _, city := range lowered {
			if strings.Contains(primary, city) || strings.Contains(secondary, city) {
				return true
			}
		}
		return false
	}
	return f
}

// NewPracticeArea keeps candidates whose practice areas or specialty mention any area.
func NewPracticeArea(areas []string) Filter {
	f := &predicateFilter{name: PracticeAreaStep}
	lowered := lowerAll(areas)
	if len(lowered) == 0 {
		return f
	}
	f.details = map[string]string{"areas": strings.Join(areas, ",")}
	f.keep = func(c *population.Candidate) bool {
		practice := strings.ToLower(c.PracticeAreas)
		specialty := strings.ToLower(c.Specialty)
		for _, area := range lowered {
			if strings.Contains(practice, area) || strings.Contains(specialty, area) {
				return true
			}
		}
		return false
	}
	return f
}

// NewSchool keeps candidates from school, ignoring case.
func NewSchool(school string) Filter {
	f := &predicateFilter{name: SchoolStep}
	school = strings.TrimSpace(school)
	if school == "" {
		return f
	}
	f.details = map[string]string{"school": school}
	f.keep = func(c *population.Candidate) bool {
		return strings.EqualFold(c.School(), school)
	}
	return f
}

// NewSeniority keeps candidates whose title is one of the accepted titles. For
// associate searches, titles containing a counsel or partner term are dropped too.
func NewSeniority(seniority requirements.Seniority) Filter {
	f := &predicateFilter{name: SeniorityStep}
	if len(seniority.Titles) == 0 {
		return f
	}

	accepted := make(map[string]struct{}, len(seniority.Titles))
	for _, title := range seniority.Titles {
		accepted[strings.ToLower(title)] = struct{}{}
	}
	_, associate := accepted[string(requirements.LevelAssociate)]

	f.details = map[string]string{"level": string(seniority.Level), "titles": strconv.Itoa(len(accepted))}
	f.keep = func(c *population.Candidate) bool {
		title := strings.ToLower(strings.TrimSpace(c.Title))
		if _, ok := accepted[title]; !ok {
			return false
		}
		if associate {
			for _, blocked := range counselPartnerBlocklist {
				if strings.Contains(title, blocked) {
					return false
				}
			}
		}
		return true
	}
	return f
}

// NewSameFirm drops current employees of the hiring firm.
func NewSameFirm(firm string) Filter {
	f := &predicateFilter{name: SameFirmStep}
	firm = strings.TrimSpace(firm)
	if firm == "" {
		return f
	}
	f.details = map[string]string{"firm": firm}
	f.keep = func(c *population.Candidate) bool {
		return !scoring.EmployedAt(c.Firm, firm)
	}
	return f
}

// NewHasSummary keeps candidates with a non-blank summary.
func NewHasSummary() Filter {
	return &predicateFilter{
		name: HasSummaryStep,
		keep: func(c *population.Candidate) bool {
			return strings.TrimSpace(c.Summary) != ""
		},
	}
}

// NewNotSelf drops the candidate with the given id.
func NewNotSelf(id string) Filter {
	return &predicateFilter{
		name:    NotSelfStep,
		details: map[string]string{"id": id},
		keep: func(c *population.Candidate) bool {
			return c.ID != id
		},
	}
}

// NewCity keeps candidates whose primary location contains city.
func NewCity(city string) Filter {
	f := &predicateFilter{name: CityStep}
	city = strings.ToLower(strings.TrimSpace(city))
	if city == "" {
		return f
	}
	f.details = map[string]string{"city": city}
	f.keep = func(c *population.Candidate) bool {
		return strings.Contains(strings.ToLower(c.Location), city)
	}
	return f
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
