package scoring

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/spigell/hiring-dna/internal/population"
	"github.com/spigell/hiring-dna/internal/profile"
)

func alphaProfile() *profile.Profile {
	return &profile.Profile{
		Firm:       "Alpha LLP",
		TotalHires: 10,
		FeederSchools: []profile.Share{
			{Name: "Harvard University", Hires: 4},
			{Name: "Yale University", Hires: 3},
			{Name: "Columbia University", Hires: 2},
		},
		FeederFirms: []profile.Share{
			{Name: "Beta LLP", Hires: 3},
			{Name: "Gamma LLP", Hires: 2},
		},
		PracticeAreas: []profile.Share{
			{Name: "Corporate", Hires: 6},
			{Name: "Tax", Hires: 2},
		},
		Specialties: []profile.Count{
			{Name: "Fund Formation", Hires: 3},
			{Name: "Private Equity", Hires: 2},
			{Name: "Venture Capital", Hires: 1},
		},
		ClassYears: profile.ClassYearRange{Min: 2012, Max: 2018, Median: 2015},
		Locations:  []profile.LocationCount{{City: "Boston", State: "MA", Hires: 7}},
	}
}

func TestDNAScore(t *testing.T) {
	scorer := NewDNAScorer(alphaProfile())

	strong := &population.Candidate{
		ID:              "strong",
		LawSchool:       "Harvard University",
		Firm:            "Beta LLP",
		PriorExperience: "Gamma LLP; Alpha LLP",
		PracticeAreas:   "Corporate, Tax",
		Specialty:       "Fund Formation, Private Equity, Venture Capital",
		GraduationYear:  "2016",
		Location:        "Boston, MA",
	}

	got := scorer.Score(strong)
	wantSubs := []SubScore{
		{Name: SubScoreSchool, Points: 30, Max: 30},
		{Name: SubScoreFirm, Points: 25, Max: 25},
		{Name: SubScorePracticeArea, Points: 20, Max: 20},
		{Name: SubScoreSpecialty, Points: 15, Max: 15},
		{Name: SubScoreClassYear, Points: 5, Max: 5},
		{Name: SubScoreLocation, Points: 5, Max: 5},
		{Name: SubScoreBoomerang, Points: 10, Max: 10},
	}
	if diff := cmp.Diff(wantSubs, got.SubScores); diff != "" {
		t.Fatalf("unexpected sub-scores (-want +got):\n%s", diff)
	}
	if got.Total != 110 {
		t.Fatalf("expected total 110, got %d", got.Total)
	}
	wantReasons := []string{"#1 Feeder School", "#1 Feeder Firm", "Practice Area Match", "Specialty Match"}
	if diff := cmp.Diff(wantReasons, got.Reasons); diff != "" {
		t.Fatalf("unexpected reasons (-want +got):\n%s", diff)
	}

	exFeeder := &population.Candidate{
		ID:              "ex-feeder",
		LawSchool:       "Columbia University",
		Firm:            "Delta LLP",
		PriorExperience: "Associate, Gamma LLP",
		Location:        "New York",
	}
	got = scorer.Score(exFeeder)
	if got.Total != 22+9 {
		t.Fatalf("expected total 31, got %d (%+v)", got.Total, got.SubScores)
	}
	if diff := cmp.Diff([]string{"#3 Feeder School", "Ex-Feeder Firm"}, got.Reasons); diff != "" {
		t.Fatalf("unexpected reasons (-want +got):\n%s", diff)
	}
}

func TestDNAScoreExcludesCurrentEmployees(t *testing.T) {
	t.Parallel()

	scorer := NewDNAScorer(alphaProfile())

	for _, firm := range []string{"Alpha LLP", "alpha llp", "Alpha", "Alpha LLP (Boston)"} {
		c := &population.Candidate{
			ID:             firm,
			Firm:           firm,
			LawSchool:      "Harvard University",
			PracticeAreas:  "Corporate",
			GraduationYear: "2015",
			Location:       "Boston",
		}
		got := scorer.Score(c)
		if got.Total != 0 {
			t.Fatalf("current employee at %q scored %d", firm, got.Total)
		}
		sum := 0
		for _, s := range got.SubScores {
			sum += s.Points
		}
		if sum != got.Total {
			t.Fatalf("total %d differs from sub-score sum %d", got.Total, sum)
		}
	}
}

func TestDNAClassYearNearMedian(t *testing.T) {
	t.Parallel()

	p := alphaProfile()
	p.ClassYears = profile.ClassYearRange{Min: 2014, Max: 2015, Median: 2015}
	scorer := NewDNAScorer(p)

	tests := map[string]int{"2014": 5, "2017": 3, "2013": 3, "2018": 0, "": 0, "n/a": 0}
	for year, want := range tests {
		got := scorer.Score(&population.Candidate{GraduationYear: year})
		if points := got.Points(SubScoreClassYear); points != want {
			t.Fatalf("year %q: expected %d points, got %d", year, want, points)
		}
	}
}

func TestDNARank(t *testing.T) {
	candidates := &population.Candidates{Items: []*population.Candidate{
		{ID: "nothing", LawSchool: "Elsewhere"},
		{ID: "yale", LawSchool: "Yale University"},
		{ID: "employee", Firm: "Alpha LLP", LawSchool: "Harvard University"},
		{ID: "harvard", LawSchool: "Harvard University"},
		{ID: "yale-2", LawSchool: "Yale University"},
	}}

	got := NewDNAScorer(alphaProfile()).Rank(candidates)
	ids := make([]string, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.Candidate.ID)
	}
	if diff := cmp.Diff([]string{"harvard", "yale", "yale-2"}, ids); diff != "" {
		t.Fatalf("unexpected ranking (-want +got):\n%s", diff)
	}

	wantReasons := [][]string{{"#1 Feeder School"}, {"#2 Feeder School"}, {"#2 Feeder School"}}
	for i, r := range got {
		if diff := cmp.Diff(wantReasons[i], r.Reasons); diff != "" {
			t.Fatalf("%s: unexpected reasons (-want +got):\n%s", r.Candidate.ID, diff)
		}
	}

	limited := NewDNAScorer(alphaProfile(), WithLimit(1)).Rank(candidates)
	if len(limited) != 1 || limited[0].Candidate.ID != "harvard" {
		t.Fatalf("expected only the best candidate, got %d results", len(limited))
	}
	if diff := cmp.Diff([]string{"#1 Feeder School"}, limited[0].Reasons); diff != "" {
		t.Fatalf("truncated ranking must still be explained (-want +got):\n%s", diff)
	}
}

func TestContextualScoreIsMonotonic(t *testing.T) {
	t.Parallel()

	keywords := []string{"fund formation", "private equity", "tax", "litigation"}
	bios := []string{
		"",
		"fund formation",
		"fund formation and private equity",
		"fund formation, private equity and tax",
		"fund formation, private equity, tax and litigation",
	}

	for _, patterns := range []*profile.Patterns{nil, {MatchedFirm: "Alpha LLP"}} {
		scorer := NewJobScorer(keywords, nil, patterns)
		previous := -1
		for _, bio := range bios {
			r, _ := scorer.Score(&population.Candidate{Bio: bio})
			points := r.Points(SubScoreContextual)
			if points < previous {
				t.Fatalf("contextual score decreased from %d to %d at %q", previous, points, bio)
			}
			previous = points
		}
		if previous != scorer.Weights().Contextual {
			t.Fatalf("all keywords matched should reach %d, got %d", scorer.Weights().Contextual, previous)
		}
	}
}

func TestJobScoreWeights(t *testing.T) {
	t.Parallel()

	if got := NewJobScorer(nil, nil, nil).Weights(); got != OpenWeights {
		t.Fatalf("expected open weights, got %+v", got)
	}
	if got := NewJobScorer(nil, nil, &profile.Patterns{Query: "x"}).Weights(); got != OpenWeights {
		t.Fatalf("unmatched patterns should use open weights, got %+v", got)
	}
	if got := NewJobScorer(nil, nil, &profile.Patterns{MatchedFirm: "Alpha LLP"}).Weights(); got != FirmWeights {
		t.Fatalf("expected firm weights, got %+v", got)
	}

	for count, want := range map[int]int{0: 2, 1: 10, 2: 10, 3: 20, 7: 20} {
		if got := MinimumScore(count); got != want {
			t.Fatalf("MinimumScore(%d) = %d, want %d", count, got, want)
		}
	}
}

func TestJobScoreExcludesHiringFirmEmployees(t *testing.T) {
	t.Parallel()

	patterns := &profile.Patterns{MatchedFirm: "Ropes & Gray LLP", FeederSchools: []string{"Harvard University"}}
	scorer := NewJobScorer([]string{"fund formation"}, []string{"Corporate"}, patterns)

	tests := []struct {
		name string
		firm string
		kept bool
	}{
		{name: "exact firm", firm: "Ropes & Gray LLP"},
		{name: "different case", firm: "ropes & gray llp"},
		{name: "office suffix", firm: "Ropes & Gray LLP (Boston)"},
		{name: "other firm", firm: "Beta LLP", kept: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, kept := scorer.Score(&population.Candidate{
				Firm:          tt.firm,
				Bio:           "Fund formation counsel",
				PracticeAreas: "Corporate",
				LawSchool:     "Harvard University",
				Top200:        "TRUE",
			})
			if kept != tt.kept {
				t.Fatalf("expected kept=%v, got %v with total %d", tt.kept, kept, got.Total)
			}
			if tt.kept {
				return
			}
			if got.Total != 0 {
				t.Fatalf("current employee scored %d", got.Total)
			}
			for _, sub := range got.SubScores {
				if sub.Points != 0 {
					t.Fatalf("sub-score %s kept %d points", sub.Name, sub.Points)
				}
			}
		})
	}
}

func TestPracticeTermBoundaries(t *testing.T) {
	t.Parallel()

	scorer := NewJobScorer([]string{"tax"}, []string{"Tax"}, nil)

	exact, _ := scorer.Score(&population.Candidate{PracticeAreas: "Tax, Corporate"})
	if got := exact.Points(SubScorePractice); got != 22 {
		t.Fatalf("expected full practice points, got %d", got)
	}

	partial, _ := scorer.Score(&population.Candidate{PracticeAreas: "Taxation"})
	if got := partial.Points(SubScorePractice); got != 0 {
		t.Fatalf("term must match on separators, got %d", got)
	}
}

func TestJobRankAndExplain(t *testing.T) {
	patterns := &profile.Patterns{
		MatchedFirm:    "Alpha LLP",
		FeederFirms:    []string{"Beta LLP"},
		FeederSchools:  []string{"Harvard University"},
		TopSpecialties: []string{"Fund Formation"},
	}
	keywords := []string{"fund formation", "tax"}
	scorer := NewJobScorer(keywords, []string{"Tax"}, patterns)

	candidates := &population.Candidates{Items: []*population.Candidate{
		{ID: "empty"},
		{
			ID:              "star",
			Firm:            "Kappa LLP",
			Bio:             "Fund formation counsel",
			PracticeAreas:   "Tax",
			Specialty:       "Fund Formation",
			LawSchool:       "Harvard University",
			PriorExperience: "Beta LLP; Alpha LLP",
			Top200:          "TRUE",
			Vault50:         "true",
		},
	}}

	results := scorer.Rank(candidates)
	if len(results) != 1 {
		t.Fatalf("expected one retained candidate, got %d", len(results))
	}

	r := results[0]
	wantSubs := []SubScore{
		{Name: SubScoreContextual, Points: 50, Max: 50},
		{Name: SubScorePractice, Points: 14, Max: 14},
		{Name: SubScorePattern, Points: 28, Max: 28},
		{Name: SubScoreCredential, Points: 5, Max: 8},
	}
	if diff := cmp.Diff(wantSubs, r.SubScores); diff != "" {
		t.Fatalf("unexpected sub-scores (-want +got):\n%s", diff)
	}
	if r.Total != 97 || r.Tier != TierStrong {
		t.Fatalf("expected 97 in tier 1, got %d in tier %s", r.Total, r.Tier)
	}

	Explain(&r, keywords, patterns, "Alpha LLP")

	if diff := cmp.Diff(keywords, r.KeywordMatches); diff != "" {
		t.Fatalf("unexpected keyword matches (-want +got):\n%s", diff)
	}
	wantPatterns := []string{
		"Feeder school (Harvard University)",
		"Feeder firm (Beta LLP)",
		"In-demand specialty (Fund Formation)",
	}
	if diff := cmp.Diff(wantPatterns, r.PatternMatches); diff != "" {
		t.Fatalf("unexpected pattern matches (-want +got):\n%s", diff)
	}
	if !r.Boomerang {
		t.Fatalf("expected boomerang flag")
	}

	want := "Strong contextual match with JD. " +
		"Feeder school (harvard university); feeder firm (beta llp); in-demand specialty (fund formation). " +
		"Practice area closely matches. Strong credentials."
	if r.Rationale != want {
		t.Fatalf("unexpected rationale:\n got: %s\nwant: %s", r.Rationale, want)
	}
}

func TestTierLabel(t *testing.T) {
	t.Parallel()

	if TierStrong.Label() != "Tier 1 - Strong Fit" || Tier("").Label() != "" {
		t.Fatalf("unexpected tier labels")
	}
}
