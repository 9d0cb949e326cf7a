package population

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseYear(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		year  int
		ok    bool
	}{
		{name: "plain", input: "2015", year: 2015, ok: true},
		{name: "padded", input: "  2019 ", year: 2019, ok: true},
		{name: "float export", input: "2012.0", year: 2012, ok: true},
		{name: "blank", input: "   ", ok: false},
		{name: "garbage", input: "n/a", ok: false},
		{name: "nan", input: "NaN", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			year, ok := ParseYear(tt.input)
			if ok != tt.ok || year != tt.year {
				t.Fatalf("ParseYear(%q) = (%d, %v), want (%d, %v)", tt.input, year, ok, tt.year, tt.ok)
			}
		})
	}
}

func TestSplitTags(t *testing.T) {
	got := SplitTags(" Corporate, ,M&A ,Tax,")
	want := []string{"Corporate", "M&A", "Tax"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected tags (-want +got):\n%s", diff)
	}
}

func TestLoadCandidatesCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "attorneys.csv")
	data := "\ufeffid,first_name,last_name,firm_name,lawSchool,graduationYear,top_200,unknown_column\n" +
		"1,Ada,Lovelace,Ropes & Gray LLP,Harvard University,2015,TRUE,x\n" +
		"2,Alan,Turing,Goodwin Procter LLP,Yale University,,FALSE\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	candidates, err := LoadCandidates(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if candidates.Len() != 2 {
		t.Fatalf("expected 2 candidates, got %d", candidates.Len())
	}

	first := candidates.FindByID("1")
	if first == nil {
		t.Fatalf("candidate 1 not found (BOM header not stripped?)")
	}
	if first.Name() != "Ada Lovelace" || first.Firm != "Ropes & Gray LLP" || !first.IsTop200() {
		t.Fatalf("unexpected candidate: %+v", first)
	}
	if year, ok := first.Year(); !ok || year != 2015 {
		t.Fatalf("unexpected year: %d %v", year, ok)
	}

	second := candidates.FindByID("2")
	if _, ok := second.Year(); ok {
		t.Fatalf("blank year must be missing")
	}
	if second.IsTop200() {
		t.Fatalf("FALSE must not be a top-200 flag")
	}
}

func TestLoadHiringEventsJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.json")
	data := `[
		{"Firm": "Ropes & Gray LLP", "Class Year": 2016, "Law School": "Harvard University", "Previous Entity Type": "Law Firm", "City": null},
		{"Firm": "Goodwin Procter LLP", "Class Year": "2018"}
	]`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	events, err := LoadHiringEvents(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if events.Len() != 2 {
		t.Fatalf("expected 2 events, got %d", events.Len())
	}
	if events.Items[0].ClassYear != "2016" {
		t.Fatalf("numeric class year not decoded as text: %q", events.Items[0].ClassYear)
	}
	if !events.Items[0].FromLawFirm() || events.Items[1].FromLawFirm() {
		t.Fatalf("unexpected entity types: %+v", events.Items)
	}
	if diff := cmp.Diff([]string{"Ropes & Gray LLP", "Goodwin Procter LLP"}, events.Firms()); diff != "" {
		t.Fatalf("unexpected firms (-want +got):\n%s", diff)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	pop, err := Load("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pop.Candidates.Len() != 0 || pop.Events.Len() != 0 {
		t.Fatalf("expected empty population")
	}
}

func TestCandidatesExcludeDoesNotMutate(t *testing.T) {
	source := &Candidates{Items: []*Candidate{{ID: "1"}, {ID: "2"}, {ID: "3"}}}

	kept, excluded := source.Exclude(CandidateIDField, []string{"2", "9"})

	if diff := cmp.Diff([]string{"1", "3"}, kept.IDs()); diff != "" {
		t.Fatalf("unexpected kept ids (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"2"}, excluded); diff != "" {
		t.Fatalf("unexpected excluded ids (-want +got):\n%s", diff)
	}
	if source.Len() != 3 {
		t.Fatalf("source collection was modified")
	}
}

func TestExcludedCandidatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exclude.json")

	empty, err := GetExcludedCandidatesFromFile(path)
	if err != nil {
		t.Fatalf("missing file must be an empty list: %v", err)
	}

	pool := &Candidates{Items: []*Candidate{{ID: "7", FirstName: "Grace", LastName: "Hopper"}}}
	empty.Append(pool.ToExcluded())
	if err := empty.ToFile(path); err != nil {
		t.Fatalf("write exclude file: %v", err)
	}

	loaded, err := GetExcludedCandidatesFromFile(path)
	if err != nil {
		t.Fatalf("read exclude file: %v", err)
	}
	if diff := cmp.Diff([]string{"7"}, loaded.IDs()); diff != "" {
		t.Fatalf("unexpected ids (-want +got):\n%s", diff)
	}
	if loaded.Items[0].Name != "Grace Hopper" {
		t.Fatalf("unexpected name: %q", loaded.Items[0].Name)
	}
}
