// Package schools derives a law-school alias dictionary from the candidate population and
// resolves free-text mentions of a school to its canonical name.
package schools

import (
	"regexp"
	"sort"
	"strings"

	"github.com/spigell/hiring-dna/internal/population"
)

const minAliasLength = 4

// manualAbbreviations cannot be derived from school names. They are applied only when the
// canonical school exists in the population and always win over derived aliases.
var manualAbbreviations = map[string]string{
	"hls":         "Harvard University",
	"yls":         "Yale University",
	"sls":         "Stanford University",
	"nyu":         "New York University",
	"nyu law":     "New York University",
	"uchicago":    "University of Chicago",
	"upenn":       "University of Pennsylvania",
	"penn":        "University of Pennsylvania",
	"penn law":    "University of Pennsylvania",
	"uva":         "University of Virginia",
	"uva law":     "University of Virginia",
	"umich":       "University of Michigan",
	"gulc":        "Georgetown University",
	"gwu":         "George Washington University",
	"gw":          "George Washington University",
	"bc law":      "Boston College",
	"bu law":      "Boston University",
	"boalt":       "University of California Berkeley",
	"uc berkeley": "University of California Berkeley",
	"berkeley":    "University of California Berkeley",
	"ucla":        "University of California Los Angeles",
	"uc davis":    "University of California Davis",
	"uci":         "University of California Irvine",
	"usc":         "University of Southern California",
	"ut law":      "University of Texas",
	"usf":         "University of San Francisco",
	"unc":         "University of North Carolina",
}

// stopWords are generic or geographic terms that never make a usable alias on their own.
var stopWords = map[string]struct{}{
	"law": {}, "school": {}, "university": {}, "college": {}, "institute": {}, "center": {},
	"the": {}, "of": {}, "and": {}, "at": {}, "in": {}, "for": {}, "de": {}, "del": {},
	"new": {}, "york": {}, "san": {}, "los": {}, "saint": {}, "south": {}, "north": {}, "west": {}, "east": {},
	"national": {}, "international": {}, "american": {}, "catholic": {}, "central": {}, "western": {},
	"southern": {}, "northern": {}, "eastern": {}, "pacific": {}, "atlantic": {}, "royal": {},
}

var (
	universityOf = regexp.MustCompile(`^University of (.+)`)
	andWord      = regexp.MustCompile(`\band\b`)
)

// School is a distinct school with its population count.
type School struct {
	Name  string
	Count int
}

// CollisionPolicy picks the canonical school for an alias claimed by several schools.
// Options arrive ordered by descending count, ties in population order.
type CollisionPolicy func(alias string, options []School) string

// MostCandidates awards a contested alias to the school with the most candidates.
func MostCandidates(_ string, options []School) string {
	return options[0].Name
}

type Option func(*builder)

// WithCollisionPolicy replaces the default majority-vote collision policy.
func WithCollisionPolicy(policy CollisionPolicy) Option {
	return func(b *builder) {
		if policy != nil {
			b.policy = policy
		}
	}
}

// WithManualAbbreviations replaces the built-in abbreviation table.
func WithManualAbbreviations(table map[string]string) Option {
	return func(b *builder) {
		b.manual = table
	}
}

type builder struct {
	policy     CollisionPolicy
	manual     map[string]string
	candidates map[string][]School
	order      []string
}

type alias struct {
	key       string
	canonical string
	pattern   *regexp.Regexp
}

// Resolver maps free text to a canonical school name.
type Resolver struct {
	aliases []alias
	lookup  map[string]string
}

// Build derives the alias dictionary from the candidates' school field.
func Build(candidates *population.Candidates, opts ...Option) *Resolver {
	b := &builder{
		policy:     MostCandidates,
		manual:     manualAbbreviations,
		candidates: make(map[string][]School),
	}
	for _, opt := range opts {
		opt(b)
	}

	counts := CountSchools(candidates)
	present := make(map[string]struct{}, len(counts))
	for _, school := range counts {
		present[school.Name] = struct{}{}
		for _, key := range Aliases(school.Name) {
			b.add(key, school)
		}
	}

	lookup := make(map[string]string, len(b.candidates)+len(b.manual))
	for _, key := range b.order {
		lookup[key] = b.policy(key, b.candidates[key])
	}
	for abbrev, canonical := range b.manual {
		if _, ok := present[canonical]; ok {
			lookup[strings.ToLower(abbrev)] = canonical
		}
	}

	return newResolver(lookup)
}

func newResolver(lookup map[string]string) *Resolver {
	keys := make([]string, 0, len(lookup))
	for key := range lookup {
		keys = append(keys, key)
	}
	// longest first so "boston college" wins over "boston"
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	r := &Resolver{lookup: lookup, aliases: make([]alias, 0, len(keys))}
	for _, key := range keys {
		r.aliases = append(r.aliases, alias{
			key:       key,
			canonical: lookup[key],
			pattern:   regexp.MustCompile(`\b` + regexp.QuoteMeta(key) + `\b`),
		})
	}
	return r
}

func (b *builder) add(key string, school School) {
	key = strings.ToLower(strings.TrimSpace(key))
	if len(key) < minAliasLength || onlyStopWords(key) {
		return
	}
	if _, ok := b.candidates[key]; !ok {
		b.order = append(b.order, key)
	}
	b.candidates[key] = append(b.candidates[key], school)
}

func onlyStopWords(key string) bool {
	for _, word := range strings.Fields(key) {
		if _, ok := stopWords[word]; !ok {
			return false
		}
	}
	return true
}

// Aliases lists the raw alias candidates for one school name, before filtering.
func Aliases(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	aliases := []string{name}
	withLaw := func(short string) {
		aliases = append(aliases, short, short+" law")
	}

	for _, suffix := range []string{" University", " Law School", " College"} {
		if strings.HasSuffix(name, suffix) {
			withLaw(strings.TrimSuffix(name, suffix))
		}
	}
	if strings.Contains(name, "School of Law") {
		withLaw(strings.TrimSpace(strings.ReplaceAll(name, " School of Law", "")))
	}
	if m := universityOf.FindStringSubmatch(name); m != nil {
		short := strings.TrimSpace(m[1])
		// "University of California, Berkeley" is also known as "Berkeley"
		if idx := strings.LastIndex(short, ","); idx != -1 {
			aliases = append(aliases, strings.TrimSpace(short[idx+1:]))
		}
		withLaw(short)
	}
	if strings.Contains(name, "College of Law") {
		aliases = append(aliases, strings.TrimSpace(strings.ReplaceAll(name, " College of Law", "")))
	}
	if strings.HasSuffix(name, " Law") {
		aliases = append(aliases, strings.TrimSuffix(name, " Law"))
	}
	return aliases
}

// CountSchools counts candidates per non-empty school, ordered by count descending
// with ties kept in first-seen order.
func CountSchools(candidates *population.Candidates) []School {
	index := make(map[string]int)
	var schools []School
	if candidates != nil {
		for _, candidate := range candidates.Items {
			name := candidate.School()
			if name == "" {
				continue
			}
			if i, ok := index[name]; ok {
				schools[i].Count++
				continue
			}
			index[name] = len(schools)
			schools = append(schools, School{Name: name, Count: 1})
		}
	}
	sort.SliceStable(schools, func(i, j int) bool { return schools[i].Count > schools[j].Count })
	return schools
}

// Resolve returns the canonical school mentioned in text, or "" when none is found.
// "&" and "and" are interchangeable.
func (r *Resolver) Resolve(text string) string {
	if r == nil || len(r.aliases) == 0 {
		return ""
	}

	lower := strings.ToLower(text)
	variants := []string{
		lower,
		strings.ReplaceAll(lower, "&", "and"),
		andWord.ReplaceAllString(lower, "&"),
	}

	for _, a := range r.aliases {
		for _, variant := range variants {
			if a.pattern.MatchString(variant) {
				return a.canonical
			}
		}
	}
	return ""
}

// Lookup returns the canonical school for an exact alias.
func (r *Resolver) Lookup(alias string) (string, bool) {
	if r == nil {
		return "", false
	}
	canonical, ok := r.lookup[strings.ToLower(strings.TrimSpace(alias))]
	return canonical, ok
}

// Len returns the number of aliases.
func (r *Resolver) Len() int {
	if r == nil {
		return 0
	}
	return len(r.aliases)
}
