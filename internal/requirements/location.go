package requirements

import (
	"regexp"
	"strings"
)

// Location is a city with an optional full state name.
type Location struct {
	City  string `json:"city"`
	State string `json:"state,omitempty"`
}

var (
	majorCities = []string{
		"Boston", "New York", "San Francisco", "Chicago", "Los Angeles", "Washington",
		"Houston", "Dallas", "Austin", "Seattle", "Miami", "Atlanta", "Denver", "Philadelphia",
	}

	stateNames = map[string]string{
		"MA": "Massachusetts", "NY": "New York", "CA": "California", "IL": "Illinois",
		"TX": "Texas", "DC": "District of Columbia", "FL": "Florida", "GA": "Georgia",
		"CO": "Colorado", "PA": "Pennsylvania",
		"MASSACHUSETTS": "Massachusetts", "NEW YORK": "New York", "CALIFORNIA": "California",
		"ILLINOIS": "Illinois", "TEXAS": "Texas", "WASHINGTON": "Washington", "FLORIDA": "Florida",
		"GEORGIA": "Georgia", "COLORADO": "Colorado", "PENNSYLVANIA": "Pennsylvania",
	}

	canonicalCities = func() map[string]string {
		m := make(map[string]string, len(majorCities))
		for _, city := range majorCities {
			m[strings.ToLower(city)] = city
		}
		return m
	}()

	cityState = regexp.MustCompile(`(?i)(` + strings.Join(majorCities, "|") +
		`),?\s*((?:Massachusetts|MA|New York|NY|California|CA|Illinois|IL|Texas|TX|Washington|DC|Florida|FL|Georgia|GA|Colorado|CO|Pennsylvania|PA)\b)?`)
)

// Locations returns every major city mentioned in text, once each, in order of
// appearance. A state following the city is normalised to its full name.
func Locations(text string) []Location {
	seen := make(map[string]struct{})
	locations := make([]Location, 0)
	for _, m := range cityState.FindAllStringSubmatch(text, -1) {
		key := strings.ToLower(strings.TrimSpace(m[1]))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		state := strings.TrimSpace(m[2])
		if full, ok := stateNames[strings.ToUpper(state)]; ok {
			state = full
		}
		locations = append(locations, Location{City: canonicalCities[key], State: state})
	}
	return locations
}
