package query

import (
	"strings"

	"github.com/sells-group/resource-finder/internal/model"
)

// Matches reports whether every whitespace-separated token of q occurs as a
// case-insensitive substring of the non-empty fields joined by single
// spaces. A blank query matches everything.
func Matches(fields []string, q string) bool {
	tokens := strings.Fields(strings.ToLower(q))
	if len(tokens) == 0 {
		return true
	}
	present := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			present = append(present, strings.ToLower(f))
		}
	}
	hay := strings.Join(present, " ")
	for _, tok := range tokens {
		if !strings.Contains(hay, tok) {
			return false
		}
	}
	return true
}

// MatchesResource matches q against name, description, tags and address.
func MatchesResource(r model.Resource, q string) bool {
	return Matches([]string{r.Name, r.Description, r.CategoryText(), r.AddressText()}, q)
}

// MatchesLocation matches q against name, group and address.
func MatchesLocation(l model.Location, q string) bool {
	return Matches([]string{l.Name, l.Group, l.AddressText()}, q)
}

// Resources keeps the resources matching q, in order.
func Resources(resources []model.Resource, q string) []model.Resource {
	if strings.TrimSpace(q) == "" {
		return resources
	}
	out := make([]model.Resource, 0, len(resources))
	for _, r := range resources {
		if MatchesResource(r, q) {
			out = append(out, r)
		}
	}
	return out
}

// Locations keeps the locations matching q, in order.
func Locations(locations []model.Location, q string) []model.Location {
	if strings.TrimSpace(q) == "" {
		return locations
	}
	out := make([]model.Location, 0, len(locations))
	for _, l := range locations {
		if MatchesLocation(l, q) {
			out = append(out, l)
		}
	}
	return out
}
