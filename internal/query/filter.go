// Package query implements category selection and token text matching over
// resources and locations.
package query

import (
	"github.com/sells-group/resource-finder/internal/model"
)

// All is the category selection that keeps every resource.
const All = "ALL"

// FilterByCategory keeps the resources tagged exactly with selected. The
// comparison is case-sensitive against the tag as stored. All, and the
// empty selection, return resources unchanged.
func FilterByCategory(resources []model.Resource, selected string) []model.Resource {
	if selected == All || selected == "" {
		return resources
	}
	out := make([]model.Resource, 0, len(resources))
	for _, r := range resources {
		if r.HasCategory(selected) {
			out = append(out, r)
		}
	}
	return out
}
