// Package mapview computes what the map widget shows: markers, their icons
// and the viewport.
package mapview

import (
	"strings"
)

// Icon names a marker glyph.
type Icon string

// Marker icons.
const (
	IconUser        Icon = "user"
	IconCircle      Icon = "circle"
	IconLibrary     Icon = "library"
	IconShelter     Icon = "shelter"
	IconHealth      Icon = "health"
	IconFinancial   Icon = "financial"
	IconEducational Icon = "educational"
	IconChildcare   Icon = "childcare"
	IconFood        Icon = "food"
	IconGiveaway    Icon = "giveaway"
)

// CategoryPriority is the order in which resource tags pick an icon.
var CategoryPriority = []Icon{
	IconShelter,
	IconHealth,
	IconFinancial,
	IconEducational,
	IconChildcare,
	IconFood,
	IconGiveaway,
}

// IconFor picks the highest-priority icon whose name equals one of the tags,
// ignoring case. Resources with no matching tag get the generic circle.
func IconFor(categories []string) Icon {
	tags := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		tags[strings.ToLower(c)] = struct{}{}
	}
	for _, icon := range CategoryPriority {
		if _, ok := tags[string(icon)]; ok {
			return icon
		}
	}
	return IconCircle
}
