// Package rank orders items by great-circle distance and reveals them one
// page at a time.
package rank

import (
	"math"
	"sort"

	"github.com/sells-group/resource-finder/internal/geo"
)

// Default limits.
const (
	DefaultPageStep        = 10
	DefaultNearbyLocations = 5
	DefaultDetailResources = 10
)

// Ranked pairs an item with its distance from the ranking origin. Distance
// is +Inf when the item was not ranked geographically.
type Ranked[T any] struct {
	Item     T
	Distance float64
}

// HasDistance reports whether the distance is a finite measurement.
func (r Ranked[T]) HasDistance() bool { return !math.IsInf(r.Distance, 0) && !math.IsNaN(r.Distance) }

// ByDistance drops items without a point and sorts the rest by ascending
// distance from origin. Equidistant items keep their input order.
func ByDistance[T any](origin geo.Point, items []T, pointOf func(T) (geo.Point, bool)) []Ranked[T] {
	out := make([]Ranked[T], 0, len(items))
	for _, it := range items {
		p, ok := pointOf(it)
		if !ok {
			continue
		}
		out = append(out, Ranked[T]{Item: it, Distance: geo.DistanceMeters(origin, p)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Distance < out[j].Distance
	})
	return out
}

// Unranked wraps every item with an infinite distance, keeping input order.
func Unranked[T any](items []T) []Ranked[T] {
	out := make([]Ranked[T], len(items))
	for i, it := range items {
		out[i] = Ranked[T]{Item: it, Distance: math.Inf(1)}
	}
	return out
}

// Top returns at most n leading entries.
func Top[T any](ranked []Ranked[T], n int) []Ranked[T] {
	if n < 0 {
		n = 0
	}
	if len(ranked) > n {
		return ranked[:n]
	}
	return ranked
}

// Items strips distances.
func Items[T any](ranked []Ranked[T]) []T {
	out := make([]T, len(ranked))
	for i, r := range ranked {
		out[i] = r.Item
	}
	return out
}
