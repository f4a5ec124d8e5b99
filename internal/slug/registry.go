package slug

import (
	"go.uber.org/zap"

	"github.com/sells-group/resource-finder/internal/model"
)

// Collision records a location that replaced an earlier one under the same slug.
type Collision struct {
	Slug     string
	Replaced int // load index of the overwritten location
	By       int // load index of the location now registered
}

// Registry maps slugs to locations. It is built once per load and is
// read-only afterwards.
type Registry struct {
	bySlug     map[string]model.Location
	collisions []Collision
}

// Assign computes each location's slug in load order, stores it on the
// location and registers it. On an exact collision the later location wins;
// every overwrite is recorded and logged.
func Assign(locations []model.Location) *Registry {
	reg := &Registry{bySlug: make(map[string]model.Location, len(locations))}
	for i := range locations {
		s := ForLocation(locations[i])
		locations[i].Slug = s
		if prev, ok := reg.bySlug[s]; ok {
			reg.collisions = append(reg.collisions, Collision{Slug: s, Replaced: prev.Index, By: locations[i].Index})
			zap.L().Warn("slug: collision, later location replaces earlier one",
				zap.String("slug", s),
				zap.Int("replaced_index", prev.Index),
				zap.Int("by_index", locations[i].Index),
			)
		}
		reg.bySlug[s] = locations[i]
	}
	return reg
}

// Lookup returns the location registered under s.
func (r *Registry) Lookup(s string) (model.Location, bool) {
	l, ok := r.bySlug[s]
	return l, ok
}

// Len is the number of distinct slugs.
func (r *Registry) Len() int { return len(r.bySlug) }

// Collisions lists the overwrites that happened during Assign.
func (r *Registry) Collisions() []Collision {
	return append([]Collision(nil), r.collisions...)
}
