// Package catalog turns the two loaded documents into the immutable dataset
// a session browses.
package catalog

import (
	"go.uber.org/zap"

	"github.com/sells-group/resource-finder/internal/model"
	"github.com/sells-group/resource-finder/internal/query"
	"github.com/sells-group/resource-finder/internal/slug"
)

// Catalog is the canonical dataset of one load. It is never mutated after
// Build returns.
type Catalog struct {
	Resources  []model.Resource
	Locations  []model.Location
	Slugs      *slug.Registry
	Categories []string
}

// Build normalizes raw resource and location records, assigns location
// slugs in document order and collects the category vocabulary.
func Build(resources, locations []model.RawRecord, locale string) *Catalog {
	c := &Catalog{
		Resources: make([]model.Resource, 0, len(resources)),
		Locations: make([]model.Location, 0, len(locations)),
	}
	for i, raw := range resources {
		c.Resources = append(c.Resources, model.NewResource(raw, i))
	}
	for i, raw := range locations {
		c.Locations = append(c.Locations, model.NewLocation(raw, i))
	}
	c.Slugs = slug.Assign(c.Locations)
	c.Categories = query.Vocabulary(c.Resources, locale)

	zap.L().Info("catalog: built",
		zap.Int("resources", len(c.Resources)),
		zap.Int("geotagged_resources", countPointed(c.Resources)),
		zap.Int("locations", len(c.Locations)),
		zap.Int("categories", len(c.Categories)),
		zap.Int("slug_collisions", len(c.Slugs.Collisions())),
	)
	return c
}

// Location looks up a location by slug.
func (c *Catalog) Location(s string) (model.Location, bool) {
	return c.Slugs.Lookup(s)
}

func countPointed(rs []model.Resource) int {
	n := 0
	for _, r := range rs {
		if r.HasPoint {
			n++
		}
	}
	return n
}
