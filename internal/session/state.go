// Package session owns the mutable browsing state of one user and turns it
// into views for the rendering and map collaborators.
package session

import (
	"github.com/sells-group/resource-finder/internal/geo"
	"github.com/sells-group/resource-finder/internal/query"
	"github.com/sells-group/resource-finder/internal/rank"
	"github.com/sells-group/resource-finder/internal/router"
)

// Limits bounds the lists a view exposes.
type Limits struct {
	PageStep        int
	NearbyLocations int
	DetailResources int
}

// DefaultLimits returns the stock page step and list caps.
func DefaultLimits() Limits {
	return Limits{
		PageStep:        rank.DefaultPageStep,
		NearbyLocations: rank.DefaultNearbyLocations,
		DetailResources: rank.DefaultDetailResources,
	}
}

func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.PageStep <= 0 {
		l.PageStep = d.PageStep
	}
	if l.NearbyLocations <= 0 {
		l.NearbyLocations = d.NearbyLocations
	}
	if l.DetailResources <= 0 {
		l.DetailResources = d.DetailResources
	}
	return l
}

// State is the mutable part of a session. Route is a cached parse of the
// fragment store and is refreshed on every render.
type State struct {
	UserPoint *geo.Point
	Query     string
	Category  string
	Pager     rank.Pager
	Route     router.Route
}

// NewState returns the initial state: no user point, blank query, every
// category, one page visible, home route.
func NewState(pageStep int) State {
	return State{
		Category: query.All,
		Pager:    rank.NewPager(pageStep),
		Route:    router.Home(),
	}
}

// VisibleCount is the size of the revealed window.
func (s State) VisibleCount() int { return s.Pager.Count }
