package session

import (
	"strconv"

	"github.com/sells-group/resource-finder/internal/catalog"
	"github.com/sells-group/resource-finder/internal/geo"
	"github.com/sells-group/resource-finder/internal/mapview"
	"github.com/sells-group/resource-finder/internal/model"
	"github.com/sells-group/resource-finder/internal/query"
	"github.com/sells-group/resource-finder/internal/rank"
	"github.com/sells-group/resource-finder/internal/router"
)

// ViewKind is the top-level state a render shows.
type ViewKind string

// View kinds.
const (
	ViewHome       ViewKind = "home"
	ViewDetail     ViewKind = "detail"
	ViewNotFound   ViewKind = "not_found"
	ViewNoLocation ViewKind = "no_location"
)

// Messages shown in place of empty lists.
const (
	MsgNoLocation        = "Enable location to see nearby resources."
	MsgNoResources       = "No resources match your filters."
	MsgNoLocations       = "No libraries match your search."
	MsgNotFound          = "Location not found."
	MsgNoDetailResources = "No resources found for this library with the current filters."
)

const (
	titleHomeResources   = "Closest resources to your location"
	titleNearbyLocations = "Nearest libraries"
	titleDetailResources = "nearest resources"
)

// ResourceCard holds the display strings of one resource.
type ResourceCard struct {
	Index       int      `json:"index"`
	Name        string   `json:"name"`
	URL         string   `json:"url,omitempty"`
	Description string   `json:"description,omitempty"`
	Categories  []string `json:"categories"`
	Distance    string   `json:"distance,omitempty"`
	Address     string   `json:"address,omitempty"`
	MapLink     string   `json:"map_link,omitempty"`
}

// LocationCard holds the display strings of one location.
type LocationCard struct {
	Slug        string `json:"slug"`
	Fragment    string `json:"fragment"`
	Name        string `json:"name"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
	Distance    string `json:"distance,omitempty"`
	Address     string `json:"address,omitempty"`
	MapLink     string `json:"map_link,omitempty"`
}

// View is everything the rendering collaborator needs for one cycle.
type View struct {
	Kind     ViewKind `json:"kind"`
	Query    string   `json:"query"`
	Category string   `json:"category"`

	Focus *LocationCard `json:"focus,omitempty"`

	ResourcesTitle   string         `json:"resources_title,omitempty"`
	Resources        []ResourceCard `json:"resources"`
	TotalResources   int            `json:"total_resources"`
	ResourcesMessage string         `json:"resources_message,omitempty"`
	Pager            rank.Control   `json:"pager"`

	LocationsTitle   string         `json:"locations_title,omitempty"`
	Locations        []LocationCard `json:"locations"`
	LocationsMessage string         `json:"locations_message,omitempty"`

	Message string `json:"message,omitempty"`
}

// Build computes the view and the map model for st. It reads cat and st
// and changes neither.
func Build(cat *catalog.Catalog, st State, lim Limits) (View, mapview.View) {
	lim = lim.withDefaults()
	if st.Route.Kind == router.KindDetail {
		return buildDetail(cat, st, lim)
	}
	return buildHome(cat, st, lim)
}

func buildHome(cat *catalog.Catalog, st State, lim Limits) (View, mapview.View) {
	v := View{Kind: ViewHome, Query: st.Query, Category: st.Category}
	if st.UserPoint == nil {
		v.Kind = ViewNoLocation
		v.Message = MsgNoLocation
		return v, mapview.Build(nil, nil, nil)
	}
	origin := *st.UserPoint

	pool := query.Resources(query.FilterByCategory(cat.Resources, st.Category), st.Query)
	ranked := rank.ByDistance(origin, pool, resourcePoint)
	shown := rank.Slice(st.Pager, ranked)

	v.ResourcesTitle = titleHomeResources
	v.TotalResources = len(ranked)
	v.Resources = resourceCards(shown)
	v.Pager = st.Pager.Control(len(ranked))
	if len(shown) == 0 {
		v.ResourcesMessage = MsgNoResources
	}

	nearby := rank.Top(rank.ByDistance(origin, query.Locations(cat.Locations, st.Query), locationPoint), lim.NearbyLocations)
	v.Locations = locationCards(nearby)
	if len(nearby) > 0 {
		v.LocationsTitle = titleNearbyLocations
	} else {
		v.LocationsMessage = MsgNoLocations
	}

	return v, mapview.Build(st.UserPoint, rank.Items(shown), rank.Items(nearby))
}

// buildDetail ranks resources around the focal location. The text query
// does not apply here; only the category filter does.
func buildDetail(cat *catalog.Catalog, st State, lim Limits) (View, mapview.View) {
	v := View{Kind: ViewDetail, Query: st.Query, Category: st.Category}
	loc, ok := cat.Location(st.Route.Slug)
	if !ok {
		v.Kind = ViewNotFound
		v.Message = MsgNotFound
		return v, mapview.Build(st.UserPoint, nil, nil)
	}
	focus := locationCard(rank.Unranked([]model.Location{loc})[0])
	v.Focus = &focus

	pool := query.FilterByCategory(cat.Resources, st.Category)
	var ranked []rank.Ranked[model.Resource]
	if loc.HasPoint {
		ranked = rank.ByDistance(loc.Point, pool, resourcePoint)
	} else {
		ranked = rank.Unranked(pool)
	}
	nearest := rank.Top(ranked, lim.DetailResources)

	v.ResourcesTitle = strconv.Itoa(lim.DetailResources) + " " + titleDetailResources
	if st.Category != query.All && st.Category != "" {
		v.ResourcesTitle += " in “" + st.Category + "”"
	}
	v.TotalResources = len(ranked)
	v.Resources = resourceCards(nearest)
	if len(nearest) == 0 {
		v.ResourcesMessage = MsgNoDetailResources
	}

	return v, mapview.Build(st.UserPoint, rank.Items(nearest), []model.Location{loc})
}

func resourcePoint(r model.Resource) (geo.Point, bool) { return r.Point, r.HasPoint }

func locationPoint(l model.Location) (geo.Point, bool) { return l.Point, l.HasPoint }

func resourceCards(rs []rank.Ranked[model.Resource]) []ResourceCard {
	out := make([]ResourceCard, len(rs))
	for i, r := range rs {
		res := r.Item
		card := ResourceCard{
			Index:       res.Index,
			Name:        res.DisplayName(),
			URL:         res.URL,
			Description: res.Description,
			Categories:  res.Categories,
			Address:     res.AddressText(),
			MapLink:     res.MapLink(),
		}
		if r.HasDistance() {
			card.Distance = geo.FormatDistance(r.Distance)
		}
		out[i] = card
	}
	return out
}

func locationCards(ls []rank.Ranked[model.Location]) []LocationCard {
	out := make([]LocationCard, len(ls))
	for i, l := range ls {
		out[i] = locationCard(l)
	}
	return out
}

func locationCard(r rank.Ranked[model.Location]) LocationCard {
	l := r.Item
	card := LocationCard{
		Slug:        l.Slug,
		Fragment:    "#" + router.Fragment(router.Detail(l.Slug)),
		Name:        l.DisplayName(),
		URL:         l.URL,
		Description: l.Description,
		Address:     l.AddressText(),
		MapLink:     l.MapLink(),
	}
	if r.HasDistance() {
		card.Distance = geo.FormatDistance(r.Distance)
	}
	return card
}
