package mapview

import (
	"github.com/twpayne/go-geom"

	"github.com/sells-group/resource-finder/internal/geo"
	"github.com/sells-group/resource-finder/internal/model"
)

// Viewport constants.
const (
	FitPadding = 28
	FitMaxZoom = 13
	UserZoom   = 12
)

// MarkerKind says what a marker stands for.
type MarkerKind string

// Marker kinds.
const (
	MarkerUser     MarkerKind = "user"
	MarkerResource MarkerKind = "resource"
	MarkerLocation MarkerKind = "location"
)

// Marker is one pin on the map.
type Marker struct {
	Kind    MarkerKind `json:"kind"`
	Point   geo.Point  `json:"point"`
	Icon    Icon       `json:"icon"`
	Label   string     `json:"label"`
	Address string     `json:"address,omitempty"`
	URL     string     `json:"url,omitempty"`
	Slug    string     `json:"slug,omitempty"`
}

// ViewportMode says how the widget positions the map.
type ViewportMode string

// Viewport modes.
const (
	ModeFit    ViewportMode = "fit"
	ModeCenter ViewportMode = "center"
)

// Viewport is either a bounding box to fit or a center and zoom.
type Viewport struct {
	Mode      ViewportMode `json:"mode"`
	SouthWest geo.Point    `json:"south_west"`
	NorthEast geo.Point    `json:"north_east"`
	Padding   int          `json:"padding,omitempty"`
	MaxZoom   int          `json:"max_zoom,omitempty"`
	Center    geo.Point    `json:"center"`
	Zoom      int          `json:"zoom,omitempty"`
}

// View is the full map state for one render cycle. A cleared view has no
// markers and no viewport.
type View struct {
	Cleared  bool     `json:"cleared"`
	Markers  []Marker `json:"markers"`
	Viewport Viewport `json:"viewport"`
}

// Build lays out the user marker, the shown resources and the shown
// locations. Items without a point are skipped. Without a user point the
// map is cleared.
func Build(user *geo.Point, resources []model.Resource, locations []model.Location) View {
	if user == nil {
		return View{Cleared: true}
	}

	markers := make([]Marker, 0, 1+len(resources)+len(locations))
	markers = append(markers, Marker{Kind: MarkerUser, Point: *user, Icon: IconUser, Label: "You are here"})
	for _, r := range resources {
		if !r.HasPoint {
			continue
		}
		label := r.Name
		if label == "" {
			label = "Resource"
		}
		markers = append(markers, Marker{
			Kind:    MarkerResource,
			Point:   r.Point,
			Icon:    IconFor(r.Categories),
			Label:   label,
			Address: r.AddressText(),
			URL:     r.URL,
		})
	}
	for _, l := range locations {
		if !l.HasPoint {
			continue
		}
		markers = append(markers, Marker{
			Kind:    MarkerLocation,
			Point:   l.Point,
			Icon:    IconLibrary,
			Label:   l.DisplayName(),
			Address: l.AddressText(),
			Slug:    l.Slug,
		})
	}

	return View{Markers: markers, Viewport: viewportFor(*user, markers)}
}

// viewportFor fits every marker, or centers on the user when the user is
// the only marker.
func viewportFor(user geo.Point, markers []Marker) Viewport {
	if len(markers) <= 1 {
		return Viewport{Mode: ModeCenter, Center: user, Zoom: UserZoom}
	}

	flat := make([]float64, 0, 2*len(markers))
	for _, m := range markers {
		flat = append(flat, m.Point.Lon, m.Point.Lat)
	}
	b := geom.NewMultiPointFlat(geom.XY, flat).Bounds()

	sw := geo.Point{Lat: b.Min(1), Lon: b.Min(0)}
	ne := geo.Point{Lat: b.Max(1), Lon: b.Max(0)}
	return Viewport{
		Mode:      ModeFit,
		SouthWest: sw,
		NorthEast: ne,
		Padding:   FitPadding,
		MaxZoom:   FitMaxZoom,
		Center:    geo.Point{Lat: (sw.Lat + ne.Lat) / 2, Lon: (sw.Lon + ne.Lon) / 2},
	}
}
