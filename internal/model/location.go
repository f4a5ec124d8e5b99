package model

import (
	"github.com/sells-group/resource-finder/internal/geo"
)

// Location is a normalized library or venue. Slug is assigned once at load
// time by the slug registry.
type Location struct {
	Index       int       `json:"index"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Group       string    `json:"group,omitempty"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url,omitempty"`
	Address     Address   `json:"address"`
	MapURL      string    `json:"map_url,omitempty"`
	Point       geo.Point `json:"point"`
	HasPoint    bool      `json:"has_point"`
	Raw         RawRecord `json:"-"`
}

// NewLocation normalizes a raw location record. index is its position in
// the source document and doubles as the slug disambiguator when the record
// has no coordinates.
func NewLocation(raw RawRecord, index int) Location {
	l := Location{
		Index:       index,
		Name:        raw.Text(nameKeys...),
		Group:       raw.Text(groupKeys...),
		Description: raw.Text(locationDescKeys...),
		URL:         raw.Text(urlKeys...),
		Address:     addressFrom(raw),
		MapURL:      raw.Text(mapLinkKeys...),
		Raw:         raw,
	}
	l.Point, l.HasPoint = ExtractPoint(raw)
	return l
}

// DisplayName is "Name – Group" when a group is present.
func (l Location) DisplayName() string {
	name := l.Name
	if name == "" {
		name = "Library"
	}
	if l.Group != "" {
		return name + " – " + l.Group
	}
	return name
}

// AddressText is the composed single-line address.
func (l Location) AddressText() string { return ComposeAddress(l.Address) }

// MapLink is the external map link for the location, or "".
func (l Location) MapLink() string { return MapLink(l.MapURL, l.Address) }
