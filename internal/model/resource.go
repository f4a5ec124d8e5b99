package model

import (
	"strings"

	"github.com/sells-group/resource-finder/internal/geo"
)

// Resource is a normalized service offering.
type Resource struct {
	Index       int       `json:"index"`
	Name        string    `json:"name"`
	URL         string    `json:"url,omitempty"`
	Description string    `json:"description,omitempty"`
	Address     Address   `json:"address"`
	MapURL      string    `json:"map_url,omitempty"`
	Categories  []string  `json:"categories"`
	Point       geo.Point `json:"point"`
	HasPoint    bool      `json:"has_point"`
	Raw         RawRecord `json:"-"`
}

// NewResource normalizes a raw resource record. index is its position in
// the source document.
func NewResource(raw RawRecord, index int) Resource {
	r := Resource{
		Index:       index,
		Name:        raw.Text("name", "Name"),
		URL:         raw.Text(urlKeys...),
		Description: raw.Text(resourceDescKeys...),
		Address:     addressFrom(raw),
		MapURL:      raw.Text(mapLinkKeys...),
		Raw:         raw,
	}
	cat, _ := raw.Value(categoryKeys...)
	r.Categories = NormalizeCategories(cat)
	r.Point, r.HasPoint = ExtractPoint(raw)
	return r
}

// DisplayName returns the name shown to users.
func (r Resource) DisplayName() string {
	if r.Name == "" {
		return "Untitled resource"
	}
	return r.Name
}

// AddressText is the composed single-line address.
func (r Resource) AddressText() string { return ComposeAddress(r.Address) }

// MapLink is the external map link for the resource, or "".
func (r Resource) MapLink() string { return MapLink(r.MapURL, r.Address) }

// CategoryText joins the tags with single spaces.
func (r Resource) CategoryText() string { return strings.Join(r.Categories, " ") }

// HasCategory reports exact, case-sensitive membership.
func (r Resource) HasCategory(tag string) bool {
	for _, c := range r.Categories {
		if c == tag {
			return true
		}
	}
	return false
}
