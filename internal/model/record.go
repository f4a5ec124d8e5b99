package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sells-group/resource-finder/internal/geo"
)

// RawRecord is one element of a source document, before normalization.
// Keys arrive with inconsistent casing ("lat", "Lat", "latitude").
type RawRecord map[string]any

// Key alias groups, in lookup priority order.
var (
	latKeys      = []string{"lat", "Lat", "latitude", "Latitude"}
	lonKeys      = []string{"lon", "Lon", "lng", "Lng", "longitude", "Longitude"}
	nameKeys     = []string{"Name", "name"}
	groupKeys    = []string{"Group", "group"}
	urlKeys      = []string{"URL", "url", "Url"}
	categoryKeys = []string{"category", "Category", "categories", "Categories"}
	mapLinkKeys  = []string{"gmapaddr", "gmapAddr", "GMapAddr"}
	streetKeys   = []string{"address", "Address", "street", "Street"}
	cityKeys     = []string{"city", "City"}
	stateKeys    = []string{"state", "State"}
	zipKeys      = []string{"zip", "Zip", "postal", "postalCode", "PostalCode"}

	resourceDescKeys = []string{"description", "Description", "desc", "Desc"}
	locationDescKeys = []string{"desc", "Desc", "description", "Description"}
)

// Value returns the first alias that is present with a non-null value.
func (r RawRecord) Value(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Text returns the first alias whose stringified, trimmed value is non-empty.
func (r RawRecord) Text(keys ...string) string {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		if s := strings.TrimSpace(stringify(v)); s != "" {
			return s
		}
	}
	return ""
}

// ExtractPoint resolves a coordinate pair from the lat/lon alias groups.
// It returns false when either value is missing or not a finite number.
func ExtractPoint(r RawRecord) (geo.Point, bool) {
	latV, ok := r.Value(latKeys...)
	if !ok {
		return geo.Point{}, false
	}
	lonV, ok := r.Value(lonKeys...)
	if !ok {
		return geo.Point{}, false
	}
	lat, ok := toNumber(latV)
	if !ok {
		return geo.Point{}, false
	}
	lon, ok := toNumber(lonV)
	if !ok {
		return geo.Point{}, false
	}
	p := geo.Point{Lat: lat, Lon: lon}
	if !p.Valid() {
		return geo.Point{}, false
	}
	return p, true
}

// NormalizeCategories turns a scalar-or-list category value into an ordered
// list of trimmed, non-empty tags. Any other shape yields an empty list.
func NormalizeCategories(v any) []string {
	switch c := v.(type) {
	case []any:
		out := make([]string, 0, len(c))
		for _, el := range c {
			if el == nil {
				continue
			}
			if s := strings.TrimSpace(stringify(el)); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		out := make([]string, 0, len(c))
		for _, el := range c {
			if s := strings.TrimSpace(el); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if s := strings.TrimSpace(c); s != "" {
			return []string{s}
		}
	}
	return []string{}
}

// toNumber coerces a decoded JSON/YAML scalar to float64. Blank strings and
// booleans are not numbers.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}
	return 0, false
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}
