package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPoint(t *testing.T) {
	tests := []struct {
		name    string
		rec     RawRecord
		wantOK  bool
		wantLat float64
		wantLon float64
	}{
		{"lowercase numbers", RawRecord{"lat": 40.1, "lon": -75.2}, true, 40.1, -75.2},
		{"capitalized strings", RawRecord{"Latitude": "40.1", "Longitude": "-75.2"}, true, 40.1, -75.2},
		{"lng alias", RawRecord{"Lat": 1.5, "lng": 2.5}, true, 1.5, 2.5},
		{"padded strings", RawRecord{"latitude": " 10 ", "Lng": "20"}, true, 10, 20},
		{"json number", RawRecord{"lat": json.Number("3.25"), "lon": json.Number("4")}, true, 3.25, 4},
		{"yaml ints", RawRecord{"lat": 40, "lon": -75}, true, 40, -75},
		{"zero is a coordinate", RawRecord{"lat": 0.0, "lon": 0.0}, true, 0, 0},
		{"priority order", RawRecord{"lat": 1.0, "Latitude": 9.0, "lon": 2.0, "Longitude": 9.0}, true, 1, 2},
		{"null falls through to next alias", RawRecord{"lat": nil, "Lat": 5.0, "lon": 6.0}, true, 5, 6},
		{"non numeric", RawRecord{"lat": "abc"}, false, 0, 0},
		{"missing lon", RawRecord{"lat": 40.0}, false, 0, 0},
		{"blank string", RawRecord{"lat": "", "lon": "1"}, false, 0, 0},
		{"boolean", RawRecord{"lat": true, "lon": 1.0}, false, 0, 0},
		{"infinite", RawRecord{"lat": math.Inf(1), "lon": 1.0}, false, 0, 0},
		{"nan string", RawRecord{"lat": "NaN", "lon": "1"}, false, 0, 0},
		{"nested object", RawRecord{"lat": map[string]any{"v": 1}, "lon": 1.0}, false, 0, 0},
		{"empty record", RawRecord{}, false, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := ExtractPoint(tt.rec)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.InDelta(t, tt.wantLat, p.Lat, 1e-12)
				assert.InDelta(t, tt.wantLon, p.Lon, 1e-12)
			}
		})
	}
}

func TestNormalizeCategories(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"list trims and drops blanks", []any{"Food", " ", "Shelter "}, []string{"Food", "Shelter"}},
		{"single string", "Food", []string{"Food"}},
		{"blank string", "   ", []string{}},
		{"nil", nil, []string{}},
		{"object", map[string]any{"a": "b"}, []string{}},
		{"number", 5.0, []string{}},
		{"list keeps order and duplicates", []any{"b", "a", "b"}, []string{"b", "a", "b"}},
		{"list stringifies numbers", []any{12.0, "x"}, []string{"12", "x"}},
		{"list drops nulls", []any{nil, "Health"}, []string{"Health"}},
		{"string slice", []string{" Food", ""}, []string{"Food"}},
		{"case preserved", []any{"food", "Food"}, []string{"food", "Food"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCategories(tt.in))
		})
	}
}

func TestRawRecord_Text(t *testing.T) {
	r := RawRecord{"Name": "  ", "name": "Central", "count": 3.0}
	assert.Equal(t, "Central", r.Text("Name", "name"))
	assert.Equal(t, "3", r.Text("count"))
	assert.Equal(t, "", r.Text("missing"))
}

func TestComposeAddress(t *testing.T) {
	assert.Equal(t, "1 Main St, Springfield, PA, 19064",
		ComposeAddress(Address{Street: "1 Main St", City: "Springfield", State: "PA", Zip: "19064"}))
	assert.Equal(t, "Springfield, 19064", ComposeAddress(Address{City: "Springfield", Zip: "19064"}))
	assert.Equal(t, "", ComposeAddress(Address{}))
}

func TestMapLink(t *testing.T) {
	addr := Address{Street: "1 Main St", City: "Springfield"}

	assert.Equal(t, "https://maps.example/x", MapLink("  https://maps.example/x ", addr))
	assert.Equal(t, mapSearchURL+"1%20Main%20St%2C%20Springfield", MapLink("", addr))
	assert.Equal(t, mapSearchURL+"1%20Main%20St%2C%20Springfield", MapLink("   ", addr))
	assert.Equal(t, "", MapLink("", Address{}))
}

func TestNewResource(t *testing.T) {
	raw := RawRecord{
		"name":        "Food Pantry",
		"URL":         "https://pantry.example",
		"description": "Groceries for families",
		"category":    []any{"Food", "Giveaway"},
		"Address":     "10 Elm St",
		"City":        "Media",
		"State":       "PA",
		"lat":         "39.9",
		"lon":         "-75.3",
	}
	r := NewResource(raw, 4)

	assert.Equal(t, 4, r.Index)
	assert.Equal(t, "Food Pantry", r.DisplayName())
	assert.Equal(t, "https://pantry.example", r.URL)
	assert.Equal(t, []string{"Food", "Giveaway"}, r.Categories)
	assert.Equal(t, "Food Giveaway", r.CategoryText())
	assert.Equal(t, "10 Elm St, Media, PA", r.AddressText())
	assert.True(t, r.HasPoint)
	assert.True(t, r.HasCategory("Food"))
	assert.False(t, r.HasCategory("food"))
	assert.Contains(t, r.MapLink(), "10%20Elm%20St")
}

func TestNewResource_Malformed(t *testing.T) {
	r := NewResource(RawRecord{"category": map[string]any{}}, 0)
	assert.Equal(t, "Untitled resource", r.DisplayName())
	assert.Empty(t, r.Categories)
	assert.False(t, r.HasPoint)
	assert.Equal(t, "", r.AddressText())
	assert.Equal(t, "", r.MapLink())
}

func TestNewLocation(t *testing.T) {
	l := NewLocation(RawRecord{
		"Name":     "Central Library",
		"Group":    "Main Branch",
		"Desc":     "Open late on Thursdays",
		"url":      "https://lib.example",
		"gmapAddr": "https://maps.example/central",
		"Latitude": 40.0,
		"Lng":      -75.0,
	}, 2)

	assert.Equal(t, "Central Library – Main Branch", l.DisplayName())
	assert.Equal(t, "Open late on Thursdays", l.Description)
	assert.Equal(t, "https://lib.example", l.URL)
	assert.Equal(t, "https://maps.example/central", l.MapLink())
	assert.True(t, l.HasPoint)
	assert.Equal(t, 2, l.Index)

	assert.Equal(t, "Library", NewLocation(RawRecord{}, 0).DisplayName())
}
