package model

import (
	"net/url"
	"strings"
)

// mapSearchURL is the map-search endpoint used when a record has no direct map link.
const mapSearchURL = "https://www.google.com/maps/search/?api=1&query="

// Address holds the optional postal fields of a record.
type Address struct {
	Street string `json:"street,omitempty"`
	City   string `json:"city,omitempty"`
	State  string `json:"state,omitempty"`
	Zip    string `json:"zip,omitempty"`
}

func addressFrom(r RawRecord) Address {
	return Address{
		Street: r.Text(streetKeys...),
		City:   r.Text(cityKeys...),
		State:  r.Text(stateKeys...),
		Zip:    r.Text(zipKeys...),
	}
}

// ComposeAddress joins the present fields with ", ". Absent fields
// contribute nothing.
func ComposeAddress(a Address) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Street, a.City, a.State, a.Zip} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// MapLink returns the direct map URL when set, otherwise a map search for
// the composed address. An empty result means "no link".
func MapLink(direct string, a Address) string {
	if d := strings.TrimSpace(direct); d != "" {
		return d
	}
	addr := ComposeAddress(a)
	if addr == "" {
		return ""
	}
	return mapSearchURL + encodeComponent(addr)
}

// encodeComponent percent-encodes s for use inside a query value, with
// spaces as %20 rather than '+'.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
