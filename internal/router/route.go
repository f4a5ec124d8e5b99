// Package router maps an externally mutable address fragment onto the two
// views of the finder: home and location detail.
package router

import "strings"

// Prefix marks a location detail fragment.
const Prefix = "loc-"

// Kind is the view a route selects.
type Kind int

// Route kinds.
const (
	KindHome Kind = iota
	KindDetail
)

func (k Kind) String() string {
	if k == KindDetail {
		return "detail"
	}
	return "home"
}

// Route is either Home or a location detail identified by slug.
type Route struct {
	Kind Kind
	Slug string
}

// Home is the default route.
func Home() Route { return Route{Kind: KindHome} }

// Detail selects the location registered under slug.
func Detail(slug string) Route { return Route{Kind: KindDetail, Slug: slug} }

// IsHome reports whether r is the home route.
func (r Route) IsHome() bool { return r.Kind == KindHome }

// Parse decodes a fragment. A leading '#' is ignored. Anything that is not
// Prefix followed by a non-empty slug degrades to Home.
func Parse(fragment string) Route {
	f := strings.TrimPrefix(fragment, "#")
	if slug, ok := strings.CutPrefix(f, Prefix); ok && slug != "" {
		return Detail(slug)
	}
	return Home()
}

// Fragment encodes r. Home encodes as the empty fragment.
func Fragment(r Route) string {
	if r.Kind == KindDetail && r.Slug != "" {
		return Prefix + r.Slug
	}
	return ""
}
