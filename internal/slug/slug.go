// Package slug derives stable, fragment-safe identifiers for locations,
// which carry no natural primary key.
package slug

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/resource-finder/internal/model"
)

// Fallback is returned by Slugify when nothing usable remains.
const Fallback = "loc"

// Slugify lowercases s, strips diacritics, collapses every run of
// characters outside [a-z0-9] into one hyphen and trims hyphens.
func Slugify(s string) string {
	folded := foldDiacritics(strings.ToLower(s))

	var b strings.Builder
	b.Grow(len(folded))
	pendingHyphen := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	if b.Len() == 0 {
		return Fallback
	}
	return b.String()
}

// foldDiacritics decomposes s (NFKD) and drops combining marks.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// ForLocation computes the slug of a location: the slugified name followed by
// its coordinates at 4-decimal precision, or by its load index when it has
// no coordinates.
func ForLocation(l model.Location) string {
	name := l.Name
	if name == "" {
		name = "location-" + strconv.Itoa(l.Index)
	}
	var tail string
	if l.HasPoint {
		tail = "-" + strconv.FormatFloat(l.Point.Lat, 'f', 4, 64) +
			"-" + strconv.FormatFloat(l.Point.Lon, 'f', 4, 64)
	} else {
		tail = "-" + strconv.Itoa(l.Index)
	}
	return Slugify(name) + tail
}
