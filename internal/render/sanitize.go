// Package render draws session views to a terminal as text or JSON.
package render

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Clean removes control characters from record text so untrusted fields
// cannot move the cursor or inject escape sequences. Newlines and tabs
// become spaces.
func Clean(s string) string {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(s)
	out, _, err := transform.String(runes.Remove(runes.Predicate(unicode.IsControl)), s)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}
