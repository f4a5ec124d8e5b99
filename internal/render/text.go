package render

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/rotisserie/eris"

	"github.com/sells-group/resource-finder/internal/mapview"
	"github.com/sells-group/resource-finder/internal/session"
)

// Text writes views as plain text.
type Text struct {
	mu sync.Mutex
	w  io.Writer
	// ShowMap appends the map markers and viewport after each view.
	ShowMap bool
	lastMap mapview.View
}

// NewText returns a text renderer writing to w.
func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

// Update records the map model of the view about to be rendered. It is
// printed by Render when ShowMap is set.
func (t *Text) Update(m mapview.View) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastMap = m
}

// Render writes v.
func (t *Text) Render(v session.View) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var b strings.Builder
	switch v.Kind {
	case session.ViewNoLocation, session.ViewNotFound:
		writeHeader(&b, v)
		fmt.Fprintln(&b, v.Message)
	case session.ViewDetail:
		writeHeader(&b, v)
		writeFocus(&b, v.Focus)
		writeResources(&b, v)
	default:
		writeHeader(&b, v)
		writeResources(&b, v)
		writeLocations(&b, v)
	}
	if t.ShowMap {
		writeMap(&b, t.lastMap)
	}
	b.WriteString("\n")

	if _, err := io.WriteString(t.w, b.String()); err != nil {
		return eris.Wrap(err, "render: write text view")
	}
	return nil
}

func writeHeader(b *strings.Builder, v session.View) {
	parts := []string{"[" + string(v.Kind) + "]"}
	if v.Category != "" {
		parts = append(parts, "category="+Clean(v.Category))
	}
	if strings.TrimSpace(v.Query) != "" {
		parts = append(parts, fmt.Sprintf("query=%q", Clean(v.Query)))
	}
	fmt.Fprintln(b, strings.Join(parts, " "))
}

func writeFocus(b *strings.Builder, f *session.LocationCard) {
	if f == nil {
		return
	}
	fmt.Fprintf(b, "\n%s\n", Clean(f.Name))
	if f.URL != "" {
		fmt.Fprintf(b, "  %s\n", Clean(f.URL))
	}
	if f.Description != "" {
		fmt.Fprintf(b, "  %s\n", Clean(f.Description))
	}
	if f.Address != "" {
		fmt.Fprintf(b, "  %s\n", Clean(f.Address))
	}
	if f.MapLink != "" {
		fmt.Fprintf(b, "  map: %s\n", Clean(f.MapLink))
	}
}

func writeResources(b *strings.Builder, v session.View) {
	if v.ResourcesTitle != "" {
		fmt.Fprintf(b, "\n%s:\n", v.ResourcesTitle)
	}
	if len(v.Resources) == 0 {
		if v.ResourcesMessage != "" {
			fmt.Fprintf(b, "  %s\n", v.ResourcesMessage)
		}
		return
	}
	tw := tabwriter.NewWriter(b, 0, 0, 2, ' ', 0)
	for i, r := range v.Resources {
		cats := make([]string, len(r.Categories))
		for j, c := range r.Categories {
			cats[j] = "[" + Clean(c) + "]"
		}
		_, _ = fmt.Fprintf(tw, "%d.\t%s\t%s\t%s\n", i+1, Clean(r.Name), r.Distance, strings.Join(cats, " "))
		if r.Description != "" {
			_, _ = fmt.Fprintf(tw, "\t  %s\t\t\n", Clean(r.Description))
		}
		if r.Address != "" {
			_, _ = fmt.Fprintf(tw, "\t  %s\t\t\n", Clean(r.Address))
		}
	}
	_ = tw.Flush()
	if v.Pager.Label != "" {
		fmt.Fprintf(b, "  (%d of %d) %s\n", len(v.Resources), v.TotalResources, v.Pager.Label)
	}
}

func writeLocations(b *strings.Builder, v session.View) {
	if v.LocationsTitle != "" {
		fmt.Fprintf(b, "\n%s:\n", v.LocationsTitle)
	}
	if len(v.Locations) == 0 {
		if v.LocationsMessage != "" {
			fmt.Fprintf(b, "\n  %s\n", v.LocationsMessage)
		}
		return
	}
	tw := tabwriter.NewWriter(b, 0, 0, 2, ' ', 0)
	for i, l := range v.Locations {
		_, _ = fmt.Fprintf(tw, "%d.\t%s\t%s\t%s\n", i+1, Clean(l.Name), l.Distance, Clean(l.Fragment))
	}
	_ = tw.Flush()
}

func writeMap(b *strings.Builder, m mapview.View) {
	if m.Cleared {
		fmt.Fprintln(b, "\nmap: cleared")
		return
	}
	vp := m.Viewport
	switch vp.Mode {
	case mapview.ModeCenter:
		fmt.Fprintf(b, "\nmap: center %.4f,%.4f zoom %d\n", vp.Center.Lat, vp.Center.Lon, vp.Zoom)
	default:
		fmt.Fprintf(b, "\nmap: fit %.4f,%.4f .. %.4f,%.4f (padding %d, max zoom %d)\n",
			vp.SouthWest.Lat, vp.SouthWest.Lon, vp.NorthEast.Lat, vp.NorthEast.Lon, vp.Padding, vp.MaxZoom)
	}
	for _, mk := range m.Markers {
		fmt.Fprintf(b, "  %-9s %-11s %.4f,%.4f %s\n", mk.Kind, mk.Icon, mk.Point.Lat, mk.Point.Lon, Clean(mk.Label))
	}
}
