package slug

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/resource-finder/internal/geo"
	"github.com/sells-group/resource-finder/internal/model"
)

var fragmentSafe = regexp.MustCompile(`^[a-z0-9.-]+$`)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Central Library", "central-library"},
		{"  Leading and trailing!  ", "leading-and-trailing"},
		{"Café Münster", "cafe-munster"},
		{"São Paulo — Branch #2", "sao-paulo-branch-2"},
		{"A&&&B", "a-b"},
		{"ﬁve", "five"},
		{"", "loc"},
		{"!!!", "loc"},
		{"東京", "loc"},
		{"already-slugged", "already-slugged"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestForLocation(t *testing.T) {
	withPoint := model.Location{Name: "Main Library", Point: geo.Point{Lat: 40.1, Lon: -75.2}, HasPoint: true, Index: 7}
	assert.Equal(t, "main-library-40.1000--75.2000", ForLocation(withPoint))

	noPoint := model.Location{Name: "Main Library", Index: 7}
	assert.Equal(t, "main-library-7", ForLocation(noPoint))

	nameless := model.Location{Index: 3}
	assert.Equal(t, "location-3-3", ForLocation(nameless))

	assert.Regexp(t, fragmentSafe, ForLocation(withPoint))
}

func TestAssign_SameNameDistinctCoordinates(t *testing.T) {
	locs := []model.Location{
		{Name: "Branch", Point: geo.Point{Lat: 40.0, Lon: -75.0}, HasPoint: true, Index: 0},
		{Name: "Branch", Point: geo.Point{Lat: 40.5, Lon: -75.0}, HasPoint: true, Index: 1},
		{Name: "Branch", Index: 2},
		{Name: "Branch", Index: 3},
	}
	reg := Assign(locs)

	seen := map[string]bool{}
	for _, l := range locs {
		require.NotEmpty(t, l.Slug)
		assert.False(t, seen[l.Slug], "duplicate slug %q", l.Slug)
		seen[l.Slug] = true

		got, ok := reg.Lookup(l.Slug)
		require.True(t, ok)
		assert.Equal(t, l.Index, got.Index)
		assert.Equal(t, l.Slug, got.Slug)
	}
	assert.Equal(t, 4, reg.Len())
	assert.Empty(t, reg.Collisions())
}

func TestAssign_CollisionIsFlagged(t *testing.T) {
	locs := []model.Location{
		{Name: "Twin", Group: "North", Point: geo.Point{Lat: 40.00001, Lon: -75.0}, HasPoint: true, Index: 0},
		{Name: "Twin", Group: "South", Point: geo.Point{Lat: 40.00002, Lon: -75.0}, HasPoint: true, Index: 1},
	}
	reg := Assign(locs)

	require.Equal(t, locs[0].Slug, locs[1].Slug)
	assert.Equal(t, 1, reg.Len())

	got, ok := reg.Lookup(locs[0].Slug)
	require.True(t, ok)
	assert.Equal(t, "South", got.Group, "later location wins")

	cols := reg.Collisions()
	require.Len(t, cols, 1)
	assert.Equal(t, Collision{Slug: locs[0].Slug, Replaced: 0, By: 1}, cols[0])
}

func TestAssign_Deterministic(t *testing.T) {
	build := func() []model.Location {
		return []model.Location{
			{Name: "Alpha", Point: geo.Point{Lat: 1, Lon: 2}, HasPoint: true, Index: 0},
			{Name: "Beta", Index: 1},
		}
	}
	a, b := build(), build()
	Assign(a)
	Assign(b)
	assert.Equal(t, a[0].Slug, b[0].Slug)
	assert.Equal(t, a[1].Slug, b[1].Slug)
}
