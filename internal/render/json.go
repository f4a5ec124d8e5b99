package render

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/rotisserie/eris"

	"github.com/sells-group/resource-finder/internal/mapview"
	"github.com/sells-group/resource-finder/internal/session"
)

// Frame is one rendered cycle in JSON form.
type Frame struct {
	View session.View  `json:"view"`
	Map  *mapview.View `json:"map,omitempty"`
}

// JSON writes one indented JSON document per render cycle. The map model
// delivered by Update is attached to the next rendered view.
type JSON struct {
	mu      sync.Mutex
	enc     *json.Encoder
	pending *mapview.View
}

// NewJSON returns a JSON renderer writing to w.
func NewJSON(w io.Writer) *JSON {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &JSON{enc: enc}
}

// Update stores the map model for the next Render.
func (j *JSON) Update(m mapview.View) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.pending = &m
}

// Render encodes v together with the pending map model.
func (j *JSON) Render(v session.View) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	f := Frame{View: v, Map: j.pending}
	j.pending = nil
	if err := j.enc.Encode(f); err != nil {
		return eris.Wrap(err, "render: encode json view")
	}
	return nil
}
