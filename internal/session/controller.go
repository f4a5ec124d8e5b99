package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/resource-finder/internal/catalog"
	"github.com/sells-group/resource-finder/internal/geo"
	"github.com/sells-group/resource-finder/internal/mapview"
	"github.com/sells-group/resource-finder/internal/query"
	"github.com/sells-group/resource-finder/internal/router"
)

// Renderer draws a view. It is called with the controller lock held and
// must not call back into the controller.
type Renderer interface {
	Render(v View) error
}

// MapWidget shows the map model of a view. It is updated before the
// renderer is called and follows the same locking rule as Renderer.
type MapWidget interface {
	Update(v mapview.View)
}

// Option configures a Controller.
type Option func(*Controller)

// WithRenderer sets the rendering collaborator.
func WithRenderer(r Renderer) Option {
	return func(c *Controller) { c.renderer = r }
}

// WithMap sets the map collaborator.
func WithMap(m MapWidget) Option {
	return func(c *Controller) { c.mapw = m }
}

// WithGeolocator sets the geolocation collaborator.
func WithGeolocator(g Geolocator) Option {
	return func(c *Controller) { c.geo = g }
}

// WithLimits overrides the page step and list caps.
func WithLimits(l Limits) Option {
	return func(c *Controller) { c.limits = l.withDefaults() }
}

// WithDebounce sets the quiet period for QueryInput.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounceDelay = d }
}

// Controller owns a session's state. Every mutation goes through one of
// its methods, which serialize on a single lock and re-render the current
// view.
type Controller struct {
	id     string
	cat    *catalog.Catalog
	router *router.Router
	log    *zap.Logger

	renderer      Renderer
	mapw          MapWidget
	geo           Geolocator
	limits        Limits
	debounceDelay time.Duration
	debounce      *Debouncer
	unsubscribe   func()

	mu    sync.Mutex
	state State
	last  View
}

// New returns a controller browsing cat, with its route derived from rt.
// Fragment changes made by anyone re-render the controller.
func New(cat *catalog.Catalog, rt *router.Router, opts ...Option) *Controller {
	c := &Controller{
		id:            uuid.NewString(),
		cat:           cat,
		router:        rt,
		limits:        DefaultLimits(),
		debounceDelay: DefaultDebounce,
	}
	for _, o := range opts {
		o(c)
	}
	c.log = zap.L().With(zap.String("session_id", c.id))
	c.debounce = NewDebouncer(c.debounceDelay)
	c.state = NewState(c.limits.PageStep)
	c.state.Route = rt.Current()
	c.unsubscribe = rt.OnChange(c.onRoute)
	return c
}

// ID identifies the session in logs.
func (c *Controller) ID() string { return c.id }

// Close stops listening to the fragment store and drops any pending query
// edit.
func (c *Controller) Close() {
	c.debounce.Stop()
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.state
	if st.UserPoint != nil {
		p := *st.UserPoint
		st.UserPoint = &p
	}
	return st
}

// LastView returns the most recently rendered view.
func (c *Controller) LastView() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Render re-reads the route from the fragment store and renders it.
func (c *Controller) Render() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renderLocked()
}

// SetUserPoint records the user's position.
func (c *Controller) SetUserPoint(p geo.Point) View {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.UserPoint = &p
	c.log.Debug("session: user point set", zap.Float64("lat", p.Lat), zap.Float64("lon", p.Lon))
	return c.renderLocked()
}

// LocateUser asks the geolocator for a position. Failure keeps the previous
// point. The view is rendered either way.
func (c *Controller) LocateUser(ctx context.Context) View {
	if c.geo == nil {
		c.log.Warn("session: no geolocator configured")
		return c.Render()
	}
	p, err := c.geo.Locate(ctx)
	if err != nil {
		c.log.Warn("session: geolocation failed, keeping previous position", zap.Error(err))
		return c.Render()
	}
	return c.SetUserPoint(p)
}

// SetQuery applies a search query immediately and resets pagination.
func (c *Controller) SetQuery(q string) View {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Query = q
	c.state.Pager.Reset()
	return c.renderLocked()
}

// QueryInput applies q after the debounce quiet period. Only the last edit
// of a burst is applied.
func (c *Controller) QueryInput(q string) {
	c.debounce.Trigger(func() { c.SetQuery(q) })
}

// FlushQuery applies a pending debounced edit now. It reports whether one
// was pending.
func (c *Controller) FlushQuery() bool { return c.debounce.Flush() }

// SetCategory selects a category tag, or every category for query.All or
// the empty string, and resets pagination.
func (c *Controller) SetCategory(tag string) View {
	if tag == "" {
		tag = query.All
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Category = tag
	c.state.Pager.Reset()
	return c.renderLocked()
}

// ShowMore reveals one more page of home results.
func (c *Controller) ShowMore() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, _ := Build(c.cat, c.state, c.limits)
	if v.Kind == ViewHome {
		c.state.Pager.More(v.TotalResources)
	}
	return c.renderLocked()
}

// ShowLess hides one page of home results.
func (c *Controller) ShowLess() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Pager.Less()
	return c.renderLocked()
}

// Navigate opens the detail view of the location registered under slug.
// The render happens through the fragment store notification.
func (c *Controller) Navigate(slug string) {
	c.router.Navigate(slug)
}

// GoHome returns to the home view.
func (c *Controller) GoHome() {
	c.router.GoHome()
}

func (c *Controller) onRoute(rt router.Route) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log.Debug("session: route changed", zap.Stringer("kind", rt.Kind), zap.String("slug", rt.Slug))
	c.renderLocked()
}

func (c *Controller) renderLocked() View {
	c.state.Route = c.router.Current()
	v, m := Build(c.cat, c.state, c.limits)
	if v.Kind == ViewNotFound {
		c.log.Info("session: unknown location", zap.String("slug", c.state.Route.Slug))
	}
	if c.mapw != nil {
		c.mapw.Update(m)
	}
	if c.renderer != nil {
		if err := c.renderer.Render(v); err != nil {
			c.log.Error("session: render failed", zap.Error(err))
		}
	}
	c.last = v
	return v
}
