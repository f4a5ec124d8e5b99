package router

// Router derives routes from a FragmentStore and navigates by writing to it.
// It keeps no route of its own.
type Router struct {
	store FragmentStore
}

// New returns a Router over store.
func New(store FragmentStore) *Router {
	return &Router{store: store}
}

// Current parses the store's fragment.
func (r *Router) Current() Route { return Parse(r.store.Get()) }

// Navigate selects the detail view for slug.
func (r *Router) Navigate(slug string) { r.store.Set(Fragment(Detail(slug))) }

// GoHome clears the fragment.
func (r *Router) GoHome() { r.store.Set("") }

// OnChange calls fn with the parsed route whenever the fragment changes,
// whether the router or anyone else wrote it.
func (r *Router) OnChange(fn func(Route)) (cancel func()) {
	return r.store.Subscribe(func(fragment string) {
		fn(Parse(fragment))
	})
}
