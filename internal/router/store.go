package router

import "sync"

// FragmentStore holds the address fragment that is the source of truth for
// the current route.
type FragmentStore interface {
	Get() string
	Set(fragment string)
	// Subscribe registers fn for every fragment change and returns a
	// function that removes it.
	Subscribe(fn func(fragment string)) (cancel func())
}

// MemoryStore is an in-process FragmentStore with browser-like history.
// It is safe for concurrent use. Subscribers are called synchronously after
// the store lock is released.
type MemoryStore struct {
	mu      sync.Mutex
	history []string
	pos     int
	subs    map[int]func(string)
	nextSub int
}

// NewMemoryStore returns a store positioned at initial.
func NewMemoryStore(initial string) *MemoryStore {
	return &MemoryStore{
		history: []string{initial},
		subs:    make(map[int]func(string)),
	}
}

// Get returns the current fragment.
func (s *MemoryStore) Get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history[s.pos]
}

// Set pushes fragment onto the history, discarding forward entries. Setting
// the current value is a no-op and notifies nobody.
func (s *MemoryStore) Set(fragment string) {
	s.mu.Lock()
	if s.history[s.pos] == fragment {
		s.mu.Unlock()
		return
	}
	s.history = append(s.history[:s.pos+1], fragment)
	s.pos++
	subs := s.snapshot()
	s.mu.Unlock()
	notify(subs, fragment)
}

// Back moves one entry back in history. It reports false at the start.
func (s *MemoryStore) Back() bool { return s.move(-1) }

// Forward moves one entry forward in history. It reports false at the end.
func (s *MemoryStore) Forward() bool { return s.move(1) }

func (s *MemoryStore) move(delta int) bool {
	s.mu.Lock()
	next := s.pos + delta
	if next < 0 || next >= len(s.history) {
		s.mu.Unlock()
		return false
	}
	s.pos = next
	fragment := s.history[next]
	subs := s.snapshot()
	s.mu.Unlock()
	notify(subs, fragment)
	return true
}

// Subscribe registers fn for every fragment change.
func (s *MemoryStore) Subscribe(fn func(string)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// History returns a copy of the history and the current position.
func (s *MemoryStore) History() ([]string, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.history...), s.pos
}

func (s *MemoryStore) snapshot() []func(string) {
	out := make([]func(string), 0, len(s.subs))
	for id := 0; id < s.nextSub; id++ {
		if fn, ok := s.subs[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func notify(subs []func(string), fragment string) {
	for _, fn := range subs {
		fn(fragment)
	}
}
