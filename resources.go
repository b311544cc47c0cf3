package glemu

import "sync"

// Resources tracks GPU-backed objects that must be recreated after a
// context loss.
//
// A Resources is owned by whoever owns the GL context; pass it to
// NewIndexArray with WithResources. It is safe for concurrent use, but the
// tracked objects are not, so InvalidateAll and DisposeAll must run on the
// context's thread.
type Resources struct {
	mu    sync.Mutex
	items []IndexData
}

// NewResources returns an empty registry.
func NewResources() *Resources {
	return &Resources{}
}

// Track adds d. Tracking the same object twice has no effect.
func (r *Resources) Track(d IndexData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it == d {
			return
		}
	}
	r.items = append(r.items, d)
}

// Untrack removes d if present.
func (r *Resources) Untrack(d IndexData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, it := range r.items {
		if it == d {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return
		}
	}
}

// Len returns the number of tracked objects.
func (r *Resources) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// InvalidateAll calls Invalidate on every tracked object and returns how
// many were invalidated. Call it once the replacement context is current.
func (r *Resources) InvalidateAll() int {
	items := r.snapshot()
	for _, d := range items {
		d.Invalidate()
	}
	Logger().Info("glemu: managed resources invalidated", "count", len(items))
	return len(items)
}

// DisposeAll disposes every tracked object and empties the registry.
func (r *Resources) DisposeAll() {
	items := r.snapshot()
	for _, d := range items {
		d.Dispose()
	}

	r.mu.Lock()
	r.items = nil
	r.mu.Unlock()
}

// snapshot copies the tracked list so callbacks may Track or Untrack.
func (r *Resources) snapshot() []IndexData {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]IndexData, len(r.items))
	copy(out, r.items)
	return out
}
