package shortcut

import "sync"

// Listener receives key events from a Document.
type Listener func(*Event)

// Document delivers key events to its listeners in registration order.
// Dispatch calls are serialized, so listeners never run concurrently.
type Document struct {
	mu        sync.Mutex
	deliver   sync.Mutex
	nextID    int
	listeners []registration
}

type registration struct {
	id int
	fn Listener
}

// AddListener registers fn and returns a function that removes it.
// The remove function is idempotent.
func (d *Document) AddListener(fn Listener) (remove func()) {
	d.mu.Lock()
	d.nextID++
	id := d.nextID
	d.listeners = append(d.listeners, registration{id: id, fn: fn})
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			for i, r := range d.listeners {
				if r.id == id {
					d.listeners = append(d.listeners[:i:i], d.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// Listeners returns the number of registered listeners.
func (d *Document) Listeners() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}

// Dispatch delivers ev to every listener and reports whether any of them
// prevented the default handling.
func (d *Document) Dispatch(ev *Event) bool {
	d.deliver.Lock()
	defer d.deliver.Unlock()

	d.mu.Lock()
	snapshot := make([]registration, len(d.listeners))
	copy(snapshot, d.listeners)
	d.mu.Unlock()

	for _, r := range snapshot {
		r.fn(ev)
	}
	return ev.DefaultPrevented()
}
