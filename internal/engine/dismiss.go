package engine

import "sync"

// Outside-pointer dismissal. Instead of every engine instance hanging its
// own document-level listener, hosts forward each pointer-down once to
// PointerDown and every registered engine whose containment predicate
// does not claim the target closes itself.

type dismissRegistry struct {
	mu      sync.Mutex
	nextID  uint64
	entries map[uint64]dismissEntry
}

type dismissEntry struct {
	contains func(target any) bool
	close    func()
}

var dismissals = &dismissRegistry{entries: make(map[uint64]dismissEntry)}

func (r *dismissRegistry) register(contains func(any) bool, close func()) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.entries[r.nextID] = dismissEntry{contains: contains, close: close}
	return r.nextID
}

func (r *dismissRegistry) unregister(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

// PointerDown reports a pointer-down on target to every registered
// engine. Engines whose owned region does not contain the target close.
func PointerDown(target any) {
	dismissals.mu.Lock()
	entries := make([]dismissEntry, 0, len(dismissals.entries))
	for _, e := range dismissals.entries {
		entries = append(entries, e)
	}
	dismissals.mu.Unlock()

	for _, e := range entries {
		if !e.contains(target) {
			e.close()
		}
	}
}
