package pixwin

import "sync"

// Handle is an opaque reference to a registry entry.
// The low 32 bits hold the slot index plus one, the high 32 bits the slot
// generation, so a handle to a removed entry never resolves again even when
// its slot is reused. The zero Handle is never issued.
type Handle uint64

// InvalidHandle is returned when no entry could be created.
const InvalidHandle Handle = 0

const noSlot = -1

func makeHandle(index int32, gen uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(uint32(index)+1))
}

func (h Handle) slot() int32 {
	return int32(uint32(h)) - 1
}

func (h Handle) generation() uint32 {
	return uint32(h >> 32)
}

// registryEntry is one arena slot. prev/next are slot indices linking live
// entries in insertion order.
type registryEntry[K comparable, V any] struct {
	key   K
	value V
	gen   uint32
	live  bool
	prev  int32
	next  int32
}

// Registry is an insertion-ordered arena mapping native keys to values.
//
// Entries are addressed by generation-checked Handles. Append and remove are
// O(1): removed slots go on a free list and live slots are chained by index.
// At most one entry exists per key.
//
// Usage:
//
//	reg := pixwin.NewRegistry[pixwin.Window, *Instance]()
//	h, _ := reg.Insert(win, inst)
//	_, inst, ok := reg.Lookup(win) // resolve a native callback
//	reg.Remove(h)
//
// Methods are safe for concurrent use, but no lock is held while callers
// act on returned values.
type Registry[K comparable, V any] struct {
	mu      sync.RWMutex
	entries []registryEntry[K, V]
	free    []int32
	byKey   map[K]Handle
	head    int32
	tail    int32
	size    int
}

// NewRegistry creates an empty registry.
func NewRegistry[K comparable, V any]() *Registry[K, V] {
	return &Registry[K, V]{
		byKey: make(map[K]Handle),
		head:  noSlot,
		tail:  noSlot,
	}
}

// Insert appends an entry for key. It fails with ErrDuplicateKey if key is
// already tracked.
func (r *Registry[K, V]) Insert(key K, value V) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byKey[key]; exists {
		return InvalidHandle, ErrDuplicateKey
	}

	var idx int32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		r.entries = append(r.entries, registryEntry[K, V]{})
		idx = int32(len(r.entries) - 1)
	}

	e := &r.entries[idx]
	e.key = key
	e.value = value
	e.live = true
	e.prev = r.tail
	e.next = noSlot

	if r.tail != noSlot {
		r.entries[r.tail].next = idx
	} else {
		r.head = idx
	}
	r.tail = idx
	r.size++

	h := makeHandle(idx, e.gen)
	r.byKey[key] = h
	return h, nil
}

// resolve returns the slot for h, or nil if h is stale or foreign.
// Callers must hold r.mu.
func (r *Registry[K, V]) resolve(h Handle) *registryEntry[K, V] {
	idx := h.slot()
	if h == InvalidHandle || idx < 0 || int(idx) >= len(r.entries) {
		return nil
	}
	e := &r.entries[idx]
	if !e.live || e.gen != h.generation() {
		return nil
	}
	return e
}

// Get returns the value for h.
func (r *Registry[K, V]) Get(h Handle) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e := r.resolve(h); e != nil {
		return e.value, true
	}
	var zero V
	return zero, false
}

// Lookup resolves a key to its handle and value.
func (r *Registry[K, V]) Lookup(key K) (Handle, V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.byKey[key]
	if !ok {
		var zero V
		return InvalidHandle, zero, false
	}
	return h, r.entries[h.slot()].value, true
}

// Remove deletes the entry for h and returns its value.
// Removing a stale handle is a no-op that reports false.
func (r *Registry[K, V]) Remove(h Handle) (V, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero V
	e := r.resolve(h)
	if e == nil {
		return zero, false
	}
	idx := h.slot()

	if e.prev != noSlot {
		r.entries[e.prev].next = e.next
	} else {
		r.head = e.next
	}
	if e.next != noSlot {
		r.entries[e.next].prev = e.prev
	} else {
		r.tail = e.prev
	}

	value := e.value
	delete(r.byKey, e.key)

	var zeroKey K
	e.key = zeroKey
	e.value = zero
	e.live = false
	e.prev = noSlot
	e.next = noSlot
	e.gen++

	r.free = append(r.free, idx)
	r.size--
	return value, true
}

// Len returns the number of live entries.
func (r *Registry[K, V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.size
}

// handleAt builds the current handle for a live slot. Callers must hold r.mu.
func (r *Registry[K, V]) handleAt(idx int32) Handle {
	if idx == noSlot {
		return InvalidHandle
	}
	return makeHandle(idx, r.entries[idx].gen)
}

// Front returns the oldest entry, or InvalidHandle if empty.
func (r *Registry[K, V]) Front() Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handleAt(r.head)
}

// Back returns the newest entry, or InvalidHandle if empty.
func (r *Registry[K, V]) Back() Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handleAt(r.tail)
}

// Next returns the entry inserted after h, or InvalidHandle.
func (r *Registry[K, V]) Next(h Handle) Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e := r.resolve(h)
	if e == nil {
		return InvalidHandle
	}
	return r.handleAt(e.next)
}

// Prev returns the entry inserted before h, or InvalidHandle.
func (r *Registry[K, V]) Prev(h Handle) Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e := r.resolve(h)
	if e == nil {
		return InvalidHandle
	}
	return r.handleAt(e.prev)
}

// Handles returns all live handles in insertion order.
func (r *Registry[K, V]) Handles() []Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Handle, 0, r.size)
	for idx := r.head; idx != noSlot; idx = r.entries[idx].next {
		out = append(out, r.handleAt(idx))
	}
	return out
}
