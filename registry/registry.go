package registry

import (
	"sync"

	"github.com/wippyai/mexbind"
	"github.com/wippyai/mexbind/errors"
)

// Event types for entry lifecycle notifications.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDestroyed
)

// Event describes an entry lifecycle transition.
type Event struct {
	Value any
	Token mexbind.Token
	Tag   string
	Type  EventType
}

// Observer receives notifications about entry lifecycle events.
type Observer interface {
	OnRegistryEvent(Event)
}

// Dropper is optionally implemented by stored values that need cleanup when
// their entry is destroyed. Drop is called exactly once.
type Dropper interface {
	Drop()
}

// slot is one entry in the table. A slot is either live (owns an object,
// tag set) or dead (tag cleared, object released, index on the free list).
type slot struct {
	value any
	tag   string
	gen   uint32
	live  bool
}

// Registry is the handle table: a dense slice of tagged slots plus a free
// list. Tokens encode generation (high 32 bits) and slot index plus one
// (low 32 bits), so token 0 is never minted.
type Registry struct {
	slots     []slot
	free      []uint32
	mu        sync.Mutex
	observers []Observer
	obsMu     sync.RWMutex
	closed    bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		slots: make([]slot, 0, 16),
	}
}

func makeToken(idx, gen uint32) mexbind.Token {
	return mexbind.Token(gen)<<32 | mexbind.Token(idx+1)
}

// lookup validates tok and returns the slot index. Caller holds r.mu.
func (r *Registry) lookup(tok mexbind.Token) (uint32, *errors.Error) {
	low := uint32(tok)
	if low == 0 {
		return 0, errors.InvalidHandle("handle is empty")
	}
	idx := low - 1
	if int(idx) >= len(r.slots) {
		return 0, errors.InvalidHandle("handle does not denote a registry entry")
	}
	s := &r.slots[idx]
	if !s.live || s.gen != uint32(tok>>32) {
		return 0, errors.InvalidHandle("handle has already been destroyed or is stale")
	}
	return idx, nil
}

// Create stores obj in a fresh slot tagged with the class identity and
// returns its token. The registry takes sole ownership of obj until Destroy
// or Close.
func (r *Registry) Create(tag string, obj any) mexbind.Token {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return 0
	}

	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
		s := &r.slots[idx]
		s.value = obj
		s.tag = tag
		s.live = true
	} else {
		idx = uint32(len(r.slots))
		r.slots = append(r.slots, slot{value: obj, tag: tag, live: true})
	}
	tok := makeToken(idx, r.slots[idx].gen)
	r.mu.Unlock()

	r.notify(Event{Type: EventCreated, Token: tok, Tag: tag, Value: obj})
	return tok
}

// Resolve validates tok and returns the live object it denotes. The token
// must denote an existing, still-live slot whose class tag equals tag;
// anything else fails with an invalid-handle error.
func (r *Registry) Resolve(tok mexbind.Token, tag string) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, err := r.lookup(tok)
	if err != nil {
		return nil, err
	}
	s := &r.slots[idx]
	if s.tag != tag {
		return nil, errors.InvalidHandle("handle is not wrapping an instance of " + tag)
	}
	return s.value, nil
}

// Destroy invalidates the entry and releases its object, calling Drop if
// the value implements Dropper. Destroying an already-destroyed or stale
// token fails with an invalid-handle error and releases nothing.
func (r *Registry) Destroy(tok mexbind.Token) (any, error) {
	r.mu.Lock()

	idx, err := r.lookup(tok)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}

	s := &r.slots[idx]
	value := s.value
	tag := s.tag

	// Invalidate before releasing: any in-flight resolve of this token now
	// fails instead of observing a half-dead slot.
	s.live = false
	s.tag = ""
	s.value = nil
	s.gen++
	r.free = append(r.free, idx)
	r.mu.Unlock()

	if d, ok := value.(Dropper); ok {
		d.Drop()
	}

	r.notify(Event{Type: EventDestroyed, Token: tok, Tag: tag, Value: value})
	return value, nil
}

// Len returns the number of live entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for i := range r.slots {
		if r.slots[i].live {
			n++
		}
	}
	return n
}

// Each iterates over all live entries.
func (r *Registry) Each(fn func(tok mexbind.Token, tag string, value any) bool) {
	r.mu.Lock()
	type live struct {
		value any
		tok   mexbind.Token
		tag   string
	}
	entries := make([]live, 0, len(r.slots))
	for i := range r.slots {
		if r.slots[i].live {
			entries = append(entries, live{r.slots[i].value, makeToken(uint32(i), r.slots[i].gen), r.slots[i].tag})
		}
	}
	r.mu.Unlock()

	for _, e := range entries {
		if !fn(e.tok, e.tag, e.value) {
			break
		}
	}
}

// Close destroys every live entry and stops accepting new ones. Values
// implementing Dropper are dropped exactly once.
func (r *Registry) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	var toks []mexbind.Token
	r.Each(func(tok mexbind.Token, _ string, _ any) bool {
		toks = append(toks, tok)
		return true
	})
	for _, tok := range toks {
		r.Destroy(tok) //nolint:errcheck // entries cannot vanish between Each and Destroy under Close
	}
	return nil
}

// Subscribe adds an observer for lifecycle events.
func (r *Registry) Subscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	r.observers = append(r.observers, o)
}

// Unsubscribe removes an observer.
func (r *Registry) Unsubscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	for i, obs := range r.observers {
		if obs == o {
			r.observers = append(r.observers[:i], r.observers[i+1:]...)
			return
		}
	}
}

func (r *Registry) notify(e Event) {
	r.obsMu.RLock()
	defer r.obsMu.RUnlock()
	for _, o := range r.observers {
		o.OnRegistryEvent(e)
	}
}
