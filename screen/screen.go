package screen

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

type partEntry struct {
	name  string
	part  *Part
	order int
	index int // insertion order for stable sort
}

// Screen is one logical UI surface: named parts painted in (order, insertion) order.
// Producers run without the screen lock held, so they may read the screen; changes they
// make take effect on the next pass.
type Screen struct {
	mu      sync.Mutex
	id      uuid.UUID
	name    string
	entries []partEntry
	seq     int

	// Last frame written, for Options.SkipUnchanged
	lastFrame string
	hasLast   bool
}

// NewScreen creates an empty screen
func NewScreen(name string) *Screen {
	return &Screen{
		id:      uuid.New(),
		name:    name,
		entries: make([]partEntry, 0, 8),
	}
}

func (s *Screen) ID() uuid.UUID { return s.id }

func (s *Screen) Name() string { return s.name }

// AddPart inserts part under name. Replacing an existing name keeps its insertion slot
// and takes the new part's Order.
func (s *Screen) AddPart(name string, part *Part) {
	if part == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.find(name); i >= 0 {
		e := s.entries[i]
		s.removeAt(i)
		e.part = part
		e.order = part.Order
		s.insert(e)
		return
	}

	s.insert(partEntry{name: name, part: part, order: part.Order, index: s.seq})
	s.seq++
}

// RemovePart drops name; a missing name is a no-op
func (s *Screen) RemovePart(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.find(name); i >= 0 {
		s.removeAt(i)
	}
}

// RemoveAllParts empties the screen
func (s *Screen) RemoveAllParts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = s.entries[:0]
}

// SetOrder moves a part without reinsertion, reports whether name exists.
// The order is kept on this screen only; the Part itself is not modified.
func (s *Screen) SetOrder(name string, order int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.find(name)
	if i < 0 {
		return false
	}
	e := s.entries[i]
	s.removeAt(i)
	e.order = order
	s.insert(e)
	return true
}

// Part returns the part under name
func (s *Screen) Part(name string) (*Part, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.find(name); i >= 0 {
		return s.entries[i].part, true
	}
	return nil, false
}

// Names lists part names in paint order
func (s *Screen) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.name
	}
	return names
}

func (s *Screen) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// compose concatenates all parts from a snapshot of the entries; failures are reported
// per producer
func (s *Screen) compose() (string, []*PartError) {
	s.mu.Lock()
	entries := make([]partEntry, len(s.entries))
	copy(entries, s.entries)
	s.mu.Unlock()

	var b strings.Builder
	var errs []*PartError
	for _, e := range entries {
		for _, f := range e.part.render(&b) {
			errs = append(errs, &PartError{
				ScreenID: s.id,
				Screen:   s.name,
				Part:     e.name,
				Segment:  f.index,
				Err:      f.err,
			})
		}
	}
	return b.String(), errs
}

func (s *Screen) find(name string) int {
	for i, e := range s.entries {
		if e.name == name {
			return i
		}
	}
	return -1
}

func (s *Screen) removeAt(i int) {
	copy(s.entries[i:], s.entries[i+1:])
	s.entries = s.entries[:len(s.entries)-1]
}

// insert keeps entries sorted via insertion sort on (order, index)
func (s *Screen) insert(e partEntry) {
	pos := len(s.entries)
	for i, cur := range s.entries {
		if e.order < cur.order || (e.order == cur.order && e.index < cur.index) {
			pos = i
			break
		}
	}
	s.entries = append(s.entries, partEntry{})
	copy(s.entries[pos+1:], s.entries[pos:])
	s.entries[pos] = e
}
