package presenter

import (
	"errors"
	"sync"
)

// EventKind is the kind of update an enrichment loop sends.
type EventKind int

const (
	// EventLookup marks the start of an entry's lookup.
	EventLookup EventKind = iota
	// EventResolved carries the resolved entry.
	EventResolved
	// EventSectionDone follows the last entry of a section. Hosts hide the
	// section's loading indicator.
	EventSectionDone
)

func (k EventKind) String() string {
	switch k {
	case EventLookup:
		return "lookup"
	case EventResolved:
		return "resolved"
	case EventSectionDone:
		return "section-done"
	}
	return "unknown"
}

// Event is one update for a panel. Index is the entry position within the
// section; for EventSectionDone it equals the section length.
type Event struct {
	Kind    EventKind
	Section SectionKey
	Index   int
	Entry   Entry
}

// WireEvent is the JSON form of an event consumed by the HTML document.
type WireEvent struct {
	Section     string `json:"section"`
	Index       int    `json:"index"`
	Description string `json:"description,omitempty"`
	Available   bool   `json:"available"`
	PackageURL  string `json:"packageUrl,omitempty"`
	SearchURL   string `json:"searchUrl,omitempty"`
}

// Wire converts e to its JSON form.
func (e Event) Wire() WireEvent {
	return WireEvent{
		Section:     string(e.Section),
		Index:       e.Index,
		Description: e.Entry.Description,
		Available:   e.Entry.Available,
		PackageURL:  e.Entry.PackageURL,
		SearchURL:   e.Entry.SearchURL,
	}
}

// ErrClosed is returned by sinks whose panel has gone away.
var ErrClosed = errors.New("panel closed")

// Sink receives events. Send is called from one goroutine per section, so
// implementations must be safe for concurrent use. A non-nil error stops the
// calling section.
type Sink interface {
	Send(Event) error
}

// SinkFunc adapts a function to [Sink].
type SinkFunc func(Event) error

func (f SinkFunc) Send(e Event) error { return f(e) }

// Collector is a Sink that records every event.
type Collector struct {
	mu     sync.Mutex
	events []Event
}

func (c *Collector) Send(e Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
	return nil
}

// Events returns a copy of all recorded events in arrival order.
func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.events...)
}

// Section returns the recorded events of one section in arrival order.
func (c *Collector) Section(key SectionKey) []Event {
	var out []Event
	for _, e := range c.Events() {
		if e.Section == key {
			out = append(out, e)
		}
	}
	return out
}

// Resolved returns the resolved entries of a section, indexed by position.
func (c *Collector) Resolved(key SectionKey) map[int]Entry {
	out := make(map[int]Entry)
	for _, e := range c.Section(key) {
		if e.Kind == EventResolved {
			out[e.Index] = e.Entry
		}
	}
	return out
}
