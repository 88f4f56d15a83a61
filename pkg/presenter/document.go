package presenter

import (
	"fmt"

	"github.com/matzehuels/knowdeps/pkg/locale"
	"github.com/matzehuels/knowdeps/pkg/manifest"
)

// SectionKey identifies a section. It matches the manifest field name.
type SectionKey string

const (
	SectionRuntime SectionKey = "dependencies"
	SectionDev     SectionKey = "devDependencies"
)

// Section is one titled list of the panel.
type Section struct {
	Key   SectionKey
	Title string
	Deps  manifest.Dependencies
}

// LoadingID is the element ID of the section's loading indicator.
func (s Section) LoadingID() string { return string(s.Key) + "-loading" }

// Entries returns the section's entries in their initial pending state.
func (s Section) Entries() []Entry {
	entries := make([]Entry, len(s.Deps))
	for i, dep := range s.Deps {
		entries[i] = PendingEntry(dep)
	}
	return entries
}

// Document is the content of one dependencies panel.
type Document struct {
	Title    string
	Subtitle string
	Sections []Section
}

// New builds the document for m. The runtime section comes first.
func New(m *manifest.Manifest, s locale.Strings) Document {
	doc := Document{
		Title: s.PanelTitle,
		Sections: []Section{
			{Key: SectionRuntime, Title: s.RuntimeTitle, Deps: m.Dependencies},
			{Key: SectionDev, Title: s.DevTitle, Deps: m.DevDependencies},
		},
	}
	switch {
	case m.Name != "" && m.Version != "":
		doc.Subtitle = m.Name + "@" + m.Version
	case m.Name != "":
		doc.Subtitle = m.Name
	}
	return doc
}

// Section returns the section with the given key.
func (d Document) Section(key SectionKey) (Section, bool) {
	for _, s := range d.Sections {
		if s.Key == key {
			return s, true
		}
	}
	return Section{}, false
}

// Size returns the total number of entries.
func (d Document) Size() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Deps)
	}
	return n
}

// State is the lifecycle state of an entry.
type State int

const (
	StatePending State = iota
	StateResolved
)

func (s State) String() string {
	if s == StateResolved {
		return "resolved"
	}
	return "pending"
}

// Entry is one dependency as shown in the panel.
type Entry struct {
	Name    string
	Version string
	State   State

	// Set once resolved.
	Description string
	Available   bool // false when the lookup failed
	PackageURL  string
	SearchURL   string
}

// PendingEntry returns the initial entry for dep.
func PendingEntry(dep manifest.Dependency) Entry {
	return Entry{Name: dep.Name, Version: dep.Version, State: StatePending}
}

// Label renders "name (version)".
func (e Entry) Label() string {
	return fmt.Sprintf("%s (%s)", e.Name, e.Version)
}
