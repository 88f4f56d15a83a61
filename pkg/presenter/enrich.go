package presenter

import (
	"context"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/knowdeps/pkg/locale"
)

// Describer looks up the human-readable description of a package.
// An empty description with a nil error means the registry has none.
type Describer interface {
	Describe(ctx context.Context, name string) (string, error)
}

// DescriberFunc adapts a function to [Describer].
type DescriberFunc func(ctx context.Context, name string) (string, error)

func (f DescriberFunc) Describe(ctx context.Context, name string) (string, error) {
	return f(ctx, name)
}

// Enricher resolves the descriptions of a document's entries.
type Enricher struct {
	Describer Describer
	Links     Links          // zero value uses DefaultLinks
	Strings   locale.Strings // zero value uses locale.English
	Logger    *log.Logger    // nil uses log.Default()
}

// Run enriches every section of doc and sends the updates to sink.
// Sections run concurrently; lookups within a section run sequentially in
// order. Run returns once every section has finished or stopped. The error is
// the first reason a section stopped early: a cancelled context or a sink
// error.
func (e *Enricher) Run(ctx context.Context, doc Document, sink Sink) error {
	var g errgroup.Group
	for _, sec := range doc.Sections {
		sec := sec
		g.Go(func() error {
			return e.runSection(ctx, sec, sink)
		})
	}
	return g.Wait()
}

func (e *Enricher) runSection(ctx context.Context, sec Section, sink Sink) error {
	logger := e.logger()
	logger.Debug("enriching section", "section", sec.Key, "entries", len(sec.Deps))

	for i, dep := range sec.Deps {
		if err := ctx.Err(); err != nil {
			return err
		}

		entry := PendingEntry(dep)
		if err := sink.Send(Event{Kind: EventLookup, Section: sec.Key, Index: i, Entry: entry}); err != nil {
			return err
		}

		desc, err := e.Describer.Describe(ctx, dep.Name)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		entry = e.resolve(entry, desc, err)

		if err := sink.Send(Event{Kind: EventResolved, Section: sec.Key, Index: i, Entry: entry}); err != nil {
			return err
		}
	}

	return sink.Send(Event{Kind: EventSectionDone, Section: sec.Key, Index: len(sec.Deps)})
}

func (e *Enricher) resolve(entry Entry, desc string, err error) Entry {
	strs := e.Strings
	if strs.Tag == "" {
		strs = locale.English
	}

	entry.State = StateResolved
	if err != nil {
		e.logger().Warn("description lookup failed", "package", entry.Name, "err", err)
		entry.Description = strs.Unavailable
		return entry
	}

	links := e.Links
	if links == (Links{}) {
		links = DefaultLinks()
	}

	entry.Available = true
	entry.Description = desc
	if desc == "" {
		entry.Description = strs.NoDescription
	}
	entry.PackageURL = links.Package(entry.Name)
	entry.SearchURL = links.Search(entry.Name)
	return entry
}

func (e *Enricher) logger() *log.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return log.Default()
}
