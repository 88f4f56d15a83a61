// Package presenter turns two dependency maps into a dependencies panel and
// enriches its entries with registry descriptions.
//
// # Document
//
// [New] builds a [Document]: a title plus one [Section] per map, runtime
// first. Every entry starts in the pending state and shows its name and
// version right away. [RenderHTML] writes the document as a self-contained
// page that embeds both maps as a JSON payload.
//
// # Enrichment
//
// [Enricher.Run] resolves descriptions. The two sections run concurrently and
// independently. Inside a section, lookups run one at a time in manifest
// order, and each result is sent to a [Sink] as soon as it arrives:
//
//	e := &presenter.Enricher{Describer: npmClient, Links: presenter.DefaultLinks(), Strings: locale.English}
//	err := e.Run(ctx, doc, presenter.SinkFunc(func(ev presenter.Event) error {
//	    fmt.Println(ev.Kind, ev.Section, ev.Index, ev.Entry.Description)
//	    return nil
//	}))
//
// A failed lookup turns into the "description unavailable" placeholder and a
// warning log line. The loop then moves on. A lookup that succeeds without a
// description gets "no description".
//
// # Closed panels
//
// When the context is cancelled or the sink returns an error, the affected
// section stops without touching further entries. Run reports the cause, and
// hosts treat it as a closed panel rather than a failure.
package presenter
