// Package web hosts dependencies panels in the browser.
//
// A [Server] keeps a registry of open panels. Each panel is a rendered
// [presenter.Document] mounted at /panels/{id}/ and a Server-Sent Events
// stream at /panels/{id}/events that runs the enrichment for that panel:
//
//	srv := web.New(web.Options{Enricher: e, Strings: s, Load: load})
//	id := srv.Open(doc)
//	err := srv.Run(ctx, "127.0.0.1:0")
//
// The stream sends one event per enrichment update (lookup, resolved,
// section-done), then a final complete event. The event data is the JSON form
// of [presenter.WireEvent]. Disconnecting, closing the panel, or cancelling
// the server context stops the enrichment of that panel; results that arrive
// afterwards are dropped.
package web
