package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/matzehuels/knowdeps/pkg/locale"
	"github.com/matzehuels/knowdeps/pkg/presenter"
)

// textPanel renders a panel as a stream of lines. It is the sink of the
// enrichment; sections send concurrently, so writes are serialized.
type textPanel struct {
	mu      sync.Mutex
	w       io.Writer
	doc     presenter.Document
	strings locale.Strings
}

// runText prints doc, then one block per resolved entry as the enrichment
// proceeds. It returns when every section is done or ctx ends.
func runText(ctx context.Context, w io.Writer, doc presenter.Document, e *presenter.Enricher, s locale.Strings) error {
	p := &textPanel{w: w, doc: doc, strings: s}
	p.header()
	return e.Run(ctx, doc, p)
}

func (p *textPanel) header() {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(p.w, StyleTitle.Render(p.doc.Title))
	if p.doc.Subtitle != "" {
		fmt.Fprintln(p.w, StyleDim.Render(p.doc.Subtitle))
	}
	for _, sec := range p.doc.Sections {
		fmt.Fprintln(p.w)
		fmt.Fprintln(p.w, StyleSection.Render(sec.Title))
		entries := sec.Entries()
		if len(entries) == 0 {
			printDetail(p.w, "%s", p.strings.EmptySection)
			continue
		}
		for i, e := range entries {
			fmt.Fprintf(p.w, "  %d. %s\n", i+1, e.Label())
		}
	}
	fmt.Fprintln(p.w)
}

func (p *textPanel) Send(ev presenter.Event) error {
	if ev.Kind == presenter.EventLookup {
		return nil
	}

	sec, ok := p.doc.Section(ev.Section)
	if !ok {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	switch ev.Kind {
	case presenter.EventResolved:
		e := ev.Entry
		fmt.Fprintf(p.w, "%s %s %s\n", StyleDim.Render(sec.Title), StyleDim.Render(iconInfo), StylePackage.Render(e.Label()))
		if !e.Available {
			fmt.Fprintln(p.w, "  "+StyleWarning.Render(e.Description))
			return nil
		}
		printDetail(p.w, "%s", e.Description)
		printLink(p.w, p.strings.PackageLinkText, e.PackageURL)
		printLink(p.w, p.strings.SearchLinkText, e.SearchURL)
	case presenter.EventSectionDone:
		printSuccess(p.w, p.strings.SectionLoaded, sec.Title)
	}
	return nil
}
