package presenter

import (
	_ "embed"
	"html/template"
	"io"

	"github.com/matzehuels/knowdeps/pkg/locale"
	"github.com/matzehuels/knowdeps/pkg/manifest"
)

//go:embed panel.html.tmpl
var panelTemplate string

var panelTmpl = template.Must(template.New("panel").Parse(panelTemplate))

type htmlSection struct {
	Key       string
	Title     string
	LoadingID string
	Entries   []Entry
}

type htmlData struct {
	Lang     string
	Title    string
	Subtitle string
	Sections []htmlSection
	Payload  Payload
}

// Payload is the state embedded in the HTML document. The document's script
// reads it instead of calling back into the host.
type Payload struct {
	Sections []PayloadSection `json:"sections"`
	Strings  PayloadStrings   `json:"strings"`
}

type PayloadSection struct {
	Key  string                `json:"key"`
	Deps manifest.Dependencies `json:"deps"`
}

type PayloadStrings struct {
	NoDescription string `json:"noDescription"`
	Unavailable   string `json:"unavailable"`
	PackageLink   string `json:"packageLink"`
	SearchLink    string `json:"searchLink"`
}

// NewPayload serializes both maps of doc in section order.
func NewPayload(doc Document, s locale.Strings) Payload {
	p := Payload{
		Strings: PayloadStrings{
			NoDescription: s.NoDescription,
			Unavailable:   s.Unavailable,
			PackageLink:   s.PackageLinkText,
			SearchLink:    s.SearchLinkText,
		},
	}
	for _, sec := range doc.Sections {
		deps := sec.Deps
		if deps == nil {
			deps = manifest.Dependencies{}
		}
		p.Sections = append(p.Sections, PayloadSection{Key: string(sec.Key), Deps: deps})
	}
	return p
}

// RenderHTML writes doc as a standalone page. Every entry is present in its
// pending state, and a section without entries has its loading indicator
// hidden. The page subscribes to the relative "events" stream for updates, so
// identical documents render identical bytes wherever they are mounted.
func RenderHTML(w io.Writer, doc Document, s locale.Strings) error {
	data := htmlData{
		Lang:     s.Tag,
		Title:    doc.Title,
		Subtitle: doc.Subtitle,
		Payload:  NewPayload(doc, s),
	}
	for _, sec := range doc.Sections {
		data.Sections = append(data.Sections, htmlSection{
			Key:       string(sec.Key),
			Title:     sec.Title,
			LoadingID: sec.LoadingID(),
			Entries:   sec.Entries(),
		})
	}
	return panelTmpl.Execute(w, data)
}
