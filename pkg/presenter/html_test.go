package presenter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/knowdeps/pkg/locale"
	"github.com/matzehuels/knowdeps/pkg/manifest"
)

func render(t *testing.T, doc Document, s locale.Strings) string {
	t.Helper()
	var buf bytes.Buffer
	if err := RenderHTML(&buf, doc, s); err != nil {
		t.Fatalf("RenderHTML() error: %v", err)
	}
	return buf.String()
}

func payloadOf(t *testing.T, html string) Payload {
	t.Helper()
	const open = `<script type="application/json" id="payload">`
	start := strings.Index(html, open)
	if start < 0 {
		t.Fatal("document has no payload script")
	}
	rest := html[start+len(open):]
	end := strings.Index(rest, "</script>")
	if end < 0 {
		t.Fatal("payload script is not closed")
	}
	var p Payload
	if err := json.Unmarshal([]byte(strings.TrimSpace(rest[:end])), &p); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	return p
}

func TestRenderHTMLPendingEntries(t *testing.T) {
	tests := []struct {
		name         string
		runtime, dev manifest.Dependencies
	}{
		{"both empty", deps(), deps()},
		{"runtime only", deps("left-pad", "1.0.0"), deps()},
		{"dev only", deps(), deps("jest", "^29.0.0", "eslint", "^8.0.0")},
		{"both", deps("a", "1", "b", "2", "c", "3"), deps("d", "4")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := render(t, testDoc(tt.runtime, tt.dev), locale.English)

			if got := strings.Count(html, `data-section="dependencies"`); got != len(tt.runtime) {
				t.Errorf("runtime entries = %d, want %d", got, len(tt.runtime))
			}
			if got := strings.Count(html, `data-section="devDependencies"`); got != len(tt.dev) {
				t.Errorf("dev entries = %d, want %d", got, len(tt.dev))
			}
			if got := strings.Count(html, `class="pending"`); got != len(tt.runtime)+len(tt.dev) {
				t.Errorf("pending entries = %d, want %d", got, len(tt.runtime)+len(tt.dev))
			}
		})
	}
}

func TestRenderHTMLLeftPad(t *testing.T) {
	html := render(t, testDoc(deps("left-pad", "1.0.0"), deps()), locale.English)

	for _, want := range []string{
		"<title>Project Dependencies</title>",
		"<h1>Dependencies ",
		"<h1>Dev Dependencies ",
		`<ol id="dependencies">`,
		`<ol id="devDependencies">`,
		"<strong>left-pad</strong> (1.0.0)",
		`new EventSource('events')`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("document missing %q", want)
		}
	}

	if !strings.Contains(html, `id="devDependencies-loading" hidden`) {
		t.Error("empty dev section should render its loading indicator hidden")
	}
	if strings.Contains(html, `id="dependencies-loading" hidden`) {
		t.Error("runtime section with entries should show its loading indicator")
	}
}

func TestRenderHTMLPayloadOrder(t *testing.T) {
	runtime := deps("zeta", "1", "alpha", "2", "mid", "3")
	html := render(t, testDoc(runtime, nil), locale.English)
	p := payloadOf(t, html)

	if len(p.Sections) != 2 {
		t.Fatalf("payload sections = %d, want 2", len(p.Sections))
	}
	if p.Sections[0].Key != "dependencies" || p.Sections[1].Key != "devDependencies" {
		t.Errorf("section keys = %q, %q", p.Sections[0].Key, p.Sections[1].Key)
	}
	var got []string
	for _, d := range p.Sections[0].Deps {
		got = append(got, d.Name)
	}
	want := []string{"zeta", "alpha", "mid"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("payload order = %v, want %v", got, want)
	}
	if p.Sections[1].Deps == nil || len(p.Sections[1].Deps) != 0 {
		t.Errorf("absent dev map = %v, want empty", p.Sections[1].Deps)
	}
	if p.Strings.NoDescription != "no description" || p.Strings.Unavailable != "description unavailable" {
		t.Errorf("payload strings = %+v", p.Strings)
	}

	zeta := strings.Index(html, "<strong>zeta</strong>")
	alpha := strings.Index(html, "<strong>alpha</strong>")
	if zeta < 0 || alpha < 0 || zeta > alpha {
		t.Error("list entries are not in manifest order")
	}
}

func TestRenderHTMLIdentical(t *testing.T) {
	doc := testDoc(deps("react", "^18.2.0"), deps("typescript", "~5.0.0"))
	first := render(t, doc, locale.English)
	second := render(t, doc, locale.English)
	if first != second {
		t.Error("rendering the same document twice produced different bytes")
	}
}

func TestRenderHTMLEscaping(t *testing.T) {
	html := render(t, testDoc(deps("<script>alert(1)</script>", "1.0.0"), nil), locale.English)
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Error("package name was not escaped")
	}
	p := payloadOf(t, html)
	if got := p.Sections[0].Deps[0].Name; got != "<script>alert(1)</script>" {
		t.Errorf("payload name = %q", got)
	}
}

func TestRenderHTMLLocalized(t *testing.T) {
	html := render(t, New(&manifest.Manifest{}, locale.Chinese), locale.Chinese)
	if !strings.Contains(html, `<html lang="zh-CN">`) {
		t.Error("document language is not zh-CN")
	}
	if !strings.Contains(html, "<title>"+locale.Chinese.PanelTitle+"</title>") {
		t.Error("document title is not localized")
	}
}
