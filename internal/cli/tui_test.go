package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/knowdeps/pkg/locale"
	"github.com/matzehuels/knowdeps/pkg/manifest"
	"github.com/matzehuels/knowdeps/pkg/presenter"
)

func leftPadPanel(t *testing.T) PanelModel {
	t.Helper()
	m, err := manifest.Parse([]byte(`{"dependencies":{"left-pad":"1.0.0","broken":"2.0.0"},"devDependencies":{}}`))
	if err != nil {
		t.Fatal(err)
	}
	return NewPanelModel(presenter.New(m, locale.English), locale.English)
}

func update(t *testing.T, m PanelModel, msg tea.Msg) PanelModel {
	t.Helper()
	next, _ := m.Update(msg)
	pm, ok := next.(PanelModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return pm
}

func TestPanelModelInitialView(t *testing.T) {
	m := leftPadPanel(t)
	view := m.View()

	for _, want := range []string{"Project Dependencies", "Dependencies", "Dev Dependencies", "left-pad (1.0.0)", "broken (2.0.0)", "none"} {
		if !strings.Contains(view, want) {
			t.Errorf("initial view missing %q:\n%s", want, view)
		}
	}
	if m.Done() {
		t.Error("panel with pending entries reports done")
	}
	if !m.done[presenter.SectionDev] {
		t.Error("empty dev section should start done")
	}
}

func TestPanelModelEnrichment(t *testing.T) {
	m := leftPadPanel(t)
	links := presenter.DefaultLinks()

	m = update(t, m, enrichMsg{
		Kind:    presenter.EventResolved,
		Section: presenter.SectionRuntime,
		Index:   0,
		Entry: presenter.Entry{
			Name: "left-pad", Version: "1.0.0", State: presenter.StateResolved,
			Description: "String left pad", Available: true,
			PackageURL: links.Package("left-pad"), SearchURL: links.Search("left-pad"),
		},
	})
	m = update(t, m, enrichMsg{
		Kind:    presenter.EventResolved,
		Section: presenter.SectionRuntime,
		Index:   1,
		Entry: presenter.Entry{
			Name: "broken", Version: "2.0.0", State: presenter.StateResolved,
			Description: "description unavailable",
		},
	})

	view := m.View()
	for _, want := range []string{"String left pad", "https://www.npmjs.com/package/left-pad", "https://github.com/search?q=left-pad", "description unavailable"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "https://www.npmjs.com/package/broken") {
		t.Error("unavailable entry shows links")
	}

	m = update(t, m, enrichMsg{Kind: presenter.EventSectionDone, Section: presenter.SectionRuntime, Index: 2})
	if !m.Done() {
		t.Error("panel not done after every section finished")
	}
}

func TestPanelModelIgnoresStrayEvents(t *testing.T) {
	m := leftPadPanel(t)
	before := m.View()

	m = update(t, m, enrichMsg{Kind: presenter.EventResolved, Section: presenter.SectionRuntime, Index: 7})
	m = update(t, m, enrichMsg{Kind: presenter.EventResolved, Section: "peerDependencies", Index: 0})
	m = update(t, m, enrichMsg{Kind: presenter.EventSectionDone, Section: "peerDependencies"})

	if m.View() != before {
		t.Error("stray events changed the panel")
	}
}

func TestPanelModelQuit(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		t.Run(key.String(), func(t *testing.T) {
			_, cmd := leftPadPanel(t).Update(key)
			if cmd == nil {
				t.Fatal("no command returned")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("key did not quit the panel")
			}
		})
	}
}
