package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/knowdeps/pkg/locale"
	"github.com/matzehuels/knowdeps/pkg/presenter"
)

// Panel styles
var (
	panelPendingStyle     = lipgloss.NewStyle().Foreground(colorGray)
	panelDescriptionStyle = lipgloss.NewStyle().Foreground(colorWhite)
	panelUnavailableStyle = lipgloss.NewStyle().Foreground(colorRed)
	panelHelpStyle        = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PanelModel - Interactive dependencies panel
// =============================================================================

// enrichMsg carries one enrichment event into the program.
type enrichMsg presenter.Event

// PanelModel is the bubbletea model of one dependencies panel.
type PanelModel struct {
	doc     presenter.Document
	strings locale.Strings
	entries map[presenter.SectionKey][]presenter.Entry
	done    map[presenter.SectionKey]bool
	spinner spinner.Model
	width   int
}

// NewPanelModel creates a panel showing every entry of doc as pending.
// Sections without entries start done.
func NewPanelModel(doc presenter.Document, s locale.Strings) PanelModel {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = styleIconSpinner

	m := PanelModel{
		doc:     doc,
		strings: s,
		entries: make(map[presenter.SectionKey][]presenter.Entry, len(doc.Sections)),
		done:    make(map[presenter.SectionKey]bool, len(doc.Sections)),
		spinner: sp,
	}
	for _, sec := range doc.Sections {
		m.entries[sec.Key] = sec.Entries()
		m.done[sec.Key] = len(sec.Deps) == 0
	}
	return m
}

func (m PanelModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m PanelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case enrichMsg:
		m.apply(presenter.Event(msg))
	}
	return m, nil
}

// apply updates the panel for ev. Events for unknown sections or positions
// are ignored.
func (m PanelModel) apply(ev presenter.Event) {
	switch ev.Kind {
	case presenter.EventResolved:
		entries := m.entries[ev.Section]
		if ev.Index >= 0 && ev.Index < len(entries) {
			entries[ev.Index] = ev.Entry
		}
	case presenter.EventSectionDone:
		if _, ok := m.entries[ev.Section]; ok {
			m.done[ev.Section] = true
		}
	}
}

// Done reports whether every section has finished.
func (m PanelModel) Done() bool {
	for _, d := range m.done {
		if !d {
			return false
		}
	}
	return true
}

func (m PanelModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.doc.Title))
	if m.doc.Subtitle != "" {
		b.WriteString("  " + StyleDim.Render(m.doc.Subtitle))
	}
	b.WriteString("\n")

	for _, sec := range m.doc.Sections {
		b.WriteString("\n")
		b.WriteString(StyleSection.Render(sec.Title))
		if !m.done[sec.Key] {
			b.WriteString(" " + m.spinner.View())
		}
		b.WriteString("\n")

		entries := m.entries[sec.Key]
		if len(entries) == 0 {
			b.WriteString("  " + StyleDim.Render(m.strings.EmptySection) + "\n")
			continue
		}
		for i, e := range entries {
			b.WriteString(m.entryView(i, e))
		}
	}

	b.WriteString("\n")
	b.WriteString(panelHelpStyle.Render("q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m PanelModel) entryView(i int, e presenter.Entry) string {
	num := fmt.Sprintf("%3d. ", i+1)
	if e.State == presenter.StatePending {
		return num + panelPendingStyle.Render(e.Label()) + "\n"
	}

	var b strings.Builder
	b.WriteString(num + StylePackage.Render(e.Label()) + "\n")
	indent := strings.Repeat(" ", len(num))
	if !e.Available {
		b.WriteString(indent + panelUnavailableStyle.Render(e.Description) + "\n")
		return b.String()
	}

	desc := panelDescriptionStyle
	if m.width > len(num)+10 {
		desc = desc.Width(m.width - len(num))
	}
	for _, line := range strings.Split(desc.Render(e.Description), "\n") {
		b.WriteString(indent + line + "\n")
	}
	b.WriteString(indent +
		StyleDim.Render(m.strings.PackageLinkText+" ") + StyleLink.Render(e.PackageURL) + "  " +
		StyleDim.Render(m.strings.SearchLinkText+" ") + StyleLink.Render(e.SearchURL) + "\n")
	return b.String()
}

// =============================================================================
// Program
// =============================================================================

// runTUI shows doc in a terminal panel and enriches it until the user quits.
// Quitting cancels the enrichment. Log output is held back while the panel
// owns the terminal.
func (c *CLI) runTUI(ctx context.Context, doc presenter.Document, e *presenter.Enricher, s locale.Strings) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var logs lockedWriter
	enricher := *e
	enricher.Logger = newLogger(&logs, c.Logger.GetLevel())

	prog := tea.NewProgram(NewPanelModel(doc, s), tea.WithContext(ctx), tea.WithOutput(c.Stdout))

	sink := presenter.SinkFunc(func(ev presenter.Event) error {
		if ctx.Err() != nil {
			return presenter.ErrClosed
		}
		prog.Send(enrichMsg(ev))
		return nil
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := enricher.Run(ctx, doc, sink); err != nil {
			enricher.Logger.Debug("panel enrichment stopped", "err", err)
		}
	}()

	_, err := prog.Run()
	cancel()
	wg.Wait()

	_, _ = c.Stderr.Write(logs.Bytes())
	if errors.Is(err, tea.ErrProgramKilled) {
		return context.Canceled
	}
	return err
}

// lockedWriter buffers writes from concurrent goroutines.
type lockedWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *lockedWriter) Bytes() []byte {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]byte(nil), w.buf.Bytes()...)
}
