package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wilhasse/go-ibdparse/inspect"
)

type browseModel struct {
	ctx      context.Context
	in       *inspect.Inspector
	numPages uint32
	current  uint32
	report   *inspect.PageReport
	loading  bool
	err      error
	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

type pageLoadedMsg struct {
	pageNo uint32
	report *inspect.PageReport
	err    error
}

func newBrowseModel(ctx context.Context, in *inspect.Inspector, numPages, start uint32) browseModel {
	if numPages > 0 && start >= numPages {
		start = numPages - 1
	}
	return browseModel{ctx: ctx, in: in, numPages: numPages, current: start, loading: true}
}

func runBrowser(ctx context.Context, in *inspect.Inspector, numPages, start uint32) error {
	if numPages == 0 {
		return fmt.Errorf("file holds no complete page")
	}
	_, err := tea.NewProgram(newBrowseModel(ctx, in, numPages, start), tea.WithAltScreen()).Run()
	return err
}

func (m browseModel) Init() tea.Cmd {
	return m.load(m.current)
}

func (m browseModel) load(pageNo uint32) tea.Cmd {
	return func() tea.Msg {
		rep, err := m.in.Page(m.ctx, pageNo)
		return pageLoadedMsg{pageNo: pageNo, report: rep, err: err}
	}
}

func (m browseModel) goTo(pageNo uint32) (browseModel, tea.Cmd) {
	if pageNo == m.current && m.report != nil {
		return m, nil
	}
	m.current = pageNo
	m.loading = true
	return m, m.load(pageNo)
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pageLoadedMsg:
		if msg.pageNo != m.current {
			return m, nil
		}
		m.loading = false
		m.report, m.err = msg.report, msg.err
		m.refresh()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport = viewport.New(msg.Width-4, msg.Height-8)
		m.ready = true
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, browseKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, browseKeys.NextPage):
			if m.current+1 < m.numPages {
				return m.goTo(m.current + 1)
			}
			return m, nil
		case key.Matches(msg, browseKeys.PrevPage):
			if m.current > 0 {
				return m.goTo(m.current - 1)
			}
			return m, nil
		case key.Matches(msg, browseKeys.FirstPage):
			return m.goTo(0)
		case key.Matches(msg, browseKeys.LastPage):
			return m.goTo(m.numPages - 1)
		case key.Matches(msg, browseKeys.Reload):
			m.loading = true
			return m, m.load(m.current)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// refresh renders the current report into the viewport.
func (m *browseModel) refresh() {
	if !m.ready {
		return
	}
	var b strings.Builder
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error reading page %d: %v", m.current, m.err)))
	case m.report != nil:
		outputText(&b, m.report, outputOptions{records: true, verbose: true})
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoTop()
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("InnoDB Page Browser") + "\n")
	header := fmt.Sprintf(" Page %d of %d ", m.current, m.numPages)
	if m.report != nil && m.report.Err == nil && !m.loading {
		header += fmt.Sprintf("| %s ", m.report.TypeName)
	}
	b.WriteString(headerStyle.Render(header) + "\n")

	switch {
	case !m.ready:
		b.WriteString("Initializing...\n")
	case m.loading:
		b.WriteString("Loading page...\n")
	default:
		b.WriteString(m.viewport.View() + "\n")
	}

	if m.report != nil && len(m.report.Warnings) > 0 && !m.loading {
		b.WriteString(warningStyle.Render(fmt.Sprintf("%d warning(s)", len(m.report.Warnings))) + "\n")
	}
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m browseModel) renderStatusBar() string {
	bindings := []key.Binding{
		browseKeys.Up, browseKeys.Down, browseKeys.NextPage, browseKeys.PrevPage,
		browseKeys.FirstPage, browseKeys.LastPage, browseKeys.Reload, browseKeys.Quit,
	}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	status := fmt.Sprintf("%d%%", int(m.viewport.ScrollPercent()*100))
	return helpStyle.Render(strings.Join(parts, " • ")) + "\n" + statusBarStyle.Render(status)
}
