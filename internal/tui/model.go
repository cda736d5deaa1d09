// Package tui is the terminal front end of the history browser.
package tui

import (
	"context"
	"errors"
	"strings"

	"alpr_gateway/internal/historybrowser"
	"alpr_gateway/internal/logger"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const (
	inputSearch = iota
	inputFrom
	inputTo
	inputCount

	// focusTable means no input has the cursor.
	focusTable = -1
)

// loadedMsg carries the page after a browser operation finished.
type loadedMsg struct {
	page page
	err  error
}

// Model is the bubbletea model hosting one history browser.
type Model struct {
	browser *historybrowser.Browser
	view    *pageView

	inputs  [inputCount]textinput.Model
	focus   int
	page    page
	loading bool
	width   int
}

// New builds a model reading pages from src. Load failures go to log.
func New(src historybrowser.Source, log *logger.Logger, limit int) Model {
	view := &pageView{}
	m := Model{
		browser: historybrowser.New(src, view, log, historybrowser.WithLimit(limit)),
		view:    view,
		focus:   focusTable,
	}

	placeholders := [inputCount]string{
		inputSearch: "plate fragment",
		inputFrom:   "YYYY-MM-DD[ HH:MM]",
		inputTo:     "YYYY-MM-DD[ HH:MM]",
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 32
		ti.Width = 20
		m.inputs[i] = ti
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return m.run(m.browser.Load)
}

// run executes a browser operation off the update loop.
func (m Model) run(op func(context.Context) error) tea.Cmd {
	view := m.view
	return func() tea.Msg {
		err := op(context.Background())
		return loadedMsg{page: view.snapshot(), err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case loadedMsg:
		if errors.Is(msg.err, historybrowser.ErrSuperseded) {
			return m, nil
		}
		m.loading = false
		// Failures are already logged; the previous page stays on screen.
		if msg.err == nil {
			m.page = msg.page
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "enter":
		search := strings.TrimSpace(m.inputs[inputSearch].Value())
		from := strings.TrimSpace(m.inputs[inputFrom].Value())
		to := strings.TrimSpace(m.inputs[inputTo].Value())
		m.setFocus(focusTable)
		m.loading = true
		return m, m.run(func(ctx context.Context) error {
			return m.browser.ApplyFilters(ctx, search, from, to)
		})

	case "ctrl+r":
		for i := range m.inputs {
			m.inputs[i].Reset()
		}
		m.setFocus(focusTable)
		m.loading = true
		return m, m.run(m.browser.ResetFilters)

	case "pgup":
		return m.prev()

	case "pgdown":
		return m.next()

	case "tab":
		cmd := m.setFocus((m.focus+2)%(inputCount+1) - 1)
		return m, cmd

	case "shift+tab":
		cmd := m.setFocus((m.focus+inputCount+1)%(inputCount+1) - 1)
		return m, cmd

	case "esc":
		m.setFocus(focusTable)
		return m, nil
	}

	if m.focus == focusTable {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			return m.prev()
		case "right", "l":
			return m.next()
		case "/":
			cmd := m.setFocus(inputSearch)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) prev() (tea.Model, tea.Cmd) {
	if !m.page.pagination.Prev {
		return m, nil
	}
	m.loading = true
	return m, m.run(m.browser.PrevPage)
}

func (m Model) next() (tea.Model, tea.Cmd) {
	if !m.page.pagination.Next {
		return m, nil
	}
	m.loading = true
	return m, m.run(m.browser.NextPage)
}

// setFocus moves the cursor to input i, or to the table for focusTable.
func (m *Model) setFocus(i int) tea.Cmd {
	m.focus = i
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == i {
			cmd = m.inputs[j].Focus()
			continue
		}
		m.inputs[j].Blur()
	}
	return cmd
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("ALPR history"))
	b.WriteString("\n")

	labels := [inputCount]string{"search", "from", "to"}
	for i, in := range m.inputs {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(labels[i]), in.View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.renderTable())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderTable() string {
	rows := make([][]string, 0, len(m.page.rows))
	for _, r := range m.page.rows {
		rows = append(rows, []string{r.Timestamp, r.Plate, r.PointName})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("TIME", "PLATE", "POINT").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	if m.width > 0 {
		t = t.Width(m.width)
	}
	return t.String()
}

func (m Model) renderFooter() string {
	control := func(label string, on bool) string {
		if on {
			return enabledStyle.Render(label)
		}
		return disabledStyle.Render(label)
	}

	status := m.page.summary
	if m.loading {
		status += " …"
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top,
		control("◀ prev", m.page.pagination.Prev), "  ",
		summaryStyle.Render(status), "  ",
		control("next ▶", m.page.pagination.Next),
	)
	help := helpStyle.Render("tab: next field • enter: apply • ctrl+r: reset • pgup/pgdn: page • q: quit")
	return line + "\n" + help
}
