package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/deep-field/internal/storage"
)

// Logbook layout constants
const (
	maxLogbookEntries = 200
	minTableHeight    = 3
)

type logbookView int

const (
	viewEntries logbookView = iota
	viewObjects
)

// LogbookModel is the Bubble Tea model for browsing the observation logbook.
type LogbookModel struct {
	entries  []storage.Entry
	objects  []storage.ObjectStats
	summary  storage.Summary
	view     logbookView
	table    table.Model
	help     help.Model
	keys     LogbookKeyMap
	width    int
	height   int
	quitting bool
}

// NewLogbookModel loads the logbook and builds the viewer.
func NewLogbookModel(store *storage.Store, width, height int) (LogbookModel, error) {
	entries, err := store.RecentObservations(maxLogbookEntries)
	if err != nil {
		return LogbookModel{}, err
	}
	objects, err := store.ObjectStatistics()
	if err != nil {
		return LogbookModel{}, err
	}
	summary, err := store.Summary()
	if err != nil {
		return LogbookModel{}, err
	}

	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := LogbookModel{
		entries: entries,
		objects: objects,
		summary: *summary,
		keys:    DefaultLogbookKeyMap(),
		help:    h,
		width:   width,
		height:  height,
	}
	m.rebuildTable()
	return m, nil
}

// rebuildTable creates the table for the current view and size.
func (m *LogbookModel) rebuildTable() {
	var columns []table.Column
	var rows []table.Row

	switch m.view {
	case viewObjects:
		columns = []table.Column{
			{Title: "Object", Width: 22},
			{Title: "Category", Width: 10},
			{Title: "Seen", Width: 6},
			{Title: "Best", Width: 6},
			{Title: "Last seen", Width: 14},
		}
		for _, o := range m.objects {
			rows = append(rows, table.Row{
				o.ObjectName,
				o.Category,
				fmt.Sprintf("%d", o.Sightings),
				fmt.Sprintf("%d", o.BestLevel),
				o.LastSeen.Format("Jan 02 15:04"),
			})
		}
	default:
		columns = []table.Column{
			{Title: "When", Width: 14},
			{Title: "Tick", Width: 6},
			{Title: "Object", Width: 22},
			{Title: "Lvl", Width: 4},
			{Title: "Discovery", Width: 40},
		}
		// Give the discovery text whatever width is left
		if spare := m.width - 4 - 14 - 6 - 22 - 4 - 10; spare > 40 {
			columns[4].Width = spare
		}
		for _, e := range m.entries {
			rows = append(rows, table.Row{
				e.CreatedAt.Format("Jan 02 15:04"),
				fmt.Sprintf("%d", e.Generation),
				e.ObjectName,
				fmt.Sprintf("%d", e.Level),
				e.DiscoveryText,
			})
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, minTableHeight)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m.table = t
}

// Init initializes the logbook model.
func (m LogbookModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the logbook.
func (m LogbookModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.View):
			if m.view == viewEntries {
				m.view = viewObjects
			} else {
				m.view = viewEntries
			}
			m.rebuildTable()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.rebuildTable()
		return m, nil
	}

	// Up/down and everything else scroll the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the logbook.
func (m LogbookModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := "LOGBOOK - recent sightings"
	if m.view == viewObjects {
		title = "LOGBOOK - objects"
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, titleStyle.Render(title)))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, labelStyle.Render(fmt.Sprintf(
		"%d sightings of %d objects over %d sessions",
		m.summary.Observations, m.summary.Objects, m.summary.Sessions,
	))))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if m.summary.Observations == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(tableStyle.Render(emptyStyle.Render("No observations logged yet.\nRun a session to start the logbook!")))
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// RunLogbook runs the logbook viewer.
func RunLogbook(store *storage.Store, width, height int) error {
	model, err := NewLogbookModel(store, width, height)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
