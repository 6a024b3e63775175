package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/deep-field/internal/core"
	"github.com/vovakirdan/deep-field/internal/game"
	"github.com/vovakirdan/deep-field/internal/loop"
	"github.com/vovakirdan/deep-field/internal/starfield"
	"github.com/vovakirdan/deep-field/internal/storage"
)

// Layout constants
const (
	panelWidth  = 38 // Width of the state panel next to the sky
	minSkyWidth = 10
	maxJournal  = 8 // Discovery lines kept in the panel
)

// Options configures one observation session.
type Options struct {
	Session   loop.SessionConfig
	Interval  time.Duration
	Sky       starfield.Options
	Store     *storage.Store // Optional logbook
	SessionID string
	Logger    *log.Logger // Defaults to a discard logger
	Width     int
	Height    int
}

// Model is the Bubble Tea model for the observation screen.
type Model struct {
	loop     *loop.Loop
	interval time.Duration
	sky      starfield.Options
	stars    []starfield.Star
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	logger   *log.Logger

	width    int
	height   int
	last     loop.TickReport
	journal  []string
	status   string
	err      error
	paused   bool
	quitting bool
}

// NewModel creates the session and a model that drives it.
func NewModel(opts Options) (Model, error) {
	logger := opts.Logger
	if logger == nil {
		// Anything written to the terminal would corrupt the alt screen
		logger = log.New(io.Discard)
	}

	var reporters []loop.Reporter
	if opts.Store != nil {
		sessionID := opts.SessionID
		if sessionID == "" {
			sessionID = fmt.Sprintf("local-%d", time.Now().UnixNano())
		}
		reporters = append(reporters, storage.NewReporter(opts.Store, sessionID, logger))
	}

	l, err := loop.NewSession(opts.Session, loop.Options{
		Interval:  opts.Interval,
		Logger:    logger,
		Reporters: reporters,
	})
	if err != nil {
		return Model{}, err
	}
	if err := l.Start(); err != nil {
		return Model{}, err
	}

	h := help.New()
	h.ShowAll = false

	m := Model{
		loop:     l,
		interval: l.Interval(),
		sky:      opts.Sky,
		stars:    starfield.Generate(opts.Sky),
		screen:   core.NewScreen(0, 0),
		keys:     DefaultKeyMap(),
		help:     h,
		logger:   logger,
		last:     loop.TickReport{Snapshot: l.Snapshot()},
	}
	m.resize(opts.Width, opts.Height)
	return m, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.interval)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m = m.observeAt(msg.X, msg.Y)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.loop.Stop()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused

	case key.Matches(msg, m.keys.Step):
		if m.running() {
			m = m.tick()
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize(m.width, m.height)

	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
	}

	return m, nil
}

// handleTick advances the loop unless paused. A failed tick ends the chain.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.running() {
		return m, nil
	}
	if !m.paused {
		m = m.tick()
	}
	if m.err != nil {
		return m, nil
	}
	return m, tickCmd(m.interval)
}

func (m Model) running() bool {
	return m.err == nil && m.loop.Status() == loop.StatusRunning
}

func (m Model) tick() Model {
	report, err := m.loop.Tick(context.Background())
	if err != nil {
		m.err = err
		m.loop.Stop()
		m.logger.Error("tick failed", "error", err)
		return m
	}

	m.last = report
	for _, t := range report.Acquired {
		m.journal = pushJournal(m.journal, fmt.Sprintf("New telescope: %s (power %d)", t.Name, t.MaxPower))
	}
	if obs := report.Observation; obs != nil {
		m.journal = pushJournal(m.journal, fmt.Sprintf("%s: %s", obs.Object.Name, obs.DiscoveryText))
		m.status = ""
	} else if report.NothingToObserve {
		m.status = fmt.Sprintf("Nothing left to see at power %d.", report.Snapshot.MaxPower)
	}
	return m
}

func pushJournal(journal []string, line string) []string {
	journal = append(journal, line)
	if len(journal) > maxJournal {
		journal = journal[len(journal)-maxJournal:]
	}
	return journal
}

// observeAt routes a click on the sky to the engine's pointer hook.
func (m Model) observeAt(x, y int) Model {
	if !core.NewRect(0, 0, m.screen.Width(), m.screen.Height()).Contains(x, y) {
		return m
	}
	view := core.Viewport{CanvasW: m.sky.CanvasW, CanvasH: m.sky.CanvasH, Cols: m.screen.Width(), Rows: m.screen.Height()}
	p := view.ToCanvas(x, y)

	obs, err := m.loop.ObserveAt(p)
	switch {
	case errors.Is(err, game.ErrNotImplemented):
		m.logger.Debug("pointer observation unsupported", "x", p.X, "y", p.Y)
		m.status = fmt.Sprintf("Pointing at (%.0f, %.0f) does nothing yet.", p.X, p.Y)
	case err != nil:
		m.logger.Warn("pointer observation failed", "error", err)
		m.status = err.Error()
	default:
		m.journal = pushJournal(m.journal, fmt.Sprintf("%s: %s", obs.Object.Name, obs.DiscoveryText))
		m.last.Snapshot = m.loop.Snapshot()
	}
	return m
}

// resize lays the sky out left of the panel, above the help line.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	helpRows := 1
	if m.help.ShowAll {
		for _, col := range m.keys.FullHelp() {
			helpRows = core.Max(helpRows, len(col))
		}
	}
	skyW := core.Max(width-panelWidth-1, minSkyWidth)
	if width <= 0 {
		skyW = 0
	}
	m.screen.Resize(skyW, core.Max(height-helpRows, 0))
}

// saveScreenshot saves the current sky to a file.
func (m *Model) saveScreenshot() {
	starfield.Paint(m.screen, m.stars, m.sky)

	dir := filepath.Join(os.Getenv("HOME"), ".deepfield", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("sky_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.status = "Saved " + path
}

// Snapshot returns the state shown on screen.
func (m Model) Snapshot() game.Snapshot {
	return m.last.Snapshot
}

// Err returns the error that stopped the session, if any.
func (m Model) Err() error {
	return m.err
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// View renders the sky, the state panel and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	starfield.Paint(m.screen, m.stars, m.sky)
	body := lipgloss.JoinHorizontal(lipgloss.Top, RenderScreen(m.screen), " ", m.renderPanel())
	return body + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// renderPanel renders the telescope, object counts and recent discoveries.
func (m Model) renderPanel() string {
	snap := m.last.Snapshot
	inner := panelWidth - 4 // Border and padding

	var b strings.Builder
	b.WriteString(titleStyle.Render("DEEP FIELD"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Telescopes"))
	b.WriteString("\n")
	for _, t := range snap.Telescopes {
		b.WriteString(truncate(fmt.Sprintf("  %s (%d)", t.Name, t.MaxPower), inner))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%s %d\n\n", labelStyle.Render("Power"), snap.MaxPower)

	fmt.Fprintf(&b, "%s %d  %s %d  %s %d\n",
		labelStyle.Render("seen"), len(snap.Observed),
		labelStyle.Render("visible"), len(snap.Observable),
		labelStyle.Render("hidden"), len(snap.Unobservable),
	)
	fmt.Fprintf(&b, "%s %d", labelStyle.Render("tick"), m.last.Generation)
	if m.paused {
		b.WriteString("  [paused]")
	}
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Journal"))
	b.WriteString("\n")
	if len(m.journal) == 0 {
		b.WriteString("  Waiting for the first sighting...\n")
	}
	for _, line := range m.journal {
		b.WriteString(lipgloss.NewStyle().Width(inner).Render(line))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(inner).Render(m.status))
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Width(inner).Render("Stopped: " + m.err.Error()))
	}

	return panelStyle.Width(panelWidth - 2).Render(strings.TrimRight(b.String(), "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// Run starts the Bubble Tea program for a local session.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	return nil
}
