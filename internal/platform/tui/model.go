package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-duel/internal/core"
	"github.com/vovakirdan/tui-duel/internal/sim"
	"github.com/vovakirdan/tui-duel/internal/storage"
)

// MatchFactory creates a fresh match with fresh behavior bindings.
// Called once at startup and again for each rematch; a faulted pilot gets a
// clean slate only through a new match.
type MatchFactory func() (*sim.Match, error)

// Model is the Bubble Tea model for watching a duel.
type Model struct {
	newMatch MatchFactory
	match    *sim.Match
	screen   *core.Screen
	store    *storage.Store
	config   core.RuntimeConfig
	keys     DuelKeyMap
	help     help.Model

	started  time.Time
	paused   bool
	quitting bool
	saved    bool // Whether the current match result has been recorded
	fatalErr error
}

// NewModel creates a Bubble Tea model for a duel. The store may be nil to
// skip history recording.
func NewModel(newMatch MatchFactory, store *storage.Store, cfg core.RuntimeConfig) (Model, error) {
	match, err := newMatch()
	if err != nil {
		return Model{}, err
	}

	return Model{
		newMatch: newMatch,
		match:    match,
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH-1), // Last row is the help footer
		store:    store,
		config:   cfg,
		keys:     DefaultDuelKeyMap(),
		help:     help.New(),
		started:  time.Now(),
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height-1)
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
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		// The timer keeps running; ticks simply stop advancing the match.
		m.paused = !m.paused

	case key.Matches(msg, m.keys.Restart):
		if m.match.Concluded() || m.fatalErr != nil {
			match, err := m.newMatch()
			if err != nil {
				m.fatalErr = err
				return m, nil
			}
			m.match = match
			m.started = time.Now()
			m.paused = false
			m.saved = false
			m.fatalErr = nil
		}
	}

	return m, nil
}

// handleTick advances the simulation by one tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused && m.fatalErr == nil && !m.match.Concluded() {
		if err := m.match.Step(); err != nil {
			m.fatalErr = err
		}
	}

	if m.match.Concluded() && !m.saved {
		m.saveResult()
		m.saved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// saveResult records the finished match, best effort.
func (m *Model) saveResult() {
	if m.store == nil {
		return
	}

	rec := storage.MatchRecord{
		LeftPilot:  m.match.Ship(sim.SideLeft).PilotName,
		RightPilot: m.match.Ship(sim.SideRight).PilotName,
		Outcome:    outcomeLabel(m.match.Outcome()),
		Ticks:      m.match.Tick(),
		Duration:   int(time.Since(m.started).Seconds()),
	}
	switch m.match.Outcome() {
	case sim.OutcomeLeftWon:
		rec.Winner = rec.LeftPilot
	case sim.OutcomeRightWon:
		rec.Winner = rec.RightPilot
	}

	//nolint:errcheck // Best-effort save, the session continues regardless
	m.store.RecordMatch(rec)
}

// outcomeLabel maps an outcome to its storage label.
func outcomeLabel(o sim.Outcome) string {
	switch o {
	case sim.OutcomeTie:
		return "tie"
	case sim.OutcomeLeftWon:
		return "left"
	case sim.OutcomeRightWon:
		return "right"
	default:
		return "stopped"
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.fatalErr != nil {
		return "engine halted: " + m.fatalErr.Error() + "\n\nPress R to restart, Q to quit."
	}

	drawFrame(m.screen, m.match.Frame(), m.paused)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program for a duel.
func Run(newMatch MatchFactory, store *storage.Store, cfg core.RuntimeConfig) error {
	model, err := NewModel(newMatch, store, cfg)
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
