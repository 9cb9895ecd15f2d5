package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/drake-arcade/internal/core"
	"github.com/vovakirdan/drake-arcade/internal/registry"
	"github.com/vovakirdan/drake-arcade/internal/storage"
)

// subview is a screen opened from the menu that later hands control back.
type subview interface {
	tea.Model
	IsQuitting() bool
	IsGoingBack() bool
}

// SessionModel chains the menu with the screens it opens inside a single
// program: menu, then a game, the scoreboard or the run history, then
// the menu again. SSH sessions run it since they cannot start one program
// after another.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	menu     MenuModel
	sub      subview // nil while the menu is shown
	quitting bool
}

// NewSessionModel creates a session that starts at the menu.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		store:  store,
		config: cfg,
		menu:   NewMenuModel(store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if m.sub == nil {
		return m.updateMenu(msg)
	}

	next, cmd := m.sub.Update(msg)
	m.sub = next.(subview)
	switch {
	case m.sub.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.sub.IsGoingBack():
		// Sub-screens quit their own program when left; drop that command.
		m.sub = nil
		m.menu = NewMenuModel(m.store, m.config)
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	// The menu's quit command is dropped on every choice but quit.
	switch res := m.menu.Result(); res.Choice {
	case ChoiceNone:
		return m, cmd
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit
	case ChoiceScores:
		m.sub = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
	case ChoiceRuns:
		m.sub = NewRunsModel(m.store, m.config.ScreenW, m.config.ScreenH)
	case ChoiceGame:
		game, err := registry.Create(res.GameID)
		if err != nil {
			m.menu = NewMenuModel(m.store, m.config)
			return m, nil
		}
		m.sub = NewGameModel(game, m.store, m.config)
	}
	return m, m.sub.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.sub != nil:
		return m.sub.View()
	}
	return m.menu.View()
}
