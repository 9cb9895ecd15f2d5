package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/drake-arcade/internal/core"
	"github.com/vovakirdan/drake-arcade/internal/registry"
	"github.com/vovakirdan/drake-arcade/internal/storage"
)

// MenuChoice is what the player picked in the menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoiceGame
	ChoiceScores
	ChoiceRuns
	ChoiceQuit
)

// MenuItem is one registered game in the menu.
type MenuItem struct {
	GameID  string
	Title   string
	Summary string
	Best    int // best recorded score, 0 without a database
}

// MenuModel is the Bubble Tea model for the game picker.
type MenuModel struct {
	items  []MenuItem
	cursor int
	config core.RuntimeConfig
	keys   MenuKeyMap
	help   help.Model
	choice MenuChoice
}

// NewMenuModel lists the registered games, with their best scores when a
// store is given.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var stats map[string]*storage.GameStats
	if store != nil {
		stats, _ = store.GetAllGamesStats()
	}

	games := registry.List()
	items := make([]MenuItem, len(games))
	for i, g := range games {
		items[i] = MenuItem{GameID: g.ID, Title: g.Title, Summary: g.Summary}
		if st := stats[g.ID]; st != nil {
			items[i].Best = st.HighScore
		}
	}

	return MenuModel{
		items:  items,
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu. Any choice ends the menu program.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.choice = ChoiceQuit
		case key.Matches(msg, m.keys.Up):
			m.cursor = max(m.cursor-1, 0)
		case key.Matches(msg, m.keys.Down):
			m.cursor = min(m.cursor+1, len(m.items)-1)
		case key.Matches(msg, m.keys.Select):
			if len(m.items) > 0 {
				m.choice = ChoiceGame
			}
		case key.Matches(msg, m.keys.Scores):
			m.choice = ChoiceScores
		case key.Matches(msg, m.keys.Runs):
			m.choice = ChoiceRuns
		}
		if m.choice != ChoiceNone {
			return m, tea.Quit
		}
	}
	return m, nil
}

var (
	menuTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208")).
			Padding(0, 2).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("130"))
	menuItemStyle     = lipgloss.NewStyle().Padding(0, 1)
	menuSelectedStyle = menuItemStyle.
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))
	menuSummaryStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice != ChoiceNone {
		return ""
	}

	lines := make([]string, len(m.items))
	for i, item := range m.items {
		label := fmt.Sprintf("%-24s", item.Title)
		if item.Best > 0 {
			label += fmt.Sprintf(" best %d", item.Best)
		}
		if i == m.cursor {
			lines[i] = menuSelectedStyle.Render(label)
		} else {
			lines[i] = menuItemStyle.Render(label)
		}
	}

	summary := ""
	if m.cursor < len(m.items) {
		summary = m.items[m.cursor].Summary
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		menuTitleStyle.Render("D R A K E"),
		"",
		lipgloss.JoinVertical(lipgloss.Left, lines...),
		"",
		menuSummaryStyle.Render(summary),
		"",
		dimStyle.Render(m.help.View(m.keys)),
	)
	if m.config.ScreenW <= 0 || m.config.ScreenH <= 0 {
		return body
	}
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, body)
}

// Result reports the choice, the highlighted game and the latest screen
// size.
func (m MenuModel) Result() MenuResult {
	r := MenuResult{Choice: m.choice, Config: m.config}
	if m.choice == ChoiceGame {
		r.GameID = m.items[m.cursor].GameID
	}
	return r
}

// MenuResult is the outcome of a menu run.
type MenuResult struct {
	Choice MenuChoice
	GameID string // set for ChoiceGame
	Config core.RuntimeConfig
}

// RunMenu shows the menu until the player picks something.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, nil
	}
	return m.Result(), nil
}
