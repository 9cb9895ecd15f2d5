package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/drake-arcade/internal/core"
	"github.com/vovakirdan/drake-arcade/internal/registry"
	"github.com/vovakirdan/drake-arcade/internal/storage"
)

// maxSpeed caps the fast-forward multiplier.
const maxSpeed = 64

// GameModel is the Bubble Tea model for a running game. It steps the
// simulation on every tick, forwards keys as actions and records the
// score once per finished round.
type GameModel struct {
	game   registry.Game
	screen *core.Screen
	store  *storage.Store
	config core.RuntimeConfig
	keys   GameKeyMap

	input      core.InputFrame
	gameState  core.GameState
	speed      int  // simulation steps per tick
	scoreSaved bool // score of the current round is recorded

	// onBack runs when the player leaves a paused or finished game.
	// Sessions leave it nil and watch IsGoingBack instead.
	onBack    tea.Cmd
	goingBack bool
	quitting  bool
}

// NewGameModel creates a model for the given game.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return GameModel{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		config: cfg,
		keys:   DefaultGameKeyMap(),
		speed:  1,
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		// Games project their world onto any screen size; no reset needed.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionFaster:
		m.speed = core.Clamp(m.speed*2, 1, maxSpeed)
	case core.ActionSlower:
		m.speed = core.Clamp(m.speed/2, 1, maxSpeed)
	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.goingBack = true
			return m, m.onBack
		}
		m.input.Set(core.ActionPause)
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.input.Set(action)
		}
	case core.ActionNone:
	default:
		m.input.Set(action)
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.input.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.input.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	// Input only applies to the first step of a fast-forwarded tick.
	for range m.speed {
		m.gameState = m.game.Step(m.input).State
		m.input.Clear()
		if m.gameState.GameOver || m.gameState.Paused {
			break
		}
	}

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
	}
	return m, tickCmd(m.config.TickRate)
}

func (m *GameModel) saveScore() {
	m.scoreSaved = true
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	//nolint:errcheck // Best-effort save, the game continues regardless
	m.store.SaveScore(m.game.ID(), m.gameState.Score)
}

// saveScreenshot writes the current frame as plain text under
// ~/.drake/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".drake", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, the game continues regardless
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Speed returns the number of simulation steps run per tick.
func (m GameModel) Speed() int {
	return m.speed
}

// IsQuitting returns true if the player asked to quit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// IsGoingBack returns true if the player left the game.
func (m GameModel) IsGoingBack() bool {
	return m.goingBack
}

// Run plays a single game in the local terminal until the player quits
// or leaves it.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, store, cfg)
	model.onBack = tea.Quit

	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
