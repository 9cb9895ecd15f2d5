package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/drake-arcade/internal/storage"
	"github.com/vovakirdan/drake-arcade/internal/telemetry"
)

const maxRuns = 50

// RunsKeyMap defines the key bindings for the training history.
type RunsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Select}, {k.Back, k.Quit}}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "generations")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// RunsModel lists training runs and the generations of a selected run.
type RunsModel struct {
	store     *storage.Store
	runs      []storage.Run
	selected  *storage.Run // run whose generations are shown
	gens      []telemetry.GenerationStats
	table     table.Model
	help      help.Model
	keys      RunsKeyMap
	width     int
	height    int
	err       error
	quitting  bool
	goingBack bool
}

// NewRunsModel creates the run history view.
func NewRunsModel(store *storage.Store, width, height int) RunsModel {
	m := RunsModel{
		store:  store,
		keys:   DefaultRunsKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	if store != nil {
		m.runs, m.err = store.RecentRuns(maxRuns)
	}
	m.table = m.runsTable()
	return m
}

func (m RunsModel) runsTable() table.Model {
	columns := []table.Column{
		{Title: "Run", Width: 10},
		{Title: "Started", Width: 14},
		{Title: "Pop", Width: 5},
		{Title: "Gens", Width: 6},
		{Title: "Best", Width: 9},
		{Title: "Solved", Width: 7},
	}
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		solved := ""
		if r.Solved {
			solved = "yes"
		}
		rows[i] = table.Row{
			shortID(r.RunID),
			r.StartedAt.Format("Jan 02 15:04"),
			fmt.Sprintf("%d", r.Population),
			fmt.Sprintf("%d", r.Generations),
			fmt.Sprintf("%.1f", r.BestFitness),
			solved,
		}
	}
	return styledTable(columns, rows, m.height)
}

func (m RunsModel) generationsTable() table.Model {
	columns := []table.Column{
		{Title: "Gen", Width: 5},
		{Title: "Best", Width: 9},
		{Title: "Mean", Width: 9},
		{Title: "StdDev", Width: 8},
		{Title: "Score", Width: 6},
		{Title: "Species", Width: 8},
		{Title: "Ticks", Width: 7},
	}
	rows := make([]table.Row, len(m.gens))
	for i, g := range m.gens {
		rows[i] = table.Row{
			fmt.Sprintf("%d", g.Generation),
			fmt.Sprintf("%.2f", g.Best),
			fmt.Sprintf("%.2f", g.Mean),
			fmt.Sprintf("%.2f", g.StdDev),
			fmt.Sprintf("%d", g.Score),
			fmt.Sprintf("%d", g.Species),
			fmt.Sprintf("%d", g.Ticks),
		}
	}
	return styledTable(columns, rows, m.height)
}

// shortID abbreviates a run ID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Init initializes the model.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			if m.selected != nil {
				m.selected, m.gens = nil, nil
				m.table = m.runsTable()
				return m, nil
			}
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if m.selected == nil && len(m.runs) > 0 {
				run := m.runs[m.table.Cursor()]
				gens, err := m.store.RunGenerations(run.RunID)
				if err != nil {
					m.err = err
					return m, nil
				}
				m.selected, m.gens = &run, gens
				m.table = m.generationsTable()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.selected != nil {
			m.table = m.generationsTable()
		} else {
			m.table = m.runsTable()
		}
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history.
func (m RunsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	title := "TRAINING RUNS"
	if m.selected != nil {
		title = fmt.Sprintf("RUN %s  |  seed %d", shortID(m.selected.RunID), m.selected.Seed)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(dimStyle.Render(centerText("Error: "+m.err.Error(), m.width)))
	case m.store == nil:
		b.WriteString(dimStyle.Render(centerText("No database available.", m.width)))
	case len(m.runs) == 0:
		b.WriteString(dimStyle.Render(centerText("No training runs yet. Run `drake evolve` to start one.", m.width)))
	default:
		b.WriteString(boxStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RunsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RunsModel) IsQuitting() bool {
	return m.quitting
}

// RunRuns runs the training history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunRuns(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewRunsModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(RunsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
