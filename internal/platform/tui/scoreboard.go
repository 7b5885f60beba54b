package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ntrubin/skycatch/internal/game"
	"github.com/ntrubin/skycatch/internal/leaderboard"
)

// ScoreboardKeyMap defines the key bindings for the high score screen.
type ScoreboardKeyMap struct {
	NextTier key.Binding
	PrevTier key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTier, k.PrevTier, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTier, k.PrevTier},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		NextTier: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next tier"),
		),
		PrevTier: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev tier"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	scoreboardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	tierActiveStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	tierInactiveStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	scoreboardBoxStyle   = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
)

// ScoreboardModel is the Bubble Tea model for the per-tier high score screen.
type ScoreboardModel struct {
	board      *leaderboard.Board
	tierCursor int
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewScoreboardModel creates a scoreboard showing the given tier first.
func NewScoreboardModel(board *leaderboard.Board, tier game.Tier, width, height int) ScoreboardModel {
	cursor := 0
	for i, t := range game.Tiers {
		if t == tier {
			cursor = i
		}
	}

	m := ScoreboardModel{
		board:      board,
		tierCursor: cursor,
		keys:       DefaultScoreboardKeyMap(),
		help:       help.New(),
		width:      width,
		height:     height,
	}
	m.table = m.createTable()
	m.loadScores()
	return m
}

// createTable creates the score table.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: 16},
		{Title: "Score", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(leaderboard.MaxEntries+1),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	styles.Selected = lipgloss.NewStyle()
	t.SetStyles(styles)

	return t
}

// loadScores fills the table with the current tier's entries.
func (m *ScoreboardModel) loadScores() {
	tier := game.Tiers[m.tierCursor]
	entries := m.board.Top(tier)

	rows := make([]table.Row, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			e.Username,
			fmt.Sprintf("%d", e.Score),
		})
	}
	m.table.SetRows(rows)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (ScoreboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextTier):
			m.tierCursor = (m.tierCursor + 1) % len(game.Tiers)
			m.loadScores()

		case key.Matches(msg, m.keys.PrevTier):
			m.tierCursor = (m.tierCursor - 1 + len(game.Tiers)) % len(game.Tiers)
			m.loadScores()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// GoingBack reports whether the user asked to leave the scoreboard.
func (m ScoreboardModel) GoingBack() bool {
	return m.goingBack
}

// ClearBack resets the back flag so the model can be shown again.
func (m *ScoreboardModel) ClearBack() {
	m.goingBack = false
}

// Quitting reports whether the user asked to quit entirely.
func (m ScoreboardModel) Quitting() bool {
	return m.quitting
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	title := scoreboardTitleStyle.Render("HIGH SCORES")

	tabs := ""
	for i, tier := range game.Tiers {
		label := tier.String()
		if i == m.tierCursor {
			tabs += tierActiveStyle.Render(label)
		} else {
			tabs += tierInactiveStyle.Render(label)
		}
	}

	body := m.table.View()
	if len(m.table.Rows()) == 0 {
		body = "\n  No scores recorded yet.\n"
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		tabs,
		scoreboardBoxStyle.Render(body),
		"",
		m.help.View(m.keys),
	)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// scoresProgram wraps ScoreboardModel so it can run as its own program.
type scoresProgram struct {
	sb ScoreboardModel
}

func (p scoresProgram) Init() tea.Cmd { return nil }

func (p scoresProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	p.sb, cmd = p.sb.Update(msg)
	if p.sb.Quitting() || p.sb.GoingBack() {
		return p, tea.Quit
	}
	return p, cmd
}

func (p scoresProgram) View() string { return p.sb.View() }

// RunScoreboard shows the high-score tables in a standalone program.
func RunScoreboard(board *leaderboard.Board, tier game.Tier, width, height int) error {
	p := tea.NewProgram(scoresProgram{sb: NewScoreboardModel(board, tier, width, height)}, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
