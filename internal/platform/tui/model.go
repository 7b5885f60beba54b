package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ntrubin/skycatch/internal/config"
	"github.com/ntrubin/skycatch/internal/core"
	"github.com/ntrubin/skycatch/internal/game"
	"github.com/ntrubin/skycatch/internal/leaderboard"
)

// gamePhase tracks which screen the game model is showing.
type gamePhase int

const (
	phasePlaying   gamePhase = iota
	phaseNameEntry           // Game over, asking for a name to record
	phaseScores              // Showing the tier's high scores
)

var (
	gameOverTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	gameOverBoxStyle   = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(1, 3)
	warnStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	hintStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// GameModel is the Bubble Tea model for one playthrough plus its game-over
// flow: play -> name entry -> high scores.
type GameModel struct {
	board   *leaderboard.Board
	cfg     config.Config
	runtime core.RuntimeConfig
	tier    game.Tier

	session *game.Session
	screen  *core.Screen
	frame   core.InputFrame
	keys    *KeyMapper
	paused  bool

	phase      gamePhase
	finalScore int
	nameInput  textinput.Model
	scoreboard ScoreboardModel
	persistErr error

	// standalone models quit the program when the player backs out;
	// the SSH session wrapper intercepts the leaving flag instead.
	standalone bool
	leaving    bool
	quitting   bool
}

// NewGameModel creates a game model for the given tier. defaultName pre-fills
// the name prompt (the SSH user, or --name locally).
func NewGameModel(board *leaderboard.Board, cfg config.Config, runtime core.RuntimeConfig, tier game.Tier, defaultName string) (GameModel, error) {
	if runtime.Seed == 0 {
		runtime.Seed = time.Now().UnixNano()
	}

	session, err := newSession(cfg, runtime, tier)
	if err != nil {
		return GameModel{}, err
	}

	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = 16
	ti.Width = 20
	ti.SetValue(defaultName)
	// The storage format is colon-separated, so names cannot contain one.
	ti.Validate = func(s string) error {
		if strings.ContainsRune(s, ':') {
			return errors.New("name cannot contain ':'")
		}
		return nil
	}

	return GameModel{
		board:     board,
		cfg:       cfg,
		runtime:   runtime,
		tier:      tier,
		session:   session,
		screen:    core.NewScreen(runtime.ScreenW, runtime.ScreenH),
		frame:     core.NewInputFrame(),
		keys:      NewKeyMapper(),
		nameInput: ti,
	}, nil
}

// newSession builds a session whose geometry is derived from the terminal.
func newSession(cfg config.Config, runtime core.RuntimeConfig, tier game.Tier) (*game.Session, error) {
	geom := geometryFor(runtime.ScreenW, runtime.ScreenH, cfg.Play.PaddleWidth)
	return game.NewSession(cfg.Profile(tier), geom, runtime.Seed, cfg.SessionOptions())
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.runtime.TickRate)
}

// Leaving reports whether the player backed out to the menu.
func (m GameModel) Leaving() bool {
	return m.leaving
}

// Quitting reports whether the player asked to quit entirely.
func (m GameModel) Quitting() bool {
	return m.quitting
}

// Update handles messages and advances the model.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input per phase.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.phase {
	case phasePlaying:
		if m.keys.MapKeyToFrame(msg, &m.frame) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case phaseNameEntry:
		switch msg.String() {
		case "enter":
			return m.submitScore()
		case "esc":
			// Skip recording, straight to the scoreboard.
			m.scoreboard = NewScoreboardModel(m.board, m.tier, m.runtime.ScreenW, m.runtime.ScreenH)
			m.phase = phaseScores
			return m, nil
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd

	case phaseScores:
		if msg.String() == "r" {
			return m.restart()
		}
		var cmd tea.Cmd
		m.scoreboard, cmd = m.scoreboard.Update(msg)
		if m.scoreboard.Quitting() {
			m.quitting = true
			return m, tea.Quit
		}
		if m.scoreboard.GoingBack() {
			m.leaving = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil
		}
		return m, cmd
	}

	return m, nil
}

// submitScore records the final score under the entered name and shows the
// updated scoreboard. A failed write is reported, not fatal: the score is
// still on the in-memory board.
func (m GameModel) submitScore() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.nameInput.Value())
	if name == "" {
		name = "anonymous"
	}
	m.persistErr = m.board.AddScore(name, m.tier, m.finalScore)

	m.scoreboard = NewScoreboardModel(m.board, m.tier, m.runtime.ScreenW, m.runtime.ScreenH)
	m.phase = phaseScores
	return m, nil
}

// restart begins a fresh playthrough on the same tier with a new seed.
func (m GameModel) restart() (tea.Model, tea.Cmd) {
	m.runtime.Seed = time.Now().UnixNano()
	session, err := newSession(m.cfg, m.runtime, m.tier)
	if err != nil {
		// Geometry was already validated; only a shrunken terminal can
		// get us here. Stay on the scoreboard.
		return m, nil
	}
	m.session = session
	m.phase = phasePlaying
	m.paused = false
	m.persistErr = nil
	m.finalScore = 0
	m.frame.Clear()
	return m, tickCmd(m.runtime.TickRate)
}

// handleResize adapts to the new terminal size. A playthrough in progress is
// restarted, since the play-area geometry is fixed at construction.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if m.phase == phasePlaying {
		if session, err := newSession(m.cfg, m.runtime, m.tier); err == nil {
			m.session = session
		}
	}
	return m, nil
}

// handleTick runs one simulation step: apply buffered input, advance the
// session, and react to termination.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.phase != phasePlaying {
		return m, nil
	}

	if m.frame.Has(core.ActionPause) {
		m.paused = !m.paused
	}

	if !m.paused {
		if m.frame.Has(core.ActionLeft) {
			m.session.MovePaddle(-m.cfg.Play.PaddleStep)
		}
		if m.frame.Has(core.ActionRight) {
			m.session.MovePaddle(m.cfg.Play.PaddleStep)
		}

		res := m.session.Tick()
		if res.Ended {
			m.finalScore = res.FinalScore
			m.phase = phaseNameEntry
			m.frame.Clear()
			return m, m.nameInput.Focus()
		}
	}

	m.frame.Clear()
	return m, tickCmd(m.runtime.TickRate)
}

// View renders the current phase.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.phase {
	case phaseNameEntry:
		return m.viewNameEntry()
	case phaseScores:
		return m.viewScores()
	default:
		drawSession(m.screen, m.session, m.tier, m.paused)
		return RenderScreen(m.screen)
	}
}

// viewNameEntry renders the game-over panel with the name prompt.
func (m GameModel) viewNameEntry() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		gameOverTitleStyle.Render("GAME OVER"),
		"",
		fmt.Sprintf("Final score: %d", m.finalScore),
		"",
		m.nameInput.View(),
		"",
		hintStyle.Render("enter save · esc skip"),
	)
	return lipgloss.Place(m.runtime.ScreenW, m.runtime.ScreenH, lipgloss.Center, lipgloss.Center,
		gameOverBoxStyle.Render(content))
}

// viewScores renders the scoreboard plus any persistence warning.
func (m GameModel) viewScores() string {
	view := m.scoreboard.View()
	if m.persistErr != nil {
		warning := warnStyle.Render(fmt.Sprintf("warning: score not saved to disk: %v", m.persistErr))
		view = lipgloss.JoinVertical(lipgloss.Center, view, warning)
	}
	return lipgloss.JoinVertical(lipgloss.Center, view, hintStyle.Render("r play again"))
}

// Run starts a standalone Bubble Tea program for one tier.
func Run(board *leaderboard.Board, cfg config.Config, runtime core.RuntimeConfig, tier game.Tier, defaultName string) error {
	model, err := NewGameModel(board, cfg, runtime, tier, defaultName)
	if err != nil {
		return err
	}
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// MenuResult is what the standalone menu loop reports back.
type MenuResult struct {
	Tier       *game.Tier // Chosen difficulty, nil if none
	WantScores bool       // User asked for the scoreboard
	Quit       bool       // User quit
}

// RunMenu shows the difficulty picker and returns the user's choice.
func RunMenu(board *leaderboard.Board, width, height int) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(board, width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return MenuResult{}, err
	}

	menu, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Quit: true}, nil
	}
	return MenuResult{
		Tier:       menu.Selected(),
		WantScores: menu.WantScores(),
		Quit:       menu.Quitting(),
	}, nil
}
