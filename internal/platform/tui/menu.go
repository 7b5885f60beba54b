package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ntrubin/skycatch/internal/game"
	"github.com/ntrubin/skycatch/internal/leaderboard"
)

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	menuItemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	menuHintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// MenuModel is the Bubble Tea model for the difficulty picker.
type MenuModel struct {
	board      *leaderboard.Board
	cursor     int
	width      int
	height     int
	keyMapper  *KeyMapper
	quitting   bool
	selected   *game.Tier // Set when user picks a difficulty
	wantScores bool       // True if user pressed Tab for the scoreboard
}

// NewMenuModel creates a new difficulty picker menu.
func NewMenuModel(board *leaderboard.Board, width, height int) MenuModel {
	return MenuModel{
		board:     board,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu. Terminal choices (select, scores,
// quit) end the menu program; wrappers inspect the flags to decide what the
// choice was.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit

		case MenuActionUp:
			if m.cursor > 0 {
				m.cursor--
			}

		case MenuActionDown:
			if m.cursor < len(game.Tiers)-1 {
				m.cursor++
			}

		case MenuActionSelect:
			tier := game.Tiers[m.cursor]
			m.selected = &tier
			return m, tea.Quit

		case MenuActionScores:
			m.wantScores = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// Selected returns the chosen tier, or nil if none picked yet.
func (m MenuModel) Selected() *game.Tier {
	return m.selected
}

// Cursor returns the tier the cursor currently sits on.
func (m MenuModel) Cursor() game.Tier {
	return game.Tiers[m.cursor]
}

// WantScores reports whether the user asked for the scoreboard.
func (m MenuModel) WantScores() bool {
	return m.wantScores
}

// Quitting reports whether the user asked to quit.
func (m MenuModel) Quitting() bool {
	return m.quitting
}

// Reset clears selection state so the menu can be shown again.
func (m *MenuModel) Reset() {
	m.selected = nil
	m.wantScores = false
}

// View renders the difficulty picker.
func (m MenuModel) View() string {
	var sb strings.Builder

	sb.WriteString(menuTitleStyle.Render("S K Y C A T C H"))
	sb.WriteString("\n\n")
	sb.WriteString(menuHintStyle.Render("Catch what falls. Three drops and you're out."))
	sb.WriteString("\n\n")

	for i, tier := range game.Tiers {
		label := fmt.Sprintf("  %-8s", tier)
		if best := m.board.Top(tier); len(best) > 0 {
			label += menuHintStyle.Render(fmt.Sprintf("  best %d by %s", best[0].Score, best[0].Username))
		}
		if i == m.cursor {
			sb.WriteString(menuSelectedStyle.Render("▸"+label) + "\n")
		} else {
			sb.WriteString(menuItemStyle.Render(" "+label) + "\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(menuHintStyle.Render("enter play · tab high scores · q quit"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, sb.String())
}
