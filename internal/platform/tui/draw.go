package tui

import (
	"fmt"
	"strings"

	"github.com/ntrubin/skycatch/internal/core"
	"github.com/ntrubin/skycatch/internal/game"
)

// The simulation runs in game pixels while the terminal draws cells. One cell
// is pxPerCellX x pxPerCellY pixels, so a 20px object spans 4x2 cells on
// screen and collision resolution stays at pixel granularity.
const (
	pxPerCellX = 5
	pxPerCellY = 10
	hudRows    = 1 // Rows reserved at the top for the score line
)

// Visual characters for rendering
const (
	EntityChar = '▒'
	PaddleChar = '▀'
	HeartChar  = '♥'
)

// geometryFor derives the session geometry from the terminal size. The
// paddle rides the bottom row of the play area.
func geometryFor(screenW, screenH, paddleWidth int) game.Geometry {
	playH := core.Max(screenH-hudRows, 4) * pxPerCellY
	return game.Geometry{
		PlayW:   core.Max(screenW, 10) * pxPerCellX,
		PlayH:   playH,
		PaddleW: paddleWidth,
		PaddleH: pxPerCellY,
		PaddleY: playH - pxPerCellY,
	}
}

// drawSession renders the play field: HUD, falling entities, and paddle.
func drawSession(dst *core.Screen, s *game.Session, tier game.Tier, paused bool) {
	dst.Clear()

	// HUD
	hearts := strings.TrimRight(strings.Repeat(string(HeartChar)+" ", s.Lives()), " ")
	hud := fmt.Sprintf(" %s   SCORE %d   %s", tier, s.Score(), hearts)
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)

	// Falling entities
	for _, e := range s.Entities() {
		drawEntity(dst, e)
	}

	// Paddle
	p := s.PaddleRect()
	row := hudRows + p.Y/pxPerCellY
	cols := core.Max(1, p.W/pxPerCellX)
	for dx := 0; dx < cols; dx++ {
		dst.SetCell(p.X/pxPerCellX+dx, row, PaddleChar, core.ColorCyan)
	}

	if paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// drawEntity maps an entity's pixel bounding square onto screen cells.
// Entities above the play area are clipped at the HUD line.
func drawEntity(dst *core.Screen, e game.Entity) {
	cols := core.Max(1, e.Size/pxPerCellX)
	rows := core.Max(1, e.Size/pxPerCellY)
	cx := e.X / pxPerCellX
	cy := floorDiv(e.Y, pxPerCellY)

	for dy := 0; dy < rows; dy++ {
		row := hudRows + cy + dy
		if row < hudRows {
			continue
		}
		for dx := 0; dx < cols; dx++ {
			dst.SetCell(cx+dx, row, EntityChar, core.ColorYellow)
		}
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// floorDiv divides rounding toward negative infinity, so entities above the
// play area (negative Y) land on rows above the screen instead of row zero.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
