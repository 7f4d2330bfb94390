package tui

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-duel/internal/core"
	"github.com/vovakirdan/tui-duel/internal/sim"
)

// Visual characters for rendering
const (
	ShipChar       = '●'
	ProjectileChar = '•'
	HealthFillChar = '█'
	HealthVoidChar = '░'
)

// healthBarWidth is the HUD bar length in cells.
const healthBarWidth = 10

// arenaView maps arena coordinates onto a rectangular region of the screen.
type arenaView struct {
	bounds core.Bounds
	x, y   int // Top-left of the arena box
	w, h   int // Box dimensions including the border
}

// newArenaView lays the arena box out under the two HUD rows.
func newArenaView(dst *core.Screen, bounds core.Bounds) arenaView {
	return arenaView{
		bounds: bounds,
		x:      0,
		y:      2,
		w:      dst.Width(),
		h:      dst.Height() - 2,
	}
}

// cell converts an arena position to a screen cell inside the box border.
func (v arenaView) cell(p core.Vec2) (int, int) {
	innerW := v.w - 2
	innerH := v.h - 2
	span := v.bounds.Width()

	fx := (p.X + v.bounds.HalfExtent) / span
	fy := (v.bounds.HalfExtent - p.Y) / span // Screen y grows downward

	sx := v.x + 1 + int(math.Round(fx*float64(innerW-1)))
	sy := v.y + 1 + int(math.Round(fy*float64(innerH-1)))
	return sx, sy
}

// drawFrame renders one post-tick frame into the screen buffer.
func drawFrame(dst *core.Screen, f sim.Frame, paused bool) {
	dst.Clear()

	drawHUD(dst, f)

	view := newArenaView(dst, f.Bounds)
	dst.DrawBox(view.x, view.y, view.w, view.h)

	for _, e := range f.Entities {
		drawEntity(dst, view, e)
	}

	drawOverlay(dst, f, paused)
}

// drawHUD draws both pilots' names and health bars on the top rows.
func drawHUD(dst *core.Screen, f sim.Frame) {
	left := f.Pilots[sim.SideLeft]
	right := f.Pilots[sim.SideRight]

	leftText := hudText(left)
	rightText := hudText(right)

	dst.DrawTextColored(1, 0, leftText, hudColor(left))
	dst.DrawTextColored(dst.Width()-len(rightText)-1, 0, rightText, hudColor(right))

	tickText := fmt.Sprintf("tick %d", f.Tick)
	dst.DrawTextCentered(0, tickText)

	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// hudText formats one pilot's name and health bar.
func hudText(p sim.PilotStatus) string {
	filled := 0
	if p.Health > 0 {
		filled = core.Clamp(p.Health*healthBarWidth/100, 1, healthBarWidth)
	}

	bar := make([]rune, healthBarWidth)
	for i := range bar {
		if i < filled {
			bar[i] = HealthFillChar
		} else {
			bar[i] = HealthVoidChar
		}
	}

	name := p.Name
	if p.Faulted {
		name += " (fault)"
	}
	return fmt.Sprintf("%s %s %d", name, string(bar), core.Max(p.Health, 0))
}

// hudColor picks a pilot's HUD color from its condition.
func hudColor(p sim.PilotStatus) core.Color {
	switch {
	case !p.Alive:
		return core.ColorGray
	case p.Faulted:
		return core.ColorGray
	default:
		return core.HealthColor(float64(p.Health) / 100.0)
	}
}

// drawEntity places one entity glyph, plus a facing marker for ships.
func drawEntity(dst *core.Screen, view arenaView, e sim.EntityPose) {
	x, y := view.cell(e.Pos)

	switch e.Kind {
	case sim.KindShip:
		dst.SetColored(x, y, ShipChar, core.HealthColor(e.HealthFrac))

		// Facing marker one cell out along the aim direction.
		mx, my := view.cell(e.Pos.Add(core.Heading(e.Facing).Scale(e.Radius * 2)))
		if mx != x || my != y {
			dst.SetColored(mx, my, facingGlyph(e.Facing), core.ColorGray)
		}

	case sim.KindProjectile:
		dst.SetColored(x, y, ProjectileChar, core.ColorBrightWhite)
	}
}

// facingGlyph picks a line glyph matching the aim octant.
func facingGlyph(angle float64) rune {
	a := core.NormalizeAngle(angle)
	octant := int(math.Round(a/(math.Pi/4))) & 3
	switch octant {
	case 1:
		return '╱'
	case 2:
		return '│'
	case 3:
		return '╲'
	default:
		return '─'
	}
}

// drawOverlay draws phase and pause messages over the arena.
func drawOverlay(dst *core.Screen, f sim.Frame, paused bool) {
	centerY := dst.Height() / 2

	switch {
	case paused:
		dst.DrawTextCentered(centerY, "PAUSED  -  press P to resume")

	case f.Phase == sim.PhasePreRoll:
		dst.DrawTextCentered(centerY, "GET READY")

	case f.Phase == sim.PhasePostRoll || f.Phase == sim.PhaseConcluded:
		dst.DrawTextCentered(centerY-1, outcomeText(f))
		if f.Phase == sim.PhaseConcluded {
			dst.DrawTextCentered(centerY+1, "Press R for a rematch, Q to quit")
		}
	}
}

// outcomeText names the match result for the overlay.
func outcomeText(f sim.Frame) string {
	switch f.Outcome {
	case sim.OutcomeLeftWon:
		return fmt.Sprintf("%s WINS", f.Pilots[sim.SideLeft].Name)
	case sim.OutcomeRightWon:
		return fmt.Sprintf("%s WINS", f.Pilots[sim.SideRight].Name)
	case sim.OutcomeTie:
		return "MUTUAL DESTRUCTION - TIE"
	default:
		return ""
	}
}
