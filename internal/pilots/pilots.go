// Package pilots implements the built-in reference opponents.
// Each pilot keeps its cross-tick state in an explicit per-ship value
// created by its initializer; there is no package-level mutable state.
package pilots

import (
	"math"

	"github.com/vovakirdan/tui-duel/internal/core"
	"github.com/vovakirdan/tui-duel/internal/registry"
	"github.com/vovakirdan/tui-duel/internal/sim"
)

// spinTurnRate is how far the spinner sweeps its aim each tick.
const spinTurnRate = 0.15

// assumedShotSpeed is the projectile speed the sniper leads with.
// Matches the default match configuration; a custom config changes the
// sniper's accuracy, not its validity.
const assumedShotSpeed = 1.5

// threatMargin widens the dodge corridor beyond the ship's own radius.
const threatMargin = 3.0

func init() {
	registry.Register("idle", "Idle (stationary)", func() sim.Initializer {
		return newIdle
	})
	registry.Register("spinner", "Spinner (constant turn)", func() sim.Initializer {
		return newSpinner
	})
	registry.Register("gunner", "Gunner (aim and fire)", func() sim.Initializer {
		return newGunner
	})
	registry.Register("sniper", "Sniper (lead the target)", func() sim.Initializer {
		return newSniper
	})
	registry.Register("dodger", "Dodger (evade incoming)", func() sim.Initializer {
		return newDodger
	})
}

// newIdle creates a pilot that never moves and never shoots.
func newIdle() (sim.Behavior, error) {
	return func(intent *sim.Intent, env *sim.Environment) error {
		intent.Moving = false
		intent.Shooting = false
		return nil
	}, nil
}

// newSpinner creates a pilot that sweeps its aim at a constant rate and
// fires continuously.
func newSpinner() (sim.Behavior, error) {
	s := &spinner{}
	return s.step, nil
}

type spinner struct {
	aim float64
}

func (s *spinner) step(intent *sim.Intent, env *sim.Environment) error {
	s.aim = core.NormalizeAngle(s.aim + spinTurnRate)
	intent.ShootDirection = s.aim
	intent.Shooting = true
	intent.Moving = false
	return nil
}

// newGunner creates a pilot that aims straight at the enemy and fires.
func newGunner() (sim.Behavior, error) {
	return func(intent *sim.Intent, env *sim.Environment) error {
		intent.Moving = false
		if env.Enemy == nil {
			intent.Shooting = false
			return nil
		}
		intent.ShootDirection = aimAt(intent, env.Enemy.X, env.Enemy.Y)
		intent.Shooting = true
		return nil
	}, nil
}

// newSniper creates a pilot that leads a moving enemy by solving the
// intercept of its own shot against the enemy's advertised velocity.
func newSniper() (sim.Behavior, error) {
	return func(intent *sim.Intent, env *sim.Environment) error {
		intent.Moving = false
		if env.Enemy == nil {
			intent.Shooting = false
			return nil
		}

		aim := aimAt(intent, env.Enemy.X, env.Enemy.Y)
		if env.Enemy.Moving {
			if lead, ok := interceptAngle(intent, env.Enemy); ok {
				aim = lead
			}
		}
		intent.ShootDirection = aim
		intent.Shooting = true
		return nil
	}, nil
}

// newDodger creates a pilot that sidesteps incoming projectiles,
// alternating dodge sides, and otherwise behaves like a gunner.
func newDodger() (sim.Behavior, error) {
	d := &dodger{}
	return d.step, nil
}

type dodger struct {
	flip bool // Alternates dodge side across threats
}

func (d *dodger) step(intent *sim.Intent, env *sim.Environment) error {
	self := core.V(intent.X, intent.Y)

	var threat *sim.ProjectileInfo
	for i := range env.Projectiles {
		p := &env.Projectiles[i]
		if core.RayCircleIntersect(core.V(p.X, p.Y), p.MoveDirection, self, intent.Radius*threatMargin) {
			threat = p
			break
		}
	}

	if threat != nil {
		d.flip = !d.flip
		side := math.Pi / 2
		if d.flip {
			side = -side
		}
		intent.MoveDirection = core.NormalizeAngle(threat.MoveDirection + side)
		intent.Moving = true
	} else {
		intent.Moving = false
	}

	if env.Enemy != nil {
		intent.ShootDirection = aimAt(intent, env.Enemy.X, env.Enemy.Y)
		intent.Shooting = true
	} else {
		intent.Shooting = false
	}
	return nil
}

// aimAt returns the direction from the ship to the given point.
func aimAt(intent *sim.Intent, x, y float64) float64 {
	return core.V(x, y).Sub(core.V(intent.X, intent.Y)).Angle()
}

// interceptAngle solves where a shot at assumedShotSpeed meets an enemy
// moving at its advertised velocity. Reports false when no forward-time
// intercept exists.
func interceptAngle(intent *sim.Intent, enemy *sim.EnemyInfo) (float64, bool) {
	rel := core.V(enemy.X, enemy.Y).Sub(core.V(intent.X, intent.Y))
	vel := core.Heading(enemy.MoveDirection).Scale(enemy.Speed)

	// |rel + vel*t| = assumedShotSpeed * t, a quadratic in t.
	a := vel.X*vel.X + vel.Y*vel.Y - assumedShotSpeed*assumedShotSpeed
	b := 2 * (rel.X*vel.X + rel.Y*vel.Y)
	c := rel.X*rel.X + rel.Y*rel.Y

	var t float64
	if math.Abs(a) < 1e-9 {
		if math.Abs(b) < 1e-9 {
			return 0, false
		}
		t = -c / b
	} else {
		disc := b*b - 4*a*c
		if disc < 0 {
			return 0, false
		}
		sq := math.Sqrt(disc)
		t1 := (-b - sq) / (2 * a)
		t2 := (-b + sq) / (2 * a)
		t = smallestPositive(t1, t2)
	}
	if t <= 0 {
		return 0, false
	}

	target := rel.Add(vel.Scale(t))
	return target.Angle(), true
}

// smallestPositive returns the smaller of two values that is still positive,
// or a non-positive value when neither qualifies.
func smallestPositive(a, b float64) float64 {
	switch {
	case a > 0 && b > 0:
		return math.Min(a, b)
	case a > 0:
		return a
	default:
		return b
	}
}
