package sim

import "github.com/vovakirdan/tui-duel/internal/core"

// Environment is the read-only, per-viewer snapshot of the world handed to a
// behavior step. It is a pure value copy: mutating it never affects live
// entities, and it exposes nothing beyond what an opponent could observe
// (no health, no projectile ownership, no engine identities).
type Environment struct {
	Arena       ArenaInfo        `json:"arena"`
	Enemy       *EnemyInfo       `json:"enemy"`
	Projectiles []ProjectileInfo `json:"projectiles"`
}

// ArenaInfo describes the arena square shared by both combatants.
type ArenaInfo struct {
	HalfExtent float64 `json:"halfExtent"`
}

// EnemyInfo describes the nearest opposing solid entity.
// MoveDirection and Speed are only meaningful while Moving is true, and are
// derived from a bounds-clamped projection of one tick of motion: a viewer
// never sees illegal off-arena movement.
type EnemyInfo struct {
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Radius        float64 `json:"radius"`
	Moving        bool    `json:"moving"`
	MoveDirection float64 `json:"moveDirection"`
	Speed         float64 `json:"speed"`
}

// ProjectileInfo describes one incoming projectile.
type ProjectileInfo struct {
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	MoveDirection float64 `json:"moveDirection"`
	Speed         float64 `json:"speed"`
}

// BuildEnvironment computes the snapshot visible to self: the arena bounds,
// at most one enemy descriptor (the nearest other living solid), and every
// massless projectile not fired by self.
func BuildEnvironment(entities []Entity, self Entity, bounds core.Bounds) Environment {
	selfBody := self.Body()

	env := Environment{
		Arena:       ArenaInfo{HalfExtent: bounds.HalfExtent},
		Projectiles: []ProjectileInfo{},
	}

	var nearest Entity
	nearestDist := 0.0

	for _, e := range entities {
		if e == self {
			continue
		}
		b := e.Body()
		if !b.Alive {
			continue
		}

		switch b.Class {
		case ClassSolid:
			d := core.Distance(selfBody.Pos, b.Pos)
			if nearest == nil || d < nearestDist {
				nearest = e
				nearestDist = d
			}
		case ClassMassless:
			p, ok := e.(*Projectile)
			if ok && p.OwnerID == selfBody.ID {
				continue
			}
			env.Projectiles = append(env.Projectiles, ProjectileInfo{
				X:             b.Pos.X,
				Y:             b.Pos.Y,
				MoveDirection: b.MoveDir,
				Speed:         b.Speed,
			})
		}
	}

	if nearest != nil {
		env.Enemy = describeEnemy(nearest.Body(), bounds)
	}
	return env
}

// describeEnemy copies the observable facts about an enemy body.
//
// The instantaneous heading is reconstructed from the displacement the enemy
// would actually achieve next tick after clamping to the arena, not from its
// raw movement state. This is deliberately separate from the authoritative
// clamp applied during bounds enforcement: collapsing the two would change
// what an opponent can infer at the wall.
func describeEnemy(b *Body, bounds core.Bounds) *EnemyInfo {
	info := &EnemyInfo{
		X:      b.Pos.X,
		Y:      b.Pos.Y,
		Radius: b.Radius,
	}
	if !b.Moving {
		return info
	}

	next := bounds.ClampPoint(b.Pos.Add(core.Heading(b.MoveDir).Scale(b.Speed)))
	disp := next.Sub(b.Pos)
	if disp.Len() == 0 {
		// Pinned against the wall: visibly stationary.
		return info
	}

	info.Moving = true
	info.MoveDirection = disp.Angle()
	info.Speed = disp.Len()
	return info
}
