// Package sim implements the deterministic, tick-based duel simulation:
// the entity model, per-tick physics, collision resolution, per-ship
// environment snapshots, behavior execution with fault containment, and the
// fixed-step match scheduler.
package sim

import (
	"github.com/vovakirdan/tui-duel/internal/core"
)

// Kind discriminates the entity variants.
type Kind int

const (
	KindShip Kind = iota
	KindProjectile
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindProjectile:
		return "projectile"
	default:
		return "unknown"
	}
}

// CollisionClass determines how an entity participates in collisions.
// Solid bodies push each other apart and consume massless bodies on contact;
// massless bodies never interact with each other.
type CollisionClass int

const (
	ClassSolid CollisionClass = iota
	ClassMassless
)

// Side identifies which combatant a ship fights for.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// String returns "left" or "right".
func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// Body is the common shape of every simulated object.
type Body struct {
	ID      int
	Pos     core.Vec2
	Radius  float64
	MoveDir float64 // Movement direction in radians
	Speed   float64 // Distance covered per tick while moving
	Moving  bool
	Facing  float64 // Aim direction in radians
	Class   CollisionClass
	Alive   bool
}

// IntegrateMotion advances the body by Speed along MoveDir if it is moving.
// No acceleration, no drag. This is the only position mutation performed
// outside collision resolution and bounds enforcement.
func (b *Body) IntegrateMotion() {
	if !b.Moving {
		return
	}
	b.Pos = b.Pos.Add(core.Heading(b.MoveDir).Scale(b.Speed))
}

// Kill marks the body dead. Alive only ever transitions true to false.
func (b *Body) Kill() {
	b.Alive = false
}

// Entity is the tagged-variant view of a simulated object.
// Variant discrimination happens once through Kind, not by per-use
// structural probes.
type Entity interface {
	Body() *Body
	Kind() Kind
}

// ProjectileSpec describes the projectiles a ship fires.
type ProjectileSpec struct {
	Radius      float64
	Speed       float64
	Damage      int
	SpawnMargin float64 // Multiplier >1 applied to the spawn offset
}

// Ship is a solid, scriptable combatant.
type Ship struct {
	body Body

	Side      Side
	PilotName string

	Health        int
	ShootCooldown int
	fullHealth    int
	shootPeriod   int
	projSpec      ProjectileSpec

	driver *driver
}

// Body returns the ship's physical body.
func (s *Ship) Body() *Body {
	return &s.body
}

// Kind returns KindShip.
func (s *Ship) Kind() Kind {
	return KindShip
}

// HealthFrac returns the ship's remaining health as a fraction of full.
func (s *Ship) HealthFrac() float64 {
	if s.Health <= 0 || s.fullHealth <= 0 {
		return 0
	}
	return float64(s.Health) / float64(s.fullHealth)
}

// Faulted reports whether the ship's behavior has been degraded to inert.
func (s *Ship) Faulted() bool {
	return s.driver != nil && s.driver.state == stateFaulted
}

// CollidedWith applies the effect of another entity touching this ship.
// Only projectiles have an effect: their damage is subtracted from health
// and the ship dies when health reaches zero.
func (s *Ship) CollidedWith(other Entity) {
	p, ok := other.(*Projectile)
	if !ok {
		return
	}
	s.Health -= p.Damage
	if s.Health <= 0 {
		s.body.Kill()
	}
}

// StepBehavior runs one behavior step for the ship: the cooldown is
// decremented, the bound behavior decides the intent for this tick, and a
// projectile is spawned if the intent asked to shoot while the cooldown was
// spent. Returns newly spawned entities and, exactly once per ship, the
// fault that degraded its behavior.
//
// The projectile ID is assigned by the caller when it joins the live set.
func (s *Ship) StepBehavior(env *Environment) ([]Entity, error) {
	if s.ShootCooldown > 0 {
		s.ShootCooldown--
	}

	intent := Intent{
		X:              s.body.Pos.X,
		Y:              s.body.Pos.Y,
		Radius:         s.body.Radius,
		MoveDirection:  s.body.MoveDir,
		Moving:         s.body.Moving,
		ShootDirection: s.body.Facing,
		Shooting:       false,
	}

	fault := s.driver.step(&intent, env)
	if fault != nil {
		// The intent for this tick is discarded; the ship keeps its
		// previous movement state and never fires.
		return nil, fault
	}
	if s.driver.state != stateReady {
		return nil, nil
	}

	s.applyIntent(intent)

	if intent.Shooting && s.ShootCooldown == 0 {
		s.ShootCooldown = s.shootPeriod
		return []Entity{s.spawnProjectile()}, nil
	}
	return nil, nil
}

// applyIntent copies back only the writable decision fields.
// Read-only facts are ignored even if the behavior altered them, so a script
// cannot teleport or resize its ship.
func (s *Ship) applyIntent(in Intent) {
	s.body.MoveDir = in.MoveDirection
	s.body.Moving = in.Moving
	s.body.Facing = in.ShootDirection
}

// spawnProjectile creates a projectile just outside the ship's own radius
// along the aim direction. The margin keeps the projectile clear of its
// shooter on the spawn tick.
func (s *Ship) spawnProjectile() *Projectile {
	offset := (s.body.Radius + s.projSpec.Radius) * s.projSpec.SpawnMargin
	pos := s.body.Pos.Add(core.Heading(s.body.Facing).Scale(offset))

	return &Projectile{
		body: Body{
			Pos:     pos,
			Radius:  s.projSpec.Radius,
			MoveDir: s.body.Facing,
			Speed:   s.projSpec.Speed,
			Moving:  true,
			Facing:  s.body.Facing,
			Class:   ClassMassless,
			Alive:   true,
		},
		Damage:  s.projSpec.Damage,
		OwnerID: s.body.ID,
	}
}

// Projectile is a massless shot fired by a ship. OwnerID is a non-owning
// back-reference used only to exclude self-fire from environment snapshots;
// the owner may die while its projectiles survive.
type Projectile struct {
	body Body

	Damage  int
	OwnerID int
}

// Body returns the projectile's physical body.
func (p *Projectile) Body() *Body {
	return &p.body
}

// Kind returns KindProjectile.
func (p *Projectile) Kind() Kind {
	return KindProjectile
}
