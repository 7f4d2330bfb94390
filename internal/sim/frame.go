package sim

import "github.com/vovakirdan/tui-duel/internal/core"

// EntityPose is the drawable state of one entity: enough for a renderer,
// nothing that belongs to the engine.
type EntityPose struct {
	Kind       Kind
	Side       Side // Meaningful for ships only
	Pos        core.Vec2
	Radius     float64
	Facing     float64
	HealthFrac float64 // 1.0 for projectiles
}

// PilotStatus is the HUD-visible state of one combatant.
type PilotStatus struct {
	Name    string
	Health  int
	Alive   bool
	Faulted bool
}

// Frame is the consistent post-tick snapshot handed to the render callback.
// It is a value copy taken after all mutation for the tick has completed;
// renderers never observe a partial tick.
type Frame struct {
	Tick     uint64
	Phase    Phase
	Outcome  Outcome
	Bounds   core.Bounds
	Entities []EntityPose
	Pilots   [2]PilotStatus

	PreRollLeft  int
	PostRollLeft int
}

// Frame captures the current drawable state in live-set order.
func (m *Match) Frame() Frame {
	f := Frame{
		Tick:         m.tick,
		Phase:        m.phase,
		Outcome:      m.outcome,
		Bounds:       m.bounds,
		Entities:     make([]EntityPose, 0, len(m.entities)),
		PreRollLeft:  m.preRollLeft,
		PostRollLeft: m.postRollLeft,
	}

	for _, e := range m.entities {
		b := e.Body()
		pose := EntityPose{
			Kind:       e.Kind(),
			Pos:        b.Pos,
			Radius:     b.Radius,
			Facing:     b.Facing,
			HealthFrac: 1.0,
		}
		if ship, ok := e.(*Ship); ok {
			pose.Side = ship.Side
			pose.HealthFrac = ship.HealthFrac()
		}
		f.Entities = append(f.Entities, pose)
	}

	for side, ship := range m.ships {
		f.Pilots[side] = PilotStatus{
			Name:    ship.PilotName,
			Health:  core.Max(ship.Health, 0),
			Alive:   ship.Body().Alive,
			Faulted: ship.Faulted(),
		}
	}
	return f
}
