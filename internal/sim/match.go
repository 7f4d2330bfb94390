package sim

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-duel/internal/config"
	"github.com/vovakirdan/tui-duel/internal/core"
)

// Phase is the match lifecycle state.
type Phase int

const (
	PhasePreRoll Phase = iota
	PhaseCombat
	PhasePostRoll
	PhaseConcluded
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhasePreRoll:
		return "pre-roll"
	case PhaseCombat:
		return "combat"
	case PhasePostRoll:
		return "post-roll"
	case PhaseConcluded:
		return "concluded"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of a match.
type Outcome int

const (
	OutcomeUndecided Outcome = iota
	OutcomeTie
	OutcomeLeftWon
	OutcomeRightWon
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeTie:
		return "tie"
	case OutcomeLeftWon:
		return "left won"
	case OutcomeRightWon:
		return "right won"
	default:
		return "undecided"
	}
}

// PilotSpec binds a named behavior initializer to one side of a match.
type PilotSpec struct {
	Name string
	Init Initializer
}

// FaultReport identifies a behavior fault surfaced during a match.
// Each ship produces at most one report.
type FaultReport struct {
	Side  Side
	Pilot string
	Tick  uint64
	Err   error
}

// Match owns the live entity set and drives it through pre-roll, combat, and
// post-roll to an outcome. All mutation happens through Step on the caller's
// single simulation goroutine; no other component keeps a reference into the
// live set beyond one tick.
type Match struct {
	cfg    config.MatchConfig
	bounds core.Bounds

	entities []Entity
	ships    [2]*Ship
	nextID   int

	tick         uint64
	phase        Phase
	outcome      Outcome
	preRollLeft  int
	postRollLeft int

	faults  []FaultReport
	onFault func(FaultReport)
	failure error
}

// NewMatch validates the configuration, places the two ships, and binds
// their behaviors. An initializer failure aborts construction with an
// InitFaultError naming the offending side.
func NewMatch(cfg config.MatchConfig, left, right PilotSpec) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	m := &Match{
		cfg:          cfg,
		bounds:       core.NewBounds(cfg.Arena.HalfExtent),
		phase:        PhasePreRoll,
		preRollLeft:  cfg.Schedule.PreRollTicks,
		postRollLeft: cfg.Schedule.PostRollTicks,
	}
	if m.preRollLeft <= 0 {
		m.phase = PhaseCombat
	}

	for side, spec := range [2]PilotSpec{SideLeft: left, SideRight: right} {
		ship, err := m.newShip(Side(side), spec)
		if err != nil {
			return nil, fmt.Errorf("sim: %s pilot %q: %w", Side(side), spec.Name, err)
		}
		m.ships[side] = ship
	}
	m.entities = []Entity{m.ships[SideLeft], m.ships[SideRight]}

	return m, nil
}

// newShip creates one combatant on its starting mark, facing its opponent.
func (m *Match) newShip(side Side, spec PilotSpec) (*Ship, error) {
	drv, err := newDriver(spec.Init)
	if err != nil {
		return nil, err
	}

	startX := -m.bounds.HalfExtent / 2
	facing := 0.0
	if side == SideRight {
		startX = m.bounds.HalfExtent / 2
		facing = math.Pi
	}

	m.nextID++
	return &Ship{
		body: Body{
			ID:     m.nextID,
			Pos:    core.V(startX, 0),
			Radius: m.cfg.Ship.Radius,
			Speed:  m.cfg.Ship.Speed,
			Facing: facing,
			Class:  ClassSolid,
			Alive:  true,
		},
		Side:        side,
		PilotName:   spec.Name,
		Health:      m.cfg.Ship.Health,
		fullHealth:  m.cfg.Ship.Health,
		shootPeriod: m.cfg.Combat.ShootPeriod,
		projSpec: ProjectileSpec{
			Radius:      m.cfg.Projectile.Radius,
			Speed:       m.cfg.Projectile.Speed,
			Damage:      m.cfg.Projectile.Damage,
			SpawnMargin: m.cfg.Projectile.SpawnMargin,
		},
		driver: drv,
	}, nil
}

// SetFaultHandler installs a callback invoked for each behavior fault.
// Each ship faults at most once per match.
func (m *Match) SetFaultHandler(fn func(FaultReport)) {
	m.onFault = fn
}

// Step advances the match by exactly one tick. It never blocks between
// phases and returns an error only for engine-internal invariant violations,
// which halt the match.
func (m *Match) Step() error {
	if m.failure != nil {
		return m.failure
	}

	switch m.phase {
	case PhasePreRoll:
		m.tick++
		m.preRollLeft--
		if m.preRollLeft <= 0 {
			m.phase = PhaseCombat
		}

	case PhaseCombat:
		m.tick++
		if err := m.combatTick(); err != nil {
			m.failure = err
			m.phase = PhaseConcluded
			return err
		}

	case PhasePostRoll:
		m.tick++
		m.postRollLeft--
		if m.postRollLeft <= 0 {
			m.phase = PhaseConcluded
		}

	case PhaseConcluded:
		// Scheduler stopped advancing; outcome is fixed.
	}
	return nil
}

// combatTick runs the combat phases in strict order: motion, behavior,
// spawn, collisions, bounds, reap, outcome.
func (m *Match) combatTick() error {
	// 1. Motion integration for every live entity.
	for _, e := range m.entities {
		e.Body().IntegrateMotion()
	}

	// 2-3. Behavior step for every scriptable entity; spawned projectiles
	// join the live set after all behaviors have run.
	var spawned []Entity
	for _, ship := range m.ships {
		if !ship.Body().Alive {
			continue
		}
		env := BuildEnvironment(m.entities, ship, m.bounds)
		news, fault := ship.StepBehavior(&env)
		if fault != nil {
			m.reportFault(ship, fault)
		}
		spawned = append(spawned, news...)
	}
	for _, e := range spawned {
		m.nextID++
		e.Body().ID = m.nextID
		m.entities = append(m.entities, e)
	}

	// 4. Collision resolution over the current live set.
	ResolveCollisions(m.entities)

	// 5. Bounds enforcement: projectiles die off-arena, ships are clamped.
	m.enforceBounds()

	if err := m.checkInvariants(); err != nil {
		return err
	}

	// 6. Reap: all deaths for this tick are final before any removal.
	m.reap()

	// Outcome check: combat ends when fewer than two combatants stand.
	m.checkOutcome()
	return nil
}

// enforceBounds applies the authoritative arena clamp. A projectile whose
// center leaves the square dies; a ship is clamped component-wise and never
// dies from bounds.
func (m *Match) enforceBounds() {
	for _, e := range m.entities {
		b := e.Body()
		switch e.Kind() {
		case KindProjectile:
			if !m.bounds.Contains(b.Pos) {
				b.Kill()
			}
		case KindShip:
			b.Pos = m.bounds.ClampPoint(b.Pos)
		}
	}
}

// checkInvariants verifies engine-internal soundness of every entity.
// A violation is a defect, not a script fault, and halts the match.
func (m *Match) checkInvariants() error {
	for _, e := range m.entities {
		b := e.Body()
		if b.Radius <= 0 {
			return &InvariantError{Tick: m.tick, EntityID: b.ID, Reason: "non-positive radius"}
		}
		if math.IsNaN(b.Pos.X) || math.IsNaN(b.Pos.Y) ||
			math.IsInf(b.Pos.X, 0) || math.IsInf(b.Pos.Y, 0) {
			return &InvariantError{Tick: m.tick, EntityID: b.ID, Reason: "non-finite position"}
		}
	}
	return nil
}

// reap removes every entity flagged dead, preserving live-set order.
func (m *Match) reap() {
	alive := m.entities[:0]
	for _, e := range m.entities {
		if e.Body().Alive {
			alive = append(alive, e)
		}
	}
	for i := len(alive); i < len(m.entities); i++ {
		m.entities[i] = nil
	}
	m.entities = alive
}

// checkOutcome transitions to post-roll once fewer than two ships survive.
// Zero survivors in the same tick is a tie.
func (m *Match) checkOutcome() {
	var survivors []*Ship
	for _, ship := range m.ships {
		if ship.Body().Alive {
			survivors = append(survivors, ship)
		}
	}
	if len(survivors) >= 2 {
		return
	}

	switch {
	case len(survivors) == 0:
		m.outcome = OutcomeTie
	case survivors[0].Side == SideLeft:
		m.outcome = OutcomeLeftWon
	default:
		m.outcome = OutcomeRightWon
	}

	m.phase = PhasePostRoll
	if m.postRollLeft <= 0 {
		m.phase = PhaseConcluded
	}
}

// reportFault records a ship's behavior fault and forwards it to the host.
func (m *Match) reportFault(ship *Ship, err error) {
	report := FaultReport{
		Side:  ship.Side,
		Pilot: ship.PilotName,
		Tick:  m.tick,
		Err:   err,
	}
	m.faults = append(m.faults, report)
	if m.onFault != nil {
		m.onFault(report)
	}
}

// Tick returns the number of ticks advanced so far.
func (m *Match) Tick() uint64 {
	return m.tick
}

// Phase returns the current lifecycle phase.
func (m *Match) Phase() Phase {
	return m.phase
}

// Outcome returns the match result, OutcomeUndecided until combat ends.
func (m *Match) Outcome() Outcome {
	return m.outcome
}

// Concluded reports whether the scheduler has stopped advancing.
func (m *Match) Concluded() bool {
	return m.phase == PhaseConcluded
}

// Ship returns the combatant fighting for the given side.
// The reference stays valid after the ship dies.
func (m *Match) Ship(side Side) *Ship {
	return m.ships[side]
}

// Faults returns every behavior fault reported so far, in order.
func (m *Match) Faults() []FaultReport {
	return m.faults
}

// Failure returns the invariant violation that halted the match, if any.
func (m *Match) Failure() error {
	return m.failure
}
