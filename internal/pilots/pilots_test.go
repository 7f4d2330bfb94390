package pilots

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-duel/internal/core"
	"github.com/vovakirdan/tui-duel/internal/registry"
	"github.com/vovakirdan/tui-duel/internal/sim"
)

const aimTol = 1e-9

// create resolves a registered pilot into a ready behavior.
func create(t *testing.T, id string) sim.Behavior {
	t.Helper()
	init, err := registry.Create(id)
	if err != nil {
		t.Fatalf("cannot create pilot %q: %v", id, err)
	}
	behave, err := init()
	if err != nil {
		t.Fatalf("initializer for %q failed: %v", id, err)
	}
	return behave
}

func emptyEnv() sim.Environment {
	return sim.Environment{
		Arena:       sim.ArenaInfo{HalfExtent: 40},
		Projectiles: []sim.ProjectileInfo{},
	}
}

func envWithEnemy(x, y float64) sim.Environment {
	env := emptyEnv()
	env.Enemy = &sim.EnemyInfo{X: x, Y: y, Radius: 2}
	return env
}

func TestAllBuiltinsRegistered(t *testing.T) {
	for _, id := range []string{"idle", "spinner", "gunner", "sniper", "dodger"} {
		if !registry.Exists(id) {
			t.Errorf("pilot %q not registered", id)
		}
	}
}

func TestIdleDoesNothing(t *testing.T) {
	behave := create(t, "idle")

	intent := sim.Intent{Moving: true, Shooting: true}
	env := envWithEnemy(10, 0)
	if err := behave(&intent, &env); err != nil {
		t.Fatalf("idle failed: %v", err)
	}

	if intent.Moving || intent.Shooting {
		t.Error("idle should neither move nor shoot")
	}
}

func TestGunnerAimsAtEnemy(t *testing.T) {
	behave := create(t, "gunner")

	intent := sim.Intent{X: 0, Y: 0, Radius: 2}
	env := envWithEnemy(10, 10)
	if err := behave(&intent, &env); err != nil {
		t.Fatalf("gunner failed: %v", err)
	}

	if !intent.Shooting {
		t.Error("gunner should fire at a visible enemy")
	}
	if math.Abs(intent.ShootDirection-math.Pi/4) > aimTol {
		t.Errorf("aim = %f, expected pi/4", intent.ShootDirection)
	}
}

func TestGunnerHoldsFireWithoutEnemy(t *testing.T) {
	behave := create(t, "gunner")

	intent := sim.Intent{Shooting: true}
	env := emptyEnv()
	if err := behave(&intent, &env); err != nil {
		t.Fatalf("gunner failed: %v", err)
	}

	if intent.Shooting {
		t.Error("gunner should hold fire with no enemy in sight")
	}
}

func TestSpinnerSweepsItsAim(t *testing.T) {
	behave := create(t, "spinner")

	env := emptyEnv()
	var aims []float64
	for i := 0; i < 3; i++ {
		intent := sim.Intent{}
		if err := behave(&intent, &env); err != nil {
			t.Fatalf("spinner failed: %v", err)
		}
		if !intent.Shooting {
			t.Fatal("spinner fires continuously")
		}
		aims = append(aims, intent.ShootDirection)
	}

	step1 := core.NormalizeAngle(aims[1] - aims[0])
	step2 := core.NormalizeAngle(aims[2] - aims[1])
	if math.Abs(step1-spinTurnRate) > aimTol || math.Abs(step2-spinTurnRate) > aimTol {
		t.Errorf("sweep steps = %f, %f, expected %f each", step1, step2, spinTurnRate)
	}
}

func TestSpinnerStateIsPerInstance(t *testing.T) {
	a := create(t, "spinner")
	b := create(t, "spinner")

	env := emptyEnv()
	intent := sim.Intent{}
	if err := a(&intent, &env); err != nil {
		t.Fatalf("spinner failed: %v", err)
	}
	if err := a(&intent, &env); err != nil {
		t.Fatalf("spinner failed: %v", err)
	}
	aimAfterTwo := intent.ShootDirection

	intent = sim.Intent{}
	if err := b(&intent, &env); err != nil {
		t.Fatalf("spinner failed: %v", err)
	}
	if math.Abs(intent.ShootDirection-aimAfterTwo) < aimTol {
		t.Error("two spinner instances should not share sweep state")
	}
}

func TestSniperLeadsMovingEnemy(t *testing.T) {
	behave := create(t, "sniper")

	intent := sim.Intent{X: 0, Y: 0, Radius: 2}
	env := envWithEnemy(10, 0)
	env.Enemy.Moving = true
	env.Enemy.MoveDirection = math.Pi / 2 // Enemy drifting upward
	env.Enemy.Speed = 0.5

	if err := behave(&intent, &env); err != nil {
		t.Fatalf("sniper failed: %v", err)
	}

	if !intent.Shooting {
		t.Fatal("sniper should fire")
	}
	// The lead puts the aim above the enemy's current bearing but well short
	// of its movement direction.
	if intent.ShootDirection <= 0 || intent.ShootDirection >= math.Pi/2 {
		t.Errorf("lead aim = %f, expected between 0 and pi/2", intent.ShootDirection)
	}
}

func TestSniperAimsStraightAtStationaryEnemy(t *testing.T) {
	behave := create(t, "sniper")

	intent := sim.Intent{X: 0, Y: 0, Radius: 2}
	env := envWithEnemy(0, -10)

	if err := behave(&intent, &env); err != nil {
		t.Fatalf("sniper failed: %v", err)
	}

	if math.Abs(intent.ShootDirection-(-math.Pi/2)) > aimTol {
		t.Errorf("aim = %f, expected -pi/2", intent.ShootDirection)
	}
}

func TestDodgerSidestepsIncomingFire(t *testing.T) {
	behave := create(t, "dodger")

	intent := sim.Intent{X: 0, Y: 0, Radius: 2}
	env := envWithEnemy(20, 0)
	// A projectile bearing straight down the x axis at the ship.
	env.Projectiles = []sim.ProjectileInfo{
		{X: 10, Y: 0, MoveDirection: math.Pi, Speed: 1.5},
	}

	if err := behave(&intent, &env); err != nil {
		t.Fatalf("dodger failed: %v", err)
	}

	if !intent.Moving {
		t.Fatal("dodger should move out of the projectile's path")
	}
	// The dodge is perpendicular to the incoming track.
	if math.Abs(math.Abs(intent.MoveDirection)-math.Pi/2) > aimTol {
		t.Errorf("dodge direction = %f, expected perpendicular to the track", intent.MoveDirection)
	}
	firstDodge := intent.MoveDirection

	// The next threat is dodged to the opposite side.
	if err := behave(&intent, &env); err != nil {
		t.Fatalf("dodger failed: %v", err)
	}
	if math.Abs(intent.MoveDirection+firstDodge) > aimTol {
		t.Errorf("dodges did not alternate: %f then %f", firstDodge, intent.MoveDirection)
	}
}

func TestDodgerHoldsPositionWhenClear(t *testing.T) {
	behave := create(t, "dodger")

	intent := sim.Intent{X: 0, Y: 0, Radius: 2}
	env := envWithEnemy(20, 0)
	// A projectile heading away from the ship is not a threat.
	env.Projectiles = []sim.ProjectileInfo{
		{X: 10, Y: 0, MoveDirection: 0, Speed: 1.5},
	}

	if err := behave(&intent, &env); err != nil {
		t.Fatalf("dodger failed: %v", err)
	}

	if intent.Moving {
		t.Error("dodger should hold position with no incoming fire")
	}
	if !intent.Shooting {
		t.Error("dodger still returns fire like a gunner")
	}
}

func TestAllPilotsProduceFiniteIntents(t *testing.T) {
	for _, info := range registry.List() {
		behave := create(t, info.ID)

		intent := sim.Intent{X: -10, Y: 0, Radius: 2}
		env := envWithEnemy(10, 0)
		env.Projectiles = []sim.ProjectileInfo{
			{X: 0, Y: 0, MoveDirection: math.Pi, Speed: 1.5},
		}

		for i := 0; i < 20; i++ {
			if err := behave(&intent, &env); err != nil {
				t.Fatalf("pilot %q faulted on tick %d: %v", info.ID, i+1, err)
			}
			if math.IsNaN(intent.MoveDirection) || math.IsInf(intent.MoveDirection, 0) ||
				math.IsNaN(intent.ShootDirection) || math.IsInf(intent.ShootDirection, 0) {
				t.Fatalf("pilot %q produced a non-finite intent: %+v", info.ID, intent)
			}
		}
	}
}
