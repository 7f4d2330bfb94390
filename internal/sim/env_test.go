package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-duel/internal/core"
)

func TestSnapshotExcludesSelfAndOwnShots(t *testing.T) {
	self := testShip(t, 1, core.V(0, 0), alwaysShoot)
	enemy := testShip(t, 2, core.V(10, 0), alwaysShoot)
	mine := testProjectile(3, core.V(5, 0), 10, 1)
	theirs := testProjectile(4, core.V(-5, 0), 10, 2)

	env := BuildEnvironment([]Entity{self, enemy, mine, theirs}, self, core.NewBounds(20))

	if env.Enemy == nil {
		t.Fatal("expected an enemy descriptor")
	}
	if env.Enemy.X != 10 || env.Enemy.Y != 0 {
		t.Errorf("enemy at (%f, %f), expected (10, 0)", env.Enemy.X, env.Enemy.Y)
	}

	if len(env.Projectiles) != 1 {
		t.Fatalf("snapshot has %d projectiles, expected 1 (own shots excluded)", len(env.Projectiles))
	}
	if env.Projectiles[0].X != -5 {
		t.Errorf("projectile at x=%f, expected -5", env.Projectiles[0].X)
	}
}

func TestSnapshotPicksNearestSolid(t *testing.T) {
	self := testShip(t, 1, core.V(0, 0), alwaysShoot)
	far := testShip(t, 2, core.V(15, 0), alwaysShoot)
	near := testShip(t, 3, core.V(-6, 0), alwaysShoot)

	env := BuildEnvironment([]Entity{self, far, near}, self, core.NewBounds(20))

	if env.Enemy == nil {
		t.Fatal("expected an enemy descriptor")
	}
	if env.Enemy.X != -6 {
		t.Errorf("enemy at x=%f, expected the nearer ship at -6", env.Enemy.X)
	}
}

func TestSnapshotSkipsDeadEntities(t *testing.T) {
	self := testShip(t, 1, core.V(0, 0), alwaysShoot)
	enemy := testShip(t, 2, core.V(10, 0), alwaysShoot)
	enemy.Body().Kill()
	p := testProjectile(3, core.V(-5, 0), 10, 2)
	p.Body().Kill()

	env := BuildEnvironment([]Entity{self, enemy, p}, self, core.NewBounds(20))

	if env.Enemy != nil {
		t.Error("dead ships must not appear as the enemy")
	}
	if len(env.Projectiles) != 0 {
		t.Error("dead projectiles must not appear in the snapshot")
	}
}

func TestSnapshotNeverRevealsHealth(t *testing.T) {
	self := testShip(t, 1, core.V(0, 0), alwaysShoot)
	enemy := testShip(t, 2, core.V(10, 0), alwaysShoot)
	enemy.Health = 30

	env := BuildEnvironment([]Entity{self, enemy}, self, core.NewBounds(20))

	// The descriptor carries only observable facts; the full struct is the
	// whole contract, so enumerate it.
	want := EnemyInfo{X: 10, Y: 0, Radius: 2}
	if *env.Enemy != want {
		t.Errorf("enemy descriptor = %+v, expected %+v", *env.Enemy, want)
	}
}

func TestStationaryEnemyAdvertisesNoMotion(t *testing.T) {
	self := testShip(t, 1, core.V(0, 0), alwaysShoot)
	enemy := testShip(t, 2, core.V(10, 0), alwaysShoot)
	enemy.Body().MoveDir = 1.0
	enemy.Body().Moving = false

	env := BuildEnvironment([]Entity{self, enemy}, self, core.NewBounds(20))

	if env.Enemy.Moving || env.Enemy.Speed != 0 || env.Enemy.MoveDirection != 0 {
		t.Errorf("stationary enemy advertised motion: %+v", env.Enemy)
	}
}

func TestEnemyPinnedAgainstWallLooksStationary(t *testing.T) {
	bounds := core.NewBounds(20)
	self := testShip(t, 1, core.V(0, 0), alwaysShoot)
	enemy := testShip(t, 2, core.V(20, 0), alwaysShoot)
	enemy.Body().Moving = true
	enemy.Body().MoveDir = 0 // Straight into the wall

	env := BuildEnvironment([]Entity{self, enemy}, self, bounds)

	if env.Enemy.Moving {
		t.Error("an enemy pinned against the wall should look stationary")
	}
}

func TestEnemyHeadingClampedAtWall(t *testing.T) {
	bounds := core.NewBounds(20)
	self := testShip(t, 1, core.V(0, 0), alwaysShoot)
	enemy := testShip(t, 2, core.V(20, 0), alwaysShoot)
	enemy.Body().Moving = true
	enemy.Body().MoveDir = math.Pi / 4 // Diagonally into the wall
	enemy.Body().Speed = 1.5

	env := BuildEnvironment([]Entity{self, enemy}, self, bounds)

	if !env.Enemy.Moving {
		t.Fatal("sliding along the wall is still motion")
	}
	// Only the y component survives the clamp.
	if math.Abs(env.Enemy.MoveDirection-math.Pi/2) > posTol {
		t.Errorf("advertised direction = %f, expected pi/2", env.Enemy.MoveDirection)
	}
	wantSpeed := 1.5 * math.Sin(math.Pi/4)
	if math.Abs(env.Enemy.Speed-wantSpeed) > posTol {
		t.Errorf("advertised speed = %f, expected %f", env.Enemy.Speed, wantSpeed)
	}
}

func TestProjectileSnapshotFields(t *testing.T) {
	self := testShip(t, 1, core.V(0, 0), alwaysShoot)
	p := testProjectile(3, core.V(4, -2), 10, 2)
	p.Body().MoveDir = math.Pi
	p.Body().Speed = 1.5

	env := BuildEnvironment([]Entity{self, p}, self, core.NewBounds(20))

	if len(env.Projectiles) != 1 {
		t.Fatalf("snapshot has %d projectiles, expected 1", len(env.Projectiles))
	}
	got := env.Projectiles[0]
	want := ProjectileInfo{X: 4, Y: -2, MoveDirection: math.Pi, Speed: 1.5}
	if got != want {
		t.Errorf("projectile info = %+v, expected %+v", got, want)
	}
}

func TestSnapshotIsValueCopy(t *testing.T) {
	self := testShip(t, 1, core.V(0, 0), alwaysShoot)
	enemy := testShip(t, 2, core.V(10, 0), alwaysShoot)

	env := BuildEnvironment([]Entity{self, enemy}, self, core.NewBounds(20))
	env.Enemy.X = -999
	env.Arena.HalfExtent = 1

	if enemy.Body().Pos.X != 10 {
		t.Error("mutating the snapshot must not touch live entities")
	}
}
