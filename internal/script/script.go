// Package script executes untrusted, user-authored JavaScript pilots.
//
// A script defines a function think(self, environment) that is invoked once
// per tick. Data crosses the VM boundary only as flat, JSON-shaped plain
// values; the VM never observes engine objects, health values, or
// projectile ownership. Each ship gets its own VM, and every think call is
// bounded by a wall-clock budget enforced with the interpreter's interrupt
// mechanism.
package script

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dop251/goja"

	"github.com/vovakirdan/tui-duel/internal/sim"
)

// Initializer returns a behavior initializer that compiles the source once
// at ship creation. Compile failures, or a missing or non-function think,
// surface as initialization faults to the match constructor.
func Initializer(name, source string, budget time.Duration) sim.Initializer {
	return func() (sim.Behavior, error) {
		eng, err := compile(name, source, budget)
		if err != nil {
			return nil, err
		}
		return eng.step, nil
	}
}

// InitializerFromFile reads a script file and returns its initializer.
func InitializerFromFile(path string, budget time.Duration) (sim.Initializer, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: cannot read %s: %w", path, err)
	}
	return Initializer(filepath.Base(path), string(source), budget), nil
}

// engine holds the per-ship VM and the compiled think function.
type engine struct {
	name   string
	vm     *goja.Runtime
	think  goja.Callable
	budget time.Duration
}

// compile builds a fresh VM, runs the script's top level, and resolves think.
func compile(name, source string, budget time.Duration) (*engine, error) {
	prog, err := goja.Compile(name, source, true)
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}

	vm := goja.New()
	if _, err := vm.RunProgram(prog); err != nil {
		return nil, fmt.Errorf("script: evaluate %s: %w", name, err)
	}

	think, ok := goja.AssertFunction(vm.Get("think"))
	if !ok {
		return nil, fmt.Errorf("script: %s does not define a think(self, environment) function", name)
	}

	return &engine{
		name:   name,
		vm:     vm,
		think:  think,
		budget: budget,
	}, nil
}

// step runs one think call: serialize the contract in, invoke under the
// budget, copy the whitelisted fields back out.
func (e *engine) step(intent *sim.Intent, env *sim.Environment) error {
	self := map[string]interface{}{
		"x":              intent.X,
		"y":              intent.Y,
		"radius":         intent.Radius,
		"moveDirection":  intent.MoveDirection,
		"moving":         intent.Moving,
		"shootDirection": intent.ShootDirection,
		"shooting":       intent.Shooting,
	}

	if err := e.invoke(self, environmentValue(env)); err != nil {
		return err
	}

	// Only the writable decision fields come back; x, y, and radius are
	// ignored no matter what the script wrote to them.
	var err error
	if intent.MoveDirection, err = numberField(self, "moveDirection"); err != nil {
		return err
	}
	if intent.Moving, err = boolField(self, "moving"); err != nil {
		return err
	}
	if intent.ShootDirection, err = numberField(self, "shootDirection"); err != nil {
		return err
	}
	if intent.Shooting, err = boolField(self, "shooting"); err != nil {
		return err
	}
	return nil
}

// invoke calls think with the budget armed. Budget exhaustion and thrown
// errors both come back as execution faults.
func (e *engine) invoke(self map[string]interface{}, envVal interface{}) error {
	timer := time.AfterFunc(e.budget, func() {
		e.vm.Interrupt("think budget exceeded")
	})
	defer func() {
		timer.Stop()
		e.vm.ClearInterrupt()
	}()

	_, err := e.think(goja.Undefined(), e.vm.ToValue(self), e.vm.ToValue(envVal))
	if err == nil {
		return nil
	}

	if _, interrupted := err.(*goja.InterruptedError); interrupted {
		return &sim.ExecFaultError{Err: fmt.Errorf("script %s exceeded its %v think budget", e.name, e.budget)}
	}
	return &sim.ExecFaultError{Err: fmt.Errorf("script %s: %w", e.name, err)}
}

// environmentValue flattens the snapshot into plain maps and slices.
func environmentValue(env *sim.Environment) map[string]interface{} {
	out := map[string]interface{}{
		"arena": map[string]interface{}{
			"halfExtent": env.Arena.HalfExtent,
		},
		"enemy": nil,
	}

	if env.Enemy != nil {
		out["enemy"] = map[string]interface{}{
			"x":             env.Enemy.X,
			"y":             env.Enemy.Y,
			"radius":        env.Enemy.Radius,
			"moving":        env.Enemy.Moving,
			"moveDirection": env.Enemy.MoveDirection,
			"speed":         env.Enemy.Speed,
		}
	}

	projectiles := make([]interface{}, 0, len(env.Projectiles))
	for _, p := range env.Projectiles {
		projectiles = append(projectiles, map[string]interface{}{
			"x":             p.X,
			"y":             p.Y,
			"moveDirection": p.MoveDirection,
			"speed":         p.Speed,
		})
	}
	out["projectiles"] = projectiles

	return out
}

// numberField reads a numeric contract field, accepting the integer and
// float representations the VM produces.
func numberField(m map[string]interface{}, key string) (float64, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return 0, &sim.ContractFaultError{Field: key, Reason: "missing"}
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	default:
		return 0, &sim.ContractFaultError{Field: key, Reason: fmt.Sprintf("expected number, got %T", v)}
	}
}

// boolField reads a boolean contract field.
func boolField(m map[string]interface{}, key string) (bool, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return false, &sim.ContractFaultError{Field: key, Reason: "missing"}
	}
	b, ok := v.(bool)
	if !ok {
		return false, &sim.ContractFaultError{Field: key, Reason: fmt.Sprintf("expected boolean, got %T", v)}
	}
	return b, nil
}
