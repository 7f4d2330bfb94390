package sim

import "fmt"

// Behavior decides one ship's intent for one tick. It mutates the intent in
// place and may keep private state across ticks inside its own value; that
// state is never visible outside the driver.
type Behavior func(intent *Intent, env *Environment) error

// Initializer produces a fresh behavior binding for one ship. It is invoked
// exactly once at ship creation; a failure here is fatal to that ship.
type Initializer func() (Behavior, error)

// driverState tracks the behavior lifecycle of a single ship.
type driverState int

const (
	stateUninitialized driverState = iota
	stateReady
	stateFaulted
)

// driver owns the behavior binding for one ship and contains every fault the
// untrusted side can produce. Once faulted, the ship contributes no movement
// or shooting changes for the rest of the match; there is no way back to
// Ready short of a new match with fresh bindings.
type driver struct {
	behave Behavior
	state  driverState
	fault  error
}

// newDriver invokes the initializer and transitions to Ready.
// An initializer failure (including a panic) is surfaced as an
// InitFaultError, never swallowed.
func newDriver(init Initializer) (d *driver, err error) {
	defer func() {
		if r := recover(); r != nil {
			d = nil
			err = &InitFaultError{Err: fmt.Errorf("initializer panic: %v", r)}
		}
	}()

	behave, initErr := init()
	if initErr != nil {
		return nil, &InitFaultError{Err: initErr}
	}
	if behave == nil {
		return nil, &InitFaultError{Err: fmt.Errorf("initializer returned no behavior")}
	}
	return &driver{behave: behave, state: stateReady}, nil
}

// step runs one behavior invocation. On any fault the intent is discarded,
// the driver transitions to Faulted, and the fault is returned exactly once;
// later ticks return nil without invoking the behavior.
func (d *driver) step(intent *Intent, env *Environment) error {
	if d.state != stateReady {
		return nil
	}

	if err := d.invoke(intent, env); err != nil {
		d.state = stateFaulted
		d.fault = err
		return err
	}
	if err := intent.validate(); err != nil {
		d.state = stateFaulted
		d.fault = err
		return err
	}
	return nil
}

// invoke calls the bound behavior with panic containment.
func (d *driver) invoke(intent *Intent, env *Environment) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ExecFaultError{Err: fmt.Errorf("behavior panic: %v", r)}
		}
	}()

	if callErr := d.behave(intent, env); callErr != nil {
		// Typed faults from script adapters pass through unchanged.
		switch callErr.(type) {
		case *ExecFaultError, *ContractFaultError:
			return callErr
		default:
			return &ExecFaultError{Err: callErr}
		}
	}
	return nil
}
