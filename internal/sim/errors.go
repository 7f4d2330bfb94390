package sim

import "fmt"

// Behavior faults are always contained: they degrade exactly one ship to an
// inert-but-present state and never crash the engine. Invariant violations are
// engine defects and halt the match.

// InitFaultError reports a behavior initializer that failed at ship creation.
// Fatal to that ship; surfaced to the caller, never silently replaced.
type InitFaultError struct {
	Err error
}

func (e *InitFaultError) Error() string {
	return fmt.Sprintf("behavior initialization failed: %v", e.Err)
}

func (e *InitFaultError) Unwrap() error {
	return e.Err
}

// ExecFaultError reports a per-tick behavior invocation that panicked,
// returned an error, or exceeded its think budget.
type ExecFaultError struct {
	Err error
}

func (e *ExecFaultError) Error() string {
	return fmt.Sprintf("behavior execution failed: %v", e.Err)
}

func (e *ExecFaultError) Unwrap() error {
	return e.Err
}

// ContractFaultError reports an intent that came back from a behavior with
// missing or ill-typed fields. Handled exactly like an execution fault.
type ContractFaultError struct {
	Field  string
	Reason string
}

func (e *ContractFaultError) Error() string {
	return fmt.Sprintf("intent contract violation on %q: %s", e.Field, e.Reason)
}

// InvariantError reports an engine-internal invariant violation such as a
// NaN position or a non-positive radius. Not recoverable: the match halts
// with a diagnostic identifying the offending entity and tick.
type InvariantError struct {
	Tick     uint64
	EntityID int
	Reason   string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("engine invariant violated at tick %d (entity %d): %s", e.Tick, e.EntityID, e.Reason)
}
