package sim

import (
	"errors"
	"math"
	"testing"
)

var errTest = errors.New("deliberate test failure")

func TestDriverInitErrorIsInitFault(t *testing.T) {
	_, err := newDriver(func() (Behavior, error) {
		return nil, errTest
	})
	if err == nil {
		t.Fatal("expected an error")
	}

	var initFault *InitFaultError
	if !errors.As(err, &initFault) {
		t.Fatalf("error is %T, expected *InitFaultError", err)
	}
	if !errors.Is(err, errTest) {
		t.Error("original cause should be preserved")
	}
}

func TestDriverInitPanicContained(t *testing.T) {
	_, err := newDriver(func() (Behavior, error) {
		panic("init exploded")
	})
	if err == nil {
		t.Fatal("expected an error")
	}

	var initFault *InitFaultError
	if !errors.As(err, &initFault) {
		t.Fatalf("error is %T, expected *InitFaultError", err)
	}
}

func TestDriverInitNilBehaviorRejected(t *testing.T) {
	_, err := newDriver(func() (Behavior, error) {
		return nil, nil
	})
	if err == nil {
		t.Fatal("a nil behavior without an error should still be an init fault")
	}
}

func TestDriverFaultReportedExactlyOnce(t *testing.T) {
	calls := 0
	drv, err := newDriver(func() (Behavior, error) {
		return func(intent *Intent, env *Environment) error {
			calls++
			return errTest
		}, nil
	})
	if err != nil {
		t.Fatalf("driver creation failed: %v", err)
	}

	intent := Intent{}
	fault := drv.step(&intent, &Environment{})
	if fault == nil {
		t.Fatal("first step should surface the fault")
	}
	var execFault *ExecFaultError
	if !errors.As(fault, &execFault) {
		t.Fatalf("fault is %T, expected *ExecFaultError", fault)
	}

	for i := 0; i < 5; i++ {
		if again := drv.step(&intent, &Environment{}); again != nil {
			t.Fatalf("step %d re-reported the fault: %v", i+2, again)
		}
	}
	if calls != 1 {
		t.Errorf("behavior invoked %d times, expected 1", calls)
	}
	if drv.state != stateFaulted {
		t.Errorf("driver state = %v, expected faulted", drv.state)
	}
}

func TestDriverPanicBecomesExecFault(t *testing.T) {
	drv, err := newDriver(func() (Behavior, error) {
		return func(intent *Intent, env *Environment) error {
			panic("tick exploded")
		}, nil
	})
	if err != nil {
		t.Fatalf("driver creation failed: %v", err)
	}

	fault := drv.step(&Intent{}, &Environment{})
	var execFault *ExecFaultError
	if !errors.As(fault, &execFault) {
		t.Fatalf("fault is %T, expected *ExecFaultError", fault)
	}
}

func TestDriverTypedFaultsPassThrough(t *testing.T) {
	contract := &ContractFaultError{Field: "moving", Reason: "missing"}
	drv, err := newDriver(func() (Behavior, error) {
		return func(intent *Intent, env *Environment) error {
			return contract
		}, nil
	})
	if err != nil {
		t.Fatalf("driver creation failed: %v", err)
	}

	fault := drv.step(&Intent{}, &Environment{})
	if fault != contract {
		t.Errorf("fault = %v, expected the contract fault unchanged", fault)
	}
}

func TestNonFiniteIntentIsContractFault(t *testing.T) {
	tests := []struct {
		name  string
		field string
		fill  func(*Intent)
	}{
		{"NaN move direction", "moveDirection", func(in *Intent) { in.MoveDirection = math.NaN() }},
		{"Inf move direction", "moveDirection", func(in *Intent) { in.MoveDirection = math.Inf(1) }},
		{"NaN shoot direction", "shootDirection", func(in *Intent) { in.ShootDirection = math.NaN() }},
		{"Inf shoot direction", "shootDirection", func(in *Intent) { in.ShootDirection = math.Inf(-1) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			drv, err := newDriver(func() (Behavior, error) {
				return func(intent *Intent, env *Environment) error {
					tc.fill(intent)
					return nil
				}, nil
			})
			if err != nil {
				t.Fatalf("driver creation failed: %v", err)
			}

			fault := drv.step(&Intent{}, &Environment{})
			var contract *ContractFaultError
			if !errors.As(fault, &contract) {
				t.Fatalf("fault is %T, expected *ContractFaultError", fault)
			}
			if contract.Field != tc.field {
				t.Errorf("fault field = %q, expected %q", contract.Field, tc.field)
			}
			if drv.state != stateFaulted {
				t.Error("driver should be faulted after a contract violation")
			}
		})
	}
}
