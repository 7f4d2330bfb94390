package sim

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestRunnerRunsMatchToResult(t *testing.T) {
	cfg := testConfig()
	cfg.Ship.Health = 10
	cfg.Schedule.PostRollTicks = 2
	m, err := NewMatch(cfg, gunnerPilot(), idlePilot())
	if err != nil {
		t.Fatalf("match creation failed: %v", err)
	}

	var frames atomic.Int64
	r := NewRunner(m, 1000, func(f Frame) {
		frames.Add(1)
	})

	res := r.Run()

	if res.Outcome != OutcomeLeftWon {
		t.Errorf("outcome = %v, expected left won", res.Outcome)
	}
	if res.Winner != "gunner" {
		t.Errorf("winner = %q, expected gunner", res.Winner)
	}
	if res.Ticks == 0 {
		t.Error("result should report ticks advanced")
	}
	if res.Err != nil {
		t.Errorf("unexpected engine failure: %v", res.Err)
	}
	if frames.Load() != int64(res.Ticks) {
		t.Errorf("render observed %d frames for %d ticks", frames.Load(), res.Ticks)
	}
}

func TestRunnerStop(t *testing.T) {
	m, err := NewMatch(testConfig(), idlePilot(), idlePilot())
	if err != nil {
		t.Fatalf("match creation failed: %v", err)
	}

	r := NewRunner(m, 1000, nil)

	resCh := make(chan Result, 1)
	go func() { resCh <- r.Run() }()

	time.Sleep(20 * time.Millisecond)
	r.Stop()
	r.Stop() // Safe to call twice

	select {
	case res := <-resCh:
		if res.Outcome != OutcomeUndecided {
			t.Errorf("outcome after stop = %v, expected undecided", res.Outcome)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not exit after Stop")
	}
}

func TestRunnerCollectsFaults(t *testing.T) {
	cfg := testConfig()
	cfg.Ship.Health = 10
	faulty := PilotSpec{
		Name: "faulty",
		Init: func() (Behavior, error) {
			return func(intent *Intent, env *Environment) error {
				return errTest
			}, nil
		},
	}

	m, err := NewMatch(cfg, gunnerPilot(), faulty)
	if err != nil {
		t.Fatalf("match creation failed: %v", err)
	}

	res := NewRunner(m, 1000, nil).Run()

	if len(res.Faults) != 1 {
		t.Fatalf("result carries %d faults, expected 1", len(res.Faults))
	}
	if res.Faults[0].Side != SideRight {
		t.Errorf("fault side = %v, expected right", res.Faults[0].Side)
	}
	if res.Outcome != OutcomeLeftWon {
		t.Errorf("outcome = %v, expected the working pilot to win", res.Outcome)
	}
}
