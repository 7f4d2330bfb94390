package sim

import (
	"sync"
	"time"
)

// Result is the final report of a completed (or stopped) match.
type Result struct {
	Outcome  Outcome
	Winner   string // Winning pilot name, empty on a tie or stop
	Ticks    uint64
	Duration time.Duration
	Faults   []FaultReport
	Err      error // Engine invariant violation, if the match halted
}

// Runner drives a match with a fixed-step wall-clock ticker. Each tick runs
// to completion before the next fires; the render callback observes only
// complete post-tick frames. Stop may be called from any goroutine and takes
// effect between ticks, never mid-tick.
type Runner struct {
	match    *Match
	tickRate int
	render   func(Frame)

	done     chan struct{}
	doneOnce sync.Once
}

// NewRunner creates a runner for the given match. render may be nil for
// headless operation.
func NewRunner(match *Match, tickRate int, render func(Frame)) *Runner {
	if tickRate <= 0 {
		tickRate = 30
	}
	return &Runner{
		match:    match,
		tickRate: tickRate,
		render:   render,
		done:     make(chan struct{}),
	}
}

// Run blocks, advancing the match once per tick interval until it concludes,
// halts on an engine defect, or Stop is called.
func (r *Runner) Run() Result {
	start := time.Now()

	interval := time.Second / time.Duration(r.tickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			err := r.match.Step()
			if r.render != nil {
				r.render(r.match.Frame())
			}
			if err != nil || r.match.Concluded() {
				return r.result(start, err)
			}

		case <-r.done:
			return r.result(start, nil)
		}
	}
}

// Stop requests the runner to exit after the current tick. Safe to call more
// than once.
func (r *Runner) Stop() {
	r.doneOnce.Do(func() {
		close(r.done)
	})
}

func (r *Runner) result(start time.Time, err error) Result {
	res := Result{
		Outcome:  r.match.Outcome(),
		Ticks:    r.match.Tick(),
		Duration: time.Since(start),
		Faults:   r.match.Faults(),
		Err:      err,
	}
	switch res.Outcome {
	case OutcomeLeftWon:
		res.Winner = r.match.Ship(SideLeft).PilotName
	case OutcomeRightWon:
		res.Winner = r.match.Ship(SideRight).PilotName
	}
	return res
}
