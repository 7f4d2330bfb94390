package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-duel/internal/config"
	"github.com/vovakirdan/tui-duel/internal/core"
	"github.com/vovakirdan/tui-duel/internal/platform/tui"
	"github.com/vovakirdan/tui-duel/internal/registry"
	"github.com/vovakirdan/tui-duel/internal/script"
	"github.com/vovakirdan/tui-duel/internal/sim"
	"github.com/vovakirdan/tui-duel/internal/storage"
)

var (
	flagConfig      string
	flagHeadless    bool
	flagLeftScript  string
	flagRightScript string
)

var fightCmd = &cobra.Command{
	Use:   "fight <left> <right>",
	Short: "Run a duel between two pilots",
	Long: `Run a duel between two pilots in the arena.

Each pilot is a built-in behavior ID (see 'duel list'). A side can instead
run a user-authored JavaScript file defining think(self, environment) via
--left-script or --right-script; the positional name for that side is then
used only as its display name.

Controls:
  P/Esc      - Pause
  R          - Rematch (after the outcome)
  Q/Ctrl+C   - Quit

Examples:
  duel fight gunner dodger
  duel fight sniper idle --headless
  duel fight custom gunner --left-script my_pilot.js
  duel fight gunner dodger --config ./my-match.yaml`,
	Args: cobra.ExactArgs(2),
	Run:  runFight,
}

func init() {
	fightCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom match config YAML")
	fightCmd.Flags().BoolVar(&flagHeadless, "headless", false, "Run without UI and print the result")
	fightCmd.Flags().StringVar(&flagLeftScript, "left-script", "", "JavaScript file piloting the left ship")
	fightCmd.Flags().StringVar(&flagRightScript, "right-script", "", "JavaScript file piloting the right ship")
}

func runFight(cmd *cobra.Command, args []string) {
	matchCfg, err := config.LoadMatch(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	budget := time.Duration(matchCfg.Script.ThinkBudgetMS) * time.Millisecond

	left, err := resolvePilot(args[0], flagLeftScript, budget)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	right, err := resolvePilot(args[1], flagRightScript, budget)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	newMatch := func() (*sim.Match, error) {
		return sim.NewMatch(matchCfg, left(), right())
	}

	if flagHeadless {
		runHeadless(newMatch)
		return
	}

	// Get terminal size for the arena view
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, storeErr := storage.Open(flagDBPath)
	if storeErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: match history disabled: %v\n", storeErr)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(newMatch, store, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolvePilot builds a factory of fresh PilotSpecs for one side.
// Fresh specs per match keep rematches from inheriting script VM state.
func resolvePilot(name, scriptPath string, budget time.Duration) (func() sim.PilotSpec, error) {
	if scriptPath != "" {
		init, err := script.InitializerFromFile(scriptPath, budget)
		if err != nil {
			return nil, err
		}
		return func() sim.PilotSpec {
			return sim.PilotSpec{Name: name, Init: init}
		}, nil
	}

	if !registry.Exists(name) {
		return nil, fmt.Errorf("unknown pilot %q; run 'duel list' to see available pilots", name)
	}
	return func() sim.PilotSpec {
		init, _ := registry.Create(name)
		return sim.PilotSpec{Name: name, Init: init}
	}, nil
}

// runHeadless drives the match on a wall-clock ticker without a UI and
// prints the outcome.
func runHeadless(newMatch func() (*sim.Match, error)) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "duel",
	})

	match, err := newMatch()
	if err != nil {
		logger.Fatal("cannot start match", "error", err)
	}
	match.SetFaultHandler(func(f sim.FaultReport) {
		logger.Warn("pilot fault",
			"side", f.Side.String(),
			"pilot", f.Pilot,
			"tick", f.Tick,
			"error", f.Err,
		)
	})

	runner := sim.NewRunner(match, flagFPS, nil)
	result := runner.Run()

	if result.Err != nil {
		logger.Fatal("engine halted", "error", result.Err)
	}

	logger.Info("match finished",
		"outcome", result.Outcome.String(),
		"winner", result.Winner,
		"ticks", result.Ticks,
		"duration", result.Duration.Round(time.Millisecond),
	)

	if store, storeErr := storage.Open(flagDBPath); storeErr == nil {
		defer store.Close()
		rec := storage.MatchRecord{
			LeftPilot:  match.Ship(sim.SideLeft).PilotName,
			RightPilot: match.Ship(sim.SideRight).PilotName,
			Outcome:    headlessOutcomeLabel(result.Outcome),
			Winner:     result.Winner,
			Ticks:      result.Ticks,
			Duration:   int(result.Duration.Seconds()),
		}
		if _, recErr := store.RecordMatch(rec); recErr != nil {
			logger.Warn("could not record match", "error", recErr)
		}
	}
}

// headlessOutcomeLabel maps an outcome to its storage label.
func headlessOutcomeLabel(o sim.Outcome) string {
	switch o {
	case sim.OutcomeTie:
		return "tie"
	case sim.OutcomeLeftWon:
		return "left"
	case sim.OutcomeRightWon:
		return "right"
	default:
		return "stopped"
	}
}
