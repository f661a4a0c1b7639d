package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/DaanHessen/budgethero/internal/catalog"
	"github.com/DaanHessen/budgethero/internal/engine"
	"github.com/DaanHessen/budgethero/internal/game"
)

const (
	strategyFirst  = "first"
	strategyRandom = "random"
	strategyCycle  = "cycle"
)

type simOptions struct {
	seed     string
	rounds   int
	premium  bool
	strategy string
}

func newSimulateCmd(a *app) *cobra.Command {
	var opts simOptions
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play a seeded game headlessly and print a summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.seed == "" {
				opts.seed = a.cfg.Seed
			}
			if opts.seed == "" {
				opts.seed = "budgethero"
			}
			_, err := simulate(cmd.OutOrStdout(), opts)
			return err
		},
	}
	cmd.Flags().IntVar(&opts.rounds, "rounds", 10, "number of scenarios to play")
	cmd.Flags().BoolVar(&opts.premium, "premium-plan", false, "simulate a premium player")
	cmd.Flags().StringVar(&opts.strategy, "strategy", strategyRandom, "choice strategy: first|random|cycle")
	cmd.Flags().StringVar(&opts.seed, "sim-seed", "", "seed for this simulation (defaults to --seed)")
	return cmd
}

// simulate drives the controller directly; nothing is persisted.
func simulate(w io.Writer, opts simOptions) (game.PlayerState, error) {
	if opts.rounds <= 0 {
		return game.PlayerState{}, fmt.Errorf("rounds must be positive")
	}
	switch opts.strategy {
	case strategyFirst, strategyRandom, strategyCycle:
	default:
		return game.PlayerState{}, fmt.Errorf("unknown strategy %q", opts.strategy)
	}
	cat, err := catalog.Load()
	if err != nil {
		return game.PlayerState{}, err
	}
	seed, err := engine.NewSessionSeed(opts.seed)
	if err != nil {
		return game.PlayerState{}, err
	}
	seed = seed.ForPlayer("simulation", rulesVersion)
	picks := seed.Stream("choices")
	ctrl := game.NewController(cat, engine.NewRules(seed.Stream("outcomes")), seed.Stream("scenarios"))

	p := game.NewPlayerState("simulation")
	p.Premium = opts.premium
	rows := make([][]string, 0, opts.rounds)
	for round := 1; round <= opts.rounds; round++ {
		sc, err := ctrl.CurrentScenario(p)
		if err != nil {
			return p, err
		}
		var idx int
		switch opts.strategy {
		case strategyRandom:
			idx = picks.Child("round:" + strconv.Itoa(round)).Intn(len(sc.Choices))
		case strategyCycle:
			idx = (round - 1) % len(sc.Choices)
		}
		choice := sc.Choices[idx]
		var o engine.Outcome
		o, p = ctrl.SubmitChoice(choice, p)
		rows = append(rows, []string{
			strconv.Itoa(round),
			sc.Title,
			catalog.Label(idx) + " " + choice.ID,
			engine.Signed(o.MoneyChange),
			string(o.Badge),
			engine.KSh(p.MoneySaved),
		})
		if p, _, err = ctrl.NextScenario(p); err != nil {
			return p, err
		}
	}

	fmt.Fprintln(w, renderTable([]string{"#", "Scenario", "Choice", "Change", "Badge", "Balance"}, rows))
	fmt.Fprintf(w, "Seed %s · %s · final %s · %s · %d badges\n",
		opts.seed, opts.strategy, engine.KSh(p.MoneySaved), p.Level(), len(p.Badges))
	return p, nil
}
