package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/arychagov/w40k/internal/config"
	"github.com/arychagov/w40k/internal/orchestrators/simulation"
	"github.com/arychagov/w40k/internal/pkg/clock"
	"github.com/arychagov/w40k/internal/pkg/idgen"
	"github.com/arychagov/w40k/internal/scenario"
)

var (
	scenarioPath   string
	simulateTrials int
	simulateSeed   uint64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run one batch for a scenario file",
	Long: `Run one batch of trials for the attacker and defender in a YAML scenario
and print the summary. Examples:

  simulate --scenario lascannons.yaml
  simulate --scenario lascannons.yaml --trials 50000 --seed 7`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&scenarioPath, "scenario", "", "scenario YAML file")
	simulateCmd.Flags().IntVar(&simulateTrials, "trials", 0, "trials (overrides the scenario)")
	simulateCmd.Flags().Uint64Var(&simulateSeed, "seed", 0, "random seed (overrides the scenario)")
	_ = simulateCmd.MarkFlagRequired("scenario")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	sc, err := scenario.Load(scenarioPath)
	if err != nil {
		return err
	}
	attacker, defender, err := sc.Build()
	if err != nil {
		return err
	}

	service, err := simulation.NewOrchestrator(&simulation.Config{
		IDGenerator: idgen.NewUUID("batch"),
		Clock:       clock.New(),
		Trials:      cfg.Simulation.Trials,
	})
	if err != nil {
		return err
	}

	input := &simulation.SimulateInput{
		Attacker: attacker,
		Defender: defender,
		Trials:   sc.Trials,
		Seed:     sc.Seed,
	}
	if cmd.Flags().Changed("trials") {
		input.Trials = simulateTrials
	}
	if cmd.Flags().Changed("seed") {
		input.Seed = &simulateSeed
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	output, err := service.Simulate(ctx, input)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if sc.Name != "" {
		fmt.Fprintf(out, "%s\n", sc.Name)
	}
	fmt.Fprintf(out, "%s\n", output.Summary.String())
	fmt.Fprintf(out, "p95 = %d, trials = %d, seed = %d\n", output.Summary.P95, output.Summary.Trials, output.Seed)
	return nil
}
