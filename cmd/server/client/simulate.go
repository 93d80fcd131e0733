package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/arychagov/w40k/internal/errors"
	"github.com/arychagov/w40k/internal/scenario"
)

var (
	scenarioPath string
	trials       int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate a scenario on the server",
	Long: `Send the attacker and defender of a scenario file to the server and print
the response. Examples:

  client simulate --scenario lascannons.yaml
  client simulate --scenario lascannons.yaml --trials 100000`,
	Args: cobra.NoArgs,
	RunE: simulate,
}

func init() {
	simulateCmd.Flags().StringVar(&scenarioPath, "scenario", "", "scenario YAML file")
	simulateCmd.Flags().IntVar(&trials, "trials", 0, "trials (overrides the scenario)")
	_ = simulateCmd.MarkFlagRequired("scenario")
}

func simulate(cmd *cobra.Command, args []string) error {
	sc, err := scenario.Load(scenarioPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("trials") {
		sc.Trials = trials
	}

	req, err := requestFromScenario(sc)
	if err != nil {
		return err
	}

	client, cleanup, err := createSimulatorClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.Simulate(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to simulate: %w", errors.FromGRPCError(err))
	}

	return printMessage(cmd, resp)
}

// requestFromScenario converts scenario fields to the request struct by way
// of their JSON form
func requestFromScenario(sc *scenario.Scenario) (*structpb.Struct, error) {
	body := map[string]interface{}{}

	for name, fields := range map[string]interface{}{
		"attacker": sc.Attacker,
		"defender": sc.Defender,
	} {
		data, err := json.Marshal(fields)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", name, err)
		}
		var m map[string]interface{}
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", name, err)
		}
		body[name] = m
	}
	if sc.Trials > 0 {
		body["trials"] = sc.Trials
	}
	if sc.Seed != nil {
		body["seed"] = strconv.FormatUint(*sc.Seed, 10)
	}

	return structpb.NewStruct(body)
}
