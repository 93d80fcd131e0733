package main

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/spf13/cobra"

	"github.com/arychagov/w40k/internal/entities/value"
	"github.com/arychagov/w40k/internal/stats"
)

var (
	exprIncrease bool
	exprDecrease bool
	exprBelowOne bool
	exprSamples  int
)

var exprCmd = &cobra.Command{
	Use:   "expr [text]",
	Short: "Parse, step and sample a value expression",
	Long: `Parse a value such as "2d6 + 1", optionally step it up or down, and roll it
to show its spread. Examples:

  expr "d6 + 1" --samples 10000
  expr 3 --decrease --below-one`,
	Args: cobra.ExactArgs(1),
	RunE: runExpr,
}

func init() {
	exprCmd.Flags().BoolVar(&exprIncrease, "increase", false, "step the text up by one")
	exprCmd.Flags().BoolVar(&exprDecrease, "decrease", false, "step the text down by one")
	exprCmd.Flags().BoolVar(&exprBelowOne, "below-one", false, "allow decreasing to zero")
	exprCmd.Flags().IntVar(&exprSamples, "samples", 0, "number of rolls to sample")
	exprCmd.MarkFlagsMutuallyExclusive("increase", "decrease")
}

func runExpr(cmd *cobra.Command, args []string) error {
	text := args[0]
	switch {
	case exprIncrease:
		text = value.Increase(text)
	case exprDecrease:
		text = value.Decrease(text, exprBelowOne)
	}

	v, err := value.Parse(text)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "text:  %s\n", text)
	fmt.Fprintf(out, "value: %s\n", v.String())

	if exprSamples <= 0 {
		return nil
	}

	rolls := make([]int, exprSamples)
	for i := range rolls {
		rolls[i] = v.Eval(dice.DefaultRoller)
	}
	p := stats.ComputePercentiles(rolls)
	fmt.Fprintf(out, "mean=%.2f, p50 = %d, p95 = %d over %d samples\n", stats.Mean(rolls), p.P50, p.P95, exprSamples)
	return nil
}
