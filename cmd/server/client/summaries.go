package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/arychagov/w40k/internal/errors"
)

var listLimit int

var getSummaryCmd = &cobra.Command{
	Use:   "get-summary [batch-id]",
	Short: "Fetch a stored summary",
	Args:  cobra.ExactArgs(1),
	RunE:  getSummary,
}

var listSummariesCmd = &cobra.Command{
	Use:   "list-summaries",
	Short: "List the most recent stored summaries",
	Args:  cobra.NoArgs,
	RunE:  listSummaries,
}

func init() {
	listSummariesCmd.Flags().IntVar(&listLimit, "limit", 0, "maximum number of summaries (server default when zero)")
}

func getSummary(cmd *cobra.Command, args []string) error {
	req, err := structpb.NewStruct(map[string]interface{}{"batch_id": args[0]})
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

	resp, err := client.GetSummary(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to get summary: %w", errors.FromGRPCError(err))
	}
	return printMessage(cmd, resp)
}

func listSummaries(cmd *cobra.Command, args []string) error {
	req := &structpb.Struct{Fields: map[string]*structpb.Value{}}
	if listLimit > 0 {
		req.Fields["limit"] = structpb.NewNumberValue(float64(listLimit))
	}

	client, cleanup, err := createSimulatorClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.ListSummaries(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to list summaries: %w", errors.FromGRPCError(err))
	}
	return printMessage(cmd, resp)
}

func printMessage(cmd *cobra.Command, msg proto.Message) error {
	out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
