// Package client provides commands that call a running simulator over gRPC
package client

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	simulatorv1 "github.com/arychagov/w40k/internal/handlers/simulator/v1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Call a running simulator server",
	Long:  `Client commands send requests to the simulator gRPC service.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 60*time.Second, "Request timeout")

	ClientCmd.AddCommand(simulateCmd)
	ClientCmd.AddCommand(getSummaryCmd)
	ClientCmd.AddCommand(listSummariesCmd)
}

// createSimulatorClient creates a simulator service client
func createSimulatorClient() (simulatorv1.SimulatorServiceClient, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return simulatorv1.NewSimulatorServiceClient(conn), cleanup, nil
}
