// Package main is the entry point for the w40k combat simulator
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arychagov/w40k/cmd/server/client"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "w40k",
	Short: "Tabletop combat damage simulator",
	Long: `w40k estimates the damage an attacking profile deals to a defending profile
by running many randomized hit, wound and save sequences.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(exprCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
