// Package main is the entry point for the mercearia point-of-sale CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "mercearia",
		Short:        "Mercearia: keyboard-driven point of sale",
		Version:      version,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "", "path to mercearia.toml (default: search upward from the working directory)")

	root.AddCommand(
		runCmd(),
		initCmd(),
		salesCmd(),
		reportCmd(),
		catalogCmd(),
	)

	return root
}

// signalContext returns a context that is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigs:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigs)
	}()
	return ctx, cancel
}
