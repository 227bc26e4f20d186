package main

import (
	"fmt"
	"os"

	"github.com/aretw0/pathfinder/internal/cli"
	"github.com/spf13/cobra"
)

var opts cli.Options

var rootCmd = &cobra.Command{
	Use:   "pathfinder",
	Short: "Pathfinder resolves files across search paths",
	Long: `Pathfinder looks files up across configurable search paths and suffixes,
computes SHA1 digests and exposes both over HTTP and the Model Context Protocol.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", os.Getenv("PATHFINDER_CONFIG"), "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().StringSliceVar(&opts.Paths, "path", nil, "Additional search path (repeatable)")
	rootCmd.PersistentFlags().StringSliceVar(&opts.Suffixes, "suffix", nil, "Search path suffix (repeatable)")
	rootCmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.SilenceErrors = true
}
