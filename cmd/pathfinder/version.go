package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/pathfinder"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pathfinder",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pathfinder version %s\n", strings.TrimSpace(pathfinder.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
