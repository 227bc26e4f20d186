package main

import (
	"fmt"

	"github.com/aretw0/pathfinder/internal/cli"
	"github.com/aretw0/pathfinder/pkg/clock"
	"github.com/spf13/cobra"
)

var clockSource clock.Clock = clock.System{}

var timeCmd = &cobra.Command{
	Use:   "time",
	Short: "Print the current system time",
	RunE: func(cmd *cobra.Command, args []string) error {
		unit, _ := cmd.Flags().GetString("unit")
		s, err := cli.FormatTime(clockSource, unit)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(timeCmd)
	timeCmd.Flags().String("unit", cli.UnitISO, "Unit: s, ms, us, ns or iso")
}
