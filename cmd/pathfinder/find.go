package main

import (
	"fmt"

	"github.com/aretw0/pathfinder/internal/cli"
	"github.com/aretw0/pathfinder/pkg/domain"
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find <file>",
	Short: "Print the absolute path of a file",
	Long: `Resolves a file name, relative path or file:// URI. The working directory is
searched first unless --no-local is given, then every search path and suffix.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		noLocal, _ := cmd.Flags().GetBool("no-local")

		finder, _, err := cli.NewFinder(opts, domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		defer finder.Close()

		p, err := finder.Find(cmd.Context(), args[0], !noLocal)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), p)
		return nil
	},
}

var pathCmd = &cobra.Command{
	Use:   "path <file>",
	Short: "Print the directory containing a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		finder, _, err := cli.NewFinder(opts, domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		defer finder.Close()

		p, err := finder.FindPath(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), p)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(pathCmd)
	findCmd.Flags().Bool("no-local", false, "Skip the working directory")
}
