package main

import (
	"fmt"
	"os"

	"github.com/aretw0/pathfinder/internal/cli"
	"github.com/aretw0/pathfinder/internal/presentation/tui"
	"github.com/aretw0/pathfinder/pkg/domain"
	"github.com/aretw0/pathfinder/pkg/paths"
	"github.com/spf13/cobra"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show the configured search paths",
	Long: `Lists the search paths in lookup order. On a terminal, or with --pretty,
the list is rendered as a markdown report including suffixes and the log and
temp locations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pretty, _ := cmd.Flags().GetBool("pretty")
		if !cmd.Flags().Changed("pretty") {
			pretty = cli.IsTerminal(os.Stdout)
		}

		finder, _, err := cli.NewFinder(opts, domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		defer finder.Close()

		report := tui.PathsReport{
			FilePathEnv: finder.Paths().FilePathEnv(),
			FilePaths:   finder.FilePaths(),
			Suffixes:    finder.SearchPathSuffixes(),
			LogPath:     paths.LogPath(),
			TmpPath:     paths.TmpPath(),
		}

		out := cmd.OutOrStdout()
		if !pretty {
			fmt.Fprint(out, report.Plain())
			return nil
		}
		rendered, err := tui.NewRenderer()(report.Markdown())
		if err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pathsCmd)
	pathsCmd.Flags().Bool("pretty", false, "Render a markdown report (default when stdout is a terminal)")
}
