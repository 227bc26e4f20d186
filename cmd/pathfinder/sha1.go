package main

import (
	"fmt"

	"github.com/aretw0/pathfinder/internal/cli"
	"github.com/aretw0/pathfinder/pkg/digest"
	"github.com/aretw0/pathfinder/pkg/domain"
	"github.com/spf13/cobra"
)

var sha1Cmd = &cobra.Command{
	Use:   "sha1 [file|-]",
	Short: "Print the SHA1 digest of a file, a string or standard input",
	Long: `Prints "<digest>  <name>" like sha1sum. File names are resolved through the
search paths and their digests are cached. With no argument, or "-", standard
input is hashed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if cmd.Flags().Changed("string") {
			s, _ := cmd.Flags().GetString("string")
			fmt.Fprintln(out, digest.SHA1(s))
			return nil
		}

		if len(args) == 0 || args[0] == "-" {
			return cli.HashReader(out, cmd.InOrStdin(), "-")
		}

		finder, _, err := cli.NewFinder(opts, domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		defer finder.Close()

		fp, err := finder.Fingerprint(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s  %s\n", fp.Digest, fp.Path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sha1Cmd)
	sha1Cmd.Flags().String("string", "", "Hash this string instead of a file")
}
