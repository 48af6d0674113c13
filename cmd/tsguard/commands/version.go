package commands

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/teranos/tsguard/errors"
	"github.com/teranos/tsguard/syntax"
	"github.com/teranos/tsguard/version"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show tsguard version information",
		Long:  `Display version, build time, commit hash, parser grammar, and platform information for the tsguard binary.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOutput, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()

			info := version.Get(syntax.Grammar)

			if jsonOutput {
				output, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return errors.Wrap(err, "failed to format version as JSON")
				}
				fmt.Fprintln(out, string(output))
				return nil
			}

			fmt.Fprintln(out, info.String())
			if info.Parser != "" {
				fmt.Fprintf(out, "Parser: %s\n", info.Parser)
			}
			fmt.Fprintf(out, "Grammar: %s\n", info.Grammar)
			fmt.Fprintf(out, "Platform: %s\n", info.Platform)
			fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
			return nil
		},
	}

	cmd.Flags().BoolP("json", "j", false, "Output version info as JSON")
	return cmd
}
