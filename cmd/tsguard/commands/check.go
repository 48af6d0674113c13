package commands

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/tsguard/errors"
	"github.com/teranos/tsguard/generate"
	"github.com/teranos/tsguard/logger"
)

func newCheckCmd(o *options) *cobra.Command {
	var against string

	cmd := &cobra.Command{
		Use:   "check [file] --against <generated>",
		Short: "Check if generated guards are up to date",
		Long: `Check if a generated guard file matches the current type declarations.

The guards are generated in memory, exactly as "tsguard [file] -o <generated>"
would write them, and compared with the existing file.

Exit codes:
  0 - Guards are up to date
  1 - Guards are out of date, or generation failed
  2 - Invalid flags or configuration

Examples:
  tsguard check src/types.ts --against src/guards.ts`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load(cmd, sharedFlags, outputFlags)
			if err != nil {
				return err
			}
			input := cfg.GetInput()
			if len(args) == 1 {
				input = args[0]
			}

			existing, err := os.ReadFile(against)
			if err != nil {
				return errors.Wrapf(err, "failed to read %s", against)
			}

			res, err := generate.New(generate.Options{
				Param:      cfg.GetParam(),
				Strict:     cfg.Strict,
				Verbosity:  cfg.Log.Verbosity,
				ModulePath: modulePath(input, against),
			}, logger.ComponentLogger("generate")).GenerateFile(input)
			if err != nil {
				return err
			}
			fresh, err := render(cfg, res)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if bytes.Equal(existing, fresh) {
				fmt.Fprintf(out, "✓ %s is up to date\n", against)
				return nil
			}

			fmt.Fprintf(out, "✗ %s is out of date (first difference at line %d)\n",
				against, firstDifference(existing, fresh))
			return errors.WithHintf(errors.Newf("%s is out of date", against),
				"regenerate it with: tsguard %s -o %s", input, against)
		},
	}

	cmd.Flags().StringVar(&against, "against", "", "Previously generated file to compare with")
	cmd.Flags().StringVar(&o.format, "format", "text", "Format the file was generated in: text, json")
	cmd.MarkFlagRequired("against")
	return cmd
}

// firstDifference returns the 1-based line number of the first line that
// differs between a and b.
func firstDifference(a, b []byte) int {
	al, bl := bytes.Split(a, []byte("\n")), bytes.Split(b, []byte("\n"))
	for i := 0; i < len(al) && i < len(bl); i++ {
		if !bytes.Equal(al[i], bl[i]) {
			return i + 1
		}
	}
	if len(al) < len(bl) {
		return len(al) + 1
	}
	return len(bl) + 1
}
