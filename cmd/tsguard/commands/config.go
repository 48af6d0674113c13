package commands

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/tsguard/am"
	"github.com/teranos/tsguard/errors"
)

func newConfigCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tsguard configuration",
		Long: `Display and initialize tsguard configuration.

Examples:
  tsguard config show                 # Show the effective configuration
  tsguard config show --format json   # Show configuration in JSON format
  tsguard config init                 # Write tsguard.toml with every default`,
	}
	cmd.AddCommand(newConfigShowCmd(o))
	cmd.AddCommand(newConfigInitCmd())
	return cmd
}

func newConfigShowCmd(o *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long:  "Display the configuration after merging defaults, tsguard.toml, environment variables and flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load(cmd, sharedFlags)
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case "json":
				data, err = json.MarshalIndent(cfg, "", "  ")
				if err == nil {
					data = append(data, '\n')
				}
			case "yaml":
				data, err = yaml.Marshal(cfg)
				if err == nil {
					data = append([]byte("# tsguard configuration\n"), data...)
				}
			case "toml":
				data, err = am.Marshal(cfg)
			default:
				return &usageError{err: errors.Newf("unsupported format: %s (supported: toml, json, yaml)", format)}
			}
			if err != nil {
				return errors.Wrapf(err, "failed to marshal config to %s", format)
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "toml", "Output format: toml, json, yaml")
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a config file holding every default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := am.ConfigFileName
			if len(args) == 1 {
				path = args[0]
			}
			if err := am.WriteDefault(path, force); err != nil {
				return err
			}
			cfg, err := am.LoadFromFile(path)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return errors.Wrapf(err, "%s does not hold a valid configuration", path)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file (the old one is kept as .back1)")
	return cmd
}
