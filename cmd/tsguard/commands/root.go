// Package commands implements the tsguard command line.
package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/tsguard/am"
	"github.com/teranos/tsguard/errors"
	"github.com/teranos/tsguard/generate"
	"github.com/teranos/tsguard/guardian"
	"github.com/teranos/tsguard/logger"
	"github.com/teranos/tsguard/syntax"
)

// Exit codes
const (
	ExitOK      = 0
	ExitFailure = 1 // Generation failed, or a checked file is out of date
	ExitUsage   = 2 // Invalid flags or configuration
)

// usageError marks errors caused by how tsguard was invoked.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// options holds the flags shared by every command.
type options struct {
	configPath string
	output     string
	param      string
	format     string
	strict     bool
	watch      bool
	jsonLogs   bool
	verbose    int
}

// sharedFlags maps config keys to the persistent flags that override them.
var sharedFlags = map[string]string{
	"param":         "param",
	"strict":        "strict",
	"log.json":      "json-logs",
	"log.verbosity": "verbose",
}

// outputFlags maps config keys to the flags of commands that produce guards.
var outputFlags = map[string]string{
	"output": "output",
	"format": "format",
}

// Execute runs the command line with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	logger.Cleanup()
	if err == nil {
		return ExitOK
	}

	printError(stderr, err)
	var usage *usageError
	if errors.As(err, &usage) {
		return ExitUsage
	}
	return ExitFailure
}

// NewRootCmd builds the tsguard command tree.
func NewRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:   "tsguard [file]",
		Short: "Generate runtime type guards from TypeScript type declarations",
		Long: `tsguard - Generate runtime type guards from TypeScript type declarations.

tsguard reads a TypeScript module, collects its exported type aliases and
interfaces, and writes one guard function per type:

  function isUser(it: any): it is User {
  	return !!it && typeof it === "object" && typeof it.id === "number";
  }

Supported: number, string, boolean and object keywords, boolean and string
literals, unions, arrays, object shapes, index signatures, and references to
other exported types. Declarations using anything else are skipped with a
warning; --strict makes that an error.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (TSGUARD_* prefix)
3. Project config (tsguard.toml, searched up from the working directory)
4. Default values

Examples:
  tsguard                               # Generate guards for test/test.ts
  tsguard src/types.ts -o src/guards.ts # Write guards next to the types
  tsguard src/types.ts --format json    # Machine-readable report
  tsguard src/types.ts -o guards.ts -w  # Regenerate on every save`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runGenerate(cmd, args)
		},
	}

	pflags := root.PersistentFlags()
	pflags.StringVar(&o.configPath, "config", "", "Config file (default: tsguard.toml in this or a parent directory)")
	pflags.StringVar(&o.param, "param", am.DefaultParam, "Guard parameter name")
	pflags.BoolVar(&o.strict, "strict", false, "Fail when a type declaration cannot be guarded")
	pflags.BoolVar(&o.jsonLogs, "json-logs", false, "Write logs as JSON")
	pflags.CountVarP(&o.verbose, "verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")

	flags := root.Flags()
	flags.StringVarP(&o.output, "output", "o", "", "Output file (default: stdout)")
	flags.StringVar(&o.format, "format", am.DefaultFormat, "Output format: text, json")
	flags.BoolVarP(&o.watch, "watch", "w", false, "Regenerate whenever the input changes")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	root.AddCommand(newCheckCmd(o))
	root.AddCommand(newConfigCmd(o))
	root.AddCommand(newVersionCmd())
	return root
}

// load resolves the configuration for cmd and initializes logging. Flags
// named in bindings override the config keys they are mapped to.
func (o *options) load(cmd *cobra.Command, bindings ...map[string]string) (*am.Config, error) {
	v, err := am.NewViper(o.configPath)
	if err != nil {
		return nil, &usageError{err: err}
	}

	flags := cmd.Flags()
	for _, binding := range bindings {
		for key, name := range binding {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errors.Wrapf(err, "failed to bind --%s", name)
			}
		}
	}

	cfg, err := am.LoadWithViper(v)
	if err != nil {
		return nil, &usageError{err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &usageError{err: errors.Wrap(err, "invalid configuration")}
	}

	if err := logger.InitializeWithWriter(cfg.Log.JSON, cfg.Log.Verbosity, cmd.ErrOrStderr()); err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}

	if logger.ShouldOutput(cfg.Log.Verbosity, logger.OutputConfig) {
		logger.Debugw("effective config", "config", cfg.String())
	}

	if used := v.ConfigFileUsed(); used != "" {
		logger.Debugw("loaded config", logger.FieldFile, used)
		keys, err := am.UnknownKeys(used)
		if err != nil {
			return nil, &usageError{err: err}
		}
		for _, key := range keys {
			logger.Warnw("unknown config key", "key", key, logger.FieldFile, used)
		}
	}
	return cfg, nil
}

func (o *options) runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := o.load(cmd, sharedFlags, outputFlags)
	if err != nil {
		return err
	}
	input := cfg.GetInput()
	if len(args) == 1 {
		input = args[0]
	}

	g := generate.New(generate.Options{
		Param:      cfg.GetParam(),
		Strict:     cfg.Strict,
		Verbosity:  cfg.Log.Verbosity,
		ModulePath: modulePath(input, cfg.Output),
	}, logger.ComponentLogger("generate"))

	run := func() error {
		res, err := g.GenerateFile(input)
		if err != nil {
			return err
		}
		return writeResult(cmd.OutOrStdout(), cfg, res)
	}

	if !o.watch {
		return run()
	}

	w, err := generate.NewWatcher(input, time.Duration(cfg.Watch.DebounceMS)*time.Millisecond,
		logger.ComponentLogger("watch"))
	if err != nil {
		return err
	}
	if err := run(); err != nil {
		printError(cmd.ErrOrStderr(), err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infow("watching for changes", logger.FieldFile, input)
	return w.Run(ctx, func() error {
		if err := run(); err != nil {
			printError(cmd.ErrOrStderr(), err)
		}
		return nil
	})
}

// render produces the output document in the configured format.
func render(cfg *am.Config, res *generate.Result) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	if cfg.Format == am.FormatJSON {
		err = guardian.EmitJSON(&buf, res.Document, res.Diagnostics)
	} else {
		err = guardian.Emit(&buf, res.Document)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeResult(stdout io.Writer, cfg *am.Config, res *generate.Result) error {
	data, err := render(cfg, res)
	if err != nil {
		return err
	}

	if cfg.Output == "" {
		_, err := stdout.Write(data)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Output), am.DefaultDirPermissions); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}
	if err := os.WriteFile(cfg.Output, data, am.DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write %s", cfg.Output)
	}
	logger.Infow("wrote guards",
		logger.FieldOutput, cfg.Output,
		logger.FieldCount, len(res.Document.Guardians))
	return nil
}

// modulePath is the path the generated module re-exports from. Output
// written to a file imports the input relative to that file; output on
// stdout names the input as given.
func modulePath(input, output string) string {
	if output == "" {
		return input
	}
	absIn, err := filepath.Abs(input)
	if err != nil {
		return input
	}
	absOut, err := filepath.Abs(output)
	if err != nil {
		return input
	}
	rel, err := filepath.Rel(filepath.Dir(absOut), absIn)
	if err != nil {
		return input
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, "../") {
		rel = "./" + rel
	}
	return rel
}

func printError(w io.Writer, err error) {
	color := useColor(w)

	var perrs *syntax.ParseErrors
	if errors.As(err, &perrs) {
		fmt.Fprintln(w, perrs.Format(color))
		return
	}

	label, hintLabel := "Error:", "hint:"
	if color {
		label, hintLabel = pterm.Red("Error:"), pterm.LightCyan("hint:")
	}
	fmt.Fprintf(w, "%s %v\n", label, err)
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "  %s %s\n", hintLabel, hint)
	}
}

// useColor reports whether w is a terminal that should get styled output.
func useColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
