package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/nfalign/alignment"
	"github.com/katalvlaran/nfalign/conformance"
	"github.com/katalvlaran/nfalign/internal/logging"
	"github.com/katalvlaran/nfalign/nfa"
	"github.com/katalvlaran/nfalign/regex"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format        string // "json" | "text"
	ConfigPath    string
	LogLevel      string
	Workers       int // 0 means one per CPU
	MaxExpansions int // 0 means unbounded
	MaxCost       int // negative means unbounded

	// Set by the root command before any subcommand runs.
	RunID  string
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the nfalign CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nfalign",
		Short: "nfalign - conformance checking against regular models",
		Long: `Compile a regular expression into an automaton and check event traces
against it: whether each trace fits, the log fitness, and optimal alignments
made of synchronous, model and log moves.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (yaml or json)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().IntVar(&opts.Workers, "workers", 0, "concurrent traces (0 = one per CPU)")
	cmd.PersistentFlags().IntVar(&opts.MaxExpansions, "max-expansions", 0, "alignment search state limit (0 = none)")
	cmd.PersistentFlags().IntVar(&opts.MaxCost, "max-cost", -1, "alignment cost bound (-1 = none)")

	// Add subcommands
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewFitCommand(opts))
	cmd.AddCommand(NewAlignCommand(opts))

	return cmd
}

// resolve merges the config file under the flags, validates the result and
// builds the run logger. Flags set on the command line win over the file.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := LoadConfig(o.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, ErrCodeInput, err)
	}

	flags := cmd.Flags()
	if cfg.Format != nil && !flags.Changed("format") {
		o.Format = *cfg.Format
	}
	if cfg.LogLevel != nil && !flags.Changed("log-level") {
		o.LogLevel = *cfg.LogLevel
	}
	if cfg.Workers != nil && !flags.Changed("workers") {
		o.Workers = *cfg.Workers
	}
	if cfg.MaxExpansions != nil && !flags.Changed("max-expansions") {
		o.MaxExpansions = *cfg.MaxExpansions
	}
	if cfg.MaxCost != nil && !flags.Changed("max-cost") {
		o.MaxCost = *cfg.MaxCost
	}

	// Validate format flag
	if !isValidFormat(o.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", o.Format, ValidFormats)
	}
	if o.Workers < 0 {
		return fmt.Errorf("invalid workers %d: must be >= 0", o.Workers)
	}
	if o.MaxExpansions < 0 {
		return fmt.Errorf("invalid max-expansions %d: must be >= 0", o.MaxExpansions)
	}

	level, err := logging.ParseLevel(o.LogLevel)
	if err != nil {
		return err
	}

	o.RunID = uuid.Must(uuid.NewV7()).String()
	o.Logger = logging.NewWriter(cmd.ErrOrStderr(), level).With("run_id", o.RunID)
	o.Logger.Debug("options resolved",
		"command", cmd.Name(),
		"format", o.Format,
		"workers", o.Workers,
		"max_expansions", o.MaxExpansions,
		"max_cost", o.MaxCost,
	)

	return nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout()}
}

func (o *RootOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return logging.NewNop()
	}
	return o.Logger
}

// checker builds a conformance.Checker from the resolved options.
func (o *RootOptions) checker() *conformance.Checker {
	copts := []conformance.Option{
		conformance.WithWorkers(o.Workers),
		conformance.WithLogger(o.logger()),
	}

	var aopts []alignment.Option
	if o.MaxCost >= 0 {
		aopts = append(aopts, alignment.WithMaxCost(o.MaxCost))
	}
	if o.MaxExpansions > 0 {
		aopts = append(aopts, alignment.WithMaxExpansions(o.MaxExpansions))
	}
	if len(aopts) > 0 {
		copts = append(copts, conformance.WithAlignmentOptions(aopts...))
	}

	return conformance.New(copts...)
}

// compileModel compiles expr, reporting a rejected expression through f.
func compileModel(f *OutputFormatter, expr string) (*nfa.Automaton, error) {
	a, err := regex.Compile(regex.Tokenize(expr))
	if err != nil {
		return nil, fail(f, ErrCodeRegex, err)
	}
	return a, nil
}

// fail reports err through f and returns it as a command error.
func fail(f *OutputFormatter, code string, err error) error {
	if outErr := f.Error(code, err.Error()); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitCommandError, code, err)
}

// errorCode maps library errors onto CLI error codes.
func errorCode(err error) string {
	switch {
	case errors.Is(err, regex.ErrMalformedRegex):
		return ErrCodeRegex
	case errors.Is(err, nfa.ErrMalformedTrace):
		return ErrCodeTrace
	case errors.Is(err, alignment.ErrUnreachableAccept):
		return ErrCodeModel
	case errors.Is(err, alignment.ErrCostBoundExceeded), errors.Is(err, alignment.ErrExpansionLimit):
		return ErrCodeLimit
	case errors.Is(err, conformance.ErrEmptyLog):
		return ErrCodeInput
	default:
		return ErrCodeGeneric
	}
}
