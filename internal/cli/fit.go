package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// FitEntry is the verdict for one trace.
type FitEntry struct {
	Trace []string `json:"trace"`
	Fits  bool     `json:"fits"`
}

// FitResult holds the fitting verdicts of a log.
type FitResult struct {
	Model   string     `json:"model"`
	Traces  []FitEntry `json:"traces"`
	Fitting int        `json:"fitting"`
	Total   int        `json:"total"`
	Fitness float64    `json:"fitness"`
}

func (r FitResult) String() string {
	width := 0
	for _, e := range r.Traces {
		width = max(width, len([]rune(display(e.Trace))))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "model: %s\n", r.Model)
	for _, e := range r.Traces {
		verdict := "unfit"
		if e.Fits {
			verdict = "fit"
		}
		fmt.Fprintf(&b, "%s  %s\n", pad(display(e.Trace), width), verdict)
	}
	fmt.Fprintf(&b, "fitness: %.2f (%d/%d)", r.Fitness, r.Fitting, r.Total)

	return b.String()
}

// NewFitCommand creates the fit command.
func NewFitCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		expr string
		file string
	)

	cmd := &cobra.Command{
		Use:   "fit --regex <expr> [trace...]",
		Short: "Report which traces the model accepts",
		Long: `Check every trace against the model and report the log fitness, the
fraction of traces the model accepts.

Traces are given as arguments and/or read one per line from --file ("-" for
stdin). Within a trace, commas and blanks separate activities and every other
character is one activity: "a,b,c" and "abc" are the same trace.

Exits with status 1 when at least one trace does not fit.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFit(rootOpts, expr, file, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&expr, "regex", "r", "", "model expression")
	cmd.Flags().StringVarP(&file, "file", "f", "", `trace file, one trace per line ("-" for stdin)`)
	_ = cmd.MarkFlagRequired("regex")

	return cmd
}

func runFit(opts *RootOptions, expr, file string, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	a, err := compileModel(formatter, expr)
	if err != nil {
		return err
	}

	log, err := collectTraces(args, file, cmd.InOrStdin())
	if err != nil {
		return fail(formatter, ErrCodeInput, err)
	}

	fits, err := opts.checker().FitAll(cmd.Context(), a, log)
	if err != nil {
		return fail(formatter, errorCode(err), err)
	}

	res := FitResult{Model: a.Label(), Traces: make([]FitEntry, len(log)), Total: len(log)}
	for i, ok := range fits {
		res.Traces[i] = FitEntry{Trace: log[i], Fits: ok}
		if ok {
			res.Fitting++
		}
	}
	res.Fitness = float64(res.Fitting) / float64(res.Total)

	if err := formatter.Success(res); err != nil {
		return err
	}
	if res.Fitting < res.Total {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d traces do not fit", res.Total-res.Fitting, res.Total))
	}

	return nil
}

// pad left-aligns s in a column of the given rune width.
func pad(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
