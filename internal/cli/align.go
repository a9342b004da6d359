package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/nfalign/alignment"
)

// AlignEntry is the optimal alignment of one trace.
type AlignEntry struct {
	Trace []string         `json:"trace"`
	Moves []alignment.Move `json:"moves"`
	Cost  int              `json:"cost"`
}

// AlignResult holds the optimal alignments of a log.
type AlignResult struct {
	Model      string       `json:"model"`
	Alignments []AlignEntry `json:"alignments"`
	TotalCost  int          `json:"total_cost"`
}

func (r AlignResult) String() string {
	width := 0
	for _, e := range r.Alignments {
		width = max(width, len([]rune(display(e.Trace))))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "model: %s\n", r.Model)
	for _, e := range r.Alignments {
		fmt.Fprintf(&b, "%s  cost %d", pad(display(e.Trace), width), e.Cost)
		if len(e.Moves) > 0 {
			moves := make([]string, len(e.Moves))
			for i, m := range e.Moves {
				moves[i] = m.String()
			}
			b.WriteString("  " + strings.Join(moves, " "))
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "total cost: %d", r.TotalCost)

	return b.String()
}

// NewAlignCommand creates the align command.
func NewAlignCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		expr string
		file string
	)

	cmd := &cobra.Command{
		Use:   "align --regex <expr> [trace...]",
		Short: "Compute optimal alignments of traces against the model",
		Long: `Compute a cheapest alignment of every trace against the model.

An alignment is a sequence of moves written (log,model): synchronous moves
such as (a,a) cost 0, log moves (a,>>) and model moves (>>,a) cost 1. The
cost of an alignment is 0 exactly when the trace fits.

Traces are read as for the fit command. --max-cost and --max-expansions
bound every search.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlign(rootOpts, expr, file, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&expr, "regex", "r", "", "model expression")
	cmd.Flags().StringVarP(&file, "file", "f", "", `trace file, one trace per line ("-" for stdin)`)
	_ = cmd.MarkFlagRequired("regex")

	return cmd
}

func runAlign(opts *RootOptions, expr, file string, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	a, err := compileModel(formatter, expr)
	if err != nil {
		return err
	}

	log, err := collectTraces(args, file, cmd.InOrStdin())
	if err != nil {
		return fail(formatter, ErrCodeInput, err)
	}

	als, err := opts.checker().AlignLog(cmd.Context(), a, log)
	if err != nil {
		return fail(formatter, errorCode(err), err)
	}

	res := AlignResult{Model: a.Label(), Alignments: make([]AlignEntry, len(als))}
	for i, al := range als {
		res.Alignments[i] = AlignEntry{Trace: log[i], Moves: al.Moves, Cost: al.Cost}
		res.TotalCost += al.Cost
	}

	return formatter.Success(res)
}
