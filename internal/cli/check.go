package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// CheckResult describes a compiled expression.
type CheckResult struct {
	Expression  string   `json:"expression"`
	Places      int      `json:"places"`
	Transitions int      `json:"transitions"`
	Alphabet    []string `json:"alphabet"`
	Accepting   int      `json:"accepting"`
}

func (r CheckResult) String() string {
	return fmt.Sprintf("✓ %s\nplaces: %d\ntransitions: %d\naccepting places: %d\nalphabet: %s",
		r.Expression, r.Places, r.Transitions, r.Accepting, strings.Join(r.Alphabet, " "))
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	var expr string

	cmd := &cobra.Command{
		Use:   "check --regex <expr>",
		Short: "Compile an expression and describe the automaton",
		Long: `Compile a regular expression over single-character activities and
report the size of the resulting automaton.

Operators are "." (concatenation), "|" (choice), "*" (repetition) and
parentheses. Concatenation is always explicit: write "a.b", not "ab".`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, expr, cmd)
		},
	}

	cmd.Flags().StringVarP(&expr, "regex", "r", "", "model expression")
	_ = cmd.MarkFlagRequired("regex")

	return cmd
}

func runCheck(opts *RootOptions, expr string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	a, err := compileModel(formatter, expr)
	if err != nil {
		return err
	}

	return formatter.Success(CheckResult{
		Expression:  a.Label(),
		Places:      a.PlaceCount(),
		Transitions: a.TransitionCount(),
		Alphabet:    a.Alphabet(),
		Accepting:   len(a.Ends()),
	})
}
