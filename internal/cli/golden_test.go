package cli

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

// execute runs the root command with args and returns stdout, stderr and
// the command error.
func execute(t *testing.T, args ...string) (*bytes.Buffer, *bytes.Buffer, error) {
	t.Helper()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	return stdout, stderr, cmd.Execute()
}

func TestGoldenOutput(t *testing.T) {
	const (
		chain  = "a.(b*).((c.d)*)"
		choice = "a*|(c.d)|(e.f)"
	)

	tests := []struct {
		name     string
		args     []string
		exitCode int
	}{
		{"check_text", []string{"check", "--regex", chain}, ExitSuccess},
		{"check_json", []string{"--format", "json", "check", "--regex", chain}, ExitSuccess},
		{"check_malformed_text", []string{"check", "--regex", "ab"}, ExitCommandError},
		{"check_malformed_json", []string{"--format", "json", "check", "-r", "ab"}, ExitCommandError},
		{"fit_text", []string{"fit", "--regex", chain, "a", "ab", "x", "y"}, ExitFailure},
		{"fit_json", []string{"--format", "json", "fit", "--regex", chain, "a", "a,b", "x", "y"}, ExitFailure},
		{"align_text", []string{"align", "--regex", choice, "cdcd", "cf", "aa"}, ExitSuccess},
		{"align_json", []string{"align", "--format", "json", "--regex", choice, "c d c d", "cf", "aa"}, ExitSuccess},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.args...)
			assert.Equal(t, tt.exitCode, GetExitCode(err), "err: %v", err)
			g.Assert(t, tt.name, stdout.Bytes())
		})
	}
}
