package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ParseTrace turns one line of input into a trace. Commas and blanks are
// separators and every remaining rune is one activity, so "a,b,c", "a b c"
// and "abc" all read as [a b c]. The line is put in NFC form first.
func ParseTrace(line string) []string {
	line = norm.NFC.String(line)
	trace := make([]string, 0, len(line))
	for _, r := range line {
		if r == ',' || unicode.IsSpace(r) {
			continue
		}
		trace = append(trace, string(r))
	}

	return trace
}

// ReadTraces reads one trace per line. Blank lines and lines starting with
// '#' are skipped.
func ReadTraces(r io.Reader) ([][]string, error) {
	var log [][]string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		log = append(log, ParseTrace(line))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read traces: %w", err)
	}

	return log, nil
}

// collectTraces gathers traces from positional arguments and, when file is
// set, from that file ("-" is stdin). Argument traces come first.
func collectTraces(args []string, file string, stdin io.Reader) ([][]string, error) {
	log := make([][]string, 0, len(args))
	for _, arg := range args {
		log = append(log, ParseTrace(arg))
	}
	if file == "" {
		return log, nil
	}

	var r io.Reader = stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open trace file: %w", err)
		}
		defer f.Close()
		r = f
	}

	more, err := ReadTraces(r)
	if err != nil {
		return nil, err
	}

	return append(log, more...), nil
}

// display renders a trace for text output.
func display(trace []string) string {
	if len(trace) == 0 {
		return "<empty>"
	}
	return strings.Join(trace, "")
}
