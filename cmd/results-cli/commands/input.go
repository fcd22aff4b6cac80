package commands

import (
	"bufio"
	"errors"
	"io"
	"os"
	"resultfetcher/internal/results"
	"strconv"
	"strings"
)

var errNoRollNumbers = errors.New("no roll numbers given, pass them as arguments, with --file or on stdin")

// parseRollNumbers splits input on any whitespace, blanks are dropped.
func parseRollNumbers(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	var out []string
	for scanner.Scan() {
		out = append(out, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// collectRollNumbers prefers arguments, then the file, then stdin.
func collectRollNumbers(args []string, file string, stdin io.Reader) ([]string, error) {
	var rollNumbers []string

	switch {
	case len(args) > 0:
		parsed, err := parseRollNumbers(strings.NewReader(strings.Join(args, "\n")))
		if err != nil {
			return nil, err
		}
		rollNumbers = parsed
	case file != "":
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		parsed, err := parseRollNumbers(f)
		if err != nil {
			return nil, err
		}
		rollNumbers = parsed
	default:
		parsed, err := parseRollNumbers(stdin)
		if err != nil {
			return nil, err
		}
		rollNumbers = parsed
	}

	if len(rollNumbers) == 0 {
		return nil, errNoRollNumbers
	}
	return rollNumbers, nil
}

// filterMinMarks keeps records whose marks are an integer of at least `min`.
// Marks that aren't numbers never pass.
func filterMinMarks(records []results.Record, min int) []results.Record {
	out := make([]results.Record, 0, len(records))
	for _, r := range records {
		marks, err := strconv.Atoi(strings.TrimSpace(r.SubjectMarks))
		if err != nil {
			continue
		}
		if marks >= min {
			out = append(out, r)
		}
	}
	return out
}
