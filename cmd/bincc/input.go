package main

import (
	"bufio"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readInputs returns args, or one entry per non-blank line of in when no args
// are given and in is not an interactive terminal.
func readInputs(args []string, in io.Reader) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, nil
	}
	return readLines(in)
}

func readLines(in io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// mask keeps the BIN and the last four digits of number.
func mask(number string) string {
	const bin, tail = 6, 4
	if len(number) <= bin+tail {
		return number
	}
	return number[:bin] + strings.Repeat("*", len(number)-bin-tail) + number[len(number)-tail:]
}
