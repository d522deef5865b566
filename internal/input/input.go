// Package input reads replay steps from files, flags and stdin and parses
// them into normalized controller input.
package input

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ReadLinesFromReader returns the trimmed, non-empty lines of r. Lines
// starting with '#' are comments and are skipped.
func ReadLinesFromReader(r io.Reader) []string {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// ExpandFlagValues expands flag values in place: "@path" is replaced by the
// lines of the file at path and "-" by the lines of stdin. Stdin is read at
// most once; stdinUsed carries that state across calls. Unreadable files
// are skipped with a warning.
func ExpandFlagValues(values []string, stdinUsed bool) ([]string, bool) {
	var result []string
	for _, v := range values {
		switch {
		case v == "-":
			if stdinUsed {
				slog.Warn("input: stdin already consumed, skipping")
				continue
			}
			stdinUsed = true
			result = append(result, ReadLinesFromReader(os.Stdin)...)

		case strings.HasPrefix(v, "@"):
			path := strings.TrimPrefix(v, "@")
			f, err := os.Open(path)
			if err != nil {
				slog.Warn("input: skipping unreadable file", "path", path, "err", err)
				continue
			}
			result = append(result, ReadLinesFromReader(f)...)
			f.Close()

		default:
			result = append(result, v)
		}
	}
	return result, stdinUsed
}
