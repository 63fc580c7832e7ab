package dedup

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLineLength bounds a single input line; data: URLs can be long.
const maxLineLength = 1 << 20

// ReadLines reads one URL per line. Blank lines and lines starting with #
// are skipped; surrounding whitespace is trimmed.
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return lines, fmt.Errorf("read urls: %w", err)
	}
	return lines, nil
}
