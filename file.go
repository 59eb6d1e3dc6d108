package resrap

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadStatements reads a grammar file and assembles its statements: every
// line is trimmed, blank lines and lines starting with "//" are dropped, and
// consecutive lines are joined until one ends with ';'. The result is the
// statements re-joined with newlines, ready for the compiler. A trailing
// fragment without its ';' is kept so the compiler can report it.
func ReadStatements(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open grammar file: %w", err)
	}
	defer f.Close()

	var statements []string
	var current strings.Builder

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(line)

		if strings.HasSuffix(line, ";") {
			statements = append(statements, current.String())
			current.Reset()
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read grammar file: %w", err)
	}

	if current.Len() > 0 {
		statements = append(statements, current.String())
	}

	return strings.Join(statements, "\n"), nil
}
