package grammar

import "fmt"

// ScanError reports a delimited token ('...', <...> or [...]) whose closing
// delimiter was never found. Pos is the position of the opening delimiter.
type ScanError struct {
	Pos   Position
	Delim byte
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s: unterminated %q", e.Pos, string(e.Delim))
}

// ParseError reports a syntax defect in the grammar text.
type ParseError struct {
	Pos Position
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// ErrorList aggregates every error accumulated during a compile attempt.
// The first entry is authoritative; later entries are reported alongside it.
type ErrorList []error

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
}

// Err returns the list as an error, or nil when it is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
