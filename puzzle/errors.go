package puzzle

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrStructureMismatch means the markup no longer matches the expected cell encoding.
	ErrStructureMismatch = errors.New("structure mismatch")

	// ErrTruncatedInput means the fragment count differs from what the grid needs.
	ErrTruncatedInput = fmt.Errorf("truncated input: %w", ErrStructureMismatch)

	// ErrSectionRestartNotFound is the warning for clue lists that never restart numbering.
	ErrSectionRestartNotFound = errors.New("section restart not found")

	// ErrUnencodable means a record holds text the line format cannot carry.
	ErrUnencodable = errors.New("record not encodable")
)

// MismatchError describes where the source structure diverged from the expected one.
type MismatchError struct {
	What     string
	Index    int // fragment index, -1 when the mismatch is about a whole sequence
	Expected string
	Observed int
	kind     error
}

func (e *MismatchError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%v: %s at index %d: expected %s, observed %d", e.kind, e.What, e.Index, e.Expected, e.Observed)
	}
	return fmt.Sprintf("%v: %s: expected %s, observed %d", e.kind, e.What, e.Expected, e.Observed)
}

// Unwrap lets errors.Is match ErrStructureMismatch and ErrTruncatedInput.
func (e *MismatchError) Unwrap() error {
	return e.kind
}

func mismatch(what string, index int, expected string, observed int) error {
	return &MismatchError{What: what, Index: index, Expected: expected, Observed: observed, kind: ErrStructureMismatch}
}

func truncated(what string, expected, observed int) error {
	return &MismatchError{What: what, Index: -1, Expected: strconv.Itoa(expected), Observed: observed, kind: ErrTruncatedInput}
}
