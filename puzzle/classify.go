package puzzle

import (
	"fmt"
	"strconv"
	"strings"
)

// Token counts of the three cell shapes the board uses.
const (
	blockTokens     = 0
	plainCellTokens = 2
	labelCellTokens = 4
)

// Classify builds a rows x cols grid from per-square token lists in raster order.
// Fragment i lands on row i/cols, column i%cols. Any shape other than 0, 2 or 4
// tokens is a structure mismatch; a fragment count other than rows*cols is
// truncated input.
func Classify(fragments []CellFragment, rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: grid dimensions %dx%d", ErrStructureMismatch, rows, cols)
	}

	if want := rows * cols; len(fragments) != want {
		return nil, truncated("cell fragments", want, len(fragments))
	}

	grid := NewGrid(rows, cols)
	for i, tokens := range fragments {
		cell, err := classifyCell(i, tokens)
		if err != nil {
			return nil, err
		}
		grid.Entries[i/cols][i%cols] = cell
	}
	return grid, nil
}

// classifyCell maps one square's tokens to a cell by position only.
func classifyCell(i int, tokens CellFragment) (Cell, error) {
	switch len(tokens) {
	case blockTokens:
		return Cell{}, nil
	case plainCellTokens:
		// The first token of an unlabeled square is never a label.
		return Cell{Available: true, Letter: strings.TrimSpace(tokens[1])}, nil
	case labelCellTokens:
		raw := strings.TrimSpace(tokens[0])
		label, err := strconv.Atoi(raw)
		if err != nil || label <= 0 {
			return Cell{}, fmt.Errorf("%w: cell %d label %q is not a positive number", ErrStructureMismatch, i, raw)
		}
		return Cell{Available: true, Label: label, Letter: strings.TrimSpace(tokens[3])}, nil
	default:
		return Cell{}, mismatch("cell token count", i, "0, 2 or 4", len(tokens))
	}
}
