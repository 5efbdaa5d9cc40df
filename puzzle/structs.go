package puzzle

import "time"

// Cell is one square of the grid.
// A blocking square has Available=false and carries neither label nor letter.
type Cell struct {
	Available bool
	Label     int    // clue-start number in the corner, 0 when absent
	Letter    string // revealed solution letter, "" when absent
}

// HasLabel reports whether the square starts a clue.
func (c Cell) HasLabel() bool {
	return c.Label > 0
}

// Grid is a rows x cols block of cells, row-major with a top-left origin.
type Grid struct {
	Rows    int
	Cols    int
	Entries [][]Cell
}

// NewGrid returns a grid of blocking squares.
func NewGrid(rows, cols int) *Grid {
	entries := make([][]Cell, rows)
	for r := range entries {
		entries[r] = make([]Cell, cols)
	}
	return &Grid{Rows: rows, Cols: cols, Entries: entries}
}

// At returns the cell at raster index i.
func (g *Grid) At(i int) Cell {
	return g.Entries[i/g.Cols][i%g.Cols]
}

// Size returns the number of cells in the grid.
func (g *Grid) Size() int {
	return g.Rows * g.Cols
}

// Clue is a numbered clue. Number is kept exactly as the page printed it.
type Clue struct {
	Number string
	Text   string
}

// Record is one day's puzzle as it is written to the bank.
type Record struct {
	Date   time.Time
	Across []Clue
	Down   []Clue
	Grid   *Grid
}

// CellFragment is the ordered list of text tokens found in one square's markup.
type CellFragment []string
