package puzzle

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the YY-MM-DD date stamp that opens every bank line.
const DateLayout = "06-01-02"

const (
	fieldSep = "\t"
	partSep  = ","

	noLabel  = "0"
	noLetter = "-"
)

// NewRecord pairs a classified grid with its partitioned clues.
func NewRecord(date time.Time, sections Sections, grid *Grid) *Record {
	return &Record{Date: date, Across: sections.Across, Down: sections.Down, Grid: grid}
}

// MarshalText encodes the record as one tab-separated bank line without the
// trailing newline: date, across clues, down clues, then one field per cell.
// Clue text may contain commas; tabs and line breaks are rejected.
func (r *Record) MarshalText() ([]byte, error) {
	if r.Grid == nil {
		return nil, fmt.Errorf("%w: record has no grid", ErrUnencodable)
	}

	// The line does not mark where Down starts, so the split must be the one
	// ParseRecord will rebuild.
	all := append(append([]Clue(nil), r.Across...), r.Down...)
	if again := PartitionClues(all); !slices.Equal(again.Across, r.Across) || !slices.Equal(again.Down, r.Down) {
		return nil, fmt.Errorf("%w: across/down split does not follow the numbering restart of %q", ErrUnencodable, again.Anchor)
	}

	fields := make([]string, 0, 1+len(r.Across)+len(r.Down)+r.Grid.Size())
	fields = append(fields, r.Date.Format(DateLayout))

	for _, list := range [][]Clue{r.Across, r.Down} {
		for _, clue := range list {
			field, err := encodeClue(clue)
			if err != nil {
				return nil, err
			}
			fields = append(fields, field)
		}
	}

	for i := 0; i < r.Grid.Size(); i++ {
		field, err := encodeCell(r.Grid.At(i))
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		fields = append(fields, field)
	}

	return []byte(strings.Join(fields, fieldSep)), nil
}

func encodeClue(c Clue) (string, error) {
	if strings.ContainsAny(c.Number, "\t\r\n,") {
		return "", fmt.Errorf("%w: clue number %q", ErrUnencodable, c.Number)
	}
	if strings.ContainsAny(c.Text, "\t\r\n") {
		return "", fmt.Errorf("%w: clue %s text %q contains a tab or line break", ErrUnencodable, c.Number, c.Text)
	}
	return c.Number + partSep + c.Text, nil
}

func encodeCell(c Cell) (string, error) {
	if strings.ContainsAny(c.Letter, "\t\r\n,") || c.Letter == noLetter {
		return "", fmt.Errorf("%w: letter %q", ErrUnencodable, c.Letter)
	}
	if !c.Available && (c.HasLabel() || c.Letter != "") {
		return "", fmt.Errorf("%w: blocking square with label %d letter %q", ErrUnencodable, c.Label, c.Letter)
	}

	available, label, letter := "0", noLabel, noLetter
	if c.Available {
		available = "1"
	}
	if c.HasLabel() {
		label = strconv.Itoa(c.Label)
	}
	if c.Letter != "" {
		letter = c.Letter
	}
	return available + partSep + label + partSep + letter, nil
}

// ParseRecord decodes one bank line. The line does not store clue counts, so
// the last rows*cols fields are taken as cells and the fields between the date
// and the cells are split into across and down with PartitionClues.
func ParseRecord(line string, rows, cols int) (*Record, error) {
	line = strings.TrimRight(line, "\r\n")
	fields := strings.Split(line, fieldSep)

	size := rows * cols
	if size <= 0 {
		return nil, fmt.Errorf("%w: grid dimensions %dx%d", ErrStructureMismatch, rows, cols)
	}
	if len(fields) < 1+size {
		return nil, truncated("record fields", 1+size, len(fields))
	}

	date, err := time.Parse(DateLayout, fields[0])
	if err != nil {
		return nil, fmt.Errorf("parsing record date %q: %w", fields[0], err)
	}

	clueFields := fields[1 : len(fields)-size]
	clues := make([]Clue, 0, len(clueFields))
	for _, field := range clueFields {
		number, text, ok := strings.Cut(field, partSep)
		if !ok {
			return nil, fmt.Errorf("%w: clue field %q has no number", ErrStructureMismatch, field)
		}
		clues = append(clues, Clue{Number: number, Text: text})
	}

	grid := NewGrid(rows, cols)
	for i, field := range fields[len(fields)-size:] {
		cell, err := decodeCell(field)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		grid.Entries[i/cols][i%cols] = cell
	}

	return NewRecord(date, PartitionClues(clues), grid), nil
}

func decodeCell(field string) (Cell, error) {
	parts := strings.Split(field, partSep)
	if len(parts) != 3 {
		return Cell{}, mismatch("cell field parts", -1, "3", len(parts))
	}

	var c Cell
	switch parts[0] {
	case "0":
	case "1":
		c.Available = true
	default:
		return Cell{}, fmt.Errorf("%w: availability %q", ErrStructureMismatch, parts[0])
	}

	label, err := strconv.Atoi(parts[1])
	if err != nil || label < 0 {
		return Cell{}, fmt.Errorf("%w: label %q", ErrStructureMismatch, parts[1])
	}
	c.Label = label

	if parts[2] != noLetter {
		c.Letter = parts[2]
	}

	if !c.Available && (c.HasLabel() || c.Letter != "") {
		return Cell{}, fmt.Errorf("%w: blocking square %q carries a label or letter", ErrStructureMismatch, field)
	}
	return c, nil
}
