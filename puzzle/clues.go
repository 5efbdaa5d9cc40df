package puzzle

import "fmt"

// Direction is the clue section a clue belongs to.
type Direction int

const (
	Across Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "across"
}

func (d Direction) flip() Direction {
	if d == Across {
		return Down
	}
	return Across
}

// Sections is the outcome of splitting a reading-ordered clue list.
type Sections struct {
	Across []Clue
	Down   []Clue

	// Anchor is the number of the first clue; its recurrence opens the next section.
	Anchor       string
	RestartFound bool
}

// Warning returns ErrSectionRestartNotFound when the numbering never restarted.
// Partitioning still completed; every clue is then in Across.
func (s Sections) Warning() error {
	if s.RestartFound || len(s.Across)+len(s.Down) == 0 {
		return nil
	}
	return fmt.Errorf("%w: anchor %q seen once in %d clues", ErrSectionRestartNotFound, s.Anchor, len(s.Across))
}

// PartitionClues splits the page's single clue list into across and down.
// The page gives no section marker, so the only signal is the numbering
// restarting at the first clue's number. The state starts at Across and
// flips each time a later clue carries the anchor number.
func PartitionClues(clues []Clue) Sections {
	var s Sections
	if len(clues) == 0 {
		return s
	}

	s.Anchor = clues[0].Number
	state := Across
	for i, clue := range clues {
		if i > 0 && clue.Number == s.Anchor {
			state = state.flip()
			s.RestartFound = true
		}
		if state == Across {
			s.Across = append(s.Across, clue)
		} else {
			s.Down = append(s.Down, clue)
		}
	}
	return s
}
