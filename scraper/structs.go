package scraper

import "miniscraper/puzzle"

// Page holds the raw fragments pulled out of one rendered puzzle page.
type Page struct {
	Cells []puzzle.CellFragment // one token list per board square, raster order
	Clues []puzzle.Clue         // across and down clues as one reading-ordered list
}
