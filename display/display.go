// Package display renders a puzzle record for the terminal: the grid with
// labels and revealed letters, both clue columns, and a date/time footer.
package display

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"miniscraper/puzzle"
)

const (
	cellWidth  = 5
	clueWidth  = 34
	dateLayout = "Monday, January 02, 2006"
	timeLayout = "15:04:05"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	headStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	boardStyle = lipgloss.NewStyle().Border(lipgloss.ThickBorder())
	whiteStyle = lipgloss.NewStyle().Width(cellWidth)
	blackStyle = lipgloss.NewStyle().Width(cellWidth).Foreground(lipgloss.Color("0"))
	labelStyle = lipgloss.NewStyle().Faint(true)
	// Revealed letters are blue.
	letterStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2760d8"))
	clueStyle   = lipgloss.NewStyle().Width(clueWidth).PaddingLeft(2)
	footerStyle = lipgloss.NewStyle().Faint(true)
)

// Render lays out rec with the clock reading now in the footer.
func Render(rec *puzzle.Record, now time.Time) string {
	board := boardStyle.Render(renderGrid(rec.Grid))
	footer := footerStyle.Render(rec.Date.Format(dateLayout) + "  " + now.Format(timeLayout))
	left := lipgloss.JoinVertical(lipgloss.Right, board, footer)

	across := clueStyle.Render(renderClues("Across", rec.Across))
	down := clueStyle.Render(renderClues("Down", rec.Down))

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, across, down)
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("The Mini Crossword"), body)
}

func renderGrid(g *puzzle.Grid) string {
	rows := make([]string, 0, g.Rows)
	for _, row := range g.Entries {
		cells := make([]string, 0, len(row))
		for _, c := range row {
			cells = append(cells, renderCell(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCell(c puzzle.Cell) string {
	if !c.Available {
		block := strings.Repeat("█", cellWidth)
		return blackStyle.Render(block + "\n" + block)
	}

	label := ""
	if c.HasLabel() {
		label = labelStyle.Render(strconv.Itoa(c.Label))
	}
	letter := "  " + letterStyle.Render(c.Letter)
	return whiteStyle.Render(label + "\n" + letter)
}

func renderClues(title string, clues []puzzle.Clue) string {
	var b strings.Builder
	b.WriteString(headStyle.Render(title))
	b.WriteString("\n")
	for _, c := range clues {
		fmt.Fprintf(&b, "\n%s %s\n", c.Number, c.Text)
	}
	return b.String()
}
