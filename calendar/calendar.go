// Package calendar publishes the puzzle bank as an iCalendar feed, one
// all-day event per puzzle, and reads such a feed back.
package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"miniscraper/puzzle"
)

const (
	productID  = "-//miniscraper//Mini Crossword Bank//EN"
	uidPrefix  = "miniscraper-"
	dateFormat = "20060102"
)

// Entry is one puzzle day as found in a feed.
type Entry struct {
	UID     string
	Date    time.Time
	Summary string
}

// Export writes records as an ICS calendar to w. stamp is used as DTSTAMP.
func Export(w io.Writer, records []*puzzle.Record, stamp time.Time) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)

	for _, rec := range records {
		event := cal.AddEvent(uidPrefix + rec.Date.Format(dateFormat))
		event.SetDtStampTime(stamp)
		event.SetAllDayStartAt(rec.Date)
		event.SetAllDayEndAt(rec.Date.AddDate(0, 0, 1))
		event.SetSummary(summary(rec))
		event.SetDescription(description(rec))
	}

	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

func summary(rec *puzzle.Record) string {
	return "Mini Crossword " + rec.Date.Format(puzzle.DateLayout)
}

// description lists the clues and the solution rows, blocks shown as '#'.
func description(rec *puzzle.Record) string {
	var b strings.Builder
	for _, section := range []struct {
		title string
		clues []puzzle.Clue
	}{{"Across", rec.Across}, {"Down", rec.Down}} {
		b.WriteString(section.title + "\n")
		for _, c := range section.clues {
			fmt.Fprintf(&b, "%s %s\n", c.Number, c.Text)
		}
		b.WriteString("\n")
	}

	b.WriteString("Solution\n")
	for _, row := range rec.Grid.Entries {
		for _, c := range row {
			switch {
			case !c.Available:
				b.WriteString("#")
			case c.Letter == "":
				b.WriteString(".")
			default:
				b.WriteString(c.Letter)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Read parses a feed written by Export.
func Read(r io.Reader) ([]Entry, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing ICS data: %w", err)
	}

	var entries []Entry
	for _, event := range cal.Events() {
		if event == nil {
			continue
		}
		startProperty := event.GetProperty(ics.ComponentPropertyDtStart)
		if startProperty == nil {
			continue
		}
		date, err := time.Parse(dateFormat, startProperty.Value)
		if err != nil {
			return nil, fmt.Errorf("parsing start of %s: %w", event.Id(), err)
		}

		entry := Entry{UID: event.Id(), Date: date}
		if p := event.GetProperty(ics.ComponentPropertySummary); p != nil {
			entry.Summary = p.Value
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
