// Package bank is the append-only puzzle store: one tab-separated line per puzzle.
package bank

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"miniscraper/puzzle"
)

// DefaultPath is the store file used when none is configured.
const DefaultPath = "puzzlebank.txt"

// ErrStoreWrite wraps every failure to open or write the store file.
var ErrStoreWrite = errors.New("store write failure")

// ErrEmpty is returned by ReadLast when the store holds no puzzles.
var ErrEmpty = errors.New("puzzle bank is empty")

// maxLineSize bounds a single bank line; a mini puzzle line is well under 4 KiB.
const maxLineSize = 1 << 20

// Append encodes rec and writes it as one newline-terminated line at the end
// of the file at path, creating the file if needed. Nothing already in the
// file is read. A record that cannot be encoded is never written.
func Append(path string, rec *puzzle.Record) error {
	line, err := rec.MarshalText()
	if err != nil {
		return fmt.Errorf("encoding puzzle for %s: %w", rec.Date.Format(puzzle.DateLayout), err)
	}
	line = append(line, '\n')

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", ErrStoreWrite, path, err)
	}

	// One write call per line keeps each record contiguous within this process.
	if _, err := f.Write(line); err != nil {
		f.Close()
		return fmt.Errorf("%w: writing %s: %v", ErrStoreWrite, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %v", ErrStoreWrite, path, err)
	}
	return nil
}

// ReadAll decodes every puzzle in the store, oldest first. Blank lines are skipped.
func ReadAll(path string, rows, cols int) ([]*puzzle.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []*puzzle.Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := puzzle.ParseRecord(line, rows, cols)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, lineNo, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return records, nil
}

// ReadLast decodes the most recently appended puzzle.
func ReadLast(path string, rows, cols int) (*puzzle.Record, error) {
	records, err := ReadAll(path, rows, cols)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	return records[len(records)-1], nil
}

// Contains reports whether a puzzle for date's calendar day is already stored.
// Only the date field of each line is read, so a damaged line elsewhere in the
// store does not hide the answer. A missing store holds nothing.
func Contains(path string, date time.Time) (bool, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer f.Close()

	day := date.Format(puzzle.DateLayout)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		first, _, _ := strings.Cut(scanner.Text(), "\t")
		if first == day {
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	return false, nil
}
