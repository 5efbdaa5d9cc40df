package scraper

import (
	"context"
	"fmt"
	"os"
)

// Fetcher returns the rendered markup of the puzzle page with the solution revealed.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// FileFetcher serves a page saved to disk earlier.
type FileFetcher struct {
	Path string
}

func (f FileFetcher) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("reading saved page: %w", err)
	}
	return string(data), nil
}
