// Package feed ingests the semi-structured ledger export of the ERP system:
// a semicolon-delimited text blob with a header row, Turkish column names and
// locale-formatted currency and date values. It normalizes the blob into
// customer, invoice and offer views keyed by the ledger's current code.
package feed

import (
	"context"
	_ "embed"
	"fmt"
	"os"
)

//go:embed sample_feed.csv
var sampleFeed string

// Source provides the raw ledger feed text. A production deployment reads an
// exported file dropped by the ERP; the embedded sample stands in for it when
// no export path is configured.
type Source interface {
	Fetch(ctx context.Context) (string, error)
}

// FileSource reads the feed from a file exported by the ERP system.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(ctx context.Context) (string, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read ledger feed from %s: %w", s.Path, err)
	}
	return string(raw), nil
}

// StaticSource serves the embedded sample feed.
type StaticSource struct{}

func (StaticSource) Fetch(ctx context.Context) (string, error) {
	return sampleFeed, nil
}

// NewSource picks a file source when a path is configured, the embedded
// sample otherwise.
func NewSource(path string) Source {
	if path != "" {
		return FileSource{Path: path}
	}
	return StaticSource{}
}
