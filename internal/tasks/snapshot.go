package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Prabhat9801/libman/internal/formatter"
	"github.com/Prabhat9801/libman/internal/shared"
)

// SnapshotOpts contains configuration for catalog snapshot exports.
type SnapshotOpts struct {
	Format    string // Export format: json, csv, markdown, txt (default: json)
	OutputDir string // Base output directory (default: library_snapshot_{epoch})
}

// fileExtensions maps export formats to their file extensions.
var fileExtensions = map[string]string{
	"json":     "json",
	"csv":      "csv",
	"markdown": "md",
	"txt":      "txt",
}

// Snapshot exports the full catalog state to disk: the book inventory and
// every issue record, each in the requested format, plus a JSON manifest
// summarizing the export.
func (e *CatalogEngine) Snapshot(ctx context.Context, prog chan<- ProgressUpdate, opts SnapshotOpts) (*SnapshotResult, error) {
	if e.library == nil {
		return nil, fmt.Errorf("%w: library client not initialized", shared.ErrServiceUnavailable)
	}

	if opts.Format == "" {
		opts.Format = "json"
	}
	ext, ok := fileExtensions[opts.Format]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidArgument, opts.Format)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("library_snapshot_%d", time.Now().Unix())
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	e.sendProgress(prog, fetchBooksUpdate(1, 2))
	books, err := e.library.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inventory: %w", err)
	}

	e.sendProgress(prog, fetchRecordsUpdate(2, 2))
	records, err := e.library.ListAllRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch issue records: %w", err)
	}

	result := &SnapshotResult{
		Books:     len(books),
		Records:   len(records),
		Format:    opts.Format,
		OutputDir: opts.OutputDir,
		Files:     []string{},
	}

	booksPath := filepath.Join(opts.OutputDir, "books."+ext)
	written, err := formatter.WriteBooksExport(books, opts.Format, booksPath)
	if err != nil {
		return nil, err
	}
	result.Files = append(result.Files, written)
	e.sendProgress(prog, writeSnapshotUpdate(1, 2, written))

	recordsPath := filepath.Join(opts.OutputDir, "records."+ext)
	written, err = formatter.WriteRecordsExport(records, opts.Format, recordsPath)
	if err != nil {
		return nil, err
	}
	result.Files = append(result.Files, written)
	e.sendProgress(prog, writeSnapshotUpdate(2, 2, written))

	manifestPath := filepath.Join(opts.OutputDir, "snapshot_manifest.json")
	if err := formatter.WriteSnapshotManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("snapshot completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath

	return result, nil
}
