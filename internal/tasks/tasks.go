package tasks

import (
	"context"

	"github.com/Prabhat9801/libman/internal/models"
	"github.com/Prabhat9801/libman/internal/services"
)

// BookImportResult represents the result of importing a single catalog row.
type BookImportResult struct {
	Row     int         // 1-based data row number in the source file
	Book    models.Book // Parsed book (zero when parsing failed)
	Success bool        // Whether the book was created
	Error   error       // Validation or service error when Success is false
}

// ImportRunResult contains all data from a bulk import operation.
type ImportRunResult struct {
	TotalRows int                // Data rows found in the source file
	Imported  int                // Rows successfully created
	Rejected  int                // Rows rejected client-side before any request
	Failed    int                // Rows the service refused
	Results   []BookImportResult // Per-row outcomes, ordered by row number
}

// SnapshotResult contains all data from a catalog snapshot export.
type SnapshotResult struct {
	Books        int      `json:"books"`         // Inventory size at export time
	Records      int      `json:"records"`       // Issue records at export time
	Format       string   `json:"format"`        // Export format used
	OutputDir    string   `json:"output_dir"`    // Directory the files were written to
	Files        []string `json:"files"`         // Written data files
	ManifestPath string   `json:"manifest_path"` // Path of the JSON manifest
}

// CatalogSyncer defines bulk operations over the library catalog.
type CatalogSyncer interface {
	// ImportBooks creates books from a CSV file through a rate-limited worker pool.
	ImportBooks(ctx context.Context, progress chan<- ProgressUpdate, path string, opts ImportOpts) (*ImportRunResult, error)

	// Snapshot exports the inventory and issue records to disk.
	Snapshot(ctx context.Context, progress chan<- ProgressUpdate, opts SnapshotOpts) (*SnapshotResult, error)
}

// CatalogEngine implements CatalogSyncer over a [services.Library] client.
type CatalogEngine struct {
	library services.Library
}

// NewCatalogEngine creates a new CatalogEngine backed by the provided client.
func NewCatalogEngine(library services.Library) *CatalogEngine {
	return &CatalogEngine{library: library}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *CatalogEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
