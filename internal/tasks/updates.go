package tasks

import (
	"fmt"

	"github.com/Prabhat9801/libman/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ParseCatalog Phase = iota
	CreateBooks
	FetchBooks
	FetchRecords
	WriteSnapshot
)

func (p Phase) String() string {
	switch p {
	case ParseCatalog:
		return "parse_catalog"
	case CreateBooks:
		return "create_books"
	case FetchBooks:
		return "fetch_books"
	case FetchRecords:
		return "fetch_records"
	case WriteSnapshot:
		return "write_snapshot"
	default:
		return ""
	}
}

func parsingCatalogUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ParseCatalog,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Parsing catalog file %s...", path),
	}
}

func parsedCatalogUpdate(rows int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ParseCatalog,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d rows", rows),
	}
}

func bookCreatedUpdate(step, total int, book models.Book) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreateBooks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%s)", step, total, book.Title, book.BookID),
		Data:    book,
	}
}

func bookFailedUpdate(step, total, row int, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreateBooks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ row %d: %v", step, total, row, err),
	}
}

func fetchBooksUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchBooks,
		Step:    step,
		Total:   total,
		Message: "Fetching book inventory...",
	}
}

func fetchRecordsUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchRecords,
		Step:    step,
		Total:   total,
		Message: "Fetching issue records...",
	}
}

func writeSnapshotUpdate(step, total int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteSnapshot,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Wrote %s", path),
	}
}
