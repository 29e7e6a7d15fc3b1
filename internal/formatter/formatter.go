// package formatter provides functions to export library catalog data to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/Prabhat9801/libman/internal/models"
	"github.com/Prabhat9801/libman/internal/shared"
)

// BooksToCSV converts the inventory to CSV with columns: Book ID, Title, Author, Category, Quantity
func BooksToCSV(books []models.Book) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Book ID", "Title", "Author", "Category", "Quantity"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, book := range books {
		record := []string{
			book.BookID,
			book.Title,
			book.Author,
			book.Category,
			strconv.Itoa(book.Quantity),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// RecordsToCSV converts issue records to CSV with columns: ID, Student, Book ID, Title, Issue Date, Return Date, Status
func RecordsToCSV(records []models.IssueRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Student", "Book ID", "Title", "Issue Date", "Return Date", "Status"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, rec := range records {
		row := []string{
			strconv.Itoa(rec.ID),
			rec.StudentName,
			rec.BookID,
			rec.BookTitle,
			rec.IssueDate.Display(),
			rec.ReturnDate.Display(),
			string(rec.Status),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// BooksToMarkdown converts the inventory to a Markdown table
func BooksToMarkdown(books []models.Book) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Book Inventory\n\n")
	buf.WriteString(fmt.Sprintf("**Books**: %d\n\n", len(books)))

	buf.WriteString("| Book ID | Title | Author | Category | Quantity |\n")
	buf.WriteString("|---------|-------|--------|----------|----------|\n")
	for _, book := range books {
		buf.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %d |\n",
			book.BookID, book.Title, book.Author, book.Category, book.Quantity))
	}

	return buf.Bytes(), nil
}

// RecordsToMarkdown converts issue records to a Markdown table
func RecordsToMarkdown(records []models.IssueRecord) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Issue Records\n\n")
	buf.WriteString(fmt.Sprintf("**Records**: %d\n\n", len(records)))

	buf.WriteString("| ID | Student | Book ID | Title | Issued | Returned | Status |\n")
	buf.WriteString("|----|---------|---------|-------|--------|----------|--------|\n")
	for _, rec := range records {
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s | %s | %s |\n",
			rec.ID, rec.StudentName, rec.BookID, rec.BookTitle,
			rec.IssueDate.Display(), rec.ReturnDate.Display(), rec.Status))
	}

	return buf.Bytes(), nil
}

// BooksToText converts the inventory to plain text
func BooksToText(books []models.Book) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Books: %d\n\n", len(books)))
	for i, book := range books {
		buf.WriteString(fmt.Sprintf("%d. [%s] %s - %s (%s, %d copies)\n",
			i+1, book.BookID, book.Title, book.Author, book.Category, book.Quantity))
	}

	return buf.Bytes(), nil
}

// RecordsToText converts issue records to plain text
func RecordsToText(records []models.IssueRecord) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Records: %d\n\n", len(records)))
	for i, rec := range records {
		buf.WriteString(fmt.Sprintf("%d. #%d %s issued %q (%s) on %s",
			i+1, rec.ID, rec.StudentName, rec.BookTitle, rec.BookID, rec.IssueDate.Display()))
		if rec.Returned() {
			buf.WriteString(fmt.Sprintf(", returned %s", rec.ReturnDate.Display()))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ToJSON generates an indented JSON representation of any catalog entity
func ToJSON(data any) ([]byte, error) {
	return shared.MarshalJSON(data, true)
}

// WriteBooksExport writes the inventory to path in the requested format.
//
// Supported formats: csv, markdown, txt, json. Returns the written path.
func WriteBooksExport(books []models.Book, format, path string) (string, error) {
	var (
		data []byte
		err  error
	)

	switch format {
	case "csv":
		data, err = BooksToCSV(books)
	case "markdown":
		data, err = BooksToMarkdown(books)
	case "txt":
		data, err = BooksToText(books)
	case "json":
		data, err = ToJSON(books)
	default:
		return "", fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

// WriteRecordsExport writes issue records to path in the requested format.
//
// Supported formats: csv, markdown, txt, json. Returns the written path.
func WriteRecordsExport(records []models.IssueRecord, format, path string) (string, error) {
	var (
		data []byte
		err  error
	)

	switch format {
	case "csv":
		data, err = RecordsToCSV(records)
	case "markdown":
		data, err = RecordsToMarkdown(records)
	case "txt":
		data, err = RecordsToText(records)
	case "json":
		data, err = ToJSON(records)
	default:
		return "", fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

// WriteSnapshotManifest writes a JSON manifest summarizing a snapshot export.
func WriteSnapshotManifest(manifest any, path string) error {
	data, err := shared.MarshalJSON(manifest, true)
	if err != nil {
		return fmt.Errorf("failed to generate manifest JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest file: %w", err)
	}

	return nil
}
