package views

import "github.com/Prabhat9801/libman/internal/models"

// IssuedRow is the display-ready projection of an issued record.
type IssuedRow struct {
	RecordID int
	Student  string
	BookID   string
	Title    string
	Author   string
	IssuedOn string
	Status   string
}

// NewIssuedRow maps an issue record to its rendered row.
// Pure: no I/O, independently testable from rendering.
func NewIssuedRow(rec models.IssueRecord) IssuedRow {
	return IssuedRow{
		RecordID: rec.ID,
		Student:  rec.StudentName,
		BookID:   rec.BookID,
		Title:    rec.BookTitle,
		Author:   rec.BookAuthor,
		IssuedOn: rec.IssueDate.Display(),
		Status:   string(rec.Status),
	}
}

// HistoryRow is the display-ready projection of a returned record.
type HistoryRow struct {
	RecordID   int
	Student    string
	Title      string
	IssuedOn   string
	ReturnedOn string // "N/A" when the date is absent
	Status     string
}

// NewHistoryRow maps a returned record to its rendered row.
func NewHistoryRow(rec models.IssueRecord) HistoryRow {
	return HistoryRow{
		RecordID:   rec.ID,
		Student:    rec.StudentName,
		Title:      rec.BookTitle,
		IssuedOn:   rec.IssueDate.Display(),
		ReturnedOn: rec.ReturnDate.Display(),
		Status:     string(rec.Status),
	}
}
