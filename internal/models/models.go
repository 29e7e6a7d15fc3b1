package models

import (
	"bytes"
	"fmt"
	"time"
)

// Status is the lifecycle state of an [IssueRecord].
type Status string

const (
	StatusIssued   Status = "issued"
	StatusReturned Status = "returned"
)

// dateLayout is the ISO calendar date format used on the wire.
const dateLayout = "2006-01-02"

// displayLayout is the localized short format used for rendering.
const displayLayout = "Jan 2, 2006"

// Date is a calendar date exchanged as an ISO date string (YYYY-MM-DD).
// The zero value represents an absent date and renders as "N/A".
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ParseDate parses an ISO date string (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

// MarshalJSON encodes the date as "YYYY-MM-DD", or null when absent.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON decodes "YYYY-MM-DD" strings; null and empty decode to the zero Date.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		*d = Date{}
		return nil
	}

	t, err := time.Parse(`"`+dateLayout+`"`, string(data))
	if err != nil {
		return fmt.Errorf("invalid date %s: %w", data, err)
	}

	*d = Date{t}
	return nil
}

// Display renders the date in localized short form ("Jan 5, 2024"), or "N/A" when absent.
func (d Date) Display() string {
	if d.IsZero() {
		return "N/A"
	}
	return d.Format(displayLayout)
}

// Book represents an inventory item owned by the Remote Library Service.
type Book struct {
	ID       int    `json:"id,omitempty"` // server-assigned row id
	BookID   string `json:"book_id"`      // externally assigned, unique
	Title    string `json:"title"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

// Available reports whether at least one copy remains.
func (b Book) Available() bool {
	return b.Quantity > 0
}

// IssueRecord represents a loan transaction.
//
// BookTitle and BookAuthor are denormalized snapshots supplied by the service
// from the Book at issue time.
type IssueRecord struct {
	ID          int    `json:"id"`
	StudentName string `json:"student_name"`
	BookID      string `json:"book_id"`
	BookTitle   string `json:"book_title,omitempty"`
	BookAuthor  string `json:"book_author,omitempty"`
	IssueDate   Date   `json:"issue_date"`
	ReturnDate  Date   `json:"return_date,omitempty"`
	Status      Status `json:"status"`
}

// Returned reports whether the record has completed its lifecycle.
func (r IssueRecord) Returned() bool {
	return r.Status == StatusReturned
}
