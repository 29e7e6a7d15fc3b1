package views

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Prabhat9801/libman/internal/models"
	"github.com/Prabhat9801/libman/internal/services"
	"github.com/Prabhat9801/libman/internal/shared"
)

// connectFailed is the generic message for transport-level failures.
const connectFailed = "Failed to connect to the server. Please ensure the backend is running."

// ErrDeclined reports that the user declined a return confirmation.
// A declined return is a no-op: no request is sent and no view is refreshed.
var ErrDeclined = errors.New("return cancelled")

// ValidationError is a client-detected input error. It aborts a mutation before
// any network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Unwrap() error { return shared.ErrInvalidInput }

// ConfirmFunc asks the user to confirm a destructive action.
// A nil ConfirmFunc confirms unconditionally.
type ConfirmFunc func(prompt string) bool

// Coordinator performs add/issue/return mutations against the library service
// and triggers the view refreshes that keep the issued and history tables
// consistent with backend state.
//
// Each mutation is a single request/response cycle: idle → submitting → idle.
// Nothing is retried; a failed mutation requires a fresh user submission.
type Coordinator struct {
	library services.Library
	issued  *IssuedView
	history *HistoryView
	confirm ConfirmFunc
	logger  *log.Logger
}

// NewCoordinator wires a coordinator to its service client, the two views it
// refreshes, and a confirmation callback for returns.
func NewCoordinator(library services.Library, issued *IssuedView, history *HistoryView, confirm ConfirmFunc, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}

	return &Coordinator{
		library: library,
		issued:  issued,
		history: history,
		confirm: confirm,
		logger:  logger,
	}
}

// Issue creates an issue record for studentName and bookID.
//
// Empty studentName or bookID is rejected client-side with a [*ValidationError]
// before any network call. Book existence and stock availability are enforced
// server-side only. A zero issueDate defaults to today.
//
// On success the issued view is refreshed (refresh failures are isolated and
// only logged). On failure the error is returned untouched so the caller can
// leave form state intact for correction and resubmission.
func (c *Coordinator) Issue(ctx context.Context, studentName, bookID string, issueDate models.Date) (*models.IssueRecord, error) {
	studentName = strings.TrimSpace(studentName)
	bookID = strings.TrimSpace(bookID)

	if studentName == "" {
		return nil, &ValidationError{Field: "student_name", Reason: "Student name cannot be empty"}
	}
	if bookID == "" {
		return nil, &ValidationError{Field: "book_id", Reason: "Book ID cannot be empty"}
	}
	if issueDate.IsZero() {
		issueDate = models.Today()
	}

	mutationID := shared.GenerateID()
	logger := shared.WithLogger(c.logger, "mutation_id", mutationID, "op", "issue")
	logger.Info("issuing book", "student", studentName, "book_id", bookID)

	record, err := c.library.IssueBook(ctx, services.IssueRequest{
		StudentName: studentName,
		BookID:      bookID,
		IssueDate:   issueDate,
	})
	if err != nil {
		logger.Warn("issue failed", "error", err)
		return nil, err
	}

	logger.Info("book issued", "record_id", record.ID)

	if refreshErr := c.issued.Refresh(ctx); refreshErr != nil {
		logger.Warn("issued view refresh failed", "error", refreshErr)
	}

	return record, nil
}

// Return transitions the record to returned after explicit user confirmation.
//
// The confirmation prompt names the student and book title. A declined
// confirmation returns [ErrDeclined] with zero network calls and both views
// unchanged. On success the issued view is refreshed, then the history view;
// the two refreshes are independent fetches and a failure in either is
// isolated (logged, never rolled back). On failure nothing is refreshed.
func (c *Coordinator) Return(ctx context.Context, recordID int, studentName, bookTitle string) (*models.IssueRecord, error) {
	prompt := fmt.Sprintf("Are you sure you want to return this book?\n\nStudent: %s\nBook: %s", studentName, bookTitle)
	if c.confirm != nil && !c.confirm(prompt) {
		return nil, ErrDeclined
	}

	mutationID := shared.GenerateID()
	logger := shared.WithLogger(c.logger, "mutation_id", mutationID, "op", "return")
	logger.Info("returning book", "record_id", recordID, "student", studentName, "title", bookTitle)

	record, err := c.library.ReturnBook(ctx, recordID)
	if err != nil {
		logger.Warn("return failed", "error", err)
		return nil, err
	}

	logger.Info("book returned", "record_id", record.ID, "return_date", record.ReturnDate.Display())

	if refreshErr := c.issued.Refresh(ctx); refreshErr != nil {
		logger.Warn("issued view refresh failed", "error", refreshErr)
	}
	if refreshErr := c.history.Refresh(ctx); refreshErr != nil {
		logger.Warn("history view refresh failed", "error", refreshErr)
	}

	return record, nil
}

// AddBook creates a new book in the inventory.
//
// A negative quantity is rejected client-side with a [*ValidationError] and no
// network call; zero is a valid quantity (out of stock). Duplicate book ids are
// rejected server-side with a detail message.
func (c *Coordinator) AddBook(ctx context.Context, book models.Book) (*models.Book, error) {
	if book.Quantity < 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "Quantity cannot be negative!"}
	}

	book.BookID = strings.TrimSpace(book.BookID)
	book.Title = strings.TrimSpace(book.Title)
	book.Author = strings.TrimSpace(book.Author)
	book.Category = strings.TrimSpace(book.Category)

	mutationID := shared.GenerateID()
	logger := shared.WithLogger(c.logger, "mutation_id", mutationID, "op", "add_book")
	logger.Info("adding book", "book_id", book.BookID, "title", book.Title, "quantity", book.Quantity)

	created, err := c.library.AddBook(ctx, book)
	if err != nil {
		logger.Warn("add book failed", "error", err)
		return nil, err
	}

	logger.Info("book added", "book_id", created.BookID)
	return created, nil
}

// Books retrieves the current inventory. A plain read, no view is refreshed.
func (c *Coordinator) Books(ctx context.Context) ([]models.Book, error) {
	return c.library.ListBooks(ctx)
}

// Issued returns the issued-records view this coordinator refreshes.
func (c *Coordinator) Issued() *IssuedView { return c.issued }

// History returns the return-history view this coordinator refreshes.
func (c *Coordinator) History() *HistoryView { return c.history }

// ErrorMessage converts a mutation or refresh error into the message shown to
// the user: the service-supplied detail verbatim when present, the operation's
// fallback when the service gave none, and a generic connectivity message for
// transport failures.
func ErrorMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var svcErr *services.ServiceError
	if errors.As(err, &svcErr) {
		if svcErr.Detail != "" {
			return svcErr.Detail
		}
		if fallback != "" {
			return fallback
		}
		return svcErr.Error()
	}

	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr.Reason
	}

	return connectFailed
}
