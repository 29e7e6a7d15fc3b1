// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/Prabhat9801/libman/internal/models"
	"github.com/Prabhat9801/libman/internal/services"
)

// FakeLibrary is an in-memory [services.Library] that reproduces the backend's
// issue/return semantics, records every call, and supports per-method failure
// injection. It lets lifecycle tests assert both view consistency and the
// absence of network calls.
type FakeLibrary struct {
	mu       sync.Mutex
	books    map[string]*models.Book
	records  []*models.IssueRecord
	nextID   int
	calls    []string
	FailWith map[string]error // method name -> error to return instead
}

var _ services.Library = (*FakeLibrary)(nil)

func NewFakeLibrary() *FakeLibrary {
	return &FakeLibrary{
		books:    map[string]*models.Book{},
		FailWith: map[string]error{},
	}
}

// track records the call and returns the injected failure, if any.
func (f *FakeLibrary) track(method string) error {
	f.calls = append(f.calls, method)
	return f.FailWith[method]
}

// Calls returns the methods invoked so far, in order.
func (f *FakeLibrary) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// CallCount returns how many times method was invoked.
func (f *FakeLibrary) CallCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == method {
			n++
		}
	}
	return n
}

// SeedBook inserts a book directly, bypassing call tracking.
func (f *FakeLibrary) SeedBook(book models.Book) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b := book
	b.ID = len(f.books) + 1
	f.books[b.BookID] = &b
}

// SeedRecord inserts an issue record directly, bypassing call tracking.
func (f *FakeLibrary) SeedRecord(rec models.IssueRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := rec
	if r.ID == 0 {
		f.nextID++
		r.ID = f.nextID
	} else if r.ID > f.nextID {
		f.nextID = r.ID
	}
	f.records = append(f.records, &r)
}

func (f *FakeLibrary) ListBooks(ctx context.Context) ([]models.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.track("ListBooks"); err != nil {
		return nil, err
	}
	books := make([]models.Book, 0, len(f.books))
	for _, b := range f.books {
		books = append(books, *b)
	}
	return books, nil
}

func (f *FakeLibrary) AddBook(ctx context.Context, book models.Book) (*models.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.track("AddBook"); err != nil {
		return nil, err
	}
	if _, exists := f.books[book.BookID]; exists {
		return nil, &services.ServiceError{
			StatusCode: http.StatusBadRequest,
			Detail:     fmt.Sprintf("Book with ID '%s' already exists", book.BookID),
		}
	}
	b := book
	b.ID = len(f.books) + 1
	f.books[b.BookID] = &b
	created := b
	return &created, nil
}

func (f *FakeLibrary) IssueBook(ctx context.Context, req services.IssueRequest) (*models.IssueRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.track("IssueBook"); err != nil {
		return nil, err
	}
	book, ok := f.books[req.BookID]
	if !ok {
		return nil, &services.ServiceError{
			StatusCode: http.StatusNotFound,
			Detail:     fmt.Sprintf("Book with ID '%s' not found", req.BookID),
		}
	}
	if book.Quantity <= 0 {
		return nil, &services.ServiceError{
			StatusCode: http.StatusBadRequest,
			Detail:     fmt.Sprintf("Book '%s' is currently out of stock", book.Title),
		}
	}

	book.Quantity--
	f.nextID++
	rec := &models.IssueRecord{
		ID:          f.nextID,
		StudentName: req.StudentName,
		BookID:      req.BookID,
		BookTitle:   book.Title,
		BookAuthor:  book.Author,
		IssueDate:   req.IssueDate,
		Status:      models.StatusIssued,
	}
	f.records = append(f.records, rec)
	out := *rec
	return &out, nil
}

func (f *FakeLibrary) ListIssued(ctx context.Context) ([]models.IssueRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.track("ListIssued"); err != nil {
		return nil, err
	}
	out := []models.IssueRecord{}
	for _, r := range f.records {
		if r.Status == models.StatusIssued {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *FakeLibrary) ListAllRecords(ctx context.Context) ([]models.IssueRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.track("ListAllRecords"); err != nil {
		return nil, err
	}
	out := []models.IssueRecord{}
	for _, r := range f.records {
		out = append(out, *r)
	}
	return out, nil
}

func (f *FakeLibrary) ReturnBook(ctx context.Context, recordID int) (*models.IssueRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.track("ReturnBook"); err != nil {
		return nil, err
	}
	for _, r := range f.records {
		if r.ID != recordID {
			continue
		}
		if r.Status == models.StatusReturned {
			return nil, &services.ServiceError{
				StatusCode: http.StatusBadRequest,
				Detail:     "This book has already been returned",
			}
		}
		r.Status = models.StatusReturned
		r.ReturnDate = models.Today()
		if book, ok := f.books[r.BookID]; ok {
			book.Quantity++
		}
		out := *r
		return &out, nil
	}
	return nil, &services.ServiceError{
		StatusCode: http.StatusNotFound,
		Detail:     fmt.Sprintf("Issue record with ID %d not found", recordID),
	}
}

func (f *FakeLibrary) Health(ctx context.Context) (*services.HealthStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.track("Health"); err != nil {
		return nil, err
	}
	return &services.HealthStatus{Message: "Library Management System API", Status: "running", Version: "1.0.0"}, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}
