package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Prabhat9801/libman/internal/models"
)

// errTransport fails every request at the transport layer.
type errTransport struct{ err error }

func (t *errTransport) RoundTrip(*http.Request) (*http.Response, error) { return nil, t.err }

type recordedRequest struct {
	method string
	path   string
	body   map[string]any
}

// newTestService starts a stubbed backend and points a client at its /api base.
func newTestService(t *testing.T, status int, payload any) (*LibraryService, *recordedRequest) {
	t.Helper()

	var last recordedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last.method = r.Method
		last.path = r.URL.Path
		last.body = nil
		_ = json.NewDecoder(r.Body).Decode(&last.body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(payload)
	}))
	t.Cleanup(server.Close)

	return NewLibraryService(server.URL+"/api", server.Client()), &last
}

func TestLibraryService(t *testing.T) {
	ctx := context.Background()

	t.Run("NewLibraryService", func(t *testing.T) {
		t.Run("applies defaults", func(t *testing.T) {
			svc := NewLibraryService("", nil)
			if svc.baseURL != "http://localhost:8000/api" {
				t.Errorf("unexpected default base url %q", svc.baseURL)
			}
			if svc.httpClient != http.DefaultClient {
				t.Error("expected default http client")
			}
		})

		t.Run("strips trailing slash", func(t *testing.T) {
			svc := NewLibraryService("http://example.com/api/", nil)
			if svc.baseURL != "http://example.com/api" {
				t.Errorf("unexpected base url %q", svc.baseURL)
			}
		})
	})

	t.Run("ListBooks", func(t *testing.T) {
		svc, req := newTestService(t, http.StatusOK, []models.Book{
			{ID: 1, BookID: "B-001", Title: "Dune", Author: "Frank Herbert", Category: "Sci-Fi", Quantity: 3},
		})

		books, err := svc.ListBooks(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if req.method != http.MethodGet || req.path != "/api/books/" {
			t.Errorf("unexpected request %s %s", req.method, req.path)
		}
		if len(books) != 1 || books[0].Title != "Dune" {
			t.Errorf("unexpected books %+v", books)
		}
	})

	t.Run("AddBook", func(t *testing.T) {
		t.Run("posts the book and decodes the created entity", func(t *testing.T) {
			svc, req := newTestService(t, http.StatusCreated, models.Book{
				ID: 4, BookID: "B-004", Title: "Solaris", Author: "Stanislaw Lem", Category: "Sci-Fi", Quantity: 2,
			})

			created, err := svc.AddBook(ctx, models.Book{BookID: "B-004", Title: "Solaris", Author: "Stanislaw Lem", Category: "Sci-Fi", Quantity: 2})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if req.method != http.MethodPost || req.path != "/api/books/" {
				t.Errorf("unexpected request %s %s", req.method, req.path)
			}
			if req.body["book_id"] != "B-004" || req.body["quantity"] != float64(2) {
				t.Errorf("unexpected request body %v", req.body)
			}
			if created.ID != 4 {
				t.Errorf("expected server-assigned id 4, got %d", created.ID)
			}
		})

		t.Run("surfaces the duplicate-id detail", func(t *testing.T) {
			svc, _ := newTestService(t, http.StatusBadRequest, map[string]string{
				"detail": "Book with ID 'B-004' already exists",
			})

			_, err := svc.AddBook(ctx, models.Book{BookID: "B-004"})
			var svcErr *ServiceError
			if !errors.As(err, &svcErr) {
				t.Fatalf("expected *ServiceError, got %T (%v)", err, err)
			}
			if svcErr.StatusCode != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", svcErr.StatusCode)
			}
			if svcErr.Detail != "Book with ID 'B-004' already exists" {
				t.Errorf("expected detail passed through verbatim, got %q", svcErr.Detail)
			}
		})
	})

	t.Run("IssueBook", func(t *testing.T) {
		t.Run("posts the issue payload", func(t *testing.T) {
			svc, req := newTestService(t, http.StatusCreated, models.IssueRecord{
				ID: 7, StudentName: "Alice", BookID: "B-001", Status: models.StatusIssued,
			})

			rec, err := svc.IssueBook(ctx, IssueRequest{
				StudentName: "Alice",
				BookID:      "B-001",
				IssueDate:   models.NewDate(2024, 1, 5),
			})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if req.method != http.MethodPost || req.path != "/api/issue/" {
				t.Errorf("unexpected request %s %s", req.method, req.path)
			}
			if req.body["student_name"] != "Alice" || req.body["issue_date"] != "2024-01-05" {
				t.Errorf("unexpected request body %v", req.body)
			}
			if rec.ID != 7 {
				t.Errorf("expected record id 7, got %d", rec.ID)
			}
		})

		t.Run("surfaces a 404 detail", func(t *testing.T) {
			svc, _ := newTestService(t, http.StatusNotFound, map[string]string{"detail": "Book not found"})

			_, err := svc.IssueBook(ctx, IssueRequest{StudentName: "Alice", BookID: "NOPE"})
			var svcErr *ServiceError
			if !errors.As(err, &svcErr) {
				t.Fatalf("expected *ServiceError, got %T", err)
			}
			if svcErr.Detail != "Book not found" {
				t.Errorf("unexpected detail %q", svcErr.Detail)
			}
		})
	})

	t.Run("ListIssued", func(t *testing.T) {
		svc, req := newTestService(t, http.StatusOK, []models.IssueRecord{
			{ID: 7, StudentName: "Alice", BookID: "B-001", BookTitle: "Dune", Status: models.StatusIssued},
		})

		records, err := svc.ListIssued(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if req.path != "/api/issued-books/" {
			t.Errorf("unexpected path %s", req.path)
		}
		if len(records) != 1 || records[0].BookTitle != "Dune" {
			t.Errorf("unexpected records %+v", records)
		}
	})

	t.Run("ListAllRecords", func(t *testing.T) {
		svc, req := newTestService(t, http.StatusOK, []models.IssueRecord{
			{ID: 7, Status: models.StatusReturned},
			{ID: 8, Status: models.StatusIssued},
		})

		records, err := svc.ListAllRecords(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if req.path != "/api/all-issue-records/" {
			t.Errorf("unexpected path %s", req.path)
		}
		if len(records) != 2 {
			t.Errorf("expected 2 records, got %d", len(records))
		}
	})

	t.Run("ReturnBook", func(t *testing.T) {
		t.Run("puts to the record path", func(t *testing.T) {
			svc, req := newTestService(t, http.StatusOK, models.IssueRecord{
				ID: 7, Status: models.StatusReturned, ReturnDate: models.NewDate(2024, 2, 1),
			})

			rec, err := svc.ReturnBook(ctx, 7)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if req.method != http.MethodPut || req.path != "/api/return/7" {
				t.Errorf("unexpected request %s %s", req.method, req.path)
			}
			if rec.Status != models.StatusReturned {
				t.Errorf("expected returned status, got %s", rec.Status)
			}
		})

		t.Run("surfaces an already-returned detail", func(t *testing.T) {
			svc, _ := newTestService(t, http.StatusBadRequest, map[string]string{
				"detail": "This book has already been returned",
			})

			_, err := svc.ReturnBook(ctx, 7)
			var svcErr *ServiceError
			if !errors.As(err, &svcErr) {
				t.Fatalf("expected *ServiceError, got %T", err)
			}
			if svcErr.Detail != "This book has already been returned" {
				t.Errorf("unexpected detail %q", svcErr.Detail)
			}
		})
	})

	t.Run("Health", func(t *testing.T) {
		svc, req := newTestService(t, http.StatusOK, HealthStatus{
			Message: "Library Management System API", Status: "running", Version: "1.0.0",
		})

		status, err := svc.Health(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if req.path != "/" {
			t.Errorf("expected health probe at the service root, got %s", req.path)
		}
		if status.Status != "running" {
			t.Errorf("unexpected status %+v", status)
		}
	})

	t.Run("error handling", func(t *testing.T) {
		t.Run("wraps transport failures", func(t *testing.T) {
			client := &http.Client{
				Transport: &errTransport{err: errors.New("connection refused")},
			}
			svc := NewLibraryService("http://localhost:9999/api", client)

			_, err := svc.ListBooks(ctx)
			if err == nil {
				t.Fatal("expected error")
			}
			var svcErr *ServiceError
			if errors.As(err, &svcErr) {
				t.Error("transport failure must not masquerade as a service error")
			}
		})

		t.Run("non-json error body yields status-only error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte("bad gateway"))
			}))
			defer server.Close()

			svc := NewLibraryService(server.URL+"/api", server.Client())
			_, err := svc.ListBooks(ctx)

			var svcErr *ServiceError
			if !errors.As(err, &svcErr) {
				t.Fatalf("expected *ServiceError, got %T", err)
			}
			if svcErr.Detail != "" {
				t.Errorf("expected empty detail, got %q", svcErr.Detail)
			}
			if svcErr.Error() != "library API error: status 502" {
				t.Errorf("unexpected message %q", svcErr.Error())
			}
		})
	})
}
