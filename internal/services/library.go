// HTTP implementation of [Library]
//
// Communicates with the FastAPI backend serving the library inventory,
// following its /api REST contract.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Prabhat9801/libman/internal/models"
)

const defaultBaseURL = "http://localhost:8000/api"

// LibraryService implements [Library] over HTTP.
type LibraryService struct {
	baseURL    string
	httpClient *http.Client
}

var _ Library = (*LibraryService)(nil)

// NewLibraryService creates a new client for the Remote Library Service.
// An empty baseURL falls back to the local development default; a nil
// client falls back to [http.DefaultClient].
func NewLibraryService(baseURL string, client *http.Client) *LibraryService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &LibraryService{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: client,
	}
}

// doRequest performs an HTTP request against the service and decodes the JSON
// response into result. Non-2xx responses become a [*ServiceError] carrying the
// service's detail message when one is present.
func (l *LibraryService) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	apiURL := l.baseURL + endpoint

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		svcErr := &ServiceError{StatusCode: resp.StatusCode}
		var errResp struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			svcErr.Detail = errResp.Detail
		}
		return svcErr
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// ListBooks retrieves all books via GET /books/.
func (l *LibraryService) ListBooks(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := l.doRequest(ctx, http.MethodGet, "/books/", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// AddBook creates a book via POST /books/. The service rejects duplicate
// book ids with a 400 detail message.
func (l *LibraryService) AddBook(ctx context.Context, book models.Book) (*models.Book, error) {
	var created models.Book
	if err := l.doRequest(ctx, http.MethodPost, "/books/", book, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// IssueBook creates an issue record via POST /issue/.
func (l *LibraryService) IssueBook(ctx context.Context, req IssueRequest) (*models.IssueRecord, error) {
	var record models.IssueRecord
	if err := l.doRequest(ctx, http.MethodPost, "/issue/", req, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// ListIssued retrieves currently issued records via GET /issued-books/.
func (l *LibraryService) ListIssued(ctx context.Context) ([]models.IssueRecord, error) {
	var records []models.IssueRecord
	if err := l.doRequest(ctx, http.MethodGet, "/issued-books/", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ListAllRecords retrieves every issue record via GET /all-issue-records/.
func (l *LibraryService) ListAllRecords(ctx context.Context) ([]models.IssueRecord, error) {
	var records []models.IssueRecord
	if err := l.doRequest(ctx, http.MethodGet, "/all-issue-records/", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ReturnBook transitions a record to returned via PUT /return/{id}.
func (l *LibraryService) ReturnBook(ctx context.Context, recordID int) (*models.IssueRecord, error) {
	var record models.IssueRecord
	endpoint := fmt.Sprintf("/return/%d", recordID)
	if err := l.doRequest(ctx, http.MethodPut, endpoint, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Health checks the service root endpoint (one level above the /api base path).
func (l *LibraryService) Health(ctx context.Context) (*HealthStatus, error) {
	rootURL := strings.TrimSuffix(l.baseURL, "/api")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rootURL+"/", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ServiceError{StatusCode: resp.StatusCode}
	}

	var status HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &status, nil
}
