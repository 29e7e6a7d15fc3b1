// package services defines interface Library for interacting with the Remote Library Service HTTP API
package services

import (
	"context"
	"fmt"

	"github.com/Prabhat9801/libman/internal/models"
)

// Library defines the operations the Remote Library Service exposes.
type Library interface {
	// ListBooks retrieves the full book inventory.
	ListBooks(ctx context.Context) ([]models.Book, error)

	// AddBook creates a new book and returns the created entity.
	AddBook(ctx context.Context, book models.Book) (*models.Book, error)

	// IssueBook creates an issue record for a student and book.
	// Book existence and stock availability are enforced server-side.
	IssueBook(ctx context.Context, req IssueRequest) (*models.IssueRecord, error)

	// ListIssued retrieves records with status == issued, including book snapshots.
	ListIssued(ctx context.Context) ([]models.IssueRecord, error)

	// ListAllRecords retrieves every issue record regardless of status.
	ListAllRecords(ctx context.Context) ([]models.IssueRecord, error)

	// ReturnBook transitions the record to returned and returns the updated record.
	ReturnBook(ctx context.Context, recordID int) (*models.IssueRecord, error)

	// Health checks the service root endpoint.
	Health(ctx context.Context) (*HealthStatus, error)
}

// IssueRequest is the creation payload for POST /issue/.
type IssueRequest struct {
	StudentName string      `json:"student_name"`
	BookID      string      `json:"book_id"`
	IssueDate   models.Date `json:"issue_date"`
}

// HealthStatus is the response of the service root endpoint.
type HealthStatus struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ServiceError is a failure reported by the Remote Library Service: a non-2xx
// response, with the service-supplied detail message when one was provided.
type ServiceError struct {
	StatusCode int
	Detail     string
}

func (e *ServiceError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("library API error: status %d", e.StatusCode)
}
