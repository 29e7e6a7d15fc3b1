// Package services defines the [Library] interface for the Remote Library Service and its HTTP implementation.
//
// # Library Interface
//
// All inventory and issue-record operations go through a common abstraction so that
// the view layer and the CLI can be tested against a mock service.
//
// # HTTP Implementation
//
// [LibraryService] talks to the FastAPI backend over its fixed REST contract
// (base path /api, no auth):
//
//	GET  /books/              list books
//	POST /books/              add a book (201)
//	POST /issue/              issue a book to a student (201)
//	GET  /issued-books/       records with status=issued
//	GET  /all-issue-records/  every record, any status
//	PUT  /return/{id}         transition a record to returned
//
// # Error Handling
//
// Non-2xx responses carry a {"detail": "..."} body. The client decodes it into a
// [*ServiceError] preserving the service-supplied message verbatim; transport
// failures are wrapped with "request failed". Callers surface Detail when present
// and fall back to a generic connectivity message otherwise (see views.ErrorMessage).
package services
