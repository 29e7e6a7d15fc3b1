package views

import (
	"context"
	"fmt"

	"github.com/Prabhat9801/libman/internal/services"
)

// issuedLoadFailed is the message shown when the issued set cannot be fetched.
const issuedLoadFailed = "Failed to load issued books."

// IssuedView is the view-model for the currently issued records table.
type IssuedView struct {
	library services.Library
	state   State
	rows    []IssuedRow
	errMsg  string
}

// NewIssuedView creates an issued-records view backed by the given service client.
func NewIssuedView(library services.Library) *IssuedView {
	return &IssuedView{library: library, state: StateIdle}
}

// Refresh re-fetches the issued record set and replaces the rendered rows wholesale.
// Idempotent and safe to call repeatedly; there is no merge against prior state.
//
// On failure the prior rows are retained, the view transitions to [StateFailed]
// with a user-visible message, and the underlying error is returned for logging.
func (v *IssuedView) Refresh(ctx context.Context) error {
	v.state = StateLoading

	records, err := v.library.ListIssued(ctx)
	if err != nil {
		v.state = StateFailed
		v.errMsg = issuedLoadFailed
		return fmt.Errorf("issued view refresh: %w", err)
	}

	rows := make([]IssuedRow, len(records))
	for i, rec := range records {
		rows[i] = NewIssuedRow(rec)
	}

	v.rows = rows
	v.errMsg = ""
	if len(rows) == 0 {
		v.state = StateEmpty
	} else {
		v.state = StateReady
	}

	return nil
}

// State returns the current render state.
func (v *IssuedView) State() State { return v.state }

// Rows returns the rows from the last successful refresh.
func (v *IssuedView) Rows() []IssuedRow { return v.rows }

// ErrorMessage returns the user-visible message for [StateFailed], empty otherwise.
func (v *IssuedView) ErrorMessage() string { return v.errMsg }
