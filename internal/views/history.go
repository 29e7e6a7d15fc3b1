package views

import (
	"context"
	"fmt"

	"github.com/Prabhat9801/libman/internal/models"
	"github.com/Prabhat9801/libman/internal/services"
)

// historyLoadFailed is the message shown when the record set cannot be fetched.
const historyLoadFailed = "Failed to load return history."

// HistoryView is the read-only view-model for the return history table.
//
// The service exposes no returned-only listing, so the view fetches the full
// record set and filters client-side, preserving service order.
type HistoryView struct {
	library services.Library
	state   State
	rows    []HistoryRow
	errMsg  string
}

// NewHistoryView creates a return-history view backed by the given service client.
func NewHistoryView(library services.Library) *HistoryView {
	return &HistoryView{library: library, state: StateIdle}
}

// Refresh re-fetches all records, keeps those with status == returned, and
// replaces the rendered rows wholesale. Failure policy matches [IssuedView.Refresh]:
// prior rows stay intact and the error is surfaced, never propagated as a fault.
func (v *HistoryView) Refresh(ctx context.Context) error {
	v.state = StateLoading

	records, err := v.library.ListAllRecords(ctx)
	if err != nil {
		v.state = StateFailed
		v.errMsg = historyLoadFailed
		return fmt.Errorf("history view refresh: %w", err)
	}

	rows := make([]HistoryRow, 0, len(records))
	for _, rec := range records {
		if rec.Status == models.StatusReturned {
			rows = append(rows, NewHistoryRow(rec))
		}
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
func (v *HistoryView) State() State { return v.state }

// Rows returns the rows from the last successful refresh.
func (v *HistoryView) Rows() []HistoryRow { return v.rows }

// ErrorMessage returns the user-visible message for [StateFailed], empty otherwise.
func (v *HistoryView) ErrorMessage() string { return v.errMsg }
