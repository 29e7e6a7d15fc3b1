package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/Prabhat9801/libman/internal/models"
	"github.com/Prabhat9801/libman/internal/shared"
	"github.com/Prabhat9801/libman/internal/views"
)

// IssueNew issues a book to a student.
func (r *Runner) IssueNew(ctx context.Context, cmd *cli.Command) error {
	student := cmd.String("student")
	bookID := cmd.String("book")

	var issueDate models.Date
	if raw := cmd.String("date"); raw != "" {
		parsed, err := models.ParseDate(raw)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
		}
		issueDate = parsed
	}

	record, err := r.coordinator.Issue(ctx, student, bookID, issueDate)
	if err != nil {
		var vErr *views.ValidationError
		if errors.As(err, &vErr) {
			return fmt.Errorf("%w: %s", shared.ErrInvalidInput, vErr.Reason)
		}
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, views.ErrorMessage(err, "Failed to issue book"))
	}

	return r.writePlain("Book issued successfully to %s!\n", record.StudentName)
}

// IssueList prints the currently issued books.
func (r *Runner) IssueList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	issued := r.coordinator.Issued()
	if err := issued.Refresh(ctx); err != nil {
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, views.ErrorMessage(err, issued.ErrorMessage()))
	}

	rows := issued.Rows()

	if useJSON {
		return r.writeJSON(rows, pretty)
	}

	if len(rows) == 0 {
		return r.writePlain("No books are currently issued.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Issued Books (%d)", len(rows)))
	for _, row := range rows {
		r.writePlain("#%d %s has %q [%s] since %s\n", row.RecordID, row.Student, row.Title, row.BookID, row.IssuedOn)
	}

	return nil
}

// ReturnBook returns an issued book after confirmation.
func (r *Runner) ReturnBook(ctx context.Context, cmd *cli.Command) error {
	recordID := int(cmd.IntArg("record"))
	if recordID == 0 {
		return fmt.Errorf("%w: issue record ID is required", shared.ErrMissingArgument)
	}

	r.assumeYes = cmd.Bool("yes")

	issued := r.coordinator.Issued()
	if err := issued.Refresh(ctx); err != nil {
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, views.ErrorMessage(err, issued.ErrorMessage()))
	}

	var row *views.IssuedRow
	for _, candidate := range issued.Rows() {
		if candidate.RecordID == recordID {
			match := candidate
			row = &match
			break
		}
	}
	if row == nil {
		return fmt.Errorf("%w: no issued record with ID %d", shared.ErrRecordNotFound, recordID)
	}

	record, err := r.coordinator.Return(ctx, row.RecordID, row.Student, row.Title)
	if err != nil {
		if errors.Is(err, views.ErrDeclined) {
			return r.writePlain("Return cancelled.\n")
		}
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, views.ErrorMessage(err, "Failed to return book"))
	}

	return r.writePlain("Book %q returned by %s on %s.\n", record.BookTitle, record.StudentName, record.ReturnDate.Display())
}

// History prints completed returns, or every record with --all.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")
	all := cmd.Bool("all")

	if all {
		records, err := r.library.ListAllRecords(ctx)
		if err != nil {
			return fmt.Errorf("%w: %s", shared.ErrAPIRequest, views.ErrorMessage(err, "Failed to load return history."))
		}
		if useJSON {
			return r.writeJSON(records, pretty)
		}

		r.writePlainHeader(fmt.Sprintf("All Issue Records (%d)", len(records)))
		for _, rec := range records {
			r.writePlain("#%d %s %q issued %s, returned %s [%s]\n",
				rec.ID, rec.StudentName, rec.BookTitle, rec.IssueDate.Display(), rec.ReturnDate.Display(), rec.Status)
		}
		return nil
	}

	history := r.coordinator.History()
	if err := history.Refresh(ctx); err != nil {
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, views.ErrorMessage(err, history.ErrorMessage()))
	}

	rows := history.Rows()

	if useJSON {
		return r.writeJSON(rows, pretty)
	}

	if len(rows) == 0 {
		return r.writePlain("No books have been returned yet.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Return History (%d)", len(rows)))
	for _, row := range rows {
		r.writePlain("#%d %s returned %q on %s (issued %s)\n",
			row.RecordID, row.Student, row.Title, row.ReturnedOn, row.IssuedOn)
	}

	return nil
}

// Health checks that the library service is reachable.
func (r *Runner) Health(ctx context.Context, cmd *cli.Command) error {
	status, err := r.library.Health(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s", shared.ErrServiceUnavailable,
			views.ErrorMessage(err, "Failed to connect to the server. Please ensure the backend is running."))
	}

	return r.writePlain("%s (%s) - %s\n", status.Message, status.Version, status.Status)
}
