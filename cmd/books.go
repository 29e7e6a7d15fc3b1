package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/Prabhat9801/libman/internal/models"
	"github.com/Prabhat9801/libman/internal/shared"
	"github.com/Prabhat9801/libman/internal/tasks"
	"github.com/Prabhat9801/libman/internal/views"
)

// BooksList prints the book inventory.
func (r *Runner) BooksList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")
	availableOnly := cmd.Bool("available")

	r.logger.Info("listing books", "available_only", availableOnly)

	books, err := r.coordinator.Books(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, views.ErrorMessage(err, "Failed to load books."))
	}

	if availableOnly {
		filtered := books[:0]
		for _, book := range books {
			if book.Available() {
				filtered = append(filtered, book)
			}
		}
		books = filtered
	}

	if useJSON {
		return r.writeJSON(books, pretty)
	}

	if len(books) == 0 {
		return r.writePlain("No books found.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Book Inventory (%d)", len(books)))
	for _, book := range books {
		stock := fmt.Sprintf("%d copies", book.Quantity)
		if !book.Available() {
			stock = "out of stock"
		}
		r.writePlain("[%s] %s by %s (%s, %s)\n", book.BookID, book.Title, book.Author, book.Category, stock)
	}

	return nil
}

// BooksAdd creates a new book in the inventory.
func (r *Runner) BooksAdd(ctx context.Context, cmd *cli.Command) error {
	book := models.Book{
		BookID:   cmd.String("id"),
		Title:    cmd.String("title"),
		Author:   cmd.String("author"),
		Category: cmd.String("category"),
		Quantity: int(cmd.Int("quantity")),
	}

	created, err := r.coordinator.AddBook(ctx, book)
	if err != nil {
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, views.ErrorMessage(err, "Failed to add book"))
	}

	return r.writePlain("Book %q added successfully!\n", created.Title)
}

// BooksImport bulk-imports books from a CSV catalog file.
func (r *Runner) BooksImport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: catalog file path is required", shared.ErrMissingArgument)
	}

	opts := tasks.ImportOpts{
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate-limit"),
	}

	r.logger.Info("importing catalog", "path", path, "workers", opts.NumWorkers)

	prog := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range prog {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := r.engine.ImportBooks(ctx, prog, path, opts)
	close(prog)
	<-done
	if err != nil {
		return err
	}

	r.writePlainln("Imported %d/%d books (%d rejected, %d failed)",
		result.Imported, result.TotalRows, result.Rejected, result.Failed)

	for _, res := range result.Results {
		if !res.Success {
			r.writePlain("  row %d: %v\n", res.Row, res.Error)
		}
	}

	if result.Failed > 0 || result.Rejected > 0 {
		return fmt.Errorf("%w: %d rows were not imported", shared.ErrInvalidInput, result.Failed+result.Rejected)
	}

	return nil
}

// BooksExport writes a catalog snapshot to disk.
func (r *Runner) BooksExport(ctx context.Context, cmd *cli.Command) error {
	opts := tasks.SnapshotOpts{
		Format:    cmd.String("format"),
		OutputDir: cmd.String("output"),
	}

	r.logger.Info("exporting catalog snapshot", "format", opts.Format)

	prog := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range prog {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := r.engine.Snapshot(ctx, prog, opts)
	close(prog)
	<-done
	if err != nil {
		return err
	}

	r.writePlainln("Exported %d books and %d records to %s", result.Books, result.Records, result.OutputDir)
	return nil
}
