package tasks

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"github.com/Prabhat9801/libman/internal/models"
	"github.com/Prabhat9801/libman/internal/shared"
)

// ImportOpts contains configuration for bulk catalog imports.
type ImportOpts struct {
	NumWorkers int     // Concurrent workers (default: 5, max: 10)
	RateLimit  float64 // Requests per second (default: 5)
}

// bookImportJob is one validated row handed to the worker pool.
type bookImportJob struct {
	Row  int
	Book models.Book
}

// ImportBooks creates books from a CSV catalog file concurrently with rate limiting and progress tracking.
//
// The file must carry a header row followed by data rows of the form
// book_id,title,author,category,quantity. Rows with a missing book id or
// title, or a malformed or negative quantity, are rejected client-side and
// never sent to the service. Valid rows are posted through a worker pool;
// per-row service failures (such as duplicate book ids) are collected, not
// fatal.
func (e *CatalogEngine) ImportBooks(ctx context.Context, prog chan<- ProgressUpdate, path string, opts ImportOpts) (*ImportRunResult, error) {
	if e.library == nil {
		return nil, fmt.Errorf("%w: library client not initialized", shared.ErrServiceUnavailable)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	e.sendProgress(prog, parsingCatalogUpdate(path))

	rows, rejected, err := parseCatalogFile(path)
	if err != nil {
		return nil, err
	}

	total := len(rows) + len(rejected)
	e.sendProgress(prog, parsedCatalogUpdate(total))

	result := &ImportRunResult{
		TotalRows: total,
		Rejected:  len(rejected),
		Results:   make([]BookImportResult, 0, total),
	}
	result.Results = append(result.Results, rejected...)

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan bookImportJob, len(rows))
	results := make(chan BookImportResult, len(rows))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.importWorker(ctx, &wg, jobs, results)
	}

	go func() {
		defer close(jobs)
		for _, job := range rows {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if err := limiter.Wait(ctx); err != nil {
				return
			}

			jobs <- job
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.Imported++
			e.sendProgress(prog, bookCreatedUpdate(completed, len(rows), res.Book))
		} else {
			result.Failed++
			e.sendProgress(prog, bookFailedUpdate(completed, len(rows), res.Row, res.Error))
		}
	}

	sort.Slice(result.Results, func(i, j int) bool {
		return result.Results[i].Row < result.Results[j].Row
	})

	return result, nil
}

// importWorker is a worker goroutine that creates books from the jobs channel.
func (e *CatalogEngine) importWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan bookImportJob,
	results chan<- BookImportResult,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		created, err := e.library.AddBook(ctx, job.Book)
		if err != nil {
			results <- BookImportResult{
				Row:   job.Row,
				Book:  job.Book,
				Error: fmt.Errorf("failed to create book: %w", err),
			}
			continue
		}

		results <- BookImportResult{
			Row:     job.Row,
			Book:    *created,
			Success: true,
		}
	}
}

// parseCatalogFile reads a CSV catalog and splits its data rows into valid
// import jobs and client-side rejections.
func parseCatalogFile(path string) ([]bookImportJob, []BookImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 5

	raw, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil, fmt.Errorf("%w: catalog file is empty", shared.ErrInvalidInput)
	}

	// First row is the header.
	var (
		jobs     []bookImportJob
		rejected []BookImportResult
	)
	for i, fields := range raw[1:] {
		row := i + 1

		book := models.Book{
			BookID:   strings.TrimSpace(fields[0]),
			Title:    strings.TrimSpace(fields[1]),
			Author:   strings.TrimSpace(fields[2]),
			Category: strings.TrimSpace(fields[3]),
		}

		if book.BookID == "" {
			rejected = append(rejected, BookImportResult{
				Row:   row,
				Error: fmt.Errorf("%w: book id cannot be empty", shared.ErrInvalidInput),
			})
			continue
		}
		if book.Title == "" {
			rejected = append(rejected, BookImportResult{
				Row:   row,
				Error: fmt.Errorf("%w: title cannot be empty", shared.ErrInvalidInput),
			})
			continue
		}

		quantity, err := strconv.Atoi(strings.TrimSpace(fields[4]))
		if err != nil {
			rejected = append(rejected, BookImportResult{
				Row:   row,
				Error: fmt.Errorf("%w: invalid quantity %q", shared.ErrInvalidInput, fields[4]),
			})
			continue
		}
		if quantity < 0 {
			rejected = append(rejected, BookImportResult{
				Row:   row,
				Error: fmt.Errorf("%w: Quantity cannot be negative!", shared.ErrInvalidInput),
			})
			continue
		}
		book.Quantity = quantity

		jobs = append(jobs, bookImportJob{Row: row, Book: book})
	}

	return jobs, rejected, nil
}
