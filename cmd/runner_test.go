package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/Prabhat9801/libman/internal/models"
	"github.com/Prabhat9801/libman/internal/shared"
	tu "github.com/Prabhat9801/libman/internal/testing"
)

// newTestRunner builds a runner around a fake library with captured output.
func newTestRunner(lib *tu.FakeLibrary, input string) (*Runner, *bytes.Buffer) {
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config:  shared.DefaultConfig(),
		Library: lib,
		Output:  output,
		Input:   strings.NewReader(input),
	})
	return runner, output
}

// run executes the CLI with the given args against the runner's commands.
func run(t *testing.T, runner *Runner, args ...string) error {
	t.Helper()
	app := &cli.Command{
		Name:     "libman",
		Commands: runner.register(),
	}
	return app.Run(context.Background(), append([]string{"libman"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			lib := tu.NewFakeLibrary()

			runner := NewRunner(RunnerOpts{
				Config:  config,
				Logger:  logger,
				Output:  output,
				Library: lib,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.library != lib {
				t.Error("expected library to be set")
			}
			if runner.coordinator == nil {
				t.Error("expected coordinator to be built")
			}
			if runner.engine == nil {
				t.Error("expected engine to be built")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil library builds an http client", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.library == nil {
				t.Error("expected a default library client")
			}
		})
	})

	t.Run("promptConfirm", func(t *testing.T) {
		tests := []struct {
			name      string
			input     string
			assumeYes bool
			want      bool
		}{
			{"accepts y", "y\n", false, true},
			{"accepts yes", "yes\n", false, true},
			{"rejects n", "n\n", false, false},
			{"rejects empty input", "\n", false, false},
			{"rejects closed input", "", false, false},
			{"assume-yes skips the prompt", "", true, true},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				runner, output := newTestRunner(tu.NewFakeLibrary(), tt.input)
				runner.assumeYes = tt.assumeYes

				if got := runner.promptConfirm("Really?"); got != tt.want {
					t.Errorf("promptConfirm() = %v, want %v", got, tt.want)
				}
				if !tt.assumeYes && !strings.Contains(output.String(), "[y/N]") {
					t.Error("expected prompt to be written")
				}
				if tt.assumeYes && output.Len() != 0 {
					t.Error("expected no prompt with assume-yes")
				}
			})
		}
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes compact JSON", func(t *testing.T) {
			runner, output := newTestRunner(tu.NewFakeLibrary(), "")

			if err := runner.writeJSON(map[string]int{"records": 2}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "{\"records\":2}\n" {
				t.Errorf("unexpected output %q", output.String())
			}
		})

		t.Run("propagates write failures", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Library: tu.NewFakeLibrary(),
				Output:  &tu.FWriter{},
			})

			if err := runner.writeJSON(map[string]int{"records": 2}, false); err == nil {
				t.Error("expected error")
			}
		})

		t.Run("propagates trailing newline failures", func(t *testing.T) {
			limited := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{
				Library: tu.NewFakeLibrary(),
				Output:  &limited,
			})

			if err := runner.writeJSON(map[string]int{"records": 2}, false); err == nil {
				t.Error("expected error on second write")
			}
		})
	})

	t.Run("transport failures", func(t *testing.T) {
		t.Run("connection errors surface the connectivity message", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused")),
			}
			runner := NewRunner(RunnerOpts{
				HTTPClient: client,
				Output:     &bytes.Buffer{},
			})

			err := run(t, runner, "books", "list")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "Failed to connect to the server") {
				t.Errorf("expected connectivity message, got %v", err)
			}
		})

		t.Run("unreadable response bodies fail decoding", func(t *testing.T) {
			resp := &http.Response{
				StatusCode: http.StatusOK,
				Body:       &tu.FCloser{},
			}
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(resp, nil),
			}
			runner := NewRunner(RunnerOpts{
				HTTPClient: client,
				Output:     &bytes.Buffer{},
			})

			if err := run(t, runner, "books", "list"); err == nil {
				t.Error("expected error")
			}
		})
	})
}

func TestCommands(t *testing.T) {
	seed := func() *tu.FakeLibrary {
		lib := tu.NewFakeLibrary()
		lib.SeedBook(models.Book{BookID: "B-001", Title: "Dune", Author: "Frank Herbert", Category: "Sci-Fi", Quantity: 3})
		return lib
	}

	t.Run("books list", func(t *testing.T) {
		t.Run("prints the inventory", func(t *testing.T) {
			runner, output := newTestRunner(seed(), "")

			if err := run(t, runner, "books", "list"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), "Dune by Frank Herbert") {
				t.Errorf("unexpected output:\n%s", output.String())
			}
		})

		t.Run("prints an empty notice", func(t *testing.T) {
			runner, output := newTestRunner(tu.NewFakeLibrary(), "")

			if err := run(t, runner, "books", "list"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), "No books found.") {
				t.Errorf("unexpected output:\n%s", output.String())
			}
		})
	})

	t.Run("books add", func(t *testing.T) {
		t.Run("creates the book", func(t *testing.T) {
			runner, output := newTestRunner(tu.NewFakeLibrary(), "")

			err := run(t, runner, "books", "add", "--id", "B-002", "--title", "Hyperion", "--author", "Dan Simmons", "--quantity", "2")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), `Book "Hyperion" added successfully!`) {
				t.Errorf("unexpected output:\n%s", output.String())
			}
		})

		t.Run("surfaces a duplicate-id failure", func(t *testing.T) {
			runner, _ := newTestRunner(seed(), "")

			err := run(t, runner, "books", "add", "--id", "B-001", "--title", "Dune")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "Book with ID 'B-001' already exists") {
				t.Errorf("expected detail in error, got %v", err)
			}
		})
	})

	t.Run("issue new", func(t *testing.T) {
		t.Run("issues a book", func(t *testing.T) {
			runner, output := newTestRunner(seed(), "")

			err := run(t, runner, "issue", "new", "--student", "Alice", "--book", "B-001")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), "Book issued successfully to Alice!") {
				t.Errorf("unexpected output:\n%s", output.String())
			}
		})

		t.Run("surfaces a missing-book failure", func(t *testing.T) {
			runner, _ := newTestRunner(seed(), "")

			err := run(t, runner, "issue", "new", "--student", "Alice", "--book", "NOPE")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "Book with ID 'NOPE' not found") {
				t.Errorf("expected detail in error, got %v", err)
			}
		})

		t.Run("rejects a malformed date", func(t *testing.T) {
			runner, _ := newTestRunner(seed(), "")

			err := run(t, runner, "issue", "new", "--student", "Alice", "--book", "B-001", "--date", "05/01/2024")
			if err == nil {
				t.Fatal("expected error")
			}
		})
	})

	t.Run("issue list", func(t *testing.T) {
		t.Run("prints an empty notice", func(t *testing.T) {
			runner, output := newTestRunner(seed(), "")

			if err := run(t, runner, "issue", "list"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), "No books are currently issued.") {
				t.Errorf("unexpected output:\n%s", output.String())
			}
		})

		t.Run("prints issued records", func(t *testing.T) {
			lib := seed()
			lib.SeedRecord(models.IssueRecord{
				ID: 7, StudentName: "Alice", BookID: "B-001", BookTitle: "Dune",
				IssueDate: models.NewDate(2024, 1, 5), Status: models.StatusIssued,
			})
			runner, output := newTestRunner(lib, "")

			if err := run(t, runner, "issue", "list"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), `#7 Alice has "Dune" [B-001] since Jan 5, 2024`) {
				t.Errorf("unexpected output:\n%s", output.String())
			}
		})
	})

	t.Run("return", func(t *testing.T) {
		seedIssued := func() *tu.FakeLibrary {
			lib := seed()
			lib.SeedRecord(models.IssueRecord{
				ID: 7, StudentName: "Alice", BookID: "B-001", BookTitle: "Dune",
				IssueDate: models.NewDate(2024, 1, 5), Status: models.StatusIssued,
			})
			return lib
		}

		t.Run("with --yes skips the prompt", func(t *testing.T) {
			lib := seedIssued()
			runner, output := newTestRunner(lib, "")

			if err := run(t, runner, "return", "--yes", "7"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), `Book "Dune" returned by Alice`) {
				t.Errorf("unexpected output:\n%s", output.String())
			}
			if lib.CallCount("ReturnBook") != 1 {
				t.Errorf("expected 1 return call, got %d", lib.CallCount("ReturnBook"))
			}
		})

		t.Run("confirmed via stdin", func(t *testing.T) {
			lib := seedIssued()
			runner, output := newTestRunner(lib, "y\n")

			if err := run(t, runner, "return", "7"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), "Student: Alice") {
				t.Errorf("expected student in prompt:\n%s", output.String())
			}
			if lib.CallCount("ReturnBook") != 1 {
				t.Errorf("expected 1 return call, got %d", lib.CallCount("ReturnBook"))
			}
		})

		t.Run("declined leaves the record issued", func(t *testing.T) {
			lib := seedIssued()
			runner, output := newTestRunner(lib, "n\n")

			if err := run(t, runner, "return", "7"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), "Return cancelled.") {
				t.Errorf("unexpected output:\n%s", output.String())
			}
			if lib.CallCount("ReturnBook") != 0 {
				t.Errorf("declined return must not call the service, got %d", lib.CallCount("ReturnBook"))
			}
		})

		t.Run("unknown record fails before any mutation", func(t *testing.T) {
			lib := seedIssued()
			runner, _ := newTestRunner(lib, "")

			err := run(t, runner, "return", "--yes", "99")
			if err == nil {
				t.Fatal("expected error")
			}
			if lib.CallCount("ReturnBook") != 0 {
				t.Errorf("expected no return call, got %d", lib.CallCount("ReturnBook"))
			}
		})
	})

	t.Run("history", func(t *testing.T) {
		t.Run("prints an empty notice", func(t *testing.T) {
			runner, output := newTestRunner(seed(), "")

			if err := run(t, runner, "history"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), "No books have been returned yet.") {
				t.Errorf("unexpected output:\n%s", output.String())
			}
		})

		t.Run("prints returned records", func(t *testing.T) {
			lib := seed()
			lib.SeedRecord(models.IssueRecord{
				ID: 7, StudentName: "Alice", BookID: "B-001", BookTitle: "Dune",
				IssueDate: models.NewDate(2024, 1, 5), ReturnDate: models.NewDate(2024, 2, 1),
				Status: models.StatusReturned,
			})
			runner, output := newTestRunner(lib, "")

			if err := run(t, runner, "history"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), `#7 Alice returned "Dune" on Feb 1, 2024`) {
				t.Errorf("unexpected output:\n%s", output.String())
			}
		})
	})

	t.Run("health", func(t *testing.T) {
		runner, output := newTestRunner(tu.NewFakeLibrary(), "")

		if err := run(t, runner, "health"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "running") {
			t.Errorf("unexpected output:\n%s", output.String())
		}
	})

	t.Run("setup config", func(t *testing.T) {
		runner, output := newTestRunner(tu.NewFakeLibrary(), "")
		path := t.TempDir() + "/config.toml"

		if err := run(t, runner, "setup", "config", "--output", path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Wrote "+path) {
			t.Errorf("unexpected output:\n%s", output.String())
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected config file, got %v", err)
		}
	})
}
