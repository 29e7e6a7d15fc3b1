package main

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/Prabhat9801/libman/internal/services"
	"github.com/Prabhat9801/libman/internal/shared"
	"github.com/Prabhat9801/libman/internal/tasks"
	"github.com/Prabhat9801/libman/internal/views"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	library     services.Library
	coordinator *views.Coordinator
	engine      *tasks.CatalogEngine
	logger      *log.Logger
	output      io.Writer
	input       io.Reader
	assumeYes   bool
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Library    services.Library
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Input      io.Reader
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Library == nil {
		opts.Library = services.NewLibraryService(opts.Config.API.BaseURL, opts.HTTPClient)
	}

	r := &Runner{
		config:  opts.Config,
		library: opts.Library,
		engine:  tasks.NewCatalogEngine(opts.Library),
		logger:  opts.Logger,
		output:  opts.Output,
		input:   opts.Input,
	}

	issued := views.NewIssuedView(opts.Library)
	history := views.NewHistoryView(opts.Library)
	r.coordinator = views.NewCoordinator(opts.Library, issued, history, r.promptConfirm, opts.Logger)

	return r
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		booksCommand, issueCommand, returnCommand, historyCommand, healthCommand, setupCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger swaps the logger on the runner and its coordinator.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
	issued := r.coordinator.Issued()
	history := r.coordinator.History()
	r.coordinator = views.NewCoordinator(r.library, issued, history, r.promptConfirm, logger)
}

// promptConfirm writes the prompt and reads a yes/no answer from input.
// Returns true without prompting when --yes was passed.
func (r *Runner) promptConfirm(prompt string) bool {
	if r.assumeYes {
		return true
	}

	r.writePlain("%s [y/N]: ", prompt)

	scanner := bufio.NewScanner(r.input)
	if !scanner.Scan() {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
