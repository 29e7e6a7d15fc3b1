// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// booksCommand handles inventory operations
func booksCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "books",
		Aliases: []string{"book"},
		Usage:   "Book inventory operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all books in the inventory",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
					&cli.BoolFlag{
						Name:  "available",
						Usage: "Only show books with copies in stock",
					},
				},
				Action: r.BooksList,
			},
			{
				Name:  "add",
				Usage: "Add a new book to the inventory",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Unique book ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Book title",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "author",
						Usage: "Book author",
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Book category",
					},
					&cli.IntFlag{
						Name:  "quantity",
						Usage: "Number of copies",
						Value: 1,
					},
				},
				Action: r.BooksAdd,
			},
			{
				Name:  "import",
				Usage: "Bulk import books from a CSV catalog file",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent workers",
						Value: 5,
					},
					&cli.FloatFlag{
						Name:  "rate-limit",
						Usage: "Requests per second",
						Value: 5.0,
					},
				},
				Action: r.BooksImport,
			},
			{
				Name:  "export",
				Usage: "Export the catalog snapshot to disk",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (json, csv, markdown, txt)",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
					},
				},
				Action: r.BooksExport,
			},
		},
	}
}

// issueCommand handles issuing books to students
func issueCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "issue",
		Usage: "Issue books to students",
		Commands: []*cli.Command{
			{
				Name:  "new",
				Usage: "Issue a book to a student",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "student",
						Aliases:  []string{"s"},
						Usage:    "Student name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "book",
						Aliases:  []string{"b"},
						Usage:    "Book ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "date",
						Usage: "Issue date (YYYY-MM-DD, default: today)",
					},
				},
				Action: r.IssueNew,
			},
			{
				Name:  "list",
				Usage: "List currently issued books",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.IssueList,
			},
		},
	}
}

// returnCommand handles book returns
func returnCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "return",
		Usage: "Return an issued book",
		Arguments: []cli.Argument{
			&cli.IntArg{
				Name: "record",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip the confirmation prompt",
			},
		},
		Action: r.ReturnBook,
	}
}

// historyCommand shows completed returns
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show return history",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Include records that are still issued",
			},
		},
		Action: r.History,
	}
}

// healthCommand checks service availability
func healthCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "health",
		Usage:  "Check that the library service is reachable",
		Action: r.Health,
	}
}

// setupCommand handles setup and configuration
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a starter config.toml",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path for the config file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive circulation management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for circulation management",
		Action:  r.TUI,
	}
}
