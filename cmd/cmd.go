// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// authCommand handles account and session operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email address",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Sign out and clear the stored session",
				Action: r.AuthLogout,
			},
			{
				Name:  "register",
				Usage: "Create a new account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Full name", Required: true},
					&cli.StringFlag{Name: "email", Usage: "Email address", Required: true},
					&cli.StringFlag{Name: "password", Usage: "Password", Required: true},
					&cli.StringFlag{Name: "confirm-password", Usage: "Password confirmation", Required: true},
					&cli.StringFlag{Name: "phone", Usage: "10-digit phone number", Required: true},
					&cli.StringFlag{Name: "image", Usage: "Avatar image URL"},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "whoami",
				Usage:  "Show the signed-in user",
				Action: r.AuthWhoami,
			},
		},
	}
}

// booksCommand handles catalogue record operations
func booksCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "books",
		Aliases: []string{"book"},
		Usage:   "Manage book records",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List your catalogue",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "filter-by",
						Usage: "Filter field: title, author, or isbn",
						Value: "title",
					},
					&cli.StringFlag{
						Name:    "search",
						Aliases: []string{"s"},
						Usage:   "Search text for the filter field",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print JSON output",
						Value: true,
					},
				},
				Action: r.BooksList,
			},
			{
				Name:  "show",
				Usage: "Show a single book record",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.BooksShow,
			},
			{
				Name:  "add",
				Usage: "Add a book to your catalogue",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "Book title", Required: true},
					&cli.StringFlag{Name: "author", Usage: "Author name", Required: true},
					&cli.StringFlag{Name: "isbn", Usage: "ISBN"},
					&cli.StringFlag{Name: "publisher", Usage: "Publisher"},
					&cli.StringFlag{Name: "year", Usage: "Publication year"},
					&cli.StringSliceFlag{Name: "genre", Usage: "Genre (repeatable)"},
					&cli.StringFlag{Name: "summary", Usage: "Summary"},
					&cli.StringFlag{Name: "pages", Usage: "Number of pages"},
					&cli.StringFlag{Name: "language", Usage: "Language"},
					&cli.StringFlag{
						Name:    "image",
						Aliases: []string{"i"},
						Usage:   "Path to a cover image (.png or .jpg, uploaded before the record saves)",
					},
				},
				Action: r.BooksAdd,
			},
			{
				Name:  "update",
				Usage: "Update an existing book record",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "Book title"},
					&cli.StringFlag{Name: "author", Usage: "Author name"},
					&cli.StringFlag{Name: "isbn", Usage: "ISBN"},
					&cli.StringFlag{Name: "publisher", Usage: "Publisher"},
					&cli.StringFlag{Name: "year", Usage: "Publication year"},
					&cli.StringSliceFlag{Name: "genre", Usage: "Genre (repeatable, replaces existing)"},
					&cli.StringFlag{Name: "summary", Usage: "Summary"},
					&cli.StringFlag{Name: "pages", Usage: "Number of pages"},
					&cli.StringFlag{Name: "language", Usage: "Language"},
					&cli.StringFlag{
						Name:    "image",
						Aliases: []string{"i"},
						Usage:   "Path to a new cover image",
					},
				},
				Action: r.BooksUpdate,
			},
			{
				Name:  "delete",
				Usage: "Delete a book and its stored cover image",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Skip the confirmation prompt",
					},
				},
				Action: r.BooksDelete,
			},
		},
	}
}

// profileCommand handles account profile operations
func profileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "View and update your account profile",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show your profile",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ProfileShow,
			},
			{
				Name:  "update",
				Usage: "Update profile fields",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "phone", Usage: "10-digit phone number"},
					&cli.StringFlag{Name: "address", Usage: "Postal address"},
					&cli.StringFlag{Name: "image", Usage: "Avatar image URL"},
				},
				Action: r.ProfileUpdate,
			},
		},
	}
}

// exportCommand handles catalogue exports
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export your catalogue to disk",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: json, csv, markdown, txt",
				Value:   "json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory (default: bookcat_export_{epoch})",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent cover download workers",
				Value: 5,
			},
			&cli.Float64Flag{
				Name:  "rate",
				Usage: "Cover downloads per second",
				Value: 5.0,
			},
			&cli.BoolFlag{
				Name:  "covers",
				Usage: "Download cover images alongside flat formats",
			},
		},
		Action: r.ExportRun,
	}
}

// apiCommand handles direct gateway calls for debugging
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the book gateway",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the gateway, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
			{
				Name:  "delete",
				Usage: "Direct DELETE with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "data",
						Aliases: []string{"d"},
						Usage:   "JSON body to send",
					},
				},
				Action: r.APIDelete,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and the local database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive catalogue management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for your book catalogue",
		Action:  r.TUI,
	}
}
