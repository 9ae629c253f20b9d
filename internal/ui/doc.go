// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for managing a personal book catalogue:
//  1. [LoginView] : Sign in with email and password
//  2. [CatalogueView] : Browse, filter, and manage the book list
//  3. [DetailView] : Inspect a single book record
//  4. [FormView] : Add or update a book, including a cover image upload
//  5. [DeleteConfirmView] : Confirm removal of a book
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via typed msg structs.
// Slow operations (sign-in, catalogue fetch, image upload, save, delete) run as tea.Cmd closures and report back through those messages, so the event loop never blocks.
//
// The add/update form is its own state machine ([FormModel]): while a cover upload is in flight the form refuses to submit, so a record can never be saved with a stale or missing image URL.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
