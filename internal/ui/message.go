package ui

import (
	"github.com/SameerAmesara/Book-Catalogue-App/internal/models"
	"github.com/SameerAmesara/Book-Catalogue-App/internal/session"
)

// loginResultMsg resolves a login attempt.
type loginResultMsg struct {
	user session.User
	err  error
}

// booksFetchedMsg resolves a catalogue refresh.
type booksFetchedMsg struct {
	books []models.Book
	err   error
}

// imageUploadedMsg resolves a cover image upload.
type imageUploadedMsg struct {
	url string
	err error
}

// bookSavedMsg resolves a create or update submission.
type bookSavedMsg struct {
	message string
	err     error
}

// bookDeletedMsg resolves a confirmed delete.
type bookDeletedMsg struct {
	message string
	err     error
}

// loggedOutMsg resolves a logout.
type loggedOutMsg struct {
	err error
}
