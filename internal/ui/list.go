package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/SameerAmesara/Book-Catalogue-App/internal/models"
)

var _ list.Item = bookItem{}

// bookItem wraps [models.Book] to implement [list.Item].
type bookItem struct {
	book models.Book
}

func (i bookItem) FilterValue() string { return i.book.Title }
func (i bookItem) Title() string       { return i.book.Title }
func (i bookItem) Description() string {
	desc := i.book.Author
	if i.book.PublicationYear != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.book.PublicationYear)
	}
	if i.book.ISBN != "" {
		desc = fmt.Sprintf("%s • ISBN %s", desc, i.book.ISBN)
	}
	return desc
}
