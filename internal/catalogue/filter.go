// package catalogue implements pure filtering over fetched book lists
package catalogue

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/SameerAmesara/Book-Catalogue-App/internal/models"
)

// Field selects which attribute a filter matches against.
type Field string

const (
	FieldTitle  Field = "title"
	FieldAuthor Field = "author"
	FieldISBN   Field = "isbn"
)

// Criteria is an ephemeral filter. It is never persisted and never leaves
// the process.
type Criteria struct {
	Field Field
	Text  string
}

// Apply returns the books matching c. Title and author match by
// case-insensitive substring, ISBN by plain substring. Empty text matches
// everything. The input slice is never modified.
func Apply(books []models.Book, c Criteria) []models.Book {
	if c.Text == "" {
		return books
	}

	needle := strings.ToLower(c.Text)
	matched := make([]models.Book, 0, len(books))
	for _, book := range books {
		var ok bool
		switch c.Field {
		case FieldTitle:
			ok = strings.Contains(strings.ToLower(book.Title), needle)
		case FieldAuthor:
			ok = strings.Contains(strings.ToLower(book.Author), needle)
		case FieldISBN:
			ok = strings.Contains(book.ISBN, c.Text)
		default:
			ok = true
		}
		if ok {
			matched = append(matched, book)
		}
	}
	return matched
}

// NoResultsMessage renders the empty-result notice for c, with the field and
// search text capitalized the way the catalogue page shows them.
func NoResultsMessage(c Criteria) string {
	return fmt.Sprintf("No book with %s named %s found.", capitalize(string(c.Field)), capitalize(c.Text))
}

// EmptyCatalogueMessage is shown when the user owns no books at all.
const EmptyCatalogueMessage = "No books available."

// DeleteConfirmation is the prompt shown before a delete is issued.
const DeleteConfirmation = "Are you sure you want to delete this book?"

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
