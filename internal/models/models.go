// package models defines the data model for the book catalogue client
package models

import (
	"fmt"
	"strings"
	"time"
)

// Book is a single catalogue record. Field tags match the wire format of the
// book service.
type Book struct {
	BookID          string   `json:"book_id"`
	UserID          string   `json:"user_id"`
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	ISBN            string   `json:"isbn"`
	Publisher       string   `json:"publisher"`
	PublicationYear string   `json:"publicationYear"`
	Genres          []string `json:"genres"`
	Summary         string   `json:"summary"`
	CoverImage      string   `json:"coverImage"`
	NumberOfPages   string   `json:"numberOfPages"`
	Language        string   `json:"language"`
}

// Validate checks the fields a record needs before it can be saved.
func (b Book) Validate() error {
	var missing []string
	if strings.TrimSpace(b.BookID) == "" {
		missing = append(missing, "book_id")
	}
	if strings.TrimSpace(b.UserID) == "" {
		missing = append(missing, "user_id")
	}
	if strings.TrimSpace(b.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(b.Author) == "" {
		missing = append(missing, "author")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// UserProfile is the editable account record served by the user endpoints.
type UserProfile struct {
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Image   string `json:"image"`
}

// UserAttributes is the identity provider's view of the signed-in user.
// Sub is the provider-assigned stable user id.
type UserAttributes struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Sub   string `json:"sub"`
}

// GenreOptions are the genres offered by the book form.
var GenreOptions = []string{
	"Fiction",
	"Non-Fiction",
	"Science Fiction",
	"Biography",
	"History",
	"Fantasy",
	"Mystery",
	"Dystopian",
	"Adventure",
	"Classic",
	"Drama",
	"Romance",
}

// LanguageOptions are the languages offered by the book form.
var LanguageOptions = []string{
	"English",
	"French",
	"Spanish",
	"Chinese",
	"Hindi",
	"Arabic",
	"Portuguese",
	"Guajarati",
	"Russian",
	"Japanese",
	"Punjabi",
}

// PublicationYears lists the selectable publication years, 1900 through the
// current year.
func PublicationYears() []int {
	current := time.Now().Year()
	years := make([]int, 0, current-1900+1)
	for y := 1900; y <= current; y++ {
		years = append(years, y)
	}
	return years
}
