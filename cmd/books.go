package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/SameerAmesara/Book-Catalogue-App/internal/catalogue"
	"github.com/SameerAmesara/Book-Catalogue-App/internal/models"
	"github.com/SameerAmesara/Book-Catalogue-App/internal/services"
	"github.com/SameerAmesara/Book-Catalogue-App/internal/shared"
)

// BooksList prints the signed-in user's catalogue, optionally filtered.
func (r *Runner) BooksList(ctx context.Context, cmd *cli.Command) error {
	user, err := r.requireUser()
	if err != nil {
		return err
	}

	filterBy := cmd.String("filter-by")
	search := cmd.String("search")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	books, err := r.catalog.ListForUser(ctx, user.ID)
	if err != nil {
		return err
	}

	criteria := catalogue.Criteria{Field: catalogue.Field(filterBy), Text: search}
	filtered := catalogue.Apply(books, criteria)

	if useJSON {
		return r.writeJSON(filtered, pretty)
	}

	if len(books) == 0 {
		return r.writePlain("%s\n", catalogue.EmptyCatalogueMessage)
	}
	if len(filtered) == 0 {
		return r.writePlain("%s\n", catalogue.NoResultsMessage(criteria))
	}

	r.writePlainHeader(fmt.Sprintf("%s's Books (%d)", user.Name, len(filtered)))
	for i, book := range filtered {
		r.writePlain("%d. %s - %s", i+1, book.Author, book.Title)
		if book.PublicationYear != "" {
			r.writePlain(" (%s)", book.PublicationYear)
		}
		r.writePlain("\n   id: %s", book.BookID)
		if book.ISBN != "" {
			r.writePlain("  isbn: %s", book.ISBN)
		}
		r.writePlain("\n")
	}
	return nil
}

// findBook fetches the user's catalogue and picks the record with the given id.
func (r *Runner) findBook(ctx context.Context, userID, bookID string) (models.Book, error) {
	if bookID == "" {
		return models.Book{}, fmt.Errorf("%w: book id is required", shared.ErrMissingArgument)
	}

	books, err := r.catalog.ListForUser(ctx, userID)
	if err != nil {
		return models.Book{}, err
	}
	for _, book := range books {
		if book.BookID == bookID {
			return book, nil
		}
	}
	return models.Book{}, fmt.Errorf("%w: no book with id %s", shared.ErrBookNotFound, bookID)
}

// BooksShow prints a single record in full.
func (r *Runner) BooksShow(ctx context.Context, cmd *cli.Command) error {
	user, err := r.requireUser()
	if err != nil {
		return err
	}

	book, err := r.findBook(ctx, user.ID, cmd.StringArg("id"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(book, true)
	}

	r.writePlainHeader(book.Title)
	r.writePlain("Author: %s\n", book.Author)
	if book.ISBN != "" {
		r.writePlain("ISBN: %s\n", book.ISBN)
	}
	if book.Publisher != "" {
		r.writePlain("Publisher: %s\n", book.Publisher)
	}
	if book.PublicationYear != "" {
		r.writePlain("Published: %s\n", book.PublicationYear)
	}
	if len(book.Genres) > 0 {
		r.writePlain("Genres: %s\n", strings.Join(book.Genres, ", "))
	}
	if book.Language != "" {
		r.writePlain("Language: %s\n", book.Language)
	}
	if book.NumberOfPages != "" {
		r.writePlain("Pages: %s\n", book.NumberOfPages)
	}
	if book.CoverImage != "" {
		r.writePlain("Cover: %s\n", book.CoverImage)
	}
	if book.Summary != "" {
		r.writePlainln("%s", book.Summary)
	}
	return nil
}

// uploadCover reads a local image file and resolves it to a stored URL. The
// record is never saved until this has either finished or been skipped.
func (r *Runner) uploadCover(ctx context.Context, path string) (string, error) {
	name, content, err := shared.ReadImageFile(path)
	if err != nil {
		return "", err
	}

	r.logger.Info("uploading cover image", "file", name)
	url, err := r.catalog.UploadImage(ctx, name, content)
	if err != nil {
		return "", err
	}
	r.logger.Info("cover image stored", "url", url)
	return url, nil
}

// BooksAdd creates a new record with a client-generated id.
func (r *Runner) BooksAdd(ctx context.Context, cmd *cli.Command) error {
	user, err := r.requireUser()
	if err != nil {
		return err
	}

	book := models.Book{
		BookID:          shared.GenerateID(),
		UserID:          user.ID,
		Title:           cmd.String("title"),
		Author:          cmd.String("author"),
		ISBN:            cmd.String("isbn"),
		Publisher:       cmd.String("publisher"),
		PublicationYear: cmd.String("year"),
		Genres:          cmd.StringSlice("genre"),
		Summary:         cmd.String("summary"),
		NumberOfPages:   cmd.String("pages"),
		Language:        cmd.String("language"),
	}

	if imagePath := cmd.String("image"); imagePath != "" {
		url, err := r.uploadCover(ctx, imagePath)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrUpload, err)
		}
		book.CoverImage = url
	}

	message, err := r.catalog.Create(ctx, book)
	if err != nil {
		return err
	}

	r.writePlain("✓ %s\n", message)
	r.writePlain("Book ID: %s\n", book.BookID)
	return nil
}

// BooksUpdate replaces fields on an existing record. Flags that were not
// provided keep the record's current values.
func (r *Runner) BooksUpdate(ctx context.Context, cmd *cli.Command) error {
	user, err := r.requireUser()
	if err != nil {
		return err
	}

	book, err := r.findBook(ctx, user.ID, cmd.StringArg("id"))
	if err != nil {
		return err
	}

	if v := cmd.String("title"); v != "" {
		book.Title = v
	}
	if v := cmd.String("author"); v != "" {
		book.Author = v
	}
	if v := cmd.String("isbn"); v != "" {
		book.ISBN = v
	}
	if v := cmd.String("publisher"); v != "" {
		book.Publisher = v
	}
	if v := cmd.String("year"); v != "" {
		book.PublicationYear = v
	}
	if v := cmd.StringSlice("genre"); len(v) > 0 {
		book.Genres = v
	}
	if v := cmd.String("summary"); v != "" {
		book.Summary = v
	}
	if v := cmd.String("pages"); v != "" {
		book.NumberOfPages = v
	}
	if v := cmd.String("language"); v != "" {
		book.Language = v
	}

	if imagePath := cmd.String("image"); imagePath != "" {
		url, err := r.uploadCover(ctx, imagePath)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrUpload, err)
		}
		book.CoverImage = url
	}

	message, err := r.catalog.Update(ctx, book)
	if err != nil {
		return err
	}

	return r.writePlain("✓ %s\n", message)
}

// BooksDelete removes a record and its stored cover image together.
func (r *Runner) BooksDelete(ctx context.Context, cmd *cli.Command) error {
	user, err := r.requireUser()
	if err != nil {
		return err
	}

	book, err := r.findBook(ctx, user.ID, cmd.StringArg("id"))
	if err != nil {
		return err
	}

	if !cmd.Bool("yes") {
		r.writePlain("%s\n", catalogue.DeleteConfirmation)
		r.writePlain("Re-run with --yes to delete \"%s\".\n", book.Title)
		return nil
	}

	message, err := r.catalog.Delete(ctx, services.DeleteRequest{
		BookID:     book.BookID,
		CoverImage: book.CoverImage,
	})
	if err != nil {
		return err
	}

	return r.writePlain("✓ %s\n", message)
}
