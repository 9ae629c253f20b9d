package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/SameerAmesara/Book-Catalogue-App/internal/models"
	"github.com/SameerAmesara/Book-Catalogue-App/internal/services"
	"github.com/SameerAmesara/Book-Catalogue-App/internal/shared"
)

// FormState is the lifecycle of a single add/update form session.
type FormState int

const (
	// StateEditing accepts field input and cover selection.
	StateEditing FormState = iota
	// StateUploading locks the image slot while the upload resolves.
	StateUploading
	// StateSubmitting locks the whole form while the record saves.
	StateSubmitting
	// StateDone means the record was saved and the draft discarded.
	StateDone
)

// Field order in the form.
const (
	fieldTitle = iota
	fieldAuthor
	fieldISBN
	fieldPublisher
	fieldYear
	fieldGenres
	fieldSummary
	fieldPages
	fieldLanguage
	fieldImagePath
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Title", "Author", "ISBN", "Publisher", "Publication Year",
	"Genres (comma separated)", "Summary", "Number of Pages", "Language",
	"Cover Image Path",
}

// FormModel drives one add-or-update form session. A fresh draft gets a
// client-generated id before the first save; an update keeps the existing id.
type FormModel struct {
	ctx      context.Context
	catalog  services.CatalogService
	state    FormState
	inputs   [fieldCount]textinput.Model
	focus    int
	draft    models.Book
	isUpdate bool
	status   string
}

// NewAddForm creates a blank form for a new record owned by userID.
func NewAddForm(ctx context.Context, catalog services.CatalogService, userID string) *FormModel {
	f := newForm(ctx, catalog)
	f.draft = models.Book{
		BookID: shared.GenerateID(),
		UserID: userID,
	}
	return f
}

// NewUpdateForm creates a form pre-populated from book. The record's id and
// owner never change.
func NewUpdateForm(ctx context.Context, catalog services.CatalogService, book models.Book) *FormModel {
	f := newForm(ctx, catalog)
	f.draft = book
	f.isUpdate = true

	f.inputs[fieldTitle].SetValue(book.Title)
	f.inputs[fieldAuthor].SetValue(book.Author)
	f.inputs[fieldISBN].SetValue(book.ISBN)
	f.inputs[fieldPublisher].SetValue(book.Publisher)
	f.inputs[fieldYear].SetValue(book.PublicationYear)
	f.inputs[fieldGenres].SetValue(strings.Join(book.Genres, ", "))
	f.inputs[fieldSummary].SetValue(book.Summary)
	f.inputs[fieldPages].SetValue(book.NumberOfPages)
	f.inputs[fieldLanguage].SetValue(book.Language)
	return f
}

func newForm(ctx context.Context, catalog services.CatalogService) *FormModel {
	f := &FormModel{ctx: ctx, catalog: catalog}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = fieldLabels[i]
		f.inputs[i] = in
	}
	f.inputs[fieldTitle].Focus()
	return f
}

// State returns the form's current lifecycle state.
func (f *FormModel) State() FormState { return f.state }

// Status returns the last user-facing status message.
func (f *FormModel) Status() string { return f.status }

// Draft returns the working record.
func (f *FormModel) Draft() models.Book { return f.draft }

// collect copies the field inputs into the draft.
func (f *FormModel) collect() {
	f.draft.Title = strings.TrimSpace(f.inputs[fieldTitle].Value())
	f.draft.Author = strings.TrimSpace(f.inputs[fieldAuthor].Value())
	f.draft.ISBN = strings.TrimSpace(f.inputs[fieldISBN].Value())
	f.draft.Publisher = strings.TrimSpace(f.inputs[fieldPublisher].Value())
	f.draft.PublicationYear = strings.TrimSpace(f.inputs[fieldYear].Value())
	f.draft.Summary = strings.TrimSpace(f.inputs[fieldSummary].Value())
	f.draft.NumberOfPages = strings.TrimSpace(f.inputs[fieldPages].Value())
	f.draft.Language = strings.TrimSpace(f.inputs[fieldLanguage].Value())

	f.draft.Genres = nil
	for _, g := range strings.Split(f.inputs[fieldGenres].Value(), ",") {
		if g = strings.TrimSpace(g); g != "" {
			f.draft.Genres = append(f.draft.Genres, g)
		}
	}
}

// StartUpload begins the cover image upload for the file at path. While the
// upload is pending the form stays editable except for the image slot, and
// submission is refused.
func (f *FormModel) StartUpload(path string) tea.Cmd {
	if f.state != StateEditing {
		f.status = "Another operation is in progress."
		return nil
	}

	name, content, err := shared.ReadImageFile(path)
	if err != nil {
		f.status = fmt.Sprintf("Cannot read image: %v", err)
		return nil
	}

	f.state = StateUploading
	f.status = "Uploading cover image..."
	catalog := f.catalog
	ctx := f.ctx
	return func() tea.Msg {
		url, err := catalog.UploadImage(ctx, name, content)
		return imageUploadedMsg{url: url, err: err}
	}
}

// Submit validates the draft and begins the save. A submit while the cover
// upload is still pending is refused outright so a record can never be saved
// pointing at an unresolved image slot.
func (f *FormModel) Submit() tea.Cmd {
	switch f.state {
	case StateUploading:
		f.status = "Cover image upload in progress. Wait for it to finish."
		return nil
	case StateSubmitting, StateDone:
		return nil
	}

	f.collect()
	if err := f.draft.Validate(); err != nil {
		f.status = fmt.Sprintf("Cannot save: %v", err)
		return nil
	}

	f.state = StateSubmitting
	f.status = "Saving..."
	catalog := f.catalog
	ctx := f.ctx
	draft := f.draft
	isUpdate := f.isUpdate
	return func() tea.Msg {
		var msg string
		var err error
		if isUpdate {
			msg, err = catalog.Update(ctx, draft)
		} else {
			msg, err = catalog.Create(ctx, draft)
		}
		return bookSavedMsg{message: msg, err: err}
	}
}

// HandleUploadResult resolves a pending upload. Success fills the image slot;
// failure empties it. Either way the form returns to editing.
func (f *FormModel) HandleUploadResult(msg imageUploadedMsg) {
	f.state = StateEditing
	if msg.err != nil {
		f.draft.CoverImage = ""
		f.status = fmt.Sprintf("Upload failed: %v", msg.err)
		return
	}
	f.draft.CoverImage = msg.url
	f.status = "Cover image uploaded."
}

// HandleSaveResult resolves a pending submission. Failure preserves every
// field and returns to editing.
func (f *FormModel) HandleSaveResult(msg bookSavedMsg) {
	if msg.err != nil {
		f.state = StateEditing
		f.status = fmt.Sprintf("Save failed: %v", msg.err)
		return
	}
	f.state = StateDone
	f.status = msg.message
}

// cycleFocus moves the focus by delta, wrapping around the field list.
func (f *FormModel) cycleFocus(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
}

// Update routes key input into the focused field. Field edits are ignored
// entirely while the form is submitting.
func (f *FormModel) Update(msg tea.Msg) tea.Cmd {
	if f.state == StateSubmitting || f.state == StateDone {
		return nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			f.cycleFocus(1)
			return nil
		case "shift+tab", "up":
			f.cycleFocus(-1)
			return nil
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// ImagePath returns the entered cover image path.
func (f *FormModel) ImagePath() string {
	return strings.TrimSpace(f.inputs[fieldImagePath].Value())
}

// View renders the form fields with the current status line.
func (f *FormModel) View() string {
	var b strings.Builder

	title := "Add a New Book"
	if f.isUpdate {
		title = "Update Book"
	}
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n\n")

	for i, in := range f.inputs {
		cursor := "  "
		if i == f.focus {
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%s: %s\n", cursor, fieldLabels[i], in.View())
	}

	if f.draft.CoverImage != "" {
		fmt.Fprintf(&b, "\nCover: %s\n", f.draft.CoverImage)
	}

	if f.status != "" {
		b.WriteString("\n")
		switch f.state {
		case StateUploading, StateSubmitting:
			b.WriteString(styles.warn.Render(f.status))
		default:
			b.WriteString(styles.help.Render(f.status))
		}
		b.WriteString("\n")
	}

	return b.String()
}
