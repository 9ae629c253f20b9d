package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SameerAmesara/Book-Catalogue-App/internal/models"
	tu "github.com/SameerAmesara/Book-Catalogue-App/internal/testing"
)

// writeCoverFile drops a small PNG-named file into a temp dir and returns its path.
func writeCoverFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cover.png")
	if err := os.WriteFile(path, []byte("fake image bytes"), 0644); err != nil {
		t.Fatalf("failed to write cover file: %v", err)
	}
	return path
}

func testBook(bookID, userID string) models.Book {
	return models.Book{
		BookID:          bookID,
		UserID:          userID,
		Title:           "Dune",
		Author:          "Frank Herbert",
		ISBN:            "9780441013593",
		Publisher:       "Ace Books",
		PublicationYear: "1965",
		Genres:          []string{"Science Fiction"},
		Language:        "English",
		NumberOfPages:   "412",
	}
}

func fillRequiredFields(f *FormModel) {
	f.inputs[fieldTitle].SetValue("Dune")
	f.inputs[fieldAuthor].SetValue("Frank Herbert")
}

func TestFormUploadGate(t *testing.T) {
	ctx := context.Background()

	t.Run("Submit Refused While Upload Pending", func(t *testing.T) {
		form := NewAddForm(ctx, &tu.MockCatalog{}, "user-123")
		fillRequiredFields(form)

		uploadCmd := form.StartUpload(writeCoverFile(t))
		if uploadCmd == nil {
			t.Fatal("expected an upload command")
		}

		if form.State() != StateUploading {
			t.Errorf("expected StateUploading, got %v", form.State())
		}

		if cmd := form.Submit(); cmd != nil {
			t.Error("submit should be refused while the upload is pending")
		}

		want := "Cover image upload in progress. Wait for it to finish."
		if form.Status() != want {
			t.Errorf("expected status %q, got %q", want, form.Status())
		}

		if form.State() != StateUploading {
			t.Errorf("refused submit should not change state, got %v", form.State())
		}
	})

	t.Run("Submit Proceeds After Upload Resolves", func(t *testing.T) {
		var savedCover string
		catalog := &tu.MockCatalog{
			CreateFunc: func(ctx context.Context, book models.Book) (string, error) {
				savedCover = book.CoverImage
				return "Book added successfully.", nil
			},
		}

		form := NewAddForm(ctx, catalog, "user-123")
		fillRequiredFields(form)

		uploadCmd := form.StartUpload(writeCoverFile(t))
		msg, ok := uploadCmd().(imageUploadedMsg)
		if !ok {
			t.Fatal("expected imageUploadedMsg")
		}

		form.HandleUploadResult(msg)
		if form.State() != StateEditing {
			t.Errorf("expected StateEditing after upload, got %v", form.State())
		}
		if form.Draft().CoverImage != "https://images.example.com/cover.png" {
			t.Errorf("unexpected cover url %q", form.Draft().CoverImage)
		}

		submitCmd := form.Submit()
		if submitCmd == nil {
			t.Fatal("expected a submit command after the upload resolved")
		}
		if form.State() != StateSubmitting {
			t.Errorf("expected StateSubmitting, got %v", form.State())
		}

		savedMsg, ok := submitCmd().(bookSavedMsg)
		if !ok {
			t.Fatal("expected bookSavedMsg")
		}
		form.HandleSaveResult(savedMsg)
		if form.State() != StateDone {
			t.Errorf("expected StateDone, got %v", form.State())
		}
		if savedCover != "https://images.example.com/cover.png" {
			t.Errorf("saved record carries cover %q", savedCover)
		}
	})

	t.Run("Upload Failure Empties Image Slot", func(t *testing.T) {
		catalog := &tu.MockCatalog{
			UploadFunc: func(ctx context.Context, fileName, base64Content string) (string, error) {
				return "", fmt.Errorf("image upload failed")
			},
		}
		form := NewAddForm(ctx, catalog, "user-123")
		fillRequiredFields(form)
		form.draft.CoverImage = "https://images.example.com/stale.png"

		uploadCmd := form.StartUpload(writeCoverFile(t))
		form.HandleUploadResult(uploadCmd().(imageUploadedMsg))

		if form.Draft().CoverImage != "" {
			t.Errorf("failed upload must clear the image slot, got %q", form.Draft().CoverImage)
		}
		if form.State() != StateEditing {
			t.Errorf("expected StateEditing, got %v", form.State())
		}
	})

	t.Run("Second Upload Refused While Pending", func(t *testing.T) {
		form := NewAddForm(ctx, &tu.MockCatalog{}, "user-123")
		path := writeCoverFile(t)

		if cmd := form.StartUpload(path); cmd == nil {
			t.Fatal("expected first upload to start")
		}
		if cmd := form.StartUpload(path); cmd != nil {
			t.Error("expected second upload to be refused")
		}
		if form.Status() != "Another operation is in progress." {
			t.Errorf("unexpected status %q", form.Status())
		}
	})

	t.Run("Unreadable Image Path", func(t *testing.T) {
		form := NewAddForm(ctx, &tu.MockCatalog{}, "user-123")
		if cmd := form.StartUpload(filepath.Join(t.TempDir(), "missing.png")); cmd != nil {
			t.Error("expected no upload command for a missing file")
		}
		if form.State() != StateEditing {
			t.Errorf("expected StateEditing, got %v", form.State())
		}
	})
}

func TestFormSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("Validation Failure Blocks Save", func(t *testing.T) {
		called := false
		catalog := &tu.MockCatalog{
			CreateFunc: func(ctx context.Context, book models.Book) (string, error) {
				called = true
				return "", nil
			},
		}
		form := NewAddForm(ctx, catalog, "user-123")

		if cmd := form.Submit(); cmd != nil {
			t.Error("expected no submit command for an incomplete draft")
		}
		if !strings.Contains(form.Status(), "Cannot save") {
			t.Errorf("unexpected status %q", form.Status())
		}
		if called {
			t.Error("save must not be attempted for an invalid draft")
		}
	})

	t.Run("Save Failure Preserves Fields", func(t *testing.T) {
		catalog := &tu.MockCatalog{
			CreateFunc: func(ctx context.Context, book models.Book) (string, error) {
				return "", fmt.Errorf("save failed")
			},
		}
		form := NewAddForm(ctx, catalog, "user-123")
		fillRequiredFields(form)
		form.inputs[fieldSummary].SetValue("A desert planet epic.")

		cmd := form.Submit()
		if cmd == nil {
			t.Fatal("expected a submit command")
		}
		form.HandleSaveResult(cmd().(bookSavedMsg))

		if form.State() != StateEditing {
			t.Errorf("expected StateEditing after a failed save, got %v", form.State())
		}
		if form.Draft().Summary != "A desert planet epic." {
			t.Error("failed save must preserve the draft fields")
		}
	})

	t.Run("Update Keeps Record Identity", func(t *testing.T) {
		var receivedID, receivedUser string
		catalog := &tu.MockCatalog{
			UpdateFunc: func(ctx context.Context, book models.Book) (string, error) {
				receivedID = book.BookID
				receivedUser = book.UserID
				return "Book updated successfully.", nil
			},
		}

		form := NewUpdateForm(ctx, catalog, testBook("book-42", "user-123"))
		form.inputs[fieldTitle].SetValue("Dune Messiah")

		cmd := form.Submit()
		if cmd == nil {
			t.Fatal("expected a submit command")
		}
		form.HandleSaveResult(cmd().(bookSavedMsg))

		if receivedID != "book-42" || receivedUser != "user-123" {
			t.Errorf("update changed record identity: id=%q user=%q", receivedID, receivedUser)
		}
		if form.State() != StateDone {
			t.Errorf("expected StateDone, got %v", form.State())
		}
	})
}
