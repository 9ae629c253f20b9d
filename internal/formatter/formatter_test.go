package formatter

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SameerAmesara/Book-Catalogue-App/internal/models"
	th "github.com/SameerAmesara/Book-Catalogue-App/internal/testing"
)

func sampleBooks() []models.Book {
	return []models.Book{
		{
			BookID:          "book-1",
			UserID:          "user-123",
			Title:           "Dune",
			Author:          "Frank Herbert",
			ISBN:            "9780441013593",
			Publisher:       "Ace Books",
			PublicationYear: "1965",
			Genres:          []string{"Science Fiction", "Adventure"},
			Summary:         "A desert planet epic.",
			Language:        "English",
			NumberOfPages:   "412",
		},
		{
			BookID:          "book-2",
			UserID:          "user-123",
			Title:           "Hyperion",
			Author:          "Dan Simmons",
			ISBN:            "9780553283686",
			PublicationYear: "1989",
			Genres:          []string{"Science Fiction"},
			Language:        "English",
		},
	}
}

func TestExporters(t *testing.T) {
	books := sampleBooks()

	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(books)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "ID,Title,Author,ISBN,Publisher,Year,Genres,Language,Pages") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "book-1") {
			t.Errorf("CSV missing book ID")
		}
		if !strings.Contains(output, "Frank Herbert") {
			t.Errorf("CSV missing author")
		}
		if !strings.Contains(output, "Science Fiction; Adventure") {
			t.Errorf("CSV missing joined genres")
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		t.Run("without cover image", func(t *testing.T) {
			data, err := ExportToMarkdown(books[0], "")
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}

			output := string(data)
			if !strings.Contains(output, "# Dune") {
				t.Errorf("Markdown missing title heading")
			}
			if !strings.Contains(output, "**Author**: Frank Herbert") {
				t.Errorf("Markdown missing author line")
			}
			if !strings.Contains(output, "## Summary") {
				t.Errorf("Markdown missing summary section")
			}
			if strings.Contains(output, "![Cover]") {
				t.Errorf("Markdown should not embed a cover without an image")
			}
		})

		t.Run("with cover image", func(t *testing.T) {
			data, err := ExportToMarkdown(books[0], "cover.png")
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}
			if !strings.Contains(string(data), "![Cover](cover.png)") {
				t.Errorf("Markdown missing cover embed")
			}
		})
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(books)
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Books: 2") {
			t.Errorf("text missing count line")
		}
		if !strings.Contains(output, "1. Frank Herbert - Dune (1965)") {
			t.Errorf("text missing first entry, got: %s", output)
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(books)
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, `"book_id": "book-1"`) {
			t.Errorf("JSON missing wire-format id field, got: %s", output)
		}
		if !strings.Contains(output, `"publicationYear": "1965"`) {
			t.Errorf("JSON missing publication year field")
		}
	})

	t.Run("ToMetadataJSON", func(t *testing.T) {
		data, err := ToMetadataJSON(books)
		if err != nil {
			t.Fatalf("ToMetadataJSON failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, `"book_count": 2`) {
			t.Errorf("metadata missing book count")
		}
		if !strings.Contains(output, "Adventure") || !strings.Contains(output, "Science Fiction") {
			t.Errorf("metadata missing distinct genres, got: %s", output)
		}
		if strings.Count(output, "Science Fiction") != 1 {
			t.Errorf("genres must be distinct")
		}
	})
}

func TestCoverFilename(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://images.example.com/cover.png", "book-1.png"},
		{"https://images.example.com/cover.JPG", "book-1.jpg"},
		{"https://images.example.com/cover", "book-1.jpg"},
		{"", "book-1.jpg"},
	}

	for _, tc := range cases {
		if got := CoverFilename("book-1", tc.url); got != tc.want {
			t.Errorf("CoverFilename(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestDownloadImage(t *testing.T) {
	t.Run("EmptyURL", func(t *testing.T) {
		if _, err := DownloadImage(""); err == nil {
			t.Error("expected error for empty URL")
		}
	})

	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("image bytes"))
		}))
		defer server.Close()

		data, err := DownloadImage(server.URL + "/cover.png")
		if err != nil {
			t.Fatalf("DownloadImage failed: %v", err)
		}
		if string(data) != "image bytes" {
			t.Errorf("unexpected image payload %q", data)
		}
	})

	t.Run("ServerError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		if _, err := DownloadImage(server.URL + "/missing.png"); err == nil {
			t.Error("expected error for a failed download")
		}
	})
}

func TestWriters(t *testing.T) {
	books := sampleBooks()

	t.Run("WriteCSVExport", func(t *testing.T) {
		t.Run("WithDefaultPath", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			result, err := WriteCSVExport(books, "")
			if err != nil {
				t.Fatalf("WriteCSVExport failed: %v", err)
			}

			if result.BooksFile != "catalogue_books.csv" {
				t.Errorf("Expected books file 'catalogue_books.csv', got '%s'", result.BooksFile)
			}
			if result.MetadataFile != "catalogue_metadata.json" {
				t.Errorf("Expected metadata file 'catalogue_metadata.json', got '%s'", result.MetadataFile)
			}

			th.AssertFileExists(t, result.BooksFile)
			th.AssertFileExists(t, result.MetadataFile)

			csvContent := th.MustReadFile(t, result.BooksFile)
			if !strings.Contains(csvContent, "book-1") || !strings.Contains(csvContent, "Dune") {
				t.Errorf("CSV missing book data")
			}
		})

		t.Run("WithCustomPath", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			result, err := WriteCSVExport(books, "my_export")
			if err != nil {
				t.Fatalf("WriteCSVExport failed: %v", err)
			}

			if result.BooksFile != "my_export_books.csv" {
				t.Errorf("Expected 'my_export_books.csv', got '%s'", result.BooksFile)
			}
			th.AssertFileExists(t, result.BooksFile)
			th.AssertFileExists(t, result.MetadataFile)
		})
	})

	t.Run("WriteMarkdownExport", func(t *testing.T) {
		t.Run("WithoutCover", func(t *testing.T) {
			outputDir := filepath.Join(t.TempDir(), "book-1")

			result, err := WriteMarkdownExport(books[0], outputDir, "")
			if err != nil {
				t.Fatalf("WriteMarkdownExport failed: %v", err)
			}

			th.AssertDirExists(t, result.Directory)
			th.AssertFileExists(t, filepath.Join(outputDir, "README.md"))
			if result.CoverImage != "" {
				t.Errorf("expected no cover image, got %q", result.CoverImage)
			}
		})

		t.Run("WithCover", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("image bytes"))
			}))
			defer server.Close()

			outputDir := filepath.Join(t.TempDir(), "book-1")
			result, err := WriteMarkdownExport(books[0], outputDir, server.URL+"/cover.png")
			if err != nil {
				t.Fatalf("WriteMarkdownExport failed: %v", err)
			}

			if result.CoverImage == "" {
				t.Fatal("expected a downloaded cover image")
			}
			th.AssertFileExists(t, result.CoverImage)

			readme := th.MustReadFile(t, filepath.Join(outputDir, "README.md"))
			if !strings.Contains(readme, "![Cover](cover.png)") {
				t.Errorf("README missing cover embed")
			}
		})
	})

	t.Run("WriteTextExport", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "books.txt")

		written, err := WriteTextExport(books, path)
		if err != nil {
			t.Fatalf("WriteTextExport failed: %v", err)
		}
		if written != path {
			t.Errorf("expected %q, got %q", path, written)
		}
		th.AssertFileExists(t, written)
	})

	t.Run("WriteJSONExport", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "books.json")

		written, err := WriteJSONExport(books, path)
		if err != nil {
			t.Fatalf("WriteJSONExport failed: %v", err)
		}
		th.AssertFileExists(t, written)

		content := th.MustReadFile(t, written)
		if !strings.Contains(content, "Hyperion") {
			t.Errorf("JSON export missing book data")
		}
	})

	t.Run("WriteExportManifest", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "export_manifest.json")

		manifest := ExportManifest{
			Format:          "csv",
			OutputDirectory: "out",
			TotalBooks:      2,
			Succeeded:       1,
			Failed:          1,
			Files:           []string{"out/catalogue_books.csv"},
			Errors:          []string{"book-2: fetch failed"},
		}

		if err := WriteExportManifest(manifest, path); err != nil {
			t.Fatalf("WriteExportManifest failed: %v", err)
		}

		content := th.MustReadFile(t, path)
		if !strings.Contains(content, `"format": "csv"`) {
			t.Errorf("manifest missing format")
		}
		if !strings.Contains(content, `"completed_at"`) {
			t.Errorf("manifest missing completion timestamp")
		}
	})
}
