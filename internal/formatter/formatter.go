// package formatter provides functions to export book catalogue data to various formats (CSV, JSON, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/SameerAmesara/Book-Catalogue-App/internal/models"
)

// ExportToCSV converts a book catalogue to CSV format with columns: ID, Title, Author, ISBN, Publisher, Year, Genres, Language, Pages
func ExportToCSV(books []models.Book) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Author", "ISBN", "Publisher", "Year", "Genres", "Language", "Pages"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, book := range books {
		record := []string{
			book.BookID,
			book.Title,
			book.Author,
			book.ISBN,
			book.Publisher,
			book.PublicationYear,
			strings.Join(book.Genres, "; "),
			book.Language,
			book.NumberOfPages,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts a book catalogue to indented JSON.
func ExportToJSON(books []models.Book) ([]byte, error) {
	data, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal catalogue: %w", err)
	}
	return data, nil
}

// ExportToMarkdown converts a single book record to Markdown with an optional local cover image
func ExportToMarkdown(book models.Book, imageFilename string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", book.Title))

	if imageFilename != "" {
		buf.WriteString(fmt.Sprintf("![Cover](%s)\n\n", imageFilename))
	}

	buf.WriteString(fmt.Sprintf("**Author**: %s\n", book.Author))
	if book.ISBN != "" {
		buf.WriteString(fmt.Sprintf("**ISBN**: %s\n", book.ISBN))
	}
	if book.Publisher != "" {
		buf.WriteString(fmt.Sprintf("**Publisher**: %s\n", book.Publisher))
	}
	if book.PublicationYear != "" {
		buf.WriteString(fmt.Sprintf("**Published**: %s\n", book.PublicationYear))
	}
	if len(book.Genres) > 0 {
		buf.WriteString(fmt.Sprintf("**Genres**: %s\n", strings.Join(book.Genres, ", ")))
	}
	if book.Language != "" {
		buf.WriteString(fmt.Sprintf("**Language**: %s\n", book.Language))
	}
	if book.NumberOfPages != "" {
		buf.WriteString(fmt.Sprintf("**Pages**: %s\n", book.NumberOfPages))
	}

	if book.Summary != "" {
		buf.WriteString(fmt.Sprintf("\n## Summary\n\n%s\n", book.Summary))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a book catalogue to plain text format
func ExportToText(books []models.Book) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Books: %d\n\n", len(books)))

	for i, book := range books {
		yearPart := ""
		if book.PublicationYear != "" {
			yearPart = fmt.Sprintf(" (%s)", book.PublicationYear)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s\n", i+1, book.Author, book.Title, yearPart))
	}

	return buf.Bytes(), nil
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// CoverFilename derives a local filename for a book's cover from its remote URL.
// Falls back to .jpg when the URL carries no usable extension.
func CoverFilename(base, imageURL string) string {
	ext := strings.ToLower(path.Ext(imageURL))
	switch ext {
	case ".png", ".jpg", ".jpeg":
	default:
		ext = ".jpg"
	}
	return base + ext
}

// CatalogueMetadata summarizes an exported catalogue.
type CatalogueMetadata struct {
	BookCount  int       `json:"book_count"`
	Genres     []string  `json:"genres,omitempty"`
	Languages  []string  `json:"languages,omitempty"`
	ExportedAt time.Time `json:"exported_at"`
}

// ToMetadataJSON generates a JSON summary of the catalogue (distinct genres and languages, no records)
func ToMetadataJSON(books []models.Book) ([]byte, error) {
	meta := CatalogueMetadata{
		BookCount:  len(books),
		ExportedAt: time.Now().UTC(),
	}

	genres := map[string]bool{}
	languages := map[string]bool{}
	for _, book := range books {
		for _, g := range book.Genres {
			genres[g] = true
		}
		if book.Language != "" {
			languages[book.Language] = true
		}
	}
	for g := range genres {
		meta.Genres = append(meta.Genres, g)
	}
	for l := range languages {
		meta.Languages = append(meta.Languages, l)
	}
	sort.Strings(meta.Genres)
	sort.Strings(meta.Languages)

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return data, nil
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	BooksFile    string
	MetadataFile string
}

// WriteCSVExport exports a catalogue to CSV format with an accompanying metadata JSON file.
//
// Defaults to "catalogue" as the base filename & creates {base}_books.csv and {base}_metadata.json
func WriteCSVExport(books []models.Book, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = "catalogue"
	}

	csvData, err := ExportToCSV(books)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	booksFile := baseFilepath + "_books.csv"
	if err := os.WriteFile(booksFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(books)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		BooksFile:    booksFile,
		MetadataFile: metadataFile,
	}, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory  string
	Files      []string
	CoverImage string
}

// WriteMarkdownExport exports a single book to Markdown format in a dedicated directory.
//
// Directory name defaults to the book ID.
// The imageURL parameter is optional - if provided, attempts to download the cover image.
// Creates a directory structure: {dir}/README.md and optionally {dir}/cover{ext}
func WriteMarkdownExport(book models.Book, outputDir string, imageURL string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = book.BookID
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var coverImageFilename string
	if imageURL != "" {
		imageData, err := DownloadImage(imageURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to download cover image: %v\n", err)
		} else {
			coverImageFilename = CoverFilename("cover", imageURL)
			coverImagePath := fmt.Sprintf("%s/%s", outputDir, coverImageFilename)
			if err := os.WriteFile(coverImagePath, imageData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save cover image: %v\n", err)
				coverImageFilename = ""
			} else {
				result.CoverImage = coverImagePath
				result.Files = append(result.Files, coverImagePath)
			}
		}
	}

	mdData, err := ExportToMarkdown(book, coverImageFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

// WriteTextExport exports a catalogue to plain text format.
//
// Defaults to catalogue.txt as the filename.
func WriteTextExport(books []models.Book, filepath string) (string, error) {
	if filepath == "" {
		filepath = "catalogue.txt"
	}

	textData, err := ExportToText(books)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}

// WriteJSONExport exports a catalogue to a single JSON file.
//
// Defaults to catalogue.json as the filename.
func WriteJSONExport(books []models.Book, filepath string) (string, error) {
	if filepath == "" {
		filepath = "catalogue.json"
	}

	data, err := ExportToJSON(books)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON file: %w", err)
	}

	return filepath, nil
}

// ExportManifest summarizes a completed catalogue export for the manifest file.
type ExportManifest struct {
	Format          string    `json:"format"`
	OutputDirectory string    `json:"output_directory"`
	TotalBooks      int       `json:"total_books"`
	Succeeded       int       `json:"succeeded"`
	Failed          int       `json:"failed"`
	Files           []string  `json:"files,omitempty"`
	Errors          []string  `json:"errors,omitempty"`
	CompletedAt     time.Time `json:"completed_at"`
}

// WriteExportManifest writes the export summary JSON to the given path.
func WriteExportManifest(manifest ExportManifest, filepath string) error {
	manifest.CompletedAt = time.Now().UTC()

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}
