package tasks

import (
	"context"

	"github.com/SameerAmesara/Book-Catalogue-App/internal/models"
	"github.com/SameerAmesara/Book-Catalogue-App/internal/services"
)

// BookExportJob is a single book handed to an export worker.
type BookExportJob struct {
	Book models.Book
}

// BookExportResult records the outcome of exporting a single book.
type BookExportResult struct {
	BookID  string
	Title   string
	Success bool
	Files   []string
	Error   error
}

// ExportResult contains all data from a catalogue export operation.
type ExportResult struct {
	TotalBooks        int                // Books fetched from the catalogue
	SuccessfulExports int                // Per-book jobs that completed
	FailedExports     int                // Per-book jobs that failed
	OutputDirectory   string             // Where the export was written
	ManifestPath      string             // Path of the export manifest
	CatalogueFiles    []string           // Catalogue-level files (CSV, JSON, text)
	Results           []BookExportResult // Individual book results
}

// ExportEngine defines the catalogue export operation.
type ExportEngine interface {
	// Export fetches the user's catalogue and writes it to disk in the
	// requested format, downloading cover images through a rate-limited
	// worker pool.
	Export(ctx context.Context, progress chan<- ProgressUpdate, userID string, opts ExportOpts) (*ExportResult, error)
}

// CatalogueEngine implements ExportEngine against the book gateway.
type CatalogueEngine struct {
	catalog services.CatalogService
}

// NewCatalogueEngine creates a CatalogueEngine with the provided catalogue service.
func NewCatalogueEngine(catalog services.CatalogService) *CatalogueEngine {
	return &CatalogueEngine{catalog: catalog}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *CatalogueEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}
