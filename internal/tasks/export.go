package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/SameerAmesara/Book-Catalogue-App/internal/formatter"
	"github.com/SameerAmesara/Book-Catalogue-App/internal/shared"
)

// ExportOpts contains configuration for catalogue exports.
type ExportOpts struct {
	Format        string  // Export format: json, csv, markdown, txt
	OutputDir     string  // Base output directory (default: bookcat_export_{epoch})
	NumWorkers    int     // Concurrent workers (default: 5)
	RateLimit     float64 // Cover downloads per second (default: 5)
	IncludeCovers bool    // Download cover images for flat formats
}

// Export fetches the user's catalogue and writes it to disk in the requested format.
//
// Catalogue-level files (CSV, JSON, text) are written up front; per-book work -
// Markdown directories and cover image downloads - runs through a worker pool
// so cover fetches respect the rate limit and partial failures stay isolated.
// A manifest file summarizing the export is written last.
func (e *CatalogueEngine) Export(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	userID string,
	opts ExportOpts,
) (*ExportResult, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalogue service not initialized", shared.ErrServiceUnavailable)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", shared.ErrInvalidArgument)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("bookcat_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	e.sendProgress(prog, fetchingCatalogueUpdate(userID))

	books, err := e.catalog.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch catalogue: %v", shared.ErrFetch, err)
	}

	e.sendProgress(prog, catalogueFetchedUpdate(len(books)))

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &ExportResult{
		TotalBooks:      len(books),
		OutputDirectory: opts.OutputDir,
		Results:         []BookExportResult{},
	}

	switch opts.Format {
	case "csv":
		csvRes, err := formatter.WriteCSVExport(books, filepath.Join(opts.OutputDir, "catalogue"))
		if err != nil {
			return nil, fmt.Errorf("CSV export failed: %w", err)
		}
		result.CatalogueFiles = []string{csvRes.BooksFile, csvRes.MetadataFile}

	case "txt":
		txtPath, err := formatter.WriteTextExport(books, filepath.Join(opts.OutputDir, "catalogue.txt"))
		if err != nil {
			return nil, fmt.Errorf("text export failed: %w", err)
		}
		result.CatalogueFiles = []string{txtPath}

	case "markdown":
		// Per-book directories are written by the worker pool below.

	case "json":
		fallthrough
	default:
		jsonPath, err := formatter.WriteJSONExport(books, filepath.Join(opts.OutputDir, "catalogue.json"))
		if err != nil {
			return nil, fmt.Errorf("JSON export failed: %w", err)
		}
		result.CatalogueFiles = []string{jsonPath}
	}

	var jobList []BookExportJob
	for _, book := range books {
		if opts.Format == "markdown" || (opts.IncludeCovers && book.CoverImage != "") {
			jobList = append(jobList, BookExportJob{Book: book})
		}
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan BookExportJob, len(jobList))
	results := make(chan BookExportResult, len(jobList))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		for i, job := range jobList {
			select {
			case <-ctx.Done():
				close(jobs)
				return
			default:
			}

			if err := limiter.Wait(ctx); err != nil {
				close(jobs)
				return
			}

			jobs <- job
			e.sendProgress(prog, exportingBookUpdate(i+1, len(jobList), job.Book.Title))
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	var errs []string
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(jobList), res.Title, len(res.Files)))
		} else {
			result.FailedExports++
			errs = append(errs, fmt.Sprintf("%s: %v", res.BookID, res.Error))
			e.sendProgress(prog, exportFailedUpdate(completed, len(jobList), res.Title, res.Error))
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	manifest := formatter.ExportManifest{
		Format:          opts.Format,
		OutputDirectory: opts.OutputDir,
		TotalBooks:      result.TotalBooks,
		Succeeded:       result.SuccessfulExports,
		Failed:          result.FailedExports,
		Files:           result.CatalogueFiles,
		Errors:          errs,
	}
	if err := formatter.WriteExportManifest(manifest, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	e.sendProgress(prog, manifestUpdate(manifestPath))
	return result, nil
}

// exportWorker is a worker goroutine that processes books from the jobs channel.
func (e *CatalogueEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan BookExportJob,
	results chan<- BookExportResult,
	opts ExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- e.exportSingleBook(job, opts)
	}
}

// exportSingleBook writes the per-book artifacts for one job.
//
// Markdown exports get a dedicated directory with a README and downloaded
// cover; other formats only fetch the cover image into a shared covers/
// directory.
func (e *CatalogueEngine) exportSingleBook(j BookExportJob, opts ExportOpts) BookExportResult {
	result := BookExportResult{
		BookID:  j.Book.BookID,
		Title:   j.Book.Title,
		Success: false,
		Files:   []string{},
	}

	if opts.Format == "markdown" {
		outputDir := filepath.Join(opts.OutputDir, j.Book.BookID)

		mdRes, err := formatter.WriteMarkdownExport(j.Book, outputDir, j.Book.CoverImage)
		if err != nil {
			result.Error = fmt.Errorf("markdown export failed: %w", err)
			return result
		}
		result.Files = mdRes.Files
		result.Success = true
		return result
	}

	coversDir := filepath.Join(opts.OutputDir, "covers")
	if err := os.MkdirAll(coversDir, 0755); err != nil {
		result.Error = fmt.Errorf("failed to create covers directory: %w", err)
		return result
	}

	imageData, err := formatter.DownloadImage(j.Book.CoverImage)
	if err != nil {
		result.Error = fmt.Errorf("cover download failed: %w", err)
		return result
	}

	coverPath := filepath.Join(coversDir, formatter.CoverFilename(j.Book.BookID, j.Book.CoverImage))
	if err := os.WriteFile(coverPath, imageData, 0644); err != nil {
		result.Error = fmt.Errorf("failed to save cover: %w", err)
		return result
	}

	result.Files = []string{coverPath}
	result.Success = true
	return result
}
