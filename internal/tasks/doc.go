// Package tasks orchestrates catalogue export operations with real-time progress reporting.
//
// # Core Operation
//
// The [ExportEngine] interface defines a single operation:
//
//	[ExportEngine.Export] : Export a user's full catalogue to disk
//	  - Fetches every book record for the user
//	  - Writes catalogue-level files (CSV, JSON, or plain text)
//	  - Markdown exports get one directory per book with a README and cover
//	  - Cover images download through a rate-limited worker pool
//	  - A manifest file summarizes successes, failures, and output paths
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Implementation
//
// [CatalogueEngine] implements [ExportEngine] with a dependency on
// [services.CatalogService], the gateway client for book records. File
// generation lives in the formatter package; this package owns concurrency,
// rate limiting, and failure isolation.
package tasks
