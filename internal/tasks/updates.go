package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchCatalogue Phase = iota
	ExportBook
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case FetchCatalogue:
		return "fetch_catalogue"
	case ExportBook:
		return "export_book"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

func fetchingCatalogueUpdate(userID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchCatalogue,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching catalogue for %s...", userID),
	}
}

func catalogueFetchedUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchCatalogue,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d books", count),
		Data:    count,
	}
}

func exportingBookUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportBook,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, title),
	}
}

func exportCompletedUpdate(step, total int, title string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportBook,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, title, filesCount),
	}
}

func exportFailedUpdate(step, total int, title string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportBook,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, title, err),
	}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Manifest written: %s", path),
		Data:    path,
	}
}
