package main

import (
	"context"
	"sync"

	"github.com/urfave/cli/v3"

	"github.com/SameerAmesara/Book-Catalogue-App/internal/tasks"
)

// ExportRun exports the signed-in user's catalogue to disk, streaming worker
// progress to the terminal as it goes.
func (r *Runner) ExportRun(ctx context.Context, cmd *cli.Command) error {
	user, err := r.requireUser()
	if err != nil {
		return err
	}

	opts := tasks.ExportOpts{
		Format:        cmd.String("format"),
		OutputDir:     cmd.String("output"),
		NumWorkers:    cmd.Int("workers"),
		RateLimit:     cmd.Float64("rate"),
		IncludeCovers: cmd.Bool("covers"),
	}

	r.logger.Info("starting catalogue export", "format", opts.Format)

	progress := make(chan tasks.ProgressUpdate, 64)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := r.engine.Export(ctx, progress, user.ID, opts)
	close(progress)
	wg.Wait()
	if err != nil {
		return err
	}

	r.writePlainHeader("Export complete")
	r.writePlain("Books: %d\n", result.TotalBooks)
	if result.SuccessfulExports > 0 || result.FailedExports > 0 {
		r.writePlain("Succeeded: %d  Failed: %d\n", result.SuccessfulExports, result.FailedExports)
	}
	r.writePlain("Output: %s\n", result.OutputDirectory)
	r.writePlain("Manifest: %s\n", result.ManifestPath)
	return nil
}
