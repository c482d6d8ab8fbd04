package catset

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// CleanTree cleans every breed folder directly under root. Folders run in
// parallel across at most cfg.Workers goroutines; a single folder is always
// owned by exactly one worker, so folder passes stay deterministic.
// Directories whose name starts with "_" (logs, scratch space) are skipped.
//
// A folder that cannot be listed is logged and skipped — one bad folder
// never aborts the batch. The returned map is keyed by folder name.
func (cfg *Config) CleanTree(ctx context.Context, root string) (map[string]CleanStats, error) {
	cfg.defaults()

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	results := make(map[string]CleanStats)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), "_") {
			continue
		}
		name := e.Name()
		g.Go(func() error {
			stats, err := cfg.CleanFolder(ctx, filepath.Join(root, name))
			if err != nil {
				slog.Warn("catset: skipping folder", "folder", name, "error", err)
				return nil
			}
			mu.Lock()
			results[name] = stats
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; Wait only fences completion

	return results, nil
}

// Aggregate sums per-folder statistics into one record.
func Aggregate(folders map[string]CleanStats) CleanStats {
	var total CleanStats
	for _, s := range folders {
		total.add(s)
	}
	return total
}
