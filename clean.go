package catset

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// canonicalExt is the extension every kept image converges to when
// conversion is enabled.
const canonicalExt = ".jpg"

// removeFile is a seam so tests can inject deletion failures.
var removeFile = os.Remove

// CleanStats are the aggregate counters for one breed folder's cleaning run.
// Every input file is accounted for exactly once:
//
//	Before == After + RemovedSmall + RemovedBroken + RemovedNotCat +
//	          RemovedDupExact + RemovedDupNear
type CleanStats struct {
	Before          int `json:"before"`
	RemovedSmall    int `json:"removed_small"`
	RemovedBroken   int `json:"removed_broken"`
	RemovedNotCat   int `json:"removed_notcat"`
	RemovedDupExact int `json:"removed_dup_md5"`
	RemovedDupNear  int `json:"removed_dup_phash"`
	After           int `json:"after"`
}

// Removed is the total number of deleted files across all reasons.
func (s CleanStats) Removed() int {
	return s.RemovedSmall + s.RemovedBroken + s.RemovedNotCat +
		s.RemovedDupExact + s.RemovedDupNear
}

// Balanced reports whether the accounting invariant holds.
func (s CleanStats) Balanced() bool {
	return s.Before == s.After+s.Removed()
}

func (s *CleanStats) tally(reason RemovalReason) {
	switch reason {
	case ReasonTooSmall:
		s.RemovedSmall++
	case ReasonNotCat:
		s.RemovedNotCat++
	case ReasonExactDuplicate:
		s.RemovedDupExact++
	case ReasonNearDuplicate:
		s.RemovedDupNear++
	default:
		s.RemovedBroken++
	}
}

func (s *CleanStats) add(o CleanStats) {
	s.Before += o.Before
	s.RemovedSmall += o.RemovedSmall
	s.RemovedBroken += o.RemovedBroken
	s.RemovedNotCat += o.RemovedNotCat
	s.RemovedDupExact += o.RemovedDupExact
	s.RemovedDupNear += o.RemovedDupNear
	s.After += o.After
}

// CleanFolder runs the full cleaning pipeline over one breed folder and
// returns its statistics. Stages run in a fixed order — validity/size,
// is-cat, exact dedup, near dedup — each over the previous stage's
// survivors, in directory-scan (lexical) order.
//
// Per-file failures never abort the folder: unprocessable files are deleted
// and tallied. The only returned error is a failure to list the folder;
// checking that the folder exists is the caller's job.
func (cfg *Config) CleanFolder(ctx context.Context, folder string) (CleanStats, error) {
	cfg.defaults()

	var stats CleanStats
	paths, err := listImages(folder)
	if err != nil {
		return stats, err
	}
	stats.Before = len(paths)

	// Stage 1: validity, size, canonical-format conversion.
	kept := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := decodeImageFile(p); err != nil {
			cfg.discard(p, ReasonBroken, &stats)
			continue
		}
		// Second, more permissive decode path: a header-only probe catches
		// files whose header parses but whose pixel data is truncated for
		// one decoder and not the other.
		w, h := probeSize(p)
		if w == 0 || h == 0 || min(w, h) < cfg.MinSide {
			cfg.discard(p, ReasonTooSmall, &stats)
			continue
		}
		if cfg.ConvertJPEG {
			q, ok := cfg.normalize(p, &stats)
			if !ok {
				continue
			}
			p = q
		}
		kept = append(kept, p)
	}

	// Stage 2: is-cat classification.
	if cfg.Classifier == nil {
		slog.Debug("catset: no classifier configured, is-cat stage is permissive", "folder", folder)
	} else {
		survivors := make([]string, 0, len(kept))
		for _, p := range kept {
			img, err := decodeImageFile(p)
			if err != nil {
				cfg.discard(p, ReasonBroken, &stats)
				continue
			}
			if cfg.isCat(ctx, img, p) {
				survivors = append(survivors, p)
			} else {
				cfg.discard(p, ReasonNotCat, &stats)
			}
		}
		kept = survivors
	}

	// Stage 3: exact duplicates, first seen in scan order wins.
	seen := make(map[string]string, len(kept))
	unique := make([]string, 0, len(kept))
	for _, p := range kept {
		digest, err := fileMD5(p)
		if err != nil {
			cfg.discard(p, ReasonBroken, &stats)
			continue
		}
		if _, dup := seen[digest]; dup {
			cfg.discard(p, ReasonExactDuplicate, &stats)
			continue
		}
		seen[digest] = p
		unique = append(unique, p)
	}

	// Stage 4: near duplicates via perceptual hashing.
	final := unique
	if !cfg.SkipNearDup {
		index := &phashIndex{threshold: cfg.HammingThreshold}
		final = make([]string, 0, len(unique))
		for _, p := range unique {
			hash, err := filePerceptualHash(p)
			if err != nil {
				cfg.discard(p, ReasonBroken, &stats)
				continue
			}
			if index.seen(hash) {
				cfg.discard(p, ReasonNearDuplicate, &stats)
				continue
			}
			final = append(final, p)
		}
	}

	stats.After = len(final)
	slog.Info("catset: folder cleaned",
		"folder", folder,
		"before", stats.Before,
		"after", stats.After,
		"small", stats.RemovedSmall,
		"broken", stats.RemovedBroken,
		"notcat", stats.RemovedNotCat,
		"dup_md5", stats.RemovedDupExact,
		"dup_phash", stats.RemovedDupNear,
	)
	return stats, nil
}

// normalize re-encodes p into its canonical .jpg sibling when needed and
// returns the surviving path. ok is false when the file was discarded.
// A file that already carries a canonical extension and whose .jpg sibling
// exists is left untouched, which makes repeated runs idempotent.
func (cfg *Config) normalize(p string, stats *CleanStats) (string, bool) {
	ext := strings.ToLower(filepath.Ext(p))
	out := strings.TrimSuffix(p, filepath.Ext(p)) + canonicalExt
	if (ext == ".jpg" || ext == ".jpeg") && fileExists(out) {
		return p, true
	}

	// A .jpg sibling that exists at this point was not produced from p
	// (say, a distinct foo.jpg next to foo.png); divert the conversion
	// instead of clobbering it.
	if out != p && fileExists(out) {
		out = nextFreePath(out)
	}

	if err := cfg.reencodeJPEG(p, out); err != nil {
		slog.Debug("catset: conversion failed", "path", p, "error", err)
		cfg.discard(p, ReasonBroken, stats)
		return "", false
	}
	if !cfg.KeepOriginals && out != p {
		if err := removeFile(p); err != nil {
			// Best effort: a stale original does not fail the candidate.
			slog.Warn("catset: could not delete original after conversion", "path", p, "error", err)
		}
	}
	return out, true
}

// nextFreePath returns the first "name_N.jpg" variant of path that does not
// exist yet.
func nextFreePath(path string) string {
	base := strings.TrimSuffix(path, canonicalExt)
	for i := 1; ; i++ {
		cand := fmt.Sprintf("%s_%d%s", base, i, canonicalExt)
		if !fileExists(cand) {
			return cand
		}
	}
}

// discard deletes a rejected file and tallies it under reason. A failed
// delete leaves the file on disk; it still has to be accounted for exactly
// once, so it is tallied under the corruption class instead.
func (cfg *Config) discard(path string, reason RemovalReason, stats *CleanStats) {
	if err := removeFile(path); err != nil {
		slog.Warn("catset: could not delete file", "path", path, "reason", reason.String(), "error", err)
		reason = ReasonBroken
	}
	stats.tally(reason)
	if cfg.OnRemoval != nil {
		cfg.OnRemoval(path, reason)
	}
}
