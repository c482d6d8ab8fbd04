// Package catset turns raw image-crawl output into a clean cat-breed
// dataset. Given a folder of downloaded images for one breed it removes
// broken, undersized, off-topic and duplicate files, optionally normalizes
// survivors to a canonical JPEG encoding, and returns per-folder statistics
// for manifest building.
package catset

import (
	"context"
	"image"
)

// Defaults applied by Config.defaults() when the corresponding field is
// left at its zero value.
const (
	DefaultMinSide          = 128  // minimum short-side length, px
	DefaultCatThreshold     = 0.20 // minimum classifier confidence
	DefaultHammingThreshold = 6    // near-duplicate distance, out of 256 bits
	DefaultJPEGQuality      = 92
	DefaultWorkers          = 4 // concurrent folders in CleanTree
)

// Prediction is the top-1 output of an image classifier over the
// 1000-class ImageNet taxonomy.
type Prediction struct {
	Class      int     // taxonomy index of the top class
	Confidence float64 // probability of Class, in [0, 1]
}

// Classifier abstracts the "is this a cat" model. Implementations must be
// safe for concurrent use: one classifier is constructed per run and shared
// read-only across all folder workers.
type Classifier interface {
	Classify(ctx context.Context, img image.Image) (Prediction, error)
}

// RemovalReason classifies why a file was deleted from a breed folder.
type RemovalReason int

const (
	ReasonBroken RemovalReason = iota // unreadable, hash/conversion failure, undeletable
	ReasonTooSmall
	ReasonNotCat
	ReasonExactDuplicate
	ReasonNearDuplicate
)

func (r RemovalReason) String() string {
	switch r {
	case ReasonBroken:
		return "broken"
	case ReasonTooSmall:
		return "too_small"
	case ReasonNotCat:
		return "not_cat"
	case ReasonExactDuplicate:
		return "dup_exact"
	case ReasonNearDuplicate:
		return "dup_near"
	default:
		return "unknown"
	}
}

// Config holds all dependencies and policy knobs injected by the consumer.
// The zero value is usable: nil Classifier skips the is-cat stage and
// numeric fields fall back to the Default* constants.
type Config struct {
	Classifier Classifier // nil = is-cat stage passes everything through

	MinSide      int     // minimum short-side length in pixels
	CatThreshold float64 // classifier confidence required to keep an image

	ConvertJPEG   bool // re-encode survivors to canonical .jpg
	KeepOriginals bool // keep the source file after conversion
	SkipNearDup   bool // disable the perceptual-hash stage

	HammingThreshold int // near-duplicate distance over the 256-bit dHash
	JPEGQuality      int
	Workers          int // folder-level parallelism for CleanTree

	// OnRemoval is an optional audit hook invoked after every deletion
	// with the reason it was tallied under.
	OnRemoval func(path string, reason RemovalReason)
}

// defaults fills zero-value fields with sensible defaults.
func (cfg *Config) defaults() {
	if cfg.MinSide <= 0 {
		cfg.MinSide = DefaultMinSide
	}
	if cfg.CatThreshold <= 0 {
		cfg.CatThreshold = DefaultCatThreshold
	}
	if cfg.HammingThreshold <= 0 {
		cfg.HammingThreshold = DefaultHammingThreshold
	}
	if cfg.JPEGQuality <= 0 {
		cfg.JPEGQuality = DefaultJPEGQuality
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
}
