package catset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// ManifestRecord describes one kept image in the final dataset. Breed is the
// display name resolved via BreedName; BreedSlug is the folder name.
type ManifestRecord struct {
	Breed     string `json:"breed" parquet:"breed"`
	BreedSlug string `json:"breed_slug" parquet:"breed_slug"`
	Path      string `json:"path" parquet:"path"` // relative to the dataset root
	Width     int    `json:"width" parquet:"width"`
	Height    int    `json:"height" parquet:"height"`
	MD5       string `json:"md5" parquet:"md5"`
}

// Report is the machine-readable summary of one dataset build, written
// alongside the manifest.
type Report struct {
	TotalBreeds     int  `json:"total_breeds"`
	TotalImages     int  `json:"total_images"`
	MinSide         int  `json:"min_size"`
	ConvertJPEG     bool `json:"jpg_only"`
	IsCatFilter     bool `json:"is_cat_filter_enabled"`
	NearDupRemoval  bool `json:"near_dup_removal"`
	ImagesPerFolder int  `json:"images_per_breed_target,omitempty"`
}

// ScanManifest walks every breed folder under root (skipping "_" prefixed
// directories) and builds manifest records for images that still satisfy
// the minimum side length. Unprobeable or unhashable files are skipped, not
// failed: the manifest describes what is usable, it does not clean.
func ScanManifest(root string, minSide int) ([]ManifestRecord, error) {
	if minSide <= 0 {
		minSide = DefaultMinSide
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var records []ManifestRecord
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), "_") {
			continue
		}
		slug := e.Name()
		paths, err := listImages(filepath.Join(root, slug))
		if err != nil {
			continue
		}
		for _, p := range paths {
			w, h := probeSize(p)
			if min(w, h) < minSide {
				continue
			}
			digest, err := fileMD5(p)
			if err != nil {
				continue
			}
			rel, err := filepath.Rel(root, p)
			if err != nil {
				rel = p
			}
			records = append(records, ManifestRecord{
				Breed:     BreedName(slug),
				BreedSlug: slug,
				Path:      rel,
				Width:     w,
				Height:    h,
				MD5:       digest,
			})
		}
	}
	return records, nil
}

// WriteManifestCSV writes records as manifest.csv with a header row.
func WriteManifestCSV(path string, records []ManifestRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create manifest: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"breed", "breed_slug", "path", "width", "height", "md5"}); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{r.Breed, r.BreedSlug, r.Path, strconv.Itoa(r.Width), strconv.Itoa(r.Height), r.MD5}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteManifestParquet writes records as a parquet file for direct loading
// into training pipelines.
func WriteManifestParquet(path string, records []ManifestRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create manifest: %w", err)
	}

	w := parquet.NewGenericWriter[ManifestRecord](f)
	if _, err := w.Write(records); err != nil {
		f.Close()
		return fmt.Errorf("write parquet manifest: %w", err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close parquet manifest: %w", err)
	}
	return f.Close()
}

// WriteReport writes the run summary as indented JSON.
func WriteReport(path string, r Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
