package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/anatolykoptev/go-catset"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var (
		minSide        int
		catThreshold   float64
		classifierURL  string
		convertJPEG    bool
		keepOriginals  bool
		noNearDup      bool
		hamming        int
		workers        int
		manifestKind   string
		imagesPerBreed int
	)

	cmd := &cobra.Command{
		Use:   "catset <dataset-dir>",
		Short: "Clean a crawled cat-breed image dataset",
		Long: `catset cleans every breed folder under the dataset directory: it removes
broken, undersized, non-cat and duplicate images, optionally normalizes
survivors to JPEG, and writes a manifest plus a run report.`,
		Args: cobra.ExactArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env if present (ignore errors).
			_ = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			root := args[0]

			if classifierURL == "" {
				classifierURL = os.Getenv("CATSET_CLASSIFIER_URL")
			}
			var classifier catset.Classifier
			if classifierURL != "" {
				classifier = &catset.RemoteClassifier{URL: classifierURL}
			} else {
				slog.Info("no classifier endpoint configured, is-cat filter disabled")
			}

			cfg := &catset.Config{
				Classifier:       classifier,
				MinSide:          minSide,
				CatThreshold:     catThreshold,
				ConvertJPEG:      convertJPEG,
				KeepOriginals:    keepOriginals,
				SkipNearDup:      noNearDup,
				HammingThreshold: hamming,
				Workers:          workers,
			}

			folders, err := cfg.CleanTree(cmd.Context(), root)
			if err != nil {
				return err
			}
			total := catset.Aggregate(folders)
			slog.Info("dataset cleaned",
				"folders", len(folders),
				"before", total.Before,
				"after", total.After,
				"removed", total.Removed(),
			)

			records, err := catset.ScanManifest(root, minSide)
			if err != nil {
				return err
			}
			if manifestKind == "csv" || manifestKind == "both" {
				if err := catset.WriteManifestCSV(filepath.Join(root, "manifest.csv"), records); err != nil {
					return err
				}
			}
			if manifestKind == "parquet" || manifestKind == "both" {
				if err := catset.WriteManifestParquet(filepath.Join(root, "manifest.parquet"), records); err != nil {
					return err
				}
			}

			report := catset.Report{
				TotalBreeds:     len(folders),
				TotalImages:     len(records),
				MinSide:         minSide,
				ConvertJPEG:     convertJPEG,
				IsCatFilter:     classifier != nil,
				NearDupRemoval:  !noNearDup,
				ImagesPerFolder: imagesPerBreed,
			}
			if err := catset.WriteReport(filepath.Join(root, "report.json"), report); err != nil {
				return err
			}
			slog.Info("manifest written", "images", len(records), "format", manifestKind)
			return nil
		},
	}

	cmd.Flags().IntVar(&minSide, "min-size", catset.DefaultMinSide, "minimum image side length, px")
	cmd.Flags().Float64Var(&catThreshold, "cat-threshold", catset.DefaultCatThreshold, "classifier confidence required to keep an image")
	cmd.Flags().StringVar(&classifierURL, "classifier-url", "", "is-cat inference endpoint (default: $CATSET_CLASSIFIER_URL)")
	cmd.Flags().BoolVar(&convertJPEG, "jpg-only", false, "convert kept images to .jpg")
	cmd.Flags().BoolVar(&keepOriginals, "keep-originals", false, "keep source files after conversion")
	cmd.Flags().BoolVar(&noNearDup, "no-near-dup", false, "disable near-duplicate removal")
	cmd.Flags().IntVar(&hamming, "near-dup-distance", catset.DefaultHammingThreshold, "near-duplicate Hamming distance threshold")
	cmd.Flags().IntVar(&workers, "workers", catset.DefaultWorkers, "breed folders cleaned in parallel")
	cmd.Flags().StringVar(&manifestKind, "manifest", "csv", "manifest output: csv, parquet, or both")
	cmd.Flags().IntVar(&imagesPerBreed, "images-per-breed", 0, "crawl target per breed, recorded in the report")

	return cmd
}
