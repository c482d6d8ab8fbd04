package catset

import (
	"context"
	"image"
	"log/slog"
)

// ImageNet class indices 281–285 are the domestic cat range
// (tabby, tiger cat, Persian, Siamese, Egyptian cat).
const (
	catClassFirst = 281
	catClassLast  = 285
)

// isCat applies the acceptance policy to one image: the classifier's top
// class must fall inside the ImageNet cat range with confidence at or above
// CatThreshold. A classifier call that errors yields no acceptable
// prediction, so the image is rejected.
func (cfg *Config) isCat(ctx context.Context, img image.Image, path string) bool {
	pred, err := cfg.Classifier.Classify(ctx, img)
	if err != nil {
		slog.Debug("catset: classifier error", "path", path, "error", err.Error())
		return false
	}
	return pred.Class >= catClassFirst && pred.Class <= catClassLast &&
		pred.Confidence >= cfg.CatThreshold
}
