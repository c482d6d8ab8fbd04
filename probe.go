package catset

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// imageExts are the raster formats a crawler is expected to drop into a
// breed folder. Anything else in the folder is ignored, not deleted.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".webp": true,
	".gif":  true,
}

// listImages returns the image files directly inside folder, in lexical
// order. That order is the pipeline's scan order: it decides which copy of
// a duplicate pair survives, so it must stay deterministic.
func listImages(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			paths = append(paths, filepath.Join(folder, e.Name()))
		}
	}
	return paths, nil
}

// decodeImageFile fully decodes the image at path. A full decode is the
// strict validity check: it fails on truncated pixel data that a
// header-only probe would accept.
func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

// probeSize reads pixel dimensions from the image header without decoding
// pixel data. Returns (0, 0) when the file cannot be probed.
func probeSize(path string) (int, int) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0
	}
	defer f.Close()

	c, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0
	}
	return c.Width, c.Height
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
