package catset

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

// makePatternJPEG builds a JPEG filled with 16px blocks of seeded random
// gray levels. Different seeds produce images whose difference hashes are
// far apart, so they never collide in the near-duplicate stage.
func makePatternJPEG(t *testing.T, seed int64, size, quality int) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	img := image.NewGray(image.Rect(0, 0, size, size))
	const block = 16
	for by := 0; by < size; by += block {
		for bx := 0; bx < size; bx += block {
			v := uint8(rng.Intn(256))
			for y := by; y < by+block && y < size; y++ {
				for x := bx; x < bx+block && x < size; x++ {
					img.SetGray(x, y, color.Gray{Y: v})
				}
			}
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		t.Fatalf("encode pattern jpeg: %v", err)
	}
	return buf.Bytes()
}

// makeGradientJPEG builds a smooth horizontal gradient. Re-encoding it at
// any quality keeps the difference hash essentially unchanged, which makes
// two encodings of it a reliable near-duplicate pair.
func makeGradientJPEG(t *testing.T, size, quality int) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x * 255 / (size - 1))})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		t.Fatalf("encode gradient jpeg: %v", err)
	}
	return buf.Bytes()
}

// makeAlphaPNG builds a PNG whose right half is fully transparent.
func makeAlphaPNG(t *testing.T, size int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if x < size/2 {
				img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 30, B: 30, A: 255})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{A: 0})
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode alpha png: %v", err)
	}
	return buf.Bytes()
}

func writeTestFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// stubClassifier returns a fixed prediction (or error) for every image.
type stubClassifier struct {
	pred  Prediction
	err   error
	calls int
}

func (s *stubClassifier) Classify(_ context.Context, _ image.Image) (Prediction, error) {
	s.calls++
	return s.pred, s.err
}
