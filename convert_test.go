package catset

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"
)

func TestApplyOrientation(t *testing.T) {
	t.Parallel()

	// 2×1 source: red at (0,0), blue at (1,0).
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	src.SetNRGBA(0, 0, red)
	src.SetNRGBA(1, 0, blue)

	tests := []struct {
		name        string
		orientation int
		wantW       int
		wantH       int
		redAt       image.Point
	}{
		{name: "upright untouched", orientation: 1, wantW: 2, wantH: 1, redAt: image.Pt(0, 0)},
		{name: "flip horizontal", orientation: 2, wantW: 2, wantH: 1, redAt: image.Pt(1, 0)},
		{name: "rotate 180", orientation: 3, wantW: 2, wantH: 1, redAt: image.Pt(1, 0)},
		{name: "flip vertical", orientation: 4, wantW: 2, wantH: 1, redAt: image.Pt(0, 0)},
		{name: "transpose", orientation: 5, wantW: 1, wantH: 2, redAt: image.Pt(0, 0)},
		{name: "rotate 90 cw", orientation: 6, wantW: 1, wantH: 2, redAt: image.Pt(0, 0)},
		{name: "transverse", orientation: 7, wantW: 1, wantH: 2, redAt: image.Pt(0, 1)},
		{name: "rotate 270 cw", orientation: 8, wantW: 1, wantH: 2, redAt: image.Pt(0, 1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := applyOrientation(src, tc.orientation)
			b := got.Bounds()
			if b.Dx() != tc.wantW || b.Dy() != tc.wantH {
				t.Fatalf("dims = %dx%d, want %dx%d", b.Dx(), b.Dy(), tc.wantW, tc.wantH)
			}
			r, _, _, _ := got.At(tc.redAt.X, tc.redAt.Y).RGBA()
			if r>>8 != 255 {
				t.Errorf("red pixel not at %v", tc.redAt)
			}
		})
	}
}

func TestApplyOrientationOutOfRange(t *testing.T) {
	t.Parallel()

	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for _, o := range []int{0, -1, 9, 100} {
		if got := applyOrientation(src, o); got != src {
			t.Errorf("orientation %d: image was transformed, want passthrough", o)
		}
	}
}

func TestExifOrientationNoMetadata(t *testing.T) {
	t.Parallel()

	if got := exifOrientation(makePatternJPEG(t, 7, 64, 90)); got != 1 {
		t.Errorf("orientation without EXIF = %d, want 1", got)
	}
	if got := exifOrientation(nil); got != 1 {
		t.Errorf("orientation of empty data = %d, want 1", got)
	}
	if got := exifOrientation([]byte("garbage")); got != 1 {
		t.Errorf("orientation of garbage = %d, want 1", got)
	}
}

// Transparent regions must come out white after conversion, since JPEG has
// no alpha channel.
func TestReencodeJPEGFlattensAlpha(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeTestFile(t, dir, "half.png", makeAlphaPNG(t, 64))
	dst := filepath.Join(dir, "half.jpg")

	cfg := &Config{}
	cfg.defaults()
	if err := cfg.reencodeJPEG(src, dst); err != nil {
		t.Fatalf("reencodeJPEG: %v", err)
	}

	img, err := decodeImageFile(dst)
	if err != nil {
		t.Fatalf("decode converted file: %v", err)
	}
	// Sample deep inside the transparent half; JPEG is lossy, so allow a
	// small deviation from pure white.
	r, g, b, _ := img.At(56, 32).RGBA()
	for name, v := range map[string]uint32{"r": r >> 8, "g": g >> 8, "b": b >> 8} {
		if v < 240 {
			t.Errorf("transparent region channel %s = %d, want near 255", name, v)
		}
	}
	// And the opaque half keeps its color.
	r, _, _, _ = img.At(8, 32).RGBA()
	if r>>8 < 150 {
		t.Errorf("opaque region lost its red channel: %d", r>>8)
	}
}

func TestReencodeJPEGRejectsGarbage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeTestFile(t, dir, "bad.png", []byte("not an image"))
	dst := filepath.Join(dir, "bad.jpg")

	cfg := &Config{}
	cfg.defaults()
	if err := cfg.reencodeJPEG(src, dst); err == nil {
		t.Fatal("expected error for undecodable input")
	}
	if fileExists(dst) {
		t.Error("failed conversion left a partial output file")
	}
}
