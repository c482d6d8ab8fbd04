package catset

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"

	xdraw "golang.org/x/image/draw"
)

// reencodeJPEG rewrites the image at src into a canonical JPEG at dst:
// EXIF orientation is baked into the pixels, any alpha channel is flattened
// onto a white background, and the result is encoded at cfg.JPEGQuality.
// src and dst may name the same file.
func (cfg *Config) reencodeJPEG(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}

	img = applyOrientation(img, exifOrientation(data))
	img = flattenWhite(img)

	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: cfg.JPEGQuality}); err != nil {
		f.Close()
		os.Remove(dst)
		return err
	}
	return f.Close()
}

// flattenWhite composites the image over an opaque white background.
// Opaque inputs come out pixel-identical; translucent PNG/GIF inputs lose
// their alpha channel the way the JPEG target requires.
func flattenWhite(img image.Image) image.Image {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Over)
	return dst
}

// applyOrientation returns img with the given EXIF orientation baked in,
// so the stored pixels are upright and the tag can be dropped.
func applyOrientation(img image.Image, orientation int) image.Image {
	if orientation <= orientUpright || orientation > orientMax {
		return img
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	var dst *image.NRGBA
	if orientation >= orientTranspose {
		// 5–8 swap the axes.
		dst = image.NewNRGBA(image.Rect(0, 0, h, w))
	} else {
		dst = image.NewNRGBA(image.Rect(0, 0, w, h))
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.At(b.Min.X+x, b.Min.Y+y)
			switch orientation {
			case orientFlipH:
				dst.Set(w-1-x, y, c)
			case orientRotate180:
				dst.Set(w-1-x, h-1-y, c)
			case orientFlipV:
				dst.Set(x, h-1-y, c)
			case orientTranspose:
				dst.Set(y, x, c)
			case orientRotate90:
				dst.Set(h-1-y, x, c)
			case orientTransverse:
				dst.Set(h-1-y, w-1-x, c)
			case orientRotate270:
				dst.Set(y, w-1-x, c)
			}
		}
	}
	return dst
}
