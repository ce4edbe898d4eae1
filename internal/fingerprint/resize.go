package fingerprint

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"golang.org/x/image/draw"
)

// Preview is a re-encoded JPEG image.
type Preview struct {
	Data    []byte
	Width   int
	Height  int
	Resized bool
}

// Compress re-encodes an image as JPEG at the given quality, scaling it
// down to maxWidth when it is wider. Height follows the aspect ratio.
func Compress(data []byte, maxWidth, quality int) (Preview, error) {
	img, err := Decode(data)
	if err != nil {
		return Preview{}, err
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	resized := maxWidth > 0 && w > maxWidth
	if resized {
		h = int(float64(h) * float64(maxWidth) / float64(w))
		w = maxWidth
	}
	out, err := encodeJPEG(img, w, h, quality)
	if err != nil {
		return Preview{}, err
	}
	return Preview{Data: out, Width: w, Height: h, Resized: resized}, nil
}

// ResizeImage fits an image within maxSize on its longer side and returns
// JPEG bytes. Images that already fit are returned unchanged.
func ResizeImage(data []byte, maxSize int) ([]byte, error) {
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSize && h <= maxSize {
		return data, nil
	}
	if w > h {
		w, h = maxSize, int(float64(h)*float64(maxSize)/float64(w))
	} else {
		w, h = int(float64(w)*float64(maxSize)/float64(h)), maxSize
	}
	return encodeJPEG(img, max(w, 1), max(h, 1), jpeg.DefaultQuality)
}

func encodeJPEG(img image.Image, width, height, quality int) ([]byte, error) {
	var src image.Image = img
	if width != img.Bounds().Dx() || height != img.Bounds().Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
		src = dst
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
