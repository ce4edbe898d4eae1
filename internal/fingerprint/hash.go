// Package fingerprint finds duplicate photos and prepares web-sized previews.
package fingerprint

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"math/bits"
	"slices"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Hashes holds the perceptual hashes of one image.
type Hashes struct {
	PHash uint64 `json:"-"`
	DHash uint64 `json:"-"`
}

// String formats both hashes as hex.
func (h Hashes) String() string {
	return fmt.Sprintf("%016x/%016x", h.PHash, h.DHash)
}

// Decode decodes any image format registered in this package.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// ComputeHashes computes pHash and dHash for encoded image data.
func ComputeHashes(data []byte) (Hashes, error) {
	img, err := Decode(data)
	if err != nil {
		return Hashes{}, err
	}
	return HashImage(img), nil
}

// HashImage computes pHash and dHash for a decoded image.
func HashImage(img image.Image) Hashes {
	return Hashes{PHash: perceptualHash(img), DHash: differenceHash(img)}
}

// HammingDistance counts differing bits.
func HammingDistance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

// Distance is the larger of the pHash and dHash distances.
func Distance(a, b Hashes) int {
	return max(HammingDistance(a.PHash, b.PHash), HammingDistance(a.DHash, b.DHash))
}

// Similar reports whether both hashes are within threshold bits.
func Similar(a, b Hashes, threshold int) bool {
	return Distance(a, b) <= threshold
}

// perceptualHash thresholds the low 8x8 DCT frequencies of a 32x32
// grayscale copy against their median, skipping the DC term.
func perceptualHash(img image.Image) uint64 {
	const size = 32
	gray := grayscale(scale(img, size, size))
	coeffs := dct2(gray, size)

	low := make([]float64, 0, 64)
	for u := range 8 {
		for v := range 8 {
			if u == 0 && v == 0 {
				continue
			}
			low = append(low, coeffs[u*size+v])
		}
	}
	low = append(low, coeffs[8*size])

	m := median(low)
	var hash uint64
	for i, c := range low {
		if c > m {
			hash |= 1 << (63 - i)
		}
	}
	return hash
}

// differenceHash compares horizontally adjacent pixels of a 9x8 grayscale copy.
func differenceHash(img image.Image) uint64 {
	const w, h = 9, 8
	gray := grayscale(scale(img, w, h))
	var hash uint64
	bit := 63
	for y := range h {
		for x := range w - 1 {
			if gray[y*w+x] > gray[y*w+x+1] {
				hash |= 1 << bit
			}
			bit--
		}
	}
	return hash
}

func scale(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// grayscale returns BT.601 luma values in row-major order.
func grayscale(img *image.RGBA) []float64 {
	b := img.Bounds()
	out := make([]float64, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			out = append(out, 0.299*float64(c.R)+0.587*float64(c.G)+0.114*float64(c.B))
		}
	}
	return out
}

// dct2 is an unnormalized 2D DCT-II of an n x n row-major matrix,
// computed as two passes of the 1D transform.
func dct2(in []float64, n int) []float64 {
	cos := make([]float64, n*n)
	for k := range n {
		for x := range n {
			cos[k*n+x] = math.Cos(math.Pi * float64(k) * (2*float64(x) + 1) / (2 * float64(n)))
		}
	}
	rows := make([]float64, n*n)
	for y := range n {
		for k := range n {
			var sum float64
			for x := range n {
				sum += in[y*n+x] * cos[k*n+x]
			}
			rows[y*n+k] = sum
		}
	}
	out := make([]float64, n*n)
	for k := range n {
		for u := range n {
			var sum float64
			for y := range n {
				sum += rows[y*n+k] * cos[u*n+y]
			}
			out[u*n+k] = sum
		}
	}
	return out
}

func median(values []float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}
