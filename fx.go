package main

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"time"

	"github.com/patrickmn/go-cache"
	xdraw "golang.org/x/image/draw"
)

const (
	fxMaxDim       = 300
	fxDefaultBlock = 8
	fxMinBlock     = 1
	fxMaxBlock     = 64
)

// Pixelate runs the full effect: scale the source down to fit maxDim, crush
// it to one sample per block, blow it back up with nearest-neighbour
// sampling, and optionally tint. A nil tint is the no-tint sentinel and
// skips compositing entirely. The result depends only on the arguments.
func Pixelate(src image.Image, maxDim, block int, tint color.Color) (*image.RGBA, error) {
	if src == nil {
		return nil, fmt.Errorf("no source image")
	}
	if maxDim < 1 {
		return nil, fmt.Errorf("max dimension %d out of range", maxDim)
	}
	if block < fxMinBlock {
		return nil, fmt.Errorf("block size %d out of range", block)
	}
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("empty source image")
	}

	scale := math.Min(1, math.Min(float64(maxDim)/float64(w), float64(maxDim)/float64(h)))
	dw := int(math.Round(float64(w) * scale))
	dh := int(math.Round(float64(h) * scale))
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	// The downsample to one pixel per block is the irreversible step.
	cw := (dw + block - 1) / block
	ch := (dh + block - 1) / block
	small := image.NewRGBA(image.Rect(0, 0, cw, ch))
	xdraw.ApproxBiLinear.Scale(small, small.Bounds(), src, bounds, xdraw.Src, nil)

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), small, small.Bounds(), xdraw.Src, nil)

	if tint != nil {
		applyTint(dst, tint)
	}
	return dst, nil
}

// applyTint composites a flat tint over the opaque pixels, then multiplies
// the blocked image back on top so shading survives under the color. Both
// passes collapse into tint*pixel/255 per channel with alpha preserved.
func applyTint(img *image.RGBA, tint color.Color) {
	tr, tg, tb, _ := tint.RGBA()
	tr >>= 8
	tg >>= 8
	tb >>= 8

	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := img.PixOffset(x, y)
			a := img.Pix[i+3]
			if a == 0 {
				continue
			}
			img.Pix[i+0] = uint8(uint32(img.Pix[i+0]) * tr / 255)
			img.Pix[i+1] = uint8(uint32(img.Pix[i+1]) * tg / 255)
			img.Pix[i+2] = uint8(uint32(img.Pix[i+2]) * tb / 255)
		}
	}
}

// imageLoader decodes source images, remembering recent decodes so the FX
// studio can re-run the filter on every parameter change without paying for
// the decode each time.
type imageLoader struct {
	cache *cache.Cache
}

func newImageLoader() *imageLoader {
	return &imageLoader{cache: cache.New(30*time.Minute, time.Hour)}
}

func (l *imageLoader) Load(path string) (image.Image, error) {
	if cached, ok := l.cache.Get(path); ok {
		return cached.(image.Image), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image %s: %w", path, err)
	}
	l.cache.Set(path, img, cache.DefaultExpiration)
	return img, nil
}

// tintPalette is the FX studio's cycle of preset tints. The leading nil is
// the no-tint sentinel.
var tintPalette = []struct {
	name string
	c    color.Color
}{
	{"NONE", nil},
	{"HOT PINK", color.RGBA{R: 0xFF, G: 0x33, B: 0x99, A: 0xFF}},
	{"CYBER CYAN", color.RGBA{R: 0x33, G: 0xCC, B: 0xFF, A: 0xFF}},
	{"SLIME LIME", color.RGBA{R: 0x99, G: 0xFF, B: 0x33, A: 0xFF}},
	{"AMBER CRT", color.RGBA{R: 0xFF, G: 0xB0, B: 0x00, A: 0xFF}},
}
