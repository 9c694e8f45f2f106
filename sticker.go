package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

// thumbnailCells shrinks an image to a small grid of colors for desktop
// rendering. One cell paints two terminal columns, which roughly squares the
// aspect ratio of a character cell.
func thumbnailCells(img image.Image, cols, rows int) [][]color.RGBA {
	if img == nil || cols < 1 || rows < 1 {
		return nil
	}
	small := image.NewRGBA(image.Rect(0, 0, cols, rows))
	xdraw.ApproxBiLinear.Scale(small, small.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	cells := make([][]color.RGBA, rows)
	for y := 0; y < rows; y++ {
		row := make([]color.RGBA, cols)
		for x := 0; x < cols; x++ {
			row[x] = small.RGBAAt(x, y)
		}
		cells[y] = row
	}
	return cells
}

// savePNG writes an image to disk through a drawing context, the same
// pipeline the note export uses.
func savePNG(img image.Image, path string) error {
	if img == nil {
		return fmt.Errorf("nothing to save")
	}
	b := img.Bounds()
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.DrawImage(img, -b.Min.X, -b.Min.Y)
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
