package main

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	exportFontSize   = 14.0
	exportCharWidth  = 8.5
	exportLineHeight = 18.0
	exportPadding    = 16.0
)

var (
	stickyYellow = color.RGBA{R: 0xFF, G: 0xFF, B: 0x99, A: 0xFF}
	stickyBlue   = color.RGBA{R: 0x99, G: 0xCC, B: 0xFF, A: 0xFF}
	stickyRed    = color.RGBA{R: 0xFF, G: 0xAA, B: 0xAA, A: 0xFF}
)

func exportCardColor(kind NoteKind) color.RGBA {
	switch kind {
	case NoteReply:
		return stickyBlue
	case NoteError:
		return stickyRed
	default:
		return stickyYellow
	}
}

// exportNotePNG renders a note as a sticky card image. Lines are wrapped the
// same way the desktop wraps them so the file matches what was on screen.
func exportNotePNG(n Note, path string) error {
	lines := wrapText(n.Text, noteWidth-2)

	widest := len([]rune(n.Title))
	for _, line := range lines {
		if l := len([]rune(line)); l > widest {
			widest = l
		}
	}
	if widest < 8 {
		widest = 8
	}

	imageWidth := int(float64(widest)*exportCharWidth + 2*exportPadding)
	imageHeight := int(float64(len(lines)+2)*exportLineHeight + 2*exportPadding)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(color.White)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("parsing font: %w", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    exportFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	dc.SetColor(exportCardColor(n.Kind))
	dc.DrawRoundedRectangle(2, 2, float64(imageWidth)-4, float64(imageHeight)-4, 8)
	dc.Fill()
	dc.SetLineWidth(1.5)
	dc.SetColor(color.Black)
	dc.DrawRoundedRectangle(2, 2, float64(imageWidth)-4, float64(imageHeight)-4, 8)
	dc.Stroke()

	textY := exportPadding + exportLineHeight
	if n.Title != "" {
		dc.DrawString(n.Title, exportPadding, textY)
		dc.DrawLine(exportPadding, textY+4, float64(imageWidth)-exportPadding, textY+4)
		dc.Stroke()
	}
	for i, line := range lines {
		dc.DrawString(line, exportPadding, textY+float64(i+2)*exportLineHeight)
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("exporting note: %w", err)
	}
	return nil
}
