package main

import (
	"math"
	"strings"
)

// Desktop geometry is computed from board state alone so hit-testing and
// movement math share one source of truth with the renderer.

type rect struct {
	x, y, w, h int
}

func (r rect) contains(px, py int) bool {
	return px >= r.x && px < r.x+r.w && py >= r.y && py < r.y+r.h
}

const (
	noteWidth    = 24
	noteBodyMax  = 8
	stickerCols  = 12
	stickerRows  = 6
	trashWidth   = 11
	trashHeight  = 4
	dockReserved = 2 // dock line + status line
)

// desktopSize returns the drawable region of the window, keeping the dock
// and status line out of entity space.
func desktopSize(width, height int) (int, int) {
	rows := height - dockReserved
	if rows < 1 {
		rows = 1
	}
	if width < 1 {
		width = 1
	}
	return width, rows
}

func noteRect(n Note, cols, rows int) rect {
	lines := wrapText(n.Text, noteWidth-2)
	bh := len(lines) + 2
	if bh > noteBodyMax+2 {
		bh = noteBodyMax + 2
	}
	return placeRect(n.X, n.Y, noteWidth, bh, cols, rows)
}

func stickerRect(s Sticker, cols, rows, phase int) rect {
	w, h := stickerCols, stickerRows
	if len(s.Cells) > 0 {
		h = len(s.Cells)
		w = len(s.Cells[0]) * 2 // each cell paints two terminal columns
	}
	r := placeRect(s.X, s.Y, w, h, cols, rows)
	switch s.Anim {
	case AnimFloat:
		r.y += phase % 2
	case AnimShake:
		r.x += phase % 2
	}
	return r
}

// trashRect anchors the drop zone to the bottom-right of the desktop.
func trashRect(cols, rows int) rect {
	x := cols - trashWidth - 1
	y := rows - trashHeight - 1
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return rect{x: x, y: y, w: trashWidth, h: trashHeight}
}

// placeRect maps percentage coordinates onto the cell grid such that 0% is
// flush left/top and 100% flush right/bottom with the box fully visible.
func placeRect(xPct, yPct float64, w, h, cols, rows int) rect {
	maxX := cols - w
	maxY := rows - h
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}
	px := int(math.Round(xPct / 100 * float64(maxX)))
	py := int(math.Round(yPct / 100 * float64(maxY)))
	return rect{x: px, y: py, w: w, h: h}
}

// wrapText breaks s into display lines no wider than width runes, splitting
// on spaces where possible. Explicit newlines are honored.
func wrapText(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	var out []string
	for _, para := range strings.Split(s, "\n") {
		runes := []rune(para)
		if len(runes) == 0 {
			out = append(out, "")
			continue
		}
		for len(runes) > 0 {
			if len(runes) <= width {
				out = append(out, string(runes))
				break
			}
			cut := width
			for i := width; i > 0; i-- {
				if runes[i] == ' ' {
					cut = i
					break
				}
			}
			out = append(out, string(runes[:cut]))
			runes = runes[cut:]
			for len(runes) > 0 && runes[0] == ' ' {
				runes = runes[1:]
			}
		}
	}
	if len(out) == 0 {
		out = []string{""}
	}
	return out
}
