package main

// Drag handling. At most one session exists at a time; a pointer-down while
// one is active is ignored (single-pointer interaction model).

type entityKind int

const (
	kindNote entityKind = iota
	kindSticker
)

// hitbox is an entity's rendered rectangle, recorded by the layout pass.
// closeX/closeY is the note's close glyph; pressing it must not arm a drag.
type hitbox struct {
	id     string
	kind   entityKind
	box    rect
	closeX int
	closeY int
}

// dragSession is ephemeral state between pointer-down and pointer-up.
// Repositioning is absolute from the origin: position = origin + (pointer -
// pointerStart), so missed motion events cannot accumulate drift.
type dragSession struct {
	id       string
	kind     entityKind
	originX  float64 // percent at pointer-down
	originY  float64
	pointerX int // cell coords at pointer-down
	pointerY int
}

// position translates the current pointer cell into the entity's new
// percentage coordinates. cols and rows are the desktop extent used to turn
// a cell delta back into percent.
func (d dragSession) position(px, py, cols, rows int) (float64, float64) {
	if cols < 2 {
		cols = 2
	}
	if rows < 2 {
		rows = 2
	}
	dx := float64(px-d.pointerX) / float64(cols-1) * 100
	dy := float64(py-d.pointerY) / float64(rows-1) * 100
	return clampPercent(d.originX + dx), clampPercent(d.originY + dy)
}

// hitTest returns the topmost entity under the pointer. Boxes are ordered
// stickers-then-notes by the layout pass, so scanning back to front keeps
// notes above stickers.
func hitTest(boxes []hitbox, px, py int) (hitbox, bool) {
	for i := len(boxes) - 1; i >= 0; i-- {
		if boxes[i].box.contains(px, py) {
			return boxes[i], true
		}
	}
	return hitbox{}, false
}

// dropInTrash tests the release point, not the dragged box, against the
// trash region.
func dropInTrash(px, py, cols, rows int) bool {
	return trashRect(cols, rows).contains(px, py)
}
