package main

import (
	"image"
	"image/color"
	"math/rand"

	"github.com/google/uuid"
)

// AnimKind is the animation tag carried by a sticker. Terminal cells don't
// animate smoothly, so float and shake are rendered as a per-frame phase
// offset and the rest show up as a dock badge.
type AnimKind int

const (
	AnimNone AnimKind = iota
	AnimFloat
	AnimShake
	AnimSpin
	AnimPulse
)

func (a AnimKind) String() string {
	switch a {
	case AnimFloat:
		return "FLOAT"
	case AnimShake:
		return "SHAKE"
	case AnimSpin:
		return "SPIN"
	case AnimPulse:
		return "PULSE"
	default:
		return "NONE"
	}
}

type NoteKind int

const (
	NoteUser NoteKind = iota
	NoteReply
	NoteError
)

// Note is a sticky note on the desktop. X and Y are percentages of the
// usable desktop extent, in [0,100].
type Note struct {
	ID    string
	Title string
	Text  string
	Kind  NoteKind
	X     float64
	Y     float64
}

// Sticker is a placed image. Cells holds the thumbnail used for terminal
// rendering, computed once when the sticker is created.
type Sticker struct {
	ID    string
	Path  string
	Img   image.Image
	Cells [][]color.RGBA
	Anim  AnimKind
	X     float64
	Y     float64
}

// Board owns the note and sticker collections. All mutation goes through its
// methods; removal is copy-and-filter so a whole-collection assignment is the
// only write the render loop can ever observe.
type Board struct {
	notes    []Note
	stickers []Sticker
	rng      *rand.Rand
}

func NewBoard() *Board {
	return &Board{
		notes:    make([]Note, 0),
		stickers: make([]Sticker, 0),
	}
}

// spawn limits: fresh entities land inside the comfortably visible part of
// the desktop rather than flush against an edge.
const (
	spawnMin = 5.0
	spawnMax = 70.0
)

func (b *Board) spawnPosition() (float64, float64) {
	span := spawnMax - spawnMin
	if b.rng != nil {
		return spawnMin + b.rng.Float64()*span, spawnMin + b.rng.Float64()*span
	}
	return spawnMin + rand.Float64()*span, spawnMin + rand.Float64()*span
}

func (b *Board) Notes() []Note       { return b.notes }
func (b *Board) Stickers() []Sticker { return b.stickers }

func (b *Board) AddNote(title, text string, kind NoteKind) Note {
	x, y := b.spawnPosition()
	note := Note{
		ID:    uuid.NewString(),
		Title: title,
		Text:  text,
		Kind:  kind,
		X:     x,
		Y:     y,
	}
	b.notes = append(b.notes, note)
	return note
}

// RemoveNote is idempotent: removing an unknown id leaves the collection
// untouched.
func (b *Board) RemoveNote(id string) {
	kept := make([]Note, 0, len(b.notes))
	for _, n := range b.notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	b.notes = kept
}

func (b *Board) NoteByID(id string) (Note, bool) {
	for _, n := range b.notes {
		if n.ID == id {
			return n, true
		}
	}
	return Note{}, false
}

// SetNoteText updates a note's displayed text. Unknown ids are a no-op so an
// in-flight reveal whose note was trashed simply stops having an effect.
func (b *Board) SetNoteText(id, text string) {
	for i := range b.notes {
		if b.notes[i].ID == id {
			b.notes[i].Text = text
			return
		}
	}
}

func (b *Board) MoveNote(id string, x, y float64) {
	for i := range b.notes {
		if b.notes[i].ID == id {
			b.notes[i].X = clampPercent(x)
			b.notes[i].Y = clampPercent(y)
			return
		}
	}
}

func (b *Board) AddSticker(path string, img image.Image, cells [][]color.RGBA, anim AnimKind) Sticker {
	x, y := b.spawnPosition()
	st := Sticker{
		ID:    uuid.NewString(),
		Path:  path,
		Img:   img,
		Cells: cells,
		Anim:  anim,
		X:     x,
		Y:     y,
	}
	b.stickers = append(b.stickers, st)
	return st
}

func (b *Board) RemoveSticker(id string) {
	kept := make([]Sticker, 0, len(b.stickers))
	for _, s := range b.stickers {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	b.stickers = kept
}

func (b *Board) StickerByID(id string) (Sticker, bool) {
	for _, s := range b.stickers {
		if s.ID == id {
			return s, true
		}
	}
	return Sticker{}, false
}

func (b *Board) MoveSticker(id string, x, y float64) {
	for i := range b.stickers {
		if b.stickers[i].ID == id {
			b.stickers[i].X = clampPercent(x)
			b.stickers[i].Y = clampPercent(y)
			return
		}
	}
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
