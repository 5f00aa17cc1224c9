//go:build ebiten

package ui

import (
	"lifetones/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// NoteLabeler names the note each living cell maps to.
type NoteLabeler interface {
	NoteNameAt(x, y int) (string, bool)
}

// Overlay draws grid lines and note labels on top of the cells.
type Overlay struct {
	notes     NoteLabeler
	painter   *render.GridPainter
	scale     int
	showGrid  bool
	showNotes bool
}

// NewOverlay constructs an overlay with both layers enabled.
func NewOverlay(notes NoteLabeler, painter *render.GridPainter, scale int) *Overlay {
	return &Overlay{notes: notes, painter: painter, scale: scale, showGrid: true, showNotes: true}
}

// Update toggles layers: G for grid lines, N for note labels.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.showGrid = !o.showGrid
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		o.showNotes = !o.showNotes
	}
}

// ShowNotes reports whether note labels are drawn.
func (o *Overlay) ShowNotes() bool { return o.showNotes }

// ShowGrid reports whether grid lines are drawn.
func (o *Overlay) ShowGrid() bool { return o.showGrid }

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.showGrid {
		o.painter.GridLines(screen, o.scale)
	}
	if !o.showNotes || o.scale < noteMinScale {
		return
	}
	face := basicfont.Face7x13
	w, h := o.painter.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			name, ok := o.notes.NoteNameAt(x, y)
			if !ok {
				continue
			}
			b := text.BoundString(face, name)
			cx := x*o.scale + (o.scale-b.Dx())/2
			cy := y*o.scale + (o.scale+b.Dy())/2
			text.Draw(screen, name, face, cx, cy, render.NoteText)
		}
	}
}

// Labels need room for two 7px glyphs.
const noteMinScale = 16
