//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads cell states into a w*h image and draws it scaled.
type GridPainter struct {
	w, h   int
	img    *ebiten.Image
	buf    []byte
	states []uint8
	pixel  *ebiten.Image
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{
		w:      w,
		h:      h,
		buf:    make([]byte, 4*w*h),
		states: make([]uint8, w*h),
	}
	gp.img = ebiten.NewImage(w, h)
	gp.pixel = ebiten.NewImage(1, 1)
	gp.pixel.Fill(color.White)
	return gp
}

// Blit colours each cell by state and draws the grid at scale pixels per cell.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, s Sounder, alive color.RGBA, scale int) {
	if len(cells) != gp.w*gp.h {
		return
	}
	CellStates(gp.states, cells, gp.w, s)
	fillPaletteRGBA(gp.buf, gp.states, Palette(alive))
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// GridLines draws one-pixel separators between cells.
func (gp *GridPainter) GridLines(dst *ebiten.Image, scale int) {
	if scale < 3 {
		return
	}
	width := float64(gp.w * scale)
	height := float64(gp.h * scale)
	for x := 0; x <= gp.w; x++ {
		gp.rect(dst, float64(x*scale), 0, 1, height, GridLine)
	}
	for y := 0; y <= gp.h; y++ {
		gp.rect(dst, 0, float64(y*scale), width, 1, GridLine)
	}
}

func (gp *GridPainter) rect(dst *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	dst.DrawImage(gp.pixel, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
