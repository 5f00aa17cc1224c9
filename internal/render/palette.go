package render

import (
	"image/color"

	"lifetones/pkg/sonify"
)

// Cell states used as palette indexes.
const (
	StateDead uint8 = iota
	StateAlive
	StateSounding
)

var (
	Background  = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	GridLine    = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	DeadCell    = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	LivingCell  = color.RGBA{R: 255, G: 255, B: 100, A: 255}
	PlayingCell = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	NoteText    = color.RGBA{A: 255}
	PanelFill   = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	PanelBorder = color.RGBA{R: 80, G: 80, B: 80, A: 255}
)

// Warm colours for bright scales, cool ones for dark scales.
var scaleColors = map[sonify.ScaleID]color.RGBA{
	sonify.Major:      {R: 255, G: 215, A: 255},
	sonify.Ionian:     {R: 255, G: 200, B: 50, A: 255},
	sonify.Lydian:     {R: 255, G: 165, A: 255},
	sonify.Mixolydian: {R: 255, G: 140, A: 255},

	sonify.Minor:         {R: 100, G: 149, B: 237, A: 255},
	sonify.NaturalMinor:  {R: 70, G: 130, B: 180, A: 255},
	sonify.HarmonicMinor: {R: 65, G: 105, B: 225, A: 255},
	sonify.MelodicMinor:  {R: 72, G: 61, B: 139, A: 255},
	sonify.Aeolian:       {R: 95, G: 158, B: 160, A: 255},
	sonify.Dorian:        {R: 123, G: 104, B: 238, A: 255},
	sonify.Phrygian:      {R: 106, G: 90, B: 205, A: 255},
	sonify.Locrian:       {R: 25, G: 25, B: 112, A: 255},

	sonify.Pentatonic:      {R: 60, G: 179, B: 113, A: 255},
	sonify.MajorPentatonic: {R: 50, G: 205, B: 50, A: 255},
	sonify.MinorPentatonic: {R: 46, G: 139, B: 87, A: 255},
	sonify.Blues:           {R: 30, G: 144, B: 255, A: 255},

	sonify.Chromatic:           {R: 220, G: 20, B: 60, A: 255},
	sonify.WholeTone:           {R: 255, G: 99, B: 71, A: 255},
	sonify.HalfWholeDiminished: {R: 186, G: 85, B: 211, A: 255},
	sonify.WholeHalfDiminished: {R: 138, G: 43, B: 226, A: 255},
	sonify.BebopDominant:       {R: 199, G: 21, B: 133, A: 255},
	sonify.BebopMajor:          {R: 255, G: 105, B: 180, A: 255},
	sonify.HarmonicMajor:       {R: 255, G: 69, A: 255},
	sonify.HungarianMinor:      {R: 148, B: 211, A: 255},
}

// ScaleColor returns the live-cell colour for a scale.
func ScaleColor(id sonify.ScaleID) color.RGBA {
	if c, ok := scaleColors[id]; ok {
		return c
	}
	return LivingCell
}

// Palette returns the state palette for living cells drawn in alive.
func Palette(alive color.RGBA) []color.RGBA {
	return []color.RGBA{StateDead: DeadCell, StateAlive: alive, StateSounding: PlayingCell}
}

// Sounder reports cells that triggered a note this tick.
type Sounder interface {
	IsSounding(x, y int) bool
}

// CellStates writes a palette index per cell into dst.
func CellStates(dst, cells []uint8, w int, s Sounder) {
	for i, c := range cells {
		switch {
		case c == 0:
			dst[i] = StateDead
		case s != nil && s.IsSounding(i%w, i/w):
			dst[i] = StateSounding
		default:
			dst[i] = StateAlive
		}
	}
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:len(cells)*4])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := min(int(c), last)
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
