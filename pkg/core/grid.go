package core

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) addresses a cell without wrapping.
func (g *ByteGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *ByteGrid) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// At returns the value at (x, y) after wrapping.
func (g *ByteGrid) At(x, y int) uint8 {
	x, y = g.Wrap(x, y)
	return g.data[g.Index(x, y)]
}

// Swap exchanges the backing slice with buf and returns the previous one.
// buf must hold exactly W*H cells.
func (g *ByteGrid) Swap(buf []uint8) []uint8 {
	if len(buf) != len(g.data) {
		panic("core: ByteGrid.Swap with mismatched buffer length")
	}
	prev := g.data
	g.data = buf
	return prev
}

// Count returns the number of non-zero cells.
func (g *ByteGrid) Count() int {
	n := 0
	for _, v := range g.data {
		if v != 0 {
			n++
		}
	}
	return n
}

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
