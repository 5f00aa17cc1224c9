package life

import (
	"lifetones/pkg/core"
)

// HistoryLimit is the number of population samples retained.
const HistoryLimit = 100

// Life implements a life-like automaton with toroidal wrapping and a
// selectable birth/survival rule.
type Life struct {
	grid *core.ByteGrid
	nxt  []uint8
	rule RuleSet
	fill float64

	generation int
	history    []int
}

// New returns a Life simulation with the provided dimensions and rule.
func New(w, h int, rule RuleSet) *Life {
	grid := core.NewByteGrid(w, h)
	return &Life{
		grid:    grid,
		nxt:     make([]uint8, len(grid.Cells())),
		rule:    rule,
		fill:    DefaultConfig().Fill,
		history: make([]int, 0, HistoryLimit),
	}
}

// NewWithConfig builds a Life from a Config.
func NewWithConfig(cfg Config) *Life {
	l := New(cfg.Width, cfg.Height, cfg.Rule.RuleSet())
	l.fill = cfg.Fill
	return l
}

// Name returns the simulation identifier.
func (l *Life) Name() string { return "life" }

// Size returns the grid dimensions.
func (l *Life) Size() core.Size { return core.Size{W: l.grid.W, H: l.grid.H} }

// Cells exposes the current grid values.
func (l *Life) Cells() []uint8 { return l.grid.Cells() }

// Reset clears the board and seeds it from the provided seed.
func (l *Life) Reset(seed int64) {
	l.ResetDensity(seed, l.fill)
}

// ResetDensity clears the board and fills each cell with probability p.
func (l *Life) ResetDensity(seed int64, p float64) {
	l.Clear()
	core.FillDensity(core.NewRNG(seed), l.grid.Cells(), p)
}

// RuleSet returns the active rule.
func (l *Life) RuleSet() RuleSet { return l.rule }

// SetRule switches to a catalog rule. Cells are left untouched.
func (l *Life) SetRule(r Rule) { l.rule = r.RuleSet() }

// SetRuleSet switches to the named catalog rule. On error the current rule
// is kept.
func (l *Life) SetRuleSet(name string) error {
	rs, err := LookupRule(name)
	if err != nil {
		return err
	}
	l.rule = rs
	return nil
}

// Generation returns the number of Step calls since the last Clear.
func (l *Life) Generation() int { return l.generation }

// SetCell sets the cell at (x, y). It reports false and does nothing when
// the coordinates are outside the grid.
func (l *Life) SetCell(x, y int, alive bool) bool {
	if !l.grid.InBounds(x, y) {
		return false
	}
	var v uint8
	if alive {
		v = 1
	}
	l.grid.Cells()[l.grid.Index(x, y)] = v
	return true
}

// Cell reports whether (x, y) is alive. Out-of-range coordinates are dead.
func (l *Life) Cell(x, y int) bool {
	if !l.grid.InBounds(x, y) {
		return false
	}
	return l.grid.Cells()[l.grid.Index(x, y)] != 0
}

// ToggleCell flips the cell at (x, y). It reports false and does nothing
// when the coordinates are outside the grid.
func (l *Life) ToggleCell(x, y int) bool {
	if !l.grid.InBounds(x, y) {
		return false
	}
	idx := l.grid.Index(x, y)
	l.grid.Cells()[idx] ^= 1
	return true
}

// CountNeighbors sums the Moore neighbourhood of (x, y) with wraparound.
func (l *Life) CountNeighbors(x, y int) int {
	return countWrapped(l.grid.Cells(), l.grid.W, l.grid.H, x, y)
}

func countWrapped(cells []uint8, w, h, x, y int) int {
	neighbors := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := ((x+dx)%w + w) % w
			ny := ((y+dy)%h + h) % h
			if cells[ny*w+nx] != 0 {
				neighbors++
			}
		}
	}
	return neighbors
}

// Step advances the simulation by one generation.
func (l *Life) Step() {
	w, h := l.grid.W, l.grid.H
	cur := l.grid.Cells()
	population := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			l.nxt[idx] = 0
			if l.rule.Next(cur[idx] != 0, countWrapped(cur, w, h, x, y)) {
				l.nxt[idx] = 1
				population++
			}
		}
	}
	l.nxt = l.grid.Swap(l.nxt)
	l.generation++
	l.record(population)
}

func (l *Life) record(population int) {
	l.history = append(l.history, population)
	if over := len(l.history) - HistoryLimit; over > 0 {
		n := copy(l.history, l.history[over:])
		l.history = l.history[:n]
	}
}

// Clear kills every cell and resets the generation counter and history.
func (l *Life) Clear() {
	l.grid.Clear()
	l.generation = 0
	l.history = l.history[:0]
}

// LoadPattern stamps the live cells of p with its top-left corner at
// (x, y). Dead pattern cells do not clear the board and cells falling
// outside the grid are skipped.
func (l *Life) LoadPattern(p Pattern, x, y int) {
	for py, row := range p {
		for px, cell := range row {
			if cell == 1 {
				l.SetCell(x+px, y+py, true)
			}
		}
	}
}

// LivingCells returns the coordinates of every live cell in row-major order.
func (l *Life) LivingCells() []core.Point {
	w := l.grid.W
	var out []core.Point
	for idx, v := range l.grid.Cells() {
		if v != 0 {
			out = append(out, core.Point{X: idx % w, Y: idx / w})
		}
	}
	return out
}

// Population returns the current number of live cells.
func (l *Life) Population() int { return l.grid.Count() }

// Density returns the fraction of live cells in [0,1].
func (l *Life) Density() float64 {
	total := l.grid.W * l.grid.H
	if total == 0 {
		return 0
	}
	return float64(l.grid.Count()) / float64(total)
}

// PopulationDelta returns the change between the two most recent
// generations, or 0 when fewer than two have been recorded.
func (l *Life) PopulationDelta() int {
	n := len(l.history)
	if n < 2 {
		return 0
	}
	return l.history[n-1] - l.history[n-2]
}

// History returns a copy of the recorded populations, oldest first.
func (l *Life) History() []int {
	return append([]int(nil), l.history...)
}

// fromOptions builds a Life for the registry. A "seed" option seeds the
// board at the configured fill density.
func fromOptions(opts map[string]string) *Life {
	cfg := FromMap(opts)
	l := NewWithConfig(cfg)
	if _, seeded := opts["seed"]; seeded && cfg.Fill > 0 {
		l.Reset(cfg.Seed)
	}
	return l
}

func init() {
	core.Register("life", func(cfg map[string]string) core.Sim {
		return fromOptions(cfg)
	})
}
