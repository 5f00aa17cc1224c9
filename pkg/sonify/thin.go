package sonify

import (
	"sort"

	"lifetones/pkg/core"
)

// Thin keeps one cell per row: the one with the largest x, which lands on
// the lowest pitch class of that row. The result is ordered by row.
func Thin(cells []core.Point) []core.Point {
	if len(cells) == 0 {
		return nil
	}
	best := make(map[int]int, len(cells))
	for _, c := range cells {
		if x, ok := best[c.Y]; !ok || c.X > x {
			best[c.Y] = c.X
		}
	}
	out := make([]core.Point, 0, len(best))
	for y, x := range best {
		out = append(out, core.Point{X: x, Y: y})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Y < out[j].Y })
	return out
}
