package sonify

import "lifetones/pkg/core"

// Shape is a local-geometry category used by Pattern mode. A cell can belong
// to several shapes at once.
type Shape int

const (
	Cluster Shape = iota
	Line
	Isolated
	Edge

	shapeCount
)

var shapeNames = [shapeCount]string{
	Cluster:  "clusters",
	Line:     "lines",
	Isolated: "isolated",
	Edge:     "edges",
}

// String returns the shape name.
func (s Shape) String() string {
	if s < 0 || s >= shapeCount {
		return "unknown"
	}
	return shapeNames[s]
}

// BaseFreq returns the pitch each shape starts from.
func (s Shape) BaseFreq() float64 {
	switch s {
	case Cluster:
		return 300
	case Line:
		return 400
	case Isolated:
		return 500
	case Edge:
		return 600
	default:
		return 350
	}
}

// Shapes lists the shapes in the order Pattern mode emits them.
func Shapes() []Shape {
	return []Shape{Cluster, Line, Isolated, Edge}
}

// Classify groups living cells by shape.
func Classify(g Grid, living []core.Point) map[Shape][]core.Point {
	size := g.Size()
	out := make(map[Shape][]core.Point, shapeCount)
	for _, p := range living {
		n := g.CountNeighbors(p.X, p.Y)
		switch {
		case n >= 4:
			out[Cluster] = append(out[Cluster], p)
		case n <= 1:
			out[Isolated] = append(out[Isolated], p)
		case n == 2 && onLine(g, size, p):
			out[Line] = append(out[Line], p)
		}
		if p.X == 0 || p.Y == 0 || p.X == size.W-1 || p.Y == size.H-1 {
			out[Edge] = append(out[Edge], p)
		}
	}
	return out
}

// onLine reports whether p has exactly two live neighbours sitting on
// opposite sides of it (horizontal, vertical or diagonal).
func onLine(g Grid, size core.Size, p core.Point) bool {
	var offsets [8]core.Point
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := ((p.X+dx)%size.W + size.W) % size.W
			ny := ((p.Y+dy)%size.H + size.H) % size.H
			if g.Cell(nx, ny) {
				offsets[n] = core.Point{X: dx, Y: dy}
				n++
			}
		}
	}
	if n != 2 {
		return false
	}
	a, b := offsets[0], offsets[1]
	return a.X == -b.X && a.Y == -b.Y
}
