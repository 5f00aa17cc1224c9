package app

import (
	"bufio"
	"fmt"
	"io"
)

// Board glyphs.
const (
	glyphDead     = '.'
	glyphAlive    = 'o'
	glyphSounding = '*'
)

// WriteBoard prints the grid as text, clipped to cols x rows (zero means
// unlimited), followed by a status line.
func WriteBoard(w io.Writer, s *Session, cols, rows int) error {
	bw := bufio.NewWriter(w)
	size := s.Size()
	width, height := size.W, size.H
	if cols > 0 {
		width = min(width, cols)
	}
	if rows > 0 {
		height = min(height, rows)
	}
	g := s.Life()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := byte(glyphDead)
			switch {
			case s.IsSounding(x, y):
				c = glyphSounding
			case g.Cell(x, y):
				c = glyphAlive
			}
			bw.WriteByte(c)
		}
		bw.WriteByte('\n')
	}
	m := s.Mapper()
	fmt.Fprintf(bw, "gen %d  pop %d  rule %s  scale %s  mode %s\n",
		g.Generation(), g.Population(), g.RuleSet().Notation(), m.Scale().Name(), m.Mode())
	return bw.Flush()
}
