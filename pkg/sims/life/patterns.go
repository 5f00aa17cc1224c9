package life

import (
	"errors"
	"fmt"
)

// ErrUnknownPattern is returned when a pattern name is not in the library.
var ErrUnknownPattern = errors.New("life: unknown pattern")

// Pattern is a row-major 0/1 stamp.
type Pattern [][]uint8

// Size returns the bounding box of the pattern.
func (p Pattern) Size() (w, h int) {
	for _, row := range p {
		if len(row) > w {
			w = len(row)
		}
	}
	return w, len(p)
}

func (p Pattern) clone() Pattern {
	out := make(Pattern, len(p))
	for i, row := range p {
		out[i] = append([]uint8(nil), row...)
	}
	return out
}

var patternOrder = []string{"glider", "blinker", "block", "beehive", "toad", "beacon"}

var patternTable = map[string]Pattern{
	"glider": {
		{0, 1, 0},
		{0, 0, 1},
		{1, 1, 1},
	},
	"blinker": {
		{1, 1, 1},
	},
	"block": {
		{1, 1},
		{1, 1},
	},
	"beehive": {
		{0, 1, 1, 0},
		{1, 0, 0, 1},
		{0, 1, 1, 0},
	},
	"toad": {
		{0, 1, 1, 1},
		{1, 1, 1, 0},
	},
	"beacon": {
		{1, 1, 0, 0},
		{1, 1, 0, 0},
		{0, 0, 1, 1},
		{0, 0, 1, 1},
	},
}

// Patterns lists the built-in pattern names in display order.
func Patterns() []string {
	return append([]string(nil), patternOrder...)
}

// LookupPattern returns a copy of the named pattern.
func LookupPattern(name string) (Pattern, error) {
	p, ok := patternTable[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPattern, name)
	}
	return p.clone(), nil
}
