package sonify

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned when a mode name is not recognised.
var ErrUnknownMode = errors.New("sonify: unknown mode")

// Mode selects how grid state is turned into notes.
type Mode int

const (
	// Position plays newborn cells pitched by their coordinates.
	Position Mode = iota
	// Density picks a scale from the live-cell density and plays newborns in it.
	Density
	// Pattern plays newborn cells by local shape (cluster, line, isolated, edge).
	Pattern
	// Harmonic plays a fixed progression whose direction follows the
	// population trend.
	Harmonic

	modeCount
)

var modeNames = [modeCount]string{
	Position: "position",
	Density:  "density",
	Pattern:  "pattern",
	Harmonic: "harmonic",
}

// String returns the mode name accepted by ParseMode.
func (m Mode) String() string {
	if m < 0 || m >= modeCount {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Modes lists every mode in enumeration order.
func Modes() []Mode {
	out := make([]Mode, modeCount)
	for i := range out {
		out[i] = Mode(i)
	}
	return out
}

// ParseMode maps a mode name to its Mode.
func ParseMode(name string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range modeNames {
		if n == key {
			return Mode(i), nil
		}
	}
	return Position, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}
