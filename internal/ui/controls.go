package ui

import (
	"image"
	"math"
	"strconv"

	"lifetones/internal/core"
)

// Source is what the HUD reads and adjusts.
type Source interface {
	Parameters() core.ParameterSnapshot
	core.ParameterControlsProvider
	core.IntParameterSetter
	core.FloatParameterSetter
}

type hudControlState struct {
	control  core.ParameterControl
	value    string
	current  float64
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

func canAdjust(state *hudControlState, direction int) bool {
	if state == nil || !state.hasValue || direction == 0 {
		return false
	}
	return math.Abs(state.control.Nudge(state.current, direction)-state.current) > 1e-9
}

func formatValue(ctrl core.ParameterControl, value float64) string {
	if ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(math.Round(value)))
	}
	precision := 2
	if ctrl.Step >= 0.1 {
		precision = 1
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}
