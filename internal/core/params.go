package core

import (
	"math"
	"strconv"
)

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	ParamTypeInt   ParamType = "int"
	ParamTypeFloat ParamType = "float"
	ParamTypeBool  ParamType = "bool"
	// ParamTypeText is display-only.
	ParamTypeText  ParamType = "text"
)

// Parameter is one tunable value as shown on the HUD. Value is preformatted.
type Parameter struct {
	Key         string
	Label       string
	Type        ParamType
	Value       string
	Description string
}

// IntParam builds an integer parameter.
func IntParam(key, label string, v int) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeInt, Value: strconv.Itoa(v)}
}

// FloatParam builds a float parameter formatted with two decimals.
func FloatParam(key, label string, v float64) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeFloat, Value: strconv.FormatFloat(v, 'f', 2, 64)}
}

// BoolParam builds an on/off parameter.
func BoolParam(key, label string, v bool) Parameter {
	value := "off"
	if v {
		value = "on"
	}
	return Parameter{Key: key, Label: label, Type: ParamTypeBool, Value: value}
}

// TextParam builds a display-only parameter.
func TextParam(key, label, v string) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeText, Value: v}
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name    string
	Params  []Parameter
	Summary string
}

// ParameterSnapshot captures the current set of tunables.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// Find returns the parameter with the given key from any group.
func (s ParameterSnapshot) Find(key string) (Parameter, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p, true
			}
		}
	}
	return Parameter{}, false
}

// ParameterControl describes a HUD-adjustable parameter. Step and bounds are
// optional and interpreted based on the parameter type.
type ParameterControl struct {
	Key   string
	Label string
	Type  ParamType

	Step float64

	Min    float64
	Max    float64
	HasMin bool
	HasMax bool
}

// Clamp limits v to the control's bounds.
func (c ParameterControl) Clamp(v float64) float64 {
	if c.HasMin && v < c.Min {
		v = c.Min
	}
	if c.HasMax && v > c.Max {
		v = c.Max
	}
	return v
}

// Nudge moves v by dir steps and clamps the result. Int controls round to the
// nearest integer and move by at least one.
func (c ParameterControl) Nudge(v float64, dir int) float64 {
	step := c.Step
	if c.Type == ParamTypeInt {
		step = math.Max(1, math.Round(step))
		v = math.Round(v)
	}
	return c.Clamp(v + float64(dir)*step)
}

// ParameterControlsProvider exposes the list of HUD-adjustable controls.
type ParameterControlsProvider interface {
	ParameterControls() []ParameterControl
}

// IntParameterSetter allows HUD interactions to update integer parameters.
type IntParameterSetter interface {
	SetIntParameter(key string, value int) bool
}

// FloatParameterSetter allows HUD interactions to update floating point
// parameters.
type FloatParameterSetter interface {
	SetFloatParameter(key string, value float64) bool
}
