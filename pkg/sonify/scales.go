package sonify

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownScale is returned when a scale name is not in the catalog.
var ErrUnknownScale = errors.New("sonify: unknown scale")

// Degree is one step of a scale. Frequency and name always travel together.
type Degree struct {
	Freq float64
	Name string
}

// Scale is an immutable, non-empty sequence of degrees.
type Scale struct {
	id      ScaleID
	degrees []Degree
}

// ID returns the catalog identifier.
func (s Scale) ID() ScaleID { return s.id }

// Name returns the catalog name.
func (s Scale) Name() string { return s.id.String() }

// Len returns the number of degrees. It is never zero for catalog scales.
func (s Scale) Len() int { return len(s.degrees) }

// Degree returns degree i, wrapping i into range.
func (s Scale) Degree(i int) Degree {
	n := len(s.degrees)
	return s.degrees[((i%n)+n)%n]
}

// Degrees returns a copy of the degree list.
func (s Scale) Degrees() []Degree { return append([]Degree(nil), s.degrees...) }

// ScaleID enumerates the catalog.
type ScaleID int

const (
	Major ScaleID = iota
	Minor
	Pentatonic
	Chromatic
	NaturalMinor
	HarmonicMinor
	MelodicMinor
	MajorPentatonic
	MinorPentatonic
	Blues
	Ionian
	Dorian
	Phrygian
	Lydian
	Mixolydian
	Aeolian
	Locrian
	WholeTone
	HalfWholeDiminished
	WholeHalfDiminished
	BebopDominant
	BebopMajor
	HarmonicMajor
	HungarianMinor

	scaleCount
)

var scaleNames = [scaleCount]string{
	Major:               "major",
	Minor:               "minor",
	Pentatonic:          "pentatonic",
	Chromatic:           "chromatic",
	NaturalMinor:        "natural_minor",
	HarmonicMinor:       "harmonic_minor",
	MelodicMinor:        "melodic_minor",
	MajorPentatonic:     "major_pentatonic",
	MinorPentatonic:     "minor_pentatonic",
	Blues:               "blues",
	Ionian:              "ionian",
	Dorian:              "dorian",
	Phrygian:            "phrygian",
	Lydian:              "lydian",
	Mixolydian:          "mixolydian",
	Aeolian:             "aeolian",
	Locrian:             "locrian",
	WholeTone:           "whole_tone",
	HalfWholeDiminished: "half_whole_diminished",
	WholeHalfDiminished: "whole_half_diminished",
	BebopDominant:       "bebop_dominant",
	BebopMajor:          "bebop_major",
	HarmonicMajor:       "harmonic_major",
	HungarianMinor:      "hungarian_minor",
}

// String returns the catalog name.
func (id ScaleID) String() string {
	if id < 0 || id >= scaleCount {
		return fmt.Sprintf("ScaleID(%d)", int(id))
	}
	return scaleNames[id]
}

// Scale returns the catalog entry. Out-of-range ids fall back to Major.
func (id ScaleID) Scale() Scale {
	if id < 0 || id >= scaleCount {
		return catalog[Major]
	}
	return catalog[id]
}

// C-rooted pitch classes used by the catalog.
const (
	hzC  = 261.63
	hzDb = 277.18
	hzD  = 293.66
	hzEb = 311.13
	hzE  = 329.63
	hzF  = 349.23
	hzGb = 369.99
	hzG  = 392.00
	hzAb = 415.30
	hzA  = 440.00
	hzBb = 466.16
	hzB  = 493.88

	// Lydian, whole-tone and diminished tables use a rounded F#.
	hzFsRounded = 370.00
)

func d(freq float64, name string) Degree { return Degree{Freq: freq, Name: name} }

var catalog = buildCatalog()

func buildCatalog() [scaleCount]Scale {
	major := []Degree{d(hzC, "C"), d(hzD, "D"), d(hzE, "E"), d(hzF, "F"), d(hzG, "G"), d(hzA, "A"), d(hzB, "B")}
	naturalMinor := []Degree{d(hzC, "C"), d(hzD, "D"), d(hzEb, "Eb"), d(hzF, "F"), d(hzG, "G"), d(hzAb, "Ab"), d(hzBb, "Bb")}
	pentatonic := []Degree{d(hzC, "C"), d(hzD, "D"), d(hzE, "E"), d(hzG, "G"), d(hzA, "A")}

	table := [scaleCount][]Degree{
		Major:      major,
		Minor:      {d(hzC, "C"), d(hzDb, "Db"), d(hzEb, "Eb"), d(hzF, "F"), d(hzG, "G"), d(hzAb, "Ab"), d(hzBb, "Bb")},
		Pentatonic: pentatonic,
		Chromatic: {
			d(hzC, "C"), d(hzDb, "Db"), d(hzD, "D"), d(hzEb, "Eb"), d(hzE, "E"), d(hzF, "F"),
			d(hzGb, "F#"), d(hzG, "G"), d(hzAb, "Ab"), d(hzA, "A"), d(hzBb, "Bb"), d(hzB, "B"),
		},
		NaturalMinor:    naturalMinor,
		HarmonicMinor:   {d(hzC, "C"), d(hzD, "D"), d(hzEb, "Eb"), d(hzF, "F"), d(hzG, "G"), d(hzAb, "Ab"), d(hzB, "B")},
		MelodicMinor:    {d(hzC, "C"), d(hzD, "D"), d(hzEb, "Eb"), d(hzF, "F"), d(hzG, "G"), d(hzA, "A"), d(hzB, "B")},
		MajorPentatonic: pentatonic,
		MinorPentatonic: {d(hzC, "C"), d(hzEb, "Eb"), d(hzF, "F"), d(hzG, "G"), d(hzBb, "Bb")},
		Blues:           {d(hzC, "C"), d(hzEb, "Eb"), d(hzF, "F"), d(hzGb, "F#"), d(hzG, "G"), d(hzBb, "Bb")},
		Ionian:          major,
		Dorian:          {d(hzC, "C"), d(hzD, "D"), d(hzEb, "Eb"), d(hzF, "F"), d(hzG, "G"), d(hzA, "A"), d(hzBb, "Bb")},
		Phrygian:        {d(hzC, "C"), d(hzDb, "Db"), d(hzEb, "Eb"), d(hzF, "F"), d(hzG, "G"), d(hzAb, "Ab"), d(hzBb, "Bb")},
		Lydian:          {d(hzC, "C"), d(hzD, "D"), d(hzE, "E"), d(hzFsRounded, "F#"), d(hzG, "G"), d(hzA, "A"), d(hzB, "B")},
		Mixolydian:      {d(hzC, "C"), d(hzD, "D"), d(hzE, "E"), d(hzF, "F"), d(hzG, "G"), d(hzA, "A"), d(hzBb, "Bb")},
		Aeolian:         naturalMinor,
		Locrian:         {d(hzC, "C"), d(hzDb, "Db"), d(hzEb, "Eb"), d(hzF, "F"), d(hzGb, "Gb"), d(hzAb, "Ab"), d(hzBb, "Bb")},
		WholeTone:       {d(hzC, "C"), d(hzD, "D"), d(hzE, "E"), d(hzFsRounded, "F#"), d(hzAb, "G#"), d(hzBb, "A#")},
		HalfWholeDiminished: {
			d(hzC, "C"), d(hzDb, "Db"), d(hzEb, "Eb"), d(hzE, "E"),
			d(hzF, "F#"), d(hzFsRounded, "G"), d(hzG, "A"), d(hzAb, "Bb"),
		},
		WholeHalfDiminished: {
			d(hzC, "C"), d(hzD, "D"), d(hzEb, "Eb"), d(hzF, "F"),
			d(hzFsRounded, "F#"), d(hzG, "G#"), d(hzAb, "A"), d(hzBb, "B"),
		},
		BebopDominant:  {d(hzC, "C"), d(hzD, "D"), d(hzE, "E"), d(hzF, "F"), d(hzG, "G"), d(hzAb, "A"), d(hzA, "Bb"), d(hzBb, "B")},
		BebopMajor:     {d(hzC, "C"), d(hzD, "D"), d(hzE, "E"), d(hzF, "F"), d(hzGb, "G"), d(hzG, "G#"), d(hzA, "A"), d(hzB, "B")},
		HarmonicMajor:  {d(hzC, "C"), d(hzD, "D"), d(hzE, "E"), d(hzF, "F"), d(hzG, "G"), d(hzAb, "Ab"), d(hzB, "B")},
		HungarianMinor: {d(hzC, "C"), d(hzD, "D"), d(hzEb, "Eb"), d(hzFsRounded, "F#"), d(hzG, "G"), d(hzAb, "Ab"), d(hzB, "B")},
	}

	var out [scaleCount]Scale
	for id, degrees := range table {
		if len(degrees) == 0 {
			panic(fmt.Sprintf("sonify: scale %s has no degrees", ScaleID(id)))
		}
		for _, deg := range degrees {
			if deg.Freq <= 0 || deg.Name == "" {
				panic(fmt.Sprintf("sonify: scale %s has an invalid degree %+v", ScaleID(id), deg))
			}
		}
		out[id] = Scale{id: ScaleID(id), degrees: append([]Degree(nil), degrees...)}
	}
	return out
}

// Scales returns every catalog scale in enumeration order.
func Scales() []Scale {
	out := make([]Scale, scaleCount)
	copy(out, catalog[:])
	return out
}

// ParseScale maps a catalog name to its ScaleID.
func ParseScale(name string) (ScaleID, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range scaleNames {
		if n == key {
			return ScaleID(i), nil
		}
	}
	return Major, fmt.Errorf("%w: %q", ErrUnknownScale, name)
}

// LookupScale returns the catalog scale registered under name.
func LookupScale(name string) (Scale, error) {
	id, err := ParseScale(name)
	if err != nil {
		return Scale{}, err
	}
	return catalog[id], nil
}
