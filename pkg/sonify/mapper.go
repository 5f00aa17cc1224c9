// Package sonify turns life grid transitions into note events.
//
// A Mapper is stateful: it remembers the living cells it saw on the previous
// Map call so it can tell which cells were just born. Callers must serialize
// access; nothing in this package locks.
package sonify

import (
	"fmt"
	"math"

	"lifetones/pkg/core"
)

// Grid is the read-only view of an automaton the mapper needs.
type Grid interface {
	Size() core.Size
	Cell(x, y int) bool
	CountNeighbors(x, y int) int
	LivingCells() []core.Point
	Density() float64
	PopulationDelta() int
}

// NoteEvent is one tone to render. Cell is only meaningful when HasCell is set.
type NoteEvent struct {
	Freq     float64
	Duration float64
	Volume   float64
	Cell     core.Point
	HasCell  bool
}

// Config holds the mapper's tunables.
type Config struct {
	Mode         Mode
	Scale        ScaleID
	MaxVolume    float64
	NoteDuration float64
	// OctaveRange spreads positional notes over [-R, R) octaves.
	OctaveRange int
	// BaseOctave lifts harmonic progressions by 2^BaseOctave.
	BaseOctave int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Mode:         Position,
		Scale:        Major,
		MaxVolume:    0.25,
		NoteDuration: 0.3,
		OctaveRange:  3,
		BaseOctave:   3,
	}
}

// Harmonic mode progressions, as scale degree indexes.
var (
	risingProgression  = []int{0, 2, 4, 6}
	fallingProgression = []int{6, 4, 2, 0}
)

const (
	patternVolume  = 0.6
	harmonicVolume = 0.4
	harmonicLength = 1.5
)

// Mapper converts grid snapshots to note events.
type Mapper struct {
	mode         Mode
	scale        Scale
	maxVolume    float64
	noteDuration float64
	octaveRange  int
	baseOctave   int

	previous map[core.Point]struct{}
	playing  map[core.Point]struct{}
	names    map[core.Point]string
}

// New returns a Mapper. Invalid config values fall back to defaults.
func New(cfg Config) *Mapper {
	def := DefaultConfig()
	if cfg.Mode < 0 || cfg.Mode >= modeCount {
		cfg.Mode = def.Mode
	}
	if cfg.Scale < 0 || cfg.Scale >= scaleCount {
		cfg.Scale = def.Scale
	}
	if cfg.NoteDuration <= 0 {
		cfg.NoteDuration = def.NoteDuration
	}
	if cfg.OctaveRange <= 0 {
		cfg.OctaveRange = def.OctaveRange
	}
	return &Mapper{
		mode:         cfg.Mode,
		scale:        cfg.Scale.Scale(),
		maxVolume:    clamp01(cfg.MaxVolume),
		noteDuration: cfg.NoteDuration,
		octaveRange:  cfg.OctaveRange,
		baseOctave:   cfg.BaseOctave,
		previous:     map[core.Point]struct{}{},
		playing:      map[core.Point]struct{}{},
		names:        map[core.Point]string{},
	}
}

// Mode returns the active mode.
func (m *Mapper) Mode() Mode { return m.mode }

// Scale returns the active scale.
func (m *Mapper) Scale() Scale { return m.scale }

// Volume returns the maximum note volume.
func (m *Mapper) Volume() float64 { return m.maxVolume }

// NoteDuration returns the standard note length in seconds.
func (m *Mapper) NoteDuration() float64 { return m.noteDuration }

// SetMode selects a mode by name. Unknown names keep the current mode.
func (m *Mapper) SetMode(name string) error {
	mode, err := ParseMode(name)
	if err != nil {
		return err
	}
	m.mode = mode
	return nil
}

// SelectMode selects a mode by value.
func (m *Mapper) SelectMode(mode Mode) error {
	if mode < 0 || mode >= modeCount {
		return fmt.Errorf("%w: %v", ErrUnknownMode, mode)
	}
	m.mode = mode
	return nil
}

// SetScale selects a scale by name. Unknown names keep the current scale.
func (m *Mapper) SetScale(name string) error {
	id, err := ParseScale(name)
	if err != nil {
		return err
	}
	m.scale = id.Scale()
	return nil
}

// SelectScale selects a scale by id.
func (m *Mapper) SelectScale(id ScaleID) error {
	if id < 0 || id >= scaleCount {
		return fmt.Errorf("%w: %v", ErrUnknownScale, id)
	}
	m.scale = id.Scale()
	return nil
}

// SetVolume sets the maximum note volume, clamped to [0,1].
func (m *Mapper) SetVolume(v float64) { m.maxVolume = clamp01(v) }

// Reset forgets the previous generation. Call it whenever the grid is cleared.
func (m *Mapper) Reset() {
	clear(m.previous)
	clear(m.playing)
	clear(m.names)
}

// IsSounding reports whether (x, y) triggered a note on the last Map call.
func (m *Mapper) IsSounding(x, y int) bool {
	_, ok := m.playing[core.Point{X: x, Y: y}]
	return ok
}

// Sounding returns the cells that triggered notes on the last Map call.
func (m *Mapper) Sounding() []core.Point {
	out := make([]core.Point, 0, len(m.playing))
	for p := range m.playing {
		out = append(out, p)
	}
	return out
}

// NoteNameAt returns the note name shown for a living cell on the last Map call.
func (m *Mapper) NoteNameAt(x, y int) (string, bool) {
	name, ok := m.names[core.Point{X: x, Y: y}]
	return name, ok
}

// Map produces the notes for the grid's current generation.
func (m *Mapper) Map(g Grid) []NoteEvent {
	clear(m.playing)

	living := g.LivingCells()
	newborn := m.trackNewborn(living)

	var events []NoteEvent
	switch m.mode {
	case Position:
		events = m.positionNotes(newborn, m.scale, m.maxVolume)
	case Density:
		events = m.densityNotes(g.Density(), newborn)
	case Pattern:
		events = m.patternNotes(g, living, newborn)
	case Harmonic:
		events = m.harmonicNotes(g.PopulationDelta())
	default:
		panic(fmt.Sprintf("sonify: unhandled mode %v", m.mode))
	}

	for _, ev := range events {
		if ev.HasCell {
			m.playing[ev.Cell] = struct{}{}
		}
	}

	clear(m.names)
	for _, p := range living {
		_, name := m.NoteAt(p.X, p.Y, m.scale)
		m.names[p] = name
	}
	return events
}

// trackNewborn returns the cells in living that were not alive last call and
// remembers living for the next one.
func (m *Mapper) trackNewborn(living []core.Point) []core.Point {
	var newborn []core.Point
	next := make(map[core.Point]struct{}, len(living))
	for _, p := range living {
		next[p] = struct{}{}
		if _, ok := m.previous[p]; !ok {
			newborn = append(newborn, p)
		}
	}
	m.previous = next
	return newborn
}

func degreeIndex(x, y, n int) int {
	return ((x+y)%n + n) % n
}

func (m *Mapper) octaveOffset(x, y int) int {
	span := 2 * m.octaveRange
	return ((x*7+y*11)%span+span)%span - m.octaveRange
}

// NoteAt returns the positional frequency and note name of (x, y) in s. Both
// come from the same scale degree.
func (m *Mapper) NoteAt(x, y int, s Scale) (float64, string) {
	deg := s.Degree(degreeIndex(x, y, s.Len()))
	return deg.Freq * math.Pow(2, float64(m.octaveOffset(x, y))), deg.Name
}

func (m *Mapper) positionNotes(newborn []core.Point, s Scale, volume float64) []NoteEvent {
	cells := Thin(newborn)
	events := make([]NoteEvent, 0, len(cells))
	for _, c := range cells {
		freq, _ := m.NoteAt(c.X, c.Y, s)
		events = append(events, NoteEvent{
			Freq:     freq,
			Duration: m.noteDuration,
			Volume:   volume,
			Cell:     c,
			HasCell:  true,
		})
	}
	return events
}

// ScaleForDensity picks the scale used by Density mode. Thresholds are
// strict upper bounds.
func ScaleForDensity(density float64) ScaleID {
	switch {
	case density < 0.005:
		return MajorPentatonic
	case density < 0.01:
		return Major
	case density < 0.05:
		return Mixolydian
	case density < 0.1:
		return Dorian
	case density < 0.15:
		return Minor
	case density < 0.25:
		return Blues
	default:
		return Chromatic
	}
}

func (m *Mapper) densityNotes(density float64, newborn []core.Point) []NoteEvent {
	if density <= 0 {
		return nil
	}
	m.scale = ScaleForDensity(density).Scale()
	return m.positionNotes(newborn, m.scale, m.maxVolume*(0.5+density*0.5))
}

func (m *Mapper) patternNotes(g Grid, living, newborn []core.Point) []NoteEvent {
	born := make(map[core.Point]struct{}, len(newborn))
	for _, p := range newborn {
		born[p] = struct{}{}
	}

	groups := Classify(g, living)
	var events []NoteEvent
	for _, shape := range Shapes() {
		var fresh []core.Point
		for _, p := range groups[shape] {
			if _, ok := born[p]; ok {
				fresh = append(fresh, p)
			}
		}
		base := shape.BaseFreq()
		for _, c := range Thin(fresh) {
			events = append(events, NoteEvent{
				Freq:     base + float64(c.X+c.Y)*10,
				Duration: m.noteDuration,
				Volume:   m.maxVolume * patternVolume,
				Cell:     c,
				HasCell:  true,
			})
		}
	}
	return events
}

func (m *Mapper) harmonicNotes(delta int) []NoteEvent {
	var progression []int
	switch {
	case delta > 0:
		progression = risingProgression
	case delta < 0:
		progression = fallingProgression
	default:
		return nil
	}
	lift := math.Pow(2, float64(m.baseOctave))
	events := make([]NoteEvent, 0, len(progression))
	for _, idx := range progression {
		if idx >= m.scale.Len() {
			continue
		}
		events = append(events, NoteEvent{
			Freq:     m.scale.Degree(idx).Freq * lift,
			Duration: m.noteDuration * harmonicLength,
			Volume:   m.maxVolume * harmonicVolume,
		})
	}
	return events
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
