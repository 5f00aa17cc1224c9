package sonify

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifetones/pkg/core"
	"lifetones/pkg/sims/life"
)

// fakeGrid feeds fixed aggregate values for modes that ignore cell layout.
type fakeGrid struct {
	*life.Life
	density float64
	delta   int
}

func (f fakeGrid) Density() float64     { return f.density }
func (f fakeGrid) PopulationDelta() int { return f.delta }

func blinkerGrid(t *testing.T, w, h, x, y int) *life.Life {
	t.Helper()
	g := life.New(w, h, life.Conway.RuleSet())
	p, err := life.LookupPattern("blinker")
	require.NoError(t, err)
	g.LoadPattern(p, x, y)
	return g
}

func TestThinKeepsMaxXPerRow(t *testing.T) {
	t.Parallel()

	got := Thin([]core.Point{{X: 1, Y: 5}, {X: 3, Y: 5}, {X: 2, Y: 7}})
	assert.ElementsMatch(t, []core.Point{{X: 3, Y: 5}, {X: 2, Y: 7}}, got)

	assert.Empty(t, Thin(nil))
	assert.Empty(t, Thin([]core.Point{}))

	many := Thin([]core.Point{{X: 0, Y: 1}, {X: 9, Y: 1}, {X: 4, Y: 1}, {X: 2, Y: 0}})
	assert.Equal(t, []core.Point{{X: 2, Y: 0}, {X: 9, Y: 1}}, many)
}

func TestNoteAtUsesSameDegreeForNameAndFrequency(t *testing.T) {
	t.Parallel()
	m := New(DefaultConfig())
	for _, s := range Scales() {
		for y := 0; y < 16; y++ {
			for x := 0; x < 16; x++ {
				freq, name := m.NoteAt(x, y, s)
				deg := s.Degree((x + y) % s.Len())
				offset := ((x*7+y*11)%6 - 3)
				require.Equal(t, deg.Name, name, "%s (%d,%d)", s.Name(), x, y)
				require.InDelta(t, deg.Freq*math.Pow(2, float64(offset)), freq, 1e-9, "%s (%d,%d)", s.Name(), x, y)
			}
		}
	}
}

func TestScaleCatalog(t *testing.T) {
	t.Parallel()
	scales := Scales()
	require.Len(t, scales, 24)
	for _, s := range scales {
		assert.Positive(t, s.Len(), s.Name())
		for _, deg := range s.Degrees() {
			assert.Positive(t, deg.Freq, s.Name())
			assert.NotEmpty(t, deg.Name, s.Name())
		}
		round, err := LookupScale(s.Name())
		require.NoError(t, err)
		assert.Equal(t, s.ID(), round.ID())
	}
	assert.Equal(t, 12, Chromatic.Scale().Len())
	assert.Equal(t, 5, MajorPentatonic.Scale().Len())

	_, err := LookupScale("klingon")
	assert.True(t, errors.Is(err, ErrUnknownScale))
}

func TestScaleForDensityBoundaries(t *testing.T) {
	t.Parallel()
	cases := []struct {
		density float64
		want    ScaleID
	}{
		{0.001, MajorPentatonic},
		{0.005, Major},
		{0.0099, Major},
		{0.01, Mixolydian},
		{0.049, Mixolydian},
		{0.05, Dorian},
		{0.1, Minor},
		{0.15, Blues},
		{0.2499, Blues},
		{0.25, Chromatic},
		{0.9, Chromatic},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ScaleForDensity(tc.density), "density %v", tc.density)
	}
}

func TestPositionModePlaysThinnedNewborns(t *testing.T) {
	t.Parallel()
	g := blinkerGrid(t, 10, 10, 3, 5)
	m := New(DefaultConfig())

	events := m.Map(g)
	require.Len(t, events, 1, "three newborns in one row thin to one note")
	ev := events[0]
	assert.Equal(t, core.Point{X: 5, Y: 5}, ev.Cell)
	assert.True(t, ev.HasCell)
	freq, _ := m.NoteAt(5, 5, Major.Scale())
	assert.InDelta(t, freq, ev.Freq, 1e-9)
	assert.InDelta(t, 0.25, ev.Volume, 1e-9)
	assert.InDelta(t, 0.3, ev.Duration, 1e-9)
	assert.True(t, m.IsSounding(5, 5))
	assert.False(t, m.IsSounding(3, 5))

	// Nothing new on an unchanged grid; the sounding set is rebuilt empty.
	assert.Empty(t, m.Map(g))
	assert.False(t, m.IsSounding(5, 5))

	g.Step()
	events = m.Map(g)
	// Vertical phase: (4,4) and (4,6) are newborn, each in its own row.
	require.Len(t, events, 2)
	assert.Equal(t, core.Point{X: 4, Y: 4}, events[0].Cell)
	assert.Equal(t, core.Point{X: 4, Y: 6}, events[1].Cell)
}

func TestDensityModeSelectsScaleAndVolume(t *testing.T) {
	t.Parallel()
	g := blinkerGrid(t, 10, 10, 3, 5) // density 0.03
	m := New(DefaultConfig())
	require.NoError(t, m.SetMode("density"))

	events := m.Map(g)
	require.Len(t, events, 1)
	assert.Equal(t, Mixolydian, m.Scale().ID())
	assert.InDelta(t, 0.25*(0.5+0.03*0.5), events[0].Volume, 1e-9)
	freq, _ := m.NoteAt(5, 5, Mixolydian.Scale())
	assert.InDelta(t, freq, events[0].Freq, 1e-9)
}

func TestDensityModeSilentOnEmptyGridButTracksNewborns(t *testing.T) {
	t.Parallel()
	g := life.New(10, 10, life.Conway.RuleSet())
	m := New(DefaultConfig())
	require.NoError(t, m.SelectMode(Density))

	assert.Empty(t, m.Map(g))
	assert.Equal(t, Major, m.Scale().ID(), "empty grid keeps the scale")

	// Density-mode maps still roll the newborn baseline forward.
	g.LoadPattern(life.Pattern{{1, 1, 1}}, 0, 0)
	require.NotEmpty(t, m.Map(g))
	require.NoError(t, m.SelectMode(Position))
	assert.Empty(t, m.Map(g), "cells seen in density mode are not newborn")
}

func TestNewbornTrackingSurvivesModeSwitch(t *testing.T) {
	t.Parallel()
	g := blinkerGrid(t, 10, 10, 3, 5)
	m := New(DefaultConfig())
	require.NoError(t, m.SelectMode(Pattern))
	require.NotEmpty(t, m.Map(g))

	require.NoError(t, m.SelectMode(Position))
	assert.Empty(t, m.Map(g))

	m.Reset()
	assert.Len(t, m.Map(g), 1, "Reset makes every living cell newborn again")
}

func TestPatternModeEmitsByShape(t *testing.T) {
	t.Parallel()
	g := blinkerGrid(t, 10, 10, 3, 5)
	m := New(DefaultConfig())
	require.NoError(t, m.SetMode("pattern"))

	events := m.Map(g)
	require.Len(t, events, 2)
	// Lines come before isolated cells.
	assert.Equal(t, core.Point{X: 4, Y: 5}, events[0].Cell)
	assert.InDelta(t, 400+90.0, events[0].Freq, 1e-9)
	assert.Equal(t, core.Point{X: 5, Y: 5}, events[1].Cell)
	assert.InDelta(t, 500+100.0, events[1].Freq, 1e-9)
	for _, ev := range events {
		assert.InDelta(t, 0.25*0.6, ev.Volume, 1e-9)
	}
	assert.True(t, m.IsSounding(4, 5))
	assert.True(t, m.IsSounding(5, 5))
}

func TestClassify(t *testing.T) {
	t.Parallel()
	g := life.New(12, 12, life.Conway.RuleSet())
	// Diagonal line.
	g.SetCell(2, 2, true)
	g.SetCell(3, 3, true)
	g.SetCell(4, 4, true)
	// Plus sign: centre has four neighbours.
	for _, p := range []core.Point{{X: 8, Y: 8}, {X: 7, Y: 8}, {X: 9, Y: 8}, {X: 8, Y: 7}, {X: 8, Y: 9}} {
		g.SetCell(p.X, p.Y, true)
	}
	// Corner: (2,8) with neighbours (3,8) and (2,9) is not a line.
	g.SetCell(2, 8, true)
	g.SetCell(3, 8, true)
	g.SetCell(2, 9, true)
	// Lone edge cell.
	g.SetCell(0, 5, true)

	groups := Classify(g, g.LivingCells())
	assert.Contains(t, groups[Line], core.Point{X: 3, Y: 3})
	assert.NotContains(t, groups[Line], core.Point{X: 2, Y: 8})
	assert.Equal(t, []core.Point{{X: 8, Y: 8}}, groups[Cluster])
	assert.Contains(t, groups[Isolated], core.Point{X: 2, Y: 2})
	assert.Contains(t, groups[Isolated], core.Point{X: 0, Y: 5})
	assert.Equal(t, []core.Point{{X: 0, Y: 5}}, groups[Edge])
}

func TestClassifyLinesWrapAcrossEdges(t *testing.T) {
	t.Parallel()
	g := life.New(10, 10, life.Conway.RuleSet())
	// (0,5) sits between (9,5) and (1,5) once the row wraps.
	g.SetCell(9, 5, true)
	g.SetCell(0, 5, true)
	g.SetCell(1, 5, true)

	groups := Classify(g, g.LivingCells())
	assert.Equal(t, []core.Point{{X: 0, Y: 5}}, groups[Line])
	assert.ElementsMatch(t, []core.Point{{X: 0, Y: 5}, {X: 9, Y: 5}}, groups[Edge])
	assert.ElementsMatch(t, []core.Point{{X: 1, Y: 5}, {X: 9, Y: 5}}, groups[Isolated])
}

func TestHarmonicModeFollowsPopulationTrend(t *testing.T) {
	t.Parallel()
	base := life.New(6, 6, life.Conway.RuleSet())
	m := New(DefaultConfig())
	require.NoError(t, m.SetMode("harmonic"))

	rising := m.Map(fakeGrid{Life: base, delta: 3})
	require.Len(t, rising, 4)
	major := Major.Scale()
	for i, idx := range []int{0, 2, 4, 6} {
		assert.InDelta(t, major.Degree(idx).Freq*8, rising[i].Freq, 1e-9)
		assert.InDelta(t, 0.45, rising[i].Duration, 1e-9)
		assert.InDelta(t, 0.1, rising[i].Volume, 1e-9)
		assert.False(t, rising[i].HasCell)
	}

	falling := m.Map(fakeGrid{Life: base, delta: -1})
	require.Len(t, falling, 4)
	assert.InDelta(t, major.Degree(6).Freq*8, falling[0].Freq, 1e-9)
	assert.InDelta(t, major.Degree(0).Freq*8, falling[3].Freq, 1e-9)

	assert.Empty(t, m.Map(fakeGrid{Life: base, delta: 0}))

	require.NoError(t, m.SetScale("pentatonic"))
	short := m.Map(fakeGrid{Life: base, delta: 2})
	assert.Len(t, short, 3, "degree 6 does not exist in a five-note scale")
}

func TestUnknownNamesKeepSelection(t *testing.T) {
	t.Parallel()
	m := New(DefaultConfig())
	require.NoError(t, m.SetScale("blues"))
	require.NoError(t, m.SetMode("pattern"))

	err := m.SetScale("nope")
	assert.ErrorIs(t, err, ErrUnknownScale)
	assert.Equal(t, Blues, m.Scale().ID())

	err = m.SetMode("nope")
	assert.ErrorIs(t, err, ErrUnknownMode)
	assert.Equal(t, Pattern, m.Mode())

	assert.ErrorIs(t, m.SelectMode(Mode(42)), ErrUnknownMode)
	assert.ErrorIs(t, m.SelectScale(ScaleID(-1)), ErrUnknownScale)
}

func TestSetVolumeClamps(t *testing.T) {
	t.Parallel()
	m := New(DefaultConfig())
	m.SetVolume(1.7)
	assert.Equal(t, 1.0, m.Volume())
	m.SetVolume(-0.2)
	assert.Equal(t, 0.0, m.Volume())
}

func TestNoteNamesFollowLivingCells(t *testing.T) {
	t.Parallel()
	g := blinkerGrid(t, 10, 10, 3, 5)
	m := New(DefaultConfig())
	m.Map(g)

	for _, p := range g.LivingCells() {
		name, ok := m.NoteNameAt(p.X, p.Y)
		require.True(t, ok)
		assert.Equal(t, Major.Scale().Degree(p.X+p.Y).Name, name)
	}
	_, ok := m.NoteNameAt(0, 0)
	assert.False(t, ok)
}
