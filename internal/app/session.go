package app

import (
	"fmt"
	"strconv"
	"strings"

	"lifetones/internal/core"
	"lifetones/internal/log"
	"lifetones/internal/playback"
	pcore "lifetones/pkg/core"
	"lifetones/pkg/sims/life"
	"lifetones/pkg/sonify"
	"lifetones/pkg/synth"
)

// Session ties the automaton to the sonification pipeline. One tick advances
// the grid, maps the new generation to notes, renders them and hands the
// buffers to the player. A Session is driven from a single goroutine.
type Session struct {
	sim    *life.Life
	mapper *sonify.Mapper
	synth  *synth.Synth
	player playback.Player
	log    *log.Logger

	seed    int64
	paused  bool
	music   bool
	speed   int
	frame   int
	pattern int
	played  int
}

// NewSession builds the simulation from the registry and wires it to a
// mapper, a synthesizer and player.
func NewSession(cfg *Config, player playback.Player, logger *log.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	factory, ok := pcore.Sims()[cfg.Sim]
	if !ok {
		return nil, fmt.Errorf("unknown sim %q (have %s)", cfg.Sim, strings.Join(pcore.SimNames(), ", "))
	}
	engine, ok := factory(cfg.SimOptions()).(*life.Life)
	if !ok {
		return nil, fmt.Errorf("sim %q has no sonification support", cfg.Sim)
	}
	if player == nil {
		player = playback.NewDiscard()
	}
	if logger == nil {
		logger = log.Discard()
	}

	mc := sonify.DefaultConfig()
	mc.Mode, _ = sonify.ParseMode(cfg.Mode)
	mc.Scale, _ = sonify.ParseScale(cfg.ScaleName)
	mc.MaxVolume = cfg.Volume

	s := &Session{
		sim:     engine,
		mapper:  sonify.New(mc),
		synth:   synth.New(synth.Config{SampleRate: cfg.SampleRate, Sustain: cfg.Sustain}),
		player:  player,
		log:     logger,
		seed:    cfg.Seed,
		music:   true,
		speed:   cfg.Speed,
		pattern: -1,
	}
	if cfg.Pattern != "" {
		s.SelectPattern(cfg.Pattern)
		size := engine.Size()
		p, _ := life.LookupPattern(cfg.Pattern)
		pw, ph := p.Size()
		engine.LoadPattern(p, (size.W-pw)/2, (size.H-ph)/2)
	}
	logger.Infof("session: %dx%d %s, scale %s, mode %s, audio %s",
		cfg.Width, cfg.Height, engine.RuleSet().Notation(), s.mapper.Scale().Name(), s.mapper.Mode(), playback.Backend)
	return s, nil
}

// Life returns the underlying engine.
func (s *Session) Life() *life.Life { return s.sim }

// Mapper returns the sonification mapper.
func (s *Session) Mapper() *sonify.Mapper { return s.mapper }

// Synth returns the tone synthesizer.
func (s *Session) Synth() *synth.Synth { return s.synth }

// Name returns the simulation name.
func (s *Session) Name() string { return s.sim.Name() }

// Size returns the grid dimensions.
func (s *Session) Size() pcore.Size { return s.sim.Size() }

// Cells exposes the current grid values.
func (s *Session) Cells() []uint8 { return s.sim.Cells() }

// Step runs one Tick, so a Session can stand in for a pcore.Sim.
func (s *Session) Step() { s.Tick() }

// Generation returns the number of generations since the last clear.
func (s *Session) Generation() int { return s.sim.Generation() }

// NotesPlayed counts buffers the player accepted.
func (s *Session) NotesPlayed() int { return s.played }

// Paused reports whether Update is holding the simulation.
func (s *Session) Paused() bool { return s.paused }

// MusicEnabled reports whether ticks render and play notes.
func (s *Session) MusicEnabled() bool { return s.music }

// Speed returns the frames per generation.
func (s *Session) Speed() int { return s.speed }

// Reset reseeds the board randomly and forgets previous generations.
func (s *Session) Reset(seed int64) {
	s.seed = seed
	s.sim.Reset(seed)
	s.mapper.Reset()
	s.frame = 0
}

// Tick advances one generation and returns the notes it produced. With
// music off the mapper still tracks newborns but nothing is rendered.
func (s *Session) Tick() []sonify.NoteEvent {
	s.sim.Step()
	events := s.mapper.Map(s.sim)
	if !s.music {
		return events
	}
	for _, ev := range events {
		buf := s.synth.Render(ev.Freq, ev.Duration, ev.Volume)
		if err := s.player.Play(buf); err != nil {
			s.log.Warnf("playback: %v", err)
			continue
		}
		s.played++
	}
	s.log.Debugf("gen %d: pop %d, %d notes, %d active", s.sim.Generation(), s.sim.Population(), len(events), s.player.Active())
	return events
}

// Update is called once per frame and ticks every Speed frames while running.
func (s *Session) Update() bool {
	s.frame++
	if s.paused || s.frame < s.speed {
		return false
	}
	s.frame = 0
	s.Tick()
	return true
}

// SetPaused holds or releases the simulation.
func (s *Session) SetPaused(p bool) { s.paused = p }

// TogglePause flips the paused state.
func (s *Session) TogglePause() { s.paused = !s.paused }

// ToggleMusic switches audio on or off. Turning it off silences the player.
func (s *Session) ToggleMusic() {
	s.music = !s.music
	if !s.music {
		s.player.Stop()
	}
}

// Clear empties the board, forgets mapper history and pauses.
func (s *Session) Clear() {
	s.sim.Clear()
	s.mapper.Reset()
	s.player.Stop()
	s.paused = true
	s.frame = 0
}

// SelectRule switches to the i-th catalog rule. Cells are kept.
func (s *Session) SelectRule(i int) error {
	rules := life.Rules()
	if i < 0 || i >= len(rules) {
		return fmt.Errorf("%w: index %d", life.ErrUnknownRuleSet, i)
	}
	s.sim.SetRule(life.Rule(i))
	s.log.Infof("rule set: %s (%s)", rules[i].Name, rules[i].Notation())
	return nil
}

// CycleRule moves to the next rule in catalog order.
func (s *Session) CycleRule() {
	_ = s.SelectRule((s.ruleIndex() + 1) % len(life.Rules()))
}

func (s *Session) ruleIndex() int {
	current := s.sim.RuleSet().Name
	for i, rs := range life.Rules() {
		if rs.Name == current {
			return i
		}
	}
	return 0
}

// CycleScale moves to the next scale in catalog order.
func (s *Session) CycleScale() {
	next := (int(s.mapper.Scale().ID()) + 1) % len(sonify.Scales())
	_ = s.mapper.SelectScale(sonify.ScaleID(next))
	s.log.Infof("scale: %s", s.mapper.Scale().Name())
}

// SetMode switches the sonification mode.
func (s *Session) SetMode(m sonify.Mode) {
	if err := s.mapper.SelectMode(m); err != nil {
		s.log.Warnf("mode: %v", err)
	}
}

// CyclePattern selects the next library pattern and returns its name.
func (s *Session) CyclePattern() string {
	names := life.Patterns()
	s.pattern = (s.pattern + 1) % len(names)
	s.log.Infof("pattern: %s", names[s.pattern])
	return names[s.pattern]
}

// SelectPattern selects a pattern by name.
func (s *Session) SelectPattern(name string) bool {
	for i, n := range life.Patterns() {
		if n == name {
			s.pattern = i
			return true
		}
	}
	return false
}

// Pattern returns the selected pattern name.
func (s *Session) Pattern() (string, bool) {
	if s.pattern < 0 {
		return "", false
	}
	return life.Patterns()[s.pattern], true
}

// StampPattern places the selected pattern with its corner at (x, y).
func (s *Session) StampPattern(x, y int) bool {
	name, ok := s.Pattern()
	if !ok {
		return false
	}
	p, err := life.LookupPattern(name)
	if err != nil {
		return false
	}
	s.sim.LoadPattern(p, x, y)
	return true
}

// ToggleCell flips one cell. Out-of-range coordinates are ignored.
func (s *Session) ToggleCell(x, y int) bool { return s.sim.ToggleCell(x, y) }

// PaintCell brings a dead cell to life; live cells are left alone.
func (s *Session) PaintCell(x, y int) bool {
	if s.sim.Cell(x, y) {
		return false
	}
	return s.sim.SetCell(x, y, true)
}

// AdjustVolume nudges the maximum volume.
func (s *Session) AdjustVolume(delta float64) {
	s.mapper.SetVolume(s.mapper.Volume() + delta)
}

// AdjustSpeed changes frames per generation; negative values speed up.
func (s *Session) AdjustSpeed(delta int) {
	s.speed = min(max(s.speed+delta, MinSpeed), MaxSpeed)
}

// IsSounding reports whether a cell triggered a note on the last tick.
func (s *Session) IsSounding(x, y int) bool {
	return s.music && s.mapper.IsSounding(x, y)
}

// NoteNameAt returns the note label for a living cell.
func (s *Session) NoteNameAt(x, y int) (string, bool) {
	if !s.music {
		return "", false
	}
	return s.mapper.NoteNameAt(x, y)
}

// Close releases the audio device.
func (s *Session) Close() error { return s.player.Close() }

// Parameters reports the session state for the HUD.
func (s *Session) Parameters() core.ParameterSnapshot {
	status := "running"
	if s.paused {
		status = "paused"
	}
	pattern, ok := s.Pattern()
	if !ok {
		pattern = "none"
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				core.IntParam("generation", "Generation", s.sim.Generation()),
				core.IntParam("population", "Population", s.sim.Population()),
				{Key: "density", Label: "Density", Type: core.ParamTypeFloat, Value: strconv.FormatFloat(s.sim.Density(), 'f', 3, 64)},
				core.TextParam("rule", "Rule", s.sim.RuleSet().Name),
				core.TextParam("pattern", "Pattern", pattern),
				core.TextParam("status", "Status", status),
			},
		},
		{
			Name: "Music",
			Params: []core.Parameter{
				core.TextParam("scale", "Scale", s.mapper.Scale().Name()),
				core.TextParam("mode", "Mode", s.mapper.Mode().String()),
				core.BoolParam("music", "Music", s.music),
				core.FloatParam("volume", "Volume", s.mapper.Volume()),
				core.FloatParam("sustain", "Sustain", s.synth.Sustain()),
				core.IntParam("speed", "Speed", s.speed),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable values.
func (s *Session) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "volume", Label: "Volume", Type: core.ParamTypeFloat, Step: 0.1, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "sustain", Label: "Sustain", Type: core.ParamTypeFloat, Step: 0.1, Min: 0, Max: synth.MaxSustain, HasMin: true, HasMax: true},
		{Key: "speed", Label: "Speed", Type: core.ParamTypeInt, Step: 1, Min: MinSpeed, Max: MaxSpeed, HasMin: true, HasMax: true},
	}
}

// SetIntParameter updates integer controls.
func (s *Session) SetIntParameter(key string, value int) bool {
	if key != "speed" || value < MinSpeed || value > MaxSpeed {
		return false
	}
	s.speed = value
	return true
}

// SetFloatParameter updates float controls.
func (s *Session) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "volume":
		s.mapper.SetVolume(value)
	case "sustain":
		s.synth.SetSustain(value)
	default:
		return false
	}
	return true
}
