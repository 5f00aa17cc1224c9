package app

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	pcore "lifetones/pkg/core"
	"lifetones/pkg/sims/life"
	"lifetones/pkg/sonify"
	"lifetones/pkg/synth"
)

// Speed bounds, in frames per generation. Lower is faster.
const (
	MinSpeed     = 1
	MaxSpeed     = 20
	DefaultSpeed = MaxSpeed
)

// Config represents the command-line parameters for the application.
type Config struct {
	Sim    string
	Width  int
	Height int
	Scale  int
	TPS    int
	Seed   int64
	// Fill seeds the board randomly when positive; zero starts empty.
	Fill float64

	Rule      string
	ScaleName string
	Mode      string
	Pattern   string

	Volume     float64
	Sustain    float64
	Speed      int
	SampleRate int

	LogLevel string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	mc := sonify.DefaultConfig()
	return &Config{
		Sim:        "life",
		Width:      60,
		Height:     40,
		Scale:      20,
		TPS:        60,
		Seed:       42,
		Rule:       life.Conway.String(),
		ScaleName:  mc.Scale.String(),
		Mode:       mc.Mode.String(),
		Volume:     mc.MaxVolume,
		Sustain:    synth.DefaultSustain,
		Speed:      DefaultSpeed,
		SampleRate: synth.DefaultSampleRate,
		LogLevel:   "info",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run ("+strings.Join(pcore.SimNames(), ", ")+")")
	fs.IntVar(&c.Width, "w", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "grid height in cells")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per cell")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random fills")
	fs.Float64Var(&c.Fill, "fill", c.Fill, "initial live-cell probability (0 starts empty)")
	fs.StringVar(&c.Rule, "rule", c.Rule, "rule set (conway, highlife, day_night, maze, coral, seeds, diamoeba, life_without_death)")
	fs.StringVar(&c.ScaleName, "musical-scale", c.ScaleName, "musical scale")
	fs.StringVar(&c.Mode, "mode", c.Mode, "sonification mode (position, density, pattern, harmonic)")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "pattern stamped at the centre on start")
	fs.Float64Var(&c.Volume, "volume", c.Volume, "maximum note volume [0,1]")
	fs.Float64Var(&c.Sustain, "sustain", c.Sustain, "note decay tail in seconds [0,3]")
	fs.IntVar(&c.Speed, "speed", c.Speed, "frames per generation (1 fastest, 20 slowest)")
	fs.IntVar(&c.SampleRate, "rate", c.SampleRate, "audio sample rate")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error, none)")
}

// SimOptions returns the options passed to the simulation factory.
func (c *Config) SimOptions() map[string]string {
	return map[string]string{
		"w":    strconv.Itoa(c.Width),
		"h":    strconv.Itoa(c.Height),
		"rule": c.Rule,
		"seed": strconv.FormatInt(c.Seed, 10),
		"fill": strconv.FormatFloat(c.Fill, 'g', -1, 64),
	}
}

// Validate reports every invalid field.
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("grid size %dx%d must be positive", c.Width, c.Height))
	}
	if c.Fill < 0 || c.Fill > 1 {
		errs = append(errs, fmt.Errorf("fill %v outside [0,1]", c.Fill))
	}
	if c.Speed < MinSpeed || c.Speed > MaxSpeed {
		errs = append(errs, fmt.Errorf("speed %d outside [%d,%d]", c.Speed, MinSpeed, MaxSpeed))
	}
	if c.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("sample rate %d must be positive", c.SampleRate))
	}
	if _, err := life.ParseRule(c.Rule); err != nil {
		errs = append(errs, err)
	}
	if _, err := sonify.ParseScale(c.ScaleName); err != nil {
		errs = append(errs, err)
	}
	if _, err := sonify.ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if c.Pattern != "" {
		if _, err := life.LookupPattern(c.Pattern); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
