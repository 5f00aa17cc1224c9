package life

import "strconv"

// Config holds parameters for the life engine.
type Config struct {
	Width  int
	Height int
	Rule   Rule
	Seed   int64
	// Fill is the probability of a live cell when Reset seeds the board.
	Fill float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Width: 60, Height: 40, Rule: Conway, Seed: 42, Fill: 0.5}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["rule"]; ok {
		if parsed, err := ParseRule(v); err == nil {
			c.Rule = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["fill"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Fill = parsed
		}
	}
	return c
}
