package life

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRuleSet is returned when a rule set name is not in the catalog.
var ErrUnknownRuleSet = errors.New("life: unknown rule set")

// NeighborSet is a bitmask of neighbour counts in [0,8].
type NeighborSet uint16

// Neighbors builds a NeighborSet from the given counts. Counts outside
// [0,8] are ignored.
func Neighbors(counts ...int) NeighborSet {
	var s NeighborSet
	for _, n := range counts {
		if n < 0 || n > 8 {
			continue
		}
		s |= 1 << uint(n)
	}
	return s
}

// Has reports whether n is a member of the set.
func (s NeighborSet) Has(n int) bool {
	if n < 0 || n > 8 {
		return false
	}
	return s&(1<<uint(n)) != 0
}

// Counts lists the members in ascending order.
func (s NeighborSet) Counts() []int {
	var out []int
	for n := 0; n <= 8; n++ {
		if s.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

// String renders the set in B/S notation digits, e.g. "23".
func (s NeighborSet) String() string {
	var b strings.Builder
	for _, n := range s.Counts() {
		b.WriteByte(byte('0' + n))
	}
	return b.String()
}

// RuleSet is an immutable birth/survival rule.
type RuleSet struct {
	Name     string
	Birth    NeighborSet
	Survival NeighborSet
}

// Next returns whether a cell is alive in the next generation.
func (r RuleSet) Next(alive bool, neighbors int) bool {
	if alive {
		return r.Survival.Has(neighbors)
	}
	return r.Birth.Has(neighbors)
}

// Notation returns the rule in B3/S23 form.
func (r RuleSet) Notation() string {
	return "B" + r.Birth.String() + "/S" + r.Survival.String()
}

// Rule enumerates the built-in rule sets.
type Rule int

const (
	Conway Rule = iota
	HighLife
	DayNight
	Maze
	Coral
	Seeds
	Diamoeba
	LifeWithoutDeath

	ruleCount
)

var ruleTable = [ruleCount]RuleSet{
	Conway:           {Name: "conway", Birth: Neighbors(3), Survival: Neighbors(2, 3)},
	HighLife:         {Name: "highlife", Birth: Neighbors(3, 6), Survival: Neighbors(2, 3)},
	DayNight:         {Name: "day_night", Birth: Neighbors(3, 6, 7, 8), Survival: Neighbors(3, 4, 6, 7, 8)},
	Maze:             {Name: "maze", Birth: Neighbors(3), Survival: Neighbors(1, 2, 3, 4, 5)},
	Coral:            {Name: "coral", Birth: Neighbors(3), Survival: Neighbors(4, 5, 6, 7, 8)},
	Seeds:            {Name: "seeds", Birth: Neighbors(2), Survival: Neighbors()},
	Diamoeba:         {Name: "diamoeba", Birth: Neighbors(3, 5, 6, 7, 8), Survival: Neighbors(5, 6, 7, 8)},
	LifeWithoutDeath: {Name: "life_without_death", Birth: Neighbors(3), Survival: Neighbors(0, 1, 2, 3, 4, 5, 6, 7, 8)},
}

// RuleSet returns the catalog entry for r. Out-of-range values fall back to Conway.
func (r Rule) RuleSet() RuleSet {
	if r < 0 || r >= ruleCount {
		return ruleTable[Conway]
	}
	return ruleTable[r]
}

// String returns the catalog name of the rule.
func (r Rule) String() string { return r.RuleSet().Name }

// Rules returns the catalog in enumeration order.
func Rules() []RuleSet {
	out := make([]RuleSet, ruleCount)
	copy(out, ruleTable[:])
	return out
}

// ParseRule maps a catalog name to its Rule.
func ParseRule(name string) (Rule, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, rs := range ruleTable {
		if rs.Name == key {
			return Rule(i), nil
		}
	}
	return Conway, fmt.Errorf("%w: %q", ErrUnknownRuleSet, name)
}

// LookupRule returns the rule set registered under name.
func LookupRule(name string) (RuleSet, error) {
	r, err := ParseRule(name)
	if err != nil {
		return RuleSet{}, err
	}
	return r.RuleSet(), nil
}
