package browse

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// ModifierKey names one of the four scoring modifiers.
type ModifierKey string

const (
	ModifierGoal            ModifierKey = "goal"
	ModifierAssist          ModifierKey = "assist"
	ModifierShortHandedGoal ModifierKey = "short_handed_goal"
	ModifierGameWinningGoal ModifierKey = "game_winning_goal"
)

// ParseModifierKey validates a wire-format modifier key.
func ParseModifierKey(s string) (ModifierKey, error) {
	switch ModifierKey(s) {
	case ModifierGoal, ModifierAssist, ModifierShortHandedGoal, ModifierGameWinningGoal:
		return ModifierKey(s), nil
	}
	return "", fmt.Errorf("unknown modifier key %q", s)
}

// Modifier is a per-stat-category multiplier with an independent enable flag.
type Modifier struct {
	Value   float64 `json:"value"`
	Enabled bool    `json:"enabled"`
}

// ModifierSet is the committed state of all four modifiers.
type ModifierSet struct {
	Goal            Modifier `json:"goal"`
	Assist          Modifier `json:"assist"`
	ShortHandedGoal Modifier `json:"short_handed_goal"`
	GameWinningGoal Modifier `json:"game_winning_goal"`
}

// StagedModifier is an in-progress edit: the raw value as typed plus the
// staged enabled flag. Raw may be an intermediate state like "1." that is
// not yet a complete numeric literal.
type StagedModifier struct {
	Raw     string `json:"raw"`
	Enabled bool   `json:"enabled"`
}

// ModifierStore owns staged and committed modifier state plus the global
// activation toggle. Edits are staged per key and published atomically by
// Commit.
type ModifierStore struct {
	mu        sync.Mutex
	committed ModifierSet
	staged    map[ModifierKey]StagedModifier
	active    bool
}

func NewModifierStore() *ModifierStore {
	s := &ModifierStore{
		committed: ModifierSet{
			Goal:            Modifier{Value: 1, Enabled: true},
			Assist:          Modifier{Value: 1, Enabled: true},
			ShortHandedGoal: Modifier{Value: 1, Enabled: true},
			GameWinningGoal: Modifier{Value: 1, Enabled: true},
		},
		active: true,
	}
	s.staged = stagedFromCommitted(s.committed)
	return s
}

func stagedFromCommitted(m ModifierSet) map[ModifierKey]StagedModifier {
	raw := func(mod Modifier) StagedModifier {
		return StagedModifier{
			Raw:     strconv.FormatFloat(mod.Value, 'f', -1, 64),
			Enabled: mod.Enabled,
		}
	}
	return map[ModifierKey]StagedModifier{
		ModifierGoal:            raw(m.Goal),
		ModifierAssist:          raw(m.Assist),
		ModifierShortHandedGoal: raw(m.ShortHandedGoal),
		ModifierGameWinningGoal: raw(m.GameWinningGoal),
	}
}

// validModifierInput accepts the empty string, a lone decimal point, or a
// plain unsigned numeric literal. This lets incremental typing ("1.") pass
// without ever staging a malformed number.
func validModifierInput(s string) bool {
	dots := 0
	for _, r := range s {
		switch {
		case r == '.':
			dots++
			if dots > 1 {
				return false
			}
		case r < '0' || r > '9':
			return false
		}
	}
	return true
}

// StageEdit records a raw value edit for one modifier. Invalid input is
// rejected and leaves staged state unchanged; the return value reports
// whether the edit was accepted.
func (s *ModifierStore) StageEdit(key ModifierKey, raw string) bool {
	if !validModifierInput(raw) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	staged := s.staged[key]
	staged.Raw = raw
	s.staged[key] = staged
	return true
}

// ToggleEnabled flips the staged enabled flag for one modifier.
func (s *ModifierStore) ToggleEnabled(key ModifierKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	staged := s.staged[key]
	staged.Enabled = !staged.Enabled
	s.staged[key] = staged
}

// Commit parses every staged value and publishes all four modifiers
// atomically. A staged value that does not parse to a finite number (for
// example an empty field) fails the whole commit and leaves committed state
// untouched.
func (s *ModifierStore) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	parsed := make(map[ModifierKey]Modifier, len(s.staged))
	var bad []string
	for key, staged := range s.staged {
		v, err := strconv.ParseFloat(staged.Raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			bad = append(bad, string(key))
			continue
		}
		parsed[key] = Modifier{Value: v, Enabled: staged.Enabled}
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return fmt.Errorf("cannot commit modifiers, invalid values for: %s", strings.Join(bad, ", "))
	}

	s.committed = ModifierSet{
		Goal:            parsed[ModifierGoal],
		Assist:          parsed[ModifierAssist],
		ShortHandedGoal: parsed[ModifierShortHandedGoal],
		GameWinningGoal: parsed[ModifierGameWinningGoal],
	}
	return nil
}

// Modifiers returns the committed state.
func (s *ModifierStore) Modifiers() ModifierSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed
}

// Staged returns a copy of the staged edits.
func (s *ModifierStore) Staged() map[ModifierKey]StagedModifier {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[ModifierKey]StagedModifier, len(s.staged))
	for k, v := range s.staged {
		out[k] = v
	}
	return out
}

// Active reports the global activation toggle.
func (s *ModifierStore) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *ModifierStore) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

// Snapshot returns the committed modifiers and activation flag together, for
// a consistent projection pass.
func (s *ModifierStore) Snapshot() (ModifierSet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed, s.active
}
