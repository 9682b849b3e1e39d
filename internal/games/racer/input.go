package racer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidMode = errors.New("invalid mode")
	ErrInvalidTier = errors.New("invalid difficulty")
	ErrUnknownKey  = errors.New("unknown key")
	ErrUnknownZone = errors.New("unknown zone")
)

// Mode is the number of local players.
type Mode int

const (
	ModeSingle Mode = 1
	ModeVersus Mode = 2
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeSingle || m == ModeVersus
}

func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeVersus:
		return "versus"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode accepts "1", "2", "single" and "versus".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "single", "solo":
		return ModeSingle, nil
	case "2", "versus", "vs":
		return ModeVersus, nil
	default:
		return 0, fmt.Errorf("racer: mode %q: %w", s, ErrInvalidMode)
	}
}

// Difficulty names a tier preset.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Normal Difficulty = "normal"
	Hard   Difficulty = "hard"
)

// Difficulties lists the tiers in menu order.
var Difficulties = []Difficulty{Easy, Normal, Hard}

// ParseTier validates a difficulty name.
func ParseTier(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Difficulties {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("racer: difficulty %q: %w", s, ErrInvalidTier)
}

// DefaultTiers returns the built-in tier presets.
func DefaultTiers() map[Difficulty]Tier {
	return map[Difficulty]Tier{
		Easy:   {Speed: 2, SpawnRate: 0.015, Step: 4},
		Normal: {Speed: 3.5, SpawnRate: 0.02, Step: 5},
		Hard:   {Speed: 6, SpawnRate: 0.035, Step: 6},
	}
}

// Key is a movement control, named after browser key codes.
type Key string

const (
	KeyA          Key = "KeyA"
	KeyD          Key = "KeyD"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
)

// ParseKey validates a key code.
func ParseKey(s string) (Key, error) {
	k := Key(s)
	if k.bit() == 0 {
		return "", fmt.Errorf("racer: key %q: %w", s, ErrUnknownKey)
	}
	return k, nil
}

func (k Key) bit() KeySet {
	switch k {
	case KeyA:
		return 1 << 0
	case KeyD:
		return 1 << 1
	case KeyArrowLeft:
		return 1 << 2
	case KeyArrowRight:
		return 1 << 3
	default:
		return 0
	}
}

// KeySet is the set of currently held keys. Unknown keys are never members.
type KeySet uint8

// Has reports whether k is held.
func (ks KeySet) Has(k Key) bool {
	b := k.bit()
	return b != 0 && ks&b != 0
}

// With returns the set with k added.
func (ks KeySet) With(k Key) KeySet {
	return ks | k.bit()
}

// Without returns the set with k removed.
func (ks KeySet) Without(k Key) KeySet {
	return ks &^ k.bit()
}

// Keys returns the held keys in a stable order.
func (ks KeySet) Keys() []Key {
	var out []Key
	for _, k := range []Key{KeyA, KeyD, KeyArrowLeft, KeyArrowRight} {
		if ks.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

// Zone is a touch area that nudges a car by one step.
type Zone string

const (
	ZoneP1Left  Zone = "p1-left"
	ZoneP1Right Zone = "p1-right"
	ZoneP2Left  Zone = "p2-left"
	ZoneP2Right Zone = "p2-right"
)

// Valid reports whether z is a known zone.
func (z Zone) Valid() bool {
	switch z {
	case ZoneP1Left, ZoneP1Right, ZoneP2Left, ZoneP2Right:
		return true
	default:
		return false
	}
}

// ParseZone validates a zone name.
func ParseZone(s string) (Zone, error) {
	z := Zone(s)
	if !z.Valid() {
		return "", fmt.Errorf("racer: zone %q: %w", s, ErrUnknownZone)
	}
	return z, nil
}

// Outcome is the terminal result of a round.
type Outcome string

const (
	OutcomeNone     Outcome = ""
	OutcomeGameOver Outcome = "GAME_OVER"
	OutcomeDraw     Outcome = "DRAW"
	OutcomeP1       Outcome = "P1"
	OutcomeP2       Outcome = "P2"
)
