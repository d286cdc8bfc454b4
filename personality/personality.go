package personality

// Config holds the five personality sliders, each in [0,100], per
// spec.md §3.2.
type Config struct {
	Aggression  int
	Greed       int
	Caution     int
	Exploration int
	Patience    int
}

// clamp restricts v to [0,100].
func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Clamp returns a copy of c with every slider clamped to [0,100].
func (c Config) Clamp() Config {
	return Config{
		Aggression:  clamp(c.Aggression),
		Greed:       clamp(c.Greed),
		Caution:     clamp(c.Caution),
		Exploration: clamp(c.Exploration),
		Patience:    clamp(c.Patience),
	}
}

// Preset names the five fixed personality presets.
type Preset string

// Preset constants.
const (
	PresetCautious    Preset = "cautious"
	PresetAggressive  Preset = "aggressive"
	PresetGreedy      Preset = "greedy"
	PresetSpeedrunner Preset = "speedrunner"
	PresetCustom      Preset = "custom"
)

// presets is the fixed slider table for the four non-custom presets.
var presets = map[Preset]Config{
	PresetCautious:    {Aggression: 20, Greed: 30, Caution: 80, Exploration: 60, Patience: 70},
	PresetAggressive:  {Aggression: 85, Greed: 50, Caution: 20, Exploration: 40, Patience: 30},
	PresetGreedy:      {Aggression: 45, Greed: 90, Caution: 40, Exploration: 70, Patience: 50},
	PresetSpeedrunner: {Aggression: 55, Greed: 10, Caution: 25, Exploration: 15, Patience: 10},
}

// Resolve returns the fixed Config for a named preset. It returns false
// for PresetCustom (and any unknown name) since a custom preset's
// Config must come from the host.
func Resolve(p Preset) (Config, bool) {
	c, ok := presets[p]
	return c, ok
}

// ItemDetourRadius returns floor(greed/10)+3, the Chebyshev radius
// within which a TAKE goal considers ground items (spec.md §3.2, §4.F).
func (c Config) ItemDetourRadius() int {
	return c.Greed/10 + 3
}

// PickupThreshold returns max(5, 15 - greed/10): the minimum item value
// worth a detour (spec.md §3.2).
func (c Config) PickupThreshold() int {
	v := 15 - c.Greed/10
	if v < 5 {
		return 5
	}
	return v
}

// PreparationScale returns caution/50, the scale factor spec.md §6.3
// applies to depth-readiness count requirements.
func (c Config) PreparationScale() float64 {
	return float64(c.Caution) / 50.0
}

// RetreatHPRatio returns the HP ratio below which the agent should
// retreat: caution/100 (spec.md §3.2).
func (c Config) RetreatHPRatio() float64 {
	return float64(c.Caution) / 100.0
}

// AvoidanceThreshold is the danger level above which a tile is
// considered worth fleeing: 100 + aggression (GLOSSARY).
func (c Config) AvoidanceThreshold() int {
	return 100 + c.Aggression
}

// IsCautious reports whether the caution slider is high enough to
// retreat from danger rather than bullrush past it (spec.md §4.F
// priority 11's "cautious personality sets danger_blocked_descent").
// Keyed off the raw slider rather than Preset so a custom config with a
// high caution value gets the same retreat behavior a cautious preset
// would, matching RetreatHPRatio and AvoidanceThreshold's use of the
// slider directly instead of the preset name.
func (c Config) IsCautious() bool {
	return c.Caution >= 50
}

// EncumbranceTolerance returns the inventory-fullness multiplier the
// personality preset applies before a TOWN_TRIP triggers on fullness
// grounds (spec.md §6.3).
func (p Preset) EncumbranceTolerance() float64 {
	switch p {
	case PresetCautious:
		return 0.9
	case PresetSpeedrunner:
		return 0.8
	case PresetGreedy:
		return 1.2
	case PresetAggressive:
		return 1.1
	default:
		return 1.0
	}
}
