package personality

// Toggle names a runtime-disableable capability (spec.md §3.4's
// BotToggles).
type Toggle string

// Toggle constants.
const (
	ToggleFarming      Toggle = "farming"
	ToggleTactics      Toggle = "tactics"
	ToggleTown         Toggle = "town"
	TogglePreparedness Toggle = "preparedness"
	ToggleSweep        Toggle = "sweep"
	ToggleSurf         Toggle = "surf"
	ToggleKiting       Toggle = "kiting"
	ToggleTargeting    Toggle = "targeting"
	ToggleRetreat      Toggle = "retreat"
)

// Toggles is a set of disabled capabilities: Toggles[t] == true disables
// an already-unlocked capability for the remainder of the run.
type Toggles map[Toggle]bool

// Capabilities is the graded capability vector of spec.md §3.4.
type Capabilities struct {
	Farming      bool
	Tactics      int // 0 none; 1 debuffs; 2 +buffs; 3 +smart threat-filtered slow
	Town         int // 0 none; 1 portal; 2 +healer; 3 +commerce
	Preparedness int // 0..3, gates depth-readiness checks
	Sweep        int
	Surf         int
	Kiting       int // 0..3
	Targeting    int // 0..3
	Retreat      int // 0..3
}

// EffectiveFarming reports whether farming is unlocked and not toggled
// off.
func (c Capabilities) EffectiveFarming(t Toggles) bool {
	return c.Farming && !t[ToggleFarming]
}

// EffectiveTactics returns the effective tactics grade, 0 if toggled
// off.
func (c Capabilities) EffectiveTactics(t Toggles) int {
	if t[ToggleTactics] {
		return 0
	}
	return c.Tactics
}

// EffectiveTown returns the effective town-commerce grade, 0 if toggled
// off.
func (c Capabilities) EffectiveTown(t Toggles) int {
	if t[ToggleTown] {
		return 0
	}
	return c.Town
}

// EffectivePreparedness returns the effective preparedness grade, 0 if
// toggled off.
func (c Capabilities) EffectivePreparedness(t Toggles) int {
	if t[TogglePreparedness] {
		return 0
	}
	return c.Preparedness
}

// EffectiveSweep returns the effective sweep grade, 0 if toggled off.
func (c Capabilities) EffectiveSweep(t Toggles) int {
	if t[ToggleSweep] {
		return 0
	}
	return c.Sweep
}

// EffectiveSurf returns the effective surf grade, 0 if toggled off.
func (c Capabilities) EffectiveSurf(t Toggles) int {
	if t[ToggleSurf] {
		return 0
	}
	return c.Surf
}

// EffectiveKiting returns the effective kiting grade, 0 if toggled off.
func (c Capabilities) EffectiveKiting(t Toggles) int {
	if t[ToggleKiting] {
		return 0
	}
	return c.Kiting
}

// EffectiveTargeting returns the effective targeting grade, 0 if
// toggled off.
func (c Capabilities) EffectiveTargeting(t Toggles) int {
	if t[ToggleTargeting] {
		return 0
	}
	return c.Targeting
}

// EffectiveRetreat returns the effective retreat grade, 0 if toggled
// off.
func (c Capabilities) EffectiveRetreat(t Toggles) int {
	if t[ToggleRetreat] {
		return 0
	}
	return c.Retreat
}
