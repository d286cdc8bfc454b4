package entity

import "github.com/deepburrow/borgcore/grid"

// StatusType enumerates a status effect kind.
type StatusType int

// Status effect constants referenced by spec.md §4.D.1's cure priority
// order.
const (
	StatusParalyzed StatusType = iota
	StatusPoisoned
	StatusConfused
	StatusBlind
	StatusSlowed
	StatusTerrified
	StatusDrained
	StatusHasted
)

// StatusEffect is a single active status on a character or monster.
type StatusEffect struct {
	Type           StatusType
	TurnsRemaining int
	Value          int
}

// Stats holds the five core ability scores.
type Stats struct {
	STR, INT, WIS, DEX, CON int
}

// SpellID identifies a known/castable spell by structured id, never by
// display-name matching.
type SpellID string

// Character is the read-only per-tick snapshot of the agent's own
// avatar. HP and MP are non-negative; HP never exceeds MaxHP.
type Character struct {
	Position grid.Point
	Depth    int

	HP, MaxHP int
	MP, MaxMP int

	Stats Stats

	Level      int
	Experience int
	Gold       int

	Inventory []*Item
	Equipment map[EquipSlot]*Item

	Status        []StatusEffect
	Resistances   map[string]bool
	KnownSpells   []SpellID
	SpellCooldown map[SpellID]uint64 // spell id -> turn when castable

	ShapeshiftForm string // "" if not shifted
	RaceID         string
	ClassID        string

	// ArmorReduction is the fraction (0..1) of incoming damage the
	// character's armor absorbs. The exact melee damage formula is a
	// host-owned black box (spec.md §9 Open Question 1); this module
	// only ever consumes the resulting reduction fraction.
	ArmorReduction float64
}

// HPRatio returns HP/MaxHP, or 0 if MaxHP is 0.
func (c *Character) HPRatio() float64 {
	if c.MaxHP <= 0 {
		return 0
	}
	return float64(c.HP) / float64(c.MaxHP)
}

// MPRatio returns MP/MaxMP, or 0 if MaxMP is 0.
func (c *Character) MPRatio() float64 {
	if c.MaxMP <= 0 {
		return 0
	}
	return float64(c.MP) / float64(c.MaxMP)
}

// HasStatus reports whether the character currently has the given
// status.
func (c *Character) HasStatus(t StatusType) bool {
	for _, s := range c.Status {
		if s.Type == t {
			return true
		}
	}
	return false
}

// StatusTurnsRemaining returns how many turns a status has left, or 0
// if the character does not have it.
func (c *Character) StatusTurnsRemaining(t StatusType) int {
	for _, s := range c.Status {
		if s.Type == t {
			return s.TurnsRemaining
		}
	}
	return 0
}

// CanCastSpell reports whether spell is known and off cooldown at turn.
func (c *Character) CanCastSpell(id SpellID, turn uint64) bool {
	known := false
	for _, s := range c.KnownSpells {
		if s == id {
			known = true
			break
		}
	}
	if !known {
		return false
	}
	readyAt, gated := c.SpellCooldown[id]
	if !gated {
		return true
	}
	return turn >= readyAt
}

// InventoryFull reports whether inventory is at or above the hard cap.
func (c *Character) InventoryFull(limit int) bool {
	return len(c.Inventory) >= limit
}
