package entity

import "github.com/deepburrow/borgcore/grid"

// AttackMethod enumerates the delivery method of a monster attack.
type AttackMethod int

// Attack method constants.
const (
	AttackMelee AttackMethod = iota
	AttackRangedPhysical
	AttackBreath
	AttackGaze
	AttackTouch
)

// Attack is one structured attack a monster template can make.
type Attack struct {
	Method     AttackMethod
	Dice       string // e.g. "2d8+3"
	EffectType string // e.g. "poison", "paralysis", ""
}

// MonsterSpell is a spell a monster can cast with a given frequency.
type MonsterSpell struct {
	ID        SpellID
	Frequency int // chance out of 100 per eligible turn
}

// MonsterFlag enumerates boolean monster template flags.
type MonsterFlag int

// Monster flag constants.
const (
	FlagUnique MonsterFlag = iota
	FlagBoss
	FlagVictoryBoss
)

// MonsterTemplate is the shared, read-only definition of a monster kind.
type MonsterTemplate struct {
	ID           string
	Name         string
	Attacks      []Attack
	Spells       []MonsterSpell
	Resistances  map[string]bool
	Immunities   map[string]bool
	MinDepth     int
	Speed        int // 100 = normal
	Flags        map[MonsterFlag]bool
	NativeDepths [2]int // [min,max] depth range this monster is native to (uniques)
}

func (t *MonsterTemplate) hasFlag(f MonsterFlag) bool {
	if t == nil || t.Flags == nil {
		return false
	}
	return t.Flags[f]
}

// IsUnique reports whether this template is a named unique.
func (t *MonsterTemplate) IsUnique() bool { return t.hasFlag(FlagUnique) }

// IsBoss reports whether this template is a boss.
func (t *MonsterTemplate) IsBoss() bool { return t.hasFlag(FlagBoss) }

// IsVictoryBoss reports whether this is the run-ending victory boss.
func (t *MonsterTemplate) IsVictoryBoss() bool { return t.hasFlag(FlagVictoryBoss) }

// MonsterDebuff/MonsterBuff are per-instance timed conditions on a
// monster, distinct from Character StatusEffect only in namespace.
type MonsterDebuff struct {
	Type           StatusType
	TurnsRemaining int
	Value          int
}

// MonsterBuff is a per-instance timed buff on a monster (e.g. hasted).
type MonsterBuff struct {
	Type           BuffType
	TurnsRemaining int
}

// Monster is a MonsterTemplate plus per-instance runtime state. Per
// spec.md §6.2, the monsters list the core receives contains only
// living monsters (HP > 0) within the agent's field of view.
type Monster struct {
	ID       string
	Template *MonsterTemplate
	HP       int
	MaxHP    int
	Position grid.Point
	Energy   int
	IsAwake  bool
	Debuffs  []MonsterDebuff
	Buffs    []MonsterBuff
}

// EffectiveSpeed returns the monster's speed adjusted for haste/slow
// buffs/debuffs (speed 100 = normal pace; >110 counts as "fast" for
// debuff targeting per spec.md §4.D.6).
func (m *Monster) EffectiveSpeed() int {
	speed := 100
	if m.Template != nil {
		speed = m.Template.Speed
	}
	for _, b := range m.Buffs {
		if b.Type == BuffSpeed {
			speed += 30
		}
	}
	for _, d := range m.Debuffs {
		if d.Type == StatusSlowed {
			speed -= 30
		}
	}
	return speed
}

// IsSlowed reports whether the monster currently has an active slow
// with at least the given turns remaining.
func (m *Monster) SlowTurnsRemaining() int {
	for _, d := range m.Debuffs {
		if d.Type == StatusSlowed {
			return d.TurnsRemaining
		}
	}
	return 0
}

// IsHasted reports whether the monster currently has a speed buff.
func (m *Monster) IsHasted() bool {
	for _, b := range m.Buffs {
		if b.Type == BuffSpeed {
			return true
		}
	}
	return false
}

// HPRatio returns HP/MaxHP, or 0 if MaxHP is 0.
func (m *Monster) HPRatio() float64 {
	if m.MaxHP <= 0 {
		return 0
	}
	return float64(m.HP) / float64(m.MaxHP)
}
