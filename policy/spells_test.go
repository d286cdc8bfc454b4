package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deepburrow/borgcore/action"
	"github.com/deepburrow/borgcore/entity"
	"github.com/deepburrow/borgcore/grid"
	"github.com/deepburrow/borgcore/personality"
	"github.com/deepburrow/borgcore/policy"
)

func casterCharacter() *entity.Character {
	return &entity.Character{
		Position:      grid.Point{X: 5, Y: 5},
		HP:            100,
		MaxHP:         100,
		MP:            100,
		MaxMP:         100,
		Stats:         entity.Stats{STR: 10},
		ClassID:       "mage",
		KnownSpells:   []entity.SpellID{"heal-lesser", "heal-major", "fireball", "slow", "phase-door", "teleport"},
		SpellCooldown: map[entity.SpellID]uint64{},
	}
}

func testCatalog() entity.SpellCatalog {
	return entity.SpellCatalog{
		"heal-lesser": {ID: "heal-lesser", School: entity.SpellHeal, ManaCost: 5, HealDice: "2d8"},
		"heal-major":  {ID: "heal-major", School: entity.SpellHeal, ManaCost: 20, HealDice: "8d8"},
		"fireball":    {ID: "fireball", School: entity.SpellDamage, ManaCost: 10, DamageDice: "6d6", IsAOE: true},
		"slow":        {ID: "slow", School: entity.SpellDebuff, ManaCost: 8, DebuffType: entity.StatusSlowed, DebuffDuration: 6},
		"phase-door":  {ID: "phase-door", School: entity.SpellEscape, ManaCost: 3, EscapeKind: entity.ScrollPhaseDoor},
		"teleport":    {ID: "teleport", School: entity.SpellEscape, ManaCost: 15, EscapeKind: entity.ScrollTeleportation},
	}
}

func visibleMonster(pos grid.Point) *entity.Monster {
	return &entity.Monster{
		Template: &entity.MonsterTemplate{Attacks: []entity.Attack{{Method: entity.AttackMelee, Dice: "1d6"}}},
		HP:       30,
		MaxHP:    30,
		Position: pos,
		IsAwake:  true,
	}
}

func TestHealSpell_NoActionWhenHealthy(t *testing.T) {
	c := casterCharacter()
	in := policy.Input{Character: c, SpellCatalog: testCatalog()}
	_, ok := policy.HealSpell(in)
	assert.False(t, ok)
}

func TestHealSpell_CastsWhenWounded(t *testing.T) {
	c := casterCharacter()
	c.HP = 30
	in := policy.Input{Character: c, SpellCatalog: testCatalog()}
	act, ok := policy.HealSpell(in)
	assert.True(t, ok)
	assert.Equal(t, action.KindCast, act.Kind)
}

func TestDamageSpell_CastsAtNearestTarget(t *testing.T) {
	c := casterCharacter()
	m := visibleMonster(grid.Point{X: 8, Y: 5})
	in := policy.Input{Character: c, SpellCatalog: testCatalog(), Monsters: []*entity.Monster{m}}
	act, ok := policy.DamageSpell(in)
	assert.True(t, ok)
	assert.Equal(t, "fireball", act.SpellID)
	assert.Equal(t, m.ID, act.TargetID)
}

func TestDamageSpell_NoTargetsReturnsFalse(t *testing.T) {
	c := casterCharacter()
	in := policy.Input{Character: c, SpellCatalog: testCatalog()}
	_, ok := policy.DamageSpell(in)
	assert.False(t, ok)
}

func TestDebuffSpell_PrefersFastMonster(t *testing.T) {
	c := casterCharacter()
	slow := visibleMonster(grid.Point{X: 6, Y: 5})
	slow.ID = "slow"
	slow.MaxHP = 200
	fast := visibleMonster(grid.Point{X: 7, Y: 5})
	fast.ID = "fast"
	fast.Template = &entity.MonsterTemplate{Speed: 130, Attacks: []entity.Attack{{Method: entity.AttackMelee, Dice: "1d6"}}}
	in := policy.Input{Character: c, SpellCatalog: testCatalog(), Monsters: []*entity.Monster{slow, fast}}
	act, ok := policy.DebuffSpell(in)
	assert.True(t, ok)
	assert.Equal(t, fast.ID, act.TargetID)
}

func TestDebuffSpell_SmartDebuffSkipsNearlyDeadMonster(t *testing.T) {
	c := casterCharacter()
	c.Stats.STR = 100
	m := visibleMonster(grid.Point{X: 6, Y: 5})
	m.HP = 5
	m.MaxHP = 5
	in := policy.Input{
		Character:    c,
		SpellCatalog: testCatalog(),
		Monsters:     []*entity.Monster{m},
		Capabilities: personality.Capabilities{Tactics: 3},
	}
	_, ok := policy.DebuffSpell(in)
	assert.False(t, ok)
}

func TestEscapeSpell_PrefersFullTeleportWhenSurrounded(t *testing.T) {
	c := casterCharacter()
	in := policy.Input{Character: c, SpellCatalog: testCatalog(), Adjacent: 3}
	act, ok := policy.EscapeSpell(in)
	assert.True(t, ok)
	assert.Equal(t, "teleport", act.SpellID)
}

func TestEscapeSpell_NoTriggerWhenSafe(t *testing.T) {
	c := casterCharacter()
	in := policy.Input{Character: c, SpellCatalog: testCatalog()}
	_, ok := policy.EscapeSpell(in)
	assert.False(t, ok)
}

func TestSummonSpell_NonSummonerReturnsFalse(t *testing.T) {
	c := casterCharacter()
	in := policy.Input{Character: c, SpellCatalog: testCatalog()}
	_, ok := policy.SummonSpell(in)
	assert.False(t, ok)
}

func TestSummonSpell_RangerCapsAtOneWolf(t *testing.T) {
	c := casterCharacter()
	c.ClassID = "ranger"
	c.KnownSpells = []entity.SpellID{"summon-wolf"}
	catalog := entity.SpellCatalog{
		"summon-wolf": {ID: "summon-wolf", School: entity.SpellSummon, SummonKind: "wolf"},
	}
	in := policy.Input{Character: c, SpellCatalog: catalog, PermanentPets: map[string]int{"wolf": 1}}
	_, ok := policy.SummonSpell(in)
	assert.False(t, ok)

	in.PermanentPets = map[string]int{"wolf": 0}
	act, ok := policy.SummonSpell(in)
	assert.True(t, ok)
	assert.Equal(t, "summon-wolf", act.SpellID)
}

func TestShadowStep_NonRogueReturnsFalse(t *testing.T) {
	c := casterCharacter()
	c.ClassID = "mage"
	in := policy.Input{Character: c, SpellCatalog: testCatalog()}
	_, ok := policy.ShadowStep(in)
	assert.False(t, ok)
}

func TestShadowStep_RogueTargetsDistantBoss(t *testing.T) {
	c := casterCharacter()
	c.ClassID = "rogue"
	c.KnownSpells = []entity.SpellID{"shadow-step"}
	catalog := entity.SpellCatalog{"shadow-step": {ID: "shadow-step", School: entity.SpellShadowStep}}
	boss := visibleMonster(grid.Point{X: 9, Y: 9})
	boss.Template.Flags = map[entity.MonsterFlag]bool{entity.FlagBoss: true}
	in := policy.Input{Character: c, SpellCatalog: catalog, Monsters: []*entity.Monster{boss}}
	act, ok := policy.ShadowStep(in)
	assert.True(t, ok)
	assert.Equal(t, boss.ID, act.TargetID)
}

func TestShadowStep_SkipsWhenSneakAttackBuffActive(t *testing.T) {
	c := casterCharacter()
	c.ClassID = "rogue"
	c.KnownSpells = []entity.SpellID{"shadow-step"}
	catalog := entity.SpellCatalog{"shadow-step": {ID: "shadow-step", School: entity.SpellShadowStep}}
	boss := visibleMonster(grid.Point{X: 9, Y: 9})
	in := policy.Input{Character: c, SpellCatalog: catalog, Monsters: []*entity.Monster{boss}, HasSneakAttackBuff: true}
	_, ok := policy.ShadowStep(in)
	assert.False(t, ok)
}

func TestDimensionDoorKite_GatedByKitingCapability(t *testing.T) {
	c := casterCharacter()
	m := visibleMonster(grid.Point{X: 6, Y: 5})
	in := policy.Input{
		Character:    c,
		SpellCatalog: testCatalog(),
		Monsters:     []*entity.Monster{m},
		Capabilities: personality.Capabilities{Kiting: 2},
	}
	_, ok := policy.DimensionDoorKite(in, 5, func(grid.Point) bool { return true })
	assert.False(t, ok)
}

func TestDimensionDoorKite_MovesAwayFromThreat(t *testing.T) {
	c := casterCharacter()
	c.KnownSpells = append(c.KnownSpells, "dimension-door")
	catalog := testCatalog()
	catalog["dimension-door"] = &entity.SpellTemplate{ID: "dimension-door", School: entity.SpellDimensionDoor}
	lvl := grid.NewLevel(20, 20, 1)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			lvl.SetTile(grid.Point{X: x, Y: y}, grid.Tile{Type: grid.TileFloor})
		}
	}
	m := visibleMonster(grid.Point{X: 6, Y: 5})
	in := policy.Input{
		Character:    c,
		SpellCatalog: catalog,
		Monsters:     []*entity.Monster{m},
		Capabilities: personality.Capabilities{Kiting: 3},
		Level:        lvl,
		Occupied:     map[grid.Point]bool{},
	}
	act, ok := policy.DimensionDoorKite(in, 5, func(grid.Point) bool { return true })
	assert.True(t, ok)
	assert.Equal(t, "dimension-door", act.SpellID)
}
