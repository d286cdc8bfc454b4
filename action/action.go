package action

import "github.com/deepburrow/borgcore/grid"

// Kind tags the variant of an Action, Go's idiomatic stand-in for a
// tagged union (spec.md §6.1).
type Kind int

// Action kind constants, one per spec.md §6.1 variant.
const (
	KindWait Kind = iota
	KindMove
	KindAttack
	KindRangedAttack
	KindPickup
	KindDrop
	KindEquip
	KindUnequip
	KindUse
	KindDescend
	KindAscend
	KindUseFountain
	KindUseAltar
	KindShopBuy
	KindShopSell
	KindCast
	KindUseReturnPortal
	KindUseHealer
	KindSteal
	KindShapeshift
	KindActivate
	KindRacialAbility
)

// Action is a single discrete decision returned by Decide. Only the
// fields relevant to Kind are populated; the rest are zero values.
type Action struct {
	Kind Kind

	Direction grid.Direction

	MonsterID string // Attack, RangedAttack, Steal
	ItemID    string // Pickup, Drop, Equip, Use, Activate
	Slot      int    // Unequip (entity.EquipSlot)

	MerchantIndex  int // ShopBuy, ShopSell
	ItemIndex      int // ShopBuy
	InventoryIndex int // ShopSell

	SpellID  string // Cast
	TargetID string // Cast, Activate, RacialAbility; "x,y" for position targets

	FormID string // Shapeshift
}

// Wait returns the fallback Action (spec.md §7: every degraded error
// path resolves to Wait).
func Wait() Action { return Action{Kind: KindWait} }

// Move returns a Move(direction) action.
func Move(d grid.Direction) Action { return Action{Kind: KindMove, Direction: d} }

// Attack returns an Attack(monster_id) action.
func Attack(monsterID string) Action { return Action{Kind: KindAttack, MonsterID: monsterID} }

// RangedAttack returns a RangedAttack(monster_id) action.
func RangedAttack(monsterID string) Action {
	return Action{Kind: KindRangedAttack, MonsterID: monsterID}
}

// Pickup returns a Pickup(item_id) action.
func Pickup(itemID string) Action { return Action{Kind: KindPickup, ItemID: itemID} }

// Drop returns a Drop(item_id) action.
func Drop(itemID string) Action { return Action{Kind: KindDrop, ItemID: itemID} }

// Equip returns an Equip(item_id) action.
func Equip(itemID string) Action { return Action{Kind: KindEquip, ItemID: itemID} }

// Unequip returns an Unequip(slot) action.
func Unequip(slot int) Action { return Action{Kind: KindUnequip, Slot: slot} }

// Use returns a Use(item_id) action.
func Use(itemID string) Action { return Action{Kind: KindUse, ItemID: itemID} }

// Descend returns a Descend action.
func Descend() Action { return Action{Kind: KindDescend} }

// Ascend returns an Ascend action.
func Ascend() Action { return Action{Kind: KindAscend} }

// UseFountain returns a UseFountain action.
func UseFountain() Action { return Action{Kind: KindUseFountain} }

// UseAltar returns a UseAltar action.
func UseAltar() Action { return Action{Kind: KindUseAltar} }

// ShopBuy returns a ShopBuy{merchant_index, item_index} action.
func ShopBuy(merchantIndex, itemIndex int) Action {
	return Action{Kind: KindShopBuy, MerchantIndex: merchantIndex, ItemIndex: itemIndex}
}

// ShopSell returns a ShopSell{merchant_index, inventory_index} action.
func ShopSell(merchantIndex, inventoryIndex int) Action {
	return Action{Kind: KindShopSell, MerchantIndex: merchantIndex, InventoryIndex: inventoryIndex}
}

// Cast returns a Cast{spell_id, target_id} action. targetID may be ""
// for untargeted spells, a monster id, or "x,y" for position targets.
func Cast(spellID, targetID string) Action {
	return Action{Kind: KindCast, SpellID: spellID, TargetID: targetID}
}

// UseReturnPortal returns a UseReturnPortal action.
func UseReturnPortal() Action { return Action{Kind: KindUseReturnPortal} }

// UseHealer returns a UseHealer action.
func UseHealer() Action { return Action{Kind: KindUseHealer} }

// Steal returns a Steal(monster_id) action.
func Steal(monsterID string) Action { return Action{Kind: KindSteal, MonsterID: monsterID} }

// Shapeshift returns a Shapeshift(form_id) action.
func Shapeshift(formID string) Action { return Action{Kind: KindShapeshift, FormID: formID} }

// Activate returns an Activate{item_id, target_id} action.
func Activate(itemID, targetID string) Action {
	return Action{Kind: KindActivate, ItemID: itemID, TargetID: targetID}
}

// RacialAbility returns a RacialAbility{target_id} action.
func RacialAbility(targetID string) Action {
	return Action{Kind: KindRacialAbility, TargetID: targetID}
}
