package entity

import "github.com/deepburrow/borgcore/grid"

// GroundItem is a visible item lying on the dungeon floor.
type GroundItem struct {
	Item     *Item
	Position grid.Point
}

// AltarState describes a visible altar dungeon feature.
type AltarState struct {
	Position grid.Point
	Used     bool
}

// MerchantKind enumerates the shop type a merchant operates.
type MerchantKind int

// Merchant kind constants.
const (
	MerchantGeneral MerchantKind = iota
	MerchantArmor
	MerchantWeapon
	MerchantMagic
	MerchantTemple
)

// MerchantState describes a visible merchant (or healer/temple) dungeon
// feature.
type MerchantState struct {
	Index     int
	Kind      MerchantKind
	Position  grid.Point
	Inventory []*Item
}
