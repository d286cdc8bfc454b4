// Package query provides pure, read-only queries over a Character's
// inventory, equipment, and known spells: the item/spell query library
// spec.md §4.C describes. Every function here returns the first matching
// inventory item in insertion order (property P5) and never mutates the
// character it inspects.
//
// Category classification (ConsumableKind) is derived entirely from
// structured ItemTemplate fields, never from display names, except for
// the narrow scroll-name whitelist centralised in
// entity.ClassifyScrollName.
package query
