package personality

// ClassProfile captures how a class modifies the base personality and
// its combat preferences (spec.md §3.3).
type ClassProfile struct {
	PrefersRanged  bool
	PrefersMelee   bool
	HealsPriority  bool
	NeverRetreats  bool
	AggressionMod  int
	CautionMod     int
	EngageDistance int
}

// Effective returns the sum of base sliders and this profile's
// modifiers, clamped to [0,100] (spec.md §3.3).
func (p ClassProfile) Effective(base Config) Config {
	return Config{
		Aggression:  clamp(base.Aggression + p.AggressionMod),
		Greed:       clamp(base.Greed),
		Caution:     clamp(base.Caution + p.CautionMod),
		Exploration: clamp(base.Exploration),
		Patience:    clamp(base.Patience),
	}
}

// ClassTier groups classes into the three depth-gate tiers of spec.md
// §3.3.
type ClassTier int

// Class tier constants.
const (
	TierMedium ClassTier = iota
	TierTank
	TierSquishy
)

// tankClasses and squishyClasses are the only classes that deviate from
// the MEDIUM default tier (spec.md §3.3).
var tankClasses = map[string]bool{
	"warrior": true, "berserker": true, "blackguard": true,
}

var squishyClasses = map[string]bool{
	"mage": true, "archmage": true, "necromancer": true,
}

// TierOf returns the depth-gate tier for a class id, defaulting to
// MEDIUM for any class not explicitly listed as TANK or SQUISHY.
func TierOf(classID string) ClassTier {
	if tankClasses[classID] {
		return TierTank
	}
	if squishyClasses[classID] {
		return TierSquishy
	}
	return TierMedium
}

// squishyOffsets is indexed by upgrade tier (0 = no meta-progression
// upgrades, 4 = full upgrades) and gives the SQUISHY depth-gate offset,
// per spec.md §3.3.
var squishyOffsets = [5]int{5, 4, 3, 1, 0}

// clampInt restricts v to [lo,hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MinLevelForDepth returns the minimum character level required to
// descend to depth for a class, given its meta-progression upgradeTier
// (0..4), clamped to [1,50] (spec.md §3.3).
func MinLevelForDepth(classID string, depth, upgradeTier int) int {
	var minLevel int
	switch TierOf(classID) {
	case TierTank:
		minLevel = depth - 4
	case TierSquishy:
		offset := squishyOffsets[clampInt(upgradeTier, 0, 4)]
		minLevel = depth + offset
	default:
		minLevel = depth
	}
	return clampInt(minLevel, 1, 50)
}
