package mastery

import "fmt"

// Tier represents an item's proficiency classification. It is always derived
// from answer counters and never stored.
type Tier string

const (
	TierNew      Tier = "new"
	TierWeak     Tier = "weak"
	TierMiddle   Tier = "middle"
	TierMastered Tier = "mastered"
)

// AllTiers lists every tier in session pool priority order.
var AllTiers = []Tier{TierWeak, TierMiddle, TierNew, TierMastered}

// DisplayName returns the human-readable name for the tier.
func (t Tier) DisplayName() string {
	switch t {
	case TierNew:
		return "New"
	case TierWeak:
		return "Weak"
	case TierMiddle:
		return "Learning"
	case TierMastered:
		return "Mastered"
	default:
		return string(t)
	}
}

// ParseTier converts a stored or user-supplied string into a Tier.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierNew, TierWeak, TierMiddle, TierMastered:
		return Tier(s), nil
	}
	return "", fmt.Errorf("unknown tier %q", s)
}

// Transition records a tier change caused by a single answer, for feedback
// and event logging.
type Transition struct {
	ItemID string
	From   Tier
	To     Tier
}

// Changed reports whether the answer moved the item to another tier.
func (t Transition) Changed() bool {
	return t.From != t.To
}

// Promoted reports whether the item moved up in proficiency.
func (t Transition) Promoted() bool {
	return rank(t.To) > rank(t.From)
}

// Demoted reports whether the item moved down in proficiency.
func (t Transition) Demoted() bool {
	return rank(t.To) < rank(t.From)
}

// rank orders tiers by proficiency. New and weak rank equally, so a first
// wrong answer is neither a promotion nor a demotion.
func rank(t Tier) int {
	switch t {
	case TierNew, TierWeak:
		return 1
	case TierMiddle:
		return 2
	case TierMastered:
		return 3
	default:
		return 0
	}
}
