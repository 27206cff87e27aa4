package spacedrep

import "github.com/abhisek/drill/internal/mastery"

// ReviewInterval returns how many days must pass after a review before an
// item of the given tier is due again. New and weak material has no
// cool-down.
func ReviewInterval(tier mastery.Tier) int {
	switch tier {
	case mastery.TierMiddle:
		return 1
	case mastery.TierMastered:
		return 7
	default:
		return 0
	}
}
