package mastery

// Attempt thresholds that separate the classification stages.
const (
	EarlyStageAttempts  = 3
	MatureStageAttempts = 5

	// MinMasteredCorrect is the minimum number of correct answers before an
	// item can be considered mastered.
	MinMasteredCorrect = 5
)

// Accuracy cutoffs, in percent.
const (
	earlyMiddlePct  = 66.0
	midMiddlePct    = 50.0
	matureMiddlePct = 60.0
	masteredPct     = 80.0
)

// Classify maps an item's answer history to a proficiency tier.
//
// Low attempt counts use lenient cutoffs because a single miss swings the
// percentage heavily; mastered is unreachable below MatureStageAttempts.
func Classify(timesAnswered, timesCorrect int) Tier {
	if timesAnswered <= 0 {
		return TierNew
	}
	pct := Accuracy(timesAnswered, timesCorrect)

	switch {
	case timesAnswered < EarlyStageAttempts:
		if pct >= earlyMiddlePct {
			return TierMiddle
		}
		return TierWeak
	case timesAnswered < MatureStageAttempts:
		if pct >= midMiddlePct {
			return TierMiddle
		}
		return TierWeak
	default:
		if pct >= masteredPct && timesCorrect >= MinMasteredCorrect {
			return TierMastered
		}
		if pct >= matureMiddlePct {
			return TierMiddle
		}
		return TierWeak
	}
}

// Accuracy returns the correct percentage in [0, 100]. Zero attempts yields 0.
func Accuracy(timesAnswered, timesCorrect int) float64 {
	if timesAnswered <= 0 {
		return 0
	}
	return 100 * float64(timesCorrect) / float64(timesAnswered)
}
