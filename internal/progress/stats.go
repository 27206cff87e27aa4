package progress

import (
	"math"
	"time"

	"github.com/abhisek/drill/internal/exercise"
	"github.com/abhisek/drill/internal/mastery"
	"github.com/abhisek/drill/internal/spacedrep"
)

// Stats summarizes an exercise's progress at a point in time.
type Stats struct {
	Total    int
	PerTier  map[mastery.Tier]int
	DueCount int

	// CorrectRate is the rounded percentage of correct answers over every
	// attempt in the exercise, or 0 when nothing was attempted.
	CorrectRate int

	TotalAnswered int
	TotalCorrect  int

	// NextDueDays is the smallest DaysUntilDue among items that are not due,
	// or -1 when every item is due.
	NextDueDays int
}

// Aggregate computes exercise-level statistics.
func Aggregate(ex *exercise.Exercise, now time.Time) Stats {
	s := Stats{
		Total:       len(ex.Items),
		PerTier:     make(map[mastery.Tier]int, len(mastery.AllTiers)),
		NextDueDays: -1,
	}
	for _, tier := range mastery.AllTiers {
		s.PerTier[tier] = 0
	}

	for _, it := range ex.Items {
		s.PerTier[mastery.Classify(it.TimesAnswered, it.TimesCorrect)]++
		s.TotalAnswered += it.TimesAnswered
		s.TotalCorrect += it.TimesCorrect

		if spacedrep.IsDue(it, now) {
			s.DueCount++
			continue
		}
		days := spacedrep.DaysUntilDue(it, now)
		if s.NextDueDays < 0 || days < s.NextDueDays {
			s.NextDueDays = days
		}
	}

	if s.TotalAnswered > 0 {
		s.CorrectRate = int(math.Round(100 * float64(s.TotalCorrect) / float64(s.TotalAnswered)))
	}
	return s
}

// Progress returns the share of items at middle tier or better, in [0, 1].
func (s Stats) Progress() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.PerTier[mastery.TierMiddle]+s.PerTier[mastery.TierMastered]) / float64(s.Total)
}
