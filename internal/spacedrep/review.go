package spacedrep

import (
	"math"
	"time"

	"github.com/abhisek/drill/internal/exercise"
	"github.com/abhisek/drill/internal/mastery"
)

// Never is the DaysSince sentinel for an item that was never reviewed. It
// compares greater than every review interval, so such items are always due.
const Never = math.MaxInt

const day = 24 * time.Hour

// DaysSince returns the whole number of days between lastReviewed and now,
// or Never if lastReviewed is nil.
func DaysSince(lastReviewed *time.Time, now time.Time) int {
	if lastReviewed == nil {
		return Never
	}
	d := now.Sub(*lastReviewed)
	if d < 0 {
		d = -d
	}
	return int(d / day)
}

// IsDue reports whether the item should be reviewed at now.
func IsDue(it *exercise.Item, now time.Time) bool {
	tier := mastery.Classify(it.TimesAnswered, it.TimesCorrect)
	return DaysSince(it.LastReviewed, now) >= ReviewInterval(tier)
}

// DaysUntilDue returns the number of days until the item is due. Returns 0
// if it is already due. Informational only.
func DaysUntilDue(it *exercise.Item, now time.Time) int {
	since := DaysSince(it.LastReviewed, now)
	if since == Never {
		return 0
	}
	tier := mastery.Classify(it.TimesAnswered, it.TimesCorrect)
	return max(0, ReviewInterval(tier)-since)
}

// ReviewStatus describes an item's review status for display.
type ReviewStatus string

const (
	ReviewNever     ReviewStatus = "never"
	ReviewDue       ReviewStatus = "due"
	ReviewScheduled ReviewStatus = "scheduled"
)

// Status returns the review status for UI display.
func Status(it *exercise.Item, now time.Time) ReviewStatus {
	switch {
	case it.LastReviewed == nil:
		return ReviewNever
	case IsDue(it, now):
		return ReviewDue
	default:
		return ReviewScheduled
	}
}
