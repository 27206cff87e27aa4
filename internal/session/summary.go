package session

import (
	"math"
	"time"

	"github.com/abhisek/drill/internal/mastery"
)

// SessionSummary holds the data displayed when a session ends.
type SessionSummary struct {
	SessionID    string
	ExerciseName string
	Duration     time.Duration
	Correct      int
	Total        int

	// AccuracyPct is the rounded correct percentage, 0 when nothing was
	// answered.
	AccuracyPct int

	// Promoted and Demoted list items that changed tier during the session.
	Promoted []mastery.Transition
	Demoted  []mastery.Transition
}

// Summarize builds the end-of-session report. Total counts answered items,
// so an abandoned session reports only what was attempted.
func Summarize(s SessionState, now time.Time) SessionSummary {
	sum := SessionSummary{
		SessionID:    s.SessionID,
		ExerciseName: s.ExerciseName,
		Duration:     now.Sub(s.StartTime),
		Correct:      s.Correct,
		Total:        s.Answered,
	}
	if s.Answered > 0 {
		sum.AccuracyPct = int(math.Round(100 * float64(s.Correct) / float64(s.Answered)))
	}
	for _, r := range s.Results {
		switch {
		case r.Tier.Promoted():
			sum.Promoted = append(sum.Promoted, r.Tier)
		case r.Tier.Demoted():
			sum.Demoted = append(sum.Demoted, r.Tier)
		}
	}
	return sum
}
