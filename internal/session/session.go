package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/drill/internal/exercise"
	"github.com/abhisek/drill/internal/progress"
)

// Start builds the pool for an exercise and returns the initial session
// state. It returns ErrEmptyPool when there is nothing to practice; the
// caller must not enter practice mode in that case.
func Start(ex *exercise.Exercise, targetSize int, now time.Time, rng Rand) (SessionState, error) {
	pool := BuildPool(ex.Items, targetSize, now, rng)
	if len(pool) == 0 {
		return SessionState{}, ErrEmptyPool
	}
	return SessionState{
		SessionID:    uuid.New().String(),
		ExerciseID:   ex.ID,
		ExerciseName: ex.Name,
		Pool:         newSlots(pool, now),
		StartTime:    now,
		ItemStart:    now,
	}, nil
}

// CurrentItem returns the item being practiced, or nil once the session is
// done.
func CurrentItem(s SessionState) *exercise.Item {
	if s.Index < 0 || s.Index >= len(s.Pool) {
		return nil
	}
	return s.Pool[s.Index].Item
}

// CurrentSlot returns the current pool slot, or nil once the session is done.
func CurrentSlot(s SessionState) *Slot {
	if s.Index < 0 || s.Index >= len(s.Pool) {
		return nil
	}
	return &s.Pool[s.Index]
}

// Submit records the learner's response to the current item. The item's
// stats are updated in place. Submitting twice for the same slot, or after
// the session is done, is a no-op.
func Submit(s SessionState, resp progress.Response, now time.Time) (SessionState, progress.Result) {
	it := CurrentItem(s)
	if it == nil || s.Submitted {
		if s.LastResult != nil {
			return s, *s.LastResult
		}
		return s, progress.Result{}
	}

	res := progress.RecordAnswer(it, resp, now)
	s.Answered++
	if res.Correct {
		s.Correct++
	}
	s.Results = append(s.Results, ItemResult{
		ItemID:   it.ID,
		Answer:   resp.Raw(),
		Correct:  res.Correct,
		Graded:   res.Graded,
		Duration: now.Sub(s.ItemStart),
		Tier:     res.Transition,
	})
	s.LastResult = &res
	s.Submitted = true
	return s, res
}

// Advance moves past the current item. It returns false when the session is
// complete.
func Advance(s SessionState, now time.Time) (SessionState, bool) {
	if s.Done() {
		return s, false
	}
	s.Index++
	s.LastResult = nil
	s.Submitted = false
	s.ItemStart = now
	return s, !s.Done()
}
