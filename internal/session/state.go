package session

import (
	"errors"
	"time"

	"github.com/abhisek/drill/internal/exercise"
	"github.com/abhisek/drill/internal/mastery"
	"github.com/abhisek/drill/internal/progress"
	"github.com/abhisek/drill/internal/spacedrep"
	"github.com/abhisek/drill/internal/store"
)

// ErrEmptyPool is returned when a session would have no items to practice.
var ErrEmptyPool = errors.New("no items to practice")

// DefaultSize is the default number of items in a session.
const DefaultSize = 10

// Slot is one entry of a session pool, with the tier and due status it had
// when the pool was built.
type Slot struct {
	Item *exercise.Item
	Tier mastery.Tier
	Due  bool
}

// ItemResult records how the learner did on one slot.
type ItemResult struct {
	ItemID   string
	Answer   string
	Correct  bool
	Graded   bool
	Duration time.Duration
	Tier     mastery.Transition
}

// SessionState is the full state of one practice session. It is passed to
// and returned from every session function; nothing is held elsewhere.
type SessionState struct {
	// SessionID is the UUID for this session.
	SessionID string

	ExerciseID   string
	ExerciseName string

	// Pool is the ordered practice queue built at start.
	Pool []Slot

	// Index is the position of the current slot in Pool.
	Index int

	// Correct is the count of correct answers so far.
	Correct int

	// Answered is the count of submitted answers so far.
	Answered int

	// StartTime is when the session began.
	StartTime time.Time

	// ItemStart is when the current item was first shown.
	ItemStart time.Time

	// Results holds one entry per submitted answer.
	Results []ItemResult

	// LastResult is the outcome of the most recent submission, shown as
	// feedback until the session advances.
	LastResult *progress.Result

	// Submitted is true between Submit and Advance for the current slot.
	Submitted bool
}

// Done reports whether every slot has been worked through.
func (s SessionState) Done() bool {
	return s.Index >= len(s.Pool)
}

// PoolSummary returns the persisted description of the pool.
func (s SessionState) PoolSummary() []store.PoolSlotSummary {
	out := make([]store.PoolSlotSummary, 0, len(s.Pool))
	for _, slot := range s.Pool {
		out = append(out, store.PoolSlotSummary{
			ItemID: slot.Item.ID,
			Tier:   string(slot.Tier),
			Due:    slot.Due,
		})
	}
	return out
}

func newSlots(items []*exercise.Item, now time.Time) []Slot {
	slots := make([]Slot, 0, len(items))
	for _, it := range items {
		slots = append(slots, Slot{
			Item: it,
			Tier: mastery.Classify(it.TimesAnswered, it.TimesCorrect),
			Due:  spacedrep.IsDue(it, now),
		})
	}
	return slots
}
