package practice

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/abhisek/drill/internal/exercise"
	"github.com/abhisek/drill/internal/session"
	"github.com/abhisek/drill/internal/store"
)

// Checkpoint is everything one answer needs persisted. It is captured on the
// goroutine that owns the session and may be written from any goroutine.
type Checkpoint struct {
	seq      uint64
	Snapshot store.SnapshotData
	Event    store.AnswerEventData
}

// Recorder persists a session's effects: the collection after every answer
// and the session and answer events.
type Recorder struct {
	coll   *exercise.Collection
	snaps  store.SnapshotRepo
	events store.EventRepo

	mu      sync.Mutex
	seq     uint64
	written uint64
}

// NewRecorder creates a Recorder. events may be nil, in which case no
// events are logged.
func NewRecorder(coll *exercise.Collection, snaps store.SnapshotRepo, events store.EventRepo) *Recorder {
	return &Recorder{coll: coll, snaps: snaps, events: events}
}

// Begin logs the session start.
func (r *Recorder) Begin(ctx context.Context, s session.SessionState) {
	r.appendSession(ctx, store.SessionEventData{
		SessionID:    s.SessionID,
		ExerciseID:   s.ExerciseID,
		ExerciseName: s.ExerciseName,
		Action:       store.ActionStart,
		PoolSummary:  s.PoolSummary(),
	})
}

// Capture records the most recent submission of s. It must be called after
// session.Submit and before session.Advance.
func (r *Recorder) Capture(s session.SessionState) (Checkpoint, error) {
	it := session.CurrentItem(s)
	if it == nil || !s.Submitted || len(s.Results) == 0 {
		return Checkpoint{}, fmt.Errorf("capture answer: no submission for the current item")
	}
	res := s.Results[len(s.Results)-1]

	r.mu.Lock()
	r.seq++
	seq := r.seq
	r.mu.Unlock()

	return Checkpoint{
		seq:      seq,
		Snapshot: r.coll.ToSnapshotData(),
		Event: store.AnswerEventData{
			SessionID:     s.SessionID,
			ExerciseID:    s.ExerciseID,
			ItemID:        it.ID,
			Kind:          string(it.Kind),
			TierBefore:    string(res.Tier.From),
			TierAfter:     string(res.Tier.To),
			Prompt:        it.Prompt,
			CorrectAnswer: it.CanonicalAnswer(),
			LearnerAnswer: res.Answer,
			Correct:       res.Correct,
			Graded:        res.Graded,
			TimeMs:        res.Duration.Milliseconds(),
		},
	}, nil
}

// Write persists a checkpoint. A snapshot older than one already written is
// skipped so that out-of-order writes never roll the collection back. Event
// failures are logged, snapshot failures returned.
func (r *Recorder) Write(ctx context.Context, cp Checkpoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cp.seq > r.written {
		if err := exercise.SaveData(ctx, r.snaps, cp.Snapshot); err != nil {
			return err
		}
		r.written = cp.seq
	}
	if r.events != nil {
		if err := r.events.AppendAnswerEvent(ctx, cp.Event); err != nil {
			slog.Warn("record answer event", "session", cp.Event.SessionID, "err", err)
		}
	}
	return nil
}

// Answer captures and writes the latest submission synchronously.
func (r *Recorder) Answer(ctx context.Context, s session.SessionState) error {
	cp, err := r.Capture(s)
	if err != nil {
		return err
	}
	return r.Write(ctx, cp)
}

// Finish logs the session end and returns its summary.
func (r *Recorder) Finish(ctx context.Context, s session.SessionState, now time.Time) session.SessionSummary {
	sum := session.Summarize(s, now)
	r.appendSession(ctx, store.SessionEventData{
		SessionID:       s.SessionID,
		ExerciseID:      s.ExerciseID,
		ExerciseName:    s.ExerciseName,
		Action:          store.ActionEnd,
		QuestionsServed: sum.Total,
		CorrectAnswers:  sum.Correct,
		DurationSecs:    int(sum.Duration.Seconds()),
	})
	return sum
}

func (r *Recorder) appendSession(ctx context.Context, data store.SessionEventData) {
	if r.events == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.events.AppendSessionEvent(ctx, data); err != nil {
		slog.Warn("record session event", "session", data.SessionID, "action", data.Action, "err", err)
	}
}
