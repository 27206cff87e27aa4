package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo backed by the event tables and the global
// sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	var pool []byte
	if len(data.PoolSummary) > 0 {
		pool, err = json.Marshal(data.PoolSummary)
		if err != nil {
			return fmt.Errorf("marshal pool summary: %w", err)
		}
	}

	query, args := builder().Insert(sessionEventsTable.Name).
		Columns("sequence", "timestamp", "session_id", "exercise_id", "exercise_name",
			"action", "questions_served", "correct_answers", "duration_secs", "pool_summary").
		Values(seqNum, time.Now().UTC(), data.SessionID, data.ExerciseID, data.ExerciseName,
			data.Action, data.QuestionsServed, data.CorrectAnswers, data.DurationSecs, pool).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(answerEventsTable.Name).
		Columns("sequence", "timestamp", "session_id", "exercise_id", "item_id", "kind",
			"tier_before", "tier_after", "prompt", "correct_answer", "learner_answer",
			"correct", "graded", "time_ms").
		Values(seqNum, time.Now().UTC(), data.SessionID, data.ExerciseID, data.ItemID, data.Kind,
			data.TierBefore, data.TierAfter, data.Prompt, data.CorrectAnswer, data.LearnerAnswer,
			data.Correct, data.Graded, data.TimeMs).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	sel := builder().Select("session_id", "exercise_id", "exercise_name", "timestamp",
		"questions_served", "correct_answers", "duration_secs").
		From(entsql.Table(sessionEventsTable.Name)).
		Where(applyOpts(entsql.EQ("action", ActionEnd), opts)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var out []SessionSummaryRecord
	for rows.Next() {
		var rec SessionSummaryRecord
		if err := rows.Scan(&rec.SessionID, &rec.ExerciseID, &rec.ExerciseName, &rec.Timestamp,
			&rec.QuestionsServed, &rec.CorrectAnswers, &rec.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) QueryAnswerEvents(ctx context.Context, sessionID string) ([]AnswerEventRecord, error) {
	query, args := builder().Select("sequence", "timestamp", "session_id", "exercise_id", "item_id",
		"kind", "tier_before", "tier_after", "prompt", "correct_answer", "learner_answer",
		"correct", "graded", "time_ms").
		From(entsql.Table(answerEventsTable.Name)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("sequence").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var out []AnswerEventRecord
	for rows.Next() {
		var rec AnswerEventRecord
		if err := rows.Scan(&rec.Sequence, &rec.Timestamp, &rec.SessionID, &rec.ExerciseID, &rec.ItemID,
			&rec.Kind, &rec.TierBefore, &rec.TierAfter, &rec.Prompt, &rec.CorrectAnswer, &rec.LearnerAnswer,
			&rec.Correct, &rec.Graded, &rec.TimeMs); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) ExerciseAnswerCount(ctx context.Context, exerciseID string) (int, error) {
	query, args := builder().Select(entsql.Count("*")).
		From(entsql.Table(answerEventsTable.Name)).
		Where(entsql.EQ("exercise_id", exerciseID)).
		Query()

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count answer events: %w", err)
	}
	return n, nil
}

// applyOpts narrows a predicate by the sequence and time bounds in opts. A
// nil p with no bounds yields nil.
func applyOpts(p *entsql.Predicate, opts QueryOpts) *entsql.Predicate {
	var preds []*entsql.Predicate
	if p != nil {
		preds = append(preds, p)
	}
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To))
	}
	switch len(preds) {
	case 0:
		return nil
	case 1:
		return preds[0]
	}
	return entsql.And(preds...)
}
