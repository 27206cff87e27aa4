package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table definitions for auto-migration. Every event table shares the
// sequence and timestamp columns so events can be ordered across tables.

func eventColumns(extra ...*schema.Column) []*schema.Column {
	cols := []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}
	return append(cols, extra...)
}

var (
	snapshotsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "data", Type: field.TypeJSON},
	}
	snapshotsTable = &schema.Table{
		Name:       "snapshots",
		Columns:    snapshotsColumns,
		PrimaryKey: []*schema.Column{snapshotsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "snapshot_timestamp", Columns: []*schema.Column{snapshotsColumns[2]}},
		},
	}

	sessionEventsColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "exercise_id", Type: field.TypeString},
		&schema.Column{Name: "exercise_name", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "questions_served", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "correct_answers", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "duration_secs", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "pool_summary", Type: field.TypeJSON, Nullable: true},
	)
	sessionEventsTable = &schema.Table{
		Name:       "session_events",
		Columns:    sessionEventsColumns,
		PrimaryKey: []*schema.Column{sessionEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessionevent_session_id", Columns: []*schema.Column{sessionEventsColumns[3]}},
			{Name: "sessionevent_action", Columns: []*schema.Column{sessionEventsColumns[6]}},
		},
	}

	answerEventsColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "exercise_id", Type: field.TypeString},
		&schema.Column{Name: "item_id", Type: field.TypeString},
		&schema.Column{Name: "kind", Type: field.TypeString},
		&schema.Column{Name: "tier_before", Type: field.TypeString},
		&schema.Column{Name: "tier_after", Type: field.TypeString},
		&schema.Column{Name: "prompt", Type: field.TypeString},
		&schema.Column{Name: "correct_answer", Type: field.TypeString},
		&schema.Column{Name: "learner_answer", Type: field.TypeString},
		&schema.Column{Name: "correct", Type: field.TypeBool},
		&schema.Column{Name: "graded", Type: field.TypeBool, Default: true},
		&schema.Column{Name: "time_ms", Type: field.TypeInt64, Default: 0},
	)
	answerEventsTable = &schema.Table{
		Name:       "answer_events",
		Columns:    answerEventsColumns,
		PrimaryKey: []*schema.Column{answerEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "answerevent_session_id", Columns: []*schema.Column{answerEventsColumns[3]}},
			{Name: "answerevent_exercise_id", Columns: []*schema.Column{answerEventsColumns[4]}},
		},
	}

	llmRequestEventsColumns = eventColumns(
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
	)
	llmRequestEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    llmRequestEventsColumns,
		PrimaryKey: []*schema.Column{llmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmRequestEventsColumns[5]}},
		},
	}

	tables = []*schema.Table{
		snapshotsTable,
		sessionEventsTable,
		answerEventsTable,
		llmRequestEventsTable,
	}
)
