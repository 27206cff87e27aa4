package store

import (
	"context"
	"errors"
	"time"
)

// ErrCorruptSnapshot is returned when a stored snapshot cannot be decoded.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SnapshotVersion is the current layout of SnapshotData.
const SnapshotVersion = 1

// SnapshotData is the persisted form of the whole exercise collection.
type SnapshotData struct {
	Version   int            `json:"version"`
	Exercises []ExerciseData `json:"exercises"`
}

// ExerciseData is the persisted form of one exercise.
type ExerciseData struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	Items       []ItemData `json:"items"`
}

// ItemData is the persisted form of one practice item.
type ItemData struct {
	ID            string     `json:"id"`
	Kind          string     `json:"kind"`
	Prompt        string     `json:"prompt"`
	Instructions  string     `json:"instructions,omitempty"`
	Passage       string     `json:"passage,omitempty"`
	Answer        string     `json:"answer,omitempty"`
	Answers       []string   `json:"answers,omitempty"`
	Options       []string   `json:"options,omitempty"`
	Sample        string     `json:"sample,omitempty"`
	TimesAnswered int        `json:"times_answered"`
	TimesCorrect  int        `json:"times_correct"`
	LastReviewed  *time.Time `json:"last_reviewed,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Snapshot represents a point-in-time capture of the collection.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages collection snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot. A zero Sequence is filled from the
	// global counter and a zero Timestamp with the current time.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	// A snapshot that cannot be decoded yields an error wrapping
	// ErrCorruptSnapshot.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// Session event actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// PoolSlotSummary is the serialized form of one session pool entry.
type PoolSlotSummary struct {
	ItemID string `json:"item_id"`
	Tier   string `json:"tier"`
	Due    bool   `json:"due"`
}

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID       string
	ExerciseID      string
	ExerciseName    string
	Action          string
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
	PoolSummary     []PoolSlotSummary
}

// AnswerEventData captures one answered item.
type AnswerEventData struct {
	SessionID     string
	ExerciseID    string
	ItemID        string
	Kind          string
	TierBefore    string
	TierAfter     string
	Prompt        string
	CorrectAnswer string
	LearnerAnswer string
	Correct       bool
	Graded        bool
	TimeMs        int64
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// SessionSummaryRecord is a completed session as read back for history.
type SessionSummaryRecord struct {
	SessionID       string
	ExerciseID      string
	ExerciseName    string
	Timestamp       time.Time
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
}

// AnswerEventRecord is a stored answer event.
type AnswerEventRecord struct {
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM request events.
type LLMUsage struct {
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records a single answered item.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QuerySessionSummaries returns completed sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// QueryAnswerEvents returns the answers given in a session, in order.
	QueryAnswerEvents(ctx context.Context, sessionID string) ([]AnswerEventRecord, error)

	// ExerciseAnswerCount returns how many answers were logged for an exercise.
	ExerciseAnswerCount(ctx context.Context, exerciseID string) (int, error)

	// QueryLLMEvents returns LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// LLMUsage sums token usage over all recorded LLM requests.
	LLMUsage(ctx context.Context) (LLMUsage, error)
}
