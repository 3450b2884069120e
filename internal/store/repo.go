package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup matches nothing.
var ErrNotFound = errors.New("not found")

// ErrAmbiguous is returned when a session ID prefix matches several sessions.
var ErrAmbiguous = errors.New("ambiguous session id prefix")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Session lifecycle actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID   string
	Action      string
	Subject     string
	Policy      string
	TargetCount int
	BudgetSecs  int
	StartLevel  int

	// Set on end only.
	Answered     int
	Correct      int
	FinalLevel   int
	EndReason    string
	DurationSecs int
}

// AttemptEventData captures one answered question.
type AttemptEventData struct {
	SessionID     string
	Number        int
	QuestionID    string
	Topic         string
	Level         int
	Stage         string
	Chosen        string
	CorrectOption string
	Correct       bool
	TimeMs        int
	LevelAfter    int
}

// AttemptRecord is a stored attempt.
type AttemptRecord struct {
	Sequence  int64
	Timestamp time.Time
	AttemptEventData
}

// SessionRecord joins a session's start event with its end event, if any.
type SessionRecord struct {
	SessionID   string
	StartedAt   time.Time
	Subject     string
	Policy      string
	TargetCount int
	BudgetSecs  int
	StartLevel  int

	// Ended is false for sessions that never recorded an end (e.g. a crash).
	Ended        bool
	EndedAt      time.Time
	Answered     int
	Correct      int
	FinalLevel   int
	EndReason    string
	DurationSecs int
}

// Accuracy returns correct/answered, or 0 when nothing was answered.
func (s SessionRecord) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered)
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
	RequestBody  string
	ResponseBody string
}

// LLMRequestRecord is a stored LLM request event.
type LLMRequestRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to journal events.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAttemptEvent records an answered question.
	AppendAttemptEvent(ctx context.Context, data AttemptEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QuerySessions returns sessions, most recent first.
	QuerySessions(ctx context.Context, opts QueryOpts) ([]SessionRecord, error)

	// ResolveSessionID expands a unique session ID prefix.
	ResolveSessionID(ctx context.Context, prefix string) (string, error)

	// SessionAttempts returns the transcript of a session in answer order.
	SessionAttempts(ctx context.Context, sessionID string) ([]AttemptRecord, error)

	// QueryLLMEvents returns LLM request events, most recent first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error)

	// GetLLMEvent returns one LLM request event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestRecord, error)

	// Purge deletes every event.
	Purge(ctx context.Context) error
}
