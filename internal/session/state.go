package session

import (
	"time"

	"github.com/abhisek/adaptiq/internal/adaptive"
	"github.com/abhisek/adaptiq/internal/bank"
)

// Phase represents the current phase of the session.
type Phase string

const (
	PhaseActive   Phase = "active"   // A question is waiting for an answer
	PhaseFeedback Phase = "feedback" // The last answer is being shown
	PhaseEnded    Phase = "ended"    // Completed, timed out or quit
)

// EndReason records why a session ended.
type EndReason string

const (
	EndCompleted EndReason = "completed"
	EndTimeout   EndReason = "timeout"
	EndQuit      EndReason = "quit"
)

// Attempt is one answered question in the transcript.
type Attempt struct {
	Number     int            `json:"number"`
	QuestionID string         `json:"question_id"`
	Topic      string         `json:"topic,omitempty"`
	Level      bank.Level     `json:"level"`
	Stage      adaptive.Stage `json:"stage"`
	Chosen     bank.Option    `json:"chosen"`
	Answer     bank.Option    `json:"answer"`
	Correct    bool           `json:"correct"`
	AskedAt    time.Time      `json:"asked_at"`
	AnsweredAt time.Time      `json:"answered_at"`
	LevelAfter bank.Level     `json:"level_after"`
}

// ResponseTime is how long the question was on screen.
func (a Attempt) ResponseTime() time.Duration {
	return a.AnsweredAt.Sub(a.AskedAt)
}

// SessionState is everything one session owns. It is a plain value: the
// engine mutates it, screens render from it.
type SessionState struct {
	ID          string        `json:"id"`
	Subject     string        `json:"subject"`
	Policy      string        `json:"policy"`
	TargetCount int           `json:"target_count"`
	Budget      time.Duration `json:"budget"`
	StartedAt   time.Time     `json:"started_at"`

	// Elapsed is refreshed on every interaction and tick.
	Elapsed time.Duration `json:"elapsed"`

	StartLevel bank.Level     `json:"start_level"`
	Adaptive   adaptive.State `json:"adaptive"`

	// Asked holds every presented question ID; AskOrder keeps the order.
	Asked    map[string]bool `json:"asked"`
	AskOrder []string        `json:"ask_order"`

	Score int `json:"score"`

	// Current is the displayed question, nil once the session has ended.
	Current      *bank.Question `json:"current,omitempty"`
	CurrentLevel bank.Level     `json:"current_level"`
	CurrentStage adaptive.Stage `json:"current_stage"`
	ShownAt      time.Time      `json:"shown_at"`

	Transcript []Attempt `json:"transcript"`

	Phase     Phase     `json:"phase"`
	EndReason EndReason `json:"end_reason,omitempty"`

	// LastFeedback is the result of the most recent submission.
	LastFeedback *Feedback `json:"last_feedback,omitempty"`
}

// Answered returns the number of answered questions.
func (s *SessionState) Answered() int { return len(s.Transcript) }

// Level returns the current difficulty.
func (s *SessionState) Level() bank.Level { return s.Adaptive.Level }

// Accuracy returns Score/Answered, or 0 before the first answer.
func (s *SessionState) Accuracy() float64 {
	if len(s.Transcript) == 0 {
		return 0
	}
	return float64(s.Score) / float64(len(s.Transcript))
}

// Remaining returns the time left as of the last refresh of Elapsed.
func (s *SessionState) Remaining() time.Duration {
	if s.Elapsed >= s.Budget {
		return 0
	}
	return s.Budget - s.Elapsed
}

// Ended reports whether the session is over.
func (s *SessionState) Ended() bool { return s.Phase == PhaseEnded }

// Feedback is returned from a submission for display.
type Feedback struct {
	Attempt  Attempt       `json:"attempt"`
	Question bank.Question `json:"question"`

	// LevelChange is set when this answer closed a block that moved the level.
	LevelChange *adaptive.LevelChange `json:"level_change,omitempty"`

	// Done is true when this was the last question of the session.
	Done bool `json:"done"`
}
