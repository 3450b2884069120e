package authoring

import (
	"context"
	"fmt"

	"github.com/abhisek/adaptiq/internal/bank"
)

// Generator writes new multiple-choice questions.
type Generator interface {
	// Generate returns up to in.Count validated questions. It returns fewer
	// when the model keeps producing rejects; it errors only when nothing
	// usable came back.
	Generate(ctx context.Context, in Input) ([]bank.Question, error)
}

// Input describes the questions to write.
type Input struct {
	Subject string

	// Topic is optional. When empty the model picks topics within Subject.
	Topic string

	Level     bank.Level
	LevelName string

	// Levels is the size of the difficulty scale, for the prompt.
	Levels int

	Count int

	// Existing questions are never duplicated. Their IDs are never reused.
	Existing []bank.Question
}

func (in Input) validate() error {
	if in.Subject == "" {
		return fmt.Errorf("subject is required")
	}
	if in.Count < 1 {
		return fmt.Errorf("count must be positive, got %d", in.Count)
	}
	if in.Level < 1 {
		return fmt.Errorf("level must be >= 1, got %d", in.Level)
	}
	return nil
}

// Validator checks one generated question.
type Validator interface {
	Name() string

	// Validate returns nil when q passes. seen holds the normalized texts
	// of the existing bank and of questions already accepted.
	Validate(q bank.Question, seen map[string]bool) *ValidationError
}

// ValidationError describes why a question was rejected.
type ValidationError struct {
	Validator string
	Message   string
	Retryable bool // Whether asking again is likely to help
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
