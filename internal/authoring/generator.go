package authoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/llm"
)

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every generated question; the first
	// failure rejects it.
	Validators []Validator

	// MaxTokens is the token budget per batch request.
	MaxTokens int

	Temperature float64

	// MaxRounds bounds the number of LLM calls per Generate.
	MaxRounds int

	// MaxExisting caps the existing questions quoted in the prompt.
	MaxExisting int

	// Warn receives rejected questions. Defaults to the standard logger.
	Warn func(error)
}

// DefaultConfig returns the standard validator chain and limits.
func DefaultConfig() Config {
	return Config{
		Validators:  []Validator{&StructuralValidator{}, &DuplicateValidator{}},
		MaxTokens:   4096,
		Temperature: 0.8,
		MaxRounds:   3,
		MaxExisting: 20,
		Warn:        func(err error) { log.Printf("warning: %v", err) },
	}
}

// LLMGenerator implements Generator with an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	if cfg.MaxRounds < 1 {
		cfg.MaxRounds = 1
	}
	if cfg.Warn == nil {
		cfg.Warn = func(error) {}
	}
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate asks the model for in.Count questions, re-asking for the
// shortfall while rounds remain and rejects were retryable.
func (g *LLMGenerator) Generate(ctx context.Context, in Input) ([]bank.Question, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)

	seen := make(map[string]bool, len(in.Existing))
	var texts []string
	for _, q := range in.Existing {
		if strings.EqualFold(q.Subject, in.Subject) {
			seen[normalize(q.Text)] = true
			texts = append(texts, q.Text)
		}
	}
	ids := newIDAllocator(in.Existing)

	var accepted []bank.Question
	var lastErr error
	for round := 0; round < g.config.MaxRounds && len(accepted) < in.Count; round++ {
		out, err := g.requestBatch(ctx, in, in.Count-len(accepted), texts)
		if err != nil {
			if len(accepted) > 0 {
				g.config.Warn(err)
				break
			}
			return nil, err
		}

		rejected, retry := false, false
		for _, item := range out {
			if len(accepted) == in.Count {
				break
			}
			q := g.toQuestion(in, item)
			if verr := g.check(q, seen); verr != nil {
				g.config.Warn(verr)
				lastErr = verr
				rejected = true
				retry = retry || verr.Retryable
				continue
			}
			q.ID = ids.allocate(q.Subject, q.Topic)
			seen[normalize(q.Text)] = true
			texts = append(texts, q.Text)
			accepted = append(accepted, q)
		}
		if rejected && !retry {
			break
		}
	}

	if len(accepted) == 0 {
		if lastErr == nil {
			lastErr = errors.New("model returned no questions")
		}
		return nil, fmt.Errorf("generate %s questions: %w", in.Subject, lastErr)
	}
	return accepted, nil
}

func (g *LLMGenerator) requestBatch(ctx context.Context, in Input, count int, existing []string) ([]batchItem, error) {
	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserMessage(buildUserMessage(in, count, existing, g.config.MaxExisting)),
		Schema:      BatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var out batchOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	return out.Questions, nil
}

func (g *LLMGenerator) toQuestion(in Input, item batchItem) bank.Question {
	q := bank.Question{
		Subject:     in.Subject,
		Topic:       strings.TrimSpace(item.Topic),
		Level:       in.Level,
		Text:        strings.TrimSpace(item.Question),
		Correct:     bank.Option(strings.ToUpper(strings.TrimSpace(item.Correct))),
		Explanation: strings.TrimSpace(item.Explanation),
	}
	if in.Topic != "" {
		q.Topic = in.Topic
	}
	for i := 0; i < len(item.Options) && i < len(q.Options); i++ {
		q.Options[i] = strings.TrimSpace(item.Options[i])
	}
	return q
}

func (g *LLMGenerator) check(q bank.Question, seen map[string]bool) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(q, seen); verr != nil {
			return verr
		}
	}
	return nil
}
