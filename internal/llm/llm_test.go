package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/adaptiq/internal/store"
)

func fastRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: 5 * time.Millisecond, Multiplier: 2}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("ADAPTIQ_LLM_PROVIDER", "OpenRouter")
	t.Setenv("ADAPTIQ_OPENROUTER_API_KEY", "or-key")
	t.Setenv("ADAPTIQ_OPENROUTER_MODEL", "meta/llama")
	t.Setenv("ADAPTIQ_LLM_TIMEOUT", "45s")

	cfg := ConfigFromEnv()
	assert.Equal(t, ProviderOpenRouter, cfg.Provider)
	assert.Equal(t, "or-key", cfg.Endpoint().APIKey)
	assert.Equal(t, "meta/llama", cfg.Endpoint().Model)
	assert.Equal(t, defaultOpenRouterBaseURL, cfg.Endpoint().BaseURL)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.ErrorContains(t, cfg.Validate(), "ADAPTIQ_ANTHROPIC_API_KEY")

	cfg.Provider = "nope"
	assert.ErrorContains(t, cfg.Validate(), "unknown LLM provider")

	cfg.Provider = ProviderMock
	assert.NoError(t, cfg.Validate())
}

func TestDiscoverConfig(t *testing.T) {
	for _, env := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(env, "")
	}
	_, ok := DiscoverConfig()
	assert.False(t, ok)

	t.Setenv("ANTHROPIC_API_KEY", "a-key")
	t.Setenv("OPENAI_API_KEY", "o-key")
	cfg, ok := DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "o-key", cfg.Endpoint().APIKey)
}

func TestResolveConfig_ExplicitProviderErrors(t *testing.T) {
	t.Setenv("ADAPTIQ_LLM_PROVIDER", "gemini")
	t.Setenv("ADAPTIQ_GEMINI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "fallback")
	_, err := ResolveConfig()
	assert.ErrorContains(t, err, "ADAPTIQ_GEMINI_API_KEY")
}

func TestMockProvider(t *testing.T) {
	m := NewMockProvider(MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 3}})
	resp, err := m.Generate(context.Background(), Request{Messages: UserMessage("hi")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(resp.Content))
	assert.Equal(t, StopEnd, resp.StopReason)

	_, err = m.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
	assert.Len(t, m.Calls(), 2)
	assert.Equal(t, "hi", m.Calls()[0].Messages[0].Content)
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	m := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("slow down")}},
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	resp, err := WithRetry(m, fastRetry()).Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Content))
	assert.Len(t, m.Calls(), 3)
}

func TestRetry_StopsOnNonRetryable(t *testing.T) {
	tests := []struct {
		name  string
		errs  []error
		calls int
	}{
		{"max tokens", []error{&ErrMaxTokensExceeded{}}, 1},
		{"cancelled", []error{context.Canceled}, 1},
		{"invalid twice", []error{&ErrInvalidResponse{Err: errors.New("a")}, &ErrInvalidResponse{Err: errors.New("b")}}, 2},
		{"exhausted", []error{&ErrProviderUnavailable{}, &ErrProviderUnavailable{}, &ErrProviderUnavailable{}}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMockProvider()
			for _, e := range tt.errs {
				m.Queue(MockResponse{Err: e})
			}
			m.Queue(MockResponse{Content: json.RawMessage(`{}`)})

			_, err := WithRetry(m, fastRetry()).Generate(context.Background(), Request{})
			assert.Error(t, err)
			assert.Len(t, m.Calls(), tt.calls)
		})
	}
}

func TestRetry_RespectsRetryAfter(t *testing.T) {
	r := &retryProvider{cfg: fastRetry()}
	assert.Equal(t, 7*time.Second, r.backoff(0, &ErrRateLimit{RetryAfter: 7 * time.Second}))

	d := r.backoff(10, errors.New("x"))
	assert.LessOrEqual(t, d, 6*time.Millisecond)
}

type memLog struct{ events []store.LLMRequestEventData }

func (l *memLog) AppendLLMRequest(_ context.Context, d store.LLMRequestEventData) error {
	l.events = append(l.events, d)
	return nil
}

func TestLogging_RecordsEveryAttempt(t *testing.T) {
	m := NewMockProvider(
		MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`{"bad":`), Err: errors.New("invalid JSON")}},
		MockResponse{Content: json.RawMessage(`{"questions":[]}`), Usage: Usage{InputTokens: 12, OutputTokens: 4}},
	)
	l := &memLog{}
	p := WithRetry(WithLogging(m, ProviderMock, l), fastRetry())

	ctx := WithPurpose(context.Background(), PurposeQuestionGen)
	_, err := p.Generate(ctx, Request{System: "sys", Messages: UserMessage("make 3")})
	require.NoError(t, err)

	require.Len(t, l.events, 2)
	first, second := l.events[0], l.events[1]
	assert.False(t, first.Success)
	assert.Equal(t, `{"bad":`, first.ResponseBody)
	assert.Contains(t, first.ErrorMessage, "invalid JSON")
	assert.True(t, second.Success)
	assert.Equal(t, PurposeQuestionGen, second.Purpose)
	assert.Equal(t, ProviderMock, second.Provider)
	assert.Equal(t, 12, second.InputTokens)
	assert.Contains(t, second.RequestBody, "[system]\nsys")
	assert.Contains(t, second.RequestBody, "[user]\nmake 3")
}

func TestPurposeDefault(t *testing.T) {
	assert.Equal(t, PurposeUnknown, PurposeFrom(context.Background()))
}

func TestTimeout(t *testing.T) {
	slow := providerFunc(func(ctx context.Context, _ Request) (*Response, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	_, err := WithTimeout(slow, 5*time.Millisecond).Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	_, wrapped := WithTimeout(slow, 0).(*timeoutProvider)
	assert.False(t, wrapped)
}

func TestNewProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock
	p, err := NewProvider(context.Background(), cfg, &memLog{})
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	cfg.Provider = ProviderOpenAI
	_, err = NewProvider(context.Background(), cfg, nil)
	assert.Error(t, err)
}

type providerFunc func(ctx context.Context, req Request) (*Response, error)

func (f providerFunc) Generate(ctx context.Context, req Request) (*Response, error) { return f(ctx, req) }
func (f providerFunc) ModelID() string                                               { return "func" }
