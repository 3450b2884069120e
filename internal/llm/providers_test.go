package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

func pairSchema() *Schema {
	return &Schema{
		Name: "test-pair",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string"},
				"answer":   map[string]any{"type": "string", "enum": []any{"A", "B", "C", "D"}},
			},
			"required":             []any{"question", "answer"},
			"additionalProperties": false,
		},
	}
}

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{client: &client, model: "claude-haiku-4-5-20251001"}
}

func anthropicReply(text, stop string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":          "msg_test",
			"type":        "message",
			"role":        "assistant",
			"content":     []map[string]any{{"type": "text", "text": text}},
			"model":       "claude-haiku-4-5-20251001",
			"stop_reason": stop,
			"usage":       map[string]any{"input_tokens": 40, "output_tokens": 12},
		})
	}
}

func TestAnthropicProvider_HappyPath(t *testing.T) {
	var body map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		json.Unmarshal(b, &body)
		anthropicReply(`{"question":"2+3?","answer":"B"}`, "end_turn")(w, r)
	}

	p := newTestAnthropicProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:    "You write quiz questions.",
		Messages:  UserMessage("One question."),
		Schema:    pairSchema(),
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.TotalTokens != 52 {
		t.Fatalf("expected 52 total tokens, got %d", resp.Usage.TotalTokens)
	}
	if resp.StopReason != StopEnd {
		t.Fatalf("expected stop reason %q, got %q", StopEnd, resp.StopReason)
	}
	if body["system"] == nil {
		t.Fatal("expected system prompt in request body")
	}
	if body["output_config"] == nil {
		t.Fatal("expected output_config in request body")
	}
}

func TestAnthropicProvider_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(error) bool
	}{
		{
			name: "rate limit",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				io.WriteString(w, `{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`)
			},
			check: func(err error) bool { var e *ErrRateLimit; return errors.As(err, &e) },
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				io.WriteString(w, `{"type":"error","error":{"type":"api_error","message":"boom"}}`)
			},
			check: func(err error) bool { var e *ErrProviderUnavailable; return errors.As(err, &e) },
		},
		{
			name:    "truncated",
			handler: anthropicReply(`{"question":"2+`, "max_tokens"),
			check:   func(err error) bool { var e *ErrMaxTokensExceeded; return errors.As(err, &e) },
		},
		{
			name:    "schema violation",
			handler: anthropicReply(`{"question":"2+3?","answer":"E"}`, "end_turn"),
			check:   func(err error) bool { var e *ErrInvalidResponse; return errors.As(err, &e) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestAnthropicProvider(t, tt.handler)
			_, err := p.Generate(context.Background(), Request{Messages: UserMessage("q"), Schema: pairSchema(), MaxTokens: 64})
			if err == nil || !tt.check(err) {
				t.Fatalf("unexpected error: %T %v", err, err)
			}
		})
	}
}

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL
	return &OpenAIProvider{client: openai.NewClientWithConfig(cfg), model: "gpt-4o-mini", name: ProviderOpenAI}
}

func openAIReply(content, finish string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": finish,
			}},
			"usage": map[string]any{"prompt_tokens": 30, "completion_tokens": 10, "total_tokens": 40},
		})
	}
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	var got struct {
		Messages []struct {
			Role string `json:"role"`
		} `json:"messages"`
		ResponseFormat struct {
			Type       string `json:"type"`
			JSONSchema struct {
				Name   string `json:"name"`
				Strict bool   `json:"strict"`
			} `json:"json_schema"`
		} `json:"response_format"`
	}
	handler := func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		openAIReply(`{"question":"Capital of France?","answer":"C"}`, "stop")(w, r)
	}

	p := newTestOpenAIProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:   "sys",
		Messages: UserMessage("One question."),
		Schema:   pairSchema(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 30 || resp.Usage.TotalTokens != 40 {
		t.Fatalf("unexpected usage: %+v", resp.Usage)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != openai.ChatMessageRoleSystem {
		t.Fatalf("expected system then user message, got %+v", got.Messages)
	}
	if got.ResponseFormat.JSONSchema.Name != "test-pair" || !got.ResponseFormat.JSONSchema.Strict {
		t.Fatalf("expected json_schema response format, got %+v", got.ResponseFormat)
	}
}

func TestOpenAIProvider_Truncated(t *testing.T) {
	p := newTestOpenAIProvider(t, openAIReply(`{"question":"Capi`, "length"))
	_, err := p.Generate(context.Background(), Request{Messages: UserMessage("q"), Schema: pairSchema()})
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %v", err)
	}
}

func TestOpenAIProvider_RateLimit(t *testing.T) {
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"error":{"message":"Rate limit reached","type":"requests"}}`)
	})
	_, err := p.Generate(context.Background(), Request{Messages: UserMessage("q")})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T %v", err, err)
	}
}

func TestNewOpenRouterProvider_DefaultBaseURL(t *testing.T) {
	if _, err := NewOpenRouterProvider(Endpoint{}); err == nil {
		t.Fatal("expected error without API key")
	}
	p, err := NewOpenRouterProvider(Endpoint{APIKey: "k", Model: "meta/llama"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.name != ProviderOpenRouter || p.ModelID() != "meta/llama" {
		t.Fatalf("unexpected provider: %s %s", p.name, p.ModelID())
	}
}

func TestResolveModel(t *testing.T) {
	if got := resolveModel("gemini-flash", geminiModels); got != "gemini-2.0-flash" {
		t.Fatalf("expected alias to resolve, got %q", got)
	}
	if got := resolveModel("gemini-exp-1206", geminiModels); got != "gemini-exp-1206" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}

func TestGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 5,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"answer": map[string]any{"type": "string", "enum": []string{"A", "B"}},
						"level":  map[string]any{"type": "integer"},
					},
					"required": []any{"answer"},
				},
			},
		},
		"required": []string{"questions"},
	}

	s := geminiSchema(def)
	if s.Type != genai.TypeObject || len(s.Required) != 1 {
		t.Fatalf("unexpected root: %+v", s)
	}
	qs := s.Properties["questions"]
	if qs.Type != genai.TypeArray || qs.MinItems == nil || *qs.MinItems != 1 || *qs.MaxItems != 5 {
		t.Fatalf("unexpected array schema: %+v", qs)
	}
	item := qs.Items
	if item.Properties["level"].Type != genai.TypeInteger {
		t.Fatalf("expected integer level, got %v", item.Properties["level"].Type)
	}
	if got := item.Properties["answer"].Enum; len(got) != 2 || got[1] != "B" {
		t.Fatalf("unexpected enum: %v", got)
	}
	if item.Required[0] != "answer" {
		t.Fatalf("unexpected required: %v", item.Required)
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		schema  *Schema
		raw     string
		wantErr bool
	}{
		{"valid", pairSchema(), `{"question":"q","answer":"A"}`, false},
		{"missing required", pairSchema(), `{"question":"q"}`, true},
		{"bad enum", pairSchema(), `{"question":"q","answer":"Z"}`, true},
		{"extra property", pairSchema(), `{"question":"q","answer":"A","x":1}`, true},
		{"not json", pairSchema(), `{"question":`, true},
		{"no schema", nil, `anything`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(tt.schema, json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("wantErr=%v, got %v", tt.wantErr, err)
			}
			if err != nil {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) || string(inv.Content) != tt.raw {
					t.Fatalf("expected ErrInvalidResponse carrying content, got %T", err)
				}
			}
		})
	}
}
