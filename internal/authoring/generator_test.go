package authoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/llm"
)

func item(text string, options ...string) map[string]any {
	if len(options) == 0 {
		options = []string{text + " a", text + " b", text + " c", text + " d"}
	}
	return map[string]any{
		"question":    text,
		"topic":       "Percentages",
		"options":     options,
		"correct":     "b",
		"explanation": "Because.",
	}
}

func batch(t *testing.T, items ...map[string]any) llm.MockResponse {
	t.Helper()
	b, err := json.Marshal(map[string]any{"questions": items})
	if err != nil {
		t.Fatal(err)
	}
	return llm.MockResponse{Content: b}
}

func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.Warn = nil
	return cfg
}

func aptitude(count int) Input {
	return Input{Subject: "Aptitude", Level: 2, LevelName: "Easy-Medium", Levels: 5, Count: count}
}

func TestGenerate_Batch(t *testing.T) {
	mock := llm.NewMockProvider(batch(t, item("What is 10% of 50?"), item("What is 25% of 80?")))
	gen := New(mock, quietConfig())

	qs, err := gen.Generate(context.Background(), aptitude(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	q := qs[0]
	if q.ID != "aptitude-percentages-1" || qs[1].ID != "aptitude-percentages-2" {
		t.Errorf("unexpected IDs: %s, %s", q.ID, qs[1].ID)
	}
	if q.Subject != "Aptitude" || q.Level != 2 || q.Correct != bank.OptionB {
		t.Errorf("unexpected question: %+v", q)
	}
	if err := q.Validate(); err != nil {
		t.Errorf("generated question invalid: %v", err)
	}

	calls := mock.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 LLM call, got %d", len(calls))
	}
	if calls[0].Schema != BatchSchema {
		t.Error("expected batch schema on request")
	}
	msg := calls[0].Messages[0].Content
	for _, want := range []string{"Subject: Aptitude", "Easy-Medium (2) on a scale of 1 to 5", "Number of questions: 2"} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q:\n%s", want, msg)
		}
	}
}

func TestGenerate_RetriesRejects(t *testing.T) {
	existing := []bank.Question{{
		ID: "aptitude-percentages-4", Subject: "Aptitude", Topic: "Percentages", Level: 1,
		Text: "What is 10% of 50?", Options: [4]string{"1", "5", "10", "50"}, Correct: bank.OptionB,
	}}
	mock := llm.NewMockProvider(
		batch(t,
			item("what is 10 % of 50"),
			item("Pick one", "x", "y", "X", "z"),
		),
		batch(t, item("What is 20% of 40?"), item("What is 50% of 12?")),
	)

	var warned []error
	cfg := DefaultConfig()
	cfg.Warn = func(err error) { warned = append(warned, err) }
	in := aptitude(2)
	in.Existing = existing

	qs, err := New(mock, cfg).Generate(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if qs[0].ID != "aptitude-percentages-5" {
		t.Errorf("expected numbering after existing IDs, got %s", qs[0].ID)
	}
	if len(warned) != 2 {
		t.Fatalf("expected 2 rejects, got %v", warned)
	}
	var verr *ValidationError
	if !errors.As(warned[0], &verr) || verr.Validator != "duplicate" {
		t.Errorf("expected duplicate reject first, got %v", warned[0])
	}
	if !errors.As(warned[1], &verr) || verr.Validator != "structural" {
		t.Errorf("expected structural reject second, got %v", warned[1])
	}
	if n := len(mock.Calls()); n != 2 {
		t.Fatalf("expected 2 LLM calls, got %d", n)
	}
	if !strings.Contains(mock.Calls()[1].Messages[0].Content, "1. What is 10% of 50?") {
		t.Error("expected existing question quoted in the prompt")
	}
}

func TestGenerate_Partial(t *testing.T) {
	mock := llm.NewMockProvider(batch(t, item("What is 1+1?")))
	cfg := quietConfig()
	cfg.MaxRounds = 1

	qs, err := New(mock, cfg).Generate(context.Background(), aptitude(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
}

func TestGenerate_TopicOverride(t *testing.T) {
	mock := llm.NewMockProvider(batch(t, item("Synonym of happy?")))
	in := Input{Subject: "English", Topic: "Synonyms & Antonyms", Level: 1, Count: 1}

	qs, err := New(mock, quietConfig()).Generate(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qs[0].Topic != "Synonyms & Antonyms" || qs[0].ID != "english-synonyms-antonyms-1" {
		t.Errorf("unexpected topic/ID: %q %q", qs[0].Topic, qs[0].ID)
	}
}

func TestGenerate_Errors(t *testing.T) {
	if _, err := New(llm.NewMockProvider(), quietConfig()).Generate(context.Background(), Input{Subject: "GK"}); err == nil {
		t.Error("expected error for zero count")
	}

	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	_, err := New(mock, quietConfig()).Generate(context.Background(), aptitude(1))
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected provider error, got %v", err)
	}

	mock = llm.NewMockProvider(batch(t, item("")), batch(t), batch(t, item("", "a", "b", "c", "d")))
	_, err = New(mock, quietConfig()).Generate(context.Background(), aptitude(1))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGenerated_WriteAndReload(t *testing.T) {
	mock := llm.NewMockProvider(batch(t, item("What is 10% of 50?"), item("What is 5% of 40?")))
	qs, err := New(mock, quietConfig()).Generate(context.Background(), aptitude(2))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := bank.WriteCSV(&buf, qs, bank.DefaultLevelNames); err != nil {
		t.Fatal(err)
	}
	set, err := bank.ReadCSV(&buf)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	got, ok := set.Get("aptitude-percentages-2")
	if !ok || got.Level != 2 || got.Text != "What is 5% of 40?" {
		t.Errorf("unexpected reloaded question: %+v", got)
	}
}
