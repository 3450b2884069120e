package authoring

import (
	"strings"
	"testing"

	"github.com/abhisek/adaptiq/internal/bank"
)

func TestStructuralValidator(t *testing.T) {
	good := bank.Question{
		Subject: "GK", Level: 1, Text: "Capital of France?",
		Options: [4]string{"Paris", "Rome", "Berlin", "Madrid"}, Correct: bank.OptionA,
	}
	tests := []struct {
		name   string
		mutate func(q *bank.Question)
		want   string
	}{
		{"valid", func(q *bank.Question) {}, ""},
		{"empty text", func(q *bank.Question) { q.Text = "  " }, "question is empty"},
		{"long text", func(q *bank.Question) { q.Text = strings.Repeat("x", maxTextLen+1) }, "exceeds"},
		{"bad letter", func(q *bank.Question) { q.Correct = "E" }, "not one of A-D"},
		{"empty option", func(q *bank.Question) { q.Options[2] = "" }, "option C is empty"},
		{"same options", func(q *bank.Question) { q.Options[3] = " paris." }, "options A and D"},
		{"long explanation", func(q *bank.Question) { q.Explanation = strings.Repeat("y", maxExplanationLen+1) }, "explanation"},
	}
	v := &StructuralValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := good
			tt.mutate(&q)
			err := v.Validate(q, nil)
			if tt.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Message, tt.want) {
				t.Fatalf("expected %q, got %v", tt.want, err)
			}
			if !err.Retryable {
				t.Error("structural rejects should be retryable")
			}
		})
	}
}

func TestDuplicateValidator(t *testing.T) {
	seen := map[string]bool{normalize("What is 2 + 2?"): true}
	v := &DuplicateValidator{}
	if err := v.Validate(bank.Question{Text: "What is 2 + 3?"}, seen); err != nil {
		t.Errorf("unexpected reject: %v", err)
	}
	if err := v.Validate(bank.Question{Text: "What is 2 + 2 ?"}, seen); err == nil {
		t.Error("expected duplicate to be rejected")
	}
}

func TestNormalizeAndSlug(t *testing.T) {
	tests := []struct{ in, norm, slug string }{
		{"Ratio & Proportion", "ratio proportion", "ratio-proportion"},
		{"  What is 10% of 50? ", "what is 10 of 50", "what-is-10-of-50"},
		{"GK", "gk", "gk"},
		{"", "", ""},
	}
	for _, tt := range tests {
		if got := normalize(tt.in); got != tt.norm {
			t.Errorf("normalize(%q) = %q, want %q", tt.in, got, tt.norm)
		}
		if got := slug(tt.in); got != tt.slug {
			t.Errorf("slug(%q) = %q, want %q", tt.in, got, tt.slug)
		}
	}
}

func TestIDAllocator(t *testing.T) {
	a := newIDAllocator([]bank.Question{{ID: "gk-capitals-2"}, {ID: "gk-3"}, {ID: "odd"}})
	if got := a.allocate("GK", "Capitals"); got != "gk-capitals-3" {
		t.Errorf("got %s", got)
	}
	if got := a.allocate("GK", ""); got != "gk-4" {
		t.Errorf("got %s", got)
	}
}

func TestBuildExisting(t *testing.T) {
	if got := buildExisting(nil, 5); got != "None" {
		t.Errorf("expected None, got %q", got)
	}
	got := buildExisting([]string{"a", "b", "c"}, 2)
	if got != "1. b\n2. c" {
		t.Errorf("unexpected list %q", got)
	}
}
