package bank

import (
	"strings"
	"testing"
)

func q(id, subject, topic string, level Level) Question {
	return Question{
		ID:      id,
		Subject: subject,
		Topic:   topic,
		Level:   level,
		Text:    "question " + id,
		Options: [4]string{"w", "x", "y", "z"},
		Correct: OptionA,
	}
}

func TestNewSet_RejectsDuplicateIDs(t *testing.T) {
	_, err := NewSet([]Question{q("a", "Math", "", 1), q("a", "Math", "", 2)})
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestNewSet_ValidatesQuestions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Question)
	}{
		{"no id", func(q *Question) { q.ID = "" }},
		{"no subject", func(q *Question) { q.Subject = " " }},
		{"no text", func(q *Question) { q.Text = "" }},
		{"zero level", func(q *Question) { q.Level = 0 }},
		{"empty option", func(q *Question) { q.Options[2] = "" }},
		{"bad correct", func(q *Question) { q.Correct = "E" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			question := q("x", "Math", "", 1)
			tt.mutate(&question)
			if _, err := NewSet([]Question{question}); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSet_FilterAndLookups(t *testing.T) {
	set, err := NewSet([]Question{
		q("m1", "Math", "Ratio", 1),
		q("m2", "Math", "Percent", 1),
		q("m3", "Math", "Ratio", 2),
		q("e1", "English", "Grammar", 1),
	})
	if err != nil {
		t.Fatal(err)
	}

	if got := set.Subjects(); len(got) != 2 || got[0] != "English" || got[1] != "Math" {
		t.Errorf("Subjects() = %v", got)
	}
	if !set.HasSubject("math") {
		t.Error("HasSubject should be case-insensitive")
	}
	if got := len(set.Subject("MATH")); got != 3 {
		t.Errorf("Subject(MATH) len = %d, want 3", got)
	}
	if got := set.Topics("Math"); len(got) != 2 {
		t.Errorf("Topics(Math) = %v", got)
	}
	if got := set.MaxLevel(); got != 2 {
		t.Errorf("MaxLevel() = %d, want 2", got)
	}

	got := set.Filter(Filter{Subject: "Math", Level: 1, Exclude: map[string]bool{"m1": true}})
	if len(got) != 1 || got[0].ID != "m2" {
		t.Errorf("Filter returned %v", got)
	}
	got = set.Filter(Filter{Subject: "Math", Topic: "ratio"})
	if len(got) != 2 {
		t.Errorf("topic filter returned %d questions, want 2", len(got))
	}

	if _, ok := set.Get("e1"); !ok {
		t.Error("Get(e1) not found")
	}
	if _, ok := set.Get("nope"); ok {
		t.Error("Get(nope) should miss")
	}
}

func TestSet_Stats(t *testing.T) {
	set, _ := NewSet([]Question{
		q("m1", "Math", "Ratio", 1),
		q("m2", "Math", "", 1),
		q("m3", "Math", "Ratio", 3),
	})
	stats := set.Stats()
	if len(stats) != 1 {
		t.Fatalf("got %d subjects", len(stats))
	}
	st := stats[0]
	if st.Total != 3 || st.ByLevel[1] != 2 || st.ByLevel[3] != 1 || st.Topics != 1 {
		t.Errorf("unexpected stats %+v", st)
	}
}

func TestParseOption(t *testing.T) {
	tests := []struct {
		in   string
		want Option
		ok   bool
	}{
		{"a", OptionA, true},
		{" B ", OptionB, true},
		{"3", OptionC, true},
		{"Option_D", OptionD, true},
		{"option b", OptionB, true},
		{"E", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, err := ParseOption(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseOption(%q) = %q, %v", tt.in, got, err)
		}
	}
}
