package adaptive

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/abhisek/adaptiq/internal/bank"
)

func mkq(id string, level bank.Level, topic string) bank.Question {
	return bank.Question{
		ID:      id,
		Subject: "Aptitude",
		Topic:   topic,
		Level:   level,
		Text:    "question " + id,
		Options: [4]string{"1", "2", "3", "4"},
		Correct: bank.OptionA,
	}
}

// pool builds perLevel questions for each of levels 1..levels.
func pool(levels, perLevel int) []bank.Question {
	var out []bank.Question
	for l := 1; l <= levels; l++ {
		for i := 0; i < perLevel; i++ {
			out = append(out, mkq(fmt.Sprintf("l%d-%d", l, i), bank.Level(l), ""))
		}
	}
	return out
}

func seeded() rand.Source { return rand.NewPCG(1, 2) }

func TestSelectNext_PrefersCurrentLevel(t *testing.T) {
	sel := NewSelector(DefaultConfig(), seeded())
	qs := pool(5, 4)
	for i := 0; i < 20; i++ {
		got, err := sel.SelectNext(Request{Subject: "Aptitude", Pool: qs, Level: 3, Asked: map[string]bool{}})
		if err != nil {
			t.Fatal(err)
		}
		if got.Question.Level != 3 || got.Stage != StagePrimary {
			t.Fatalf("got level %d via %s, want level 3 via primary", got.Question.Level, got.Stage)
		}
	}
}

func TestSelectNext_FallsBackToUnasked(t *testing.T) {
	sel := NewSelector(DefaultConfig(), seeded())
	qs := pool(2, 2)
	asked := map[string]bool{"l1-0": true, "l1-1": true}

	got, err := sel.SelectNext(Request{Pool: qs, Level: 1, Asked: asked})
	if err != nil {
		t.Fatal(err)
	}
	if asked[got.Question.ID] {
		t.Errorf("returned asked question %s", got.Question.ID)
	}
	if got.Stage != StageUnasked {
		t.Errorf("stage = %s, want unasked", got.Stage)
	}
}

func TestSelectNext_FallsBackToAnyWhenExhausted(t *testing.T) {
	sel := NewSelector(DefaultConfig(), seeded())
	qs := pool(1, 2)
	asked := map[string]bool{"l1-0": true, "l1-1": true}

	got, err := sel.SelectNext(Request{Pool: qs, Level: 1, Asked: asked})
	if err != nil {
		t.Fatal(err)
	}
	if got.Stage != StageAny {
		t.Errorf("stage = %s, want any", got.Stage)
	}
}

func TestSelectNext_EmptySubject(t *testing.T) {
	sel := NewSelector(DefaultConfig(), seeded())
	_, err := sel.SelectNext(Request{Subject: "Physics", Level: 1})

	var epe *EmptyPoolError
	if !errors.As(err, &epe) || epe.Subject != "Physics" {
		t.Fatalf("expected EmptyPoolError, got %v", err)
	}
	if !errors.Is(err, ErrEmptyPool) {
		t.Error("EmptyPoolError should match ErrEmptyPool")
	}
}

func TestSelectNext_NoRepeatsWhileUnaskedRemain(t *testing.T) {
	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			cfg, _ := Preset(name)
			sel := NewSelector(cfg, seeded())
			qs := pool(len(cfg.Levels), 5)
			asked := map[string]bool{}
			st := NewState(cfg)
			rng := rand.New(rand.NewPCG(3, 4))

			for turn := 0; turn < len(qs); turn++ {
				got, err := sel.SelectNext(Request{Pool: qs, Level: st.Level, Asked: asked, Block: st.Block, Turn: turn})
				if err != nil {
					t.Fatal(err)
				}
				if asked[got.Question.ID] {
					t.Fatalf("turn %d: repeated %s with %d unasked left", turn, got.Question.ID, len(qs)-len(asked))
				}
				asked[got.Question.ID] = true
				st = NoteTopic(st, got.Question.Topic)
				st, _ = RecordOutcome(cfg, st, rng.IntN(2) == 0)
			}
		})
	}
}

func TestSelectNext_TopicRotation(t *testing.T) {
	cfg, _ := Preset(PresetTopicAlternating)
	sel := NewSelector(cfg, seeded())
	qs := []bank.Question{
		mkq("p1", 1, "Percentages"),
		mkq("p2", 1, "Percentages"),
		mkq("r1", 1, "Ratio & Proportion"),
		mkq("r2", 1, "Ratio & Proportion"),
		mkq("a1", 1, "Averages"),
	}
	asked := map[string]bool{}
	want := []string{"Percentages", "Ratio & Proportion", "Percentages", "Ratio & Proportion"}
	for turn, topic := range want {
		got, err := sel.SelectNext(Request{Pool: qs, Level: 1, Asked: asked, Turn: turn})
		if err != nil {
			t.Fatal(err)
		}
		if got.Question.Topic != topic {
			t.Errorf("turn %d: topic %q, want %q", turn, got.Question.Topic, topic)
		}
		asked[got.Question.ID] = true
	}

	// Both rotation topics are used up, so the unasked fallback takes over.
	got, _ := sel.SelectNext(Request{Pool: qs, Level: 1, Asked: asked, Turn: 4})
	if got.Question.ID != "a1" || got.Stage != StageUnasked {
		t.Errorf("got %s via %s, want a1 via unasked", got.Question.ID, got.Stage)
	}
}

func TestSelectNext_TopicRotationOnlyAtConfiguredLevel(t *testing.T) {
	cfg, _ := Preset(PresetTopicAlternating)
	sel := NewSelector(cfg, seeded())
	qs := []bank.Question{mkq("g1", 2, "Geometry")}
	got, err := sel.SelectNext(Request{Pool: qs, Level: 2, Asked: map[string]bool{}})
	if err != nil {
		t.Fatal(err)
	}
	if got.Stage != StagePrimary {
		t.Errorf("stage = %s, want primary", got.Stage)
	}
}

func TestSelectNext_BlockTopicRotation(t *testing.T) {
	cfg, _ := Preset(PresetConceptRotation)
	cfg.Warmup = nil
	sel := NewSelector(cfg, seeded())
	qs := []bank.Question{
		mkq("s1", 1, "Synonyms"),
		mkq("s2", 1, "Synonyms"),
		mkq("g1", 1, "Grammar"),
	}
	block := Block{Topics: []string{"Synonyms"}}
	got, _ := sel.SelectNext(Request{Pool: qs, Level: 1, Asked: map[string]bool{}, Block: block})
	if got.Question.ID != "g1" {
		t.Errorf("got %s, want g1", got.Question.ID)
	}

	// With every topic used the level stage relaxes the rotation.
	block.Topics = append(block.Topics, "Grammar")
	got, _ = sel.SelectNext(Request{Pool: qs, Level: 1, Asked: map[string]bool{"g1": true}, Block: block})
	if got.Stage != StageLevel || got.Question.Topic != "Synonyms" {
		t.Errorf("got %s via %s, want a Synonyms question via level", got.Question.ID, got.Stage)
	}
}

func TestSelectNext_Warmup(t *testing.T) {
	cfg, _ := Preset(PresetConceptRotation)
	sel := NewSelector(cfg, seeded())
	hard := mkq("hard", 1, "Interest")
	hard.Text = "Find the compound interest on 5000 at 10% per annum for 2 years."
	easy := mkq("easy", 1, "Percentages")
	easy.Text = "What is 10% of 50?"
	qs := []bank.Question{hard, easy}

	for i := 0; i < 10; i++ {
		got, _ := sel.SelectNext(Request{Pool: qs, Level: 1, Asked: map[string]bool{}, Turn: 0})
		if got.Question.ID != "easy" {
			t.Fatalf("warm-up picked %s", got.Question.ID)
		}
	}

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		got, _ := sel.SelectNext(Request{Pool: qs, Level: 1, Asked: map[string]bool{}, Turn: 3})
		seen[got.Question.ID] = true
	}
	if !seen["hard"] {
		t.Error("warm-up filter should not apply after the warm-up window")
	}
}

func TestWarmupPlain(t *testing.T) {
	w := Warmup{MaxTextLength: 40, MaxNumber: 100, ExcludeTerms: []string{"speed"}}
	tests := []struct {
		text string
		want bool
	}{
		{"What is 10% of 50?", true},
		{"What is 10% of 500?", false},
		{"A car's speed is 40 km/h.", false},
		{"This question text is definitely longer than forty characters.", false},
		{"¿Qué número sigue? 2, 4, 6, 8, ¿cuál?", true},
		{strings.Repeat("é", 40), true},
		{strings.Repeat("é", 41), false},
	}
	for _, tt := range tests {
		if got := w.Plain(bank.Question{Text: tt.text}); got != tt.want {
			t.Errorf("Plain(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestSelectNext_DeterministicWithSeed(t *testing.T) {
	qs := pool(1, 20)
	a := NewSelector(DefaultConfig(), rand.NewPCG(9, 9))
	b := NewSelector(DefaultConfig(), rand.NewPCG(9, 9))
	for i := 0; i < 10; i++ {
		req := Request{Pool: qs, Level: 1, Asked: map[string]bool{}}
		x, _ := a.SelectNext(req)
		y, _ := b.SelectNext(req)
		if x.Question.ID != y.Question.ID {
			t.Fatalf("draw %d differs: %s vs %s", i, x.Question.ID, y.Question.ID)
		}
	}
}
