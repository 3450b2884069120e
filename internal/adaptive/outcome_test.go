package adaptive

import (
	"math/rand/v2"
	"testing"

	"github.com/abhisek/adaptiq/internal/bank"
)

func record(cfg Config, st State, answers ...bool) (State, []*LevelChange) {
	var changes []*LevelChange
	for _, a := range answers {
		var ch *LevelChange
		st, ch = RecordOutcome(cfg, st, a)
		changes = append(changes, ch)
	}
	return st, changes
}

func TestRecordOutcome_Promote(t *testing.T) {
	cfg := DefaultConfig()
	st, changes := record(cfg, State{Level: 2}, true, true, true)
	if st.Level != 3 {
		t.Errorf("level = %d, want 3", st.Level)
	}
	if changes[0] != nil || changes[1] != nil {
		t.Error("level changed before the block was full")
	}
	if ch := changes[2]; ch == nil || !ch.Promoted() || ch.From != 2 || ch.To != 3 {
		t.Errorf("unexpected change %+v", ch)
	}
	if len(st.Block.Outcomes) != 0 {
		t.Error("block should be cleared after evaluation")
	}
}

func TestRecordOutcome_Demote(t *testing.T) {
	st, changes := record(DefaultConfig(), State{Level: 4}, false, false, false)
	if st.Level != 3 {
		t.Errorf("level = %d, want 3", st.Level)
	}
	if ch := changes[2]; ch == nil || ch.Promoted() {
		t.Errorf("expected demotion, got %+v", ch)
	}
}

func TestRecordOutcome_MixedBlockKeepsLevel(t *testing.T) {
	cfg := DefaultConfig()
	for _, answers := range [][]bool{
		{true, true, false},
		{false, true, true},
		{true, false, false},
	} {
		st, changes := record(cfg, State{Level: 3}, answers...)
		if st.Level != 3 || changes[2] != nil {
			t.Errorf("%v: level %d, change %+v", answers, st.Level, changes[2])
		}
		if len(st.Block.Outcomes) != 0 {
			t.Errorf("%v: block not cleared", answers)
		}
	}
}

func TestRecordOutcome_Bounds(t *testing.T) {
	cfg := DefaultConfig()
	st, changes := record(cfg, State{Level: cfg.MaxLevel()}, true, true, true)
	if st.Level != cfg.MaxLevel() || changes[2] != nil {
		t.Errorf("promoted past max: level %d", st.Level)
	}
	st, changes = record(cfg, State{Level: 1}, false, false, false)
	if st.Level != 1 || changes[2] != nil {
		t.Errorf("demoted below min: level %d", st.Level)
	}
}

func TestRecordOutcome_DemotionDisabled(t *testing.T) {
	cfg, _ := Preset(PresetConceptRotation)
	st, _ := record(cfg, State{Level: 3}, false, false, false)
	if st.Level != 3 {
		t.Errorf("level = %d, want 3", st.Level)
	}
}

func TestRecordOutcome_BlockClearsTopics(t *testing.T) {
	cfg := DefaultConfig()
	st := NoteTopic(State{Level: 1}, "Percentages")
	st = NoteTopic(st, "")
	if len(st.Block.Topics) != 1 {
		t.Fatalf("topics = %v", st.Block.Topics)
	}
	st, _ = record(cfg, st, true, false, true)
	if len(st.Block.Topics) != 0 {
		t.Error("topics should reset with the block")
	}
}

func TestRecordOutcome_DoesNotAliasInput(t *testing.T) {
	cfg := DefaultConfig()
	before := State{Level: 1, Block: Block{Outcomes: make([]bool, 1, 8)}}
	after, _ := RecordOutcome(cfg, before, true)
	after.Block.Outcomes[0] = true
	if before.Block.Outcomes[0] {
		t.Error("RecordOutcome mutated the input block")
	}
}

func TestRecordOutcome_ChangesOnlyAtBlockBoundaries(t *testing.T) {
	for _, size := range []int{1, 2, 3, 5} {
		cfg := DefaultConfig()
		cfg.BlockSize = size
		rng := rand.New(rand.NewPCG(uint64(size), 7))
		st := NewState(cfg)
		for answered := 1; answered <= 200; answered++ {
			// Bias towards streaks so both directions are exercised.
			correct := rng.IntN(10) < 7
			if (answered/20)%2 == 1 {
				correct = !correct
			}
			var ch *LevelChange
			st, ch = RecordOutcome(cfg, st, correct)
			if ch != nil && answered%size != 0 {
				t.Fatalf("block %d: level changed after %d answers", size, answered)
			}
			if st.Level < 1 || st.Level > cfg.MaxLevel() {
				t.Fatalf("level %d out of range", st.Level)
			}
		}
	}
}

func TestNewState(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartLevel = 2
	if st := NewState(cfg); st.Level != bank.Level(2) || len(st.Block.Outcomes) != 0 {
		t.Errorf("unexpected state %+v", st)
	}
}
