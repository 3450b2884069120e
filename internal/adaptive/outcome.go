package adaptive

import "github.com/abhisek/adaptiq/internal/bank"

// Block is the rolling window of answers since the last evaluation.
type Block struct {
	Outcomes []bool   `json:"outcomes"`
	Topics   []string `json:"topics,omitempty"`
}

// State is the adaptive part of a session.
type State struct {
	Level bank.Level `json:"level"`
	Block Block      `json:"block"`
}

// NewState returns the starting state for cfg.
func NewState(cfg Config) State {
	return State{Level: bank.Level(cfg.StartLevel)}
}

// LevelChange describes a promotion or demotion.
type LevelChange struct {
	From bank.Level
	To   bank.Level
}

// Promoted reports whether the change moved up.
func (c LevelChange) Promoted() bool { return c.To > c.From }

// NoteTopic records that a question of topic was presented in the current
// block.
func NoteTopic(st State, topic string) State {
	if topic == "" {
		return st
	}
	st.Block.Topics = append(append([]string(nil), st.Block.Topics...), topic)
	return st
}

// RecordOutcome appends one answer to the block. When the block is full it
// is evaluated and cleared: all correct promotes, all wrong demotes, a mix
// keeps the level. The level never changes on a partial block.
func RecordOutcome(cfg Config, st State, correct bool) (State, *LevelChange) {
	outcomes := append(append([]bool(nil), st.Block.Outcomes...), correct)
	if len(outcomes) < cfg.BlockSize {
		st.Block.Outcomes = outcomes
		return st, nil
	}

	hits := 0
	for _, ok := range outcomes {
		if ok {
			hits++
		}
	}
	from := st.Level
	switch {
	case hits == len(outcomes) && cfg.Promote && st.Level < cfg.MaxLevel():
		st.Level++
	case hits == 0 && cfg.Demote && st.Level > 1:
		st.Level--
	}
	st.Block = Block{}

	if st.Level == from {
		return st, nil
	}
	return st, &LevelChange{From: from, To: st.Level}
}
