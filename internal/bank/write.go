package bank

import (
	"encoding/csv"
	"fmt"
	"io"
)

var csvHeader = []string{
	"question_id", "subject", "topic", "difficulty_level", "question",
	"option_a", "option_b", "option_c", "option_d", "correct_option", "explanation",
}

// WriteCSV writes questions in the canonical CSV layout read by Load.
// Levels are written by name when names covers them, otherwise as numbers.
func WriteCSV(w io.Writer, questions []Question, names []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, q := range questions {
		level := fmt.Sprintf("%d", q.Level)
		if int(q.Level) >= 1 && int(q.Level) <= len(names) {
			level = names[q.Level-1]
		}
		rec := []string{
			q.ID, q.Subject, q.Topic, level, q.Text,
			q.Options[0], q.Options[1], q.Options[2], q.Options[3],
			string(q.Correct), q.Explanation,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write %s: %w", q.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
