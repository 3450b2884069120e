package authoring

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write multiple-choice questions for timed practice tests.

Rules:
- Every question has exactly four options and exactly one correct option.
- Options are short, distinct, and plausible. Distractors reflect common mistakes.
- Question text is self-contained plain text. No markdown, no LaTeX, no images.
- Match the requested difficulty: level 1 is the easiest on the given scale.
- Vary the position of the correct option across the batch.
- The explanation states briefly why the correct option is right.
- Never repeat or paraphrase a question from the "already in the bank" list.`

// buildUserMessage renders the request for one batch.
func buildUserMessage(in Input, count int, existing []string, maxExisting int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Subject: %s\n", in.Subject)
	if in.Topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", in.Topic)
	} else {
		b.WriteString("Topic: any topic within the subject; label each question with its topic\n")
	}
	level := fmt.Sprintf("%d", in.Level)
	if in.LevelName != "" {
		level = fmt.Sprintf("%s (%d)", in.LevelName, in.Level)
	}
	if in.Levels > 0 {
		fmt.Fprintf(&b, "Difficulty: %s on a scale of 1 to %d\n", level, in.Levels)
	} else {
		fmt.Fprintf(&b, "Difficulty: %s\n", level)
	}
	fmt.Fprintf(&b, "Number of questions: %d\n", count)

	b.WriteString("\nAlready in the bank:\n")
	b.WriteString(buildExisting(existing, maxExisting))
	return b.String()
}

// buildExisting lists the most recent max question texts, or "None".
func buildExisting(texts []string, max int) string {
	if len(texts) == 0 {
		return "None"
	}
	if max > 0 && len(texts) > max {
		texts = texts[len(texts)-max:]
	}

	var b strings.Builder
	for i, t := range texts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t)
	}
	return strings.TrimRight(b.String(), "\n")
}
