package cmd

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/store"
)

func newFlagCmd() *cobra.Command {
	c := &cobra.Command{Use: "t"}
	c.Flags().String("preset", "default", "")
	c.Flags().Bool("no-journal", false, "")
	return c
}

func TestStringSetting(t *testing.T) {
	c := newFlagCmd()
	t.Setenv(envPrefix+"PRESET", "")
	if got := stringSetting(c, "preset", "PRESET"); got != "default" {
		t.Errorf("default = %q, want default", got)
	}

	t.Setenv(envPrefix+"PRESET", "three-level")
	if got := stringSetting(c, "preset", "PRESET"); got != "three-level" {
		t.Errorf("env = %q, want three-level", got)
	}

	if err := c.Flags().Set("preset", "concept-rotation"); err != nil {
		t.Fatal(err)
	}
	if got := stringSetting(c, "preset", "PRESET"); got != "concept-rotation" {
		t.Errorf("flag = %q, want concept-rotation", got)
	}

	if got := stringSetting(c, "missing", "NOPE_UNSET"); got != "" {
		t.Errorf("unknown flag = %q, want empty", got)
	}
}

func TestJournalDisabled(t *testing.T) {
	c := newFlagCmd()
	t.Setenv(envPrefix+"NO_JOURNAL", "")
	if journalDisabled(c) {
		t.Error("journal disabled by default")
	}
	t.Setenv(envPrefix+"NO_JOURNAL", "1")
	if !journalDisabled(c) {
		t.Error("ADAPTIQ_NO_JOURNAL=1 ignored")
	}
	t.Setenv(envPrefix+"NO_JOURNAL", "")
	_ = c.Flags().Set("no-journal", "true")
	if !journalDisabled(c) {
		t.Error("--no-journal ignored")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("héllo wörld", 5); got != "héll…" {
		t.Errorf("truncate runes = %q, want héll…", got)
	}
}

func TestAggregateUsage(t *testing.T) {
	ev := func(model string, in, out int, ms int64, ok bool) store.LLMRequestRecord {
		return store.LLMRequestRecord{LLMRequestEventData: store.LLMRequestEventData{
			Model: model, InputTokens: in, OutputTokens: out, LatencyMs: ms, Success: ok,
		}}
	}
	usage := aggregateUsage([]store.LLMRequestRecord{
		ev("gpt", 10, 5, 100, true),
		ev("claude", 20, 10, 200, true),
		ev("claude", 30, 0, 400, false),
	})

	if len(usage) != 2 {
		t.Fatalf("got %d models, want 2", len(usage))
	}
	c := usage[0]
	if c.model != "claude" || c.calls != 2 || c.failures != 1 || c.in != 50 || c.out != 10 || c.latency != 600 {
		t.Errorf("claude usage = %+v", c)
	}
	if usage[1].model != "gpt" || usage[1].calls != 1 {
		t.Errorf("gpt usage = %+v", usage[1])
	}
}
