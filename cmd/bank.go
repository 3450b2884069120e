package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/authoring"
	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/llm"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect, validate and extend question banks",
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadPolicy(cmd)
		if err != nil {
			return err
		}
		set, err := loadBank(cmd, cfg)
		if err != nil {
			return err
		}

		f := bank.Filter{}
		f.Subject, _ = cmd.Flags().GetString("subject")
		f.Topic, _ = cmd.Flags().GetString("topic")
		if lv, _ := cmd.Flags().GetString("level"); lv != "" {
			if f.Level, err = bank.ParseLevel(lv, cfg.Levels); err != nil {
				return err
			}
		}
		limit, _ := cmd.Flags().GetInt("limit")

		qs := set.Filter(f)
		if len(qs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No questions match.")
			return nil
		}

		t := newTable("ID", "Subject", "Topic", "Level", "Question")
		for i, q := range qs {
			if limit > 0 && i == limit {
				break
			}
			t.Row(q.ID, q.Subject, q.Topic, cfg.LevelName(q.Level), truncate(q.Text, 60))
		}
		printTable(cmd.OutOrStdout(), t)
		if limit > 0 && len(qs) > limit {
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d questions shown (use --limit 0 for all)\n", limit, len(qs))
		}
		return nil
	},
}

var bankStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count questions per subject and level",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadPolicy(cmd)
		if err != nil {
			return err
		}
		set, err := loadBank(cmd, cfg)
		if err != nil {
			return err
		}

		maxLevel := max(set.MaxLevel(), cfg.MaxLevel())
		headers := []string{"Subject", "Topics"}
		for l := bank.Level(1); l <= maxLevel; l++ {
			headers = append(headers, cfg.LevelName(l))
		}
		headers = append(headers, "Total")

		t := newTable(headers...)
		for _, st := range set.Stats() {
			row := []string{st.Subject, fmt.Sprint(st.Topics)}
			for l := bank.Level(1); l <= maxLevel; l++ {
				row = append(row, fmt.Sprint(st.ByLevel[l]))
			}
			row = append(row, fmt.Sprint(st.Total))
			t.Row(row...)
		}
		printTable(cmd.OutOrStdout(), t)
		return nil
	},
}

var bankValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check that a bank file loads cleanly",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadPolicy(cmd)
		if err != nil {
			return err
		}
		set, err := bank.Load(args[0], bank.WithLevelNames(cfg.Levels))
		if err != nil {
			return fmt.Errorf("invalid bank: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d questions in %d subjects\n",
			args[0], set.Len(), len(set.Subjects()))
		if set.MaxLevel() > cfg.MaxLevel() {
			fmt.Fprintf(cmd.OutOrStdout(), "note: bank uses level %d but the policy stops at %d\n",
				set.MaxLevel(), cfg.MaxLevel())
		}
		return nil
	},
}

var bankGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write new questions with an LLM",
	Long: `Generate multiple-choice questions with the configured LLM and write
them as CSV. Questions already in the bank are shown to the model and
rejected if repeated.

The provider is chosen from ADAPTIQ_LLM_PROVIDER and ADAPTIQ_<NAME>_API_KEY,
or discovered from GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or
OPENROUTER_API_KEY.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		cfg, err := loadPolicy(cmd)
		if err != nil {
			return err
		}
		set, err := loadBank(cmd, cfg)
		if err != nil {
			return err
		}

		subject, _ := cmd.Flags().GetString("subject")
		topic, _ := cmd.Flags().GetString("topic")
		lv, _ := cmd.Flags().GetString("level")
		count, _ := cmd.Flags().GetInt("count")
		outPath, _ := cmd.Flags().GetString("out")

		level, err := bank.ParseLevel(lv, cfg.Levels)
		if err != nil {
			return err
		}

		llmCfg, err := llm.ResolveConfig()
		if err != nil {
			return err
		}

		var reqLog llm.RequestLog
		if !journalDisabled(cmd) {
			s, err := openStore(cmd)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: LLM requests will not be recorded: %v\n", err)
			} else {
				defer s.Close()
				reqLog = s.EventRepo()
			}
		}

		provider, err := llm.NewProvider(ctx, llmCfg, reqLog)
		if err != nil {
			return err
		}

		genCfg := authoring.DefaultConfig()
		genCfg.Warn = func(err error) { fmt.Fprintf(os.Stderr, "warning: %v\n", err) }
		gen := authoring.New(provider, genCfg)

		qs, err := gen.Generate(ctx, authoring.Input{
			Subject:   subject,
			Topic:     topic,
			Level:     level,
			LevelName: cfg.LevelName(level),
			Levels:    len(cfg.Levels),
			Count:     count,
			Existing:  set.Subject(subject),
		})
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}

		out := cmd.OutOrStdout()
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer f.Close()
			out = f
		}
		if err := bank.WriteCSV(out, qs, cfg.Levels); err != nil {
			return err
		}
		if outPath != "" || len(qs) < count {
			fmt.Fprintf(os.Stderr, "%d of %d questions written (%s)\n", len(qs), count, provider.ModelID())
		}
		return nil
	},
}

func init() {
	bankListCmd.Flags().String("subject", "", "Only this subject")
	bankListCmd.Flags().String("topic", "", "Only this topic")
	bankListCmd.Flags().String("level", "", "Only this level (name or number)")
	bankListCmd.Flags().IntP("limit", "n", 50, "Maximum rows (0 = all)")

	bankGenerateCmd.Flags().String("subject", "", "Subject of the new questions")
	bankGenerateCmd.Flags().String("topic", "", "Topic of the new questions (default: model's choice)")
	bankGenerateCmd.Flags().String("level", "1", "Difficulty level (name or number)")
	bankGenerateCmd.Flags().IntP("count", "n", 10, "Number of questions")
	bankGenerateCmd.Flags().StringP("out", "o", "", "Output CSV file (default: stdout)")
	bankGenerateCmd.MarkFlagRequired("subject")

	bankCmd.AddCommand(bankListCmd)
	bankCmd.AddCommand(bankStatsCmd)
	bankCmd.AddCommand(bankValidateCmd)
	bankCmd.AddCommand(bankGenerateCmd)
}
