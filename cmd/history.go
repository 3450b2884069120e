package cmd

import (
	"context"
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past tests",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent tests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		sessions, err := s.EventRepo().QuerySessions(context.Background(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No tests recorded yet.")
			return nil
		}

		t := newTable("ID", "Started", "Subject", "Policy", "Score", "Accuracy", "Level", "Ended", "Time")
		for _, rec := range sessions {
			sum := session.SummaryFromJournal(rec, nil)
			level := sum.StartLevel
			if rec.Ended {
				level = sum.StartLevel + " -> " + sum.FinalLevel
			}
			t.Row(
				rec.SessionID[:min(8, len(rec.SessionID))],
				rec.StartedAt.Local().Format("2006-01-02 15:04"),
				rec.Subject,
				rec.Policy,
				fmt.Sprintf("%d / %d", rec.Correct, rec.Answered),
				fmt.Sprintf("%.0f%%", rec.Accuracy()*100),
				level,
				string(sum.EndReason),
				session.FormatDuration(sum.Duration),
			)
		}
		printTable(cmd.OutOrStdout(), t)
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show the report of one test (an ID prefix is enough)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		repo := s.EventRepo()
		id, err := repo.ResolveSessionID(ctx, args[0])
		if err != nil {
			return err
		}

		rec, err := findSession(ctx, repo, id)
		if err != nil {
			return err
		}
		attempts, err := repo.SessionAttempts(ctx, id)
		if err != nil {
			return fmt.Errorf("load attempts: %w", err)
		}

		lipgloss.Fprint(cmd.OutOrStdout(), session.RenderReport(session.SummaryFromJournal(rec, attempts)))
		return nil
	},
}

func findSession(ctx context.Context, repo store.EventRepo, id string) (store.SessionRecord, error) {
	sessions, err := repo.QuerySessions(ctx, store.QueryOpts{})
	if err != nil {
		return store.SessionRecord{}, fmt.Errorf("query sessions: %w", err)
	}
	for _, rec := range sessions {
		if rec.SessionID == id {
			return rec, nil
		}
	}
	return store.SessionRecord{}, fmt.Errorf("session %s: %w", id, store.ErrNotFound)
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "Number of tests to show")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
}
