package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/app"
	"github.com/abhisek/adaptiq/internal/screens/quiz"
	"github.com/abhisek/adaptiq/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a test directly",
	Long: `Start a test without the menus. Missing settings are asked for in
plain mode; the full-screen mode requires --subject.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		count, _ := cmd.Flags().GetInt("count")
		forcePlain, _ := cmd.Flags().GetBool("plain")
		seed, _ := cmd.Flags().GetUint64("seed")

		setup := session.Setup{Subject: subject, Count: count}
		if forcePlain || !isTerminal() {
			return runPlain(cmd, setup, seed)
		}
		if subject == "" {
			return fmt.Errorf("--subject is required (or use --plain to choose interactively)")
		}
		return runQuiz(cmd, setup)
	},
}

// runQuiz starts the session up front and opens the TUI on the quiz.
func runQuiz(cmd *cobra.Command, setup session.Setup) error {
	env, err := newEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	st, err := env.engine.Start(setup)
	if err != nil {
		return fmt.Errorf("start test: %w", err)
	}

	opts := app.Options{
		Engine:   env.engine,
		DebugLog: stringSetting(cmd, "debug-log", "DEBUG_LOG"),
		Initial:  quiz.New(env.engine, st),
	}
	if env.store != nil {
		opts.Journal = env.store.EventRepo()
	}
	return app.Run(opts)
}

func init() {
	playCmd.Flags().StringP("subject", "s", "", "Subject to test")
	playCmd.Flags().IntP("count", "n", session.CountChoices[0], "Number of questions")
	playCmd.Flags().Bool("plain", false, "Line-oriented mode instead of full screen")
	playCmd.Flags().Uint64("seed", 0, "Seed for reproducible question order (0 = random)")
}
