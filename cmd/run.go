package cmd

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/app"
	"github.com/abhisek/adaptiq/internal/plain"
	"github.com/abhisek/adaptiq/internal/session"
)

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	env, err := newEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	opts := app.Options{
		Engine:   env.engine,
		DebugLog: stringSetting(cmd, "debug-log", "DEBUG_LOG"),
	}
	if env.store != nil {
		opts.Journal = env.store.EventRepo()
	}
	return app.Run(opts)
}

// runPlain runs one test as a line dialogue on stdin and stdout. A zero
// seed picks questions randomly.
func runPlain(cmd *cobra.Command, setup session.Setup, seed uint64) error {
	var opts []session.EngineOption
	if seed != 0 {
		opts = append(opts, session.WithRandSource(rand.NewPCG(seed, seed)))
	}
	env, err := newEnvironment(cmd, opts...)
	if err != nil {
		return err
	}
	defer env.Close()

	r := plain.New(env.engine, os.Stdin, os.Stdout)
	setup, err = r.ChooseSetup(setup)
	if err != nil {
		return err
	}
	st, err := env.engine.Start(setup)
	if err != nil {
		return fmt.Errorf("start test: %w", err)
	}
	_, err = r.Run(st)
	return err
}
