package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/abhisek/adaptiq/internal/adaptive"
	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/store"
)

const envPrefix = "ADAPTIQ_"

var rootCmd = &cobra.Command{
	Use:           "adaptiq",
	Short:         "Adaptive multiple-choice practice tests",
	Long:          "AdaptIQ runs timed multiple-choice tests whose difficulty follows your answers.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isTerminal() {
			return runPlain(cmd, session.Setup{}, 0)
		}
		return runApp(cmd)
	},
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("bank", "", "Question bank file: .csv, .yaml or .json (overrides ADAPTIQ_BANK; default: built-in bank)")
	pf.String("preset", adaptive.PresetDefault, "Adaptive policy preset (overrides ADAPTIQ_PRESET)")
	pf.String("policy", "", "Adaptive policy YAML file (overrides ADAPTIQ_POLICY and --preset)")
	pf.String("db", "", "Path to SQLite database file (overrides ADAPTIQ_DB)")
	pf.Bool("no-journal", false, "Do not record sessions (or set ADAPTIQ_NO_JOURNAL=1)")
	pf.String("debug-log", "", "Write debug log output to this file (overrides ADAPTIQ_DEBUG_LOG)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(policyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// stringSetting returns the flag value when set on the command line, then
// the ADAPTIQ_ env var, then the flag default.
func stringSetting(cmd *cobra.Command, flag, env string) string {
	f := cmd.Flags().Lookup(flag)
	if f != nil && f.Changed {
		return f.Value.String()
	}
	if v := os.Getenv(envPrefix + env); v != "" {
		return v
	}
	if f != nil {
		return f.DefValue
	}
	return ""
}

func journalDisabled(cmd *cobra.Command) bool {
	if v, _ := cmd.Flags().GetBool("no-journal"); v {
		return true
	}
	switch os.Getenv(envPrefix + "NO_JOURNAL") {
	case "1", "true", "yes":
		return true
	}
	return false
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// loadPolicy resolves --policy, then --preset.
func loadPolicy(cmd *cobra.Command) (adaptive.Config, error) {
	if path := stringSetting(cmd, "policy", "POLICY"); path != "" {
		cfg, err := adaptive.LoadConfig(path)
		if err != nil {
			return adaptive.Config{}, fmt.Errorf("load policy: %w", err)
		}
		return cfg, nil
	}
	return adaptive.Preset(stringSetting(cmd, "preset", "PRESET"))
}

// loadBank reads --bank, resolving level names against the policy, or the
// built-in bank.
func loadBank(cmd *cobra.Command, cfg adaptive.Config) (*bank.Set, error) {
	path := stringSetting(cmd, "bank", "BANK")
	if path == "" {
		set, err := bank.Default(bank.WithLevelNames(cfg.Levels))
		if err != nil {
			return nil, fmt.Errorf("load built-in bank: %w", err)
		}
		return set, nil
	}
	set, err := bank.Load(path, bank.WithLevelNames(cfg.Levels))
	if err != nil {
		return nil, fmt.Errorf("load bank: %w", err)
	}
	return set, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then ADAPTIQ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p := stringSetting(cmd, "db", "DB"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the journal database.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// environment is everything a test run needs.
type environment struct {
	engine *session.Engine
	store  *store.Store
}

func (e *environment) Close() {
	if e.store != nil {
		e.store.Close()
	}
}

// newEnvironment loads policy and bank, opens the journal unless disabled,
// and builds the engine.
func newEnvironment(cmd *cobra.Command, opts ...session.EngineOption) (*environment, error) {
	cfg, err := loadPolicy(cmd)
	if err != nil {
		return nil, err
	}
	set, err := loadBank(cmd, cfg)
	if err != nil {
		return nil, err
	}

	env := &environment{}
	if !journalDisabled(cmd) {
		s, err := openStore(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: journal unavailable, history will not be recorded: %v\n", err)
		} else {
			env.store = s
			opts = append(opts, session.WithJournal(s.EventRepo()))
		}
	}

	env.engine, err = session.NewEngine(set, cfg, opts...)
	if err != nil {
		env.Close()
		return nil, err
	}
	return env, nil
}
