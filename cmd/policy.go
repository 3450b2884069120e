package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/adaptive"
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Inspect adaptive policies",
}

var policyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		t := newTable("Preset", "Levels", "Block", "Description")
		for _, name := range adaptive.PresetNames() {
			cfg, err := adaptive.Preset(name)
			if err != nil {
				return err
			}
			t.Row(name, fmt.Sprint(len(cfg.Levels)), fmt.Sprint(cfg.BlockSize), adaptive.PresetDescription(name))
		}
		printTable(cmd.OutOrStdout(), t)
		return nil
	},
}

var policyShowCmd = &cobra.Command{
	Use:   "show [preset]",
	Short: "Print a policy as YAML, ready to edit and pass with --policy",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var cfg adaptive.Config
		var err error
		if len(args) == 1 {
			cfg, err = adaptive.Preset(args[0])
		} else {
			cfg, err = loadPolicy(cmd)
		}
		if err != nil {
			return err
		}

		out, err := cfg.YAML()
		if err != nil {
			return fmt.Errorf("encode policy: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), strings.TrimRight(out, "\n")+"\n")
		return nil
	},
}

func init() {
	policyCmd.AddCommand(policyListCmd)
	policyCmd.AddCommand(policyShowCmd)
}
