package cli

import (
	"fmt"
	"text/tabwriter"

	"maintenance_diagnosis/internal/rules"

	"github.com/spf13/cobra"
)

func newRulesCmd(opts *options) *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect the rule file",
	}

	checkCmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Compile every rule and print them in evaluation order",
		Long: `Loads the rule file (the configured rules.path unless a file is given) and
compiles every condition. All compile errors are listed; the command exits
non-zero when any rule is invalid.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.setup()
			if err != nil {
				return err
			}
			path := cfg.Rules.Path
			if len(args) == 1 {
				path = args[0]
			}
			log.Debugw("rules_check", "path", path)

			// Compile leniently so every broken rule is reported, not just the first.
			set, err := rules.LoadFile(path, rules.Lenient)
			if err != nil {
				return err
			}
			printRules(cmd, set)

			if bad := len(set.Invalid()); bad > 0 {
				return fmt.Errorf("%d of %d rules in %s failed to compile", bad, set.Len(), path)
			}
			printf(cmd, "%d rules OK\n", set.Len())
			return nil
		},
	}

	rulesCmd.AddCommand(checkCmd)
	return rulesCmd
}

func printRules(cmd *cobra.Command, set *rules.RuleSet) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "#\tSTATUS\tACTION\tCONDITION")
	fmt.Fprintln(w, "-\t------\t------\t---------")
	for i, r := range set.Rules() {
		cond := r.Condition
		if err := r.Err(); err != nil {
			cond = fmt.Sprintf("%s  (error: %v)", cond, err)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i, r.Status, r.Action, cond)
	}
}
