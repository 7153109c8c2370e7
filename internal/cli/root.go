package cli

import (
	"fmt"

	"maintenance_diagnosis/internal/config"
	"maintenance_diagnosis/internal/logger"
	"maintenance_diagnosis/internal/rules"

	"github.com/spf13/cobra"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	configPath string
	verbose    bool
}

// NewRootCmd builds the command tree. Running it without a subcommand serves HTTP.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "maintenance-diagnosis",
		Short: "Rule based maintenance diagnosis",
		Long: `Diagnoses machine condition from sensor readings.

Readings are matched against an ordered rule file; the first matching rule
gives the status and recommended action. Every diagnosis is kept in a local
history that can be listed and cleared.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default: configs/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose (debug) logging")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newRulesCmd(opts),
		newDiagnoseCmd(opts),
		newHistoryCmd(opts),
	)
	return rootCmd
}

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// setup loads the configuration and the process logger.
func (o *options) setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	level := cfg.LogLevel
	if o.verbose {
		level = logger.DebugLevel
	}
	return cfg, logger.Get(level), nil
}

func ruleMode(cfg *config.Config) rules.Mode {
	if cfg.Rules.Strict {
		return rules.Strict
	}
	return rules.Lenient
}

// loadRules reads the configured rule file; any failure is fatal to the caller.
func loadRules(cfg *config.Config, log *logger.Logger) (*rules.RuleSet, error) {
	set, err := rules.LoadFile(cfg.Rules.Path, ruleMode(cfg))
	if err != nil {
		return nil, err
	}
	for _, i := range set.Invalid() {
		r := set.At(i)
		log.Warnw("rule_compile_failed", "rule_index", i, "condition", r.Condition, "err", r.Err())
	}
	log.Infow("rules_loaded", "path", cfg.Rules.Path, "count", set.Len(), "invalid", len(set.Invalid()))
	return set, nil
}

func printf(cmd *cobra.Command, format string, args ...any) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
