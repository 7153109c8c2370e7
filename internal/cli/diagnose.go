package cli

import (
	"maintenance_diagnosis/internal/metrics"
	"maintenance_diagnosis/internal/models"
	"maintenance_diagnosis/internal/repository"
	"maintenance_diagnosis/internal/repository/db"
	"maintenance_diagnosis/internal/rules"
	"maintenance_diagnosis/internal/service"

	"github.com/spf13/cobra"
)

func newDiagnoseCmd(opts *options) *cobra.Command {
	var (
		reading models.SensorReading
		save    bool
	)
	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Diagnose a single reading from flags",
		Example: `  maintenance-diagnosis diagnose --vibration 90 --temperature 40 --usage-hours 500 \
    --last-service 200 --noise 30 --oil-level-low --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.setup()
			if err != nil {
				return err
			}
			set, err := loadRules(cfg, log)
			if err != nil {
				return err
			}
			evaluator := rules.NewEvaluator(set, log)

			if !save {
				result, idx := service.NewDiagnosisService(evaluator, nil, metrics.Nop{}).Evaluate(reading)
				printDiagnosis(cmd, result, idx)
				return nil
			}

			conn, err := db.InitDB(cfg.DB.Path)
			if err != nil {
				return err
			}
			defer conn.Close()

			svc := service.NewDiagnosisService(evaluator, repository.NewHistorySQLite(conn), metrics.Nop{})
			rec, err := svc.Diagnose(cmd.Context(), reading)
			if err != nil {
				return err
			}
			printDiagnosis(cmd, rec.Result, evaluator.Inspect(reading).RuleIndex)
			printf(cmd, "Saved:  #%d\n", rec.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&reading.Vibration, "vibration", 0, "Vibration level")
	f.IntVar(&reading.Temperature, "temperature", 0, "Temperature")
	f.IntVar(&reading.UsageHours, "usage-hours", 0, "Usage hours")
	f.IntVar(&reading.LastService, "last-service", 0, "Time since last service")
	f.IntVar(&reading.Noise, "noise", 0, "Noise level")
	f.BoolVar(&reading.PowerFluctuation, "power-fluctuation", false, "Power fluctuation observed")
	f.BoolVar(&reading.SensorError, "sensor-error", false, "Sensor reported an error")
	f.BoolVar(&reading.OilLevelLow, "oil-level-low", false, "Oil level is low")
	f.BoolVar(&save, "save", false, "Store the reading and result in the history")
	for _, name := range []string{"vibration", "temperature", "usage-hours", "last-service", "noise"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func printDiagnosis(cmd *cobra.Command, result models.DiagnosisResult, ruleIndex int) {
	printf(cmd, "Status: %s\nAction: %s\n", result.Status, result.Action)
	if ruleIndex >= 0 {
		printf(cmd, "Rule:   %d\n", ruleIndex)
	} else {
		printf(cmd, "Rule:   none matched\n")
	}
}
