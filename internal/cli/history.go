package cli

import (
	"fmt"
	"text/tabwriter"

	"maintenance_diagnosis/internal/metrics"
	"maintenance_diagnosis/internal/models"
	"maintenance_diagnosis/internal/repository"
	"maintenance_diagnosis/internal/repository/db"
	"maintenance_diagnosis/internal/service"

	"github.com/spf13/cobra"
)

func newHistoryCmd(opts *options) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"h"},
		Short:   "List or clear stored diagnoses",
	}

	var limit int
	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored diagnoses, oldest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(opts, func(h *service.HistoryService) error {
				records, err := h.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(records) == 0 {
					printf(cmd, "No diagnoses found.\n")
					return nil
				}
				printHistory(cmd, records)
				return nil
			})
		},
	}
	listCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show only the N most recent records (0 = all)")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every stored diagnosis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(opts, func(h *service.HistoryService) error {
				n, err := h.Clear(cmd.Context())
				if err != nil {
					return err
				}
				printf(cmd, "Deleted %d records.\n", n)
				return nil
			})
		},
	}

	historyCmd.AddCommand(listCmd, clearCmd)
	return historyCmd
}

func withHistory(opts *options, fn func(*service.HistoryService) error) error {
	cfg, _, err := opts.setup()
	if err != nil {
		return err
	}
	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer conn.Close()
	return fn(service.NewHistoryService(repository.NewHistorySQLite(conn), metrics.Nop{}))
}

func printHistory(cmd *cobra.Command, records []models.HistoryRecord) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tTIME\tVIB\tTEMP\tHOURS\tSERVICE\tPOWER\tNOISE\tSENSOR\tOIL\tSTATUS\tACTION")
	for _, r := range records {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\t%t\t%d\t%t\t%t\t%s\t%s\n",
			r.ID,
			r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			r.Reading.Vibration,
			r.Reading.Temperature,
			r.Reading.UsageHours,
			r.Reading.LastService,
			r.Reading.PowerFluctuation,
			r.Reading.Noise,
			r.Reading.SensorError,
			r.Reading.OilLevelLow,
			r.Result.Status,
			r.Result.Action,
		)
	}
}
