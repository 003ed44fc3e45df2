package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/electrak/fleetpulse/config"
	"github.com/electrak/fleetpulse/core/model"
	"github.com/electrak/fleetpulse/core/report"
	"github.com/electrak/fleetpulse/core/sim"
	"github.com/electrak/fleetpulse/pkg/export"
)

var (
	reportStart    string
	reportEnd      string
	reportVehicles string
	reportColumns  string
	reportOut      string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a trip report as CSV",
	RunE:  runReport,
}

func init() {
	today := time.Now().Format("2006-01-02")
	reportCmd.Flags().StringVar(&reportStart, "start", today, "start date (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportEnd, "end", today, "end date (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportVehicles, "vehicles", "", "comma-separated vehicle ids (default all)")
	reportCmd.Flags().StringVar(&reportColumns, "columns", "", "comma-separated columns (default all)")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	profiles := model.NewProfileStore(cfg.Fleet.Vehicles)

	dates, err := report.DatesInRange(reportStart, reportEnd)
	if err != nil {
		return err
	}
	selected := profiles.List()
	if reportVehicles != "" {
		selected = selected[:0]
		for _, id := range strings.Split(reportVehicles, ",") {
			p, ok := profiles.Lookup(strings.TrimSpace(id))
			if !ok {
				return fmt.Errorf("unknown vehicle: %s", id)
			}
			selected = append(selected, p)
		}
	}

	var rows []export.Row
	for _, date := range dates {
		for _, p := range selected {
			for _, t := range sim.GenerateTrips(p, date) {
				rows = append(rows, export.Row{VehicleName: p.DisplayName, Trip: t})
			}
		}
	}

	var columns []string
	if reportColumns != "" {
		columns = strings.Split(reportColumns, ",")
	}

	out := cmd.OutOrStdout()
	if reportOut != "" {
		f, err := os.Create(reportOut)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return export.WriteCSV(out, rows, columns)
}
