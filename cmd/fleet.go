package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/electrak/fleetpulse/config"
	"github.com/electrak/fleetpulse/core/model"
)

var fleetCmd = &cobra.Command{
	Use:   "fleet",
	Short: "Fleet related commands",
}

var fleetLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List configured vehicles",
	RunE:  runFleetLs,
}

func init() {
	fleetCmd.AddCommand(fleetLsCmd)
	rootCmd.AddCommand(fleetCmd)
}

func runFleetLs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	profiles := model.NewProfileStore(cfg.Fleet.Vehicles)
	for _, p := range profiles.List() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.0f kWh\n", p.ID, p.DisplayName, p.BatteryKWh)
	}
	return nil
}
