package main

import (
	"fmt"
	"strconv"

	"choicefiction/internal/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down] [steps]",
	Short:     "Apply or roll back database migrations",
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		switch args[0] {
		case "up":
			if err := database.MigrateUp(cfg.GetDSN()); err != nil {
				return err
			}
			logger.Info("Migrations applied")
		case "down":
			steps := 1
			if len(args) == 2 {
				steps, err = strconv.Atoi(args[1])
				if err != nil || steps < 1 {
					return fmt.Errorf("invalid steps %q", args[1])
				}
			}
			if err := database.MigrateDown(cfg.GetDSN(), steps); err != nil {
				return err
			}
			logger.Info("Migrations rolled back", zap.Int("steps", steps))
		default:
			return fmt.Errorf("unknown direction %q, expected up or down", args[0])
		}
		return nil
	},
}
