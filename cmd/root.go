package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/surface-labs/surface-layers/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "surface-layers",
	Short: "Surface sealing and temperature layers backend",
	Long:  "Fetches OpenStreetMap features for a square region, classifies them into sealed/unsealed GeoJSON layers, and samples Landsat surface temperature over the same area.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
