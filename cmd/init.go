package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/aliverse/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize aliverse configuration with an interactive wizard",
	Long:  `Runs an interactive wizard and writes the answers to the config file (default .aliverse.yml).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.RunWizard(cfgFile)
		if err != nil {
			return err
		}
		logger.Debug("config written")
		fmt.Printf("Forecast year %d, thresholds %d/%d/%d/%d\n", c.ForecastYear,
			c.Thresholds.Dominant, c.Thresholds.Strong, c.Thresholds.Balanced, c.Thresholds.Weak)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
