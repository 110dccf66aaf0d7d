package cmd

import (
	"fmt"

	"github.com/ziadkadry99/aliverse/internal/analysis"
	"github.com/ziadkadry99/aliverse/internal/calendar"
	"github.com/ziadkadry99/aliverse/internal/db"
	"github.com/ziadkadry99/aliverse/internal/readings"
)

// loadConfig validates the config loaded by the root command, providing a
// user-friendly error.
func loadConfig() error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w\nRun `aliverse init` to create a config file", cfgFile, err)
	}
	return nil
}

// newAnalyzer builds an analyzer backed by the lunar calendar.
func newAnalyzer() (*analysis.Analyzer, error) {
	return analysis.New(calendar.NewLunarAdapter(), cfg.Thresholds.Bazi(), cfg.ForecastYear)
}

// openReadings opens the reading history database under the data dir.
func openReadings(a *analysis.Analyzer) (*readings.Service, *db.DB, error) {
	database, err := db.OpenDir(cfg.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return readings.NewService(readings.NewStore(database), a), database, nil
}
