package config

import "github.com/ziadkadry99/aliverse/internal/bazi"

// DefaultPath is where the CLI looks for configuration.
const DefaultPath = ".aliverse.yml"

// DefaultExcludes are glob patterns skipped by batch runs by default.
var DefaultExcludes = []string{
	".git/**",
	"vendor/**",
	"node_modules/**",
	".aliverse/**",
	DefaultPath,
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	th := bazi.DefaultThresholds()
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		DataDir: ".aliverse",
		Brand: BrandConfig{
			Name: "AliVerse 愛力宇宙",
			URL:  "https://aliverse-bazi.streamlit.app",
		},
		Thresholds: ThresholdsConfig{
			Dominant: th.Dominant,
			Strong:   th.Strong,
			Balanced: th.Balanced,
			Weak:     th.Weak,
		},
		ForecastYear: 2026,
		LogLevel:     LogInfo,
		Batch: BatchConfig{
			Include:   []string{"**/*.yml", "**/*.yaml"},
			Exclude:   append([]string(nil), DefaultExcludes...),
			OutputDir: "reports",
			Format:    "text",
		},
	}
}
