package config

import (
	"github.com/ziadkadry99/aliverse/internal/bazi"
	"github.com/ziadkadry99/aliverse/internal/report"
)

// LogLevel is the minimum level written by the logger.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// Config is the top-level aliverse configuration, corresponding to .aliverse.yml.
type Config struct {
	Server       ServerConfig     `yaml:"server" koanf:"server"`
	DataDir      string           `yaml:"data_dir" koanf:"data_dir"`
	Brand        BrandConfig      `yaml:"brand" koanf:"brand"`
	Thresholds   ThresholdsConfig `yaml:"thresholds" koanf:"thresholds"`
	ForecastYear int              `yaml:"forecast_year" koanf:"forecast_year"`
	// UnlockCode gates the car matrix in the web wizard. Empty leaves it open.
	UnlockCode string      `yaml:"unlock_code,omitempty" koanf:"unlock_code"`
	LogLevel   LogLevel    `yaml:"log_level" koanf:"log_level"`
	Batch      BatchConfig `yaml:"batch" koanf:"batch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// BrandConfig is printed on reports and share text.
type BrandConfig struct {
	Name string `yaml:"name" koanf:"name"`
	URL  string `yaml:"url" koanf:"url"`
}

// Report converts the brand for the renderers.
func (b BrandConfig) Report() report.Brand {
	return report.Brand{Name: b.Name, URL: b.URL}
}

// ThresholdsConfig holds the strength bucket cut points.
type ThresholdsConfig struct {
	Dominant int `yaml:"dominant" koanf:"dominant"`
	Strong   int `yaml:"strong" koanf:"strong"`
	Balanced int `yaml:"balanced" koanf:"balanced"`
	Weak     int `yaml:"weak" koanf:"weak"`
}

// Bazi converts the cut points for the classifier.
func (t ThresholdsConfig) Bazi() bazi.Thresholds {
	return bazi.Thresholds{Dominant: t.Dominant, Strong: t.Strong, Balanced: t.Balanced, Weak: t.Weak}
}

// BatchConfig controls `aliverse batch`.
type BatchConfig struct {
	Include   []string `yaml:"include" koanf:"include"`
	Exclude   []string `yaml:"exclude" koanf:"exclude"`
	OutputDir string   `yaml:"output_dir" koanf:"output_dir"`
	Format    string   `yaml:"format" koanf:"format"`
}
