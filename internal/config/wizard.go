package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/aliverse/internal/bazi"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to aliverse! Let's set up your garage.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Brand.
	namePrompt := promptui.Prompt{
		Label:   "Brand name printed on reports",
		Default: cfg.Brand.Name,
	}
	name, err := namePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("brand name: %w", err)
	}
	cfg.Brand.Name = strings.TrimSpace(name)

	urlPrompt := promptui.Prompt{
		Label:   "Brand link",
		Default: cfg.Brand.URL,
	}
	if cfg.Brand.URL, err = urlPrompt.Run(); err != nil {
		return nil, fmt.Errorf("brand url: %w", err)
	}

	// 2. Server port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: intInRange(1, 65535),
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 3. Thresholds.
	thresholdPrompt := promptui.Select{
		Label: "Strength thresholds",
		Items: []string{
			"canonical: 85 / 60 / 40 / 15",
			"custom: enter each cut point",
		},
	}
	idx, _, err := thresholdPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("threshold selection: %w", err)
	}
	if idx == 1 {
		th, err := promptThresholds(cfg.Thresholds)
		if err != nil {
			return nil, err
		}
		cfg.Thresholds = th
	}

	// 4. Forecast year.
	yearPrompt := promptui.Prompt{
		Label:    "Forecast year",
		Default:  strconv.Itoa(cfg.ForecastYear),
		Validate: intInRange(1, 9999),
	}
	yearStr, err := yearPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("forecast year: %w", err)
	}
	cfg.ForecastYear, _ = strconv.Atoi(yearStr)

	// 5. Unlock code.
	codePrompt := promptui.Prompt{
		Label: "Unlock code for the car matrix (leave blank for none)",
		Mask:  '*',
	}
	if cfg.UnlockCode, err = codePrompt.Run(); err != nil {
		return nil, fmt.Errorf("unlock code: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func promptThresholds(def ThresholdsConfig) (ThresholdsConfig, error) {
	fields := []struct {
		label string
		dst   *int
	}{
		{"Dominant (從強) from", &def.Dominant},
		{"Strong (身強) from", &def.Strong},
		{"Balanced (中和) from", &def.Balanced},
		{"Weak (身弱) from", &def.Weak},
	}
	for _, f := range fields {
		p := promptui.Prompt{
			Label:    f.label,
			Default:  strconv.Itoa(*f.dst),
			Validate: intInRange(1, 100),
		}
		s, err := p.Run()
		if err != nil {
			return def, fmt.Errorf("threshold %s: %w", f.label, err)
		}
		*f.dst, _ = strconv.Atoi(s)
	}
	if err := def.Bazi().Validate(); err != nil {
		return def, err
	}
	return def, nil
}

// intInRange builds a promptui validator for integers in [lo, hi].
func intInRange(lo, hi int) promptui.ValidateFunc {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("%q is not a number", s)
		}
		if n < lo || n > hi {
			return fmt.Errorf("%d is outside %d..%d", n, lo, hi)
		}
		return nil
	}
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}

// ParseBucketLimits reads "85,60,40,15" into cut points.
func ParseBucketLimits(s string) (ThresholdsConfig, error) {
	parts := splitAndTrim(s)
	th, err := bazi.ParseThresholds(strings.Join(parts, ","))
	if err != nil {
		return ThresholdsConfig{}, err
	}
	return ThresholdsConfig{Dominant: th.Dominant, Strong: th.Strong, Balanced: th.Balanced, Weak: th.Weak}, nil
}
