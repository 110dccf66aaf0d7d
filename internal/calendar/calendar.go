// Package calendar validates birth input and converts it to the four
// sexagenary pillars through an external lunar calendar library.
package calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/ziadkadry99/aliverse/internal/bazi"
)

var (
	// ErrInvalidDate means year/month/day do not form a real date in range.
	ErrInvalidDate = errors.New("invalid birth date")
	// ErrIncompleteInput means a required birth field is missing.
	ErrIncompleteInput = errors.New("incomplete birth input")
	// ErrInvalidSlot means an hour slot or clock hour is outside its range.
	ErrInvalidSlot = errors.New("invalid birth hour")
)

// Conversion is what the lunar calendar reports for a birth instant.
type Conversion struct {
	Year      string `json:"year"`
	Month     string `json:"month"`
	Day       string `json:"day"`
	Hour      string `json:"hour"`
	Zodiac    string `json:"zodiac"`
	LunarDate string `json:"lunar_date"`
}

// Chart parses the four pillar strings. A symbol the classifier does not
// know is an error, never a blank.
func (c Conversion) Chart() (bazi.Chart, error) {
	chart, err := bazi.NewChart(c.Year, c.Month, c.Day, c.Hour)
	if err != nil {
		return bazi.Chart{}, fmt.Errorf("calendar returned unusable pillars: %w", err)
	}
	return chart, nil
}

// Adapter converts a Gregorian date and hour to pillars. Implementations
// must be deterministic and side-effect free.
type Adapter interface {
	Convert(ctx context.Context, year, month, day, hour int) (Conversion, error)
}
