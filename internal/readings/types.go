// Package readings persists analyzed charts and serves them back as
// reports.
package readings

import (
	"errors"
	"time"

	"github.com/ziadkadry99/aliverse/internal/analysis"
	"github.com/ziadkadry99/aliverse/internal/bazi"
	"github.com/ziadkadry99/aliverse/internal/calendar"
)

// ErrNotFound is returned when no reading has the requested ID.
var ErrNotFound = errors.New("reading not found")

// Reading is the stored summary of one analysis. The full result is
// recomputed from Birth on demand.
type Reading struct {
	ID          string          `json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	Birth       calendar.Birth  `json:"birth"`
	Chart       bazi.Chart      `json:"chart"`
	Score       int             `json:"score"`
	Bucket      bazi.Bucket     `json:"bucket"`
	// Thresholds are the cut points Bucket was classified with.
	Thresholds  bazi.Thresholds `json:"thresholds"`
	Favorable   []bazi.Element  `json:"favorable"`
	Unfavorable []bazi.Element  `json:"unfavorable"`
	Fuel        *bazi.Element   `json:"fuel,omitempty"`
	Hexagram    int             `json:"hexagram,omitempty"`
}

// FromResult summarizes an analysis for storage.
func FromResult(res *analysis.Result) Reading {
	r := Reading{
		Birth:       res.Birth,
		Chart:       res.Chart,
		Score:       res.Score,
		Bucket:      res.Bucket,
		Thresholds:  res.Thresholds,
		Favorable:   res.Favor.Favorable,
		Unfavorable: res.Favor.Unfavorable,
	}
	if m := res.Matrix; m != nil {
		fuel := m.Lower.Element
		r.Fuel = &fuel
		r.Hexagram = m.Number
	}
	return r
}

// Redacted returns r without its car matrix.
func (r Reading) Redacted() Reading {
	r.Fuel = nil
	r.Hexagram = 0
	return r
}

// Filter controls which readings List returns.
type Filter struct {
	Bucket *bazi.Bucket
	Since  *time.Time
	Limit  int
	Offset int
}

// Stats counts stored readings.
type Stats struct {
	Total    int            `json:"total"`
	ByBucket map[string]int `json:"by_bucket"`
}

// Detail pairs a stored reading with its recomputed result.
type Detail struct {
	Reading Reading          `json:"reading"`
	Result  *analysis.Result `json:"result"`
}

// Redact drops the car matrix from both the stored summary and the result.
func (d *Detail) Redact() {
	d.Reading = d.Reading.Redacted()
	if d.Result != nil {
		d.Result.Matrix = nil
	}
}
