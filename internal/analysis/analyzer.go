// Package analysis turns validated birth input into a full chart reading:
// pillars, ten gods, strength score, favorable elements and the car
// presentation built on top of them.
package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/ziadkadry99/aliverse/internal/bazi"
	"github.com/ziadkadry99/aliverse/internal/calendar"
	"github.com/ziadkadry99/aliverse/internal/garage"
)

// ErrFuelNotFavorable is returned when a car matrix is requested for an
// element outside the chart's favorable list.
var ErrFuelNotFavorable = errors.New("fuel element is not favorable for this chart")

// DefaultForecastYear is the flow year read when none is configured.
const DefaultForecastYear = 2026

// Analyzer runs readings against a calendar adapter.
type Analyzer struct {
	cal          calendar.Adapter
	thresholds   bazi.Thresholds
	forecastYear int
}

// New creates an Analyzer. Thresholds are validated up front so no reading
// can fall between buckets.
func New(cal calendar.Adapter, thresholds bazi.Thresholds, forecastYear int) (*Analyzer, error) {
	if cal == nil {
		return nil, fmt.Errorf("calendar adapter is required")
	}
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}
	if forecastYear == 0 {
		forecastYear = DefaultForecastYear
	}
	return &Analyzer{cal: cal, thresholds: thresholds, forecastYear: forecastYear}, nil
}

// Thresholds returns the bucket cut points in use.
func (a *Analyzer) Thresholds() bazi.Thresholds { return a.thresholds }

// ForecastYear returns the flow year read by every result.
func (a *Analyzer) ForecastYear() int { return a.forecastYear }

// Analyze validates raw input and reads it.
func (a *Analyzer) Analyze(ctx context.Context, in calendar.BirthInput) (*Result, error) {
	birth, err := in.Validate()
	if err != nil {
		return nil, err
	}
	return a.AnalyzeBirth(ctx, birth)
}

// AnalyzeBirth converts an already validated birth and reads it.
func (a *Analyzer) AnalyzeBirth(ctx context.Context, birth calendar.Birth) (*Result, error) {
	return a.AnalyzeBirthWith(ctx, birth, a.thresholds)
}

// AnalyzeBirthWith reads birth against the given cut points instead of the
// analyzer's own, so stored readings keep the bucket they were saved with.
func (a *Analyzer) AnalyzeBirthWith(ctx context.Context, birth calendar.Birth, th bazi.Thresholds) (*Result, error) {
	if err := th.Validate(); err != nil {
		return nil, err
	}
	conv, err := a.cal.Convert(ctx, birth.Year, birth.Month, birth.Day, birth.Slot.Hour)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", birth.Date(), err)
	}
	chart, err := conv.Chart()
	if err != nil {
		return nil, err
	}
	r := Read(chart, th, a.forecastYear)
	r.Birth = birth
	r.LunarDate = conv.LunarDate
	r.Zodiac = conv.Zodiac
	return r, nil
}

// Read derives everything that depends only on the chart.
func Read(chart bazi.Chart, th bazi.Thresholds, forecastYear int) *Result {
	score := bazi.Score(chart)
	bucket := th.Classify(score)
	favor := bazi.Favorability(chart.DayMaster(), chart.Month.Branch, bucket)

	return &Result{
		Chart:         chart,
		Pillars:       pillarViews(chart),
		DayMaster:     chart.DayMaster(),
		Score:         score,
		Bucket:        bucket,
		Thresholds:    th,
		BucketLabel:   bucket.Label(),
		Contributions: bazi.Contributions(chart),
		Favor:         favor,
		Archetype:     garage.ArchetypeFor(bucket),
		Inventory:     garage.Inventory(chart),
		Forecast:      garage.NewForecast(forecastYear, favor),
	}
}

func pillarViews(chart bazi.Chart) []PillarView {
	dm := chart.DayMaster()
	views := make([]PillarView, 0, 4)
	for i, p := range chart.Pillars() {
		pos := bazi.Position(i)
		v := PillarView{
			Position:      pos,
			Title:         pos.String(),
			Role:          pos.Role(),
			Pillar:        p,
			StemElement:   p.Stem.Element(),
			BranchElement: p.Branch.Element(),
			StemGod:       bazi.Relation(dm, p.Stem).String(),
		}
		if pos == bazi.DayPos {
			v.StemGod = DayMasterLabel
		}
		for _, hs := range p.Branch.HiddenStems() {
			v.Hidden = append(v.Hidden, HiddenStem{
				Stem:    hs,
				Element: hs.Element(),
				God:     bazi.Relation(dm, hs),
			})
		}
		views = append(views, v)
	}
	return views
}

// Divine fills the car matrix. A nil fuel picks the first favorable
// element; an explicit fuel must be favorable.
func (r *Result) Divine(fuel *bazi.Element) (garage.Hexagram, error) {
	if len(r.Favor.Favorable) == 0 {
		return garage.Hexagram{}, ErrFuelNotFavorable
	}
	el := r.Favor.Favorable[0]
	if fuel != nil {
		if !r.Favor.Contains(*fuel) {
			return garage.Hexagram{}, fmt.Errorf("%w: %s not in %v", ErrFuelNotFavorable, fuel, r.Favor.Favorable)
		}
		el = *fuel
	}
	h := garage.Matrix(r.DayMaster, el)
	r.Matrix = &h
	return h, nil
}
