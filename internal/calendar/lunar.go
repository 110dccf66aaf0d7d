package calendar

import (
	"context"
	"fmt"

	lunar "github.com/6tail/lunar-go/calendar"
)

// LunarAdapter is the Adapter backed by github.com/6tail/lunar-go.
type LunarAdapter struct{}

// NewLunarAdapter returns the default calendar adapter.
func NewLunarAdapter() *LunarAdapter { return &LunarAdapter{} }

// Convert implements Adapter.
func (a *LunarAdapter) Convert(ctx context.Context, year, month, day, hour int) (Conversion, error) {
	if err := ctx.Err(); err != nil {
		return Conversion{}, err
	}

	solar := lunar.NewSolar(year, month, day, hour, 0, 0)
	l := solar.GetLunar()
	ec := l.GetEightChar()

	return Conversion{
		Year:      ec.GetYearGan() + ec.GetYearZhi(),
		Month:     ec.GetMonthGan() + ec.GetMonthZhi(),
		Day:       ec.GetDayGan() + ec.GetDayZhi(),
		Hour:      ec.GetTimeGan() + ec.GetTimeZhi(),
		Zodiac:    l.GetYearShengXiao(),
		LunarDate: fmt.Sprintf("%s年 %s月 %s", l.GetYearInGanZhi(), l.GetMonthInChinese(), l.GetDayInChinese()),
	}, nil
}
