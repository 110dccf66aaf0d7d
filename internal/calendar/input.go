package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Accepted birth years.
const (
	MinYear = 1900
	MaxYear = 2026
)

// DefaultDisplayName is shown when no name was entered.
const DefaultDisplayName = "貴賓"

// HourSlot is one of the thirteen selectable birth-hour windows. Hour is
// the representative clock hour handed to the calendar.
type HourSlot struct {
	Index  int    `json:"index"`
	Label  string `json:"label"`
	Branch string `json:"branch"`
	Hour   int    `json:"hour"`
}

// HourSlots are the windows offered to users. The 子 hour is split into
// an early (00:00) and late (23:00) slot.
var HourSlots = [13]HourSlot{
	{0, "00:00 - 00:59 (早子)", "子", 0},
	{1, "01:00 - 02:59 (丑)", "丑", 2},
	{2, "03:00 - 04:59 (寅)", "寅", 4},
	{3, "05:00 - 06:59 (卯)", "卯", 6},
	{4, "07:00 - 08:59 (辰)", "辰", 8},
	{5, "09:00 - 10:59 (巳)", "巳", 10},
	{6, "11:00 - 12:59 (午)", "午", 12},
	{7, "13:00 - 14:59 (未)", "未", 14},
	{8, "15:00 - 16:59 (申)", "申", 16},
	{9, "17:00 - 18:59 (酉)", "酉", 18},
	{10, "19:00 - 20:59 (戌)", "戌", 20},
	{11, "21:00 - 22:59 (亥)", "亥", 22},
	{12, "23:00 - 23:59 (晚子)", "子", 23},
}

// SlotByIndex returns the hour slot with the given index.
func SlotByIndex(i int) (HourSlot, error) {
	if i < 0 || i >= len(HourSlots) {
		return HourSlot{}, fmt.Errorf("%w: slot %d outside 0..%d", ErrInvalidSlot, i, len(HourSlots)-1)
	}
	return HourSlots[i], nil
}

// SlotForClock returns the slot containing a clock hour 0..23.
func SlotForClock(hour int) (HourSlot, error) {
	switch {
	case hour < 0 || hour > 23:
		return HourSlot{}, fmt.Errorf("%w: clock hour %d outside 0..23", ErrInvalidSlot, hour)
	case hour == 0:
		return HourSlots[0], nil
	case hour == 23:
		return HourSlots[12], nil
	default:
		return HourSlots[(hour+1)/2], nil
	}
}

// BirthInput is raw user input. Pointer fields distinguish "missing" from
// zero.
type BirthInput struct {
	Name     string `json:"name,omitempty" yaml:"name"`
	Gender   string `json:"gender,omitempty" yaml:"gender"`
	Year     *int   `json:"year" yaml:"year"`
	Month    *int   `json:"month" yaml:"month"`
	Day      *int   `json:"day" yaml:"day"`
	HourSlot *int   `json:"hour_slot" yaml:"hour_slot"`
}

// Birth is validated input.
type Birth struct {
	Name   string   `json:"name"`
	Gender string   `json:"gender,omitempty"`
	Year   int      `json:"year"`
	Month  int      `json:"month"`
	Day    int      `json:"day"`
	Slot   HourSlot `json:"slot"`
}

// DisplayName falls back to DefaultDisplayName for blank names.
func (b Birth) DisplayName() string {
	if n := strings.TrimSpace(b.Name); n != "" {
		return n
	}
	return DefaultDisplayName
}

// Date formats the Gregorian birth date.
func (b Birth) Date() string {
	return fmt.Sprintf("%04d-%02d-%02d", b.Year, b.Month, b.Day)
}

// Input converts a validated birth back into raw input form.
func (b Birth) Input() BirthInput {
	y, m, d, s := b.Year, b.Month, b.Day, b.Slot.Index
	return BirthInput{Name: b.Name, Gender: b.Gender, Year: &y, Month: &m, Day: &d, HourSlot: &s}
}

// Validate checks completeness first, then that the date is real and in
// range.
func (in BirthInput) Validate() (Birth, error) {
	var missing []string
	if in.Year == nil {
		missing = append(missing, "year")
	}
	if in.Month == nil {
		missing = append(missing, "month")
	}
	if in.Day == nil {
		missing = append(missing, "day")
	}
	if in.HourSlot == nil {
		missing = append(missing, "hour_slot")
	}
	if len(missing) > 0 {
		return Birth{}, fmt.Errorf("%w: missing %s", ErrIncompleteInput, strings.Join(missing, ", "))
	}

	y, m, d := *in.Year, *in.Month, *in.Day
	if y < MinYear || y > MaxYear {
		return Birth{}, fmt.Errorf("%w: year %d outside %d..%d", ErrInvalidDate, y, MinYear, MaxYear)
	}
	if m < 1 || m > 12 {
		return Birth{}, fmt.Errorf("%w: month %d", ErrInvalidDate, m)
	}
	if d < 1 || d > 31 {
		return Birth{}, fmt.Errorf("%w: day %d", ErrInvalidDate, d)
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Month() != time.Month(m) || t.Day() != d {
		return Birth{}, fmt.Errorf("%w: %d月沒有%d號", ErrInvalidDate, m, d)
	}

	slot, err := SlotByIndex(*in.HourSlot)
	if err != nil {
		return Birth{}, err
	}

	return Birth{
		Name:   strings.TrimSpace(in.Name),
		Gender: normalizeGender(in.Gender),
		Year:   y,
		Month:  m,
		Day:    d,
		Slot:   slot,
	}, nil
}

// normalizeGender folds common spellings onto 男/女. Gender is only
// displayed, so anything else passes through unchanged.
func normalizeGender(g string) string {
	g = strings.TrimSpace(g)
	switch strings.ToLower(g) {
	case "男", "m", "male":
		return "男"
	case "女", "f", "female":
		return "女"
	default:
		return g
	}
}
