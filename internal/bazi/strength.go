package bazi

import (
	"fmt"
	"strconv"
	"strings"
)

// Slot is one of the eight symbol positions of a chart.
type Slot int

const (
	YearStem Slot = iota
	YearBranch
	MonthStem
	MonthBranch
	DayStem
	DayBranch
	HourStem
	HourBranch
)

var slotNames = [...]string{"年干", "年支", "月干", "月支", "日干", "日支", "時干", "時支"}

func (s Slot) String() string { return slotNames[s] }

// Weight is the fixed contribution of one slot to the strength score.
type Weight struct {
	Slot   Slot
	Points int
}

// Weights covers every slot except the day stem, which is the reference
// point itself. The points sum to 100.
var Weights = [7]Weight{
	{YearStem, 5},
	{YearBranch, 20},
	{MonthStem, 5},
	{MonthBranch, 35},
	{DayBranch, 20},
	{HourStem, 5},
	{HourBranch, 10},
}

// Element returns the element of the symbol at slot.
func (c Chart) Element(s Slot) Element {
	p := c.Pillar(Position(s / 2))
	if s%2 == 0 {
		return p.Stem.Element()
	}
	return p.Branch.Element()
}

// Symbol returns the stem or branch character at slot.
func (c Chart) Symbol(s Slot) string {
	p := c.Pillar(Position(s / 2))
	if s%2 == 0 {
		return p.Stem.String()
	}
	return p.Branch.String()
}

// Contribution records whether a weighted slot supports the day master.
type Contribution struct {
	Slot     Slot    `json:"slot"`
	Symbol   string  `json:"symbol"`
	Element  Element `json:"element"`
	Points   int     `json:"points"`
	Supports bool    `json:"supports"`
}

// Contributions evaluates each weighted slot against the day master and
// the element that generates it.
func Contributions(c Chart) []Contribution {
	dm := c.DayMaster().Element()
	resource := dm.GeneratedBy()
	out := make([]Contribution, 0, len(Weights))
	for _, w := range Weights {
		el := c.Element(w.Slot)
		out = append(out, Contribution{
			Slot:     w.Slot,
			Symbol:   c.Symbol(w.Slot),
			Element:  el,
			Points:   w.Points,
			Supports: el == dm || el == resource,
		})
	}
	return out
}

// Score is the body-strength score in [0,100].
func Score(c Chart) int {
	total := 0
	for _, ct := range Contributions(c) {
		if ct.Supports {
			total += ct.Points
		}
	}
	return total
}

// Bucket is a discrete body-strength class, ordered weakest first.
type Bucket int

const (
	Deficient Bucket = iota
	Weak
	Balanced
	Strong
	Dominant
)

var bucketKeys = [...]string{"deficient", "weak", "balanced", "strong", "dominant"}

var bucketLabels = [...]string{"從弱", "身弱", "中和", "身強", "從強"}

var bucketDescriptions = [...]string{
	"exceptionally deficient",
	"weak",
	"balanced",
	"strong",
	"exceptionally dominant",
}

// Buckets lists every bucket from weakest to strongest.
func Buckets() []Bucket {
	return []Bucket{Deficient, Weak, Balanced, Strong, Dominant}
}

// Valid reports whether b is a defined bucket.
func (b Bucket) Valid() bool { return b >= Deficient && b <= Dominant }

// String returns the stable lowercase key used in JSON and storage.
func (b Bucket) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Bucket(%d)", int(b))
	}
	return bucketKeys[b]
}

// Label returns the traditional Chinese term.
func (b Bucket) Label() string { return bucketLabels[b] }

// Description returns the English descriptor.
func (b Bucket) Description() string { return bucketDescriptions[b] }

// Follows reports whether the bucket is one of the two "follow" patterns
// (從強, 從弱) that go with the chart's momentum.
func (b Bucket) Follows() bool { return b == Dominant || b == Deficient }

// ParseBucket is the inverse of Bucket.String.
func ParseBucket(s string) (Bucket, error) {
	for i, k := range bucketKeys {
		if k == s {
			return Bucket(i), nil
		}
	}
	return 0, fmt.Errorf("unknown bucket %q", s)
}

func (b Bucket) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (b *Bucket) UnmarshalText(text []byte) error {
	v, err := ParseBucket(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Thresholds are the inclusive lower bounds of the four upper buckets.
// Scores below Weak are Deficient.
type Thresholds struct {
	Dominant int `json:"dominant"`
	Strong   int `json:"strong"`
	Balanced int `json:"balanced"`
	Weak     int `json:"weak"`
}

// DefaultThresholds is the canonical cut-point set.
func DefaultThresholds() Thresholds {
	return Thresholds{Dominant: 85, Strong: 60, Balanced: 40, Weak: 15}
}

// Validate checks that the cut points are strictly descending inside
// 1..100 so that every score lands in exactly one bucket.
func (t Thresholds) Validate() error {
	if t.Dominant > 100 || t.Weak < 1 {
		return fmt.Errorf("%w: cut points must lie in 1..100", ErrInvalidThresholds)
	}
	if !(t.Dominant > t.Strong && t.Strong > t.Balanced && t.Balanced > t.Weak) {
		return fmt.Errorf("%w: want dominant > strong > balanced > weak, got %d/%d/%d/%d",
			ErrInvalidThresholds, t.Dominant, t.Strong, t.Balanced, t.Weak)
	}
	return nil
}

// String renders the cut points as "85,60,40,15", the form ParseThresholds reads.
func (t Thresholds) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", t.Dominant, t.Strong, t.Balanced, t.Weak)
}

// ParseThresholds reads four comma-separated cut points and validates them.
func ParseThresholds(s string) (Thresholds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Thresholds{}, fmt.Errorf("%w: want 4 comma-separated cut points, got %q", ErrInvalidThresholds, s)
	}
	var n [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Thresholds{}, fmt.Errorf("%w: %q is not a number", ErrInvalidThresholds, p)
		}
		n[i] = v
	}
	t := Thresholds{Dominant: n[0], Strong: n[1], Balanced: n[2], Weak: n[3]}
	return t, t.Validate()
}

// Classify maps a score onto its bucket.
func (t Thresholds) Classify(score int) Bucket {
	switch {
	case score >= t.Dominant:
		return Dominant
	case score >= t.Strong:
		return Strong
	case score >= t.Balanced:
		return Balanced
	case score >= t.Weak:
		return Weak
	default:
		return Deficient
	}
}

// Range returns the inclusive score interval covered by b.
func (t Thresholds) Range(b Bucket) (lo, hi int) {
	switch b {
	case Dominant:
		return t.Dominant, 100
	case Strong:
		return t.Strong, t.Dominant - 1
	case Balanced:
		return t.Balanced, t.Strong - 1
	case Weak:
		return t.Weak, t.Balanced - 1
	default:
		return 0, t.Weak - 1
	}
}
