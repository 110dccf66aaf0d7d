package bazi

import (
	"fmt"
	"strings"
)

// Pillar is a stem/branch pair for one time unit of the birth instant.
type Pillar struct {
	Stem   Stem   `json:"stem"`
	Branch Branch `json:"branch"`
}

func (p Pillar) String() string { return p.Stem.String() + p.Branch.String() }

// ParsePillar reads a two-character pillar such as "甲子".
func ParsePillar(s string) (Pillar, error) {
	r := []rune(strings.TrimSpace(s))
	if len(r) != 2 {
		return Pillar{}, fmt.Errorf("pillar %q: want 2 characters: %w", s, ErrUnknownSymbol)
	}
	stem, err := ParseStem(string(r[0]))
	if err != nil {
		return Pillar{}, fmt.Errorf("pillar %q: %w", s, err)
	}
	branch, err := ParseBranch(string(r[1]))
	if err != nil {
		return Pillar{}, fmt.Errorf("pillar %q: %w", s, err)
	}
	return Pillar{Stem: stem, Branch: branch}, nil
}

// YearPillar returns the sexagenary label of a Gregorian year taken as a
// whole (流年), counting from 甲子 in year 4.
func YearPillar(year int) Pillar {
	idx := ((year-4)%60 + 60) % 60
	return Pillar{Stem: Stem(idx % numStems), Branch: Branch(idx % numBranches)}
}

// Position names the four pillars of a chart.
type Position int

const (
	YearPos Position = iota
	MonthPos
	DayPos
	HourPos
)

var positionNames = [...]string{"年柱", "月柱", "日柱", "時柱"}

// positionRoles are the car-metaphor captions shown under each pillar.
var positionRoles = [...]string{"根基", "事業", "本命", "晚年"}

func (p Position) String() string { return positionNames[p] }

// Role returns the life area a pillar stands for.
func (p Position) Role() string { return positionRoles[p] }

// Chart is the ordered set of four pillars. The Day stem is the day master.
type Chart struct {
	Year  Pillar `json:"year"`
	Month Pillar `json:"month"`
	Day   Pillar `json:"day"`
	Hour  Pillar `json:"hour"`
}

// NewChart parses four two-character pillars.
func NewChart(year, month, day, hour string) (Chart, error) {
	var c Chart
	for i, src := range []string{year, month, day, hour} {
		p, err := ParsePillar(src)
		if err != nil {
			return Chart{}, fmt.Errorf("%s: %w", Position(i), err)
		}
		c.set(Position(i), p)
	}
	return c, nil
}

// ParseChart reads the space separated form produced by Chart.String.
func ParseChart(s string) (Chart, error) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return Chart{}, fmt.Errorf("chart %q: want 4 pillars, got %d: %w", s, len(fields), ErrUnknownSymbol)
	}
	return NewChart(fields[0], fields[1], fields[2], fields[3])
}

// DayMaster is the stem every relation is measured against.
func (c Chart) DayMaster() Stem { return c.Day.Stem }

// Pillars returns the pillars in year, month, day, hour order.
func (c Chart) Pillars() [4]Pillar {
	return [4]Pillar{c.Year, c.Month, c.Day, c.Hour}
}

// Pillar returns the pillar at pos.
func (c Chart) Pillar(pos Position) Pillar { return c.Pillars()[pos] }

func (c *Chart) set(pos Position, p Pillar) {
	switch pos {
	case YearPos:
		c.Year = p
	case MonthPos:
		c.Month = p
	case DayPos:
		c.Day = p
	case HourPos:
		c.Hour = p
	}
}

// Elements returns the element of all eight symbols, stem before branch.
func (c Chart) Elements() []Element {
	out := make([]Element, 0, 8)
	for _, p := range c.Pillars() {
		out = append(out, p.Stem.Element(), p.Branch.Element())
	}
	return out
}

func (c Chart) String() string {
	ps := c.Pillars()
	return fmt.Sprintf("%s %s %s %s", ps[0], ps[1], ps[2], ps[3])
}
