package bazi

import (
	"fmt"
	"strings"
)

// Polarity is the yin/yang parity of a stem.
type Polarity int

const (
	Yang Polarity = iota
	Yin
)

func (p Polarity) String() string {
	if p == Yin {
		return "陰"
	}
	return "陽"
}

// Stem is one of the ten heavenly stems.
type Stem int

const (
	Jia Stem = iota
	Yi
	Bing
	Ding
	Wu
	Ji
	Geng
	Xin
	Ren
	Gui
)

const numStems = 10

var stemChars = [numStems]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

// Stems returns the ten stems in cycle order.
func Stems() []Stem {
	out := make([]Stem, numStems)
	for i := range out {
		out[i] = Stem(i)
	}
	return out
}

// Valid reports whether s is one of the ten stems.
func (s Stem) Valid() bool { return s >= Jia && s <= Gui }

func (s Stem) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stem(%d)", int(s))
	}
	return stemChars[s]
}

// Element returns the stem's element; stems come in yang/yin pairs per element.
func (s Stem) Element() Element { return Element(s / 2) }

// Polarity is yang for even cycle positions (甲丙戊庚壬) and yin otherwise.
func (s Stem) Polarity() Polarity {
	if s%2 == 0 {
		return Yang
	}
	return Yin
}

// ParseStem converts a single stem character.
func ParseStem(str string) (Stem, error) {
	str = strings.TrimSpace(str)
	for i, c := range stemChars {
		if c == str {
			return Stem(i), nil
		}
	}
	return 0, fmt.Errorf("stem %q: %w", str, ErrUnknownSymbol)
}

func (s Stem) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("stem %d: %w", int(s), ErrUnknownSymbol)
	}
	return []byte(s.String()), nil
}

func (s *Stem) UnmarshalText(b []byte) error {
	v, err := ParseStem(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Season groups the twelve month branches into four quarters.
type Season int

const (
	Spring Season = iota
	Summer
	Autumn
	Winter
)

func (s Season) String() string {
	switch s {
	case Spring:
		return "spring"
	case Summer:
		return "summer"
	case Autumn:
		return "autumn"
	default:
		return "winter"
	}
}

// Branch is one of the twelve earthly branches. Constants are named after
// the zodiac animal each branch stands for.
type Branch int

const (
	Rat Branch = iota
	Ox
	Tiger
	Rabbit
	Dragon
	Snake
	Horse
	Goat
	Monkey
	Rooster
	Dog
	Pig
)

const numBranches = 12

var branchChars = [numBranches]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

var branchElements = [numBranches]Element{
	Water, Earth, Wood, Wood, Earth, Fire, Fire, Earth, Metal, Metal, Earth, Water,
}

var branchAnimals = [numBranches]string{"鼠", "牛", "虎", "兔", "龍", "蛇", "馬", "羊", "猴", "雞", "狗", "豬"}

// hiddenStems lists the stems contained in each branch, main qi first.
var hiddenStems = [numBranches][]Stem{
	Rat:     {Gui},
	Ox:      {Ji, Gui, Xin},
	Tiger:   {Jia, Bing, Wu},
	Rabbit:  {Yi},
	Dragon:  {Wu, Yi, Gui},
	Snake:   {Bing, Wu, Geng},
	Horse:   {Ding, Ji},
	Goat:    {Ji, Ding, Yi},
	Monkey:  {Geng, Ren, Wu},
	Rooster: {Xin},
	Dog:     {Wu, Xin, Ding},
	Pig:     {Ren, Jia},
}

// Branches returns the twelve branches in cycle order.
func Branches() []Branch {
	out := make([]Branch, numBranches)
	for i := range out {
		out[i] = Branch(i)
	}
	return out
}

// Valid reports whether b is one of the twelve branches.
func (b Branch) Valid() bool { return b >= Rat && b <= Pig }

func (b Branch) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Branch(%d)", int(b))
	}
	return branchChars[b]
}

// Element returns the branch's element.
func (b Branch) Element() Element { return branchElements[b] }

// Animal returns the zodiac animal of the branch.
func (b Branch) Animal() string { return branchAnimals[b] }

// Season returns the quarter the branch governs when it is a month branch:
// 寅卯辰 spring, 巳午未 summer, 申酉戌 autumn, 亥子丑 winter.
func (b Branch) Season() Season {
	return Season(((int(b) + numBranches - int(Tiger)) % numBranches) / 3)
}

// HiddenStems returns a copy of the stems stored in the branch, in
// traditional order.
func (b Branch) HiddenStems() []Stem {
	src := hiddenStems[b]
	out := make([]Stem, len(src))
	copy(out, src)
	return out
}

// ParseBranch converts a single branch character.
func ParseBranch(str string) (Branch, error) {
	str = strings.TrimSpace(str)
	for i, c := range branchChars {
		if c == str {
			return Branch(i), nil
		}
	}
	return 0, fmt.Errorf("branch %q: %w", str, ErrUnknownSymbol)
}

func (b Branch) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("branch %d: %w", int(b), ErrUnknownSymbol)
	}
	return []byte(b.String()), nil
}

func (b *Branch) UnmarshalText(text []byte) error {
	v, err := ParseBranch(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}
