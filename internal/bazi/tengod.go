package bazi

import "fmt"

// Kinship is how another element stands relative to the day master.
type Kinship int

const (
	KinPeer     Kinship = iota // same element
	KinOutput                  // day master generates it
	KinWealth                  // day master controls it
	KinOfficer                 // it controls the day master
	KinResource                // it generates the day master
)

var kinshipNames = [...]string{"peer", "output", "wealth", "officer", "resource"}

func (k Kinship) String() string { return kinshipNames[k] }

// Kin classifies other relative to day along the two cycles.
func Kin(day, other Element) Kinship {
	switch other {
	case day:
		return KinPeer
	case day.Generates():
		return KinOutput
	case day.Controls():
		return KinWealth
	case day.ControlledBy():
		return KinOfficer
	default:
		return KinResource
	}
}

// Relative returns the element standing in kinship k to day.
func Relative(day Element, k Kinship) Element {
	switch k {
	case KinOutput:
		return day.Generates()
	case KinWealth:
		return day.Controls()
	case KinOfficer:
		return day.ControlledBy()
	case KinResource:
		return day.GeneratedBy()
	default:
		return day
	}
}

// TenGod is one of the ten relation labels. Each kinship owns two labels;
// the even one applies when polarities match.
type TenGod int

const (
	Friend TenGod = iota
	RobWealth
	EatingGod
	HurtingOfficer
	IndirectWealth
	DirectWealth
	SevenKillings
	DirectOfficer
	IndirectResource
	DirectResource
)

var tenGodNames = [...]string{"比肩", "劫財", "食神", "傷官", "偏財", "正財", "七殺", "正官", "偏印", "正印"}

var tenGodEnglish = [...]string{
	"Friend",
	"Rob Wealth",
	"Eating God",
	"Hurting Officer",
	"Indirect Wealth",
	"Direct Wealth",
	"Seven Killings",
	"Direct Officer",
	"Indirect Resource",
	"Direct Resource",
}

// TenGods lists all ten labels.
func TenGods() []TenGod {
	out := make([]TenGod, len(tenGodNames))
	for i := range out {
		out[i] = TenGod(i)
	}
	return out
}

func (g TenGod) String() string {
	if g < Friend || g > DirectResource {
		return fmt.Sprintf("TenGod(%d)", int(g))
	}
	return tenGodNames[g]
}

// English returns the conventional English rendering.
func (g TenGod) English() string { return tenGodEnglish[g] }

// Kinship returns the element relationship the label belongs to.
func (g TenGod) Kinship() Kinship { return Kinship(g / 2) }

func (g TenGod) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

func (g *TenGod) UnmarshalText(b []byte) error {
	for i, n := range tenGodNames {
		if n == string(b) {
			*g = TenGod(i)
			return nil
		}
	}
	return fmt.Errorf("unknown ten god %q", string(b))
}

// Relation derives the ten-god label of other as seen from the day stem.
func Relation(day, other Stem) TenGod {
	g := TenGod(Kin(day.Element(), other.Element()) * 2)
	if day.Polarity() != other.Polarity() {
		g++
	}
	return g
}
