package bazi

// Favor lists the elements that help (喜用) and hurt (忌) a chart.
type Favor struct {
	Favorable   []Element `json:"favorable"`
	Unfavorable []Element `json:"unfavorable"`
	// Seasonal is set when a climate override replaced the bucket rule.
	Seasonal bool `json:"seasonal"`
}

// Contains reports whether e is in the favorable list.
func (f Favor) Contains(e Element) bool {
	for _, x := range f.Favorable {
		if x == e {
			return true
		}
	}
	return false
}

var (
	supportKin = []Kinship{KinPeer, KinResource}
	drainKin   = []Kinship{KinOutput, KinWealth, KinOfficer}
	clashKin   = []Kinship{KinWealth, KinOfficer}
)

// bucketFavor maps each bucket to its favorable and unfavorable kinships.
var bucketFavor = map[Bucket][2][]Kinship{
	Dominant:  {supportKin, clashKin},
	Strong:    {drainKin, supportKin},
	Balanced:  {drainKin, supportKin},
	Weak:      {supportKin, drainKin},
	Deficient: {drainKin, supportKin},
}

type climateKey struct {
	dayMaster Element
	season    Season
}

// climateOverrides are the seasonal adjustments (調候): cold water wants
// fire and wood, scorched fire wants water and metal.
var climateOverrides = map[climateKey]Favor{
	{Water, Autumn}: {Favorable: []Element{Fire, Wood}, Unfavorable: []Element{Metal, Water}},
	{Water, Winter}: {Favorable: []Element{Fire, Wood}, Unfavorable: []Element{Metal, Water}},
	{Fire, Summer}:  {Favorable: []Element{Water, Metal}, Unfavorable: []Element{Fire, Wood}},
}

// Favorability selects favorable and unfavorable elements for a day
// master. The follow patterns (從強, 從弱) always use the bucket rule; the
// others give way to a seasonal override when one exists for the month.
func Favorability(dayMaster Stem, monthBranch Branch, bucket Bucket) Favor {
	dm := dayMaster.Element()
	if !bucket.Follows() {
		if o, ok := climateOverrides[climateKey{dm, monthBranch.Season()}]; ok {
			return Favor{
				Favorable:   append([]Element(nil), o.Favorable...),
				Unfavorable: append([]Element(nil), o.Unfavorable...),
				Seasonal:    true,
			}
		}
	}
	rule := bucketFavor[bucket]
	return Favor{
		Favorable:   relatives(dm, rule[0]),
		Unfavorable: relatives(dm, rule[1]),
	}
}

func relatives(dm Element, kins []Kinship) []Element {
	out := make([]Element, 0, len(kins))
	for _, k := range kins {
		out = append(out, Relative(dm, k))
	}
	return out
}
