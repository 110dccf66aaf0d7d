package analysis

import (
	"github.com/ziadkadry99/aliverse/internal/bazi"
	"github.com/ziadkadry99/aliverse/internal/calendar"
	"github.com/ziadkadry99/aliverse/internal/garage"
)

// DayMasterLabel stands in for a ten-god label on the day stem itself.
const DayMasterLabel = "日主"

// HiddenStem is one stem stored in a branch, with its relation to the day master.
type HiddenStem struct {
	Stem    bazi.Stem    `json:"stem"`
	Element bazi.Element `json:"element"`
	God     bazi.TenGod  `json:"god"`
}

// PillarView is a pillar annotated for display.
type PillarView struct {
	Position      bazi.Position `json:"-"`
	Title         string        `json:"title"`
	Role          string        `json:"role"`
	Pillar        bazi.Pillar   `json:"pillar"`
	StemElement   bazi.Element  `json:"stem_element"`
	BranchElement bazi.Element  `json:"branch_element"`
	// StemGod is the ten-god label of the stem, or DayMasterLabel.
	StemGod string       `json:"stem_god"`
	Hidden  []HiddenStem `json:"hidden"`
}

// Result is everything derived from one birth.
type Result struct {
	Birth         calendar.Birth      `json:"birth"`
	Chart         bazi.Chart          `json:"chart"`
	Pillars       []PillarView        `json:"pillars"`
	LunarDate     string              `json:"lunar_date"`
	Zodiac        string              `json:"zodiac"`
	DayMaster     bazi.Stem           `json:"day_master"`
	Score         int                 `json:"score"`
	Bucket        bazi.Bucket         `json:"bucket"`
	Thresholds    bazi.Thresholds     `json:"thresholds"`
	BucketLabel   string              `json:"bucket_label"`
	Contributions []bazi.Contribution `json:"contributions"`
	Favor         bazi.Favor          `json:"favor"`
	Archetype     garage.Archetype    `json:"archetype"`
	Inventory     []garage.Stock      `json:"inventory"`
	Forecast      garage.Forecast     `json:"forecast"`
	// Matrix is only filled after Divine.
	Matrix *garage.Hexagram `json:"matrix,omitempty"`
}
