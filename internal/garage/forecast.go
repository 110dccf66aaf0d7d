package garage

import (
	"fmt"

	"github.com/ziadkadry99/aliverse/internal/bazi"
)

// Forecast is the flow-year road report.
type Forecast struct {
	Year      int          `json:"year"`
	Pillar    bazi.Pillar  `json:"pillar"`
	Element   bazi.Element `json:"element"`
	Favorable bool         `json:"favorable"`
	Icon      string       `json:"icon"`
	Headline  string       `json:"headline"`
	Advice    string       `json:"advice"`
	Border    string       `json:"border"`
}

// roadHazards describes what an unfavorable flow-year element does to the car.
var roadHazards = map[bazi.Element]string{
	bazi.Wood:  "路樹橫生，視線容易受阻",
	bazi.Fire:  "火氣太旺，引擎容易過熱",
	bazi.Earth: "沙塵瀰漫，濾網容易堵塞",
	bazi.Metal: "路障林立，底盤容易刮傷",
	bazi.Water: "雨天路滑，輪胎容易打滑",
}

// NewForecast reads the flow year through the favorable element list. The
// year's stem decides the reading.
func NewForecast(year int, favor bazi.Favor) Forecast {
	p := bazi.YearPillar(year)
	el := p.Stem.Element()
	f := Forecast{
		Year:      year,
		Pillar:    p,
		Element:   el,
		Favorable: favor.Contains(el),
		Headline:  fmt.Sprintf("%d %s%s年路況", year, el, p.Branch.Animal()),
	}
	if f.Favorable {
		f.Icon = "🚀"
		f.Border = "#FFD700"
		f.Advice = fmt.Sprintf("恭喜！%d年是您的「高速公路衝刺段」。流年屬%s，正好是您需要的燃油。油門踩下去，不用怕超速，這是您擴展事業、大顯身手的好時機！", year, el)
		return f
	}
	f.Icon = "🛡️"
	f.Border = "#E0E0E0"
	f.Advice = fmt.Sprintf("%d年路況較為壅塞，%s。建議切換到「省油模式」，慢慢開、多保養。不要硬超車，安全抵達才是贏家。", year, roadHazards[el])
	return f
}
