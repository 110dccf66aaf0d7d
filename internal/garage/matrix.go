package garage

import (
	"fmt"

	"github.com/ziadkadry99/aliverse/internal/bazi"
)

// Trigram is one of the eight trigrams, in the row order of kingWen.
type Trigram int

const (
	Qian Trigram = iota // ☰ heaven
	Zhen                // ☳ thunder
	Kan                 // ☵ water
	Gen                 // ☶ mountain
	Kun                 // ☷ earth
	Xun                 // ☴ wind
	Li                  // ☲ fire
	Dui                 // ☱ lake
)

// TrigramInfo is the static car record of a trigram.
type TrigramInfo struct {
	Trigram Trigram      `json:"-"`
	Symbol  string       `json:"symbol"`
	Name    string       `json:"name"`
	Nature  string       `json:"nature"`
	Element bazi.Element `json:"element"`
	Style   string       `json:"style"`
	Color   string       `json:"color"`
	Engine  string       `json:"engine"`
	Vibe    string       `json:"vibe"`
}

var trigrams = [8]TrigramInfo{
	Qian: {Qian, "☰", "乾", "天", bazi.Metal, "旗艦禮車", "珍珠白", "V12 自然進氣", "王者氣場、領袖風範"},
	Zhen: {Zhen, "☳", "震", "雷", bazi.Wood, "性能跑車", "閃電藍", "四馬達電動瞬間扭力", "起步爆發、雷厲風行"},
	Kan:  {Kan, "☵", "坎", "水", bazi.Water, "水陸兩用車", "深海藍", "水平對臥引擎", "靈活變通、深不可測"},
	Gen:  {Gen, "☶", "艮", "山", bazi.Earth, "硬派越野車", "岩石灰", "柴油低轉扭力", "穩如泰山、可靠耐操"},
	Kun:  {Kun, "☷", "坤", "地", bazi.Earth, "七人座休旅車", "大地棕", "油電混合", "包容承載、全家安心"},
	Xun:  {Xun, "☴", "巽", "風", bazi.Wood, "敞篷 GT", "薄荷綠", "渦輪增壓", "隨風而行、圓融靈巧"},
	Li:   {Li, "☲", "離", "火", bazi.Fire, "賽道超跑", "法拉利紅", "V8 雙渦輪", "熱情奔放、光芒四射"},
	Dui:  {Dui, "☱", "兌", "澤", bazi.Metal, "復古小敞篷", "香檳金", "精品直列四缸", "親和悅人、談笑風生"},
}

// Info returns the static record of t.
func (t Trigram) Info() TrigramInfo { return trigrams[t] }

func (t Trigram) String() string { return trigrams[t].Name }

// stemTrigrams is the Na Jia assignment of stems to trigrams.
var stemTrigrams = [10]Trigram{
	bazi.Jia:  Qian,
	bazi.Yi:   Kun,
	bazi.Bing: Gen,
	bazi.Ding: Dui,
	bazi.Wu:   Kan,
	bazi.Ji:   Li,
	bazi.Geng: Zhen,
	bazi.Xin:  Xun,
	bazi.Ren:  Qian,
	bazi.Gui:  Kun,
}

var elementTrigrams = [5]Trigram{
	bazi.Wood:  Zhen,
	bazi.Fire:  Li,
	bazi.Earth: Kun,
	bazi.Metal: Qian,
	bazi.Water: Kan,
}

// ChassisOf returns the trigram of a day stem.
func ChassisOf(s bazi.Stem) Trigram { return stemTrigrams[s] }

// EngineOf returns the trigram of a fuel element.
func EngineOf(e bazi.Element) Trigram { return elementTrigrams[e] }

// kingWen[upper][lower] is the King Wen sequence number.
var kingWen = [8][8]int{
	//         ☰   ☳   ☵   ☶   ☷   ☴   ☲   ☱
	Qian: {1, 25, 6, 33, 12, 44, 13, 10},
	Zhen: {34, 51, 40, 62, 16, 32, 55, 54},
	Kan:  {5, 3, 29, 39, 8, 48, 63, 60},
	Gen:  {26, 27, 4, 52, 23, 18, 22, 41},
	Kun:  {11, 24, 7, 15, 2, 46, 36, 19},
	Xun:  {9, 42, 59, 53, 20, 57, 37, 61},
	Li:   {14, 21, 64, 56, 35, 50, 30, 38},
	Dui:  {43, 17, 47, 31, 45, 28, 49, 58},
}

var hexagramNames = [65]string{
	"",
	"乾", "坤", "屯", "蒙", "需", "訟", "師", "比", "小畜", "履",
	"泰", "否", "同人", "大有", "謙", "豫", "隨", "蠱", "臨", "觀",
	"噬嗑", "賁", "剝", "復", "無妄", "大畜", "頤", "大過", "坎", "離",
	"咸", "恆", "遯", "大壯", "晉", "明夷", "家人", "睽", "蹇", "解",
	"損", "益", "夬", "姤", "萃", "升", "困", "井", "革", "鼎",
	"震", "艮", "漸", "歸妹", "豐", "旅", "巽", "兌", "渙", "節",
	"中孚", "小過", "既濟", "未濟",
}

// Hexagram is one cell of the 8×8 car matrix.
type Hexagram struct {
	Number  int         `json:"number"`
	Name    string      `json:"name"`
	Upper   TrigramInfo `json:"chassis"`
	Lower   TrigramInfo `json:"engine"`
	Model   string      `json:"model"`
	Tagline string      `json:"tagline"`
}

// pairTaglines override the generated tagline for specific trigram pairs.
var pairTaglines = map[[2]Trigram]string{
	{Kan, Li}: "水火既濟：油電雙動力完美調校，冷卻與燃燒達成平衡，長途巡航最省心。",
	{Li, Kan}: "火水未濟：原型概念車仍在調校中，引擎與水箱還在磨合，潛力無窮但需要耐心。",
}

// HexagramOf joins two trigrams into a matrix cell.
func HexagramOf(upper, lower Trigram) Hexagram {
	u, l := upper.Info(), lower.Info()
	n := kingWen[upper][lower]
	h := Hexagram{
		Number: n,
		Name:   hexagramNames[n],
		Upper:  u,
		Lower:  l,
		Model:  fmt.Sprintf("%s %s × %s", u.Color, u.Style, l.Engine),
	}
	switch {
	case pairTaglines[[2]Trigram{upper, lower}] != "":
		h.Tagline = pairTaglines[[2]Trigram{upper, lower}]
	case upper == lower:
		h.Tagline = fmt.Sprintf("純種原廠血統：車身與引擎同出%s一脈，%s的特質加倍展現。", u.Nature, u.Vibe)
	default:
		h.Tagline = fmt.Sprintf("%s的%s車身，搭載%s的%s：外在%s，內在%s。", u.Nature, u.Style, l.Nature, l.Engine, u.Vibe, l.Vibe)
	}
	return h
}

// Matrix picks the cell for a day master running on the given fuel element.
func Matrix(day bazi.Stem, fuel bazi.Element) Hexagram {
	return HexagramOf(ChassisOf(day), EngineOf(fuel))
}
