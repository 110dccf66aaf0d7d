// Package garage maps chart classifications onto the car metaphors shown
// to users: archetypes per strength bucket, element colors, the parts
// inventory, the flow-year road forecast and the trigram car matrix.
package garage

import "github.com/ziadkadry99/aliverse/internal/bazi"

// SpecSheet is the four-line spec table printed under an archetype.
type SpecSheet struct {
	Engine string `json:"engine"`
	Intake string `json:"intake"`
	Fuel   string `json:"fuel"`
	Tuning string `json:"tuning"`
}

// Archetype is the car a strength bucket is rendered as.
type Archetype struct {
	Bucket      bazi.Bucket `json:"bucket"`
	Term        string      `json:"term"`
	CarName     string      `json:"car_name"`
	Description string      `json:"description"`
	Spec        SpecSheet   `json:"spec"`
	Background  string      `json:"background"`
	Border      string      `json:"border"`
	ASCIIArt    string      `json:"ascii_art"`
}

var archetypes = map[bazi.Bucket]Archetype{
	bazi.Dominant: {
		Term:        "命理格局：從強格 (特殊專旺)",
		CarName:     "🛡️ 陸地航母：重裝坦克",
		Description: "您的格局特殊，能量專一且強大，不再是普通的車，而是陸地霸主！從強格的特質是「越強越好」，順著氣勢能成大業。無視路障，適合開疆闢土，但個性可能較為固執強勢。",
		Spec: SpecSheet{
			Engine: "6,000cc 柴油渦輪",
			Intake: "V12 雙渦輪增壓",
			Fuel:   "高耗能 (爆發力強)",
			Tuning: "勿改裝 (原廠即霸主)",
		},
		Background: "#9C27B0",
		Border:     "#9C27B0",
		ASCIIArt: `   ░░░░░░░░░░░░░░░░░
  ░░░░▄▄████▄▄░░░░░░
  ░░░██████████░░░░░
  ░▄▄████████████▄▄░
  █  AliVerse Tank █
  ▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀`,
	},
	bazi.Strong: {
		Term:        "命理格局：身強 (能量充沛)",
		CarName:     "🚜 V8 雙渦輪：全地形越野車",
		Description: "您是一台擁有怪力的 G-Class 等級越野車！板金厚實，馬力強大。您不怕路爛，只怕沒路跑導致引擎積碳。適合高強度的挑戰，不要把自己關在舒適圈的車庫裡。",
		Spec: SpecSheet{
			Engine: "4,000cc V8",
			Intake: "雙渦輪增壓",
			Fuel:   "1 公升跑 6 公里",
			Tuning: "潛力極高 (可升高底盤)",
		},
		Background: "rgba(46, 125, 50, 0.3)",
		Border:     "#2E7D32",
		ASCIIArt: `      ____
     /  | \_
    |___|___\_
    (o)----(o)
   [ SUV-4WD ]`,
	},
	bazi.Balanced: {
		Term:        "命理格局：中和 (身強偏平)",
		CarName:     "🏎️ 自然進氣：豪華性能房車",
		Description: "您是一台平衡性極佳的 BMW 5系列或 E-Class！擁有 3.0 直列六缸的絲滑動力。進可攻、退可守，是道路上最可靠的夥伴。您不需要太誇張的改裝，只要維持良好狀態就能跑很久。",
		Spec: SpecSheet{
			Engine: "3,000cc",
			Intake: "直列六缸 自然進氣 (NA)",
			Fuel:   "1 公升跑 10 公里",
			Tuning: "適合微調 (刷一階晶片)",
		},
		Background: "rgba(33, 150, 243, 0.3)",
		Border:     "#2196F3",
		ASCIIArt: `      ______
     /  |   \_
    |___|_____\__
    (o)-----(o)
    [  SEDAN  ]`,
	},
	bazi.Weak: {
		Term:        "命理格局：身弱 (心思細膩)",
		CarName:     "🚘 經典敞篷：限量古董跑車",
		Description: "您是一台極具價值的經典敞篷車 (Vintage Roadster)！雖然排氣量不大，但工藝精密、氣質優雅。您不適合去泥巴地越野，也不適合飆高速。需要細心呵護、定期回原廠保養，開的是「品味」不是「速度」。",
		Spec: SpecSheet{
			Engine: "2,000cc 精密引擎",
			Intake: "自然進氣",
			Fuel:   "1 公升跑 12 公里",
			Tuning: "不建議 (維持原廠)",
		},
		Background: "rgba(198, 40, 40, 0.3)",
		Border:     "#C62828",
		ASCIIArt: `       ___
     _/___\_
    [_______]
    (o)   (o)
   [ VINTAGE ]`,
	},
	bazi.Deficient: {
		Term:        "命理格局：從弱格 (棄命從勢)",
		CarName:     "🛸 未來科技：磁浮概念車",
		Description: "您的格局特殊，本身能量極弱，但能完全順應環境大勢。這不是弱，而是一種極致的適應力。像變形金剛一樣，借力使力，順著大環境的氣流飛行。",
		Spec: SpecSheet{
			Engine: "無 (反重力)",
			Intake: "磁浮驅動",
			Fuel:   "無限續航",
			Tuning: "系統自動更新",
		},
		Background: "#9C27B0",
		Border:     "#9C27B0",
		ASCIIArt: `      .---.
    _/__~__\_
   (_________)
    /       \
   [   UFO   ]`,
	},
}

// ArchetypeFor returns the car archetype of a bucket.
func ArchetypeFor(b bazi.Bucket) Archetype {
	a, ok := archetypes[b]
	if !ok {
		a = archetypes[bazi.Balanced]
		b = bazi.Balanced
	}
	a.Bucket = b
	return a
}
