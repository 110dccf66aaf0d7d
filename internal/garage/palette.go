package garage

import "github.com/ziadkadry99/aliverse/internal/bazi"

// Style is how an element is drawn wherever it appears in output.
type Style struct {
	Element bazi.Element `json:"element"`
	// Text colors the pillar characters.
	Text string `json:"text"`
	// Chart colors the inventory bars.
	Chart string `json:"chart"`
	// Class is the CSS class used by the HTML report.
	Class string `json:"class"`
}

var styles = [...]Style{
	bazi.Wood:  {Element: bazi.Wood, Text: "green", Chart: "#228B22", Class: "el-wood"},
	bazi.Fire:  {Element: bazi.Fire, Text: "red", Chart: "#FF4500", Class: "el-fire"},
	bazi.Earth: {Element: bazi.Earth, Text: "brown", Chart: "#8B4513", Class: "el-earth"},
	bazi.Metal: {Element: bazi.Metal, Text: "#DAA520", Chart: "#FFD700", Class: "el-metal"},
	bazi.Water: {Element: bazi.Water, Text: "blue", Chart: "#1E90FF", Class: "el-water"},
}

// StyleOf returns the display style of an element.
func StyleOf(e bazi.Element) Style {
	if !e.Valid() {
		return Style{Element: e, Text: "black", Chart: "#000000", Class: "el-unknown"}
	}
	return styles[e]
}
