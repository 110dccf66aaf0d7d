// Package report renders a reading as a downloadable text report, as
// Markdown, as a standalone HTML page and as a short share message.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/ziadkadry99/aliverse/internal/analysis"
	"github.com/ziadkadry99/aliverse/internal/bazi"
)

// BOM prefixes text downloads so spreadsheet and notepad apps pick UTF-8.
const BOM = "\ufeff"

// ChartPrefix starts the line that carries the four pillars.
const ChartPrefix = "四柱："

const rule = "------------------------------------"

// Brand is the product name and link printed on every report.
type Brand struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// DefaultBrand is used when nothing is configured.
func DefaultBrand() Brand {
	return Brand{Name: "AliVerse 愛力宇宙", URL: "https://aliverse-bazi.streamlit.app"}
}

// Text renders the plain-text report without the BOM.
func Text(res *analysis.Result, brand Brand) string {
	var b strings.Builder
	a := res.Archetype

	fmt.Fprintf(&b, "【%s - 原廠車型鑑定報告】\n", brand.Name)
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "駕駛：%s\n", res.Birth.DisplayName())
	fmt.Fprintf(&b, "%s\n", a.Term)
	fmt.Fprintf(&b, "車型：%s\n", a.CarName)
	fmt.Fprintf(&b, "能量：%d%%\n", res.Score)
	fmt.Fprintf(&b, "%s%s\n", ChartPrefix, res.Chart)
	if res.LunarDate != "" {
		fmt.Fprintf(&b, "農曆：%s（屬%s）\n", res.LunarDate, res.Zodiac)
	}

	section(&b, "車型圖騰", strings.Trim(a.ASCIIArt, "\n"))
	section(&b, "詳細規格表", fmt.Sprintf("引擎：%s\n進氣：%s\n油耗：%s\n改裝：%s",
		a.Spec.Engine, a.Spec.Intake, a.Spec.Fuel, a.Spec.Tuning))
	section(&b, "性能分析", a.Description)
	section(&b, "油品建議", fmt.Sprintf("建議添加 (喜用)：%s\n避免使用 (忌神)：%s",
		JoinElements(res.Favor.Favorable), JoinElements(res.Favor.Unfavorable)))
	if m := res.Matrix; m != nil {
		section(&b, "改裝矩陣", fmt.Sprintf("第%d卦 %s\n車型：%s\n%s", m.Number, m.Name, m.Model, m.Tagline))
	}
	section(&b, fmt.Sprintf("%d 路況預報", res.Forecast.Year), res.Forecast.Advice)

	b.WriteString(rule + "\n")
	b.WriteString(brand.Name + "\n")
	b.WriteString(brand.URL + "\n")
	return b.String()
}

func section(b *strings.Builder, title, body string) {
	b.WriteString(rule + "\n")
	fmt.Fprintf(b, "【%s】\n", title)
	b.WriteString(body + "\n")
}

// WriteText writes the BOM-prefixed text report.
func WriteText(w io.Writer, res *analysis.Result, brand Brand) error {
	_, err := io.WriteString(w, BOM+Text(res, brand))
	return err
}

// Filename is the suggested download name for the text report.
func Filename(res *analysis.Result) string {
	return fmt.Sprintf("AliVerse_%s_車檢報告.txt", res.Birth.DisplayName())
}

// JoinElements lists elements with the Chinese enumeration comma.
func JoinElements(els []bazi.Element) string {
	parts := make([]string, len(els))
	for i, e := range els {
		parts[i] = e.String()
	}
	return strings.Join(parts, "、")
}
