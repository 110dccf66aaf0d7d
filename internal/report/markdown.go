package report

import (
	"fmt"
	"html"
	"strings"
	"text/template"

	"github.com/ziadkadry99/aliverse/internal/analysis"
	"github.com/ziadkadry99/aliverse/internal/bazi"
	"github.com/ziadkadry99/aliverse/internal/garage"
)

const markdownTemplate = `# {{.Brand.Name}} 原廠車型鑑定報告

**駕駛**：{{text .Result.Birth.DisplayName}}{{with .Result.Birth.Gender}}（{{text .}}）{{end}}  
**出生**：{{.Result.Birth.Date}} {{.Result.Birth.Slot.Label}}  
{{with .Result.LunarDate}}**農曆**：{{.}}（屬{{$.Result.Zodiac}}）  
{{end}}**格局**：{{.Result.Archetype.Term}}  
**車型**：{{.Result.Archetype.CarName}}  
**能量**：{{.Result.Score}}%（{{.Result.BucketLabel}}）

## 四柱命盤

| 柱位 |{{range .Result.Pillars}} {{.Title}} |{{end}}
| --- | --- | --- | --- | --- |
| 宮位 |{{range .Result.Pillars}} {{.Role}} |{{end}}
| 十神 |{{range .Result.Pillars}} {{.StemGod}} |{{end}}
| 天干 |{{range .Result.Pillars}} {{stem .Pillar.Stem}} |{{end}}
| 地支 |{{range .Result.Pillars}} {{branch .Pillar.Branch}} |{{end}}
| 藏干 |{{range .Result.Pillars}} {{range $i, $h := .Hidden}}{{if $i}} {{end}}{{stem $h.Stem}}{{$h.God}}{{end}} |{{end}}

## 車型圖騰

` + "```text" + `
{{trim .Result.Archetype.ASCIIArt}}
` + "```" + `

## 詳細規格表

| 項目 | 規格 |
| --- | --- |
| 引擎 | {{.Result.Archetype.Spec.Engine}} |
| 進氣 | {{.Result.Archetype.Spec.Intake}} |
| 油耗 | {{.Result.Archetype.Spec.Fuel}} |
| 改裝 | {{.Result.Archetype.Spec.Tuning}} |

## 性能分析

{{.Result.Archetype.Description}}

## 油品建議

- 建議添加 (喜用)：{{elements .Result.Favor.Favorable}}
- 避免使用 (忌神)：{{elements .Result.Favor.Unfavorable}}
{{if .Result.Favor.Seasonal}}- 季節調候：出生月令{{branch .Result.Chart.Month.Branch}}，以調候用神為先
{{end}}
## 零件庫存

| 元素 | 數量 | 比例 |
| --- | --- | --- |
{{range .Result.Inventory}}| {{element .Element}} | {{.Count}} | {{printf "%.1f" .Percent}}% |
{{end}}
{{with .Result.Matrix}}## 改裝矩陣

**第{{.Number}}卦 {{.Name}}**：{{.Model}}

{{.Tagline}}

{{end}}## {{.Result.Forecast.Headline}}

{{.Result.Forecast.Icon}} {{.Result.Forecast.Advice}}

---

[{{.Brand.Name}}]({{.Brand.URL}})
`

type view struct {
	Brand  Brand
	Result *analysis.Result
}

// funcs renders element-bearing values. With spans set each symbol is
// wrapped in its element's CSS class, and free text is HTML escaped so it
// survives the raw-HTML pass of the Markdown renderer.
func funcs(spans bool) template.FuncMap {
	paint := func(e bazi.Element, s string) string {
		if !spans {
			return s
		}
		return fmt.Sprintf(`<span class="%s">%s</span>`, garage.StyleOf(e).Class, s)
	}
	return template.FuncMap{
		"stem":   func(s bazi.Stem) string { return paint(s.Element(), s.String()) },
		"branch": func(b bazi.Branch) string { return paint(b.Element(), b.String()) },
		"element": func(e bazi.Element) string {
			return paint(e, e.String())
		},
		"elements": func(els []bazi.Element) string {
			parts := make([]string, len(els))
			for i, e := range els {
				parts[i] = paint(e, e.String())
			}
			return strings.Join(parts, "、")
		},
		"text": func(s string) string {
			if spans {
				return html.EscapeString(s)
			}
			return s
		},
		"trim": func(s string) string { return strings.Trim(s, "\n") },
	}
}

func renderMarkdown(res *analysis.Result, brand Brand, spans bool) (string, error) {
	tmpl, err := template.New("report").Funcs(funcs(spans)).Parse(markdownTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing report template: %w", err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, view{Brand: brand, Result: res}); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return b.String(), nil
}

// Markdown renders the report as GitHub-flavored Markdown.
func Markdown(res *analysis.Result, brand Brand) (string, error) {
	return renderMarkdown(res, brand, false)
}
