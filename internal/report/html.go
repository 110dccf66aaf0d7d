package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ziadkadry99/aliverse/internal/analysis"
	"github.com/ziadkadry99/aliverse/internal/bazi"
	"github.com/ziadkadry99/aliverse/internal/garage"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="zh-Hant">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: "Noto Sans TC", sans-serif; max-width: 760px; margin: 2rem auto; padding: 0 1rem; color: #222; }
.card { background: {{.Background}}; border: 3px solid {{.Border}}; border-radius: 12px; padding: 1rem 1.5rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: .3rem .6rem; text-align: center; }
pre { padding: .8rem; border-radius: 8px; overflow-x: auto; }
span[class^="el-"] { font-weight: bold; }
{{.ElementCSS}}
</style>
</head>
<body>
<div class="card">
{{.Content}}
</div>
</body>
</html>
`

type pageData struct {
	Title      string
	Background template.CSS
	Border     template.CSS
	ElementCSS template.CSS
	Content    template.HTML
}

var page = template.Must(template.New("page").Parse(pageTemplate))

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithRendererOptions(
			// Element spans are emitted as inline HTML.
			html.WithUnsafe(),
		),
	)
}

// elementCSS colors each element class from the shared palette.
func elementCSS() string {
	var b strings.Builder
	for _, e := range bazi.Elements() {
		s := garage.StyleOf(e)
		fmt.Fprintf(&b, ".%s { color: %s; }\n", s.Class, s.Text)
	}
	return b.String()
}

// HTML renders the report as a standalone page.
func HTML(res *analysis.Result, brand Brand) (string, error) {
	src, err := renderMarkdown(res, brand, true)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := newMarkdown().Convert([]byte(src), &body); err != nil {
		return "", fmt.Errorf("converting report markdown: %w", err)
	}

	var out bytes.Buffer
	err = page.Execute(&out, pageData{
		Title:      fmt.Sprintf("%s - %s", brand.Name, res.Birth.DisplayName()),
		Background: template.CSS(res.Archetype.Background),
		Border:     template.CSS(res.Archetype.Border),
		ElementCSS: template.CSS(elementCSS()),
		Content:    template.HTML(body.String()),
	})
	if err != nil {
		return "", fmt.Errorf("rendering report page: %w", err)
	}
	return out.String(), nil
}
