package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"github.com/ziadkadry99/aliverse/internal/analysis"
	"github.com/ziadkadry99/aliverse/internal/bazi"
	"github.com/ziadkadry99/aliverse/internal/calendar"
)

func reading(t *testing.T, chart, name string) *analysis.Result {
	t.Helper()
	c, err := bazi.ParseChart(chart)
	if err != nil {
		t.Fatalf("ParseChart(%q): %v", chart, err)
	}
	res := analysis.Read(c, bazi.DefaultThresholds(), 2026)
	res.Birth = calendar.Birth{Name: name, Year: 1954, Month: 9, Day: 27, Slot: calendar.HourSlots[6]}
	res.LunarDate = "一九五四年 八月 初一"
	res.Zodiac = "馬"
	return res
}

func TestTextRoundTrip(t *testing.T) {
	for i := 0; i < 60; i++ {
		want := bazi.Chart{
			Year:  bazi.YearPillar(4 + i),
			Month: bazi.YearPillar(4 + i + 7),
			Day:   bazi.YearPillar(4 + i + 13),
			Hour:  bazi.YearPillar(4 + i + 29),
		}
		res := analysis.Read(want, bazi.DefaultThresholds(), 2026)

		var buf bytes.Buffer
		if err := WriteText(&buf, res, DefaultBrand()); err != nil {
			t.Fatalf("WriteText: %v", err)
		}
		got, err := ParseChart(buf.String())
		if err != nil {
			t.Fatalf("ParseChart: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("round trip of %s (-want +got):\n%s", want, diff)
		}
	}
}

func TestWriteTextStartsWithBOM(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, reading(t, "甲午 癸酉 壬寅 丙午", ""), DefaultBrand()); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}) {
		t.Errorf("missing UTF-8 BOM: % x", buf.Bytes()[:3])
	}
}

func TestTextSections(t *testing.T) {
	res := reading(t, "甲午 癸酉 壬寅 丙午", "")
	text := Text(res, DefaultBrand())

	for _, want := range []string{
		"【AliVerse 愛力宇宙 - 原廠車型鑑定報告】",
		"駕駛：貴賓",
		"能量：40%",
		"四柱：甲午 癸酉 壬寅 丙午",
		"農曆：一九五四年 八月 初一（屬馬）",
		"【車型圖騰】",
		"【詳細規格表】",
		"建議添加 (喜用)：火、木",
		"避免使用 (忌神)：金、水",
		"【2026 路況預報】",
		"https://aliverse-bazi.streamlit.app",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q", want)
		}
	}
	if strings.Contains(text, "【改裝矩陣】") {
		t.Error("matrix section rendered before divination")
	}

	if _, err := res.Divine(nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(Text(res, DefaultBrand()), "第13卦 同人") {
		t.Error("matrix section missing after divination")
	}
}

func TestParseChartErrors(t *testing.T) {
	if _, err := ParseChart("no pillars here\n"); !errors.Is(err, ErrNoChart) {
		t.Errorf("got %v, want ErrNoChart", err)
	}

	_, err := ParseChart("四柱：甲午 癸酉 壬X 丙午\n")
	if !errors.Is(err, bazi.ErrUnknownSymbol) {
		t.Errorf("got %v, want unknown symbol", err)
	}
}

func TestShare(t *testing.T) {
	res := reading(t, "甲午 癸酉 壬寅 丙午", "阿明")
	share := Share(res, DefaultBrand())

	if !strings.Contains(share, "駕駛代號：阿明") {
		t.Errorf("share text missing name:\n%s", share)
	}
	advice := string([]rune(res.Forecast.Advice)[:shareAdviceRunes])
	if !strings.Contains(share, "🔥 2026路況："+advice+"...") {
		t.Errorf("share text should quote %q:\n%s", advice, share)
	}
	if !strings.HasSuffix(share, DefaultBrand().URL) {
		t.Error("share text should end with the brand link")
	}
}

func TestMarkdown(t *testing.T) {
	md, err := Markdown(reading(t, "甲午 癸酉 壬寅 丙午", "阿明"), DefaultBrand())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(md, "<span") {
		t.Error("markdown should not carry element spans")
	}
	for _, want := range []string{"| 十神 | 食神 | 劫財 | 日主 | 偏財 |", "| 天干 | 甲 | 癸 | 壬 | 丙 |", "```text"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
	if !utf8.ValidString(md) {
		t.Error("markdown is not valid UTF-8")
	}
}

func TestHTMLHighlightsElements(t *testing.T) {
	page, err := HTML(reading(t, "甲午 癸酉 壬寅 丙午", "<b>阿明</b>"), DefaultBrand())
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`<span class="el-water">壬</span>`,
		`<span class="el-fire">午</span>`,
		`.el-wood { color: green; }`,
		"<table>",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("html missing %q", want)
		}
	}
	if strings.Contains(page, "<b>阿明") {
		t.Error("user name was not escaped")
	}
}

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in   string
		want Format
		ext  string
	}{
		{"", FormatText, ".txt"},
		{"TXT", FormatText, ".txt"},
		{"md", FormatMarkdown, ".md"},
		{"html", FormatHTML, ".html"},
		{" json ", FormatJSON, ".json"},
	}
	for _, tc := range cases {
		got, err := ParseFormat(tc.in)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", tc.in, err)
		}
		if got != tc.want || got.Ext() != tc.ext {
			t.Errorf("ParseFormat(%q) = %q (%s), want %q (%s)", tc.in, got, got.Ext(), tc.want, tc.ext)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Error("expected error for pdf")
	}
}

func TestRenderFormats(t *testing.T) {
	res := reading(t, "甲午 癸酉 壬寅 丙午", "小美")
	checks := map[Format]string{
		FormatText:     ChartPrefix + "甲午 癸酉 壬寅 丙午",
		FormatMarkdown: "小美",
		FormatHTML:     "<html",
		FormatJSON:     `"score": 40`,
	}
	for f, want := range checks {
		var buf bytes.Buffer
		if err := Render(&buf, res, DefaultBrand(), f); err != nil {
			t.Fatalf("Render(%s): %v", f, err)
		}
		if !strings.Contains(buf.String(), want) {
			t.Errorf("Render(%s) missing %q", f, want)
		}
	}
}
