package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ziadkadry99/aliverse/internal/analysis"
)

// Format selects a renderer.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

// ParseFormat accepts a format name or common alias ("md", "txt").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown report format %q: must be one of text, markdown, html, json", s)
}

// Ext is the file extension for the format, with the dot.
func (f Format) Ext() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatHTML:
		return ".html"
	case FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

// Render writes res in format f. Text output carries the BOM.
func Render(w io.Writer, res *analysis.Result, brand Brand, f Format) error {
	switch f {
	case FormatMarkdown:
		md, err := Markdown(res, brand)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, md)
		return err
	case FormatHTML:
		page, err := HTML(res, brand)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, page)
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	default:
		return WriteText(w, res, brand)
	}
}
