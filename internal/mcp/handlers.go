package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/aliverse/internal/bazi"
	"github.com/ziadkadry99/aliverse/internal/calendar"
	"github.com/ziadkadry99/aliverse/internal/garage"
	"github.com/ziadkadry99/aliverse/internal/readings"
	"github.com/ziadkadry99/aliverse/internal/report"
)

// handleComputeChart analyzes a birth and renders it in the requested format.
func (s *Server) handleComputeChart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in := calendar.BirthInput{
		Name:   request.GetString("name", ""),
		Gender: request.GetString("gender", ""),
	}
	fields := []struct {
		key string
		dst **int
	}{
		{"year", &in.Year},
		{"month", &in.Month},
		{"day", &in.Day},
		{"hour_slot", &in.HourSlot},
	}
	for _, f := range fields {
		v, err := request.RequireInt(f.key)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("missing required parameter: %s", f.key)), nil
		}
		*f.dst = &v
	}

	res, err := s.analyzer.Analyze(ctx, in)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if f := request.GetString("fuel", ""); f != "" {
		fuel, err := bazi.ParseElement(f)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if _, err := res.Divine(&fuel); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	switch request.GetString("format", "text") {
	case "json":
		b, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(b)), nil
	case "markdown":
		md, err := report.Markdown(res, s.brand)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(md), nil
	default:
		return mcp.NewToolResultText(report.Text(res, s.brand)), nil
	}
}

// handleTenGod names the relation between two stems.
func (s *Server) handleTenGod(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	day, err := requireStem(request, "day_stem")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	other, err := requireStem(request, "other_stem")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	g := bazi.Relation(day, other)
	return mcp.NewToolResultText(fmt.Sprintf("%s sees %s (%s %s) as %s (%s), kinship %s",
		day, other, other.Element(), other.Polarity(), g, g.English(), g.Kinship())), nil
}

// handleCarMatrix looks up one cell of the car matrix.
func (s *Server) handleCarMatrix(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	day, err := requireStem(request, "day_stem")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	elStr, err := request.RequireString("element")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: element"), nil
	}
	el, err := bazi.ParseElement(elStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHexagram(garage.Matrix(day, el))), nil
}

// handleGetReading renders a stored reading as a text report.
func (s *Server) handleGetReading(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}
	d, err := s.readings.Get(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(report.Text(d.Result, s.brand)), nil
}

// handleListReadings lists stored readings, newest first.
func (s *Server) handleListReadings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := readings.Filter{Limit: request.GetInt("limit", 10)}
	if filter.Limit <= 0 {
		filter.Limit = 10
	}
	if v := request.GetString("bucket", ""); v != "" {
		b, err := bazi.ParseBucket(v)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		filter.Bucket = &b
	}

	list, err := s.readings.Store().List(ctx, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing readings: %v", err)), nil
	}
	if len(list) == 0 {
		return mcp.NewToolResultText("No readings stored yet. Run `aliverse chart --save` or use the web wizard."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d reading(s):\n", len(list)))
	for _, r := range list {
		sb.WriteString(fmt.Sprintf("\n%s  %s  %s  %s %d%%\n",
			r.ID, r.Birth.DisplayName(), r.Chart, r.Bucket.Label(), r.Score))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func requireStem(request mcp.CallToolRequest, key string) (bazi.Stem, error) {
	v, err := request.RequireString(key)
	if err != nil {
		return 0, fmt.Errorf("missing required parameter: %s", key)
	}
	return bazi.ParseStem(v)
}

// formatHexagram renders a matrix cell for agent consumption.
func formatHexagram(h garage.Hexagram) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Hexagram %d %s\n", h.Number, h.Name))
	sb.WriteString(fmt.Sprintf("Chassis: %s %s (%s)\n", h.Upper.Symbol, h.Upper.Name, h.Upper.Style))
	sb.WriteString(fmt.Sprintf("Engine: %s %s (%s)\n", h.Lower.Symbol, h.Lower.Name, h.Lower.Engine))
	sb.WriteString(fmt.Sprintf("Model: %s\n", h.Model))
	sb.WriteString(h.Tagline)
	return sb.String()
}
