package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/aliverse/internal/analysis"
	"github.com/ziadkadry99/aliverse/internal/bazi"
	"github.com/ziadkadry99/aliverse/internal/calendar"
	"github.com/ziadkadry99/aliverse/internal/db"
	"github.com/ziadkadry99/aliverse/internal/readings"
	"github.com/ziadkadry99/aliverse/internal/report"
)

// stubCalendar answers every conversion with the same pillars.
type stubCalendar struct{}

func (stubCalendar) Convert(_ context.Context, _, _, _, _ int) (calendar.Conversion, error) {
	return calendar.Conversion{
		Year: "甲午", Month: "癸酉", Day: "壬寅", Hour: "丙午",
		Zodiac: "馬", LunarDate: "一九五四年 八月 初一",
	}, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	a, err := analysis.New(stubCalendar{}, bazi.DefaultThresholds(), 2026)
	if err != nil {
		t.Fatal(err)
	}
	return NewServer(a, report.DefaultBrand())
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	return tc.Text
}

func chartArgs() map[string]any {
	return map[string]any{
		"year":      float64(1954),
		"month":     float64(9),
		"day":       float64(27),
		"hour_slot": float64(6),
		"name":      "小美",
	}
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"compute_chart", computeChartTool, "compute_chart"},
		{"ten_god", tenGodTool, "ten_god"},
		{"car_matrix", carMatrixTool, "car_matrix"},
		{"get_reading", getReadingTool, "get_reading"},
		{"list_readings", listReadingsTool, "list_readings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	srv := newTestServer(t)
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.brand.Name == "" {
		t.Error("brand not set")
	}
	if srv.mcp.GetTool("get_reading") != nil {
		t.Error("get_reading should only be registered once readings are set")
	}
	if srv.mcp.GetTool("compute_chart") == nil {
		t.Error("compute_chart not registered")
	}
}

func TestHandleComputeChart(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	t.Run("text report", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = chartArgs()

		result, err := srv.handleComputeChart(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		text := textOf(t, result)
		for _, want := range []string{report.ChartPrefix + "甲午 癸酉 壬寅 丙午", "小美", "中和"} {
			if !strings.Contains(text, want) {
				t.Errorf("report missing %q:\n%s", want, text)
			}
		}
	})

	t.Run("json with fuel", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		args := chartArgs()
		args["format"] = "json"
		args["fuel"] = "火"
		req.Params.Arguments = args

		result, err := srv.handleComputeChart(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		var got struct {
			Score  int `json:"score"`
			Matrix *struct {
				Number int `json:"number"`
			} `json:"matrix"`
		}
		if err := json.Unmarshal([]byte(textOf(t, result)), &got); err != nil {
			t.Fatalf("decoding result: %v", err)
		}
		if got.Score != 40 {
			t.Errorf("score = %d, want 40", got.Score)
		}
		if got.Matrix == nil || got.Matrix.Number != 13 {
			t.Errorf("matrix = %+v, want hexagram 13", got.Matrix)
		}
	})

	t.Run("unfavorable fuel", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		args := chartArgs()
		args["fuel"] = "Metal"
		req.Params.Arguments = args

		result, err := srv.handleComputeChart(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for unfavorable fuel")
		}
	})

	t.Run("missing hour slot", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		args := chartArgs()
		delete(args, "hour_slot")
		req.Params.Arguments = args

		result, err := srv.handleComputeChart(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Fatal("expected error for missing hour_slot")
		}
		if !strings.Contains(textOf(t, result), "hour_slot") {
			t.Errorf("error should name the missing field: %s", textOf(t, result))
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		args := chartArgs()
		args["month"] = float64(2)
		args["day"] = float64(30)
		req.Params.Arguments = args

		result, err := srv.handleComputeChart(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for February 30")
		}
	})
}

func TestHandleTenGod(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"day_stem": "甲", "other_stem": "丙"}
	result, err := srv.handleTenGod(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}
	if text := textOf(t, result); !strings.Contains(text, "食神") {
		t.Errorf("expected 食神 in %q", text)
	}

	req.Params.Arguments = map[string]any{"day_stem": "甲", "other_stem": "子"}
	result, err = srv.handleTenGod(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("a branch is not a stem")
	}
}

func TestHandleCarMatrix(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"day_stem": "壬", "element": "fire"}
	result, err := srv.handleCarMatrix(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}
	text := textOf(t, result)
	for _, want := range []string{"Hexagram 13 同人", "乾", "離"} {
		if !strings.Contains(text, want) {
			t.Errorf("result missing %q:\n%s", want, text)
		}
	}

	req.Params.Arguments = map[string]any{"day_stem": "壬"}
	result, err = srv.handleCarMatrix(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("expected error for missing element")
	}
}

func TestReadingTools(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { database.Close() })

	srv := newTestServer(t)
	svc := readings.NewService(readings.NewStore(database), srv.analyzer)
	srv.SetReadings(svc)
	ctx := context.Background()

	if srv.mcp.GetTool("get_reading") == nil {
		t.Fatal("get_reading not registered")
	}

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{}
	result, err := srv.handleListReadings(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(textOf(t, result), "No readings") {
		t.Errorf("expected empty message, got %q", textOf(t, result))
	}

	y, m, d, h := 1954, 9, 27, 6
	detail, err := svc.Create(ctx, calendar.BirthInput{Name: "小美", Year: &y, Month: &m, Day: &d, HourSlot: &h}, nil, false)
	if err != nil {
		t.Fatal(err)
	}

	req.Params.Arguments = map[string]any{"id": detail.Reading.ID}
	result, err = srv.handleGetReading(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}
	if !strings.Contains(textOf(t, result), "小美") {
		t.Errorf("report missing name:\n%s", textOf(t, result))
	}

	req.Params.Arguments = map[string]any{"bucket": "balanced"}
	result, err = srv.handleListReadings(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(textOf(t, result), detail.Reading.ID) {
		t.Errorf("list missing %s:\n%s", detail.Reading.ID, textOf(t, result))
	}

	req.Params.Arguments = map[string]any{"id": "missing"}
	result, err = srv.handleGetReading(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("expected error for unknown id")
	}
}
