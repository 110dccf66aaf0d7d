package mcp

import "github.com/mark3labs/mcp-go/mcp"

// computeChartTool defines the compute_chart MCP tool.
var computeChartTool = mcp.NewTool("compute_chart",
	mcp.WithDescription("Compute a Four Pillars chart from a Gregorian birth date and hour slot. Returns pillars, ten gods, hidden stems, strength score, favorable elements and the car archetype."),
	mcp.WithNumber("year",
		mcp.Required(),
		mcp.Description("Birth year, 1900 to 2026"),
	),
	mcp.WithNumber("month",
		mcp.Required(),
		mcp.Description("Birth month, 1 to 12"),
	),
	mcp.WithNumber("day",
		mcp.Required(),
		mcp.Description("Birth day of month"),
	),
	mcp.WithNumber("hour_slot",
		mcp.Required(),
		mcp.Description("Birth hour slot 0 to 12: 0 is 00:00-00:59, 1 is 01:00-02:59, ... 12 is 23:00-23:59"),
	),
	mcp.WithString("name",
		mcp.Description("Display name printed on the report"),
	),
	mcp.WithString("gender",
		mcp.Description("Shown on the report only"),
	),
	mcp.WithString("fuel",
		mcp.Description("Favorable element to run the car matrix on (木 火 土 金 水 or Wood Fire Earth Metal Water)"),
	),
	mcp.WithString("format",
		mcp.Description("Output format (default text)"),
		mcp.Enum("text", "markdown", "json"),
	),
)

// tenGodTool defines the ten_god MCP tool.
var tenGodTool = mcp.NewTool("ten_god",
	mcp.WithDescription("Name the ten-god relation of a stem as seen from a day master stem."),
	mcp.WithString("day_stem",
		mcp.Required(),
		mcp.Description("Day master stem, one of 甲乙丙丁戊己庚辛壬癸"),
	),
	mcp.WithString("other_stem",
		mcp.Required(),
		mcp.Description("Stem to relate, one of 甲乙丙丁戊己庚辛壬癸"),
	),
)

// carMatrixTool defines the car_matrix MCP tool.
var carMatrixTool = mcp.NewTool("car_matrix",
	mcp.WithDescription("Look up the hexagram car model for a day master stem running on a fuel element."),
	mcp.WithString("day_stem",
		mcp.Required(),
		mcp.Description("Day master stem, one of 甲乙丙丁戊己庚辛壬癸"),
	),
	mcp.WithString("element",
		mcp.Required(),
		mcp.Description("Fuel element (木 火 土 金 水 or Wood Fire Earth Metal Water)"),
	),
)

// getReadingTool defines the get_reading MCP tool.
var getReadingTool = mcp.NewTool("get_reading",
	mcp.WithDescription("Get a stored reading as a text report."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Reading ID"),
	),
)

// listReadingsTool defines the list_readings MCP tool.
var listReadingsTool = mcp.NewTool("list_readings",
	mcp.WithDescription("List recently stored readings."),
	mcp.WithString("bucket",
		mcp.Description("Only readings in this strength bucket"),
		mcp.Enum("deficient", "weak", "balanced", "strong", "dominant"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of readings to return (default 10)"),
	),
)
