package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ziadkadry99/aliverse/internal/analysis"
	"github.com/ziadkadry99/aliverse/internal/bazi"
	"github.com/ziadkadry99/aliverse/internal/calendar"
	"github.com/ziadkadry99/aliverse/internal/garage"
	"github.com/ziadkadry99/aliverse/internal/report"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Read one birth as a car",
	Long: `Converts a Gregorian birth date and hour slot into the four pillars and prints
the car reading. Missing fields are prompted for when stdin is a terminal.

Hour slots: ` + hourSlotHelp(),
	RunE: runChart,
}

func init() {
	addChartFlags(chartCmd.Flags())
	rootCmd.AddCommand(chartCmd)
}

func addChartFlags(f *pflag.FlagSet) {
	f.Int("year", 0, "birth year")
	f.Int("month", 0, "birth month")
	f.Int("day", 0, "birth day")
	f.Int("slot", -1, "birth hour slot 0..12")
	f.Int("clock", -1, "birth clock hour 0..23 (alternative to --slot)")
	f.String("name", "", "driver name printed on the report")
	f.String("gender", "", "shown on the report only")
	f.StringP("format", "f", "text", "output format: text, markdown, html, json")
	f.StringP("output", "o", "", "write the report to a file instead of stdout")
	f.String("fuel", "", "run the car matrix on this favorable element")
	f.Bool("divine", false, "run the car matrix on the first favorable element")
	f.Bool("save", false, "store the reading in the history database")
}

func hourSlotHelp() string {
	var b strings.Builder
	for _, s := range calendar.HourSlots {
		fmt.Fprintf(&b, "\n  %2d  %s", s.Index, s.Label)
	}
	return b.String()
}

func runChart(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	flags := cmd.Flags()
	format, err := report.ParseFormat(mustString(flags.GetString("format")))
	if err != nil {
		return err
	}

	in, err := birthFromFlags(cmd)
	if err != nil {
		return err
	}
	if isatty.IsTerminal(os.Stdin.Fd()) {
		if err := promptMissing(&in); err != nil {
			return err
		}
	}

	var fuel *bazi.Element
	if s := mustString(flags.GetString("fuel")); s != "" {
		el, err := bazi.ParseElement(s)
		if err != nil {
			return err
		}
		fuel = &el
	}
	divine, _ := flags.GetBool("divine")
	save, _ := flags.GetBool("save")

	a, err := newAnalyzer()
	if err != nil {
		return err
	}

	ctx := context.Background()
	var res *analysis.Result
	if save {
		svc, database, err := openReadings(a)
		if err != nil {
			return err
		}
		defer database.Close()

		d, err := svc.Create(ctx, in, fuel, divine)
		if err != nil {
			return err
		}
		res = d.Result
		logger.Info("reading saved", zap.String("id", d.Reading.ID), zap.String("db", database.Path()))
	} else {
		res, err = a.Analyze(ctx, in)
		if err != nil {
			return err
		}
		if divine || fuel != nil {
			if _, err := res.Divine(fuel); err != nil {
				return err
			}
		}
	}

	brand := cfg.Brand.Report()
	if out := mustString(flags.GetString("output")); out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}
		defer f.Close()
		if err := report.Render(f, res, brand, format); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", out)
		return nil
	}

	if format == report.FormatText {
		printPillars(os.Stdout, res)
		_, err := io.WriteString(os.Stdout, report.Text(res, brand))
		return err
	}
	return report.Render(os.Stdout, res, brand, format)
}

func mustString(s string, _ error) string { return s }

// birthFromFlags collects only the flags the user actually set.
func birthFromFlags(cmd *cobra.Command) (calendar.BirthInput, error) {
	flags := cmd.Flags()
	in := calendar.BirthInput{
		Name:   mustString(flags.GetString("name")),
		Gender: mustString(flags.GetString("gender")),
	}
	for _, f := range []struct {
		name string
		dst  **int
	}{
		{"year", &in.Year},
		{"month", &in.Month},
		{"day", &in.Day},
		{"slot", &in.HourSlot},
	} {
		if flags.Changed(f.name) {
			v, _ := flags.GetInt(f.name)
			*f.dst = &v
		}
	}

	if flags.Changed("clock") {
		if in.HourSlot != nil {
			return in, fmt.Errorf("use either --slot or --clock, not both")
		}
		h, _ := flags.GetInt("clock")
		slot, err := calendar.SlotForClock(h)
		if err != nil {
			return in, err
		}
		in.HourSlot = &slot.Index
	}
	return in, nil
}

// promptMissing asks for every birth field that is still unset.
func promptMissing(in *calendar.BirthInput) error {
	numbers := []struct {
		label  string
		lo, hi int
		dst    **int
	}{
		{"Birth year", calendar.MinYear, calendar.MaxYear, &in.Year},
		{"Birth month", 1, 12, &in.Month},
		{"Birth day", 1, 31, &in.Day},
	}
	for _, n := range numbers {
		if *n.dst != nil {
			continue
		}
		p := promptui.Prompt{Label: n.label, Validate: intBetween(n.lo, n.hi)}
		s, err := p.Run()
		if err != nil {
			return fmt.Errorf("%s: %w", strings.ToLower(n.label), err)
		}
		v, _ := strconv.Atoi(strings.TrimSpace(s))
		*n.dst = &v
	}

	if in.HourSlot == nil {
		labels := make([]string, len(calendar.HourSlots))
		for i, s := range calendar.HourSlots {
			labels[i] = s.Label
		}
		sel := promptui.Select{Label: "Birth hour", Items: labels, Size: len(labels)}
		idx, _, err := sel.Run()
		if err != nil {
			return fmt.Errorf("birth hour: %w", err)
		}
		in.HourSlot = &idx
	}
	return nil
}

func intBetween(lo, hi int) promptui.ValidateFunc {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("%q is not a number", s)
		}
		if n < lo || n > hi {
			return fmt.Errorf("%d is outside %d..%d", n, lo, hi)
		}
		return nil
	}
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle  = lipgloss.NewStyle().Width(10).Align(lipgloss.Center)
	godStyle   = cellStyle.Foreground(lipgloss.Color("#888888"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func elementStyle(e bazi.Element) lipgloss.Style {
	return cellStyle.Bold(true).Foreground(lipgloss.Color(garage.StyleOf(e).Chart))
}

// printPillars draws the four pillars with element colors. Columns run
// hour, day, month, year, right to left as on a paper chart.
func printPillars(w io.Writer, res *analysis.Result) {
	cols := make([]string, 0, len(res.Pillars))
	for i := len(res.Pillars) - 1; i >= 0; i-- {
		p := res.Pillars[i]
		hidden := make([]string, len(p.Hidden))
		for j, h := range p.Hidden {
			hidden[j] = lipgloss.NewStyle().Foreground(lipgloss.Color(garage.StyleOf(h.Element).Chart)).Render(h.Stem.String())
		}
		cols = append(cols, lipgloss.JoinVertical(lipgloss.Center,
			cellStyle.Render(p.Title),
			godStyle.Render(p.StemGod),
			elementStyle(p.StemElement).Render(p.Pillar.Stem.String()),
			elementStyle(p.BranchElement).Render(p.Pillar.Branch.String()),
			cellStyle.Render(strings.Join(hidden, " ")),
		))
	}

	header := titleStyle.Render(fmt.Sprintf("%s  %s %d%%", res.Birth.DisplayName(), res.BucketLabel, res.Score))
	fmt.Fprintln(w, boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, cols...),
	)))
}
