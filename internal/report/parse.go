package report

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/ziadkadry99/aliverse/internal/bazi"
)

// ErrNoChart means a report carries no pillar line.
var ErrNoChart = errors.New("report has no chart line")

// ParseChart recovers the four pillars from a text report.
func ParseChart(text string) (bazi.Chart, error) {
	sc := bufio.NewScanner(strings.NewReader(strings.TrimPrefix(text, BOM)))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if rest, ok := strings.CutPrefix(line, ChartPrefix); ok {
			chart, err := bazi.ParseChart(rest)
			if err != nil {
				return bazi.Chart{}, fmt.Errorf("parsing report chart line: %w", err)
			}
			return chart, nil
		}
	}
	if err := sc.Err(); err != nil {
		return bazi.Chart{}, err
	}
	return bazi.Chart{}, ErrNoChart
}
