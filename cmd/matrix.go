package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/aliverse/internal/bazi"
	"github.com/ziadkadry99/aliverse/internal/garage"
)

var matrixCmd = &cobra.Command{
	Use:   "matrix [day-stem fuel-element]",
	Short: "Show the 8×8 car matrix, or one cell of it",
	Long: `Without arguments prints every hexagram indexed by chassis (upper trigram,
from the day stem) and engine (lower trigram, from the fuel element).
With a day stem and an element prints that single car model.`,
	Example: "  aliverse matrix\n  aliverse matrix 壬 火",
	Args:    cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch len(args) {
		case 0:
			printMatrix()
			return nil
		case 2:
			day, err := bazi.ParseStem(args[0])
			if err != nil {
				return err
			}
			el, err := bazi.ParseElement(args[1])
			if err != nil {
				return err
			}
			printHexagram(garage.Matrix(day, el))
			return nil
		default:
			return fmt.Errorf("need both a day stem and a fuel element")
		}
	},
}

func init() {
	rootCmd.AddCommand(matrixCmd)
}

func printMatrix() {
	headers := []string{"chassis \\ engine"}
	for lo := garage.Qian; lo <= garage.Dui; lo++ {
		info := lo.Info()
		headers = append(headers, info.Symbol+" "+info.Name)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
	for up := garage.Qian; up <= garage.Dui; up++ {
		info := up.Info()
		row := []string{fmt.Sprintf("%s %s %s", info.Symbol, info.Name, info.Style)}
		for lo := garage.Qian; lo <= garage.Dui; lo++ {
			h := garage.HexagramOf(up, lo)
			row = append(row, fmt.Sprintf("%d %s", h.Number, h.Name))
		}
		t.Row(row...)
	}
	fmt.Fprintln(os.Stdout, t.Render())
}

func printHexagram(h garage.Hexagram) {
	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("第%d卦 %s", h.Number, h.Name)),
		fmt.Sprintf("車身 %s %s  %s %s", h.Upper.Symbol, h.Upper.Name, h.Upper.Color, h.Upper.Style),
		fmt.Sprintf("引擎 %s %s  %s", h.Lower.Symbol, h.Lower.Name, h.Lower.Engine),
		"",
		h.Model,
		h.Tagline,
	)
	fmt.Fprintln(os.Stdout, boxStyle.Render(body))
}
