package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/aliverse/internal/bazi"
	"github.com/ziadkadry99/aliverse/internal/readings"
	"github.com/ziadkadry99/aliverse/internal/report"
)

var readingsCmd = &cobra.Command{
	Use:     "readings",
	Aliases: []string{"history"},
	Short:   "Manage stored readings",
	Long:    `List, show, re-render and delete readings stored by 'aliverse chart --save', batch runs and the web wizard.`,
}

var readingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored readings, newest first",
	RunE:  runReadingsList,
}

var readingsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Re-render a stored reading",
	Args:  cobra.ExactArgs(1),
	RunE:  runReadingsShow,
}

var readingsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored reading",
	Args:  cobra.ExactArgs(1),
	RunE:  runReadingsDelete,
}

var readingsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count stored readings by strength bucket",
	RunE:  runReadingsStats,
}

func init() {
	readingsListCmd.Flags().String("bucket", "", "only this bucket: deficient, weak, balanced, strong, dominant")
	readingsListCmd.Flags().Duration("since", 0, "only readings newer than this (e.g. 24h)")
	readingsListCmd.Flags().Int("limit", 20, "maximum number of readings")
	readingsShowCmd.Flags().StringP("format", "f", "text", "output format: text, markdown, html, json")
	readingsShowCmd.Flags().Bool("share", false, "print the share message instead of the report")

	readingsCmd.AddCommand(readingsListCmd)
	readingsCmd.AddCommand(readingsShowCmd)
	readingsCmd.AddCommand(readingsDeleteCmd)
	readingsCmd.AddCommand(readingsStatsCmd)
	rootCmd.AddCommand(readingsCmd)
}

// withReadings opens the history database around fn.
func withReadings(fn func(svc *readings.Service) error) error {
	if err := loadConfig(); err != nil {
		return err
	}
	a, err := newAnalyzer()
	if err != nil {
		return err
	}
	svc, database, err := openReadings(a)
	if err != nil {
		return err
	}
	defer database.Close()
	return fn(svc)
}

func runReadingsList(cmd *cobra.Command, args []string) error {
	filter := readings.Filter{}
	filter.Limit, _ = cmd.Flags().GetInt("limit")
	if s, _ := cmd.Flags().GetString("bucket"); s != "" {
		b, err := bazi.ParseBucket(s)
		if err != nil {
			return err
		}
		filter.Bucket = &b
	}
	if d, _ := cmd.Flags().GetDuration("since"); d > 0 {
		since := time.Now().Add(-d)
		filter.Since = &since
	}

	return withReadings(func(svc *readings.Service) error {
		list, err := svc.Store().List(context.Background(), filter)
		if err != nil {
			return fmt.Errorf("listing readings: %w", err)
		}
		if len(list) == 0 {
			fmt.Println("No readings stored. Use `aliverse chart --save` to store one.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tNAME\tCHART\tSCORE\tBUCKET\tFAVORABLE\tHEXAGRAM")
		for _, r := range list {
			hex := "-"
			if r.Hexagram > 0 {
				hex = fmt.Sprintf("%d", r.Hexagram)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d%%\t%s\t%s\t%s\n",
				r.ID, r.CreatedAt.Local().Format(time.DateTime), r.Birth.DisplayName(), r.Chart,
				r.Score, r.Bucket.Label(), report.JoinElements(r.Favorable), hex)
		}
		return w.Flush()
	})
}

func runReadingsShow(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(mustString(cmd.Flags().GetString("format")))
	if err != nil {
		return err
	}
	share, _ := cmd.Flags().GetBool("share")

	return withReadings(func(svc *readings.Service) error {
		d, err := svc.Get(context.Background(), args[0])
		if err != nil {
			return err
		}
		brand := cfg.Brand.Report()
		if share {
			fmt.Println(report.Share(d.Result, brand))
			return nil
		}
		if format == report.FormatText {
			fmt.Print(report.Text(d.Result, brand))
			return nil
		}
		return report.Render(os.Stdout, d.Result, brand, format)
	})
}

func runReadingsDelete(cmd *cobra.Command, args []string) error {
	return withReadings(func(svc *readings.Service) error {
		if err := svc.Store().Delete(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted reading %s\n", args[0])
		return nil
	})
}

func runReadingsStats(cmd *cobra.Command, args []string) error {
	return withReadings(func(svc *readings.Service) error {
		stats, err := svc.Store().Stats(context.Background())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "BUCKET\tLABEL\tCOUNT")
		for _, b := range bazi.Buckets() {
			fmt.Fprintf(w, "%s\t%s\t%d\n", b, b.Label(), stats.ByBucket[b.String()])
		}
		fmt.Fprintf(w, "total\t\t%d\n", stats.Total)
		return w.Flush()
	})
}
