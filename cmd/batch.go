package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/aliverse/internal/batch"
	"github.com/ziadkadry99/aliverse/internal/progress"
	"github.com/ziadkadry99/aliverse/internal/report"
)

var batchCmd = &cobra.Command{
	Use:   "batch [dir]",
	Short: "Render reports for every birth file under a directory",
	Long: `Walks dir (default ".") for YAML birth files matching batch.include and writes
one report per person into batch.output_dir. A file holds either one birth
mapping or a list of them:

  name: 小美
  year: 1990
  month: 5
  day: 17
  hour_slot: 6

Inputs whose content has not changed since the last run are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.StringP("format", "f", "", "report format (default batch.format)")
	f.StringP("output", "o", "", "output directory (default batch.output_dir)")
	f.IntP("concurrency", "j", batch.DefaultConcurrency, "files processed in parallel")
	f.Bool("divine", false, "run the car matrix on the first favorable element")
	f.Bool("save", false, "store every reading in the history database")
	f.Bool("force", false, "re-render inputs that have not changed")
	f.Bool("dry-run", false, "list the input files without rendering")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	flags := cmd.Flags()

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	formatName := cfg.Batch.Format
	if flags.Changed("format") {
		formatName, _ = flags.GetString("format")
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}

	opts := batch.Options{
		RootDir:   root,
		Include:   cfg.Batch.Include,
		Exclude:   cfg.Batch.Exclude,
		OutputDir: cfg.Batch.OutputDir,
		Format:    format,
		Brand:     cfg.Brand.Report(),
	}
	if flags.Changed("output") {
		opts.OutputDir, _ = flags.GetString("output")
	}
	opts.Concurrency, _ = flags.GetInt("concurrency")
	opts.Divine, _ = flags.GetBool("divine")
	opts.Force, _ = flags.GetBool("force")

	if dry, _ := flags.GetBool("dry-run"); dry {
		files, err := batch.Discover(opts)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Println(f.RelPath)
		}
		fmt.Fprintf(os.Stderr, "%d input file(s)\n", len(files))
		return nil
	}

	a, err := newAnalyzer()
	if err != nil {
		return err
	}
	runner := batch.NewRunner(a, logger)

	if save, _ := flags.GetBool("save"); save {
		svc, database, err := openReadings(a)
		if err != nil {
			return err
		}
		defer database.Close()
		runner.SetReadings(svc)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reporter := progress.NewReporter()
	started := false
	runner.SetProgressFunc(func(processed, total int, currentFile string) {
		if !started {
			reporter.Start(total)
			started = true
		}
		reporter.Update(processed, currentFile)
	})

	result, err := runner.Run(ctx, opts)
	if started {
		reporter.Finish()
	}
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	for _, e := range result.Errors {
		logger.Warn("input failed", zap.Error(e))
	}
	fmt.Fprintf(os.Stderr, "%d report(s) written to %s, %d unchanged input(s) skipped",
		len(result.Written), opts.OutputDir, len(result.Unchanged))
	if result.Saved > 0 {
		fmt.Fprintf(os.Stderr, ", %d reading(s) saved", result.Saved)
	}
	fmt.Fprintln(os.Stderr)

	if len(result.Errors) > 0 {
		return fmt.Errorf("%d input(s) failed", len(result.Errors))
	}
	return nil
}
