package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkarpov/linkguard/internal/analyzer"
	"github.com/pkarpov/linkguard/internal/model"
	"github.com/pkarpov/linkguard/internal/worker"
)

var (
	concurrency  int
	batchTimeout time.Duration
	batchJSON    string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze multiple URLs from a file in parallel",
	Long: `Batch reads URLs from a file (one per line, # comments allowed) and
analyzes them concurrently. Duplicates are analyzed once.

Example:
  linkguard batch urls.txt
  linkguard batch urls.txt --concurrency 16 --json results.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&batchJSON, "json", "", "write all results to a JSON file")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if concurrency > 0 {
		a.cfg.Concurrency.BatchWorkers = concurrency
	}

	processor := worker.NewBatchProcessor(a.analyzer, a.cfg.Concurrency.BatchWorkers)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return err
	}

	counts := map[model.ThreatLevel]int{}
	for _, result := range results {
		counts[result.ThreatLevel]++
		fmt.Print(analyzer.FormatAnalysis(result, true))
	}

	fmt.Fprintf(os.Stderr, "\n%d analyzed: %d safe, %d suspicious, %d dangerous, %d unknown\n",
		len(results),
		counts[model.ThreatSafe], counts[model.ThreatSuspicious],
		counts[model.ThreatDangerous], counts[model.ThreatUnknown])

	if scans, blocked := a.analyzer.Stats(); verbose {
		fmt.Fprintf(os.Stderr, "scans=%d blocked=%d\n", scans, blocked)
	}

	if batchJSON != "" {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal results: %w", err)
		}
		if err := os.WriteFile(batchJSON, data, 0o644); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
		fmt.Fprintf(os.Stderr, "results written to %s\n", batchJSON)
	}
	return nil
}
