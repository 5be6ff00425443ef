package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkarpov/linkguard/internal/model"
)

// BatchProcessor analyzes many URLs concurrently.
type BatchProcessor struct {
	analyzer    LinkAnalyzer
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(analyzer LinkAnalyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{analyzer: analyzer, concurrency: concurrency}
}

// ProcessURLs analyzes every URL; results are in completion order.
func (b *BatchProcessor) ProcessURLs(ctx context.Context, urls []string) []model.AnalysisResult {
	if len(urls) == 0 {
		return []model.AnalysisResult{}
	}

	pool := NewPool(b.analyzer, b.concurrency)
	pool.Start(ctx)

	for _, url := range urls {
		pool.Submit(ctx, url)
	}
	return pool.Wait()
}

// ProcessFile reads URLs from a file (one per line) and analyzes them.
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]model.AnalysisResult, error) {
	urls, err := ReadURLsFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read URLs: %w", err)
	}
	return b.ProcessURLs(ctx, urls), nil
}

// ReadURLsFromFile reads one URL per line, skipping blanks and # comments
// and dropping duplicates.
func ReadURLsFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return urls, nil
}
