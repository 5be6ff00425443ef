// Package worker fans link analysis out over a fixed worker set. Each URL
// is independent; results arrive in completion order.
package worker

import (
	"context"
	"sync"

	"github.com/pkarpov/linkguard/internal/model"
)

// LinkAnalyzer is the single-URL analysis contract the pool drives.
type LinkAnalyzer interface {
	AnalyzeLink(ctx context.Context, url, contextText string) model.AnalysisResult
}

// Pool runs link analyses concurrently.
type Pool struct {
	workers  int
	analyzer LinkAnalyzer

	jobs      chan string
	results   chan model.AnalysisResult
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewPool creates a pool with the given number of workers.
func NewPool(analyzer LinkAnalyzer, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{
		workers:  workers,
		analyzer: analyzer,
		jobs:     make(chan string, workers*2),
		results:  make(chan model.AnalysisResult, workers*2),
	}
}

// Start launches the workers.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case url, ok := <-p.jobs:
			if !ok {
				return
			}
			result := p.analyzer.AnalyzeLink(ctx, url, "")
			select {
			case p.results <- result:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Submit queues a URL for analysis.
func (p *Pool) Submit(ctx context.Context, url string) {
	select {
	case <-ctx.Done():
	case p.jobs <- url:
	}
}

// Wait closes the queue, waits for the workers, and collects all results.
func (p *Pool) Wait() []model.AnalysisResult {
	close(p.jobs)

	go func() {
		p.wg.Wait()
		p.closeResults()
	}()

	var results []model.AnalysisResult
	for result := range p.results {
		results = append(results, result)
	}
	return results
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
