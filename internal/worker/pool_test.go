package worker

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkarpov/linkguard/internal/model"
)

type stubAnalyzer struct{}

func (stubAnalyzer) AnalyzeLink(ctx context.Context, url, contextText string) model.AnalysisResult {
	return model.AnalysisResult{URL: url, ThreatLevel: model.ThreatUnknown}
}

func TestBatchProcessor_ProcessURLs(t *testing.T) {
	b := NewBatchProcessor(stubAnalyzer{}, 4)

	urls := []string{
		"https://a.example.org",
		"https://b.example.org",
		"https://c.example.org",
	}
	results := b.ProcessURLs(context.Background(), urls)
	require.Len(t, results, 3)

	var got []string
	for _, r := range results {
		got = append(got, r.URL)
	}
	sort.Strings(got)
	assert.Equal(t, urls, got)
}

func TestBatchProcessor_Empty(t *testing.T) {
	b := NewBatchProcessor(stubAnalyzer{}, 4)
	assert.Empty(t, b.ProcessURLs(context.Background(), nil))
}

func TestReadURLsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "https://a.example.org\n" +
		"# comment\n" +
		"\n" +
		"https://b.example.org\n" +
		"https://a.example.org\n" // duplicate
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	urls, err := ReadURLsFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example.org", "https://b.example.org"}, urls)
}

func TestReadURLsFromFile_Missing(t *testing.T) {
	_, err := ReadURLsFromFile(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

func TestPool_ZeroWorkersClampedToOne(t *testing.T) {
	p := NewPool(stubAnalyzer{}, 0)
	p.Start(context.Background())
	p.Submit(context.Background(), "https://a.example.org")
	results := p.Wait()
	require.Len(t, results, 1)
}
