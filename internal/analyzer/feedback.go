package analyzer

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkarpov/linkguard/internal/feature"
	"github.com/pkarpov/linkguard/internal/model"
)

// FeedbackRecord captures the feature inputs and score for one analyzed
// URL, so misclassifications can be reviewed and the weight table retuned.
type FeedbackRecord struct {
	ID        string               `json:"id"`
	URL       string               `json:"url"`
	Vector    *feature.Vector      `json:"vector"`
	MLScore   int                  `json:"ml_score"`
	Patterns  []model.PatternMatch `json:"patterns"`
	Timestamp time.Time            `json:"timestamp"`
}

// FeedbackSink receives one record per full analysis.
type FeedbackSink interface {
	Record(rec FeedbackRecord)
}

// NopFeedback discards records.
type NopFeedback struct{}

func (NopFeedback) Record(FeedbackRecord) {}

// MemoryFeedback keeps the most recent records in a ring.
type MemoryFeedback struct {
	mu      sync.Mutex
	records []FeedbackRecord
	limit   int
}

// NewMemoryFeedback creates a sink retaining at most limit records.
func NewMemoryFeedback(limit int) *MemoryFeedback {
	if limit <= 0 {
		limit = 256
	}
	return &MemoryFeedback{limit: limit}
}

func (f *MemoryFeedback) Record(rec FeedbackRecord) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, rec)
	if len(f.records) > f.limit {
		f.records = f.records[len(f.records)-f.limit:]
	}
}

// Records returns a copy of the retained records, oldest first.
func (f *MemoryFeedback) Records() []FeedbackRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]FeedbackRecord, len(f.records))
	copy(out, f.records)
	return out
}
