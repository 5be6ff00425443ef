package analyzer

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/pkarpov/linkguard/internal/model"
)

// Event describes a verdict worth surfacing to an operator: every dangerous
// result, plus suspicious results backed by strong surrounding text.
type Event struct {
	ID           string            `json:"id"`
	URL          string            `json:"url"`
	Domain       string            `json:"domain"`
	ThreatLevel  model.ThreatLevel `json:"threat_level"`
	ContextScore int               `json:"context_score"`
	Issues       []model.Issue     `json:"issues"`
	Timestamp    time.Time         `json:"timestamp"`
}

// NewEvent builds an event from a finished result.
func NewEvent(result model.AnalysisResult, contextScore int) Event {
	return Event{
		ID:           uuid.NewString(),
		URL:          result.URL,
		Domain:       result.Domain,
		ThreatLevel:  result.ThreatLevel,
		ContextScore: contextScore,
		Issues:       result.Issues,
		Timestamp:    result.Timestamp,
	}
}

// Notifier receives threat events. Implementations must not block the
// analysis path for long; slow sinks should buffer internally.
type Notifier interface {
	Notify(ctx context.Context, ev Event)
}

// NopNotifier discards events.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Event) {}

// LogNotifier writes events to the standard logger.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, ev Event) {
	log.Printf("threat detected: level=%s url=%s issues=%d context=%d id=%s",
		ev.ThreatLevel, ev.URL, len(ev.Issues), ev.ContextScore, ev.ID)
}

// ChannelNotifier forwards events to a channel, dropping when full.
type ChannelNotifier struct {
	C chan Event
}

// NewChannelNotifier creates a buffered channel notifier.
func NewChannelNotifier(buffer int) *ChannelNotifier {
	return &ChannelNotifier{C: make(chan Event, buffer)}
}

func (n *ChannelNotifier) Notify(_ context.Context, ev Event) {
	select {
	case n.C <- ev:
	default:
	}
}
