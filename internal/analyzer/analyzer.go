// Package analyzer orchestrates the full verdict pipeline: cache and list
// short-circuits, reputation lookup, the structural/feature/context
// analyzers, and the final aggregation. No error escapes AnalyzeLink; every
// failure degrades to a structured result.
package analyzer

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/pkarpov/linkguard/internal/cache"
	"github.com/pkarpov/linkguard/internal/feature"
	"github.com/pkarpov/linkguard/internal/model"
	"github.com/pkarpov/linkguard/internal/store"
	"github.com/pkarpov/linkguard/internal/textscan"
	"github.com/pkarpov/linkguard/internal/urlparse"
	"github.com/pkarpov/linkguard/internal/worker"
)

// Context-score overrides: these force the verdict regardless of the
// structural issue count.
const (
	contextForceDangerous  = 9
	contextForceSuspicious = 5
)

// Analyzer combines every detector into a single verdict pipeline.
type Analyzer struct {
	cfg       *model.Config
	inspector *urlparse.Inspector
	extractor *feature.Extractor
	scorer    *feature.Scorer
	text      *textscan.Analyzer

	cache      *cache.Policy // nil when caching is disabled
	whitelist  store.ListStore
	blacklist  store.ListStore
	reputation store.ReputationStore
	notifier   Notifier
	feedback   FeedbackSink

	now func() time.Time

	scans   atomic.Uint64
	blocked atomic.Uint64
}

// Options carries the external collaborators.
type Options struct {
	Cache      *cache.Policy
	Whitelist  store.ListStore
	Blacklist  store.ListStore
	Reputation store.ReputationStore
	Notifier   Notifier
	Feedback   FeedbackSink
}

// New creates an analyzer over the given configuration and collaborators.
// Missing collaborators degrade gracefully: no cache means every call is a
// full analysis, a nil notifier swallows events.
func New(cfg *model.Config, opts Options) *Analyzer {
	if opts.Notifier == nil {
		opts.Notifier = NopNotifier{}
	}
	if opts.Feedback == nil {
		opts.Feedback = NopFeedback{}
	}

	return &Analyzer{
		cfg:        cfg,
		inspector:  urlparse.NewInspector(&cfg.Reference),
		extractor:  feature.NewExtractor(&cfg.Reference),
		scorer:     feature.NewScorer(&cfg.Reference),
		text:       textscan.NewAnalyzer(&cfg.Reference),
		cache:      opts.Cache,
		whitelist:  opts.Whitelist,
		blacklist:  opts.Blacklist,
		reputation: opts.Reputation,
		notifier:   opts.Notifier,
		feedback:   opts.Feedback,
		now:        time.Now,
	}
}

// SetClock overrides the analyzer clock, for tests.
func (a *Analyzer) SetClock(now func() time.Time) { a.now = now }

// Stats reports lifetime counters.
func (a *Analyzer) Stats() (scans, blocked uint64) {
	return a.scans.Load(), a.blocked.Load()
}

// AnalyzeLink produces a verdict for one URL plus optional surrounding
// text. It always returns a structured result; internal failures yield an
// unknown verdict with an error issue.
func (a *Analyzer) AnalyzeLink(ctx context.Context, rawURL, contextText string) (result model.AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			result = model.AnalysisResult{
				URL:         rawURL,
				ThreatLevel: model.ThreatUnknown,
				Issues: []model.Issue{{
					Type:     model.IssueError,
					Severity: model.SeverityLow,
					Message:  fmt.Sprintf("analysis aborted: %v", r),
				}},
				Timestamp: a.now(),
			}
		}
	}()

	// Stage 1: cache. Fresh hits return verbatim; dangerous and suspicious
	// entries past their re-verification window fall through.
	if a.cache != nil {
		if cached, ok, stale := a.cache.Lookup(rawURL); ok && !stale {
			return *cached
		}
	}

	rec, err := urlparse.Parse(rawURL)
	if err != nil {
		return a.finish(ctx, model.AnalysisResult{
			URL:         rawURL,
			ThreatLevel: model.ThreatUnknown,
			Issues: []model.Issue{{
				Type:     model.IssueInvalidURL,
				Severity: model.SeverityHigh,
				Message:  err.Error(),
			}},
			Source:    "parser",
			Timestamp: a.now(),
		}, 0)
	}

	// Stage 2: whitelist, with re-verification. A store failure removes
	// trust rather than granting it.
	if verdict, done := a.checkWhitelist(ctx, rawURL, rec); done {
		return a.finish(ctx, verdict, 0)
	}

	// Stage 3: blacklist.
	if verdict, done := a.checkBlacklist(ctx, rawURL, rec); done {
		return a.finish(ctx, verdict, 0)
	}

	// Stage 4: reputation store. Lookup failure degrades to heuristics.
	if verdict, done := a.checkReputation(ctx, rawURL, rec); done {
		return a.finish(ctx, verdict, 0)
	}

	// Stage 5: full analysis.
	return a.fullAnalysis(ctx, rawURL, rec, contextText)
}

// AnalyzeLinks analyzes every URL concurrently; results are in completion
// order.
func (a *Analyzer) AnalyzeLinks(ctx context.Context, urls []string) []model.AnalysisResult {
	batch := worker.NewBatchProcessor(a, a.cfg.Concurrency.BatchWorkers)
	return batch.ProcessURLs(ctx, urls)
}

func (a *Analyzer) checkWhitelist(ctx context.Context, rawURL string, rec *urlparse.Record) (model.AnalysisResult, bool) {
	if a.whitelist == nil {
		return model.AnalysisResult{}, false
	}
	listed, err := a.whitelist.Contains(ctx, rec.RegistrableDomain)
	if err != nil || !listed {
		return model.AnalysisResult{}, false
	}

	// Re-verify against the structural detectors with a synthetic HTTPS
	// URL; a domain that now trips any high-severity detector loses its
	// whitelist entry and goes through full analysis.
	synthetic := "https://" + rec.RegistrableDomain + "/"
	if synRec, synErr := urlparse.Parse(synthetic); synErr == nil {
		for _, issue := range a.inspector.Inspect(synthetic, synRec) {
			if issue.Severity == model.SeverityHigh {
				_ = a.whitelist.Remove(rec.RegistrableDomain)
				return model.AnalysisResult{}, false
			}
		}
	}

	return model.AnalysisResult{
		URL:           rawURL,
		Domain:        rec.RegistrableDomain,
		ThreatLevel:   model.ThreatSafe,
		Issues:        []model.Issue{},
		IsWhitelisted: true,
		Source:        "whitelist",
		Timestamp:     a.now(),
	}, true
}

func (a *Analyzer) checkBlacklist(ctx context.Context, rawURL string, rec *urlparse.Record) (model.AnalysisResult, bool) {
	if a.blacklist == nil {
		return model.AnalysisResult{}, false
	}
	listed, err := a.blacklist.Contains(ctx, rec.RegistrableDomain)
	if err != nil || !listed {
		return model.AnalysisResult{}, false
	}

	return model.AnalysisResult{
		URL:         rawURL,
		Domain:      rec.RegistrableDomain,
		ThreatLevel: model.ThreatDangerous,
		Issues: []model.Issue{{
			Type:     model.IssueBlacklisted,
			Severity: model.SeverityHigh,
			Message:  fmt.Sprintf("%s is blacklisted", rec.RegistrableDomain),
		}},
		Source:    "blacklist",
		Timestamp: a.now(),
	}, true
}

func (a *Analyzer) checkReputation(ctx context.Context, rawURL string, rec *urlparse.Record) (model.AnalysisResult, bool) {
	if a.reputation == nil {
		return model.AnalysisResult{}, false
	}
	lookup, err := a.reputation.Lookup(ctx, rawURL, rec.RegistrableDomain)
	if err != nil || !lookup.Found {
		return model.AnalysisResult{}, false
	}

	return model.AnalysisResult{
		URL:         rawURL,
		Domain:      rec.RegistrableDomain,
		ThreatLevel: model.ThreatDangerous,
		Issues: []model.Issue{{
			Type:     model.IssueKnownPhishing,
			Severity: model.SeverityHigh,
			Message:  "known phishing site",
		}},
		Verified:  lookup.Verified,
		Source:    lookup.Source,
		Timestamp: a.now(),
	}, true
}

func (a *Analyzer) fullAnalysis(ctx context.Context, rawURL string, rec *urlparse.Record, contextText string) model.AnalysisResult {
	issues := a.inspector.Inspect(rawURL, rec)
	legitimate := a.inspector.IsLegitimate(rec)

	// Feature-vector score and structural signature matches.
	vector := a.extractor.ExtractRecord(rawURL, rec)
	mlScore := a.scorer.Score(vector)
	matches := feature.MatchPatterns(rawURL)
	patternScore := feature.PatternScore(matches)
	a.feedback.Record(FeedbackRecord{
		URL:       rawURL,
		Vector:    vector,
		MLScore:   mlScore,
		Patterns:  matches,
		Timestamp: a.now(),
	})

	if mlScore+patternScore >= 15 {
		issues = append(issues, model.Issue{
			Type:     model.IssueMLHighRisk,
			Severity: model.SeverityHigh,
			Message:  fmt.Sprintf("composite feature score %d", mlScore+patternScore),
		})
		for _, m := range matches {
			issues = append(issues, model.Issue{
				Type:     model.IssueMLPattern,
				Severity: model.SeverityMedium,
				Message:  m.Description,
			})
		}
	}

	issues = append(issues, a.transportIssues(rec)...)

	contextScore := a.text.ScoreContext(contextText)
	if contextScore > 0 {
		issues = append(issues, model.Issue{
			Type:     model.IssueSuspiciousContext,
			Severity: textscan.ContextSeverity(contextScore),
			Message:  fmt.Sprintf("surrounding text scores %d", contextScore),
		})
	}

	level := a.aggregate(issues, legitimate, contextScore)

	high := 0
	medium := 0
	low := 0
	for _, is := range issues {
		switch is.Severity {
		case model.SeverityHigh:
			high++
		case model.SeverityMedium:
			medium++
		case model.SeverityLow:
			low++
		}
	}

	if level == model.ThreatSafe {
		// The legitimate-domain short circuit reports a clean result.
		issues = []model.Issue{}
	}

	result := model.AnalysisResult{
		URL:         rawURL,
		Domain:      rec.RegistrableDomain,
		ThreatLevel: level,
		Issues:      issues,
		Scores: model.Scores{
			Base:    3*high + 2*medium + low,
			Pattern: patternScore,
			Context: contextScore,
			ML:      mlScore,
		},
		Source:    "analysis",
		Timestamp: a.now(),
	}
	return a.finish(ctx, result, contextScore)
}

// aggregate applies the context overrides, the legitimacy short circuit,
// and the severity threshold table, in that order. Brand-imitation issues
// (typosquatting, homograph) are decisive on their own: a domain built to
// look like another is dangerous even as the only finding.
func (a *Analyzer) aggregate(issues []model.Issue, legitimate bool, contextScore int) model.ThreatLevel {
	switch {
	case contextScore >= contextForceDangerous:
		return model.ThreatDangerous
	case contextScore >= contextForceSuspicious:
		return model.ThreatSuspicious
	}

	if legitimate {
		return model.ThreatSafe
	}

	for _, is := range issues {
		if is.Type == model.IssueTyposquatting || is.Type == model.IssueHomograph {
			return model.ThreatDangerous
		}
	}

	return urlparse.ThreatFromIssues(issues, false)
}

// transportIssues runs the aggregator-level TLS/protocol checks. The
// structural insecure-scheme detector already covers plain HTTP.
func (a *Analyzer) transportIssues(rec *urlparse.Record) []model.Issue {
	var issues []model.Issue

	if rec.Scheme == "https" && containsHTTPReference(rec.Query) {
		issues = append(issues, model.Issue{
			Type:     model.IssueMixedContent,
			Severity: model.SeverityMedium,
			Message:  "HTTPS page references plain HTTP content",
		})
	}
	if dangerousPorts[rec.Port] {
		issues = append(issues, model.Issue{
			Type:     model.IssueDangerousPort,
			Severity: model.SeverityHigh,
			Message:  fmt.Sprintf("port %s exposes a non-web service", rec.Port),
		})
	}
	if hasSSLDisabledFlag(rec.Query) {
		issues = append(issues, model.Issue{
			Type:     model.IssueSSLDisabled,
			Severity: model.SeverityMedium,
			Message:  "query explicitly disables TLS",
		})
	}
	return issues
}

// finish caches the result, updates counters, and fires notifications.
func (a *Analyzer) finish(ctx context.Context, result model.AnalysisResult, contextScore int) model.AnalysisResult {
	a.scans.Add(1)
	if result.ThreatLevel == model.ThreatDangerous {
		a.blocked.Add(1)
	}

	if a.cache != nil {
		a.cache.Store(result)
	}

	if result.ThreatLevel == model.ThreatDangerous ||
		(result.ThreatLevel == model.ThreatSuspicious && contextScore >= contextForceSuspicious) {
		a.notifier.Notify(ctx, NewEvent(result, contextScore))
	}
	return result
}
