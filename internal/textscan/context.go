// Package textscan scores free text surrounding a link for
// social-engineering pressure: phishing keyword categories, spam
// indicators, and email envelope anomalies.
package textscan

import (
	"sort"
	"strings"

	"github.com/pkarpov/linkguard/internal/model"
)

// Analyzer scores text against the configured keyword lists.
type Analyzer struct {
	ref *model.ReferenceData
}

// NewAnalyzer creates an analyzer over the given reference data.
func NewAnalyzer(ref *model.ReferenceData) *Analyzer {
	return &Analyzer{ref: ref}
}

// ScoreContext returns the weighted keyword score of the text: one point
// per phishing-keyword category with at least one hit, three points per
// spam indicator found. No cap.
func (a *Analyzer) ScoreContext(text string) int {
	if text == "" {
		return 0
	}
	lower := strings.ToLower(text)

	score := 0
	for _, category := range sortedCategories(a.ref.PhishingKeywords) {
		for _, term := range a.ref.PhishingKeywords[category] {
			if strings.Contains(lower, term) {
				score++
				break // each category scores once
			}
		}
	}
	for _, term := range a.ref.SpamIndicators {
		if strings.Contains(lower, term) {
			score += 3
		}
	}
	return score
}

// ContextSeverity bands a context score to the severity of the
// suspicious_context issue the aggregator folds in.
func ContextSeverity(score int) model.Severity {
	switch {
	case score >= 5:
		return model.SeverityHigh
	case score >= 3:
		return model.SeverityMedium
	default:
		return model.SeverityLow
	}
}

func sortedCategories(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
