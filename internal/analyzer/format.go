package analyzer

import (
	"fmt"
	"strings"

	"github.com/pkarpov/linkguard/internal/model"
)

// View is the human-facing rendering of a verdict.
type View struct {
	Icon        string
	Color       string // ANSI escape prefix
	Label       string
	Description string
}

const colorReset = "\033[0m"

var viewByLevel = map[model.ThreatLevel]View{
	model.ThreatSafe: {
		Icon:        "✅",
		Color:       "\033[32m",
		Label:       "SAFE",
		Description: "No threats detected",
	},
	model.ThreatSuspicious: {
		Icon:        "⚠️",
		Color:       "\033[33m",
		Label:       "SUSPICIOUS",
		Description: "Potentially dangerous, proceed with caution",
	},
	model.ThreatDangerous: {
		Icon:        "🚫",
		Color:       "\033[31m",
		Label:       "DANGEROUS",
		Description: "Do not visit this link",
	},
	model.ThreatUnknown: {
		Icon:        "❓",
		Color:       "\033[90m",
		Label:       "UNKNOWN",
		Description: "Could not be analyzed",
	},
}

// ViewFor returns the rendering metadata for a threat level.
func ViewFor(level model.ThreatLevel) View {
	if v, ok := viewByLevel[level]; ok {
		return v
	}
	return viewByLevel[model.ThreatUnknown]
}

// FormatAnalysis renders a result as a multi-line terminal report.
func FormatAnalysis(result model.AnalysisResult, colored bool) string {
	v := ViewFor(result.ThreatLevel)

	var b strings.Builder
	if colored {
		fmt.Fprintf(&b, "%s %s%s%s: %s\n", v.Icon, v.Color, v.Label, colorReset, result.URL)
	} else {
		fmt.Fprintf(&b, "%s %s: %s\n", v.Icon, v.Label, result.URL)
	}
	fmt.Fprintf(&b, "   %s\n", v.Description)

	if result.IsWhitelisted {
		b.WriteString("   Domain is whitelisted\n")
	}
	if result.Source != "" && result.Source != "analysis" {
		fmt.Fprintf(&b, "   Source: %s\n", result.Source)
	}
	for _, issue := range result.Issues {
		fmt.Fprintf(&b, "   [%s] %s: %s\n", issue.Severity, issue.Type, issue.Message)
	}
	if result.Scores != (model.Scores{}) {
		fmt.Fprintf(&b, "   Scores: base=%d ml=%d pattern=%d context=%d\n",
			result.Scores.Base, result.Scores.ML, result.Scores.Pattern, result.Scores.Context)
	}
	return b.String()
}
