package model

import "time"

// ThreatLevel is the four-valued verdict produced by aggregation.
type ThreatLevel string

const (
	ThreatSafe       ThreatLevel = "safe"
	ThreatSuspicious ThreatLevel = "suspicious"
	ThreatDangerous  ThreatLevel = "dangerous"
	ThreatUnknown    ThreatLevel = "unknown"
)

// Severity indicates the weight of a single issue.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// IssueType classifies a detector finding.
type IssueType string

const (
	// Structural URL detectors.
	IssueDangerousScheme        IssueType = "dangerous_scheme"
	IssueUsernameInURL          IssueType = "username_in_url"
	IssueSubdomainImpersonation IssueType = "subdomain_impersonation"
	IssuePathSpoofing           IssueType = "path_spoofing"
	IssueDoubleEncoding         IssueType = "double_encoding"
	IssueIPAddress              IssueType = "ip_address"
	IssueSuspiciousTLD          IssueType = "suspicious_tld"
	IssuePunycode               IssueType = "punycode"
	IssueEncodedChars           IssueType = "encoded_chars"
	IssueNonStandardPort        IssueType = "non_standard_port"
	IssueInsecure               IssueType = "insecure"
	IssueMultipleDots           IssueType = "multiple_dots"
	IssueURLShortener           IssueType = "url_shortener"
	IssueLongDomain             IssueType = "long_domain"
	IssueHomograph              IssueType = "homograph"
	IssueTyposquatting          IssueType = "typosquatting"

	// Aggregator-level issues.
	IssueInvalidURL        IssueType = "invalid_url"
	IssueBlacklisted       IssueType = "blacklisted"
	IssueKnownPhishing     IssueType = "known_phishing"
	IssueMLPattern         IssueType = "ml_pattern"
	IssueMLHighRisk        IssueType = "ml_high_risk"
	IssueMixedContent      IssueType = "mixed_content"
	IssueDangerousPort     IssueType = "dangerous_port"
	IssueSSLDisabled       IssueType = "ssl_disabled"
	IssueSuspiciousContext IssueType = "suspicious_context"
	IssueError             IssueType = "error"
)

// Issue is a single detector finding. A detector emits exactly one Issue or
// none; issues are never mutated after creation.
type Issue struct {
	Type     IssueType `json:"type"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
}

// Scores is the per-component score breakdown of an analysis.
type Scores struct {
	Base    int `json:"base"`    // 3*high + 2*medium + 1*low over structural issues
	Pattern int `json:"pattern"` // summed structural signature matches
	Context int `json:"context"` // weighted keyword hits in surrounding text
	ML      int `json:"ml"`      // heuristic feature-vector composite (0-100)
}

// PatternMatch is one structural signature hit against the raw URL.
type PatternMatch struct {
	PatternID   string `json:"pattern_id"`
	Score       int    `json:"score"`
	Description string `json:"description"`
}

// AnalysisResult is the externally visible verdict for a single link.
// Constructed once per analysis and treated as immutable once cached.
type AnalysisResult struct {
	URL           string      `json:"url"`
	Domain        string      `json:"domain,omitempty"`
	ThreatLevel   ThreatLevel `json:"threat_level"`
	Issues        []Issue     `json:"issues"`
	Scores        Scores      `json:"scores"`
	IsWhitelisted bool        `json:"is_whitelisted,omitempty"`
	Verified      bool        `json:"verified,omitempty"` // reputation-store confirmation
	Source        string      `json:"source,omitempty"`   // which stage produced the verdict
	Timestamp     time.Time   `json:"timestamp"`
}

// HighCount returns the number of high-severity issues.
func (r *AnalysisResult) HighCount() int { return countSeverity(r.Issues, SeverityHigh) }

// MediumCount returns the number of medium-severity issues.
func (r *AnalysisResult) MediumCount() int { return countSeverity(r.Issues, SeverityMedium) }

func countSeverity(issues []Issue, s Severity) int {
	n := 0
	for _, is := range issues {
		if is.Severity == s {
			n++
		}
	}
	return n
}

// ReputationEntry is a record in the external reputation store.
type ReputationEntry struct {
	URL       string    `json:"url"`
	Domain    string    `json:"domain"`
	Verified  bool      `json:"verified"`
	Timestamp time.Time `json:"timestamp"`
}

// ReputationLookup is the outcome of consulting the reputation store.
// A store that has not finished loading reports Found=false rather than
// blocking the caller.
type ReputationLookup struct {
	Found     bool      `json:"found"`
	Verified  bool      `json:"verified"`
	Timestamp time.Time `json:"timestamp,omitempty"`
	Source    string    `json:"source,omitempty"`
}
