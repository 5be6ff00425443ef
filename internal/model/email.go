package model

// EmailMetadata is the sender/subject/body envelope supplied alongside a
// link when the surrounding message is available.
type EmailMetadata struct {
	Sender      string `json:"sender"`
	ReplyTo     string `json:"reply_to,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Subject     string `json:"subject,omitempty"`
	Body        string `json:"body,omitempty"`
}

// EmailFinding is a single metadata check that fired.
type EmailFinding struct {
	Check    string   `json:"check"`
	Severity Severity `json:"severity"`
	Detail   string   `json:"detail"`
}

// EmailRisk aggregates metadata findings into an additive risk score.
// Bands: score >= 10 high, >= 5 medium, else low.
type EmailRisk struct {
	Findings  []EmailFinding `json:"findings"`
	RiskScore int            `json:"risk_score"`
	Band      Severity       `json:"band"`
}
