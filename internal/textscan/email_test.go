package textscan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkarpov/linkguard/internal/model"
)

func findingChecks(risk model.EmailRisk) map[string]int {
	m := make(map[string]int)
	for _, f := range risk.Findings {
		m[f.Check]++
	}
	return m
}

func TestAnalyzeEmail_Clean(t *testing.T) {
	a := newTestAnalyzer()

	risk := a.AnalyzeEmail(model.EmailMetadata{
		Sender:      "colleague@example.org",
		DisplayName: "Jamie Doe",
		Subject:     "Lunch on Thursday?",
		Body:        "Does noon still work for you?",
	})

	assert.Zero(t, risk.RiskScore)
	assert.Empty(t, risk.Findings)
	assert.Equal(t, model.SeverityLow, risk.Band)
}

func TestAnalyzeEmail_ReplyToMismatch(t *testing.T) {
	a := newTestAnalyzer()

	risk := a.AnalyzeEmail(model.EmailMetadata{
		Sender:  "billing@example.org",
		ReplyTo: "collector@elsewhere.net",
	})

	assert.Equal(t, 8, risk.RiskScore)
	assert.Equal(t, model.SeverityMedium, risk.Band)
	checks := findingChecks(risk)
	assert.Equal(t, 1, checks["reply_to_mismatch"])
}

func TestAnalyzeEmail_SenderDomain(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		name   string
		sender string
		check  string
		points int
	}{
		{"risky tld", "support@secure-login.tk", "sender_risky_tld", 5},
		{"random label", "noreply@x7f2qz9vkw4m.org", "sender_random_label", 3},
		{"many hyphens", "info@pay-pal-secure-login.org", "sender_many_hyphens", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			risk := a.AnalyzeEmail(model.EmailMetadata{Sender: tt.sender})
			checks := findingChecks(risk)
			assert.Equal(t, 1, checks[tt.check])
			assert.GreaterOrEqual(t, risk.RiskScore, tt.points)
		})
	}
}

func TestAnalyzeEmail_Subject(t *testing.T) {
	a := newTestAnalyzer()

	risk := a.AnalyzeEmail(model.EmailMetadata{
		Sender:  "alerts@example.org",
		Subject: "URGENT!!! payment required immediately",
	})

	checks := findingChecks(risk)
	assert.GreaterOrEqual(t, checks["subject_urgency"], 2) // urgent, immediately
	assert.Equal(t, 1, checks["subject_financial"])        // payment
	assert.Equal(t, 1, checks["subject_caps_run"])         // URGENT
	assert.Equal(t, 1, checks["subject_punctuation"])      // !!!
	assert.GreaterOrEqual(t, risk.RiskScore, 2+2+1+2+1)
	assert.Equal(t, model.SeverityMedium, risk.Band)
}

func TestAnalyzeEmail_Body(t *testing.T) {
	a := newTestAnalyzer()

	body := "Dear customer, click here within 24 hours or your access ends. " +
		"Provide your password and card number. " +
		"http://a.example http://b.example http://c.example http://d.example " +
		"http://e.example http://f.example"

	risk := a.AnalyzeEmail(model.EmailMetadata{Sender: "alerts@example.org", Body: body})
	checks := findingChecks(risk)

	assert.Equal(t, 1, checks["body_many_links"])                      // 6 links
	assert.GreaterOrEqual(t, checks["body_suspicious_phrase"], 2)      // dear customer, click here
	assert.Equal(t, 1, checks["body_time_pressure"])                   // within 24 hours
	assert.GreaterOrEqual(t, checks["body_personal_info_request"], 2)  // password, card number
	assert.Equal(t, model.SeverityHigh, risk.Band)
}

func TestAnalyzeEmail_DisplayName(t *testing.T) {
	a := newTestAnalyzer()

	t.Run("brand impersonation", func(t *testing.T) {
		risk := a.AnalyzeEmail(model.EmailMetadata{
			Sender:      "support@random-mail.org",
			DisplayName: "PayPal Support",
		})
		checks := findingChecks(risk)
		assert.Equal(t, 1, checks["display_name_impersonation"])
		assert.GreaterOrEqual(t, risk.RiskScore, 8)
	})

	t.Run("brand matches sender domain", func(t *testing.T) {
		risk := a.AnalyzeEmail(model.EmailMetadata{
			Sender:      "support@paypal.com",
			DisplayName: "PayPal Support",
		})
		checks := findingChecks(risk)
		assert.Zero(t, checks["display_name_impersonation"])
	})

	t.Run("embedded foreign address", func(t *testing.T) {
		risk := a.AnalyzeEmail(model.EmailMetadata{
			Sender:      "mailer@bulk-sender.org",
			DisplayName: "accounts@example.org",
		})
		checks := findingChecks(risk)
		assert.Equal(t, 1, checks["display_name_embedded_address"])
	})
}

func TestAnalyzeEmail_RiskBands(t *testing.T) {
	assert.Equal(t, model.SeverityLow, riskBand(0))
	assert.Equal(t, model.SeverityLow, riskBand(4))
	assert.Equal(t, model.SeverityMedium, riskBand(5))
	assert.Equal(t, model.SeverityMedium, riskBand(9))
	assert.Equal(t, model.SeverityHigh, riskBand(10))
}
