package textscan

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pkarpov/linkguard/internal/feature"
	"github.com/pkarpov/linkguard/internal/model"
)

var (
	capsRunPattern      = regexp.MustCompile(`[A-Z]{5,}`)
	punctRunPattern     = regexp.MustCompile(`[!?]{3,}`)
	timePressurePattern = regexp.MustCompile(`(?i)within\s+\d+\s+(hour|day)s?`)
	linkPattern         = regexp.MustCompile(`https?://`)
	emailAddrPattern    = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
)

// AnalyzeEmail runs the independent envelope checks; each one adds to the
// risk score. Bands: >=10 high, >=5 medium, else low.
func (a *Analyzer) AnalyzeEmail(md model.EmailMetadata) model.EmailRisk {
	var findings []model.EmailFinding
	score := 0

	add := func(points int, check string, sev model.Severity, detail string) {
		score += points
		findings = append(findings, model.EmailFinding{Check: check, Severity: sev, Detail: detail})
	}

	senderDomain := emailDomain(md.Sender)

	if md.ReplyTo != "" {
		if replyDomain := emailDomain(md.ReplyTo); replyDomain != "" && replyDomain != senderDomain {
			add(8, "reply_to_mismatch", model.SeverityHigh,
				fmt.Sprintf("sender domain %q but replies go to %q", senderDomain, replyDomain))
		}
	}

	a.checkSenderDomain(senderDomain, add)
	a.checkSubject(md.Subject, add)
	a.checkBody(md.Body, add)
	a.checkDisplayName(md, senderDomain, add)

	return model.EmailRisk{
		Findings:  findings,
		RiskScore: score,
		Band:      riskBand(score),
	}
}

func (a *Analyzer) checkSenderDomain(domain string, add func(int, string, model.Severity, string)) {
	if domain == "" {
		return
	}
	for _, tld := range a.ref.RiskyTLDs {
		if strings.HasSuffix(domain, "."+tld) {
			add(5, "sender_risky_tld", model.SeverityHigh,
				fmt.Sprintf("sender domain %q uses risky TLD .%s", domain, tld))
			break
		}
	}

	label := domain
	if idx := strings.Index(domain, "."); idx > 0 {
		label = domain[:idx]
	}
	if len(label) >= 12 && feature.ShannonEntropy(label) > 3 {
		add(3, "sender_random_label", model.SeverityMedium,
			fmt.Sprintf("sender domain label %q looks machine-generated", label))
	}
	if strings.Count(domain, "-") > 2 {
		add(2, "sender_many_hyphens", model.SeverityMedium,
			fmt.Sprintf("sender domain %q has excessive hyphens", domain))
	}
}

func (a *Analyzer) checkSubject(subject string, add func(int, string, model.Severity, string)) {
	if subject == "" {
		return
	}
	lower := strings.ToLower(subject)

	for _, kw := range a.ref.UrgencyKeywords {
		if strings.Contains(lower, kw) {
			add(2, "subject_urgency", model.SeverityMedium, fmt.Sprintf("urgency keyword %q", kw))
		}
	}
	for _, kw := range a.ref.FinancialKeywords {
		if strings.Contains(lower, kw) {
			add(1, "subject_financial", model.SeverityLow, fmt.Sprintf("financial keyword %q", kw))
		}
	}
	if capsRunPattern.MatchString(subject) {
		add(2, "subject_caps_run", model.SeverityLow, "excessive consecutive capitals")
	}
	if punctRunPattern.MatchString(subject) {
		add(1, "subject_punctuation", model.SeverityLow, "repeated exclamation or question marks")
	}
}

func (a *Analyzer) checkBody(body string, add func(int, string, model.Severity, string)) {
	if body == "" {
		return
	}
	lower := strings.ToLower(body)

	if links := len(linkPattern.FindAllStringIndex(body, -1)); links > 5 {
		add(2, "body_many_links", model.SeverityLow, fmt.Sprintf("%d links in body", links))
	}
	for _, phrase := range a.ref.SuspiciousPhrases {
		if strings.Contains(lower, phrase) {
			add(1, "body_suspicious_phrase", model.SeverityLow, fmt.Sprintf("phrase %q", phrase))
		}
	}
	if timePressurePattern.MatchString(body) {
		add(2, "body_time_pressure", model.SeverityMedium, "explicit deadline phrasing")
	}
	for _, term := range a.ref.PersonalInfoTerms {
		if strings.Contains(lower, term) {
			add(3, "body_personal_info_request", model.SeverityHigh, fmt.Sprintf("asks for %q", term))
		}
	}
}

func (a *Analyzer) checkDisplayName(md model.EmailMetadata, senderDomain string, add func(int, string, model.Severity, string)) {
	if md.DisplayName == "" {
		return
	}
	display := strings.ToLower(md.DisplayName)

	for _, brand := range a.ref.BrandTokens {
		if strings.Contains(display, brand) && !strings.Contains(senderDomain, brand) {
			add(8, "display_name_impersonation", model.SeverityHigh,
				fmt.Sprintf("display name claims %q but sender domain is %q", brand, senderDomain))
			break
		}
	}

	if embedded := emailAddrPattern.FindString(md.DisplayName); embedded != "" &&
		!strings.EqualFold(embedded, md.Sender) {
		add(4, "display_name_embedded_address", model.SeverityMedium,
			fmt.Sprintf("display name carries address %q differing from sender", embedded))
	}
}

func riskBand(score int) model.Severity {
	switch {
	case score >= 10:
		return model.SeverityHigh
	case score >= 5:
		return model.SeverityMedium
	default:
		return model.SeverityLow
	}
}

func emailDomain(addr string) string {
	parts := strings.Split(addr, "@")
	if len(parts) != 2 {
		return ""
	}
	return strings.ToLower(parts[1])
}
