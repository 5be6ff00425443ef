// Package urlparse normalizes raw URLs and runs the structural and Unicode
// detectors that feed the threat aggregator. Every detector is a pure
// function of the parsed record (plus reference data) and emits at most one
// issue with a fixed severity.
package urlparse

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/idna"

	"github.com/pkarpov/linkguard/internal/model"
)

var (
	ipv4Pattern    = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){3}$`)
	percentEncoded = regexp.MustCompile(`%[0-9A-Fa-f]{2}`)
)

var dangerousSchemes = map[string]bool{
	"javascript": true,
	"data":       true,
	"blob":       true,
	"file":       true,
	"vbscript":   true,
}

var standardPorts = map[string]bool{
	"80":   true,
	"443":  true,
	"8080": true,
	"8443": true,
}

// Inspector runs the structural URL detectors against parsed records.
type Inspector struct {
	ref *model.ReferenceData
}

// NewInspector creates an inspector over the given reference data.
func NewInspector(ref *model.ReferenceData) *Inspector {
	return &Inspector{ref: ref}
}

// Inspect runs every detector in insertion order and returns the issues
// that fired. Order carries no priority.
func (in *Inspector) Inspect(raw string, rec *Record) []model.Issue {
	var issues []model.Issue
	add := func(t model.IssueType, sev model.Severity, msg string) {
		issues = append(issues, model.Issue{Type: t, Severity: sev, Message: msg})
	}

	if dangerousSchemes[rec.Scheme] {
		add(model.IssueDangerousScheme, model.SeverityHigh,
			fmt.Sprintf("dangerous scheme %q", rec.Scheme))
	}
	if rec.HasUserInfo {
		add(model.IssueUsernameInURL, model.SeverityHigh,
			"credentials embedded before the hostname")
	}
	if brand := in.impersonatedBrand(rec); brand != "" {
		add(model.IssueSubdomainImpersonation, model.SeverityHigh,
			fmt.Sprintf("host impersonates %q in a subdomain", brand))
	}
	if spoofed := in.spoofedPathDomain(rec); spoofed != "" {
		add(model.IssuePathSpoofing, model.SeverityHigh,
			fmt.Sprintf("known domain %q embedded in the path", spoofed))
	}
	if strings.Contains(raw, "%25") {
		add(model.IssueDoubleEncoding, model.SeverityHigh,
			"double percent-encoding present")
	}
	if ipv4Pattern.MatchString(rec.Host) {
		add(model.IssueIPAddress, model.SeverityHigh,
			fmt.Sprintf("host is a raw IP address %s", rec.Host))
	}
	if tld := in.riskyTLD(rec); tld != "" {
		add(model.IssueSuspiciousTLD, model.SeverityMedium,
			fmt.Sprintf("registrable domain uses risky TLD .%s", tld))
	}
	if strings.Contains(rec.Host, "xn--") {
		msg := "punycode-encoded hostname"
		if decoded, err := idna.ToUnicode(rec.Host); err == nil && decoded != rec.Host {
			msg = fmt.Sprintf("punycode-encoded hostname (decodes to %q)", decoded)
		}
		add(model.IssuePunycode, model.SeverityMedium, msg)
	}
	if percentEncoded.MatchString(raw) {
		add(model.IssueEncodedChars, model.SeverityMedium,
			"percent-encoded characters present")
	}
	if rec.Port != "" && !standardPorts[rec.Port] {
		add(model.IssueNonStandardPort, model.SeverityMedium,
			fmt.Sprintf("non-standard port %s", rec.Port))
	}
	if rec.Scheme == "http" {
		add(model.IssueInsecure, model.SeverityMedium,
			"plain HTTP, connection is not encrypted")
	}
	if strings.Contains(rec.Host, "..") {
		add(model.IssueMultipleDots, model.SeverityLow,
			"consecutive dots in hostname")
	}
	if in.isShortener(rec) {
		add(model.IssueURLShortener, model.SeverityLow,
			fmt.Sprintf("%s is a URL shortener, destination is hidden", rec.RegistrableDomain))
	}
	if len(rec.Host) > 50 {
		add(model.IssueLongDomain, model.SeverityLow,
			fmt.Sprintf("unusually long hostname (%d chars)", len(rec.Host)))
	}
	if in.HasHomographAttack(rec.Host) {
		add(model.IssueHomograph, model.SeverityHigh,
			"hostname contains confusable or mixed-script characters")
	}
	if target := in.typosquatTarget(rec); target != "" {
		add(model.IssueTyposquatting, model.SeverityHigh,
			fmt.Sprintf("hostname imitates %q", target))
	}

	return issues
}

// IsLegitimate reports whether the record's registrable domain exactly
// matches, or the host is a subdomain of, a configured legitimate domain.
// A legitimate match short-circuits the verdict to safe regardless of
// other issues.
func (in *Inspector) IsLegitimate(rec *Record) bool {
	for _, d := range in.ref.LegitimateDomains {
		if rec.RegistrableDomain == d || strings.HasSuffix(rec.Host, "."+d) {
			return true
		}
	}
	return false
}

func (in *Inspector) impersonatedBrand(rec *Record) string {
	for _, brand := range in.ref.BrandTokens {
		if strings.Contains(rec.Host, brand) && !strings.HasPrefix(rec.RegistrableDomain, brand) {
			return brand
		}
	}
	return ""
}

func (in *Inspector) spoofedPathDomain(rec *Record) string {
	path := strings.ToLower(rec.Path)
	for _, d := range in.ref.LegitimateDomains {
		if strings.Contains(path, d) {
			return d
		}
	}
	return ""
}

func (in *Inspector) riskyTLD(rec *Record) string {
	for _, tld := range in.ref.RiskyTLDs {
		if strings.HasSuffix(rec.RegistrableDomain, "."+tld) {
			return tld
		}
	}
	return ""
}

func (in *Inspector) isShortener(rec *Record) bool {
	for _, s := range in.ref.Shorteners {
		if rec.RegistrableDomain == s {
			return true
		}
	}
	return false
}

// ThreatFromIssues applies the fixed threshold table over issue severities.
// Legitimate domains are always safe; otherwise two high (or one high plus
// one medium) findings mean dangerous, a single high or two mediums mean
// suspicious, any finding at all means suspicious, and a clean URL is
// unknown rather than safe.
func ThreatFromIssues(issues []model.Issue, legitimate bool) model.ThreatLevel {
	if legitimate {
		return model.ThreatSafe
	}

	high, medium := 0, 0
	for _, is := range issues {
		switch is.Severity {
		case model.SeverityHigh:
			high++
		case model.SeverityMedium:
			medium++
		}
	}

	switch {
	case high >= 2 || (high >= 1 && medium >= 1):
		return model.ThreatDangerous
	case high >= 1 || medium >= 2:
		return model.ThreatSuspicious
	case len(issues) > 0:
		return model.ThreatSuspicious
	default:
		return model.ThreatUnknown
	}
}
