package model

import "time"

// Config is the full runtime configuration. Reference data ships with
// usable defaults and can be overridden from the config file.
type Config struct {
	Reference   ReferenceData     `yaml:"reference" json:"reference"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Feed        FeedConfig        `yaml:"feed" json:"feed"`
	Advisor     AdvisorConfig     `yaml:"advisor" json:"advisor"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// ReferenceData holds the static sets and tables the detectors consult.
// All entries are lowercase.
type ReferenceData struct {
	// LegitimateDomains short-circuit the verdict to safe when the
	// registrable domain matches exactly or the host is a subdomain.
	LegitimateDomains []string `yaml:"legitimate_domains" json:"legitimate_domains"`

	// RiskyTLDs are TLDs with cheap/anonymous registration commonly seen
	// in phishing campaigns. Stored without the leading dot.
	RiskyTLDs []string `yaml:"risky_tlds" json:"risky_tlds"`

	// Shorteners are registrable domains of URL shortening services.
	Shorteners []string `yaml:"shorteners" json:"shorteners"`

	// TyposquatTargets are brand names checked for small-edit and
	// leet-speak imitations in hostnames.
	TyposquatTargets []string `yaml:"typosquat_targets" json:"typosquat_targets"`

	// BrandTokens are brand names checked for subdomain impersonation.
	BrandTokens []string `yaml:"brand_tokens" json:"brand_tokens"`

	// Confusables maps an ASCII letter to Unicode characters that render
	// close enough to pass for it.
	Confusables map[string][]string `yaml:"confusables" json:"confusables"`

	// PhishingKeywords groups social-engineering terms by category; each
	// category scores once per text regardless of hit count.
	PhishingKeywords map[string][]string `yaml:"phishing_keywords" json:"phishing_keywords"`

	// SpamIndicators are strong spam terms worth three points each.
	SpamIndicators []string `yaml:"spam_indicators" json:"spam_indicators"`

	// SuspiciousURLKeywords are credential/auth terms counted inside the
	// URL itself by the feature scorer.
	SuspiciousURLKeywords []string `yaml:"suspicious_url_keywords" json:"suspicious_url_keywords"`

	// Subject/body keyword lists for email metadata analysis.
	UrgencyKeywords    []string `yaml:"urgency_keywords" json:"urgency_keywords"`
	FinancialKeywords  []string `yaml:"financial_keywords" json:"financial_keywords"`
	SuspiciousPhrases  []string `yaml:"suspicious_phrases" json:"suspicious_phrases"`
	PersonalInfoTerms  []string `yaml:"personal_info_terms" json:"personal_info_terms"`
}

// CacheConfig controls the analysis result cache.
type CacheConfig struct {
	Enabled  bool `yaml:"enabled" json:"enabled"`
	Capacity int  `yaml:"capacity" json:"capacity"`
}

// FeedConfig controls the reputation feed refresh.
type FeedConfig struct {
	URL            string        `yaml:"url" json:"url"`
	MaxRetries     int           `yaml:"max_retries" json:"max_retries"`
	BackoffBase    time.Duration `yaml:"backoff_base" json:"backoff_base"`
	RequestsPerSec float64       `yaml:"requests_per_sec" json:"requests_per_sec"`
	Burst          int           `yaml:"burst" json:"burst"`
	Timeout        time.Duration `yaml:"timeout" json:"timeout"`
	HTTPProxy      string        `yaml:"http_proxy,omitempty" json:"http_proxy,omitempty"`
	HTTPSProxy     string        `yaml:"https_proxy,omitempty" json:"https_proxy,omitempty"`
}

// AdvisorConfig controls the optional LLM verdict explanation. The advisor
// runs after aggregation and never affects the verdict.
type AdvisorConfig struct {
	Enabled   bool   `yaml:"enabled" json:"enabled"`
	Model     string `yaml:"model" json:"model"`
	APIKey    string `yaml:"api_key,omitempty" json:"-"`
	BaseURL   string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	MaxTokens int    `yaml:"max_tokens" json:"max_tokens"`
}

// ConcurrencyConfig bounds batch processing.
type ConcurrencyConfig struct {
	BatchWorkers int `yaml:"batch_workers" json:"batch_workers"`
}

// OutputConfig controls CLI output.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" json:"verbose"`
}

// DefaultConfig returns the built-in configuration, including the default
// reference data sets.
func DefaultConfig() *Config {
	return &Config{
		Reference: DefaultReferenceData(),
		Cache: CacheConfig{
			Enabled:  true,
			Capacity: 1000,
		},
		Feed: FeedConfig{
			MaxRetries:     2,
			BackoffBase:    time.Second,
			RequestsPerSec: 1,
			Burst:          2,
			Timeout:        30 * time.Second,
		},
		Advisor: AdvisorConfig{
			Enabled:   false,
			Model:     "gpt-4o-mini",
			MaxTokens: 300,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers: 8,
		},
	}
}

// DefaultReferenceData returns the built-in detector reference sets.
func DefaultReferenceData() ReferenceData {
	return ReferenceData{
		LegitimateDomains: []string{
			"google.com", "youtube.com", "facebook.com", "amazon.com",
			"apple.com", "microsoft.com", "paypal.com", "netflix.com",
			"github.com", "wikipedia.org", "twitter.com", "instagram.com",
			"linkedin.com", "ebay.com", "adobe.com", "dropbox.com",
			"chase.com", "wellsfargo.com", "bankofamerica.com",
		},
		RiskyTLDs: []string{
			"tk", "ml", "ga", "cf", "gq", "xyz", "top", "club",
			"online", "site", "buzz", "work", "click", "loan", "zip",
			"country", "stream", "download",
		},
		Shorteners: []string{
			"bit.ly", "tinyurl.com", "goo.gl", "t.co", "ow.ly",
			"is.gd", "buff.ly", "cutt.ly", "rebrand.ly", "shorturl.at",
		},
		TyposquatTargets: []string{
			"google", "facebook", "amazon", "paypal", "microsoft",
			"apple", "netflix", "instagram", "twitter", "linkedin",
			"ebay", "chase", "wellsfargo",
		},
		BrandTokens: []string{
			"google", "facebook", "amazon", "paypal", "microsoft",
			"apple", "netflix", "instagram", "twitter", "linkedin",
			"ebay", "chase", "wellsfargo", "bankofamerica", "dropbox",
		},
		Confusables: map[string][]string{
			"a": {"а", "à", "á", "â", "ą"}, // а à á â ą
			"c": {"с", "ç"},                               // с ç
			"e": {"е", "è", "é", "ė"},           // е è é ė
			"h": {"һ"},                                         // һ
			"i": {"і", "ì", "í", "ı"},           // і ì í ı
			"o": {"о", "ο", "ò", "ó"},           // о ο ò ó
			"p": {"р"},                                         // р
			"s": {"ѕ"},                                         // ѕ
			"x": {"х"},                                         // х
			"y": {"у", "ý"},                               // у ý
		},
		PhishingKeywords: map[string][]string{
			"urgency": {
				"urgent", "immediately", "act now", "expires", "final notice",
				"within 24 hours", "right away", "asap",
			},
			"account": {
				"account suspended", "account locked", "unusual activity",
				"verify your account", "reactivate", "account closure",
			},
			"credentials": {
				"confirm your password", "update your password", "login to verify",
				"confirm your identity", "security check",
			},
			"financial": {
				"refund", "payment failed", "billing problem", "invoice attached",
				"you have won", "claim your prize", "tax refund",
			},
			"brand": {
				"paypal support", "apple id", "microsoft security",
				"amazon customer", "netflix billing", "bank alert",
			},
		},
		SpamIndicators: []string{
			"viagra", "cialis", "weight loss", "work from home",
			"make money fast", "get rich", "guaranteed income",
			"crypto giveaway", "double your bitcoin", "forex signals",
			"casino bonus", "no prescription",
		},
		SuspiciousURLKeywords: []string{
			"login", "signin", "sign-in", "verify", "secure", "account",
			"update", "confirm", "banking", "password", "webscr",
			"authenticate", "wallet", "recover",
		},
		UrgencyKeywords: []string{
			"urgent", "immediately", "asap", "right away", "act now",
			"expires", "final", "last chance", "today only",
		},
		FinancialKeywords: []string{
			"payment", "invoice", "wire transfer", "bank", "refund",
			"transaction", "billing", "account balance", "gift card",
		},
		SuspiciousPhrases: []string{
			"click here", "verify your account", "confirm your identity",
			"unusual activity", "suspended", "limited time",
			"dear customer", "dear user",
		},
		PersonalInfoTerms: []string{
			"password", "ssn", "social security", "credit card",
			"card number", "pin", "date of birth", "mother's maiden",
			"routing number", "cvv",
		},
	}
}
