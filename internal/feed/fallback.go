package feed

import "github.com/pkarpov/linkguard/internal/model"

// FallbackEntries is the small built-in pattern set loaded when the feed
// stays unreachable. Domains only; the structural detectors carry the rest.
func FallbackEntries() []model.ReputationEntry {
	domains := []string{
		"secure-paypal-login.tk",
		"appleid-verify.ml",
		"microsoft-account-alert.ga",
		"netflix-billing-update.cf",
		"amazon-security-check.gq",
		"chase-online-verify.xyz",
		"wellsfargo-alerts.top",
	}

	entries := make([]model.ReputationEntry, 0, len(domains))
	for _, d := range domains {
		entries = append(entries, model.ReputationEntry{Domain: d, Verified: false})
	}
	return entries
}
