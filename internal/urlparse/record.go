package urlparse

import (
	"fmt"
	"net/url"
	"strings"
)

// Record is the normalized form of a parsed URL. Immutable once parsed.
type Record struct {
	Scheme            string
	Host              string // lowercased
	RegistrableDomain string // last two DNS labels; naive, see package doc
	Port              string // empty when not explicit
	Path              string
	Query             string
	Fragment          string
	HasUserInfo       bool
}

// ParseError reports a URL that could not be normalized. The aggregator
// converts it into a single invalid_url issue; it is never thrown past
// the public API.
type ParseError struct {
	Raw    string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %s", e.Raw, e.Reason)
}

// Parse normalizes a raw URL string into a Record.
func Parse(raw string) (*Record, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &ParseError{Raw: raw, Reason: "empty input"}
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, &ParseError{Raw: raw, Reason: err.Error()}
	}
	if u.Scheme == "" {
		return nil, &ParseError{Raw: raw, Reason: "missing scheme"}
	}

	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())

	// Opaque schemes (javascript:, data:) carry no host; they are still
	// analyzable because the scheme detector flags them.
	if host == "" && !isOpaqueScheme(scheme) {
		return nil, &ParseError{Raw: raw, Reason: "missing host"}
	}

	return &Record{
		Scheme:            scheme,
		Host:              host,
		RegistrableDomain: registrableDomain(host),
		Port:              u.Port(),
		Path:              u.Path,
		Query:             u.RawQuery,
		Fragment:          u.Fragment,
		HasUserInfo:       u.User != nil,
	}, nil
}

func isOpaqueScheme(scheme string) bool {
	switch scheme {
	case "javascript", "data", "blob", "vbscript", "file", "mailto":
		return true
	}
	return false
}

// registrableDomain returns the last two DNS labels of the host. This is a
// deliberately naive heuristic: it misclassifies hosts under multi-label
// public suffixes (example.co.uk -> co.uk).
func registrableDomain(host string) string {
	labels := strings.Split(host, ".")
	if len(labels) <= 2 {
		return host
	}
	return strings.Join(labels[len(labels)-2:], ".")
}

// SubdomainCount returns the number of labels before the registrable domain.
func (r *Record) SubdomainCount() int {
	if r.Host == "" {
		return 0
	}
	labels := strings.Split(r.Host, ".")
	if len(labels) <= 2 {
		return 0
	}
	return len(labels) - 2
}

// TLD returns the final DNS label of the host, without the dot.
func (r *Record) TLD() string {
	idx := strings.LastIndex(r.RegistrableDomain, ".")
	if idx < 0 {
		return ""
	}
	return r.RegistrableDomain[idx+1:]
}
