// Package feature extracts a numeric feature vector from a URL and scores
// it with a fixed additive weight table. The scorer is a deterministic
// heuristic, not a trained model; it exists so that a learned classifier
// could later replace it behind the same surface.
package feature

import (
	"math"
	"strings"
	"unicode"

	"github.com/pkarpov/linkguard/internal/model"
	"github.com/pkarpov/linkguard/internal/urlparse"
)

// Vector holds the measurements the scorer weighs. Derived purely from the
// parsed record plus the raw string; stateless.
type Vector struct {
	URLLength        int
	DomainLength     int
	DigitCount       int
	SpecialCharCount int
	UppercaseCount   int
	SubdomainCount   int
	HasDash          bool
	HasUnderscore    bool
	HasIP            bool
	HasPort          bool
	HasAtSymbol      bool
	IsHTTPS          bool
	TLD              string
	Entropy          float64
	SuspiciousWords  int
}

// Extractor derives feature vectors using the configured keyword list.
type Extractor struct {
	ref *model.ReferenceData
}

// NewExtractor creates an extractor over the given reference data.
func NewExtractor(ref *model.ReferenceData) *Extractor {
	return &Extractor{ref: ref}
}

// Extract builds the feature vector for a raw URL. Returns nil when the
// URL does not parse.
func (e *Extractor) Extract(raw string) *Vector {
	rec, err := urlparse.Parse(raw)
	if err != nil {
		return nil
	}
	return e.extract(raw, rec)
}

// ExtractRecord builds the feature vector from an already parsed record.
func (e *Extractor) ExtractRecord(raw string, rec *urlparse.Record) *Vector {
	return e.extract(raw, rec)
}

func (e *Extractor) extract(raw string, rec *urlparse.Record) *Vector {
	v := &Vector{
		URLLength:      len(raw),
		DomainLength:   len(rec.Host),
		SubdomainCount: rec.SubdomainCount(),
		HasDash:        strings.Contains(rec.Host, "-"),
		HasUnderscore:  strings.Contains(raw, "_"),
		HasIP:          isIPv4(rec.Host),
		HasPort:        rec.Port != "",
		HasAtSymbol:    strings.Contains(raw, "@"),
		IsHTTPS:        rec.Scheme == "https",
		TLD:            rec.TLD(),
		Entropy:        ShannonEntropy(rec.Host),
	}

	for _, r := range raw {
		switch {
		case unicode.IsDigit(r):
			v.DigitCount++
		case unicode.IsUpper(r):
			v.UppercaseCount++
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			v.SpecialCharCount++
		}
	}

	lower := strings.ToLower(raw)
	for _, kw := range e.ref.SuspiciousURLKeywords {
		if strings.Contains(lower, kw) {
			v.SuspiciousWords++
		}
	}

	return v
}

func isIPv4(host string) bool {
	labels := strings.Split(host, ".")
	if len(labels) != 4 {
		return false
	}
	for _, l := range labels {
		if l == "" || len(l) > 3 {
			return false
		}
		for _, r := range l {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

// ShannonEntropy returns the entropy in bits per character of the string's
// character-frequency distribution. High values indicate machine-generated
// hostnames.
func ShannonEntropy(s string) float64 {
	if s == "" {
		return 0
	}
	freq := make(map[rune]int)
	total := 0
	for _, r := range s {
		freq[r]++
		total++
	}

	entropy := 0.0
	for _, n := range freq {
		p := float64(n) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy
}
