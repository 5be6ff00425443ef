package feature

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkarpov/linkguard/internal/model"
)

func newTestScorer() (*Extractor, *Scorer) {
	ref := model.DefaultReferenceData()
	return NewExtractor(&ref), NewScorer(&ref)
}

func TestExtract(t *testing.T) {
	extractor, _ := newTestScorer()

	v := extractor.Extract("https://a.b.c.login-secure.example.xyz:8000/verify?id=12345")
	require.NotNil(t, v)

	assert.Equal(t, 4, v.SubdomainCount)
	assert.True(t, v.HasDash)
	assert.True(t, v.HasPort)
	assert.True(t, v.IsHTTPS)
	assert.False(t, v.HasIP)
	assert.Equal(t, "xyz", v.TLD)
	assert.GreaterOrEqual(t, v.SuspiciousWords, 2) // login, secure, verify
	assert.Equal(t, 9, v.DigitCount)               // 8000 + 12345
}

func TestExtract_InvalidURL(t *testing.T) {
	extractor, _ := newTestScorer()
	assert.Nil(t, extractor.Extract("not a url"))
	assert.Nil(t, extractor.Extract(""))
}

func TestScore_WeightTable(t *testing.T) {
	_, scorer := newTestScorer()

	tests := []struct {
		name string
		v    Vector
		want int
	}{
		{"empty https com vector", Vector{IsHTTPS: true, TLD: "com"}, 0},
		{"not https", Vector{TLD: "com"}, 3},
		{"uncommon tld", Vector{IsHTTPS: true, TLD: "io"}, 2},
		{"risky tld stacks with uncommon", Vector{IsHTTPS: true, TLD: "tk"}, 5},
		{"ip host", Vector{IsHTTPS: true, TLD: "com", HasIP: true}, 5},
		{"at symbol", Vector{IsHTTPS: true, TLD: "com", HasAtSymbol: true}, 4},
		{"long url band 75", Vector{IsHTTPS: true, TLD: "com", URLLength: 80}, 2},
		{"long url band 100 supersedes", Vector{IsHTTPS: true, TLD: "com", URLLength: 140}, 3},
		{"entropy bands", Vector{IsHTTPS: true, TLD: "com", Entropy: 4.7}, 2},
		{"entropy high band", Vector{IsHTTPS: true, TLD: "com", Entropy: 5.2}, 3},
		{"keywords", Vector{IsHTTPS: true, TLD: "com", SuspiciousWords: 3}, 6},
		{"dash underscore port", Vector{IsHTTPS: true, TLD: "com", HasDash: true, HasUnderscore: true, HasPort: true}, 5},
		{"subdomains", Vector{IsHTTPS: true, TLD: "com", SubdomainCount: 4}, 3},
		{"uppercase ratio", Vector{IsHTTPS: true, TLD: "com", DomainLength: 10, UppercaseCount: 6}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scorer.Score(&tt.v))
		})
	}
}

func TestScore_CapAndNil(t *testing.T) {
	_, scorer := newTestScorer()

	assert.Equal(t, 0, scorer.Score(nil))

	v := Vector{SuspiciousWords: 80} // 160 before the cap
	assert.Equal(t, 100, scorer.Score(&v))
}

func TestShannonEntropy(t *testing.T) {
	assert.Zero(t, ShannonEntropy(""))
	assert.Zero(t, ShannonEntropy("aaaa"))
	assert.InDelta(t, 1.0, ShannonEntropy("abab"), 1e-9)

	// 16 distinct characters give exactly 4 bits/char.
	assert.InDelta(t, 4.0, ShannonEntropy("abcdefghijklmnop"), 1e-9)

	random := ShannonEntropy("x7f2qz9vk4mw1jr8hd3n")
	plain := ShannonEntropy("google")
	assert.Greater(t, random, plain)
	assert.False(t, math.IsNaN(random))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		score      int
		class      Classification
		confidence float64
	}{
		{0, ClassLegitimate, 1.0},
		{3, ClassLegitimate, 0.7},
		{4, ClassPotentiallySuspicious, 0.4},
		{7, ClassPotentiallySuspicious, 0.7},
		{8, ClassSuspicious, 8.0 / 15},
		{14, ClassSuspicious, 14.0 / 15},
		{15, ClassPhishing, 0.75},
		{30, ClassPhishing, 1.0},
		{100, ClassPhishing, 1.0},
	}

	for _, tt := range tests {
		v := Classify(tt.score)
		assert.Equal(t, tt.class, v.Class, "score %d", tt.score)
		assert.InDelta(t, tt.confidence, v.Confidence, 1e-9, "score %d", tt.score)
		assert.Equal(t, tt.score, v.Score)
	}
}

func TestMatchPatterns(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			"fake login on risky tld",
			"https://login-update.tk/session",
			[]string{"fake_login_risky_tld"},
		},
		{
			"ip host with auth keyword",
			"http://203.0.113.7/secure/login.php",
			[]string{"ip_host_auth_keyword"},
		},
		{
			"brand on risky tld",
			"https://paypal-billing.xyz/",
			[]string{"brand_on_risky_tld"},
		},
		{
			"multi subdomain brand",
			"https://paypal.com.session.verify.example.org/",
			[]string{"multi_subdomain_brand"},
		},
		{
			"data collection page",
			"https://example.org/update/card-details.php",
			[]string{"data_collection_page"},
		},
		{
			"clean url",
			"https://example.org/blog/post",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := MatchPatterns(tt.raw)
			var ids []string
			for _, m := range matches {
				ids = append(ids, m.PatternID)
			}
			for _, want := range tt.want {
				assert.Contains(t, ids, want)
			}
			if tt.want == nil {
				assert.Empty(t, matches)
			}
		})
	}
}

func TestPatternScore(t *testing.T) {
	raw := "http://198.51.100.2/paypal.com.login.verify/card-details"
	matches := MatchPatterns(raw)
	total := PatternScore(matches)
	assert.Greater(t, total, 15)
	assert.Equal(t, total, PatternScore(matches)) // deterministic
}
