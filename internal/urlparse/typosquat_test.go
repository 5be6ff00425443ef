package urlparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkarpov/linkguard/internal/model"
)

func TestIsTyposquatting(t *testing.T) {
	in := newTestInspector()

	tests := []struct {
		name string
		host string
		want bool
	}{
		{"extra letter gooogle", "gooogle.com", true},
		{"two edits gogle", "gogle.com", true},
		{"leet paypa1", "paypa1.com", true},
		{"leet micros0ft", "secure.micros0ft.com", true},
		{"leet amaz0n subdomain", "login.amaz0n-billing.tk", true},
		{"exact target is not a squat", "google.com", false},
		{"unrelated domain", "example.org", false},
		{"distance beyond two", "goooooogle.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, in.IsTyposquatting(tt.host))
		})
	}
}

func TestInspect_TyposquattingIssue(t *testing.T) {
	in := newTestInspector()
	raw := "https://gooogle.com"
	rec, err := Parse(raw)
	require.NoError(t, err)

	got := issueTypes(in.Inspect(raw, rec))
	assert.Equal(t, model.SeverityHigh, got[model.IssueTyposquatting])
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"google.com", "google.com", 0},
		{"gooogle.com", "google.com", 1},
		{"microsfot.com", "microsoft.com", 2},
		{"kitten", "sitting", 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, levenshtein(tt.a, tt.b), "levenshtein(%q, %q)", tt.a, tt.b)
	}
}

func TestHasHomographAttack(t *testing.T) {
	in := newTestInspector()

	tests := []struct {
		name string
		host string
		want bool
	}{
		{"cyrillic a in paypal", "pаypal.com", true},
		{"cyrillic o", "gоogle.com", true},
		{"greek omicron mixes scripts", "micrοsoft.com", true},
		{"plain ascii", "paypal.com", false},
		{"digits and dashes", "my-site-24.org", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, in.HasHomographAttack(tt.host))
		})
	}
}

func TestMixesScripts(t *testing.T) {
	assert.True(t, mixesScripts("latinаmixed"))   // Latin + Cyrillic
	assert.True(t, mixesScripts("αа"))       // Greek + Cyrillic
	assert.False(t, mixesScripts("абв")) // pure Cyrillic
	assert.False(t, mixesScripts("onlylatin"))
}
