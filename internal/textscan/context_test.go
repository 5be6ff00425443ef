package textscan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkarpov/linkguard/internal/model"
)

func newTestAnalyzer() *Analyzer {
	ref := model.DefaultReferenceData()
	return NewAnalyzer(&ref)
}

func TestScoreContext(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"neutral text", "Here is the quarterly report you asked for.", 0},
		{"one urgency category", "Please respond immediately.", 1},
		{
			// urgency + account = 2 categories, category hits do not stack
			"two categories with repeats",
			"URGENT: your account suspended, account locked, act now",
			2,
		},
		{"spam indicator", "Buy viagra online", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.ScoreContext(tt.text))
		})
	}
}

func TestScoreContext_CategoriesScoreOnce(t *testing.T) {
	a := newTestAnalyzer()

	// Three hits inside the urgency category still score a single point.
	single := a.ScoreContext("urgent")
	triple := a.ScoreContext("urgent, act now, expires")
	assert.Equal(t, single, triple)
}

func TestScoreContext_SpamIndicatorsStack(t *testing.T) {
	a := newTestAnalyzer()

	one := a.ScoreContext("crypto giveaway")
	two := a.ScoreContext("crypto giveaway and casino bonus")
	assert.Equal(t, 3, one)
	assert.Equal(t, 6, two)
}

func TestScoreContext_NoCap(t *testing.T) {
	a := newTestAnalyzer()

	text := "urgent account suspended confirm your password refund you have won " +
		"paypal support viagra weight loss make money fast crypto giveaway casino bonus"
	assert.GreaterOrEqual(t, a.ScoreContext(text), 15)
}

func TestScoreContext_Deterministic(t *testing.T) {
	a := newTestAnalyzer()
	text := "urgent: verify your account, claim your prize"
	first := a.ScoreContext(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, a.ScoreContext(text))
	}
}

func TestContextSeverity(t *testing.T) {
	assert.Equal(t, model.SeverityLow, ContextSeverity(0))
	assert.Equal(t, model.SeverityLow, ContextSeverity(2))
	assert.Equal(t, model.SeverityMedium, ContextSeverity(3))
	assert.Equal(t, model.SeverityMedium, ContextSeverity(4))
	assert.Equal(t, model.SeverityHigh, ContextSeverity(5))
	assert.Equal(t, model.SeverityHigh, ContextSeverity(12))
}
