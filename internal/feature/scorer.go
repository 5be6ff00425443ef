package feature

import "github.com/pkarpov/linkguard/internal/model"

// Classification bands the composite score.
type Classification string

const (
	ClassPhishing              Classification = "phishing"
	ClassSuspicious            Classification = "suspicious"
	ClassPotentiallySuspicious Classification = "potentially_suspicious"
	ClassLegitimate            Classification = "legitimate"
)

// Verdict is a classification with its confidence.
type Verdict struct {
	Class      Classification `json:"class"`
	Confidence float64        `json:"confidence"`
	Score      int            `json:"score"`
}

// commonTLDs are the TLDs that carry no weight penalty.
var commonTLDs = map[string]bool{
	"com": true,
	"org": true,
	"net": true,
	"edu": true,
	"gov": true,
}

// Scorer applies the fixed weight table to feature vectors.
type Scorer struct {
	riskyTLDs map[string]bool
}

// NewScorer creates a scorer over the given reference data.
func NewScorer(ref *model.ReferenceData) *Scorer {
	risky := make(map[string]bool, len(ref.RiskyTLDs))
	for _, tld := range ref.RiskyTLDs {
		risky[tld] = true
	}
	return &Scorer{riskyTLDs: risky}
}

// Score produces the weighted composite in [0,100]. Each row of the weight
// table is independent and additive; the longer length and entropy bands
// supersede the shorter ones rather than stacking.
func (s *Scorer) Score(v *Vector) int {
	if v == nil {
		return 0
	}

	score := 0

	switch {
	case v.URLLength > 100:
		score += 3
	case v.URLLength > 75:
		score += 2
	}
	if v.DomainLength > 30 {
		score += 2
	}
	if v.DigitCount > 8 {
		score += 2
	}
	if v.SpecialCharCount > 10 {
		score += 2
	}
	if float64(v.UppercaseCount) > 0.5*float64(v.DomainLength) {
		score++
	}
	if v.SubdomainCount > 3 {
		score += 3
	}
	if v.HasDash {
		score++
	}
	if v.HasUnderscore {
		score += 2
	}
	if v.HasIP {
		score += 5
	}
	if v.HasPort {
		score += 2
	}
	if v.HasAtSymbol {
		score += 4
	}
	if !v.IsHTTPS {
		score += 3
	}
	if !commonTLDs[v.TLD] {
		score += 2
	}
	if s.riskyTLDs[v.TLD] {
		score += 3
	}
	switch {
	case v.Entropy > 5:
		score += 3
	case v.Entropy > 4.5:
		score += 2
	}
	score += 2 * v.SuspiciousWords

	if score > 100 {
		score = 100
	}
	return score
}

// Classify bands the composite score into a verdict with confidence.
func Classify(score int) Verdict {
	switch {
	case score >= 15:
		confidence := float64(score) / 20
		if confidence > 1 {
			confidence = 1
		}
		return Verdict{Class: ClassPhishing, Confidence: confidence, Score: score}
	case score >= 8:
		return Verdict{Class: ClassSuspicious, Confidence: float64(score) / 15, Score: score}
	case score >= 4:
		return Verdict{Class: ClassPotentiallySuspicious, Confidence: float64(score) / 10, Score: score}
	default:
		return Verdict{Class: ClassLegitimate, Confidence: 1 - float64(score)/10, Score: score}
	}
}
