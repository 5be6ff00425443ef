package advisor

import (
	"context"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkarpov/linkguard/internal/model"
)

type fakeChat struct {
	req   openai.ChatCompletionRequest
	reply string
}

func (f *fakeChat) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.req = req
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.reply}},
		},
	}, nil
}

func TestNewDisabled(t *testing.T) {
	a, err := New(model.AdvisorConfig{Enabled: false})
	require.NoError(t, err)
	assert.False(t, a.Enabled())

	_, err = a.Explain(context.Background(), model.AnalysisResult{})
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestNewEnabledRequiresKey(t *testing.T) {
	_, err := New(model.AdvisorConfig{Enabled: true})
	assert.Error(t, err)
}

func TestExplainSendsFindings(t *testing.T) {
	chat := &fakeChat{reply: "  This link imitates a known brand.  "}
	a := &Advisor{
		client: chat,
		cfg:    model.AdvisorConfig{Enabled: true, Model: "gpt-4o-mini", MaxTokens: 100},
	}

	result := model.AnalysisResult{
		Domain:      "gooogle.com",
		ThreatLevel: model.ThreatDangerous,
		Issues: []model.Issue{
			{Type: model.IssueTyposquatting, Severity: model.SeverityHigh, Message: `hostname imitates "google"`},
		},
	}

	out, err := a.Explain(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, "This link imitates a known brand.", out)

	require.Len(t, chat.req.Messages, 2)
	assert.Contains(t, chat.req.Messages[1].Content, "Verdict: dangerous")
	assert.Contains(t, chat.req.Messages[1].Content, "typosquatting")
	assert.Equal(t, 100, chat.req.MaxTokens)
	assert.Equal(t, "gpt-4o-mini", chat.req.Model)
}

func TestBuildPromptNoFindings(t *testing.T) {
	p := BuildPrompt(model.AnalysisResult{ThreatLevel: model.ThreatSafe, Domain: "example.com"})
	assert.Contains(t, p, "Findings: none")
}
