// Package advisor produces a plain-language explanation of a finished
// verdict using OpenAI's chat API. It runs strictly after aggregation and
// its output is advisory text only; it never changes a threat level or a
// score.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/pkarpov/linkguard/internal/model"
)

// ErrDisabled is returned when the advisor is not enabled in configuration.
var ErrDisabled = errors.New("advisor disabled")

// chatClient is the slice of the OpenAI client the advisor uses.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Advisor explains analysis results in plain language.
type Advisor struct {
	client chatClient
	cfg    model.AdvisorConfig
}

// New creates an advisor. A disabled configuration is valid; Explain then
// returns ErrDisabled without touching the network.
func New(cfg model.AdvisorConfig) (*Advisor, error) {
	if !cfg.Enabled {
		return &Advisor{cfg: cfg}, nil
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("advisor enabled but no API key configured")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Advisor{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}, nil
}

// Enabled reports whether Explain will call the API.
func (a *Advisor) Enabled() bool { return a.cfg.Enabled }

// Explain asks the model to describe why the verdict was reached, aimed at
// a non-technical reader.
func (a *Advisor) Explain(ctx context.Context, result model.AnalysisResult) (string, error) {
	if !a.cfg.Enabled || a.client == nil {
		return "", ErrDisabled
	}

	chatModel := a.cfg.Model
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}
	maxTokens := a.cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 300
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You explain link safety verdicts to non-technical users. " +
					"Describe only the findings you are given. Do not speculate, " +
					"do not change the verdict, and never include the URL verbatim.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(result),
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("advisor request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("advisor request: empty response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// BuildPrompt renders the verdict and findings as the user message.
func BuildPrompt(result model.AnalysisResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Verdict: %s\n", result.ThreatLevel)
	fmt.Fprintf(&b, "Domain: %s\n", result.Domain)
	if len(result.Issues) == 0 {
		b.WriteString("Findings: none\n")
	} else {
		b.WriteString("Findings:\n")
		for _, is := range result.Issues {
			fmt.Fprintf(&b, "- [%s] %s: %s\n", is.Severity, is.Type, is.Message)
		}
	}
	fmt.Fprintf(&b, "Scores: base=%d ml=%d pattern=%d context=%d\n",
		result.Scores.Base, result.Scores.ML, result.Scores.Pattern, result.Scores.Context)
	b.WriteString("Explain in at most three sentences why this verdict was reached.")
	return b.String()
}
