package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkarpov/linkguard/internal/advisor"
	"github.com/pkarpov/linkguard/internal/analyzer"
	"github.com/pkarpov/linkguard/internal/model"
)

var (
	checkContext string
	checkJSON    bool
	checkExplain bool
	checkTimeout time.Duration
	checkEmail   string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <url>",
	Short: "Analyze a single URL for phishing indicators",
	Long: `Check runs the full analysis pipeline against one URL:
- whitelist / blacklist / known-phishing lookups
- structural detectors (typosquatting, homographs, impersonation, ...)
- feature scoring and pattern signatures
- optional surrounding-text analysis via --context

Example:
  linkguard check https://gooogle.com/login
  linkguard check https://bit.ly/3xyz --context "URGENT: verify your account"
  linkguard check https://example.com --json`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkContext, "context", "", "surrounding text the link appeared in")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "emit the result as JSON")
	checkCmd.Flags().BoolVar(&checkExplain, "explain", false, "ask the configured LLM to explain the verdict")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 30*time.Second, "overall analysis timeout")
	checkCmd.Flags().StringVar(&checkEmail, "email-json", "", "path to a JSON file with email metadata to score alongside the URL")
}

func runCheck(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	result := a.analyzer.AnalyzeLink(ctx, url, checkContext)

	var email *model.EmailRisk
	if checkEmail != "" {
		email, err = scoreEmailFile(a.cfg, checkEmail)
		if err != nil {
			return err
		}
	}

	if checkJSON {
		out := struct {
			Result model.AnalysisResult `json:"result"`
			Email  *model.EmailRisk     `json:"email,omitempty"`
		}{Result: result, Email: email}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Print(analyzer.FormatAnalysis(result, true))
	if email != nil {
		fmt.Printf("\nEmail metadata risk: %s (score %d)\n", email.Band, email.RiskScore)
		for _, f := range email.Findings {
			fmt.Printf("   [%s] %s: %s\n", f.Severity, f.Check, f.Detail)
		}
	}

	if checkExplain {
		if err := explainVerdict(ctx, a.cfg, result); err != nil {
			return err
		}
	}
	return nil
}

func explainVerdict(ctx context.Context, cfg *model.Config, result model.AnalysisResult) error {
	adv, err := advisor.New(cfg.Advisor)
	if err != nil {
		return err
	}
	text, err := adv.Explain(ctx, result)
	if errors.Is(err, advisor.ErrDisabled) {
		fmt.Fprintln(os.Stderr, "advisor is disabled; enable it in the config and set OPENAI_API_KEY")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("\n%s\n", text)
	return nil
}

func scoreEmailFile(cfg *model.Config, path string) (*model.EmailRisk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read email metadata: %w", err)
	}
	var md model.EmailMetadata
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("parse email metadata: %w", err)
	}
	risk := newTextAnalyzer(cfg).AnalyzeEmail(md)
	return &risk, nil
}
