package filter

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mikey/spam-insight/internal/annotate"
	"github.com/mikey/spam-insight/internal/core"
	"go.uber.org/zap"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	spamStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626")).Bold(true)
	hamStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
)

// CliFilter analyzes one email and prints a report
type CliFilter struct {
	service  EmailAnalyzer
	logger   *zap.Logger
	out      io.Writer
	renderer annotate.Renderer
	verbose  bool
}

// NewCliFilter creates a new CLI filter writing its report to out
func NewCliFilter(service EmailAnalyzer, logger *zap.Logger, out io.Writer, renderer annotate.Renderer, verbose bool) *CliFilter {
	if renderer == nil {
		renderer = annotate.NewTerminalRenderer()
	}
	return &CliFilter{
		service:  service,
		logger:   logger,
		out:      out,
		renderer: renderer,
		verbose:  verbose,
	}
}

// ProcessEmail analyzes an email and prints the report
func (f *CliFilter) ProcessEmail(ctx context.Context, email *core.Email) (*core.AnalysisResult, error) {
	f.logger.Debug("Processing email", zap.String("sender", email.From))

	start := time.Now()
	result, err := f.service.AnalyzeEmail(ctx, email)
	if err != nil {
		f.logger.Error("Failed to analyze email", zap.Error(err))
		return nil, err
	}

	f.WriteReport(email, result, time.Since(start))
	return result, nil
}

// WriteReport prints the summary, annotated message and verdict of result
func (f *CliFilter) WriteReport(email *core.Email, result *core.AnalysisResult, duration time.Duration) {
	w := f.out

	if email.From != "" || len(email.To) > 0 || email.Subject != "" {
		heading(w, "Email Summary")
		fmt.Fprintf(w, "From: %s\n", email.From)
		fmt.Fprintf(w, "To: %s\n", strings.Join(email.To, ", "))
		fmt.Fprintf(w, "Subject: %s\n", email.Subject)
		fmt.Fprintf(w, "Body length: %d bytes\n", len(email.Body))
	}

	heading(w, "Annotated Message")
	fmt.Fprintln(w, f.renderer.Render(result.Annotation))
	if result.Truncated {
		fmt.Fprintln(w, mutedStyle.Render("(input was truncated before analysis)"))
	}

	ex := result.Explanation
	heading(w, "Results")
	fmt.Fprintf(w, "Verdict: %s\n", verdict(result))
	fmt.Fprintf(w, "Confidence: %.1f%%\n", ex.Confidence)
	fmt.Fprintf(w, "Spam probability: %.4f\n", result.Prediction.SpamProbability())
	fmt.Fprintf(w, "Indicators: %d spam, %d ham\n", ex.SpamIndicators, ex.HamIndicators)
	if !ex.Agreement {
		fmt.Fprintln(w, mutedStyle.Render("Indicators disagree with the verdict"))
	}
	fmt.Fprintf(w, "Spam words: %s\n", ex.SpamWords)
	fmt.Fprintf(w, "Ham words: %s\n", ex.HamWords)
	if len(ex.Reasons) > 0 {
		fmt.Fprintln(w, "Reasons:")
		for _, r := range ex.Reasons {
			fmt.Fprintf(w, "  - %s\n", r)
		}
	}
	fmt.Fprintf(w, "Model used: %s\n", result.Prediction.ModelUsed)
	if result.Cached {
		fmt.Fprintln(w, mutedStyle.Render("(prediction served from cache)"))
	}

	if f.verbose {
		ft := result.Features
		heading(w, "Features")
		fmt.Fprintf(w, "Words: %d (%d unique), characters: %d\n", ft.WordCount, ft.UniqueWordCount, ft.CharCount)
		fmt.Fprintf(w, "Keyword frequency: spam %d, ham %d\n", ft.SpamKeywordFrequency, ft.HamKeywordFrequency)
		fmt.Fprintf(w, "Capital letter ratio: %.4f, all-caps words: %d\n", ft.CapitalLetterRatio, ft.AllCapsWordCount)
		fmt.Fprintf(w, "Punctuation: %d '!', %d '?', %d special\n", ft.ExclamationCount, ft.QuestionMarkCount, ft.SpecialCharCount)
		fmt.Fprintf(w, "Links: %d (%d shortened, %d IP, %d https, %d http)\n",
			ft.URLCount, ft.URLShortenerCount, ft.SuspiciousIPURLCount, ft.HTTPSLinkCount, ft.HTTPLinkCount)
		fmt.Fprintf(w, "HTML: %t, hidden text: %t\n", ft.HTMLContentPresence, ft.HiddenOrColoredText)
		fmt.Fprintf(w, "Entropy: %.4f, repeated word ratio: %.4f\n", ft.TextEntropy, ft.RepeatedWordRatio)
		fmt.Fprintf(w, "Imperative verbs: %d, urgency words: %d\n", ft.ImperativeVerbCount, ft.UrgencyWordCount)
		fmt.Fprintf(w, "Normalized: %s\n", result.Normalized.Text)
	}

	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("Processing time: %v", duration.Round(time.Millisecond))))
}

func heading(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", headingStyle.Render("=== "+title+" ==="))
}

func verdict(result *core.AnalysisResult) string {
	if result.Prediction.IsSpam() {
		return spamStyle.Render(result.Explanation.Verdict)
	}
	return hamStyle.Render(result.Explanation.Verdict)
}

// Start is a no-op for the CLI filter
func (f *CliFilter) Start() error {
	return nil
}

// Stop is a no-op for the CLI filter
func (f *CliFilter) Stop() error {
	return nil
}
