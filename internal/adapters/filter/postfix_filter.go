package filter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-smtp"
	"github.com/mikey/spam-insight/internal/config"
	"github.com/mikey/spam-insight/internal/core"
	"go.uber.org/zap"
)

// analysisTimeout bounds the analysis of one message received over SMTP
const analysisTimeout = 10 * time.Second

// EmailAnalyzer analyzes a parsed email
type EmailAnalyzer interface {
	AnalyzeEmail(ctx context.Context, email *core.Email) (*core.AnalysisResult, error)
}

// PostfixFilter implements a Postfix after-queue content filter: it receives
// mail over SMTP, adds X-Spam-* headers and reinjects it into Postfix
type PostfixFilter struct {
	service       EmailAnalyzer
	logger        *zap.Logger
	listenAddr    string
	server        *smtp.Server
	blockSpam     bool
	headers       config.HeadersConfig
	postfixAddr   string
	postfixPort   int
	postfixOn     bool
	subjectPrefix string
	modifySubject bool

	// forward delivers the filtered message; it defaults to sendToPostfix
	forward func(sender string, recipients []string, data []byte) error
}

// NewPostfixFilter creates a new Postfix content filter
func NewPostfixFilter(service EmailAnalyzer, logger *zap.Logger, cfg config.ServerConfig) *PostfixFilter {
	subjectPrefix := cfg.SubjectPrefix
	if subjectPrefix == "" && cfg.ModifySubject {
		subjectPrefix = "[**SPAM**] "
	}

	f := &PostfixFilter{
		service:       service,
		logger:        logger,
		listenAddr:    cfg.ListenAddress,
		blockSpam:     cfg.BlockSpam,
		headers:       cfg.Headers,
		postfixAddr:   cfg.PostfixAddr,
		postfixPort:   cfg.PostfixPort,
		postfixOn:     cfg.PostfixOn,
		subjectPrefix: subjectPrefix,
		modifySubject: cfg.ModifySubject,
	}
	f.forward = f.sendToPostfix
	return f
}

// Start starts the SMTP listener in the background
func (f *PostfixFilter) Start() error {
	f.server = smtp.NewServer(&smtpBackend{filter: f})
	f.server.Addr = f.listenAddr
	f.server.Domain = "localhost"
	f.server.ReadTimeout = 30 * time.Second
	f.server.WriteTimeout = 30 * time.Second
	f.server.MaxMessageBytes = 30 * 1024 * 1024
	f.server.MaxRecipients = 50
	f.server.AllowInsecureAuth = true

	f.logger.Info("Postfix filter starting", zap.String("address", f.listenAddr))

	go func() {
		if err := f.server.ListenAndServe(); err != nil && err != smtp.ErrServerClosed {
			f.logger.Error("SMTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop stops the SMTP listener
func (f *PostfixFilter) Stop() error {
	if f.server != nil {
		return f.server.Close()
	}
	return nil
}

// ProcessEmail analyzes an email without delivering it
func (f *PostfixFilter) ProcessEmail(ctx context.Context, email *core.Email) (*core.AnalysisResult, error) {
	return f.service.AnalyzeEmail(ctx, email)
}

// filterMessage analyzes raw and returns the message to deliver. A nil
// message with a nil error means the message is rejected as spam
func (f *PostfixFilter) filterMessage(ctx context.Context, sender string, recipients []string, raw []byte) ([]byte, *core.AnalysisResult, error) {
	email, err := ParseEmail(raw)
	if err != nil {
		return nil, nil, err
	}
	email.From = sender
	email.To = recipients

	result, analysisErr := f.service.AnalyzeEmail(ctx, email)
	if analysisErr != nil {
		f.logger.Error("Failed to analyze email",
			zap.Error(analysisErr),
			zap.String("sender", sender),
			zap.String("sender_domain", senderDomain(sender)))
		// Deliver unmarked rather than lose mail
		return f.rewrite(raw, nil, analysisErr), nil, nil
	}

	if result.Prediction.IsSpam() && f.blockSpam {
		return nil, result, nil
	}
	return f.rewrite(raw, result, nil), result, nil
}

// rewrite prepends the spam headers to raw, replacing any copies already
// present, and prefixes the subject of spam when configured
func (f *PostfixFilter) rewrite(raw []byte, result *core.AnalysisResult, analysisErr error) []byte {
	header, body := splitMessage(raw)
	isSpam := result != nil && result.Prediction.IsSpam()
	retitle := isSpam && f.modifySubject && f.subjectPrefix != ""

	var subject string
	if retitle {
		if email, err := ParseEmail(raw); err == nil {
			subject = email.Subject
		}
		if strings.HasPrefix(subject, f.subjectPrefix) {
			retitle = false
		}
	}

	ours := map[string]bool{
		strings.ToLower(f.headers.Spam):       true,
		strings.ToLower(f.headers.Score):      true,
		strings.ToLower(f.headers.Reason):     true,
		strings.ToLower(f.headers.Indicators): true,
		"x-spam-analysis-error":               true,
	}
	header = dropHeaderFields(header, func(name string) bool {
		name = strings.ToLower(name)
		return ours[name] || (retitle && name == "subject")
	})

	var out bytes.Buffer
	if analysisErr != nil {
		fmt.Fprintf(&out, "%s: %t\r\n", f.headers.Spam, false)
		fmt.Fprintf(&out, "X-Spam-Analysis-Error: %s\r\n", headerValue(analysisErr.Error()))
	} else {
		fmt.Fprintf(&out, "%s: %t\r\n", f.headers.Spam, isSpam)
		fmt.Fprintf(&out, "%s: %.4f\r\n", f.headers.Score, result.Prediction.SpamProbability())
		fmt.Fprintf(&out, "%s: spam=%d ham=%d\r\n", f.headers.Indicators,
			result.Report.SpamIndicators, result.Report.HamIndicators)
		fmt.Fprintf(&out, "%s: %s\r\n", f.headers.Reason, headerValue(reasonText(result)))
	}
	if retitle {
		fmt.Fprintf(&out, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", f.subjectPrefix+subject))
	}
	out.Write(header)
	out.WriteString("\r\n")
	out.Write(body)

	return out.Bytes()
}

func reasonText(result *core.AnalysisResult) string {
	if len(result.Explanation.Reasons) == 0 {
		return result.Explanation.Verdict
	}
	return strings.Join(result.Explanation.Reasons, "; ")
}

// headerValue flattens v onto one line and encodes it when it is not ASCII
func headerValue(v string) string {
	v = strings.Join(strings.Fields(v), " ")
	return mime.QEncoding.Encode("utf-8", v)
}

func senderDomain(sender string) string {
	if _, domain, ok := strings.Cut(sender, "@"); ok && domain != "" {
		return domain
	}
	return "unknown"
}

// sendToPostfix reinjects the filtered message into Postfix
func (f *PostfixFilter) sendToPostfix(sender string, recipients []string, data []byte) error {
	postfixAddr := net.JoinHostPort(f.postfixAddr, fmt.Sprint(f.postfixPort))

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	conn, err := net.DialTimeout("tcp", postfixAddr, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to Postfix: %w", err)
	}
	if err := conn.SetDeadline(time.Now().Add(30 * time.Second)); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	if err := c.Hello(hostname); err != nil {
		return fmt.Errorf("EHLO failed: %w", err)
	}
	if err := c.Mail(sender, nil); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}

	recipientOK := false
	for _, recipient := range recipients {
		if err := c.Rcpt(recipient, nil); err != nil {
			f.logger.Warn("RCPT TO failed for recipient",
				zap.String("recipient", recipient),
				zap.Error(err))
			continue
		}
		recipientOK = true
	}
	if !recipientOK {
		return fmt.Errorf("all recipients were rejected")
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA command failed: %w", err)
	}
	if _, err := wc.Write(data); err != nil {
		wc.Close()
		return fmt.Errorf("failed to send email data: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	if err := c.Quit(); err != nil {
		// Already delivered
		f.logger.Warn("QUIT command failed", zap.Error(err))
	}
	return nil
}

// smtpBackend implements the go-smtp Backend interface
type smtpBackend struct {
	filter *PostfixFilter
}

// NewSession creates a new SMTP session
func (b *smtpBackend) NewSession(_ *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{filter: b.filter}, nil
}

// smtpSession implements the go-smtp Session interface
type smtpSession struct {
	filter     *PostfixFilter
	sender     string
	recipients []string
}

func (s *smtpSession) Reset() {
	s.sender = ""
	s.recipients = nil
}

func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	return nil
}

// Data filters the message and reinjects it
func (s *smtpSession) Data(r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		s.filter.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), analysisTimeout)
	defer cancel()

	filtered, result, err := s.filter.filterMessage(ctx, s.sender, s.recipients, raw)
	if err != nil {
		s.filter.logger.Error("Failed to parse email message", zap.Error(err))
		return err
	}

	if filtered == nil {
		s.filter.logger.Info("Rejecting spam email",
			zap.String("from", s.sender),
			zap.String("sender_domain", senderDomain(s.sender)),
			zap.Float64("spam_probability", result.Prediction.SpamProbability()),
			zap.Int("spam_indicators", result.Report.SpamIndicators),
			zap.String("model", result.Prediction.ModelUsed))
		return &smtp.SMTPError{
			Code:         550,
			EnhancedCode: smtp.EnhancedCode{5, 7, 1},
			Message:      fmt.Sprintf("Rejected as spam (score: %.2f)", result.Prediction.SpamProbability()),
		}
	}

	if !s.filter.postfixOn {
		s.filter.logger.Warn("Postfix forwarding disabled, this is likely a misconfiguration")
	} else if err := s.filter.forward(s.sender, s.recipients, filtered); err != nil {
		s.filter.logger.Error("Failed to send email back to Postfix",
			zap.Error(err),
			zap.String("sender", s.sender))
		return err
	}

	if result != nil {
		s.filter.logger.Info("Processed email",
			zap.String("from", s.sender),
			zap.String("sender_domain", senderDomain(s.sender)),
			zap.String("label", result.Prediction.Label),
			zap.Float64("spam_probability", result.Prediction.SpamProbability()),
			zap.Bool("cached", result.Cached),
			zap.String("model", result.Prediction.ModelUsed))
	}
	return nil
}

func (s *smtpSession) Logout() error {
	return nil
}
