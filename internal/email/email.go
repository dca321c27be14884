package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/mtcnamibia/careers/internal/model"
	"github.com/mtcnamibia/careers/internal/store"
)

// sesAPI is an interface for testability.
type sesAPI interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput, opts ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Config holds SES configuration. Leave AccessKey/SecretKey empty to run
// in simulated mode: messages are logged, not sent.
type Config struct {
	Region    string
	AccessKey string
	SecretKey string
	FromEmail string
	BaseURL   string
}

// Service sends the site's transactional email and records every attempt
// in the email log, including simulated and failed sends. Send failures
// are never retried automatically.
type Service struct {
	cfg    Config
	client sesAPI
	logs   *store.EmailLogStore
	logger *slog.Logger
}

func NewService(cfg Config, logs *store.EmailLogStore, logger *slog.Logger) *Service {
	s := &Service{cfg: cfg, logs: logs, logger: logger}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		s.client = ses.New(ses.Options{
			Region:      cfg.Region,
			Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		})
	}
	return s
}

// Configured reports whether real sending is enabled.
func (s *Service) Configured() bool {
	return s.client != nil
}

// SendMagicLink emails a login link. isHR selects the portal wording.
func (s *Service) SendMagicLink(ctx context.Context, to, token string, isHR bool) error {
	portal := "Applicant Portal"
	if isHR {
		portal = "HR Admin Portal"
	}
	link := fmt.Sprintf("%s/api/auth/verify?token=%s", s.cfg.BaseURL, token)
	subject := fmt.Sprintf("Login to MTC Careers %s", portal)

	text := fmt.Sprintf(`Login to MTC Careers %s

Click the link below to securely log in to your account. This link will expire in 15 minutes.

%s

If you didn't request this login link, you can safely ignore this email.
%s`, portal, link, footerText())

	html := wrapHTML(fmt.Sprintf(`<h2>Login to %s</h2>
<p>Click the button below to securely log in to your account. This link will expire in 15 minutes.</p>
<p style="text-align: center;"><a href="%s" class="button">Login to MTC Careers</a></p>
<p>If the button doesn't work, copy and paste this link into your browser:</p>
<p style="word-break: break-all; color: #666;">%s</p>
<p>If you didn't request this login link, you can safely ignore this email.</p>`, portal, link, link))

	return s.send(ctx, nil, to, model.EmailMagicLink, subject, html, text)
}

// SendApplicationReceived confirms a submitted application.
func (s *Service) SendApplicationReceived(ctx context.Context, applicationID int64, to, applicantName, jobTitle string) error {
	subject := fmt.Sprintf("Application Received: %s at MTC", jobTitle)

	text := fmt.Sprintf(`Application Received

Dear %s,

Thank you for applying for the %s position at MTC. We have received your application and our team will review it shortly.

You can track the status of your application by visiting: %s/portal

We appreciate your interest in joining the MTC team!
%s`, applicantName, jobTitle, s.cfg.BaseURL, footerText())

	html := wrapHTML(fmt.Sprintf(`<h2>Application Received</h2>
<p>Dear %s,</p>
<p>Thank you for applying for the <strong>%s</strong> position at MTC. We have received your application and our team will review it shortly.</p>
<p>You can track the status of your application by logging into your applicant portal.</p>
<p style="text-align: center;"><a href="%s/portal" class="button">View Application Status</a></p>
<p>We appreciate your interest in joining the MTC team!</p>`, applicantName, jobTitle, s.cfg.BaseURL))

	return s.send(ctx, &applicationID, to, model.EmailApplicationReceived, subject, html, text)
}

// statusCopy maps an application status to its notification wording.
type statusCopy struct {
	title     string
	message   string
	emailType string
}

var statusCopies = map[string]statusCopy{
	model.ApplicationReviewed: {
		title:     "Application Under Review",
		message:   "Your application is currently being reviewed by our hiring team. We will be in touch soon with an update.",
		emailType: model.EmailApplicationReviewed,
	},
	model.ApplicationShortlisted: {
		title:     "Congratulations! You've Been Shortlisted",
		message:   "We are pleased to inform you that you have been shortlisted for the next stage of our recruitment process. A member of our team will contact you shortly to discuss the next steps.",
		emailType: model.EmailShortlisted,
	},
	model.ApplicationRejected: {
		title:     "Application Update",
		message:   "After careful consideration, we regret to inform you that we will not be moving forward with your application at this time. We encourage you to apply for other positions that match your skills and experience.",
		emailType: model.EmailRejected,
	},
	model.ApplicationHired: {
		title:     "Welcome to MTC!",
		message:   "Congratulations! We are thrilled to offer you the position. Our HR team will be in contact shortly with the details of your offer and next steps.",
		emailType: model.EmailHired,
	},
}

// SendStatusUpdate notifies an applicant of a status change. Statuses
// without notification copy (PENDING) are skipped silently.
func (s *Service) SendStatusUpdate(ctx context.Context, applicationID int64, to, applicantName, jobTitle, status string) error {
	sc, ok := statusCopies[status]
	if !ok {
		return nil
	}
	subject := fmt.Sprintf("%s - %s at MTC", sc.title, jobTitle)

	text := fmt.Sprintf(`%s

Dear %s,

Regarding your application for: %s

Status: %s

%s

View your application details at: %s/portal

Thank you for your interest in MTC.
%s`, sc.title, applicantName, jobTitle, status, sc.message, s.cfg.BaseURL, footerText())

	html := wrapHTML(fmt.Sprintf(`<h2>%s</h2>
<p>Dear %s,</p>
<p>Regarding your application for: <strong>%s</strong></p>
<p>%s</p>
<p style="text-align: center;"><a href="%s/portal" class="button">View Application Details</a></p>
<p>Thank you for your interest in MTC.</p>`, sc.title, applicantName, jobTitle, sc.message, s.cfg.BaseURL))

	return s.send(ctx, &applicationID, to, sc.emailType, subject, html, text)
}

func (s *Service) send(ctx context.Context, applicationID *int64, to, emailType, subject, htmlBody, textBody string) error {
	if !s.Configured() {
		s.logger.Info("email sending not configured, simulating",
			"to", to, "type", emailType, "subject", subject)
		s.record(applicationID, to, emailType, subject, model.EmailStatusSimulated)
		return nil
	}

	_, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(s.cfg.FromEmail),
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(htmlBody), Charset: aws.String("UTF-8")},
				Text: &types.Content{Data: aws.String(textBody), Charset: aws.String("UTF-8")},
			},
		},
	})
	if err != nil {
		s.record(applicationID, to, emailType, subject, model.EmailStatusFailed)
		return fmt.Errorf("send email: %w", err)
	}

	s.record(applicationID, to, emailType, subject, model.EmailStatusSent)
	return nil
}

// record writes the delivery log entry. A logging failure must not turn
// a delivered email into an error.
func (s *Service) record(applicationID *int64, to, emailType, subject, status string) {
	if _, err := s.logs.Create(applicationID, to, emailType, subject, status); err != nil {
		s.logger.Error("record email log", "error", err, "to", to, "type", emailType)
	}
}

func footerText() string {
	return fmt.Sprintf("\n© %d Mobile Telecommunications Company (MTC) Namibia. All rights reserved.", time.Now().Year())
}

func wrapHTML(content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; }
.header { background: #E30613; color: white; padding: 20px; text-align: center; }
.content { padding: 30px; background: #f9f9f9; }
.button { display: inline-block; background: #E30613; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; margin: 20px 0; }
.footer { padding: 20px; text-align: center; font-size: 12px; color: #666; }
</style>
</head>
<body>
<div class="container">
<div class="header"><h1>MTC Careers</h1></div>
<div class="content">%s</div>
<div class="footer"><p>&copy; %d Mobile Telecommunications Company (MTC) Namibia. All rights reserved.</p></div>
</div>
</body>
</html>`, content, time.Now().Year())
}
