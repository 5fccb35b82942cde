package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strings"
	"time"

	"showcase/api/config"
	"showcase/api/logger"
	"showcase/api/models"
)

// EmailNotifier sends contact notifications over SMTP.
type EmailNotifier struct {
	cfg  config.EmailConfig
	log  *logger.Logger
	send func(ctx context.Context, to []string, msg []byte) error
}

func NewEmailNotifier(cfg config.EmailConfig, log *logger.Logger) *EmailNotifier {
	n := &EmailNotifier{cfg: cfg, log: log.With("component", "email")}
	n.send = n.sendSMTP
	return n
}

// NotifyContact is a no-op when notifications are disabled or no recipients
// are configured.
func (n *EmailNotifier) NotifyContact(ctx context.Context, submission models.ContactSubmission) error {
	if !n.cfg.Enabled {
		n.log.Debug("email notifications disabled, skipping", "submission_id", submission.ID)
		return nil
	}
	if len(n.cfg.NotifyTo) == 0 {
		n.log.Warn("no notification recipients configured, skipping", "submission_id", submission.ID)
		return nil
	}

	msg, err := n.buildMessage(submission)
	if err != nil {
		return err
	}
	if err := n.send(ctx, n.cfg.NotifyTo, msg); err != nil {
		return err
	}
	n.log.Info("contact notification sent", "submission_id", submission.ID, "recipients", len(n.cfg.NotifyTo))
	return nil
}

type contactEmailView struct {
	models.ContactSubmission
	SubmittedAt string
}

func orDefault(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}

const contactTextTemplate = `New Contact Form Submission
============================

Name: %s
Email: %s
Phone: %s
Company: %s
Source: %s

Message:
%s

---
Submitted at: %s
IP Address: %s
User Agent: %s`

var contactHTMLTemplate = template.Must(template.New("contact").Funcs(template.FuncMap{
	"orDefault": orDefault,
}).Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .header { background: #1a1a1a; color: white; padding: 20px; text-align: center; }
    .field { margin-bottom: 15px; }
    .field-label { font-weight: bold; color: #666; }
    .footer { padding: 15px; text-align: center; color: #666; font-size: 12px; }
  </style>
</head>
<body>
  <div class="header"><h2>New Contact Form Submission</h2></div>
  <div class="field"><div class="field-label">Name</div><div>{{.Name}}</div></div>
  <div class="field"><div class="field-label">Email</div><div><a href="mailto:{{.Email}}">{{.Email}}</a></div></div>
  <div class="field"><div class="field-label">Phone</div><div>{{orDefault .Phone "Not provided"}}</div></div>
  <div class="field"><div class="field-label">Company</div><div>{{orDefault .Company "Not provided"}}</div></div>
  <div class="field"><div class="field-label">Message</div><div style="white-space: pre-wrap;">{{.Message}}</div></div>
  <div class="footer">Submitted at {{.SubmittedAt}} from {{orDefault .IPAddress "Unknown"}}</div>
</body>
</html>`))

func (n *EmailNotifier) buildMessage(sub models.ContactSubmission) ([]byte, error) {
	submittedAt := sub.CreatedAt.UTC().Format(time.RFC3339)
	text := fmt.Sprintf(contactTextTemplate,
		sub.Name, sub.Email, orDefault(sub.Phone, "Not provided"), orDefault(sub.Company, "Not provided"),
		orDefault(sub.Source, "Website"), sub.Message, submittedAt,
		orDefault(sub.IPAddress, "Unknown"), orDefault(sub.UserAgent, "Unknown"))

	var html bytes.Buffer
	if err := contactHTMLTemplate.Execute(&html, contactEmailView{ContactSubmission: sub, SubmittedAt: submittedAt}); err != nil {
		return nil, fmt.Errorf("rendering contact email: %w", err)
	}

	subject := "New Contact Form Submission from " + headerSafe(sub.Name)
	boundary := fmt.Sprintf("boundary_%d", time.Now().UnixNano())

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", n.cfg.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(n.cfg.NotifyTo, ", ")))
	msg.WriteString(fmt.Sprintf("Reply-To: %s\r\n", headerSafe(sub.Email)))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary))

	msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	msg.WriteString(text)
	msg.WriteString("\r\n")

	msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.Write(html.Bytes())
	msg.WriteString("\r\n")
	msg.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	return []byte(msg.String()), nil
}

// headerSafe strips CR and LF so user input cannot inject headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

func (n *EmailNotifier) sendSMTP(ctx context.Context, to []string, msg []byte) error {
	addr := fmt.Sprintf("%s:%d", n.cfg.SMTPHost, n.cfg.SMTPPort)

	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer func() { _ = conn.Close() }()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, n.cfg.SMTPHost)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer func() { _ = client.Close() }()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: n.cfg.SMTPHost, MinVersion: tls.VersionTLS12}); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}
	if n.cfg.SMTPUser != "" && n.cfg.SMTPPass != "" {
		auth := smtp.PlainAuth("", n.cfg.SMTPUser, n.cfg.SMTPPass, n.cfg.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err := client.Mail(n.cfg.From); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to add recipient %s: %w", rcpt, err)
		}
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return client.Quit()
}
