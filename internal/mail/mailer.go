package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Template names accepted by Send.
const (
	TemplatePasswordReset = "password-reset.html"
	TemplateRegistered    = "registered.html"
)

// Mailer sends a templated mail to a single recipient. Implementations must
// be safe for concurrent use.
type Mailer interface {
	Send(ctx context.Context, templateName, to string, vars map[string]any) error
}

// SMTPMailer renders an embedded HTML template and delivers it over SMTP.
type SMTPMailer struct {
	addr     string
	auth     smtp.Auth
	from     string
	fromName string
	tmpl     *template.Template
}

func NewSMTPMailer(host, port, username, password, from, fromName string) (*SMTPMailer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}

	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	return &SMTPMailer{
		addr:     host + ":" + port,
		auth:     auth,
		from:     from,
		fromName: fromName,
		tmpl:     tmpl,
	}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, templateName, to string, vars map[string]any) error {
	var body bytes.Buffer
	if err := m.tmpl.ExecuteTemplate(&body, templateName, vars); err != nil {
		return fmt.Errorf("render %s: %w", templateName, err)
	}

	subject, _ := vars["title"].(string)
	if subject == "" {
		subject = "Blog API"
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", m.fromName, m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, msg.Bytes()); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

// LogMailer logs outgoing mail instead of delivering it. Used in dev when no
// SMTP host is configured, and in tests.
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) Send(ctx context.Context, templateName, to string, vars map[string]any) error {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("mail not sent (no SMTP host configured)",
		"template", templateName,
		"to", to,
		"vars", fmt.Sprint(vars))
	return nil
}
