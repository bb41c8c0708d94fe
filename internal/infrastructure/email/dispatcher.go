package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"whisperlink.backend/internal/config"
)

const verificationTemplate = `<html>
<body style="font-family: sans-serif;">
	<h2>Hello {{.Username}},</h2>
	<p>Use the following code to verify your email address:</p>
	<p style="font-size: 24px; font-weight: bold; letter-spacing: 4px;">{{.Code}}</p>
	<p>The code expires in one hour. If you did not sign up, you can ignore this email.</p>
</body>
</html>`

var verificationBody = template.Must(template.New("verification").Parse(verificationTemplate))

// Dispatcher sends one-time verification codes over SMTP. When the SMTP
// environment is not configured the dispatcher is disabled and every send
// fails, which registration surfaces as an upstream error.
type Dispatcher struct {
	cfg     config.SMTPConfig
	enabled bool
}

var sendMail = smtp.SendMail

// NewDispatcher creates a new verification email dispatcher
func NewDispatcher(cfg config.SMTPConfig) *Dispatcher {
	enabled := cfg.Host != "" && cfg.Port != "" && cfg.Username != "" && cfg.Password != "" && cfg.From != ""
	return &Dispatcher{cfg: cfg, enabled: enabled}
}

// Enabled reports whether the SMTP transport is configured
func (d *Dispatcher) Enabled() bool {
	return d.enabled
}

// SendVerificationCode delivers the one-time code to the address. The send is
// synchronous: registration reports dispatch failure to the caller, even
// though the account row is already persisted by then.
func (d *Dispatcher) SendVerificationCode(toAddress, username, code string) error {
	if !d.enabled {
		return fmt.Errorf("smtp transport is not configured")
	}

	var body bytes.Buffer
	if err := verificationBody.Execute(&body, map[string]string{
		"Username": username,
		"Code":     code,
	}); err != nil {
		return fmt.Errorf("failed to render verification email: %w", err)
	}

	msg := buildMessage(d.cfg.From, toAddress, "Verify your email address", body.String())
	auth := smtp.PlainAuth("", d.cfg.Username, d.cfg.Password, d.cfg.Host)

	if err := sendMail(d.cfg.Addr(), auth, d.cfg.From, []string{toAddress}, msg); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

func buildMessage(from, to, subject, htmlBody string) []byte {
	var b strings.Builder
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("From: WhisperLink <" + from + ">\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}
