// internal/services/notification_service.go
package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"mime"
	"mime/multipart"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fashionfactory/store-backend/internal/config"
	"github.com/fashionfactory/store-backend/internal/i18n"
	"github.com/fashionfactory/store-backend/internal/models"
	"github.com/fashionfactory/store-backend/internal/utils"
)

//go:embed templates/*.html templates/*.txt
var templateFS embed.FS

// Email templates.
const (
	TemplateResetPassword = "reset-password"
	TemplateOTP           = "otp"
)

const (
	resetPasswordTTL = 10 * time.Minute
	otpTTL           = 5 * time.Minute
)

type EmailMessage struct {
	From    string
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers a rendered message.
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// SMTPMailer sends through an SMTP relay with PLAIN auth.
type SMTPMailer struct {
	cfg config.EmailConfig
}

func NewSMTPMailer(cfg config.EmailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(ctx context.Context, msg EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := buildMIME(msg)
	if err != nil {
		return err
	}

	var auth smtp.Auth
	if m.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTPUsername, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	}
	from, err := mail.ParseAddress(msg.From)
	if err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}

	addr := fmt.Sprintf("%s:%s", m.cfg.SMTPHost, m.cfg.SMTPPort)
	if err := smtp.SendMail(addr, auth, from.Address, []string{msg.To}, body); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildMIME renders a multipart/alternative message with text and HTML parts.
func buildMIME(msg EmailMessage) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	headers := []string{
		"From: " + msg.From,
		"To: " + msg.To,
		"Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject),
		"MIME-Version: 1.0",
		fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q", w.Boundary()),
	}
	buf.WriteString(strings.Join(headers, "\r\n") + "\r\n\r\n")

	parts := []struct{ contentType, body string }{
		{"text/plain; charset=utf-8", msg.Text},
		{"text/html; charset=utf-8", msg.HTML},
	}
	for _, p := range parts {
		if p.body == "" {
			continue
		}
		part, err := w.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {p.contentType},
			"Content-Transfer-Encoding": {"8bit"},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build email: %w", err)
		}
		if _, err := part.Write([]byte(p.body)); err != nil {
			return nil, fmt.Errorf("failed to build email: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to build email: %w", err)
	}
	return buf.Bytes(), nil
}

// LogMailer writes messages to the log instead of sending them. It is used
// when no SMTP host is configured.
type LogMailer struct {
	log *logrus.Entry
}

func NewLogMailer(logger *logrus.Logger) *LogMailer {
	return &LogMailer{log: logrus.NewEntry(logger).WithField("component", "mailer")}
}

func (m *LogMailer) Send(_ context.Context, msg EmailMessage) error {
	m.log.WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info(msg.Text)
	return nil
}

// NewMailer picks SMTP when a host is configured and the log mailer otherwise.
func NewMailer(cfg config.EmailConfig, logger *logrus.Logger) Mailer {
	if cfg.SMTPHost == "" {
		return NewLogMailer(logger)
	}
	return NewSMTPMailer(cfg)
}

type NotificationService struct {
	mailer      Mailer
	from        string
	storeName   string
	frontendURL string
	html        *template.Template
	text        *texttemplate.Template
}

func NewNotificationService(mailer Mailer, cfg *config.Config) (*NotificationService, error) {
	html, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}
	text, err := texttemplate.ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	from := (&mail.Address{Name: cfg.Email.FromName, Address: cfg.Email.FromEmail}).String()
	return &NotificationService{
		mailer:      mailer,
		from:        from,
		storeName:   cfg.Email.FromName,
		frontendURL: cfg.Frontend.BaseURL,
		html:        html,
		text:        text,
	}, nil
}

// ResetPasswordURL is the frontend page that consumes a reset token.
func (s *NotificationService) ResetPasswordURL(token string) string {
	return fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)
}

func (s *NotificationService) SendPasswordResetEmail(ctx context.Context, user *models.User, token string) error {
	data := map[string]interface{}{
		"Username":  user.Username,
		"ResetURL":  s.ResetPasswordURL(token),
		"ExpiresIn": "10 phút",
	}
	return s.SendTemplate(ctx, user.Email, "Đặt lại mật khẩu - "+s.storeName, TemplateResetPassword, data)
}

func (s *NotificationService) SendOTPEmail(ctx context.Context, user *models.User, code string) error {
	data := map[string]interface{}{
		"Username":  user.Username,
		"Code":      code,
		"ExpiresIn": "5 phút",
	}
	return s.SendTemplate(ctx, user.Email, "Mã xác thực OTP", TemplateOTP, data)
}

// SendTemplate renders the named template pair and sends it to one
// recipient. Subject, StoreName are added to data.
func (s *NotificationService) SendTemplate(ctx context.Context, to, subject, name string, data map[string]interface{}) error {
	if !utils.IsValidEmail(to) {
		return utils.InvalidArgument(i18n.KeyEmailInvalid)
	}

	if data == nil {
		data = map[string]interface{}{}
	}
	data["Subject"] = subject
	data["StoreName"] = s.storeName

	var html, text bytes.Buffer
	if err := s.html.ExecuteTemplate(&html, name+".html", data); err != nil {
		return fmt.Errorf("failed to render email template %s: %w", name, err)
	}
	if err := s.text.ExecuteTemplate(&text, name+".txt", data); err != nil {
		return fmt.Errorf("failed to render email template %s: %w", name, err)
	}

	return s.mailer.Send(ctx, EmailMessage{
		From:    s.from,
		To:      to,
		Subject: subject,
		Text:    text.String(),
		HTML:    html.String(),
	})
}
