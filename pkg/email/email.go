// Package email, doğrulama ve hesap kurtarma email'lerini gönderir.
//
// Service katmanı Sender interface'ine bağımlıdır. Production'da Resend API
// kullanılır; RESEND_API_KEY yoksa LogSender link'i sadece loglar (development).
package email

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v3"
)

// Sender, email gönderimi için interface.
type Sender interface {
	// SendVerification, kayıt sonrası email doğrulama linki gönderir.
	SendVerification(ctx context.Context, toEmail, token string) error
	// SendRecovery, hesap kurtarma (tek seferlik giriş) linki gönderir.
	SendRecovery(ctx context.Context, toEmail, token string) error
}

// VerifyLink, frontend'in /auth/verify sayfasına giden linki üretir.
// Sayfa token_hash ve type'ı POST /api/auth/verify'a iletir.
func VerifyLink(appURL, token, kind string) string {
	q := url.Values{}
	q.Set("token_hash", token)
	q.Set("type", kind)
	return strings.TrimRight(appURL, "/") + "/auth/verify?" + q.Encode()
}

var messageTmpl = template.Must(template.New("message").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="margin:0;padding:0;background-color:#f4f7f2;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%" cellpadding="0" cellspacing="0" style="padding:40px 0;">
    <tr><td align="center">
      <table width="480" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;padding:40px;">
        <tr><td>
          <h1 style="color:#2f5d3a;font-size:22px;margin:0 0 8px 0;">Grocery Planner</h1>
          <h2 style="color:#1f2933;font-size:18px;margin:0 0 24px 0;">{{.Title}}</h2>
          <p style="color:#52606d;font-size:15px;line-height:1.6;margin:0 0 24px 0;">{{.Body}}</p>
          <p style="margin:0 0 24px 0;">
            <a href="{{.Link}}" style="background-color:#3f8f4f;color:#ffffff;text-decoration:none;padding:12px 32px;border-radius:6px;font-weight:600;">{{.Button}}</a>
          </p>
          <p style="color:#7b8794;font-size:13px;line-height:1.6;margin:0;word-break:break-all;">
            If the button doesn't work, copy and paste this link:<br><a href="{{.Link}}">{{.Link}}</a>
          </p>
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`))

type message struct {
	Title  string
	Body   string
	Button string
	Link   string
}

func render(m message) (string, error) {
	var sb strings.Builder
	if err := messageTmpl.Execute(&sb, m); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// resendSender, Resend API ile gönderen Sender implementasyonu.
type resendSender struct {
	client    *resend.Client
	fromEmail string
	appURL    string
}

// NewResendSender, Resend client'ı ile Sender oluşturur.
// fromEmail Resend'de doğrulanmış bir domain altında olmalı.
func NewResendSender(apiKey, fromEmail, appURL string) Sender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		appURL:    appURL,
	}
}

func (s *resendSender) SendVerification(ctx context.Context, toEmail, token string) error {
	return s.send(ctx, toEmail, "Confirm your email - Grocery Planner", message{
		Title:  "Confirm your email",
		Body:   "Thanks for signing up. Confirm your email address to start saving grocery lists.",
		Button: "Confirm Email",
		Link:   VerifyLink(s.appURL, token, "signup"),
	})
}

func (s *resendSender) SendRecovery(ctx context.Context, toEmail, token string) error {
	return s.send(ctx, toEmail, "Sign in to Grocery Planner", message{
		Title:  "Account recovery",
		Body:   "Use the link below to sign in. It expires in 1 hour. If you didn't ask for it, you can ignore this email.",
		Button: "Sign In",
		Link:   VerifyLink(s.appURL, token, "recovery"),
	})
}

func (s *resendSender) send(ctx context.Context, toEmail, subject string, m message) error {
	html, err := render(m)
	if err != nil {
		return fmt.Errorf("failed to render email: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Grocery Planner <%s>", s.fromEmail),
		To:      []string{toEmail},
		Subject: subject,
		Html:    html,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// logSender, email göndermek yerine link'i loglar.
type logSender struct {
	appURL string
}

// NewLogSender, development için Sender. Link'ler stdout'a yazılır.
func NewLogSender(appURL string) Sender {
	return &logSender{appURL: appURL}
}

func (s *logSender) SendVerification(_ context.Context, toEmail, token string) error {
	log.Printf("[email] verification link for %s: %s", toEmail, VerifyLink(s.appURL, token, "signup"))
	return nil
}

func (s *logSender) SendRecovery(_ context.Context, toEmail, token string) error {
	log.Printf("[email] recovery link for %s: %s", toEmail, VerifyLink(s.appURL, token, "recovery"))
	return nil
}
