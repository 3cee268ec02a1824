// Package email, uygulama genelinde email gönderimi için soyutlama katmanı.
//
// EmailSender interface'i gönderim detaylarını soyutlar; şu anki
// implementasyon Resend API kullanır. Sağlayıcı değişirse yeni bir
// implementasyon yazıp constructor'da değiştirmek yeterli.
package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
)

// EmailSender, email gönderimi için interface.
// Service katmanı bu interface'e bağımlıdır, concrete implementasyona değil.
type EmailSender interface {
	// SendServerInvite, alıcıya sunucu davet linki içeren email gönderir.
	// serverName: davet edilen sunucunun adı, inviteCode: aktif davet kodu.
	SendServerInvite(ctx context.Context, toEmail, serverName, inviteCode string) error
}

// resendSender, Resend API ile email gönderen EmailSender implementasyonu.
type resendSender struct {
	client    *resend.Client
	fromEmail string // Gönderici adresi — Resend'de doğrulanmış domain altında olmalı
	appURL    string // Uygulamanın public URL'i, davet linkinde kullanılır
}

// NewResendSender, Resend API client'ı ile yeni bir EmailSender oluşturur.
func NewResendSender(apiKey, fromEmail, appURL string) EmailSender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		appURL:    appURL,
	}
}

// SendServerInvite, sunucu daveti email'i gönderir.
//
// Link format: {appURL}/invite/{inviteCode}
// Davet kodu döndürülürse (rotate) eski linkler geçersiz kalır — email'de
// bunun geçici bir link olduğu belirtilir.
func (s *resendSender) SendServerInvite(ctx context.Context, toEmail, serverName, inviteCode string) error {
	inviteLink := fmt.Sprintf("%s/invite/%s", s.appURL, inviteCode)

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#1a1a2e;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="background-color:#1a1a2e;padding:40px 0;">
    <tr>
      <td align="center">
        <table width="480" cellpadding="0" cellspacing="0" style="background-color:#16213e;border-radius:8px;padding:40px;">
          <tr>
            <td>
              <h1 style="color:#e2e8f0;font-size:24px;margin:0 0 8px 0;">ev-cord</h1>
              <h2 style="color:#e2e8f0;font-size:18px;margin:0 0 24px 0;">You've been invited to %s</h2>
              <p style="color:#94a3b8;font-size:15px;line-height:1.6;margin:0 0 24px 0;">
                Click the button below to join the server.
              </p>
              <table cellpadding="0" cellspacing="0" style="margin:0 0 24px 0;">
                <tr>
                  <td style="background-color:#6366f1;border-radius:6px;padding:12px 32px;">
                    <a href="%s" style="color:#ffffff;text-decoration:none;font-size:15px;font-weight:600;">
                      Join Server
                    </a>
                  </td>
                </tr>
              </table>
              <p style="color:#64748b;font-size:13px;line-height:1.6;margin:0 0 16px 0;">
                This invite link may be rotated by the server owner at any time.
                If you weren't expecting this invitation, you can safely ignore this email.
              </p>
              <p style="color:#475569;font-size:13px;line-height:1.6;margin:0;word-break:break-all;">
                If the button doesn't work, copy and paste this link:<br>
                <a href="%s" style="color:#6366f1;">%s</a>
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`, serverName, inviteLink, inviteLink, inviteLink)

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{toEmail},
		Subject: fmt.Sprintf("You've been invited to %s — ev-cord", serverName),
		Html:    html,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send invite email: %w", err)
	}
	return nil
}
