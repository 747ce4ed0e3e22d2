// services/mail_service.go
package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"net/url"
	"strings"
	"time"
)

type IMailService interface {
	SendMailToNotifyUser(to, subject, body, ctaText, ctaURL string) error
	SendMailToResetPassword(to, token string) error
	SendMailToVerifyEmail(to, token string) error
	SendMailToConfirmSubscription(to, token string) error

	// RenderDigest produces the HTML for one newsletter issue; SendDigest
	// delivers an already-rendered issue to one recipient.
	RenderDigest(data DigestEmailData) (string, error)
	SendDigest(to, subject, html string) error
}

// SMTPConfig holds SMTP + branding config.
type SMTPConfig struct {
	Host       string // e.g. "smtp.gmail.com"
	Port       int    // 587 (STARTTLS) or 465 (SMTPS)
	Username   string
	Password   string
	From       string // envelope from, e.g. "no-reply@menfem.com"
	FromName   string // display name
	UseSSL     bool   // true for SMTPS 465, false for STARTTLS 587
	RequireTLS bool   // if true, fail if STARTTLS not available

	AppName    string
	AppBaseURL string // e.g. "https://menfem.com"
}

type smtpMailService struct {
	cfg       SMTPConfig
	actionTpl *template.Template
	digestTpl *template.Template
	textTpl   *template.Template
}

func NewSMTPMailService(cfg SMTPConfig) (IMailService, error) {
	return &smtpMailService{
		cfg:       cfg,
		actionTpl: template.Must(template.New("actionHTML").Parse(actionHTMLTemplate)),
		digestTpl: template.Must(template.New("digestHTML").Parse(digestHTMLTemplate)),
		textTpl:   template.Must(template.New("plainText").Parse(plainTextTemplate)),
	}, nil
}

// ------------------- Public API -------------------

func (s *smtpMailService) SendMailToNotifyUser(to, subject, body, ctaText, ctaURL string) error {
	html, text, err := s.renderAction(EmailData{
		Title:     subject,
		Intro:     body,
		ButtonURL: ctaURL,
		ButtonTxt: ctaText,
		AppName:   s.cfg.AppName,
		Year:      time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, subject, html, text)
}

func (s *smtpMailService) SendMailToResetPassword(to, token string) error {
	link := s.actionLink("/reset-password", token)
	subject := "Reset your password"

	html, text, err := s.renderAction(EmailData{
		Title:     subject,
		Intro:     "We received a request to reset your password. Click the button below to continue. If you didn't request this, you can safely ignore this email.",
		ButtonURL: link,
		ButtonTxt: "Reset Password",
		AppName:   s.cfg.AppName,
		Year:      time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, subject, html, text)
}

func (s *smtpMailService) SendMailToVerifyEmail(to, token string) error {
	link := s.actionLink("/verify-email", token)
	subject := "Verify your email"

	html, text, err := s.renderAction(EmailData{
		Title:     subject,
		Intro:     "Confirm this address to finish setting up your account.",
		ButtonURL: link,
		ButtonTxt: "Verify Email",
		AppName:   s.cfg.AppName,
		Year:      time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, subject, html, text)
}

func (s *smtpMailService) SendMailToConfirmSubscription(to, token string) error {
	link := s.actionLink("/newsletter/confirm", token)
	subject := "Confirm your subscription"

	html, text, err := s.renderAction(EmailData{
		Title:     subject,
		Intro:     "Click below to start receiving the weekly digest. If you didn't sign up, ignore this email and nothing will be sent.",
		ButtonURL: link,
		ButtonTxt: "Confirm Subscription",
		AppName:   s.cfg.AppName,
		Year:      time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, subject, html, text)
}

func (s *smtpMailService) RenderDigest(data DigestEmailData) (string, error) {
	if data.AppName == "" {
		data.AppName = s.cfg.AppName
	}
	var b bytes.Buffer
	if err := s.digestTpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (s *smtpMailService) SendDigest(to, subject, html string) error {
	text := fmt.Sprintf("%s\r\n\r\nView this issue in your browser: %s\r\n", subject, s.cfg.AppBaseURL)
	return s.send(to, subject, html, text)
}

func (s *smtpMailService) actionLink(path, token string) string {
	return fmt.Sprintf("%s%s?token=%s",
		strings.TrimRight(s.cfg.AppBaseURL, "/"), path, url.QueryEscape(token))
}

// ------------------- Rendering -------------------

type EmailData struct {
	Title     string
	Intro     string
	ButtonURL string
	ButtonTxt string
	AppName   string
	Year      int
}

type DigestEmailItem struct {
	Title   string
	Summary string
	URL     string
}

type DigestEmailData struct {
	Subject         string
	FeaturedTitle   string
	FeaturedSummary string
	FeaturedURL     string
	Recent          []DigestEmailItem
	AppName         string
	Year            int
}

const actionHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; padding: 0; background: #f4f4f5; font-family: Helvetica, Arial, sans-serif; }
    .container { max-width: 560px; margin: 0 auto; background: #ffffff; }
    .header { padding: 28px 32px 0; }
    .brand { font-size: 20px; font-weight: 700; letter-spacing: 2px; color: #111827; }
    .hero { padding: 24px 32px 32px; }
    h1 { font-size: 22px; color: #111827; margin: 0 0 12px; }
    p { color: #4b5563; line-height: 1.6; margin: 0 0 20px; }
    .btn {
      display: inline-block; padding: 12px 28px; border-radius: 6px;
      background: #111827; color: #ffffff !important; text-decoration: none;
      font-weight: 600;
    }
    .link-fallback { margin-top: 24px; padding: 12px; background: #f9fafb; border-radius: 6px; }
    .muted { color: #9ca3af; font-size: 13px; margin: 0 0 6px; }
    .link-text { color: #111827; font-size: 13px; word-break: break-all; }
    .footer { padding: 20px 32px; color: #9ca3af; font-size: 12px; border-top: 1px solid #f3f4f6; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header"><div class="brand">{{.AppName}}</div></div>
    <div class="hero">
      <h1>{{.Title}}</h1>
      <p>{{.Intro}}</p>
      {{if .ButtonURL}}
        <a class="btn" href="{{.ButtonURL}}">{{.ButtonTxt}}</a>
        <div class="link-fallback">
          <p class="muted">If the button doesn't work, copy and paste this link into your browser:</p>
          <a href="{{.ButtonURL}}" class="link-text">{{.ButtonURL}}</a>
        </div>
      {{end}}
    </div>
    <div class="footer">© {{.Year}} {{.AppName}}. All rights reserved.</div>
  </div>
</body>
</html>`

const digestHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <title>{{.Subject}}</title>
  <style>
    body { margin: 0; padding: 0; background: #f4f4f5; font-family: Helvetica, Arial, sans-serif; }
    .container { max-width: 560px; margin: 0 auto; background: #ffffff; }
    .header { padding: 28px 32px 0; }
    .brand { font-size: 20px; font-weight: 700; letter-spacing: 2px; color: #111827; }
    .featured { padding: 24px 32px; border-bottom: 1px solid #f3f4f6; }
    .featured h1 { font-size: 24px; margin: 0 0 10px; }
    .featured h1 a, .item h2 a { color: #111827; text-decoration: none; }
    .featured p, .item p { color: #4b5563; line-height: 1.6; margin: 0; }
    .label { font-size: 11px; font-weight: 700; letter-spacing: 1px; color: #9ca3af; text-transform: uppercase; }
    .item { padding: 18px 32px; border-bottom: 1px solid #f3f4f6; }
    .item h2 { font-size: 17px; margin: 0 0 6px; }
    .footer { padding: 20px 32px; color: #9ca3af; font-size: 12px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header"><div class="brand">{{.AppName}}</div></div>
    <div class="featured">
      <div class="label">Featured</div>
      <h1><a href="{{.FeaturedURL}}">{{.FeaturedTitle}}</a></h1>
      <p>{{.FeaturedSummary}}</p>
    </div>
    {{range .Recent}}
    <div class="item">
      <h2><a href="{{.URL}}">{{.Title}}</a></h2>
      <p>{{.Summary}}</p>
    </div>
    {{end}}
    <div class="footer">© {{.Year}} {{.AppName}}. You are receiving this because you confirmed your subscription.</div>
  </div>
</body>
</html>`

const plainTextTemplate = `{{.Title}}

{{.Intro}}

{{if .ButtonURL}}Open this link:
{{.ButtonURL}}
{{end}}

— {{.AppName}} (c) {{.Year}}
`

func (s *smtpMailService) renderAction(data EmailData) (html string, text string, err error) {
	var hb, tb bytes.Buffer

	if err = s.actionTpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err = s.textTpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

// ------------------- SMTP Send -------------------

func (s *smtpMailService) send(to, subject, htmlBody, textBody string) error {
	fromHeader := s.formatFromHeader()
	date := time.Now().Format(time.RFC1123Z)
	boundary := fmt.Sprintf("mixed_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = msg.WriteString(fmt.Sprintf(format, a...)) }

	write("From: %s\r\n", fromHeader)
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", subject)
	write("Date: %s\r\n", date)
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	write("\r\n")

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 7bit\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 7bit\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	if s.cfg.UseSSL {
		// SMTPS (implicit TLS, usually port 465)
		tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
		conn, err := tls.Dial("tcp", addr, tlsCfg)
		if err != nil {
			return err
		}
		defer conn.Close()

		c, err := smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			return err
		}
		defer c.Quit()

		return s.push(c, auth, to, msg.Bytes())
	}

	// STARTTLS path (typically port 587)
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if ok, _ := c.Extension("STARTTLS"); ok {
		tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
		if err = c.StartTLS(tlsCfg); err != nil {
			return err
		}
	} else if s.cfg.RequireTLS {
		return fmt.Errorf("server does not support STARTTLS and RequireTLS=true")
	}

	return s.push(c, auth, to, msg.Bytes())
}

func (s *smtpMailService) push(c *smtp.Client, auth smtp.Auth, to string, msg []byte) error {
	if err := c.Auth(auth); err != nil {
		return err
	}
	if err := c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

func (s *smtpMailService) formatFromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", name), s.cfg.From)
}
