package mailer

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"learnhub/pkg/config"
)

type Message struct {
	From        string
	To          []string
	Subject     string
	Body        string
	ContentType string
}

type Client struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewClient(cfg *config.Config) *Client {
	port := cfg.SMTPPort
	if port == 0 {
		port = 587
	}
	return &Client{
		host:     cfg.SMTPHost,
		port:     port,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.EmailFrom,
	}
}

func (c *Client) Send(msg *Message) error {
	if msg.From == "" {
		msg.From = c.from
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("no recipients")
	}
	if msg.ContentType == "" {
		msg.ContentType = "text/plain; charset=UTF-8"
	}

	headers := map[string]string{
		"From":         msg.From,
		"To":           strings.Join(msg.To, ", "),
		"Subject":      msg.Subject,
		"MIME-Version": "1.0",
		"Content-Type": msg.ContentType,
	}

	var b strings.Builder
	for k, v := range headers {
		fmt.Fprintf(&b, "%s: %s\r\n", k, v)
	}
	b.WriteString("\r\n" + msg.Body)

	auth := smtp.PlainAuth("", c.username, c.password, c.host)
	addr := fmt.Sprintf("%s:%d", c.host, c.port)

	if c.port == 587 {
		return c.sendWithTLS(addr, auth, msg.From, msg.To, []byte(b.String()))
	}

	return smtp.SendMail(addr, auth, msg.From, msg.To, []byte(b.String()))
}

func (c *Client) sendWithTLS(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	if err = client.StartTLS(&tls.Config{ServerName: c.host}); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP auth failed: %w", err)
	}

	if err = client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	for _, recipient := range to {
		if err = client.Rcpt(recipient); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open message body: %w", err)
	}

	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message body: %w", err)
	}

	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close message body: %w", err)
	}

	return client.Quit()
}

func (c *Client) SendHTML(to string, subject string, htmlBody string) error {
	return c.Send(&Message{
		To:          []string{to},
		Subject:     subject,
		Body:        htmlBody,
		ContentType: "text/html; charset=UTF-8",
	})
}
