package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"
)

type Config struct {
	Host     string
	Port     string
	Secure   bool // implicit TLS on connect instead of STARTTLS
	Username string
	Password string
	From     string
}

type Message struct {
	To      string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// Mailer sends via plain SMTP with STARTTLS or implicit TLS.
type Mailer struct {
	cfg     Config
	timeout time.Duration
}

var ErrNotConfigured = errors.New("email service not configured")

func NewMailer(cfg Config) *Mailer {
	return &Mailer{cfg: cfg, timeout: 30 * time.Second}
}

// Configured reports whether enough SMTP settings are present to send.
func (m *Mailer) Configured() bool {
	return m.cfg.Host != "" && m.cfg.Username != "" && m.cfg.Password != ""
}

func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if !m.Configured() {
		return ErrNotConfigured
	}

	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)

	done := make(chan error, 1)
	go func() {
		done <- m.send(addr, msg)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(m.timeout):
		return fmt.Errorf("smtp: send timeout after %s", m.timeout)
	}
}

func (m *Mailer) send(addr string, msg Message) error {
	var (
		client *smtp.Client
		err    error
	)

	if m.cfg.Secure {
		conn, dialErr := tls.Dial("tcp", addr, &tls.Config{ServerName: m.cfg.Host})
		if dialErr != nil {
			return fmt.Errorf("smtp: tls dial: %w", dialErr)
		}
		client, err = smtp.NewClient(conn, m.cfg.Host)
	} else {
		client, err = smtp.Dial(addr)
	}
	if err != nil {
		return fmt.Errorf("smtp: connect: %w", err)
	}
	defer client.Close()

	if !m.cfg.Secure {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
				return fmt.Errorf("smtp: starttls: %w", err)
			}
		}
	}

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp: auth: %w", err)
	}

	if err := client.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("smtp: mail from: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("smtp: rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp: data: %w", err)
	}
	if _, err := w.Write([]byte(buildMessage(m.cfg.From, msg))); err != nil {
		return fmt.Errorf("smtp: write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp: close data: %w", err)
	}

	return client.Quit()
}

const mimeBoundary = "nb-alt-7f3a9c"

func buildMessage(from string, msg Message) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("From: %s\r\n", from))
	b.WriteString(fmt.Sprintf("To: %s\r\n", msg.To))
	if msg.ReplyTo != "" {
		b.WriteString(fmt.Sprintf("Reply-To: %s\r\n", msg.ReplyTo))
	}
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")

	hasHTML := msg.HTML != ""
	if hasHTML {
		b.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q\r\n\r\n", mimeBoundary))
		b.WriteString(fmt.Sprintf("--%s\r\n", mimeBoundary))
		b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		b.WriteString(msg.Text)
		b.WriteString(fmt.Sprintf("\r\n--%s\r\n", mimeBoundary))
		b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
		b.WriteString(msg.HTML)
		b.WriteString(fmt.Sprintf("\r\n--%s--\r\n", mimeBoundary))
	} else {
		b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		b.WriteString(msg.Text)
		b.WriteString("\r\n")
	}

	return b.String()
}
