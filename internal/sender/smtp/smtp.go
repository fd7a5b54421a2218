package smtp

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Tazdar-Rahim/artmuse-server/internal/sender"
)

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Sender implements sender.Sender over SMTP with plain auth.
type Sender struct {
	cfg  Config
	addr string
}

// NewSender creates a new SMTP sender.
func NewSender(cfg Config) *Sender {
	return &Sender{
		cfg:  cfg,
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
	}
}

// Name returns the name of this sender.
func (s *Sender) Name() string {
	return "smtp"
}

// Send delivers the message over SMTP. The context deadline is not honored
// mid-dial; callers should keep bodies small and treat failures as final.
func (s *Sender) Send(ctx context.Context, msg *sender.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	if err := smtp.SendMail(s.addr, auth, envelopeFrom(s.cfg.From), []string{msg.To}, []byte(b.String())); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}

	return nil
}

// envelopeFrom extracts the bare address from a "Name <addr>" header value.
func envelopeFrom(from string) string {
	if i := strings.Index(from, "<"); i >= 0 {
		if j := strings.Index(from[i:], ">"); j > 0 {
			return from[i+1 : i+j]
		}
	}
	return from
}
