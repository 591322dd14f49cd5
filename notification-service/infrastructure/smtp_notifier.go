package infrastructure

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/campusflow/enrollment-system/notification-service/domain"
	"github.com/pkg/errors"
)

var _ domain.Notifier = (*SMTPNotifier)(nil)

// SMTPConfig locates the mail relay
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier sends plain text mail through an SMTP relay
type SMTPNotifier struct {
	addr     string
	from     string
	auth     smtp.Auth
	sendMail sendMailFunc
}

// NewSMTPNotifier creates a notifier for the relay. PLAIN auth is used only
// when a username is configured.
func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &SMTPNotifier{
		addr:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		from:     cfg.From,
		auth:     auth,
		sendMail: smtp.SendMail,
	}
}

func (n *SMTPNotifier) Send(ctx context.Context, message domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	to := headerValue(message.To)
	if err := n.sendMail(n.addr, n.auth, n.from, []string{to}, n.compose(message)); err != nil {
		return errors.Wrapf(err, "failed to send mail to %s", message.To)
	}
	return nil
}

func (n *SMTPNotifier) compose(message domain.Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", headerValue(n.from))
	fmt.Fprintf(&b, "To: %s\r\n", headerValue(message.To))
	fmt.Fprintf(&b, "Subject: %s\r\n", headerValue(message.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(message.Body, "\n", "\r\n"))
	return []byte(b.String())
}

var headerBreaks = strings.NewReplacer("\r", "", "\n", "")

// headerValue keeps course and student names from starting a new header line.
func headerValue(v string) string {
	return headerBreaks.Replace(v)
}
