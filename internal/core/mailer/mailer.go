package mailer

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"cafe-directory/internal/core/config"
)

var ErrNotConfigured = errors.New("mailer: relay credentials not configured")

type Message struct {
	From    string
	To      string
	Subject string
	Body    string // text/plain
}

type Sender interface {
	Send(ctx context.Context, m Message) error
}

// SMTPSender 每次发送都新建连接，不保持长连接
type SMTPSender struct {
	dialer *gomail.Dialer
	cfg    config.Mail
}

func NewSMTPSender(c config.Mail) *SMTPSender {
	return &SMTPSender{dialer: gomail.NewDialer(c.Host, c.Port, c.Username, c.Password), cfg: c}
}

func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	if s.cfg.Username == "" || s.cfg.Password == "" {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.From == "" {
		m.From = firstNonEmpty(s.cfg.From, s.cfg.Username)
	}
	if m.To == "" {
		m.To = firstNonEmpty(s.cfg.To, s.cfg.Username)
	}
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.From)
	gm.SetHeader("To", m.To)
	gm.SetHeader("Subject", m.Subject)
	gm.SetBody("text/plain", m.Body)
	return s.dialer.DialAndSend(gm)
}

// Retrying 指数退避重试，最终失败返回最后一次错误
type Retrying struct {
	Next        Sender
	MaxRetries  uint64
	InitialWait time.Duration
	Log         *zap.Logger
}

func (r *Retrying) Send(ctx context.Context, m Message) error {
	eb := backoff.NewExponentialBackOff()
	if r.InitialWait > 0 {
		eb.InitialInterval = r.InitialWait
	}
	eb.MaxElapsedTime = 30 * time.Second
	b := backoff.WithContext(backoff.WithMaxRetries(eb, r.MaxRetries), ctx)

	attempt := 0
	op := func() error {
		attempt++
		err := r.Next.Send(ctx, m)
		if errors.Is(err, ErrNotConfigured) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		if r.Log != nil {
			r.Log.Warn("mail send failed, retrying",
				zap.Int("attempt", attempt), zap.Duration("wait", wait), zap.Error(err))
		}
	}
	err := backoff.RetryNotify(op, b, notify)
	if err != nil && r.Log != nil {
		r.Log.Error("mail send gave up", zap.Int("attempts", attempt), zap.Error(err))
	}
	return err
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
