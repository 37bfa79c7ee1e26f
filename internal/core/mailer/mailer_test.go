package mailer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"cafe-directory/internal/core/config"
)

type flakySender struct {
	failures int
	calls    int
	last     Message
}

func (f *flakySender) Send(_ context.Context, m Message) error {
	f.calls++
	f.last = m
	if f.calls <= f.failures {
		return errors.New("421 try again later")
	}
	return nil
}

func TestRetrying_RecoversFromTransientFailure(t *testing.T) {
	next := &flakySender{failures: 2}
	r := &Retrying{Next: next, MaxRetries: 3, InitialWait: time.Millisecond, Log: zap.NewNop()}

	err := r.Send(context.Background(), Message{Subject: "New Message", Body: "hi"})
	assert.NoError(t, err)
	assert.Equal(t, 3, next.calls)
	assert.Equal(t, "hi", next.last.Body)
}

func TestRetrying_GivesUpAfterMaxRetries(t *testing.T) {
	next := &flakySender{failures: 100}
	r := &Retrying{Next: next, MaxRetries: 2, InitialWait: time.Millisecond}

	err := r.Send(context.Background(), Message{})
	assert.Error(t, err)
	assert.Equal(t, 3, next.calls)
}

func TestRetrying_NotConfiguredIsPermanent(t *testing.T) {
	s := NewSMTPSender(config.Mail{Host: "localhost", Port: 2525})
	calls := 0
	r := &Retrying{Next: senderFunc(func(ctx context.Context, m Message) error {
		calls++
		return s.Send(ctx, m)
	}), MaxRetries: 5, InitialWait: time.Millisecond}

	err := r.Send(context.Background(), Message{})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, 1, calls)
}

type senderFunc func(context.Context, Message) error

func (f senderFunc) Send(ctx context.Context, m Message) error { return f(ctx, m) }
