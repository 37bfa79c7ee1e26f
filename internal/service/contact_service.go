package service

import (
	"context"
	"fmt"

	"cafe-directory/internal/core/mailer"
)

type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

type ContactService struct {
	sender mailer.Sender
}

func NewContactService(sender mailer.Sender) *ContactService {
	return &ContactService{sender: sender}
}

func (s *ContactService) Send(ctx context.Context, m ContactMessage) error {
	body := fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\nMessage: %s", m.Name, m.Email, m.Phone, m.Message)
	if err := s.sender.Send(ctx, mailer.Message{Subject: "New Message", Body: body}); err != nil {
		return fmt.Errorf("send contact message: %w", err)
	}
	return nil
}
