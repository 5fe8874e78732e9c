package services

import (
	"context"
	"fmt"

	"familyagenda/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and
// template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendWelcome sends the sign-up welcome email using the "welcome" template.
func (s *emailService) SendWelcome(ctx context.Context, data *domain.WelcomeEmailData) error {
	if data == nil {
		return fmt.Errorf("welcome email data is nil")
	}
	return s.renderAndSend("welcome", data.Email, data)
}

// SendEventCreated notifies the owner that their event was created using the
// "event_created" template.
func (s *emailService) SendEventCreated(ctx context.Context, data *domain.EventCreatedEmailData) error {
	if data == nil {
		return fmt.Errorf("event created email data is nil")
	}
	return s.renderAndSend("event_created", data.Email, data)
}

// SendInvitation sends the invitation email using the "invitation" template.
func (s *emailService) SendInvitation(ctx context.Context, data *domain.InvitationEmailData) error {
	if data == nil {
		return fmt.Errorf("invitation email data is nil")
	}
	return s.renderAndSend("invitation", data.Email, data)
}

func (s *emailService) renderAndSend(templateName, to string, data any) error {
	subject, htmlBody, textBody, err := s.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("render %s template: %w", templateName, err)
	}
	if err := s.mailer.Send(to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("send %s email: %w", templateName, err)
	}
	return nil
}
