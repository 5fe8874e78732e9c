package services

import (
	"context"
	"errors"
	"testing"

	"familyagenda/internal/adapters/email"
	"familyagenda/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	to, subject, html, text string
	err                     error
}

func (m *recordingMailer) Send(to, subject, html, text string) error {
	if m.err != nil {
		return m.err
	}
	m.to, m.subject, m.html, m.text = to, subject, html, text
	return nil
}

func TestEmailService_RendersEmbeddedTemplates(t *testing.T) {
	ctx := context.Background()
	mailer := &recordingMailer{}
	svc := NewEmailService(mailer, email.NewTemplateRenderer())

	err := svc.SendInvitation(ctx, &domain.InvitationEmailData{
		Email:     "kid@example.com",
		OwnerName: "Ana Perez",
		EventName: "Birthday dinner",
		StartAt:   "Sat, 12 Sep 2026 18:00:00 UTC",
	})
	require.NoError(t, err)
	assert.Equal(t, "kid@example.com", mailer.to)
	assert.NotEmpty(t, mailer.subject)
	assert.Contains(t, mailer.html, "Birthday dinner")
	assert.Contains(t, mailer.text, "Ana Perez")
}

func TestEmailService_NilData(t *testing.T) {
	ctx := context.Background()
	svc := NewEmailService(&recordingMailer{}, email.NewTemplateRenderer())

	require.Error(t, svc.SendWelcome(ctx, nil))
	require.Error(t, svc.SendEventCreated(ctx, nil))
	require.Error(t, svc.SendInvitation(ctx, nil))
}

func TestEmailService_MailerFailure(t *testing.T) {
	ctx := context.Background()
	mailer := &recordingMailer{err: errors.New("ses throttled")}
	svc := NewEmailService(mailer, email.NewTemplateRenderer())

	err := svc.SendWelcome(ctx, &domain.WelcomeEmailData{Email: "kid@example.com", Name: "Leo"})
	require.Error(t, err)
}
