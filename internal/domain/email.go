package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the
// given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// WelcomeEmailData holds data for the welcome email sent on sign-up.
type WelcomeEmailData struct {
	Email string
	Name  string
}

// EventCreatedEmailData holds data for the notification sent to the owner
// after an event is created.
type EventCreatedEmailData struct {
	Email     string
	OwnerName string
	EventName string
	StartAt   string
}

// InvitationEmailData holds data for the invitation email.
type InvitationEmailData struct {
	Email     string
	OwnerName string
	EventName string
	StartAt   string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendWelcome(ctx context.Context, data *WelcomeEmailData) error
	SendEventCreated(ctx context.Context, data *EventCreatedEmailData) error
	SendInvitation(ctx context.Context, data *InvitationEmailData) error
}
