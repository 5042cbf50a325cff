package domain

import "context"

// Mailer sends a single email message.
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders a named email template with the given data
// and returns subject, HTML body, and text body.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, html, text string, err error)
}

// EmploymentDecisionEmailData is the payload for the employment decision
// notification templates.
type EmploymentDecisionEmailData struct {
	Email        string
	FirstName    string
	EventName    string
	PositionName string
	Accepted     bool
}

// EmailService sends application emails. Implementations are best-effort
// collaborators; callers must not fail a mutation on a send error.
type EmailService interface {
	SendEmploymentDecision(ctx context.Context, data *EmploymentDecisionEmailData) error
}
