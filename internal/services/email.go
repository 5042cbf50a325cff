package services

import (
	"context"
	"fmt"
	"log"

	"eventstaffing/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendEmploymentDecision sends the accept/reject notification using the
// "employment_accepted" or "employment_rejected" template.
func (s *emailService) SendEmploymentDecision(ctx context.Context, data *domain.EmploymentDecisionEmailData) error {
	if data == nil {
		return fmt.Errorf("employment decision data is nil")
	}
	templateName := "employment_rejected"
	if data.Accepted {
		templateName = "employment_accepted"
	}
	subject, htmlBody, textBody, err := s.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", templateName, err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		log.Printf("[EMAIL] Failed to send employment decision to %s: %v", data.Email, err)
		return fmt.Errorf("failed to send employment decision email: %w", err)
	}
	return nil
}
