package services

import (
	"context"
	"fmt"
	"log"

	"guestpass/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendRSVPInvite sends the assignee their RSVP link using the "rsvp_invite" template.
func (s *emailService) SendRSVPInvite(ctx context.Context, data *domain.RSVPInviteEmailData) error {
	if data == nil {
		return fmt.Errorf("rsvp invite data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("rsvp_invite", data)
	if err != nil {
		return fmt.Errorf("failed to render rsvp_invite template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send rsvp invite email: %w", err)
	}
	log.Printf("[EMAIL] RSVP invite sent to %s", data.Email)
	return nil
}
