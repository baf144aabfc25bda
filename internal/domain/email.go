package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// RSVPInviteEmailData holds data for the assignee invite email carrying
// their personal RSVP link.
type RSVPInviteEmailData struct {
	Email        string
	AssigneeName string
	EventName    string
	Venue        string
	EventDate    string // "Month Day", same normalization as the notice payload
	TimeSlot     string // 12-hour clock, "" for crew without a set time
	RSVPLink     string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendRSVPInvite(ctx context.Context, data *RSVPInviteEmailData) error
}
