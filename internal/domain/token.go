package domain

// TokenService issues RSVP tokens and admission codes. Implementations are
// pure and hold no state.
type TokenService interface {
	// IssueRSVPToken returns a cryptographically random, URL-safe token with
	// at least 128 bits of entropy.
	IssueRSVPToken() string
	// DeriveAdmissionCode joins the occurrence id and the RSVP record id into
	// the durable admission code. It must only be called once the record id
	// exists; the result is stored verbatim and never recomputed.
	DeriveAdmissionCode(eventOccurrenceID, rsvpRecordID string) string
	// EncodeAdmissionImage renders the code as a scannable QR PNG.
	EncodeAdmissionImage(code string) ([]byte, error)
	// ValidateAdmissionCodeFormat checks shape only, not existence.
	ValidateAdmissionCodeFormat(code string) bool
}
