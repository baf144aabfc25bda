package token

import (
	"crypto/rand"
	"encoding/base64"
	"strings"

	"github.com/skip2/go-qrcode"

	"guestpass/internal/domain"
)

// rsvpTokenBytes gives 128 bits of entropy per token; collisions are
// bounded by the birthday problem, which is sufficient since tokens are
// scoped to one assignee and one occurrence.
const rsvpTokenBytes = 16

// admissionCodeSep joins the occurrence id and the RSVP record id. It is a
// colon rather than a hyphen because UUID primary keys contain hyphens;
// the stored code stays the single source of truth and is never parsed
// back into its components.
const admissionCodeSep = ":"

// admissionImageSize is the pixel width/height of the generated QR PNG.
const admissionImageSize = 256

type tokenService struct{}

// NewService returns the stateless token service.
func NewService() domain.TokenService {
	return &tokenService{}
}

func (tokenService) IssueRSVPToken() string {
	b := make([]byte, rsvpTokenBytes)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on a healthy system; if the entropy source
		// is broken there is nothing sensible to fall back to.
		panic("token: system entropy source unavailable: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

func (tokenService) DeriveAdmissionCode(eventOccurrenceID, rsvpRecordID string) string {
	return eventOccurrenceID + admissionCodeSep + rsvpRecordID
}

func (tokenService) EncodeAdmissionImage(code string) ([]byte, error) {
	return qrcode.Encode(code, qrcode.Medium, admissionImageSize)
}

func (tokenService) ValidateAdmissionCodeFormat(code string) bool {
	if strings.Count(code, admissionCodeSep) != 1 {
		return false
	}
	occID, recID, _ := strings.Cut(code, admissionCodeSep)
	return occID != "" && recID != ""
}
