package domain

import "time"

// TokenIssuer issues bearer tokens for door-staff tooling. In production
// the booking platform issues tokens with the shared secret and this
// service only verifies; Issue exists for operational tooling and for
// minting valid tokens in tests.
type TokenIssuer interface {
	Issue(staffID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a bearer token and returns the staff ID.
type TokenVerifier interface {
	Verify(token string) (staffID string, err error)
}
