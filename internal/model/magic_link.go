package model

import "time"

// Account kinds a magic link can be issued for.
const (
	UserTypeHR        = "HR"
	UserTypeApplicant = "APPLICANT"
)

// ValidUserType reports whether t is a recognized account kind.
func ValidUserType(t string) bool {
	return t == UserTypeHR || t == UserTypeApplicant
}

// MagicLink is a single-use login credential tied to an email address.
// It is redeemable exactly once, strictly before ExpiresAt.
type MagicLink struct {
	ID        int64      `json:"id"`
	Token     string     `json:"token"`
	Email     string     `json:"email"`
	UserType  string     `json:"user_type"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time  `json:"created_at"`
}
