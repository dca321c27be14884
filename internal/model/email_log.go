package model

import "time"

// Email types recorded in the delivery log.
const (
	EmailMagicLink           = "MAGIC_LINK"
	EmailApplicationReceived = "APPLICATION_RECEIVED"
	EmailApplicationReviewed = "APPLICATION_REVIEWED"
	EmailShortlisted         = "SHORTLISTED"
	EmailRejected            = "REJECTED"
	EmailHired               = "HIRED"
)

// Email delivery outcomes. SIMULATED means the sender was not configured
// and the message was logged instead of sent.
const (
	EmailStatusSent      = "SENT"
	EmailStatusFailed    = "FAILED"
	EmailStatusSimulated = "SIMULATED"
)

type EmailLog struct {
	ID             int64     `json:"id"`
	ApplicationID  *int64    `json:"application_id"`
	RecipientEmail string    `json:"recipient_email"`
	EmailType      string    `json:"email_type"`
	Subject        string    `json:"subject"`
	Status         string    `json:"status"`
	SentAt         time.Time `json:"sent_at"`
}
