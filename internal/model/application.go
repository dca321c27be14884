package model

import "time"

// Application status values, in pipeline order.
const (
	ApplicationPending     = "PENDING"
	ApplicationReviewed    = "REVIEWED"
	ApplicationShortlisted = "SHORTLISTED"
	ApplicationRejected    = "REJECTED"
	ApplicationHired       = "HIRED"
)

// StatusOrder is the pipeline ordering used by the analytics funnel.
var StatusOrder = []string{
	ApplicationPending,
	ApplicationReviewed,
	ApplicationShortlisted,
	ApplicationRejected,
	ApplicationHired,
}

// ValidApplicationStatus reports whether s is a recognized application status.
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationPending, ApplicationReviewed, ApplicationShortlisted,
		ApplicationRejected, ApplicationHired:
		return true
	}
	return false
}

type Application struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"job_id"`
	ApplicantID int64     `json:"applicant_id"`
	CoverLetter *string   `json:"cover_letter"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ApplicationDetail is an application joined with its job and applicant,
// for HR listings and detail views.
type ApplicationDetail struct {
	Application
	Job       Job       `json:"job"`
	Applicant Applicant `json:"applicant"`
}
