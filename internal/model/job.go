package model

import "time"

// Job type values.
const (
	JobTypeFullTime   = "FULL_TIME"
	JobTypePartTime   = "PART_TIME"
	JobTypeContract   = "CONTRACT"
	JobTypeInternship = "INTERNSHIP"
)

// Job status values.
const (
	JobStatusDraft     = "DRAFT"
	JobStatusPublished = "PUBLISHED"
	JobStatusClosed    = "CLOSED"
)

// ValidJobType reports whether t is a recognized job type.
func ValidJobType(t string) bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship:
		return true
	}
	return false
}

// ValidJobStatus reports whether s is a recognized job status.
func ValidJobStatus(s string) bool {
	switch s {
	case JobStatusDraft, JobStatusPublished, JobStatusClosed:
		return true
	}
	return false
}

type Job struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Department   string     `json:"department"`
	Location     string     `json:"location"`
	Type         string     `json:"type"`
	Description  string     `json:"description"`
	Requirements string     `json:"requirements"`
	Benefits     *string    `json:"benefits"`
	SalaryRange  *string    `json:"salary_range"`
	Status       string     `json:"status"`
	ClosesAt     *time.Time `json:"closes_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// AcceptingApplications reports whether the job is published and not past
// its closing date.
func (j *Job) AcceptingApplications(now time.Time) bool {
	if j.Status != JobStatusPublished {
		return false
	}
	if j.ClosesAt != nil && j.ClosesAt.Before(now) {
		return false
	}
	return true
}

// JobWithCount is a job plus its application count, for admin listings.
type JobWithCount struct {
	Job
	ApplicationCount int `json:"application_count"`
}
