package model

import "time"

// Applicant is a job seeker's profile. Rows are created bare (email only)
// when someone first requests a login link, then filled in via the portal.
type Applicant struct {
	ID              int64     `json:"id"`
	Email           string    `json:"email"`
	Name            *string   `json:"name"`
	Phone           *string   `json:"phone"`
	ResumeKey       *string   `json:"resume_key"`
	LinkedinURL     *string   `json:"linkedin_url"`
	Bio             *string   `json:"bio"`
	ExperienceYears *int      `json:"experience_years"`
	CurrentPosition *string   `json:"current_position"`
	Gender          *string   `json:"gender"`
	Race            *string   `json:"race"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DisplayName returns the applicant's name, or a generic fallback for
// bare profiles.
func (a *Applicant) DisplayName() string {
	if a.Name != nil && *a.Name != "" {
		return *a.Name
	}
	return "Applicant"
}
