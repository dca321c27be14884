package store

import (
	"database/sql"
	"fmt"

	"github.com/mtcnamibia/careers/internal/model"
)

// ApplicationStore persists job applications.
type ApplicationStore struct {
	db *sql.DB
}

func NewApplicationStore(db *sql.DB) *ApplicationStore {
	return &ApplicationStore{db: db}
}

const applicationCols = `id, job_id, applicant_id, cover_letter, status, created_at, updated_at`

func scanApplication(scanner interface{ Scan(...any) error }) (*model.Application, error) {
	var app model.Application
	var coverLetter sql.NullString

	err := scanner.Scan(
		&app.ID, &app.JobID, &app.ApplicantID, &coverLetter,
		&app.Status, &app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	app.CoverLetter = nullString(coverLetter)
	return &app, nil
}

func (s *ApplicationStore) Create(jobID, applicantID int64, coverLetter *string) (*model.Application, error) {
	result, err := s.db.Exec(
		`INSERT INTO applications (job_id, applicant_id, cover_letter) VALUES (?, ?, ?)`,
		jobID, applicantID, coverLetter,
	)
	if err != nil {
		return nil, fmt.Errorf("insert application: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ApplicationStore) GetByID(id int64) (*model.Application, error) {
	row := s.db.QueryRow(`SELECT `+applicationCols+` FROM applications WHERE id = ?`, id)
	app, err := scanApplication(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	return app, nil
}

// Exists reports whether the applicant has already applied for the job.
func (s *ApplicationStore) Exists(jobID, applicantID int64) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM applications WHERE job_id = ? AND applicant_id = ?`,
		jobID, applicantID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check application exists: %w", err)
	}
	return count > 0, nil
}

// UpdateStatus moves an application through the pipeline.
func (s *ApplicationStore) UpdateStatus(id int64, status string) (*model.Application, error) {
	_, err := s.db.Exec(
		`UPDATE applications SET status = ?, updated_at = datetime('now') WHERE id = ?`,
		status, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update application status: %w", err)
	}
	return s.GetByID(id)
}

func (s *ApplicationStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM applications WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	return nil
}

const detailQuery = `SELECT
	a.id, a.job_id, a.applicant_id, a.cover_letter, a.status, a.created_at, a.updated_at,
	j.id, j.title, j.department, j.location, j.type, j.description, j.requirements,
	j.benefits, j.salary_range, j.status, j.closes_at, j.created_at, j.updated_at,
	p.id, p.email, p.name, p.phone, p.resume_key, p.linkedin_url, p.bio,
	p.experience_years, p.current_position, p.gender, p.race, p.created_at, p.updated_at
	FROM applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN applicants p ON p.id = a.applicant_id`

func scanDetail(scanner interface{ Scan(...any) error }) (*model.ApplicationDetail, error) {
	var d model.ApplicationDetail
	var coverLetter sql.NullString
	var jBenefits, jSalary sql.NullString
	var jClosesAt sql.NullTime
	var pName, pPhone, pResume, pLinkedin, pBio, pPosition, pGender, pRace sql.NullString
	var pYears sql.NullInt64

	err := scanner.Scan(
		&d.ID, &d.JobID, &d.ApplicantID, &coverLetter, &d.Status, &d.CreatedAt, &d.UpdatedAt,
		&d.Job.ID, &d.Job.Title, &d.Job.Department, &d.Job.Location, &d.Job.Type,
		&d.Job.Description, &d.Job.Requirements, &jBenefits, &jSalary,
		&d.Job.Status, &jClosesAt, &d.Job.CreatedAt, &d.Job.UpdatedAt,
		&d.Applicant.ID, &d.Applicant.Email, &pName, &pPhone, &pResume, &pLinkedin, &pBio,
		&pYears, &pPosition, &pGender, &pRace, &d.Applicant.CreatedAt, &d.Applicant.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	d.CoverLetter = nullString(coverLetter)
	d.Job.Benefits = nullString(jBenefits)
	d.Job.SalaryRange = nullString(jSalary)
	if jClosesAt.Valid {
		d.Job.ClosesAt = &jClosesAt.Time
	}
	d.Applicant.Name = nullString(pName)
	d.Applicant.Phone = nullString(pPhone)
	d.Applicant.ResumeKey = nullString(pResume)
	d.Applicant.LinkedinURL = nullString(pLinkedin)
	d.Applicant.Bio = nullString(pBio)
	d.Applicant.CurrentPosition = nullString(pPosition)
	d.Applicant.Gender = nullString(pGender)
	d.Applicant.Race = nullString(pRace)
	if pYears.Valid {
		y := int(pYears.Int64)
		d.Applicant.ExperienceYears = &y
	}
	return &d, nil
}

// GetDetailByID returns one application joined with its job and applicant.
func (s *ApplicationStore) GetDetailByID(id int64) (*model.ApplicationDetail, error) {
	row := s.db.QueryRow(detailQuery+` WHERE a.id = ?`, id)
	d, err := scanDetail(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get application detail: %w", err)
	}
	return d, nil
}

// ListDetails returns all applications with job and applicant attached,
// newest first.
func (s *ApplicationStore) ListDetails() ([]model.ApplicationDetail, error) {
	return s.queryDetails(detailQuery + ` ORDER BY a.created_at DESC`)
}

// ListDetailsByApplicant returns one applicant's applications, newest first.
func (s *ApplicationStore) ListDetailsByApplicant(applicantID int64) ([]model.ApplicationDetail, error) {
	return s.queryDetails(detailQuery+` WHERE a.applicant_id = ? ORDER BY a.created_at DESC`, applicantID)
}

// RecentDetails returns the n most recently submitted applications.
func (s *ApplicationStore) RecentDetails(n int) ([]model.ApplicationDetail, error) {
	return s.queryDetails(detailQuery+` ORDER BY a.created_at DESC LIMIT ?`, n)
}

func (s *ApplicationStore) queryDetails(query string, args ...any) ([]model.ApplicationDetail, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query application details: %w", err)
	}
	defer rows.Close()

	var details []model.ApplicationDetail
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application detail: %w", err)
		}
		details = append(details, *d)
	}
	return details, rows.Err()
}
