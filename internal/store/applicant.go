package store

import (
	"database/sql"
	"fmt"

	"github.com/mtcnamibia/careers/internal/model"
)

// ApplicantStore persists job-seeker profiles.
type ApplicantStore struct {
	db *sql.DB
}

func NewApplicantStore(db *sql.DB) *ApplicantStore {
	return &ApplicantStore{db: db}
}

const applicantCols = `id, email, name, phone, resume_key, linkedin_url, bio,
	experience_years, current_position, gender, race, created_at, updated_at`

func scanApplicant(scanner interface{ Scan(...any) error }) (*model.Applicant, error) {
	var a model.Applicant
	var name, phone, resumeKey, linkedin, bio, position, gender, race sql.NullString
	var years sql.NullInt64

	err := scanner.Scan(
		&a.ID, &a.Email, &name, &phone, &resumeKey, &linkedin, &bio,
		&years, &position, &gender, &race, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Name = nullString(name)
	a.Phone = nullString(phone)
	a.ResumeKey = nullString(resumeKey)
	a.LinkedinURL = nullString(linkedin)
	a.Bio = nullString(bio)
	a.CurrentPosition = nullString(position)
	a.Gender = nullString(gender)
	a.Race = nullString(race)
	if years.Valid {
		y := int(years.Int64)
		a.ExperienceYears = &y
	}
	return &a, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

// CreateBare provisions an applicant row holding only an email address.
// Used when someone requests a login link before ever filling in a profile.
func (s *ApplicantStore) CreateBare(email string) (*model.Applicant, error) {
	result, err := s.db.Exec(`INSERT INTO applicants (email) VALUES (?)`, email)
	if err != nil {
		return nil, fmt.Errorf("insert applicant: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ApplicantStore) GetByID(id int64) (*model.Applicant, error) {
	row := s.db.QueryRow(`SELECT `+applicantCols+` FROM applicants WHERE id = ?`, id)
	a, err := scanApplicant(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get applicant: %w", err)
	}
	return a, nil
}

func (s *ApplicantStore) GetByEmail(email string) (*model.Applicant, error) {
	row := s.db.QueryRow(`SELECT `+applicantCols+` FROM applicants WHERE email = ?`, email)
	a, err := scanApplicant(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get applicant by email: %w", err)
	}
	return a, nil
}

// ProfileParams carries the editable profile fields. Nil pointers clear
// the corresponding column.
type ProfileParams struct {
	Name            *string
	Phone           *string
	LinkedinURL     *string
	Bio             *string
	ExperienceYears *int
	CurrentPosition *string
	Gender          *string
	Race            *string
}

// UpdateProfile overwrites the editable profile fields for an applicant.
func (s *ApplicantStore) UpdateProfile(id int64, p ProfileParams) (*model.Applicant, error) {
	_, err := s.db.Exec(
		`UPDATE applicants SET name = ?, phone = ?, linkedin_url = ?, bio = ?,
		 experience_years = ?, current_position = ?, gender = ?, race = ?,
		 updated_at = datetime('now') WHERE id = ?`,
		p.Name, p.Phone, p.LinkedinURL, p.Bio,
		p.ExperienceYears, p.CurrentPosition, p.Gender, p.Race, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update applicant: %w", err)
	}
	return s.GetByID(id)
}

// SetResumeKey records the storage key of an uploaded resume.
func (s *ApplicantStore) SetResumeKey(id int64, key string) error {
	_, err := s.db.Exec(
		`UPDATE applicants SET resume_key = ?, updated_at = datetime('now') WHERE id = ?`,
		key, id,
	)
	if err != nil {
		return fmt.Errorf("set resume key: %w", err)
	}
	return nil
}
