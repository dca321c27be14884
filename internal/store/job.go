package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mtcnamibia/careers/internal/model"
)

// JobStore persists job postings.
type JobStore struct {
	db *sql.DB
}

func NewJobStore(db *sql.DB) *JobStore {
	return &JobStore{db: db}
}

const jobCols = `id, title, department, location, type, description, requirements,
	benefits, salary_range, status, closes_at, created_at, updated_at`

func scanJob(scanner interface{ Scan(...any) error }) (*model.Job, error) {
	var j model.Job
	var benefits, salaryRange sql.NullString
	var closesAt sql.NullTime

	err := scanner.Scan(
		&j.ID, &j.Title, &j.Department, &j.Location, &j.Type,
		&j.Description, &j.Requirements, &benefits, &salaryRange,
		&j.Status, &closesAt, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	j.Benefits = nullString(benefits)
	j.SalaryRange = nullString(salaryRange)
	if closesAt.Valid {
		j.ClosesAt = &closesAt.Time
	}
	return &j, nil
}

// JobParams carries the writable job fields.
type JobParams struct {
	Title        string
	Department   string
	Location     string
	Type         string
	Description  string
	Requirements string
	Benefits     *string
	SalaryRange  *string
	Status       string
	ClosesAt     *time.Time
}

func (s *JobStore) Create(p JobParams) (*model.Job, error) {
	result, err := s.db.Exec(
		`INSERT INTO jobs (title, department, location, type, description,
		 requirements, benefits, salary_range, status, closes_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Department, p.Location, p.Type, p.Description,
		p.Requirements, p.Benefits, p.SalaryRange, p.Status, p.ClosesAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *JobStore) GetByID(id int64) (*model.Job, error) {
	row := s.db.QueryRow(`SELECT `+jobCols+` FROM jobs WHERE id = ?`, id)
	j, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return j, nil
}

func (s *JobStore) Update(id int64, p JobParams) (*model.Job, error) {
	_, err := s.db.Exec(
		`UPDATE jobs SET title = ?, department = ?, location = ?, type = ?,
		 description = ?, requirements = ?, benefits = ?, salary_range = ?,
		 status = ?, closes_at = ?, updated_at = datetime('now') WHERE id = ?`,
		p.Title, p.Department, p.Location, p.Type, p.Description,
		p.Requirements, p.Benefits, p.SalaryRange, p.Status, p.ClosesAt, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return s.GetByID(id)
}

func (s *JobStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

// ListPublished returns published jobs, newest first. This is the public
// careers-page view.
func (s *JobStore) ListPublished() ([]model.Job, error) {
	rows, err := s.db.Query(
		`SELECT ` + jobCols + ` FROM jobs WHERE status = 'PUBLISHED' ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list published jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

// ListWithCounts returns every job with its application count, newest
// first. Admin view.
func (s *JobStore) ListWithCounts() ([]model.JobWithCount, error) {
	rows, err := s.db.Query(
		`SELECT ` + jobCols + `, (SELECT COUNT(*) FROM applications a WHERE a.job_id = jobs.id)
		 FROM jobs ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list jobs with counts: %w", err)
	}
	defer rows.Close()

	var jobs []model.JobWithCount
	for rows.Next() {
		var jc model.JobWithCount
		var benefits, salaryRange sql.NullString
		var closesAt sql.NullTime

		err := rows.Scan(
			&jc.ID, &jc.Title, &jc.Department, &jc.Location, &jc.Type,
			&jc.Description, &jc.Requirements, &benefits, &salaryRange,
			&jc.Status, &closesAt, &jc.CreatedAt, &jc.UpdatedAt,
			&jc.ApplicationCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan job with count: %w", err)
		}

		jc.Benefits = nullString(benefits)
		jc.SalaryRange = nullString(salaryRange)
		if closesAt.Valid {
			jc.ClosesAt = &closesAt.Time
		}
		jobs = append(jobs, jc)
	}
	return jobs, rows.Err()
}
