package store

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/mtcnamibia/careers/internal/database"
	"github.com/mtcnamibia/careers/internal/model"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// :memory: databases are per-connection under the sql pool.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedJob(t *testing.T, db *sql.DB, status string) *model.Job {
	t.Helper()
	job, err := NewJobStore(db).Create(JobParams{
		Title:        "Network Engineer",
		Department:   "Technology",
		Location:     "Windhoek",
		Type:         model.JobTypeFullTime,
		Description:  "Operate and maintain the core network.",
		Requirements: "5+ years of telecom experience.",
		Status:       status,
	})
	if err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return job
}

func seedApplicant(t *testing.T, db *sql.DB, email string) *model.Applicant {
	t.Helper()
	applicant, err := NewApplicantStore(db).CreateBare(email)
	if err != nil {
		t.Fatalf("seed applicant: %v", err)
	}
	return applicant
}

func seedApplication(t *testing.T, db *sql.DB, jobID, applicantID int64) *model.Application {
	t.Helper()
	app, err := NewApplicationStore(db).Create(jobID, applicantID, nil)
	if err != nil {
		t.Fatalf("seed application: %v", err)
	}
	return app
}

// expireMagicLink backdates a link so expiry paths can be tested.
func expireMagicLink(t *testing.T, db *sql.DB, token string) {
	t.Helper()
	_, err := db.Exec(
		`UPDATE magic_links SET expires_at = datetime('now', '-1 hour') WHERE token = ?`, token)
	if err != nil {
		t.Fatalf("expire magic link: %v", err)
	}
}

// backdateApplication shifts created_at so month-bucket and time-to-hire
// aggregates can be tested.
func backdateApplication(t *testing.T, db *sql.DB, id int64, d time.Duration) {
	t.Helper()
	_, err := db.Exec(
		`UPDATE applications SET created_at = datetime('now', ?) WHERE id = ?`,
		fmt.Sprintf("-%d hours", int(d.Hours())), id)
	if err != nil {
		t.Fatalf("backdate application: %v", err)
	}
}
