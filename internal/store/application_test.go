package store

import (
	"testing"

	"github.com/mtcnamibia/careers/internal/model"
)

func TestApplicationCreate(t *testing.T) {
	db := openTestDB(t)
	job := seedJob(t, db, model.JobStatusPublished)
	applicant := seedApplicant(t, db, "jane@example.com")

	cover := "I have run national backbone networks for six years."
	app, err := NewApplicationStore(db).Create(job.ID, applicant.ID, &cover)
	if err != nil {
		t.Fatalf("create application: %v", err)
	}

	if app.Status != model.ApplicationPending {
		t.Errorf("status = %q, want PENDING", app.Status)
	}
	if app.CoverLetter == nil || *app.CoverLetter != cover {
		t.Errorf("cover_letter = %v, want %q", app.CoverLetter, cover)
	}
}

func TestApplicationDuplicateRejected(t *testing.T) {
	db := openTestDB(t)
	as := NewApplicationStore(db)
	job := seedJob(t, db, model.JobStatusPublished)
	applicant := seedApplicant(t, db, "jane@example.com")

	seedApplication(t, db, job.ID, applicant.ID)

	exists, err := as.Exists(job.ID, applicant.ID)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Error("Exists = false, want true")
	}

	if _, err := as.Create(job.ID, applicant.ID, nil); err == nil {
		t.Error("expected unique violation for duplicate application")
	}
}

func TestApplicationUpdateStatus(t *testing.T) {
	db := openTestDB(t)
	as := NewApplicationStore(db)
	job := seedJob(t, db, model.JobStatusPublished)
	applicant := seedApplicant(t, db, "jane@example.com")
	app := seedApplication(t, db, job.ID, applicant.ID)

	updated, err := as.UpdateStatus(app.ID, model.ApplicationShortlisted)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != model.ApplicationShortlisted {
		t.Errorf("status = %q, want SHORTLISTED", updated.Status)
	}
}

func TestApplicationDelete(t *testing.T) {
	db := openTestDB(t)
	as := NewApplicationStore(db)
	job := seedJob(t, db, model.JobStatusPublished)
	applicant := seedApplicant(t, db, "jane@example.com")
	app := seedApplication(t, db, job.ID, applicant.ID)

	if err := as.Delete(app.ID); err != nil {
		t.Fatalf("delete application: %v", err)
	}
	got, err := as.GetByID(app.ID)
	if err != nil {
		t.Fatalf("get deleted application: %v", err)
	}
	if got != nil {
		t.Errorf("got = %+v, want nil", got)
	}
}

func TestApplicationGetDetail(t *testing.T) {
	db := openTestDB(t)
	as := NewApplicationStore(db)
	job := seedJob(t, db, model.JobStatusPublished)
	applicant := seedApplicant(t, db, "jane@example.com")
	app := seedApplication(t, db, job.ID, applicant.ID)

	detail, err := as.GetDetailByID(app.ID)
	if err != nil {
		t.Fatalf("get detail: %v", err)
	}
	if detail == nil {
		t.Fatal("detail = nil, want joined row")
	}
	if detail.Job.Title != "Network Engineer" {
		t.Errorf("job title = %q, want Network Engineer", detail.Job.Title)
	}
	if detail.Applicant.Email != "jane@example.com" {
		t.Errorf("applicant email = %q, want jane@example.com", detail.Applicant.Email)
	}

	missing, err := as.GetDetailByID(9999)
	if err != nil {
		t.Fatalf("get missing detail: %v", err)
	}
	if missing != nil {
		t.Errorf("missing = %+v, want nil", missing)
	}
}

func TestApplicationListDetailsByApplicant(t *testing.T) {
	db := openTestDB(t)
	as := NewApplicationStore(db)
	jobA := seedJob(t, db, model.JobStatusPublished)
	jobB := seedJob(t, db, model.JobStatusPublished)
	jane := seedApplicant(t, db, "jane@example.com")
	other := seedApplicant(t, db, "other@example.com")

	seedApplication(t, db, jobA.ID, jane.ID)
	seedApplication(t, db, jobB.ID, jane.ID)
	seedApplication(t, db, jobA.ID, other.ID)

	details, err := as.ListDetailsByApplicant(jane.ID)
	if err != nil {
		t.Fatalf("list by applicant: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("details = %d, want 2", len(details))
	}
	for _, d := range details {
		if d.ApplicantID != jane.ID {
			t.Errorf("applicant id = %d, want %d", d.ApplicantID, jane.ID)
		}
	}
}

func TestApplicationRecentDetails(t *testing.T) {
	db := openTestDB(t)
	as := NewApplicationStore(db)
	job := seedJob(t, db, model.JobStatusPublished)

	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		applicant := seedApplicant(t, db, email)
		seedApplication(t, db, job.ID, applicant.ID)
	}

	recent, err := as.RecentDetails(2)
	if err != nil {
		t.Fatalf("recent details: %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("recent = %d, want 2", len(recent))
	}
}
