package store

import (
	"testing"
)

func TestApplicantCreateBare(t *testing.T) {
	as := NewApplicantStore(openTestDB(t))

	applicant, err := as.CreateBare("jane@example.com")
	if err != nil {
		t.Fatalf("create bare applicant: %v", err)
	}
	if applicant.Email != "jane@example.com" {
		t.Errorf("email = %q, want %q", applicant.Email, "jane@example.com")
	}
	if applicant.Name != nil {
		t.Errorf("name = %v, want nil for bare profile", applicant.Name)
	}
	if applicant.DisplayName() != "Applicant" {
		t.Errorf("display name = %q, want fallback Applicant", applicant.DisplayName())
	}
}

func TestApplicantGetByEmailMissing(t *testing.T) {
	as := NewApplicantStore(openTestDB(t))

	got, err := as.GetByEmail("missing@example.com")
	if err != nil {
		t.Fatalf("get missing applicant: %v", err)
	}
	if got != nil {
		t.Errorf("got = %+v, want nil", got)
	}
}

func TestApplicantUpdateProfile(t *testing.T) {
	as := NewApplicantStore(openTestDB(t))

	applicant, err := as.CreateBare("jane@example.com")
	if err != nil {
		t.Fatalf("create bare applicant: %v", err)
	}

	name := "Jane Shikongo"
	phone := "+264811234567"
	years := 6
	gender := "FEMALE"
	updated, err := as.UpdateProfile(applicant.ID, ProfileParams{
		Name:            &name,
		Phone:           &phone,
		ExperienceYears: &years,
		Gender:          &gender,
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}

	if updated.Name == nil || *updated.Name != name {
		t.Errorf("name = %v, want %q", updated.Name, name)
	}
	if updated.ExperienceYears == nil || *updated.ExperienceYears != 6 {
		t.Errorf("experience_years = %v, want 6", updated.ExperienceYears)
	}
	if updated.Bio != nil {
		t.Errorf("bio = %v, want nil", updated.Bio)
	}
	if updated.DisplayName() != name {
		t.Errorf("display name = %q, want %q", updated.DisplayName(), name)
	}
}

func TestApplicantSetResumeKey(t *testing.T) {
	as := NewApplicantStore(openTestDB(t))

	applicant, err := as.CreateBare("jane@example.com")
	if err != nil {
		t.Fatalf("create bare applicant: %v", err)
	}

	if err := as.SetResumeKey(applicant.ID, "resumes/1/cv.pdf"); err != nil {
		t.Fatalf("set resume key: %v", err)
	}

	got, err := as.GetByID(applicant.ID)
	if err != nil {
		t.Fatalf("get applicant: %v", err)
	}
	if got.ResumeKey == nil || *got.ResumeKey != "resumes/1/cv.pdf" {
		t.Errorf("resume_key = %v, want resumes/1/cv.pdf", got.ResumeKey)
	}
}

func TestApplicantDuplicateEmail(t *testing.T) {
	as := NewApplicantStore(openTestDB(t))

	if _, err := as.CreateBare("jane@example.com"); err != nil {
		t.Fatalf("create applicant: %v", err)
	}
	if _, err := as.CreateBare("jane@example.com"); err == nil {
		t.Error("expected error creating duplicate applicant email")
	}
}
