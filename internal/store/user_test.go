package store

import (
	"testing"

	"github.com/mtcnamibia/careers/internal/model"
)

func TestUserSeededStaff(t *testing.T) {
	us := NewUserStore(openTestDB(t))

	admin, err := us.GetByEmail("admin@mtc.com.na")
	if err != nil {
		t.Fatalf("get admin: %v", err)
	}
	if admin == nil || admin.Role != model.RoleAdmin {
		t.Errorf("admin = %+v, want seeded ADMIN account", admin)
	}

	hr, err := us.GetByEmail("hr@mtc.com.na")
	if err != nil {
		t.Fatalf("get hr: %v", err)
	}
	if hr == nil || hr.Role != model.RoleHR {
		t.Errorf("hr = %+v, want seeded HR account", hr)
	}
}

func TestUserCreateAndGet(t *testing.T) {
	us := NewUserStore(openTestDB(t))

	user, err := us.Create("recruiter@mtc.com.na", "New Recruiter", model.RoleHR)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.Email != "recruiter@mtc.com.na" {
		t.Errorf("email = %q, want %q", user.Email, "recruiter@mtc.com.na")
	}

	got, err := us.GetByID(user.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got == nil || got.Name != "New Recruiter" {
		t.Errorf("got = %+v, want name New Recruiter", got)
	}
}

func TestUserNotFound(t *testing.T) {
	us := NewUserStore(openTestDB(t))

	got, err := us.GetByEmail("nobody@mtc.com.na")
	if err != nil {
		t.Fatalf("get missing user: %v", err)
	}
	if got != nil {
		t.Errorf("got = %+v, want nil", got)
	}

	got, err = us.GetByID(9999)
	if err != nil {
		t.Fatalf("get missing id: %v", err)
	}
	if got != nil {
		t.Errorf("got = %+v, want nil", got)
	}
}

func TestUserDuplicateEmail(t *testing.T) {
	us := NewUserStore(openTestDB(t))

	if _, err := us.Create("admin@mtc.com.na", "Duplicate", model.RoleHR); err == nil {
		t.Error("expected error creating duplicate staff email")
	}
}
