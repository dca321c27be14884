package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/mtcnamibia/careers/internal/model"
)

func setGender(t *testing.T, db *sql.DB, applicantID int64, gender string) {
	t.Helper()
	if _, err := db.Exec(`UPDATE applicants SET gender = ? WHERE id = ?`, gender, applicantID); err != nil {
		t.Fatalf("set gender: %v", err)
	}
}

func TestDashboardStats(t *testing.T) {
	db := openTestDB(t)
	as := NewApplicationStore(db)

	published := seedJob(t, db, model.JobStatusPublished)
	seedJob(t, db, model.JobStatusDraft)

	jane := seedApplicant(t, db, "jane@example.com")
	tom := seedApplicant(t, db, "tom@example.com")

	seedApplication(t, db, published.ID, jane.ID)
	hired := seedApplication(t, db, published.ID, tom.ID)
	if _, err := as.UpdateStatus(hired.ID, model.ApplicationHired); err != nil {
		t.Fatalf("hire application: %v", err)
	}

	stats, err := NewAnalyticsStore(db).DashboardStats()
	if err != nil {
		t.Fatalf("dashboard stats: %v", err)
	}

	if stats.TotalJobs != 2 {
		t.Errorf("total jobs = %d, want 2", stats.TotalJobs)
	}
	if stats.PublishedJobs != 1 {
		t.Errorf("published jobs = %d, want 1", stats.PublishedJobs)
	}
	if stats.TotalApplications != 2 {
		t.Errorf("total applications = %d, want 2", stats.TotalApplications)
	}
	if stats.PendingApplications != 1 {
		t.Errorf("pending applications = %d, want 1", stats.PendingApplications)
	}
	if stats.HiredCandidates != 1 {
		t.Errorf("hired candidates = %d, want 1", stats.HiredCandidates)
	}
}

func TestAnalyticsEmptyDatabase(t *testing.T) {
	db := openTestDB(t)

	a, err := NewAnalyticsStore(db).Analytics(time.Now().UTC())
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}

	if a.Overview.TotalApplications != 0 {
		t.Errorf("total applications = %d, want 0", a.Overview.TotalApplications)
	}
	if len(a.ByStatus) != 0 {
		t.Errorf("by status = %v, want empty", a.ByStatus)
	}
	if len(a.ByMonth) != 6 {
		t.Fatalf("by month buckets = %d, want 6", len(a.ByMonth))
	}
	for _, m := range a.ByMonth {
		if m.Applications != 0 || m.Hired != 0 {
			t.Errorf("month %s = %+v, want zeros", m.Month, m)
		}
	}
	// Without hires the typical industry figures stand in.
	if a.TimeToHire.AvgDays != 21 || a.TimeToHire.MinDays != 7 || a.TimeToHire.MaxDays != 45 {
		t.Errorf("time to hire = %+v, want defaults 21/7/45", a.TimeToHire)
	}
}

func TestAnalyticsFunnelAndOverview(t *testing.T) {
	db := openTestDB(t)
	as := NewApplicationStore(db)
	job := seedJob(t, db, model.JobStatusPublished)

	statuses := []string{
		model.ApplicationPending,
		model.ApplicationPending,
		model.ApplicationShortlisted,
		model.ApplicationHired,
	}
	for i, status := range statuses {
		applicant := seedApplicant(t, db, "a"+string(rune('0'+i))+"@example.com")
		app := seedApplication(t, db, job.ID, applicant.ID)
		if status != model.ApplicationPending {
			if _, err := as.UpdateStatus(app.ID, status); err != nil {
				t.Fatalf("set status %s: %v", status, err)
			}
		}
	}

	a, err := NewAnalyticsStore(db).Analytics(time.Now().UTC())
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}

	if a.Overview.TotalApplications != 4 {
		t.Errorf("total applications = %d, want 4", a.Overview.TotalApplications)
	}
	if a.Overview.AvgPerJob != 4 {
		t.Errorf("avg per job = %v, want 4", a.Overview.AvgPerJob)
	}
	if a.Overview.ConversionRate != 25 {
		t.Errorf("conversion rate = %v, want 25", a.Overview.ConversionRate)
	}

	// Funnel order with zero-count statuses omitted: PENDING, SHORTLISTED, HIRED.
	wantStatuses := []string{model.ApplicationPending, model.ApplicationShortlisted, model.ApplicationHired}
	if len(a.ByStatus) != len(wantStatuses) {
		t.Fatalf("by status = %v, want %d entries", a.ByStatus, len(wantStatuses))
	}
	for i, want := range wantStatuses {
		if a.ByStatus[i].Status != want {
			t.Errorf("by status[%d] = %q, want %q", i, a.ByStatus[i].Status, want)
		}
	}
	if a.ByStatus[0].Count != 2 || a.ByStatus[0].Percentage != 50 {
		t.Errorf("pending bucket = %+v, want count 2 at 50%%", a.ByStatus[0])
	}
}

func TestAnalyticsByMonth(t *testing.T) {
	db := openTestDB(t)
	job := seedJob(t, db, model.JobStatusPublished)

	jane := seedApplicant(t, db, "jane@example.com")
	tom := seedApplicant(t, db, "tom@example.com")
	seedApplication(t, db, job.ID, jane.ID)
	old := seedApplication(t, db, job.ID, tom.ID)
	// Push one application roughly two months back.
	backdateApplication(t, db, old.ID, 61*24*time.Hour)

	now := time.Now().UTC()
	a, err := NewAnalyticsStore(db).Analytics(now)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}

	if len(a.ByMonth) != 6 {
		t.Fatalf("by month buckets = %d, want 6", len(a.ByMonth))
	}
	last := a.ByMonth[5]
	if last.Month != now.Format("Jan") {
		t.Errorf("last bucket = %q, want current month %q", last.Month, now.Format("Jan"))
	}
	if last.Applications != 1 {
		t.Errorf("current month applications = %d, want 1", last.Applications)
	}

	var total int
	for _, m := range a.ByMonth {
		total += m.Applications
	}
	if total != 2 {
		t.Errorf("applications across buckets = %d, want 2", total)
	}
}

func TestAnalyticsTopJobsAndHires(t *testing.T) {
	db := openTestDB(t)
	as := NewApplicationStore(db)

	popular := seedJob(t, db, model.JobStatusPublished)
	quiet := seedJob(t, db, model.JobStatusPublished)

	jane := seedApplicant(t, db, "jane@example.com")
	tom := seedApplicant(t, db, "tom@example.com")
	setGender(t, db, jane.ID, "FEMALE")

	seedApplication(t, db, popular.ID, tom.ID)
	hiredApp := seedApplication(t, db, popular.ID, jane.ID)
	backdateApplication(t, db, hiredApp.ID, 10*24*time.Hour)
	if _, err := as.UpdateStatus(hiredApp.ID, model.ApplicationHired); err != nil {
		t.Fatalf("hire application: %v", err)
	}

	a, err := NewAnalyticsStore(db).Analytics(time.Now().UTC())
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}

	if len(a.TopJobs) != 2 {
		t.Fatalf("top jobs = %d, want 2", len(a.TopJobs))
	}
	if a.TopJobs[0].ID != popular.ID || a.TopJobs[0].Applications != 2 {
		t.Errorf("top job = %+v, want job %d with 2 applications", a.TopJobs[0], popular.ID)
	}
	if a.TopJobs[1].ID != quiet.ID || a.TopJobs[1].Applications != 0 {
		t.Errorf("second job = %+v, want job %d with 0 applications", a.TopJobs[1], quiet.ID)
	}

	if len(a.RecentHires) != 1 {
		t.Fatalf("recent hires = %d, want 1", len(a.RecentHires))
	}
	if a.RecentHires[0].Email != "jane@example.com" {
		t.Errorf("recent hire email = %q, want jane@example.com", a.RecentHires[0].Email)
	}

	// Ten days between submission and hiring.
	if a.TimeToHire.AvgDays < 9 || a.TimeToHire.AvgDays > 11 {
		t.Errorf("avg days to hire = %d, want about 10", a.TimeToHire.AvgDays)
	}

	var hiredFemale bool
	for _, dc := range a.Demographics.HiredByGender {
		if dc.Group == "FEMALE" && dc.Count == 1 {
			hiredFemale = true
		}
	}
	if !hiredFemale {
		t.Errorf("hired by gender = %v, want FEMALE count 1", a.Demographics.HiredByGender)
	}

	var unspecified bool
	for _, dc := range a.Demographics.ApplicantsByGender {
		if dc.Group == "NOT_SPECIFIED" && dc.Count == 1 {
			unspecified = true
		}
	}
	if !unspecified {
		t.Errorf("applicants by gender = %v, want NOT_SPECIFIED count 1", a.Demographics.ApplicantsByGender)
	}
}
