package model

// DashboardStats backs the admin dashboard header cards.
type DashboardStats struct {
	TotalJobs             int `json:"total_jobs"`
	PublishedJobs         int `json:"published_jobs"`
	TotalApplications     int `json:"total_applications"`
	PendingApplications   int `json:"pending_applications"`
	ShortlistedCandidates int `json:"shortlisted_candidates"`
	HiredCandidates       int `json:"hired_candidates"`
}

type StatusCount struct {
	Status     string  `json:"status"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
	Jobs       int    `json:"jobs"`
}

type MonthCount struct {
	Month        string `json:"month"`
	Applications int    `json:"applications"`
	Hired        int    `json:"hired"`
}

type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

type TopJob struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Department   string `json:"department"`
	Applications int    `json:"applications"`
	Status       string `json:"status"`
}

type RecentHire struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	JobTitle string `json:"job_title"`
	HiredAt  string `json:"hired_at"`
}

type TimeToHire struct {
	AvgDays int `json:"avg_days"`
	MinDays int `json:"min_days"`
	MaxDays int `json:"max_days"`
}

type DemographicCount struct {
	Group      string  `json:"group"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type Demographics struct {
	ApplicantsByGender []DemographicCount `json:"applicants_by_gender"`
	ApplicantsByRace   []DemographicCount `json:"applicants_by_race"`
	HiredByGender      []DemographicCount `json:"hired_by_gender"`
	HiredByRace        []DemographicCount `json:"hired_by_race"`
}

type AnalyticsOverview struct {
	TotalJobs         int     `json:"total_jobs"`
	PublishedJobs     int     `json:"published_jobs"`
	TotalApplications int     `json:"total_applications"`
	TotalApplicants   int     `json:"total_applicants"`
	AvgPerJob         float64 `json:"avg_applications_per_job"`
	ConversionRate    float64 `json:"conversion_rate"`
}

// Analytics is the full payload for the admin analytics page.
type Analytics struct {
	Overview     AnalyticsOverview `json:"overview"`
	ByStatus     []StatusCount     `json:"applications_by_status"`
	ByDepartment []DepartmentCount `json:"applications_by_department"`
	ByMonth      []MonthCount      `json:"applications_by_month"`
	ByLocation   []LocationCount   `json:"applications_by_location"`
	TopJobs      []TopJob          `json:"top_jobs"`
	RecentHires  []RecentHire      `json:"recent_hires"`
	TimeToHire   TimeToHire        `json:"time_to_hire"`
	Demographics Demographics      `json:"demographics"`
}
