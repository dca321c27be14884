package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mtcnamibia/careers/internal/model"
	"github.com/mtcnamibia/careers/internal/store"
)

const recentApplications = 5

type AdminHandler struct {
	analyticsStore   *store.AnalyticsStore
	applicationStore *store.ApplicationStore
	logger           *slog.Logger
}

func NewAdminHandler(as *store.AnalyticsStore, aps *store.ApplicationStore, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{analyticsStore: as, applicationStore: aps, logger: logger}
}

// Stats returns the dashboard header counts plus the most recent
// applications.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analyticsStore.DashboardStats()
	if err != nil {
		h.logger.Error("dashboard stats", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}

	recent, err := h.applicationStore.RecentDetails(recentApplications)
	if err != nil {
		h.logger.Error("recent applications", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}
	if recent == nil {
		recent = []model.ApplicationDetail{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"stats":               stats,
		"recent_applications": recent,
	})
}

// Analytics returns the full analytics payload for the admin charts.
func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.analyticsStore.Analytics(time.Now())
	if err != nil {
		h.logger.Error("analytics", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load analytics")
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}
