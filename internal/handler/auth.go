package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mtcnamibia/careers/internal/auth"
	"github.com/mtcnamibia/careers/internal/email"
	"github.com/mtcnamibia/careers/internal/model"
	"github.com/mtcnamibia/careers/internal/store"
)

// genericLinkMessage is returned for every magic-link request, whether or
// not an account exists. Response shape must not leak account existence.
const genericLinkMessage = "If an account exists, a login link has been sent."

type AuthHandler struct {
	userStore      *store.UserStore
	applicantStore *store.ApplicantStore
	magicLinkStore *store.MagicLinkStore
	emailService   *email.Service
	sessions       *auth.Manager
	logger         *slog.Logger
}

func NewAuthHandler(
	us *store.UserStore,
	as *store.ApplicantStore,
	mls *store.MagicLinkStore,
	es *email.Service,
	sessions *auth.Manager,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		userStore:      us,
		applicantStore: as,
		magicLinkStore: mls,
		emailService:   es,
		sessions:       sessions,
		logger:         logger,
	}
}

type magicLinkRequest struct {
	Email    string `json:"email"`
	UserType string `json:"userType"`
}

// RequestMagicLink issues a login link for the given email and portal
// kind. The response is identical whether or not the account exists.
func (h *AuthHandler) RequestMagicLink(w http.ResponseWriter, r *http.Request) {
	var req magicLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if !validEmail(req.Email) {
		writeError(w, http.StatusBadRequest, "valid email is required")
		return
	}
	if !model.ValidUserType(req.UserType) {
		writeError(w, http.StatusBadRequest, "userType must be HR or APPLICANT")
		return
	}

	if req.UserType == model.UserTypeHR {
		user, err := h.userStore.GetByEmail(req.Email)
		if err != nil {
			h.logger.Error("staff lookup", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to process request")
			return
		}
		if user == nil {
			// Unknown staff email: same response, no credential, no email.
			writeJSON(w, http.StatusOK, map[string]string{"message": genericLinkMessage})
			return
		}
	} else {
		applicant, err := h.applicantStore.GetByEmail(req.Email)
		if err != nil {
			h.logger.Error("applicant lookup", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to process request")
			return
		}
		if applicant == nil {
			if _, err := h.applicantStore.CreateBare(req.Email); err != nil {
				h.logger.Error("auto-provision applicant", "error", err)
				writeError(w, http.StatusInternalServerError, "failed to process request")
				return
			}
		}
	}

	link, err := h.magicLinkStore.Create(req.Email, req.UserType)
	if err != nil {
		h.logger.Error("create magic link", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to process request")
		return
	}

	// Delivery failure is logged and recorded but never surfaced: the
	// caller still gets the generic response.
	isHR := req.UserType == model.UserTypeHR
	if err := h.emailService.SendMagicLink(r.Context(), req.Email, link.Token, isHR); err != nil {
		h.logger.Error("send magic link", "error", err, "email", req.Email)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": genericLinkMessage})
}

// Verify consumes a magic link and establishes a session. Failures
// redirect to the login page with a coarse error code; the specific
// cause is only logged.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Redirect(w, r, "/login?error=invalid-token", http.StatusSeeOther)
		return
	}

	link, err := h.magicLinkStore.Consume(token)
	if err != nil {
		h.logger.Error("consume magic link", "error", err)
		http.Redirect(w, r, "/login?error=expired-token", http.StatusSeeOther)
		return
	}
	if link == nil {
		// Unknown, already used, or expired. One coarse code for all.
		http.Redirect(w, r, "/login?error=expired-token", http.StatusSeeOther)
		return
	}

	var sessionToken, destination string
	switch link.UserType {
	case model.UserTypeHR:
		user, err := h.userStore.GetByEmail(link.Email)
		if err != nil || user == nil {
			h.logger.Warn("verify: staff account missing", "email", link.Email, "error", err)
			http.Redirect(w, r, "/login?error=user-not-found", http.StatusSeeOther)
			return
		}
		sessionToken, err = h.sessions.IssueHR(user)
		if err != nil {
			h.logger.Error("issue session", "error", err)
			http.Redirect(w, r, "/login?error=invalid-token", http.StatusSeeOther)
			return
		}
		destination = "/admin"
	case model.UserTypeApplicant:
		applicant, err := h.applicantStore.GetByEmail(link.Email)
		if err != nil || applicant == nil {
			h.logger.Warn("verify: applicant missing", "email", link.Email, "error", err)
			http.Redirect(w, r, "/login?error=user-not-found", http.StatusSeeOther)
			return
		}
		sessionToken, err = h.sessions.IssueApplicant(applicant)
		if err != nil {
			h.logger.Error("issue session", "error", err)
			http.Redirect(w, r, "/login?error=invalid-token", http.StatusSeeOther)
			return
		}
		destination = "/portal"
	default:
		http.Redirect(w, r, "/login?error=invalid-token", http.StatusSeeOther)
		return
	}

	http.SetCookie(w, h.sessions.SessionCookieFor(sessionToken))
	http.Redirect(w, r, destination, http.StatusSeeOther)
}

// Logout expires the session cookie. Issued tokens are not revoked
// server-side; they simply age out.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessions.ClearCookie())
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}
