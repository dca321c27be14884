package middleware

import (
	"net/http"

	"github.com/mtcnamibia/careers/internal/auth"
)

// RequireAuth validates the session cookie and populates AuthContext.
// The verifier is injected so tests can substitute a static one.
func RequireAuth(verifier auth.SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.SessionCookie)
			if err != nil || cookie.Value == "" {
				unauthorized(w)
				return
			}

			ac, err := verifier.Verify(cookie.Value)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := auth.WithAuth(r.Context(), ac)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth populates AuthContext when a valid session cookie is
// present, and passes the request through anonymously otherwise. Used on
// public routes whose response differs for HR sessions.
func OptionalAuth(verifier auth.SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.SessionCookie)
			if err == nil && cookie.Value != "" {
				if ac, err := verifier.Verify(cookie.Value); err == nil {
					r = r.WithContext(auth.WithAuth(r.Context(), ac))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireHR checks that the session belongs to HR staff.
func RequireHR(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.IsHR(r.Context()) {
			forbidden(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireApplicant checks that the session belongs to an applicant.
func RequireApplicant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.IsApplicant(r.Context()) {
			forbidden(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"Unauthorized"}`))
}

func forbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	w.Write([]byte(`{"error":"Forbidden"}`))
}
