package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mtcnamibia/careers/internal/auth"
	"github.com/mtcnamibia/careers/internal/model"
)

// staticVerifier accepts exactly one token.
type staticVerifier struct {
	token string
	ac    auth.AuthContext
}

func (v staticVerifier) Verify(token string) (auth.AuthContext, error) {
	if token != v.token {
		return auth.AuthContext{}, auth.ErrInvalidSession
	}
	return v.ac, nil
}

func TestRequireAuthNoCookie(t *testing.T) {
	handler := RequireAuth(staticVerifier{token: "good"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach handler")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	handler := RequireAuth(staticVerifier{token: "good"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach handler")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: "bad"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuthPopulatesContext(t *testing.T) {
	want := auth.AuthContext{UserID: 5, Email: "hr@mtc.com.na", UserType: model.UserTypeHR, Role: model.RoleHR}

	var got auth.AuthContext
	var ok bool
	handler := RequireAuth(staticVerifier{token: "good", ac: want})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = auth.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: "good"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !ok {
		t.Fatal("expected AuthContext in request context")
	}
	if got != want {
		t.Errorf("AuthContext = %+v, want %+v", got, want)
	}
}

func TestRequireHR(t *testing.T) {
	handler := RequireHR(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Applicant session is rejected.
	req := httptest.NewRequest("GET", "/", nil)
	ctx := auth.WithAuth(req.Context(), auth.AuthContext{UserType: model.UserTypeApplicant})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))
	if rec.Code != http.StatusForbidden {
		t.Errorf("applicant: status = %d, want %d", rec.Code, http.StatusForbidden)
	}

	// HR session passes.
	req = httptest.NewRequest("GET", "/", nil)
	ctx = auth.WithAuth(req.Context(), auth.AuthContext{UserType: model.UserTypeHR})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))
	if rec.Code != http.StatusOK {
		t.Errorf("hr: status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRequireApplicant(t *testing.T) {
	handler := RequireApplicant(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	ctx := auth.WithAuth(req.Context(), auth.AuthContext{UserType: model.UserTypeHR})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))
	if rec.Code != http.StatusForbidden {
		t.Errorf("hr: status = %d, want %d", rec.Code, http.StatusForbidden)
	}

	req = httptest.NewRequest("GET", "/", nil)
	ctx = auth.WithAuth(req.Context(), auth.AuthContext{UserType: model.UserTypeApplicant})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))
	if rec.Code != http.StatusOK {
		t.Errorf("applicant: status = %d, want %d", rec.Code, http.StatusOK)
	}
}
