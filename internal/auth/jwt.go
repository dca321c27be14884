package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mtcnamibia/careers/internal/model"
)

const (
	// SessionCookie is the name of the session cookie set after a
	// magic link is verified.
	SessionCookie = "mtc_session"

	sessionTTL = 7 * 24 * time.Hour
	issuer     = "mtc-careers"
)

var ErrInvalidSession = errors.New("invalid session")

// Claims is the JWT payload carried in the session cookie.
type Claims struct {
	UserID   int64  `json:"uid"`
	Email    string `json:"email"`
	UserType string `json:"user_type"`
	Role     string `json:"role,omitempty"`
	Name     string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// SessionVerifier turns a session token back into an AuthContext.
// Middleware depends on this interface so tests can substitute a
// static verifier.
type SessionVerifier interface {
	Verify(token string) (AuthContext, error)
}

// Manager issues and verifies signed session tokens. Sessions are
// stateless: there is no server-side session table, a cookie is valid
// until it expires or the signing secret rotates.
type Manager struct {
	secret []byte
	secure bool
}

func NewManager(secret string, secure bool) *Manager {
	return &Manager{secret: []byte(secret), secure: secure}
}

// IssueHR creates a session token for an HR or admin user.
func (m *Manager) IssueHR(u *model.User) (string, error) {
	return m.sign(Claims{
		UserID:   u.ID,
		Email:    u.Email,
		UserType: model.UserTypeHR,
		Role:     u.Role,
		Name:     u.Name,
	})
}

// IssueApplicant creates a session token for an applicant.
func (m *Manager) IssueApplicant(a *model.Applicant) (string, error) {
	return m.sign(Claims{
		UserID:   a.ID,
		Email:    a.Email,
		UserType: model.UserTypeApplicant,
		Name:     a.DisplayName(),
	})
}

func (m *Manager) sign(claims Claims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a session token. Any failure, whether a
// bad signature, expiry, or malformed claims, reports ErrInvalidSession.
func (m *Manager) Verify(tokenString string) (AuthContext, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(t *jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil || !token.Valid {
		return AuthContext{}, ErrInvalidSession
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !model.ValidUserType(claims.UserType) {
		return AuthContext{}, ErrInvalidSession
	}
	return AuthContext{
		UserID:   claims.UserID,
		Email:    claims.Email,
		UserType: claims.UserType,
		Role:     claims.Role,
		Name:     claims.Name,
	}, nil
}

// SessionCookieFor wraps a signed token in the session cookie.
func (m *Manager) SessionCookieFor(token string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie expires the session cookie.
func (m *Manager) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
