package auth

import (
	"context"

	"github.com/mtcnamibia/careers/internal/model"
)

type contextKey struct{}

// AuthContext identifies the authenticated caller for a request.
type AuthContext struct {
	UserID   int64
	Email    string
	UserType string
	Role     string
	Name     string
}

func WithAuth(ctx context.Context, ac AuthContext) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

func FromContext(ctx context.Context) (AuthContext, bool) {
	ac, ok := ctx.Value(contextKey{}).(AuthContext)
	return ac, ok
}

func UserID(ctx context.Context) int64 {
	ac, ok := FromContext(ctx)
	if !ok {
		return 0
	}
	return ac.UserID
}

func IsHR(ctx context.Context) bool {
	ac, ok := FromContext(ctx)
	if !ok {
		return false
	}
	return ac.UserType == model.UserTypeHR
}

func IsApplicant(ctx context.Context) bool {
	ac, ok := FromContext(ctx)
	if !ok {
		return false
	}
	return ac.UserType == model.UserTypeApplicant
}
