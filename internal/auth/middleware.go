package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	customError "github.com/segyhp/propmgmt/pkg/errors"
	"github.com/segyhp/propmgmt/pkg/response"
)

const (
	IDTokenCookie      = "id_token"
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"

	AdminGroup = "admin"
)

type contextKey string

const userKey contextKey = "user"

// TokenVerifier turns a bearer token into a user
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*User, error)
}

// Middleware rejects requests without a valid token. The token comes from the
// Authorization header or, failing that, the id_token cookie.
func Middleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				response.FromError(w, customError.WrapUnauthorized(errMissingToken))
				return
			}

			user, err := verifier.Verify(r.Context(), token)
			if err != nil {
				response.FromError(w, customError.WrapUnauthorized(err))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireGroup only lets through users in group
func RequireGroup(group string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				response.FromError(w, customError.WrapUnauthorized(errMissingToken))
				return
			}
			if !user.HasGroup(group) {
				response.FromError(w, customError.WrapForbidden("requires group "+group))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userKey).(*User)
	return user, ok
}

var errMissingToken = errors.New("missing bearer token")

func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := r.Cookie(IDTokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}
