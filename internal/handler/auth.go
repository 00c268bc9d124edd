package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/segyhp/propmgmt/internal/auth"
	"github.com/segyhp/propmgmt/internal/logging"
	customError "github.com/segyhp/propmgmt/pkg/errors"
	"github.com/segyhp/propmgmt/pkg/response"
)

const (
	stateCookie = "oauth_state"

	sessionMaxAge = time.Hour
	refreshMaxAge = 30 * 24 * time.Hour
	stateMaxAge   = 10 * time.Minute
)

// OAuthFlow is the hosted-UI login flow the handler drives
type OAuthFlow interface {
	LoginURL(state string) string
	LogoutURL(redirect string) string
	Exchange(ctx context.Context, code string) (*auth.Tokens, error)
}

// AuthHandler runs the Cognito hosted-UI login and keeps the tokens in cookies
type AuthHandler struct {
	flow         OAuthFlow
	verifier     auth.TokenVerifier
	cookieSecure bool
	homePath     string
}

func NewAuthHandler(flow OAuthFlow, verifier auth.TokenVerifier, cookieSecure bool, homePath string) *AuthHandler {
	if homePath == "" {
		homePath = "/"
	}
	return &AuthHandler{
		flow:         flow,
		verifier:     verifier,
		cookieSecure: cookieSecure,
		homePath:     homePath,
	}
}

// Login redirects to the hosted UI with a fresh state value
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	h.setCookie(w, stateCookie, state, stateMaxAge)
	http.Redirect(w, r, h.flow.LoginURL(state), http.StatusFound)
}

// Callback exchanges the authorization code and stores the tokens
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	// 1. Check the callback parameters
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		response.FromError(w, customError.WrapUnauthorized(errors.New("authorization failed: "+errParam)))
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		response.FromError(w, customError.WrapValidation("missing authorization code"))
		return
	}

	if cookie, err := r.Cookie(stateCookie); err == nil && cookie.Value != r.URL.Query().Get("state") {
		response.FromError(w, customError.WrapValidation("state mismatch"))
		return
	}

	// 2. Exchange the code
	tokens, err := h.flow.Exchange(ctx, code)
	if err != nil {
		logger.Warn("authorization code exchange failed", slog.Any(logging.FieldError, err))
		response.FromError(w, customError.WrapUnauthorized(err))
		return
	}

	// 3. Only keep tokens that verify
	user, err := h.verifier.Verify(ctx, tokens.IDToken)
	if err != nil {
		logger.Warn("id token rejected", slog.Any(logging.FieldError, err))
		response.FromError(w, customError.WrapUnauthorized(err))
		return
	}

	// 4. Store the session
	h.setCookie(w, auth.IDTokenCookie, tokens.IDToken, sessionMaxAge)
	h.setCookie(w, auth.AccessTokenCookie, tokens.AccessToken, sessionMaxAge)
	if tokens.RefreshToken != "" {
		h.setCookie(w, auth.RefreshTokenCookie, tokens.RefreshToken, refreshMaxAge)
	}
	h.clearCookie(w, stateCookie)

	logger.Info("user logged in", slog.String(logging.FieldUserID, user.UserID))
	http.Redirect(w, r, h.homePath, http.StatusFound)
}

// Logout drops the session cookies and signs out of the hosted UI
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	for _, name := range []string{auth.IDTokenCookie, auth.AccessTokenCookie, auth.RefreshTokenCookie} {
		h.clearCookie(w, name)
	}

	redirect := r.URL.Query().Get("redirect_uri")
	if redirect == "" {
		redirect = h.homePath
	}
	http.Redirect(w, r, h.flow.LogoutURL(redirect), http.StatusFound)
}

// Me returns the authenticated user
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		response.FromError(w, customError.WrapUnauthorized(errors.New("not logged in")))
		return
	}
	response.Success(w, user)
}

func (h *AuthHandler) setCookie(w http.ResponseWriter, name, value string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
