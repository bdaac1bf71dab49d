package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/credentials"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/storage"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/tidwall/gjson"
)

// Session storage keys of the password reset flow.
const (
	KeyResetToken = "resetToken"
	KeyResetEmail = "resetEmail"
)

const genericOAuthMessage = "Google sign-in failed."

var oauthMessages = map[string]string{
	"google_cancelled":     "Google sign-in was cancelled.",
	"google_token":         "Could not authenticate with Google. Please try again.",
	"google_invalid_token": "Invalid Google token.",
	"google_server":        "Internal error while authenticating with Google.",
}

// AuthService defines authentication operations for the CLI.
//
// Login, Register and a successful OAuth callback persist the credential pair
// and the user record. Logout always clears local credentials, even when the
// server cannot be reached.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
	Register(ctx context.Context, name, email, password, confirm string) (*models.AuthResult, error)
	Logout(ctx context.Context)
	CurrentUser(ctx context.Context) *models.User
	IsLoggedIn(ctx context.Context) bool

	GoogleLoginURL() string
	HandleOAuthCallback(ctx context.Context, location string) (*models.User, string, error)

	ForgotPassword(ctx context.Context, email string) (string, error)
	HandleResetCallback(ctx context.Context, location string) (string, bool, error)
	ResetPassword(ctx context.Context, newPassword, confirm string) (string, error)
	PendingReset(ctx context.Context) (string, bool)
	AbandonReset(ctx context.Context)
}

type authService struct {
	client  client.Client
	creds   *credentials.Store
	session storage.Repository
	logger  logging.Logger
}

// NewAuthService constructs an AuthService. session holds the transient
// password reset state and is normally a storage.MemoryRepository.
func NewAuthService(c client.Client, creds *credentials.Store, session storage.Repository, logger logging.Logger) AuthService {
	return &authService{client: c, creds: creds, session: session, logger: logger.With("component", "auth")}
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	var res models.AuthResult
	in := map[string]string{"email": email, "password": password}
	if err := a.client.Do(ctx, http.MethodPost, "/auth/login", in, &res); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	a.persist(ctx, res)
	return &res, nil
}

// Register creates an account and signs it in. An empty name defaults to the
// local part of the email.
func (a *authService) Register(ctx context.Context, name, email, password, confirm string) (*models.AuthResult, error) {
	if password != confirm {
		return nil, ErrPasswordMismatch
	}
	if strings.TrimSpace(name) == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	var res models.AuthResult
	in := map[string]string{"name": name, "email": email, "password": password}
	if err := a.client.Do(ctx, http.MethodPost, "/auth/register", in, &res); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	a.persist(ctx, res)
	return &res, nil
}

func (a *authService) persist(ctx context.Context, res models.AuthResult) {
	a.creds.SetPair(ctx, res.Pair())
	a.creds.SetUser(ctx, res.User)
}

func (a *authService) Logout(ctx context.Context) {
	defer a.creds.ClearAll(ctx)

	rt := a.creds.RefreshToken(ctx)
	if rt == "" {
		return
	}
	if err := a.client.Do(ctx, http.MethodPost, "/auth/logout", map[string]string{"refreshToken": rt}, nil); err != nil {
		a.logger.Warn(ctx, "server logout failed", "error", err)
	}
}

func (a *authService) CurrentUser(ctx context.Context) *models.User {
	return a.creds.User(ctx)
}

func (a *authService) IsLoggedIn(ctx context.Context) bool {
	return a.creds.IsLoggedIn(ctx)
}

func (a *authService) GoogleLoginURL() string {
	return a.client.URL("/auth/google")
}

// HandleOAuthCallback inspects the query of the location the OAuth flow
// returned to. It returns the signed-in user (nil when the location carries
// no callback data) and the location to display, which has its query removed
// whenever callback data was present.
func (a *authService) HandleOAuthCallback(ctx context.Context, location string) (*models.User, string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, location, fmt.Errorf("parse callback location: %w", err)
	}
	q := u.Query()

	accessToken := q.Get("accessToken")
	authError := q.Get("auth_error")
	if accessToken == "" && authError == "" {
		return nil, location, nil
	}

	u.RawQuery = ""
	u.Fragment = ""
	clean := u.String()

	if authError != "" {
		msg, ok := oauthMessages[authError]
		if !ok {
			a.logger.Warn(ctx, "unknown oauth error code", "code", authError)
			msg = genericOAuthMessage
		}
		return nil, clean, &OAuthError{Code: authError, Message: msg}
	}

	a.creds.SetPair(ctx, models.CredentialPair{AccessToken: accessToken, RefreshToken: q.Get("refreshToken")})
	user := models.User{ID: q.Get("userId"), Name: q.Get("userName"), Email: q.Get("userEmail")}
	a.creds.SetUser(ctx, user)
	a.logger.Info(ctx, "signed in with google", "user_id", user.ID)

	return &user, clean, nil
}

func (a *authService) ForgotPassword(ctx context.Context, email string) (string, error) {
	raw, err := a.client.Request(ctx, "/auth/forgot-password", jsonBody(http.MethodPost, map[string]string{"email": email}))
	if err != nil {
		return "", fmt.Errorf("forgot password: %w", err)
	}
	return messageOf(raw, "Check your email for reset instructions."), nil
}

// HandleResetCallback switches into reset mode when the location carries
// reset_token and email. Both are moved into session storage and removed from
// the returned location; other query parameters are kept.
func (a *authService) HandleResetCallback(ctx context.Context, location string) (string, bool, error) {
	u, err := url.Parse(location)
	if err != nil {
		return location, false, fmt.Errorf("parse reset location: %w", err)
	}
	q := u.Query()

	token, email := q.Get("reset_token"), q.Get("email")
	if token == "" || email == "" {
		return location, false, nil
	}

	err = a.session.SetMany(ctx, map[string][]byte{
		KeyResetToken: []byte(token),
		KeyResetEmail: []byte(email),
	})
	if err != nil {
		return location, false, fmt.Errorf("save reset state: %w", err)
	}

	q.Del("reset_token")
	q.Del("email")
	u.RawQuery = q.Encode()
	return u.String(), true, nil
}

func (a *authService) ResetPassword(ctx context.Context, newPassword, confirm string) (string, error) {
	if newPassword != confirm {
		return "", ErrPasswordMismatch
	}
	token, email, ok := a.pending(ctx)
	if !ok {
		return "", ErrNoPendingReset
	}

	in := map[string]string{"token": token, "email": email, "newPassword": newPassword}
	raw, err := a.client.Request(ctx, "/auth/reset-password", jsonBody(http.MethodPost, in))
	if err != nil {
		return "", fmt.Errorf("reset password: %w", err)
	}

	a.AbandonReset(ctx)
	return messageOf(raw, "Password changed."), nil
}

// PendingReset reports the email of the reset in progress, if any.
func (a *authService) PendingReset(ctx context.Context) (string, bool) {
	_, email, ok := a.pending(ctx)
	return email, ok
}

func (a *authService) AbandonReset(ctx context.Context) {
	if err := a.session.Delete(ctx, KeyResetToken, KeyResetEmail); err != nil {
		a.logger.Warn(ctx, "failed to clear reset state", "error", err)
	}
}

func (a *authService) pending(ctx context.Context) (token, email string, ok bool) {
	t, err := a.session.Get(ctx, KeyResetToken)
	if err != nil {
		a.logger.Warn(ctx, "failed to read reset state", "error", err)
		return "", "", false
	}
	e, err := a.session.Get(ctx, KeyResetEmail)
	if err != nil {
		a.logger.Warn(ctx, "failed to read reset state", "error", err)
		return "", "", false
	}
	if len(t) == 0 || len(e) == 0 {
		return "", "", false
	}
	return string(t), string(e), true
}

func messageOf(raw []byte, fallback string) string {
	if msg := gjson.GetBytes(raw, "message").String(); msg != "" {
		return msg
	}
	return fallback
}
