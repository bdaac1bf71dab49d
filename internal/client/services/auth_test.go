package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/credentials"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/storage"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const authOK = `{"accessToken":"A","refreshToken":"R","user":{"_id":"u1","name":"Ann","email":"ann@example.com"}}`

func newAuth(t *testing.T) (AuthService, *fakeClient, *credentials.Store, *storage.MemoryRepository) {
	t.Helper()
	fc := newFakeClient()
	creds := credentials.NewStore(storage.NewMemoryRepository(), logging.Nop())
	session := storage.NewMemoryRepository()
	return NewAuthService(fc, creds, session, logging.Nop()), fc, creds, session
}

func TestLogin_PersistsCredentials(t *testing.T) {
	svc, fc, creds, _ := newAuth(t)
	ctx := context.Background()
	fc.responses["POST /auth/login"] = authOK

	res, err := svc.Login(ctx, "ann@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "A", res.AccessToken)
	assert.JSONEq(t, `{"email":"ann@example.com","password":"secret"}`, fc.last().Body)

	assert.Equal(t, "A", creds.AccessToken(ctx))
	assert.Equal(t, "R", creds.RefreshToken(ctx))
	assert.Equal(t, &models.User{ID: "u1", Name: "Ann", Email: "ann@example.com"}, svc.CurrentUser(ctx))
	assert.True(t, svc.IsLoggedIn(ctx))
}

func TestLogin_FailureLeavesStateUntouched(t *testing.T) {
	svc, fc, creds, _ := newAuth(t)
	ctx := context.Background()
	fc.errs["POST /auth/login"] = &client.APIError{Status: 400, Message: "Invalid credentials"}

	_, err := svc.Login(ctx, "ann@example.com", "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid credentials")
	assert.False(t, creds.IsLoggedIn(ctx))
}

func TestRegister(t *testing.T) {
	t.Run("mismatch rejected before network", func(t *testing.T) {
		svc, fc, _, _ := newAuth(t)
		_, err := svc.Register(context.Background(), "Ann", "ann@example.com", "a", "b")
		require.ErrorIs(t, err, ErrPasswordMismatch)
		assert.Empty(t, fc.calls)
	})

	t.Run("name defaults to email local part", func(t *testing.T) {
		svc, fc, creds, _ := newAuth(t)
		ctx := context.Background()
		fc.responses["POST /auth/register"] = authOK

		_, err := svc.Register(ctx, " ", "ann@example.com", "pw", "pw")
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"ann","email":"ann@example.com","password":"pw"}`, fc.last().Body)
		assert.True(t, creds.IsLoggedIn(ctx))
	})
}

func TestLogout(t *testing.T) {
	t.Run("server failure still clears", func(t *testing.T) {
		svc, fc, creds, _ := newAuth(t)
		ctx := context.Background()
		creds.SetPair(ctx, models.CredentialPair{AccessToken: "A", RefreshToken: "R"})
		creds.SetUser(ctx, models.User{ID: "u1"})
		fc.errs["POST /auth/logout"] = client.ErrUnavailable

		svc.Logout(ctx)

		assert.JSONEq(t, `{"refreshToken":"R"}`, fc.last().Body)
		assert.False(t, creds.IsLoggedIn(ctx))
		assert.Empty(t, creds.RefreshToken(ctx))
		assert.Nil(t, creds.User(ctx))
	})

	t.Run("no refresh token skips server call", func(t *testing.T) {
		svc, fc, creds, _ := newAuth(t)
		ctx := context.Background()
		creds.SetPair(ctx, models.CredentialPair{AccessToken: "A"})

		svc.Logout(ctx)

		assert.Empty(t, fc.calls)
		assert.False(t, creds.IsLoggedIn(ctx))
	})
}

func TestGoogleLoginURL(t *testing.T) {
	svc, _, _, _ := newAuth(t)
	assert.Equal(t, "http://api.test/auth/google", svc.GoogleLoginURL())
}

func TestHandleOAuthCallback(t *testing.T) {
	tests := []struct {
		name      string
		location  string
		wantUser  *models.User
		wantClean string
		wantMsg   string
	}{
		{
			name:      "no callback data",
			location:  "http://shop.local/catalog?page=2",
			wantClean: "http://shop.local/catalog?page=2",
		},
		{
			name:      "credentials",
			location:  "http://shop.local/?accessToken=A&refreshToken=R&userName=Ann&userEmail=ann%40example.com&userId=u1",
			wantUser:  &models.User{ID: "u1", Name: "Ann", Email: "ann@example.com"},
			wantClean: "http://shop.local/",
		},
		{
			name:      "known error",
			location:  "http://shop.local/?auth_error=google_cancelled",
			wantClean: "http://shop.local/",
			wantMsg:   "Google sign-in was cancelled.",
		},
		{
			name:      "unknown error",
			location:  "http://shop.local/home?auth_error=google_quota",
			wantClean: "http://shop.local/home",
			wantMsg:   genericOAuthMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, creds, _ := newAuth(t)
			ctx := context.Background()

			user, clean, err := svc.HandleOAuthCallback(ctx, tt.location)
			assert.Equal(t, tt.wantClean, clean)
			assert.Equal(t, tt.wantUser, user)

			if tt.wantMsg != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrOAuth))
				assert.Equal(t, tt.wantMsg, err.Error())
				assert.False(t, creds.IsLoggedIn(ctx))
				return
			}
			require.NoError(t, err)
			if tt.wantUser != nil {
				assert.Equal(t, "A", creds.AccessToken(ctx))
				assert.Equal(t, "R", creds.RefreshToken(ctx))
				assert.Equal(t, tt.wantUser, creds.User(ctx))
			}
		})
	}
}

func TestHandleOAuthCallback_EveryKnownCode(t *testing.T) {
	svc, _, _, _ := newAuth(t)
	for code, msg := range oauthMessages {
		_, _, err := svc.HandleOAuthCallback(context.Background(), "http://shop.local/?auth_error="+code)
		var oerr *OAuthError
		require.ErrorAs(t, err, &oerr)
		assert.Equal(t, code, oerr.Code)
		assert.Equal(t, msg, oerr.Message)
	}
}

func TestForgotPassword(t *testing.T) {
	svc, fc, _, _ := newAuth(t)
	fc.responses["POST /auth/forgot-password"] = `{"message":"Email sent"}`

	msg, err := svc.ForgotPassword(context.Background(), "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Email sent", msg)
	assert.JSONEq(t, `{"email":"ann@example.com"}`, fc.last().Body)
}

func TestResetFlow(t *testing.T) {
	svc, fc, _, session := newAuth(t)
	ctx := context.Background()

	_, err := svc.ResetPassword(ctx, "new", "new")
	require.ErrorIs(t, err, ErrNoPendingReset)

	clean, pending, err := svc.HandleResetCallback(ctx, "http://shop.local/?reset_token=T1&email=ann%40example.com&tab=login")
	require.NoError(t, err)
	assert.True(t, pending)
	assert.Equal(t, "http://shop.local/?tab=login", clean)

	email, ok := svc.PendingReset(ctx)
	assert.True(t, ok)
	assert.Equal(t, "ann@example.com", email)

	_, err = svc.ResetPassword(ctx, "new", "other")
	require.ErrorIs(t, err, ErrPasswordMismatch)

	fc.responses["POST /auth/reset-password"] = `{"message":"Password updated"}`
	msg, err := svc.ResetPassword(ctx, "new", "new")
	require.NoError(t, err)
	assert.Equal(t, "Password updated", msg)
	assert.JSONEq(t, `{"token":"T1","email":"ann@example.com","newPassword":"new"}`, fc.last().Body)

	_, ok = svc.PendingReset(ctx)
	assert.False(t, ok)
	all, err := session.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestResetFlow_FailureKeepsPendingState(t *testing.T) {
	svc, fc, _, _ := newAuth(t)
	ctx := context.Background()

	_, _, err := svc.HandleResetCallback(ctx, "http://shop.local/?reset_token=T1&email=a%40b.c")
	require.NoError(t, err)

	fc.errs["POST /auth/reset-password"] = &client.APIError{Status: 400, Message: "Token expired"}
	_, err = svc.ResetPassword(ctx, "pw", "pw")
	require.Error(t, err)

	_, ok := svc.PendingReset(ctx)
	assert.True(t, ok)

	svc.AbandonReset(ctx)
	_, ok = svc.PendingReset(ctx)
	assert.False(t, ok)
}

func TestHandleResetCallback_IncompleteParamsIgnored(t *testing.T) {
	svc, _, _, _ := newAuth(t)
	clean, pending, err := svc.HandleResetCallback(context.Background(), "http://shop.local/?reset_token=T1")
	require.NoError(t, err)
	assert.False(t, pending)
	assert.Equal(t, "http://shop.local/?reset_token=T1", clean)
}
