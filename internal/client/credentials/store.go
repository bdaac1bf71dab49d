// Package credentials keeps the signed-in state of the client: the
// access/refresh token pair and the cached user record. It is the only
// source of authentication state; nothing else is cached.
//
// Writes are fire-and-forget: a failed storage write is logged and the
// in-process caller carries on.
package credentials

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/storage"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyUser         = "authUser"
)

type Store struct {
	repo   storage.Repository
	logger logging.Logger
}

func NewStore(repo storage.Repository, logger logging.Logger) *Store {
	return &Store{repo: repo, logger: logger.With("component", "credentials")}
}

func (s *Store) AccessToken(ctx context.Context) string {
	return s.get(ctx, KeyAccessToken)
}

func (s *Store) RefreshToken(ctx context.Context) string {
	return s.get(ctx, KeyRefreshToken)
}

func (s *Store) IsLoggedIn(ctx context.Context) bool {
	return s.AccessToken(ctx) != ""
}

// SetPair stores both tokens in one write.
func (s *Store) SetPair(ctx context.Context, pair models.CredentialPair) {
	err := s.repo.SetMany(ctx, map[string][]byte{
		KeyAccessToken:  []byte(pair.AccessToken),
		KeyRefreshToken: []byte(pair.RefreshToken),
	})
	if err != nil {
		s.logger.Warn(ctx, "credential write dropped", "error", err)
	}
}

// User returns the cached user record, or nil when absent or unreadable.
func (s *Store) User(ctx context.Context) *models.User {
	raw, err := s.repo.Get(ctx, KeyUser)
	if err != nil {
		s.logger.Warn(ctx, "cached user unreadable", "error", err)
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		s.logger.Warn(ctx, "cached user corrupt, ignoring", "error", err)
		return nil
	}
	return &u
}

func (s *Store) SetUser(ctx context.Context, u models.User) {
	b, err := json.Marshal(u)
	if err != nil {
		s.logger.Warn(ctx, "encode user", "error", err)
		return
	}
	if err := s.repo.Set(ctx, KeyUser, b); err != nil {
		s.logger.Warn(ctx, "user write dropped", "error", err)
	}
}

// ClearAll forgets both tokens and the cached user.
func (s *Store) ClearAll(ctx context.Context) {
	if err := s.repo.Delete(ctx, KeyAccessToken, KeyRefreshToken, KeyUser); err != nil {
		s.logger.Warn(ctx, "credential clear dropped", "error", err)
		return
	}
	s.logger.Info(ctx, "credentials cleared")
}

// AccessTokenExpiry reads the exp claim of a JWT access token without
// verifying it. ok is false for missing or opaque tokens.
func (s *Store) AccessTokenExpiry(ctx context.Context) (time.Time, bool) {
	tok := s.AccessToken(ctx)
	if tok == "" {
		return time.Time{}, false
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

func (s *Store) get(ctx context.Context, key string) string {
	v, err := s.repo.Get(ctx, key)
	if err != nil {
		s.logger.Warn(ctx, "credential read failed", "key", key, "error", err)
		return ""
	}
	return string(v)
}
