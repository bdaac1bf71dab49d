package services

import "errors"

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrNoPendingReset   = errors.New("no password reset in progress")
	ErrOAuth            = errors.New("google sign-in failed")
	ErrNotFound         = errors.New("not found")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
)

// OAuthError is a failed OAuth callback. Message is the user-facing text for
// Code.
type OAuthError struct {
	Code    string
	Message string
}

func (e *OAuthError) Error() string { return e.Message }

func (e *OAuthError) Unwrap() error { return ErrOAuth }
