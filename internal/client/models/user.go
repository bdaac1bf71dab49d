package models

import (
	"bytes"
	"errors"

	"github.com/tidwall/gjson"
)

var ErrInvalidUser = errors.New("invalid user record")

// User is the cached record of the signed-in account.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UnmarshalJSON accepts "_id" as well as "id". null leaves u untouched.
func (u *User) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	if !gjson.ValidBytes(b) {
		return ErrInvalidUser
	}
	r := gjson.ParseBytes(b)
	if !r.IsObject() {
		return ErrInvalidUser
	}
	*u = User{
		ID:    idOf(r),
		Name:  r.Get("name").String(),
		Email: r.Get("email").String(),
	}
	return nil
}

// CredentialPair is the access/refresh token pair issued by the API.
type CredentialPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthResult is the body of /auth/login and /auth/register.
type AuthResult struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

func (a AuthResult) Pair() CredentialPair {
	return CredentialPair{AccessToken: a.AccessToken, RefreshToken: a.RefreshToken}
}
