package session

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// Session is the authenticated user's token bundle, supplied by the identity
// integration. The cache only ever holds a transient copy; nothing here is
// persisted.
type Session struct {
	AccessToken  string    // Bearer token sent with every API request
	RefreshToken string    // Opaque token exchanged for a new access token
	IDToken      string    // OIDC ID token (JWT), when the provider issues one
	Expiry       time.Time // Access token expiry (zero when unknown)
}

// HasAccessToken reports whether the session carries a usable bearer token.
func (s *Session) HasAccessToken() bool {
	return s != nil && strings.TrimSpace(s.AccessToken) != ""
}

// OAuth2Token converts the session into the standard oauth2 token shape.
func (s *Session) OAuth2Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		Expiry:       s.Expiry,
	}
}

// FromOAuth2Token builds a session from an oauth2 token, carrying over the
// id_token extra when present.
func FromOAuth2Token(t *oauth2.Token) *Session {
	s := &Session{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		Expiry:       t.Expiry,
	}
	if idToken, ok := t.Extra("id_token").(string); ok {
		s.IDToken = idToken
	}
	return s
}

// ExpiryFromAccessToken extracts the exp claim from a JWT access token.
// Used when the provider response carries no explicit expiry. The token is
// parsed unverified; signature validation is the backend's job.
func ExpiryFromAccessToken(rawToken string) (time.Time, error) {
	if strings.TrimSpace(rawToken) == "" {
		return time.Time{}, errors.New("[ExpiryFromAccessToken] empty token")
	}

	token, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return time.Time{}, errors.Wrap(err, "[ExpiryFromAccessToken] ParseUnverified")
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, errors.Wrap(err, "[ExpiryFromAccessToken] GetExpirationTime")
	}
	if exp == nil {
		return time.Time{}, errors.New("[ExpiryFromAccessToken] no exp claim")
	}
	return exp.Time, nil
}
