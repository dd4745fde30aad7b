// Package session persists the current auth session and user profile as two
// JSON blobs in a local state directory, standing in for the browser's
// localStorage in the original flow.
package session

import (
	"time"

	"golang.org/x/oauth2"
)

// Session holds the tokens extracted from an implicit-grant callback.
// Either both token fields are present or the session is absent; partial
// sessions are never written.
type Session struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	ExpiresIn    int64     `json:"expiresIn"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// Token converts the session into an oauth2 token for authenticated calls.
func (s *Session) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		Expiry:       s.ExpiresAt,
	}
}

// Expired reports whether the access token's lifetime has elapsed.
func (s *Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// Profile is the identity provider's user record, cached verbatim. Beyond
// the three accessors below it is treated as opaque.
type Profile struct {
	ID           string `json:"id"`
	Email        string `json:"email,omitempty"`
	UserMetadata struct {
		Name      string `json:"name,omitempty"`
		AvatarURL string `json:"avatar_url,omitempty"`
	} `json:"user_metadata"`
}

// DisplayName prefers the metadata name, then the email, then "User".
func (p *Profile) DisplayName() string {
	if p == nil {
		return "User"
	}
	if p.UserMetadata.Name != "" {
		return p.UserMetadata.Name
	}
	if p.Email != "" {
		return p.Email
	}
	return "User"
}

// AvatarURL returns the metadata avatar URL, empty when unset.
func (p *Profile) AvatarURL() string {
	if p == nil {
		return ""
	}
	return p.UserMetadata.AvatarURL
}

// UserID returns the provider-assigned user id, empty when unset.
func (p *Profile) UserID() string {
	if p == nil {
		return ""
	}
	return p.ID
}
