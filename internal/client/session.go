// Package client is a storefront API client whose transport silently renews
// expired access tokens, mirroring the behavior the web frontend gets from its
// response interceptor.
package client

import (
	"sync"

	"github.com/google/uuid"
)

// Profile is the cached identity of the signed-in user.
type Profile struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	IsAdmin bool      `json:"isAdmin"`
}

// Session holds the client-side authentication state: the current access token
// and the cached profile. The refresh token is deliberately absent; it lives
// only in the HTTP cookie jar and is never readable by calling code.
//
// All methods are safe for concurrent use.
type Session struct {
	mu          sync.RWMutex
	accessToken string
	profile     *Profile
}

// NewSession returns an empty, signed-out session.
func NewSession() *Session {
	return &Session{}
}

// SetCredentials installs a new access token and profile after login.
func (s *Session) SetCredentials(accessToken string, profile *Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = accessToken
	s.profile = profile
}

// SetAccessToken replaces only the access token, keeping the cached profile.
// Used after a silent renewal.
func (s *Session) SetAccessToken(accessToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = accessToken
}

// AccessToken returns the current access token, or "" when signed out.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.accessToken
}

// Profile returns the cached profile, or nil when signed out.
func (s *Session) Profile() *Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.profile
}

// Clear wipes the session state. Called on logout and on forced sign-out.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = ""
	s.profile = nil
}
