// Package identity talks to the managed identity provider. It covers the
// two calls the service needs: fetching the authenticated user's profile
// with a bearer token, and an admin lookup of a user record by id.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/allanime/quizhub/internal/auth/session"
	"golang.org/x/oauth2"
)

// ErrUpstream marks any failed identity-provider call. Callers translate it
// to a boolean or a degraded default; it never carries token material.
var ErrUpstream = errors.New("identity provider request failed")

// requestTimeout bounds every outbound call so a slow provider cannot hold
// a request open indefinitely.
const requestTimeout = 10 * time.Second

// Client is an HTTP client for the identity provider's REST surface.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds a client for the provider at baseURL authenticated with
// the given API key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// FetchUser retrieves the profile of the user owning sess. It returns the
// provider's response verbatim alongside the parsed profile so the caller
// can cache the exact bytes.
func (c *Client) FetchUser(ctx context.Context, sess *session.Session) ([]byte, *session.Profile, error) {
	// Bearer auth rides on the oauth2 transport built from the session.
	authed := oauth2.NewClient(ctx, oauth2.StaticTokenSource(sess.Token()))
	authed.Timeout = requestTimeout

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, nil, fmt.Errorf("build profile request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := authed.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, fmt.Errorf("%w: profile fetch returned %d", ErrUpstream, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read profile body: %v", ErrUpstream, err)
	}

	var profile session.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, nil, fmt.Errorf("%w: decode profile: %v", ErrUpstream, err)
	}
	return raw, &profile, nil
}

// LookupUser fetches a user record by id with the service API key. It backs
// the server-side display-name fallback on score submission; callers treat
// any error as "no name available".
func (c *Client) LookupUser(ctx context.Context, userID string) (*session.Profile, error) {
	url := fmt.Sprintf("%s/rest/v1/auth.users?id=eq.%s", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build user lookup request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: user lookup returned %d", ErrUpstream, resp.StatusCode)
	}

	var users []session.Profile
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("%w: decode user lookup: %v", ErrUpstream, err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("%w: user %s not found", ErrUpstream, userID)
	}
	return &users[0], nil
}
