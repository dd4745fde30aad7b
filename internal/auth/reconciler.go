// Package auth reconciles implicit-grant OAuth callbacks with the local
// session store and exposes the HTTP surface of the auth flow.
package auth

import (
	"context"
	"log"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/allanime/quizhub/internal/auth/identity"
	"github.com/allanime/quizhub/internal/auth/session"
)

// Reconciler walks an implicit-grant callback through its steps: extract
// tokens from the fragment, persist the session, fetch the user profile,
// persist it, and refresh the in-memory references. The public contract is
// boolean — the calling page's control flow only branches on success — but
// the steps propagate real errors internally so failures stay observable.
type Reconciler struct {
	store    *session.Store
	identity *identity.Client

	mu      sync.Mutex
	sess    *session.Session
	profile *session.Profile
}

// NewReconciler builds a reconciler over the given store and identity
// client, priming the in-memory state from whatever the store holds.
func NewReconciler(store *session.Store, ident *identity.Client) *Reconciler {
	return &Reconciler{
		store:    store,
		identity: ident,
		sess:     store.Load(),
		profile:  store.LoadProfile(),
	}
}

// HandleCallback processes a navigation fragment. It returns true iff the
// session was stored and the profile fetch succeeded; false in every other
// case, including "no callback present". It never panics or errors out to
// the caller.
func (r *Reconciler) HandleCallback(ctx context.Context, fragment string) bool {
	ok, err := r.reconcile(ctx, fragment)
	if err != nil {
		log.Printf("[auth] callback reconciliation failed: %v", err)
	}
	return ok
}

func (r *Reconciler) reconcile(ctx context.Context, fragment string) (bool, error) {
	sess, ok := extractSession(fragment)
	if !ok {
		// No access_token in the fragment: nothing to do, store untouched.
		return false, nil
	}

	if err := r.store.Save(sess); err != nil {
		return false, err
	}

	raw, profile, err := r.identity.FetchUser(ctx, sess)
	if err != nil {
		// The session write above is intentionally not rolled back; the
		// next successful callback overwrites it.
		return false, err
	}

	if err := r.store.SaveProfile(raw); err != nil {
		return false, err
	}

	r.mu.Lock()
	r.sess = sess
	r.profile = profile
	r.mu.Unlock()

	log.Printf("[auth] session reconciled for user %s", profile.UserID())
	return true, nil
}

// extractSession parses a fragment of key=value pairs. It returns false
// when no access_token is present, treating malformed input as absence.
func extractSession(fragment string) (*session.Session, bool) {
	fragment = strings.TrimPrefix(fragment, "#")
	if fragment == "" {
		return nil, false
	}
	params, err := url.ParseQuery(fragment)
	if err != nil {
		return nil, false
	}
	accessToken := params.Get("access_token")
	if accessToken == "" {
		return nil, false
	}

	sess := &session.Session{
		AccessToken:  accessToken,
		RefreshToken: params.Get("refresh_token"),
	}
	if expiresIn, err := strconv.ParseInt(params.Get("expires_in"), 10, 64); err == nil {
		sess.ExpiresIn = expiresIn
		sess.ExpiresAt = time.Now().Add(time.Duration(expiresIn) * time.Second)
	}
	return sess, true
}

// CleanRedirect strips the callback fragment from a URL. Safe to call on a
// URL that has no fragment.
func CleanRedirect(raw string) string {
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		return raw[:i]
	}
	return raw
}

// Logout deletes the stored session and profile.
func (r *Reconciler) Logout() error {
	r.mu.Lock()
	r.sess = nil
	r.profile = nil
	r.mu.Unlock()
	return r.store.Clear()
}

// CurrentSession returns the in-memory session reference.
func (r *Reconciler) CurrentSession() *session.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sess
}

// CurrentProfile returns the in-memory profile reference.
func (r *Reconciler) CurrentProfile() *session.Profile {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.profile
}

// IsAuthenticated reports whether both a session and a profile are present.
func (r *Reconciler) IsAuthenticated() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sess != nil && r.profile != nil
}
