package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/allanime/quizhub/internal/auth/identity"
	"github.com/allanime/quizhub/internal/auth/session"
)

func newTestReconciler(t *testing.T, identityURL string) (*Reconciler, *session.Store) {
	t.Helper()
	store, err := session.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ident := identity.NewClient(identityURL, "test-key")
	return NewReconciler(store, ident), store
}

func newFakeIdentityServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/user" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			t.Error("expected bearer authorization header")
		}
		if r.Header.Get("apikey") != "test-key" {
			t.Errorf("expected apikey header, got %q", r.Header.Get("apikey"))
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHandleCallback_NoAccessToken(t *testing.T) {
	rec, store := newTestReconciler(t, "http://identity.invalid")

	for _, fragment := range []string{"", "#", "#type=recovery&expires_in=3600", "#;;%zz"} {
		if rec.HandleCallback(context.Background(), fragment) {
			t.Fatalf("fragment %q should not reconcile", fragment)
		}
	}
	if store.Load() != nil {
		t.Fatal("store should be untouched when no token is present")
	}
}

func TestHandleCallback_Success(t *testing.T) {
	srv := newFakeIdentityServer(t, http.StatusOK,
		`{"id":"u1","email":"kenji@example.com","user_metadata":{"name":"Kenji","avatar_url":"https://cdn.example.com/a.png"}}`)
	rec, store := newTestReconciler(t, srv.URL)

	fragment := "#access_token=at-123&refresh_token=rt-456&expires_in=3600&token_type=bearer"
	if !rec.HandleCallback(context.Background(), fragment) {
		t.Fatal("expected successful reconciliation")
	}

	sess := store.Load()
	if sess == nil {
		t.Fatal("expected stored session")
	}
	if sess.AccessToken != "at-123" || sess.RefreshToken != "rt-456" || sess.ExpiresIn != 3600 {
		t.Fatalf("unexpected session %+v", sess)
	}
	if sess.ExpiresAt.IsZero() {
		t.Fatal("expected ExpiresAt to be derived from expires_in")
	}

	profile := store.LoadProfile()
	if profile == nil {
		t.Fatal("expected stored profile")
	}
	if profile.DisplayName() != "Kenji" {
		t.Fatalf("display name = %q", profile.DisplayName())
	}
	if !rec.IsAuthenticated() {
		t.Fatal("expected authenticated state")
	}
	if rec.CurrentProfile().UserID() != "u1" {
		t.Fatal("expected in-memory profile reference to be updated")
	}
}

func TestHandleCallback_ProfileFetchFails(t *testing.T) {
	srv := newFakeIdentityServer(t, http.StatusInternalServerError, "boom")
	rec, store := newTestReconciler(t, srv.URL)

	if rec.HandleCallback(context.Background(), "#access_token=at-123&expires_in=60") {
		t.Fatal("expected failure when profile fetch errors")
	}
	// The session write is intentionally left in place.
	if store.Load() == nil {
		t.Fatal("expected session to remain stored after profile-fetch failure")
	}
	if store.LoadProfile() != nil {
		t.Fatal("profile should not be stored on failure")
	}
	if rec.IsAuthenticated() {
		t.Fatal("reconciler should not report authenticated")
	}
}

func TestLogout(t *testing.T) {
	srv := newFakeIdentityServer(t, http.StatusOK, `{"id":"u1"}`)
	rec, store := newTestReconciler(t, srv.URL)

	if !rec.HandleCallback(context.Background(), "#access_token=at&expires_in=60") {
		t.Fatal("setup reconciliation failed")
	}
	if err := rec.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if store.Load() != nil || store.LoadProfile() != nil {
		t.Fatal("logout should clear both blobs")
	}
	if rec.IsAuthenticated() {
		t.Fatal("expected unauthenticated state after logout")
	}
}

func TestCleanRedirect(t *testing.T) {
	if got := CleanRedirect("https://quiz.example.com/app#access_token=x"); got != "https://quiz.example.com/app" {
		t.Fatalf("got %q", got)
	}
	// Idempotent on a URL without a fragment.
	if got := CleanRedirect("https://quiz.example.com/app"); got != "https://quiz.example.com/app" {
		t.Fatalf("got %q", got)
	}
}

func TestSessionHandler(t *testing.T) {
	srv := newFakeIdentityServer(t, http.StatusOK, `{"id":"u1","email":"k@example.com"}`)
	rec, _ := newTestReconciler(t, srv.URL)
	handler := SessionHandler(rec)

	// Fragment without a token answers ok=false, still 200.
	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodPost, "/auth/session", strings.NewReader(`{"fragment":"#type=recovery"}`)))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp map[string]bool
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["ok"] {
		t.Fatal("expected ok=false")
	}

	// Real fragment reconciles.
	w = httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodPost, "/auth/session", strings.NewReader(`{"fragment":"#access_token=at&expires_in=60"}`)))
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp["ok"] {
		t.Fatal("expected ok=true")
	}
}
