package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS_SetsHeadersAndHandlesPreflight(t *testing.T) {
	h := CORS(okHandler())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/feedback", nil))
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("missing allow-origin header")
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/feedback", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("preflight status = %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Fatal("preflight missing allow-methods header")
	}
}

func TestAdminAuth_DisabledWithoutPassword(t *testing.T) {
	h := AdminAuth("")(okHandler())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/setup", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want pass-through", w.Code)
	}
}

func TestAdminAuth_RequiresPassword(t *testing.T) {
	h := AdminAuth("hunter2")(okHandler())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/setup", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if w.Header().Get("WWW-Authenticate") == "" {
		t.Fatal("expected WWW-Authenticate challenge")
	}

	req := httptest.NewRequest(http.MethodPost, "/setup", nil)
	req.SetBasicAuth("admin", "hunter2")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with correct password", w.Code)
	}
}
