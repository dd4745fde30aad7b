package auth

import (
	"encoding/json"
	"net/http"
)

// CallbackPageHandler serves the bridge page the identity provider redirects
// to. OAuth fragments never reach the server, so the page forwards
// location.hash to the session endpoint and then strips it from the visible
// address.
func CallbackPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<title>Signing in...</title>
	<style>
		body { font-family: -apple-system, BlinkMacSystemFont, sans-serif; max-width: 600px; margin: 50px auto; padding: 20px; text-align: center; background: #f7f8fb; }
		.err { color: #dc2626; }
	</style>
</head>
<body>
	<h1>Signing you in&hellip;</h1>
	<p id="status">One moment.</p>
	<script>
		(async () => {
			const status = document.getElementById('status');
			try {
				const resp = await fetch('/auth/session', {
					method: 'POST',
					headers: { 'Content-Type': 'application/json' },
					body: JSON.stringify({ fragment: window.location.hash })
				});
				const result = await resp.json();
				// Strip the token fragment whether or not reconciliation worked.
				history.replaceState({}, document.title, window.location.pathname + window.location.search);
				if (result.ok) {
					window.location.href = '/';
				} else {
					status.textContent = 'Sign-in did not complete. You can close this page and try again.';
					status.className = 'err';
				}
			} catch (e) {
				status.textContent = 'Sign-in failed.';
				status.className = 'err';
			}
		})();
	</script>
</body>
</html>`))
	}
}

// SessionHandler is the reconciler's HTTP boundary. It always answers 200
// with {"ok": bool}; failure detail stays in the logs.
func SessionHandler(rec *Reconciler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Fragment string `json:"fragment"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			// Malformed input is "nothing to reconcile", not an error.
			req.Fragment = ""
		}

		ok := rec.HandleCallback(r.Context(), req.Fragment)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"ok": ok})
	}
}

// LogoutHandler clears the stored session and profile.
func LogoutHandler(rec *Reconciler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := rec.Logout(); err != nil {
			http.Error(w, `{"error":"logout failed"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	}
}
