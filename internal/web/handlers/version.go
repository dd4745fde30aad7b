package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/allanime/quizhub/internal/version"
)

// VersionHandler returns build information as JSON.
// GET /api/version
func VersionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"version":    version.Version,
			"commit":     version.Commit,
			"build_time": version.BuildTime,
		})
	}
}
