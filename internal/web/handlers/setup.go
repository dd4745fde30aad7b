package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/allanime/quizhub/internal/db"
	"github.com/allanime/quizhub/internal/db/models"
	"gorm.io/gorm"
)

// SetupHandler re-runs migrations and verifies the scores schema with a
// probe row. Guarded by admin auth when a password is configured.
// POST /setup
func SetupHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Migrate(database); err != nil {
			log.Printf("[setup] migration failed: %v", err)
			writeJSONError(w, http.StatusInternalServerError, "migration failed")
			return
		}

		// Probe insert + delete proves the table accepts the full row shape.
		probe := &models.Score{
			Token:      "_setup_probe",
			Genre:      "_test",
			Difficulty: "_test",
			Score:      0,
			Total:      1,
			UserName:   "Test",
		}
		if err := db.InsertScore(database, probe); err != nil {
			log.Printf("[setup] probe insert failed: %v", err)
			writeJSONError(w, http.StatusInternalServerError, "schema verification failed")
			return
		}
		if err := database.Delete(probe).Error; err != nil {
			log.Printf("[setup] probe cleanup failed: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true, "message": "Setup complete"})
	}
}
