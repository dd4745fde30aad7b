package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/allanime/quizhub/internal/db"
	"github.com/allanime/quizhub/internal/db/models"
	"github.com/allanime/quizhub/internal/logging"
	"gorm.io/gorm"
)

// FeedbackRequest is the feedback submission payload.
type FeedbackRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// SubmitFeedbackHandler stores a feedback submission.
// POST /feedback
func SubmitFeedbackHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := logging.NewRequestID()

		var req FeedbackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("[feedback] %s malformed body: %v", reqID, err)
			writeJSONError(w, http.StatusBadRequest, "invalid_payload")
			return
		}
		if req.Category == "" || req.Message == "" {
			writeJSONError(w, http.StatusBadRequest, "Missing required fields: category, message")
			return
		}

		fb := &models.Feedback{
			Name:     req.Name,
			Email:    req.Email,
			Category: req.Category,
			Message:  req.Message,
		}
		if err := db.InsertFeedback(database, fb); err != nil {
			log.Printf("[feedback] %s insert failed: %v", reqID, err)
			writeJSONError(w, http.StatusInternalServerError, "db_error")
			return
		}

		log.Printf("[feedback] %s saved id=%s category=%q message=%s",
			reqID, fb.ID, fb.Category, logging.TruncatePayload([]byte(fb.Message)))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"ok": true, "data": fb})
	}
}

// ListFeedbackHandler returns recent feedback, newest first.
// GET /feedback?limit=N
func ListFeedbackHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := db.DefaultFeedbackLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				limit = n
			}
		}

		rows, err := db.ListFeedback(database, limit)
		if err != nil {
			log.Printf("[feedback] list failed: %v", err)
			writeJSONError(w, http.StatusInternalServerError, "db_error")
			return
		}
		if rows == nil {
			rows = []models.Feedback{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rows)
	}
}
