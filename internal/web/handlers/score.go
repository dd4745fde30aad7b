package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/allanime/quizhub/internal/auth/identity"
	"github.com/allanime/quizhub/internal/config"
	"github.com/allanime/quizhub/internal/db"
	"github.com/allanime/quizhub/internal/db/models"
	"github.com/allanime/quizhub/internal/logging"
	"github.com/allanime/quizhub/internal/sharetoken"
	"gorm.io/gorm"
)

// maxTokenAttempts bounds the retry loop when a generated token hits the
// unique index. At 62^8 possible tokens a second collision in a row is
// effectively a broken generator.
const maxTokenAttempts = 3

// ScoreRequest is the score submission payload, validated once at the
// boundary. Score and Total are pointers so "absent" and "zero" stay
// distinguishable.
type ScoreRequest struct {
	Genre      string `json:"genre"`
	Difficulty string `json:"difficulty"`
	Score      *int   `json:"score"`
	Total      *int   `json:"total"`
	Username   string `json:"username,omitempty"`
	UserID     string `json:"user_id,omitempty"`
}

// Validate enforces the submission invariants before any store access.
func (r *ScoreRequest) Validate() error {
	if r.Genre == "" {
		return errors.New("genre is required")
	}
	if r.Difficulty == "" {
		return errors.New("difficulty is required")
	}
	if r.Score == nil || r.Total == nil {
		return errors.New("score and total must be numbers")
	}
	if *r.Score < 0 || *r.Total < 0 {
		return errors.New("score and total must be non-negative")
	}
	if *r.Score > *r.Total {
		return fmt.Errorf("score %d exceeds total %d", *r.Score, *r.Total)
	}
	return nil
}

// ScoreHandler accepts a quiz score, issues a share token, and persists the
// record.
// POST /score
func ScoreHandler(database *gorm.DB, cfg *config.Config, gen *sharetoken.Generator, ident *identity.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := logging.NewRequestID()
		ctx := logging.WithRequestID(r.Context(), reqID)

		var req ScoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("[score] %s malformed body: %v", reqID, err)
			writeJSONError(w, http.StatusBadRequest, "invalid_payload")
			return
		}
		if err := req.Validate(); err != nil {
			log.Printf("[score] %s rejected: %v", reqID, err)
			writeJSONError(w, http.StatusBadRequest, "invalid_payload")
			return
		}

		userName := resolveDisplayName(ctx, ident, &req)

		score, err := insertWithFreshToken(database, gen, &req, userName)
		if err != nil {
			log.Printf("[score] %s insert failed: %v", reqID, err)
			writeJSONError(w, http.StatusInternalServerError, "db_error")
			return
		}

		log.Printf("[score] %s saved token=%s genre=%q difficulty=%q %d/%d",
			reqID, score.Token, score.Genre, score.Difficulty, score.Score, score.Total)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"ok":        true,
			"token":     score.Token,
			"share_url": cfg.ShareURL(score.Token),
		})
	}
}

// insertWithFreshToken retries with a new token when the unique index
// rejects the generated one. Any other store error aborts immediately.
func insertWithFreshToken(database *gorm.DB, gen *sharetoken.Generator, req *ScoreRequest, userName string) (*models.Score, error) {
	var lastErr error
	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		score := &models.Score{
			Token:      gen.Generate(),
			Genre:      req.Genre,
			Difficulty: req.Difficulty,
			Score:      *req.Score,
			Total:      *req.Total,
			UserID:     req.UserID,
			UserName:   userName,
		}
		err := db.InsertScore(database, score)
		if err == nil {
			return score, nil
		}
		if !errors.Is(err, db.ErrDuplicateToken) {
			return nil, err
		}
		log.Printf("[score] token collision on attempt %d, regenerating", attempt+1)
		lastErr = err
	}
	return nil, fmt.Errorf("exhausted %d token attempts: %w", maxTokenAttempts, lastErr)
}

// resolveDisplayName picks the name recorded with the score. An explicitly
// supplied username always wins; a user_id triggers a best-effort identity
// lookup; everything else is "Anonymous". The precedence order is part of
// the display-integrity contract and must not change.
func resolveDisplayName(ctx context.Context, ident *identity.Client, req *ScoreRequest) string {
	if req.Username != "" {
		return req.Username
	}
	if req.UserID != "" && ident != nil {
		profile, err := ident.LookupUser(ctx, req.UserID)
		if err != nil {
			log.Printf("[score] %s user lookup failed, recording Anonymous: %v", logging.RequestID(ctx), err)
			return "Anonymous"
		}
		if name := profile.UserMetadata.Name; name != "" {
			return name
		}
		if profile.Email != "" {
			return profile.Email
		}
	}
	return "Anonymous"
}

func writeJSONError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": code})
}
