package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/allanime/quizhub/internal/config"
	"github.com/allanime/quizhub/internal/db"
	"github.com/allanime/quizhub/internal/genres"
	"github.com/allanime/quizhub/internal/logging"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

// minTokenLength guards against treating short path prefixes (like "share")
// left over from rewrites as tokens.
const minTokenLength = 3

// sharePage is the crawler-facing document: Open-Graph and Twitter-card
// metadata plus an immediate redirect back into the quiz. html/template
// escapes every interpolated value, so stored genre or difficulty strings
// cannot inject markup.
var sharePage = template.Must(template.New("share").Parse(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <meta property="og:type" content="website" />
  <meta property="og:title" content="{{.Title}}" />
  <meta property="og:description" content="{{.Description}}" />
  <meta property="og:image" content="{{.OGImage}}" />
  <meta property="og:image:width" content="1200" />
  <meta property="og:image:height" content="630" />
  <meta property="og:url" content="{{.ShareURL}}" />
  <meta property="og:site_name" content="All.Anime Quiz Hub" />
  <meta name="twitter:card" content="summary_large_image" />
  <meta name="twitter:title" content="{{.Title}}" />
  <meta name="twitter:description" content="{{.Description}}" />
  <meta name="twitter:image" content="{{.OGImage}}" />
  <meta http-equiv="refresh" content="0;url={{.QuizLink}}" />
  <style>
    body { font-family: Arial, sans-serif; margin: 40px; text-align: center; background: #f7f8fb; }
    a { color: #ff6f61; text-decoration: none; font-weight: bold; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <p>{{.Description}}</p>
  <p><a href="{{.QuizLink}}">Take the {{.DisplayGenre}} ({{.Difficulty}}) quiz on All.Anime</a></p>
  <p><small>Redirecting in a moment...</small></p>
</body>
</html>`))

type sharePageData struct {
	Title        string
	Description  string
	OGImage      string
	ShareURL     string
	QuizLink     string
	DisplayGenre string
	Difficulty   string
}

// ShareHandler renders the shareable result page for a token. Read-only:
// resolving the same token always produces the same document.
// GET /share/{token} and GET /share?token=
func ShareHandler(database *gorm.DB, cfg *config.Config, catalog *genres.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			http.Error(w, "Missing token", http.StatusBadRequest)
			return
		}

		score, err := db.GetScoreByToken(database, token)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				http.Error(w, "Not found", http.StatusNotFound)
				return
			}
			log.Printf("[share] %s lookup failed: %v", logging.NewRequestID(), err)
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}

		quizLink := fmt.Sprintf("%s?genre=%s&difficulty=%s&autostart=true",
			cfg.SiteURL, url.QueryEscape(score.Genre), url.QueryEscape(score.Difficulty))

		data := sharePageData{
			Title:        fmt.Sprintf("I scored %d/%d on the %s (%s) quiz", score.Score, score.Total, score.Genre, score.Difficulty),
			Description:  fmt.Sprintf("Try the %s quiz on All.Anime — how well do you know it?", score.Genre),
			OGImage:      catalog.OGImageURL(score.Genre),
			ShareURL:     cfg.ShareURL(score.Token),
			QuizLink:     quizLink,
			DisplayGenre: catalog.DisplayName(score.Genre),
			Difficulty:   score.Difficulty,
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := sharePage.Execute(w, data); err != nil {
			log.Printf("[share] render failed for token %s: %v", token, err)
		}
	}
}

// extractToken accepts the token from the route parameter, the query string,
// or the final path segment, so both rewritten pretty URLs and direct
// invocation work. Path segments shorter than minTokenLength are ignored.
func extractToken(r *http.Request) string {
	if token := chi.URLParam(r, "token"); token != "" {
		return token
	}
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}
	parts := strings.Split(strings.TrimRight(r.URL.Path, "/"), "/")
	if last := parts[len(parts)-1]; len(last) >= minTokenLength && last != "share" {
		return last
	}
	return ""
}
