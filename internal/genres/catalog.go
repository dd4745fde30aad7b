// Package genres resolves display names and Open-Graph preview images for
// quiz genres, optionally overridden by a YAML catalog file.
package genres

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var whitespaceRegexp = regexp.MustCompile(`\s+`)

type fileCatalog struct {
	Genres []GenreConfig `yaml:"genres"`
}

// GenreConfig is one catalog entry.
type GenreConfig struct {
	Name        string `yaml:"name"`
	DisplayName string `yaml:"display_name"`
	OGImage     string `yaml:"og_image"`
}

// Catalog maps genres to presentation metadata. Genres absent from the
// catalog fall back to deterministic derivation, so the catalog file is
// entirely optional.
type Catalog struct {
	ogBaseURL string
	entries   map[string]GenreConfig // keyed by slug
}

// Load reads the catalog at path. An empty path or missing file yields an
// empty catalog and no error; a present-but-malformed file is an error.
func Load(path, ogBaseURL string) (*Catalog, error) {
	c := &Catalog{
		ogBaseURL: strings.TrimRight(ogBaseURL, "/"),
		entries:   make(map[string]GenreConfig),
	}
	if path == "" {
		return c, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("read genre catalog: %w", err)
	}

	var parsed fileCatalog
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse genre catalog %s: %w", path, err)
	}
	for _, g := range parsed.Genres {
		if g.Name == "" {
			continue
		}
		c.entries[Slug(g.Name)] = g
	}
	return c, nil
}

// Slug lowercases a genre and collapses whitespace runs to underscores,
// matching the naming scheme of the pre-rendered OG images.
func Slug(genre string) string {
	return strings.ToLower(whitespaceRegexp.ReplaceAllString(genre, "_"))
}

// OGImageURL returns the preview image URL for a genre: the catalog override
// when present, otherwise {base}/og_{slug}.png.
func (c *Catalog) OGImageURL(genre string) string {
	if g, ok := c.entries[Slug(genre)]; ok && g.OGImage != "" {
		return g.OGImage
	}
	return fmt.Sprintf("%s/og_%s.png", c.ogBaseURL, Slug(genre))
}

// DisplayName returns the catalog display name when configured, else the
// genre as submitted.
func (c *Catalog) DisplayName(genre string) string {
	if g, ok := c.entries[Slug(genre)]; ok && g.DisplayName != "" {
		return g.DisplayName
	}
	return genre
}
