package genres

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Shonen":        "shonen",
		"Slice of Life": "slice_of_life",
		"Mecha  Wars":   "mecha_wars",
	}
	for in, want := range cases {
		if got := Slug(in); got != want {
			t.Fatalf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoad_MissingFileIsEmptyCatalog(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "https://cdn.example.com")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got := c.OGImageURL("Slice of Life")
	want := "https://cdn.example.com/og_slice_of_life.png"
	if got != want {
		t.Fatalf("og image = %q, want %q", got, want)
	}
}

func TestLoad_OverridesApply(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "genres.yaml")
	cfg := `genres:
  - name: Shonen
    display_name: Shōnen
    og_image: https://cdn.example.com/custom/shonen.png
`
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	c, err := Load(path, "https://cdn.example.com")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := c.OGImageURL("shonen"); got != "https://cdn.example.com/custom/shonen.png" {
		t.Fatalf("expected override image, got %q", got)
	}
	if got := c.DisplayName("Shonen"); got != "Shōnen" {
		t.Fatalf("expected display name override, got %q", got)
	}
	if got := c.DisplayName("Mecha"); got != "Mecha" {
		t.Fatalf("expected passthrough display name, got %q", got)
	}
}

func TestLoad_MalformedFileIsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "genres.yaml")
	if err := os.WriteFile(path, []byte("genres: [::bad"), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	if _, err := Load(path, ""); err == nil {
		t.Fatal("expected parse error")
	}
}
