// Package site holds the embedded static site template. The same files back
// the live preview served by the HTTP server and the authoritative export
// build; in both cases the page renders itself from a sibling profile.json.
package site

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed template
var templateFS embed.FS

// Files returns the site template as a filesystem rooted at the template
// directory (index.html at the top level).
func Files() fs.FS {
	sub, err := fs.Sub(templateFS, "template")
	if err != nil {
		// The subtree is embedded at compile time; this cannot fail at runtime.
		panic(err)
	}
	return sub
}

// Write copies the site template into dir, creating directories as needed.
func Write(dir string) error {
	return fs.WalkDir(Files(), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dir, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := fs.ReadFile(Files(), path)
		if err != nil {
			return fmt.Errorf("reading template file %s: %w", path, err)
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("writing template file %s: %w", path, err)
		}
		return nil
	})
}
