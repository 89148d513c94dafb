package export

import (
	"fmt"
	"os"

	"github.com/kalambet/folio/internal/profile"
	"github.com/kalambet/folio/internal/site"
	"github.com/kalambet/folio/internal/storage"
)

// BuildBundle writes a complete, self-contained static site for p into
// outDir: the site template, every inline asset materialized under files/,
// and profile.json at the bundle root. The written profile references assets
// by bundle path, never by data URL, so the result works offline.
func BuildBundle(p profile.Profile, outDir string) error {
	if err := site.Write(outDir); err != nil {
		return fmt.Errorf("writing site template: %w", err)
	}
	if err := MaterializeAssets(&p, outDir); err != nil {
		return err
	}
	data, err := profile.Encode(p)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outDir+"/profile.json", data, 0o644); err != nil {
		return fmt.Errorf("writing profile.json: %w", err)
	}
	return nil
}

// ZipFileName is the suggested download filename for a profile's export.
func ZipFileName(p profile.Profile) string {
	slug := p.Slug
	if slug == "" {
		slug = storage.CreateSlug(p.Name)
	}
	return slug + "-web.zip"
}
