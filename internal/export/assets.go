package export

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kalambet/folio/internal/profile"
)

// MaterializeAssets rewrites every inline data-URL asset of p into a real
// file under outDir/files and replaces the corresponding field with a URL
// path into the bundle. Only the fixed asset list is covered: the CV, the
// avatar, and an image background. Non-base64 data URLs are left untouched,
// so the caller must tolerate an unrewritten inline asset in that edge case.
//
// Filenames are not deduplicated: two assets sanitizing to the same name
// overwrite each other. Accepted, since a profile carries at most one of
// each asset kind.
func MaterializeAssets(p *profile.Profile, outDir string) error {
	if p.CV != nil && p.CV.DataURL != "" {
		mimeType := p.CV.MimeType
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		fileName := p.CV.FileName
		if fileName == "" {
			fileName = "cv." + ExtForMime(mimeType)
		}
		url, wrote, err := writeAssetIfDataURL(outDir, p.CV.DataURL, fileName)
		if err != nil {
			return fmt.Errorf("writing cv asset: %w", err)
		}
		if wrote {
			p.CV = &profile.FileAsset{
				FileName: fileName,
				MimeType: mimeType,
				URL:      url,
			}
		}
	}

	if strings.HasPrefix(p.AvatarURL, "data:") {
		url, wrote, err := writeAssetIfDataURL(outDir, p.AvatarURL, "avatar")
		if err != nil {
			return fmt.Errorf("writing avatar asset: %w", err)
		}
		if wrote {
			p.AvatarURL = url
		}
	}

	if p.Background.Type == profile.BackgroundImage && strings.HasPrefix(p.Background.ImageURL, "data:") {
		url, wrote, err := writeAssetIfDataURL(outDir, p.Background.ImageURL, "background")
		if err != nil {
			return fmt.Errorf("writing background asset: %w", err)
		}
		if wrote {
			p.Background.ImageURL = url
		}
	}

	return nil
}

// writeAssetIfDataURL decodes a base64 data URL into outDir/files and
// returns the bundle path it was written to. Anything that is not a base64
// data URL is returned unchanged with wrote=false.
func writeAssetIfDataURL(outDir, urlOrDataURL, fileNameHint string) (string, bool, error) {
	if !strings.HasPrefix(urlOrDataURL, "data:") {
		return urlOrDataURL, false, nil
	}
	parsed, ok := ParseDataURL(urlOrDataURL)
	if !ok || !parsed.Base64 {
		return urlOrDataURL, false, nil
	}

	safeName := SanitizeFileName(fileNameHint)
	if !strings.Contains(safeName, ".") {
		safeName += "." + ExtForMime(parsed.MimeType)
	}

	decoded, err := base64.StdEncoding.DecodeString(parsed.Data)
	if err != nil {
		return "", false, fmt.Errorf("decoding base64 payload: %w", err)
	}

	filesDir := filepath.Join(outDir, "files")
	if err := os.MkdirAll(filesDir, 0o755); err != nil {
		return "", false, fmt.Errorf("creating files directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(filesDir, safeName), decoded, 0o644); err != nil {
		return "", false, fmt.Errorf("writing asset file: %w", err)
	}
	return "/files/" + safeName, true, nil
}
