package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/kalambet/folio/internal/profile"
)

// Replica builds a website archive by harvesting the already-deployed site:
// it fetches the live index.html, follows every same-origin src/href
// reference, and archives the results together with a freshly serialized
// profile.json. No build step runs, so inline data-URL assets in the profile
// are carried through as-is.
type Replica struct {
	// BaseURL is the deployed site's base (for a preview served at
	// /u/<slug>/, the full URL including that path).
	BaseURL *url.URL
	Client  *http.Client
}

// skippedRefPrefixes are reference kinds that never map to an archive file.
var skippedRefPrefixes = []string{"data:", "mailto:", "tel:", "javascript:", "#"}

// collectAssetPaths scans index.html for src/href attributes, resolves each
// against the base URL, keeps same-origin references, and returns their
// archive paths with the deployment base prefix stripped. index.html itself
// is always included.
func (r *Replica) collectAssetPaths(indexHTML []byte) []string {
	paths := []string{"index.html"}
	seen := map[string]bool{"index.html": true}

	tokenizer := html.NewTokenizer(bytes.NewReader(indexHTML))
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		token := tokenizer.Token()
		for _, attr := range token.Attr {
			if attr.Key != "src" && attr.Key != "href" {
				continue
			}
			ref := strings.TrimSpace(attr.Val)
			if ref == "" || isSkippedRef(ref) {
				continue
			}
			resolved, err := r.BaseURL.Parse(ref)
			if err != nil {
				continue
			}
			if resolved.Scheme != r.BaseURL.Scheme || resolved.Host != r.BaseURL.Host {
				continue
			}
			zipPath := normalizeZipPath(resolved.Path, r.BaseURL.Path)
			if !seen[zipPath] {
				seen[zipPath] = true
				paths = append(paths, zipPath)
			}
		}
	}
	return paths
}

func isSkippedRef(ref string) bool {
	for _, prefix := range skippedRefPrefixes {
		if strings.HasPrefix(ref, prefix) {
			return true
		}
	}
	return false
}

// normalizeZipPath turns a resolved URL path into an archive path: leading
// slash dropped, deployment base prefix stripped, empty result defaulting to
// index.html.
func normalizeZipPath(pathname, basePathname string) string {
	normalized := strings.TrimPrefix(pathname, "/")
	basePrefix := strings.Trim(basePathname, "/")
	if basePrefix != "" && strings.HasPrefix(normalized, basePrefix+"/") {
		normalized = normalized[len(basePrefix)+1:]
	}
	if normalized == "" {
		return "index.html"
	}
	return normalized
}

// BuildArchive fetches the live site's files and writes them to w as a zip
// archive together with profile.json. Asset downloads run as one concurrent
// batch; any single failure aborts the whole export with no partial archive.
// Returns the number of archived files (profile.json included).
func (r *Replica) BuildArchive(ctx context.Context, p profile.Profile, w io.Writer) (int, error) {
	indexHTML, err := r.fetch(ctx, "index.html")
	if err != nil {
		return 0, fmt.Errorf("loading site index for export: %w", err)
	}

	paths := r.collectAssetPaths(indexHTML)
	bodies := make([][]byte, len(paths))
	bodies[0] = indexHTML

	g, gCtx := errgroup.WithContext(ctx)
	for i, assetPath := range paths[1:] {
		i, assetPath := i+1, assetPath
		g.Go(func() error {
			body, err := r.fetch(gCtx, assetPath)
			if err != nil {
				return fmt.Errorf("downloading %s for export: %w", assetPath, err)
			}
			bodies[i] = body
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	zw := newZipWriter(w)
	for i, assetPath := range paths {
		entry, err := zw.Create(assetPath)
		if err != nil {
			zw.Close()
			return 0, fmt.Errorf("creating archive entry %s: %w", assetPath, err)
		}
		if _, err := entry.Write(bodies[i]); err != nil {
			zw.Close()
			return 0, fmt.Errorf("archiving %s: %w", assetPath, err)
		}
	}

	data, err := profile.Encode(p)
	if err != nil {
		zw.Close()
		return 0, err
	}
	entry, err := zw.Create("profile.json")
	if err != nil {
		zw.Close()
		return 0, fmt.Errorf("creating profile.json entry: %w", err)
	}
	if _, err := entry.Write(data); err != nil {
		zw.Close()
		return 0, fmt.Errorf("archiving profile.json: %w", err)
	}
	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("finalizing archive: %w", err)
	}
	return len(paths) + 1, nil
}

func (r *Replica) fetch(ctx context.Context, assetPath string) ([]byte, error) {
	target, err := r.BaseURL.Parse(assetPath)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", assetPath, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
