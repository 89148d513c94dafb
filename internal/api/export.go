package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/kalambet/folio/internal/export"
	"github.com/kalambet/folio/internal/storage"
)

// handleExportWeb implements the authoritative build: re-run the site
// generator into a scratch directory with the posted profile's inline assets
// materialized as files, then stream the directory back as a zip.
func handleExportWeb(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		r.Body = http.MaxBytesReader(w, r.Body, maxProfileBodySize)
		defer r.Body.Close()

		p, err := decodeProfileBody(r)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}

		slug := p.Slug
		if slug == "" {
			slug = storage.CreateSlug(p.Name)
		}
		slug = export.SanitizeFileName(slug)

		buildDir, err := os.MkdirTemp("", "folio-export-")
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "creating build directory: %v", err)
			return
		}
		defer os.RemoveAll(buildDir)

		if err := export.BuildBundle(p, buildDir); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "building site bundle: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", slug+"-web.zip"))

		cw := &countingWriter{w: w}
		files, err := export.WriteZipDir(cw, buildDir)
		if err != nil {
			// Headers are already out; all we can do is drop the connection.
			slog.Error("streaming export archive failed", "slug", slug, "error", err)
			return
		}

		rec := storage.ExportRecord{
			ID:        uuid.New().String(),
			Slug:      slug,
			Mode:      string(export.ModeServer),
			FileCount: files,
			ByteSize:  cw.n,
			Duration:  time.Since(start),
			CreatedAt: time.Now().UTC(),
		}
		if err := deps.Store.RecordExport(rec); err != nil {
			slog.Warn("recording export failed", "slug", slug, "error", err)
		}
	}
}

func handleListExports(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseIntParam(r, "limit", 20, 100)

		exports, err := deps.Store.ListExports(limit)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list exports: %v", err)
			return
		}
		if exports == nil {
			exports = []storage.ExportRecord{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(exports)
	}
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
