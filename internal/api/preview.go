package api

import (
	"encoding/json"
	"io/fs"
	"mime"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"

	"github.com/kalambet/folio/internal/site"
)

func handlePreviewRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, r.URL.Path+"/", http.StatusMovedPermanently)
}

// handlePreview serves the live site for one profile under /u/{slug}/: the
// embedded template files plus profile.json straight from the store. This is
// both the user-facing preview and the origin the client-replica export
// harvests from, so paths here must line up with what index.html references.
func handlePreview(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		rest := path.Clean("/" + chi.URLParam(r, "*"))[1:]
		if rest == "" {
			rest = "index.html"
		}

		if rest == "profile.json" {
			p, err := deps.Store.LoadProfile(slug)
			if err != nil {
				httpError(w, http.StatusInternalServerError, "api_error", "failed to load profile: %v", err)
				return
			}
			if p == nil {
				httpError(w, http.StatusNotFound, "not_found", "profile %q not found", slug)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Cache-Control", "no-store")
			json.NewEncoder(w).Encode(p)
			return
		}

		data, err := fs.ReadFile(site.Files(), rest)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		if ct := mime.TypeByExtension(path.Ext(rest)); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		w.Write(data)
	}
}
