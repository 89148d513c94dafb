package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kalambet/folio/internal/profile"
	"github.com/kalambet/folio/internal/storage"
)

const maxProfileBodySize = 50 << 20 // 50MB; profiles can embed data-URL assets

// Deps holds dependencies for the HTTP API.
type Deps struct {
	Store *storage.Store
	Token string
}

// NewHandler returns the full HTTP surface: the unauthenticated health and
// site preview endpoints, and the bearer-auth'd management and export
// routes.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", handleHealth)
	r.Get("/u/{slug}", handlePreviewRedirect)
	r.Get("/u/{slug}/*", handlePreview(deps))

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(deps.Token))
		r.Get("/profiles", handleListProfiles(deps))
		r.Post("/profiles", handleSaveProfile(deps))
		r.Get("/profiles/{slug}", handleGetProfile(deps))
		r.Delete("/profiles/{slug}", handleDeleteProfile(deps))
		r.Post("/__export/web", handleExportWeb(deps))
		r.Get("/exports", handleListExports(deps))
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func handleListProfiles(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slugs, err := deps.Store.ListProfiles()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list profiles: %v", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(slugs)
	}
}

func handleSaveProfile(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxProfileBodySize)
		defer r.Body.Close()

		p, err := decodeProfileBody(r)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}

		saved, err := deps.Store.SaveProfile(p)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save profile: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(saved)
	}
}

func handleGetProfile(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

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
		json.NewEncoder(w).Encode(p)
	}
}

func handleDeleteProfile(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		if err := deps.Store.DeleteProfile(slug); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to delete profile: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "deleted"})
	}
}

// decodeProfileBody reads and validates a profile payload from the request.
func decodeProfileBody(r *http.Request) (profile.Profile, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return profile.Profile{}, fmt.Errorf("profile payload exceeds %d bytes", maxErr.Limit)
		}
		return profile.Profile{}, fmt.Errorf("invalid request body: %w", err)
	}
	return profile.Decode(raw)
}

func parseIntParam(r *http.Request, key string, defaultVal, maxVal int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	if maxVal > 0 && v > maxVal {
		return maxVal
	}
	return v
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
