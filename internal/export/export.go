package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/kalambet/folio/internal/profile"
)

// Mode identifies which export strategy produced an archive.
type Mode string

const (
	// ModeServer is the authoritative build: the server re-runs the site
	// generator and materializes inline assets into files.
	ModeServer Mode = "server"
	// ModeClient is the fallback replica harvested from the live site;
	// inline assets stay inline.
	ModeClient Mode = "client"
)

// Result reports how an export was produced.
type Result struct {
	Mode  Mode
	Files int
}

// Exporter produces a website zip for a profile, preferring the server's
// authoritative build and falling back transparently to the client replica
// when the build endpoint is unreachable or unsuccessful.
type Exporter struct {
	// ExportURL is the full build endpoint URL (…/__export/web).
	ExportURL string
	// BaseURL is the live site base the replica harvests from; must end
	// with a trailing slash.
	BaseURL *url.URL
	Token   string
	Client  *http.Client
}

// Export writes the archive for p to w and reports which mode produced it.
// A server build failure is not surfaced to the caller; only a subsequent
// replica failure is. Neither mode retries.
func (e *Exporter) Export(ctx context.Context, p profile.Profile, w io.Writer) (Result, error) {
	// Buffer the server response so a mid-stream failure cannot leave a
	// partial archive in w before the fallback runs.
	var buf bytes.Buffer
	if err := e.exportViaServer(ctx, p, &buf); err == nil {
		if _, err := buf.WriteTo(w); err != nil {
			return Result{}, fmt.Errorf("writing archive: %w", err)
		}
		return Result{Mode: ModeServer}, nil
	} else {
		slog.Debug("server export unavailable, falling back to client replica", "error", err)
	}

	replica := &Replica{BaseURL: e.BaseURL, Client: e.Client}
	files, err := replica.BuildArchive(ctx, p, w)
	if err != nil {
		return Result{}, err
	}
	return Result{Mode: ModeClient, Files: files}, nil
}

// exportViaServer posts the profile to the build endpoint and streams the
// returned archive into w. Any transport error or non-2xx status means the
// build is unavailable and the replica should take over.
func (e *Exporter) exportViaServer(ctx context.Context, p profile.Profile, w io.Writer) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshalling profile: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.ExportURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if e.Token != "" {
		req.Header.Set("Authorization", "Bearer "+e.Token)
	}

	resp, err := e.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("build endpoint returned %d", resp.StatusCode)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("streaming archive: %w", err)
	}
	return nil
}
