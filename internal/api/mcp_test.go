package api

import (
	"archive/zip"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kalambet/folio/internal/profile"
	"github.com/kalambet/folio/internal/storage"
)

// --- helpers ---

func newTestMCPDeps(t *testing.T) (MCPDeps, *storage.Store) {
	t.Helper()
	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return MCPDeps{Store: store}, store
}

func toolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("no content in result")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return tc.Text
}

func makeCallToolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func makeReadResourceRequest(uri string) mcp.ReadResourceRequest {
	return mcp.ReadResourceRequest{
		Params: mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

// --- tests ---

func TestMCPTool_SaveProfile(t *testing.T) {
	deps, store := newTestMCPDeps(t)
	handler := mcpSaveProfile(deps)

	req := makeCallToolRequest("save_profile", map[string]interface{}{
		"profile": `{"name": "Alex Rivera"}`,
	})

	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error: %s", toolText(t, result))
	}

	var saved profile.Profile
	if err := json.Unmarshal([]byte(toolText(t, result)), &saved); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if saved.Slug != "alex-rivera" {
		t.Fatalf("expected slug alex-rivera, got %s", saved.Slug)
	}

	// Verify the profile landed in the store.
	p, err := store.LoadProfile("alex-rivera")
	if err != nil {
		t.Fatalf("loading profile: %v", err)
	}
	if p == nil || p.Name != "Alex Rivera" {
		t.Fatalf("profile not persisted: %+v", p)
	}
}

func TestMCPTool_SaveProfile_RejectsInvalid(t *testing.T) {
	deps, _ := newTestMCPDeps(t)
	handler := mcpSaveProfile(deps)

	req := makeCallToolRequest("save_profile", map[string]interface{}{
		"profile": `{"name": ""}`,
	})

	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError for profile without a name")
	}
}

func TestMCPTool_GetProfile(t *testing.T) {
	deps, store := newTestMCPDeps(t)
	if _, err := store.SaveProfile(profile.Profile{Name: "Alex"}); err != nil {
		t.Fatalf("seeding profile: %v", err)
	}
	handler := mcpGetProfile(deps)

	result, err := handler(context.Background(), makeCallToolRequest("get_profile", map[string]interface{}{
		"slug": "alex",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error: %s", toolText(t, result))
	}

	var p profile.Profile
	if err := json.Unmarshal([]byte(toolText(t, result)), &p); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if p.Name != "Alex" {
		t.Fatalf("unexpected name: %s", p.Name)
	}
}

func TestMCPTool_GetProfile_NotFound(t *testing.T) {
	deps, _ := newTestMCPDeps(t)
	handler := mcpGetProfile(deps)

	result, err := handler(context.Background(), makeCallToolRequest("get_profile", map[string]interface{}{
		"slug": "nobody",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError for a missing profile")
	}
}

func TestMCPTool_ListProfiles(t *testing.T) {
	deps, store := newTestMCPDeps(t)
	for _, name := range []string{"Alpha", "Bravo"} {
		if _, err := store.SaveProfile(profile.Profile{Name: name}); err != nil {
			t.Fatalf("seeding profile: %v", err)
		}
	}
	handler := mcpListProfiles(deps)

	result, err := handler(context.Background(), makeCallToolRequest("list_profiles", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error: %s", toolText(t, result))
	}

	var slugs []string
	if err := json.Unmarshal([]byte(toolText(t, result)), &slugs); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(slugs) != 2 {
		t.Fatalf("expected 2 slugs, got %v", slugs)
	}
}

func TestMCPTool_DeleteProfile(t *testing.T) {
	deps, store := newTestMCPDeps(t)
	if _, err := store.SaveProfile(profile.Profile{Name: "Alex"}); err != nil {
		t.Fatalf("seeding profile: %v", err)
	}
	handler := mcpDeleteProfile(deps)

	result, err := handler(context.Background(), makeCallToolRequest("delete_profile", map[string]interface{}{
		"slug": "alex",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error: %s", toolText(t, result))
	}

	p, err := store.LoadProfile("alex")
	if err != nil {
		t.Fatalf("loading profile: %v", err)
	}
	if p != nil {
		t.Fatal("profile still present after delete")
	}
}

func TestMCPTool_ExportSite(t *testing.T) {
	deps, store := newTestMCPDeps(t)
	if _, err := store.SaveProfile(profile.Profile{Name: "Alex"}); err != nil {
		t.Fatalf("seeding profile: %v", err)
	}
	handler := mcpExportSite(deps)

	output := filepath.Join(t.TempDir(), "alex-web.zip")
	result, err := handler(context.Background(), makeCallToolRequest("export_site", map[string]interface{}{
		"slug":   "alex",
		"output": output,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error: %s", toolText(t, result))
	}

	zr, err := zip.OpenReader(output)
	if err != nil {
		t.Fatalf("opening written archive: %v", err)
	}
	defer zr.Close()
	names := make(map[string]bool, len(zr.File))
	for _, f := range zr.File {
		names[f.Name] = true
	}
	if !names["index.html"] || !names["profile.json"] {
		t.Fatalf("archive missing core entries: %v", names)
	}

	records, err := store.ListExports(10)
	if err != nil {
		t.Fatalf("listing exports: %v", err)
	}
	if len(records) != 1 || records[0].Slug != "alex" {
		t.Fatalf("export not recorded: %+v", records)
	}
	if fi, err := os.Stat(output); err != nil || records[0].ByteSize != fi.Size() {
		t.Fatalf("recorded byte size %d does not match archive", records[0].ByteSize)
	}
}

func TestMCPTool_ExportSite_NotFound(t *testing.T) {
	deps, _ := newTestMCPDeps(t)
	handler := mcpExportSite(deps)

	result, err := handler(context.Background(), makeCallToolRequest("export_site", map[string]interface{}{
		"slug": "nobody",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError for a missing profile")
	}
}

func TestMCPResource_Profiles(t *testing.T) {
	deps, store := newTestMCPDeps(t)
	if _, err := store.SaveProfile(profile.Profile{Name: "Alex"}); err != nil {
		t.Fatalf("seeding profile: %v", err)
	}
	handler := mcpResourceProfiles(deps)

	contents, err := handler(context.Background(), makeReadResourceRequest("portfolio://profiles"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("expected 1 content item, got %d", len(contents))
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("expected TextResourceContents, got %T", contents[0])
	}
	var slugs []string
	if err := json.Unmarshal([]byte(text.Text), &slugs); err != nil {
		t.Fatalf("failed to parse resource: %v", err)
	}
	if len(slugs) != 1 || slugs[0] != "alex" {
		t.Fatalf("unexpected slugs: %v", slugs)
	}
}
