package api

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kalambet/folio/internal/export"
	"github.com/kalambet/folio/internal/profile"
	"github.com/kalambet/folio/internal/storage"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Store *storage.Store
}

// NewMCPServer creates an MCP server exposing the portfolio store and the
// export pipeline as tools.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"folio",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("folio: local portfolio profile store and static-site exporter."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("list_profiles",
			mcp.WithDescription("List the slugs of all saved portfolio profiles."),
		),
		mcpListProfiles(deps),
	)

	s.AddTool(
		mcp.NewTool("get_profile",
			mcp.WithDescription("Fetch one portfolio profile as JSON."),
			mcp.WithString("slug", mcp.Description("Profile slug"), mcp.Required()),
		),
		mcpGetProfile(deps),
	)

	s.AddTool(
		mcp.NewTool("save_profile",
			mcp.WithDescription("Save a portfolio profile. A unique slug is assigned from the profile's slug or name; the saved profile is returned."),
			mcp.WithString("profile", mcp.Description("Complete profile as a JSON object string"), mcp.Required()),
		),
		mcpSaveProfile(deps),
	)

	s.AddTool(
		mcp.NewTool("delete_profile",
			mcp.WithDescription("Delete a portfolio profile and its slug index entry."),
			mcp.WithString("slug", mcp.Description("Profile slug"), mcp.Required()),
		),
		mcpDeleteProfile(deps),
	)

	s.AddTool(
		mcp.NewTool("export_site",
			mcp.WithDescription("Export a saved profile as a self-contained static website zip on disk."),
			mcp.WithString("slug", mcp.Description("Profile slug"), mcp.Required()),
			mcp.WithString("output", mcp.Description("Output zip path (defaults to <slug>-web.zip in the working directory)")),
		),
		mcpExportSite(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"portfolio://profiles",
			"Portfolio Profiles",
			mcp.WithResourceDescription("Slug index of all saved profiles as JSON"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceProfiles(deps),
	)

	return s
}

func mcpListProfiles(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		slugs, err := deps.Store.ListProfiles()
		if err != nil {
			return mcpError(fmt.Sprintf("failed to list profiles: %v", err)), nil
		}
		b, err := json.Marshal(slugs)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal slugs: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpGetProfile(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		slug, err := req.RequireString("slug")
		if err != nil {
			return mcpError("slug is required"), nil
		}

		p, err := deps.Store.LoadProfile(slug)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to load profile: %v", err)), nil
		}
		if p == nil {
			return mcpError(fmt.Sprintf("profile %q not found", slug)), nil
		}

		b, err := json.Marshal(p)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal profile: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpSaveProfile(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := req.RequireString("profile")
		if err != nil {
			return mcpError("profile is required"), nil
		}

		p, err := profile.Decode([]byte(raw))
		if err != nil {
			return mcpError(fmt.Sprintf("invalid profile: %v", err)), nil
		}

		saved, err := deps.Store.SaveProfile(p)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to save profile: %v", err)), nil
		}

		b, err := json.Marshal(saved)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal saved profile: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpDeleteProfile(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		slug, err := req.RequireString("slug")
		if err != nil {
			return mcpError("slug is required"), nil
		}

		if err := deps.Store.DeleteProfile(slug); err != nil {
			return mcpError(fmt.Sprintf("failed to delete profile: %v", err)), nil
		}
		return mcpText(fmt.Sprintf("Deleted profile %s", slug)), nil
	}
}

func mcpExportSite(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		slug, err := req.RequireString("slug")
		if err != nil {
			return mcpError("slug is required"), nil
		}

		p, err := deps.Store.LoadProfile(slug)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to load profile: %v", err)), nil
		}
		if p == nil {
			return mcpError(fmt.Sprintf("profile %q not found", slug)), nil
		}

		output := req.GetString("output", "")
		if output == "" {
			output = export.ZipFileName(*p)
		}

		buildDir, err := os.MkdirTemp("", "folio-export-")
		if err != nil {
			return mcpError(fmt.Sprintf("creating build directory: %v", err)), nil
		}
		defer os.RemoveAll(buildDir)

		if err := export.BuildBundle(*p, buildDir); err != nil {
			return mcpError(fmt.Sprintf("building site bundle: %v", err)), nil
		}

		f, err := os.Create(output)
		if err != nil {
			return mcpError(fmt.Sprintf("creating %s: %v", output, err)), nil
		}
		defer f.Close()

		files, err := export.WriteZipDir(f, buildDir)
		if err != nil {
			return mcpError(fmt.Sprintf("writing archive: %v", err)), nil
		}

		info, err := f.Stat()
		var size int64
		if err == nil {
			size = info.Size()
		}
		rec := storage.ExportRecord{
			ID:        uuid.New().String(),
			Slug:      p.Slug,
			Mode:      string(export.ModeServer),
			FileCount: files,
			ByteSize:  size,
			Duration:  time.Since(start),
			CreatedAt: time.Now().UTC(),
		}
		if err := deps.Store.RecordExport(rec); err != nil {
			return mcpError(fmt.Sprintf("archive written but recording export failed: %v", err)), nil
		}

		return mcpText(fmt.Sprintf("Exported %s (%d files) to %s", p.Slug, files, output)), nil
	}
}

func mcpResourceProfiles(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		slugs, err := deps.Store.ListProfiles()
		if err != nil {
			return nil, fmt.Errorf("failed to list profiles: %w", err)
		}

		b, err := json.Marshal(slugs)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal slugs: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
