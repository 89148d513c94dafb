package main

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/kalambet/folio/internal/config"
	"github.com/kalambet/folio/internal/cvfile"
	"github.com/kalambet/folio/internal/export"
	"github.com/kalambet/folio/internal/profile"
)

// --- profile ---

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage portfolio profiles",
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profile slugs",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/profiles")
		if err != nil {
			return err
		}

		var slugs []string
		if err := decodeJSON(resp, &slugs); err != nil {
			return err
		}

		if len(slugs) == 0 {
			fmt.Println("No profiles saved.")
			return nil
		}
		for _, slug := range slugs {
			fmt.Println(slug)
		}
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show a profile as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/profiles/"+args[0])
		if err != nil {
			return err
		}

		var p any
		if err := decodeJSON(resp, &p); err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	},
}

var profileInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Save the bundled example profile as a starting point",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/profiles", profile.Default())
		if err != nil {
			return err
		}

		var saved profile.Profile
		if err := decodeJSON(resp, &saved); err != nil {
			return err
		}

		printSuccess("Saved profile %s", saved.Slug)
		return nil
	},
}

var profileImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import a profile from a JSON file and save it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}

		// Validate locally before touching the store, so a bad payload
		// changes nothing.
		p, err := profile.Decode(data)
		if err != nil {
			printError("Could not load JSON file: %v", err)
			return err
		}

		if p.CV != nil && p.CV.DataURL != "" {
			if info, err := cvfile.InspectAsset(p.CV); err == nil && info.Pages > 0 {
				printStep("CV: %s (%d pages, %d bytes)", info.FileName, info.Pages, info.ByteSize)
			}
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/profiles", p)
		if err != nil {
			return err
		}

		var saved profile.Profile
		if err := decodeJSON(resp, &saved); err != nil {
			return err
		}

		printSuccess("Imported %s as profile %s", filepath.Base(args[0]), saved.Slug)
		return nil
	},
}

var profileExportCmd = &cobra.Command{
	Use:   "export <slug>",
	Short: "Download a profile as a standalone JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/profiles/"+args[0])
		if err != nil {
			return err
		}

		var p profile.Profile
		if err := decodeJSON(resp, &p); err != nil {
			return err
		}

		if output == "" {
			output = p.Slug + ".json"
		}
		data, err := profile.Encode(p)
		if err != nil {
			return err
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", output, err)
		}

		printSuccess("Wrote %s", output)
		return nil
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <slug>",
	Short: "Delete a profile and its slug index entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.delete(cmd.Context(), "/profiles/"+args[0])
		if err != nil {
			return err
		}

		var result map[string]string
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Deleted %s", args[0])
		return nil
	},
}

func init() {
	profileExportCmd.Flags().String("output", "", "output file path (default: <slug>.json)")
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileInitCmd)
	profileCmd.AddCommand(profileImportCmd)
	profileCmd.AddCommand(profileExportCmd)
	profileCmd.AddCommand(profileDeleteCmd)
}

// --- export (website zip) ---

var exportCmd = &cobra.Command{
	Use:   "export <slug>",
	Short: "Export a profile as a self-contained static website zip",
	Long: `Export a profile as a self-contained static website zip.

The server's authoritative build is preferred: it re-runs the site generator
and rewrites inline data-URL assets into real files. When the build endpoint
is unavailable the export transparently falls back to harvesting the live
preview, leaving inline assets inline.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slug := args[0]
		output, _ := cmd.Flags().GetString("output")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/profiles/"+slug)
		if err != nil {
			return err
		}

		var p profile.Profile
		if err := decodeJSON(resp, &p); err != nil {
			return err
		}

		if output == "" {
			output = export.ZipFileName(p)
		}

		baseURL, err := url.Parse(client.baseURL + "/u/" + slug + "/")
		if err != nil {
			return fmt.Errorf("building preview URL: %w", err)
		}

		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()

		exporter := &export.Exporter{
			ExportURL: client.baseURL + "/__export/web",
			BaseURL:   baseURL,
			Token:     client.token,
			Client:    client.httpClient,
		}

		printStep("Exporting %s...", slug)
		result, err := exporter.Export(cmd.Context(), p, f)
		if err != nil {
			os.Remove(output)
			return fmt.Errorf("export failed: %w", err)
		}

		switch result.Mode {
		case export.ModeServer:
			printSuccess("Exported %s (authoritative build) to %s", slug, output)
		case export.ModeClient:
			printSuccess("Exported %s (client replica, %d files) to %s", slug, result.Files, output)
			printWarning("Build endpoint was unavailable; inline assets were not rewritten.")
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().String("output", "", "output zip path (default: <slug>-web.zip)")
}

// --- exports (history) ---

var exportsCmd = &cobra.Command{
	Use:   "exports",
	Short: "List recent website exports",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), fmt.Sprintf("/exports?limit=%d", limit))
		if err != nil {
			return err
		}

		var exports []struct {
			ID        string    `json:"id"`
			Slug      string    `json:"slug"`
			Mode      string    `json:"mode"`
			FileCount int       `json:"file_count"`
			ByteSize  int64     `json:"byte_size"`
			CreatedAt time.Time `json:"created_at"`
		}
		if err := decodeJSON(resp, &exports); err != nil {
			return err
		}

		if len(exports) == 0 {
			fmt.Println("No exports recorded.")
			return nil
		}
		for _, e := range exports {
			fmt.Printf("%s  %s  %-18s  %-6s  %d files  %d bytes\n",
				colorize(colorCyan, e.ID[:8]),
				e.CreatedAt.Format(time.RFC3339),
				e.Slug,
				e.Mode,
				e.FileCount,
				e.ByteSize,
			)
		}
		return nil
	},
}

func init() {
	exportsCmd.Flags().Int("limit", 20, "maximum number of exports to list")
}

// --- cv ---

var cvCmd = &cobra.Command{
	Use:   "cv",
	Short: "Inspect CV documents",
}

var cvInfoCmd = &cobra.Command{
	Use:   "info <slug>",
	Short: "Show details of a profile's stored CV, or of a local file via --file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")

		var info cvfile.Info
		switch {
		case file != "":
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("reading file: %w", err)
			}
			mimeType := mime.TypeByExtension(filepath.Ext(file))
			info, err = cvfile.Inspect(data, filepath.Base(file), mimeType)
			if err != nil {
				return err
			}
		case len(args) == 1:
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			resp, err := client.get(cmd.Context(), "/profiles/"+args[0])
			if err != nil {
				return err
			}
			var p profile.Profile
			if err := decodeJSON(resp, &p); err != nil {
				return err
			}
			info, err = cvfile.InspectAsset(p.CV)
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("a profile slug or --file is required")
		}

		printStatus("File", "%s", info.FileName)
		printStatus("Type", "%s", info.MimeType)
		printStatus("Size", "%d bytes", info.ByteSize)
		if info.Pages > 0 {
			printStatus("Pages", "%d", info.Pages)
		}
		return nil
	},
}

func init() {
	cvInfoCmd.Flags().String("file", "", "inspect a local file instead of a stored profile")
	cvCmd.AddCommand(cvInfoCmd)
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		keys := config.ShowAll(cfg)
		for _, k := range keys {
			fmt.Printf("  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
